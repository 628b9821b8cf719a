package response

// DateTimeFormat is the timestamp layout used across response DTOs.
const DateTimeFormat = "2006-01-02 15:04:05"
