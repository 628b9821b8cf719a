package request

// CreatePost is the intent body for publishing a feed post.
type CreatePost struct {
	Content string   `json:"content" binding:"required"`
	Images  []string `json:"images"`
}

// CreateComment is the intent body for commenting on a post or project.
type CreateComment struct {
	Content string `json:"content" binding:"required"`
}
