package domain

import "time"

// ProjectStatus is the lifecycle stage of a project.
type ProjectStatus string

const (
	ProjectStatusNew        ProjectStatus = "new"
	ProjectStatusInProgress ProjectStatus = "in-progress"
	ProjectStatusCompleted  ProjectStatus = "completed"
)

// Valid reports whether s is a known status.
func (s ProjectStatus) Valid() bool {
	switch s {
	case ProjectStatusNew, ProjectStatusInProgress, ProjectStatusCompleted:
		return true
	}
	return false
}

// Project is structurally a post with a title, technology tag, status and a
// member set.
type Project struct {
	ID           string
	Author       User
	Title        string
	Description  string
	Technology   string
	Status       ProjectStatus
	Image        string
	Members      []string // User ids, set semantics, no duplicates
	Likes        int64    // Never negative
	CommentCount int64
	Comments     []Comment
	IsLiked      bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// HasMember reports whether uid is in the member set.
func (p Project) HasMember(uid string) bool {
	for _, m := range p.Members {
		if m == uid {
			return true
		}
	}
	return false
}

// ProjectDraft is the user input for creating a project.
type ProjectDraft struct {
	Title       string `validate:"required"`
	Description string `validate:"required"`
	Technology  string `validate:"required"`
	Image       string
}
