package response

import "github.com/kampusapp/kampus-sync/domain"

type Comment struct {
	ID        string `json:"id"`
	Author    User   `json:"author"`
	Content   string `json:"content"`
	CreatedAt string `json:"created_at"`
	Pending   bool   `json:"pending,omitempty"`
}

// NewCommentFromDomain: Domain -> Response
func NewCommentFromDomain(c *domain.Comment) Comment {
	return Comment{
		ID:        c.ID,
		Author:    NewUserFromDomain(c.Author),
		Content:   c.Content,
		CreatedAt: c.CreatedAt.Format(DateTimeFormat),
		Pending:   c.Provisional,
	}
}
