package response

import "github.com/kampusapp/kampus-sync/domain"

type Project struct {
	ID           string    `json:"id"`
	Author       User      `json:"author"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Technology   string    `json:"technology"`
	Status       string    `json:"status"`
	Image        string    `json:"image,omitempty"`
	Members      []string  `json:"members"`
	Likes        int64     `json:"likes"`
	IsLiked      bool      `json:"is_liked"`
	CommentCount int64     `json:"comment_count"`
	Comments     []Comment `json:"comments"`
	CreatedAt    string    `json:"created_at"`
	UpdatedAt    string    `json:"updated_at"`
}

// NewProjectFromDomain: Domain -> Response
func NewProjectFromDomain(p *domain.Project, isLiked bool) Project {
	comments := make([]Comment, 0, len(p.Comments))
	for i := range p.Comments {
		comments = append(comments, NewCommentFromDomain(&p.Comments[i]))
	}
	return Project{
		ID:           p.ID,
		Author:       NewUserFromDomain(p.Author),
		Title:        p.Title,
		Description:  p.Description,
		Technology:   p.Technology,
		Status:       string(p.Status),
		Image:        p.Image,
		Members:      p.Members,
		Likes:        p.Likes,
		IsLiked:      isLiked,
		CommentCount: p.CommentCount,
		Comments:     comments,
		CreatedAt:    p.CreatedAt.Format(DateTimeFormat),
		UpdatedAt:    p.UpdatedAt.Format(DateTimeFormat),
	}
}
