package response

import "github.com/kampusapp/kampus-sync/domain"

type Post struct {
	ID           string    `json:"id"`
	Author       User      `json:"author"`
	Content      string    `json:"content"`
	Images       []string  `json:"images,omitempty"`
	Hashtags     []string  `json:"hashtags,omitempty"`
	Location     string    `json:"location,omitempty"`
	Likes        int64     `json:"likes"`
	IsLiked      bool      `json:"is_liked"`
	CommentCount int64     `json:"comment_count"`
	Comments     []Comment `json:"comments"`
	CreatedAt    string    `json:"created_at"`
}

// NewPostFromDomain: Domain -> Response. isLiked comes from the liked-set,
// not the server snapshot.
func NewPostFromDomain(p *domain.Post, isLiked bool) Post {
	comments := make([]Comment, 0, len(p.Comments))
	for i := range p.Comments {
		comments = append(comments, NewCommentFromDomain(&p.Comments[i]))
	}
	return Post{
		ID:           p.ID,
		Author:       NewUserFromDomain(p.Author),
		Content:      p.Content,
		Images:       p.Images,
		Hashtags:     p.Hashtags,
		Location:     p.Location,
		Likes:        p.Likes,
		IsLiked:      isLiked,
		CommentCount: p.CommentCount,
		Comments:     comments,
		CreatedAt:    p.CreatedAt.Format(DateTimeFormat),
	}
}
