package gateway

import (
	"time"

	"github.com/kampusapp/kampus-sync/domain"
)

// Wire shapes of the backend. The profile payload keeps the backend's field
// names (ad/soyad/fakulte/bolum); everything else is plain JSON.

type userDTO struct {
	ID           string `json:"id"`
	Ad           string `json:"ad"`
	Soyad        string `json:"soyad"`
	Email        string `json:"email"`
	ProfileImage string `json:"profileImage"`
}

func (d userDTO) toDomain() domain.User {
	return domain.User{
		ID:      d.ID,
		Name:    d.Ad,
		Surname: d.Soyad,
		Email:   d.Email,
		Avatar:  d.ProfileImage,
	}
}

type profileDTO struct {
	userDTO
	Bio         string            `json:"bio"`
	Fakulte     string            `json:"fakulte"`
	Bolum       string            `json:"bolum"`
	Skills      []string          `json:"skills"`
	SocialMedia map[string]string `json:"socialMedia"`
	CreatedAt   time.Time         `json:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`
}

func (d profileDTO) toDomain() domain.Profile {
	return domain.Profile{
		User:        d.userDTO.toDomain(),
		Bio:         d.Bio,
		Faculty:     d.Fakulte,
		Department:  d.Bolum,
		Skills:      d.Skills,
		SocialMedia: d.SocialMedia,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

// profileUpdateDTO carries only the touched fields; omitted fields must not
// appear in the payload at all, hence the pointers and omitempty.
type profileUpdateDTO struct {
	Ad           *string           `json:"ad,omitempty"`
	Soyad        *string           `json:"soyad,omitempty"`
	Bio          *string           `json:"bio,omitempty"`
	Fakulte      *string           `json:"fakulte,omitempty"`
	Bolum        *string           `json:"bolum,omitempty"`
	ProfileImage *string           `json:"profileImage,omitempty"`
	Skills       []string          `json:"skills,omitempty"`
	SocialMedia  map[string]string `json:"socialMedia,omitempty"`
}

func newProfileUpdateDTO(patch domain.ProfilePatch) profileUpdateDTO {
	return profileUpdateDTO{
		Ad:           patch.Name,
		Soyad:        patch.Surname,
		Bio:          patch.Bio,
		Fakulte:      patch.Faculty,
		Bolum:        patch.Department,
		ProfileImage: patch.Avatar,
		Skills:       patch.Skills,
		SocialMedia:  patch.SocialMedia,
	}
}

type commentDTO struct {
	ID        string    `json:"id"`
	Author    userDTO   `json:"author"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

func (d commentDTO) toDomain() domain.Comment {
	return domain.Comment{
		ID:        d.ID,
		Author:    d.Author.toDomain(),
		Content:   d.Content,
		CreatedAt: d.CreatedAt,
	}
}

type postDTO struct {
	ID        string       `json:"id"`
	Author    userDTO      `json:"author"`
	Content   string       `json:"content"`
	Images    []string     `json:"images"`
	Hashtags  []string     `json:"hashtags"`
	Location  string       `json:"location"`
	Likes     int64        `json:"likes"`
	Comments  []commentDTO `json:"comments"`
	IsLiked   *bool        `json:"isLiked,omitempty"`
	CreatedAt time.Time    `json:"createdAt"`
}

func (d postDTO) toDomain() domain.Post {
	comments := make([]domain.Comment, 0, len(d.Comments))
	for _, c := range d.Comments {
		comments = append(comments, c.toDomain())
	}
	p := domain.Post{
		ID:           d.ID,
		Author:       d.Author.toDomain(),
		Content:      d.Content,
		Images:       d.Images,
		Hashtags:     d.Hashtags,
		Location:     d.Location,
		Likes:        d.Likes,
		CommentCount: int64(len(comments)),
		Comments:     comments,
		CreatedAt:    d.CreatedAt,
	}
	if d.IsLiked != nil {
		p.IsLiked = *d.IsLiked
	}
	return p
}

type projectDTO struct {
	ID          string       `json:"id"`
	Author      userDTO      `json:"author"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Technology  string       `json:"technology"`
	Status      string       `json:"status"`
	Image       string       `json:"image"`
	Members     []string     `json:"members"`
	Likes       int64        `json:"likes"`
	Comments    []commentDTO `json:"comments"`
	IsLiked     *bool        `json:"isLiked,omitempty"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

func (d projectDTO) toDomain() domain.Project {
	comments := make([]domain.Comment, 0, len(d.Comments))
	for _, c := range d.Comments {
		comments = append(comments, c.toDomain())
	}
	p := domain.Project{
		ID:           d.ID,
		Author:       d.Author.toDomain(),
		Title:        d.Title,
		Description:  d.Description,
		Technology:   d.Technology,
		Status:       domain.ProjectStatus(d.Status),
		Image:        d.Image,
		Members:      d.Members,
		Likes:        d.Likes,
		CommentCount: int64(len(comments)),
		Comments:     comments,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
	if d.IsLiked != nil {
		p.IsLiked = *d.IsLiked
	}
	return p
}

type notificationDTO struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"createdAt"`
	Data      struct {
		UserID   string `json:"userId"`
		UserName string `json:"userName"`
		TargetID string `json:"targetId"`
		Kind     string `json:"kind"`
		Comment  string `json:"comment"`
	} `json:"data"`
}

func (d notificationDTO) toDomain() domain.Notification {
	return domain.Notification{
		ID:        d.ID,
		Type:      domain.NotificationType(d.Type),
		Read:      d.Read,
		CreatedAt: d.CreatedAt,
		Payload: domain.NotificationPayload{
			ActorID:    d.Data.UserID,
			ActorName:  d.Data.UserName,
			TargetID:   d.Data.TargetID,
			TargetKind: domain.ObjectKind(d.Data.Kind),
			Excerpt:    d.Data.Comment,
		},
	}
}

type likeResponseDTO struct {
	Likes *int64 `json:"likes,omitempty"`
}

type membersResponseDTO struct {
	Members []string `json:"members"`
}
