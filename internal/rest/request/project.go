package request

import "github.com/kampusapp/kampus-sync/domain"

type CreateProject struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description" binding:"required"`
	Technology  string `json:"technology" binding:"required"`
	Image       string `json:"image"`
}

// ToDomain: Request -> Domain
func (r *CreateProject) ToDomain() domain.ProjectDraft {
	return domain.ProjectDraft{
		Title:       r.Title,
		Description: r.Description,
		Technology:  r.Technology,
		Image:       r.Image,
	}
}

type ToggleMember struct {
	MemberID string `json:"member_id" binding:"required"`
}
