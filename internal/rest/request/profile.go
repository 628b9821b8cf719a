package request

import "github.com/kampusapp/kampus-sync/domain"

// UpdateProfile carries only the fields the user touched; absent JSON keys
// stay nil and are never sent upstream.
type UpdateProfile struct {
	Name        *string           `json:"name"`
	Surname     *string           `json:"surname"`
	Bio         *string           `json:"bio"`
	Faculty     *string           `json:"faculty"`
	Department  *string           `json:"department"`
	Avatar      *string           `json:"avatar"`
	Skills      []string          `json:"skills"`
	SocialMedia map[string]string `json:"social_media"`
}

// ToDomain: Request -> Domain
func (r *UpdateProfile) ToDomain() domain.ProfilePatch {
	return domain.ProfilePatch{
		Name:        r.Name,
		Surname:     r.Surname,
		Bio:         r.Bio,
		Faculty:     r.Faculty,
		Department:  r.Department,
		Avatar:      r.Avatar,
		Skills:      r.Skills,
		SocialMedia: r.SocialMedia,
	}
}

// Session is the token handover body from the UI's auth flow.
type Session struct {
	Token string `json:"token" binding:"required"`
}
