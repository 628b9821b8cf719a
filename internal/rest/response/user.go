package response

import "github.com/kampusapp/kampus-sync/domain"

type User struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Surname string `json:"surname"`
	Avatar  string `json:"avatar,omitempty"`
}

// NewUserFromDomain: Domain -> Response
func NewUserFromDomain(u domain.User) User {
	return User{
		ID:      u.ID,
		Name:    u.Name,
		Surname: u.Surname,
		Avatar:  u.Avatar,
	}
}

type Profile struct {
	User
	Email       string            `json:"email"`
	Bio         string            `json:"bio,omitempty"`
	Faculty     string            `json:"faculty,omitempty"`
	Department  string            `json:"department,omitempty"`
	Skills      []string          `json:"skills,omitempty"`
	SocialMedia map[string]string `json:"social_media,omitempty"`
}

func NewProfileFromDomain(p *domain.Profile) Profile {
	return Profile{
		User:        NewUserFromDomain(p.User),
		Email:       p.Email,
		Bio:         p.Bio,
		Faculty:     p.Faculty,
		Department:  p.Department,
		Skills:      p.Skills,
		SocialMedia: p.SocialMedia,
	}
}
