package domain

import (
	"context"
	"time"
)

// User is the public identity attached to posts, comments and notifications.
type User struct {
	ID      string // Opaque server-assigned identifier
	Name    string // First name
	Surname string // Family name
	Email   string // Institutional email, unique
	Avatar  string // Avatar image reference, may be empty
}

// DisplayName joins name and surname for notification payloads.
func (u User) DisplayName() string {
	if u.Surname == "" {
		return u.Name
	}
	return u.Name + " " + u.Surname
}

// Profile is the full account record of the signed-in user. It is mutated
// only through the profile synchronizer; the server owns deletion.
type Profile struct {
	User
	Bio         string            `validate:"max=200"`
	Faculty     string
	Department  string
	Skills      []string          // Ordered, no duplicates
	SocialMedia map[string]string // platform -> handle or full URL
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ProfilePatch carries only the fields the user actually touched. Nil means
// "not edited, do not send": the outgoing payload must never clobber fields
// the user left alone.
type ProfilePatch struct {
	Name        *string
	Surname     *string
	Bio         *string
	Faculty     *string
	Department  *string
	Avatar      *string
	Skills      []string          // nil = untouched, empty slice = cleared
	SocialMedia map[string]string // nil = untouched
}

// IsZero reports whether the patch carries no edits at all.
func (p ProfilePatch) IsZero() bool {
	return p.Name == nil && p.Surname == nil && p.Bio == nil &&
		p.Faculty == nil && p.Department == nil && p.Avatar == nil &&
		p.Skills == nil && p.SocialMedia == nil
}

// FieldNames lists the fields present in the patch, used for the
// field-level verification step after a save.
func (p ProfilePatch) FieldNames() []string {
	var fields []string
	if p.Name != nil {
		fields = append(fields, "name")
	}
	if p.Surname != nil {
		fields = append(fields, "surname")
	}
	if p.Bio != nil {
		fields = append(fields, "bio")
	}
	if p.Faculty != nil {
		fields = append(fields, "faculty")
	}
	if p.Department != nil {
		fields = append(fields, "department")
	}
	if p.Avatar != nil {
		fields = append(fields, "avatar")
	}
	if p.Skills != nil {
		fields = append(fields, "skills")
	}
	if p.SocialMedia != nil {
		fields = append(fields, "socialMedia")
	}
	return fields
}

// ProfileUsecase defines the profile synchronizer contract.
type ProfileUsecase interface {
	// Current returns the locally held profile snapshot.
	Current(ctx context.Context) (Profile, error)

	// CurrentUser returns the signed-in identity, false when no snapshot
	// has been loaded yet.
	CurrentUser() (User, bool)

	// Save reconciles a local draft against the server. Only the fields
	// present in the patch are sent. A non-nil MismatchWarning means the
	// save was a partial success: the server is authoritative and has
	// already been merged, but some submitted fields did not stick.
	Save(ctx context.Context, patch ProfilePatch) (Profile, *MismatchWarning, error)

	// Load seeds the in-memory snapshot, preferring the server and falling
	// back to the last persisted snapshot when offline.
	Load(ctx context.Context) (Profile, error)
}
