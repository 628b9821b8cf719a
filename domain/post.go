package domain

import (
	"context"
	"time"
)

// ObjectKind distinguishes the two likeable, commentable object families.
type ObjectKind string

const (
	KindPost    ObjectKind = "post"
	KindProject ObjectKind = "project"
)

// Valid reports whether k is one of the known kinds.
func (k ObjectKind) Valid() bool {
	return k == KindPost || k == KindProject
}

// Post is a short feed update.
type Post struct {
	ID           string
	Author       User
	Content      string
	Images       []string // Ordered image references
	Hashtags     []string
	Location     string
	Likes        int64 // Never negative
	CommentCount int64
	Comments     []Comment // Ordered, oldest first
	IsLiked      bool      // Server-reported flag for the current user, seeds the liked-set
	CreatedAt    time.Time
}

// PostPatch is a shallow partial update applied by the entity store.
// Nil fields are left untouched.
type PostPatch struct {
	Content  *string
	Images   []string
	Location *string
}

// InteractionUsecase is the interaction engine: it turns a user intent into
// an optimistic entity-store mutation, the matching remote call, and a
// reconciliation or exact rollback, emitting notifications where interactions
// warrant them. Every method returns an explicit outcome with the store
// already rolled back on failure.
type InteractionUsecase interface {
	// ToggleLike flips the liked-by-me flag for the object and adjusts its
	// like count. Returns the flag's new value.
	ToggleLike(ctx context.Context, kind ObjectKind, id string) (bool, error)

	// CreateComment appends a comment to a post or project. Empty content
	// (after trimming) is rejected locally without a network call.
	CreateComment(ctx context.Context, kind ObjectKind, parentID, content string) (Comment, error)

	// CreatePost publishes a new feed post optimistically.
	CreatePost(ctx context.Context, content string, images []string) (Post, error)

	// CreateProject publishes a new project optimistically.
	CreateProject(ctx context.Context, draft ProjectDraft) (Project, error)

	// ToggleMember adds or removes a member on a project. Idempotent on the
	// local side; the server's returned member list is final.
	ToggleMember(ctx context.Context, projectID, memberID string) error
}
