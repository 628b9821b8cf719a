package domain

import "context"

// LikeResult is the server's answer to a like toggle. Some backend variants
// return no authoritative count; HasCount is false then and reconciliation
// degrades to a no-op.
type LikeResult struct {
	Count    int64
	HasCount bool
}

// RemoteGateway is the thin HTTP contract against the authoritative store.
// Every call fails with either a *TransportError (no connectivity) or a
// *ServerError (rejected by the server).
type RemoteGateway interface {
	FetchPosts(ctx context.Context, page int) ([]Post, error)
	FetchProjects(ctx context.Context) ([]Project, error)
	FetchNotifications(ctx context.Context) ([]Notification, error)
	FetchProfile(ctx context.Context) (Profile, error)

	CreatePost(ctx context.Context, content string, images []string) (Post, error)
	CreateProject(ctx context.Context, draft ProjectDraft) (Project, error)
	CreateComment(ctx context.Context, kind ObjectKind, parentID, content string) (Comment, error)

	ToggleLike(ctx context.Context, kind ObjectKind, id string) (LikeResult, error)
	ToggleMember(ctx context.Context, projectID, memberID string) ([]string, error)

	UpdateProfile(ctx context.Context, patch ProfilePatch) (Profile, error)

	MarkNotificationRead(ctx context.Context, id string) error
	MarkAllNotificationsRead(ctx context.Context) error
}

// SessionCache is the durable key-value store surviving process restarts.
// It holds only the session token and the last-known profile snapshot,
// never posts, projects or notifications: those are rebuilt from the remote
// gateway every session.
type SessionCache interface {
	// Get returns ErrCacheMiss when the key is absent.
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Remove(ctx context.Context, key string) error
	Close() error
}

// Session cache keys.
const (
	CacheKeyToken   = "session:token"
	CacheKeyProfile = "session:profile"
)

// SessionUsecase bootstraps and refreshes the local view of the world.
type SessionUsecase interface {
	// SetToken stores a session token handed over by the UI's auth flow
	// and rebuilds local state under it.
	SetToken(ctx context.Context, token string) error

	// Bootstrap loads the persisted token and profile snapshot, then
	// rebuilds the entity store and ledger from the remote gateway. Safe to
	// call again; concurrent calls are deduplicated.
	Bootstrap(ctx context.Context) error

	// Refresh re-fetches posts, projects and notifications.
	Refresh(ctx context.Context) error

	// LoadPage merges one further feed page into the entity store. Pages
	// below 1 are rejected with ErrBadParamInput.
	LoadPage(ctx context.Context, page int) error

	// Logout drops the persisted session token.
	Logout(ctx context.Context) error
}
