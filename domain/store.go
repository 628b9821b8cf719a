package domain

// EntityStore is the normalized in-memory single source of truth for posts,
// projects, their comments and the liked-set. It is pure data structure
// manipulation: no I/O, no async behavior. All mutation entry points are
// serialized internally so the interaction engine and the rest facade can
// share one instance.
type EntityStore interface {
	// UpsertPost inserts or replaces by id, preserving insertion order.
	UpsertPost(p Post)
	// UpsertPostSorted inserts or replaces and re-sorts the feed by
	// creation timestamp, newest first.
	UpsertPostSorted(p Post)
	UpsertProject(p Project)
	UpsertProjectSorted(p Project)

	// Post and Project return a copy of the record; callers never hold a
	// reference into the store.
	Post(id string) (Post, bool)
	Project(id string) (Project, bool)

	// Feed and Projects return the held collections in feed order.
	Feed() []Post
	Projects() []Project

	// PatchPost applies a shallow merge. A missing id is a silent no-op;
	// callers that care must check existence first.
	PatchPost(id string, patch PostPatch)

	// RemovePost and RemoveProject drop an optimistic insert on rollback.
	RemovePost(id string)
	RemoveProject(id string)

	// AddLikes adjusts an object's like count by delta, clamped at zero.
	// The returned value is the delta actually applied, which is what an
	// exact-inverse rollback must undo.
	AddLikes(kind ObjectKind, id string, delta int64) (applied int64, ok bool)

	// AppendComment appends to the parent's comment sequence and bumps its
	// comment count as one atomic step. False when the parent is absent.
	AppendComment(parentID string, kind ObjectKind, c Comment) bool
	// ReplaceComment swaps the provisional comment localID for the
	// canonical record in place, keeping its position.
	ReplaceComment(parentID string, kind ObjectKind, localID string, canonical Comment) bool
	// RemoveComment removes exactly the comment with the given id and
	// decrements the parent's count. Matching is by id, never by content.
	RemoveComment(parentID string, kind ObjectKind, commentID string) bool

	// SetMembers replaces a project's member set with server truth.
	SetMembers(projectID string, members []string) bool
	// SetMember adds or removes one member id. Returns whether the set
	// actually changed (both directions are idempotent).
	SetMember(projectID, memberID string, present bool) (changed bool)

	// Liked-set operations. The flag is about this user's own action and
	// is deliberately separate from the global like count.
	SetLiked(kind ObjectKind, id string, liked bool)
	IsLiked(kind ObjectKind, id string) bool

	// ReplaceAllPosts merges a fetched page into the feed keyed by id,
	// preserving items from other pages, sorted by timestamp descending.
	ReplaceAllPosts(list []Post)
	ReplaceAllProjects(list []Project)

	// NextLikeSeq hands out the issue-order sequence for a like intent on
	// the object. ReconcileLikes accepts an authoritative server count only
	// if seq is not older than the last accepted one, which makes stale or
	// out-of-order responses safe to apply. The liked flag is never touched
	// by reconciliation.
	NextLikeSeq(kind ObjectKind, id string) uint64
	ReconcileLikes(kind ObjectKind, id string, seq uint64, count int64) bool
}
