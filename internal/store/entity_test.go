package store

import (
	"testing"
	"time"

	"github.com/go-faker/faker/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kampusapp/kampus-sync/domain"
)

func newPost(id string, createdAt time.Time) domain.Post {
	return domain.Post{
		ID:        id,
		Author:    domain.User{ID: faker.UUIDHyphenated(), Name: faker.FirstName()},
		Content:   faker.Sentence(),
		CreatedAt: createdAt,
	}
}

func TestUpsertPostPreservesInsertionOrder(t *testing.T) {
	s := NewEntityStore()
	now := time.Now()

	s.UpsertPost(newPost("a", now))
	s.UpsertPost(newPost("b", now.Add(time.Hour)))
	s.UpsertPost(newPost("c", now.Add(-time.Hour)))

	feed := s.Feed()
	require.Len(t, feed, 3)
	assert.Equal(t, "a", feed[0].ID)
	assert.Equal(t, "b", feed[1].ID)
	assert.Equal(t, "c", feed[2].ID)

	// Replacing by id keeps the slot.
	replacement := newPost("b", now.Add(2*time.Hour))
	replacement.Content = "replaced"
	s.UpsertPost(replacement)
	feed = s.Feed()
	require.Len(t, feed, 3)
	assert.Equal(t, "replaced", feed[1].Content)
}

func TestUpsertPostSortedOrdersByCreatedAtDesc(t *testing.T) {
	s := NewEntityStore()
	now := time.Now()

	s.UpsertPostSorted(newPost("old", now.Add(-time.Hour)))
	s.UpsertPostSorted(newPost("new", now.Add(time.Hour)))
	s.UpsertPostSorted(newPost("mid", now))

	feed := s.Feed()
	require.Len(t, feed, 3)
	assert.Equal(t, []string{feed[0].ID, feed[1].ID, feed[2].ID}, []string{"new", "mid", "old"})
}

func TestReplaceAllPostsMergesPagesByID(t *testing.T) {
	s := NewEntityStore()
	now := time.Now()

	// Page one.
	s.ReplaceAllPosts([]domain.Post{
		newPost("p1", now.Add(3*time.Hour)),
		newPost("p2", now.Add(2*time.Hour)),
	})
	// Page two arrives later: p2 refreshed, p3 new; p1 must survive.
	refreshed := newPost("p2", now.Add(2*time.Hour))
	refreshed.Content = "fresh"
	s.ReplaceAllPosts([]domain.Post{
		refreshed,
		newPost("p3", now.Add(time.Hour)),
	})

	feed := s.Feed()
	require.Len(t, feed, 3)
	assert.Equal(t, "p1", feed[0].ID)
	assert.Equal(t, "p2", feed[1].ID)
	assert.Equal(t, "fresh", feed[1].Content)
	assert.Equal(t, "p3", feed[2].ID)
}

func TestPatchPostMissingIDIsSilentNoop(t *testing.T) {
	s := NewEntityStore()
	content := "new content"
	s.PatchPost("ghost", domain.PostPatch{Content: &content})
	assert.Empty(t, s.Feed())
}

func TestAddLikesClampsAtZeroAndReportsApplied(t *testing.T) {
	s := NewEntityStore()
	p := newPost("p1", time.Now())
	p.Likes = 1
	s.UpsertPost(p)

	applied, ok := s.AddLikes(domain.KindPost, "p1", -1)
	require.True(t, ok)
	assert.Equal(t, int64(-1), applied)

	// Already at zero: the clamp means nothing is applied.
	applied, ok = s.AddLikes(domain.KindPost, "p1", -1)
	require.True(t, ok)
	assert.Equal(t, int64(0), applied)

	got, _ := s.Post("p1")
	assert.Equal(t, int64(0), got.Likes)

	_, ok = s.AddLikes(domain.KindPost, "ghost", 1)
	assert.False(t, ok)
}

func TestAppendCommentBumpsCountAtomically(t *testing.T) {
	s := NewEntityStore()
	s.UpsertPost(newPost("p1", time.Now()))

	c := domain.Comment{ID: "c1", Content: "hi", CreatedAt: time.Now()}
	require.True(t, s.AppendComment("p1", domain.KindPost, c))

	got, _ := s.Post("p1")
	require.Len(t, got.Comments, 1)
	assert.Equal(t, int64(1), got.CommentCount)

	assert.False(t, s.AppendComment("ghost", domain.KindPost, c))
}

func TestReplaceCommentKeepsPosition(t *testing.T) {
	s := NewEntityStore()
	s.UpsertPost(newPost("p1", time.Now()))
	s.AppendComment("p1", domain.KindPost, domain.Comment{ID: "c1", Content: "first"})
	s.AppendComment("p1", domain.KindPost, domain.Comment{ID: "local", Content: "second", Provisional: true})
	s.AppendComment("p1", domain.KindPost, domain.Comment{ID: "c3", Content: "third"})

	canonical := domain.Comment{ID: "server-id", Content: "second"}
	require.True(t, s.ReplaceComment("p1", domain.KindPost, "local", canonical))

	got, _ := s.Post("p1")
	require.Len(t, got.Comments, 3)
	assert.Equal(t, "server-id", got.Comments[1].ID)
	assert.Equal(t, int64(3), got.CommentCount)
}

func TestRemoveCommentMatchesByID(t *testing.T) {
	s := NewEntityStore()
	s.UpsertPost(newPost("p1", time.Now()))
	// Two comments with identical text: only the one with the matching id
	// may go.
	s.AppendComment("p1", domain.KindPost, domain.Comment{ID: "c1", Content: "same text"})
	s.AppendComment("p1", domain.KindPost, domain.Comment{ID: "c2", Content: "same text"})

	require.True(t, s.RemoveComment("p1", domain.KindPost, "c2"))

	got, _ := s.Post("p1")
	require.Len(t, got.Comments, 1)
	assert.Equal(t, "c1", got.Comments[0].ID)
	assert.Equal(t, int64(1), got.CommentCount)

	assert.False(t, s.RemoveComment("p1", domain.KindPost, "c2"))
}

func TestLikedSet(t *testing.T) {
	s := NewEntityStore()
	assert.False(t, s.IsLiked(domain.KindPost, "p1"))

	s.SetLiked(domain.KindPost, "p1", true)
	assert.True(t, s.IsLiked(domain.KindPost, "p1"))
	// Same id under the other kind is a distinct entry.
	assert.False(t, s.IsLiked(domain.KindProject, "p1"))

	s.SetLiked(domain.KindPost, "p1", false)
	assert.False(t, s.IsLiked(domain.KindPost, "p1"))
}

func TestSetMemberIsIdempotent(t *testing.T) {
	s := NewEntityStore()
	s.UpsertProject(domain.Project{ID: "pr1", Members: []string{"u1"}})

	assert.False(t, s.SetMember("pr1", "u1", true), "adding a present member is a no-op")
	assert.True(t, s.SetMember("pr1", "u2", true))
	assert.False(t, s.SetMember("pr1", "u3", false), "removing an absent member is a no-op")
	assert.True(t, s.SetMember("pr1", "u1", false))

	got, _ := s.Project("pr1")
	assert.Equal(t, []string{"u2"}, got.Members)
}

func TestReconcileLikesRejectsStaleSeq(t *testing.T) {
	s := NewEntityStore()
	p := newPost("p1", time.Now())
	p.Likes = 3
	s.UpsertPost(p)

	seq1 := s.NextLikeSeq(domain.KindPost, "p1")
	seq2 := s.NextLikeSeq(domain.KindPost, "p1")
	require.Greater(t, seq2, seq1)

	// Newer response lands first.
	require.True(t, s.ReconcileLikes(domain.KindPost, "p1", seq2, 10))
	got, _ := s.Post("p1")
	assert.Equal(t, int64(10), got.Likes)

	// The older, out-of-order response must not clobber it.
	assert.False(t, s.ReconcileLikes(domain.KindPost, "p1", seq1, 4))
	got, _ = s.Post("p1")
	assert.Equal(t, int64(10), got.Likes)
}

func TestReconcileLikesLeavesLikedFlagAlone(t *testing.T) {
	s := NewEntityStore()
	s.UpsertPost(newPost("p1", time.Now()))
	s.SetLiked(domain.KindPost, "p1", true)

	seq := s.NextLikeSeq(domain.KindPost, "p1")
	require.True(t, s.ReconcileLikes(domain.KindPost, "p1", seq, 7))
	assert.True(t, s.IsLiked(domain.KindPost, "p1"))
}

func TestAccessorsReturnCopies(t *testing.T) {
	s := NewEntityStore()
	p := newPost("p1", time.Now())
	s.UpsertPost(p)
	s.AppendComment("p1", domain.KindPost, domain.Comment{ID: "c1"})

	got, _ := s.Post("p1")
	got.Comments[0].Content = "mutated"
	got.Likes = 99

	fresh, _ := s.Post("p1")
	assert.Empty(t, fresh.Comments[0].Content)
	assert.Equal(t, int64(0), fresh.Likes)
}
