package interaction

import (
	"context"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/kampusapp/kampus-sync/domain"
)

// commentExcerptLimit caps the comment excerpt carried in a notification
// payload.
const commentExcerptLimit = 80

// Service is the interaction engine. It applies optimistic mutations to the
// entity store, issues the matching remote call, and reconciles on success
// or rolls back exactly the applied delta on failure. It holds no private
// copies of entity state.
type Service struct {
	store    domain.EntityStore
	ledger   domain.NotificationLedger
	gateway  domain.RemoteGateway
	profile  domain.ProfileUsecase
	validate *validator.Validate
}

var _ domain.InteractionUsecase = (*Service)(nil)

// NewService will create a new interaction service object
func NewService(store domain.EntityStore, ledger domain.NotificationLedger, gw domain.RemoteGateway, profile domain.ProfileUsecase) *Service {
	return &Service{
		store:    store,
		ledger:   ledger,
		gateway:  gw,
		profile:  profile,
		validate: validator.New(),
	}
}

func (s *Service) objectAuthor(kind domain.ObjectKind, id string) (domain.User, bool) {
	switch kind {
	case domain.KindPost:
		if p, ok := s.store.Post(id); ok {
			return p.Author, true
		}
	case domain.KindProject:
		if p, ok := s.store.Project(id); ok {
			return p.Author, true
		}
	}
	return domain.User{}, false
}

// ToggleLike flips the liked-by-me flag and adjusts the like count before
// the server answers. The flag read at intent start decides the direction,
// which is what makes rapid double-toggles settle to the other state rather
// than back to the original.
func (s *Service) ToggleLike(ctx context.Context, kind domain.ObjectKind, id string) (bool, error) {
	if !kind.Valid() {
		return false, domain.ErrBadParamInput
	}
	if _, ok := s.objectAuthor(kind, id); !ok {
		return false, domain.ErrNotFound
	}

	current := s.store.IsLiked(kind, id)
	next := !current
	var delta int64 = 1
	if !next {
		delta = -1
	}

	s.store.SetLiked(kind, id, next)
	applied, ok := s.store.AddLikes(kind, id, delta)
	if !ok {
		s.store.SetLiked(kind, id, current)
		return false, domain.ErrNotFound
	}

	seq := s.store.NextLikeSeq(kind, id)
	res, err := s.gateway.ToggleLike(ctx, kind, id)
	if err != nil {
		// Exact inverse of the optimistic step, never a re-fetch: other
		// pending mutations on the same object must not be clobbered.
		s.store.SetLiked(kind, id, current)
		s.store.AddLikes(kind, id, -applied)
		logrus.Warnf("toggle like on %s %s failed, rolled back: %v", kind, id, err)
		return current, err
	}

	if res.HasCount {
		s.store.ReconcileLikes(kind, id, seq, res.Count)
	}

	// Only the unliked -> liked transition notifies; the idempotent flag
	// already prevents a second newly-true transition before an unlike
	// completes, so rapid re-toggles cannot duplicate the event.
	if next {
		s.emitLike(kind, id)
	}
	return next, nil
}

func (s *Service) emitLike(kind domain.ObjectKind, id string) {
	actor, _ := s.profile.CurrentUser()
	s.ledger.Emit(domain.Notification{
		ID:        uuid.NewString(),
		Type:      domain.NotificationLike,
		CreatedAt: time.Now(),
		Payload: domain.NotificationPayload{
			ActorID:    actor.ID,
			ActorName:  actor.DisplayName(),
			TargetID:   id,
			TargetKind: kind,
		},
	})
}

// CreateComment validates locally first: empty content never reaches the
// network and never mutates the store.
func (s *Service) CreateComment(ctx context.Context, kind domain.ObjectKind, parentID, content string) (domain.Comment, error) {
	if !kind.Valid() {
		return domain.Comment{}, domain.ErrBadParamInput
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return domain.Comment{}, domain.ErrBadParamInput
	}
	author, ok := s.objectAuthor(kind, parentID)
	if !ok {
		return domain.Comment{}, domain.ErrNotFound
	}
	me, ok := s.profile.CurrentUser()
	if !ok {
		return domain.Comment{}, domain.ErrNoSession
	}

	provisional := domain.Comment{
		ID:          uuid.NewString(),
		Author:      me,
		Content:     content,
		CreatedAt:   time.Now(),
		Provisional: true,
	}
	s.store.AppendComment(parentID, kind, provisional)

	canonical, err := s.gateway.CreateComment(ctx, kind, parentID, content)
	if err != nil {
		// Matched by the local id, not by content: a concurrent comment
		// with identical text must survive the rollback.
		s.store.RemoveComment(parentID, kind, provisional.ID)
		logrus.Warnf("create comment on %s %s failed, rolled back: %v", kind, parentID, err)
		return domain.Comment{}, err
	}

	if canonical.ID == "" {
		canonical = provisional
	}
	canonical.Provisional = false
	if canonical.Author.ID == "" {
		canonical.Author = me
	}
	if canonical.CreatedAt.IsZero() {
		canonical.CreatedAt = provisional.CreatedAt
	}
	// Replace in place, same position, never duplicate.
	s.store.ReplaceComment(parentID, kind, provisional.ID, canonical)

	if me.ID != author.ID {
		s.ledger.Emit(domain.Notification{
			ID:        uuid.NewString(),
			Type:      domain.NotificationComment,
			CreatedAt: time.Now(),
			Payload: domain.NotificationPayload{
				ActorID:    me.ID,
				ActorName:  me.DisplayName(),
				TargetID:   parentID,
				TargetKind: kind,
				Excerpt:    excerpt(content),
			},
		})
	}
	return canonical, nil
}

func excerpt(content string) string {
	runes := []rune(content)
	if len(runes) <= commentExcerptLimit {
		return content
	}
	return string(runes[:commentExcerptLimit])
}

// CreatePost inserts the provisional post at the front of the feed, then
// swaps in the canonical server record. No notification: creations do not
// notify anyone.
func (s *Service) CreatePost(ctx context.Context, content string, images []string) (domain.Post, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return domain.Post{}, domain.ErrBadParamInput
	}
	me, ok := s.profile.CurrentUser()
	if !ok {
		return domain.Post{}, domain.ErrNoSession
	}

	provisional := domain.Post{
		ID:        uuid.NewString(),
		Author:    me,
		Content:   content,
		Images:    append([]string(nil), images...),
		Hashtags:  extractHashtags(content),
		CreatedAt: time.Now(),
	}
	s.store.UpsertPostSorted(provisional)
	s.store.SetLiked(domain.KindPost, provisional.ID, false)

	canonical, err := s.gateway.CreatePost(ctx, content, images)
	if err != nil {
		s.store.RemovePost(provisional.ID)
		logrus.Warnf("create post failed, rolled back: %v", err)
		return domain.Post{}, err
	}

	if canonical.ID == "" {
		canonical = provisional
	}
	if canonical.Author.ID == "" {
		canonical.Author = me
	}
	if canonical.CreatedAt.IsZero() {
		canonical.CreatedAt = provisional.CreatedAt
	}
	if len(canonical.Hashtags) == 0 {
		canonical.Hashtags = provisional.Hashtags
	}
	if canonical.ID != provisional.ID {
		s.store.RemovePost(provisional.ID)
	}
	s.store.UpsertPostSorted(canonical)
	return canonical, nil
}

// extractHashtags pulls #tags out of content so the provisional post renders
// them before the server echo arrives.
func extractHashtags(content string) []string {
	var tags []string
	seen := map[string]bool{}
	for _, word := range strings.Fields(content) {
		if !strings.HasPrefix(word, "#") || len(word) < 2 {
			continue
		}
		tag := strings.TrimFunc(word[1:], func(r rune) bool {
			return strings.ContainsRune(".,!?;:", r)
		})
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		tags = append(tags, tag)
	}
	return tags
}

func (s *Service) CreateProject(ctx context.Context, draft domain.ProjectDraft) (domain.Project, error) {
	draft.Title = strings.TrimSpace(draft.Title)
	draft.Description = strings.TrimSpace(draft.Description)
	if err := s.validate.Struct(draft); err != nil {
		return domain.Project{}, domain.ErrBadParamInput
	}
	me, ok := s.profile.CurrentUser()
	if !ok {
		return domain.Project{}, domain.ErrNoSession
	}

	now := time.Now()
	provisional := domain.Project{
		ID:          uuid.NewString(),
		Author:      me,
		Title:       draft.Title,
		Description: draft.Description,
		Technology:  draft.Technology,
		Status:      domain.ProjectStatusNew,
		Image:       draft.Image,
		Members:     []string{me.ID},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.store.UpsertProjectSorted(provisional)

	canonical, err := s.gateway.CreateProject(ctx, draft)
	if err != nil {
		s.store.RemoveProject(provisional.ID)
		logrus.Warnf("create project failed, rolled back: %v", err)
		return domain.Project{}, err
	}

	if canonical.ID == "" {
		canonical = provisional
	}
	if canonical.Author.ID == "" {
		canonical.Author = me
	}
	if canonical.CreatedAt.IsZero() {
		canonical.CreatedAt = provisional.CreatedAt
	}
	if !canonical.Status.Valid() {
		canonical.Status = domain.ProjectStatusNew
	}
	if canonical.ID != provisional.ID {
		s.store.RemoveProject(provisional.ID)
	}
	s.store.UpsertProjectSorted(canonical)
	return canonical, nil
}

// ToggleMember is idempotent locally: adding a present member and removing
// an absent one are no-ops. The call still goes out so the server stays the
// final arbiter, and its returned member list wins on any divergence.
func (s *Service) ToggleMember(ctx context.Context, projectID, memberID string) error {
	if memberID == "" {
		return domain.ErrBadParamInput
	}
	p, ok := s.store.Project(projectID)
	if !ok {
		return domain.ErrNotFound
	}
	wasPresent := p.HasMember(memberID)
	changed := s.store.SetMember(projectID, memberID, !wasPresent)

	members, err := s.gateway.ToggleMember(ctx, projectID, memberID)
	if err != nil {
		if changed {
			s.store.SetMember(projectID, memberID, wasPresent)
		}
		logrus.Warnf("toggle member %s on project %s failed, rolled back: %v", memberID, projectID, err)
		return err
	}
	if members != nil {
		s.store.SetMembers(projectID, members)
	}
	return nil
}
