package session

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/kampusapp/kampus-sync/domain"
)

// firstPage is the feed page fetched during bootstrap; later pages arrive
// through the rest facade on demand.
const firstPage = 1

// Service rebuilds the entity store and the ledger from the remote gateway
// at session start and on demand. The liked-set is reconstructed from the
// server-reported isLiked flags when present, else it starts empty.
type Service struct {
	gateway   domain.RemoteGateway
	cache     domain.SessionCache
	store     domain.EntityStore
	ledger    domain.NotificationLedger
	profile   domain.ProfileUsecase
	tokenSink func(string)
	sf        singleflight.Group
}

var _ domain.SessionUsecase = (*Service)(nil)

// NewService will create a new session service object. tokenSink receives
// the active token so the gateway can attach it to outgoing calls.
func NewService(gw domain.RemoteGateway, cache domain.SessionCache, store domain.EntityStore, ledger domain.NotificationLedger, profile domain.ProfileUsecase, tokenSink func(string)) *Service {
	return &Service{
		gateway:   gw,
		cache:     cache,
		store:     store,
		ledger:    ledger,
		profile:   profile,
		tokenSink: tokenSink,
	}
}

func (s *Service) SetToken(ctx context.Context, token string) error {
	if token == "" {
		return domain.ErrBadParamInput
	}
	if err := s.cache.Set(ctx, domain.CacheKeyToken, []byte(token)); err != nil {
		return err
	}
	s.tokenSink(token)
	return s.rebuild(ctx)
}

func (s *Service) Bootstrap(ctx context.Context) error {
	raw, err := s.cache.Get(ctx, domain.CacheKeyToken)
	if err != nil {
		if errors.Is(err, domain.ErrCacheMiss) {
			return domain.ErrNoSession
		}
		return err
	}
	s.tokenSink(string(raw))
	return s.rebuild(ctx)
}

func (s *Service) rebuild(ctx context.Context) error {
	if _, err := s.profile.Load(ctx); err != nil {
		return err
	}
	return s.Refresh(ctx)
}

// Refresh fetches posts, projects and notifications in parallel and seeds
// the stores. Concurrent callers share one flight.
func (s *Service) Refresh(ctx context.Context) error {
	_, err, _ := s.sf.Do("refresh", func() (any, error) {
		g, ctx := errgroup.WithContext(ctx)

		var (
			posts         []domain.Post
			projects      []domain.Project
			notifications []domain.Notification
		)
		g.Go(func() error {
			var err error
			posts, err = s.gateway.FetchPosts(ctx, firstPage)
			return err
		})
		g.Go(func() error {
			var err error
			projects, err = s.gateway.FetchProjects(ctx)
			return err
		})
		g.Go(func() error {
			var err error
			notifications, err = s.gateway.FetchNotifications(ctx)
			return err
		})
		if err := g.Wait(); err != nil {
			logrus.Errorf("session refresh failed: %v", err)
			return nil, err
		}

		s.store.ReplaceAllPosts(posts)
		for _, p := range posts {
			s.store.SetLiked(domain.KindPost, p.ID, p.IsLiked)
		}
		s.store.ReplaceAllProjects(projects)
		for _, p := range projects {
			s.store.SetLiked(domain.KindProject, p.ID, p.IsLiked)
		}
		s.ledger.Refresh(notifications)
		return nil, nil
	})
	return err
}

// LoadPage merges one further feed page into the store.
func (s *Service) LoadPage(ctx context.Context, page int) error {
	if page < 1 {
		return domain.ErrBadParamInput
	}
	posts, err := s.gateway.FetchPosts(ctx, page)
	if err != nil {
		return err
	}
	s.store.ReplaceAllPosts(posts)
	for _, p := range posts {
		s.store.SetLiked(domain.KindPost, p.ID, p.IsLiked)
	}
	return nil
}

func (s *Service) Logout(ctx context.Context) error {
	if err := s.cache.Remove(ctx, domain.CacheKeyToken); err != nil {
		return err
	}
	s.tokenSink("")
	return nil
}
