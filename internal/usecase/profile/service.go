package profile

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/kampusapp/kampus-sync/domain"
)

// DefaultInstitutionDomain is the email domain accounts are constrained to.
const DefaultInstitutionDomain = "firat.edu.tr"

// snapshot is the persisted shape: the profile plus the session token, which
// server responses never carry and which every merge must preserve.
type snapshot struct {
	Token   string         `json:"token,omitempty"`
	Profile domain.Profile `json:"profile"`
}

// Service reconciles locally edited profile drafts against the authoritative
// server profile, sending only changed fields and verifying the server
// accepted each of them.
type Service struct {
	gateway           domain.RemoteGateway
	cache             domain.SessionCache
	validate          *validator.Validate
	institutionDomain string

	mu      sync.RWMutex
	current domain.Profile
	loaded  bool
}

var _ domain.ProfileUsecase = (*Service)(nil)

// NewService will create a new profile service object
func NewService(gw domain.RemoteGateway, cache domain.SessionCache, institutionDomain string) *Service {
	if institutionDomain == "" {
		institutionDomain = DefaultInstitutionDomain
	}
	return &Service{
		gateway:           gw,
		cache:             cache,
		validate:          validator.New(),
		institutionDomain: institutionDomain,
	}
}

// ValidEmail reports whether email is a well-formed address on the
// configured institution domain.
func (s *Service) ValidEmail(email string) bool {
	if err := s.validate.Var(email, "required,email"); err != nil {
		return false
	}
	return strings.HasSuffix(email, "@"+s.institutionDomain)
}

// Load seeds the in-memory snapshot from the server, falling back to the
// last persisted snapshot when the server is unreachable.
func (s *Service) Load(ctx context.Context) (domain.Profile, error) {
	p, err := s.gateway.FetchProfile(ctx)
	if err != nil {
		var te *domain.TransportError
		if errors.As(err, &te) {
			if cached, cerr := s.readSnapshot(ctx); cerr == nil {
				logrus.Warnf("profile fetch offline, using persisted snapshot: %v", err)
				s.setCurrent(cached.Profile)
				return cached.Profile, nil
			}
		}
		return domain.Profile{}, err
	}

	if p.Email != "" && !s.ValidEmail(p.Email) {
		logrus.Warnf("server profile email %q is outside %s", p.Email, s.institutionDomain)
	}

	s.setCurrent(p)
	if err := s.persist(ctx, p); err != nil {
		logrus.Warnf("failed to persist profile snapshot: %v", err)
	}
	return p, nil
}

// Current returns the held snapshot, loading it on first use.
func (s *Service) Current(ctx context.Context) (domain.Profile, error) {
	s.mu.RLock()
	if s.loaded {
		p := s.current
		s.mu.RUnlock()
		return p, nil
	}
	s.mu.RUnlock()
	return s.Load(ctx)
}

func (s *Service) CurrentUser() (domain.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.loaded {
		return domain.User{}, false
	}
	return s.current.User, true
}

// Save sends exactly the changed fields, merges the server's full echo into
// the persisted snapshot (token preserved), and verifies field by field. A
// mismatch is a partial success: the server has already won, the caller is
// warned rather than failed, because silently losing user-entered data is
// worse than a confusing success message.
func (s *Service) Save(ctx context.Context, patch domain.ProfilePatch) (domain.Profile, *domain.MismatchWarning, error) {
	if patch.IsZero() {
		cur, err := s.Current(ctx)
		return cur, nil, err
	}

	normalizePatch(&patch)
	if err := s.validatePatch(patch); err != nil {
		return domain.Profile{}, nil, err
	}

	echo, err := s.gateway.UpdateProfile(ctx, patch)
	if err != nil {
		// The draft is the caller's: on transport failure nothing local has
		// been touched, so the user's edits survive for a retry.
		return domain.Profile{}, nil, err
	}

	s.setCurrent(echo)
	if perr := s.persist(ctx, echo); perr != nil {
		logrus.Warnf("failed to persist profile snapshot: %v", perr)
	}

	warning := verify(patch, echo)
	if warning != nil {
		logrus.Warnf("profile save partial success, mismatched fields: %v", warning.Fields)
	}
	return echo, warning, nil
}

func (s *Service) validatePatch(patch domain.ProfilePatch) error {
	if patch.Bio != nil {
		if err := s.validate.Var(*patch.Bio, "max=200"); err != nil {
			return domain.ErrBadParamInput
		}
	}
	return nil
}

// normalizePatch dedupes skills preserving order and normalizes social
// handles: values already carrying a URL scheme pass through, everything
// else is stored as a bare handle.
func normalizePatch(patch *domain.ProfilePatch) {
	if patch.Skills != nil {
		seen := map[string]bool{}
		deduped := make([]string, 0, len(patch.Skills))
		for _, sk := range patch.Skills {
			sk = strings.TrimSpace(sk)
			if sk == "" || seen[sk] {
				continue
			}
			seen[sk] = true
			deduped = append(deduped, sk)
		}
		patch.Skills = deduped
	}
	if patch.SocialMedia != nil {
		for platform, handle := range patch.SocialMedia {
			patch.SocialMedia[platform] = NormalizeHandle(handle)
		}
	}
}

// NormalizeHandle leaves full URLs alone and strips decoration from bare
// handles. URL construction is a presentation concern and stays out of here.
func NormalizeHandle(handle string) string {
	handle = strings.TrimSpace(handle)
	if strings.HasPrefix(handle, "http://") || strings.HasPrefix(handle, "https://") {
		return handle
	}
	return strings.TrimPrefix(handle, "@")
}

// verify compares every outgoing field against the server echo.
func verify(patch domain.ProfilePatch, echo domain.Profile) *domain.MismatchWarning {
	var mismatched []string
	if patch.Name != nil && echo.Name != *patch.Name {
		mismatched = append(mismatched, "name")
	}
	if patch.Surname != nil && echo.Surname != *patch.Surname {
		mismatched = append(mismatched, "surname")
	}
	if patch.Bio != nil && echo.Bio != *patch.Bio {
		mismatched = append(mismatched, "bio")
	}
	if patch.Faculty != nil && echo.Faculty != *patch.Faculty {
		mismatched = append(mismatched, "faculty")
	}
	if patch.Department != nil && echo.Department != *patch.Department {
		mismatched = append(mismatched, "department")
	}
	if patch.Avatar != nil && echo.Avatar != *patch.Avatar {
		mismatched = append(mismatched, "avatar")
	}
	if patch.Skills != nil && !equalStrings(echo.Skills, patch.Skills) {
		mismatched = append(mismatched, "skills")
	}
	if patch.SocialMedia != nil {
		for platform, handle := range patch.SocialMedia {
			if echo.SocialMedia[platform] != handle {
				mismatched = append(mismatched, "socialMedia."+platform)
			}
		}
	}
	if len(mismatched) == 0 {
		return nil
	}
	return &domain.MismatchWarning{Fields: mismatched}
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func (s *Service) setCurrent(p domain.Profile) {
	s.mu.Lock()
	s.current = p
	s.loaded = true
	s.mu.Unlock()
}

func (s *Service) readSnapshot(ctx context.Context) (snapshot, error) {
	raw, err := s.cache.Get(ctx, domain.CacheKeyProfile)
	if err != nil {
		return snapshot{}, err
	}
	var snap snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return snapshot{}, err
	}
	return snap, nil
}

func (s *Service) persist(ctx context.Context, p domain.Profile) error {
	snap, err := s.readSnapshot(ctx)
	if err != nil && !errors.Is(err, domain.ErrCacheMiss) {
		logrus.Warnf("failed to read persisted snapshot: %v", err)
	}
	snap.Profile = p
	raw, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	return s.cache.Set(ctx, domain.CacheKeyProfile, raw)
}
