package profile_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kampusapp/kampus-sync/domain"
	"github.com/kampusapp/kampus-sync/internal/usecase/profile"
)

type fakeGateway struct {
	fetchProfile  func() (domain.Profile, error)
	updateProfile func(patch domain.ProfilePatch) (domain.Profile, error)

	lastPatch   domain.ProfilePatch
	updateCalls int
}

func (f *fakeGateway) FetchPosts(ctx context.Context, page int) ([]domain.Post, error) {
	return nil, nil
}
func (f *fakeGateway) FetchProjects(ctx context.Context) ([]domain.Project, error) { return nil, nil }
func (f *fakeGateway) FetchNotifications(ctx context.Context) ([]domain.Notification, error) {
	return nil, nil
}

func (f *fakeGateway) FetchProfile(ctx context.Context) (domain.Profile, error) {
	if f.fetchProfile != nil {
		return f.fetchProfile()
	}
	return domain.Profile{}, nil
}

func (f *fakeGateway) CreatePost(ctx context.Context, content string, images []string) (domain.Post, error) {
	return domain.Post{}, nil
}
func (f *fakeGateway) CreateProject(ctx context.Context, draft domain.ProjectDraft) (domain.Project, error) {
	return domain.Project{}, nil
}
func (f *fakeGateway) CreateComment(ctx context.Context, kind domain.ObjectKind, parentID, content string) (domain.Comment, error) {
	return domain.Comment{}, nil
}
func (f *fakeGateway) ToggleLike(ctx context.Context, kind domain.ObjectKind, id string) (domain.LikeResult, error) {
	return domain.LikeResult{}, nil
}
func (f *fakeGateway) ToggleMember(ctx context.Context, projectID, memberID string) ([]string, error) {
	return nil, nil
}

func (f *fakeGateway) UpdateProfile(ctx context.Context, patch domain.ProfilePatch) (domain.Profile, error) {
	f.updateCalls++
	f.lastPatch = patch
	if f.updateProfile != nil {
		return f.updateProfile(patch)
	}
	return domain.Profile{}, nil
}

func (f *fakeGateway) MarkNotificationRead(ctx context.Context, id string) error { return nil }
func (f *fakeGateway) MarkAllNotificationsRead(ctx context.Context) error        { return nil }

type memCache struct {
	data map[string][]byte
}

func newMemCache() *memCache { return &memCache{data: map[string][]byte{}} }

func (m *memCache) Get(ctx context.Context, key string) ([]byte, error) {
	v, ok := m.data[key]
	if !ok {
		return nil, domain.ErrCacheMiss
	}
	return v, nil
}
func (m *memCache) Set(ctx context.Context, key string, value []byte) error {
	m.data[key] = append([]byte(nil), value...)
	return nil
}
func (m *memCache) Remove(ctx context.Context, key string) error {
	delete(m.data, key)
	return nil
}
func (m *memCache) Close() error { return nil }

func str(s string) *string { return &s }

func serverProfile() domain.Profile {
	return domain.Profile{
		User: domain.User{
			ID:      "u1",
			Name:    "Ayşe",
			Surname: "Yılmaz",
			Email:   "ayse.yilmaz@firat.edu.tr",
		},
		Bio:        "merhaba",
		Faculty:    "Mühendislik",
		Department: "Yazılım Mühendisliği",
	}
}

func TestSaveSendsOnlyChangedFields(t *testing.T) {
	gw := &fakeGateway{
		updateProfile: func(patch domain.ProfilePatch) (domain.Profile, error) {
			p := serverProfile()
			p.Bio = *patch.Bio
			return p, nil
		},
	}
	svc := profile.NewService(gw, newMemCache(), "")

	_, warning, err := svc.Save(context.Background(), domain.ProfilePatch{Bio: str("yeni bio")})
	require.NoError(t, err)
	assert.Nil(t, warning)

	assert.Equal(t, []string{"bio"}, gw.lastPatch.FieldNames(), "untouched fields stay out of the payload")
}

func TestSaveEmptyPatchSkipsNetwork(t *testing.T) {
	gw := &fakeGateway{
		fetchProfile: func() (domain.Profile, error) { return serverProfile(), nil },
	}
	svc := profile.NewService(gw, newMemCache(), "")

	p, warning, err := svc.Save(context.Background(), domain.ProfilePatch{})
	require.NoError(t, err)
	assert.Nil(t, warning)
	assert.Equal(t, "u1", p.ID)
	assert.Zero(t, gw.updateCalls)
}

func TestSaveBioOverLimitRejectedLocally(t *testing.T) {
	long := make([]byte, 201)
	for i := range long {
		long[i] = 'a'
	}
	gw := &fakeGateway{}
	svc := profile.NewService(gw, newMemCache(), "")

	_, _, err := svc.Save(context.Background(), domain.ProfilePatch{Bio: str(string(long))})
	assert.ErrorIs(t, err, domain.ErrBadParamInput)
	assert.Zero(t, gw.updateCalls)
}

func TestSaveMismatchIsPartialSuccess(t *testing.T) {
	// The server echoes a profile that ignored the submitted bio.
	gw := &fakeGateway{
		updateProfile: func(patch domain.ProfilePatch) (domain.Profile, error) {
			p := serverProfile()
			p.Name = *patch.Name
			return p, nil
		},
	}
	cache := newMemCache()
	svc := profile.NewService(gw, cache, "")

	echo, warning, err := svc.Save(context.Background(), domain.ProfilePatch{
		Name: str("Fatma"),
		Bio:  str("kaybolan bio"),
	})
	require.NoError(t, err, "a mismatch warns, it does not fail")
	require.NotNil(t, warning)
	assert.Equal(t, []string{"bio"}, warning.Fields)

	// Server truth is what sticks locally.
	assert.Equal(t, "merhaba", echo.Bio)
	cur, err := svc.Current(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "merhaba", cur.Bio)
	assert.Equal(t, "Fatma", cur.Name)
}

func TestSaveTransportFailureLeavesDraftUntouched(t *testing.T) {
	gw := &fakeGateway{
		fetchProfile: func() (domain.Profile, error) { return serverProfile(), nil },
	}
	svc := profile.NewService(gw, newMemCache(), "")
	_, err := svc.Load(context.Background())
	require.NoError(t, err)

	gw.updateProfile = func(patch domain.ProfilePatch) (domain.Profile, error) {
		return domain.Profile{}, &domain.TransportError{Op: "update profile", Err: errors.New("dial tcp: timeout")}
	}
	_, warning, err := svc.Save(context.Background(), domain.ProfilePatch{Bio: str("taslak")})
	require.Error(t, err)
	assert.Nil(t, warning)

	cur, err := svc.Current(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "merhaba", cur.Bio, "no local merge happened")
}

func TestSavePreservesPersistedToken(t *testing.T) {
	cache := newMemCache()
	seed, _ := json.Marshal(map[string]any{
		"token":   "jwt-abc",
		"profile": serverProfile(),
	})
	require.NoError(t, cache.Set(context.Background(), domain.CacheKeyProfile, seed))

	gw := &fakeGateway{
		updateProfile: func(patch domain.ProfilePatch) (domain.Profile, error) {
			p := serverProfile()
			p.Bio = *patch.Bio
			return p, nil
		},
	}
	svc := profile.NewService(gw, cache, "")

	_, _, err := svc.Save(context.Background(), domain.ProfilePatch{Bio: str("güncel")})
	require.NoError(t, err)

	raw, err := cache.Get(context.Background(), domain.CacheKeyProfile)
	require.NoError(t, err)
	var snap struct {
		Token   string         `json:"token"`
		Profile domain.Profile `json:"profile"`
	}
	require.NoError(t, json.Unmarshal(raw, &snap))
	assert.Equal(t, "jwt-abc", snap.Token, "server echo never carries the token, the merge keeps it")
	assert.Equal(t, "güncel", snap.Profile.Bio)
}

func TestLoadFallsBackToSnapshotWhenOffline(t *testing.T) {
	cache := newMemCache()
	seed, _ := json.Marshal(map[string]any{"profile": serverProfile()})
	require.NoError(t, cache.Set(context.Background(), domain.CacheKeyProfile, seed))

	gw := &fakeGateway{
		fetchProfile: func() (domain.Profile, error) {
			return domain.Profile{}, &domain.TransportError{Op: "fetch profile", Err: errors.New("no route to host")}
		},
	}
	svc := profile.NewService(gw, cache, "")

	p, err := svc.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "u1", p.ID)

	u, ok := svc.CurrentUser()
	assert.True(t, ok)
	assert.Equal(t, "Ayşe", u.Name)
}

func TestLoadServerErrorDoesNotFallBack(t *testing.T) {
	cache := newMemCache()
	seed, _ := json.Marshal(map[string]any{"profile": serverProfile()})
	require.NoError(t, cache.Set(context.Background(), domain.CacheKeyProfile, seed))

	gw := &fakeGateway{
		fetchProfile: func() (domain.Profile, error) {
			return domain.Profile{}, &domain.ServerError{Op: "fetch profile", Status: 401, Message: "token expired"}
		},
	}
	svc := profile.NewService(gw, cache, "")

	_, err := svc.Load(context.Background())
	var se *domain.ServerError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, 401, se.Status)
}

func TestValidEmailRequiresInstitutionDomain(t *testing.T) {
	svc := profile.NewService(&fakeGateway{}, newMemCache(), "")

	assert.True(t, svc.ValidEmail("ogrenci@firat.edu.tr"))
	assert.False(t, svc.ValidEmail("ogrenci@gmail.com"))
	assert.False(t, svc.ValidEmail("not-an-email"))
	assert.False(t, svc.ValidEmail(""))
}

func TestNormalizeHandle(t *testing.T) {
	assert.Equal(t, "kampusdev", profile.NormalizeHandle("@kampusdev"))
	assert.Equal(t, "kampusdev", profile.NormalizeHandle("  kampusdev "))
	assert.Equal(t, "https://github.com/kampusdev", profile.NormalizeHandle("https://github.com/kampusdev"))
}

func TestSaveDedupesSkills(t *testing.T) {
	gw := &fakeGateway{
		updateProfile: func(patch domain.ProfilePatch) (domain.Profile, error) {
			p := serverProfile()
			p.Skills = patch.Skills
			return p, nil
		},
	}
	svc := profile.NewService(gw, newMemCache(), "")

	echo, warning, err := svc.Save(context.Background(), domain.ProfilePatch{
		Skills: []string{"Go", " Go ", "React", "Go", "SQL"},
	})
	require.NoError(t, err)
	assert.Nil(t, warning)
	assert.Equal(t, []string{"Go", "React", "SQL"}, echo.Skills)
}
