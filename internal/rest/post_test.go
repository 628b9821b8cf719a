package rest_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kampusapp/kampus-sync/domain"
	"github.com/kampusapp/kampus-sync/internal/rest"
	"github.com/kampusapp/kampus-sync/internal/store"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// fakeEngine scripts the interaction engine per call.
type fakeEngine struct {
	toggleLike    func(kind domain.ObjectKind, id string) (bool, error)
	createComment func(kind domain.ObjectKind, parentID, content string) (domain.Comment, error)
	createPost    func(content string, images []string) (domain.Post, error)
	createProject func(draft domain.ProjectDraft) (domain.Project, error)
	toggleMember  func(projectID, memberID string) error
}

func (f *fakeEngine) ToggleLike(ctx context.Context, kind domain.ObjectKind, id string) (bool, error) {
	if f.toggleLike != nil {
		return f.toggleLike(kind, id)
	}
	return false, nil
}

func (f *fakeEngine) CreateComment(ctx context.Context, kind domain.ObjectKind, parentID, content string) (domain.Comment, error) {
	if f.createComment != nil {
		return f.createComment(kind, parentID, content)
	}
	return domain.Comment{}, nil
}

func (f *fakeEngine) CreatePost(ctx context.Context, content string, images []string) (domain.Post, error) {
	if f.createPost != nil {
		return f.createPost(content, images)
	}
	return domain.Post{}, nil
}

func (f *fakeEngine) CreateProject(ctx context.Context, draft domain.ProjectDraft) (domain.Project, error) {
	if f.createProject != nil {
		return f.createProject(draft)
	}
	return domain.Project{}, nil
}

func (f *fakeEngine) ToggleMember(ctx context.Context, projectID, memberID string) error {
	if f.toggleMember != nil {
		return f.toggleMember(projectID, memberID)
	}
	return nil
}

// fakeSession records page loads and lets a test merge posts into the store
// the way the real session usecase would.
type fakeSession struct {
	loadPage func(page int) error

	pages []int
}

func (f *fakeSession) SetToken(ctx context.Context, token string) error { return nil }
func (f *fakeSession) Bootstrap(ctx context.Context) error              { return nil }
func (f *fakeSession) Refresh(ctx context.Context) error                { return nil }
func (f *fakeSession) Logout(ctx context.Context) error                 { return nil }

func (f *fakeSession) LoadPage(ctx context.Context, page int) error {
	f.pages = append(f.pages, page)
	if f.loadPage != nil {
		return f.loadPage(page)
	}
	return nil
}

func postRouter(engine domain.InteractionUsecase, st domain.EntityStore, session domain.SessionUsecase) *gin.Engine {
	r := gin.New()
	h := rest.NewPostHandler(engine, st, session)
	r.GET("/posts", h.Feed)
	r.GET("/posts/:id", h.GetByID)
	r.POST("/posts", h.Create)
	r.POST("/posts/:id/like", h.Like)
	r.POST("/posts/:id/comments", h.CreateComment)
	return r
}

func TestFeedReflectsLikedSet(t *testing.T) {
	st := store.NewEntityStore()
	st.UpsertPost(domain.Post{ID: "p1", Likes: 3, CreatedAt: time.Now()})
	st.SetLiked(domain.KindPost, "p1", true)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/posts", nil)
	postRouter(&fakeEngine{}, st, &fakeSession{}).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body []struct {
		ID      string `json:"id"`
		Likes   int64  `json:"likes"`
		IsLiked bool   `json:"is_liked"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body, 1)
	assert.Equal(t, "p1", body[0].ID)
	assert.True(t, body[0].IsLiked)
}

func TestGetByIDUnknownPost(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/posts/ghost", nil)
	postRouter(&fakeEngine{}, store.NewEntityStore(), &fakeSession{}).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreatePostRequiresContent(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/posts", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	postRouter(&fakeEngine{}, store.NewEntityStore(), &fakeSession{}).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreatePostReturnsCreated(t *testing.T) {
	engine := &fakeEngine{
		createPost: func(content string, images []string) (domain.Post, error) {
			return domain.Post{ID: "server-p1", Content: content, CreatedAt: time.Now()}, nil
		},
	}
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/posts", strings.NewReader(`{"content": "merhaba"}`))
	req.Header.Set("Content-Type", "application/json")
	postRouter(engine, store.NewEntityStore(), &fakeSession{}).ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	var body struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "server-p1", body.ID)
}

func TestLikeMapsErrorTaxonomy(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
	}{
		{"transport", &domain.TransportError{Op: "toggle like", Err: errors.New("timeout")}, http.StatusBadGateway},
		{"server verdict keeps status", &domain.ServerError{Op: "toggle like", Status: http.StatusGone}, http.StatusGone},
		{"unknown object", domain.ErrNotFound, http.StatusNotFound},
		{"no session", domain.ErrNoSession, http.StatusUnauthorized},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			engine := &fakeEngine{
				toggleLike: func(kind domain.ObjectKind, id string) (bool, error) { return false, tc.err },
			}
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/posts/p1/like", nil)
			postRouter(engine, store.NewEntityStore(), &fakeSession{}).ServeHTTP(rec, req)
			assert.Equal(t, tc.code, rec.Code)
		})
	}
}

func TestLikeReturnsNewFlag(t *testing.T) {
	engine := &fakeEngine{
		toggleLike: func(kind domain.ObjectKind, id string) (bool, error) {
			assert.Equal(t, domain.KindPost, kind)
			assert.Equal(t, "p1", id)
			return true, nil
		},
	}
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/posts/p1/like", nil)
	postRouter(engine, store.NewEntityStore(), &fakeSession{}).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"is_liked": true}`, rec.Body.String())
}

func TestCreateCommentMarksPending(t *testing.T) {
	engine := &fakeEngine{
		createComment: func(kind domain.ObjectKind, parentID, content string) (domain.Comment, error) {
			return domain.Comment{ID: "c1", Content: content, CreatedAt: time.Now()}, nil
		},
	}
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/posts/p1/comments", strings.NewReader(`{"content": "selam"}`))
	req.Header.Set("Content-Type", "application/json")
	postRouter(engine, store.NewEntityStore(), &fakeSession{}).ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	var body struct {
		ID      string `json:"id"`
		Content string `json:"content"`
		Pending bool   `json:"pending"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "c1", body.ID)
	assert.False(t, body.Pending, "settled comments are not pending")
}

func TestFeedMergesRequestedPage(t *testing.T) {
	st := store.NewEntityStore()
	now := time.Now()
	st.UpsertPost(domain.Post{ID: "p1", CreatedAt: now})

	session := &fakeSession{
		loadPage: func(page int) error {
			st.ReplaceAllPosts([]domain.Post{{ID: "p2", CreatedAt: now.Add(-time.Minute)}})
			return nil
		},
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/posts?page=2", nil)
	postRouter(&fakeEngine{}, st, session).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []int{2}, session.pages)

	var body []struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body, 2, "page-one items survive the merge")
	assert.Equal(t, "p1", body[0].ID)
	assert.Equal(t, "p2", body[1].ID)
}

func TestFeedFirstPageServedFromHeldState(t *testing.T) {
	st := store.NewEntityStore()
	st.UpsertPost(domain.Post{ID: "p1", CreatedAt: time.Now()})
	session := &fakeSession{}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/posts?page=1", nil)
	postRouter(&fakeEngine{}, st, session).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, session.pages, "page one is already held from bootstrap")
}

func TestFeedRejectsBadPage(t *testing.T) {
	for _, page := range []string{"0", "-1", "abc"} {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/posts?page="+page, nil)
		postRouter(&fakeEngine{}, store.NewEntityStore(), &fakeSession{}).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "page=%s", page)
	}
}

func TestFeedPageLoadFailurePropagates(t *testing.T) {
	session := &fakeSession{
		loadPage: func(page int) error {
			return &domain.TransportError{Op: "fetch posts", Err: errors.New("connection refused")}
		},
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/posts?page=2", nil)
	postRouter(&fakeEngine{}, store.NewEntityStore(), session).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
}
