package rest

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/kampusapp/kampus-sync/domain"
	"github.com/kampusapp/kampus-sync/internal/rest/request"
	"github.com/kampusapp/kampus-sync/internal/rest/response"
)

// PostHandler represent the httphandler for the feed
type PostHandler struct {
	Engine  domain.InteractionUsecase
	Store   domain.EntityStore
	Session domain.SessionUsecase
}

func NewPostHandler(engine domain.InteractionUsecase, store domain.EntityStore, session domain.SessionUsecase) *PostHandler {
	return &PostHandler{
		Engine:  engine,
		Store:   store,
		Session: session,
	}
}

// Feed returns the held feed in feed order. A ?page=N beyond the first merges
// that page from the server before serving; page 1 is already held from
// bootstrap.
func (h *PostHandler) Feed(c *gin.Context) {
	if raw := c.Query("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 1 {
			c.JSON(http.StatusBadRequest, ResponseError{Message: domain.ErrBadParamInput.Error()})
			return
		}
		if page > 1 {
			if err := h.Session.LoadPage(c.Request.Context(), page); err != nil {
				c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
				return
			}
		}
	}

	posts := h.Store.Feed()
	res := make([]response.Post, len(posts))
	for i := range posts {
		res[i] = response.NewPostFromDomain(&posts[i], h.Store.IsLiked(domain.KindPost, posts[i].ID))
	}
	c.JSON(http.StatusOK, res)
}

// GetByID will get a post by given id
func (h *PostHandler) GetByID(c *gin.Context) {
	id := c.Param("id")
	post, ok := h.Store.Post(id)
	if !ok {
		c.JSON(http.StatusNotFound, ResponseError{Message: domain.ErrNotFound.Error()})
		return
	}
	c.JSON(http.StatusOK, response.NewPostFromDomain(&post, h.Store.IsLiked(domain.KindPost, id)))
}

// Create publishes a post optimistically.
func (h *PostHandler) Create(c *gin.Context) {
	var req request.CreatePost
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		return
	}

	post, err := h.Engine.CreatePost(c.Request.Context(), req.Content, req.Images)
	if err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}
	c.JSON(http.StatusCreated, response.NewPostFromDomain(&post, h.Store.IsLiked(domain.KindPost, post.ID)))
}

// Like toggles the liked-by-me flag on a post.
func (h *PostHandler) Like(c *gin.Context) {
	id := c.Param("id")
	liked, err := h.Engine.ToggleLike(c.Request.Context(), domain.KindPost, id)
	if err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"is_liked": liked})
}

// CreateComment appends a comment to a post.
func (h *PostHandler) CreateComment(c *gin.Context) {
	var req request.CreateComment
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		return
	}

	comment, err := h.Engine.CreateComment(c.Request.Context(), domain.KindPost, c.Param("id"), req.Content)
	if err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}
	c.JSON(http.StatusCreated, response.NewCommentFromDomain(&comment))
}
