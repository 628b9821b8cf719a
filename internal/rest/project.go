package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kampusapp/kampus-sync/domain"
	"github.com/kampusapp/kampus-sync/internal/rest/request"
	"github.com/kampusapp/kampus-sync/internal/rest/response"
)

// ProjectHandler represent the httphandler for projects
type ProjectHandler struct {
	Engine domain.InteractionUsecase
	Store  domain.EntityStore
}

func NewProjectHandler(engine domain.InteractionUsecase, store domain.EntityStore) *ProjectHandler {
	return &ProjectHandler{
		Engine: engine,
		Store:  store,
	}
}

func (h *ProjectHandler) List(c *gin.Context) {
	projects := h.Store.Projects()
	res := make([]response.Project, len(projects))
	for i := range projects {
		res[i] = response.NewProjectFromDomain(&projects[i], h.Store.IsLiked(domain.KindProject, projects[i].ID))
	}
	c.JSON(http.StatusOK, res)
}

func (h *ProjectHandler) GetByID(c *gin.Context) {
	id := c.Param("id")
	project, ok := h.Store.Project(id)
	if !ok {
		c.JSON(http.StatusNotFound, ResponseError{Message: domain.ErrNotFound.Error()})
		return
	}
	c.JSON(http.StatusOK, response.NewProjectFromDomain(&project, h.Store.IsLiked(domain.KindProject, id)))
}

func (h *ProjectHandler) Create(c *gin.Context) {
	var req request.CreateProject
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		return
	}

	project, err := h.Engine.CreateProject(c.Request.Context(), req.ToDomain())
	if err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}
	c.JSON(http.StatusCreated, response.NewProjectFromDomain(&project, false))
}

func (h *ProjectHandler) Like(c *gin.Context) {
	id := c.Param("id")
	liked, err := h.Engine.ToggleLike(c.Request.Context(), domain.KindProject, id)
	if err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"is_liked": liked})
}

func (h *ProjectHandler) CreateComment(c *gin.Context) {
	var req request.CreateComment
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		return
	}

	comment, err := h.Engine.CreateComment(c.Request.Context(), domain.KindProject, c.Param("id"), req.Content)
	if err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}
	c.JSON(http.StatusCreated, response.NewCommentFromDomain(&comment))
}

// ToggleMember adds or removes a member; both directions go through the
// same intent.
func (h *ProjectHandler) ToggleMember(c *gin.Context) {
	var req request.ToggleMember
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		return
	}

	id := c.Param("id")
	if err := h.Engine.ToggleMember(c.Request.Context(), id, req.MemberID); err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}
	project, ok := h.Store.Project(id)
	if !ok {
		c.JSON(http.StatusNotFound, ResponseError{Message: domain.ErrNotFound.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"members": project.Members})
}
