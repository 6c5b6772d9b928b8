package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/davicafu/hexasocial/internal/post/application"
	postDomain "github.com/davicafu/hexasocial/internal/post/domain"
	"github.com/davicafu/hexasocial/pkg/utils"
)

// PostHandler encapsula los endpoints HTTP de Post.
type PostHandler struct {
	service       *application.PostService
	publicBaseURL string
}

// NewPostHandler crea un PostHandler. publicBaseURL es la base de los enlaces next.
func NewPostHandler(service *application.PostService, publicBaseURL string) *PostHandler {
	return &PostHandler{service: service, publicBaseURL: publicBaseURL}
}

func sendPostError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, postDomain.ErrPostNotFound):
		utils.SendNotFound(c, "post not found")
	case errors.Is(err, postDomain.ErrInvalidPost), errors.Is(err, postDomain.ErrInvalidTrendWindow):
		utils.SendBadRequest(c, err.Error())
	case errors.Is(err, postDomain.ErrAnalyticsDisabled):
		utils.SendError(c, http.StatusServiceUnavailable, err.Error())
	default:
		utils.SendInternalServerError(c, err.Error())
	}
}

// CreatePost endpoint POST /posts
func (h *PostHandler) CreatePost(c *gin.Context) {
	var req struct {
		AuthorID int64  `json:"authorId" binding:"required"`
		Title    string `json:"title" binding:"required"`
		Content  string `json:"content" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendBadRequest(c, err.Error())
		return
	}

	post, err := h.service.CreatePost(c.Request.Context(), req.AuthorID, req.Title, req.Content)
	if err != nil {
		sendPostError(c, err)
		return
	}

	c.JSON(http.StatusCreated, post)
}

// GeneratePosts endpoint POST /posts/random
func (h *PostHandler) GeneratePosts(c *gin.Context) {
	var req struct {
		AuthorID int64 `json:"authorId" binding:"required"`
		Count    int   `json:"count"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendBadRequest(c, err.Error())
		return
	}
	if req.Count == 0 {
		req.Count = 100
	}

	posts, err := h.service.GeneratePosts(c.Request.Context(), req.AuthorID, req.Count)
	if err != nil {
		sendPostError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"count": len(posts)})
}

// GetPost endpoint GET /posts/:postId
func (h *PostHandler) GetPost(c *gin.Context) {
	id, ok := utils.ParamID(c, "postId")
	if !ok {
		return
	}

	post, err := h.service.GetPostByID(c.Request.Context(), id)
	if err != nil {
		sendPostError(c, err)
		return
	}

	c.JSON(http.StatusOK, post)
}

// UpdatePost endpoint PATCH /posts/:postId
func (h *PostHandler) UpdatePost(c *gin.Context) {
	id, ok := utils.ParamID(c, "postId")
	if !ok {
		return
	}

	// Punteros para que los campos sean opcionales en el JSON
	var req struct {
		Title   *string `json:"title,omitempty"`
		Content *string `json:"content,omitempty"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendBadRequest(c, err.Error())
		return
	}

	post, err := h.service.UpdatePost(c.Request.Context(), id, req.Title, req.Content)
	if err != nil {
		sendPostError(c, err)
		return
	}

	c.JSON(http.StatusOK, post)
}

// DeletePost endpoint DELETE /posts/:postId
func (h *PostHandler) DeletePost(c *gin.Context) {
	id, ok := utils.ParamID(c, "postId")
	if !ok {
		return
	}

	if err := h.service.DeletePost(c.Request.Context(), id); err != nil {
		sendPostError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ListPosts endpoint GET /posts con filtros where__, orden order__ y paginación.
func (h *PostHandler) ListPosts(c *gin.Context) {
	result, err := h.service.ListPosts(c.Request.Context(), utils.ListParams(c), utils.LinkBase(c, h.publicBaseURL))
	if err != nil {
		utils.SendListError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// DailyTrend endpoint GET /posts/trend?days=N
func (h *PostHandler) DailyTrend(c *gin.Context) {
	days, err := strconv.Atoi(c.DefaultQuery("days", "7"))
	if err != nil {
		utils.SendBadRequest(c, "days must be an integer")
		return
	}

	trend, err := h.service.DailyTrend(c.Request.Context(), days)
	if err != nil {
		sendPostError(c, err)
		return
	}

	utils.SendSuccess(c, http.StatusOK, trend)
}
