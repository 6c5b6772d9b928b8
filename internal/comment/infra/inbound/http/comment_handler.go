package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/davicafu/hexasocial/internal/comment/application"
	commentDomain "github.com/davicafu/hexasocial/internal/comment/domain"
	"github.com/davicafu/hexasocial/pkg/utils"
)

// CommentHandler encapsula los endpoints HTTP de comentarios.
type CommentHandler struct {
	service       *application.CommentService
	publicBaseURL string
}

func NewCommentHandler(service *application.CommentService, publicBaseURL string) *CommentHandler {
	return &CommentHandler{service: service, publicBaseURL: publicBaseURL}
}

func sendCommentError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, commentDomain.ErrPostNotFound):
		utils.SendNotFound(c, "post not found")
	case errors.Is(err, commentDomain.ErrCommentNotFound):
		utils.SendNotFound(c, "comment not found")
	case errors.Is(err, commentDomain.ErrInvalidComment):
		utils.SendBadRequest(c, err.Error())
	default:
		utils.SendListError(c, err)
	}
}

type commentRequest struct {
	AuthorID int64  `json:"authorId"`
	Comment  string `json:"comment" binding:"required"`
}

// CreateComment endpoint POST /posts/:postId/comments
func (h *CommentHandler) CreateComment(c *gin.Context) {
	postID, ok := utils.ParamID(c, "postId")
	if !ok {
		return
	}
	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendBadRequest(c, err.Error())
		return
	}

	comment, err := h.service.CreateComment(c.Request.Context(), postID, req.AuthorID, req.Comment)
	if err != nil {
		sendCommentError(c, err)
		return
	}

	c.JSON(http.StatusCreated, comment)
}

// ListComments endpoint GET /posts/:postId/comments
func (h *CommentHandler) ListComments(c *gin.Context) {
	postID, ok := utils.ParamID(c, "postId")
	if !ok {
		return
	}

	result, err := h.service.ListComments(c.Request.Context(), postID, utils.ListParams(c), utils.LinkBase(c, h.publicBaseURL))
	if err != nil {
		sendCommentError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetComment endpoint GET /posts/:postId/comments/:commentId
func (h *CommentHandler) GetComment(c *gin.Context) {
	postID, ok := utils.ParamID(c, "postId")
	if !ok {
		return
	}
	id, ok := utils.ParamID(c, "commentId")
	if !ok {
		return
	}

	comment, err := h.service.GetComment(c.Request.Context(), postID, id)
	if err != nil {
		sendCommentError(c, err)
		return
	}

	c.JSON(http.StatusOK, comment)
}

// UpdateComment endpoint PATCH /posts/:postId/comments/:commentId
func (h *CommentHandler) UpdateComment(c *gin.Context) {
	postID, ok := utils.ParamID(c, "postId")
	if !ok {
		return
	}
	id, ok := utils.ParamID(c, "commentId")
	if !ok {
		return
	}
	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendBadRequest(c, err.Error())
		return
	}

	comment, err := h.service.UpdateComment(c.Request.Context(), postID, id, req.Comment)
	if err != nil {
		sendCommentError(c, err)
		return
	}

	c.JSON(http.StatusOK, comment)
}

// DeleteComment endpoint DELETE /posts/:postId/comments/:commentId
func (h *CommentHandler) DeleteComment(c *gin.Context) {
	postID, ok := utils.ParamID(c, "postId")
	if !ok {
		return
	}
	id, ok := utils.ParamID(c, "commentId")
	if !ok {
		return
	}

	if err := h.service.DeleteComment(c.Request.Context(), postID, id); err != nil {
		sendCommentError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
