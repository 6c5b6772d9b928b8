package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/davicafu/hexasocial/internal/chat/application"
	chatDomain "github.com/davicafu/hexasocial/internal/chat/domain"
	"github.com/davicafu/hexasocial/pkg/utils"
)

type ChatHandler struct {
	service       *application.ChatService
	publicBaseURL string
}

func NewChatHandler(service *application.ChatService, publicBaseURL string) *ChatHandler {
	return &ChatHandler{service: service, publicBaseURL: publicBaseURL}
}

func sendChatError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, chatDomain.ErrChatNotFound):
		utils.SendNotFound(c, "chat not found")
	case errors.Is(err, chatDomain.ErrNotChatMember):
		utils.SendError(c, http.StatusForbidden, err.Error())
	case errors.Is(err, chatDomain.ErrInvalidChat), errors.Is(err, chatDomain.ErrInvalidMessage):
		utils.SendBadRequest(c, err.Error())
	default:
		utils.SendListError(c, err)
	}
}

type createChatRequest struct {
	UserIDs []int64 `json:"userIds" binding:"required"`
}

type sendMessageRequest struct {
	AuthorID int64  `json:"authorId" binding:"required"`
	Message  string `json:"message" binding:"required"`
}

// CreateChat endpoint POST /chats
func (h *ChatHandler) CreateChat(c *gin.Context) {
	var req createChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendBadRequest(c, err.Error())
		return
	}

	chat, err := h.service.CreateChat(c.Request.Context(), req.UserIDs)
	if err != nil {
		sendChatError(c, err)
		return
	}

	c.JSON(http.StatusCreated, chat)
}

// ListChats endpoint GET /chats
func (h *ChatHandler) ListChats(c *gin.Context) {
	result, err := h.service.ListChats(c.Request.Context(), utils.ListParams(c), utils.LinkBase(c, h.publicBaseURL))
	if err != nil {
		sendChatError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetChat endpoint GET /chats/:chatId
func (h *ChatHandler) GetChat(c *gin.Context) {
	id, ok := utils.ParamID(c, "chatId")
	if !ok {
		return
	}

	chat, err := h.service.GetChat(c.Request.Context(), id)
	if err != nil {
		sendChatError(c, err)
		return
	}
	c.JSON(http.StatusOK, chat)
}

// SendMessage endpoint POST /chats/:chatId/messages
func (h *ChatHandler) SendMessage(c *gin.Context) {
	chatID, ok := utils.ParamID(c, "chatId")
	if !ok {
		return
	}
	var req sendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendBadRequest(c, err.Error())
		return
	}

	msg, err := h.service.SendMessage(c.Request.Context(), chatID, req.AuthorID, req.Message)
	if err != nil {
		sendChatError(c, err)
		return
	}
	c.JSON(http.StatusCreated, msg)
}

// ListMessages endpoint GET /chats/:chatId/messages
func (h *ChatHandler) ListMessages(c *gin.Context) {
	chatID, ok := utils.ParamID(c, "chatId")
	if !ok {
		return
	}

	result, err := h.service.ListMessages(c.Request.Context(), chatID, utils.ListParams(c), utils.LinkBase(c, h.publicBaseURL))
	if err != nil {
		sendChatError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
