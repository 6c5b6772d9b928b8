package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/davicafu/hexasocial/internal/user/application"
	userDomain "github.com/davicafu/hexasocial/internal/user/domain"
	"github.com/davicafu/hexasocial/pkg/utils"
)

// UserHandler encapsula los endpoints HTTP de usuarios y follows
type UserHandler struct {
	service       *application.UserService
	publicBaseURL string
}

// NewUserHandler crea un nuevo UserHandler
func NewUserHandler(service *application.UserService, publicBaseURL string) *UserHandler {
	return &UserHandler{service: service, publicBaseURL: publicBaseURL}
}

func sendUserError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, userDomain.ErrUserNotFound):
		utils.SendNotFound(c, "user not found")
	case errors.Is(err, userDomain.ErrFollowNotFound):
		utils.SendNotFound(c, "follow not found")
	case errors.Is(err, userDomain.ErrUserAlreadyExists),
		errors.Is(err, userDomain.ErrFollowAlreadyExists),
		errors.Is(err, userDomain.ErrFollowAlreadyConfirmed):
		utils.SendConflict(c, err.Error())
	case errors.Is(err, userDomain.ErrInvalidUser),
		errors.Is(err, userDomain.ErrInvalidFollow),
		errors.Is(err, userDomain.ErrSelfFollow):
		utils.SendBadRequest(c, err.Error())
	default:
		utils.SendListError(c, err)
	}
}

// ---------------- Handlers ----------------

// CreateUser endpoint POST /users
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req struct {
		Nickname string `json:"nickname" binding:"required"`
		Email    string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendBadRequest(c, err.Error())
		return
	}

	user, err := h.service.CreateUser(c.Request.Context(), req.Nickname, req.Email)
	if err != nil {
		sendUserError(c, err)
		return
	}

	c.JSON(http.StatusCreated, user)
}

// GetUser endpoint GET /users/:userId
func (h *UserHandler) GetUser(c *gin.Context) {
	id, ok := utils.ParamID(c, "userId")
	if !ok {
		return
	}

	user, err := h.service.GetUser(c.Request.Context(), id)
	if err != nil {
		sendUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// ListUsers endpoint GET /users
func (h *UserHandler) ListUsers(c *gin.Context) {
	result, err := h.service.ListUsers(c.Request.Context(), utils.ListParams(c), utils.LinkBase(c, h.publicBaseURL))
	if err != nil {
		sendUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// ListFollowers endpoint GET /users/:userId/followers?includeNotConfirmed=true
func (h *UserHandler) ListFollowers(c *gin.Context) {
	id, ok := utils.ParamID(c, "userId")
	if !ok {
		return
	}
	includeNotConfirmed := false
	if raw := c.Query("includeNotConfirmed"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			utils.SendBadRequest(c, "invalid includeNotConfirmed")
			return
		}
		includeNotConfirmed = v
	}

	result, err := h.service.ListFollowers(c.Request.Context(), id, includeNotConfirmed,
		utils.ListParams(c), utils.LinkBase(c, h.publicBaseURL))
	if err != nil {
		sendUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// Follow endpoint POST /users/:userId/following/:targetId
func (h *UserHandler) Follow(c *gin.Context) {
	followerID, ok := utils.ParamID(c, "userId")
	if !ok {
		return
	}
	followeeID, ok := utils.ParamID(c, "targetId")
	if !ok {
		return
	}

	follow, err := h.service.Follow(c.Request.Context(), followerID, followeeID)
	if err != nil {
		sendUserError(c, err)
		return
	}

	c.JSON(http.StatusCreated, follow)
}

// Unfollow endpoint DELETE /users/:userId/following/:targetId
func (h *UserHandler) Unfollow(c *gin.Context) {
	followerID, ok := utils.ParamID(c, "userId")
	if !ok {
		return
	}
	followeeID, ok := utils.ParamID(c, "targetId")
	if !ok {
		return
	}

	if err := h.service.DeleteFollow(c.Request.Context(), followerID, followeeID); err != nil {
		sendUserError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ConfirmFollow endpoint PATCH /users/:userId/followers/:targetId/confirm
// userId es quien recibe la solicitud y targetId quien la envió.
func (h *UserHandler) ConfirmFollow(c *gin.Context) {
	followeeID, ok := utils.ParamID(c, "userId")
	if !ok {
		return
	}
	followerID, ok := utils.ParamID(c, "targetId")
	if !ok {
		return
	}

	follow, err := h.service.ConfirmFollow(c.Request.Context(), followerID, followeeID)
	if err != nil {
		sendUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, follow)
}
