package http

import "github.com/gin-gonic/gin"

func RegisterUserRoutes(r gin.IRouter, handler *UserHandler) {
	users := r.Group("/users")
	{
		users.POST("", handler.CreateUser)
		users.GET("", handler.ListUsers)
		users.GET("/:userId", handler.GetUser)
		users.GET("/:userId/followers", handler.ListFollowers)
		users.PATCH("/:userId/followers/:targetId/confirm", handler.ConfirmFollow)
		users.POST("/:userId/following/:targetId", handler.Follow)
		users.DELETE("/:userId/following/:targetId", handler.Unfollow)
	}
}
