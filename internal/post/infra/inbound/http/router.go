package http

import "github.com/gin-gonic/gin"

// RegisterPostRoutes registra las rutas HTTP del dominio de Posts.
func RegisterPostRoutes(r gin.IRouter, handler *PostHandler) {
	posts := r.Group("/posts")
	{
		posts.POST("", handler.CreatePost)
		posts.POST("/random", handler.GeneratePosts)
		posts.GET("", handler.ListPosts)
		posts.GET("/trend", handler.DailyTrend)
		posts.GET("/:postId", handler.GetPost)
		posts.PATCH("/:postId", handler.UpdatePost)
		posts.DELETE("/:postId", handler.DeletePost)
	}
}
