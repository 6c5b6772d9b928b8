package http

import "github.com/gin-gonic/gin"

// RegisterCommentRoutes registra las rutas de comentarios bajo su post.
func RegisterCommentRoutes(r gin.IRouter, handler *CommentHandler) {
	comments := r.Group("/posts/:postId/comments")
	{
		comments.POST("", handler.CreateComment)
		comments.GET("", handler.ListComments)
		comments.GET("/:commentId", handler.GetComment)
		comments.PATCH("/:commentId", handler.UpdateComment)
		comments.DELETE("/:commentId", handler.DeleteComment)
	}
}
