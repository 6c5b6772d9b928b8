package http

import "github.com/gin-gonic/gin"

// RegisterChatRoutes registra las rutas de salas y de sus mensajes.
func RegisterChatRoutes(r gin.IRouter, handler *ChatHandler) {
	chats := r.Group("/chats")
	{
		chats.POST("", handler.CreateChat)
		chats.GET("", handler.ListChats)
		chats.GET("/:chatId", handler.GetChat)
		chats.POST("/:chatId/messages", handler.SendMessage)
		chats.GET("/:chatId/messages", handler.ListMessages)
	}
}
