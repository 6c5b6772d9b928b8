package events

// Tipos de evento publicados en el bus.
const (
	TypePostCreated = "post.created"
	TypePostUpdated = "post.updated"
	TypePostDeleted = "post.deleted"

	TypeCommentCreated = "comment.created"
	TypeCommentUpdated = "comment.updated"
	TypeCommentDeleted = "comment.deleted"

	TypeChatCreated = "chat.created"
	TypeMessageSent = "message.sent"

	TypeUserCreated     = "user.created"
	TypeFollowRequested = "follow.requested"
	TypeFollowConfirmed = "follow.confirmed"
	TypeFollowDeleted   = "follow.deleted"
)
