package events

import (
	"time"
)

// Contratos de integración entre contextos. No son entidades del dominio.

type PostCreated struct {
	ID        int64     `json:"id"`
	AuthorID  int64     `json:"authorId"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"createdAt"`
}

type PostUpdated struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type PostDeleted struct {
	ID int64 `json:"id"`
}

type CommentCreated struct {
	ID       int64  `json:"id"`
	PostID   int64  `json:"postId"`
	AuthorID int64  `json:"authorId"`
	Comment  string `json:"comment"`
}

type CommentUpdated struct {
	ID      int64  `json:"id"`
	PostID  int64  `json:"postId"`
	Comment string `json:"comment"`
}

type CommentDeleted struct {
	ID     int64 `json:"id"`
	PostID int64 `json:"postId"`
}

type ChatCreated struct {
	ID      int64   `json:"id"`
	UserIDs []int64 `json:"userIds"`
}

type MessageSent struct {
	ID       int64  `json:"id"`
	ChatID   int64  `json:"chatId"`
	AuthorID int64  `json:"authorId"`
	Message  string `json:"message"`
}

type UserCreated struct {
	ID       int64  `json:"id"`
	Nickname string `json:"nickname"`
	Email    string `json:"email"`
}

type FollowRequested struct {
	FollowerID int64 `json:"followerId"`
	FolloweeID int64 `json:"followeeId"`
}

type FollowConfirmed struct {
	FollowerID int64 `json:"followerId"`
	FolloweeID int64 `json:"followeeId"`
}

type FollowDeleted struct {
	FollowerID int64 `json:"followerId"`
	FolloweeID int64 `json:"followeeId"`
}
