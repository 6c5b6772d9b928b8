package domain

import (
	"strings"
	"time"
)

type Comment struct {
	ID        int64     `json:"id"`
	PostID    int64     `json:"postId"`
	AuthorID  int64     `json:"authorId"`
	Comment   string    `json:"comment"`
	LikeCount int64     `json:"likeCount"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewComment valida y construye un comentario sin id.
func NewComment(postID, authorID int64, text string) (*Comment, error) {
	text = strings.TrimSpace(text)
	if postID <= 0 || authorID <= 0 || text == "" {
		return nil, ErrInvalidComment
	}
	now := time.Now().UTC()
	return &Comment{
		PostID:    postID,
		AuthorID:  authorID,
		Comment:   text,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

func (c *Comment) Edit(text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return ErrInvalidComment
	}
	c.Comment = text
	c.UpdatedAt = time.Now().UTC()
	return nil
}

// FieldValue implementa query.Row.
func (c *Comment) FieldValue(field string) (interface{}, bool) {
	switch field {
	case "id":
		return c.ID, true
	case "postId":
		return c.PostID, true
	case "authorId":
		return c.AuthorID, true
	case "comment":
		return c.Comment, true
	case "likeCount":
		return c.LikeCount, true
	case "createdAt":
		return c.CreatedAt, true
	case "updatedAt":
		return c.UpdatedAt, true
	}
	return nil, false
}
