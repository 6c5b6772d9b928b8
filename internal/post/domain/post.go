package domain

import (
	"strings"
	"time"
)

type Post struct {
	ID           int64     `json:"id"`
	AuthorID     int64     `json:"authorId"`
	Title        string    `json:"title"`
	Content      string    `json:"content"`
	LikeCount    int64     `json:"likeCount"`
	CommentCount int64     `json:"commentCount"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// NewPost valida y construye un post sin id.
func NewPost(authorID int64, title, content string) (*Post, error) {
	title = strings.TrimSpace(title)
	if authorID <= 0 || title == "" || strings.TrimSpace(content) == "" {
		return nil, ErrInvalidPost
	}
	now := time.Now().UTC()
	return &Post{
		AuthorID:  authorID,
		Title:     title,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Update aplica los campos presentes. Un título vacío no es válido.
func (p *Post) Update(title, content *string) error {
	if title != nil {
		t := strings.TrimSpace(*title)
		if t == "" {
			return ErrInvalidPost
		}
		p.Title = t
	}
	if content != nil {
		if strings.TrimSpace(*content) == "" {
			return ErrInvalidPost
		}
		p.Content = *content
	}
	p.UpdatedAt = time.Now().UTC()
	return nil
}

// FieldValue implementa query.Row.
func (p *Post) FieldValue(field string) (interface{}, bool) {
	switch field {
	case "id":
		return p.ID, true
	case "authorId":
		return p.AuthorID, true
	case "title":
		return p.Title, true
	case "content":
		return p.Content, true
	case "likeCount":
		return p.LikeCount, true
	case "commentCount":
		return p.CommentCount, true
	case "createdAt":
		return p.CreatedAt, true
	case "updatedAt":
		return p.UpdatedAt, true
	}
	return nil, false
}
