package domain

import (
	"sort"
	"strings"
	"time"
)

// Chat es una sala con un conjunto de usuarios.
type Chat struct {
	ID        int64     `json:"id"`
	UserIDs   []int64   `json:"userIds"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewChat deduplica y ordena los usuarios. Una sala necesita al menos dos.
func NewChat(userIDs []int64) (*Chat, error) {
	seen := make(map[int64]struct{}, len(userIDs))
	ids := make([]int64, 0, len(userIDs))
	for _, id := range userIDs {
		if id <= 0 {
			return nil, ErrInvalidChat
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	if len(ids) < 2 {
		return nil, ErrInvalidChat
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	now := time.Now().UTC()
	return &Chat{UserIDs: ids, CreatedAt: now, UpdatedAt: now}, nil
}

// HasMember indica si el usuario pertenece a la sala.
func (c *Chat) HasMember(userID int64) bool {
	for _, id := range c.UserIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// FieldValue implementa query.Row.
func (c *Chat) FieldValue(field string) (interface{}, bool) {
	switch field {
	case "id":
		return c.ID, true
	case "createdAt":
		return c.CreatedAt, true
	case "updatedAt":
		return c.UpdatedAt, true
	}
	return nil, false
}

type Message struct {
	ID        int64     `json:"id"`
	ChatID    int64     `json:"chatId"`
	AuthorID  int64     `json:"authorId"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func NewMessage(chatID, authorID int64, text string) (*Message, error) {
	if chatID <= 0 || authorID <= 0 || strings.TrimSpace(text) == "" {
		return nil, ErrInvalidMessage
	}
	now := time.Now().UTC()
	return &Message{ChatID: chatID, AuthorID: authorID, Message: text, CreatedAt: now, UpdatedAt: now}, nil
}

// FieldValue implementa query.Row.
func (m *Message) FieldValue(field string) (interface{}, bool) {
	switch field {
	case "id":
		return m.ID, true
	case "chatId":
		return m.ChatID, true
	case "authorId":
		return m.AuthorID, true
	case "message":
		return m.Message, true
	case "createdAt":
		return m.CreatedAt, true
	case "updatedAt":
		return m.UpdatedAt, true
	}
	return nil, false
}
