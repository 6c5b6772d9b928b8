package domain

import (
	"net/mail"
	"strconv"
	"strings"
	"time"

	sharedBus "github.com/davicafu/hexasocial/shared/platform/bus"
)

// User representa un usuario de la red.
type User struct {
	ID            int64     `json:"id"`
	Nickname      string    `json:"nickname"`
	Email         string    `json:"email"`
	FollowerCount int64     `json:"followerCount"`
	FolloweeCount int64     `json:"followeeCount"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// NewUser valida nickname y email. El email se guarda en minúsculas.
func NewUser(nickname, email string) (*User, error) {
	nickname = strings.TrimSpace(nickname)
	email = strings.ToLower(strings.TrimSpace(email))
	if nickname == "" {
		return nil, ErrInvalidUser
	}
	if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email {
		return nil, ErrInvalidUser
	}
	now := time.Now().UTC()
	return &User{Nickname: nickname, Email: email, CreatedAt: now, UpdatedAt: now}, nil
}

func (u *User) PartitionKey() string {
	return strconv.FormatInt(u.ID, 10)
}

// FieldValue implementa query.Row.
func (u *User) FieldValue(field string) (interface{}, bool) {
	switch field {
	case "id":
		return u.ID, true
	case "nickname":
		return u.Nickname, true
	case "email":
		return u.Email, true
	case "followerCount":
		return u.FollowerCount, true
	case "followeeCount":
		return u.FolloweeCount, true
	case "createdAt":
		return u.CreatedAt, true
	case "updatedAt":
		return u.UpdatedAt, true
	}
	return nil, false
}

// Verificación estática para asegurar que User implementa la interfaz
var _ sharedBus.Keyer = (*User)(nil)
