package domain

import (
	"context"
	"errors"
	"fmt"

	sharedDomain "github.com/davicafu/hexasocial/shared/domain"
	"github.com/davicafu/hexasocial/shared/platform/query"
)

// ---------- Errores de dominio ----------
var (
	ErrUserNotFound           = errors.New("user not found")
	ErrUserAlreadyExists      = errors.New("user already exists")
	ErrInvalidUser            = errors.New("invalid user")
	ErrInvalidFollow          = errors.New("invalid follow")
	ErrSelfFollow             = errors.New("a user cannot follow themselves")
	ErrFollowNotFound         = errors.New("follow not found")
	ErrFollowAlreadyExists    = errors.New("follow already exists")
	ErrFollowAlreadyConfirmed = errors.New("follow already confirmed")
)

// ---------- Interfaces (Ports) ----------

// UserRepository define las operaciones persistentes para User.
type UserRepository interface {
	query.RowStore[*User]

	// Debe devolver ErrUserAlreadyExists si nickname o email ya existen.
	Create(ctx context.Context, u *User, newEvent sharedDomain.OutboxFactory[*User]) error

	// Debe devolver ErrUserNotFound si no existe.
	GetByID(ctx context.Context, id int64) (*User, error)
}

// FollowRepository guarda las relaciones y mantiene los contadores de User.
type FollowRepository interface {
	query.RowStore[*Follow]

	// Debe devolver ErrFollowAlreadyExists si la relación ya existe.
	Create(ctx context.Context, f *Follow, evt sharedDomain.OutboxEvent) error

	// Debe devolver ErrFollowNotFound si no existe.
	Get(ctx context.Context, followerID, followeeID int64) (*Follow, error)

	// Confirm marca la relación y suma uno a followerCount del followee y a
	// followeeCount del follower en la misma transacción.
	Confirm(ctx context.Context, f *Follow, evt sharedDomain.OutboxEvent) error

	// Delete borra la relación; si estaba confirmada resta los contadores.
	Delete(ctx context.Context, f *Follow, evt sharedDomain.OutboxEvent) error
}

// ---------- Helpers comunes (cache keys, etc.) ----------

// CacheKeyByID forma una key consistente para cache usando ID.
func CacheKeyByID(id int64) string {
	return fmt.Sprintf("user:id:%d", id)
}

// FolloweeScope acota el listado de follows a los seguidores de un usuario.
func FolloweeScope(userID int64) sharedDomain.Criteria {
	return sharedDomain.FieldEquals{Field: "followeeId", Value: userID}
}

// ConfirmedOnly deja fuera las solicitudes pendientes.
func ConfirmedOnly() sharedDomain.Criteria {
	return sharedDomain.FieldEquals{Field: "isConfirmed", Value: true}
}
