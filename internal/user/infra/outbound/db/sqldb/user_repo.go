package sqldb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/davicafu/hexasocial/internal/infra/db/relational"
	userDomain "github.com/davicafu/hexasocial/internal/user/domain"
	sharedDomain "github.com/davicafu/hexasocial/shared/domain"
	"github.com/davicafu/hexasocial/shared/persistence/sqlstore"
)

var userColumns = []string{"id", "nickname", "email", "follower_count", "followee_count", "created_at", "updated_at"}

// UserRepoSQL implementa UserRepository para SQLite y Postgres.
type UserRepoSQL struct {
	*sqlstore.Store[*userDomain.User]
	db      *sql.DB
	dialect sqlstore.Dialect
}

func NewUserRepoSQL(db *sql.DB, dialect sqlstore.Dialect) *UserRepoSQL {
	table := sqlstore.Table{Name: "users", Columns: userColumns, Fields: userDomain.UserFields, Dialect: dialect}
	return &UserRepoSQL{
		Store:   sqlstore.NewStore[*userDomain.User](db, table, scanUser),
		db:      db,
		dialect: dialect,
	}
}

func scanUser(s sqlstore.Scanner) (*userDomain.User, error) {
	var u userDomain.User
	if err := s.Scan(&u.ID, &u.Nickname, &u.Email, &u.FollowerCount, &u.FolloweeCount, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, err
	}
	u.CreatedAt = u.CreatedAt.UTC()
	u.UpdatedAt = u.UpdatedAt.UTC()
	return &u, nil
}

func (r *UserRepoSQL) Create(ctx context.Context, u *userDomain.User, newEvent sharedDomain.OutboxFactory[*userDomain.User]) error {
	return relational.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		err := tx.QueryRowContext(ctx, r.dialect.Rebind(
			`INSERT INTO users (nickname, email, follower_count, followee_count, created_at, updated_at)
			 VALUES (?, ?, 0, 0, ?, ?) RETURNING id`),
			r.dialect.Args(u.Nickname, u.Email, u.CreatedAt, u.UpdatedAt)...,
		).Scan(&u.ID)
		if relational.IsUniqueViolation(err) {
			return userDomain.ErrUserAlreadyExists
		}
		if err != nil {
			return fmt.Errorf("db error: %w", err)
		}
		return relational.InsertOutboxTx(ctx, tx, r.dialect, newEvent(u))
	})
}

func (r *UserRepoSQL) GetByID(ctx context.Context, id int64) (*userDomain.User, error) {
	row := r.db.QueryRowContext(ctx, r.dialect.Rebind(fmt.Sprintf(
		`SELECT %s FROM users WHERE id = ?`, strings.Join(userColumns, ", "))), id)

	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, userDomain.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return u, nil
}

// Verificación en tiempo de compilación.
var _ userDomain.UserRepository = (*UserRepoSQL)(nil)
