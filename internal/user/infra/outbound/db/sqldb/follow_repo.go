package sqldb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/davicafu/hexasocial/internal/infra/db/relational"
	userDomain "github.com/davicafu/hexasocial/internal/user/domain"
	sharedDomain "github.com/davicafu/hexasocial/shared/domain"
	"github.com/davicafu/hexasocial/shared/persistence/sqlstore"
)

var followColumns = []string{"follower_id", "followee_id", "is_confirmed", "created_at", "updated_at"}

// FollowRepoSQL implementa FollowRepository. Confirmar y borrar tocan
// también los contadores de users.
type FollowRepoSQL struct {
	*sqlstore.Store[*userDomain.Follow]
	db      *sql.DB
	dialect sqlstore.Dialect
}

func NewFollowRepoSQL(db *sql.DB, dialect sqlstore.Dialect) *FollowRepoSQL {
	table := sqlstore.Table{Name: "follows", Columns: followColumns, Fields: userDomain.FollowFields, Dialect: dialect}
	return &FollowRepoSQL{
		Store:   sqlstore.NewStore[*userDomain.Follow](db, table, scanFollow),
		db:      db,
		dialect: dialect,
	}
}

func scanFollow(s sqlstore.Scanner) (*userDomain.Follow, error) {
	var f userDomain.Follow
	if err := s.Scan(&f.FollowerID, &f.FolloweeID, &f.IsConfirmed, &f.CreatedAt, &f.UpdatedAt); err != nil {
		return nil, err
	}
	f.CreatedAt = f.CreatedAt.UTC()
	f.UpdatedAt = f.UpdatedAt.UTC()
	return &f, nil
}

func (r *FollowRepoSQL) Create(ctx context.Context, f *userDomain.Follow, evt sharedDomain.OutboxEvent) error {
	return relational.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, r.dialect.Rebind(
			`INSERT INTO follows (follower_id, followee_id, is_confirmed, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`),
			r.dialect.Args(f.FollowerID, f.FolloweeID, f.IsConfirmed, f.CreatedAt, f.UpdatedAt)...,
		)
		if relational.IsUniqueViolation(err) {
			return userDomain.ErrFollowAlreadyExists
		}
		if err != nil {
			return fmt.Errorf("db error: %w", err)
		}
		return relational.InsertOutboxTx(ctx, tx, r.dialect, evt)
	})
}

func (r *FollowRepoSQL) Get(ctx context.Context, followerID, followeeID int64) (*userDomain.Follow, error) {
	row := r.db.QueryRowContext(ctx, r.dialect.Rebind(
		`SELECT follower_id, followee_id, is_confirmed, created_at, updated_at
		 FROM follows WHERE follower_id = ? AND followee_id = ?`), followerID, followeeID)

	f, err := scanFollow(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, userDomain.ErrFollowNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return f, nil
}

func (r *FollowRepoSQL) Confirm(ctx context.Context, f *userDomain.Follow, evt sharedDomain.OutboxEvent) error {
	return relational.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, r.dialect.Rebind(
			`UPDATE follows SET is_confirmed = ?, updated_at = ?
			 WHERE follower_id = ? AND followee_id = ? AND is_confirmed = ?`),
			r.dialect.Args(true, f.UpdatedAt, f.FollowerID, f.FolloweeID, false)...,
		)
		if err != nil {
			return fmt.Errorf("db error: %w", err)
		}
		if rows, _ := res.RowsAffected(); rows == 0 {
			return userDomain.ErrFollowNotFound
		}
		if err := r.addCounts(ctx, tx, f, 1); err != nil {
			return err
		}
		return relational.InsertOutboxTx(ctx, tx, r.dialect, evt)
	})
}

func (r *FollowRepoSQL) Delete(ctx context.Context, f *userDomain.Follow, evt sharedDomain.OutboxEvent) error {
	return relational.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		var confirmed bool
		err := tx.QueryRowContext(ctx, r.dialect.Rebind(
			`DELETE FROM follows WHERE follower_id = ? AND followee_id = ? RETURNING is_confirmed`),
			f.FollowerID, f.FolloweeID,
		).Scan(&confirmed)
		if errors.Is(err, sql.ErrNoRows) {
			return userDomain.ErrFollowNotFound
		}
		if err != nil {
			return fmt.Errorf("db error: %w", err)
		}
		if confirmed {
			if err := r.addCounts(ctx, tx, f, -1); err != nil {
				return err
			}
		}
		return relational.InsertOutboxTx(ctx, tx, r.dialect, evt)
	})
}

func (r *FollowRepoSQL) addCounts(ctx context.Context, tx *sql.Tx, f *userDomain.Follow, delta int64) error {
	if _, err := tx.ExecContext(ctx, r.dialect.Rebind(
		`UPDATE users SET follower_count = follower_count + ? WHERE id = ?`), delta, f.FolloweeID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if _, err := tx.ExecContext(ctx, r.dialect.Rebind(
		`UPDATE users SET followee_count = followee_count + ? WHERE id = ?`), delta, f.FollowerID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// Verificación en tiempo de compilación.
var _ userDomain.FollowRepository = (*FollowRepoSQL)(nil)
