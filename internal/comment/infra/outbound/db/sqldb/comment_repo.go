package sqldb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	commentDomain "github.com/davicafu/hexasocial/internal/comment/domain"
	"github.com/davicafu/hexasocial/internal/infra/db/relational"
	sharedDomain "github.com/davicafu/hexasocial/shared/domain"
	"github.com/davicafu/hexasocial/shared/persistence/sqlstore"
)

var commentColumns = []string{"id", "post_id", "author_id", "comment", "like_count", "created_at", "updated_at"}

// CommentRepoSQL implementa CommentRepository para SQLite y Postgres.
type CommentRepoSQL struct {
	*sqlstore.Store[*commentDomain.Comment]
	db      *sql.DB
	dialect sqlstore.Dialect
}

func NewCommentRepoSQL(db *sql.DB, dialect sqlstore.Dialect) *CommentRepoSQL {
	table := sqlstore.Table{Name: "comments", Columns: commentColumns, Fields: commentDomain.CommentFields, Dialect: dialect}
	return &CommentRepoSQL{
		Store:   sqlstore.NewStore[*commentDomain.Comment](db, table, scanComment),
		db:      db,
		dialect: dialect,
	}
}

func scanComment(s sqlstore.Scanner) (*commentDomain.Comment, error) {
	var c commentDomain.Comment
	if err := s.Scan(&c.ID, &c.PostID, &c.AuthorID, &c.Comment, &c.LikeCount, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	c.CreatedAt = c.CreatedAt.UTC()
	c.UpdatedAt = c.UpdatedAt.UTC()
	return &c, nil
}

func (r *CommentRepoSQL) Create(ctx context.Context, c *commentDomain.Comment, newEvent sharedDomain.OutboxFactory[*commentDomain.Comment]) error {
	return relational.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		err := tx.QueryRowContext(ctx, r.dialect.Rebind(
			`INSERT INTO comments (post_id, author_id, comment, like_count, created_at, updated_at)
			 VALUES (?, ?, ?, ?, ?, ?) RETURNING id`),
			r.dialect.Args(c.PostID, c.AuthorID, c.Comment, c.LikeCount, c.CreatedAt, c.UpdatedAt)...,
		).Scan(&c.ID)
		if err != nil {
			return fmt.Errorf("db error: %w", err)
		}
		return relational.InsertOutboxTx(ctx, tx, r.dialect, newEvent(c))
	})
}

func (r *CommentRepoSQL) Update(ctx context.Context, c *commentDomain.Comment, evt sharedDomain.OutboxEvent) error {
	return relational.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, r.dialect.Rebind(
			`UPDATE comments SET comment = ?, updated_at = ? WHERE id = ?`),
			r.dialect.Args(c.Comment, c.UpdatedAt, c.ID)...,
		)
		if err != nil {
			return fmt.Errorf("db error: %w", err)
		}
		if rows, _ := res.RowsAffected(); rows == 0 {
			return commentDomain.ErrCommentNotFound
		}
		return relational.InsertOutboxTx(ctx, tx, r.dialect, evt)
	})
}

func (r *CommentRepoSQL) DeleteByID(ctx context.Context, id int64, evt sharedDomain.OutboxEvent) error {
	return relational.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, r.dialect.Rebind(`DELETE FROM comments WHERE id = ?`), id)
		if err != nil {
			return fmt.Errorf("db error: %w", err)
		}
		if rows, _ := res.RowsAffected(); rows == 0 {
			return commentDomain.ErrCommentNotFound
		}
		return relational.InsertOutboxTx(ctx, tx, r.dialect, evt)
	})
}

func (r *CommentRepoSQL) GetByID(ctx context.Context, id int64) (*commentDomain.Comment, error) {
	row := r.db.QueryRowContext(ctx, r.dialect.Rebind(fmt.Sprintf(
		`SELECT %s FROM comments WHERE id = ?`, strings.Join(commentColumns, ", "))), id)

	c, err := scanComment(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, commentDomain.ErrCommentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return c, nil
}

// Verificación en tiempo de compilación.
var _ commentDomain.CommentRepository = (*CommentRepoSQL)(nil)
