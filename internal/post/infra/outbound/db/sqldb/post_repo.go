package sqldb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/davicafu/hexasocial/internal/infra/db/relational"
	postDomain "github.com/davicafu/hexasocial/internal/post/domain"
	sharedDomain "github.com/davicafu/hexasocial/shared/domain"
	"github.com/davicafu/hexasocial/shared/persistence/sqlstore"
)

var postColumns = []string{
	"id", "author_id", "title", "content", "like_count", "comment_count", "created_at", "updated_at",
}

// PostRepoSQL implementa PostRepository para SQLite y Postgres.
type PostRepoSQL struct {
	*sqlstore.Store[*postDomain.Post]
	db      *sql.DB
	dialect sqlstore.Dialect
}

// NewPostRepoSQL es el constructor del repositorio.
func NewPostRepoSQL(db *sql.DB, dialect sqlstore.Dialect) *PostRepoSQL {
	table := sqlstore.Table{Name: "posts", Columns: postColumns, Fields: postDomain.PostFields, Dialect: dialect}
	return &PostRepoSQL{
		Store:   sqlstore.NewStore[*postDomain.Post](db, table, scanPost),
		db:      db,
		dialect: dialect,
	}
}

func scanPost(s sqlstore.Scanner) (*postDomain.Post, error) {
	var p postDomain.Post
	err := s.Scan(&p.ID, &p.AuthorID, &p.Title, &p.Content, &p.LikeCount, &p.CommentCount, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	p.CreatedAt = p.CreatedAt.UTC()
	p.UpdatedAt = p.UpdatedAt.UTC()
	return &p, nil
}

// ------------------ CRUD + Outbox ------------------

// Create inserta el post, asigna su id y guarda el evento en la misma transacción.
func (r *PostRepoSQL) Create(ctx context.Context, p *postDomain.Post, newEvent sharedDomain.OutboxFactory[*postDomain.Post]) error {
	return relational.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		err := tx.QueryRowContext(ctx, r.dialect.Rebind(
			`INSERT INTO posts (author_id, title, content, like_count, comment_count, created_at, updated_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?) RETURNING id`),
			r.dialect.Args(p.AuthorID, p.Title, p.Content, p.LikeCount, p.CommentCount, p.CreatedAt, p.UpdatedAt)...,
		).Scan(&p.ID)
		if err != nil {
			return fmt.Errorf("db error: %w", err)
		}

		return relational.InsertOutboxTx(ctx, tx, r.dialect, newEvent(p))
	})
}

// Update actualiza título y contenido y crea el evento en una transacción.
func (r *PostRepoSQL) Update(ctx context.Context, p *postDomain.Post, evt sharedDomain.OutboxEvent) error {
	return relational.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, r.dialect.Rebind(
			`UPDATE posts SET title = ?, content = ?, updated_at = ? WHERE id = ?`),
			r.dialect.Args(p.Title, p.Content, p.UpdatedAt, p.ID)...,
		)
		if err != nil {
			return fmt.Errorf("db error: %w", err)
		}
		if rows, _ := res.RowsAffected(); rows == 0 {
			return postDomain.ErrPostNotFound
		}

		return relational.InsertOutboxTx(ctx, tx, r.dialect, evt)
	})
}

// DeleteByID elimina el post y sus comentarios y crea el evento en una transacción.
func (r *PostRepoSQL) DeleteByID(ctx context.Context, id int64, evt sharedDomain.OutboxEvent) error {
	return relational.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, r.dialect.Rebind(`DELETE FROM posts WHERE id = ?`), id)
		if err != nil {
			return fmt.Errorf("db error: %w", err)
		}
		if rows, _ := res.RowsAffected(); rows == 0 {
			return postDomain.ErrPostNotFound
		}

		if _, err := tx.ExecContext(ctx, r.dialect.Rebind(`DELETE FROM comments WHERE post_id = ?`), id); err != nil {
			return fmt.Errorf("db error: %w", err)
		}

		return relational.InsertOutboxTx(ctx, tx, r.dialect, evt)
	})
}

// ------------------ Lectura ------------------

// GetByID recupera un post por su id.
func (r *PostRepoSQL) GetByID(ctx context.Context, id int64) (*postDomain.Post, error) {
	row := r.db.QueryRowContext(ctx, r.dialect.Rebind(fmt.Sprintf(
		`SELECT %s FROM posts WHERE id = ?`, strings.Join(postColumns, ", "))), id)

	p, err := scanPost(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, postDomain.ErrPostNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return p, nil
}

// AddCommentCount suma delta al contador sin bajar de cero.
func (r *PostRepoSQL) AddCommentCount(ctx context.Context, id int64, delta int64) error {
	res, err := r.db.ExecContext(ctx, r.dialect.Rebind(
		`UPDATE posts SET comment_count = CASE WHEN comment_count + ? < 0 THEN 0 ELSE comment_count + ? END
		 WHERE id = ?`), delta, delta, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return postDomain.ErrPostNotFound
	}
	return nil
}

// Verificación en tiempo de compilación.
var _ postDomain.PostRepository = (*PostRepoSQL)(nil)
