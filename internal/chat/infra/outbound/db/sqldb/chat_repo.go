package sqldb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	chatDomain "github.com/davicafu/hexasocial/internal/chat/domain"
	"github.com/davicafu/hexasocial/internal/infra/db/relational"
	sharedDomain "github.com/davicafu/hexasocial/shared/domain"
	"github.com/davicafu/hexasocial/shared/persistence/sqlstore"
	"github.com/davicafu/hexasocial/shared/platform/query"
)

// ChatRepoSQL implementa ChatRepository. Los miembros viven en chat_users.
type ChatRepoSQL struct {
	store   *sqlstore.Store[*chatDomain.Chat]
	db      *sql.DB
	dialect sqlstore.Dialect
}

func NewChatRepoSQL(db *sql.DB, dialect sqlstore.Dialect) *ChatRepoSQL {
	table := sqlstore.Table{
		Name:    "chats",
		Columns: []string{"id", "created_at", "updated_at"},
		Fields:  chatDomain.ChatFields,
		Dialect: dialect,
	}
	return &ChatRepoSQL{
		store:   sqlstore.NewStore[*chatDomain.Chat](db, table, scanChat),
		db:      db,
		dialect: dialect,
	}
}

func scanChat(s sqlstore.Scanner) (*chatDomain.Chat, error) {
	var c chatDomain.Chat
	if err := s.Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	c.CreatedAt = c.CreatedAt.UTC()
	c.UpdatedAt = c.UpdatedAt.UTC()
	c.UserIDs = []int64{}
	return &c, nil
}

// Find pagina las salas y completa sus miembros con una segunda consulta.
func (r *ChatRepoSQL) Find(ctx context.Context, q query.Query) ([]*chatDomain.Chat, error) {
	chats, err := r.store.Find(ctx, q)
	if err != nil {
		return nil, err
	}
	if err := r.loadMembers(ctx, chats); err != nil {
		return nil, err
	}
	return chats, nil
}

func (r *ChatRepoSQL) Count(ctx context.Context, filters query.FilterSpec) (int64, error) {
	return r.store.Count(ctx, filters)
}

func (r *ChatRepoSQL) loadMembers(ctx context.Context, chats []*chatDomain.Chat) error {
	if len(chats) == 0 {
		return nil
	}

	byID := make(map[int64]*chatDomain.Chat, len(chats))
	marks := make([]string, len(chats))
	args := make([]interface{}, len(chats))
	for i, c := range chats {
		byID[c.ID] = c
		marks[i] = "?"
		args[i] = c.ID
	}

	rows, err := r.db.QueryContext(ctx, r.dialect.Rebind(fmt.Sprintf(
		`SELECT chat_id, user_id FROM chat_users WHERE chat_id IN (%s) ORDER BY chat_id, user_id`,
		strings.Join(marks, ", "))), args...)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var chatID, userID int64
		if err := rows.Scan(&chatID, &userID); err != nil {
			return fmt.Errorf("db scan error: %w", err)
		}
		if c, ok := byID[chatID]; ok {
			c.UserIDs = append(c.UserIDs, userID)
		}
	}
	return rows.Err()
}

// Create inserta la sala, sus miembros y el evento en una transacción.
func (r *ChatRepoSQL) Create(ctx context.Context, c *chatDomain.Chat, newEvent sharedDomain.OutboxFactory[*chatDomain.Chat]) error {
	return relational.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		err := tx.QueryRowContext(ctx, r.dialect.Rebind(
			`INSERT INTO chats (created_at, updated_at) VALUES (?, ?) RETURNING id`),
			r.dialect.Args(c.CreatedAt, c.UpdatedAt)...,
		).Scan(&c.ID)
		if err != nil {
			return fmt.Errorf("db error: %w", err)
		}

		for _, userID := range c.UserIDs {
			if _, err := tx.ExecContext(ctx, r.dialect.Rebind(
				`INSERT INTO chat_users (chat_id, user_id) VALUES (?, ?)`), c.ID, userID); err != nil {
				return fmt.Errorf("db error: %w", err)
			}
		}

		return relational.InsertOutboxTx(ctx, tx, r.dialect, newEvent(c))
	})
}

func (r *ChatRepoSQL) GetByID(ctx context.Context, id int64) (*chatDomain.Chat, error) {
	row := r.db.QueryRowContext(ctx, r.dialect.Rebind(`SELECT id, created_at, updated_at FROM chats WHERE id = ?`), id)
	c, err := scanChat(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, chatDomain.ErrChatNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	if err := r.loadMembers(ctx, []*chatDomain.Chat{c}); err != nil {
		return nil, err
	}
	return c, nil
}

func (r *ChatRepoSQL) Exists(ctx context.Context, id int64) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx, r.dialect.Rebind(`SELECT 1 FROM chats WHERE id = ?`), id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return true, nil
}

var _ chatDomain.ChatRepository = (*ChatRepoSQL)(nil)
