package sqldb

import (
	"context"
	"database/sql"
	"fmt"

	chatDomain "github.com/davicafu/hexasocial/internal/chat/domain"
	"github.com/davicafu/hexasocial/internal/infra/db/relational"
	sharedDomain "github.com/davicafu/hexasocial/shared/domain"
	"github.com/davicafu/hexasocial/shared/persistence/sqlstore"
)

// MessageRepoSQL implementa MessageRepository.
type MessageRepoSQL struct {
	*sqlstore.Store[*chatDomain.Message]
	db      *sql.DB
	dialect sqlstore.Dialect
}

func NewMessageRepoSQL(db *sql.DB, dialect sqlstore.Dialect) *MessageRepoSQL {
	table := sqlstore.Table{
		Name:    "messages",
		Columns: []string{"id", "chat_id", "author_id", "message", "created_at", "updated_at"},
		Fields:  chatDomain.MessageFields,
		Dialect: dialect,
	}
	return &MessageRepoSQL{
		Store:   sqlstore.NewStore[*chatDomain.Message](db, table, scanMessage),
		db:      db,
		dialect: dialect,
	}
}

func scanMessage(s sqlstore.Scanner) (*chatDomain.Message, error) {
	var m chatDomain.Message
	if err := s.Scan(&m.ID, &m.ChatID, &m.AuthorID, &m.Message, &m.CreatedAt, &m.UpdatedAt); err != nil {
		return nil, err
	}
	m.CreatedAt = m.CreatedAt.UTC()
	m.UpdatedAt = m.UpdatedAt.UTC()
	return &m, nil
}

func (r *MessageRepoSQL) Create(ctx context.Context, m *chatDomain.Message, newEvent sharedDomain.OutboxFactory[*chatDomain.Message]) error {
	return relational.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		err := tx.QueryRowContext(ctx, r.dialect.Rebind(
			`INSERT INTO messages (chat_id, author_id, message, created_at, updated_at)
			 VALUES (?, ?, ?, ?, ?) RETURNING id`),
			r.dialect.Args(m.ChatID, m.AuthorID, m.Message, m.CreatedAt, m.UpdatedAt)...,
		).Scan(&m.ID)
		if err != nil {
			return fmt.Errorf("db error: %w", err)
		}
		return relational.InsertOutboxTx(ctx, tx, r.dialect, newEvent(m))
	})
}

var _ chatDomain.MessageRepository = (*MessageRepoSQL)(nil)
