package relational

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/davicafu/hexasocial/shared/persistence/sqlstore"
)

// InitSchema crea las tablas de todos los recursos y la tabla outbox si no existen.
func InitSchema(ctx context.Context, db *sql.DB, d sqlstore.Dialect) error {
	ts := d.Timestamp()
	statements := []struct {
		name string
		ddl  string
	}{
		{"users", fmt.Sprintf(`
        CREATE TABLE IF NOT EXISTS users (
            id %s,
            nickname TEXT NOT NULL UNIQUE,
            email TEXT NOT NULL UNIQUE,
            follower_count BIGINT NOT NULL DEFAULT 0,
            followee_count BIGINT NOT NULL DEFAULT 0,
            created_at %s NOT NULL,
            updated_at %s NOT NULL
        )`, d.Serial(), ts, ts)},
		{"follows", fmt.Sprintf(`
        CREATE TABLE IF NOT EXISTS follows (
            follower_id BIGINT NOT NULL,
            followee_id BIGINT NOT NULL,
            is_confirmed BOOLEAN NOT NULL DEFAULT %s,
            created_at %s NOT NULL,
            updated_at %s NOT NULL,
            PRIMARY KEY (follower_id, followee_id)
        )`, d.Bool(false), ts, ts)},
		{"posts", fmt.Sprintf(`
        CREATE TABLE IF NOT EXISTS posts (
            id %s,
            author_id BIGINT NOT NULL,
            title TEXT NOT NULL,
            content TEXT NOT NULL,
            like_count BIGINT NOT NULL DEFAULT 0,
            comment_count BIGINT NOT NULL DEFAULT 0,
            created_at %s NOT NULL,
            updated_at %s NOT NULL
        )`, d.Serial(), ts, ts)},
		{"comments", fmt.Sprintf(`
        CREATE TABLE IF NOT EXISTS comments (
            id %s,
            post_id BIGINT NOT NULL,
            author_id BIGINT NOT NULL,
            comment TEXT NOT NULL,
            like_count BIGINT NOT NULL DEFAULT 0,
            created_at %s NOT NULL,
            updated_at %s NOT NULL
        )`, d.Serial(), ts, ts)},
		{"chats", fmt.Sprintf(`
        CREATE TABLE IF NOT EXISTS chats (
            id %s,
            created_at %s NOT NULL,
            updated_at %s NOT NULL
        )`, d.Serial(), ts, ts)},
		{"chat_users", `
        CREATE TABLE IF NOT EXISTS chat_users (
            chat_id BIGINT NOT NULL,
            user_id BIGINT NOT NULL,
            PRIMARY KEY (chat_id, user_id)
        )`},
		{"messages", fmt.Sprintf(`
        CREATE TABLE IF NOT EXISTS messages (
            id %s,
            chat_id BIGINT NOT NULL,
            author_id BIGINT NOT NULL,
            message TEXT NOT NULL,
            created_at %s NOT NULL,
            updated_at %s NOT NULL
        )`, d.Serial(), ts, ts)},
		{"outbox", fmt.Sprintf(`
        CREATE TABLE IF NOT EXISTS outbox (
            id TEXT PRIMARY KEY,
            aggregate_type TEXT NOT NULL,
            aggregate_id TEXT NOT NULL,
            event_type TEXT NOT NULL,
            payload %s NOT NULL,
            created_at %s NOT NULL,
            processed BOOLEAN NOT NULL DEFAULT %s
        )`, d.JSON(), ts, d.Bool(false))},
		{"comments_post_idx", `CREATE INDEX IF NOT EXISTS comments_post_idx ON comments (post_id, id)`},
		{"messages_chat_idx", `CREATE INDEX IF NOT EXISTS messages_chat_idx ON messages (chat_id, id)`},
		{"outbox_pending_idx", `CREATE INDEX IF NOT EXISTS outbox_pending_idx ON outbox (processed, created_at)`},
	}

	for _, st := range statements {
		if _, err := db.ExecContext(ctx, st.ddl); err != nil {
			return fmt.Errorf("failed to create %s: %w", st.name, err)
		}
	}
	return nil
}
