// Package messages stores conversation streams. created_at is kept as unix
// nanoseconds so both dialects order it numerically; seq records insertion
// order for equal timestamps.
package messages

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/securechat/internal/common"
	"github.com/dmitrijs2005/securechat/internal/dbx"
	"github.com/dmitrijs2005/securechat/internal/server/models"
)

type SQLRepository struct {
	db dbx.DBTX
}

func NewSQLRepository(db dbx.DBTX) *SQLRepository {
	return &SQLRepository{db: db}
}

func (r *SQLRepository) Insert(ctx context.Context, msg *models.Message) error {
	query :=
		`INSERT INTO messages (id, conversation_key, sender_id, kind, payload, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 `

	_, err := r.db.ExecContext(ctx, query,
		msg.ID, msg.ConversationKey, msg.SenderID, string(msg.Kind), msg.Payload, msg.CreatedAt.UnixNano())
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *SQLRepository) ListByConversation(ctx context.Context, key string) ([]models.Message, error) {
	query :=
		`SELECT id, conversation_key, sender_id, kind, payload, created_at FROM messages
		 WHERE conversation_key = $1
		 ORDER BY created_at, seq
		 `

	rows, err := r.db.QueryContext(ctx, query, key)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]models.Message, 0)
	for rows.Next() {
		var (
			m       models.Message
			kind    string
			created int64
		)
		if err := rows.Scan(&m.ID, &m.ConversationKey, &m.SenderID, &kind, &m.Payload, &created); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		m.Kind = models.MessageKind(kind)
		m.CreatedAt = time.Unix(0, created).UTC()
		result = append(result, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *SQLRepository) SenderOf(ctx context.Context, key, id string) (string, error) {
	query :=
		`SELECT sender_id FROM messages
		 WHERE conversation_key = $1 AND id = $2
		 `

	var sender string
	if err := r.db.QueryRowContext(ctx, query, key, id).Scan(&sender); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", common.ErrorNotFound
		}
		return "", fmt.Errorf("db error: %w", err)
	}
	return sender, nil
}

func (r *SQLRepository) Delete(ctx context.Context, key, id string) error {
	query :=
		`DELETE FROM messages
		 WHERE conversation_key = $1 AND id = $2
		 `

	res, err := r.db.ExecContext(ctx, query, key, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}
