package messages

import (
	"context"

	"github.com/dmitrijs2005/securechat/internal/server/models"
)

type Repository interface {
	Insert(ctx context.Context, msg *models.Message) error
	// ListByConversation returns the stream ordered by creation time, ties
	// broken by insertion order.
	ListByConversation(ctx context.Context, key string) ([]models.Message, error)
	SenderOf(ctx context.Context, key, id string) (string, error)
	Delete(ctx context.Context, key, id string) error
}
