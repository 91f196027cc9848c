package parties

import (
	"context"

	"github.com/dmitrijs2005/securechat/internal/server/models"
)

// Repository persists directory parties keyed by canonical id.
type Repository interface {
	// Upsert creates the party if absent, otherwise merges the non-nil
	// fields of upd into the stored record.
	Upsert(ctx context.Context, id string, upd models.PartyUpdate) error
	Get(ctx context.Context, id string) (*models.Party, error)
	// List returns every party except excludeID, ordered by canonical id.
	List(ctx context.Context, excludeID string) ([]models.Party, error)
}
