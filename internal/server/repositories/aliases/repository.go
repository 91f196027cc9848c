package aliases

import (
	"context"

	"github.com/dmitrijs2005/securechat/internal/server/models"
)

// Repository persists contact aliases. Every operation is scoped to one owner.
type Repository interface {
	// Save overwrites any alias OwnerID already had for TargetID.
	Save(ctx context.Context, alias models.ContactAlias) error
	Get(ctx context.Context, ownerID, targetID string) (*models.ContactAlias, error)
	ListFor(ctx context.Context, ownerID string) ([]models.ContactAlias, error)
}
