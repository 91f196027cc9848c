// Package aliases stores the per-owner contact alias overlay. The
// (owner_id, target_id) primary key keeps owners from writing into each
// other's partition.
package aliases

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

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

func (r *SQLRepository) Save(ctx context.Context, alias models.ContactAlias) error {
	query :=
		`INSERT INTO contact_aliases (owner_id, target_id, name)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (owner_id, target_id) DO UPDATE SET name = EXCLUDED.name
		 `

	if _, err := r.db.ExecContext(ctx, query, alias.OwnerID, alias.TargetID, alias.Name); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *SQLRepository) Get(ctx context.Context, ownerID, targetID string) (*models.ContactAlias, error) {
	query :=
		`SELECT owner_id, target_id, name FROM contact_aliases
		 WHERE owner_id = $1 AND target_id = $2
		 `

	a := &models.ContactAlias{}
	err := r.db.QueryRowContext(ctx, query, ownerID, targetID).Scan(&a.OwnerID, &a.TargetID, &a.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return a, nil
}

func (r *SQLRepository) ListFor(ctx context.Context, ownerID string) ([]models.ContactAlias, error) {
	query :=
		`SELECT owner_id, target_id, name FROM contact_aliases
		 WHERE owner_id = $1
		 ORDER BY target_id
		 `

	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]models.ContactAlias, 0)
	for rows.Next() {
		var a models.ContactAlias
		if err := rows.Scan(&a.OwnerID, &a.TargetID, &a.Name); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}
