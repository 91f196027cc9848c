// Package parties stores directory entries. Queries are written with "$N"
// placeholders and run unchanged on PostgreSQL and, through dbx.Numbered, on
// SQLite.
package parties

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

func (r *SQLRepository) Upsert(ctx context.Context, id string, upd models.PartyUpdate) error {
	query :=
		`INSERT INTO parties (canonical_id, display_hint_id, last_seen)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (canonical_id) DO UPDATE SET
		   display_hint_id = COALESCE(EXCLUDED.display_hint_id, parties.display_hint_id),
		   last_seen = COALESCE(EXCLUDED.last_seen, parties.last_seen)
		 `

	var lastSeen *int64
	if upd.LastSeen != nil {
		n := upd.LastSeen.UnixNano()
		lastSeen = &n
	}

	if _, err := r.db.ExecContext(ctx, query, id, upd.DisplayHintID, lastSeen); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *SQLRepository) Get(ctx context.Context, id string) (*models.Party, error) {
	query :=
		`SELECT canonical_id, display_hint_id, last_seen FROM parties
		 WHERE canonical_id = $1
		 `

	p, err := scanParty(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return p, nil
}

func (r *SQLRepository) List(ctx context.Context, excludeID string) ([]models.Party, error) {
	query :=
		`SELECT canonical_id, display_hint_id, last_seen FROM parties
		 WHERE canonical_id <> $1
		 ORDER BY canonical_id
		 `

	rows, err := r.db.QueryContext(ctx, query, excludeID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]models.Party, 0)
	for rows.Next() {
		p, err := scanParty(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanParty(s scanner) (*models.Party, error) {
	var (
		p        models.Party
		hint     sql.NullString
		lastSeen sql.NullInt64
	)
	if err := s.Scan(&p.CanonicalID, &hint, &lastSeen); err != nil {
		return nil, err
	}
	p.DisplayHintID = hint.String
	if lastSeen.Valid {
		t := time.Unix(0, lastSeen.Int64).UTC()
		p.LastSeen = &t
	}
	return &p, nil
}
