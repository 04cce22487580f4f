package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/bnema/tabmover/internal/domain/entity"
	"github.com/bnema/tabmover/internal/domain/repository"
	"github.com/bnema/tabmover/internal/logging"
)

const (
	insertPlacementSQL = `INSERT INTO placements
    (tab_id, window_id, from_index, to_index, outcome, error, url, placed_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	recentPlacementsSQL = `SELECT id, tab_id, window_id, from_index, to_index, outcome, error, url, placed_at
FROM placements
ORDER BY id DESC
LIMIT ?`

	deleteOldestPlacementsSQL = `DELETE FROM placements
WHERE id NOT IN (
    SELECT id FROM placements ORDER BY id DESC LIMIT ?
)`
)

type placementRepo struct {
	db *sql.DB
}

// NewPlacementRepository creates a journal backed by db.
func NewPlacementRepository(db *sql.DB) repository.PlacementRepository {
	return &placementRepo{db: db}
}

func (r *placementRepo) Save(ctx context.Context, placement *entity.Placement) error {
	if err := placement.Validate(); err != nil {
		return err
	}

	logging.FromContext(ctx).Trace().
		Int("tab_id", int(placement.TabID)).
		Str("outcome", string(placement.Outcome)).
		Msg("saving placement")

	res, err := r.db.ExecContext(ctx, insertPlacementSQL,
		int64(placement.TabID),
		int64(placement.WindowID),
		placement.FromIndex,
		placement.ToIndex,
		string(placement.Outcome),
		placement.Error,
		placement.URL,
		placement.At.UTC(),
	)
	if err != nil {
		return err
	}
	if id, err := res.LastInsertId(); err == nil {
		placement.ID = id
	}
	return nil
}

func (r *placementRepo) GetRecent(ctx context.Context, limit int) ([]*entity.Placement, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := r.db.QueryContext(ctx, recentPlacementsSQL, limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []*entity.Placement
	for rows.Next() {
		var (
			p        entity.Placement
			tabID    int64
			windowID int64
			outcome  string
			placedAt time.Time
		)
		if err := rows.Scan(&p.ID, &tabID, &windowID, &p.FromIndex, &p.ToIndex, &outcome, &p.Error, &p.URL, &placedAt); err != nil {
			return nil, err
		}
		p.TabID = entity.TabID(tabID)
		p.WindowID = entity.WindowID(windowID)
		p.Outcome = entity.PlacementOutcome(outcome)
		p.At = placedAt.UTC()
		out = append(out, &p)
	}
	return out, rows.Err()
}

func (r *placementRepo) DeleteOldest(ctx context.Context, keepCount int) (int64, error) {
	if keepCount < 0 {
		keepCount = 0
	}
	res, err := r.db.ExecContext(ctx, deleteOldestPlacementsSQL, keepCount)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
