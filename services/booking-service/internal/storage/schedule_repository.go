package storage

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/lokalhub/lokalhub/libs/db"
)

type ScheduleRepository struct {
	pool *db.Pool
}

func NewScheduleRepository(pool *db.Pool) *ScheduleRepository {
	return &ScheduleRepository{pool: pool}
}

// RuleRow is the stored form of a weekly availability rule. Start and End are
// "HH:MM:SS" local clock strings; parsing happens at the edge so a bad value
// is reported to the manager who saved it, not swallowed during generation.
type RuleRow struct {
	ResourceID string
	Weekday    int
	StartTime  string
	EndTime    string
	Active     bool
}

func (r *ScheduleRepository) UpsertRule(ctx context.Context, orgID string, row RuleRow) error {
	var exists bool
	if err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM resources WHERE id = $1 AND org_id = $2
		)
	`, row.ResourceID, orgID).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return pgx.ErrNoRows
	}

	_, err := r.pool.Exec(ctx, `
		INSERT INTO resource_availability_rules (resource_id, weekday, start_time, end_time, active)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (resource_id, weekday, start_time) DO UPDATE
		SET end_time = EXCLUDED.end_time,
			active = EXCLUDED.active,
			updated_at = now()
	`, row.ResourceID, row.Weekday, row.StartTime, row.EndTime, row.Active)
	return err
}

func (r *ScheduleRepository) ListRules(ctx context.Context, orgID, resourceID string) ([]RuleRow, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT a.resource_id::text, a.weekday, a.start_time, a.end_time, a.active
		FROM resource_availability_rules a
		JOIN resources res ON res.id = a.resource_id
		WHERE res.org_id = $1 AND a.resource_id = $2
		ORDER BY a.weekday ASC, a.start_time ASC
	`, orgID, resourceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []RuleRow
	for rows.Next() {
		var row RuleRow
		if err := rows.Scan(&row.ResourceID, &row.Weekday, &row.StartTime, &row.EndTime, &row.Active); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return out, nil
}

type Blackout struct {
	ID         string
	ResourceID string
	StartTime  time.Time
	EndTime    time.Time
	Reason     string
	CreatedAt  time.Time
}

func (r *ScheduleRepository) CreateBlackout(ctx context.Context, orgID, resourceID string, startTime, endTime time.Time, reason string) (string, error) {
	var exists bool
	if err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM resources WHERE id = $1 AND org_id = $2
		)
	`, resourceID, orgID).Scan(&exists); err != nil {
		return "", err
	}
	if !exists {
		return "", pgx.ErrNoRows
	}

	id := uuid.NewString()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO resource_blackouts (id, resource_id, start_time, end_time, reason)
		VALUES ($1, $2, $3, $4, $5)
	`, id, resourceID, startTime, endTime, reason)
	if err != nil {
		return "", err
	}
	return id, nil
}

func (r *ScheduleRepository) ListBlackouts(ctx context.Context, orgID, resourceID string, from, to time.Time, limit int) ([]Blackout, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := r.pool.Query(ctx, `
		SELECT b.id::text, b.resource_id::text, b.start_time, b.end_time, b.reason, b.created_at
		FROM resource_blackouts b
		JOIN resources res ON res.id = b.resource_id
		WHERE res.org_id = $1
			AND b.resource_id = $2
			AND b.end_time > $3
			AND b.start_time < $4
		ORDER BY b.start_time ASC
		LIMIT $5
	`, orgID, resourceID, from, to, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Blackout
	for rows.Next() {
		var b Blackout
		if err := rows.Scan(&b.ID, &b.ResourceID, &b.StartTime, &b.EndTime, &b.Reason, &b.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return out, nil
}

func (r *ScheduleRepository) DeleteBlackout(ctx context.Context, orgID, blackoutID string) error {
	tag, err := r.pool.Exec(ctx, `
		DELETE FROM resource_blackouts b
		USING resources res
		WHERE b.resource_id = res.id
		  AND res.org_id = $1
		  AND b.id = $2
	`, orgID, blackoutID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
