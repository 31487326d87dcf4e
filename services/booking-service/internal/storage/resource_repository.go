package storage

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/lokalhub/lokalhub/libs/db"
	"github.com/lokalhub/lokalhub/services/booking-service/internal/model"
)

type ResourceRepository struct {
	pool *db.Pool
}

func NewResourceRepository(pool *db.Pool) *ResourceRepository {
	return &ResourceRepository{pool: pool}
}

func (r *ResourceRepository) Get(ctx context.Context, orgID, resourceID string) (model.Resource, error) {
	var res model.Resource
	err := r.pool.QueryRow(ctx, `
		SELECT id::text, org_id::text, name,
			COALESCE(slot_step_minutes, 0),
			COALESCE(min_lead_minutes, 0),
			COALESCE(fee_amount_cents, 0),
			COALESCE(fee_currency, '')
		FROM resources
		WHERE org_id = $1 AND id = $2
	`, orgID, resourceID).Scan(
		&res.ID,
		&res.OrgID,
		&res.Name,
		&res.SlotStepMinutes,
		&res.MinLeadMinutes,
		&res.FeeAmountCents,
		&res.FeeCurrency,
	)
	return res, err
}

func (r *ResourceRepository) UpsertSettings(ctx context.Context, orgID, resourceID, name string, stepMinutes, leadMinutes int, feeCents int64, feeCurrency string) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO resources (id, org_id, name, slot_step_minutes, min_lead_minutes, fee_amount_cents, fee_currency)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE
		SET name = EXCLUDED.name,
			slot_step_minutes = EXCLUDED.slot_step_minutes,
			min_lead_minutes = EXCLUDED.min_lead_minutes,
			fee_amount_cents = EXCLUDED.fee_amount_cents,
			fee_currency = EXCLUDED.fee_currency,
			updated_at = now()
		WHERE resources.org_id = EXCLUDED.org_id
	`, resourceID, orgID, name, stepMinutes, leadMinutes, feeCents, feeCurrency)
	return err
}

type MemberQuota struct {
	OrgID                 string
	MemberID              string
	Plan                  string
	MaxActiveReservations int
}

// UpsertMemberQuota is fed by membership plan events; booking enforces the
// active-reservation cap from this local copy.
func (r *ResourceRepository) UpsertMemberQuota(ctx context.Context, tx pgx.Tx, q MemberQuota) error {
	_, err := tx.Exec(ctx, `
		INSERT INTO member_quotas (org_id, member_id, plan, max_active_reservations)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (org_id, member_id) DO UPDATE
		SET plan = EXCLUDED.plan,
			max_active_reservations = EXCLUDED.max_active_reservations,
			updated_at = now()
	`, q.OrgID, q.MemberID, q.Plan, q.MaxActiveReservations)
	return err
}

func (r *ResourceRepository) GetMemberQuota(ctx context.Context, tx pgx.Tx, orgID, memberID string) (MemberQuota, bool, error) {
	var q MemberQuota
	err := tx.QueryRow(ctx, `
		SELECT org_id::text, member_id::text, plan, max_active_reservations
		FROM member_quotas
		WHERE org_id = $1 AND member_id = $2
	`, orgID, memberID).Scan(&q.OrgID, &q.MemberID, &q.Plan, &q.MaxActiveReservations)
	if err == nil {
		return q, true, nil
	}
	if err == pgx.ErrNoRows {
		return MemberQuota{}, false, nil
	}
	return MemberQuota{}, false, err
}
