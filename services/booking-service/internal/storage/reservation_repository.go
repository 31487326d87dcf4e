package storage

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lokalhub/lokalhub/libs/db"
	"github.com/lokalhub/lokalhub/services/booking-service/internal/model"
)

type ReservationRepository struct {
	pool *db.Pool
}

func NewReservationRepository(pool *db.Pool) *ReservationRepository {
	return &ReservationRepository{pool: pool}
}

func (r *ReservationRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	return r.pool.Begin(ctx)
}

// Create inserts a confirmed reservation. The reservations table carries an
// exclusion constraint on (resource_id, tstzrange(start_time, end_time)) for
// status = 'confirmed', so a racing overlapping insert fails with 23P01.
func (r *ReservationRepository) Create(ctx context.Context, tx pgx.Tx, res *model.Reservation) (string, error) {
	var id string
	err := tx.QueryRow(ctx, `
		INSERT INTO reservations
			(org_id, resource_id, member_id, member_email, start_time, end_time, status, deposit_status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`, res.OrgID, res.ResourceID, res.MemberID, res.MemberEmail, res.StartTime, res.EndTime, res.Status, res.DepositStatus).Scan(&id)
	if err != nil {
		return "", err
	}
	return id, nil
}

func (r *ReservationRepository) GetForUpdate(ctx context.Context, tx pgx.Tx, orgID, reservationID string) (model.Reservation, error) {
	var res model.Reservation
	var cancelledAt *time.Time
	err := tx.QueryRow(ctx, `
		SELECT id, org_id, resource_id, member_id, COALESCE(member_email, ''), start_time, end_time,
			status, deposit_status, cancelled_at, COALESCE(cancel_reason, ''), created_at
		FROM reservations
		WHERE id = $1 AND org_id = $2
		FOR UPDATE
	`, reservationID, orgID).Scan(
		&res.ID,
		&res.OrgID,
		&res.ResourceID,
		&res.MemberID,
		&res.MemberEmail,
		&res.StartTime,
		&res.EndTime,
		&res.Status,
		&res.DepositStatus,
		&cancelledAt,
		&res.CancelReason,
		&res.CreatedAt,
	)
	if err != nil {
		return model.Reservation{}, err
	}
	res.CancelledAt = cancelledAt
	return res, nil
}

func (r *ReservationRepository) Cancel(ctx context.Context, tx pgx.Tx, orgID, reservationID, reason string) (time.Time, error) {
	var cancelledAt time.Time
	err := tx.QueryRow(ctx, `
		UPDATE reservations
		SET status = 'cancelled',
			cancelled_at = now(),
			cancel_reason = $3
		WHERE id = $1 AND org_id = $2
		RETURNING cancelled_at
	`, reservationID, orgID, reason).Scan(&cancelledAt)
	return cancelledAt, err
}

// ListOverlapping returns confirmed reservations intersecting [start, end).
// This is the busy snapshot the slot engine consumes; cancelled rows never block.
func (r *ReservationRepository) ListOverlapping(ctx context.Context, orgID, resourceID string, start, end time.Time) ([]model.Reservation, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, org_id, resource_id, member_id, COALESCE(member_email, ''), start_time, end_time,
			status, deposit_status, cancelled_at, COALESCE(cancel_reason, ''), created_at
		FROM reservations
		WHERE org_id = $1
			AND resource_id = $2
			AND status = 'confirmed'
			AND start_time < $4
			AND end_time > $3
		ORDER BY start_time ASC
	`, orgID, resourceID, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanReservations(rows)
}

func (r *ReservationRepository) ListByMember(ctx context.Context, orgID, memberID string, limit int) ([]model.Reservation, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.pool.Query(ctx, `
		SELECT id, org_id, resource_id, member_id, COALESCE(member_email, ''), start_time, end_time,
			status, deposit_status, cancelled_at, COALESCE(cancel_reason, ''), created_at
		FROM reservations
		WHERE org_id = $1 AND member_id = $2
		ORDER BY start_time DESC
		LIMIT $3
	`, orgID, memberID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanReservations(rows)
}

// CountActiveByMember counts confirmed reservations ending in the future,
// the figure the per-member quota is enforced against.
func (r *ReservationRepository) CountActiveByMember(ctx context.Context, tx pgx.Tx, orgID, memberID string, now time.Time) (int, error) {
	var cnt int
	err := tx.QueryRow(ctx, `
		SELECT count(*)
		FROM reservations
		WHERE org_id = $1 AND member_id = $2 AND status = 'confirmed' AND end_time > $3
	`, orgID, memberID, now).Scan(&cnt)
	return cnt, err
}

// SetAccessPIN stores the bcrypt hash of the door code. The plaintext is never
// persisted.
func (r *ReservationRepository) SetAccessPIN(ctx context.Context, tx pgx.Tx, reservationID, pinHash string) error {
	_, err := tx.Exec(ctx, `
		UPDATE reservations
		SET access_pin_hash = $2
		WHERE id = $1
	`, reservationID, pinHash)
	return err
}

// SetDepositPending records the provider intent id once it exists. It runs on
// the pool, not a transaction: the intent is created after the reservation
// commit so external latency never holds row locks.
func (r *ReservationRepository) SetDepositPending(ctx context.Context, reservationID, paymentIntentID string) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE reservations
		SET deposit_status = 'pending',
			payment_intent_id = $2
		WHERE id = $1
	`, reservationID, paymentIntentID)
	return err
}

// MarkDepositPaid flips the deposit by provider payment intent id and returns
// the affected reservation, or pgx.ErrNoRows when the intent is unknown.
func (r *ReservationRepository) MarkDepositPaid(ctx context.Context, tx pgx.Tx, paymentIntentID string, paidAt time.Time) (model.Reservation, error) {
	var res model.Reservation
	var cancelledAt *time.Time
	err := tx.QueryRow(ctx, `
		UPDATE reservations
		SET deposit_status = 'paid',
			deposit_paid_at = $2
		WHERE payment_intent_id = $1
		RETURNING id, org_id, resource_id, member_id, COALESCE(member_email, ''), start_time, end_time,
			status, deposit_status, cancelled_at, COALESCE(cancel_reason, ''), created_at
	`, paymentIntentID, paidAt).Scan(
		&res.ID,
		&res.OrgID,
		&res.ResourceID,
		&res.MemberID,
		&res.MemberEmail,
		&res.StartTime,
		&res.EndTime,
		&res.Status,
		&res.DepositStatus,
		&cancelledAt,
		&res.CancelReason,
		&res.CreatedAt,
	)
	if err != nil {
		return model.Reservation{}, err
	}
	res.CancelledAt = cancelledAt
	return res, nil
}

func scanReservations(rows pgx.Rows) ([]model.Reservation, error) {
	var out []model.Reservation
	for rows.Next() {
		var res model.Reservation
		var cancelledAt *time.Time
		if err := rows.Scan(
			&res.ID,
			&res.OrgID,
			&res.ResourceID,
			&res.MemberID,
			&res.MemberEmail,
			&res.StartTime,
			&res.EndTime,
			&res.Status,
			&res.DepositStatus,
			&cancelledAt,
			&res.CancelReason,
			&res.CreatedAt,
		); err != nil {
			return nil, err
		}
		res.CancelledAt = cancelledAt
		out = append(out, res)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return out, nil
}

func IsConflict(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23P01"
}

func IsNotFound(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}
