package storage

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
)

type IdempotencyRecord struct {
	OrgID           string
	IdempotencyKey  string
	ReservationID   string
	StatusCode      int
	ResponsePayload []byte
}

// LockIdempotencyKey takes a row lock on the key for the duration of the
// surrounding transaction. The second return reports whether the key existed
// before this call (true = replay, serve the stored response).
func (r *ReservationRepository) LockIdempotencyKey(ctx context.Context, tx pgx.Tx, orgID, key string) (IdempotencyRecord, bool, error) {
	rec, err := r.selectIdempotencyForUpdate(ctx, tx, orgID, key)
	if err == nil {
		return rec, true, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return IdempotencyRecord{}, false, err
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO reservation_idempotency_keys (org_id, idempotency_key)
		VALUES ($1, $2)
		ON CONFLICT (org_id, idempotency_key) DO NOTHING
	`, orgID, key)
	if err != nil {
		return IdempotencyRecord{}, false, err
	}

	rec, err = r.selectIdempotencyForUpdate(ctx, tx, orgID, key)
	if err != nil {
		return IdempotencyRecord{}, false, err
	}
	return rec, false, nil
}

func (r *ReservationRepository) FinalizeIdempotency(ctx context.Context, tx pgx.Tx, orgID, key, reservationID string, statusCode int, response []byte) error {
	_, err := tx.Exec(ctx, `
		UPDATE reservation_idempotency_keys
		SET reservation_id = $3,
			status_code = $4,
			response_payload = $5,
			updated_at = now()
		WHERE org_id = $1 AND idempotency_key = $2
	`, orgID, key, reservationID, statusCode, response)
	return err
}

func (r *ReservationRepository) selectIdempotencyForUpdate(ctx context.Context, tx pgx.Tx, orgID, key string) (IdempotencyRecord, error) {
	var rec IdempotencyRecord
	var responseText string
	err := tx.QueryRow(ctx, `
		SELECT org_id::text,
			idempotency_key,
			COALESCE(reservation_id::text, ''),
			COALESCE(status_code, 0),
			COALESCE(response_payload::text, '')
		FROM reservation_idempotency_keys
		WHERE org_id = $1 AND idempotency_key = $2
		FOR UPDATE
	`, orgID, key).Scan(
		&rec.OrgID,
		&rec.IdempotencyKey,
		&rec.ReservationID,
		&rec.StatusCode,
		&responseText,
	)
	if err != nil {
		return IdempotencyRecord{}, err
	}
	if responseText != "" {
		rec.ResponsePayload = []byte(responseText)
	}
	return rec, nil
}
