package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/lokalhub/lokalhub/services/booking-service/internal/access"
	"github.com/lokalhub/lokalhub/services/booking-service/internal/availability"
	"github.com/lokalhub/lokalhub/services/booking-service/internal/model"
	"github.com/lokalhub/lokalhub/services/booking-service/internal/outbox"
	"github.com/lokalhub/lokalhub/services/booking-service/internal/storage"
)

const defaultMaxActiveReservations = 3

type createReservationRequest struct {
	OrgID       string `json:"org_id"`
	ResourceID  string `json:"resource_id"`
	MemberID    string `json:"member_id"`
	MemberEmail string `json:"member_email"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
}

type createReservationResponse struct {
	ReservationID       string `json:"reservation_id"`
	AccessPIN           string `json:"access_pin,omitempty"`
	DepositClientSecret string `json:"deposit_client_secret,omitempty"`
}

type cancelReservationRequest struct {
	OrgID         string `json:"org_id"`
	ReservationID string `json:"reservation_id"`
	Reason        string `json:"reason"`
}

type cancelReservationResponse struct {
	ReservationID string `json:"reservation_id"`
	Status        string `json:"status"`
	CancelledAt   string `json:"cancelled_at"`
}

type reservationItem struct {
	ReservationID string `json:"reservation_id"`
	ResourceID    string `json:"resource_id"`
	StartTime     string `json:"start_time"`
	EndTime       string `json:"end_time"`
	Status        string `json:"status"`
	DepositStatus string `json:"deposit_status,omitempty"`
	CancelledAt   string `json:"cancelled_at,omitempty"`
	CreatedAt     string `json:"created_at"`
}

func (h *Handler) CreateReservation(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req createReservationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json body", http.StatusBadRequest)
		return
	}

	req.OrgID = strings.TrimSpace(req.OrgID)
	req.ResourceID = strings.TrimSpace(req.ResourceID)
	req.MemberID = strings.TrimSpace(req.MemberID)
	req.MemberEmail = strings.TrimSpace(req.MemberEmail)

	if req.OrgID == "" || req.ResourceID == "" || req.MemberID == "" {
		http.Error(w, "missing required fields", http.StatusBadRequest)
		return
	}

	startTime, err := time.Parse(time.RFC3339, req.StartTime)
	if err != nil {
		http.Error(w, "invalid start_time", http.StatusBadRequest)
		return
	}
	endTime, err := time.Parse(time.RFC3339, req.EndTime)
	if err != nil {
		http.Error(w, "invalid end_time", http.StatusBadRequest)
		return
	}
	if !endTime.After(startTime) {
		http.Error(w, "end_time must be after start_time", http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	resource, err := h.resources.Get(ctx, req.OrgID, req.ResourceID)
	if err != nil {
		if storage.IsNotFound(err) {
			http.Error(w, "resource not found", http.StatusNotFound)
			return
		}
		http.Error(w, "failed to load resource", http.StatusInternalServerError)
		return
	}

	res := &model.Reservation{
		OrgID:         req.OrgID,
		ResourceID:    req.ResourceID,
		MemberID:      req.MemberID,
		MemberEmail:   req.MemberEmail,
		StartTime:     startTime.UTC(),
		EndTime:       endTime.UTC(),
		Status:        "confirmed",
		DepositStatus: depositStatusForFee(resource.FeeAmountCents, h.deposits != nil && h.deposits.Enabled()),
	}

	tx, err := h.reservations.Begin(ctx)
	if err != nil {
		http.Error(w, "db error", http.StatusInternalServerError)
		return
	}
	defer func() { _ = tx.Rollback(ctx) }()

	idempotencyKey := strings.TrimSpace(r.Header.Get("Idempotency-Key"))
	if idempotencyKey != "" {
		rec, exists, err := h.reservations.LockIdempotencyKey(ctx, tx, req.OrgID, idempotencyKey)
		if err != nil {
			http.Error(w, "failed to lock idempotency key", http.StatusInternalServerError)
			return
		}
		if exists && rec.StatusCode > 0 {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(rec.StatusCode)
			if len(rec.ResponsePayload) > 0 {
				_, _ = w.Write(rec.ResponsePayload)
				return
			}
			_ = json.NewEncoder(w).Encode(createReservationResponse{ReservationID: rec.ReservationID})
			return
		}
	}

	now := time.Now().UTC()
	lead := availability.DefaultMinLead
	if resource.MinLeadMinutes > 0 {
		lead = time.Duration(resource.MinLeadMinutes) * time.Minute
	}
	if res.StartTime.Before(now.Add(lead)) {
		h.rejectCreate(ctx, tx, w, req.OrgID, idempotencyKey, http.StatusUnprocessableEntity, "start_time is in the past or inside the lead window")
		return
	}

	if err := h.enforceQuota(ctx, tx, req.OrgID, req.MemberID, now); err != nil {
		if errors.Is(err, errQuotaExceeded) {
			h.rejectCreate(ctx, tx, w, req.OrgID, idempotencyKey, http.StatusUnprocessableEntity, err.Error())
			return
		}
		http.Error(w, "quota check failed", http.StatusInternalServerError)
		return
	}

	ok, err := h.validateAgainstSchedule(ctx, res)
	if err != nil {
		http.Error(w, "failed to validate reservation", http.StatusInternalServerError)
		return
	}
	if !ok {
		h.rejectCreate(ctx, tx, w, req.OrgID, idempotencyKey, http.StatusUnprocessableEntity, "requested time is outside resource availability")
		return
	}

	id, err := h.reservations.Create(ctx, tx, res)
	if err != nil {
		if storage.IsConflict(err) {
			http.Error(w, "time slot already reserved", http.StatusConflict)
			return
		}
		http.Error(w, "failed to create reservation", http.StatusInternalServerError)
		return
	}

	pin, err := access.GeneratePIN()
	if err != nil {
		http.Error(w, "failed to issue access code", http.StatusInternalServerError)
		return
	}
	pinHash, err := access.HashPIN(pin)
	if err != nil {
		http.Error(w, "failed to issue access code", http.StatusInternalServerError)
		return
	}
	if err := h.reservations.SetAccessPIN(ctx, tx, id, pinHash); err != nil {
		http.Error(w, "failed to store access code", http.StatusInternalServerError)
		return
	}

	durationMins := int(res.EndTime.Sub(res.StartTime) / time.Minute)
	evtPayload, err := json.Marshal(map[string]any{
		"reservation_id": id,
		"org_id":         res.OrgID,
		"resource_id":    res.ResourceID,
		"resource_name":  resource.Name,
		"member_id":      res.MemberID,
		"member_email":   res.MemberEmail,
		"start_time":     res.StartTime.Format(time.RFC3339),
		"end_time":       res.EndTime.Format(time.RFC3339),
		"duration_label": availability.FormatDuration(durationMins),
		"access_pin":     pin,
		"deposit_status": res.DepositStatus,
	})
	if err != nil {
		http.Error(w, "failed to build event payload", http.StatusInternalServerError)
		return
	}
	if err := h.outboxRepo.Insert(ctx, tx, outbox.Event{
		AggregateType: "reservation",
		AggregateID:   id,
		EventType:     "booking.reservation.created.v1",
		Payload:       evtPayload,
	}); err != nil {
		http.Error(w, "failed to write outbox event", http.StatusInternalServerError)
		return
	}

	// The stored replay body never carries a client secret; the payment
	// intent is created only after commit.
	respBody, err := json.Marshal(createReservationResponse{
		ReservationID: id,
		AccessPIN:     pin,
	})
	if err != nil {
		http.Error(w, "failed to build response", http.StatusInternalServerError)
		return
	}
	if idempotencyKey != "" {
		if err := h.reservations.FinalizeIdempotency(ctx, tx, req.OrgID, idempotencyKey, id, http.StatusCreated, respBody); err != nil {
			http.Error(w, "failed to finalize idempotency key", http.StatusInternalServerError)
			return
		}
	}

	if err := tx.Commit(ctx); err != nil {
		http.Error(w, "failed to commit", http.StatusInternalServerError)
		return
	}

	// The Stripe call happens outside the transaction so a slow provider
	// never pins the reservation row or the idempotency-key lock. The intent
	// idempotency key is derived from the reservation id, so a retry after a
	// failure here resumes the same intent.
	clientSecret := ""
	if res.DepositStatus == "pending" {
		intent, err := h.deposits.CreateIntent(ctx, req.OrgID, id, resource.FeeAmountCents, resource.FeeCurrency)
		if err != nil {
			h.logger.Error("deposit intent create failed", "err", err, "reservation_id", id)
		} else if err := h.reservations.SetDepositPending(ctx, id, intent.IntentID); err != nil {
			h.logger.Error("failed to record payment intent id", "err", err, "reservation_id", id)
		} else {
			clientSecret = intent.ClientSecret
		}
	}

	writeJSON(w, http.StatusCreated, createReservationResponse{
		ReservationID:       id,
		AccessPIN:           pin,
		DepositClientSecret: clientSecret,
	})
}

// depositStatusForFee fixes the deposit status written with the reservation
// row and its created event. It must be decided before commit even though the
// payment intent is created after, so the row and the event always agree.
func depositStatusForFee(feeCents int64, depositsEnabled bool) string {
	if feeCents > 0 && depositsEnabled {
		return "pending"
	}
	return "none"
}

var errQuotaExceeded = errors.New("active reservation limit reached")

func (h *Handler) enforceQuota(ctx context.Context, tx pgx.Tx, orgID, memberID string, now time.Time) error {
	max := defaultMaxActiveReservations
	quota, ok, err := h.resources.GetMemberQuota(ctx, tx, orgID, memberID)
	if err != nil {
		return err
	}
	if ok && quota.MaxActiveReservations > 0 {
		max = quota.MaxActiveReservations
	}

	cnt, err := h.reservations.CountActiveByMember(ctx, tx, orgID, memberID, now)
	if err != nil {
		return err
	}
	if cnt >= max {
		return errQuotaExceeded
	}
	return nil
}

// validateAgainstSchedule re-runs the engine checks at commit time: the span
// must be covered by the weekly windows and free of confirmed reservations
// and blackouts. The DB exclusion constraint is the final overlap guard.
func (h *Handler) validateAgainstSchedule(ctx context.Context, res *model.Reservation) (bool, error) {
	ruleRows, err := h.schedule.ListRules(ctx, res.OrgID, res.ResourceID)
	if err != nil {
		return false, err
	}
	rules := h.rulesFromRows(ruleRows)
	if !availability.Covered(res.StartTime, res.EndTime, rules) {
		return false, nil
	}

	day := time.Date(res.StartTime.Year(), res.StartTime.Month(), res.StartTime.Day(), 0, 0, 0, 0, time.UTC)
	busy, err := h.busySnapshot(ctx, res.OrgID, res.ResourceID, day, res.EndTime.Sub(res.StartTime))
	if err != nil {
		return false, err
	}
	if availability.Overlaps(res.StartTime, res.EndTime, busy) {
		return false, nil
	}
	return true, nil
}

func (h *Handler) rejectCreate(ctx context.Context, tx pgx.Tx, w http.ResponseWriter, orgID, idempotencyKey string, statusCode int, msg string) {
	if idempotencyKey != "" {
		body, err := json.Marshal(map[string]string{"error": msg})
		if err == nil {
			if err := h.reservations.FinalizeIdempotency(ctx, tx, orgID, idempotencyKey, "", statusCode, body); err == nil {
				_ = tx.Commit(ctx)
			} else {
				h.logger.Error("failed to finalize idempotency (error)", "err", err)
			}
		}
	}
	http.Error(w, msg, statusCode)
}

func (h *Handler) CancelReservation(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req cancelReservationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json body", http.StatusBadRequest)
		return
	}
	req.OrgID = strings.TrimSpace(req.OrgID)
	req.ReservationID = strings.TrimSpace(req.ReservationID)
	req.Reason = strings.TrimSpace(req.Reason)
	if req.OrgID == "" || req.ReservationID == "" {
		http.Error(w, "org_id and reservation_id required", http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	tx, err := h.reservations.Begin(ctx)
	if err != nil {
		http.Error(w, "db error", http.StatusInternalServerError)
		return
	}
	defer func() { _ = tx.Rollback(ctx) }()

	res, err := h.reservations.GetForUpdate(ctx, tx, req.OrgID, req.ReservationID)
	if err != nil {
		if storage.IsNotFound(err) {
			http.Error(w, "reservation not found", http.StatusNotFound)
			return
		}
		http.Error(w, "failed to load reservation", http.StatusInternalServerError)
		return
	}

	if res.Status == "cancelled" && res.CancelledAt != nil {
		h.writeCancelResponse(w, res.ID, res.CancelledAt.UTC())
		return
	}
	if res.Status != "confirmed" {
		http.Error(w, "reservation cannot be cancelled", http.StatusConflict)
		return
	}

	cancelledAt, err := h.reservations.Cancel(ctx, tx, req.OrgID, res.ID, req.Reason)
	if err != nil {
		http.Error(w, "failed to cancel reservation", http.StatusInternalServerError)
		return
	}

	cancelPayload, err := json.Marshal(map[string]any{
		"reservation_id": res.ID,
		"org_id":         res.OrgID,
		"resource_id":    res.ResourceID,
		"member_id":      res.MemberID,
		"member_email":   res.MemberEmail,
		"start_time":     res.StartTime.UTC().Format(time.RFC3339),
		"end_time":       res.EndTime.UTC().Format(time.RFC3339),
		"cancelled_at":   cancelledAt.UTC().Format(time.RFC3339),
		"reason":         req.Reason,
	})
	if err != nil {
		http.Error(w, "failed to build cancellation event", http.StatusInternalServerError)
		return
	}
	if err := h.outboxRepo.Insert(ctx, tx, outbox.Event{
		AggregateType: "reservation",
		AggregateID:   res.ID,
		EventType:     "booking.reservation.cancelled.v1",
		Payload:       cancelPayload,
	}); err != nil {
		http.Error(w, "failed to write outbox event", http.StatusInternalServerError)
		return
	}

	if err := tx.Commit(ctx); err != nil {
		http.Error(w, "failed to commit", http.StatusInternalServerError)
		return
	}
	h.writeCancelResponse(w, res.ID, cancelledAt.UTC())
}

func (h *Handler) ListReservations(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	orgID := strings.TrimSpace(r.URL.Query().Get("org_id"))
	memberID := strings.TrimSpace(r.URL.Query().Get("member_id"))
	if orgID == "" || memberID == "" {
		http.Error(w, "org_id and member_id required", http.StatusBadRequest)
		return
	}

	limit := 50
	if raw := strings.TrimSpace(r.URL.Query().Get("limit")); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 && n <= 200 {
			limit = n
		}
	}

	reservations, err := h.reservations.ListByMember(r.Context(), orgID, memberID, limit)
	if err != nil {
		http.Error(w, "failed to list reservations", http.StatusInternalServerError)
		return
	}

	items := make([]reservationItem, 0, len(reservations))
	for _, res := range reservations {
		item := reservationItem{
			ReservationID: res.ID,
			ResourceID:    res.ResourceID,
			StartTime:     res.StartTime.UTC().Format(time.RFC3339),
			EndTime:       res.EndTime.UTC().Format(time.RFC3339),
			Status:        res.Status,
			CreatedAt:     res.CreatedAt.UTC().Format(time.RFC3339),
		}
		if res.DepositStatus != "none" {
			item.DepositStatus = res.DepositStatus
		}
		if res.CancelledAt != nil {
			item.CancelledAt = res.CancelledAt.UTC().Format(time.RFC3339)
		}
		items = append(items, item)
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *Handler) writeCancelResponse(w http.ResponseWriter, reservationID string, cancelledAt time.Time) {
	writeJSON(w, http.StatusOK, cancelReservationResponse{
		ReservationID: reservationID,
		Status:        "cancelled",
		CancelledAt:   cancelledAt.Format(time.RFC3339),
	})
}
