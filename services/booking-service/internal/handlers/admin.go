package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/lokalhub/lokalhub/libs/auth"
	"github.com/lokalhub/lokalhub/services/booking-service/internal/availability"
	"github.com/lokalhub/lokalhub/services/booking-service/internal/storage"
)

// requireManager verifies the bearer token and the manager role. The returned
// org id is the caller's; every admin operation is scoped to it, the request
// body's org_id is never trusted on these routes. RS256 tokens with a key id
// are verified against the configured JWKS endpoint; everything else falls
// back to the shared HS256 secret.
func (h *Handler) requireManager(w http.ResponseWriter, r *http.Request) (string, bool) {
	raw := strings.TrimSpace(r.Header.Get("Authorization"))
	if !strings.HasPrefix(raw, "Bearer ") {
		http.Error(w, "missing bearer token", http.StatusUnauthorized)
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(raw, "Bearer "))

	var claims *auth.Claims
	var err error
	if h.jwks != nil {
		header, herr := auth.ParseHeader(token)
		if herr != nil {
			http.Error(w, "invalid token", http.StatusUnauthorized)
			return "", false
		}
		if header.Alg == "RS256" && header.Kid != "" {
			pub, kerr := h.jwks.Get(header.Kid)
			if kerr != nil {
				http.Error(w, "invalid token key", http.StatusUnauthorized)
				return "", false
			}
			claims, err = auth.VerifyRS256(token, pub)
		} else {
			claims, err = auth.ParseAndVerifyHS256(token, h.jwtSecret)
		}
	} else {
		claims, err = auth.ParseAndVerifyHS256(token, h.jwtSecret)
	}
	if err != nil {
		http.Error(w, "invalid token", http.StatusUnauthorized)
		return "", false
	}
	if claims.Role != "manager" || claims.OrgID == "" {
		http.Error(w, "manager role required", http.StatusForbidden)
		return "", false
	}
	return claims.OrgID, true
}

type upsertRuleRequest struct {
	ResourceID string `json:"resource_id"`
	Weekday    int    `json:"weekday"`
	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
	Active     bool   `json:"active"`
}

func (h *Handler) AdminRules(w http.ResponseWriter, r *http.Request) {
	orgID, ok := h.requireManager(w, r)
	if !ok {
		return
	}

	switch r.Method {
	case http.MethodGet:
		resourceID := strings.TrimSpace(r.URL.Query().Get("resource_id"))
		if resourceID == "" {
			http.Error(w, "resource_id required", http.StatusBadRequest)
			return
		}
		rows, err := h.schedule.ListRules(r.Context(), orgID, resourceID)
		if err != nil {
			http.Error(w, "failed to list rules", http.StatusInternalServerError)
			return
		}
		if rows == nil {
			rows = []storage.RuleRow{}
		}
		writeJSON(w, http.StatusOK, rows)

	case http.MethodPost:
		var req upsertRuleRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json body", http.StatusBadRequest)
			return
		}
		req.ResourceID = strings.TrimSpace(req.ResourceID)
		req.StartTime = strings.TrimSpace(req.StartTime)
		req.EndTime = strings.TrimSpace(req.EndTime)
		if req.ResourceID == "" {
			http.Error(w, "resource_id required", http.StatusBadRequest)
			return
		}
		if req.Weekday < 1 || req.Weekday > 7 {
			http.Error(w, "weekday must be 1..7 (Monday..Sunday)", http.StatusBadRequest)
			return
		}
		// Parse both bounds up front so a malformed clock string is rejected
		// here and never reaches slot generation.
		start, err := availability.ParseClock(req.StartTime)
		if err != nil {
			http.Error(w, "invalid start_time: "+err.Error(), http.StatusBadRequest)
			return
		}
		end, err := availability.ParseClock(req.EndTime)
		if err != nil {
			http.Error(w, "invalid end_time: "+err.Error(), http.StatusBadRequest)
			return
		}

		err = h.schedule.UpsertRule(r.Context(), orgID, storage.RuleRow{
			ResourceID: req.ResourceID,
			Weekday:    req.Weekday,
			StartTime:  start.String(),
			EndTime:    end.String(),
			Active:     req.Active,
		})
		if err != nil {
			if storage.IsNotFound(err) {
				http.Error(w, "resource not found", http.StatusNotFound)
				return
			}
			http.Error(w, "failed to save rule", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "saved"})

	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

type createBlackoutRequest struct {
	ResourceID string `json:"resource_id"`
	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
	Reason     string `json:"reason"`
}

func (h *Handler) AdminBlackouts(w http.ResponseWriter, r *http.Request) {
	orgID, ok := h.requireManager(w, r)
	if !ok {
		return
	}

	switch r.Method {
	case http.MethodGet:
		resourceID := strings.TrimSpace(r.URL.Query().Get("resource_id"))
		if resourceID == "" {
			http.Error(w, "resource_id required", http.StatusBadRequest)
			return
		}
		from := time.Now().UTC()
		to := from.AddDate(0, 3, 0)
		if raw := strings.TrimSpace(r.URL.Query().Get("from")); raw != "" {
			t, err := time.Parse(time.RFC3339, raw)
			if err != nil {
				http.Error(w, "invalid from", http.StatusBadRequest)
				return
			}
			from = t
		}
		if raw := strings.TrimSpace(r.URL.Query().Get("to")); raw != "" {
			t, err := time.Parse(time.RFC3339, raw)
			if err != nil {
				http.Error(w, "invalid to", http.StatusBadRequest)
				return
			}
			to = t
		}
		limit := 100
		if raw := strings.TrimSpace(r.URL.Query().Get("limit")); raw != "" {
			if n, err := strconv.Atoi(raw); err == nil && n > 0 && n <= 500 {
				limit = n
			}
		}
		blackouts, err := h.schedule.ListBlackouts(r.Context(), orgID, resourceID, from, to, limit)
		if err != nil {
			http.Error(w, "failed to list blackouts", http.StatusInternalServerError)
			return
		}
		if blackouts == nil {
			blackouts = []storage.Blackout{}
		}
		writeJSON(w, http.StatusOK, blackouts)

	case http.MethodPost:
		var req createBlackoutRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json body", http.StatusBadRequest)
			return
		}
		req.ResourceID = strings.TrimSpace(req.ResourceID)
		if req.ResourceID == "" {
			http.Error(w, "resource_id required", http.StatusBadRequest)
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

		id, err := h.schedule.CreateBlackout(r.Context(), orgID, req.ResourceID, startTime.UTC(), endTime.UTC(), strings.TrimSpace(req.Reason))
		if err != nil {
			if storage.IsNotFound(err) {
				http.Error(w, "resource not found", http.StatusNotFound)
				return
			}
			http.Error(w, "failed to create blackout", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]string{"blackout_id": id})

	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

type deleteBlackoutRequest struct {
	BlackoutID string `json:"blackout_id"`
}

func (h *Handler) AdminDeleteBlackout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	orgID, ok := h.requireManager(w, r)
	if !ok {
		return
	}

	var req deleteBlackoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json body", http.StatusBadRequest)
		return
	}
	req.BlackoutID = strings.TrimSpace(req.BlackoutID)
	if req.BlackoutID == "" {
		http.Error(w, "blackout_id required", http.StatusBadRequest)
		return
	}

	if err := h.schedule.DeleteBlackout(r.Context(), orgID, req.BlackoutID); err != nil {
		if storage.IsNotFound(err) {
			http.Error(w, "blackout not found", http.StatusNotFound)
			return
		}
		http.Error(w, "failed to delete blackout", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

type upsertResourceRequest struct {
	ResourceID      string `json:"resource_id"`
	Name            string `json:"name"`
	SlotStepMinutes int    `json:"slot_step_minutes"`
	MinLeadMinutes  int    `json:"min_lead_minutes"`
	FeeAmountCents  int64  `json:"fee_amount_cents"`
	FeeCurrency     string `json:"fee_currency"`
}

func (h *Handler) AdminResources(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	orgID, ok := h.requireManager(w, r)
	if !ok {
		return
	}

	var req upsertResourceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json body", http.StatusBadRequest)
		return
	}
	req.ResourceID = strings.TrimSpace(req.ResourceID)
	req.Name = strings.TrimSpace(req.Name)
	req.FeeCurrency = strings.ToLower(strings.TrimSpace(req.FeeCurrency))
	if req.ResourceID == "" || req.Name == "" {
		http.Error(w, "resource_id and name required", http.StatusBadRequest)
		return
	}
	if req.SlotStepMinutes < 0 || req.SlotStepMinutes > 24*60 {
		http.Error(w, "invalid slot_step_minutes", http.StatusBadRequest)
		return
	}
	if req.MinLeadMinutes < 0 || req.MinLeadMinutes > 7*24*60 {
		http.Error(w, "invalid min_lead_minutes", http.StatusBadRequest)
		return
	}
	if req.FeeAmountCents < 0 {
		http.Error(w, "invalid fee_amount_cents", http.StatusBadRequest)
		return
	}
	if req.FeeAmountCents > 0 && req.FeeCurrency == "" {
		http.Error(w, "fee_currency required when fee_amount_cents is set", http.StatusBadRequest)
		return
	}

	err := h.resources.UpsertSettings(r.Context(), orgID, req.ResourceID, req.Name,
		req.SlotStepMinutes, req.MinLeadMinutes, req.FeeAmountCents, req.FeeCurrency)
	if err != nil {
		http.Error(w, "failed to save resource", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "saved"})
}
