package handlers

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/lokalhub/lokalhub/services/booking-service/internal/availability"
	"github.com/lokalhub/lokalhub/services/booking-service/internal/storage"
)

type slotItem struct {
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

type slotsResponse struct {
	DurationLabel string     `json:"duration_label"`
	Slots         []slotItem `json:"slots"`
}

const maxDurationMinutes = 28 * 24 * 60

// Slots returns bookable start times for one resource and date.
func (h *Handler) Slots(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	orgID := strings.TrimSpace(r.URL.Query().Get("org_id"))
	resourceID := strings.TrimSpace(r.URL.Query().Get("resource_id"))
	dateStr := strings.TrimSpace(r.URL.Query().Get("date"))
	durationStr := strings.TrimSpace(r.URL.Query().Get("duration_minutes"))
	if orgID == "" || resourceID == "" || dateStr == "" || durationStr == "" {
		http.Error(w, "org_id, resource_id, date, and duration_minutes are required", http.StatusBadRequest)
		return
	}

	targetDate, err := time.ParseInLocation("2006-01-02", dateStr, time.UTC)
	if err != nil {
		http.Error(w, "invalid date", http.StatusBadRequest)
		return
	}
	durationMins, err := strconv.Atoi(durationStr)
	if err != nil || durationMins <= 0 || durationMins > maxDurationMinutes {
		http.Error(w, "invalid duration_minutes", http.StatusBadRequest)
		return
	}
	duration := time.Duration(durationMins) * time.Minute

	ctx := r.Context()
	resource, err := h.resources.Get(ctx, orgID, resourceID)
	if err != nil {
		if storage.IsNotFound(err) {
			http.Error(w, "resource not found", http.StatusNotFound)
			return
		}
		http.Error(w, "failed to load resource", http.StatusInternalServerError)
		return
	}

	step := time.Duration(resource.SlotStepMinutes) * time.Minute
	lead := time.Duration(resource.MinLeadMinutes) * time.Minute
	extraBusy, bookable := h.directoryOverrides(ctx, orgID, resourceID, &step, &lead)
	if !bookable {
		writeJSON(w, http.StatusOK, slotsResponse{
			DurationLabel: availability.FormatDuration(durationMins),
			Slots:         []slotItem{},
		})
		return
	}

	ruleRows, err := h.schedule.ListRules(ctx, orgID, resourceID)
	if err != nil {
		http.Error(w, "failed to load availability rules", http.StatusInternalServerError)
		return
	}
	rules := h.rulesFromRows(ruleRows)

	busy, err := h.busySnapshot(ctx, orgID, resourceID, targetDate, duration)
	if err != nil {
		http.Error(w, "failed to load busy ranges", http.StatusInternalServerError)
		return
	}
	busy = append(busy, extraBusy...)

	slots, err := availability.Generate(availability.Params{
		Rules:      rules,
		Busy:       busy,
		TargetDate: targetDate,
		Duration:   duration,
		Step:       step,
		MinLead:    lead,
		Now:        time.Now().UTC(),
	})
	if err != nil {
		http.Error(w, "invalid slot parameters", http.StatusBadRequest)
		return
	}

	items := make([]slotItem, 0, len(slots))
	for _, s := range slots {
		items = append(items, slotItem{
			StartTime: s.Start.UTC().Format(time.RFC3339),
			EndTime:   s.End.UTC().Format(time.RFC3339),
		})
	}
	writeJSON(w, http.StatusOK, slotsResponse{
		DurationLabel: availability.FormatDuration(durationMins),
		Slots:         items,
	})
}

type calendarDay struct {
	Date     string `json:"date"`
	Bookable bool   `json:"bookable"`
}

// Calendar returns one bookable flag per day of a month, for greying out days
// in the booking calendar. Rule-level only; busy ranges are not consulted.
func (h *Handler) Calendar(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	orgID := strings.TrimSpace(r.URL.Query().Get("org_id"))
	resourceID := strings.TrimSpace(r.URL.Query().Get("resource_id"))
	monthStr := strings.TrimSpace(r.URL.Query().Get("month"))
	if orgID == "" || resourceID == "" || monthStr == "" {
		http.Error(w, "org_id, resource_id, and month are required", http.StatusBadRequest)
		return
	}

	monthStart, err := time.ParseInLocation("2006-01", monthStr, time.UTC)
	if err != nil {
		http.Error(w, "invalid month", http.StatusBadRequest)
		return
	}

	ruleRows, err := h.schedule.ListRules(r.Context(), orgID, resourceID)
	if err != nil {
		http.Error(w, "failed to load availability rules", http.StatusInternalServerError)
		return
	}
	rules := h.rulesFromRows(ruleRows)

	var days []calendarDay
	for d := monthStart; d.Month() == monthStart.Month(); d = d.AddDate(0, 0, 1) {
		days = append(days, calendarDay{
			Date:     d.Format("2006-01-02"),
			Bookable: availability.HasAvailability(rules, d),
		})
	}
	writeJSON(w, http.StatusOK, days)
}

// busySnapshot collects confirmed reservations and maintenance blackouts over
// the span the engine can reach for this query: one day back for
// cross-midnight windows, the look-ahead forward.
func (h *Handler) busySnapshot(ctx context.Context, orgID, resourceID string, targetDate time.Time, duration time.Duration) ([]availability.Interval, error) {
	lookAheadDays := int((duration+24*time.Hour-1)/(24*time.Hour)) + 1
	from := targetDate.AddDate(0, 0, -1)
	to := targetDate.AddDate(0, 0, lookAheadDays+1)

	reservations, err := h.reservations.ListOverlapping(ctx, orgID, resourceID, from, to)
	if err != nil {
		return nil, err
	}
	blackouts, err := h.schedule.ListBlackouts(ctx, orgID, resourceID, from, to, 0)
	if err != nil {
		return nil, err
	}

	busy := make([]availability.Interval, 0, len(reservations)+len(blackouts))
	for _, res := range reservations {
		busy = append(busy, availability.Interval{Start: res.StartTime, End: res.EndTime})
	}
	for _, b := range blackouts {
		busy = append(busy, availability.Interval{Start: b.StartTime, End: b.EndTime})
	}
	return busy, nil
}

// directoryOverrides consults the org directory when the gRPC provider is
// compiled in. Returns any closure as a busy interval and whether the
// resource is bookable at all.
func (h *Handler) directoryOverrides(ctx context.Context, orgID, resourceID string, step, lead *time.Duration) ([]availability.Interval, bool) {
	if h.directory == nil {
		return nil, true
	}

	reqCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	cfg, err := h.directory.GetScheduleConfig(reqCtx, orgID, resourceID)
	if err != nil {
		h.logger.Warn("directory schedule config fetch failed; using stored settings", "err", err)
		return nil, true
	}
	if !cfg.Bookable {
		return nil, false
	}
	if cfg.SlotStepMinutes > 0 {
		*step = time.Duration(cfg.SlotStepMinutes) * time.Minute
	}
	if cfg.MinLeadMinutes > 0 {
		*lead = time.Duration(cfg.MinLeadMinutes) * time.Minute
	}
	if cfg.ClosedUntilUTC.After(cfg.ClosedFromUTC) {
		return []availability.Interval{{Start: cfg.ClosedFromUTC, End: cfg.ClosedUntilUTC}}, true
	}
	return nil, true
}
