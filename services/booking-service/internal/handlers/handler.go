package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/lokalhub/lokalhub/libs/auth"
	"github.com/lokalhub/lokalhub/services/booking-service/internal/availability"
	"github.com/lokalhub/lokalhub/services/booking-service/internal/directory"
	"github.com/lokalhub/lokalhub/services/booking-service/internal/outbox"
	"github.com/lokalhub/lokalhub/services/booking-service/internal/payments"
	"github.com/lokalhub/lokalhub/services/booking-service/internal/storage"
)

type Handler struct {
	reservations *storage.ReservationRepository
	schedule     *storage.ScheduleRepository
	resources    *storage.ResourceRepository
	outboxRepo   *outbox.Repository
	logger       *slog.Logger
	directory    directory.Provider
	deposits     *payments.Deposits

	jwtSecret              string
	jwks                   *auth.JWKSClient
	stripeWebhookSecret    string
	stripeWebhookTolerance time.Duration
}

type Config struct {
	JWTSecret string
	// JWKS enables gateway-issued RS256 tokens on the admin routes; HS256
	// against JWTSecret stays the fallback.
	JWKS                   *auth.JWKSClient
	StripeWebhookSecret    string
	StripeWebhookTolerance time.Duration
}

func New(
	reservations *storage.ReservationRepository,
	schedule *storage.ScheduleRepository,
	resources *storage.ResourceRepository,
	outboxRepo *outbox.Repository,
	logger *slog.Logger,
	directoryProvider directory.Provider,
	deposits *payments.Deposits,
	cfg Config,
) *Handler {
	if cfg.StripeWebhookTolerance <= 0 {
		cfg.StripeWebhookTolerance = 5 * time.Minute
	}
	return &Handler{
		reservations:           reservations,
		schedule:               schedule,
		resources:              resources,
		outboxRepo:             outboxRepo,
		logger:                 logger,
		directory:              directoryProvider,
		deposits:               deposits,
		jwtSecret:              cfg.JWTSecret,
		jwks:                   cfg.JWKS,
		stripeWebhookSecret:    cfg.StripeWebhookSecret,
		stripeWebhookTolerance: cfg.StripeWebhookTolerance,
	}
}

func writeJSON(w http.ResponseWriter, statusCode int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		http.Error(w, "failed to build response", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_, _ = w.Write(body)
}

// rulesFromRows converts stored rows into engine rules. Rows that fail to
// parse were let through by an older validator; they are logged and skipped
// rather than taking the whole resource offline.
func (h *Handler) rulesFromRows(rows []storage.RuleRow) []availability.Rule {
	rules := make([]availability.Rule, 0, len(rows))
	for _, row := range rows {
		start, err := availability.ParseClock(row.StartTime)
		if err != nil {
			h.logger.Error("invalid stored rule start", "resource_id", row.ResourceID, "weekday", row.Weekday, "err", err)
			continue
		}
		end, err := availability.ParseClock(row.EndTime)
		if err != nil {
			h.logger.Error("invalid stored rule end", "resource_id", row.ResourceID, "weekday", row.Weekday, "err", err)
			continue
		}
		rules = append(rules, availability.Rule{
			Weekday: row.Weekday,
			Start:   start,
			End:     end,
			Active:  row.Active,
		})
	}
	return rules
}
