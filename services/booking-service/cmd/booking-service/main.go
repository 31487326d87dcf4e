package main

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/lokalhub/lokalhub/libs/auth"
	"github.com/lokalhub/lokalhub/libs/config"
	"github.com/lokalhub/lokalhub/libs/db"
	"github.com/lokalhub/lokalhub/libs/httpx"
	"github.com/lokalhub/lokalhub/libs/kafkax"
	otelx "github.com/lokalhub/lokalhub/libs/otel"
	"github.com/lokalhub/lokalhub/libs/runtime"
	"github.com/lokalhub/lokalhub/services/booking-service/internal/consumer"
	"github.com/lokalhub/lokalhub/services/booking-service/internal/directory"
	"github.com/lokalhub/lokalhub/services/booking-service/internal/handlers"
	"github.com/lokalhub/lokalhub/services/booking-service/internal/inbox"
	"github.com/lokalhub/lokalhub/services/booking-service/internal/outbox"
	"github.com/lokalhub/lokalhub/services/booking-service/internal/payments"
	"github.com/lokalhub/lokalhub/services/booking-service/internal/storage"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

func main() {
	service := config.String("SERVICE_NAME", "booking-service")
	port, err := config.Port("PORT", "8083")
	if err != nil {
		panic(err)
	}
	logger := runtime.NewLogger(service)

	ctx, stop := runtime.SignalContext()
	defer stop()

	otelShutdown, err := otelx.Setup(ctx, otelx.ConfigFromEnv(service))
	if err != nil {
		logger.Error("otel setup failed", "err", err)
	} else {
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = otelShutdown(shutdownCtx)
		}()
	}

	dbURL, err := config.RequiredString("DATABASE_URL")
	if err != nil {
		panic(err)
	}

	pool, err := db.Open(ctx, dbURL, db.Options{
		MaxConns: int32(config.Int("DB_MAX_CONNS", 0)),
	})
	if err != nil {
		logger.Error("db connection failed", "err", err)
		panic(err)
	}
	defer pool.Close()

	reservationsRepo := storage.NewReservationRepository(pool)
	scheduleRepo := storage.NewScheduleRepository(pool)
	resourcesRepo := storage.NewResourceRepository(pool)
	outboxRepo := outbox.NewRepository(pool)

	directoryProvider, err := directory.NewProvider(config.String("DIRECTORY_GRPC_ADDR", ""))
	if err != nil {
		logger.Error("directory provider init failed; using stored settings only", "err", err)
		directoryProvider = nil
	}

	deposits := payments.NewDeposits(config.String("STRIPE_SECRET_KEY", ""))
	if !deposits.Enabled() {
		logger.Warn("booking-fee deposits disabled (no stripe secret key configured)")
	}

	jwtSecret := config.String("JWT_HS256_SECRET", "")
	if jwtSecret == "" {
		logger.Warn("JWT_HS256_SECRET not set; admin routes will reject all tokens")
	}
	var jwksClient *auth.JWKSClient
	if jwksURL := config.String("JWKS_URL", ""); jwksURL != "" {
		jwksClient = auth.NewJWKSClient(jwksURL, config.Seconds("JWKS_TTL_SECONDS", 5*time.Minute))
	}

	outboxPublisher := outbox.NewPublisher(pool, outboxRepo, logger, outbox.PublisherConfig{
		Brokers:   config.String("KAFKA_BROKERS", ""),
		PollEvery: 2 * time.Second,
		BatchSize: 50,
	})
	go outboxPublisher.Run(ctx)

	inboxRepo := inbox.NewRepository(pool)
	quotaTopic := config.String("KAFKA_CONSUME_TOPIC", "membership.plan.updated.v1")
	if strings.TrimSpace(quotaTopic) != "" {
		consumerCfg := consumer.Config{
			Brokers: config.String("KAFKA_BROKERS", ""),
			GroupID: config.String("KAFKA_GROUP_ID", "booking-service"),
			Topic:   quotaTopic,
		}
		quotaConsumer := consumer.New(logger, inboxRepo, consumerCfg, func(ctx context.Context, msg kafka.Message) error {
			var payload struct {
				OrgID                 string `json:"org_id"`
				MemberID              string `json:"member_id"`
				Plan                  string `json:"plan"`
				MaxActiveReservations int    `json:"max_active_reservations"`
			}
			if err := json.Unmarshal(msg.Value, &payload); err != nil {
				logger.Error("invalid event payload", "err", err, "topic", msg.Topic)
				return nil
			}
			if payload.OrgID == "" || payload.MemberID == "" || payload.Plan == "" || payload.MaxActiveReservations <= 0 {
				logger.Error("missing required event fields", "topic", msg.Topic)
				return nil
			}

			tx, err := pool.Begin(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = tx.Rollback(ctx) }()

			if err := resourcesRepo.UpsertMemberQuota(ctx, tx, storage.MemberQuota{
				OrgID:                 payload.OrgID,
				MemberID:              payload.MemberID,
				Plan:                  payload.Plan,
				MaxActiveReservations: payload.MaxActiveReservations,
			}); err != nil {
				return err
			}
			return tx.Commit(ctx)
		})
		go quotaConsumer.Run(ctx)
	}

	h := handlers.New(reservationsRepo, scheduleRepo, resourcesRepo, outboxRepo, logger,
		directoryProvider, deposits, handlers.Config{
			JWTSecret:              jwtSecret,
			JWKS:                   jwksClient,
			StripeWebhookSecret:    config.String("STRIPE_WEBHOOK_SECRET", ""),
			StripeWebhookTolerance: config.Seconds("STRIPE_WEBHOOK_TOLERANCE_SECONDS", 5*time.Minute),
		})

	// Public routes get a per-client rate limit, Redis-backed when available
	// so the window is shared across replicas.
	publicLimit := func(next http.Handler) http.Handler { return next }
	if redisAddr := config.String("REDIS_ADDR", ""); redisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: redisAddr})
		limiter := httpx.NewRedisRateLimiter(rdb, config.Int("RATE_LIMIT_PER_MINUTE", 120), time.Minute, "booking")
		publicLimit = limiter.Middleware(logger, true)
	} else {
		limiter := httpx.NewRateLimiter(config.Int("RATE_LIMIT_PER_MINUTE", 120), time.Minute)
		publicLimit = limiter.Middleware()
	}

	mux := runtime.NewBaseMux(
		runtime.ReadyCheck{Name: "db", Check: db.ReadyCheck(pool)},
		runtime.ReadyCheck{Name: "kafka", Check: kafkax.ReadyCheck(config.String("KAFKA_BROKERS", ""))},
	)
	mux.Handle("/api/v1/public/slots", publicLimit(http.HandlerFunc(h.Slots)))
	mux.Handle("/api/v1/public/calendar", publicLimit(http.HandlerFunc(h.Calendar)))
	mux.Handle("/api/v1/reservations", publicLimit(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			h.CreateReservation(w, r)
		case http.MethodGet:
			h.ListReservations(w, r)
		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	})))
	mux.Handle("/api/v1/reservations/cancel", publicLimit(http.HandlerFunc(h.CancelReservation)))
	mux.HandleFunc("/api/v1/admin/rules", h.AdminRules)
	mux.HandleFunc("/api/v1/admin/blackouts", h.AdminBlackouts)
	mux.HandleFunc("/api/v1/admin/blackouts/delete", h.AdminDeleteBlackout)
	mux.HandleFunc("/api/v1/admin/resources", h.AdminResources)
	mux.HandleFunc("/api/v1/payments/stripe/webhook", h.StripeWebhook)

	httpHandler := httpx.Chain(mux,
		httpx.WithRequestID,
		httpx.WithAccessLog(logger),
		httpx.WithBodyLimit(1<<20),
		httpx.WithCORS(httpx.CORSPolicy{
			AllowedOrigins: strings.Split(config.String("CORS_ALLOWED_ORIGINS", ""), ","),
			AllowedMethods: []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders: []string{"Authorization", "Content-Type", "Idempotency-Key"},
			MaxAge:         10 * time.Minute,
		}),
	)
	httpHandler = otelhttp.NewHandler(httpHandler, "booking")
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           httpHandler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("http server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server error", "err", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "err", err)
	}
	logger.Info("http server stopped")
}
