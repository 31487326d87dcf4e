package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/lokalhub/lokalhub/libs/config"
	"github.com/lokalhub/lokalhub/libs/db"
	"github.com/lokalhub/lokalhub/libs/httpx"
	"github.com/lokalhub/lokalhub/libs/kafkax"
	otelx "github.com/lokalhub/lokalhub/libs/otel"
	"github.com/lokalhub/lokalhub/libs/runtime"
	"github.com/lokalhub/lokalhub/services/notification-service/internal/consumer"
	"github.com/lokalhub/lokalhub/services/notification-service/internal/email"
	"github.com/lokalhub/lokalhub/services/notification-service/internal/inbox"
	"github.com/lokalhub/lokalhub/services/notification-service/internal/outbox"
	"github.com/lokalhub/lokalhub/services/notification-service/internal/storage"
	"github.com/segmentio/kafka-go"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

type reservationEvent struct {
	ReservationID string `json:"reservation_id"`
	OrgID         string `json:"org_id"`
	ResourceID    string `json:"resource_id"`
	ResourceName  string `json:"resource_name"`
	MemberID      string `json:"member_id"`
	MemberEmail   string `json:"member_email"`
	StartTime     string `json:"start_time"`
	EndTime       string `json:"end_time"`
	DurationLabel string `json:"duration_label"`
	AccessPIN     string `json:"access_pin"`
	CancelledAt   string `json:"cancelled_at"`
	Reason        string `json:"reason"`
}

func confirmationMail(evt reservationEvent) (subject, body string) {
	name := evt.ResourceName
	if name == "" {
		name = evt.ResourceID
	}
	subject = fmt.Sprintf("Booking confirmed: %s", name)
	body = fmt.Sprintf("Your booking of %s starts %s (%s).", name, evt.StartTime, evt.DurationLabel)
	if evt.AccessPIN != "" {
		body += fmt.Sprintf("\r\nDoor code: %s", evt.AccessPIN)
	}
	return subject, body
}

func cancellationMail(evt reservationEvent) (subject, body string) {
	name := evt.ResourceName
	if name == "" {
		name = evt.ResourceID
	}
	subject = fmt.Sprintf("Booking cancelled: %s", name)
	body = fmt.Sprintf("Your booking of %s starting %s has been cancelled.", name, evt.StartTime)
	if evt.Reason != "" {
		body += fmt.Sprintf("\r\nReason: %s", evt.Reason)
	}
	return subject, body
}

func writeOutboxResult(ctx context.Context, pool *db.Pool, outboxRepo *outbox.Repository, evt reservationEvent, kind, status, reason string) error {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	fields := map[string]any{
		"reservation_id": evt.ReservationID,
		"org_id":         evt.OrgID,
		"kind":           kind,
	}
	eventType := "notification.sent.v1"
	if status == "failed" {
		eventType = "notification.failed.v1"
		fields["error_reason"] = reason
		fields["failed_at"] = time.Now().UTC().Format(time.RFC3339)
	} else {
		fields["sent_at"] = time.Now().UTC().Format(time.RFC3339)
	}
	payload, err := json.Marshal(fields)
	if err != nil {
		return err
	}

	if err := outboxRepo.Insert(ctx, tx, outbox.Event{
		AggregateType: "notification",
		AggregateID:   evt.ReservationID,
		EventType:     eventType,
		Payload:       payload,
	}); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func main() {
	service := config.String("SERVICE_NAME", "notification-service")
	port, err := config.Port("PORT", "8085")
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

	pool, err := db.Open(ctx, dbURL, db.Options{})
	if err != nil {
		logger.Error("db connection failed", "err", err)
		panic(err)
	}
	defer pool.Close()

	inboxRepo := inbox.NewRepository(pool)
	notificationsRepo := storage.NewRepository(pool)
	outboxRepo := outbox.NewRepository(pool)
	outboxPublisher := outbox.NewPublisher(pool, outboxRepo, logger, outbox.PublisherConfig{
		Brokers:   config.String("KAFKA_BROKERS", ""),
		PollEvery: 2 * time.Second,
		BatchSize: 50,
	})
	go outboxPublisher.Run(ctx)

	smtpHost := config.String("SMTP_HOST", "mailpit")
	smtpPort := config.String("SMTP_PORT", "1025")
	smtpFrom := config.String("SMTP_FROM", "no-reply@lokalhub.local")
	emailSender := email.NewSMTPSender(smtpHost, smtpPort, smtpFrom)

	handleEvent := func(kind string) consumer.Handler {
		return func(ctx context.Context, msg kafka.Message) error {
			var evt reservationEvent
			if err := json.Unmarshal(msg.Value, &evt); err != nil {
				logger.Error("invalid reservation event payload", "err", err, "topic", msg.Topic)
				return nil
			}
			if evt.ReservationID == "" || evt.OrgID == "" {
				logger.Error("missing reservation event fields", "topic", msg.Topic)
				return nil
			}
			if evt.MemberEmail == "" {
				// Member has no email on file; nothing to send.
				logger.Info("reservation event without member email", "reservation_id", evt.ReservationID, "kind", kind)
				return nil
			}

			var subject, body string
			if kind == "cancellation" {
				subject, body = cancellationMail(evt)
			} else {
				subject, body = confirmationMail(evt)
			}

			status := "sent"
			failureReason := ""
			if err := emailSender.Send(evt.MemberEmail, subject, body); err != nil {
				status = "failed"
				failureReason = err.Error()
				logger.Error("email send failed", "err", err, "recipient", evt.MemberEmail)
			}

			if err := notificationsRepo.Insert(ctx, storage.Notification{
				ReservationID: evt.ReservationID,
				OrgID:         evt.OrgID,
				Kind:          kind,
				Recipient:     evt.MemberEmail,
				Payload: map[string]any{
					"resource_id":    evt.ResourceID,
					"start_time":     evt.StartTime,
					"end_time":       evt.EndTime,
					"duration_label": evt.DurationLabel,
				},
				Status: status,
			}); err != nil {
				logger.Error("failed to persist notification", "err", err)
				return err
			}

			if err := writeOutboxResult(ctx, pool, outboxRepo, evt, kind, status, failureReason); err != nil {
				logger.Error("failed to enqueue notification result", "err", err)
				return err
			}

			logger.Info("reservation event processed", "reservation_id", evt.ReservationID, "kind", kind, "status", status)
			return nil
		}
	}

	startConsumer := func(topic, kind string) {
		if strings.TrimSpace(topic) == "" {
			return
		}
		eventConsumer := consumer.New(logger, inboxRepo, consumer.Config{
			Brokers: config.String("KAFKA_BROKERS", ""),
			GroupID: config.String("KAFKA_GROUP_ID", "notification-service"),
			Topic:   topic,
		}, handleEvent(kind))
		go eventConsumer.Run(ctx)
	}

	startConsumer(config.String("KAFKA_CONSUME_TOPIC", "booking.reservation.created.v1"), "confirmation")
	startConsumer(config.String("KAFKA_CONSUME_TOPIC_2", "booking.reservation.cancelled.v1"), "cancellation")

	mux := runtime.NewBaseMux(
		runtime.ReadyCheck{Name: "db", Check: db.ReadyCheck(pool)},
		runtime.ReadyCheck{Name: "kafka", Check: kafkax.ReadyCheck(config.String("KAFKA_BROKERS", ""))},
	)
	handler := httpx.Chain(mux,
		httpx.WithRequestID,
		httpx.WithAccessLog(logger),
	)
	handler = otelhttp.NewHandler(handler, "notification")
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           handler,
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
