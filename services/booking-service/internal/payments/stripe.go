package payments

import (
	"context"
	"strings"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/paymentintent"
)

// Deposits creates Stripe PaymentIntents for resources that carry a booking
// fee. Disabled (nil methods return empty ids) when no secret key is set.
type Deposits struct {
	secretKey string
}

func NewDeposits(secretKey string) *Deposits {
	return &Deposits{secretKey: strings.TrimSpace(secretKey)}
}

func (d *Deposits) Enabled() bool {
	return d.secretKey != ""
}

type DepositIntent struct {
	IntentID     string
	ClientSecret string
}

// CreateIntent registers the fee with Stripe. The reservation id rides in the
// metadata so the webhook can route the success event back to the row; the
// payment_intent_id column is the actual join key.
func (d *Deposits) CreateIntent(_ context.Context, orgID, reservationID string, amountCents int64, currency string) (DepositIntent, error) {
	// Stripe uses a global API key. Keep usage limited to this call.
	stripe.Key = d.secretKey

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amountCents),
		Currency: stripe.String(strings.ToLower(currency)),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
		Metadata: map[string]string{
			"org_id":         orgID,
			"reservation_id": reservationID,
		},
	}
	params.IdempotencyKey = stripe.String("reservation-deposit-" + reservationID)

	intent, err := paymentintent.New(params)
	if err != nil {
		return DepositIntent{}, err
	}
	return DepositIntent{IntentID: intent.ID, ClientSecret: intent.ClientSecret}, nil
}
