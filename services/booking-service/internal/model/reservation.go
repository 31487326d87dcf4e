package model

import "time"

type Reservation struct {
	ID            string
	OrgID         string
	ResourceID    string
	MemberID      string
	MemberEmail   string
	StartTime     time.Time
	EndTime       time.Time
	Status        string
	DepositStatus string
	CancelledAt   *time.Time
	CancelReason  string
	CreatedAt     time.Time
}

// Resource carries the per-resource booking settings managers configure.
// Zero step/lead minutes mean "use the engine defaults".
type Resource struct {
	ID              string
	OrgID           string
	Name            string
	SlotStepMinutes int
	MinLeadMinutes  int
	FeeAmountCents  int64
	FeeCurrency     string
}
