//go:build !protogen

package directory

import (
	"context"
	"time"
)

type ScheduleConfig struct {
	Bookable        bool
	SlotStepMinutes int
	MinLeadMinutes  int
	Timezone        string
	ClosedFromUTC   time.Time
	ClosedUntilUTC  time.Time
}

type Provider interface {
	GetScheduleConfig(ctx context.Context, orgID, resourceID string) (ScheduleConfig, error)
}

func NewProvider(_ string) (Provider, error) {
	return nil, nil
}
