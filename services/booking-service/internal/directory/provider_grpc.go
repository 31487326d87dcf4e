//go:build protogen

package directory

import (
	"context"
	"time"

	"github.com/lokalhub/lokalhub/libs/grpcx"
	directoryv1 "github.com/lokalhub/lokalhub/protos/gen/directory/v1"
)

// ScheduleConfig is the org directory's view of a resource: whether it is
// bookable at all plus overrides for the slot step and lead time.
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

type grpcProvider struct {
	client directoryv1.DirectoryServiceClient
}

func NewProvider(addr string) (Provider, error) {
	if addr == "" {
		return nil, nil
	}
	conn, err := grpcx.Dial(context.Background(), addr, grpcx.DialOptions{Timeout: 3 * time.Second})
	if err != nil {
		return nil, err
	}
	return &grpcProvider{client: directoryv1.NewDirectoryServiceClient(conn)}, nil
}

func (p *grpcProvider) GetScheduleConfig(ctx context.Context, orgID, resourceID string) (ScheduleConfig, error) {
	resp, err := p.client.GetScheduleConfig(ctx, &directoryv1.ScheduleConfigRequest{
		OrgId:      orgID,
		ResourceId: resourceID,
	})
	if err != nil {
		return ScheduleConfig{}, err
	}
	cfg := ScheduleConfig{
		Bookable:        resp.GetBookable(),
		SlotStepMinutes: int(resp.GetSlotStepMinutes()),
		MinLeadMinutes:  int(resp.GetMinLeadMinutes()),
		Timezone:        resp.GetTimezone(),
	}
	if resp.GetClosedFromUtc() != nil {
		cfg.ClosedFromUTC = resp.GetClosedFromUtc().AsTime()
	}
	if resp.GetClosedUntilUtc() != nil {
		cfg.ClosedUntilUTC = resp.GetClosedUntilUtc().AsTime()
	}
	return cfg, nil
}
