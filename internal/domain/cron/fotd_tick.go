package cron

import (
	"context"
	"time"

	"github.com/federation-of-frogs/backend/internal/domain"
	"github.com/federation-of-frogs/backend/pkg/xcontext"
)

// FotdTickCronJob drives the period lifecycle from inside the process. An
// external scheduler hitting the trigger endpoint can coexist with it, a tick
// is idempotent.
type FotdTickCronJob struct {
	fotdDomain domain.FotdDomain
	interval   time.Duration
}

func NewFotdTickCronJob(fotdDomain domain.FotdDomain, interval time.Duration) *FotdTickCronJob {
	return &FotdTickCronJob{fotdDomain: fotdDomain, interval: interval}
}

func (job *FotdTickCronJob) Do(ctx context.Context) {
	resp, err := job.fotdDomain.Tick(ctx, nil)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot run the lifecycle tick: %v", err)
		return
	}

	xcontext.Logger(ctx).Infof("Lifecycle tick: %s", resp.Message)
}

func (job *FotdTickCronJob) RunNow() bool {
	return true
}

func (job *FotdTickCronJob) Next() time.Time {
	return time.Now().Add(job.interval)
}
