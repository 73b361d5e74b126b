package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"instagist/internal/database"
)

const (
	HourlyPruneSpec       = "0 * * * *"
	Timezone              = "UTC"
	TimezoneOffsetSeconds = 0
	pruneTimeout          = time.Minute
)

// Scheduler prunes stored summaries that are older than the configured
// retention window.
type Scheduler struct {
	ctx           context.Context
	cron          *cron.Cron
	db            *database.Database
	retentionDays int
	log           *slog.Logger
}

func New(
	ctx context.Context,
	db *database.Database,
	retentionDays int,
	log *slog.Logger,
) *Scheduler {
	c := cron.New(cron.WithLocation(time.FixedZone(Timezone, TimezoneOffsetSeconds)))

	return &Scheduler{
		ctx:           ctx,
		cron:          c,
		db:            db,
		retentionDays: retentionDays,
		log:           log,
	}
}

func (s *Scheduler) Start() error {
	if s.retentionDays <= 0 {
		s.log.InfoContext(s.ctx, "Summary retention pruning is disabled")

		return nil
	}

	if _, err := s.cron.AddFunc(HourlyPruneSpec, s.pruneSummaries); err != nil {
		return err
	}

	s.cron.Start()

	return nil
}

func (s *Scheduler) Stop() {
	s.cron.Stop()
}

func (s *Scheduler) pruneSummaries() {
	ctx, cancel := context.WithTimeout(s.ctx, pruneTimeout)
	defer cancel()

	select {
	case <-ctx.Done():
		s.log.InfoContext(ctx, "Scheduler context is done",
			"error", ctx.Err())
		return
	default:
	}

	cutoff := time.Now().UTC().AddDate(0, 0, -s.retentionDays)

	affected, err := s.db.DeleteSummariesBefore(ctx, cutoff)
	if err != nil {
		s.log.ErrorContext(ctx, "Failed to prune old summaries",
			"error", err,
			"cutoff", cutoff,
			"retentionDays", s.retentionDays)

		return
	}

	if affected > 0 {
		s.log.InfoContext(ctx, "Pruned old summaries",
			"count", affected,
			"cutoff", cutoff,
			"retentionDays", s.retentionDays)
	}
}
