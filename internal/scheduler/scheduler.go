package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"pressdesk/internal/news"
)

const (
	// NewsRefreshSpec matches the news cache TTL.
	NewsRefreshSpec       = "*/15 * * * *"
	Timezone              = "UTC"
	TimezoneOffsetSeconds = 0

	refreshTimeout = 5 * time.Minute
)

// Scheduler refreshes the news cache in the background so requests
// rarely pay the fetch cost.
type Scheduler struct {
	ctx     context.Context
	cron    *cron.Cron
	monitor *news.Monitor
	log     *slog.Logger
}

func New(ctx context.Context, monitor *news.Monitor, log *slog.Logger) *Scheduler {
	c := cron.New(cron.WithLocation(time.FixedZone(Timezone, TimezoneOffsetSeconds)))

	return &Scheduler{
		ctx:     ctx,
		cron:    c,
		monitor: monitor,
		log:     log,
	}
}

func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(NewsRefreshSpec, s.refreshNews); err != nil {
		return err
	}

	s.cron.Start()

	return nil
}

func (s *Scheduler) Stop() {
	s.cron.Stop()
}

func (s *Scheduler) refreshNews() {
	ctx, cancel := context.WithTimeout(s.ctx, refreshTimeout)
	defer cancel()

	select {
	case <-ctx.Done():
		s.log.InfoContext(ctx, "Scheduler context is done",
			"error", ctx.Err())
		return
	default:
	}

	if err := s.monitor.Refresh(ctx); err != nil {
		s.log.ErrorContext(ctx, "Failed to refresh news feeds",
			"error", err)
	}
}
