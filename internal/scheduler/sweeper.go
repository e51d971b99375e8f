// Package scheduler runs the housekeeping jobs of the reference peer.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/jonboulle/clockwork"

	"github.com/rocketscienceinc/matchsync/internal/entity"
)

type windowStore interface {
	DeleteWindowsBefore(ctx context.Context, window string) (int, error)
}

// Sweeper drops the matches of closed eligibility windows once their grace is over.
type Sweeper struct {
	logger *slog.Logger

	matches  windowStore
	clock    clockwork.Clock
	location *time.Location

	scheduler gocron.Scheduler
}

func NewSweeper(logger *slog.Logger, matches windowStore, clock clockwork.Clock, location *time.Location) (*Sweeper, error) {
	if location == nil {
		location = time.UTC
	}

	scheduler, err := gocron.NewScheduler(
		gocron.WithClock(clock),
		gocron.WithLocation(location),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	return &Sweeper{
		logger:    logger.With("component", "window-sweeper"),
		matches:   matches,
		clock:     clock,
		location:  location,
		scheduler: scheduler,
	}, nil
}

// Start sweeps once right away and then daily just after the grace of the previous
// window ends, until ctx is done.
func (that *Sweeper) Start(ctx context.Context) error {
	_, err := that.scheduler.NewJob(
		gocron.DailyJob(1, gocron.NewAtTimes(gocron.NewAtTime(1, 0, 30))),
		gocron.NewTask(func() {
			if _, sweepErr := that.Sweep(ctx); sweepErr != nil {
				that.logger.Error("sweep failed", "error", sweepErr)
			}
		}),
		gocron.WithName("window-sweep"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	)
	if err != nil {
		return fmt.Errorf("failed to schedule sweep: %w", err)
	}

	that.scheduler.Start()

	return nil
}

// Sweep deletes every window that closed more than entity.WindowGrace ago.
func (that *Sweeper) Sweep(ctx context.Context) (int, error) {
	window := entity.DailyWindow(that.clock.Now().Add(-entity.WindowGrace), that.location)

	deleted, err := that.matches.DeleteWindowsBefore(ctx, window.Key)
	if err != nil {
		return deleted, fmt.Errorf("failed to delete windows before %s: %w", window.Key, err)
	}

	if deleted > 0 {
		that.logger.Info("closed windows swept", "windows", deleted, "current", window.Key)
	}

	return deleted, nil
}

func (that *Sweeper) Shutdown() error {
	if err := that.scheduler.Shutdown(); err != nil {
		return fmt.Errorf("failed to shut down scheduler: %w", err)
	}

	return nil
}
