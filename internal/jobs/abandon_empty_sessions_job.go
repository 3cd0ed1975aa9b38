package jobs

import (
	"context"
	"log/slog"
	"time"

	"tableside/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// AbandonEmptySessionsJob sweeps tables whose session never received an
// order. Runs every minute and closes ACTIVE sessions older than the
// configured threshold with zero orders, freeing the table for the next
// party.
type AbandonEmptySessionsJob struct {
	handler   commands.AbandonEmptySessionsCommandHandler
	olderThan time.Duration
	cron      *cron.Cron
	logger    *slog.Logger
}

// NewAbandonEmptySessionsJob creates the sweep job. olderThan is how long an
// empty session may sit before it is abandoned.
func NewAbandonEmptySessionsJob(
	handler commands.AbandonEmptySessionsCommandHandler,
	olderThan time.Duration,
	logger *slog.Logger,
) *AbandonEmptySessionsJob {
	return &AbandonEmptySessionsJob{
		handler:   handler,
		olderThan: olderThan,
		cron:      cron.New(cron.WithSeconds()),
		logger:    logger.With("component", "abandon_empty_sessions_job"),
	}
}

// Start begins the sweep, running at the top of every minute.
func (j *AbandonEmptySessionsJob) Start() error {
	_, err := j.cron.AddFunc("0 * * * * *", func() {
		ctx := context.Background()

		cmd, cmdErr := commands.NewAbandonEmptySessionsCommand(j.olderThan)
		if cmdErr != nil {
			j.logger.ErrorContext(ctx, "Abandon empty sessions command invalid", "error", cmdErr)
			return
		}

		closed, handleErr := j.handler.Handle(ctx, cmd)
		if handleErr != nil {
			j.logger.ErrorContext(ctx, "Abandon empty sessions job failed", "error", handleErr)
			return
		}

		if closed > 0 {
			j.logger.InfoContext(ctx, "Abandoned empty sessions", "count", closed)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Abandon empty sessions job started (running every minute)")
	return nil
}

// Stop stops the sweep job.
func (j *AbandonEmptySessionsJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Abandon empty sessions job stopped")
}
