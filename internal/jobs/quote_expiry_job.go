package jobs

import (
	"context"
	"log/slog"

	"github.com/robfig/cron/v3"

	"forwarding/internal/core/application/usecases/commands"
)

// QuoteExpiryJob sweeps shipments whose quote validity window has passed and
// drops them back to QuoteRequested. Runs every minute; expiry is also
// enforced at payment time, so the sweep only has to keep the backlog tidy.
type QuoteExpiryJob struct {
	handler commands.ExpireQuotesCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewQuoteExpiryJob creates the quote expiry sweep job.
func NewQuoteExpiryJob(handler commands.ExpireQuotesCommandHandler, logger *slog.Logger) *QuoteExpiryJob {
	return &QuoteExpiryJob{
		handler: handler,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "quote_expiry_job"),
	}
}

// Start begins the quote expiry job to run every minute.
func (j *QuoteExpiryJob) Start() error {
	_, err := j.cron.AddFunc("0 * * * * *", func() {
		ctx := context.Background()

		cmd, cmdErr := commands.NewExpireQuotesCommand()
		if cmdErr != nil {
			j.logger.ErrorContext(ctx, "Quote expiry job failed to build command", "error", cmdErr)
			return
		}

		expired, handleErr := j.handler.Handle(ctx, cmd)
		if handleErr != nil {
			j.logger.ErrorContext(ctx, "Quote expiry job failed", "error", handleErr)
			return
		}
		if expired > 0 {
			j.logger.InfoContext(ctx, "Expired shipment quotes", "count", expired)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Quote expiry job started (running every minute)")
	return nil
}

// Stop stops the quote expiry job.
func (j *QuoteExpiryJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Quote expiry job stopped")
}
