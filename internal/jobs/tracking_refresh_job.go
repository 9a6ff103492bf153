package jobs

import (
	"context"
	"log/slog"

	"parceltracker/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// trackingRefreshSchedule polls every ten minutes. Carrier feeds update a
// few times a day and throttle aggressive pollers.
const trackingRefreshSchedule = "0 */10 * * * *"

// TrackingRefreshJob manages the scheduled polling of carrier tracking
// state for all non-terminal parcels.
type TrackingRefreshJob struct {
	handler commands.RefreshTrackingCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewTrackingRefreshJob creates a job that refreshes parcel tracking state.
// Uses RefreshTrackingCommandHandler to process the poll on every tick.
func NewTrackingRefreshJob(handler commands.RefreshTrackingCommandHandler, logger *slog.Logger) *TrackingRefreshJob {
	return &TrackingRefreshJob{
		handler: handler,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "tracking_refresh_job"),
	}
}

// Start begins the tracking refresh job on its ten-minute schedule.
func (j *TrackingRefreshJob) Start() error {
	_, err := j.cron.AddFunc(trackingRefreshSchedule, func() {
		ctx := context.Background()
		cmd := commands.NewRefreshTrackingCommand()

		if err := j.handler.Handle(ctx, cmd); err != nil {
			j.logger.ErrorContext(ctx, "Tracking refresh job failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Tracking refresh job started (running every ten minutes)")
	return nil
}

// Stop stops the tracking refresh job.
func (j *TrackingRefreshJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Tracking refresh job stopped")
}
