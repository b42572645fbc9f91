package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/robfig/cron/v3"
)

// DefaultKeepAliveSchedule fires every 14 minutes, inside the idle window
// after which free hosting tiers put the service to sleep.
const DefaultKeepAliveSchedule = "0 */14 * * * *"

const keepAliveTimeout = 10 * time.Second

// KeepAliveJob periodically requests a URL, normally the service's own
// health endpoint, so that the host keeps it awake.
type KeepAliveJob struct {
	url      string
	schedule string
	client   *http.Client
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewKeepAliveJob creates a job that GETs url on the given six-field cron schedule.
func NewKeepAliveJob(url, schedule string, logger *slog.Logger) *KeepAliveJob {
	if schedule == "" {
		schedule = DefaultKeepAliveSchedule
	}
	return &KeepAliveJob{
		url:      url,
		schedule: schedule,
		client:   &http.Client{Timeout: keepAliveTimeout},
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "keep_alive_job"),
	}
}

func (j *KeepAliveJob) Name() string { return "keep-alive" }

// Start schedules the ping.
func (j *KeepAliveJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), keepAliveTimeout)
		defer cancel()

		if err := j.ping(ctx); err != nil {
			j.logger.WarnContext(ctx, "Keep-alive ping failed", "url", j.url, "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("invalid schedule %q: %w", j.schedule, err)
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Keep-alive job started", "schedule", j.schedule, "url", j.url)
	return nil
}

// Stop stops the scheduler and waits for a running ping to finish.
func (j *KeepAliveJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Keep-alive job stopped")
}

func (j *KeepAliveJob) ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, j.url, nil)
	if err != nil {
		return err
	}

	resp, err := j.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	j.logger.DebugContext(ctx, "Keep-alive ping sent", "status", resp.StatusCode)
	return nil
}
