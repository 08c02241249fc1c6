package services

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"proptech-analytics/storage"
	"proptech-analytics/utils"
)

// Refresher reloads the datasets on a cron schedule.
type Refresher struct {
	app     *App
	source  storage.DatasetSource
	cron    *cron.Cron
	timeout time.Duration
	logger  *utils.Logger
}

// NewRefresher schedules app.Load from source using a standard five-field
// cron spec or a descriptor such as "@hourly".
func NewRefresher(app *App, source storage.DatasetSource, schedule string, timeout time.Duration, logger *utils.Logger) (*Refresher, error) {
	r := &Refresher{
		app:     app,
		source:  source,
		cron:    cron.New(),
		timeout: timeout,
		logger:  logger,
	}
	if _, err := r.cron.AddFunc(schedule, r.refresh); err != nil {
		return nil, fmt.Errorf("refresher: invalid schedule %q: %w", schedule, err)
	}
	return r, nil
}

func (r *Refresher) refresh() {
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()

	start := time.Now()
	if err := r.app.Load(ctx, r.source); err != nil {
		r.logger.Warn("[refresher] Reload failed: %v", err)
		return
	}
	r.logger.Info("[refresher] Reloaded datasets in %v", time.Since(start).Round(time.Millisecond))
}

// Start runs the scheduler in the background.
func (r *Refresher) Start() {
	r.cron.Start()
}

// Stop halts the scheduler and waits for a running reload to finish.
func (r *Refresher) Stop() {
	<-r.cron.Stop().Done()
}
