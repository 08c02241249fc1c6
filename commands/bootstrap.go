package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"proptech-analytics/config"
	"proptech-analytics/services"
	"proptech-analytics/storage"
	"proptech-analytics/utils"
)

// session bundles what every data-backed command needs.
type session struct {
	cfg    *config.Config
	logger *utils.Logger
	app    *services.App
	source storage.DatasetSource
}

func (rt *session) Close() {
	if rt.source != nil {
		_ = rt.source.Close()
	}
}

// newLogger honours --log-level over LOG_LEVEL. Commands that print results
// keep stdout clean by logging to stderr.
func newLogger(cmd *cobra.Command, cfg *config.Config, toStderr bool) *utils.Logger {
	logger := utils.NewLogger()
	if toStderr {
		logger = utils.NewLoggerWithOutput(os.Stderr, os.Stderr)
	}
	level := cfg.LogLevel
	if flag, _ := cmd.Flags().GetString("log-level"); flag != "" {
		level = flag
	}
	logger.SetLevel(utils.ParseLevel(level))
	return logger
}

// bootstrap loads configuration, builds the app and loads the datasets.
// A failed load is logged and leaves the app serving an empty table.
func bootstrap(cmd *cobra.Command, toStderr bool) *session {
	cfg := config.Load()
	logger := newLogger(cmd, cfg, toStderr)
	ctx := commandContext(cmd)

	rt := &session{cfg: cfg, logger: logger, app: newApp(cfg, logger)}

	source, err := openSource(ctx, cfg, logger)
	if err != nil {
		logger.Error("[bootstrap] Dataset source unavailable: %v", err)
		return rt
	}
	rt.source = source

	if err := rt.app.Load(ctx, source); err != nil {
		logger.Error("[bootstrap] Starting without data: %v", err)
	}
	return rt
}

func newApp(cfg *config.Config, logger *utils.Logger) *services.App {
	opts := services.Options{
		Defaults: services.InvestmentDefaults{
			DownPaymentPct:  cfg.DefaultDownPaymentPct,
			InterestRatePct: cfg.DefaultInterestRatePct,
			MaintenancePct:  cfg.DefaultMaintenancePct,
		},
		MaxConcurrency: cfg.MaxConcurrency,
	}
	if cfg.ROIModelURL != "" {
		opts.Predictor = services.NewHTTPPredictor(cfg.ROIModelURL, cfg.ROIModelTimeout)
		logger.Info("[bootstrap] ROI model at %s", cfg.ROIModelURL)
	}
	return services.NewApp(opts, logger)
}

// openSource opens the dataset source selected by DATA_SOURCE.
func openSource(ctx context.Context, cfg *config.Config, logger *utils.Logger) (storage.DatasetSource, error) {
	switch cfg.DataSource {
	case "csv", "":
		return storage.NewCSVSource(cfg.PriceCSVPath, cfg.RentCSVPath, logger), nil
	case "postgres":
		return storage.NewPostgresSource(ctx, cfg.DSN(), &utils.RetryConfig{
			MaxAttempts: cfg.MaxRetries,
			BaseDelay:   2 * time.Second,
			Logger:      logger,
		})
	case "sqlite":
		return storage.NewSQLiteSource(ctx, cfg.SQLitePath)
	default:
		return nil, fmt.Errorf("unknown DATA_SOURCE %q (want csv, postgres or sqlite)", cfg.DataSource)
	}
}
