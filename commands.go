package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/andrrresj/automotive-market-dashboard/config"
	"github.com/andrrresj/automotive-market-dashboard/dashboard"
	"github.com/andrrresj/automotive-market-dashboard/models"
	"github.com/andrrresj/automotive-market-dashboard/services"
	"github.com/andrrresj/automotive-market-dashboard/storage"
	"github.com/andrrresj/automotive-market-dashboard/utils"
)

const shutdownTimeout = 5 * time.Second

type app struct {
	cfg       *config.Config
	logger    *utils.Logger
	newLogger func(level string) *utils.Logger
}

func newRootCmd() *cobra.Command {
	return newRootCmdFor(&app{newLogger: utils.NewLoggerWithLevel})
}

func newRootCmdFor(a *app) *cobra.Command {

	root := &cobra.Command{
		Use:   "automotive-market-dashboard",
		Short: "Clean and analyse vehicle sales and specification datasets",
		Long: `Cleans the raw vehicle sales (car_prices.csv) and specifications (data.csv)
datasets, tags luxury brands and writes sales_cleaned.csv and specs_cleaned.csv.

Run without arguments to execute the cleaning pipeline. All settings come from
the environment or a .env file in the working directory.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			a.cfg = config.Load()
			a.logger = a.newLogger(a.cfg.LogLevel)
		},
		RunE: a.run(func(cmd *cobra.Command) error {
			return a.clean(cmd.Context(), cmd.OutOrStdout())
		}),
	}

	root.AddCommand(
		&cobra.Command{
			Use:   "explore",
			Short: "Profile the raw input datasets",
			Args:  cobra.NoArgs,
			RunE: a.run(func(cmd *cobra.Command) error {
				return a.explore(cmd.OutOrStdout())
			}),
		},
		&cobra.Command{
			Use:   "report",
			Short: "Render the dashboard from the cleaned datasets",
			Long: `Renders the dashboard HTML to DASHBOARD_HTML_PATH. When DASHBOARD_PNG_PATH
is set a full-page screenshot is captured with headless Chrome.`,
			Args: cobra.NoArgs,
			RunE: a.run(func(cmd *cobra.Command) error {
				return a.report(cmd.Context())
			}),
		},
		&cobra.Command{
			Use:   "serve",
			Short: "Serve the dashboard over HTTP",
			Args:  cobra.NoArgs,
			RunE: a.run(func(cmd *cobra.Command) error {
				return a.serve(cmd.Context())
			}),
		},
	)
	return root
}

// run adapts fn to cobra and flushes the logger whether or not fn fails.
func (a *app) run(fn func(cmd *cobra.Command) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		defer a.logger.Sync() //nolint:errcheck // stdout may not support fsync
		return fn(cmd)
	}
}

func (a *app) clean(ctx context.Context, out io.Writer) error {
	runID := uuid.NewString()
	logger := a.logger.With("run_id", runID)

	logger.Info("=== Automotive data cleaning starting ===")
	logger.Info("Config: sales %s -> %s | specs %s -> %s | reference year %d | concurrency %d",
		a.cfg.SalesInputPath, a.cfg.SalesOutputPath, a.cfg.SpecsInputPath, a.cfg.SpecsOutputPath,
		a.cfg.EffectiveReferenceYear(), a.cfg.PipelineConcurrency)

	sinks := a.openSinks(ctx, runID, logger)
	defer func() {
		for _, s := range sinks {
			if err := s.Close(); err != nil {
				logger.Warn("close %s export: %v", s.Name(), err)
			}
		}
	}()

	cleaner := services.NewCleaner(logger, services.LogObserver(logger), sinks...)
	results := cleaner.RunAll(ctx, []services.Job{
		{
			Dataset:    services.SalesDataset(a.cfg.EffectiveReferenceYear()),
			InputPath:  a.cfg.SalesInputPath,
			OutputPath: a.cfg.SalesOutputPath,
		},
		{
			Dataset:    services.SpecsDataset(),
			InputPath:  a.cfg.SpecsInputPath,
			OutputPath: a.cfg.SpecsOutputPath,
		},
	}, a.cfg.PipelineConcurrency)

	var (
		failures     []error
		sales, specs *models.Table
	)
	for _, r := range results {
		if r.Err != nil {
			logger.Error("%v", r.Err)
			failures = append(failures, r.Err)
			continue
		}
		logger.Info("[%s] finished in %s", r.Dataset, r.Duration.Round(time.Millisecond))
		switch r.Dataset {
		case services.SalesDatasetName:
			sales = r.Table
		case services.SpecsDatasetName:
			specs = r.Table
		}
	}

	if sales != nil || specs != nil {
		insights := services.NewInsightService(logger)
		insights.Print(out, insights.Generate(sales, specs))
	}

	if len(failures) > 0 {
		return errors.Join(failures...)
	}
	logger.Info("=== Data cleaning complete ===")
	return nil
}

// openSinks connects the optional SQL exports. A sink that cannot be opened is
// skipped; the CSV outputs do not depend on it.
func (a *app) openSinks(ctx context.Context, runID string, logger *utils.Logger) []storage.TableWriter {
	var sinks []storage.TableWriter

	if a.cfg.SQLiteExportPath != "" {
		w, err := storage.NewSQLiteWriter(ctx, a.cfg.SQLiteExportPath, runID)
		if err != nil {
			logger.Warn("SQLite export disabled: %v", err)
		} else {
			sinks = append(sinks, w)
		}
	}

	if a.cfg.ExportPostgres {
		retry := &utils.RetryConfig{MaxAttempts: a.cfg.MaxRetries, BaseDelay: 2 * time.Second, Logger: logger}
		w, err := storage.NewPostgresWriter(ctx, a.cfg.DSN(), runID, retry)
		if err != nil {
			logger.Warn("PostgreSQL export disabled: %v", err)
		} else {
			sinks = append(sinks, w)
		}
	}

	return sinks
}

func (a *app) explore(out io.Writer) error {
	explorer := services.NewExplorer(a.logger)

	var failures []error
	for _, path := range []string{a.cfg.SalesInputPath, a.cfg.SpecsInputPath} {
		p, err := explorer.Profile(path)
		if err != nil {
			a.logger.Error("explore %s: %v", path, err)
			failures = append(failures, err)
			continue
		}
		explorer.Print(out, p)
	}

	if len(failures) == 2 {
		return errors.Join(failures...)
	}
	return nil
}

func (a *app) report(ctx context.Context) error {
	load := dashboard.FileLoader(a.cfg.SalesOutputPath, a.cfg.SpecsOutputPath, services.NewInsightService(a.logger))
	report, err := load()
	if err != nil {
		return err
	}

	if err := dashboard.WriteFile(a.cfg.DashboardHTMLPath, dashboard.Build(report.Sales, report.Specs)); err != nil {
		return err
	}
	a.logger.Info("Dashboard written to %s", a.cfg.DashboardHTMLPath)

	if a.cfg.DashboardPNGPath == "" {
		return nil
	}
	retry := &utils.RetryConfig{MaxAttempts: a.cfg.MaxRetries, BaseDelay: 2 * time.Second, Logger: a.logger}
	if err := retry.Do(ctx, "dashboard snapshot", func() error {
		return dashboard.Snapshot(ctx, a.cfg.DashboardHTMLPath, a.cfg.DashboardPNGPath, a.cfg.ChromeBin)
	}); err != nil {
		return err
	}
	a.logger.Info("Dashboard snapshot saved to %s", a.cfg.DashboardPNGPath)
	return nil
}

func (a *app) serve(ctx context.Context) error {
	load := dashboard.FileLoader(a.cfg.SalesOutputPath, a.cfg.SpecsOutputPath, services.NewInsightService(a.logger))
	srv := dashboard.NewServer(load, a.logger)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start(a.cfg.DashboardAddr)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("dashboard server: %w", err)
	case <-ctx.Done():
		a.logger.Info("[serve] shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
