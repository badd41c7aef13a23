package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/comitanigiacomo/kanso-food-diary/internal/adapters/lookup/openfoodfacts"
	"github.com/comitanigiacomo/kanso-food-diary/internal/adapters/repository"
	"github.com/comitanigiacomo/kanso-food-diary/internal/config"
	"github.com/comitanigiacomo/kanso-food-diary/internal/core/services"
	"github.com/comitanigiacomo/kanso-food-diary/internal/core/workers"
	"github.com/comitanigiacomo/kanso-food-diary/internal/logging"
)

type rootOptions struct {
	dbPath  string
	verbose bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "diary",
		Short:         "diary keeps your food diary from the terminal",
		Long:          "diary logs foods, water and weight per day and shows totals against your daily goals.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&opts.dbPath, "db", "", "Path to the SQLite diary (overrides SQLITE_PATH and STORAGE_BACKEND)")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Log storage activity to stderr")

	cmd.AddCommand(
		newTodayCmd(opts),
		newAddCmd(opts),
		newScanCmd(opts),
		newRemoveCmd(opts),
		newWaterCmd(opts),
		newWeightCmd(opts),
		newWeekCmd(opts),
		newGoalsCmd(opts),
		newHistoryCmd(opts),
		newPasscodeHashCmd(),
	)
	return cmd
}

func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type app struct {
	diary    *services.DiaryService
	settings *services.SettingsService
	summary  *services.SummaryService
	products *services.ProductService
	history  *services.HistoryService
}

// withApp wires the services over the configured store for a single command.
// Queued history writes are flushed before it returns.
func (o *rootOptions) withApp(ctx context.Context, fn func(a *app) error) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if o.dbPath != "" {
		cfg.Storage.Backend = config.BackendSQLite
		cfg.Storage.SQLitePath = o.dbPath
	}
	cfg.Storage.CacheEnabled = false

	logger := zap.NewNop()
	if o.verbose {
		if logger, err = logging.New("debug", true); err != nil {
			return err
		}
	}

	backend, err := repository.Open(ctx, cfg, nil, logger)
	if err != nil {
		return err
	}
	defer backend.Close()

	history := services.NewHistoryService(backend.Store, logger)
	worker := workers.NewHistoryWorker(history, logger)
	workerCtx, cancel := context.WithCancel(ctx)
	worker.Start(workerCtx)
	defer func() {
		cancel()
		worker.Wait()
	}()

	diary := services.NewDiaryService(backend.Store, worker, logger, services.WithLocation(cfg.Location))
	settings := services.NewSettingsService(backend.Store, logger)
	lookup := openfoodfacts.NewClient(cfg.OpenFoodFacts.BaseURL, cfg.OpenFoodFacts.Timeout)

	return fn(&app{
		diary:    diary,
		settings: settings,
		summary:  services.NewSummaryService(diary, settings),
		products: services.NewProductService(lookup, diary, logger),
		history:  history,
	})
}
