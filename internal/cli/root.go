// Package cli wires the taskflow command tree: the interactive page plus the
// scriptable list/add/done/rm commands over the same data client.
package cli

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/idilsaglam/taskflow/internal/config"
	"github.com/idilsaglam/taskflow/internal/dataclient"
	"github.com/idilsaglam/taskflow/internal/logging"
	"github.com/idilsaglam/taskflow/internal/tui"
	"github.com/idilsaglam/taskflow/internal/ui"
)

const service = "taskflow"

// App holds root flags and the resolved configuration.
type App struct {
	URL         string
	Key         string
	Theme       string
	MetricsAddr string

	cfg     config.Config
	log     *logrus.Entry
	metrics *http.Server

	// open builds the data client; tests swap it for an in-memory table.
	open func(ctx context.Context, cfg dataclient.Config, log logrus.FieldLogger) (dataclient.Handle, error)
	// interactive reports whether the page may dial the data store.
	interactive func() bool
}

func NewRootCmd() *cobra.Command {
	return newRootCmd(&App{open: dataclient.New, interactive: ui.Interactive})
}

func newRootCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:           service,
		Short:         "TaskFlow - tasks in a Supabase table, from your terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		Example: strings.TrimSpace(`
  # Start the interactive page
  taskflow

  # Scriptable commands
  taskflow add "Buy milk" -d "2 litres"
  taskflow ls
  taskflow done 2
  taskflow rm 3
`),
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, app)
		},
	}

	cmd.SetFlagErrorFunc(flagError)

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return app.setup(cmd)
	}
	cmd.PersistentPostRunE = func(cmd *cobra.Command, args []string) error {
		return app.teardown()
	}

	cmd.PersistentFlags().StringVar(&app.URL, "url", "", "Data store endpoint (overrides "+config.EnvURL+")")
	cmd.PersistentFlags().StringVar(&app.Key, "key", "", "Data store access key (overrides "+config.EnvKey+")")
	cmd.PersistentFlags().StringVar(&app.Theme, "theme", "", "Output theme (classic|neon|mono)")
	cmd.PersistentFlags().StringVar(&app.MetricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address (e.g. :9090)")

	cmd.AddCommand(newTUICmd(app))
	cmd.AddCommand(newListCmd(app))
	cmd.AddCommand(newAddCmd(app))
	cmd.AddCommand(newDoneCmd(app))
	cmd.AddCommand(newRemoveCmd(app))
	cmd.AddCommand(newExportCmd(app))
	cmd.AddCommand(newImportCmd(app))
	cmd.AddCommand(newAuthCmd(app))
	cmd.AddCommand(newMigrateCmd(app))

	return cmd
}

func (app *App) setup(cmd *cobra.Command) error {
	cfg := config.Load()
	if app.URL != "" {
		cfg.Data.URL = app.URL
		cfg.Source = config.SourceFlag
	}
	if app.Key != "" {
		cfg.Data.Key = app.Key
		cfg.Source = config.SourceFlag
	}
	if app.Theme == "" {
		app.Theme = cfg.Theme
	}
	app.cfg = cfg

	ui.SetTheme(app.Theme)
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		ui.SetColorForcing(false, true)
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	if app.log == nil {
		app.log = logging.New(cmd.ErrOrStderr(), service)
	}
	if cfg.CredentialsErr != nil {
		app.log.WithError(cfg.CredentialsErr).Warn("ignoring unusable credentials file; run `taskflow auth login` or `taskflow auth logout`")
	}
	if app.MetricsAddr != "" {
		app.serveMetrics()
	}
	return nil
}

func (app *App) serveMetrics() {
	mux := http.NewServeMux()
	mux.Handle("GET /metrics", promhttp.Handler())
	app.metrics = &http.Server{Addr: app.MetricsAddr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		app.log.WithField("addr", app.MetricsAddr).Info("metrics server starting")
		if err := app.metrics.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			app.log.WithError(err).Error("metrics server failed")
		}
	}()
}

func (app *App) teardown() error {
	if app.metrics == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return app.metrics.Shutdown(ctx)
}

// handle builds the data client for scriptable commands.
func (app *App) handle(cmd *cobra.Command) (dataclient.Handle, error) {
	return app.open(ctxOf(cmd), app.cfg.Data, app.log)
}

func newTUICmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive page (default)",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, app)
		},
	}
}

func runTUI(cmd *cobra.Command, app *App) error {
	log, closer, err := logging.ToFile(app.cfg.LogFile, service)
	if err != nil {
		// the page still works; diagnostics are dropped
		log = logging.New(io.Discard, service)
	} else {
		defer closer.Close()
	}

	ctx := ctxOf(cmd)
	h, err := dataclient.ForSession(ctx, app.cfg.Data, app.interactive(), log)
	if err != nil {
		return err
	}
	defer h.Close()
	return tui.Run(ctx, h, log)
}

func ctxOf(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
