package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/gin-gonic/gin"
	_ "github.com/joho/godotenv/autoload"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Osariemen7/portfolio/internal/config"
	"github.com/Osariemen7/portfolio/internal/logging"
	"github.com/Osariemen7/portfolio/internal/metrics"
	"github.com/Osariemen7/portfolio/internal/portfolio"
)

const cleanupInterval = 24 * time.Hour

var errMetricsDisabled = errors.New("metrics are disabled; set metrics.enabled or PORTFOLIO_METRICS_ENABLED")

var (
	cfgFile string
	verbose bool
	asJSON  bool

	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:           "portfolio",
	Short:         "Personal portfolio site with a contact form",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		level := cfg.Log.Level
		if verbose {
			level = "debug"
		}
		logger, err = logging.New(level, cfg.Log.Development)
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the portfolio site",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve(cmd.Context())
	},
}

var projectsCmd = &cobra.Command{
	Use:   "projects",
	Short: "List the showcased projects",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return printProjects(cmd.OutOrStdout(), portfolio.NewCatalog().All(), asJSON)
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show visitor and contact form statistics",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !cfg.Metrics.Enabled {
			return errMetricsDisabled
		}
		store, err := metrics.Open(cfg.Metrics.DBPath)
		if err != nil {
			return err
		}
		defer store.Close()

		stats, err := store.Stats(cmd.Context(), 20)
		if err != nil {
			return fmt.Errorf("failed to load statistics: %w", err)
		}
		return printStats(cmd.OutOrStdout(), stats, asJSON)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default: portfolio.yaml if present)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	projectsCmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	statsCmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")

	rootCmd.AddCommand(serveCmd, projectsCmd, statsCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func serve(ctx context.Context) error {
	gin.SetMode(cfg.Server.Mode)

	var store *metrics.Store
	if cfg.Metrics.Enabled {
		var err error
		store, err = metrics.Open(cfg.Metrics.DBPath)
		if err != nil {
			return err
		}
		defer store.Close()
		go store.RunCleanup(ctx, cfg.Retention(), cleanupInterval, logger)
		logger.Info("privacy-conscious visitor tracking enabled", zap.String("db", cfg.Metrics.DBPath))
	}

	srv, err := newServer(cfg, logger, store)
	if err != nil {
		return err
	}
	router, err := srv.Router()
	if err != nil {
		return err
	}

	httpServer := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting portfolio server",
			zap.String("addr", cfg.Server.Addr),
			zap.Bool("contact_endpoint", cfg.HasEndpoint()))
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
		logger.Info("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}

func printProjects(w io.Writer, projects []portfolio.Project, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(projects)
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tURL")
	for _, p := range projects {
		fmt.Fprintf(tw, "%d\t%s\t%s\n", p.ID, p.Title, p.URL)
	}
	return tw.Flush()
}
