// Package cli implements lineupctl, a read-only view of the persisted
// team document.
package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fbsn11/team-management-app/internal/app"
	"github.com/fbsn11/team-management-app/internal/config"
	"github.com/fbsn11/team-management-app/internal/domain/formation"
	"github.com/fbsn11/team-management-app/internal/infrastructure/repository/memory"
	"github.com/fbsn11/team-management-app/internal/platform/logging"
)

type options struct {
	output  string
	storage string
	key     string
	verbose bool

	cfg    config.Config
	logger *logging.Logger
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	opts := &options{output: "text"}

	rootCmd := &cobra.Command{
		Use:   "lineupctl",
		Short: "Inspect formations, lineups and appearance stats",
		Long: `lineupctl reads the document the API server persists and prints
formations, saved lineups and per-match appearance statistics.

Storage is configured with the same environment as the server
(STORAGE_DRIVER, STORAGE_KEY, STORAGE_FILE_DIR, REDIS_URL, DB_URL, SQLITE_PATH).`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.init()
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVarP(&opts.output, "output", "o", opts.output, "Output format: text, json")
	rootCmd.PersistentFlags().StringVar(&opts.storage, "storage", "", "Storage driver override (env: STORAGE_DRIVER)")
	rootCmd.PersistentFlags().StringVar(&opts.key, "key", "", "Document key override (env: STORAGE_KEY)")
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Verbose logging to stderr")

	rootCmd.AddCommand(newFormationsCmd(opts))
	rootCmd.AddCommand(newLineupsCmd(opts))
	rootCmd.AddCommand(newStatsCmd(opts))
	rootCmd.AddCommand(newExportCmd(opts))

	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func (o *options) init() error {
	switch o.output {
	case "text", "json":
	default:
		return fmt.Errorf("unknown output format %q (use text or json)", o.output)
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if v := strings.TrimSpace(o.storage); v != "" {
		cfg.StorageDriver = strings.ToLower(v)
	}
	if v := strings.TrimSpace(o.key); v != "" {
		cfg.StorageKey = v
	}
	o.cfg = cfg

	level := logging.LevelWarn
	if o.verbose {
		level = logging.LevelDebug
	}
	o.logger = logging.New(logging.Options{Level: level, Format: logging.FormatConsole, Output: os.Stderr})
	return nil
}

// loadState reads the persisted document once. The backend is closed
// before returning; nothing is written back.
func (o *options) loadState(ctx context.Context) (*memory.Store, error) {
	kv, err := app.OpenStore(ctx, o.cfg)
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", o.cfg.StorageDriver, err)
	}
	defer func() {
		if err := kv.Close(); err != nil {
			o.logger.Warn("close store failed", "error", err)
		}
	}()

	return app.LoadState(ctx, o.cfg, kv, o.logger)
}

func (o *options) catalog() (*formation.Catalog, error) {
	return app.LoadCatalog(o.cfg)
}
