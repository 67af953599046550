// Package cli wires the distrimed command line: the interactive TUI on the
// root command plus list/show/version subcommands for scripting.
package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"distrimed/internal/config"
	"distrimed/internal/logic"
)

// build-time override (e.g. -ldflags "-X distrimed/internal/cli.Version=1.2.3")
var Version = "dev"

type options struct {
	configPath  string
	catalogPath string
	page        string
	verbose     bool
	debug       bool
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "distrimed",
		Short: "Distribución de materiales y muestras médicas",
		Long: strings.TrimSpace(`
distrimed - medical sample distribution browser

Without a subcommand it opens the interactive terminal UI with two pages:
Distribution Results (per representative) and Materials Master.

Examples:
  distrimed --catalog catalog.yaml
  distrimed --page materials
  distrimed list distributions --rep 7 --format json
  distrimed show material M-100
`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, opts)
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "Config file (default: user config dir)")
	cmd.PersistentFlags().StringVar(&opts.catalogPath, "catalog", "", "Catalog YAML file (overrides catalog_path)")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable verbose (info) logging")
	cmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "Enable debug logging (overrides --verbose)")
	cmd.Flags().StringVarP(&opts.page, "page", "p", "", "Initial page: distribution|materials")
	cmd.Version = Version

	cmd.AddCommand(newListCmd(opts))
	cmd.AddCommand(newShowCmd(opts))
	cmd.AddCommand(newVersionCmd())

	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "distrimed version: %s\n", Version)
		},
	}
}

func (o *options) configService() config.ConfigService {
	if o.configPath != "" {
		return config.NewConfigServiceAt(o.configPath)
	}
	return config.NewConfigService()
}

// loadConfig reads the config file and applies flag overrides
func (o *options) loadConfig(svc config.ConfigService) (*config.Config, error) {
	cfg, err := svc.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := o.applyOverrides(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (o *options) applyOverrides(cfg *config.Config) error {
	if o.catalogPath != "" {
		cfg.CatalogPath = o.catalogPath
	} else if !filepath.IsAbs(cfg.CatalogPath) && o.configPath != "" {
		// relative paths in an explicit config file are relative to that file
		cfg.CatalogPath = filepath.Join(filepath.Dir(o.configPath), cfg.CatalogPath)
	}
	if o.page != "" {
		cfg.DefaultPage = o.page
	}
	return cfg.Validate()
}

// loadStores fills in-memory stores from the configured catalog without a bus
func (o *options) loadStores(cmd *cobra.Command) (logic.Stores, error) {
	cfg, err := o.loadConfig(o.configService())
	if err != nil {
		return logic.Stores{}, err
	}
	stores := logic.NewMemoryStores()
	logger := newStderrLogger(cmd.ErrOrStderr(), o.verbose, o.debug)
	if err := loadCatalog(cfg.CatalogPath, stores, logger); err != nil {
		return logic.Stores{}, err
	}
	return stores, nil
}
