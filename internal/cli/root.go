// Package cli implements the archversions command line interface.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/git-pkgs/archversions"
	_ "github.com/git-pkgs/archversions/all"
	"github.com/git-pkgs/archversions/internal/config"
)

type options struct {
	cfgFile string
	jsonOut bool
}

// NewRootCmd builds the archversions command tree.
func NewRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "archversions [game-version]",
		Short: "Show the latest Architectury versions for a Minecraft version",
		Long: "archversions reads the Architectury version catalog and prints the newest " +
			"Loom, Plugin, API and Injectables versions for a game version. Without an " +
			"argument the entry marked stable is used.",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return config.Init(opts.cfgFile)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(cmd, opts, args)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.cfgFile, "config", "", "config file (default config.toml in . or "+config.Dir()+")")
	flags.BoolP("verbose", "v", false, "verbose output")
	flags.BoolVar(&opts.jsonOut, "json", false, "print JSON instead of a table")
	flags.String("catalog-url", "", "version catalog URL")
	flags.Bool("skip-malformed", false, "skip matching versions that do not parse instead of failing")

	_ = viper.BindPFlag("verbose", flags.Lookup("verbose"))
	_ = viper.BindPFlag("catalog_url", flags.Lookup("catalog-url"))
	_ = viper.BindPFlag("skip_malformed", flags.Lookup("skip-malformed"))

	cmd.AddCommand(newVersionsCmd(opts))
	return cmd
}

// Execute runs the root command and exits with status 1 on failure.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// env is the state shared by every subcommand.
type env struct {
	cfg    config.Config
	log    *slog.Logger
	client *archversions.Client
}

func setup(cmd *cobra.Command) (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	log := newLogger(cmd.ErrOrStderr(), cfg.Verbose)
	client := archversions.NewClient(
		archversions.WithTimeout(cfg.Timeout),
		archversions.WithMaxRetries(cfg.MaxRetries),
		archversions.WithBreakerThreshold(cfg.BreakerThreshold),
	).WithUserAgent(cfg.UserAgent)

	if used := viper.ConfigFileUsed(); used != "" {
		log.Debug("loaded config", "file", used)
	}
	return &env{cfg: cfg, log: log, client: client}, nil
}

func (e *env) fetchCatalog(cmd *cobra.Command) (*archversions.Catalog, error) {
	e.log.Debug("fetching catalog", "url", e.cfg.CatalogURL)
	catalog, err := archversions.FetchCatalog(cmd.Context(), e.cfg.CatalogURL, e.client)
	if err != nil {
		return nil, err
	}
	e.log.Debug("catalog loaded", "versions", len(catalog.Keys()), "definitions", len(catalog.DefinitionNames()))
	return catalog, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
