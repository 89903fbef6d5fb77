package cmd

import (
	"fmt"
	"os"

	"sift/internal/config"
	"sift/internal/logger"
	"sift/internal/store"
	"sift/internal/tools"

	"github.com/spf13/cobra"
)

var (
	flagConfig   string
	flagLogLevel string
	flagHistory  string
	flagJSON     bool
)

var rootCmd = &cobra.Command{
	Use:          "sift [path]",
	Short:        "Search a local directory tree by file name and content",
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		root := "."
		if len(args) == 1 {
			root = args[0]
		}
		return runTUI(root)
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "config file (default ./"+config.DefaultFile+" if present)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "log level: debug, info, warn, error (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagHistory, "history", "", "record calls to this SQLite file (overrides config)")
}

// env is everything a command needs, built from config and flags.
type env struct {
	cfg     *config.Config
	log     *logger.ConsoleLogger
	history *store.SQLiteStore
	svc     *tools.Service
}

func loadEnv() (*env, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, err
	}
	if flagLogLevel != "" {
		cfg.LogLevel = flagLogLevel
	}
	if flagHistory != "" {
		cfg.HistoryDB = flagHistory
	}

	e := &env{
		cfg: cfg,
		log: logger.NewConsoleLogger(os.Stderr, cfg.LogLevel),
	}
	e.svc = &tools.Service{Log: e.log}

	if cfg.HistoryDB != "" {
		st, err := store.Open(cfg.HistoryDB)
		if err != nil {
			return nil, fmt.Errorf("open history: %w", err)
		}
		e.history = st
		e.svc.History = st
	}
	return e, nil
}

func (e *env) Close() {
	if e.history != nil {
		e.history.Close()
	}
}

// orDefault returns v unless it is zero.
func orDefault(v, def int) int {
	if v == 0 {
		return def
	}
	return v
}
