package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/njytim-cyber/spelling-bee-sub001/internal/config"
	"github.com/njytim-cyber/spelling-bee-sub001/internal/session"
	"github.com/njytim-cyber/spelling-bee-sub001/internal/store"
	"github.com/njytim-cyber/spelling-bee-sub001/internal/timerpool"
	"github.com/njytim-cyber/spelling-bee-sub001/internal/wordbank"
)

var rootCmd = &cobra.Command{
	Use:   "spellbee",
	Short: "Spelling practice in the terminal",
	Long: "Spellbee shows a clue and three spellings. Swipe left, down or right to pick one,\n" +
		"build a streak, and let spaced review bring back the words you miss.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, nil)
	},
}

// Execute runs the root command with ctx.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides SPELLBEE_DB env var)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file (.yaml or .toml)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn or error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(reviewCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(wordsCmd)
	rootCmd.AddCommand(enrichCmd)
	rootCmd.AddCommand(versionCmd)
}

// env is what every command that touches learner data needs.
type env struct {
	cfg    config.Config
	logger *slog.Logger
	store  *store.Store
	bank   *wordbank.Bank
}

// loadConfig reads the config file and applies the persistent flags.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, err
	}
	if lvl, _ := cmd.Flags().GetString("log-level"); lvl != "" {
		if _, err := config.ParseLevel(lvl); err != nil {
			return config.Config{}, err
		}
		cfg.LogLevel = lvl
	}
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		cfg.DB = p
	}
	return cfg, nil
}

// resolveDBPath returns the database path using --db or the db config key
// (which SPELLBEE_DB also sets), then the default XDG path.
func resolveDBPath(cfg config.Config) (string, error) {
	if cfg.DB != "" {
		return cfg.DB, store.EnsureDir(cfg.DB)
	}
	return store.DefaultDBPath()
}

// openEnv loads config, installs the logger, opens the store and builds
// the word bank. The caller closes env.store.
func openEnv(cmd *cobra.Command) (*env, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	logger := cfg.NewLogger(os.Stderr)
	slog.SetDefault(logger)

	dbPath, err := resolveDBPath(cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	bank := wordbank.BuiltinBank()
	if err := wordbank.LoadInto(bank, cfg.Words...); err != nil {
		st.Close()
		return nil, fmt.Errorf("load word lists: %w", err)
	}
	logger.Debug("environment ready", "db", dbPath, "config", cfg.File, "words", bank.Len())

	return &env{cfg: cfg, logger: logger, store: st, bank: bank}, nil
}

// newService builds and loads the session service on clock.
func (e *env) newService(cmd *cobra.Command, clock timerpool.Clock) (*session.Service, error) {
	svc := session.New(session.Config{
		Game:         e.cfg.Game,
		Difficulty:   e.cfg.Difficulty,
		Timers:       e.cfg.Timers,
		WordBank:     e.cfg.WordBank,
		Shields:      e.cfg.Shields,
		MaxShields:   e.cfg.MaxShields,
		SnapshotKeep: e.cfg.SnapshotKeep,
	}, session.Deps{
		Words:     e.store.WordRepo(),
		Events:    e.store.EventRepo(),
		Snapshots: e.store.SnapshotRepo(),
		Bank:      e.bank,
		Clock:     clock,
		Logger:    e.logger,
	})
	if err := svc.Load(cmd.Context()); err != nil {
		return nil, fmt.Errorf("load learner state: %w", err)
	}
	return svc, nil
}
