// Package config loads spellbee settings from an optional config file and
// SPELLBEE_* environment variables on top of each package's defaults.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/njytim-cyber/spelling-bee-sub001/internal/difficulty"
	"github.com/njytim-cyber/spelling-bee-sub001/internal/game"
	"github.com/njytim-cyber/spelling-bee-sub001/internal/llm"
	"github.com/njytim-cyber/spelling-bee-sub001/internal/timerpool"
	"github.com/njytim-cyber/spelling-bee-sub001/internal/wordbank"
)

const (
	envPrefix  = "SPELLBEE"
	configName = "config"
	appDir     = "spellbee"
)

// Config is the complete application configuration.
type Config struct {
	// DB is the SQLite path. Empty means the default data location.
	DB string `mapstructure:"db"`

	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`

	// Shields is the shield inventory of a new profile.
	Shields int `mapstructure:"shields"`
	// MaxShields caps the inventory the daily set can grow.
	MaxShields int `mapstructure:"max_shields"`
	// TimedLimit is the per-item limit used by --timed and the home toggle.
	TimedLimit time.Duration `mapstructure:"timed_limit"`
	// SnapshotKeep is how many profile snapshots are retained.
	SnapshotKeep int `mapstructure:"snapshot_keep"`

	// Words lists extra word-list files (.yaml, .yml, .toml).
	Words []string `mapstructure:"words"`

	Game       game.Config       `mapstructure:"game"`
	Difficulty difficulty.Config `mapstructure:"difficulty"`
	Timers     timerpool.Config  `mapstructure:"timers"`
	WordBank   wordbank.Config   `mapstructure:"wordbank"`
	LLM        llm.Config        `mapstructure:"llm"`

	// File is the config file that was read, if any.
	File string `mapstructure:"-"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		LogLevel:     "warn",
		LogFormat:    "text",
		Shields:      1,
		MaxShields:   3,
		TimedLimit:   10 * time.Second,
		SnapshotKeep: 20,
		Game:         game.DefaultConfig(),
		Difficulty:   difficulty.DefaultConfig(),
		Timers:       timerpool.DefaultConfig(),
		WordBank:     wordbank.DefaultConfig(),
		LLM:          llm.DefaultConfig(),
	}
}

// Dir returns the directory searched for config.yaml/config.toml:
// $XDG_CONFIG_HOME/spellbee, else ~/.config/spellbee.
func Dir() (string, error) {
	if d := os.Getenv("XDG_CONFIG_HOME"); d != "" {
		return filepath.Join(d, appDir), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".config", appDir), nil
}

// Load reads path, or the first config file found in Dir when path is
// empty, and applies environment overrides. A missing default file is not
// an error; a missing explicit file is.
func Load(path string) (Config, error) {
	cfg := Default()

	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	registerDefaults(v, cfg)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		dir, err := Dir()
		if err != nil {
			return Config{}, err
		}
		v.SetConfigName(configName)
		v.AddConfigPath(dir)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	// A configured badge table replaces the defaults instead of merging
	// into them.
	if v.IsSet("game.milestones") {
		cfg.Game.Milestones = nil
	}
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	cfg.File = v.ConfigFileUsed()

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// registerDefaults makes every scalar key known to viper so that the
// matching SPELLBEE_* variable overrides it.
func registerDefaults(v *viper.Viper, c Config) {
	set := func(kv map[string]any) {
		for k, val := range kv {
			v.SetDefault(k, val)
		}
	}
	set(map[string]any{
		"db":            c.DB,
		"log_level":     c.LogLevel,
		"log_format":    c.LogFormat,
		"shields":       c.Shields,
		"max_shields":   c.MaxShields,
		"timed_limit":   c.TimedLimit,
		"snapshot_keep": c.SnapshotKeep,
		"words":         c.Words,
	})

	g := c.Game
	set(map[string]any{
		"game.buffer_size":                 g.BufferSize,
		"game.auto_advance":                g.AutoAdvance,
		"game.fail_pause":                  g.FailPause,
		"game.skip_pause":                  g.SkipPause,
		"game.timed_mode":                  g.TimedMode,
		"game.timer_tick":                  g.TimerTick,
		"game.fast_answer":                 g.FastAnswer,
		"game.finite_categories":           g.FiniteCategories,
		"game.wrong_answer_tap_to_dismiss": g.WrongAnswerTapToDismiss,
		"game.scoring.base":                g.Scoring.Base,
		"game.scoring.streak_step":         g.Scoring.StreakStep,
		"game.scoring.streak_cap":          g.Scoring.StreakCap,
		"game.scoring.fast_bonus":          g.Scoring.FastBonus,
		"game.scoring.wrong_penalty":       g.Scoring.WrongPenalty,
		"game.streak_mood_at":              g.StreakMoodAt,
		"game.struggle_at":                 g.StruggleAt,
		"game.history_limit":               g.HistoryLimit,
	})

	d := c.Difficulty
	set(map[string]any{
		"difficulty.min_level":      d.MinLevel,
		"difficulty.max_level":      d.MaxLevel,
		"difficulty.start_level":    d.StartLevel,
		"difficulty.window":         d.Window,
		"difficulty.fast_ms":        d.FastMs,
		"difficulty.slow_ms":        d.SlowMs,
		"difficulty.up_threshold":   d.UpThreshold,
		"difficulty.down_threshold": d.DownThreshold,
		"difficulty.min_samples_up": d.MinSamplesUp,
	})

	set(map[string]any{
		"timers.max_pending":      c.Timers.MaxPending,
		"wordbank.daily_size":     c.WordBank.DailySize,
		"wordbank.challenge_size": c.WordBank.ChallengeSize,
		"wordbank.review_limit":   c.WordBank.ReviewLimit,
		"wordbank.hardest_limit":  c.WordBank.HardestLimit,
		"wordbank.level_spread":   c.WordBank.LevelSpread,
	})

	l := c.LLM
	set(map[string]any{
		"llm.provider":           l.Provider,
		"llm.timeout":            l.Timeout,
		"llm.retry.max_attempts": l.Retry.MaxAttempts,
		"llm.retry.initial_wait": l.Retry.InitialWait,
		"llm.retry.max_wait":     l.Retry.MaxWait,
		"llm.retry.multiplier":   l.Retry.Multiplier,
	})
	for name, p := range map[string]llm.ProviderConfig{
		llm.ProviderAnthropic:  l.Anthropic,
		llm.ProviderOpenAI:     l.OpenAI,
		llm.ProviderGemini:     l.Gemini,
		llm.ProviderOpenRouter: l.OpenRouter,
	} {
		set(map[string]any{
			"llm." + name + ".api_key":  p.APIKey,
			"llm." + name + ".model":    p.Model,
			"llm." + name + ".base_url": p.BaseURL,
		})
	}
}

// Validate checks settings the packages cannot repair themselves.
func (c Config) Validate() error {
	var errs []error
	if _, err := ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("log_format must be text or json, got %q", c.LogFormat))
	}
	if c.Difficulty.MinLevel > c.Difficulty.MaxLevel {
		errs = append(errs, fmt.Errorf("difficulty.min_level %d exceeds max_level %d", c.Difficulty.MinLevel, c.Difficulty.MaxLevel))
	}
	if c.Game.TimedMode < 0 {
		errs = append(errs, fmt.Errorf("game.timed_mode must not be negative"))
	}
	if c.Shields < 0 {
		errs = append(errs, fmt.Errorf("shields must not be negative"))
	}
	if c.MaxShields < 0 {
		errs = append(errs, fmt.Errorf("max_shields must not be negative"))
	}
	if c.TimedLimit <= 0 {
		errs = append(errs, fmt.Errorf("timed_limit must be positive"))
	}
	return errors.Join(errs...)
}

// ParseLevel maps debug, info, warn and error to slog levels.
func ParseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("log_level: %w", err)
	}
	return l, nil
}

// NewLogger builds the process logger. An invalid level falls back to warn.
func (c Config) NewLogger(w io.Writer) *slog.Logger {
	level, err := ParseLevel(c.LogLevel)
	if err != nil {
		level = slog.LevelWarn
	}
	opts := &slog.HandlerOptions{Level: level}
	if c.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
