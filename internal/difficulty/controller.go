// Package difficulty adapts the item level to the player's recent answers.
//
// Every answer is scored by speed and correctness into a short rolling
// window. When the window sum crosses a threshold the level moves one step
// and the window is cleared, so a single noisy answer never moves the level
// on its own.
package difficulty

const (
	// DefaultWindow is the number of recent answers the controller weighs.
	DefaultWindow = 5

	// DefaultFastMs is the response time under which a correct answer is fast.
	DefaultFastMs = 3000

	// DefaultSlowMs is the response time over which a correct answer is slow.
	DefaultSlowMs = 8000
)

// Per-answer scores fed into the window.
const (
	scoreFastCorrect = 1.0
	scoreCorrect     = 0.25
	scoreSlowCorrect = -0.5
	scoreWrong       = -1.0
)

// Config holds the controller's tunables.
type Config struct {
	MinLevel   int `mapstructure:"min_level"`
	MaxLevel   int `mapstructure:"max_level"`
	StartLevel int `mapstructure:"start_level"`

	// Window is the rolling window length in answers.
	Window int `mapstructure:"window"`

	FastMs int `mapstructure:"fast_ms"`
	SlowMs int `mapstructure:"slow_ms"`

	// UpThreshold is the window sum at or above which the level rises.
	UpThreshold float64 `mapstructure:"up_threshold"`
	// DownThreshold is the window sum at or below which the level drops.
	DownThreshold float64 `mapstructure:"down_threshold"`
	// MinSamplesUp is the minimum number of answers in the window before
	// the level may rise.
	MinSamplesUp int `mapstructure:"min_samples_up"`
}

// DefaultConfig returns the standard controller settings.
func DefaultConfig() Config {
	return Config{
		MinLevel:      1,
		MaxLevel:      10,
		StartLevel:    1,
		Window:        DefaultWindow,
		FastMs:        DefaultFastMs,
		SlowMs:        DefaultSlowMs,
		UpThreshold:   3,
		DownThreshold: -2,
		MinSamplesUp:  3,
	}
}

type sample struct {
	score     float64
	latencyMs int
	correct   bool
}

// Controller tracks the current level. The zero value is not usable;
// create one with New.
type Controller struct {
	cfg     Config
	level   int
	window  []sample
	changes int
}

// New creates a controller at cfg.StartLevel, clamped to the level range.
func New(cfg Config) *Controller {
	def := DefaultConfig()
	if cfg.Window <= 0 {
		cfg.Window = def.Window
	}
	if cfg.FastMs <= 0 {
		cfg.FastMs = def.FastMs
	}
	if cfg.SlowMs <= cfg.FastMs {
		cfg.SlowMs = max(def.SlowMs, cfg.FastMs+1)
	}
	if cfg.MaxLevel < cfg.MinLevel {
		cfg.MaxLevel = cfg.MinLevel
	}
	if cfg.UpThreshold <= 0 {
		cfg.UpThreshold = def.UpThreshold
	}
	if cfg.DownThreshold >= 0 {
		cfg.DownThreshold = def.DownThreshold
	}

	c := &Controller{cfg: cfg}
	c.level = c.clamp(cfg.StartLevel)
	return c
}

// Level returns the current level.
func (c *Controller) Level() int {
	return c.level
}

// MinLevel returns the current floor.
func (c *Controller) MinLevel() int {
	return c.cfg.MinLevel
}

// RecordAnswer folds one answer into the window and adjusts the level.
func (c *Controller) RecordAnswer(responseTimeMs int, correct bool) {
	if responseTimeMs < 0 {
		responseTimeMs = 0
	}
	c.window = append(c.window, sample{
		score:     c.score(responseTimeMs, correct),
		latencyMs: responseTimeMs,
		correct:   correct,
	})
	if len(c.window) > c.cfg.Window {
		c.window = c.window[len(c.window)-c.cfg.Window:]
	}

	sum := 0.0
	for _, s := range c.window {
		sum += s.score
	}

	switch {
	case sum >= c.cfg.UpThreshold && len(c.window) >= c.cfg.MinSamplesUp:
		c.step(+1)
	case sum <= c.cfg.DownThreshold:
		c.step(-1)
	}
}

// SetMinLevel raises or lowers the floor. The level is pulled up to the
// new floor if it sits below it.
func (c *Controller) SetMinLevel(n int) {
	c.cfg.MinLevel = n
	if c.cfg.MaxLevel < n {
		c.cfg.MaxLevel = n
	}
	c.level = c.clamp(c.level)
}

// Restore sets the level from a persisted value and clears the window.
func (c *Controller) Restore(level int) {
	c.level = c.clamp(level)
	c.window = nil
}

// Stats summarises the current window.
type Stats struct {
	Level        int
	Samples      int
	AvgLatencyMs int
	Accuracy     float64
	Changes      int
}

// Stats returns the level and window statistics.
func (c *Controller) Stats() Stats {
	st := Stats{Level: c.level, Samples: len(c.window), Changes: c.changes}
	if len(c.window) == 0 {
		return st
	}
	total, correct := 0, 0
	for _, s := range c.window {
		total += s.latencyMs
		if s.correct {
			correct++
		}
	}
	st.AvgLatencyMs = total / len(c.window)
	st.Accuracy = float64(correct) / float64(len(c.window))
	return st
}

func (c *Controller) score(latencyMs int, correct bool) float64 {
	switch {
	case !correct:
		return scoreWrong
	case latencyMs < c.cfg.FastMs:
		return scoreFastCorrect
	case latencyMs > c.cfg.SlowMs:
		return scoreSlowCorrect
	default:
		return scoreCorrect
	}
}

// step moves the level and resets the window whenever the level changes.
func (c *Controller) step(delta int) {
	next := c.clamp(c.level + delta)
	if next == c.level {
		return
	}
	c.level = next
	c.window = nil
	c.changes++
}

func (c *Controller) clamp(level int) int {
	if level < c.cfg.MinLevel {
		return c.cfg.MinLevel
	}
	if level > c.cfg.MaxLevel {
		return c.cfg.MaxLevel
	}
	return level
}
