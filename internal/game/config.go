package game

import "time"

// Finite category ids. Their buffers hold a fixed list and never refill.
const (
	CategoryDaily     = "daily"
	CategoryChallenge = "challenge"
	CategoryReview    = "review"
	CategoryHardest   = "hardest"
)

// Scoring holds the points table.
type Scoring struct {
	Base         int `mapstructure:"base"`
	StreakStep   int `mapstructure:"streak_step"`
	StreakCap    int `mapstructure:"streak_cap"`
	FastBonus    int `mapstructure:"fast_bonus"`
	WrongPenalty int `mapstructure:"wrong_penalty"`
}

// Config controls an Engine.
type Config struct {
	// BufferSize is the lookahead depth for endless categories.
	BufferSize int `mapstructure:"buffer_size"`

	// AutoAdvance is the feedback pause after a correct answer.
	AutoAdvance time.Duration `mapstructure:"auto_advance"`
	// FailPause is the feedback pause after a wrong answer.
	FailPause time.Duration `mapstructure:"fail_pause"`
	// SkipPause is the brief freeze after a skip.
	SkipPause time.Duration `mapstructure:"skip_pause"`

	// TimedMode is the per-item time limit. Zero disables the countdown.
	TimedMode time.Duration `mapstructure:"timed_mode"`
	// TimerTick is how often the countdown progress is refreshed.
	TimerTick time.Duration `mapstructure:"timer_tick"`

	// FastAnswer is the latency under which a correct answer earns the
	// speed bonus.
	FastAnswer time.Duration `mapstructure:"fast_answer"`

	// Milestones maps a streak length to its badge text.
	Milestones map[int]string `mapstructure:"milestones"`

	// FiniteCategories lists the categories whose items come from the
	// finite-set generator.
	FiniteCategories []string `mapstructure:"finite_categories"`

	// WrongAnswerTapToDismiss holds wrong-answer feedback until
	// DismissWrongAnswer is called instead of auto-advancing.
	WrongAnswerTapToDismiss bool `mapstructure:"wrong_answer_tap_to_dismiss"`

	Scoring Scoring `mapstructure:"scoring"`

	// StreakMoodAt is the streak at which the mood turns to MoodStreak.
	StreakMoodAt int `mapstructure:"streak_mood_at"`
	// StruggleAt is the consecutive-miss count that marks a struggle and,
	// once recovered from, a comeback.
	StruggleAt int `mapstructure:"struggle_at"`

	// HistoryLimit caps SessionState.AnswerHistory.
	HistoryLimit int `mapstructure:"history_limit"`
}

// DefaultMilestones returns the standard streak badges.
func DefaultMilestones() map[int]string {
	return map[int]string{
		5:  "On a roll!",
		10: "Spelling star!",
		20: "Word wizard!",
		30: "Unstoppable!",
		50: "Spelling legend!",
	}
}

// DefaultConfig returns the standard engine settings.
func DefaultConfig() Config {
	return Config{
		BufferSize:       5,
		AutoAdvance:      600 * time.Millisecond,
		FailPause:        1500 * time.Millisecond,
		SkipPause:        250 * time.Millisecond,
		TimerTick:        100 * time.Millisecond,
		FastAnswer:       2500 * time.Millisecond,
		Milestones:       DefaultMilestones(),
		FiniteCategories: []string{CategoryDaily, CategoryChallenge, CategoryReview, CategoryHardest},
		Scoring: Scoring{
			Base:         10,
			StreakStep:   2,
			StreakCap:    10,
			FastBonus:    5,
			WrongPenalty: 5,
		},
		StreakMoodAt: 5,
		StruggleAt:   3,
		HistoryLimit: 50,
	}
}

// withDefaults fills zero values from DefaultConfig.
func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.BufferSize <= 0 {
		c.BufferSize = def.BufferSize
	}
	if c.AutoAdvance <= 0 {
		c.AutoAdvance = def.AutoAdvance
	}
	if c.FailPause <= 0 {
		c.FailPause = def.FailPause
	}
	if c.SkipPause <= 0 {
		c.SkipPause = def.SkipPause
	}
	if c.TimedMode < 0 {
		c.TimedMode = 0
	}
	if c.TimerTick <= 0 {
		c.TimerTick = def.TimerTick
	}
	if c.FastAnswer <= 0 {
		c.FastAnswer = def.FastAnswer
	}
	if c.Milestones == nil {
		c.Milestones = def.Milestones
	}
	if c.FiniteCategories == nil {
		c.FiniteCategories = def.FiniteCategories
	}
	if c.Scoring == (Scoring{}) {
		c.Scoring = def.Scoring
	}
	if c.StreakMoodAt <= 0 {
		c.StreakMoodAt = def.StreakMoodAt
	}
	if c.StruggleAt <= 0 {
		c.StruggleAt = def.StruggleAt
	}
	if c.HistoryLimit <= 0 {
		c.HistoryLimit = def.HistoryLimit
	}
	return c
}

// IsFinite reports whether category draws from the finite-set generator.
func (c Config) IsFinite(category string) bool {
	for _, id := range c.FiniteCategories {
		if id == category {
			return true
		}
	}
	return false
}
