// Package session runs one play session at a time on top of the game
// engine. It loads the learner's word records and profile, feeds every
// answer back into the Leitner scheduler and the store, and closes the
// session with a summary and a fresh profile snapshot.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/njytim-cyber/spelling-bee-sub001/internal/difficulty"
	"github.com/njytim-cyber/spelling-bee-sub001/internal/game"
	"github.com/njytim-cyber/spelling-bee-sub001/internal/leitner"
	"github.com/njytim-cyber/spelling-bee-sub001/internal/store"
	"github.com/njytim-cyber/spelling-bee-sub001/internal/timerpool"
	"github.com/njytim-cyber/spelling-bee-sub001/internal/wordbank"
)

// SnapshotVersion is written into every profile snapshot.
const SnapshotVersion = 1

// ErrNoSession is returned by End when no session is running.
var ErrNoSession = errors.New("no session in progress")

// Config holds the service settings.
type Config struct {
	Game       game.Config
	Difficulty difficulty.Config
	Timers     timerpool.Config
	WordBank   wordbank.Config

	// Shields is the inventory of a new profile.
	Shields int
	// MaxShields caps the inventory. Zero means no cap.
	MaxShields int
	// SnapshotKeep is how many snapshots survive pruning. Zero keeps all.
	SnapshotKeep int
}

// Deps are the service's collaborators. Clock and Bank are required.
type Deps struct {
	Words     store.WordRepo
	Events    store.EventRepo
	Snapshots store.SnapshotRepo

	Bank   *wordbank.Bank
	Clock  timerpool.Clock
	Logger *slog.Logger

	// Rand seeds each session's engine. Nil means a clock-seeded source.
	Rand *rand.Rand
}

// Options select what a session plays.
type Options struct {
	Category  string
	Challenge string
	Hard      bool
	// Timed overrides the configured per-item limit when non-zero.
	Timed time.Duration
}

// Service owns the learner state between sessions and the running engine
// during one. Like the engine, it must be used from a single goroutine.
type Service struct {
	cfg    Config
	deps   Deps
	logger *slog.Logger

	sched   *leitner.Scheduler
	gen     *wordbank.Generator
	profile store.ProfileData
	loaded  bool

	// Active session.
	ctx        context.Context
	engine     *game.Engine
	diff       *difficulty.Controller
	id         string
	opts       Options
	started    time.Time
	startLevel int
	lastChosen string
}

// New creates a service. Call Load before Start.
func New(cfg Config, deps Deps) *Service {
	if deps.Bank == nil {
		panic("session: Deps.Bank is required")
	}
	if deps.Clock == nil {
		panic("session: Deps.Clock is required")
	}
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}

	sched := leitner.NewScheduler()
	gen := wordbank.NewGenerator(deps.Bank, sched, cfg.WordBank)
	gen.Now = deps.Clock.Now

	return &Service{
		cfg:     cfg,
		deps:    deps,
		logger:  deps.Logger,
		sched:   sched,
		gen:     gen,
		profile: defaultProfile(cfg),
	}
}

func defaultProfile(cfg Config) store.ProfileData {
	start := cfg.Difficulty.StartLevel
	if start <= 0 {
		start = difficulty.DefaultConfig().StartLevel
	}
	return store.ProfileData{
		Level:    start,
		MinLevel: cfg.Difficulty.MinLevel,
		Shields:  cfg.Shields,
	}
}

// Load reads word records and the latest profile snapshot. Missing repos
// leave the defaults in place.
func (s *Service) Load(ctx context.Context) error {
	if s.deps.Words != nil {
		records, err := s.deps.Words.All(ctx)
		if err != nil {
			return fmt.Errorf("load word records: %w", err)
		}
		s.sched.Load(records)
	}
	if s.deps.Snapshots != nil {
		snap, err := s.deps.Snapshots.Latest(ctx)
		if err != nil {
			return fmt.Errorf("load profile: %w", err)
		}
		if snap != nil && snap.Data.Profile != nil {
			s.profile = *snap.Data.Profile
		}
	}
	s.loaded = true
	s.logger.Debug("learner state loaded",
		"words", s.sched.Len(),
		"level", s.profile.Level,
		"shields", s.profile.Shields,
	)
	return nil
}

// Profile returns the learner profile.
func (s *Service) Profile() store.ProfileData {
	return s.profile
}

// Scheduler returns the review scheduler.
func (s *Service) Scheduler() *leitner.Scheduler {
	return s.sched
}

// Generator returns the item generator.
func (s *Service) Generator() *wordbank.Generator {
	return s.gen
}

// Engine returns the running engine, or nil between sessions.
func (s *Service) Engine() *game.Engine {
	return s.engine
}

// Active reports whether a session is running.
func (s *Service) Active() bool {
	return s.engine != nil
}

// ID returns the running session's id.
func (s *Service) ID() string {
	return s.id
}

// Start begins a session. A running session is ended first and its
// summary discarded. Store failures are logged and do not stop play.
func (s *Service) Start(ctx context.Context, opts Options) error {
	if !s.loaded {
		if err := s.Load(ctx); err != nil {
			return err
		}
	}
	if s.engine != nil {
		if _, err := s.End(ctx); err != nil {
			s.logger.Warn("end previous session", "error", err)
		}
	}
	if opts.Category == game.CategoryChallenge && opts.Challenge == "" {
		return fmt.Errorf("challenge category needs a challenge id")
	}
	if !s.cfg.Game.IsFinite(opts.Category) && opts.Category != "" && !s.deps.Bank.HasCategory(opts.Category) {
		return fmt.Errorf("start %q: %w", opts.Category, wordbank.ErrUnknownCategory)
	}

	s.diff = difficulty.New(s.cfg.Difficulty)
	if s.profile.MinLevel > s.diff.MinLevel() {
		s.diff.SetMinLevel(s.profile.MinLevel)
	}
	s.diff.Restore(s.profile.Level)

	gameCfg := s.cfg.Game
	if opts.Timed > 0 {
		gameCfg.TimedMode = opts.Timed
	}

	rng := s.deps.Rand
	if rng == nil {
		seed := uint64(s.deps.Clock.Now().UnixNano())
		rng = rand.New(rand.NewPCG(seed, seed>>1|1))
	}

	s.ctx = ctx
	s.id = uuid.NewString()
	s.opts = opts
	s.started = s.deps.Clock.Now()
	s.startLevel = s.diff.Level()
	s.lastChosen = ""

	s.engine = game.New(gameCfg, game.Deps{
		Generate:       s.gen.Item,
		GenerateFinite: s.gen.FiniteSet,
		Hooks: game.Hooks{
			OnAnswer:        s.onAnswer,
			OnConsumeShield: s.onConsumeShield,
			StreakShields:   func() int { return s.profile.Shields },
		},
		Difficulty: s.diff,
		Pool:       timerpool.New(s.deps.Clock, s.cfg.Timers, s.logger),
		Rand:       rng,
		Logger:     s.logger,
	})
	s.engine.SetHardMode(opts.Hard)
	s.engine.Start(opts.Category, opts.Challenge)

	s.appendSession(store.SessionEventData{
		SessionID: s.id,
		Action:    "start",
		Category:  opts.Category,
		HardMode:  opts.Hard,
	})
	s.logger.Info("session started",
		"session", s.id,
		"category", opts.Category,
		"hard_mode", opts.Hard,
		"level", s.startLevel,
		"items", len(s.engine.Buffer()),
	)
	return nil
}

// Swipe forwards a swipe to the engine, remembering the chosen option so
// the answer event can record it.
func (s *Service) Swipe(dir game.Direction) {
	if s.engine == nil {
		return
	}
	if head := s.engine.Head(); head != nil && !s.engine.State().Frozen && !s.engine.Paused() {
		s.lastChosen = head.Chosen(dir.OptionIndex())
	}
	s.engine.Swipe(dir)
	// Answers are reported during Swipe. A tutorial miss or a skip is not,
	// and its choice must not leak into a later timeout.
	s.lastChosen = ""
}

func (s *Service) onAnswer(it game.Item, correct bool, responseTimeMs int) {
	chosen := s.lastChosen
	s.lastChosen = ""

	word := it.Meta["word"]
	if word == "" {
		return
	}
	category := it.Meta["category"]
	level, _ := strconv.Atoi(it.Meta["level"])

	rec := s.sched.RecordAttempt(word, category, correct, responseTimeMs, s.deps.Clock.Now())

	if s.deps.Words != nil {
		if err := s.deps.Words.Upsert(s.ctx, rec.Data()); err != nil {
			s.logger.Warn("save word record", "word", word, "error", err)
		}
	}
	if s.deps.Events != nil {
		err := s.deps.Events.AppendAnswerEvent(s.ctx, store.AnswerEventData{
			SessionID: s.id,
			Word:      word,
			Category:  category,
			Level:     level,
			Prompt:    it.Prompt,
			Chosen:    chosen,
			Correct:   correct,
			TimeMs:    responseTimeMs,
		})
		if err != nil {
			s.logger.Warn("append answer event", "word", word, "error", err)
		}
	}
}

func (s *Service) onConsumeShield() {
	if s.profile.Shields > 0 {
		s.profile.Shields--
	}
	s.logger.Debug("shield consumed", "session", s.id, "remaining", s.profile.Shields)
}

// End closes the running session, updates the profile and saves a
// snapshot. The summary is valid even when saving fails.
func (s *Service) End(ctx context.Context) (Summary, error) {
	if s.engine == nil {
		return Summary{}, ErrNoSession
	}
	eng := s.engine
	st := eng.State()
	now := s.deps.Clock.Now()
	completed := eng.DailyComplete()
	eng.Close()

	sum := Summary{
		SessionID:     s.id,
		Category:      s.opts.Category,
		HardMode:      s.opts.Hard,
		Score:         st.Score,
		BestStreak:    st.BestStreak,
		Answered:      st.TotalAnswered,
		Correct:       st.TotalCorrect,
		Accuracy:      st.Accuracy(),
		Duration:      now.Sub(s.started),
		StartLevel:    s.startLevel,
		EndLevel:      s.diff.Level(),
		SetCompleted:  completed,
		NewHighScore:  st.Score > s.profile.HighScore,
		NewBestStreak: st.BestStreak > s.profile.BestStreak,
	}

	p := &s.profile
	p.Level = s.diff.Level()
	p.MinLevel = s.diff.MinLevel()
	p.HighScore = max(p.HighScore, st.Score)
	p.BestStreak = max(p.BestStreak, st.BestStreak)
	p.HardMode = s.opts.Hard
	if s.opts.Category != "" {
		p.LastCategory = s.opts.Category
	}

	today := now.Format(time.DateOnly)
	if completed && s.opts.Category == game.CategoryDaily && p.DailyDoneDate != today {
		p.DailyDoneDate = today
		if s.cfg.MaxShields <= 0 || p.Shields < s.cfg.MaxShields {
			p.Shields++
			sum.ShieldAwarded = true
		}
	}
	sum.Shields = p.Shields

	s.appendSession(store.SessionEventData{
		SessionID:       s.id,
		Action:          "end",
		Category:        s.opts.Category,
		HardMode:        s.opts.Hard,
		Score:           st.Score,
		BestStreak:      st.BestStreak,
		QuestionsServed: st.TotalAnswered,
		CorrectAnswers:  st.TotalCorrect,
		DurationSecs:    int(sum.Duration.Seconds()),
	})

	s.logger.Info("session ended",
		"session", s.id,
		"score", st.Score,
		"answered", st.TotalAnswered,
		"correct", st.TotalCorrect,
		"level", p.Level,
		"shield_awarded", sum.ShieldAwarded,
	)

	s.engine = nil
	s.diff = nil
	s.ctx = nil

	return sum, s.saveProfile(ctx, now)
}

// saveProfile writes a snapshot of the profile and prunes old ones.
func (s *Service) saveProfile(ctx context.Context, now time.Time) error {
	if s.deps.Snapshots == nil {
		return nil
	}
	profile := s.profile
	snap := &store.Snapshot{
		Timestamp: now,
		Data:      store.SnapshotData{Version: SnapshotVersion, Profile: &profile},
	}
	if err := s.deps.Snapshots.Save(ctx, snap); err != nil {
		return fmt.Errorf("save profile snapshot: %w", err)
	}
	if s.cfg.SnapshotKeep > 0 {
		if err := s.deps.Snapshots.Prune(ctx, s.cfg.SnapshotKeep); err != nil {
			return fmt.Errorf("prune snapshots: %w", err)
		}
	}
	return nil
}

func (s *Service) appendSession(data store.SessionEventData) {
	if s.deps.Events == nil {
		return
	}
	ctx := s.ctx
	if ctx == nil {
		ctx = context.Background()
	}
	if err := s.deps.Events.AppendSessionEvent(ctx, data); err != nil {
		s.logger.Warn("append session event", "session", data.SessionID, "action", data.Action, "error", err)
	}
}
