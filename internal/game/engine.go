// Package game is the session engine: it owns the item buffer, runs the
// per-answer state machine, and keeps score, streak and mood.
//
// The engine never blocks. Feedback pauses, auto-advance and the timed-mode
// countdown are timerpool callbacks, and every method must be called from
// the single goroutine that also runs those callbacks.
package game

import (
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/njytim-cyber/spelling-bee-sub001/internal/difficulty"
	"github.com/njytim-cyber/spelling-bee-sub001/internal/timerpool"
)

// Deps are the engine's collaborators. Generate is required, as is either
// Pool or Clock.
type Deps struct {
	Generate       GenerateFunc
	GenerateFinite FiniteSetFunc
	Hooks          Hooks

	Difficulty *difficulty.Controller
	Pool       *timerpool.Pool
	Clock      timerpool.Clock
	Rand       *rand.Rand
	Logger     *slog.Logger
}

// Engine is one play session.
type Engine struct {
	cfg    Config
	gen    GenerateFunc
	finite FiniteSetFunc
	hooks  Hooks
	diff   *difficulty.Controller
	pool   *timerpool.Pool
	clock  timerpool.Clock
	rng    *rand.Rand
	logger *slog.Logger

	state  SessionState
	buffer []Item

	category    string
	challengeID string
	hardMode    bool
	isFinite    bool

	started         bool
	closed          bool
	paused          bool
	pausedElapsed   time.Duration
	awaitingDismiss bool

	progress float64
	tick     timerpool.Handle
}

// New creates an engine. It does nothing until Start.
func New(cfg Config, deps Deps) *Engine {
	if deps.Generate == nil {
		panic("game: Deps.Generate is required")
	}
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if deps.Pool == nil {
		if deps.Clock == nil {
			panic("game: Deps.Pool or Deps.Clock is required")
		}
		deps.Pool = timerpool.New(deps.Clock, timerpool.DefaultConfig(), deps.Logger)
	}
	if deps.Clock == nil {
		deps.Clock = deps.Pool.Clock()
	}
	if deps.Difficulty == nil {
		deps.Difficulty = difficulty.New(difficulty.DefaultConfig())
	}
	if deps.Rand == nil {
		seed := uint64(deps.Clock.Now().UnixNano())
		deps.Rand = rand.New(rand.NewPCG(seed, seed>>1|1))
	}

	return &Engine{
		cfg:    cfg.withDefaults(),
		gen:    deps.Generate,
		finite: deps.GenerateFinite,
		hooks:  deps.Hooks,
		diff:   deps.Difficulty,
		pool:   deps.Pool,
		clock:  deps.Clock,
		rng:    deps.Rand,
		logger: deps.Logger,
	}
}

// Start mounts the engine on a category and builds the first buffer.
// Calling Start again behaves like SetCategory.
func (e *Engine) Start(category, challengeID string) {
	if e.closed {
		return
	}
	e.started = true
	e.load(category, challengeID, true)
}

// SetCategory cancels pending timers, resets the session state and
// rebuilds the buffer for category.
func (e *Engine) SetCategory(category, challengeID string) {
	if e.closed {
		return
	}
	e.started = true
	e.load(category, challengeID, true)
}

// SetHardMode switches hard mode and rebuilds the buffer. The session
// state is kept apart from the transient feedback flags.
func (e *Engine) SetHardMode(hard bool) {
	if e.closed || e.hardMode == hard {
		return
	}
	e.hardMode = hard
	if !e.started {
		return
	}
	e.load(e.category, e.challengeID, false)
}

// Close cancels every timer and disables the engine.
func (e *Engine) Close() {
	if e.closed {
		return
	}
	e.closed = true
	e.tick = 0
	e.pool.Close()
}

// Pause stops the countdown and declines new timers until Resume. Pending
// feedback timers still fire.
func (e *Engine) Pause() {
	if e.closed || e.paused {
		return
	}
	e.paused = true
	e.stopCountdown()
	if head := e.Head(); head != nil && !e.state.Frozen {
		e.pausedElapsed = e.clock.Now().Sub(head.StartTime)
	} else {
		e.pausedElapsed = 0
	}
	e.pool.Suspend()
}

// Resume restarts the countdown where Pause left it.
func (e *Engine) Resume() {
	if e.closed || !e.paused {
		return
	}
	e.paused = false
	e.pool.Resume()
	if len(e.buffer) > 0 && !e.state.Frozen {
		e.buffer[0].StartTime = e.clock.Now().Add(-e.pausedElapsed)
		e.startCountdown()
	}
}

// Paused reports whether the engine is paused.
func (e *Engine) Paused() bool {
	return e.paused
}

// Swipe answers the head item. Up skips it. Swipes are ignored while
// frozen, paused or on an empty buffer.
func (e *Engine) Swipe(dir Direction) {
	if e.closed || e.paused || e.state.Frozen || len(e.buffer) == 0 {
		return
	}
	e.state.Frozen = true
	e.stopCountdown()

	head := e.buffer[0]
	latency := e.latency(head)

	if dir == Up {
		e.skip()
		return
	}

	idx := dir.OptionIndex()
	if head.IsCorrect(idx) {
		e.answerCorrect(head, latency)
		return
	}
	e.answerWrong(head, latency, false)
}

// DismissWrongAnswer advances past wrong-answer feedback that is waiting to
// be dismissed. It is a no-op otherwise.
func (e *Engine) DismissWrongAnswer() {
	if e.closed || !e.awaitingDismiss {
		return
	}
	e.advance()
}

// AwaitingDismiss reports whether wrong-answer feedback is waiting for
// DismissWrongAnswer.
func (e *Engine) AwaitingDismiss() bool {
	return e.awaitingDismiss
}

// State returns a copy of the session state.
func (e *Engine) State() SessionState {
	return e.state.clone()
}

// Buffer returns a copy of the item buffer, head first.
func (e *Engine) Buffer() []Item {
	return append([]Item(nil), e.buffer...)
}

// Head returns the active item, or nil on an empty buffer.
func (e *Engine) Head() *Item {
	if len(e.buffer) == 0 {
		return nil
	}
	head := e.buffer[0]
	return &head
}

// Level returns the difficulty level used for new items.
func (e *Engine) Level() int {
	return e.diff.Level()
}

// TimerProgress returns the countdown progress for the head item, 0 to 1.
func (e *Engine) TimerProgress() float64 {
	if e.cfg.TimedMode <= 0 {
		return 0
	}
	return e.progress
}

// DailyComplete reports whether a finite set has been played through.
func (e *Engine) DailyComplete() bool {
	return e.isFinite && e.state.TotalAnswered > 0 && len(e.buffer) == 0
}

// Category returns the active category.
func (e *Engine) Category() string {
	return e.category
}

// ChallengeID returns the active challenge id.
func (e *Engine) ChallengeID() string {
	return e.challengeID
}

// HardMode reports whether hard mode is on.
func (e *Engine) HardMode() bool {
	return e.hardMode
}

// IsFinite reports whether the active category is a finite set.
func (e *Engine) IsFinite() bool {
	return e.isFinite
}

// Config returns the engine configuration with defaults applied.
func (e *Engine) Config() Config {
	return e.cfg
}

// load tears down timers and rebuilds the buffer.
func (e *Engine) load(category, challengeID string, resetState bool) {
	e.pool.CancelAll()
	e.tick = 0
	e.progress = 0
	e.awaitingDismiss = false
	e.pausedElapsed = 0

	e.category = category
	e.challengeID = challengeID
	e.isFinite = e.cfg.IsFinite(category)

	if resetState {
		e.state = SessionState{}
	} else {
		e.state.Frozen = false
		e.state.clearTransient()
	}

	e.buffer = nil
	if e.isFinite {
		if e.finite != nil {
			e.buffer = append(e.buffer, e.finite(category, challengeID)...)
		}
	} else {
		e.replenish()
	}

	e.logger.Debug("session buffer built",
		"category", category,
		"challenge", challengeID,
		"hard_mode", e.hardMode,
		"finite", e.isFinite,
		"items", len(e.buffer),
		"level", e.diff.Level(),
	)

	e.stampHead()
	e.startCountdown()
}

// replenish tops up an endless buffer to BufferSize.
func (e *Engine) replenish() {
	if e.isFinite {
		return
	}
	for len(e.buffer) < e.cfg.BufferSize {
		e.buffer = append(e.buffer, e.gen(e.diff.Level(), e.category, e.hardMode, e.rng))
	}
}

func (e *Engine) stampHead() {
	if len(e.buffer) > 0 {
		e.buffer[0].StartTime = e.clock.Now()
	}
}

func (e *Engine) latency(it Item) int {
	if it.StartTime.IsZero() {
		return 0
	}
	return max(int(e.clock.Now().Sub(it.StartTime).Milliseconds()), 0)
}

func (e *Engine) skip() {
	e.state.Streak = 0
	e.state.clearTransient()
	e.after(e.cfg.SkipPause, e.advance)
}

func (e *Engine) answerCorrect(it Item, latencyMs int) {
	s := &e.state
	recovering := s.WrongStreak >= e.cfg.StruggleAt
	fast := time.Duration(latencyMs)*time.Millisecond < e.cfg.FastAnswer

	e.diff.RecordAnswer(latencyMs, true)

	s.Streak++
	s.BestStreak = max(s.BestStreak, s.Streak)
	s.TotalCorrect++
	s.TotalAnswered++
	s.pushHistory(true, e.cfg.HistoryLimit)
	s.Score += PointsFor(s.Streak, fast, e.cfg.Scoring)
	s.Flash = FlashCorrect

	switch {
	case s.Streak >= e.cfg.StreakMoodAt:
		s.ChalkState = MoodStreak
	case recovering:
		s.ChalkState = MoodComeback
	default:
		s.ChalkState = MoodSuccess
	}

	s.Milestone = e.cfg.Milestones[s.Streak]
	s.SpeedBonus = fast
	s.WrongStreak = 0

	e.report(it, true, latencyMs)
	e.after(e.cfg.AutoAdvance, e.advance)
}

// answerWrong handles a miss. forced marks a timeout, which skips the
// tutorial and shield paths and always auto-advances.
func (e *Engine) answerWrong(it Item, latencyMs int, forced bool) {
	s := &e.state
	s.Flash = FlashWrong

	if !forced && s.TotalAnswered == 0 {
		s.ChalkState = MoodFail
		e.after(e.cfg.FailPause, e.retryHead)
		return
	}

	if !forced && s.Streak > 0 && e.shields() > 0 {
		if e.hooks.OnConsumeShield != nil {
			e.hooks.OnConsumeShield()
		}
		s.ShieldBroken = true
		s.TotalAnswered++
		s.pushHistory(false, e.cfg.HistoryLimit)
		e.report(it, false, latencyMs)
		e.finishWrong(false)
		return
	}

	e.diff.RecordAnswer(latencyMs, false)
	s.Streak = 0
	s.Score = applyPenalty(s.Score, e.cfg.Scoring)
	s.WrongStreak++
	if s.WrongStreak >= e.cfg.StruggleAt {
		s.ChalkState = MoodStruggling
	} else {
		s.ChalkState = MoodFail
	}
	s.TotalAnswered++
	s.pushHistory(false, e.cfg.HistoryLimit)
	e.report(it, false, latencyMs)
	e.finishWrong(forced)
}

func (e *Engine) finishWrong(forced bool) {
	if e.cfg.WrongAnswerTapToDismiss && !forced {
		e.awaitingDismiss = true
		return
	}
	e.after(e.cfg.FailPause, e.advance)
}

func (e *Engine) shields() int {
	if e.hooks.StreakShields == nil {
		return 0
	}
	return e.hooks.StreakShields()
}

func (e *Engine) report(it Item, correct bool, latencyMs int) {
	e.logger.Debug("answer",
		"item", it.ID,
		"key", it.ContentKey(),
		"correct", correct,
		"latency_ms", latencyMs,
		"streak", e.state.Streak,
		"score", e.state.Score,
	)
	if e.hooks.OnAnswer != nil {
		e.hooks.OnAnswer(it, correct, latencyMs)
	}
}

// retryHead ends tutorial feedback on the same item.
func (e *Engine) retryHead() {
	e.state.Frozen = false
	e.state.clearTransient()
	e.stampHead()
	e.startCountdown()
}

// advance drops the head, refills and unfreezes.
func (e *Engine) advance() {
	e.awaitingDismiss = false
	e.state.Frozen = false
	e.state.clearTransient()

	if len(e.buffer) > 0 {
		e.buffer = e.buffer[1:]
	}
	e.replenish()
	e.stampHead()
	e.startCountdown()

	if e.DailyComplete() {
		e.logger.Debug("finite set complete", "category", e.category, "answered", e.state.TotalAnswered)
	}
}

func (e *Engine) after(d time.Duration, fn func()) {
	e.pool.Schedule(fn, d)
}

func (e *Engine) startCountdown() {
	e.progress = 0
	if e.cfg.TimedMode <= 0 || e.state.Frozen || e.paused || len(e.buffer) == 0 {
		return
	}
	e.tick = e.pool.Schedule(e.onTick, e.cfg.TimerTick)
}

func (e *Engine) stopCountdown() {
	if e.tick != 0 {
		e.pool.Cancel(e.tick)
		e.tick = 0
	}
}

func (e *Engine) onTick() {
	e.tick = 0
	if e.state.Frozen || e.paused || len(e.buffer) == 0 {
		return
	}
	elapsed := e.clock.Now().Sub(e.buffer[0].StartTime)
	e.progress = min(float64(elapsed)/float64(e.cfg.TimedMode), 1)
	if e.progress >= 1 {
		e.timeout()
		return
	}
	e.tick = e.pool.Schedule(e.onTick, e.cfg.TimerTick)
}

// timeout is a forced miss on the head item.
func (e *Engine) timeout() {
	e.state.Frozen = true
	head := e.buffer[0]
	e.logger.Debug("item timed out", "item", head.ID)
	e.answerWrong(head, int(e.cfg.TimedMode.Milliseconds()), true)
}
