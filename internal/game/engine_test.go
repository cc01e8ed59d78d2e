package game

import (
	"fmt"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/njytim-cyber/spelling-bee-sub001/internal/difficulty"
	"github.com/njytim-cyber/spelling-bee-sub001/internal/timerpool"
)

type answerCall struct {
	key     string
	correct bool
	latency int
}

type harness struct {
	e       *Engine
	clock   *timerpool.ManualClock
	answers []answerCall
	shields int
	used    int
	levels  []int
	hards   []bool
	n       int
}

// newHarness builds an engine over a generator whose correct option is
// always the first one, so Left answers correctly and Down misses.
func newHarness(t *testing.T, cfg Config) *harness {
	t.Helper()
	h := &harness{clock: timerpool.NewManualClock(time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC))}

	gen := func(level int, category string, hard bool, rng *rand.Rand) Item {
		h.n++
		h.levels = append(h.levels, level)
		h.hards = append(h.hards, hard)
		word := fmt.Sprintf("w%d", h.n)
		return Item{
			ID:      fmt.Sprintf("%s-%d", category, h.n),
			Prompt:  word,
			Options: []string{word, word + "x", "x" + word},
			Answer:  word,
			Meta:    map[string]string{"word": word},
		}
	}
	finite := func(category, challengeID string) []Item {
		if category == CategoryReview {
			return nil
		}
		items := make([]Item, 10)
		for i := range items {
			word := fmt.Sprintf("%s-%s-%d", category, challengeID, i)
			items[i] = Item{ID: word, Prompt: word, Options: []string{"a", "b", "c"}, CorrectIndex: 0}
		}
		return items
	}

	h.e = New(cfg, Deps{
		Generate:       gen,
		GenerateFinite: finite,
		Hooks: Hooks{
			OnAnswer: func(it Item, correct bool, ms int) {
				h.answers = append(h.answers, answerCall{key: it.ContentKey(), correct: correct, latency: ms})
			},
			OnConsumeShield: func() {
				h.used++
				h.shields--
			},
			StreakShields: func() int { return h.shields },
		},
		Difficulty: difficulty.New(difficulty.DefaultConfig()),
		Clock:      h.clock,
		Rand:       rand.New(rand.NewPCG(1, 2)),
	})
	t.Cleanup(h.e.Close)
	return h
}

func (h *harness) advance(d time.Duration) {
	h.clock.Advance(d)
}

// answer swipes and waits out the feedback pause.
func (h *harness) answer(dir Direction) {
	h.e.Swipe(dir)
	h.clock.Advance(5 * time.Second)
}

func TestStart_BuildsBuffer(t *testing.T) {
	h := newHarness(t, DefaultConfig())
	h.e.Start("cvc", "")

	buf := h.e.Buffer()
	require.Len(t, buf, 5)
	assert.Equal(t, h.clock.Now(), buf[0].StartTime)
	assert.True(t, buf[1].StartTime.IsZero())
	assert.Equal(t, "cvc", h.e.Category())
	assert.False(t, h.e.IsFinite())
	assert.Equal(t, []int{1, 1, 1, 1, 1}, h.levels)
}

func TestScenarioA_TutorialMiss(t *testing.T) {
	h := newHarness(t, DefaultConfig())
	h.e.Start("cvc", "")
	headID := h.e.Head().ID

	h.advance(700 * time.Millisecond)
	h.e.Swipe(Down)

	s := h.e.State()
	assert.True(t, s.Frozen)
	assert.Equal(t, FlashWrong, s.Flash)
	assert.Equal(t, 0, s.TotalAnswered)
	assert.Equal(t, MoodFail, s.ChalkState)
	assert.Equal(t, 0, s.Score)
	assert.Empty(t, h.answers, "tutorial misses are not reported")
	assert.Equal(t, 0, h.e.diff.Stats().Samples, "tutorial misses do not feed difficulty")

	// Swipes while frozen are ignored.
	h.e.Swipe(Left)
	assert.Equal(t, 0, h.e.State().TotalCorrect)

	h.advance(h.e.Config().FailPause)
	s = h.e.State()
	assert.False(t, s.Frozen)
	assert.Equal(t, FlashNone, s.Flash)
	assert.Equal(t, headID, h.e.Head().ID, "tutorial miss keeps the same head")
	assert.Equal(t, h.clock.Now(), h.e.Head().StartTime, "head is restamped")
	assert.Len(t, h.e.Buffer(), 5)
}

func TestCorrectAnswer_ScoresAndAdvances(t *testing.T) {
	h := newHarness(t, DefaultConfig())
	h.e.Start("cvc", "")
	first := h.e.Head().ID

	h.advance(400 * time.Millisecond)
	h.e.Swipe(Left)

	s := h.e.State()
	assert.True(t, s.Frozen)
	assert.Equal(t, 1, s.Streak)
	assert.Equal(t, 1, s.BestStreak)
	assert.Equal(t, 1, s.TotalCorrect)
	assert.Equal(t, 1, s.TotalAnswered)
	assert.Equal(t, []bool{true}, s.AnswerHistory)
	assert.Equal(t, 10+2+5, s.Score)
	assert.Equal(t, FlashCorrect, s.Flash)
	assert.Equal(t, MoodSuccess, s.ChalkState)
	assert.True(t, s.SpeedBonus)
	require.Len(t, h.answers, 1)
	assert.Equal(t, answerCall{key: "w1", correct: true, latency: 400}, h.answers[0])

	h.advance(599 * time.Millisecond)
	assert.Equal(t, first, h.e.Head().ID, "advance waits for AutoAdvance")

	h.advance(time.Millisecond)
	s = h.e.State()
	assert.False(t, s.Frozen)
	assert.Equal(t, FlashNone, s.Flash)
	assert.False(t, s.SpeedBonus)
	assert.Equal(t, MoodSuccess, s.ChalkState, "mood persists across advance")
	assert.NotEqual(t, first, h.e.Head().ID)
	assert.Len(t, h.e.Buffer(), 5, "endless buffer is replenished")
}

func TestSlowCorrect_NoSpeedBonus(t *testing.T) {
	h := newHarness(t, DefaultConfig())
	h.e.Start("cvc", "")
	h.advance(3 * time.Second)
	h.e.Swipe(Left)

	s := h.e.State()
	assert.False(t, s.SpeedBonus)
	assert.Equal(t, 10+2, s.Score)
}

func TestScenarioB_StreakMilestone(t *testing.T) {
	h := newHarness(t, DefaultConfig())
	h.e.Start("cvc", "")
	h.e.state.Streak = 9
	h.e.state.BestStreak = 9
	h.e.state.TotalAnswered = 9
	h.e.state.TotalCorrect = 9
	h.e.state.Score = 100

	h.advance(time.Second)
	h.e.Swipe(Left)

	s := h.e.State()
	assert.Equal(t, 10, s.Streak)
	assert.Equal(t, 10, s.BestStreak)
	assert.Equal(t, MoodStreak, s.ChalkState)
	assert.True(t, s.SpeedBonus)
	assert.Equal(t, "Spelling star!", s.Milestone)
	assert.Equal(t, 100+10+StreakBonus(10, h.e.cfg.Scoring)+5, s.Score)

	h.advance(time.Second)
	assert.Empty(t, h.e.State().Milestone, "milestone is cleared on advance")
}

func TestScenarioC_ShieldSave(t *testing.T) {
	h := newHarness(t, DefaultConfig())
	h.shields = 1
	h.e.Start("cvc", "")
	h.e.state.Streak = 5
	h.e.state.BestStreak = 5
	h.e.state.TotalAnswered = 5
	h.e.state.TotalCorrect = 5
	h.e.state.Score = 80
	first := h.e.Head().ID

	h.e.Swipe(Down)

	s := h.e.State()
	assert.True(t, s.ShieldBroken)
	assert.Equal(t, 5, s.Streak)
	assert.Equal(t, 80, s.Score)
	assert.Equal(t, 6, s.TotalAnswered)
	assert.Equal(t, 0, s.WrongStreak)
	assert.Equal(t, []bool{false}, s.AnswerHistory)
	assert.Equal(t, 1, h.used)
	require.Len(t, h.answers, 1)
	assert.False(t, h.answers[0].correct)
	assert.Equal(t, 0, h.e.diff.Stats().Samples, "shield saves do not feed difficulty")

	h.advance(h.e.Config().FailPause)
	assert.NotEqual(t, first, h.e.Head().ID)
	assert.False(t, h.e.State().ShieldBroken)

	// No shields left: the next miss breaks the streak.
	h.answer(Down)
	s = h.e.State()
	assert.Equal(t, 1, h.used)
	assert.Equal(t, 0, s.Streak)
	assert.Equal(t, 75, s.Score)
}

func TestShieldNotUsedWithoutStreak(t *testing.T) {
	h := newHarness(t, DefaultConfig())
	h.shields = 3
	h.e.Start("cvc", "")
	h.answer(Left)
	h.answer(Down) // streak 1, shield used
	h.answer(Down) // streak still 1, shield used
	assert.Equal(t, 2, h.used)

	h.shields = 0
	h.answer(Down)
	h.shields = 5
	h.answer(Down) // streak 0: normal miss
	assert.Equal(t, 2, h.used)
	assert.Equal(t, 2, h.e.State().WrongStreak)
}

func TestScenarioD_DailyComplete(t *testing.T) {
	h := newHarness(t, DefaultConfig())
	h.e.Start(CategoryDaily, "")
	require.Len(t, h.e.Buffer(), 10)
	assert.True(t, h.e.IsFinite())
	assert.False(t, h.e.DailyComplete())

	for i := 0; i < 9; i++ {
		h.answer(Left)
		assert.Len(t, h.e.Buffer(), 9-i, "finite buffer never refills")
		assert.False(t, h.e.DailyComplete())
	}

	h.e.Swipe(Left)
	assert.False(t, h.e.DailyComplete(), "head still in buffer during feedback")
	h.advance(time.Second)
	assert.True(t, h.e.DailyComplete())
	assert.Nil(t, h.e.Head())
	assert.Equal(t, 10, h.e.State().TotalAnswered)
	assert.Equal(t, 0, h.n, "endless generator unused for finite sets")

	// Swipes on an empty buffer are ignored.
	h.e.Swipe(Left)
	assert.Equal(t, 10, h.e.State().TotalAnswered)
}

func TestEmptyFiniteSetIsNotComplete(t *testing.T) {
	h := newHarness(t, DefaultConfig())
	h.e.Start(CategoryReview, "")
	assert.Empty(t, h.e.Buffer())
	assert.False(t, h.e.DailyComplete())
	h.e.Swipe(Left)
	assert.False(t, h.e.State().Frozen)
}

func TestSkip_Idempotent(t *testing.T) {
	h := newHarness(t, DefaultConfig())
	h.e.Start("cvc", "")
	h.answer(Left)
	h.answer(Left)
	require.Equal(t, 2, h.e.State().Streak)

	buf := h.e.Buffer()
	h.e.Swipe(Up)
	h.e.Swipe(Up)

	s := h.e.State()
	assert.True(t, s.Frozen)
	assert.Equal(t, 0, s.Streak)
	assert.Equal(t, 2, s.BestStreak)
	assert.Equal(t, 2, s.TotalAnswered, "skips are not answers")

	h.advance(h.e.Config().SkipPause)
	assert.Equal(t, buf[1].ID, h.e.Head().ID, "skip advanced exactly once")
	assert.Len(t, h.answers, 2, "skips are not reported")
}

func TestScore_NeverNegative(t *testing.T) {
	h := newHarness(t, DefaultConfig())
	h.e.Start("cvc", "")
	h.answer(Left)
	want := 17
	require.Equal(t, want, h.e.State().Score)

	for i := 0; i < 6; i++ {
		h.answer(Down)
		want = max(want-5, 0)
		s := h.e.State()
		if s.Score != want {
			t.Errorf("after miss %d: Score = %d, want %d", i+1, s.Score, want)
		}
		if s.Score < 0 {
			t.Fatalf("Score = %d, negative", s.Score)
		}
	}
}

func TestMood_StrugglingThenComeback(t *testing.T) {
	h := newHarness(t, DefaultConfig())
	h.e.Start("cvc", "")
	h.answer(Left)

	h.answer(Down)
	assert.Equal(t, MoodFail, h.e.State().ChalkState)
	h.answer(Down)
	assert.Equal(t, MoodFail, h.e.State().ChalkState)
	h.answer(Down)
	assert.Equal(t, MoodStruggling, h.e.State().ChalkState)
	assert.Equal(t, 3, h.e.State().WrongStreak)

	h.answer(Left)
	assert.Equal(t, MoodComeback, h.e.State().ChalkState)
	assert.Equal(t, 0, h.e.State().WrongStreak)

	h.answer(Left)
	assert.Equal(t, MoodSuccess, h.e.State().ChalkState)
}

func TestStreakProperties(t *testing.T) {
	h := newHarness(t, DefaultConfig())
	h.e.Start("cvc", "")
	h.answer(Left)

	rng := rand.New(rand.NewPCG(7, 7))
	sinceBreak := 1
	best := 1
	for i := 0; i < 300; i++ {
		var dir Direction
		switch rng.IntN(4) {
		case 0:
			dir = Down
			sinceBreak = 0
		case 1:
			dir = Up
			sinceBreak = 0
		default:
			dir = Left
			sinceBreak++
		}
		h.answer(dir)

		s := h.e.State()
		if s.Streak != sinceBreak {
			t.Fatalf("step %d: Streak = %d, want %d", i, s.Streak, sinceBreak)
		}
		if s.BestStreak < best {
			t.Fatalf("step %d: BestStreak decreased %d -> %d", i, best, s.BestStreak)
		}
		best = s.BestStreak
		if s.Score < 0 {
			t.Fatalf("step %d: Score = %d", i, s.Score)
		}
		if len(s.AnswerHistory) > 50 {
			t.Fatalf("step %d: history length %d", i, len(s.AnswerHistory))
		}
	}
	assert.LessOrEqual(t, h.e.pool.Len(), 2)
}

func TestHistoryCapped(t *testing.T) {
	cfg := DefaultConfig()
	cfg.HistoryLimit = 3
	h := newHarness(t, cfg)
	h.e.Start("cvc", "")
	h.answer(Left)
	h.answer(Down)
	h.answer(Left)
	h.answer(Left)
	assert.Equal(t, []bool{false, true, true}, h.e.State().AnswerHistory)
}

func TestTimedMode_ForcedMiss(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TimedMode = time.Second
	h := newHarness(t, cfg)
	h.e.Start("cvc", "")
	first := h.e.Head().ID

	h.advance(500 * time.Millisecond)
	assert.InDelta(t, 0.5, h.e.TimerProgress(), 0.001)
	assert.False(t, h.e.State().Frozen)

	h.advance(500 * time.Millisecond)
	s := h.e.State()
	assert.True(t, s.Frozen)
	assert.Equal(t, FlashWrong, s.Flash)
	assert.Equal(t, 1, s.TotalAnswered, "timeouts get no tutorial exemption")
	assert.Equal(t, MoodFail, s.ChalkState)
	assert.Equal(t, 1, s.WrongStreak)
	assert.InDelta(t, 1.0, h.e.TimerProgress(), 0.001)
	require.Len(t, h.answers, 1)
	assert.Equal(t, answerCall{key: "w1", correct: false, latency: 1000}, h.answers[0])

	h.advance(cfg.FailPause)
	assert.NotEqual(t, first, h.e.Head().ID)
	assert.False(t, h.e.State().Frozen)
	assert.Zero(t, h.e.TimerProgress())
}

func TestTimedMode_AnswerStopsCountdown(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TimedMode = time.Second
	h := newHarness(t, cfg)
	h.e.Start("cvc", "")

	h.advance(300 * time.Millisecond)
	h.e.Swipe(Left)
	h.advance(cfg.AutoAdvance)
	require.Equal(t, 1, h.e.State().TotalAnswered)

	// The next item gets a fresh full second.
	h.advance(900 * time.Millisecond)
	assert.Equal(t, 1, h.e.State().TotalAnswered)
	h.advance(100 * time.Millisecond)
	assert.Equal(t, 2, h.e.State().TotalAnswered)
}

func TestTimedMode_OffReportsZero(t *testing.T) {
	h := newHarness(t, DefaultConfig())
	h.e.Start("cvc", "")
	h.advance(time.Minute)
	assert.Zero(t, h.e.TimerProgress())
	assert.False(t, h.e.State().Frozen)
	assert.Equal(t, 0, h.e.pool.Len())
}

func TestTimedMode_IgnoresShields(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TimedMode = time.Second
	h := newHarness(t, cfg)
	h.shields = 2
	h.e.Start("cvc", "")
	h.e.Swipe(Left)
	h.advance(cfg.AutoAdvance)
	require.Equal(t, 1, h.e.State().Streak)

	h.advance(time.Second)
	assert.Equal(t, 0, h.used)
	assert.Equal(t, 0, h.e.State().Streak)
}

func TestTapToDismiss(t *testing.T) {
	cfg := DefaultConfig()
	cfg.WrongAnswerTapToDismiss = true
	h := newHarness(t, cfg)
	h.e.Start("cvc", "")
	h.answer(Left)

	// Dismiss is a no-op without pending wrong-answer feedback.
	head := h.e.Head().ID
	h.e.DismissWrongAnswer()
	assert.Equal(t, head, h.e.Head().ID)

	h.e.Swipe(Down)
	h.advance(10 * time.Second)
	assert.True(t, h.e.State().Frozen)
	assert.True(t, h.e.AwaitingDismiss())
	assert.Equal(t, head, h.e.Head().ID)

	h.e.DismissWrongAnswer()
	assert.False(t, h.e.State().Frozen)
	assert.False(t, h.e.AwaitingDismiss())
	assert.NotEqual(t, head, h.e.Head().ID)

	next := h.e.Head().ID
	h.e.DismissWrongAnswer()
	assert.Equal(t, next, h.e.Head().ID, "second dismiss is a no-op")
}

func TestTapToDismiss_TutorialStillAutoUnfreezes(t *testing.T) {
	cfg := DefaultConfig()
	cfg.WrongAnswerTapToDismiss = true
	h := newHarness(t, cfg)
	h.e.Start("cvc", "")

	h.e.Swipe(Down)
	assert.False(t, h.e.AwaitingDismiss())
	h.advance(cfg.FailPause)
	assert.False(t, h.e.State().Frozen)
}

func TestSetHardMode_KeepsStateAndRebuilds(t *testing.T) {
	h := newHarness(t, DefaultConfig())
	h.e.Start("cvc", "")
	h.answer(Left)
	h.answer(Left)
	before := h.e.State()

	// A pending auto-advance must not fire against the new buffer.
	h.e.Swipe(Left)
	h.e.SetHardMode(true)

	s := h.e.State()
	assert.False(t, s.Frozen)
	assert.Equal(t, FlashNone, s.Flash)
	assert.Equal(t, before.Streak+1, s.Streak)
	assert.Equal(t, before.TotalAnswered+1, s.TotalAnswered)
	assert.True(t, h.e.HardMode())

	head := h.e.Head().ID
	h.advance(10 * time.Second)
	assert.Equal(t, head, h.e.Head().ID, "stale advance was cancelled")
	for _, hard := range h.hards[len(h.hards)-5:] {
		assert.True(t, hard)
	}

	// Toggling to the current value does nothing.
	n := h.n
	h.e.SetHardMode(true)
	assert.Equal(t, n, h.n)
}

func TestSetCategory_ResetsState(t *testing.T) {
	h := newHarness(t, DefaultConfig())
	h.e.Start("cvc", "")
	h.answer(Left)
	h.e.Swipe(Left)

	h.e.SetCategory("blends", "")
	s := h.e.State()
	assert.Equal(t, SessionState{}, s)
	assert.Equal(t, "blends", h.e.Category())
	assert.Equal(t, 0, h.e.pool.Len())

	head := h.e.Head().ID
	h.advance(10 * time.Second)
	assert.Equal(t, head, h.e.Head().ID)

	// Back to tutorial rules after a category change.
	h.e.Swipe(Down)
	assert.Equal(t, 0, h.e.State().TotalAnswered)
}

func TestChallengeSeedsFiniteSet(t *testing.T) {
	h := newHarness(t, DefaultConfig())
	h.e.Start(CategoryChallenge, "abc")
	assert.Equal(t, "challenge-abc-0", h.e.Head().ID)
	assert.Equal(t, "abc", h.e.ChallengeID())
}

func TestLevelFeedsGenerator(t *testing.T) {
	h := newHarness(t, DefaultConfig())
	h.e.Start("cvc", "")
	think := 500 * time.Millisecond

	// Each head is stamped when auto-advance fires, so the think time
	// after it is the latency the controller sees.
	quick := func() {
		h.advance(think)
		h.e.Swipe(Left)
		h.advance(h.e.Config().AutoAdvance)
	}
	quick()
	quick()
	require.Equal(t, 1, h.e.Level())
	for _, a := range h.answers {
		require.Less(t, a.latency, difficulty.DefaultFastMs)
	}

	// Three fast answers raise the level; the refill after the third
	// answer is generated at the new level.
	quick()
	assert.Equal(t, 2, h.e.Level())
	assert.Equal(t, 2, h.levels[len(h.levels)-1])
	assert.Equal(t, 1, h.levels[len(h.levels)-2])
}

func TestRebuildWhilePaused_RestampsHead(t *testing.T) {
	tests := []struct {
		name    string
		rebuild func(e *Engine)
	}{
		{"hard mode", func(e *Engine) { e.SetHardMode(true) }},
		{"category", func(e *Engine) { e.SetCategory("sight", "") }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, DefaultConfig())
			h.e.Start("cvc", "")
			h.advance(4 * time.Second)
			h.e.Pause()
			tt.rebuild(h.e)
			h.e.Resume()

			assert.Equal(t, h.clock.Now(), h.e.Head().StartTime)
			h.e.Swipe(Left)
			require.Len(t, h.answers, 1)
			assert.Equal(t, 0, h.answers[0].latency)
		})
	}
}

func TestClose_CancelsTimers(t *testing.T) {
	h := newHarness(t, DefaultConfig())
	h.e.Start("cvc", "")
	h.e.Swipe(Left)
	head := h.e.Head().ID

	h.e.Close()
	h.advance(10 * time.Second)
	assert.Equal(t, head, h.e.Head().ID)
	assert.Equal(t, 0, h.clock.Pending())

	h.e.Start("cvc", "")
	assert.Equal(t, head, h.e.Head().ID, "closed engine ignores Start")
}

func TestPauseResume_TimedMode(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TimedMode = time.Second
	h := newHarness(t, cfg)
	h.e.Start("cvc", "")

	h.advance(400 * time.Millisecond)
	h.e.Pause()
	assert.True(t, h.e.Paused())

	h.advance(time.Minute)
	assert.False(t, h.e.State().Frozen, "no timeout while paused")
	h.e.Swipe(Left)
	assert.Equal(t, 0, h.e.State().TotalAnswered, "swipes ignored while paused")

	h.e.Resume()
	h.advance(500 * time.Millisecond)
	assert.False(t, h.e.State().Frozen)
	h.advance(100 * time.Millisecond)
	assert.True(t, h.e.State().Frozen, "countdown resumes where it stopped")
}

func TestOutOfRangeOptionIsWrong(t *testing.T) {
	it := Item{Options: []string{"a", "b"}, Answer: "a"}
	assert.False(t, it.IsCorrect(2))
	assert.False(t, it.IsCorrect(-1))
	assert.True(t, it.IsCorrect(0))

	byIndex := Item{Options: []string{"a", "b", "c"}, CorrectIndex: 2}
	assert.True(t, byIndex.IsCorrect(2))
	assert.Equal(t, "c", byIndex.ContentKey())
}
