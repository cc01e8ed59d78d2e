package session

import (
	"context"
	"fmt"
	"time"

	"github.com/njytim-cyber/spelling-bee-sub001/internal/game"
	"github.com/njytim-cyber/spelling-bee-sub001/internal/leitner"
	"github.com/njytim-cyber/spelling-bee-sub001/internal/store"
)

// RecentLimit is how many past sessions Stats reports.
const RecentLimit = 5

// Stats is the learner overview shown by the stats command and the home
// screen.
type Stats struct {
	Profile store.ProfileData `json:"profile" toml:"profile"`

	Words    int                     `json:"words" toml:"words"`
	Mastered int                     `json:"mastered" toml:"mastered"`
	Due      int                     `json:"due" toml:"due"`
	Boxes    [leitner.MaxBox + 1]int `json:"boxes" toml:"boxes"`
	Hardest  []string                `json:"hardest" toml:"hardest"`

	DailyDone bool `json:"daily_done" toml:"daily_done"`

	Answers store.AnswerTotals     `json:"answers" toml:"answers"`
	Recent  []store.SessionSummary `json:"recent" toml:"recent"`
	LLM     store.LLMUsage         `json:"llm" toml:"llm"`
}

// Stats aggregates the loaded learner state and the event history.
func (s *Service) Stats(ctx context.Context) (Stats, error) {
	if !s.loaded {
		if err := s.Load(ctx); err != nil {
			return Stats{}, err
		}
	}
	now := s.deps.Clock.Now()

	st := Stats{
		Profile:   s.profile,
		Words:     s.sched.Len(),
		Mastered:  s.sched.MasteredCount(),
		Due:       len(s.sched.ReviewQueue(now)),
		Boxes:     s.sched.BoxCounts(),
		Hardest:   s.sched.HardestWords(s.cfg.WordBank.HardestLimit),
		DailyDone: s.DailyDone(),
	}

	if s.deps.Events == nil {
		return st, nil
	}
	var err error
	if st.Answers, err = s.deps.Events.AnswerTotals(ctx); err != nil {
		return st, fmt.Errorf("answer totals: %w", err)
	}
	if st.Recent, err = s.deps.Events.RecentSessions(ctx, RecentLimit); err != nil {
		return st, fmt.Errorf("recent sessions: %w", err)
	}
	if st.LLM, err = s.deps.Events.LLMUsage(ctx); err != nil {
		return st, fmt.Errorf("llm usage: %w", err)
	}
	return st, nil
}

// DailyDone reports whether today's daily set has been completed.
func (s *Service) DailyDone() bool {
	return s.profile.DailyDoneDate == s.deps.Clock.Now().Format(time.DateOnly)
}

// ReviewQueue returns the due words, most overdue first, capped at limit
// when limit is positive.
func (s *Service) ReviewQueue(limit int) []string {
	q := s.sched.ReviewQueue(s.deps.Clock.Now())
	if limit > 0 && len(q) > limit {
		q = q[:limit]
	}
	return q
}

// Categories lists the playable categories: the bank's word categories
// followed by the finite sets.
func (s *Service) Categories() []string {
	cats := s.deps.Bank.Categories()
	for _, c := range s.cfg.Game.FiniteCategories {
		if c == game.CategoryChallenge {
			continue
		}
		cats = append(cats, c)
	}
	return cats
}

// CategoryName returns the display name of a category.
func (s *Service) CategoryName(category string) string {
	switch category {
	case "":
		return "Free play"
	case game.CategoryDaily:
		return "Daily set"
	case game.CategoryChallenge:
		return "Challenge"
	case game.CategoryReview:
		return "Review"
	case game.CategoryHardest:
		return "Hardest words"
	}
	return s.deps.Bank.Name(category)
}
