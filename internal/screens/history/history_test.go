package history

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/njytim-cyber/spelling-bee-sub001/internal/router"
	"github.com/njytim-cyber/spelling-bee-sub001/internal/store"
)

type fakeEvents struct {
	store.EventRepo
	sessions []store.SessionSummary
	err      error
	limit    int
}

func (f *fakeEvents) RecentSessions(_ context.Context, limit int) ([]store.SessionSummary, error) {
	f.limit = limit
	return f.sessions, f.err
}

func loaded(t *testing.T, s *HistoryScreen) {
	t.Helper()
	cmd := s.Init()
	require.NotNil(t, cmd)
	s.Update(cmd())
}

func TestHistory_LoadsSessions(t *testing.T) {
	ev := &fakeEvents{sessions: []store.SessionSummary{
		{SessionID: "a", Timestamp: time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC), Category: "daily",
			Score: 120, BestStreak: 6, QuestionsServed: 10, CorrectAnswers: 8, DurationSecs: 75, HardMode: true},
		{SessionID: "b", Timestamp: time.Date(2026, 3, 13, 18, 0, 0, 0, time.UTC), Category: "animals"},
	}}
	s := New(ev, func(c string) string { return "cat:" + c })
	loaded(t, s)

	assert.Equal(t, Limit, ev.limit)
	view := s.View(100, 30)
	assert.Contains(t, view, "cat:daily")
	assert.Contains(t, view, "120 pts")
	assert.Contains(t, view, "80%")
	assert.NotContains(t, view, "best streak 6")

	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	view = s.View(100, 30)
	assert.Contains(t, view, "best streak 6")
	assert.Contains(t, view, "1:15")
	assert.Contains(t, view, "hard mode")
}

func TestHistory_Navigation(t *testing.T) {
	ev := &fakeEvents{sessions: []store.SessionSummary{{SessionID: "a"}, {SessionID: "b"}}}
	s := New(ev, nil)
	loaded(t, s)

	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	assert.Equal(t, 1, s.selected)
	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	assert.Equal(t, 1, s.selected)
	s.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	assert.Equal(t, 0, s.selected)

	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	require.NotNil(t, cmd)
	_, ok := cmd().(router.PopScreenMsg)
	assert.True(t, ok)
}

func TestHistory_EmptyAndError(t *testing.T) {
	empty := New(&fakeEvents{}, nil)
	assert.Contains(t, empty.View(80, 20), "Loading")
	loaded(t, empty)
	assert.Contains(t, empty.View(80, 20), "No sessions yet")

	failing := New(&fakeEvents{err: errors.New("disk on fire")}, nil)
	loaded(t, failing)
	assert.True(t, strings.Contains(failing.View(80, 20), "disk on fire"))
}
