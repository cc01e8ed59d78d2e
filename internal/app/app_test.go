package app

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/njytim-cyber/spelling-bee-sub001/internal/difficulty"
	"github.com/njytim-cyber/spelling-bee-sub001/internal/game"
	"github.com/njytim-cyber/spelling-bee-sub001/internal/router"
	"github.com/njytim-cyber/spelling-bee-sub001/internal/screens/play"
	"github.com/njytim-cyber/spelling-bee-sub001/internal/screens/summary"
	"github.com/njytim-cyber/spelling-bee-sub001/internal/session"
	"github.com/njytim-cyber/spelling-bee-sub001/internal/store"
	"github.com/njytim-cyber/spelling-bee-sub001/internal/timerpool"
	"github.com/njytim-cyber/spelling-bee-sub001/internal/wordbank"
)

func newService(t *testing.T) (*session.Service, *store.Store) {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	st, err := store.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	svc := session.New(session.Config{
		Game:         game.DefaultConfig(),
		Difficulty:   difficulty.DefaultConfig(),
		Timers:       timerpool.DefaultConfig(),
		WordBank:     wordbank.DefaultConfig(),
		Shields:      1,
		MaxShields:   3,
		SnapshotKeep: 5,
	}, session.Deps{
		Words:     st.WordRepo(),
		Events:    st.EventRepo(),
		Snapshots: st.SnapshotRepo(),
		Bank:      wordbank.BuiltinBank(),
		Clock:     timerpool.NewManualClock(time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)),
	})
	require.NoError(t, svc.Load(context.Background()))
	return svc, st
}

// drive feeds router messages produced by cmd back into the model.
func drive(t *testing.T, m AppModel, cmd tea.Cmd) AppModel {
	t.Helper()
	queue := []tea.Cmd{cmd}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		switch msg := c().(type) {
		case tea.BatchMsg:
			queue = append(queue, msg...)
		case router.PushScreenMsg, router.PopScreenMsg, router.ReplaceScreenMsg:
			next, more := m.Update(msg)
			m = next.(AppModel)
			queue = append(queue, more)
		}
	}
	return m
}

func send(t *testing.T, m AppModel, msg tea.Msg) AppModel {
	t.Helper()
	next, cmd := m.Update(msg)
	return drive(t, next.(AppModel), cmd)
}

func sized(m AppModel) AppModel {
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return next.(AppModel)
}

func TestApp_RendersHome(t *testing.T) {
	svc, st := newService(t)
	m := sized(New(Options{Service: svc, Events: st.EventRepo()}))

	out := m.render()
	assert.Contains(t, out, "Spellbee")
	assert.Contains(t, out, "Home")
	assert.Contains(t, out, "Daily set")
	assert.Contains(t, out, "0 best")
}

func TestApp_TooSmall(t *testing.T) {
	svc, st := newService(t)
	m := New(Options{Service: svc, Events: st.EventRepo()})
	assert.Empty(t, m.render())

	next, _ := m.Update(tea.WindowSizeMsg{Width: 40, Height: 10})
	assert.Contains(t, next.(AppModel).render(), "Terminal too small")
}

func TestApp_StartOptionOpensPlay(t *testing.T) {
	svc, st := newService(t)
	m := sized(New(Options{Service: svc, Events: st.EventRepo(), Start: &session.Options{Category: game.CategoryDaily}}))
	m = drive(t, m, m.Init())

	require.Equal(t, 2, m.router.Depth())
	_, ok := m.router.Active().(*play.PlayScreen)
	require.True(t, ok)
	assert.True(t, svc.Active())
	assert.Contains(t, m.render(), "Daily set")
}

func TestApp_EscEndsSessionIntoSummary(t *testing.T) {
	svc, st := newService(t)
	m := sized(New(Options{Service: svc, Events: st.EventRepo(), Start: &session.Options{}}))
	m = drive(t, m, m.Init())
	require.True(t, svc.Active())

	m = send(t, m, tea.KeyPressMsg{Code: tea.KeyEscape})
	_, ok := m.router.Active().(*summary.SummaryScreen)
	require.True(t, ok, "esc on a running session should show the summary")
	assert.False(t, svc.Active())

	m = send(t, m, tea.KeyPressMsg{Code: tea.KeyEscape})
	assert.Equal(t, 1, m.router.Depth())
}

func TestApp_TimerCallbacksRunOnLoop(t *testing.T) {
	svc, st := newService(t)
	m := sized(New(Options{Service: svc, Events: st.EventRepo()}))

	ran := false
	next, _ := m.Update(timerFiredMsg{fn: func() { ran = true }})
	assert.True(t, ran)
	assert.Equal(t, 1, next.(AppModel).router.Depth())
}

func TestApp_WaitForTimerDrainsClock(t *testing.T) {
	clock := timerpool.NewLoopClock(1)
	defer clock.Close()
	clock.AfterFunc(time.Millisecond, func() {})

	msg := waitForTimer(clock)()
	fired, ok := msg.(timerFiredMsg)
	require.True(t, ok)
	assert.NotNil(t, fired.fn)

	assert.Nil(t, waitForTimer(nil))
}

func TestApp_CtrlCQuits(t *testing.T) {
	svc, st := newService(t)
	m := New(Options{Service: svc, Events: st.EventRepo()})
	_, cmd := m.Update(tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl})
	require.NotNil(t, cmd)
	_, ok := cmd().(tea.QuitMsg)
	assert.True(t, ok)
}
