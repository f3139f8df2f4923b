package tui

import (
	"context"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/microtris/internal/core"
	"github.com/vovakirdan/microtris/internal/engine"
	"github.com/vovakirdan/microtris/internal/games/microtris"
	"github.com/vovakirdan/microtris/internal/storage"
)

type mockTicker struct {
	ch chan time.Time
}

func newMockTicker() *mockTicker          { return &mockTicker{ch: make(chan time.Time)} }
func (m *mockTicker) C() <-chan time.Time { return m.ch }
func (m *mockTicker) Reset(time.Duration) {}
func (m *mockTicker) Stop()               {}
func (m *mockTicker) Tick()               { m.ch <- time.Now() }

type recordSink struct {
	mu    sync.Mutex
	beeps []int
	overs int
}

func (r *recordSink) Beep(_ context.Context, n int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.beeps = append(r.beeps, n)
	return nil
}

func (r *recordSink) GameOver(context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.overs++
	return nil
}

func (r *recordSink) gameOvers() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.overs
}

func openStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestKeyMapActions(t *testing.T) {
	km := DefaultKeyMap()
	tests := []struct {
		name string
		msg  tea.KeyMsg
		want core.Action
	}{
		{"arrow left", tea.KeyMsg{Type: tea.KeyLeft}, core.ActionLeft},
		{"a", keyRunes("a"), core.ActionLeft},
		{"h", keyRunes("h"), core.ActionLeft},
		{"arrow right", tea.KeyMsg{Type: tea.KeyRight}, core.ActionRight},
		{"d", keyRunes("d"), core.ActionRight},
		{"arrow up", tea.KeyMsg{Type: tea.KeyUp}, core.ActionRotate},
		{"space", tea.KeyMsg{Type: tea.KeySpace}, core.ActionRotate},
		{"p", keyRunes("p"), core.ActionPause},
		{"r", keyRunes("r"), core.ActionRestart},
		{"q", keyRunes("q"), core.ActionQuit},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit},
		{"help is UI only", keyRunes("?"), core.ActionNone},
		{"unbound", keyRunes("z"), core.ActionNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, km.Action(tt.msg))
		})
	}
}

func TestMenuNavigation(t *testing.T) {
	m := NewMenuModel(nil, 40)
	require.Len(t, m.items, 2)
	assert.Equal(t, microtris.IDStandard, m.items[0].ID)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 0, m.cursor, "cursor stays at the top")

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 1, m.cursor, "cursor stops at the last item")

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, m.Selected())
	assert.Equal(t, microtris.IDBoard, m.Selected().ID)

	assert.Contains(t, m.View(), "Microtris (Board Mix)")
}

func TestMenuHistoryAndQuit(t *testing.T) {
	m := NewMenuModel(nil, 40)
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.True(t, m.WantsHistory())

	m = NewMenuModel(nil, 40)
	m, _ = m.Update(keyRunes("q"))
	assert.True(t, m.IsQuitting())
	assert.Nil(t, m.Selected())
}

func TestRenderScreen(t *testing.T) {
	s := core.NewScreen(6, 2)
	s.DrawTextColored(0, 0, "ab", core.ColorRed)
	s.DrawText(2, 0, "cd")
	s.DrawTextColored(0, 1, "xyz", core.ColorGray)

	out := RenderScreen(s)
	assert.Contains(t, out, "ab")
	assert.Contains(t, out, "cd")
	assert.Contains(t, out, "xyz")
	assert.Equal(t, 1, strings.Count(out, "\n"))
}

func TestRandomSeed(t *testing.T) {
	hi1, lo1 := RandomSeed()
	hi2, lo2 := RandomSeed()
	assert.False(t, hi1 == 0 && lo1 == 0)
	assert.False(t, hi1 == hi2 && lo1 == lo2, "two draws should differ")
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "0:00", formatDuration(0))
	assert.Equal(t, "1:35", formatDuration(95*time.Second))
	assert.Equal(t, "0:02", formatDuration(1600*time.Millisecond))
}

func TestStartSessionUnknownGame(t *testing.T) {
	_, err := StartSession(context.Background(), SessionConfig{GameID: "tetris"})
	assert.Error(t, err)
}

// playToGameOver ticks the session with no input until the game ends.
func playToGameOver(t *testing.T, s *Session, mt *mockTicker) engine.Frame {
	t.Helper()
	<-s.Runner().Frames()
	for range 2000 {
		mt.Tick()
		f := <-s.Runner().Frames()
		if f.Result.Ended {
			return f
		}
	}
	t.Fatal("game never ended")
	return engine.Frame{}
}

func TestSessionRecordsFinishedGame(t *testing.T) {
	store := openStore(t)
	sink := &recordSink{}
	mt := newMockTicker()

	s, err := StartSession(context.Background(), SessionConfig{
		GameID: microtris.IDStandard,
		Runtime: core.RuntimeConfig{
			ScreenW:      40,
			ScreenH:      16,
			TickInterval: 100 * time.Millisecond,
			SeedHi:       7,
			SeedLo:       9,
		},
		Sink:   sink,
		Store:  store,
		Ticker: mt,
	})
	require.NoError(t, err)
	defer s.Stop()

	last := playToGameOver(t, s, mt)

	sessions, err := store.RecentSessions(microtris.IDStandard, 10)
	require.NoError(t, err)
	require.Len(t, sessions, 1)

	got := sessions[0]
	assert.Equal(t, last.Result.State.Score, got.Rows)
	assert.Equal(t, "7:9", got.Seed)
	assert.Equal(t, last.Tick, got.Ticks)
	assert.Equal(t, time.Duration(got.Ticks)*100*time.Millisecond, got.Duration)
	assert.Positive(t, got.Pieces)

	assert.Eventually(t, func() bool { return sink.gameOvers() == 1 },
		time.Second, 5*time.Millisecond, "game-over tune should play once")
}

func TestSessionWithoutStore(t *testing.T) {
	mt := newMockTicker()
	s, err := StartSession(context.Background(), SessionConfig{
		GameID:  microtris.IDBoard,
		Runtime: core.RuntimeConfig{ScreenW: 40, ScreenH: 16, SeedLo: 1},
		Ticker:  mt,
	})
	require.NoError(t, err)

	playToGameOver(t, s, mt)
	s.Stop()

	select {
	case <-s.Done():
	default:
		t.Fatal("Done should be closed after Stop")
	}
}

func newTestModel(t *testing.T) Model {
	t.Helper()
	s, err := StartSession(context.Background(), SessionConfig{
		GameID:  microtris.IDStandard,
		Runtime: core.RuntimeConfig{ScreenW: 40, ScreenH: 16, SeedLo: 3},
		Ticker:  newMockTicker(),
	})
	require.NoError(t, err)
	t.Cleanup(s.Stop)
	return NewModel(s, nil)
}

func TestModelShowsFrames(t *testing.T) {
	m := newTestModel(t)
	assert.Equal(t, "Starting...", m.View())

	msg := m.Init()()
	require.IsType(t, FrameMsg{}, msg)

	next, cmd := m.Update(msg)
	m = next.(Model)
	assert.NotNil(t, cmd, "model keeps waiting for frames")
	assert.Contains(t, m.View(), "Rows: 0")

	// frames from another session are ignored
	stale := FrameMsg{session: &Session{}, Frame: engine.Frame{Tick: 99}}
	next, cmd = m.Update(stale)
	assert.Nil(t, cmd)
	assert.Equal(t, uint64(0), next.(Model).frame.Tick)
}

func TestModelQuitAndBack(t *testing.T) {
	m := newTestModel(t)

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, next.(Model).BackToMenu(), "back is ignored while playing")

	m.frame.Result.State.Paused = true
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.True(t, next.(Model).BackToMenu())

	next, cmd := m.Update(keyRunes("q"))
	assert.True(t, next.(Model).IsQuitting())
	assert.NotNil(t, cmd)
	assert.Empty(t, next.(Model).View())
}

func TestModelHelpToggle(t *testing.T) {
	m := newTestModel(t)
	next, _ := m.Update(keyRunes("?"))
	assert.True(t, next.(Model).help.ShowAll)
}

func TestHistoryModel(t *testing.T) {
	store := openStore(t)
	_, err := store.SaveSession(storage.Session{
		GameID:   microtris.IDStandard,
		Rows:     4,
		Pieces:   11,
		Ticks:    60,
		Seed:     "1:2",
		Duration: 24 * time.Second,
	})
	require.NoError(t, err)

	m := NewHistoryModel(store, nil, 80, 24)
	view := m.View()
	assert.Contains(t, view, "HISTORY - Microtris")
	assert.Contains(t, view, "games 1")
	assert.Contains(t, view, "best 4")
	require.Len(t, m.sessions, 1)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Contains(t, m.View(), "Board Mix")
	assert.Empty(t, m.sessions)
	assert.Contains(t, m.View(), "No games recorded yet.")

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Len(t, m.sessions, 1)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.True(t, m.IsGoingBack())
}

func TestHistoryWithoutStore(t *testing.T) {
	m := NewHistoryModel(nil, nil, 80, 24)
	assert.Contains(t, m.View(), "History is disabled.")

	m, _ = m.Update(keyRunes("q"))
	assert.True(t, m.IsQuitting())
}

func TestAppMenuToGameAndBack(t *testing.T) {
	app := NewApp(context.Background(), AppConfig{
		Runtime: core.RuntimeConfig{ScreenW: 40, ScreenH: 16, TickInterval: time.Hour, SeedLo: 5},
	})
	assert.Contains(t, app.View(), "M I C R O T R I S")

	next, cmd := app.Update(tea.KeyMsg{Type: tea.KeyEnter})
	app = next.(App)
	require.Equal(t, screenGame, app.screen)
	require.NotNil(t, app.session)
	assert.NotNil(t, cmd)

	// the first frame arrives without any tick
	next, _ = app.Update(cmd())
	app = next.(App)
	assert.Contains(t, app.View(), "Rows: 0")

	s := app.session
	next, cmd = app.Update(keyRunes("q"))
	app = next.(App)
	assert.NotNil(t, cmd)
	assert.Nil(t, app.session)
	select {
	case <-s.Done():
	default:
		t.Fatal("quitting should stop the session")
	}
}

func TestAppStartUnknownGame(t *testing.T) {
	_, err := NewApp(context.Background(), AppConfig{GameID: "nope"}).Start()
	assert.Error(t, err)
}

func TestAppHistoryRoundTrip(t *testing.T) {
	app := NewApp(context.Background(), AppConfig{})
	next, _ := app.Update(tea.KeyMsg{Type: tea.KeyTab})
	app = next.(App)
	require.Equal(t, screenHistory, app.screen)
	assert.Contains(t, app.View(), "History is disabled.")

	next, _ = app.Update(tea.KeyMsg{Type: tea.KeyEsc})
	app = next.(App)
	assert.Equal(t, screenMenu, app.screen)
}
