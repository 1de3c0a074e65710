package splash

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	xansi "github.com/charmbracelet/x/ansi"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/karthickk/splash-screen/internal/activity"
	"github.com/karthickk/splash-screen/internal/document"
	"github.com/karthickk/splash-screen/internal/overlay"
	"github.com/karthickk/splash-screen/pkg/logger"
)

// recorder schedules nothing; it keeps the messages so tests can deliver
// them by hand.
type recorder struct {
	msgs []tea.Msg
}

func (r *recorder) After(_ time.Duration, msg tea.Msg) tea.Cmd {
	r.msgs = append(r.msgs, msg)
	return func() tea.Msg { return msg }
}

func (r *recorder) lastFrame() (overlay.FrameMsg, bool) {
	for i := len(r.msgs) - 1; i >= 0; i-- {
		if f, ok := r.msgs[i].(overlay.FrameMsg); ok {
			return f, true
		}
	}
	return overlay.FrameMsg{}, false
}

func (r *recorder) lastAutoClose() (overlay.AutoCloseMsg, bool) {
	for i := len(r.msgs) - 1; i >= 0; i-- {
		if a, ok := r.msgs[i].(overlay.AutoCloseMsg); ok {
			return a, true
		}
	}
	return overlay.AutoCloseMsg{}, false
}

type harness struct {
	c     *Controller
	clock clockwork.FakeClock
	sched *recorder
	logs  *observer.ObservedLogs
}

func newHarness(t *testing.T, src document.Source, startOpen bool) *harness {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	h := &harness{
		clock: clockwork.NewFakeClockAt(time.Date(2024, 3, 2, 15, 4, 0, 0, time.Local)),
		sched: &recorder{},
		logs:  logs,
	}
	h.c = New(Options{
		Source:    src,
		Clock:     h.clock,
		Scheduler: h.sched,
		Logger:    logger.FromZap(zap.New(core)),
		StartOpen: startOpen,
	})
	t.Cleanup(h.c.Release)
	return h
}

// start runs the load and start sequence the host performs.
func (h *harness) start(t *testing.T) {
	t.Helper()
	h.c.Update(tea.WindowSizeMsg{Width: 40, Height: 12})

	msg := h.c.Init()()
	loaded, ok := msg.(DocumentLoadedMsg)
	require.True(t, ok)
	_, cmd := h.c.Update(loaded)
	require.NotNil(t, cmd)
	_, ok = cmd().(LoadedMsg)
	require.True(t, ok)

	require.NotNil(t, h.c.Start())
	require.True(t, h.c.Ready())
}

// settle delivers frames until the overlay leaves Moving.
func (h *harness) settle(t *testing.T) {
	t.Helper()
	for i := 0; i < 100 && h.c.State() == overlay.Moving; i++ {
		frame, ok := h.sched.lastFrame()
		require.True(t, ok)
		h.c.Update(frame)
	}
	require.NotEqual(t, overlay.Moving, h.c.State())
}

func (h *harness) warnings() []observer.LoggedEntry {
	return h.logs.FilterLevelExact(zapcore.WarnLevel).All()
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestStartSequence(t *testing.T) {
	h := newHarness(t, nil, false)

	assert.Nil(t, h.c.Start(), "start before load is a no-op")
	h.start(t)

	assert.Equal(t, 3, h.c.Container().Len())
	assert.Equal(t, 15*time.Second, h.c.Monitor().Timeout())
	assert.Equal(t, overlay.Closed, h.c.State())
	assert.True(t, h.c.Monitor().IsActive())
	assert.Nil(t, h.c.Start(), "second start is a no-op")
	assert.Empty(t, h.warnings())
}

func TestInputIgnoredBeforeReady(t *testing.T) {
	h := newHarness(t, nil, false)

	_, cmd := h.c.Update(keyMsg(" "))
	assert.Nil(t, cmd)
	assert.Equal(t, overlay.Closed, h.c.State())
	assert.False(t, h.c.Ready())
}

func TestBrokenDocumentFallsBackToDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "splash.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"fit": tru`), 0o644))

	h := newHarness(t, document.FileSource{Path: path}, false)
	h.start(t)

	require.Len(t, h.warnings(), 1)
	assert.Equal(t, "error loading document, using defaults", h.warnings()[0].Message)
	assert.Equal(t, 3, h.c.Container().Len())
	assert.True(t, h.c.Ready())
}

func TestUserDocumentApplied(t *testing.T) {
	path := filepath.Join(t.TempDir(), "splash.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"active-timeout": 30,
		"transition": "slide",
		"content": {"bogus-type": {}, "html": "hello"}
	}`), 0o644))

	h := newHarness(t, document.FileSource{Path: path}, false)
	h.start(t)

	assert.Equal(t, 30*time.Second, h.c.Monitor().Timeout())
	assert.Equal(t, document.TransitionSlide, h.c.Machine().Transition())
	// two default clocks, the replaced html entry; bogus-type renders nothing
	assert.Equal(t, 3, h.c.Container().Len())
	assert.Len(t, h.warnings(), 1)
}

func TestKeyboardInput(t *testing.T) {
	h := newHarness(t, nil, false)
	h.start(t)

	h.c.Update(keyMsg(" "))
	assert.Equal(t, overlay.Moving, h.c.State())

	// esc while moving does nothing
	h.c.Update(keyMsg("esc"))
	assert.Equal(t, overlay.Moving, h.c.State())
	assert.Equal(t, overlay.Opening, h.c.Machine().Direction())

	h.settle(t)
	assert.Equal(t, overlay.Open, h.c.State())

	// other keys while open leave it open
	h.c.Update(keyMsg("x"))
	h.c.Update(keyMsg("enter"))
	assert.Equal(t, overlay.Open, h.c.State())

	h.c.Update(keyMsg("esc"))
	assert.Equal(t, overlay.Moving, h.c.State())
	assert.Equal(t, overlay.Closing, h.c.Machine().Direction())
	h.settle(t)
	assert.Equal(t, overlay.Closed, h.c.State())

	// any other key opens while closed
	h.c.Update(keyMsg("q"))
	assert.Equal(t, overlay.Moving, h.c.State())

	assert.Empty(t, h.warnings())
}

func TestEscTogglesFromClosed(t *testing.T) {
	h := newHarness(t, nil, false)
	h.start(t)

	h.c.Update(keyMsg("esc"))
	assert.Equal(t, overlay.Moving, h.c.State())
	h.settle(t)
	assert.Equal(t, overlay.Open, h.c.State())
}

func TestInactivityOpensOverlay(t *testing.T) {
	h := newHarness(t, nil, false)
	h.start(t)

	h.clock.Advance(29 * time.Second)
	h.c.Update(activity.TickMsg{Time: h.clock.Now()})
	assert.Equal(t, overlay.Closed, h.c.State())

	h.clock.Advance(2 * time.Second)
	_, cmd := h.c.Update(activity.TickMsg{Time: h.clock.Now()})
	assert.NotNil(t, cmd)
	assert.Equal(t, overlay.Moving, h.c.State())

	// the edge fires once; further ticks do not restart the effect
	h.settle(t)
	h.c.Update(activity.TickMsg{Time: h.clock.Now()})
	assert.Equal(t, overlay.Open, h.c.State())
	assert.Equal(t, 0, h.c.Machine().InFlight())
}

func TestAutoCloseAfterActiveTimeout(t *testing.T) {
	h := newHarness(t, nil, true)
	h.start(t)
	assert.Equal(t, overlay.Moving, h.c.State(), "start_open opens at ready")
	h.settle(t)
	require.True(t, h.c.Machine().AutoCloseArmed())

	fire, ok := h.sched.lastAutoClose()
	require.True(t, ok)
	h.c.Update(fire)
	assert.Equal(t, overlay.Moving, h.c.State())
	h.settle(t)
	assert.Equal(t, overlay.Closed, h.c.State())
}

func TestPointerInput(t *testing.T) {
	h := newHarness(t, nil, false)
	h.start(t)
	started := h.c.Monitor().LastActive()

	// motion while active is not recorded
	h.clock.Advance(10 * time.Second)
	h.c.Update(tea.MouseMsg{Action: tea.MouseActionMotion, X: 3, Y: 4})
	assert.Equal(t, started, h.c.Monitor().LastActive())

	// motion while inactive is
	h.clock.Advance(25 * time.Second)
	h.c.Update(tea.MouseMsg{Action: tea.MouseActionMotion, X: 4, Y: 4})
	assert.Equal(t, h.clock.Now(), h.c.Monitor().LastActive())

	// a click while closed only records activity
	h.c.Update(tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	assert.Equal(t, overlay.Closed, h.c.State())

	h.c.Update(keyMsg(" "))
	h.settle(t)
	before, ok := h.sched.lastAutoClose()
	require.True(t, ok)

	// a click while open re-arms the auto-close timer
	h.c.Update(tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	after, ok := h.sched.lastAutoClose()
	require.True(t, ok)
	assert.Equal(t, overlay.Open, h.c.State())
	assert.Greater(t, after.ID, before.ID)

	h.c.Update(before)
	assert.Equal(t, overlay.Open, h.c.State(), "stale fire is ignored")
}

func TestCompose(t *testing.T) {
	h := newHarness(t, nil, false)
	assert.Equal(t, "host", h.c.Compose("host"), "host shows before ready")

	h.start(t)
	assert.Equal(t, "host", h.c.Compose("host"), "host shows while closed")

	h.c.Update(keyMsg(" "))
	h.settle(t)

	lines := strings.Split(h.c.Compose("host"), "\n")
	require.Len(t, lines, 12)
	for _, l := range lines {
		assert.Equal(t, 40, xansi.StringWidth(l))
	}
	screen := xansi.Strip(strings.Join(lines, "\n"))
	assert.Contains(t, screen, "Saturday, March 2nd")
	assert.Contains(t, screen, "3:04")
	assert.Contains(t, screen, "PM")
	assert.Contains(t, screen, "Press any key to login")
}

func TestComposeHidesHintWhileInactive(t *testing.T) {
	h := newHarness(t, nil, false)
	h.start(t)

	h.clock.Advance(31 * time.Second)
	h.c.Update(activity.TickMsg{Time: h.clock.Now()})
	h.settle(t)
	require.Equal(t, overlay.Open, h.c.State())

	screen := xansi.Strip(h.c.Compose(""))
	assert.NotContains(t, screen, "Press any key to login")
	assert.Contains(t, screen, "3:04")
}

func TestComposeSlideShowsHost(t *testing.T) {
	path := filepath.Join(t.TempDir(), "splash.yaml")
	require.NoError(t, os.WriteFile(path, []byte("transition: slide\n"), 0o644))

	h := newHarness(t, document.FileSource{Path: path}, false)
	h.start(t)
	h.c.Update(keyMsg(" "))
	frame, ok := h.sched.lastFrame()
	require.True(t, ok)
	h.c.Update(frame)

	require.Equal(t, overlay.Moving, h.c.State())
	host := strings.TrimSuffix(strings.Repeat("host\n", 12), "\n")
	lines := strings.Split(h.c.Compose(host), "\n")
	require.Len(t, lines, 12)
	assert.Contains(t, lines[11], "host", "bottom rows still show the host")
	assert.NotContains(t, xansi.Strip(lines[0]), "host", "the overlay edge has entered from the top")
}

func TestPreview(t *testing.T) {
	out := Preview(Options{Clock: clockwork.NewFakeClockAt(time.Date(2024, 3, 2, 9, 5, 0, 0, time.Local))}, 50, 16)

	lines := strings.Split(out, "\n")
	require.Len(t, lines, 16)
	screen := xansi.Strip(out)
	assert.Contains(t, screen, "9:05")
	assert.Contains(t, screen, "AM")
	assert.Contains(t, screen, "Press any key to login")
}
