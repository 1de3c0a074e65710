// Package overlay owns the overlay's visibility state machine. Every state
// change goes through the transition table in state.go; the only way out of
// Moving is the completion of the in-flight effect.
package overlay

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/karthickk/splash-screen/internal/document"
	"github.com/karthickk/splash-screen/internal/signal"
	"github.com/karthickk/splash-screen/pkg/logger"
)

// AutoCloseMsg fires the auto-close timer with the matching generation.
type AutoCloseMsg struct {
	ID uint64
}

// Scheduler turns a delayed message into a command.
type Scheduler interface {
	After(d time.Duration, msg tea.Msg) tea.Cmd
}

// TeaScheduler schedules with tea.Tick.
type TeaScheduler struct{}

// After delivers msg once d has elapsed.
func (TeaScheduler) After(d time.Duration, msg tea.Msg) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return msg })
}

// Machine is the overlay state machine.
type Machine struct {
	state      State
	dir        Direction
	transition document.Transition
	delay      time.Duration

	effect     *effect
	nextEffect uint64
	inFlight   int

	timerID    uint64
	timerArmed bool

	sched Scheduler
	log   *logger.Logger

	// Settled fires with the resolved state each time an effect completes.
	Settled *signal.Signal[State]
}

// New creates a machine in the Closed state. delay is the auto-close delay;
// a non-positive delay disables auto-close.
func New(transition document.Transition, delay time.Duration, sched Scheduler, log *logger.Logger) *Machine {
	if sched == nil {
		sched = TeaScheduler{}
	}
	if log == nil {
		log = logger.Nop()
	}
	if transition != document.TransitionSlide {
		transition = document.TransitionFade
	}
	return &Machine{
		state:      Closed,
		transition: transition,
		delay:      delay,
		sched:      sched,
		log:        log.With("component", "overlay"),
		Settled:    signal.New[State]("settled"),
	}
}

// State returns the current state.
func (m *Machine) State() State { return m.state }

// Direction returns the direction of the in-flight effect; it is only
// meaningful while Moving.
func (m *Machine) Direction() Direction { return m.dir }

// Transition returns the configured effect.
func (m *Machine) Transition() document.Transition { return m.transition }

// InFlight returns the number of effects currently running.
func (m *Machine) InFlight() int { return m.inFlight }

// AutoCloseArmed reports whether an auto-close timer is pending.
func (m *Machine) AutoCloseArmed() bool { return m.timerArmed }

// Progress is how far the in-flight effect has run, 0..1. It is 0 when no
// effect is running.
func (m *Machine) Progress() float64 {
	if m.effect == nil {
		return 0
	}
	return m.effect.progress()
}

// Visibility is how much of the overlay is shown: 0 when closed, 1 when
// open, in between while an effect runs.
func (m *Machine) Visibility() float64 {
	switch m.state {
	case Open:
		return 1
	case Moving:
		p := m.effect.progress()
		if m.dir == Opening {
			return p
		}
		return 1 - p
	default:
		return 0
	}
}

// RequestOpen starts opening from Closed. From Open or Moving it changes
// nothing but re-arms the auto-close timer.
func (m *Machine) RequestOpen() tea.Cmd {
	return m.fire(eventOpen)
}

// RequestClose starts closing from Open. From any other state it logs a
// warning and does nothing.
func (m *Machine) RequestClose() tea.Cmd {
	return m.fire(eventClose)
}

// ScheduleAutoClose arms the one-shot auto-close timer, replacing any
// pending one.
func (m *Machine) ScheduleAutoClose(d time.Duration) tea.Cmd {
	m.timerID++
	if d <= 0 {
		m.timerArmed = false
		return nil
	}
	m.timerArmed = true
	return m.sched.After(d, AutoCloseMsg{ID: m.timerID})
}

// CancelAutoClose disarms the pending auto-close timer.
func (m *Machine) CancelAutoClose() {
	m.timerID++
	m.timerArmed = false
}

// Update handles effect frames and auto-close fires. Stale messages from
// replaced timers or finished effects are dropped.
func (m *Machine) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case FrameMsg:
		if m.effect == nil || msg.ID != m.effect.id {
			return nil
		}
		m.effect.frame++
		if m.effect.done() {
			return m.fire(eventEffectDone)
		}
		return m.sched.After(frameInterval, FrameMsg{ID: msg.ID})

	case AutoCloseMsg:
		if !m.timerArmed || msg.ID != m.timerID {
			return nil
		}
		m.timerArmed = false
		return m.fire(eventAutoClose)
	}
	return nil
}

func (m *Machine) fire(e event) tea.Cmd {
	switch lookup(m.state, e) {
	case actBeginOpen:
		start := m.begin(Opening)
		return tea.Batch(start, m.ScheduleAutoClose(m.delay))

	case actBeginClose:
		return m.begin(Closing)

	case actRearm:
		m.log.Debug("overlay already "+m.state.String()+", re-arming auto-close", "event", e.String())
		return m.ScheduleAutoClose(m.delay)

	case actSettle:
		m.settle()
		return nil

	case actReject:
		m.log.Warn("cannot "+e.String()+" overlay", "state", m.state.String())
		return nil
	}
	return nil
}

func (m *Machine) begin(dir Direction) tea.Cmd {
	m.state = Moving
	m.dir = dir
	m.nextEffect++
	m.effect = newEffect(m.nextEffect, m.transition, dir)
	m.inFlight++
	m.log.Debug("overlay transition started", "direction", dir.String(), "effect", string(m.transition))
	return m.sched.After(frameInterval, FrameMsg{ID: m.effect.id})
}

func (m *Machine) settle() {
	if m.dir == Opening {
		m.state = Open
	} else {
		m.state = Closed
		m.CancelAutoClose()
	}
	m.effect = nil
	m.inFlight--
	m.log.Debug("overlay transition finished", "state", m.state.String())
	m.Settled.Emit(m.state)
}
