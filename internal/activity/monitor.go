// Package activity classifies the user as active or inactive from input
// timestamps and drives the periodic tick that refreshes time-based content.
package activity

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jonboulle/clockwork"

	"github.com/karthickk/splash-screen/internal/signal"
)

const (
	// TickInterval is the evaluation cadence.
	TickInterval = 500 * time.Millisecond
	// InactiveAfter is how long without input before the user counts as
	// inactive. It is independent of the auto-close timeout.
	InactiveAfter = 30 * time.Second
)

// TickMsg drives one evaluation of the monitor.
type TickMsg struct {
	Time time.Time
}

// Monitor tracks the last interaction and emits edge-triggered active and
// inactive signals plus an unconditional tick.
type Monitor struct {
	clock      clockwork.Clock
	lastActive time.Time
	wasActive  bool
	timeout    time.Duration

	// Tick fires on every evaluation.
	Tick *signal.Signal[time.Time]
	// Inactive fires on the active to inactive edge.
	Inactive *signal.Signal[time.Time]
	// Active fires on the inactive to active edge.
	Active *signal.Signal[time.Time]
}

// New creates a monitor. timeout is the overlay auto-close delay the monitor
// carries for its owner; it does not affect classification.
func New(clock clockwork.Clock, timeout time.Duration) *Monitor {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Monitor{
		clock:    clock,
		timeout:  timeout,
		Tick:     signal.New[time.Time]("tick"),
		Inactive: signal.New[time.Time]("inactive"),
		Active:   signal.New[time.Time]("active"),
	}
}

// Timeout returns the auto-close delay.
func (m *Monitor) Timeout() time.Duration {
	return m.timeout
}

// LastActive returns the time of the last recorded interaction.
func (m *Monitor) LastActive() time.Time {
	return m.lastActive
}

// Now returns the monitor clock's current time.
func (m *Monitor) Now() time.Time {
	return m.clock.Now()
}

// RecordActivity marks the user as active now and emits Active if the user
// was previously classified inactive.
func (m *Monitor) RecordActivity() {
	now := m.clock.Now()
	m.lastActive = now
	if !m.wasActive {
		m.wasActive = true
		m.Active.Emit(now)
	}
}

// IsActive reports whether the last interaction is within InactiveAfter.
func (m *Monitor) IsActive() bool {
	return m.clock.Since(m.lastActive) <= InactiveAfter
}

// EmitTick fires the tick signal.
func (m *Monitor) EmitTick() {
	m.Tick.Emit(m.clock.Now())
}

// DetectEdge reclassifies the user and emits Inactive on the active to
// inactive transition. It returns the new classification.
func (m *Monitor) DetectEdge() bool {
	active := m.IsActive()
	if m.wasActive && !active {
		m.Inactive.Emit(m.clock.Now())
	}
	m.wasActive = active
	return active
}

// Evaluate runs one cadence step: the tick, then edge detection.
func (m *Monitor) Evaluate() {
	m.EmitTick()
	m.DetectEdge()
}

// Start records the initial activity and schedules the first evaluation.
func (m *Monitor) Start() tea.Cmd {
	m.RecordActivity()
	return m.schedule()
}

// Update handles TickMsg and schedules the next one.
func (m *Monitor) Update(msg tea.Msg) tea.Cmd {
	if _, ok := msg.(TickMsg); !ok {
		return nil
	}
	m.Evaluate()
	return m.schedule()
}

func (m *Monitor) schedule() tea.Cmd {
	return tea.Tick(TickInterval, func(t time.Time) tea.Msg {
		return TickMsg{Time: t}
	})
}
