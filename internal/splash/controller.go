// Package splash composes the overlay: it loads the document, builds the
// background and content, runs the activity monitor and routes input and
// timer messages to the overlay state machine.
package splash

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/jonboulle/clockwork"

	"github.com/karthickk/splash-screen/internal/activity"
	"github.com/karthickk/splash-screen/internal/content"
	"github.com/karthickk/splash-screen/internal/document"
	"github.com/karthickk/splash-screen/internal/overlay"
	"github.com/karthickk/splash-screen/internal/signal"
	"github.com/karthickk/splash-screen/internal/ui/components"
	"github.com/karthickk/splash-screen/pkg/logger"
)

// Options configures a Controller. Zero values pick real implementations.
type Options struct {
	// Source is where the user document comes from; nil means defaults only.
	Source    document.Source
	Clock     clockwork.Clock
	Scheduler overlay.Scheduler
	Logger    *logger.Logger
	// StartOpen opens the overlay as soon as it is ready.
	StartOpen bool
	Context   context.Context
}

// Controller is the splash screen. The host forwards every message to it,
// calls Start after LoadedMsg and draws with Compose.
type Controller struct {
	opts Options
	log  *logger.Logger
	keys KeyMap

	doc        *document.Document
	monitor    *activity.Monitor
	machine    *overlay.Machine
	renderer   *content.Renderer
	container  *content.Container
	background *components.Background
	subs       signal.Group
	pending    []tea.Cmd

	width  int
	height int
	loaded bool
	ready  bool
}

// New creates a controller. Nothing happens until Init.
func New(opts Options) *Controller {
	if opts.Clock == nil {
		opts.Clock = clockwork.NewRealClock()
	}
	if opts.Scheduler == nil {
		opts.Scheduler = overlay.TeaScheduler{}
	}
	if opts.Logger == nil {
		opts.Logger = logger.Nop()
	}
	if opts.Context == nil {
		opts.Context = context.Background()
	}
	return &Controller{
		opts:      opts,
		log:       opts.Logger.With("component", "splash"),
		keys:      DefaultKeyMap(),
		container: content.NewContainer(),
	}
}

// Init starts fetching the document.
func (c *Controller) Init() tea.Cmd {
	return c.load
}

func (c *Controller) load() tea.Msg {
	doc, err := document.Resolve(c.opts.Context, c.opts.Source)
	return DocumentLoadedMsg{Document: doc, Err: err}
}

// Keys returns the key bindings, for help views.
func (c *Controller) Keys() KeyMap { return c.keys }

// Document returns the merged document, or nil before it loads.
func (c *Controller) Document() *document.Document { return c.doc }

// Machine returns the overlay state machine, or nil before Start.
func (c *Controller) Machine() *overlay.Machine { return c.machine }

// Monitor returns the activity monitor, or nil before Start.
func (c *Controller) Monitor() *activity.Monitor { return c.monitor }

// Container returns the rendered content.
func (c *Controller) Container() *content.Container { return c.container }

// Ready reports whether the overlay accepts input.
func (c *Controller) Ready() bool { return c.ready }

// State returns the overlay state; Closed before Start.
func (c *Controller) State() overlay.State {
	if c.machine == nil {
		return overlay.Closed
	}
	return c.machine.State()
}

// Start builds the overlay from the loaded document: background, activity
// monitor, content, then readiness. It is a no-op before the document loads
// or after the first call.
func (c *Controller) Start() tea.Cmd {
	if !c.loaded || c.ready {
		return nil
	}
	var cmds []tea.Cmd

	c.background = components.NewBackground(c.doc.Fit, c.doc.Filter, c.doc.Vignette)
	c.background.Resize(c.width, c.height)
	if c.doc.Image != "" {
		cmds = append(cmds, components.LoadBackground(c.opts.Context, c.doc.Image))
	}

	c.monitor = activity.New(c.opts.Clock, c.doc.ActiveTimeout)
	c.machine = overlay.New(c.doc.Transition, c.monitor.Timeout(), c.opts.Scheduler, c.opts.Logger)
	c.subs.Add(c.monitor.Inactive.Subscribe(func(time.Time) {
		c.log.Debug("user inactive, opening overlay")
		c.pending = append(c.pending, c.machine.RequestOpen())
	}))
	c.subs.Add(c.monitor.Active.Subscribe(func(time.Time) {
		c.log.Debug("user active")
	}))
	c.subs.Add(c.machine.Settled.Subscribe(func(s overlay.State) {
		c.log.Info("overlay " + s.String())
	}))
	cmds = append(cmds, c.monitor.Start())

	c.renderer = content.NewRenderer(c.monitor.Tick, c.opts.Clock, c.opts.Logger)
	c.renderer.Render(c.doc.Content, c.container)

	c.ready = true
	c.log.Info("splash screen ready",
		"transition", string(c.doc.Transition),
		"active_timeout", c.doc.ActiveTimeout.String(),
		"elements", c.container.Len())
	cmds = append(cmds, func() tea.Msg { return ReadyMsg{} })
	if c.opts.StartOpen {
		cmds = append(cmds, c.machine.RequestOpen())
	}
	return tea.Batch(cmds...)
}

// Release detaches every subscription the controller holds.
func (c *Controller) Release() {
	c.container.Reset()
	c.subs.Release()
}

// Update implements tea.Model.
func (c *Controller) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		c.width, c.height = msg.Width, msg.Height
		if c.background != nil {
			c.background.Resize(msg.Width, msg.Height)
		}
		return c, nil

	case DocumentLoadedMsg:
		return c, c.handleDocument(msg)

	case components.BackgroundLoadedMsg:
		if c.background == nil {
			return c, nil
		}
		if msg.Err != nil {
			c.log.Warn("error loading background image, using solid backdrop", "error", msg.Err.Error())
			return c, nil
		}
		c.background.SetImage(msg.Image)
		c.log.Debug("background image loaded", "source", msg.Source)
		return c, nil

	case activity.TickMsg:
		if c.monitor == nil {
			return c, nil
		}
		cmd := c.monitor.Update(msg)
		return c, c.drain(cmd)

	case overlay.FrameMsg, overlay.AutoCloseMsg:
		if c.machine == nil {
			return c, nil
		}
		return c, c.machine.Update(msg)

	case tea.KeyMsg:
		if !c.ready {
			return c, nil
		}
		return c, c.handleKey(msg)

	case tea.MouseMsg:
		if !c.ready {
			return c, nil
		}
		return c, c.handleMouse(msg)
	}
	return c, nil
}

func (c *Controller) handleDocument(msg DocumentLoadedMsg) tea.Cmd {
	if c.loaded {
		return nil
	}
	c.doc = msg.Document
	if c.doc == nil {
		c.doc = document.Default()
	}
	switch {
	case errors.Is(msg.Err, document.ErrNoSource):
		c.log.Info("no document configured, using defaults")
	case msg.Err != nil:
		c.log.Warn("error loading document, using defaults", "error", msg.Err.Error())
	}
	for _, issue := range c.doc.Issues {
		c.log.Warn("ignoring invalid document value", "error", issue.Error())
	}
	c.loaded = true
	err := msg.Err
	return func() tea.Msg { return LoadedMsg{Err: err} }
}

func (c *Controller) handleKey(msg tea.KeyMsg) tea.Cmd {
	c.monitor.RecordActivity()

	state := c.machine.State()
	switch {
	case key.Matches(msg, c.keys.Toggle):
		switch state {
		case overlay.Closed:
			return c.machine.RequestOpen()
		case overlay.Open:
			return c.machine.RequestClose()
		}
		return nil
	case key.Matches(msg, c.keys.Open):
		if state == overlay.Closed {
			return c.machine.RequestOpen()
		}
	default:
		if state == overlay.Closed {
			return c.machine.RequestOpen()
		}
	}
	return nil
}

func (c *Controller) handleMouse(msg tea.MouseMsg) tea.Cmd {
	switch msg.Action {
	case tea.MouseActionMotion:
		if !c.monitor.IsActive() {
			c.monitor.RecordActivity()
		}
	case tea.MouseActionPress:
		c.monitor.RecordActivity()
		if c.machine.State() == overlay.Open {
			return c.machine.RequestOpen()
		}
	}
	return nil
}

// drain appends the commands queued by signal handlers to cmd.
func (c *Controller) drain(cmd tea.Cmd) tea.Cmd {
	if len(c.pending) == 0 {
		return cmd
	}
	cmds := append([]tea.Cmd{cmd}, c.pending...)
	c.pending = nil
	return tea.Batch(cmds...)
}
