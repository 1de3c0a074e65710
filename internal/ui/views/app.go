package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/jonboulle/clockwork"

	"github.com/karthickk/splash-screen/internal/overlay"
	"github.com/karthickk/splash-screen/internal/splash"
	"github.com/karthickk/splash-screen/internal/ui/components"
	"github.com/karthickk/splash-screen/pkg/utils"
)

// hostKeys are the bindings the host handles itself.
type hostKeys struct {
	splash.KeyMap
	Quit key.Binding
}

func (k hostKeys) ShortHelp() []key.Binding {
	return append(k.KeyMap.ShortHelp(), k.Quit)
}

func (k hostKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// AppModel is the session the splash screen sits on top of. It owns the
// controller, starts it once the document has loaded and draws its own
// status screen underneath the overlay.
type AppModel struct {
	splash  *splash.Controller
	clock   clockwork.Clock
	keys    hostKeys
	help    help.Model
	logo    *components.Logo
	spinner components.SpinnerModel

	width    int
	height   int
	message  string
	quitting bool
}

// NewAppModel creates the host around ctrl.
func NewAppModel(ctrl *splash.Controller, clock clockwork.Clock) *AppModel {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	logo := components.NewLogo("SPLASH")
	logo.Subtitle = "Terminal lock screen"
	return &AppModel{
		splash: ctrl,
		clock:  clock,
		keys: hostKeys{
			KeyMap: ctrl.Keys(),
			Quit: key.NewBinding(
				key.WithKeys("ctrl+c"),
				key.WithHelp("ctrl+c", "quit"),
			),
		},
		help:    help.New(),
		logo:    logo,
		spinner: components.NewSpinner("Loading splash document..."),
	}
}

// Splash returns the controller.
func (m *AppModel) Splash() *splash.Controller { return m.splash }

// Init initializes the app
func (m *AppModel) Init() tea.Cmd {
	return tea.Batch(
		tea.ClearScreen,
		m.spinner.Init(),
		m.splash.Init(),
	)
}

// Update handles host messages and forwards everything to the controller.
func (m *AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			m.quitting = true
			m.splash.Release()
			return m, tea.Quit
		}

	case splash.LoadedMsg:
		if msg.Err != nil {
			m.message = components.RenderMessage("warning", "Using default splash document")
		}
		m.spinner.Hide()
		return m, m.splash.Start()

	case splash.ReadyMsg:
		if m.message == "" {
			m.message = components.RenderMessage("success", "Splash screen ready")
		}
		return m, nil

	case components.BackgroundLoadedMsg:
		if msg.Err != nil {
			m.message = components.RenderMessage("error", "Background image unavailable")
		}
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)
	cmds = append(cmds, cmd)
	_, cmd = m.splash.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

// View draws the host screen with the overlay composed on top.
func (m *AppModel) View() string {
	if m.quitting {
		return ""
	}
	return m.splash.Compose(m.hostView())
}

func (m *AppModel) hostView() string {
	var b strings.Builder
	b.WriteString(m.logo.Render(m.width - 4))
	b.WriteString("\n")

	if !m.splash.Ready() {
		b.WriteString(m.spinner.View())
		b.WriteString("\n")
		return components.AppStyle.Render(b.String())
	}

	b.WriteString(components.RenderStatusLine("Overlay", overlayStatus(m.splash.State())))
	b.WriteString("\n")
	if mon := m.splash.Monitor(); mon != nil {
		idle := utils.FormatAgeAt(mon.LastActive(), m.clock.Now())
		activity := "active"
		if !mon.IsActive() {
			activity = "inactive"
		}
		b.WriteString(components.RenderStatusLine("Last input", fmt.Sprintf("%s ago (%s)", idle, activity)))
		b.WriteString("\n")
	}
	if doc := m.splash.Document(); doc != nil {
		b.WriteString(components.RenderStatusLine("Auto-close", doc.ActiveTimeout.String()))
		b.WriteString("\n")
		b.WriteString(components.RenderStatusLine("Transition", string(doc.Transition)))
		b.WriteString("\n")
	}
	if m.message != "" {
		b.WriteString("\n")
		b.WriteString(m.message)
		b.WriteString("\n")
	}
	b.WriteString(components.HelpStyle.Render(m.help.View(m.keys)))

	return lipgloss.NewStyle().MaxWidth(m.width).Render(components.AppStyle.Render(b.String()))
}

func overlayStatus(s overlay.State) string {
	switch s {
	case overlay.Open:
		return components.StatusActiveStyle.Render(s.String())
	case overlay.Moving:
		return components.StatusPendingStyle.Render(s.String())
	default:
		return components.ItemStyle.Render(s.String())
	}
}
