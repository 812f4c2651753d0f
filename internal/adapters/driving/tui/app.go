// Package tui provides the interactive terminal UI for managing Google Ads
// accounts and customers.
package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/mcc-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/mcc-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/mcc-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/mcc-cli/internal/adapters/driving/tui/views/manager"
	"github.com/custodia-labs/mcc-cli/internal/core/domain"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	ports  *Ports
	ctx    context.Context
	styles *styles.Styles
	keymap *keymap.KeyMap
	help   help.Model

	page *manager.View

	showHelp bool
	width    int
	height   int
	ready    bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()
	return &App{
		ports:  ports,
		ctx:    context.Background(),
		styles: s,
		keymap: km,
		help:   help.New(),
		page:   manager.NewView(s, km, ports.Manager, ports.Customers),
	}, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.page.WithContext(ctx)
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.SetWindowTitle("mcc - Google Ads Manager"),
		a.page.Init(),
	)
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case messages.Quit:
		return a, tea.Quit

	case tea.KeyMsg:
		keyStr := msg.String()
		if keymap.Matches(keyStr, a.keymap.Quit) {
			return a, tea.Quit
		}
		if a.showHelp {
			a.showHelp = false
			return a, nil
		}
		if !a.page.CapturesText() {
			switch {
			case keymap.Matches(keyStr, a.keymap.Help):
				a.showHelp = true
				return a, nil
			case keymap.Matches(keyStr, a.keymap.QuitTable) && a.page.Focus() == manager.FieldTable:
				return a, tea.Quit
			}
		}
	}

	var cmd tea.Cmd
	a.page, cmd = a.page.Update(msg)
	return a, cmd
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}
	if a.showHelp {
		return a.viewHelp()
	}
	return a.page.View()
}

func (a *App) viewHelp() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		a.styles.Title.Render("Keys"),
		"",
		a.help.FullHelpView(a.keymap.FullHelp()),
		"",
		a.styles.Help.Render("press any key to return"),
	)
}

// Run starts the TUI and forwards manager state changes to it until exit.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	unsubscribe := a.ports.Manager.Subscribe(func(snap domain.ManagerSnapshot) {
		p.Send(messages.StateChanged{Snapshot: snap})
	})
	defer unsubscribe()

	_, err := p.Run()
	return err
}

// SetDimensions sets the terminal dimensions.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.help.Width = width
	a.page.SetDimensions(width, height)
}

// Ready returns whether the app has received its dimensions.
func (a *App) Ready() bool {
	return a.ready
}

// ShowingHelp reports whether the help screen is displayed.
func (a *App) ShowingHelp() bool {
	return a.showHelp
}

// Page returns the manager page.
func (a *App) Page() *manager.View {
	return a.page
}
