package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/carbonscore-labs/carbonscore-cli/internal/core/domain"
)

// styles holds the lipgloss styles used by the app.
type appStyles struct {
	title    lipgloss.Style
	muted    lipgloss.Style
	selected lipgloss.Style
	errText  lipgloss.Style
	status   lipgloss.Style
}

func defaultStyles() appStyles {
	return appStyles{
		title:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#A6E3A1")),
		muted:    lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086")),
		selected: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#06B6D4")),
		errText:  lipgloss.NewStyle().Foreground(lipgloss.Color("#F38BA8")),
		status:   lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086")).Italic(true),
	}
}

// resultsMsg carries search results back into the update loop.
type resultsMsg struct {
	results []domain.SearchResult
	err     error
}

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	ports  *Ports
	ctx    context.Context
	styles appStyles

	input textinput.Model

	// results holds the current search results.
	results []domain.SearchResult

	// selectedIndex is the currently highlighted result.
	selectedIndex int

	// searching indicates a search is in flight.
	searching bool

	// err holds the last error that occurred.
	err error

	width  int
	height int
	ready  bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	input := textinput.New()
	input.Placeholder = "Rechercher dans les publications ADEME..."
	input.Focus()
	input.CharLimit = 256

	return &App{
		ports:  ports,
		ctx:    context.Background(),
		styles: defaultStyles(),
		input:  input,
	}, nil
}

// WithContext sets the context used for service calls.
func (a *App) WithContext(ctx context.Context) *App {
	if ctx != nil {
		a.ctx = ctx
	}
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		return a, nil

	case resultsMsg:
		a.searching = false
		a.err = msg.err
		a.results = msg.results
		a.selectedIndex = 0
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		if !a.input.Focused() || msg.String() == "ctrl+c" {
			return a, tea.Quit
		}

	case "esc":
		if a.input.Focused() && a.input.Value() == "" {
			return a, tea.Quit
		}
		a.input.SetValue("")
		a.results = nil
		a.err = nil
		a.input.Focus()
		return a, nil

	case "enter":
		query := strings.TrimSpace(a.input.Value())
		if query == "" {
			return a, nil
		}
		a.searching = true
		a.err = nil
		a.input.Blur()
		return a, a.searchCmd(query)

	case "up", "k":
		if !a.input.Focused() && a.selectedIndex > 0 {
			a.selectedIndex--
			return a, nil
		}

	case "down", "j":
		if !a.input.Focused() && a.selectedIndex < len(a.results)-1 {
			a.selectedIndex++
			return a, nil
		}

	case "/":
		if !a.input.Focused() {
			a.input.Focus()
			return a, textinput.Blink
		}
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

// searchCmd runs the search in a tea command.
func (a *App) searchCmd(query string) tea.Cmd {
	return func() tea.Msg {
		results, err := a.ports.Search.Search(a.ctx, query, domain.SearchOptions{Limit: 20})
		return resultsMsg{results: results, err: err}
	}
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	var b strings.Builder
	b.WriteString(a.styles.title.Render("carbonscore"))
	b.WriteString("\n\n")
	b.WriteString(a.input.View())
	b.WriteString("\n\n")

	switch {
	case a.searching:
		b.WriteString(a.styles.status.Render("Searching..."))
	case a.err != nil:
		b.WriteString(a.styles.errText.Render("Error: " + a.err.Error()))
	case len(a.results) > 0:
		b.WriteString(a.renderResults())
	default:
		b.WriteString(a.styles.muted.Render("Type a query and press Enter."))
	}

	b.WriteString("\n\n")
	b.WriteString(a.styles.status.Render("enter search • ↑/↓ navigate • / edit query • esc clear • q quit"))
	return b.String()
}

func (a *App) renderResults() string {
	var b strings.Builder
	for i := range a.results {
		title := a.results[i].Document.Title
		if title == "" {
			title = a.results[i].Document.ID
		}
		line := fmt.Sprintf("%2d. %s (%.2f)", i+1, title, a.results[i].Score)
		if i == a.selectedIndex {
			b.WriteString(a.styles.selected.Render("> " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
		if len(a.results[i].Highlights) > 0 {
			b.WriteString(a.styles.muted.Render("      " + a.results[i].Highlights[0]))
			b.WriteString("\n")
		}
	}
	return b.String()
}

// Ready reports whether the app has received its initial window size.
func (a *App) Ready() bool {
	return a.ready
}

// Results returns the current search results.
func (a *App) Results() []domain.SearchResult {
	return a.results
}

// SelectedIndex returns the index of the highlighted result.
func (a *App) SelectedIndex() int {
	return a.selectedIndex
}
