package ui

import (
	"errors"
	"fmt"
	"strings"

	"cmdpalette/model"
	"cmdpalette/palette"
	"cmdpalette/runner"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"
)

const suggestionLimit = 5

type App struct {
	palette *palette.Palette
	runs    <-chan runner.Run
	keys    keyMap

	// UI state
	open   bool
	width  int
	height int
	err    string
	status string

	// Search
	searchInput textinput.Model

	// Output
	output      viewport.Model
	outputLines []string
	running     bool
	runID       int
}

// NewApp loads the palette and opens it. runs may be nil when the dispatcher
// publishes no output.
func NewApp(p *palette.Palette, runs <-chan runner.Run) *App {
	search := textinput.New()
	search.Placeholder = "Type a command..."
	search.Focus()

	app := &App{
		palette:     p,
		runs:        runs,
		keys:        defaultKeyMap(),
		open:        true,
		searchInput: search,
		output:      viewport.New(80, 10),
	}

	p.Subscribe(func(e palette.Event) {
		if e == palette.CloseRequested {
			app.open = false
			app.searchInput.Blur()
		}
	})
	p.Load()

	return app
}

func (a *App) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, waitForRun(a.runs))
}

type runMsg runner.Run

// outputMsg carries one line of a run and the channel to keep reading.
type outputMsg struct {
	runner.OutputMsg
	run    int
	output <-chan runner.OutputMsg
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width - 4   // account for app padding
		a.height = msg.Height - 2 // account for app padding
		a.output.Width = a.width - 4
		a.output.Height = a.height / 3
		return a, nil

	case runMsg:
		a.runID++
		a.running = true
		header := "» " + msg.Code
		if msg.Command != "" {
			header = "$ " + msg.Command
		}
		a.outputLines = []string{cmdPreviewStyle.Render(header), ""}
		a.output.SetContent(strings.Join(a.outputLines, "\n"))
		return a, tea.Batch(waitForOutput(msg.Output, a.runID), waitForRun(a.runs))

	case outputMsg:
		if msg.run != a.runID {
			// superseded run: keep reading so it can finish, show nothing
			if msg.Done {
				return a, nil
			}
			return a, waitForOutput(msg.output, msg.run)
		}
		if msg.Done {
			a.running = false
			if msg.ErrMsg != "" {
				a.outputLines = append(a.outputLines, errorStyle.Render("Error: "+msg.ErrMsg))
			}
			a.output.SetContent(strings.Join(a.outputLines, "\n"))
			a.output.GotoBottom()
			return a, nil
		}
		line := msg.Line
		if msg.IsErr {
			line = errorStyle.Render(line)
		}
		a.outputLines = append(a.outputLines, line)
		a.output.SetContent(strings.Join(a.outputLines, "\n"))
		a.output.GotoBottom()
		return a, waitForOutput(msg.output, msg.run)

	case tea.KeyMsg:
		a.err = ""
		a.status = ""

		if key.Matches(msg, a.keys.Quit) {
			return a, tea.Quit
		}
		if a.open {
			return a.updatePalette(msg)
		}
		return a.updateClosed(msg)
	}

	return a, nil
}

func (a *App) updatePalette(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Up):
		a.palette.MoveSelection(-1)

	case key.Matches(msg, a.keys.Down):
		a.palette.MoveSelection(1)

	case key.Matches(msg, a.keys.Run):
		if err := a.palette.ExecuteSelectedCommand(); err != nil {
			if errors.Is(err, palette.ErrInvalidIndex) {
				a.err = "Nothing to run"
			} else {
				a.err = err.Error()
			}
			return a, nil
		}
		if recent := a.palette.Recent(); len(recent) > 0 {
			a.status = "Ran " + recent[0].Title
		}

	case key.Matches(msg, a.keys.Clear):
		if a.searchInput.Value() != "" {
			a.searchInput.SetValue("")
			a.palette.SetSearchText("")
			return a, nil
		}
		a.open = false
		a.searchInput.Blur()

	default:
		var cmd tea.Cmd
		a.searchInput, cmd = a.searchInput.Update(msg)
		a.palette.SetSearchText(a.searchInput.Value())
		return a, cmd
	}

	return a, nil
}

func (a *App) updateClosed(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.QuitIdle):
		return a, tea.Quit

	case key.Matches(msg, a.keys.Reopen):
		a.reopen()
		return a, a.searchInput.Focus()

	default:
		var cmd tea.Cmd
		a.output, cmd = a.output.Update(msg)
		return a, cmd
	}
}

// reopen reloads the commands so enabled states are current. Load also
// clears the palette's search text.
func (a *App) reopen() {
	a.open = true
	a.searchInput.SetValue("")
	a.palette.Load()
}

func waitForRun(runs <-chan runner.Run) tea.Cmd {
	if runs == nil {
		return nil
	}
	return func() tea.Msg {
		run, ok := <-runs
		if !ok {
			return nil
		}
		return runMsg(run)
	}
}

func waitForOutput(ch <-chan runner.OutputMsg, run int) tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-ch
		if !ok {
			return outputMsg{OutputMsg: runner.OutputMsg{Done: true}, run: run}
		}
		return outputMsg{OutputMsg: msg, run: run, output: ch}
	}
}

func (a *App) View() string {
	if a.width == 0 {
		return "Loading..."
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("Command Palette"))
	b.WriteString("\n\n")

	if a.open {
		b.WriteString(searchStyle.Width(a.width - 4).Render(a.searchInput.View()))
		b.WriteString("\n")
		b.WriteString(a.renderRecent())
		b.WriteString("\n")

		listHeight := a.height - a.output.Height - 12
		if listHeight < 3 {
			listHeight = 3
		}
		b.WriteString(a.renderList(listHeight))
	} else {
		b.WriteString(mutedStyle.Render("Palette closed."))
		b.WriteString("\n")
	}

	// Output pane
	b.WriteString("\n")
	outputTitle := "OUTPUT"
	if a.running {
		outputTitle += " (running)"
	}
	b.WriteString(outputTitleStyle.Render(outputTitle))
	b.WriteString("\n")
	b.WriteString(borderStyle.Width(a.width - 4).Render(a.output.View()))
	b.WriteString("\n")

	// Status/error
	if a.err != "" {
		b.WriteString(errorStyle.Render("Error: " + a.err))
		b.WriteString("\n")
	}
	if a.status != "" {
		b.WriteString(successStyle.Render(a.status))
		b.WriteString("\n")
	}

	b.WriteString(a.renderHelp())

	return appStyle.Render(b.String())
}

func (a *App) renderRecent() string {
	recent := a.palette.Recent()
	if len(recent) == 0 {
		return ""
	}

	parts := []string{labelStyle.Render("Recent:")}
	used := runewidth.StringWidth("Recent:")
	for _, cmd := range recent {
		w := runewidth.StringWidth(cmd.Title) + 3
		if used+w > a.width-4 {
			break
		}
		used += w
		parts = append(parts, recentStyle.Render(cmd.Title))
	}
	return strings.Join(parts, " ") + "\n"
}

func (a *App) renderList(height int) string {
	if a.palette.Len() == 0 {
		var b strings.Builder
		b.WriteString(mutedStyle.Render("No matching commands."))
		b.WriteString("\n")
		if suggestions := a.palette.Suggestions(suggestionLimit); len(suggestions) > 0 {
			b.WriteString(labelStyle.Render("Did you mean:"))
			b.WriteString("\n")
			for _, cmd := range suggestions {
				b.WriteString(mutedStyle.Render("  " + cmd.Title + "  (" + cmd.Code + ")"))
				b.WriteString("\n")
			}
		}
		return b.String()
	}

	// each command takes two lines
	rows := max(height/2, 1)
	selected := a.palette.SelectedIndex()
	start := 0
	if selected >= rows {
		start = selected - rows + 1
	}
	end := min(start+rows, a.palette.Len())

	var lines []string
	for i := start; i < end; i++ {
		cmd, _ := a.palette.Row(i)
		lines = append(lines, a.renderRow(cmd, i == selected)...)
	}

	if hidden := a.palette.Len() - end; hidden > 0 {
		lines = append(lines, mutedStyle.Render(fmt.Sprintf("  … %d more", hidden)))
	}

	return strings.Join(lines, "\n") + "\n"
}

func (a *App) renderRow(cmd model.Command, selected bool) []string {
	prefix := "  "
	style := normalStyle
	if selected {
		prefix = "▸ "
		style = selectedStyle
	}
	if !cmd.Enabled {
		style = disabledStyle
	}

	category := "[" + cmd.Category + "] "
	shortcut := ""
	if cmd.Shortcut != "" {
		shortcut = "  " + cmd.Shortcut
	}

	titleWidth := a.width - 8 - runewidth.StringWidth(category) - runewidth.StringWidth(shortcut)
	name := prefix + categoryStyle.Render(category) + style.Render(truncate(cmd.Title, titleWidth)) + shortcutStyle.Render(shortcut)

	desc := cmd.Description
	if desc == "" {
		desc = cmd.Code
	}
	preview := descriptionStyle.Render("    " + truncate(desc, a.width-10))
	return []string{name, preview}
}

func (a *App) renderHelp() string {
	var bindings []key.Binding
	if a.open {
		bindings = []key.Binding{a.keys.Up, a.keys.Down, a.keys.Run, a.keys.Clear, a.keys.Quit}
	} else {
		bindings = []key.Binding{a.keys.Reopen, a.keys.QuitIdle}
	}

	var parts []string
	for _, k := range bindings {
		h := k.Help()
		parts = append(parts, helpKeyStyle.Render(h.Key)+" "+helpStyle.Render(h.Desc))
	}

	return strings.Join(parts, "  ")
}

func truncate(s string, max int) string {
	if max <= 3 {
		return ""
	}
	return runewidth.Truncate(s, max, "...")
}
