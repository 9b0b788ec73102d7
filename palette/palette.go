// Package palette implements the command palette list: it loads commands from
// an action registry, filters them against a search string, tracks a selection
// cursor and dispatches the chosen command while keeping a persisted list of
// recently used commands.
//
// A Palette is not safe for concurrent use. Every operation runs to completion
// on the caller's goroutine.
package palette

import (
	"errors"
	"log"

	"cmdpalette/model"
)

const (
	// DefaultMaxFiltered caps the filtered set.
	DefaultMaxFiltered = 100
	// DefaultMaxRecent is the capacity of the recent commands list.
	DefaultMaxRecent = 10

	SettingsGroup     = "CommandPalette"
	RecentCommandsKey = "RecentCommands"
)

var (
	ErrInvalidIndex   = errors.New("invalid command index")
	ErrUnknownCommand = errors.New("unknown command")
)

// ActionRegistry enumerates the host's actions and their state.
type ActionRegistry interface {
	ActionList() []model.Action
	// ActionState reports ok=false when the registry has no explicit state.
	ActionState(code string) (model.ActionState, bool)
}

// ShortcutRegistry resolves the key sequences bound to an action.
type ShortcutRegistry interface {
	Shortcut(code string) []string
}

// Dispatcher executes an action by code. Dispatch is fire-and-forget.
type Dispatcher interface {
	Dispatch(code string)
}

// SettingsStore is durable key-value storage for string lists.
type SettingsStore interface {
	ReadStringList(group, key string) ([]string, error)
	WriteStringList(group, key string, values []string) error
}

// Option configures a Palette.
type Option func(*Palette)

func WithShortcutFormatter(f ShortcutFormatter) Option {
	return func(p *Palette) {
		if f != nil {
			p.formatShortcut = f
		}
	}
}

func WithMaxRecent(n int) Option {
	return func(p *Palette) {
		if n > 0 {
			p.maxRecent = n
		}
	}
}

func WithMaxFiltered(n int) Option {
	return func(p *Palette) {
		if n > 0 {
			p.maxFiltered = n
		}
	}
}

func WithLogger(l *log.Logger) Option {
	return func(p *Palette) {
		if l != nil {
			p.logger = l
		}
	}
}

type Palette struct {
	actions    ActionRegistry
	shortcuts  ShortcutRegistry
	dispatcher Dispatcher
	store      SettingsStore

	formatShortcut ShortcutFormatter
	maxRecent      int
	maxFiltered    int
	logger         *log.Logger

	all      []model.Command
	filtered []model.Command
	recent   []model.Command

	searchText string
	selected   int

	listeners []listener
	nextID    int
}

// New returns an unloaded palette. The collaborators are owned by the caller
// and must outlive the palette. store may be nil, in which case the recent
// list lives only in memory.
func New(actions ActionRegistry, shortcuts ShortcutRegistry, dispatcher Dispatcher, store SettingsStore, opts ...Option) *Palette {
	p := &Palette{
		actions:        actions,
		shortcuts:      shortcuts,
		dispatcher:     dispatcher,
		store:          store,
		formatShortcut: ListFormat,
		maxRecent:      DefaultMaxRecent,
		maxFiltered:    DefaultMaxFiltered,
		logger:         log.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Load replaces the full command set from the action registry, rehydrates the
// recent list and clears the search text before recomputing the filtered set.
func (p *Palette) Load() {
	actions := p.actions.ActionList()
	all := make([]model.Command, 0, len(actions))

	for _, a := range actions {
		if !a.Valid {
			continue
		}
		title := stripMnemonic(a.Title)
		if title == "" {
			continue
		}

		cmd := model.Command{
			Code:        a.Code,
			Title:       title,
			Description: a.Description,
			Category:    Category(a.Code),
			Enabled:     true,
		}
		if p.shortcuts != nil {
			cmd.Shortcut = p.formatShortcut(p.shortcuts.Shortcut(a.Code))
		}
		if state, ok := p.actions.ActionState(a.Code); ok {
			cmd.Enabled = state.Enabled
		}
		all = append(all, cmd)
	}

	p.all = all
	p.logger.Printf("palette: loaded %d commands", len(all))

	p.loadRecent()
	p.emit(RecentChanged)

	if p.searchText != "" {
		p.searchText = ""
		p.emit(SearchTextChanged)
	}
	p.updateFiltered()
}

func (p *Palette) SearchText() string {
	return p.searchText
}

// SetSearchText stores text and recomputes the filtered set. Unchanged text is
// a no-op.
func (p *Palette) SetSearchText(text string) {
	if p.searchText == text {
		return
	}
	p.searchText = text
	p.emit(SearchTextChanged)
	p.updateFiltered()
}

// SelectedIndex returns the selection cursor. It is 0 when the filtered set is
// empty, where it addresses no row.
func (p *Palette) SelectedIndex() int {
	return p.selected
}

// SetSelectedIndex moves the cursor, clamping index into the filtered set.
// It is ignored when the filtered set is empty.
func (p *Palette) SetSelectedIndex(index int) {
	if index == p.selected || len(p.filtered) == 0 {
		return
	}
	clamped := min(max(index, 0), len(p.filtered)-1)
	if clamped == p.selected {
		return
	}
	p.selected = clamped
	p.emit(SelectionChanged)
}

// MoveSelection moves the cursor by delta rows.
func (p *Palette) MoveSelection(delta int) {
	p.SetSelectedIndex(p.selected + delta)
}

// Selected returns the command under the cursor.
func (p *Palette) Selected() (model.Command, bool) {
	return p.Row(p.selected)
}

// Len is the number of rows in the filtered set.
func (p *Palette) Len() int {
	return len(p.filtered)
}

// Row returns the filtered command at index.
func (p *Palette) Row(index int) (model.Command, bool) {
	if index < 0 || index >= len(p.filtered) {
		return model.Command{}, false
	}
	return p.filtered[index], true
}

// Data returns one field of a row, or nil when index is out of range.
func (p *Palette) Data(index int, role model.Role) any {
	cmd, ok := p.Row(index)
	if !ok {
		return nil
	}
	return cmd.Field(role)
}

// Commands returns a copy of the filtered set.
func (p *Palette) Commands() []model.Command {
	return append([]model.Command(nil), p.filtered...)
}

// AllCommands returns a copy of the full set.
func (p *Palette) AllCommands() []model.Command {
	return append([]model.Command(nil), p.all...)
}

// ExecuteCommand dispatches the filtered command at index, records it as the
// most recent command and requests the view to close.
func (p *Palette) ExecuteCommand(index int) error {
	cmd, ok := p.Row(index)
	if !ok {
		p.logger.Printf("palette: invalid command index %d (rows: %d)", index, len(p.filtered))
		return ErrInvalidIndex
	}

	p.logger.Printf("palette: executing %s", cmd.Code)
	p.dispatcher.Dispatch(cmd.Code)

	p.pushRecent(cmd)
	p.saveRecent()
	p.emit(RecentChanged)
	p.emit(CloseRequested)
	return nil
}

func (p *Palette) ExecuteSelectedCommand() error {
	return p.ExecuteCommand(p.selected)
}

// ExecuteCommandByCode executes the first filtered command with the given code.
func (p *Palette) ExecuteCommandByCode(code string) error {
	for i, cmd := range p.filtered {
		if cmd.Code == code {
			return p.ExecuteCommand(i)
		}
	}
	return ErrUnknownCommand
}
