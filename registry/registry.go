// Package registry provides the action and shortcut registries the palette
// reads from, backed by a TOML action catalog.
package registry

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"cmdpalette/model"

	"github.com/pelletier/go-toml/v2"
)

//go:embed default.toml
var defaultCatalog []byte

var ErrDuplicateCode = errors.New("duplicate action code")

// ActionConfig is one [[action]] table of a catalog file.
type ActionConfig struct {
	Code        string   `toml:"code"`
	Title       string   `toml:"title"`
	Description string   `toml:"description"`
	Shortcuts   []string `toml:"shortcuts"`
	Enabled     *bool    `toml:"enabled"`
	Exec        string   `toml:"exec"`
}

type catalogFile struct {
	Actions []ActionConfig `toml:"action"`
}

// Catalog is an in-memory action registry. It serves both the action and the
// shortcut registry contracts.
type Catalog struct {
	actions []ActionConfig
	byCode  map[string]int
}

// Default returns the built-in catalog.
func Default() *Catalog {
	c, err := Parse(defaultCatalog)
	if err != nil {
		panic(fmt.Sprintf("registry: built-in catalog: %v", err))
	}
	return c
}

// Load reads a catalog file.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Parse decodes a TOML catalog. Action codes must be unique.
func Parse(data []byte) (*Catalog, error) {
	var file catalogFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	return New(file.Actions)
}

// New builds a catalog from action definitions in enumeration order.
func New(actions []ActionConfig) (*Catalog, error) {
	c := &Catalog{
		actions: actions,
		byCode:  make(map[string]int, len(actions)),
	}
	for i, a := range actions {
		if a.Code == "" {
			continue
		}
		if _, dup := c.byCode[a.Code]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateCode, a.Code)
		}
		c.byCode[a.Code] = i
	}
	return c, nil
}

// ActionList returns every action in catalog order. Entries without a code
// are reported as invalid.
func (c *Catalog) ActionList() []model.Action {
	out := make([]model.Action, len(c.actions))
	for i, a := range c.actions {
		out[i] = model.Action{
			Code:        a.Code,
			Title:       a.Title,
			Description: a.Description,
			Valid:       a.Code != "",
		}
	}
	return out
}

// ActionState reports the configured state. Actions without an explicit
// enabled key have no state.
func (c *Catalog) ActionState(code string) (model.ActionState, bool) {
	a, ok := c.lookup(code)
	if !ok || a.Enabled == nil {
		return model.ActionState{}, false
	}
	return model.ActionState{Enabled: *a.Enabled}, true
}

func (c *Catalog) Shortcut(code string) []string {
	a, ok := c.lookup(code)
	if !ok {
		return nil
	}
	return a.Shortcuts
}

// Exec returns the shell command bound to an action, if any.
func (c *Catalog) Exec(code string) (string, bool) {
	a, ok := c.lookup(code)
	if !ok || a.Exec == "" {
		return "", false
	}
	return a.Exec, true
}

func (c *Catalog) lookup(code string) (ActionConfig, bool) {
	i, ok := c.byCode[code]
	if !ok {
		return ActionConfig{}, false
	}
	return c.actions[i], true
}
