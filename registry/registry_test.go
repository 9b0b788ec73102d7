package registry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCatalog = `
[[action]]
code = "file-open"
title = "&Open"
description = "Open a score"
shortcuts = ["Ctrl+O"]

[[action]]
code = "edit-paste"
title = "Paste"
enabled = false
exec = "echo {{code}}"

[[action]]
title = "No code"
`

func TestParse(t *testing.T) {
	t.Parallel()

	c, err := Parse([]byte(sampleCatalog))
	require.NoError(t, err)

	actions := c.ActionList()
	require.Len(t, actions, 3)
	assert.Equal(t, "file-open", actions[0].Code)
	assert.Equal(t, "&Open", actions[0].Title)
	assert.Equal(t, "Open a score", actions[0].Description)
	assert.True(t, actions[0].Valid)
	assert.False(t, actions[2].Valid)

	assert.Equal(t, []string{"Ctrl+O"}, c.Shortcut("file-open"))
	assert.Nil(t, c.Shortcut("edit-paste"))
	assert.Nil(t, c.Shortcut("missing"))
}

func TestActionState(t *testing.T) {
	t.Parallel()

	c, err := Parse([]byte(sampleCatalog))
	require.NoError(t, err)

	_, ok := c.ActionState("file-open")
	assert.False(t, ok, "no explicit state")

	state, ok := c.ActionState("edit-paste")
	require.True(t, ok)
	assert.False(t, state.Enabled)

	_, ok = c.ActionState("missing")
	assert.False(t, ok)
}

func TestExec(t *testing.T) {
	t.Parallel()

	c, err := Parse([]byte(sampleCatalog))
	require.NoError(t, err)

	cmd, ok := c.Exec("edit-paste")
	require.True(t, ok)
	assert.Equal(t, "echo {{code}}", cmd)

	_, ok = c.Exec("file-open")
	assert.False(t, ok)
}

func TestParseRejectsDuplicates(t *testing.T) {
	t.Parallel()

	_, err := Parse([]byte(`
[[action]]
code = "a-b"
title = "One"

[[action]]
code = "a-b"
title = "Two"
`))
	assert.ErrorIs(t, err, ErrDuplicateCode)
}

func TestParseInvalidToml(t *testing.T) {
	t.Parallel()

	_, err := Parse([]byte("[[action]\ncode = "))
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "actions.toml")
	require.NoError(t, os.WriteFile(path, []byte(sampleCatalog), 0o644))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, c.ActionList(), 3)

	_, err = Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestDefaultCatalog(t *testing.T) {
	t.Parallel()

	c := Default()
	actions := c.ActionList()
	require.NotEmpty(t, actions)
	for _, a := range actions {
		assert.True(t, a.Valid, a.Code)
		assert.NotEmpty(t, a.Title, a.Code)
	}
	assert.Equal(t, []string{"Ctrl+Shift+Z", "Ctrl+Y"}, c.Shortcut("edit-redo"))
}
