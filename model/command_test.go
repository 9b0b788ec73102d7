package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCommandField(t *testing.T) {
	t.Parallel()

	cmd := Command{
		Code:        "file-open",
		Title:       "Open",
		Description: "Open a score",
		Category:    "File",
		Shortcut:    "Ctrl+O",
		Enabled:     true,
	}

	assert.Equal(t, "file-open", cmd.Field(RoleCode))
	assert.Equal(t, "Open", cmd.Field(RoleTitle))
	assert.Equal(t, "Open a score", cmd.Field(RoleDescription))
	assert.Equal(t, "File", cmd.Field(RoleCategory))
	assert.Equal(t, "Ctrl+O", cmd.Field(RoleShortcut))
	assert.Equal(t, true, cmd.Field(RoleEnabled))
	assert.Nil(t, cmd.Field(Role(-1)))
}

func TestRoleNamesCoverEveryRole(t *testing.T) {
	t.Parallel()

	for role := RoleCode; role <= RoleEnabled; role++ {
		assert.NotEmpty(t, RoleNames[role], "role %d", role)
	}
}
