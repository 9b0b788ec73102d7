package palette

import (
	"fmt"
	"testing"

	"cmdpalette/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecentRehydratesOnLoad(t *testing.T) {
	t.Parallel()

	f := newFixture(sampleActions())
	f.store.lists["CommandPalette/RecentCommands"] = []string{"edit-undo", "gone-action", "file-open", "edit-undo"}
	f.palette.Load()

	assert.Equal(t, []string{"edit-undo", "file-open"}, recentCodes(f.palette))
	assert.Contains(t, f.events, RecentChanged)
}

func TestRecentReadFailureStartsEmpty(t *testing.T) {
	t.Parallel()

	f := newFixture(sampleActions())
	f.store.failRead = true
	f.palette.Load()

	assert.Empty(t, f.palette.Recent())
	assert.Equal(t, 3, f.palette.Len())
}

func TestRecentCapacity(t *testing.T) {
	t.Parallel()

	var actions []model.Action
	for i := range 15 {
		actions = append(actions, action(fmt.Sprintf("cmd-%02d", i), fmt.Sprintf("Command %d", i)))
	}
	f := newFixture(actions, WithMaxRecent(4))
	f.palette.Load()

	for i := range 15 {
		require.NoError(t, f.palette.ExecuteCommand(i))
	}
	assert.Equal(t, []string{"cmd-14", "cmd-13", "cmd-12", "cmd-11"}, recentCodes(f.palette))

	require.NoError(t, f.palette.ExecuteCommand(12))
	assert.Equal(t, []string{"cmd-12", "cmd-14", "cmd-13", "cmd-11"}, recentCodes(f.palette))
	assert.Equal(t, recentCodes(f.palette), f.store.lists["CommandPalette/RecentCommands"])
}

func TestRecentSurvivesReload(t *testing.T) {
	t.Parallel()

	f := newFixture(sampleActions())
	f.palette.Load()
	require.NoError(t, f.palette.ExecuteCommandByCode("file-save"))

	next := New(f.registry, f.shortcuts, f.dispatcher, f.store, WithLogger(quietLogger()))
	next.Load()
	assert.Equal(t, []string{"file-save"}, recentCodes(next))
}

func TestRecentCapacityAppliesToStoredList(t *testing.T) {
	t.Parallel()

	f := newFixture(sampleActions(), WithMaxRecent(2))
	f.store.lists["CommandPalette/RecentCommands"] = []string{"file-open", "file-save", "edit-undo"}
	f.palette.Load()

	assert.Equal(t, []string{"file-open", "file-save"}, recentCodes(f.palette))
}
