package palette

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListFormat(t *testing.T) {
	t.Parallel()

	assert.Empty(t, ListFormat(nil))
	assert.Equal(t, "Ctrl+O", ListFormat([]string{"Ctrl+O"}))
	assert.Equal(t, "Ctrl+Z, Alt+Backspace", ListFormat([]string{"Ctrl+Z", "Alt+Backspace"}))
}

func TestPlatformFormat(t *testing.T) {
	t.Parallel()

	mac := PlatformFormat("darwin")
	assert.Equal(t, "⌘ + ⇧ + S", mac([]string{"Ctrl+Shift+S"}))
	assert.Equal(t, "⌥ + N, ⌃ + A", mac([]string{"Alt+N", "Meta+A"}))
	assert.Equal(t, "⌘ + +", mac([]string{"Ctrl++"}))
	assert.Empty(t, mac(nil))

	linux := PlatformFormat("linux")
	assert.Equal(t, "Ctrl + Shift + S", linux([]string{"Ctrl+Shift+S"}))
	assert.Equal(t, "Super + Space", linux([]string{"Meta+Space"}))
	assert.Equal(t, "N", linux([]string{"N"}))
	assert.Equal(t, "+", linux([]string{"++"}))
	assert.Equal(t, "+", linux([]string{"+"}))
	assert.Equal(t, "+, Ctrl + +", linux([]string{"+", "Ctrl++"}))
	assert.Equal(t, "+", mac([]string{"+"}))
}

func TestFormatterByName(t *testing.T) {
	t.Parallel()

	f, err := FormatterByName("", "linux")
	require.NoError(t, err)
	assert.Equal(t, "Ctrl+S", f([]string{"Ctrl+S"}))

	f, err = FormatterByName("platform", "windows")
	require.NoError(t, err)
	assert.Equal(t, "Ctrl + S", f([]string{"Ctrl+S"}))

	_, err = FormatterByName("fancy", "linux")
	assert.Error(t, err)
}
