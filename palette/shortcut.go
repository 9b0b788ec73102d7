package palette

import (
	"fmt"
	"strings"
)

// ShortcutFormatter renders the key sequences bound to an action for display.
// Implementations must be pure.
type ShortcutFormatter func(sequences []string) string

const sequenceSeparator = ", "

// ListFormat joins the bound sequences unchanged.
func ListFormat(sequences []string) string {
	return strings.Join(sequences, sequenceSeparator)
}

var modifierNames = map[string]map[string]string{
	"darwin": {
		"Ctrl":  "⌘",
		"Alt":   "⌥",
		"Shift": "⇧",
		"Meta":  "⌃",
	},
	"": {
		"Meta": "Super",
	},
}

// PlatformFormat returns a formatter that maps the neutral modifier names to
// the platform's own and spaces out the "+" joiner: "Ctrl+Shift+S" renders as
// "⌘ + ⇧ + S" on darwin.
func PlatformFormat(goos string) ShortcutFormatter {
	names, ok := modifierNames[goos]
	if !ok {
		names = modifierNames[""]
	}

	return func(sequences []string) string {
		formatted := make([]string, len(sequences))
		for i, seq := range sequences {
			formatted[i] = formatSequence(seq, names)
		}
		return strings.Join(formatted, sequenceSeparator)
	}
}

func formatSequence(seq string, names map[string]string) string {
	// "+" and "Ctrl++" bind the plus key itself.
	plusKey := seq == "+" || strings.HasSuffix(seq, "++")
	if plusKey {
		seq = strings.TrimSuffix(strings.TrimSuffix(seq, "+"), "+")
	}

	var tokens []string
	if seq != "" {
		tokens = strings.Split(seq, "+")
	}
	for i, tok := range tokens {
		if name, ok := names[tok]; ok {
			tokens[i] = name
		}
	}
	if plusKey {
		tokens = append(tokens, "+")
	}
	return strings.Join(tokens, " + ")
}

// FormatterByName resolves a configured formatter name.
func FormatterByName(name, goos string) (ShortcutFormatter, error) {
	switch name {
	case "", "list":
		return ListFormat, nil
	case "platform":
		return PlatformFormat(goos), nil
	}
	return nil, fmt.Errorf("unknown shortcut format %q", name)
}
