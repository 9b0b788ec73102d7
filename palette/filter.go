package palette

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"cmdpalette/model"

	"github.com/sahilm/fuzzy"
	"golang.org/x/text/cases"
)

const (
	categorySeparator = "-"
	// OtherCategory is used for codes without a category prefix.
	OtherCategory = "Other"
)

// Category derives a display category from an action code: the part before
// the first separator with its first rune upper-cased ("file-open" -> "File").
// Codes without a separator, or with nothing before it ("-open"), get
// OtherCategory rather than an empty category.
func Category(code string) string {
	prefix, _, found := strings.Cut(code, categorySeparator)
	if !found || prefix == "" {
		return OtherCategory
	}
	r, size := utf8.DecodeRuneInString(prefix)
	return string(unicode.ToUpper(r)) + prefix[size:]
}

// stripMnemonic removes accelerator markers from a title. "&&" is a literal
// ampersand.
func stripMnemonic(title string) string {
	if !strings.Contains(title, "&") {
		return title
	}
	var b strings.Builder
	for i := 0; i < len(title); i++ {
		if title[i] != '&' {
			b.WriteByte(title[i])
			continue
		}
		if i+1 < len(title) && title[i+1] == '&' {
			b.WriteByte('&')
			i++
		}
	}
	return b.String()
}

// Matches reports whether needle is a case-insensitive substring of any of
// the command's searchable fields. An empty needle matches everything.
func Matches(cmd model.Command, needle string) bool {
	if needle == "" {
		return true
	}
	fold := cases.Fold()
	needle = fold.String(needle)
	for _, field := range []string{cmd.Title, cmd.Description, cmd.Category, cmd.Code} {
		if strings.Contains(fold.String(field), needle) {
			return true
		}
	}
	return false
}

// filterCommands applies the search filter, moves enabled commands ahead of
// disabled ones without reordering within either group and caps the result.
func filterCommands(all []model.Command, search string, limit int) []model.Command {
	out := make([]model.Command, 0, len(all))
	for _, cmd := range all {
		if Matches(cmd, search) {
			out = append(out, cmd)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Enabled && !out[j].Enabled
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

func (p *Palette) updateFiltered() {
	p.filtered = filterCommands(p.all, p.searchText, p.maxFiltered)
	p.selected = 0

	p.emit(CommandsChanged)
	p.emit(SelectionChanged)

	p.logger.Printf("palette: filtered to %d commands (search: %q)", len(p.filtered), p.searchText)
}

// Suggestions returns up to limit fuzzy title matches from the full set when
// the current search matched nothing. They are not rows of the palette.
func (p *Palette) Suggestions(limit int) []model.Command {
	if p.searchText == "" || len(p.filtered) > 0 || limit <= 0 {
		return nil
	}

	titles := make([]string, len(p.all))
	for i, cmd := range p.all {
		titles[i] = cmd.Title
	}

	matches := fuzzy.Find(p.searchText, titles)
	if len(matches) > limit {
		matches = matches[:limit]
	}
	out := make([]model.Command, len(matches))
	for i, m := range matches {
		out[i] = p.all[m.Index]
	}
	return out
}
