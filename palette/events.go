package palette

import "slices"

// Event is a change notification emitted by a Palette.
type Event int

const (
	CommandsChanged Event = iota
	SelectionChanged
	SearchTextChanged
	RecentChanged
	CloseRequested
)

func (e Event) String() string {
	switch e {
	case CommandsChanged:
		return "commands-changed"
	case SelectionChanged:
		return "selection-changed"
	case SearchTextChanged:
		return "search-text-changed"
	case RecentChanged:
		return "recent-commands-changed"
	case CloseRequested:
		return "close-requested"
	}
	return "unknown"
}

type listener struct {
	id int
	fn func(Event)
}

// Subscribe registers fn for every event and returns a function that removes
// it. Listeners run synchronously in registration order.
func (p *Palette) Subscribe(fn func(Event)) func() {
	id := p.nextID
	p.nextID++
	p.listeners = append(p.listeners, listener{id: id, fn: fn})
	return func() {
		for i, l := range p.listeners {
			if l.id == id {
				p.listeners = append(p.listeners[:i], p.listeners[i+1:]...)
				return
			}
		}
	}
}

func (p *Palette) emit(e Event) {
	for _, l := range slices.Clone(p.listeners) {
		l.fn(e)
	}
}
