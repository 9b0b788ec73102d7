package palette

import (
	"errors"
	"io"
	"log"

	"cmdpalette/model"
)

type fakeRegistry struct {
	actions []model.Action
	states  map[string]model.ActionState
}

func (r *fakeRegistry) ActionList() []model.Action {
	return r.actions
}

func (r *fakeRegistry) ActionState(code string) (model.ActionState, bool) {
	s, ok := r.states[code]
	return s, ok
}

type fakeShortcuts map[string][]string

func (s fakeShortcuts) Shortcut(code string) []string {
	return s[code]
}

type fakeDispatcher struct {
	dispatched []string
}

func (d *fakeDispatcher) Dispatch(code string) {
	d.dispatched = append(d.dispatched, code)
}

type memStore struct {
	lists    map[string][]string
	writes   int
	failRead bool
	failSave bool
}

func newMemStore() *memStore {
	return &memStore{lists: make(map[string][]string)}
}

func (s *memStore) ReadStringList(group, key string) ([]string, error) {
	if s.failRead {
		return nil, errors.New("read failed")
	}
	return s.lists[group+"/"+key], nil
}

func (s *memStore) WriteStringList(group, key string, values []string) error {
	s.writes++
	if s.failSave {
		return errors.New("write failed")
	}
	s.lists[group+"/"+key] = append([]string(nil), values...)
	return nil
}

func action(code, title string) model.Action {
	return model.Action{Code: code, Title: title, Valid: true}
}

func quietLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

type fixture struct {
	registry   *fakeRegistry
	shortcuts  fakeShortcuts
	dispatcher *fakeDispatcher
	store      *memStore
	palette    *Palette
	events     []Event
}

func newFixture(actions []model.Action, opts ...Option) *fixture {
	f := &fixture{
		registry:   &fakeRegistry{actions: actions, states: map[string]model.ActionState{}},
		shortcuts:  fakeShortcuts{},
		dispatcher: &fakeDispatcher{},
		store:      newMemStore(),
	}
	opts = append([]Option{WithLogger(quietLogger())}, opts...)
	f.palette = New(f.registry, f.shortcuts, f.dispatcher, f.store, opts...)
	f.palette.Subscribe(func(e Event) {
		f.events = append(f.events, e)
	})
	return f
}

func (f *fixture) codes() []string {
	var out []string
	for _, c := range f.palette.Commands() {
		out = append(out, c.Code)
	}
	return out
}

func recentCodes(p *Palette) []string {
	var out []string
	for _, c := range p.Recent() {
		out = append(out, c.Code)
	}
	return out
}

func sampleActions() []model.Action {
	return []model.Action{
		action("file-open", "Open"),
		action("file-save", "Save"),
		action("edit-undo", "Undo"),
	}
}
