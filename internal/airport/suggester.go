package airport

import (
	"fmt"
	"sort"
	"sync"

	"github.com/cx-tal-miterani/flight-quote/shared/models"
)

// DefaultFields are the form inputs that get autocomplete
var DefaultFields = []string{"origem", "destino"}

type fieldState struct {
	text        string
	suggestions []models.Airport
}

// Suggester tracks autocomplete state for the inputs of one form. Each
// configured field keeps its typed text and current suggestion list; the
// airport list itself is shared.
type Suggester struct {
	mu     sync.Mutex
	list   *List
	fields map[string]*fieldState
}

// NewSuggester creates a suggester over list for the given fields
func NewSuggester(list *List, fields ...string) *Suggester {
	s := &Suggester{
		list:   list,
		fields: make(map[string]*fieldState),
	}
	for _, f := range fields {
		s.fields[f] = &fieldState{}
	}
	return s
}

// Configure enables autocomplete for a field. Configuring a field twice
// keeps its state.
func (s *Suggester) Configure(field string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.fields[field]; !ok {
		s.fields[field] = &fieldState{}
	}
}

// Fields returns the configured field names, sorted
func (s *Suggester) Fields() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	names := make([]string, 0, len(s.fields))
	for name := range s.fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// OnInput records the field's text and recomputes its suggestions
func (s *Suggester) OnInput(field, text string) ([]models.Airport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, ok := s.fields[field]
	if !ok {
		return nil, fmt.Errorf("field %q has no autocomplete", field)
	}
	state.text = text
	state.suggestions = s.list.Suggest(text)
	return state.suggestions, nil
}

// Suggestions returns the suggestions currently shown for a field
func (s *Suggester) Suggestions(field string) []models.Airport {
	s.mu.Lock()
	defer s.mu.Unlock()

	if state, ok := s.fields[field]; ok {
		return state.suggestions
	}
	return nil
}

// Text returns the field's current text
func (s *Suggester) Text(field string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if state, ok := s.fields[field]; ok {
		return state.text
	}
	return ""
}

// Select commits the suggestion at index: the field's text becomes
// "{city} ({code})" and its suggestions are cleared.
func (s *Suggester) Select(field string, index int) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, ok := s.fields[field]
	if !ok {
		return "", fmt.Errorf("field %q has no autocomplete", field)
	}
	if index < 0 || index >= len(state.suggestions) {
		return "", fmt.Errorf("no suggestion %d for field %q", index, field)
	}

	state.text = Label(state.suggestions[index])
	state.suggestions = nil
	return state.text, nil
}

// Dismiss handles a click anywhere on the form. Every field's suggestions
// are cleared except those of target, the field whose input or suggestion
// box was clicked. An empty target clears all of them. It returns the
// fields that were cleared.
func (s *Suggester) Dismiss(target string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	var cleared []string
	for name, state := range s.fields {
		if name == target || len(state.suggestions) == 0 {
			continue
		}
		state.suggestions = nil
		cleared = append(cleared, name)
	}
	sort.Strings(cleared)
	return cleared
}

// Refresh re-runs OnInput for every field with its current text, so that
// typed text is matched against airports added since.
func (s *Suggester) Refresh() map[string][]models.Airport {
	s.mu.Lock()
	defer s.mu.Unlock()

	refreshed := make(map[string][]models.Airport, len(s.fields))
	for name, state := range s.fields {
		state.suggestions = s.list.Suggest(state.text)
		refreshed[name] = state.suggestions
	}
	return refreshed
}
