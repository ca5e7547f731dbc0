package airport

import (
	"strings"
	"sync"

	"github.com/cx-tal-miterani/flight-quote/shared/models"
)

// MaxSuggestions is the most suggestions returned for one input
const MaxSuggestions = 5

// List is the ordered set of airports known to the suggester. The seed
// dataset comes first, followed by manually added airports. Additions are
// only taken back by Remove when they could not be persisted.
type List struct {
	mu     sync.RWMutex
	seed   []models.Airport
	added  []models.Airport
	seeded bool
}

// NewList creates an empty list
func NewList() *List {
	return &List{}
}

// NormalizeCode trims and upper-cases an IATA code
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Label formats an airport the way a committed suggestion is displayed
func Label(a models.Airport) string {
	return a.City + " (" + a.Code + ")"
}

// Seed replaces the seed portion of the list. Duplicate codes inside the
// seed are kept, and so are previously added airports: an addition whose
// code now also appears in the seed stays in the list and is returned.
func (l *List) Seed(airports []models.Airport) []models.Airport {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.seed = append([]models.Airport(nil), airports...)
	l.seeded = true

	codes := make(map[string]bool, len(l.seed))
	for _, a := range l.seed {
		codes[strings.ToUpper(a.Code)] = true
	}

	var shadowed []models.Airport
	for _, a := range l.added {
		if codes[a.Code] {
			shadowed = append(shadowed, a)
		}
	}
	return shadowed
}

// Seeded reports whether Seed has been called
func (l *List) Seeded() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.seeded
}

// Validate checks a manual entry without adding it and returns the
// normalized airport.
func (l *List) Validate(city, code string) (models.Airport, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.validate(city, code)
}

func (l *List) validate(city, code string) (models.Airport, error) {
	a := models.Airport{City: strings.TrimSpace(city), Code: NormalizeCode(code)}

	if a.City == "" {
		return a, &ValidationError{Kind: KindEmptyField, City: a.City, Code: a.Code}
	}
	if len([]rune(a.Code)) != 3 {
		return a, &ValidationError{Kind: KindBadCode, City: a.City, Code: a.Code}
	}
	if l.hasCode(a.Code) {
		return a, &ValidationError{Kind: KindDuplicateCode, City: a.City, Code: a.Code}
	}
	return a, nil
}

func (l *List) hasCode(code string) bool {
	for _, a := range l.seed {
		if strings.ToUpper(a.Code) == code {
			return true
		}
	}
	for _, a := range l.added {
		if a.Code == code {
			return true
		}
	}
	return false
}

// Add validates and appends a manual entry
func (l *List) Add(city, code string) (models.Airport, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	a, err := l.validate(city, code)
	if err != nil {
		return a, err
	}
	l.added = append(l.added, a)
	return a, nil
}

// Remove takes back a manual entry by code, undoing an Add whose
// persistence failed. Seed airports are never removed.
func (l *List) Remove(code string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	code = NormalizeCode(code)
	for i := len(l.added) - 1; i >= 0; i-- {
		if l.added[i].Code == code {
			l.added = append(l.added[:i], l.added[i+1:]...)
			return true
		}
	}
	return false
}

// All returns a copy of the list in order
func (l *List) All() []models.Airport {
	l.mu.RLock()
	defer l.mu.RUnlock()

	all := make([]models.Airport, 0, len(l.seed)+len(l.added))
	all = append(all, l.seed...)
	return append(all, l.added...)
}

// Len returns the number of airports in the list
func (l *List) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.seed) + len(l.added)
}

// Suggest returns the first MaxSuggestions airports, in list order, whose
// city or code contains text, ignoring case. Empty text matches nothing.
func (l *List) Suggest(text string) []models.Airport {
	suggestions := []models.Airport{}
	if text == "" {
		return suggestions
	}
	term := strings.ToLower(text)

	l.mu.RLock()
	defer l.mu.RUnlock()

	for _, part := range [][]models.Airport{l.seed, l.added} {
		for _, a := range part {
			if len(suggestions) == MaxSuggestions {
				return suggestions
			}
			if Matches(a, term) {
				suggestions = append(suggestions, a)
			}
		}
	}
	return suggestions
}

// Matches reports whether the lower-cased term occurs in the airport's
// city or code
func Matches(a models.Airport, term string) bool {
	return strings.Contains(strings.ToLower(a.City), term) ||
		strings.Contains(strings.ToLower(a.Code), term)
}
