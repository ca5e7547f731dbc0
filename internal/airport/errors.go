package airport

import "fmt"

// ValidationKind identifies why a manual airport entry was rejected
type ValidationKind string

const (
	KindEmptyField    ValidationKind = "EMPTY_FIELD"
	KindBadCode       ValidationKind = "BAD_CODE"
	KindDuplicateCode ValidationKind = "DUPLICATE_CODE"
)

// ValidationError is returned when an airport cannot be added
type ValidationError struct {
	Kind ValidationKind
	City string
	Code string
}

var (
	ErrEmptyField    = &ValidationError{Kind: KindEmptyField}
	ErrBadCode       = &ValidationError{Kind: KindBadCode}
	ErrDuplicateCode = &ValidationError{Kind: KindDuplicateCode}
)

func (e *ValidationError) Error() string {
	switch e.Kind {
	case KindEmptyField:
		return "city is required"
	case KindBadCode:
		return fmt.Sprintf("IATA code %q must have exactly 3 letters", e.Code)
	case KindDuplicateCode:
		return fmt.Sprintf("IATA code %s already exists", e.Code)
	}
	return string(e.Kind)
}

// Is matches any ValidationError of the same kind
func (e *ValidationError) Is(target error) bool {
	t, ok := target.(*ValidationError)
	return ok && t.Kind == e.Kind
}

// DatasetLoadError is returned when the seed dataset cannot be loaded
type DatasetLoadError struct {
	Source string
	Err    error
}

func (e *DatasetLoadError) Error() string {
	return fmt.Sprintf("failed to load airports from %s: %v", e.Source, e.Err)
}

func (e *DatasetLoadError) Unwrap() error {
	return e.Err
}
