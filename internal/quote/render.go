package quote

import (
	"strings"

	"github.com/cx-tal-miterani/flight-quote/shared/models"
)

const (
	BaggageChecked   = "Inclui bagagem de mão e bagagem despachada"
	BaggageCarryOnly = "Inclui somente bagagem de mão (sem bagagem despachada)"
)

// FieldBaggage is the field filled from the checked-baggage toggle
const FieldBaggage = "bagagem"

// DefaultDateFields are the fields entered as ISO dates on the form
var DefaultDateFields = []string{"data_ida", "data_volta"}

// Render fills the template for mode with values. Each field gets one pass
// over the whole text, in field order, replacing every {{name}} with the raw
// value. Placeholders without a value are left as they are.
func Render(values models.Fields, mode models.QuoteMode) string {
	text := Template(mode)
	for _, field := range values {
		text = strings.ReplaceAll(text, "{{"+field.Name+"}}", field.Value)
	}
	return text
}

// BaggageText returns the bagagem field value for the checked-baggage toggle
func BaggageText(checked bool) string {
	if checked {
		return BaggageChecked
	}
	return BaggageCarryOnly
}

// FormatDateBR converts yyyy-mm-dd to dd/mm/yyyy. Values that are not
// three dash-separated parts are returned unchanged.
func FormatDateBR(iso string) string {
	if iso == "" {
		return ""
	}
	parts := strings.Split(iso, "-")
	if len(parts) != 3 {
		return iso
	}
	return parts[2] + "/" + parts[1] + "/" + parts[0]
}

// ModeFor maps the one-way toggle to a template mode
func ModeFor(oneWay bool) models.QuoteMode {
	if oneWay {
		return models.QuoteModeOneWay
	}
	return models.QuoteModeRoundTrip
}
