package quote

import (
	"strings"
	"testing"

	"github.com/cx-tal-miterani/flight-quote/shared/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleFields() models.Fields {
	return models.Fields{
		{Name: "origem", Value: "São Paulo"},
		{Name: "destino", Value: "Rio"},
		{Name: "data_ida", Value: "01/05/2024"},
		{Name: "saida_ida", Value: "08:00"},
		{Name: "paradas_ida", Value: "Voo direto"},
		{Name: "chegada_ida", Value: "09:05"},
		{Name: "data_volta", Value: "10/05/2024"},
		{Name: "saida_volta", Value: "18:00"},
		{Name: "paradas_volta", Value: "1 parada"},
		{Name: "chegada_volta", Value: "21:30"},
		{Name: "valor", Value: "500"},
		{Name: "bagagem", Value: BaggageText(true)},
	}
}

func TestRender_OneWayExample(t *testing.T) {
	values := models.Fields{
		{Name: "origem", Value: "São Paulo"},
		{Name: "destino", Value: "Rio"},
		{Name: "data_ida", Value: "2024-05-01"},
		{Name: "valor", Value: "500"},
	}

	text := Render(values, models.QuoteModeOneWay)

	assert.Contains(t, text, "São Paulo ➡️ Rio")
	assert.Contains(t, text, "R$ 500 (somente ida)")
	assert.Contains(t, text, "📅 IDA: 2024-05-01")
	assert.Contains(t, text, "{{saida_ida}}")
	assert.Contains(t, text, "{{bagagem}}")
}

func TestRender_ReplacesEveryOccurrence(t *testing.T) {
	text := Render(sampleFields(), models.QuoteModeRoundTrip)

	assert.Equal(t, 3, strings.Count(text, "São Paulo"))
	assert.Equal(t, 3, strings.Count(text, "Rio"))
	assert.Contains(t, text, "Rio ➡️ São Paulo")
	assert.Contains(t, text, "➡ Saída: 08:00h | Voo direto")
	assert.Contains(t, text, "➡ Chegada: 21:30h em São Paulo")
	assert.Contains(t, text, "R$ 500 (ida e volta)")
}

func TestRender_NoSuppliedPlaceholderRemains(t *testing.T) {
	for _, mode := range []models.QuoteMode{models.QuoteModeRoundTrip, models.QuoteModeOneWay} {
		t.Run(string(mode), func(t *testing.T) {
			values := sampleFields()
			text := Render(values, mode)
			for _, field := range values {
				assert.NotContains(t, text, "{{"+field.Name+"}}")
			}
			assert.NotContains(t, text, "{{")
		})
	}
}

func TestRender_Idempotent(t *testing.T) {
	values := sampleFields()
	first := Render(values, models.QuoteModeRoundTrip)
	second := Render(values, models.QuoteModeRoundTrip)
	assert.Equal(t, first, second)
}

func TestRender_OneWayHasNoReturnLeg(t *testing.T) {
	text := Render(sampleFields(), models.QuoteModeOneWay)

	assert.NotContains(t, text, "VOLTA")
	assert.NotContains(t, text, "10/05/2024")
	assert.NotContains(t, text, "21:30")
	assert.NotContains(t, text, "ida e volta")
	assert.Contains(t, text, "➡ Saída: 08:00 | Voo direto")
}

func TestRender_ValuesAreInsertedLiterally(t *testing.T) {
	values := models.Fields{
		{Name: "origem", Value: "<b>A&B</b>"},
		{Name: "destino", Value: "$& $1 {{origem}}"},
	}

	text := Render(values, models.QuoteModeOneWay)

	assert.Contains(t, text, "<b>A&B</b> ➡️ $& $1 {{origem}}")
}

func TestRender_LaterFieldsSeeEarlierValues(t *testing.T) {
	values := models.Fields{
		{Name: "origem", Value: "{{valor}}"},
		{Name: "valor", Value: "500"},
	}

	text := Render(values, models.QuoteModeOneWay)

	assert.Contains(t, text, "500 ➡️ {{destino}}")
}

func TestRender_EmptyValues(t *testing.T) {
	assert.Equal(t, Template(models.QuoteModeRoundTrip), Render(nil, models.QuoteModeRoundTrip))
	assert.Equal(t, Template(models.QuoteModeOneWay), Render(models.Fields{}, models.QuoteModeOneWay))
}

func TestPlaceholders(t *testing.T) {
	oneWay := Placeholders(models.QuoteModeOneWay)
	require.NotEmpty(t, oneWay)
	assert.Equal(t, "origem", oneWay[0])
	assert.NotContains(t, oneWay, "data_volta")
	assert.Contains(t, oneWay, FieldBaggage)

	roundTrip := Placeholders(models.QuoteModeRoundTrip)
	assert.Contains(t, roundTrip, "data_volta")
	assert.Contains(t, roundTrip, "chegada_volta")
	assert.Len(t, roundTrip, 12)
}

func TestBaggageText(t *testing.T) {
	assert.Equal(t, "Inclui bagagem de mão e bagagem despachada", BaggageText(true))
	assert.Equal(t, "Inclui somente bagagem de mão (sem bagagem despachada)", BaggageText(false))
}

func TestFormatDateBR(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "iso date", in: "2024-05-01", want: "01/05/2024"},
		{name: "empty", in: "", want: ""},
		{name: "already formatted", in: "01/05/2024", want: "01/05/2024"},
		{name: "partial", in: "2024-05", want: "2024-05"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatDateBR(tt.in))
		})
	}
}

func TestModeFor(t *testing.T) {
	assert.Equal(t, models.QuoteModeOneWay, ModeFor(true))
	assert.Equal(t, models.QuoteModeRoundTrip, ModeFor(false))
}
