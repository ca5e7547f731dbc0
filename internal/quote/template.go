package quote

import (
	"regexp"

	"github.com/cx-tal-miterani/flight-quote/shared/models"
)

const roundTripTemplate = `✈️ Segue sua cotação especial para a sua próxima viagem:

{{origem}} ➡️ {{destino}}
📅 IDA: {{data_ida}}
➡ Saída: {{saida_ida}}h | {{paradas_ida}}
➡ Chegada: {{chegada_ida}}h em {{destino}}

{{destino}} ➡️ {{origem}}
📅 VOLTA: {{data_volta}} 
➡ Saída: {{saida_volta}}h | {{paradas_volta}}
➡ Chegada: {{chegada_volta}}h em {{origem}}

💰 Valor: R$ {{valor}} (ida e volta)
🧳 Bagagem: {{bagagem}}

Valores sujeitos à disponibilidade e alteração sem aviso prévio.
`

const oneWayTemplate = `✈️ Segue sua cotação especial para a sua próxima viagem:

{{origem}} ➡️ {{destino}}
📅 IDA: {{data_ida}}
➡ Saída: {{saida_ida}} | {{paradas_ida}}
➡ Chegada: {{chegada_ida}} em {{destino}}

💰 Valor: R$ {{valor}} (somente ida)
🧳 Bagagem: {{bagagem}}

Valores sujeitos à disponibilidade e alteração sem aviso prévio.
`

var placeholderRegex = regexp.MustCompile(`\{\{([a-zA-Z0-9_]+)\}\}`)

// Template returns the template text for a mode. Anything other than
// one-way selects the round-trip template.
func Template(mode models.QuoteMode) string {
	if mode == models.QuoteModeOneWay {
		return oneWayTemplate
	}
	return roundTripTemplate
}

// Placeholders lists the placeholder names of a template in order of first appearance
func Placeholders(mode models.QuoteMode) []string {
	seen := make(map[string]bool)
	var names []string
	for _, m := range placeholderRegex.FindAllStringSubmatch(Template(mode), -1) {
		if !seen[m[1]] {
			seen[m[1]] = true
			names = append(names, m[1])
		}
	}
	return names
}

// Templates describes both templates
func Templates() []models.TemplateInfo {
	modes := []models.QuoteMode{models.QuoteModeRoundTrip, models.QuoteModeOneWay}
	infos := make([]models.TemplateInfo, len(modes))
	for i, mode := range modes {
		infos[i] = models.TemplateInfo{
			Mode:         mode,
			Text:         Template(mode),
			Placeholders: Placeholders(mode),
		}
	}
	return infos
}
