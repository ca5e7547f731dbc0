package models

// Airport represents an airport offered by the autocomplete
type Airport struct {
	City string `json:"city"`
	Code string `json:"code"` // 3-letter IATA code, upper case
}

// AirportRecord is the shape of one entry in the seed dataset
type AirportRecord struct {
	Cidade string `json:"Cidade" csv:"Cidade"`
	IATA   string `json:"IATA" csv:"IATA"`
}

// Airport converts a dataset record as-is, without normalization
func (r AirportRecord) Airport() Airport {
	return Airport{City: r.Cidade, Code: r.IATA}
}

// AddAirportRequest represents a manual airport entry
type AddAirportRequest struct {
	City string `json:"city"`
	Code string `json:"code"`
}
