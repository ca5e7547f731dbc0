package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// QuoteMode selects between the two quote templates
type QuoteMode string

const (
	QuoteModeRoundTrip QuoteMode = "round_trip"
	QuoteModeOneWay    QuoteMode = "one_way"
)

// Field is a single form field value
type Field struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Fields is an ordered set of form field values. Order matters when
// rendering: each field is substituted in turn.
type Fields []Field

// Get returns the value of the named field
func (f Fields) Get(name string) (string, bool) {
	for _, field := range f {
		if field.Name == name {
			return field.Value, true
		}
	}
	return "", false
}

// Set overwrites the named field in place or appends it
func (f *Fields) Set(name, value string) {
	for i := range *f {
		if (*f)[i].Name == name {
			(*f)[i].Value = value
			return
		}
	}
	*f = append(*f, Field{Name: name, Value: value})
}

// MarshalJSON encodes the fields as a JSON object in field order
func (f Fields) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, field := range f {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(field.Name)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(field.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(name)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object of string values, keeping key order
func (f *Fields) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*f = nil
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("fields must be a JSON object")
	}

	fields := Fields{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		name, ok := tok.(string)
		if !ok {
			return fmt.Errorf("invalid field name %v", tok)
		}

		var value string
		if err := dec.Decode(&value); err != nil {
			return fmt.Errorf("field %q: %w", name, err)
		}
		fields.Set(name, value)
	}
	if _, err := dec.Token(); err != nil {
		return err
	}

	*f = fields
	return nil
}

// QuoteRequest represents a quote form submission
type QuoteRequest struct {
	Fields         Fields   `json:"fields"`
	OneWay         bool     `json:"oneWay"`
	CheckedBaggage bool     `json:"checkedBaggage"`
	DateFields     []string `json:"dateFields,omitempty"` // fields holding yyyy-mm-dd dates
}

// Quote represents a rendered quote message
type Quote struct {
	ID   string    `json:"id"`
	Mode QuoteMode `json:"mode"`
	Text string    `json:"text"`
}

// TemplateInfo describes one of the quote templates
type TemplateInfo struct {
	Mode         QuoteMode `json:"mode"`
	Text         string    `json:"text"`
	Placeholders []string  `json:"placeholders"`
}
