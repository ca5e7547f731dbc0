package airport

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path"
	"strings"

	"github.com/cx-tal-miterani/flight-quote/shared/models"
	"github.com/jszwec/csvutil"
)

// LoadJSON decodes a JSON array of {"Cidade", "IATA"} records
func LoadJSON(r io.Reader) ([]models.Airport, error) {
	var records []models.AirportRecord
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, fmt.Errorf("failed to decode airports JSON: %w", err)
	}
	return toAirports(records), nil
}

// LoadCSV decodes CSV data with a Cidade,IATA header line
func LoadCSV(r io.Reader) ([]models.Airport, error) {
	decoder, err := csvutil.NewDecoder(csv.NewReader(r))
	if err != nil {
		return nil, fmt.Errorf("failed to create CSV decoder for airports: %w", err)
	}

	var records []models.AirportRecord
	if err := decoder.Decode(&records); err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to decode airports CSV: %w", err)
	}
	return toAirports(records), nil
}

func toAirports(records []models.AirportRecord) []models.Airport {
	airports := make([]models.Airport, len(records))
	for i, r := range records {
		airports[i] = r.Airport()
	}
	return airports
}

// LoadSource loads the seed dataset from a file path or an http(s) URL.
// Sources ending in .csv are read as CSV, everything else as JSON. There
// is a single attempt; failures are returned as *DatasetLoadError.
func LoadSource(ctx context.Context, client *http.Client, source string) ([]models.Airport, error) {
	airports, err := loadSource(ctx, client, source)
	if err != nil {
		return nil, &DatasetLoadError{Source: source, Err: err}
	}
	log.Printf("Loaded %d airports from %s", len(airports), source)
	return airports, nil
}

func loadSource(ctx context.Context, client *http.Client, source string) ([]models.Airport, error) {
	var body io.ReadCloser
	name := source

	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		if client == nil {
			client = http.DefaultClient
		}
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		resp, err := client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch: %w", err)
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return nil, fmt.Errorf("unexpected status %s", resp.Status)
		}
		body = resp.Body
		name = req.URL.Path
	} else {
		f, err := os.Open(source)
		if err != nil {
			return nil, fmt.Errorf("failed to open: %w", err)
		}
		body = f
	}
	defer body.Close()

	if strings.EqualFold(path.Ext(name), ".csv") {
		return LoadCSV(body)
	}
	return LoadJSON(body)
}
