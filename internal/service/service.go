package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync"

	"github.com/cx-tal-miterani/flight-quote/internal/airport"
	"github.com/cx-tal-miterani/flight-quote/internal/database"
	"github.com/cx-tal-miterani/flight-quote/internal/quote"
	"github.com/cx-tal-miterani/flight-quote/shared/models"
	"github.com/google/uuid"
)

// MaxMemoryQuotes is how many rendered quotes are kept when there is no store
const MaxMemoryQuotes = 500

var ErrQuoteNotFound = errors.New("quote not found")

// QuoteService defines the quote service interface
type QuoteService interface {
	Templates(ctx context.Context) []models.TemplateInfo
	RenderQuote(ctx context.Context, req *models.QuoteRequest) (*models.Quote, error)
	GetQuote(ctx context.Context, quoteID string) (*models.Quote, error)
	ListAirports(ctx context.Context) []models.Airport
	SuggestAirports(ctx context.Context, text string) []models.Airport
	AddAirport(ctx context.Context, req *models.AddAirportRequest) (*models.Airport, error)
	LoadAirports(ctx context.Context, source string) error
}

// Store persists user-added airports and rendered quotes
type Store interface {
	ListAirports(ctx context.Context) ([]models.Airport, error)
	InsertAirport(ctx context.Context, a models.Airport) error
	SaveQuote(ctx context.Context, q *models.Quote, fields models.Fields) error
	GetQuote(ctx context.Context, id uuid.UUID) (*models.Quote, error)
}

// Notifier is told when the airport list changes so open suggestion
// sessions can re-evaluate their typed text
type Notifier interface {
	AirportsChanged(added ...models.Airport)
}

// quoteServiceImpl implements QuoteService
type quoteServiceImpl struct {
	airports   *airport.List
	store      Store
	notifier   Notifier
	httpClient *http.Client

	mu       sync.Mutex
	quotes   map[string]*models.Quote
	quoteIDs []string
}

// NewQuoteService creates a new QuoteService. store and notifier may be nil.
func NewQuoteService(airports *airport.List, store Store, notifier Notifier) QuoteService {
	return &quoteServiceImpl{
		airports:   airports,
		store:      store,
		notifier:   notifier,
		httpClient: http.DefaultClient,
		quotes:     make(map[string]*models.Quote),
	}
}

func (s *quoteServiceImpl) Templates(ctx context.Context) []models.TemplateInfo {
	return quote.Templates()
}

func (s *quoteServiceImpl) RenderQuote(ctx context.Context, req *models.QuoteRequest) (*models.Quote, error) {
	fields := append(models.Fields(nil), req.Fields...)

	dateFields := req.DateFields
	if dateFields == nil {
		dateFields = quote.DefaultDateFields
	}
	for _, name := range dateFields {
		if value, ok := fields.Get(name); ok {
			fields.Set(name, quote.FormatDateBR(value))
		}
	}
	fields.Set(quote.FieldBaggage, quote.BaggageText(req.CheckedBaggage))

	mode := quote.ModeFor(req.OneWay)
	q := &models.Quote{
		ID:   uuid.New().String(),
		Mode: mode,
		Text: quote.Render(fields, mode),
	}

	if s.store != nil {
		if err := s.store.SaveQuote(ctx, q, fields); err != nil {
			return nil, fmt.Errorf("failed to save quote: %w", err)
		}
	} else {
		s.remember(q)
	}

	return q, nil
}

func (s *quoteServiceImpl) remember(q *models.Quote) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.quotes[q.ID] = q
	s.quoteIDs = append(s.quoteIDs, q.ID)
	if len(s.quoteIDs) > MaxMemoryQuotes {
		delete(s.quotes, s.quoteIDs[0])
		s.quoteIDs = s.quoteIDs[1:]
	}
}

func (s *quoteServiceImpl) GetQuote(ctx context.Context, quoteID string) (*models.Quote, error) {
	id, err := uuid.Parse(quoteID)
	if err != nil {
		return nil, ErrQuoteNotFound
	}

	if s.store == nil {
		s.mu.Lock()
		defer s.mu.Unlock()
		q, ok := s.quotes[id.String()]
		if !ok {
			return nil, ErrQuoteNotFound
		}
		return q, nil
	}

	q, err := s.store.GetQuote(ctx, id)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, ErrQuoteNotFound
		}
		return nil, err
	}
	return q, nil
}

func (s *quoteServiceImpl) ListAirports(ctx context.Context) []models.Airport {
	return s.airports.All()
}

func (s *quoteServiceImpl) SuggestAirports(ctx context.Context, text string) []models.Airport {
	return s.airports.Suggest(text)
}

// AddAirport validates and appends the airport under the list lock, then
// persists it. A store failure takes the entry back out of the list.
func (s *quoteServiceImpl) AddAirport(ctx context.Context, req *models.AddAirportRequest) (*models.Airport, error) {
	a, err := s.airports.Add(req.City, req.Code)
	if err != nil {
		return nil, err
	}

	if s.store != nil {
		if err := s.store.InsertAirport(ctx, a); err != nil {
			s.airports.Remove(a.Code)
			if errors.Is(err, database.ErrDuplicate) {
				return nil, &airport.ValidationError{Kind: airport.KindDuplicateCode, City: a.City, Code: a.Code}
			}
			return nil, fmt.Errorf("failed to store airport: %w", err)
		}
	}
	log.Printf("Airport %s added", airport.Label(a))

	if s.notifier != nil {
		s.notifier.AirportsChanged(a)
	}
	return &a, nil
}

// LoadAirports seeds the list from source, then re-appends stored airports.
// A dataset failure leaves the seed empty and is returned after the stored
// airports have been restored.
func (s *quoteServiceImpl) LoadAirports(ctx context.Context, source string) error {
	seed, loadErr := airport.LoadSource(ctx, s.httpClient, source)
	if loadErr != nil {
		seed = nil
	}
	for _, a := range s.airports.Seed(seed) {
		log.Printf("Airport %s kept: code is also part of the dataset", airport.Label(a))
	}

	if s.store != nil {
		stored, err := s.store.ListAirports(ctx)
		if err != nil {
			return errors.Join(loadErr, fmt.Errorf("failed to restore airports: %w", err))
		}
		for _, a := range stored {
			if _, err := s.airports.Add(a.City, a.Code); err != nil {
				log.Printf("Stored airport %s skipped: %v", airport.Label(a), err)
			}
		}
	}

	if s.notifier != nil {
		s.notifier.AirportsChanged()
	}
	return loadErr
}
