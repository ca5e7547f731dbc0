package mocks

import (
	"context"

	"github.com/cx-tal-miterani/flight-quote/shared/models"
	"github.com/stretchr/testify/mock"
)

// MockQuoteService is a mock implementation of QuoteService
type MockQuoteService struct {
	mock.Mock
}

func (m *MockQuoteService) Templates(ctx context.Context) []models.TemplateInfo {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]models.TemplateInfo)
}

func (m *MockQuoteService) RenderQuote(ctx context.Context, req *models.QuoteRequest) (*models.Quote, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Quote), args.Error(1)
}

func (m *MockQuoteService) GetQuote(ctx context.Context, quoteID string) (*models.Quote, error) {
	args := m.Called(ctx, quoteID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Quote), args.Error(1)
}

func (m *MockQuoteService) ListAirports(ctx context.Context) []models.Airport {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]models.Airport)
}

func (m *MockQuoteService) SuggestAirports(ctx context.Context, text string) []models.Airport {
	args := m.Called(ctx, text)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]models.Airport)
}

func (m *MockQuoteService) AddAirport(ctx context.Context, req *models.AddAirportRequest) (*models.Airport, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Airport), args.Error(1)
}

func (m *MockQuoteService) LoadAirports(ctx context.Context, source string) error {
	args := m.Called(ctx, source)
	return args.Error(0)
}
