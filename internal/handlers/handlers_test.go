package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cx-tal-miterani/flight-quote/internal/airport"
	"github.com/cx-tal-miterani/flight-quote/internal/service"
	"github.com/cx-tal-miterani/flight-quote/internal/service/mocks"
	"github.com/cx-tal-miterani/flight-quote/shared/models"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupTestRouter(h *Handler) *mux.Router {
	r := mux.NewRouter()
	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/templates", h.GetTemplates).Methods(http.MethodGet)
	api.HandleFunc("/quotes", h.CreateQuote).Methods(http.MethodPost)
	api.HandleFunc("/quotes/{id}", h.GetQuote).Methods(http.MethodGet)
	api.HandleFunc("/airports", h.GetAirports).Methods(http.MethodGet)
	api.HandleFunc("/airports", h.AddAirport).Methods(http.MethodPost)
	api.HandleFunc("/airports/suggest", h.SuggestAirports).Methods(http.MethodGet)
	r.HandleFunc("/health", h.HealthCheck).Methods(http.MethodGet)
	return r
}

func TestHandler_CreateQuote(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		mockReturn     *models.Quote
		mockError      error
		expectedStatus int
		shouldCallMock bool
	}{
		{
			name: "valid quote",
			body: `{"fields":{"origem":"São Paulo","destino":"Rio","valor":"500"},"oneWay":true}`,
			mockReturn: &models.Quote{
				ID:   uuid.New().String(),
				Mode: models.QuoteModeOneWay,
				Text: "São Paulo ➡️ Rio",
			},
			expectedStatus: http.StatusCreated,
			shouldCallMock: true,
		},
		{
			name:           "invalid json",
			body:           `{"fields":`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "non-string field value",
			body:           `{"fields":{"valor":500}}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "service failure",
			body:           `{"fields":{}}`,
			mockError:      errors.New("connection refused"),
			expectedStatus: http.StatusInternalServerError,
			shouldCallMock: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(mocks.MockQuoteService)
			handler := NewHandler(mockService)
			router := setupTestRouter(handler)

			if tt.shouldCallMock {
				mockService.On("RenderQuote", mock.Anything, mock.AnythingOfType("*models.QuoteRequest")).
					Return(tt.mockReturn, tt.mockError)
			}

			req := httptest.NewRequest(http.MethodPost, "/api/quotes", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.mockReturn != nil {
				var response models.Quote
				require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
				assert.Equal(t, *tt.mockReturn, response)
			}
			mockService.AssertExpectations(t)
		})
	}
}

func TestHandler_CreateQuotePassesOrderedFields(t *testing.T) {
	mockService := new(mocks.MockQuoteService)
	router := setupTestRouter(NewHandler(mockService))

	mockService.On("RenderQuote", mock.Anything, mock.MatchedBy(func(req *models.QuoteRequest) bool {
		return req.OneWay && req.CheckedBaggage &&
			len(req.Fields) == 3 &&
			req.Fields[0].Name == "valor" &&
			req.Fields[1].Name == "origem" &&
			req.Fields[2].Name == "data_ida"
	})).Return(&models.Quote{ID: uuid.New().String()}, nil)

	body := `{"fields":{"valor":"500","origem":"Recife","data_ida":"2024-05-01"},"oneWay":true,"checkedBaggage":true}`
	req := httptest.NewRequest(http.MethodPost, "/api/quotes", bytes.NewBufferString(body))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	mockService.AssertExpectations(t)
}

func TestHandler_GetQuote(t *testing.T) {
	quoteID := uuid.New().String()

	tests := []struct {
		name           string
		quoteID        string
		mockReturn     *models.Quote
		mockError      error
		expectedStatus int
	}{
		{
			name:           "quote found",
			quoteID:        quoteID,
			mockReturn:     &models.Quote{ID: quoteID, Mode: models.QuoteModeRoundTrip, Text: "texto"},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "quote not found",
			quoteID:        uuid.New().String(),
			mockError:      service.ErrQuoteNotFound,
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "store failure",
			quoteID:        quoteID,
			mockError:      errors.New("connection refused"),
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(mocks.MockQuoteService)
			router := setupTestRouter(NewHandler(mockService))

			mockService.On("GetQuote", mock.Anything, tt.quoteID).Return(tt.mockReturn, tt.mockError)

			req := httptest.NewRequest(http.MethodGet, "/api/quotes/"+tt.quoteID, nil)
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			mockService.AssertExpectations(t)
		})
	}
}

func TestHandler_GetAirports(t *testing.T) {
	mockService := new(mocks.MockQuoteService)
	router := setupTestRouter(NewHandler(mockService))

	airports := []models.Airport{
		{City: "São Paulo", Code: "GRU"},
		{City: "Recife", Code: "REC"},
	}
	mockService.On("ListAirports", mock.Anything).Return(airports)

	req := httptest.NewRequest(http.MethodGet, "/api/airports", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var response []models.Airport
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
	assert.Equal(t, airports, response)
	mockService.AssertExpectations(t)
}

func TestHandler_SuggestAirports(t *testing.T) {
	mockService := new(mocks.MockQuoteService)
	router := setupTestRouter(NewHandler(mockService))

	mockService.On("SuggestAirports", mock.Anything, "são").Return([]models.Airport{{City: "São Paulo", Code: "GRU"}})
	mockService.On("SuggestAirports", mock.Anything, "").Return([]models.Airport{})

	req := httptest.NewRequest(http.MethodGet, "/api/airports/suggest?q=s%C3%A3o", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var response []models.Airport
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
	assert.Len(t, response, 1)

	req = httptest.NewRequest(http.MethodGet, "/api/airports/suggest", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
	mockService.AssertExpectations(t)
}

func TestHandler_AddAirport(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		mockReturn     *models.Airport
		mockError      error
		expectedStatus int
		expectedCode   string
		shouldCallMock bool
	}{
		{
			name:           "valid airport",
			body:           `{"city":"Natal","code":"nat"}`,
			mockReturn:     &models.Airport{City: "Natal", Code: "NAT"},
			expectedStatus: http.StatusCreated,
			shouldCallMock: true,
		},
		{
			name:           "empty city",
			body:           `{"city":"","code":"NAT"}`,
			mockError:      &airport.ValidationError{Kind: airport.KindEmptyField},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "EMPTY_FIELD",
			shouldCallMock: true,
		},
		{
			name:           "bad code",
			body:           `{"city":"Natal","code":"NA"}`,
			mockError:      &airport.ValidationError{Kind: airport.KindBadCode, Code: "NA"},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "BAD_CODE",
			shouldCallMock: true,
		},
		{
			name:           "duplicate code",
			body:           `{"city":"Guarulhos","code":"GRU"}`,
			mockError:      &airport.ValidationError{Kind: airport.KindDuplicateCode, Code: "GRU"},
			expectedStatus: http.StatusConflict,
			expectedCode:   "DUPLICATE_CODE",
			shouldCallMock: true,
		},
		{
			name:           "store failure",
			body:           `{"city":"Natal","code":"NAT"}`,
			mockError:      errors.New("connection refused"),
			expectedStatus: http.StatusInternalServerError,
			shouldCallMock: true,
		},
		{
			name:           "invalid json",
			body:           `not json`,
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(mocks.MockQuoteService)
			router := setupTestRouter(NewHandler(mockService))

			if tt.shouldCallMock {
				mockService.On("AddAirport", mock.Anything, mock.AnythingOfType("*models.AddAirportRequest")).
					Return(tt.mockReturn, tt.mockError)
			}

			req := httptest.NewRequest(http.MethodPost, "/api/airports", bytes.NewBufferString(tt.body))
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.expectedCode != "" {
				var response map[string]string
				require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
				assert.Equal(t, tt.expectedCode, response["code"])
				assert.NotEmpty(t, response["error"])
			}
			mockService.AssertExpectations(t)
		})
	}
}

func TestHandler_GetTemplates(t *testing.T) {
	mockService := new(mocks.MockQuoteService)
	router := setupTestRouter(NewHandler(mockService))

	mockService.On("Templates", mock.Anything).Return([]models.TemplateInfo{
		{Mode: models.QuoteModeRoundTrip, Text: "{{origem}}", Placeholders: []string{"origem"}},
	})

	req := httptest.NewRequest(http.MethodGet, "/api/templates", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	mockService.AssertExpectations(t)
}

func TestHandler_HealthCheck(t *testing.T) {
	router := setupTestRouter(NewHandler(new(mocks.MockQuoteService)))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var response map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
	assert.Equal(t, "healthy", response["status"])
}
