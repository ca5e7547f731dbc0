package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/cx-tal-miterani/flight-quote/internal/airport"
	"github.com/cx-tal-miterani/flight-quote/internal/service"
	"github.com/cx-tal-miterani/flight-quote/shared/models"
	"github.com/gorilla/mux"
)

// Handler contains HTTP handlers for the API
type Handler struct {
	quoteService service.QuoteService
}

// NewHandler creates a new Handler instance
func NewHandler(quoteService service.QuoteService) *Handler {
	return &Handler{
		quoteService: quoteService,
	}
}

// Response helpers
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

func respondValidationError(w http.ResponseWriter, err *airport.ValidationError) {
	status := http.StatusBadRequest
	if err.Kind == airport.KindDuplicateCode {
		status = http.StatusConflict
	}
	respondJSON(w, status, map[string]string{
		"error": err.Error(),
		"code":  string(err.Kind),
	})
}

// GetTemplates handles GET /api/templates
func (h *Handler) GetTemplates(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.quoteService.Templates(r.Context()))
}

// CreateQuote handles POST /api/quotes
func (h *Handler) CreateQuote(w http.ResponseWriter, r *http.Request) {
	var req models.QuoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	q, err := h.quoteService.RenderQuote(r.Context(), &req)
	if err != nil {
		log.Printf("Failed to render quote: %v", err)
		respondError(w, http.StatusInternalServerError, "Failed to render quote")
		return
	}

	respondJSON(w, http.StatusCreated, q)
}

// GetQuote handles GET /api/quotes/{id}
func (h *Handler) GetQuote(w http.ResponseWriter, r *http.Request) {
	quoteID := mux.Vars(r)["id"]

	q, err := h.quoteService.GetQuote(r.Context(), quoteID)
	if err != nil {
		if errors.Is(err, service.ErrQuoteNotFound) {
			respondError(w, http.StatusNotFound, "Quote not found")
			return
		}
		log.Printf("Failed to get quote %s: %v", quoteID, err)
		respondError(w, http.StatusInternalServerError, "Failed to get quote")
		return
	}

	respondJSON(w, http.StatusOK, q)
}

// GetAirports handles GET /api/airports
func (h *Handler) GetAirports(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.quoteService.ListAirports(r.Context()))
}

// SuggestAirports handles GET /api/airports/suggest?q=
func (h *Handler) SuggestAirports(w http.ResponseWriter, r *http.Request) {
	text := r.URL.Query().Get("q")
	respondJSON(w, http.StatusOK, h.quoteService.SuggestAirports(r.Context(), text))
}

// AddAirport handles POST /api/airports
func (h *Handler) AddAirport(w http.ResponseWriter, r *http.Request) {
	var req models.AddAirportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	a, err := h.quoteService.AddAirport(r.Context(), &req)
	if err != nil {
		var verr *airport.ValidationError
		if errors.As(err, &verr) {
			respondValidationError(w, verr)
			return
		}
		log.Printf("Failed to add airport: %v", err)
		respondError(w, http.StatusInternalServerError, "Failed to add airport")
		return
	}

	respondJSON(w, http.StatusCreated, a)
}

// HealthCheck handles GET /health
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
		"time":   time.Now().Format(time.RFC3339),
	})
}
