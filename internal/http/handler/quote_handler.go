package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/straye-as/fieldservice-api/internal/domain"
	"github.com/straye-as/fieldservice-api/internal/service"
	"go.uber.org/zap"
)

type QuoteHandler struct {
	quoteService *service.QuoteService
	logger       *zap.Logger
}

func NewQuoteHandler(quoteService *service.QuoteService, logger *zap.Logger) *QuoteHandler {
	return &QuoteHandler{
		quoteService: quoteService,
		logger:       logger,
	}
}

// List godoc
// @Summary List quotes
// @Tags Quotes
// @Produce json
// @Success 200 {array} domain.Quote
// @Failure 500 {object} domain.ErrorResponse
// @Router /quotes [get]
func (h *QuoteHandler) List(w http.ResponseWriter, r *http.Request) {
	quotes, err := h.quoteService.List(r.Context())
	if err != nil {
		handleServiceError(w, r, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, quotes)
}

// Create godoc
// @Summary Create quote
// @Description Create a draft quote for an existing customer. Missing or non-numeric quantities default to 1 and unit prices to 0.
// @Tags Quotes
// @Accept json
// @Produce json
// @Param request body domain.CreateQuoteRequest true "Quote data"
// @Success 201 {object} domain.Quote
// @Failure 400 {object} domain.ErrorResponse "customerId not found"
// @Failure 500 {object} domain.ErrorResponse
// @Router /quotes [post]
func (h *QuoteHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateQuoteRequest
	if !decodeBody(w, r, h.logger, &req) {
		return
	}

	quote, err := h.quoteService.Create(r.Context(), &req)
	if err != nil {
		handleServiceError(w, r, h.logger, err)
		return
	}

	respondJSON(w, http.StatusCreated, quote)
}

// GetByID godoc
// @Summary Get quote
// @Tags Quotes
// @Produce json
// @Param id path string true "Quote ID"
// @Success 200 {object} domain.Quote
// @Failure 404 {object} domain.ErrorResponse
// @Router /quotes/{id} [get]
func (h *QuoteHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	quote, err := h.quoteService.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, r, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, quote)
}

// Approve godoc
// @Summary Approve quote
// @Description Move a draft quote to approved
// @Tags Quotes
// @Produce json
// @Param id path string true "Quote ID"
// @Success 200 {object} domain.Quote
// @Failure 404 {object} domain.ErrorResponse
// @Failure 409 {object} domain.ErrorResponse "Quote is not in draft"
// @Router /quotes/{id}/approve [post]
func (h *QuoteHandler) Approve(w http.ResponseWriter, r *http.Request) {
	quote, err := h.quoteService.Approve(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, r, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, quote)
}

// Convert godoc
// @Summary Convert quote to job
// @Description Mark a draft or approved quote as converted and create a scheduled job for its customer
// @Tags Quotes
// @Produce json
// @Param id path string true "Quote ID"
// @Success 201 {object} domain.ConvertQuoteResult
// @Failure 404 {object} domain.ErrorResponse
// @Failure 409 {object} domain.ErrorResponse "Quote already converted"
// @Router /quotes/{id}/convert [post]
func (h *QuoteHandler) Convert(w http.ResponseWriter, r *http.Request) {
	result, err := h.quoteService.Convert(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, r, h.logger, err)
		return
	}

	respondJSON(w, http.StatusCreated, result)
}
