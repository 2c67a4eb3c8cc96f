package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/straye-as/fieldservice-api/internal/domain"
	"github.com/straye-as/fieldservice-api/internal/service"
	"go.uber.org/zap"
)

type TechnicianHandler struct {
	technicianService *service.TechnicianService
	logger            *zap.Logger
}

func NewTechnicianHandler(technicianService *service.TechnicianService, logger *zap.Logger) *TechnicianHandler {
	return &TechnicianHandler{
		technicianService: technicianService,
		logger:            logger,
	}
}

// List godoc
// @Summary List technicians
// @Tags Technicians
// @Produce json
// @Success 200 {array} domain.Technician
// @Failure 500 {object} domain.ErrorResponse
// @Router /technicians [get]
func (h *TechnicianHandler) List(w http.ResponseWriter, r *http.Request) {
	techs, err := h.technicianService.List(r.Context())
	if err != nil {
		handleServiceError(w, r, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, techs)
}

// Create godoc
// @Summary Create technician
// @Description Create a new technician. Skills may be a list or a single value.
// @Tags Technicians
// @Accept json
// @Produce json
// @Param request body domain.CreateTechnicianRequest true "Technician data"
// @Success 201 {object} domain.Technician
// @Failure 400 {object} domain.ErrorResponse
// @Failure 500 {object} domain.ErrorResponse
// @Router /technicians [post]
func (h *TechnicianHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateTechnicianRequest
	if !decodeBody(w, r, h.logger, &req) {
		return
	}

	tech, err := h.technicianService.Create(r.Context(), &req)
	if err != nil {
		handleServiceError(w, r, h.logger, err)
		return
	}

	respondJSON(w, http.StatusCreated, tech)
}

// GetByID godoc
// @Summary Get technician
// @Tags Technicians
// @Produce json
// @Param id path string true "Technician ID"
// @Success 200 {object} domain.Technician
// @Failure 404 {object} domain.ErrorResponse
// @Router /technicians/{id} [get]
func (h *TechnicianHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	tech, err := h.technicianService.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, r, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, tech)
}
