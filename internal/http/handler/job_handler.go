package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/straye-as/fieldservice-api/internal/domain"
	"github.com/straye-as/fieldservice-api/internal/service"
	"go.uber.org/zap"
)

type JobHandler struct {
	jobService *service.JobService
	logger     *zap.Logger
}

func NewJobHandler(jobService *service.JobService, logger *zap.Logger) *JobHandler {
	return &JobHandler{
		jobService: jobService,
		logger:     logger,
	}
}

// List godoc
// @Summary List jobs
// @Tags Jobs
// @Produce json
// @Success 200 {array} domain.Job
// @Failure 500 {object} domain.ErrorResponse
// @Router /jobs [get]
func (h *JobHandler) List(w http.ResponseWriter, r *http.Request) {
	jobs, err := h.jobService.List(r.Context())
	if err != nil {
		handleServiceError(w, r, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, jobs)
}

// Create godoc
// @Summary Create job
// @Description Create a scheduled job. The customer and, when given, the technician must exist.
// @Tags Jobs
// @Accept json
// @Produce json
// @Param request body domain.CreateJobRequest true "Job data"
// @Success 201 {object} domain.Job
// @Failure 400 {object} domain.ErrorResponse
// @Failure 500 {object} domain.ErrorResponse
// @Router /jobs [post]
func (h *JobHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateJobRequest
	if !decodeBody(w, r, h.logger, &req) {
		return
	}

	job, err := h.jobService.Create(r.Context(), &req)
	if err != nil {
		handleServiceError(w, r, h.logger, err)
		return
	}

	respondJSON(w, http.StatusCreated, job)
}

// GetByID godoc
// @Summary Get job
// @Tags Jobs
// @Produce json
// @Param id path string true "Job ID"
// @Success 200 {object} domain.Job
// @Failure 404 {object} domain.ErrorResponse
// @Router /jobs/{id} [get]
func (h *JobHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	job, err := h.jobService.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, r, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, job)
}

// AssignTechnician godoc
// @Summary Assign technician
// @Description Set the job's technician and append an assignment entry to its log
// @Tags Jobs
// @Accept json
// @Produce json
// @Param id path string true "Job ID"
// @Param request body domain.AssignTechnicianRequest true "Technician to assign"
// @Success 200 {object} domain.Job
// @Failure 400 {object} domain.ErrorResponse "technicianId not found"
// @Failure 404 {object} domain.ErrorResponse
// @Router /jobs/{id}/assign [post]
func (h *JobHandler) AssignTechnician(w http.ResponseWriter, r *http.Request) {
	var req domain.AssignTechnicianRequest
	if !decodeBody(w, r, h.logger, &req) {
		return
	}

	job, err := h.jobService.AssignTechnician(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		handleServiceError(w, r, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, job)
}

// Complete godoc
// @Summary Complete job
// @Description Mark a scheduled job as completed. The resolution notes, or "Completed", are appended to the log.
// @Tags Jobs
// @Accept json
// @Produce json
// @Param id path string true "Job ID"
// @Param request body domain.CompleteJobRequest false "Resolution notes"
// @Success 200 {object} domain.Job
// @Failure 404 {object} domain.ErrorResponse
// @Failure 409 {object} domain.ErrorResponse "Job already completed"
// @Router /jobs/{id}/complete [post]
func (h *JobHandler) Complete(w http.ResponseWriter, r *http.Request) {
	var req domain.CompleteJobRequest
	if !decodeBody(w, r, h.logger, &req) {
		return
	}

	job, err := h.jobService.Complete(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		handleServiceError(w, r, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, job)
}

// Invoice godoc
// @Summary Invoice job
// @Description Issue an open invoice for the job with copies of its customer and technician
// @Tags Jobs
// @Produce json
// @Param id path string true "Job ID"
// @Success 201 {object} domain.Invoice
// @Failure 404 {object} domain.ErrorResponse
// @Router /jobs/{id}/invoice [post]
func (h *JobHandler) Invoice(w http.ResponseWriter, r *http.Request) {
	invoice, err := h.jobService.Invoice(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, r, h.logger, err)
		return
	}

	respondJSON(w, http.StatusCreated, invoice)
}
