package handler

import (
	"net/http"

	"github.com/straye-as/fieldservice-api/internal/domain"
)

// Health is the liveness probe. It is served outside the /api base path.
func Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, domain.HealthResponse{Status: "ok"})
}
