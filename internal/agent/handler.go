package agent

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"healai/internal/auth"
)

type Handler struct {
	client Client
}

func NewHandler(client Client) *Handler {
	return &Handler{client: client}
}

type DiagnosisRequest struct {
	Symptoms string `json:"symptoms"`
}

type DiagnosisResponse struct {
	Assessment string `json:"assessment"`
}

// GenerateDiagnosis runs the symptom text through the generator. The response
// is always 200 with markdown once the input passes validation; generation
// failures surface as the fallback text, not as an error status.
func (h *Handler) GenerateDiagnosis(w http.ResponseWriter, r *http.Request) {
	if _, ok := auth.PrincipalFromContext(r.Context()); !ok {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req DiagnosisRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request")
		return
	}
	if strings.TrimSpace(req.Symptoms) == "" {
		writeError(w, http.StatusBadRequest, "Symptoms are required")
		return
	}

	assessment := h.client.GenerateAssessment(r.Context(), req.Symptoms)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(DiagnosisResponse{Assessment: assessment})
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func RegisterRoutes(r chi.Router, h *Handler) {
	r.Post("/diagnosis", h.GenerateDiagnosis)
}
