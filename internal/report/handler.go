package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"healai/internal/auth"
)

type Handler struct {
	svc Service
}

func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

type CreateReportRequest struct {
	Symptoms   string `json:"symptoms"`
	Assessment string `json:"assessment"`
}

func (h *Handler) CreateReport(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req CreateReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request")
		return
	}

	summary, err := h.svc.Create(r.Context(), principal, req.Symptoms, req.Assessment)
	if err != nil {
		switch {
		case errors.Is(err, ErrUnauthenticated):
			writeError(w, http.StatusUnauthorized, "Authentication required")
		case errors.Is(err, ErrInvalidInput):
			writeError(w, http.StatusBadRequest, "Symptoms and assessment are required")
		default:
			log.Printf("Error creating health report: %v", err)
			writeError(w, http.StatusInternalServerError, "Failed to save report")
		}
		return
	}

	writeJSON(w, map[string]any{
		"success": true,
		"report":  summary,
	})
}

func (h *Handler) ListReports(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	reports, err := h.svc.ListForUser(r.Context(), principal)
	if err != nil {
		if errors.Is(err, ErrUnauthenticated) {
			writeError(w, http.StatusUnauthorized, "Authentication required")
			return
		}
		log.Printf("Error fetching health reports: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch reports")
		return
	}

	writeJSON(w, map[string]any{"reports": reports})
}

func (h *Handler) GetReport(w http.ResponseWriter, r *http.Request) {
	rep, done := h.fetchOwned(w, r)
	if done {
		return
	}
	writeJSON(w, map[string]any{"report": rep})
}

func (h *Handler) DownloadReportPDF(w http.ResponseWriter, r *http.Request) {
	rep, done := h.fetchOwned(w, r)
	if done {
		return
	}

	data, err := RenderPDF(rep)
	if err != nil {
		log.Printf("Error rendering report PDF: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to render report")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=report_%s.pdf", rep.ID))
	w.Write(data)
}

// fetchOwned loads the report addressed by the URL for the request principal.
// It writes the error response itself and reports done=true when it did.
func (h *Handler) fetchOwned(w http.ResponseWriter, r *http.Request) (rep *Report, done bool) {
	principal, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return nil, true
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		// An unparsable id can't match any report.
		writeError(w, http.StatusNotFound, "Report not found")
		return nil, true
	}

	rep, err = h.svc.GetByID(r.Context(), principal, id)
	if err != nil {
		switch {
		case errors.Is(err, ErrUnauthenticated):
			writeError(w, http.StatusUnauthorized, "Authentication required")
		case errors.Is(err, ErrNotFound):
			writeError(w, http.StatusNotFound, "Report not found")
		default:
			log.Printf("Error fetching health report: %v", err)
			writeError(w, http.StatusInternalServerError, "Failed to fetch report")
		}
		return nil, true
	}
	return rep, false
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func RegisterRoutes(r chi.Router, h *Handler) {
	r.Post("/reports", h.CreateReport)
	r.Get("/reports", h.ListReports)
	r.Get("/reports/{id}", h.GetReport)
	r.Get("/reports/{id}/pdf", h.DownloadReportPDF)
}
