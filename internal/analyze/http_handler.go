package analyze

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/rapihdata/rapih/internal/cache"
	"github.com/rapihdata/rapih/internal/domain"
	"github.com/rapihdata/rapih/internal/ingest"
)

// Handler exposes analysis as an HTTP endpoint.
type Handler struct {
	service        *Service
	reports        *cache.ReportCache
	maxUploadBytes int64
}

// NewHTTPHandler wraps the service with a POST endpoint. Results are kept in
// the report cache so clients can re-fetch them by id.
func NewHTTPHandler(service *Service, reports *cache.ReportCache, maxUploadBytes int64) *Handler {
	if maxUploadBytes <= 0 {
		maxUploadBytes = 20 << 20
	}
	return &Handler{service: service, reports: reports, maxUploadBytes: maxUploadBytes}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		http.Error(w, fmt.Sprintf("invalid form data: %v", err), http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, fmt.Sprintf("file required: %v", err), http.StatusBadRequest)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		http.Error(w, fmt.Sprintf("failed to read file: %v", err), http.StatusBadRequest)
		return
	}

	table, err := ingest.Decode(header.Filename, data)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, ingest.ErrUnsupportedFormat) {
			status = http.StatusUnsupportedMediaType
		}
		http.Error(w, err.Error(), status)
		return
	}

	opts := domain.DefaultAnalyzeOptions()
	if raw := strings.TrimSpace(r.FormValue("options")); raw != "" {
		if err := json.Unmarshal([]byte(raw), &opts); err != nil {
			http.Error(w, fmt.Sprintf("invalid options: %v", err), http.StatusBadRequest)
			return
		}
	}

	result, err := h.service.Analyze(r.Context(), table, opts)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if h.reports != nil {
		h.reports.Put(result)
	}

	writeJSON(w, http.StatusOK, result)
}

// ReportHandler serves previously generated reports by id.
type ReportHandler struct {
	reports *cache.ReportCache
}

// NewReportHandler exposes the report cache over GET /reports/{id}.
func NewReportHandler(reports *cache.ReportCache) *ReportHandler {
	return &ReportHandler{reports: reports}
}

func (h *ReportHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		http.Error(w, fmt.Sprintf("invalid report id: %v", err), http.StatusBadRequest)
		return
	}

	result, ok := h.reports.Get(id)
	if !ok {
		http.Error(w, "report not found or expired", http.StatusNotFound)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(payload)
}
