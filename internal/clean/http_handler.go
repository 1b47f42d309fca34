package clean

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/rapihdata/rapih/internal/domain"
	"github.com/rapihdata/rapih/internal/export"
	"github.com/rapihdata/rapih/internal/ingest"
)

// Handler exposes the cleaning pipeline as an HTTP endpoint. The response is
// either the full CleanResult as JSON or the cleaned table as a downloadable
// xlsx/csv file, depending on the requested format.
type Handler struct {
	cleaner        *Cleaner
	maxUploadBytes int64
}

// NewHTTPHandler wraps the cleaner with a POST endpoint.
func NewHTTPHandler(cleaner *Cleaner, maxUploadBytes int64) *Handler {
	if maxUploadBytes <= 0 {
		maxUploadBytes = 20 << 20
	}
	return &Handler{cleaner: cleaner, maxUploadBytes: maxUploadBytes}
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

	opts, err := cleanOptionsFromForm(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	result, err := h.cleaner.Clean(r.Context(), table, opts)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	switch strings.ToLower(strings.TrimSpace(r.FormValue("format"))) {
	case "", "json":
		writeJSON(w, http.StatusOK, result)
	case "xlsx":
		h.writeFile(w, result.Data, header.Filename, export.FormatXLSX)
	case "csv":
		h.writeFile(w, result.Data, header.Filename, export.FormatCSV)
	default:
		http.Error(w, fmt.Sprintf("unsupported response format %q", r.FormValue("format")), http.StatusBadRequest)
	}
}

// cleanOptionsFromForm resolves options from either a preset name or an
// explicit options JSON object. A preset takes precedence.
func cleanOptionsFromForm(r *http.Request) (domain.CleanOptions, error) {
	if preset := strings.TrimSpace(r.FormValue("preset")); preset != "" {
		opts, err := PresetOptions(domain.Preset(preset))
		if err != nil {
			return domain.CleanOptions{}, err
		}
		return opts, nil
	}

	if raw := strings.TrimSpace(r.FormValue("options")); raw != "" {
		var opts domain.CleanOptions
		if err := json.Unmarshal([]byte(raw), &opts); err != nil {
			return domain.CleanOptions{}, fmt.Errorf("invalid options: %w", err)
		}
		return opts, nil
	}

	return PresetOptions(domain.PresetStandard)
}

func (h *Handler) writeFile(w http.ResponseWriter, table domain.Table, originalName string, format export.Format) {
	payload, err := export.Write(table, format)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", format.MimeType())
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", export.FileName(originalName, format)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(payload)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(payload)
}
