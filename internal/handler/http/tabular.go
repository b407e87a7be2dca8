package http

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/attendly/attendance-backend-go/internal/domain/tabular"
	"github.com/attendly/attendance-backend-go/internal/handler/http/response"
)

type TabularHandler interface {
	Compute(w http.ResponseWriter, r *http.Request)
}

type tabularHandlerImpl struct {
	tabularService tabular.Service
}

func NewTabularHandler(tabularService tabular.Service) TabularHandler {
	return &tabularHandlerImpl{
		tabularService: tabularService,
	}
}

// Compute implements TabularHandler.
func (h *tabularHandlerImpl) Compute(w http.ResponseWriter, r *http.Request) {
	// Parse multipart form (max 64MB in memory)
	if err := r.ParseMultipartForm(64 << 20); err != nil {
		slog.Error("Failed to parse multipart form", "error", err)
		response.BadRequest(w, "Failed to parse form data", nil)
		return
	}

	if r.MultipartForm == nil || len(r.MultipartForm.File["files"]) == 0 {
		response.BadRequest(w, "Field 'files' is required", nil)
		return
	}

	var req tabular.ComputeRequest
	for _, header := range r.MultipartForm.File["files"] {
		file, err := header.Open()
		if err != nil {
			slog.Error("Failed to open uploaded file", "error", err, "file", header.Filename)
			response.BadRequest(w, "Invalid file upload", nil)
			return
		}
		data, err := io.ReadAll(file)
		file.Close()
		if err != nil {
			slog.Error("Failed to read uploaded file", "error", err, "file", header.Filename)
			response.BadRequest(w, "Invalid file upload", nil)
			return
		}
		req.Files = append(req.Files, tabular.NamedFile{Name: header.Filename, Data: data})
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.tabularService.Compute(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Tabular attendance computed", result)
}
