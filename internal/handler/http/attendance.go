package http

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/attendly/attendance-backend-go/internal/domain/attendance"
	"github.com/attendly/attendance-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type AttendanceHandler interface {
	Compute(w http.ResponseWriter, r *http.Request)
	DownloadCSV(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.Service
}

func NewAttendanceHandler(attendanceService attendance.Service) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
	}
}

// Compute implements AttendanceHandler.
func (h *attendanceHandlerImpl) Compute(w http.ResponseWriter, r *http.Request) {
	var req attendance.ComputeRequest

	// Parse multipart form (max 64MB in memory)
	if err := r.ParseMultipartForm(64 << 20); err != nil {
		slog.Error("Failed to parse multipart form", "error", err)
		response.BadRequest(w, "Failed to parse form data", nil)
		return
	}

	punchFile, punchHeader, err := r.FormFile("punch_file")
	if err != nil {
		if err == http.ErrMissingFile {
			response.BadRequest(w, "Field 'punch_file' is required", nil)
			return
		}
		slog.Error("Failed to get punch file from form", "error", err)
		response.BadRequest(w, "Invalid file upload", nil)
		return
	}
	defer punchFile.Close()

	scheduleFile, scheduleHeader, err := r.FormFile("schedule_file")
	if err != nil {
		if err == http.ErrMissingFile {
			response.BadRequest(w, "Field 'schedule_file' is required", nil)
			return
		}
		slog.Error("Failed to get schedule file from form", "error", err)
		response.BadRequest(w, "Invalid file upload", nil)
		return
	}
	defer scheduleFile.Close()

	req.PunchFile = punchFile
	req.PunchHeader = punchHeader
	req.ScheduleFile = scheduleFile
	req.ScheduleHeader = scheduleHeader
	req.Config = r.FormValue("config")

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.attendanceService.Compute(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Reconciliation completed", result)
}

// DownloadCSV implements AttendanceHandler.
func (h *attendanceHandlerImpl) DownloadCSV(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "jobID")
	if jobID == "" {
		response.BadRequest(w, "Job ID is required", nil)
		return
	}

	fileName, payload, err := h.attendanceService.ExportCSV(r.Context(), jobID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(payload); err != nil {
		slog.Error("Failed to write CSV payload", "error", err, "job_id", jobID)
	}
}
