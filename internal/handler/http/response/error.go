package response

import (
	"errors"
	"net/http"

	"github.com/attendly/attendance-backend-go/internal/domain/attendance"
	"github.com/attendly/attendance-backend-go/internal/domain/tabular"
	"github.com/attendly/attendance-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Extraction errors: the upload was readable but its shape is wrong.
	case errors.Is(err, attendance.ErrNoPunchRecords):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, attendance.ErrNoScheduleHeader):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, attendance.ErrNoScheduleRecords):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, attendance.ErrInvalidFileType):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, attendance.ErrFileTooLarge):
		BadRequest(w, err.Error(), nil)

	// Generic tabular errors
	case errors.Is(err, tabular.ErrEmptyFile):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, tabular.ErrNoUsableRows):
		BadRequest(w, err.Error(), nil)

	case errors.Is(err, attendance.ErrResultNotFound):
		NotFound(w, "Result not found or expired")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
