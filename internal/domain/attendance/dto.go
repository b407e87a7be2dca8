package attendance

import (
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/attendly/attendance-backend-go/internal/pkg/validator"
)

const maxUploadBytes = 50 << 20

// Legacy .xls is rejected up front: the workbook reader only handles xlsx,
// so letting it through would surface as an opaque parse failure later.
var allowedWorkbookExts = map[string]bool{".xlsx": true}

// ComputeRequest carries the two uploaded workbooks plus optional policy
// overrides for one reconciliation run.
type ComputeRequest struct {
	PunchFile      multipart.File        `json:"-"`
	PunchHeader    *multipart.FileHeader `json:"-"`
	ScheduleFile   multipart.File        `json:"-"`
	ScheduleHeader *multipart.FileHeader `json:"-"`

	// Config is a raw JSON override of PolicyConfig; empty means defaults.
	Config string `json:"-"`
}

func validateUpload(errs validator.ValidationErrors, field string, header *multipart.FileHeader) validator.ValidationErrors {
	if header == nil {
		return append(errs, validator.ValidationError{
			Field:   field,
			Message: field + " is required",
		})
	}
	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedWorkbookExts[ext] {
		errs = append(errs, validator.ValidationError{
			Field:   field,
			Message: "invalid file type: only xlsx allowed",
		})
	}
	if header.Size > maxUploadBytes {
		errs = append(errs, validator.ValidationError{
			Field:   field,
			Message: "file size must not exceed 50MB",
		})
	}
	return errs
}

func (r *ComputeRequest) Validate() error {
	var errs validator.ValidationErrors

	errs = validateUpload(errs, "punch_file", r.PunchHeader)
	errs = validateUpload(errs, "schedule_file", r.ScheduleHeader)

	if len(errs) > 0 {
		return errs
	}
	return nil
}
