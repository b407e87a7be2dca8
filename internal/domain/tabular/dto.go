package tabular

import (
	"path/filepath"
	"strings"

	"github.com/attendly/attendance-backend-go/internal/pkg/validator"
)

const maxUploadBytes = 50 << 20

// Legacy .xls is excluded: the workbook reader only handles xlsx.
var allowedExts = map[string]bool{
	".xlsx": true,
	".csv":  true,
	".tsv":  true,
	".txt":  true,
}

// NamedFile is one uploaded tabular file, fully read into memory.
type NamedFile struct {
	Name string
	Data []byte
}

// ComputeRequest carries one or two generically-shaped tabular files.
type ComputeRequest struct {
	Files []NamedFile `json:"-"`
}

func (r *ComputeRequest) Validate() error {
	var errs validator.ValidationErrors

	if len(r.Files) == 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "files",
			Message: "at least one file is required",
		})
	}
	if len(r.Files) > 2 {
		errs = append(errs, validator.ValidationError{
			Field:   "files",
			Message: "at most two files are accepted",
		})
	}

	for _, f := range r.Files {
		ext := strings.ToLower(filepath.Ext(f.Name))
		if !allowedExts[ext] {
			errs = append(errs, validator.ValidationError{
				Field:   "files",
				Message: "invalid file type for " + f.Name + ": only xlsx, csv, tsv, txt allowed",
			})
		}
		if len(f.Data) > maxUploadBytes {
			errs = append(errs, validator.ValidationError{
				Field:   "files",
				Message: f.Name + " exceeds the 50MB size limit",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
