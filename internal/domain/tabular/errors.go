package tabular

import "errors"

var (
	ErrEmptyFile    = errors.New("file has no header row")
	ErrNoUsableRows = errors.New("no usable data rows found: every row lacked both an identity and a date value")
)
