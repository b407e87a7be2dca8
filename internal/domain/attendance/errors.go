package attendance

import "errors"

// Structural failures abort the whole file; everything softer is reported as
// a warning on the result instead.
var (
	ErrNoPunchRecords    = errors.New("no punch records found: expected 'Daily Hours Report For:' blocks with an 'Employee Name' header row")
	ErrNoScheduleHeader  = errors.New("schedule date header row not detected: expected a row with at least two parseable dates")
	ErrNoScheduleRecords = errors.New("no schedule records found: expected AM/PM shift rows with scheduled cells under the date columns")

	ErrResultNotFound = errors.New("result not found or expired")

	ErrInvalidFileType = errors.New("invalid file type")
	ErrFileTooLarge    = errors.New("file exceeds the maximum allowed size")
)
