package mixreports

import "errors"

var (
	// ErrReportNotFound is returned when no cached report matches the key
	ErrReportNotFound = errors.New("mix report not found")

	// ErrInvalidPath is returned when a file path is empty
	ErrInvalidPath = errors.New("invalid file path")

	// ErrInvalidResultData is returned when the encoded result is empty
	ErrInvalidResultData = errors.New("invalid result data")
)
