package upload

import "errors"

var (
	// ErrTruncatedUpload is reported when the body ended before its closing delimiter.
	ErrTruncatedUpload = errors.New("upload body is truncated")
	// ErrStore is reported when a file part could not be stored.
	ErrStore = errors.New("failed to store uploaded file")
	// ErrRejected is reported when a file part fails size or type validation.
	ErrRejected = errors.New("uploaded file rejected")
)
