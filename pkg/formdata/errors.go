package formdata

import "errors"

var (
	// ErrMissingContentType is reported when the request has no Content-Type header.
	ErrMissingContentType = errors.New("missing content type")
	// ErrNotMultipart is reported when the content type is not multipart/form-data.
	ErrNotMultipart = errors.New("content type is not multipart/form-data")
	// ErrMissingBoundary is reported when the content type has no usable boundary parameter.
	ErrMissingBoundary = errors.New("missing multipart boundary")
	// ErrTruncatedBody is reported when the body ends before its closing delimiter.
	ErrTruncatedBody = errors.New("multipart body is truncated")
	// ErrBodyTooLarge is reported by ParseRequest when the body exceeds the limit.
	ErrBodyTooLarge = errors.New("request body too large")
	// ErrReadBody is reported by ParseRequest when the body cannot be read.
	ErrReadBody = errors.New("failed to read request body")
	// ErrInvalidTarget is reported by Bind for anything but a non-nil struct pointer.
	ErrInvalidTarget = errors.New("bind target must be a non-nil pointer to struct")
	// ErrUnsupportedField is reported by Bind for tagged fields of unsupported types.
	ErrUnsupportedField = errors.New("unsupported field type")
)
