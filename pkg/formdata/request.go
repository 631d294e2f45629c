package formdata

import (
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
)

// DefaultMaxBodySize is the body limit used by ParseRequest when maxBytes is zero (32MB).
const DefaultMaxBodySize = 32 << 20

// ReadBody buffers r, failing with ErrBodyTooLarge once more than limit
// bytes are read. A negative limit disables the check; math.MaxInt64 is
// accepted and behaves as no limit.
func ReadBody(r io.Reader, limit int64) ([]byte, error) {
	if r == nil {
		return nil, nil
	}
	if limit < 0 {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrReadBody, err)
		}
		return data, nil
	}

	// One byte past the limit tells an exact fit from an overflow. At
	// math.MaxInt64 there is no room for it and nothing can exceed the limit.
	n := limit + 1
	if n < 0 {
		n = math.MaxInt64
	}
	data, err := io.ReadAll(io.LimitReader(r, n))
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, fmt.Errorf("%w: limit is %d bytes", ErrBodyTooLarge, maxErr.Limit)
		}
		return nil, fmt.Errorf("%w: %v", ErrReadBody, err)
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("%w: limit is %d bytes", ErrBodyTooLarge, limit)
	}
	return data, nil
}

// ParseRequest validates the Content-Type of r, buffers at most maxBytes of
// its body and parses it. A zero maxBytes means DefaultMaxBodySize.
//
// The returned error is non-nil when the body could not be read or Parse
// returned false. A truncated body is not an error here; check Status.
func ParseRequest(r *http.Request, maxBytes int64, opts ...Option) (*Parser, error) {
	if maxBytes == 0 {
		maxBytes = DefaultMaxBodySize
	}

	p := New(opts...)
	p.reset(nil)

	if _, err := p.delimiterFor(r.Header.Get("Content-Type")); err != nil {
		p.status = StatusInvalid
		p.err = err
		return p, err
	}

	if maxBytes > 0 && r.ContentLength > maxBytes {
		return p, fmt.Errorf("%w: content length %d exceeds %d bytes", ErrBodyTooLarge, r.ContentLength, maxBytes)
	}

	body, err := ReadBody(r.Body, maxBytes)
	if err != nil {
		return p, err
	}

	if !p.Parse(r.Header, body) {
		return p, p.Err()
	}
	return p, nil
}
