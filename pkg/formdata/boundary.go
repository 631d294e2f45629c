package formdata

import (
	"strings"

	"github.com/dmitrymomot/formdata/pkg/kmp"
)

const (
	mediaTypeFormData = "multipart/form-data"
	boundaryParam     = "boundary="
	delimiterDashes   = "--"
)

// BoundaryFromContentType returns the part delimiter declared by a
// Content-Type value: "--" followed by everything after "boundary=".
// Trailing parameters are kept verbatim; use TrimmedBoundaryFromContentType
// to cut them off.
func BoundaryFromContentType(contentType string) (string, error) {
	return delimiterFrom(contentType, false)
}

// TrimmedBoundaryFromContentType is like BoundaryFromContentType but stops
// the boundary at the first ';', trims surrounding whitespace and removes
// one pair of enclosing double quotes.
func TrimmedBoundaryFromContentType(contentType string) (string, error) {
	return delimiterFrom(contentType, true)
}

func delimiterFrom(contentType string, trim bool) (string, error) {
	if contentType == "" {
		return "", ErrMissingContentType
	}
	if !strings.Contains(contentType, mediaTypeFormData) {
		return "", ErrNotMultipart
	}

	i := strings.Index(contentType, boundaryParam)
	if i < 0 {
		return "", ErrMissingBoundary
	}

	b := contentType[i+len(boundaryParam):]
	if trim {
		if j := strings.IndexByte(b, ';'); j >= 0 {
			b = b[:j]
		}
		b = strings.TrimSpace(b)
		if len(b) >= 2 && b[0] == '"' && b[len(b)-1] == '"' {
			b = b[1 : len(b)-1]
		}
	}
	if b == "" {
		return "", ErrMissingBoundary
	}

	return delimiterDashes + b, nil
}

// boundaryScanner finds successive delimiters in one body. The failure
// table is built once per delimiter and reused for every search.
type boundaryScanner struct {
	m *kmp.Matcher
}

func newBoundaryScanner(delimiter string) *boundaryScanner {
	return &boundaryScanner{m: kmp.NewString(delimiter)}
}

// next returns the start of the first delimiter at or after offset. The
// search runs to the end of body.
func (s *boundaryScanner) next(body []byte, offset int) (int, bool) {
	return s.m.Find(body, offset)
}

func (s *boundaryScanner) size() int {
	return s.m.Len()
}
