package formdata

import (
	"bytes"
	"log/slog"
	"slices"

	"github.com/dmitrymomot/formdata/pkg/kmp"
	"github.com/dmitrymomot/formdata/pkg/logger"
)

// Status describes how the last Parse call ended.
type Status int

const (
	// StatusIdle means Parse has not been called.
	StatusIdle Status = iota
	// StatusInvalid means the content type was missing, not multipart or had no boundary.
	StatusInvalid
	// StatusComplete means the closing delimiter was reached.
	StatusComplete
	// StatusTruncated means the body ended before its closing delimiter.
	StatusTruncated
)

// String returns the lower-case status name used in logs.
func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusInvalid:
		return "invalid"
	case StatusComplete:
		return "complete"
	case StatusTruncated:
		return "truncated"
	default:
		return "unknown"
	}
}

// HeaderGetter supplies request header values. http.Header implements it.
type HeaderGetter interface {
	Get(key string) string
}

const crlf = "\r\n"

// Markers searched inside a single part. They are immutable and shared by
// all parsers.
var (
	nameMarker     = kmp.NewString(`name="`)
	filenameMarker = kmp.NewString(`filename="`)
	quoteMarker    = kmp.NewString(`"`)
	blankLine      = kmp.NewString(crlf + crlf)
)

// Option configures a Parser.
type Option func(*Parser)

// WithLogger sets the logger used for parse diagnostics. Nil is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(p *Parser) {
		if l != nil {
			p.log = l
		}
	}
}

// WithParamTrimming makes the parser cut the declared boundary at the first
// ';' of the Content-Type value instead of taking the rest of the header
// verbatim.
func WithParamTrimming() Option {
	return func(p *Parser) { p.trimParams = true }
}

// Parser splits one multipart/form-data body into parts.
type Parser struct {
	log        *slog.Logger
	trimParams bool

	delimiter []byte
	scanner   *boundaryScanner
	body      []byte
	offset    int
	parts     []Part
	status    Status
	err       error
}

// New returns a Parser. Parse must be called before reading parts.
func New(opts ...Option) *Parser {
	p := &Parser{log: logger.Discard()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse reads the Content-Type from h and segments body. It returns true
// when a valid boundary was found. A true result does not mean any part was
// extracted; check Len and Status for that.
func (p *Parser) Parse(h HeaderGetter, body []byte) bool {
	var contentType string
	if h != nil {
		contentType = h.Get("Content-Type")
	}
	return p.ParseContentType(contentType, body)
}

// ParseContentType is Parse with the Content-Type value given directly.
func (p *Parser) ParseContentType(contentType string, body []byte) bool {
	p.reset(body)

	delimiter, err := p.delimiterFor(contentType)
	if err != nil {
		p.status = StatusInvalid
		p.err = err
		p.log.Debug("formdata: unusable content type", logger.Error(err))
		return false
	}

	p.delimiter = []byte(delimiter)
	p.scanner = newBoundaryScanner(delimiter)
	p.log.Debug("formdata: parsing body", logger.Boundary(delimiter), logger.Bytes(len(body)))

	p.segment()

	attrs := []any{logger.Parts(len(p.parts)), logger.Status(p.status.String())}
	if p.status == StatusTruncated {
		p.log.Debug("formdata: body ended before closing delimiter", append(attrs, logger.Offset(p.offset))...)
	} else {
		p.log.Debug("formdata: body parsed", attrs...)
	}
	return true
}

func (p *Parser) delimiterFor(contentType string) (string, error) {
	return delimiterFrom(contentType, p.trimParams)
}

func (p *Parser) reset(body []byte) {
	p.body = body
	p.offset = 0
	p.parts = nil
	p.delimiter = nil
	p.scanner = nil
	p.status = StatusIdle
	p.err = nil
}

// atBodyEnd reports whether the unscanned tail is too short to hold another
// delimiter plus its CRLF.
func (p *Parser) atBodyEnd() bool {
	return p.offset+p.scanner.size()+len(crlf) >= len(p.body)
}

func (p *Parser) segment() {
	for !p.atBodyEnd() {
		start, ok := p.scanner.next(p.body, p.offset)
		if !ok {
			p.offset = len(p.body)
			break
		}
		if p.isClosing(start) {
			p.offset = start
			break
		}

		end, ok := p.scanner.next(p.body, start+p.scanner.size())
		if !ok {
			p.log.Debug("formdata: no delimiter after part", logger.Offset(start))
			p.offset = len(p.body)
			break
		}

		part := p.extract(start, end)
		p.parts = append(p.parts, part)
		p.offset = end

		filename, _ := part.FileName()
		p.log.Debug("formdata: part parsed",
			logger.Field(part.Name()),
			logger.Filename(filename),
			logger.Offset(start),
			logger.Bytes(part.value.Len()),
		)
	}

	if p.isClosing(p.offset) {
		p.status = StatusComplete
		return
	}
	p.status = StatusTruncated
	p.err = ErrTruncatedBody
}

// isClosing reports whether a closing delimiter ("--boundary--") starts at pos.
func (p *Parser) isClosing(pos int) bool {
	n := len(p.delimiter)
	if pos < 0 || pos+n+len(delimiterDashes) > len(p.body) {
		return false
	}
	return bytes.Equal(p.body[pos:pos+n], p.delimiter) &&
		string(p.body[pos+n:pos+n+len(delimiterDashes)]) == delimiterDashes
}

// extract builds the part lying between the delimiters at start and end.
// Headers run from after the first delimiter to the first blank line; the
// content runs from after the blank line to the CRLF preceding end.
func (p *Parser) extract(start, end int) Part {
	part := Part{body: p.body}

	headerStart := start + p.scanner.size()
	headerEnd := end

	if blank, ok := blankLine.FindWithin(p.body, headerStart, end-headerStart); ok {
		headerEnd = blank

		valueStart := blank + blankLine.Len()
		valueEnd := end
		if valueEnd-len(crlf) >= valueStart && string(p.body[valueEnd-len(crlf):valueEnd]) == crlf {
			valueEnd -= len(crlf)
		}
		part.value = Span{Start: valueStart, End: valueEnd}
		part.hasValue = true
	}

	if s, ok := p.attribute(nameMarker, headerStart, headerEnd, true); ok {
		part.name = s
		part.hasName = true
	}
	if s, ok := p.attribute(filenameMarker, headerStart, headerEnd, false); ok {
		part.filename = s
		part.isFile = true
	}

	return part
}

// attribute finds marker within [from, to) and returns the span of the
// quoted value that follows it. With standalone set, matches preceded by a
// token byte are skipped so that name=" does not match inside filename=".
func (p *Parser) attribute(marker *kmp.Matcher, from, to int, standalone bool) (Span, bool) {
	pos := from
	for pos < to {
		i, ok := marker.FindWithin(p.body, pos, to-pos)
		if !ok {
			return Span{}, false
		}
		if standalone && i > from && isTokenByte(p.body[i-1]) {
			pos = i + 1
			continue
		}

		valueStart := i + marker.Len()
		q, ok := quoteMarker.FindWithin(p.body, valueStart, to-valueStart)
		if !ok {
			return Span{}, false
		}
		return Span{Start: valueStart, End: q}, true
	}
	return Span{}, false
}

func isTokenByte(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '-' || c == '_' || c == '*'
}

// Len returns the number of parsed parts.
func (p *Parser) Len() int {
	return len(p.parts)
}

// Parts returns a copy of the parsed parts in body order.
func (p *Parser) Parts() []Part {
	return slices.Clone(p.parts)
}

// Part returns the i-th part.
func (p *Parser) Part(i int) (Part, bool) {
	if i < 0 || i >= len(p.parts) {
		return Part{}, false
	}
	return p.parts[i], true
}

// Boundary returns the delimiter in use, including the leading "--".
func (p *Parser) Boundary() string {
	return string(p.delimiter)
}

// Status reports how the last Parse call ended.
func (p *Parser) Status() Status {
	return p.status
}

// Err returns the reason the last Parse returned false or stopped early:
// one of ErrMissingContentType, ErrNotMultipart, ErrMissingBoundary or
// ErrTruncatedBody. It is nil after a complete parse.
func (p *Parser) Err() error {
	return p.err
}

// Cursor returns a new Cursor positioned at the first part.
func (p *Parser) Cursor() *Cursor {
	return NewCursor(p)
}
