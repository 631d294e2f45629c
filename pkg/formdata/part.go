package formdata

// Span is a half-open byte range [Start, End) into a parsed body.
type Span struct {
	Start int
	End   int
}

// Len returns the number of bytes covered by the span.
func (s Span) Len() int {
	return s.End - s.Start
}

// Empty reports whether the span covers no bytes.
func (s Span) Empty() bool {
	return s.End <= s.Start
}

// Part is one segment of a multipart body. It does not own any memory:
// all accessors return views into the body the Parser was given.
// Parts are only produced by a Parser, so every span refers to that
// Parser's body.
type Part struct {
	body     []byte
	name     Span
	value    Span
	filename Span
	hasName  bool
	hasValue bool
	isFile   bool
}

// Name returns the field name. It is empty when the part headers carried
// no name attribute.
func (p Part) Name() string {
	return string(p.NameBytes())
}

// NameBytes returns the field name as a view into the body.
func (p Part) NameBytes() []byte {
	if !p.hasName {
		return nil
	}
	return p.slice(p.name)
}

// HasName reports whether a name attribute was found for this part.
func (p Part) HasName() bool {
	return p.hasName
}

// Value returns the part content as a view into the body. The returned
// slice has its capacity clipped, so appending to it never writes into
// the body.
func (p Part) Value() []byte {
	if !p.hasValue {
		return nil
	}
	return p.slice(p.value)
}

// HasValue reports whether the blank line separating headers from content
// was found.
func (p Part) HasValue() bool {
	return p.hasValue
}

// IsFile reports whether the part headers carried a filename attribute.
func (p Part) IsFile() bool {
	return p.isFile
}

// FileName returns the uploaded file name and whether the part is a file.
func (p Part) FileName() (string, bool) {
	if !p.isFile {
		return "", false
	}
	return string(p.slice(p.filename)), true
}

// NameSpan returns the byte range of the field name.
func (p Part) NameSpan() Span { return p.name }

// ValueSpan returns the byte range of the content.
func (p Part) ValueSpan() Span { return p.value }

// FileNameSpan returns the byte range of the file name.
func (p Part) FileNameSpan() Span { return p.filename }

func (p Part) slice(s Span) []byte {
	if s.Start < 0 || s.End < s.Start || s.End > len(p.body) {
		return nil
	}
	return p.body[s.Start:s.End:s.End]
}

// nameIs compares the field name with name without allocating.
func (p Part) nameIs(name string) bool {
	return p.hasName && string(p.slice(p.name)) == name
}
