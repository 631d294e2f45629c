package formdata

// File is a file part resolved by field name. Content is a view into the
// parsed body.
type File struct {
	Field    string
	Filename string
	Content  []byte
}

// Size returns the content length in bytes.
func (f File) Size() int {
	return len(f.Content)
}

// Cursor walks the parts of a completed Parser. Next iterates every part in
// body order; the lookup methods scan all parts and return the first one
// whose field name matches exactly.
//
// A Cursor only mutates its own position, so several Cursors may read the
// same Parser concurrently. A single Cursor is not safe for concurrent use.
type Cursor struct {
	parts []Part
	index int
}

// NewCursor returns a Cursor over the parts p has parsed so far.
func NewCursor(p *Parser) *Cursor {
	return &Cursor{parts: p.parts}
}

// Next returns the field name of the current part and advances. It returns
// false once every part has been visited.
func (c *Cursor) Next() (string, bool) {
	if c.index >= len(c.parts) {
		return "", false
	}
	name := c.parts[c.index].Name()
	c.index++
	return name, true
}

// Reset moves the cursor back to the first part.
func (c *Cursor) Reset() {
	c.index = 0
}

// Len returns the number of parts visible to the cursor.
func (c *Cursor) Len() int {
	return len(c.parts)
}

// Part returns the i-th part.
func (c *Cursor) Part(i int) (Part, bool) {
	if i < 0 || i >= len(c.parts) {
		return Part{}, false
	}
	return c.parts[i], true
}

// IsFile reports whether a file part named name exists and returns its file
// name.
func (c *Cursor) IsFile(name string) (string, bool) {
	for _, part := range c.parts {
		if part.isFile && part.nameIs(name) {
			return part.FileName()
		}
	}
	return "", false
}

// Content returns the content of the first part named name that has a
// content section. The slice is a view into the body; it is not copied.
func (c *Cursor) Content(name string) ([]byte, bool) {
	for _, part := range c.parts {
		if part.hasValue && part.nameIs(name) {
			return part.Value(), true
		}
	}
	return nil, false
}

// Text is like Content but returns an owned string.
func (c *Cursor) Text(name string) (string, bool) {
	data, ok := c.Content(name)
	if !ok {
		return "", false
	}
	return string(data), true
}

// Values returns the contents of every non-file part named name, in body
// order.
func (c *Cursor) Values(name string) []string {
	var values []string
	for _, part := range c.parts {
		if !part.isFile && part.hasValue && part.nameIs(name) {
			values = append(values, string(part.Value()))
		}
	}
	return values
}

// File returns the first file part named name.
func (c *Cursor) File(name string) (File, bool) {
	for _, part := range c.parts {
		if part.isFile && part.nameIs(name) {
			return fileFromPart(part), true
		}
	}
	return File{}, false
}

// Files returns every file part named name, in body order.
func (c *Cursor) Files(name string) []File {
	var files []File
	for _, part := range c.parts {
		if part.isFile && part.nameIs(name) {
			files = append(files, fileFromPart(part))
		}
	}
	return files
}

func fileFromPart(part Part) File {
	filename, _ := part.FileName()
	return File{
		Field:    part.Name(),
		Filename: filename,
		Content:  part.Value(),
	}
}
