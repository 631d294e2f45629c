package kmp

// Table is a KMP failure table. Table[0] is -1 and, for i > 0, Table[i] is
// the length of the longest proper prefix of pattern[:i] that is also a
// suffix of it.
type Table []int

// Build computes the failure table for pattern in O(len(pattern)).
// It returns nil for an empty pattern.
func Build(pattern []byte) Table {
	m := len(pattern)
	if m == 0 {
		return nil
	}

	t := make(Table, m)
	t[0] = -1

	j, k := 0, -1
	for j < m-1 {
		if k == -1 || pattern[j] == pattern[k] {
			j++
			k++
			t[j] = k
		} else {
			k = t[k]
		}
	}

	return t
}

// Matcher searches for a single pattern using a precomputed failure table.
// A Matcher is immutable after New and safe for concurrent use.
type Matcher struct {
	pattern []byte
	table   Table
}

// New returns a Matcher for pattern. The pattern is copied.
func New(pattern []byte) *Matcher {
	p := make([]byte, len(pattern))
	copy(p, pattern)
	return &Matcher{pattern: p, table: Build(p)}
}

// NewString is New for a string pattern.
func NewString(pattern string) *Matcher {
	return New([]byte(pattern))
}

// Pattern returns the pattern the Matcher searches for.
func (m *Matcher) Pattern() []byte {
	return m.pattern
}

// Len returns the pattern length.
func (m *Matcher) Len() int {
	return len(m.pattern)
}

// Table returns the failure table. Callers must not modify it.
func (m *Matcher) Table() Table {
	return m.table
}

// Find returns the index of the first occurrence of the pattern in text
// starting at or after offset.
func (m *Matcher) Find(text []byte, offset int) (int, bool) {
	return m.search(text, offset, len(text))
}

// FindWithin returns the index of the first occurrence of the pattern that
// lies entirely inside text[offset:offset+n]. The window is clipped to the
// end of text.
//
// The window is half-open: a match must end at or before offset+n, so an
// occurrence that starts at offset+n is not reported. Callers used to an
// inclusive upper bound, where the last start position is offset+n, must
// pass n+1 to get that behavior.
func (m *Matcher) FindWithin(text []byte, offset, n int) (int, bool) {
	if n < 0 {
		return 0, false
	}
	end := len(text)
	if offset >= 0 && n < end-offset {
		end = offset + n
	}
	return m.search(text, offset, end)
}

func (m *Matcher) search(text []byte, offset, end int) (int, bool) {
	pl := len(m.pattern)
	if pl == 0 || offset < 0 || end-offset < pl {
		return 0, false
	}

	i, j := offset, 0
	for i < end && j < pl {
		if j == -1 || text[i] == m.pattern[j] {
			i++
			j++
		} else {
			j = m.table[j]
		}
	}

	if j == pl {
		return i - j, true
	}
	return 0, false
}

// Find builds a failure table for pattern and searches text[offset:offset+n]
// once. Prefer a Matcher when the same pattern is searched repeatedly.
func Find(text, pattern []byte, offset, n int) (int, bool) {
	return New(pattern).FindWithin(text, offset, n)
}

// FindString is Find for a string pattern.
func FindString(text []byte, pattern string, offset, n int) (int, bool) {
	return NewString(pattern).FindWithin(text, offset, n)
}
