package kmp_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formdata/pkg/kmp"
)

func TestBuild(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		pattern string
		want    kmp.Table
	}{
		{name: "empty", pattern: "", want: nil},
		{name: "single byte", pattern: "a", want: kmp.Table{-1}},
		{name: "abab", pattern: "abab", want: kmp.Table{-1, 0, 0, 1}},
		{name: "aaaa", pattern: "aaaa", want: kmp.Table{-1, 0, 1, 2}},
		{name: "abcabd", pattern: "abcabd", want: kmp.Table{-1, 0, 0, 0, 1, 2}},
		{name: "crlf crlf", pattern: "\r\n\r\n", want: kmp.Table{-1, 0, 0, 1}},
		{name: "boundary", pattern: "------X", want: kmp.Table{-1, 0, 1, 2, 3, 4, 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, kmp.Build([]byte(tt.pattern)))
		})
	}
}

func TestMatcher_Find(t *testing.T) {
	t.Parallel()

	t.Run("match at start", func(t *testing.T) {
		t.Parallel()
		i, ok := kmp.NewString("abab").Find([]byte("ababcabab"), 0)
		require.True(t, ok)
		assert.Equal(t, 0, i)
	})

	t.Run("match after offset", func(t *testing.T) {
		t.Parallel()
		i, ok := kmp.NewString("abab").Find([]byte("ababcabab"), 1)
		require.True(t, ok)
		assert.Equal(t, 5, i)
	})

	t.Run("overlapping prefix", func(t *testing.T) {
		t.Parallel()
		i, ok := kmp.NewString("aab").Find([]byte("aaaab"), 0)
		require.True(t, ok)
		assert.Equal(t, 2, i)
	})

	t.Run("no occurrence", func(t *testing.T) {
		t.Parallel()
		_, ok := kmp.NewString("abab").Find([]byte("abacabad"), 0)
		assert.False(t, ok)
	})

	t.Run("offset past end", func(t *testing.T) {
		t.Parallel()
		_, ok := kmp.NewString("a").Find([]byte("aaa"), 10)
		assert.False(t, ok)
	})

	t.Run("negative offset", func(t *testing.T) {
		t.Parallel()
		_, ok := kmp.NewString("a").Find([]byte("aaa"), -1)
		assert.False(t, ok)
	})

	t.Run("empty pattern", func(t *testing.T) {
		t.Parallel()
		_, ok := kmp.NewString("").Find([]byte("abc"), 0)
		assert.False(t, ok)
	})

	t.Run("pattern longer than text", func(t *testing.T) {
		t.Parallel()
		_, ok := kmp.NewString("abcdef").Find([]byte("abc"), 0)
		assert.False(t, ok)
	})

	t.Run("binary text", func(t *testing.T) {
		t.Parallel()
		text := []byte{0x00, 0xff, 0x10, 0x00, 0xff, 0x00, 0x01}
		i, ok := kmp.New([]byte{0x00, 0xff, 0x00}).Find(text, 0)
		require.True(t, ok)
		assert.Equal(t, 3, i)
	})
}

func TestMatcher_FindWithin(t *testing.T) {
	t.Parallel()

	text := []byte(`name="a"; filename="b.txt"`)
	quote := kmp.NewString(`"`)

	t.Run("match inside window", func(t *testing.T) {
		t.Parallel()
		i, ok := quote.FindWithin(text, 6, 5)
		require.True(t, ok)
		assert.Equal(t, 7, i)
	})

	t.Run("match outside window", func(t *testing.T) {
		t.Parallel()
		_, ok := quote.FindWithin(text, 8, 3)
		assert.False(t, ok)
	})

	t.Run("match straddling window end", func(t *testing.T) {
		t.Parallel()
		// "file" starts at 10; a window of 3 bytes cannot contain it.
		_, ok := kmp.NewString("file").FindWithin(text, 10, 3)
		assert.False(t, ok)

		i, ok := kmp.NewString("file").FindWithin(text, 10, 4)
		require.True(t, ok)
		assert.Equal(t, 10, i)
	})

	t.Run("occurrence starting at window end", func(t *testing.T) {
		t.Parallel()
		// The quote at 7 begins exactly at offset+n and is excluded.
		_, ok := quote.FindWithin(text, 6, 1)
		assert.False(t, ok)

		i, ok := quote.FindWithin(text, 6, 2)
		require.True(t, ok)
		assert.Equal(t, 7, i)
	})

	t.Run("window clipped to text", func(t *testing.T) {
		t.Parallel()
		i, ok := kmp.NewString("txt").FindWithin(text, 0, 1<<20)
		require.True(t, ok)
		assert.Equal(t, 22, i)
	})

	t.Run("negative length", func(t *testing.T) {
		t.Parallel()
		_, ok := quote.FindWithin(text, 0, -1)
		assert.False(t, ok)
	})
}

func TestFind(t *testing.T) {
	t.Parallel()

	i, ok := kmp.Find([]byte("ababcabab"), []byte("abab"), 0, 9)
	require.True(t, ok)
	assert.Equal(t, 0, i)

	i, ok = kmp.FindString([]byte("x\r\n\r\ny"), "\r\n\r\n", 0, 6)
	require.True(t, ok)
	assert.Equal(t, 1, i)

	_, ok = kmp.FindString([]byte("no marker here"), "\r\n\r\n", 0, 14)
	assert.False(t, ok)
}

func TestMatcher_AgreesWithBytesIndex(t *testing.T) {
	t.Parallel()

	texts := []string{
		"",
		"a",
		"aaaaaaaaab",
		"abcabcabd abcabd",
		"------WebKitFormBoundary\r\n--------WebKitFormBoundary",
		"mississippi",
	}
	patterns := []string{"a", "ab", "abd", "issip", "--WebKitFormBoundary", "zz"}

	for _, text := range texts {
		for _, pattern := range patterns {
			want := bytes.Index([]byte(text), []byte(pattern))
			got, ok := kmp.NewString(pattern).Find([]byte(text), 0)
			if want < 0 {
				assert.False(t, ok, "text=%q pattern=%q", text, pattern)
				continue
			}
			require.True(t, ok, "text=%q pattern=%q", text, pattern)
			assert.Equal(t, want, got, "text=%q pattern=%q", text, pattern)
		}
	}
}

func TestMatcher_PatternIsCopied(t *testing.T) {
	t.Parallel()

	p := []byte("abc")
	m := kmp.New(p)
	p[0] = 'z'

	assert.Equal(t, []byte("abc"), m.Pattern())
	assert.Equal(t, 3, m.Len())
	assert.Len(t, m.Table(), 3)
}
