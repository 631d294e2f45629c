// Package kmp implements Knuth-Morris-Pratt substring search over byte slices.
//
// A Matcher precomputes the failure table for one pattern and can then be
// reused for any number of searches, which is what the multipart parser does
// for its boundary delimiter. Find is the one-shot variant that rebuilds the
// table on every call and suits short literal markers.
//
// Searches are bounded: FindWithin only reports a match that lies entirely
// inside the window [offset, offset+n), so callers can restrict matching to
// a single region of a larger buffer without copying it.
//
// Results are reported as (index, ok) pairs; a missing match is ok == false
// and the index must be ignored.
//
// Example:
//
//	m := kmp.New([]byte("abab"))
//	if i, ok := m.Find([]byte("ababcabab"), 0); ok {
//		fmt.Println(i) // 0
//	}
package kmp
