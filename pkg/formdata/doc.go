// Package formdata extracts named text fields and file uploads from a fully
// buffered multipart/form-data request body.
//
// The parser works in one synchronous pass over the body. It derives the
// delimiter from the Content-Type header ("--" + boundary), precomputes a
// KMP failure table for it once, and then carves the body into parts. For
// every part it records the field name, the optional file name and the
// content as byte ranges into the original body; nothing is copied.
//
// # Usage
//
//	p := formdata.New(formdata.WithLogger(log))
//	if !p.Parse(r.Header, body) {
//		// no multipart/form-data content type or no boundary
//		return p.Err()
//	}
//
//	c := p.Cursor()
//	for name, ok := c.Next(); ok; name, ok = c.Next() {
//		if filename, isFile := c.IsFile(name); isFile {
//			data, _ := c.Content(name) // view into body
//			save(filename, data)
//			continue
//		}
//		value, _ := c.Text(name)
//		fmt.Println(name, value)
//	}
//
// # Malformed input
//
// Parse never panics on malformed bodies. When a delimiter cannot be found
// mid-body, parsing stops and the parts found so far stay available; Status
// reports StatusTruncated so callers can tell this apart from a body that
// reached its closing delimiter.
//
// # Lifetime
//
// Part values and the slices returned by Content reference the body passed
// to Parse. The caller must not modify the body while any of them is in use.
// A Parser is not safe for concurrent Parse calls, but once Parse returns
// any number of Cursors may read it concurrently.
package formdata
