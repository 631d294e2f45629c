package logger

import "log/slog"

// Error records err under the key "error".
// If err is nil, it returns an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Component records the emitting subsystem under the key "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Boundary records the multipart delimiter under the key "boundary".
func Boundary(b string) slog.Attr {
	return slog.String("boundary", b)
}

// Field records a form field name under the key "field".
func Field(name string) slog.Attr {
	return slog.String("field", name)
}

// Filename records an uploaded file name under the key "filename".
// If name is empty, it returns an empty Attr.
func Filename(name string) slog.Attr {
	if name == "" {
		return slog.Attr{}
	}
	return slog.String("filename", name)
}

// Bytes records a payload size under the key "bytes".
func Bytes(n int) slog.Attr {
	return slog.Int("bytes", n)
}

// Parts records the number of parsed parts under the key "parts".
func Parts(n int) slog.Attr {
	return slog.Int("parts", n)
}

// Status records a parse status under the key "status".
func Status(s string) slog.Attr {
	return slog.String("status", s)
}

// Offset records a byte offset under the key "offset".
func Offset(off int) slog.Attr {
	return slog.Int("offset", off)
}

// Path records a storage path under the key "path".
func Path(p string) slog.Attr {
	return slog.String("path", p)
}
