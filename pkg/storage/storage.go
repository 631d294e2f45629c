package storage

import (
	"context"
	"encoding/hex"
	"fmt"
	"mime"
	"net/http"
	"path/filepath"
	"slices"
	"strings"

	"github.com/zeebo/blake3"
)

// Upload is a file to be stored. Content is typically a view into a parsed
// request body and is never modified.
type Upload struct {
	Field    string
	Filename string
	Content  []byte
}

// File describes a stored file.
type File struct {
	Filename     string
	Size         int64
	MIMEType     string
	Extension    string
	Checksum     string // hex BLAKE3-256 of the content
	AbsolutePath string // empty for object storage
	RelativePath string
}

// Storage is implemented by every upload backend.
type Storage interface {
	// Save stores u at path. A path ending in "/" (or empty) is treated as
	// a directory and the sanitized upload file name is appended.
	Save(ctx context.Context, u Upload, path string) (*File, error)
	// Delete removes a single file.
	Delete(ctx context.Context, path string) error
	// Exists reports whether path exists.
	Exists(ctx context.Context, path string) bool
	// URL returns the public URL for path.
	URL(path string) string
}

// SanitizeFilename strips directory components and NUL bytes so that an
// uploaded file name can be used as a path element. Empty and special
// names become "unnamed".
func SanitizeFilename(filename string) string {
	filename = strings.ReplaceAll(filename, "\\", "/")
	filename = filepath.Base(filename)
	filename = strings.ReplaceAll(filename, "\x00", "")

	if filename == "." || filename == ".." || filename == "" || filename == "/" {
		filename = "unnamed"
	}

	return filename
}

// DetectMIMEType sniffs content and falls back to the file extension when
// sniffing only yields the generic binary type.
func DetectMIMEType(content []byte, filename string) string {
	detected := http.DetectContentType(content)
	mediaType, _, err := mime.ParseMediaType(detected)
	if err != nil {
		mediaType = "application/octet-stream"
	}
	if mediaType == "application/octet-stream" {
		if byExt := mime.TypeByExtension(filepath.Ext(filename)); byExt != "" {
			if mt, _, err := mime.ParseMediaType(byExt); err == nil {
				return mt
			}
		}
	}
	return mediaType
}

// Checksum returns the hex encoded BLAKE3-256 digest of content.
func Checksum(content []byte) string {
	sum := blake3.Sum256(content)
	return hex.EncodeToString(sum[:])
}

// ValidateSize checks u against maxBytes.
func ValidateSize(u Upload, maxBytes int64) error {
	if int64(len(u.Content)) > maxBytes {
		return fmt.Errorf("file size %d bytes exceeds %d bytes limit: %w", len(u.Content), maxBytes, ErrFileTooLarge)
	}
	return nil
}

// ValidateMIMEType checks the sniffed type of u against allowed. An empty
// list allows everything.
func ValidateMIMEType(u Upload, allowed ...string) error {
	if len(allowed) == 0 {
		return nil
	}
	mimeType := DetectMIMEType(u.Content, u.Filename)
	if slices.Contains(allowed, mimeType) {
		return nil
	}
	return fmt.Errorf("MIME type %s not in allowed types %v: %w", mimeType, allowed, ErrMIMETypeNotAllowed)
}

// targetPath resolves the directory convention shared by all backends.
func targetPath(u Upload, path string) string {
	if path == "" || strings.HasSuffix(path, "/") {
		return path + SanitizeFilename(u.Filename)
	}
	return path
}

func describe(u Upload, relPath, absPath string) *File {
	return &File{
		Filename:     SanitizeFilename(u.Filename),
		Size:         int64(len(u.Content)),
		MIMEType:     DetectMIMEType(u.Content, u.Filename),
		Extension:    filepath.Ext(u.Filename),
		Checksum:     Checksum(u.Content),
		AbsolutePath: absPath,
		RelativePath: relPath,
	}
}

func checkContext(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return nil
	}
}
