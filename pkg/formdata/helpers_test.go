package formdata_test

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

type field struct {
	name     string
	filename string
	value    string
}

// buildBody encodes fields with the standard library writer so the parser
// is checked against an independent encoder.
func buildBody(t *testing.T, boundary string, fields ...field) (string, []byte) {
	t.Helper()

	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)
	require.NoError(t, w.SetBoundary(boundary))

	for _, f := range fields {
		if f.filename != "" {
			fw, err := w.CreateFormFile(f.name, f.filename)
			require.NoError(t, err)
			_, err = fw.Write([]byte(f.value))
			require.NoError(t, err)
			continue
		}
		require.NoError(t, w.WriteField(f.name, f.value))
	}
	require.NoError(t, w.Close())

	return w.FormDataContentType(), buf.Bytes()
}

func header(contentType string) http.Header {
	h := http.Header{}
	if contentType != "" {
		h.Set("Content-Type", contentType)
	}
	return h
}
