package formdata_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formdata/pkg/formdata"
)

func TestBoundaryFromContentType(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		contentType string
		want        string
		wantErr     error
	}{
		{
			name:        "plain boundary",
			contentType: "multipart/form-data; boundary=----X",
			want:        "------X",
		},
		{
			name:        "trailing parameters kept verbatim",
			contentType: "multipart/form-data; boundary=abc; charset=utf-8",
			want:        "--abc; charset=utf-8",
		},
		{
			name:        "empty header",
			contentType: "",
			wantErr:     formdata.ErrMissingContentType,
		},
		{
			name:        "urlencoded",
			contentType: "application/x-www-form-urlencoded",
			wantErr:     formdata.ErrNotMultipart,
		},
		{
			name:        "other multipart subtype",
			contentType: "multipart/mixed; boundary=abc",
			wantErr:     formdata.ErrNotMultipart,
		},
		{
			name:        "no boundary parameter",
			contentType: "multipart/form-data",
			wantErr:     formdata.ErrMissingBoundary,
		},
		{
			name:        "empty boundary value",
			contentType: "multipart/form-data; boundary=",
			wantErr:     formdata.ErrMissingBoundary,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := formdata.BoundaryFromContentType(tt.contentType)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTrimmedBoundaryFromContentType(t *testing.T) {
	t.Parallel()

	tests := []struct {
		contentType string
		want        string
	}{
		{"multipart/form-data; boundary=abc; charset=utf-8", "--abc"},
		{`multipart/form-data; boundary="quoted value"`, "--quoted value"},
		{"multipart/form-data; boundary= spaced ;x=y", "--spaced"},
		{"multipart/form-data; boundary=plain", "--plain"},
	}

	for _, tt := range tests {
		t.Run(tt.contentType, func(t *testing.T) {
			t.Parallel()
			got, err := formdata.TrimmedBoundaryFromContentType(tt.contentType)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := formdata.TrimmedBoundaryFromContentType("multipart/form-data; boundary=;x=y")
	require.ErrorIs(t, err, formdata.ErrMissingBoundary)
}
