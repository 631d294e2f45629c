package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formdata/pkg/config"
	"github.com/dmitrymomot/formdata/pkg/logger"
	"github.com/dmitrymomot/formdata/pkg/storage"
	"github.com/dmitrymomot/formdata/pkg/upload"
)

func TestFlagsParse(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		addr    string
		root    string
		cert    string
		key     string
		wantErr error
	}{
		{name: "none", args: nil},
		{name: "port", args: []string{"8081"}, addr: ":8081"},
		{name: "port and root", args: []string{"8081", "/srv/up"}, addr: ":8081", root: "/srv/up"},
		{name: "tls", args: []string{"443", "/srv/up", "c.pem", "k.pem"}, addr: ":443", root: "/srv/up", cert: "c.pem", key: "k.pem"},
		{name: "flags win", args: []string{"--addr", "127.0.0.1:9", "--root", "r", "8081", "other"}, addr: "127.0.0.1:9", root: "r"},
		{name: "bad port", args: []string{"http"}, wantErr: errUsage},
		{name: "three args", args: []string{"80", "r", "c.pem"}, wantErr: errUsage},
		{name: "cert without key", args: []string{"--cert", "c.pem"}, wantErr: errUsage},
		{name: "help", args: []string{"-h"}, wantErr: pflag.ErrHelp},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFlags("test")
			f.set.SetOutput(&bytes.Buffer{})
			err := f.parse(tt.args)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.addr, f.addr)
			assert.Equal(t, tt.root, f.root)
			assert.Equal(t, tt.cert, f.cert)
			assert.Equal(t, tt.key, f.key)
		})
	}
}

func TestLoadConfig(t *testing.T) {
	t.Run("environment and flags", func(t *testing.T) {
		config.ResetCache()
		t.Setenv("HTTP_ADDR", ":7000")
		t.Setenv("STORAGE_ROOT", "/from/env")
		t.Setenv("UPLOAD_ALLOWED_TYPES", "image/png,text/plain")

		cfg, err := loadConfig([]string{"--root", "/from/flag", "--cert", "c.pem", "--key", "k.pem"})
		require.NoError(t, err)
		assert.Equal(t, ":7000", cfg.HTTP.Addr)
		assert.Equal(t, "/from/flag", cfg.Storage.Root)
		assert.Equal(t, "c.pem", cfg.HTTP.CertFile)
		assert.Equal(t, "k.pem", cfg.HTTP.KeyFile)
		assert.Equal(t, []string{"image/png", "text/plain"}, cfg.Upload.AllowedTypes)
		assert.Equal(t, int64(32<<20), cfg.Upload.MaxBodyBytes)
		assert.True(t, cfg.Upload.TrimBoundaryParams)
		assert.Equal(t, "local", cfg.Storage.Driver)
	})

	t.Run("yaml file", func(t *testing.T) {
		config.ResetCache()
		path := filepath.Join(t.TempDir(), "server.yaml")
		require.NoError(t, os.WriteFile(path, []byte(`
http:
  addr: ":9100"
  shutdown_timeout: 2s
log:
  format: text
storage:
  driver: s3
  s3:
    bucket: uploads
    region: eu-central-1
upload:
  max_file_bytes: 1024
`), 0600))

		cfg, err := loadConfig([]string{"--config", path})
		require.NoError(t, err)
		assert.Equal(t, ":9100", cfg.HTTP.Addr)
		assert.Equal(t, 2*time.Second, cfg.HTTP.ShutdownTimeout)
		assert.Equal(t, 30*time.Second, cfg.HTTP.ReadTimeout)
		assert.Equal(t, "text", cfg.Log.Format)
		assert.Equal(t, "s3", cfg.Storage.Driver)
		assert.Equal(t, "uploads", cfg.Storage.S3.Bucket)
		assert.Equal(t, int64(1024), cfg.Upload.MaxFileBytes)
	})

	t.Run("invalid driver", func(t *testing.T) {
		config.ResetCache()
		t.Setenv("STORAGE_DRIVER", "ftp")
		_, err := loadConfig(nil)
		require.ErrorIs(t, err, errUsage)
	})

	t.Run("invalid log format", func(t *testing.T) {
		config.ResetCache()
		t.Setenv("LOG_FORMAT", "xml")
		_, err := loadConfig(nil)
		require.ErrorIs(t, err, errUsage)
	})
}

func TestNewRouter(t *testing.T) {
	root := t.TempDir()
	cfg := Config{
		Storage: StorageConfig{Driver: "local", Root: root, BaseURL: "/"},
		Upload:  UploadConfig{MaxBodyBytes: 1 << 20, TrimBoundaryParams: true},
	}
	store, err := newStorage(t.Context(), cfg.Storage)
	require.NoError(t, err)
	h := newRouter(cfg, store, logger.Discard())

	t.Run("health", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "READY", rec.Body.String())
	})

	t.Run("upload then download", func(t *testing.T) {
		buf := &bytes.Buffer{}
		w := multipart.NewWriter(buf)
		require.NoError(t, w.WriteField("note", "hi"))
		fw, err := w.CreateFormFile("file", "hello.txt")
		require.NoError(t, err)
		_, err = fw.Write([]byte("hello, world"))
		require.NoError(t, err)
		require.NoError(t, w.Close())

		req := httptest.NewRequest(http.MethodPost, "/inbox/", buf)
		// Quoted boundary with a trailing parameter.
		req.Header.Set("Content-Type", `multipart/form-data; boundary="`+w.Boundary()+`"; charset=utf-8`)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

		var res upload.Result
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
		require.Len(t, res.Files, 1)
		assert.Equal(t, "inbox/hello.txt", res.Files[0].Path)
		assert.Equal(t, []string{"hi"}, res.Fields["note"])

		rec = httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/inbox/hello.txt", nil))
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "hello, world", rec.Body.String())
	})

	t.Run("storage root removed", func(t *testing.T) {
		require.NoError(t, os.RemoveAll(root))
		t.Cleanup(func() { _ = os.MkdirAll(root, 0755) })
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})
}

func TestNewStorage(t *testing.T) {
	_, err := newStorage(t.Context(), StorageConfig{Driver: "s3"})
	require.True(t, errors.Is(err, storage.ErrInvalidConfig))
}
