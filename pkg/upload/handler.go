package upload

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"path"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/klauspost/compress/gzhttp"

	"github.com/dmitrymomot/formdata/pkg/clientip"
	"github.com/dmitrymomot/formdata/pkg/formdata"
	"github.com/dmitrymomot/formdata/pkg/logger"
	"github.com/dmitrymomot/formdata/pkg/requestid"
	"github.com/dmitrymomot/formdata/pkg/storage"
)

// StoredFile is one saved file part in a Result.
type StoredFile struct {
	Field    string `json:"field"`
	Filename string `json:"filename"`
	Path     string `json:"path"`
	URL      string `json:"url"`
	Size     int64  `json:"size"`
	MIMEType string `json:"mime_type"`
	Checksum string `json:"checksum"`
}

// Result is the JSON body answered to a successful upload.
type Result struct {
	RequestID string              `json:"request_id,omitempty"`
	Parts     int                 `json:"parts"`
	Fields    map[string][]string `json:"fields"`
	Files     []StoredFile        `json:"files"`
}

type errorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

// Handler stores multipart uploads and serves stored files.
type Handler struct {
	store      storage.Storage
	log        *slog.Logger
	maxBody    int64
	maxFile    int64
	allowed    []string
	parserOpts []formdata.Option
	staticRoot string
	files      http.Handler
}

// NewHandler returns a Handler saving files to store.
func NewHandler(store storage.Storage, opts ...Option) *Handler {
	h := &Handler{
		store: store,
		log:   logger.Discard(),
	}
	for _, opt := range opts {
		opt(h)
	}
	h.log = h.log.With(logger.Component("upload"))
	if h.staticRoot != "" {
		h.files = gzhttp.GzipHandler(http.FileServer(http.Dir(h.staticRoot)))
	}
	return h
}

// Router mounts the upload and download routes. Methods other than GET,
// HEAD and POST are answered with 405.
func (h *Handler) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(requestid.Middleware, clientip.Middleware)

	r.Post("/*", h.Upload)
	if h.staticRoot != "" {
		r.Get("/*", h.Download)
		r.Head("/*", h.Download)
	}

	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		h.writeError(w, r, http.StatusMethodNotAllowed, errors.New(http.StatusText(http.StatusMethodNotAllowed)))
	})
	return r
}

// Upload parses the request body and stores its file parts under the
// request path. Text parts are returned in the summary.
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	dir := uploadDir(routePath(r))

	if h.maxBody > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxBody)
	}

	p, err := formdata.ParseRequest(r, h.maxBody, h.parserOpts...)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, formdata.ErrBodyTooLarge) {
			status = http.StatusRequestEntityTooLarge
		}
		h.log.WarnContext(ctx, "upload rejected", logger.Error(err), logger.Path(dir))
		h.writeError(w, r, status, err)
		return
	}
	if p.Status() == formdata.StatusTruncated {
		h.log.WarnContext(ctx, "upload rejected", logger.Error(p.Err()), logger.Parts(p.Len()))
		h.writeError(w, r, http.StatusBadRequest, ErrTruncatedUpload)
		return
	}

	result := Result{
		RequestID: requestid.FromContext(ctx),
		Parts:     p.Len(),
		Fields:    make(map[string][]string),
		Files:     []StoredFile{},
	}

	c := p.Cursor()
	for i := 0; ; i++ {
		name, ok := c.Next()
		if !ok {
			break
		}
		if name == "" {
			continue
		}

		part, _ := c.Part(i)
		if !part.IsFile() {
			result.Fields[name] = append(result.Fields[name], string(part.Value()))
			h.log.DebugContext(ctx, "text field", logger.Field(name), logger.Bytes(len(part.Value())))
			continue
		}
		// Browsers send an empty file name for an empty file input.
		filename, _ := part.FileName()
		if filename == "" {
			continue
		}

		u := storage.Upload{Field: name, Filename: filename, Content: part.Value()}
		stored, status, err := h.save(r, u, dir)
		if err != nil {
			h.log.ErrorContext(ctx, "store file failed",
				logger.Error(err), logger.Field(name), logger.Filename(filename))
			h.writeError(w, r, status, err)
			return
		}
		result.Files = append(result.Files, stored)
		h.log.InfoContext(ctx, "file stored",
			logger.Field(name), logger.Filename(filename), logger.Path(stored.Path), logger.Bytes(int(stored.Size)))
	}

	h.writeJSON(w, http.StatusCreated, result)
}

// Download serves a stored file from the static root. Responses are gzip
// compressed for clients that accept it.
func (h *Handler) Download(w http.ResponseWriter, r *http.Request) {
	if h.files == nil {
		h.writeError(w, r, http.StatusNotFound, errors.New(http.StatusText(http.StatusNotFound)))
		return
	}
	r = r.Clone(r.Context())
	r.URL.Path = "/" + strings.TrimPrefix(routePath(r), "/")
	h.files.ServeHTTP(w, r)
}

func (h *Handler) save(r *http.Request, u storage.Upload, dir string) (StoredFile, int, error) {
	if h.maxFile > 0 {
		if err := storage.ValidateSize(u, h.maxFile); err != nil {
			return StoredFile{}, http.StatusRequestEntityTooLarge, errors.Join(ErrRejected, err)
		}
	}
	if err := storage.ValidateMIMEType(u, h.allowed...); err != nil {
		return StoredFile{}, http.StatusUnsupportedMediaType, errors.Join(ErrRejected, err)
	}

	f, err := h.store.Save(r.Context(), u, dir)
	if err != nil {
		if errors.Is(err, storage.ErrInvalidPath) {
			return StoredFile{}, http.StatusBadRequest, errors.Join(ErrStore, err)
		}
		return StoredFile{}, http.StatusInternalServerError, errors.Join(ErrStore, err)
	}

	return StoredFile{
		Field:    u.Field,
		Filename: f.Filename,
		Path:     f.RelativePath,
		URL:      h.store.URL(f.RelativePath),
		Size:     f.Size,
		MIMEType: f.MIMEType,
		Checksum: f.Checksum,
	}, 0, nil
}

// routePath returns the path below the router mount point.
func routePath(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		for i := len(rctx.URLParams.Keys) - 1; i >= 0; i-- {
			if rctx.URLParams.Keys[i] == "*" {
				return rctx.URLParams.Values[i]
			}
		}
	}
	return r.URL.Path
}

// uploadDir maps a request path to a storage directory with a trailing
// slash; the root maps to "".
func uploadDir(urlPath string) string {
	dir := strings.Trim(path.Clean("/"+urlPath), "/")
	if dir == "" {
		return ""
	}
	return dir + "/"
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, status int, err error) {
	msg := err.Error()
	if status >= http.StatusInternalServerError {
		msg = http.StatusText(status)
	}
	h.writeJSON(w, status, errorResponse{Error: msg, RequestID: requestid.FromContext(r.Context())})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.log.Error("write response failed", logger.Error(fmt.Errorf("encode %T: %w", v, err)))
	}
}
