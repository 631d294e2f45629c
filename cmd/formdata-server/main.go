// formdata-server accepts multipart/form-data uploads and stores every file
// part below a root directory or in an S3 bucket.
//
//	formdata-server [flags] [<port> [root] [cert key]]
//
// POST to any path stores the files of the body under that path and
// answers with a JSON summary. GET serves stored files when the local
// storage driver is used. /healthz reports readiness of the storage root.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/spf13/pflag"

	"github.com/dmitrymomot/formdata/pkg/clientip"
	"github.com/dmitrymomot/formdata/pkg/formdata"
	"github.com/dmitrymomot/formdata/pkg/httpserver"
	"github.com/dmitrymomot/formdata/pkg/logger"
	"github.com/dmitrymomot/formdata/pkg/requestid"
	"github.com/dmitrymomot/formdata/pkg/storage"
	"github.com/dmitrymomot/formdata/pkg/upload"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			newFlags("formdata-server").set.PrintDefaults()
			return
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	cfg, err := loadConfig(args)
	if err != nil {
		return err
	}

	log := logger.New(append(cfg.loggerOptions(),
		logger.WithContextExtractors(requestid.LoggerExtractor(), clientip.LoggerExtractor()),
	)...)
	logger.SetAsDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := newStorage(ctx, cfg.Storage)
	if err != nil {
		return err
	}

	srv := httpserver.NewFromConfig(cfg.HTTP, httpserver.WithLogger(log))
	return srv.Run(ctx, newRouter(cfg, store, log))
}

func newStorage(ctx context.Context, cfg StorageConfig) (storage.Storage, error) {
	switch strings.ToLower(cfg.Driver) {
	case "s3":
		return storage.NewS3Storage(ctx, cfg.S3)
	default:
		return storage.NewLocalStorage(cfg.Root, cfg.BaseURL)
	}
}

func newRouter(cfg Config, store storage.Storage, log *slog.Logger) http.Handler {
	opts := []upload.Option{
		upload.WithLogger(log),
		upload.WithMaxBodySize(cfg.Upload.MaxBodyBytes),
		upload.WithMaxFileSize(cfg.Upload.MaxFileBytes),
		upload.WithAllowedTypes(cfg.Upload.AllowedTypes...),
	}
	parserOpts := []formdata.Option{formdata.WithLogger(log)}
	if cfg.Upload.TrimBoundaryParams {
		parserOpts = append(parserOpts, formdata.WithParamTrimming())
	}
	opts = append(opts, upload.WithParserOptions(parserOpts...))

	var checks []httpserver.Check
	if local, ok := store.(*storage.LocalStorage); ok {
		opts = append(opts, upload.WithStaticRoot(local.BaseDir()))
		checks = append(checks, func(context.Context) error {
			info, err := os.Stat(local.BaseDir())
			if err != nil {
				return err
			}
			if !info.IsDir() {
				return fmt.Errorf("%s: %w", local.BaseDir(), storage.ErrInvalidConfig)
			}
			return nil
		})
	}

	r := chi.NewRouter()
	r.Get("/healthz", httpserver.HealthCheckHandler(log, checks...))
	r.Mount("/", upload.NewHandler(store, opts...).Router())
	return r
}
