package main

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/spf13/pflag"

	"github.com/dmitrymomot/formdata/pkg/config"
	"github.com/dmitrymomot/formdata/pkg/httpserver"
	"github.com/dmitrymomot/formdata/pkg/logger"
	"github.com/dmitrymomot/formdata/pkg/storage"
)

// Config is the server configuration. Values come from the environment,
// optionally layered over a YAML file, and are finally overridden by flags.
type Config struct {
	HTTP    httpserver.Config `yaml:"http"`
	Log     LogConfig         `yaml:"log"`
	Storage StorageConfig     `yaml:"storage"`
	Upload  UploadConfig      `yaml:"upload"`
}

// LogConfig selects the logger level, output format and service name.
type LogConfig struct {
	Level   string `env:"LOG_LEVEL" envDefault:"info" yaml:"level"`                // debug, info, warn or error
	Format  string `env:"LOG_FORMAT" envDefault:"json" yaml:"format"`              // json or text
	Env     string `env:"APP_ENV" yaml:"env"`                                      // Environment preset; overrides Level and Format when set
	Service string `env:"APP_SERVICE" envDefault:"formdata-server" yaml:"service"` // Added to every record as the service attribute
}

// StorageConfig picks the backend that receives uploaded file parts.
type StorageConfig struct {
	Driver  string           `env:"STORAGE_DRIVER" envDefault:"local" yaml:"driver"` // "local" or "s3"
	Root    string           `env:"STORAGE_ROOT" envDefault:"./uploads" yaml:"root"` // Base directory for the local driver
	BaseURL string           `env:"STORAGE_BASE_URL" envDefault:"/" yaml:"base_url"` // URL prefix for stored files (local driver)
	S3      storage.S3Config `yaml:"s3"`                                             // Used only when Driver is s3
}

// UploadConfig limits what the upload endpoint accepts and how it reads the
// multipart boundary.
type UploadConfig struct {
	MaxBodyBytes       int64    `env:"UPLOAD_MAX_BODY_BYTES" envDefault:"33554432" yaml:"max_body_bytes"`         // Whole request body; larger bodies get 413
	MaxFileBytes       int64    `env:"UPLOAD_MAX_FILE_BYTES" yaml:"max_file_bytes"`                               // Per file part; zero disables the check
	AllowedTypes       []string `env:"UPLOAD_ALLOWED_TYPES" envSeparator:"," yaml:"allowed_types"`                // MIME types accepted for files; empty allows any
	TrimBoundaryParams bool     `env:"UPLOAD_TRIM_BOUNDARY_PARAMS" envDefault:"true" yaml:"trim_boundary_params"` // Cut the boundary at ';' and strip quotes
}

var errUsage = errors.New("usage")

// flags holds command line overrides.
type flags struct {
	set        *pflag.FlagSet
	addr       string
	root       string
	cert       string
	key        string
	configFile string
}

func newFlags(name string) *flags {
	f := &flags{set: pflag.NewFlagSet(name, pflag.ContinueOnError)}
	f.set.StringVar(&f.addr, "addr", "", "listen address, e.g. :8080 (overrides HTTP_ADDR)")
	f.set.StringVar(&f.root, "root", "", "directory for stored uploads (overrides STORAGE_ROOT)")
	f.set.StringVar(&f.cert, "cert", "", "TLS certificate file")
	f.set.StringVar(&f.key, "key", "", "TLS private key file")
	f.set.StringVar(&f.configFile, "config", "", "YAML config file; environment variables override it")
	f.set.BoolP("help", "h", false, "show help")
	return f
}

// parse reads flags and the positional form "<port> [root] [cert key]".
func (f *flags) parse(args []string) error {
	if err := f.set.Parse(args); err != nil {
		return err
	}
	if help, _ := f.set.GetBool("help"); help {
		return pflag.ErrHelp
	}

	rest := f.set.Args()
	switch len(rest) {
	case 0, 1, 2, 4:
	default:
		return fmt.Errorf("%w: expected <port> [root] [cert key], got %d arguments", errUsage, len(rest))
	}
	if len(rest) > 0 && f.addr == "" {
		if _, err := strconv.ParseUint(rest[0], 10, 16); err != nil {
			return fmt.Errorf("%w: invalid port %q", errUsage, rest[0])
		}
		f.addr = ":" + rest[0]
	}
	if len(rest) > 1 && f.root == "" {
		f.root = rest[1]
	}
	if len(rest) == 4 && f.cert == "" && f.key == "" {
		f.cert, f.key = rest[2], rest[3]
	}
	if (f.cert == "") != (f.key == "") {
		return fmt.Errorf("%w: --cert and --key must be given together", errUsage)
	}
	return nil
}

// loadConfig resolves the configuration for args.
func loadConfig(args []string) (Config, error) {
	f := newFlags("formdata-server")
	if err := f.parse(args); err != nil {
		return Config{}, err
	}

	var cfg Config
	if f.configFile != "" {
		if err := config.LoadFile(f.configFile, &cfg); err != nil {
			return Config{}, err
		}
	} else if err := config.Load(&cfg); err != nil {
		return Config{}, err
	}

	if f.addr != "" {
		cfg.HTTP.Addr = f.addr
	}
	if f.root != "" {
		cfg.Storage.Root = f.root
	}
	if f.cert != "" {
		cfg.HTTP.CertFile, cfg.HTTP.KeyFile = f.cert, f.key
	}

	return cfg, cfg.validate()
}

func (c Config) validate() error {
	switch strings.ToLower(c.Storage.Driver) {
	case "local", "s3":
	default:
		return fmt.Errorf("%w: unknown storage driver %q", errUsage, c.Storage.Driver)
	}
	switch logger.Format(c.Log.Format) {
	case logger.FormatJSON, logger.FormatText:
	default:
		return fmt.Errorf("%w: unknown log format %q", errUsage, c.Log.Format)
	}
	return nil
}

func (c Config) loggerOptions() []logger.Option {
	opts := []logger.Option{
		logger.WithFormat(logger.Format(c.Log.Format)),
		logger.WithLevelName(c.Log.Level),
	}
	if c.Log.Env != "" {
		// The environment preset decides level and format.
		opts = []logger.Option{logger.WithEnvironment(c.Log.Env, c.Log.Service)}
	} else if c.Log.Service != "" {
		opts = append(opts, logger.WithAttr(slog.String("service", c.Log.Service)))
	}
	return opts
}
