package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/atomicstack/composetag/internal/app"
	"github.com/atomicstack/composetag/internal/registry"
	"github.com/spf13/pflag"
)

// Config captures runtime configuration for the application.
type Config struct {
	App     app.Config
	Logging Logging
	Flags   map[string]string
	Args    []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

const (
	envFile     = "COMPOSETAG_FILE"
	envRepo     = "COMPOSETAG_REPO"
	envRegistry = "COMPOSETAG_REGISTRY"
	envPageSize = "COMPOSETAG_PAGE_SIZE"
	envWidth    = "COMPOSETAG_WIDTH"
	envHeight   = "COMPOSETAG_HEIGHT"
	envFooter   = "COMPOSETAG_FOOTER"
	envTrace    = "COMPOSETAG_TRACE"
	envLogFile  = "COMPOSETAG_LOG_FILE"
)

// maxPageSize is the largest page the Hub API serves.
const maxPageSize = 100

// Flags holds flag values registered on a flag set. Environment variables
// supply the defaults.
type Flags struct {
	file     *string
	repo     *string
	registry *string
	pageSize *int
	width    *int
	height   *int
	footer   *bool
	trace    *bool
	logFile  *string
}

// Register adds the application flags to fs.
func Register(fs *pflag.FlagSet, environ []string) *Flags {
	env := parseEnv(environ)
	return &Flags{
		file:     fs.StringP("file", "f", envOrDefault(env, envFile, app.DefaultFile), "service-definition file to edit"),
		repo:     fs.StringP("repo", "r", envOrDefault(env, envRepo, ""), "repository to list at startup"),
		registry: fs.String("registry", envOrDefault(env, envRegistry, registry.DefaultHubURL), "Docker Hub compatible API base URL"),
		pageSize: fs.Int("page-size", envOrInt(env, envPageSize, 25), "tags per page"),
		width:    fs.Int("width", envOrInt(env, envWidth, 0), "desired viewport width in cells (0 uses terminal width)"),
		height:   fs.Int("height", envOrInt(env, envHeight, 0), "desired viewport height in rows (0 uses terminal height)"),
		footer:   fs.Bool("footer", envOrBool(env, envFooter, true), "show the key hint row"),
		trace:    fs.Bool("trace", envOrBool(env, envTrace, false), "enable verbose JSON trace logging"),
		logFile:  fs.String("log-file", envOrDefault(env, envLogFile, ""), "path to the log file"),
	}
}

// Config resolves the parsed flags. A positional argument overrides --file.
func (f *Flags) Config(args []string) (Config, error) {
	if len(args) > 1 {
		return Config{}, fmt.Errorf("expected at most one file argument (got %d)", len(args))
	}
	file := *f.file
	if len(args) == 1 {
		file = args[0]
	}
	if *f.width < 0 {
		return Config{}, fmt.Errorf("width must be >= 0 (got %d)", *f.width)
	}
	if *f.height < 0 {
		return Config{}, fmt.Errorf("height must be >= 0 (got %d)", *f.height)
	}

	cfg := Config{
		App: app.Config{
			FilePath:    file,
			InitialRepo: strings.TrimSpace(*f.repo),
			Registry:    *f.registry,
			PageSize:    *f.pageSize,
			Width:       *f.width,
			Height:      *f.height,
			ShowFooter:  *f.footer,
		},
		Logging: Logging{
			FilePath: *f.logFile,
			Trace:    *f.trace,
		},
		Flags: map[string]string{
			"file":     file,
			"repo":     *f.repo,
			"registry": *f.registry,
			"pageSize": strconv.Itoa(*f.pageSize),
			"width":    strconv.Itoa(*f.width),
			"height":   strconv.Itoa(*f.height),
			"footer":   strconv.FormatBool(*f.footer),
			"trace":    strconv.FormatBool(*f.trace),
			"logFile":  *f.logFile,
		},
		Args: append([]string(nil), args...),
	}
	return cfg, nil
}

// Load parses configuration from CLI arguments and environment variables.
func Load() (Config, error) {
	return LoadArgs(os.Args[1:], os.Environ())
}

// LoadArgs allows tests to supply specific args/environment.
func LoadArgs(args []string, environ []string) (Config, error) {
	fs := pflag.NewFlagSet("composetag", pflag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))
	flags := Register(fs, environ)
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	cfg, err := flags.Config(fs.Args())
	if err != nil {
		return Config{}, err
	}
	cfg.Args = append([]string(nil), args...)
	return cfg, nil
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		values[parts[0]] = parts[1]
	}
	return values
}

func envOrDefault(env map[string]string, key, fallback string) string {
	if v, ok := env[key]; ok {
		return v
	}
	return fallback
}

func envOrInt(env map[string]string, key string, fallback int) int {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrBool(env map[string]string, key string, fallback bool) bool {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

// Validate checks values that flag parsing cannot.
func Validate(cfg Config) error {
	if cfg.App.PageSize < 1 || cfg.App.PageSize > maxPageSize {
		return fmt.Errorf("page size must be between 1 and %d (got %d)", maxPageSize, cfg.App.PageSize)
	}
	u, err := url.Parse(cfg.App.Registry)
	if err != nil {
		return fmt.Errorf("registry: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" || u.Host == "" {
		return fmt.Errorf("registry must be an http(s) URL (got %q)", cfg.App.Registry)
	}
	return nil
}
