package config

import (
	"strings"
	"testing"

	"github.com/atomicstack/composetag/internal/app"
	"github.com/atomicstack/composetag/internal/registry"
)

func TestLoadArgsDefaults(t *testing.T) {
	cfg, err := LoadArgs(nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.App.FilePath != app.DefaultFile {
		t.Fatalf("expected default file, got %q", cfg.App.FilePath)
	}
	if cfg.App.Registry != registry.DefaultHubURL {
		t.Fatalf("expected hub registry, got %q", cfg.App.Registry)
	}
	if cfg.App.PageSize != 25 || !cfg.App.ShowFooter {
		t.Fatalf("unexpected defaults %#v", cfg.App)
	}
	if err := Validate(cfg); err != nil {
		t.Fatalf("expected defaults to validate, got %v", err)
	}
}

func TestLoadArgsPositionalFileWins(t *testing.T) {
	cfg, err := LoadArgs([]string{"--file", "a.yml", "b.yml"}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.App.FilePath != "b.yml" {
		t.Fatalf("expected positional file, got %q", cfg.App.FilePath)
	}
	if cfg.Flags["file"] != "b.yml" {
		t.Fatalf("expected flags map to carry resolved file, got %q", cfg.Flags["file"])
	}
	if len(cfg.Args) != 3 {
		t.Fatalf("expected raw args retained, got %v", cfg.Args)
	}
}

func TestLoadArgsEnvironmentFallbacks(t *testing.T) {
	env := []string{
		"COMPOSETAG_FILE=stack.yml",
		"COMPOSETAG_REPO=  bitnami/redis ",
		"COMPOSETAG_PAGE_SIZE=50",
		"COMPOSETAG_WIDTH=80",
		"COMPOSETAG_FOOTER=false",
		"COMPOSETAG_TRACE=true",
		"COMPOSETAG_LOG_FILE=/tmp/composetag.log",
		"COMPOSETAG_HEIGHT=oops",
	}
	cfg, err := LoadArgs(nil, env)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.App.FilePath != "stack.yml" || cfg.App.InitialRepo != "bitnami/redis" {
		t.Fatalf("unexpected app config %#v", cfg.App)
	}
	if cfg.App.PageSize != 50 || cfg.App.Width != 80 || cfg.App.Height != 0 || cfg.App.ShowFooter {
		t.Fatalf("unexpected app config %#v", cfg.App)
	}
	if !cfg.Logging.Trace || cfg.Logging.FilePath != "/tmp/composetag.log" {
		t.Fatalf("unexpected logging config %#v", cfg.Logging)
	}
}

func TestFlagsOverrideEnvironment(t *testing.T) {
	cfg, err := LoadArgs([]string{"--page-size", "10", "-r", "mysql"}, []string{"COMPOSETAG_PAGE_SIZE=50", "COMPOSETAG_REPO=nginx"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.App.PageSize != 10 || cfg.App.InitialRepo != "mysql" {
		t.Fatalf("expected flags to win, got %#v", cfg.App)
	}
}

func TestLoadArgsRejectsNegativeSize(t *testing.T) {
	if _, err := LoadArgs([]string{"--width", "-1"}, nil); err == nil || !strings.Contains(err.Error(), "width") {
		t.Fatalf("expected width error, got %v", err)
	}
	if _, err := LoadArgs([]string{"a.yml", "b.yml"}, nil); err == nil {
		t.Fatal("expected error for two file arguments")
	}
	if _, err := LoadArgs([]string{"--nope"}, nil); err == nil {
		t.Fatal("expected unknown flag error")
	}
}

func TestValidate(t *testing.T) {
	cfg, err := LoadArgs([]string{"--page-size", "0"}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := Validate(cfg); err == nil {
		t.Fatal("expected page size error")
	}
	cfg, err = LoadArgs([]string{"--registry", "hub.docker.com"}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := Validate(cfg); err == nil {
		t.Fatal("expected registry scheme error")
	}
}
