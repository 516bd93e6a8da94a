package app

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/atomicstack/composetag/internal/compose"
	"github.com/atomicstack/composetag/internal/logging/events"
	"github.com/atomicstack/composetag/internal/registry"
	"github.com/atomicstack/composetag/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
)

// DefaultFile is opened when no file is named.
const DefaultFile = "docker-compose.yml"

// Config describes user-provided application options.
type Config struct {
	FilePath    string
	InitialRepo string
	Registry    string
	PageSize    int
	Width       int
	Height      int
	ShowFooter  bool
}

// Run bootstraps and executes the Bubble Tea program. A missing file starts
// the editor in degraded mode.
func Run(ctx context.Context, cfg Config) error {
	file, err := LoadFile(cfg.FilePath)
	if err != nil {
		return err
	}
	model := ui.NewModel(ui.Options{
		Context:     ctx,
		Source:      NewSource(cfg),
		File:        file,
		InitialRepo: cfg.InitialRepo,
		Width:       cfg.Width,
		Height:      cfg.Height,
		ShowFooter:  cfg.ShowFooter,
	})
	defer model.Shutdown()

	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithFPS(30), tea.WithContext(ctx))
	_, err = program.Run()
	events.App.Quit(file != nil && file.Dirty())
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}

// LoadFile opens path. A missing file yields a nil File and no error.
func LoadFile(path string) (*compose.File, error) {
	if path == "" {
		path = DefaultFile
	}
	file, err := compose.Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		events.App.Degraded(path, err)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return file, nil
}

// NewSource routes Docker Hub repositories to the Hub API at cfg.Registry and
// everything else to the registry named in the repository.
func NewSource(cfg Config) registry.Source {
	hub := registry.NewHubSource(registry.WithBaseURL(cfg.Registry), registry.WithPageSize(cfg.PageSize))
	return registry.NewRouter(hub, registry.NewOCISource(cfg.PageSize))
}
