package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/atomicstack/composetag/internal/app"
	"github.com/atomicstack/composetag/internal/config"
	"github.com/atomicstack/composetag/internal/logging"
	"github.com/atomicstack/composetag/internal/logging/events"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := newRootCmd(os.Environ()).ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(environ []string) *cobra.Command {
	var flags *config.Flags
	cmd := &cobra.Command{
		Use:           "composetag [file]",
		Short:         "Pick image tags from a registry and write them into a compose file",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			runtimeCfg, err := loadConfig(flags, args)
			if err != nil {
				return err
			}
			traceStartup(runtimeCfg)
			if err := app.Run(cmd.Context(), runtimeCfg.App); err != nil {
				logging.Error(err)
				fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
				return err
			}
			return nil
		},
	}
	flags = config.Register(cmd.PersistentFlags(), environ)
	cmd.AddCommand(newTagsCmd(func() *config.Flags { return flags }))
	cmd.AddCommand(newVersionCmd())
	return cmd
}

func loadConfig(flags *config.Flags, args []string) (config.Config, error) {
	runtimeCfg, err := flags.Config(args)
	if err == nil {
		err = config.Validate(runtimeCfg)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		return config.Config{}, err
	}
	logging.Configure(runtimeCfg.Logging.FilePath)
	logging.SetTraceEnabled(runtimeCfg.Logging.Trace)
	return runtimeCfg, nil
}

func newTagsCmd(flags func() *config.Flags) *cobra.Command {
	var (
		cursor string
		filter string
	)
	cmd := &cobra.Command{
		Use:   "tags <repository>",
		Short: "Print one page of tags for a repository",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runtimeCfg, err := loadConfig(flags(), nil)
			if err != nil {
				return err
			}
			err = app.ListTags(cmd.Context(), cmd.OutOrStdout(), app.NewSource(runtimeCfg.App), app.ListOptions{
				Repo:   args[0],
				Cursor: cursor,
				Filter: filter,
			})
			if err != nil {
				logging.Error(err)
				fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
			}
			return err
		},
	}
	cmd.Flags().StringVar(&cursor, "page", "", "page cursor printed by a previous listing")
	cmd.Flags().StringVar(&filter, "filter", "", "fuzzy filter applied to tag names")
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of composetag",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "composetag %s\n", version)
		},
	}
}

func traceStartup(cfg config.Config) {
	events.App.Start(startupTracePayload(cfg))
}

// startupTracePayload bundles runtime context for trace logging.
func startupTracePayload(cfg config.Config) map[string]interface{} {
	flags := make(map[string]interface{}, len(cfg.Flags))
	for k, v := range cfg.Flags {
		flags[k] = v
	}
	flags["trace"] = cfg.Logging.Trace
	flags["logFile"] = cfg.Logging.FilePath
	payload := map[string]interface{}{
		"argv":    cfg.Args,
		"flags":   flags,
		"config":  cfg,
		"version": version,
	}
	if exe, err := os.Executable(); err == nil {
		payload["executable"] = exe
	} else {
		payload["executableError"] = err.Error()
	}
	if cwd, err := os.Getwd(); err == nil {
		payload["cwd"] = cwd
	} else {
		payload["cwdError"] = err.Error()
	}
	payload["tty"] = collectTTYDetails()
	return payload
}

type ttyDetails struct {
	Detected *ttyDetected     `json:"detected,omitempty"`
	Probes   []ttyProbeResult `json:"probes"`
}

type ttyDetected struct {
	Source string `json:"source"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

type ttyProbeResult struct {
	Name       string `json:"name"`
	IsTerminal bool   `json:"is_terminal"`
	Width      int    `json:"width,omitempty"`
	Height     int    `json:"height,omitempty"`
	Error      string `json:"error,omitempty"`
}

// collectTTYDetails inspects standard descriptors for terminal support and dimensions.
func collectTTYDetails() ttyDetails {
	probes := []struct {
		name string
		fd   uintptr
	}{
		{"stdin", os.Stdin.Fd()},
		{"stdout", os.Stdout.Fd()},
		{"stderr", os.Stderr.Fd()},
	}
	results := make([]ttyProbeResult, 0, len(probes))
	var detected *ttyDetected
	for _, probe := range probes {
		entry := ttyProbeResult{Name: probe.name}
		fd := int(probe.fd)
		if fd >= 0 && term.IsTerminal(fd) {
			entry.IsTerminal = true
			if width, height, err := term.GetSize(fd); err == nil {
				entry.Width = width
				entry.Height = height
				if detected == nil {
					detected = &ttyDetected{Source: probe.name, Width: width, Height: height}
				}
			} else {
				entry.Error = err.Error()
			}
		}
		results = append(results, entry)
	}
	return ttyDetails{Detected: detected, Probes: results}
}
