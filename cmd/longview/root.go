package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gdamore/tcell/v3"
	"github.com/spf13/cobra"

	"github.com/ayn2op/longview"
	"github.com/ayn2op/longview/help"
	"github.com/ayn2op/longview/internal/config"
	"github.com/ayn2op/longview/internal/logging"
	"github.com/ayn2op/longview/internal/store"
	"github.com/ayn2op/longview/window"
)

var errNoInput = errors.New("no input: pass a file or --generate N")

type options struct {
	configPath string
	generate   int
	debug      bool
	follow     bool
	latency    time.Duration
	readAhead  int
}

func newRootCmd() *cobra.Command {
	var opts options
	cmd := &cobra.Command{
		Use:   "longview [file]",
		Short: "Scroll through files of any length in the terminal",
		Long: `longview shows a file, or a generated data set, in a virtualized list.
Only the rows on screen are kept in the frame; rows outside the read-ahead cache
are fetched asynchronously and drawn as placeholders until they arrive.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := config.Load(opts.configPath)
			if err != nil {
				return fmt.Errorf("error loading config: %w", err)
			}
			applyFlags(cmd, &cfg, opts)
			return run(cmd.Context(), cfg, opts, args)
		},
	}
	cmd.Version = version
	cmd.SetVersionTemplate(versionTemplate())

	flags := cmd.Flags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "Path to config.toml (default $XDG_CONFIG_HOME/longview/config.toml)")
	flags.IntVarP(&opts.generate, "generate", "g", 0, "Show N generated rows instead of a file")
	flags.BoolVar(&opts.debug, "debug", false, "Enable debug logging")
	flags.BoolVarP(&opts.follow, "follow", "f", false, "Append rows as the file grows")
	flags.DurationVar(&opts.latency, "latency", 0, "Delay of rows outside the read-ahead cache")
	flags.IntVar(&opts.readAhead, "read-ahead", 0, "Rows cached around the visible frame")
	return cmd
}

func versionTemplate() string {
	if commit != "none" && commit != "" {
		return fmt.Sprintf("longview %s\n  commit: %s\n  built:  %s\n", version, commit, date)
	}
	return fmt.Sprintf("longview %s\n", version)
}

// applyFlags lets explicitly set flags override the configuration file.
func applyFlags(cmd *cobra.Command, cfg *config.Config, opts options) {
	flags := cmd.Flags()
	if flags.Changed("latency") {
		cfg.Store.Latency.Duration = max(opts.latency, 0)
	}
	if flags.Changed("read-ahead") {
		cfg.Store.ReadAhead = max(opts.readAhead, 0)
	}
	if opts.debug {
		cfg.Log.Level = "debug"
	}
}

func loadRows(args []string, generate int) ([]string, string, error) {
	if generate > 0 {
		return store.Generate(generate), fmt.Sprintf("%d generated rows", generate), nil
	}
	if len(args) == 0 {
		return nil, "", errNoInput
	}
	f, err := os.Open(args[0])
	if err != nil {
		return nil, "", fmt.Errorf("open input: %w", err)
	}
	defer f.Close()
	rows, err := store.ReadLines(f)
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", args[0], err)
	}
	return rows, filepath.Base(args[0]), nil
}

func run(ctx context.Context, cfg config.Config, opts options, args []string) error {
	level, err := cfg.Level()
	if err != nil {
		return err
	}
	logger, err := logging.Open(cfg.Log.Path, level)
	if err != nil {
		return err
	}
	defer logger.Close()

	rows, title, err := loadRows(args, opts.generate)
	if err != nil {
		return err
	}
	logger.Info("loaded rows", "source", title, "count", len(rows))

	mem := store.NewMemory(
		store.WithRows(rows),
		store.WithLatency(cfg.Store.Latency.Duration),
		store.WithReadAhead(cfg.Store.ReadAhead),
		store.WithLogger(logger.Component("store")),
	)

	app := longview.NewApplication().
		SetLogger(logger.Component("app")).
		EnableMouse(true)

	list := longview.NewInfiniteList(mem, app,
		window.WithSettings(cfg.Settings()),
		window.WithLogger(logger.Component("window")),
	)
	list.SetShowIndex(cfg.UI.ShowIndex).SetWheelStep(cfg.Window.WheelStep)
	if err := cfg.ApplyKeys(list.Keymap()); err != nil {
		return err
	}
	borders, borderSet, err := longview.ParseBorders(cfg.UI.Border)
	if err != nil {
		return err
	}
	list.SetBorders(borders)
	list.SetBorderSet(borderSet)
	list.SetTitle(" " + title + " ")

	unsubscribe := mem.Subscribe(app.Listener(list.Engine()))
	defer unsubscribe()

	root := longview.NewColumn().AddItem(list, 0)
	helpBar := help.New(list.Keymap())
	if cfg.UI.ShowHelp {
		root.AddItem(helpBar, 1)
	}
	root.SetInputCapture(func(event *tcell.EventKey) longview.Command {
		km := list.Keymap()
		switch {
		case km.Quit.Matches(event):
			return longview.QuitCommand{}
		case cfg.UI.ShowHelp && km.Help.Matches(event):
			helpBar.Toggle()
			return longview.RedrawCommand{}
		}
		return nil
	})
	app.SetRoot(root)

	if opts.follow && len(args) > 0 && opts.generate <= 0 {
		ctx, cancel := context.WithCancel(ctx)
		defer cancel()
		go follow(ctx, args[0], mem, logger.Component("follow"))
	}

	if err := app.Run(); err != nil {
		return fmt.Errorf("error running app: %w", err)
	}
	return nil
}
