// pwck8s - terminal client for the Play With CK8S sandbox portal.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	log "github.com/sirupsen/logrus"

	"github.com/william86370/pwck8s/internal/cli"
	"github.com/william86370/pwck8s/internal/config"
	"github.com/william86370/pwck8s/internal/logging"
	"github.com/william86370/pwck8s/internal/portal"
	"github.com/william86370/pwck8s/internal/widget"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func init() {
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate
}

func main() {
	os.Exit(run())
}

func run() int {
	cmd, args := cli.Parse()

	switch cmd {
	case cli.CmdHelp:
		cli.PrintUsage(os.Stdout)
		return cli.ExitSuccess
	case cli.CmdVersion:
		if err := cli.RunVersion(os.Stdout, args.JSON); err != nil {
			return fail(err, args.JSON)
		}
		return cli.ExitSuccess
	case cli.CmdUnknown:
		return fail(cli.Run(context.Background(), cmd, args, &cli.Env{}), args.JSON)
	}

	configPath, err := resolveConfigPath(args)
	if err != nil {
		return fail(err, args.JSON)
	}
	cfg, err := loadConfig(configPath, args)
	if err != nil {
		return fail(err, args.JSON)
	}

	closer, err := setupLogging(cfg, cmd == cli.CmdTUI, args.Verbose)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: logging disabled: %v\n", err)
	}
	defer closer.Close()

	log.WithFields(log.Fields{
		"version": Version,
		"command": cmd.String(),
		"server":  cfg.Server.URL,
	}).Info("pwck8s starting")

	client := newClient(cfg)

	if cmd == cli.CmdTUI {
		if err := runTUI(cfg, configPath, args, client); err != nil {
			log.WithError(err).Error("tui exited with error")
			return fail(err, false)
		}
		return cli.ExitSuccess
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	env := &cli.Env{
		Client:     client,
		Config:     cfg,
		ConfigPath: configPath,
		Out:        os.Stdout,
		Err:        os.Stderr,
		JSON:       args.JSON,
	}
	if err := cli.Run(ctx, cmd, args, env); err != nil {
		log.WithError(err).Warn("command failed")
		return fail(err, args.JSON)
	}
	return cli.ExitSuccess
}

func fail(err error, jsonMode bool) int {
	if err == nil {
		return cli.ExitSuccess
	}
	out := io.Writer(os.Stderr)
	if jsonMode {
		out = os.Stdout
	}
	cli.DisplayError(out, err, jsonMode)
	return cli.ExitCodeFor(err)
}

func resolveConfigPath(args cli.Args) (string, error) {
	if args.ConfigPath != "" {
		return args.ConfigPath, nil
	}
	return config.ConfigPath()
}

// loadConfig loads the file with command-line overrides, which take
// precedence over both the file and the environment and are applied
// before validation.
func loadConfig(path string, args cli.Args) (*config.Config, error) {
	return config.LoadWithOverrides(path, flagOverrides(args))
}

func flagOverrides(args cli.Args) config.Override {
	return func(cfg *config.Config) {
		if args.ServerURL != "" {
			cfg.Server.URL = args.ServerURL
		}
		if args.UserDN != "" {
			cfg.Identity.UserDN = args.UserDN
		}
	}
}

// setupLogging sends logs to the rotated file. The TUI owns the terminal,
// so only non-interactive commands may mirror to stderr.
func setupLogging(cfg *config.Config, tui, verbose bool) (io.Closer, error) {
	level := cfg.Logging.Level
	if verbose {
		level = "debug"
	}
	file, err := cfg.LogPath()
	if err != nil {
		file = ""
	}
	return logging.Setup(logging.SetupParams{
		LogFileName:   file,
		LogToStderr:   verbose && !tui,
		LogLevel:      level,
		LogFormatJSON: cfg.Logging.JSON,
		MaxSizeMB:     cfg.Logging.MaxSizeMB,
		MaxBackups:    cfg.Logging.MaxBackups,
	})
}

func newClient(cfg *config.Config) *portal.Client {
	return portal.NewClient(cfg.Server.URL, cfg.Identity.UserDN).
		WithTimeout(cfg.Server.RequestTimeout.Duration).
		WithRateLimit(cfg.Server.RateLimit, cfg.Server.RateBurst).
		WithUserAgent("pwck8s/" + Version)
}

func runTUI(cfg *config.Config, configPath string, args cli.Args, client *portal.Client) error {
	var opts []tea.ProgramOption
	if cfg.UI.AltScreen {
		opts = append(opts, tea.WithAltScreen())
	}

	p := tea.NewProgram(widget.New(client, widget.OptionsFromConfig(cfg)), opts...)

	watcher, err := config.NewWatcher(configPath, func(reloaded *config.Config, err error) {
		p.Send(widget.ConfigReloadedMsg{Config: reloaded, Err: err})
	}, flagOverrides(args))
	if err != nil {
		log.WithError(err).Warn("config hot reload disabled")
	} else {
		defer watcher.Close()
	}

	_, err = p.Run()
	return err
}
