// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"os"

	"github.com/william86370/pwck8s/internal/config"
	"github.com/william86370/pwck8s/internal/ui/styles"
)

// RunConfig handles "config show", "config path" and "config init".
func RunConfig(env *Env, p *ArgParser) error {
	switch sub := p.Subcommand(); sub {
	case "", "show":
		return configShow(env)
	case "path":
		if env.JSON {
			return NewJSONResponse("config", map[string]string{"path": env.ConfigPath}).Print(env.out())
		}
		fmt.Fprintln(env.out(), env.ConfigPath)
		return nil
	case "init":
		return configInit(env, p.BoolFlag("force"))
	default:
		return NewUsageError("config", sub, "must be show, path or init")
	}
}

func configShow(env *Env) error {
	cfg := env.Config
	if cfg == nil {
		cfg = config.Default()
	}
	if env.JSON {
		return NewJSONResponse("config", cfg).Print(env.out())
	}
	data, err := cfg.TOML()
	if err != nil {
		return NewCommandError("config", err, "")
	}
	fmt.Fprintln(env.out(), MutedStyle.Render("# "+env.ConfigPath))
	_, err = env.out().Write(data)
	return err
}

func configInit(env *Env, force bool) error {
	if env.ConfigPath == "" {
		return NewUsageError("--config", "", "config path is empty")
	}
	if _, err := os.Stat(env.ConfigPath); err == nil && !force {
		return NewCommandError("config",
			fmt.Errorf("%s already exists", env.ConfigPath),
			"Pass --force to overwrite it.")
	}

	cfg := env.Config
	if cfg == nil {
		cfg = config.Default()
	}
	if err := config.SaveTOML(cfg, env.ConfigPath); err != nil {
		return NewCommandError("config", err, "")
	}

	if env.JSON {
		return NewJSONResponse("config", map[string]string{"path": env.ConfigPath}).Print(env.out())
	}
	fmt.Fprintln(env.out(), styles.RenderSuccess("Wrote "+env.ConfigPath))
	return nil
}
