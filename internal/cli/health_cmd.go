// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/william86370/pwck8s/internal/ui/styles"
)

// HealthInfo is the --json payload for health.
type HealthInfo struct {
	Server  string `json:"server"`
	Healthy bool   `json:"healthy"`
	Latency string `json:"latency"`
}

// RunHealth checks the backend liveness endpoint.
func RunHealth(ctx context.Context, env *Env) error {
	start := time.Now()
	err := env.Client.Health(ctx)
	info := HealthInfo{
		Healthy: err == nil,
		Latency: time.Since(start).Round(time.Millisecond).String(),
	}
	if env.Config != nil {
		info.Server = env.Config.Server.URL
	}
	if err != nil {
		return NewCommandError("health", err, "")
	}

	if env.JSON {
		return NewJSONResponse("health", info).Print(env.out())
	}
	fmt.Fprintln(env.out(), styles.RenderSuccess("Backend healthy"))
	if info.Server != "" {
		fmt.Fprintln(env.out(), field("Server", info.Server))
	}
	fmt.Fprintln(env.out(), field("Latency", info.Latency))
	return nil
}
