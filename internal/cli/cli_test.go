// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/william86370/pwck8s/internal/config"
	"github.com/william86370/pwck8s/internal/portal"
)

func TestParseArgs_Commands(t *testing.T) {
	tests := []struct {
		args []string
		want Command
	}{
		{nil, CmdTUI},
		{[]string{"tui"}, CmdTUI},
		{[]string{"status"}, CmdStatus},
		{[]string{"s"}, CmdStatus},
		{[]string{"LOGIN"}, CmdLogin},
		{[]string{"logout"}, CmdLogout},
		{[]string{"watch", "--interval", "2s"}, CmdWatch},
		{[]string{"health"}, CmdHealth},
		{[]string{"open"}, CmdOpen},
		{[]string{"config", "show"}, CmdConfig},
		{[]string{"--version"}, CmdVersion},
		{[]string{"-h"}, CmdHelp},
		{[]string{"bogus"}, CmdUnknown},
	}

	for _, tt := range tests {
		got, _ := ParseArgs(tt.args)
		if got != tt.want {
			t.Errorf("ParseArgs(%v) = %v, want %v", tt.args, got, tt.want)
		}
	}
}

func TestParseArgs_GlobalFlagsAnywhere(t *testing.T) {
	cmd, args := ParseArgs([]string{
		"--server", "http://portal:8080",
		"status",
		"--user-dn=CN=wawrig2",
		"--json",
		"-v",
		"--config", "/tmp/pwck8s.toml",
	})

	if cmd != CmdStatus {
		t.Fatalf("cmd = %v, want status", cmd)
	}
	if args.ServerURL != "http://portal:8080" {
		t.Errorf("ServerURL = %q", args.ServerURL)
	}
	if args.UserDN != "CN=wawrig2" {
		t.Errorf("UserDN = %q", args.UserDN)
	}
	if !args.JSON || !args.Verbose {
		t.Errorf("JSON=%v Verbose=%v, want both true", args.JSON, args.Verbose)
	}
	if args.ConfigPath != "/tmp/pwck8s.toml" {
		t.Errorf("ConfigPath = %q", args.ConfigPath)
	}
	if len(args.Raw) != 0 {
		t.Errorf("Raw = %v, want empty", args.Raw)
	}
}

func TestParseArgs_RawAndUnknown(t *testing.T) {
	_, args := ParseArgs([]string{"config", "init", "--force"})
	if len(args.Raw) != 2 || args.Raw[0] != "init" || args.Raw[1] != "--force" {
		t.Errorf("Raw = %v", args.Raw)
	}

	cmd, args := ParseArgs([]string{"frobnicate"})
	if cmd != CmdUnknown || args.Unknown != "frobnicate" {
		t.Errorf("got %v %q", cmd, args.Unknown)
	}
}

func TestCommandString(t *testing.T) {
	if CmdWatch.String() != "watch" {
		t.Errorf("CmdWatch.String() = %q", CmdWatch.String())
	}
	if Command(99).String() != "unknown" {
		t.Errorf("Command(99).String() = %q", Command(99).String())
	}
}

func TestArgParser(t *testing.T) {
	p := NewArgParser([]string{"init", "--force", "--interval", "250ms", "--name=value", "--print=false"})

	if p.Subcommand() != "init" {
		t.Errorf("Subcommand = %q", p.Subcommand())
	}
	if !p.BoolFlag("force") || !p.BoolFlag("--force") {
		t.Error("force should be set")
	}
	if p.BoolFlag("print") {
		t.Error("--print=false should be false")
	}
	if p.Flag("name") != "value" {
		t.Errorf("name = %q", p.Flag("name"))
	}

	d, err := p.DurationFlag("interval", time.Second)
	if err != nil || d != 250*time.Millisecond {
		t.Errorf("interval = %v, %v", d, err)
	}
	d, err = p.DurationFlag("missing", time.Second)
	if err != nil || d != time.Second {
		t.Errorf("missing = %v, %v", d, err)
	}

	bad := NewArgParser([]string{"--interval", "soon"})
	if _, err := bad.DurationFlag("interval", time.Second); !errors.Is(err, ErrUsage) {
		t.Errorf("bad duration err = %v, want ErrUsage", err)
	}
}

func TestExitCodeFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"usage", NewUsageError("--x", "y", "bad"), ExitUsage},
		{"config", fmt.Errorf("invalid config: %w", config.ValidateErrors{{Field: "server.url", Message: "empty"}}), ExitConfig},
		{"unauthorized", NewCommandError("status", &portal.RequestError{Status: 401, Err: portal.ErrUnauthorized}, ""), ExitUnauthorized},
		{"unavailable", fmt.Errorf("wrap: %w", portal.ErrUnavailable), ExitUnavailable},
		{"not found", portal.ErrNotFound, ExitNotFound},
		{"timeout", fmt.Errorf("GET: %w", context.DeadlineExceeded), ExitTimeout},
		{"other", errors.New("boom"), ExitError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExitCodeFor(tt.err); got != tt.want {
				t.Errorf("ExitCodeFor(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestDisplayError(t *testing.T) {
	var buf bytes.Buffer
	DisplayError(&buf, NewCommandError("logout", portal.ErrNotFound, ""), false)
	out := buf.String()
	if !bytes.Contains([]byte(out), []byte("logout: not found")) {
		t.Errorf("output missing error text: %q", out)
	}
	if !bytes.Contains([]byte(out), []byte("pwck8s login")) {
		t.Errorf("output missing suggestion: %q", out)
	}

	buf.Reset()
	DisplayError(&buf, NewCommandError("logout", portal.ErrNotFound, ""), true)
	if !bytes.Contains(buf.Bytes(), []byte(`"exit_code": 7`)) {
		t.Errorf("json output missing exit code: %s", buf.String())
	}
	if !bytes.Contains(buf.Bytes(), []byte(`"command": "logout"`)) {
		t.Errorf("json output missing command: %s", buf.String())
	}
}

func TestColorsFromEnv(t *testing.T) {
	env := func(kv map[string]string) func(string) string {
		return func(k string) string { return kv[k] }
	}

	if colorsFromEnv(env(map[string]string{"NO_COLOR": "1", "FORCE_COLOR": "1"}), true) {
		t.Error("NO_COLOR should win")
	}
	if !colorsFromEnv(env(map[string]string{"FORCE_COLOR": "1"}), false) {
		t.Error("FORCE_COLOR should enable colors without a TTY")
	}
	if colorsFromEnv(env(map[string]string{"TERM": "dumb"}), true) {
		t.Error("dumb terminal should disable colors")
	}
	if !colorsFromEnv(env(nil), true) {
		t.Error("TTY should enable colors")
	}
}

func TestRunVersion(t *testing.T) {
	var buf bytes.Buffer
	if err := RunVersion(&buf, false); err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(buf.Bytes(), []byte("pwck8s "+Version)) {
		t.Errorf("version output = %q", buf.String())
	}
}
