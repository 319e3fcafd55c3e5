// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"
)

// Version information (can be overridden at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Command represents the CLI command to execute.
type Command int

const (
	CmdTUI Command = iota
	CmdStatus
	CmdLogin
	CmdLogout
	CmdWatch
	CmdHealth
	CmdOpen
	CmdConfig
	CmdVersion
	CmdHelp
	CmdUnknown
)

// String returns the command name as typed on the command line.
func (c Command) String() string {
	switch c {
	case CmdTUI:
		return "tui"
	case CmdStatus:
		return "status"
	case CmdLogin:
		return "login"
	case CmdLogout:
		return "logout"
	case CmdWatch:
		return "watch"
	case CmdHealth:
		return "health"
	case CmdOpen:
		return "open"
	case CmdConfig:
		return "config"
	case CmdVersion:
		return "version"
	case CmdHelp:
		return "help"
	default:
		return "unknown"
	}
}

// Args holds parsed CLI arguments.
type Args struct {
	// Global flags
	ConfigPath string
	ServerURL  string
	UserDN     string
	JSON       bool
	Verbose    bool

	// Unknown is the unrecognized command word, set with CmdUnknown.
	Unknown string

	// Raw holds arguments after the command word.
	Raw []string
}

const usageText = `pwck8s - Play With CK8S session client

Provisions a short-lived user and sandbox project on a Play With CK8S
portal, and shows how long the session has left.

Usage:
  pwck8s                     Start the session widget (default)
  pwck8s status              Show the current session and project
  pwck8s login               Provision a user and sandbox project
  pwck8s logout              Close the session
  pwck8s watch [--interval D] Print the countdown until the session expires
  pwck8s health              Check the backend /healthcheck endpoint
  pwck8s open                Open the Rancher dashboard in a browser
  pwck8s config [show|path|init]
                             Show, locate or create the config file
  pwck8s version             Print version information
  pwck8s help                Show this help

Global Flags:
  --config PATH              Config file (default ~/.pwck8s/config.toml)
  --server URL               Backend base URL
  --user-dn DN               Identity sent in the UserDN header
  --json                     Machine-readable output
  -v, --verbose              Mirror log output to stderr

Widget Keys:
  l  login        d  close session    o  open dashboard
  y  copy URL     r  reload           q  quit

Environment:
  PWCK8S_SERVER_URL, PWCK8S_USER_DN, PWCK8S_DASHBOARD_URL,
  PWCK8S_GRACE_PERIOD, PWCK8S_LOG_LEVEL, PWCK8S_LOG_FILE, PWCK8S_LOG_JSON

Exit Codes:
  0 success, 1 error, 2 usage, 3 config, 4 unauthorized,
  5 unavailable, 7 not found, 8 timeout
`

// Parse parses os.Args.
func Parse() (Command, Args) {
	return ParseArgs(os.Args[1:])
}

// ParseArgs parses args (without the program name).
func ParseArgs(args []string) (Command, Args) {
	remaining, parsed := parseGlobalFlags(args)
	if len(remaining) == 0 {
		return CmdTUI, parsed
	}

	word := strings.ToLower(remaining[0])
	parsed.Raw = remaining[1:]

	switch word {
	case "tui":
		return CmdTUI, parsed
	case "status", "s":
		return CmdStatus, parsed
	case "login":
		return CmdLogin, parsed
	case "logout":
		return CmdLogout, parsed
	case "watch", "w":
		return CmdWatch, parsed
	case "health":
		return CmdHealth, parsed
	case "open":
		return CmdOpen, parsed
	case "config":
		return CmdConfig, parsed
	case "version", "--version", "-V":
		return CmdVersion, parsed
	case "help", "--help", "-h":
		return CmdHelp, parsed
	default:
		parsed.Unknown = remaining[0]
		return CmdUnknown, parsed
	}
}

// parseGlobalFlags pulls global flags out of args wherever they appear.
func parseGlobalFlags(args []string) ([]string, Args) {
	var remaining []string
	var parsed Args

	for i := 0; i < len(args); i++ {
		arg := args[i]

		name, value, hasValue := strings.Cut(arg, "=")
		takeValue := func() string {
			if hasValue {
				return value
			}
			if i+1 < len(args) {
				i++
				return args[i]
			}
			return ""
		}

		switch name {
		case "--config":
			parsed.ConfigPath = takeValue()
		case "--server":
			parsed.ServerURL = takeValue()
		case "--user-dn":
			parsed.UserDN = takeValue()
		case "--json":
			parsed.JSON = !hasValue || value == "true"
		case "-v", "--verbose":
			parsed.Verbose = true
		default:
			remaining = append(remaining, arg)
		}
	}
	return remaining, parsed
}

// PrintUsage writes the help text to w.
func PrintUsage(w io.Writer) {
	fmt.Fprint(w, usageText)
}

// VersionInfo is the version payload for --json.
type VersionInfo struct {
	Version   string `json:"version"`
	GitCommit string `json:"git_commit"`
	BuildDate string `json:"build_date"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

// RunVersion prints version information.
func RunVersion(w io.Writer, jsonMode bool) error {
	info := VersionInfo{
		Version:   Version,
		GitCommit: GitCommit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
	if jsonMode {
		return NewJSONResponse("version", info).Print(w)
	}
	fmt.Fprintf(w, "pwck8s %s\n", info.Version)
	fmt.Fprintf(w, "  commit: %s\n", info.GitCommit)
	fmt.Fprintf(w, "  built:  %s\n", info.BuildDate)
	fmt.Fprintf(w, "  go:     %s (%s)\n", info.GoVersion, info.Platform)
	return nil
}
