// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package logging

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetLevel(t *testing.T) {
	tests := map[string]logrus.Level{
		"trace":   logrus.TraceLevel,
		"DEBUG":   logrus.DebugLevel,
		" info ":  logrus.InfoLevel,
		"warning": logrus.WarnLevel,
		"warn":    logrus.WarnLevel,
		"error":   logrus.ErrorLevel,
		"":        logrus.InfoLevel,
		"chatty":  logrus.InfoLevel,
	}
	for in, want := range tests {
		assert.Equal(t, want, GetLevel(in), "GetLevel(%q)", in)
	}
}

func TestSetup_WritesToFile(t *testing.T) {
	defer logrus.SetOutput(os.Stderr)

	base := filepath.Join(t.TempDir(), "logs", "pwck8s")
	closer, err := Setup(SetupParams{
		LogFileName:   base,
		LogLevel:      "debug",
		LogFormatJSON: true,
		MaxSizeMB:     1,
	})
	require.NoError(t, err)

	logrus.WithField("op", "GET /api/v1/user").Debug("request completed")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(base + ".log")
	require.NoError(t, err)
	assert.Contains(t, string(data), `"op":"GET /api/v1/user"`)
	assert.Contains(t, string(data), `"level":"debug"`)
	assert.Equal(t, logrus.DebugLevel, logrus.GetLevel())
}

func TestSetup_NoFileDiscards(t *testing.T) {
	defer logrus.SetOutput(os.Stderr)

	closer, err := Setup(SetupParams{LogLevel: "info"})
	require.NoError(t, err)
	assert.NoError(t, closer.Close())
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestCombinedWriter_KeepsWritingAfterFailure(t *testing.T) {
	var a, b bytes.Buffer
	cw := NewCombinedWriter(&a, failingWriter{}, &b)

	n, err := cw.Write([]byte("line\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
	assert.Equal(t, 10, n)
	assert.Equal(t, "line\n", a.String())
	assert.Equal(t, "line\n", b.String())

	n, err = NewCombinedWriter(&a).Write([]byte("ok"))
	assert.NoError(t, err)
	assert.Equal(t, 2, n)
}
