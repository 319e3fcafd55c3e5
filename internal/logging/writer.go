// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package logging

import (
	"io"

	"go.uber.org/multierr"
)

// CombinedWriter writes to every writer even when one of them fails.
// n counts bytes written by the writers that succeeded.
type CombinedWriter struct {
	Writers []io.Writer
}

// NewCombinedWriter creates a CombinedWriter over writers.
func NewCombinedWriter(writers ...io.Writer) *CombinedWriter {
	return &CombinedWriter{Writers: writers}
}

func (cw *CombinedWriter) Write(p []byte) (n int, err error) {
	for _, w := range cw.Writers {
		written, werr := w.Write(p)
		if werr != nil {
			err = multierr.Append(err, werr)
			continue
		}
		n += written
	}
	return n, err
}
