// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package logx

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
)

func TestLevelFromFlags(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, LevelFromFlags(true, false, false))
	assert.Equal(t, slog.LevelInfo, LevelFromFlags(false, true, true))
	assert.Equal(t, slog.LevelError, LevelFromFlags(false, false, true))
	assert.Equal(t, slog.LevelWarn, LevelFromFlags(false, false, false))
}

func TestHandler(t *testing.T) {
	var buf bytes.Buffer
	lg := slog.New(NewHandler(&buf, slog.LevelInfo))
	lg.Debug("hidden")
	lg.Info("shown", "chart", "column")
	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "level=INFO")
	assert.Contains(t, out, "chart=column")
}

func TestLevelStringAscii(t *testing.T) {
	out := termenv.NewOutput(&bytes.Buffer{}, termenv.WithProfile(termenv.Ascii))
	assert.Equal(t, "WARN", LevelString(out, slog.LevelWarn))
}
