// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package logx provides the default structured logger setup
// and level handling used by the command line tools.
package logx

import (
	"io"
	"log/slog"
	"os"

	"github.com/muesli/termenv"
)

// UserLevel is the verbosity [slog.Level] that the user has selected
// for what logging and printing messages should be shown. Messages at
// levels at or above this level will be shown. It should typically be
// set through [LevelFromFlags] to the end user's preference.
var UserLevel = defaultUserLevel

// LevelFromFlags returns the [slog.Level] object corresponding to the given
// user flag options. The flags are checked in the given order (debug,
// verbose, quiet) and the first true flag is used. If none of the flags
// are true, it returns [slog.LevelWarn].
func LevelFromFlags(debug, verbose, quiet bool) slog.Level {
	switch {
	case debug:
		return slog.LevelDebug
	case verbose:
		return slog.LevelInfo
	case quiet:
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

// SetDefaultLogger sets the default logger to a text handler on stderr
// at [UserLevel], with colored level names when stderr is a terminal.
func SetDefaultLogger() {
	slog.SetDefault(slog.New(NewHandler(os.Stderr, UserLevel)))
}

// NewHandler returns a [slog.TextHandler] writing to w at the given
// level, with level names colored according to the terminal profile of w.
func NewHandler(w io.Writer, level slog.Level) slog.Handler {
	out := termenv.NewOutput(w)
	return slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key != slog.LevelKey || len(groups) > 0 {
				return a
			}
			lvl, ok := a.Value.Any().(slog.Level)
			if !ok {
				return a
			}
			a.Value = slog.StringValue(LevelString(out, lvl))
			return a
		},
	})
}

// LevelString returns the name of the given level styled for out.
// Terminals without color support get the plain level name.
func LevelString(out *termenv.Output, lvl slog.Level) string {
	s := lvl.String()
	if out.Profile == termenv.Ascii {
		return s
	}
	var c termenv.Color
	switch {
	case lvl >= slog.LevelError:
		c = out.Color("1")
	case lvl >= slog.LevelWarn:
		c = out.Color("3")
	case lvl >= slog.LevelInfo:
		c = out.Color("2")
	default:
		c = out.Color("4")
	}
	return out.String(s).Foreground(c).Bold().String()
}
