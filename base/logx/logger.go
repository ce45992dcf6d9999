// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package logx

import (
	"io"
	"log/slog"
	"os"

	"github.com/muesli/termenv"
)

// level is the dynamic level shared by every logger made by
// [SetDefaultLogger], so that later changes to [UserLevel] made
// through [SetLevel] take effect immediately.
var level = new(slog.LevelVar)

// SetLevel sets [UserLevel] and updates the level of the default logger.
func SetLevel(l slog.Level) {
	UserLevel = l
	level.Set(l)
}

// SetDefaultLogger sets the default [slog] logger to one that writes
// colored text to [os.Stderr] at [UserLevel].
func SetDefaultLogger() {
	slog.SetDefault(NewLogger(os.Stderr))
}

// NewLogger returns a text logger writing to w at [UserLevel], with
// the level names colored when w is a terminal.
func NewLogger(w io.Writer) *slog.Logger {
	level.Set(UserLevel)
	out := termenv.NewOutput(w)
	opts := &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key != slog.LevelKey || len(groups) > 0 {
				return a
			}
			l, ok := a.Value.Any().(slog.Level)
			if !ok {
				return a
			}
			return slog.String(slog.LevelKey, out.String(l.String()).Foreground(LevelColor(out, l)).String())
		},
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
