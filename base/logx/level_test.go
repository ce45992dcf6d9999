// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package logx

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevelFromFlags(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, LevelFromFlags(true, false, false))
	assert.Equal(t, slog.LevelInfo, LevelFromFlags(false, true, true))
	assert.Equal(t, slog.LevelError, LevelFromFlags(false, false, true))
	assert.Equal(t, slog.LevelWarn, LevelFromFlags(false, false, false))
}

func TestNewLogger(t *testing.T) {
	old := UserLevel
	defer SetLevel(old)

	var buf bytes.Buffer
	UserLevel = slog.LevelInfo
	lg := NewLogger(&buf)
	lg.Debug("this is debug")
	lg.Info("this is info")
	assert.NotContains(t, buf.String(), "this is debug")
	assert.Contains(t, buf.String(), "this is info")

	buf.Reset()
	SetLevel(slog.LevelError)
	lg.Warn("this is warn")
	assert.Empty(t, buf.String())
	lg.Error("this is error", "pixels", 4)
	assert.Contains(t, buf.String(), "pixels=4")
}
