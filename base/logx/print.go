// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package logx

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/muesli/termenv"
)

// stdout is the terminal output used by the print functions.
var stdout = termenv.NewOutput(os.Stdout)

// Hex colors used for the different kinds of printed messages.
// They are degraded to what the terminal supports.
const (
	DebugColor   = "#7f8c8d"
	InfoColor    = "#3498db"
	WarnColor    = "#f39c12"
	ErrorColor   = "#e74c3c"
	SuccessColor = "#2ecc71"
	CmdColor     = "#9b59b6"
)

// LevelColor returns the terminal color for the given level
// in the given output profile.
func LevelColor(out *termenv.Output, l slog.Level) termenv.Color {
	switch {
	case l >= slog.LevelError:
		return out.Color(ErrorColor)
	case l >= slog.LevelWarn:
		return out.Color(WarnColor)
	case l >= slog.LevelInfo:
		return out.Color(InfoColor)
	default:
		return out.Color(DebugColor)
	}
}

// Print is equivalent to [fmt.Print], but with color based on the given level.
// Also, if [UserLevel] is above the given level, it does not print anything.
func Print(l slog.Level, a ...any) (n int, err error) {
	if UserLevel > l {
		return 0, nil
	}
	return fmt.Fprint(stdout, stdout.String(fmt.Sprint(a...)).Foreground(LevelColor(stdout, l)))
}

// Println is equivalent to [fmt.Println], but with color based on the given level.
// Also, if [UserLevel] is above the given level, it does not print anything.
func Println(l slog.Level, a ...any) (n int, err error) {
	if UserLevel > l {
		return 0, nil
	}
	s := fmt.Sprint(a...)
	return fmt.Fprintln(stdout, stdout.String(s).Foreground(LevelColor(stdout, l)))
}

// Printf is equivalent to [fmt.Printf], but with color based on the given level.
// Also, if [UserLevel] is above the given level, it does not print anything.
func Printf(l slog.Level, format string, a ...any) (n int, err error) {
	if UserLevel > l {
		return 0, nil
	}
	return fmt.Fprint(stdout, stdout.String(fmt.Sprintf(format, a...)).Foreground(LevelColor(stdout, l)))
}

// PrintlnInfo is equivalent to [Println] with [slog.LevelInfo].
func PrintlnInfo(a ...any) (n int, err error) {
	return Println(slog.LevelInfo, a...)
}

// PrintlnWarn is equivalent to [Println] with [slog.LevelWarn].
func PrintlnWarn(a ...any) (n int, err error) {
	return Println(slog.LevelWarn, a...)
}

// Success returns s colored as a success message.
func Success(s string) string {
	return stdout.String(s).Foreground(stdout.Color(SuccessColor)).String()
}

// Cmd returns s colored as a command or file name.
func Cmd(s string) string {
	return stdout.String(s).Foreground(stdout.Color(CmdColor)).Bold().String()
}
