// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command volview renders volumes built from stacks of image slices
// into image files.
package main

import (
	"os"

	"cogentcore.org/volume/base/errors"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		errors.Log(err)
		os.Exit(1)
	}
}
