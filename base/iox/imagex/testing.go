// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package imagex

import (
	"errors"
	"image"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// TestingT is the part of *testing.T used by [Assert].
type TestingT interface {
	Errorf(format string, args ...any)
}

// UpdateTestImages makes [Assert] overwrite the saved images instead of
// comparing against them. It is set when the environment variable
// VOLUME_UPDATE_TESTDATA is "true", after a change that is meant to
// alter rendered output.
var UpdateTestImages = os.Getenv("VOLUME_UPDATE_TESTDATA") == "true"

// Tolerance is the largest per channel difference that [Assert] accepts.
var Tolerance = 1

// Assert checks that img matches the image saved at testdata/filename,
// with ".png" added when filename has no extension. A missing image is
// created. On a mismatch, the test fails and the rendered image and a
// per channel difference image are saved next to the expected one with
// ".fail" and ".diff" suffixes.
func Assert(t TestingT, img image.Image, filename string) {
	filename = filepath.Join("testdata", filename)
	if filepath.Ext(filename) == "" {
		filename += ".png"
	}
	if err := os.MkdirAll(filepath.Dir(filename), 0750); err != nil {
		t.Errorf("imagex.Assert: making testdata directory: %v", err)
		return
	}
	ext := filepath.Ext(filename)
	failFilename := strings.TrimSuffix(filename, ext) + ".fail" + ext
	diffFilename := strings.TrimSuffix(filename, ext) + ".diff" + ext

	want, _, err := Open(filename)
	if UpdateTestImages || errors.Is(err, fs.ErrNotExist) {
		if err := Save(img, filename); err != nil {
			t.Errorf("imagex.Assert: saving %s: %v", filename, err)
		}
		os.Remove(failFilename)
		os.Remove(diffFilename)
		return
	}
	if err != nil {
		t.Errorf("imagex.Assert: opening %s: %v", filename, err)
		return
	}

	got := AsRGBA(img)
	exp := AsRGBA(want)
	if got.Rect.Size() != exp.Rect.Size() {
		t.Errorf("imagex.Assert: %s: expected size %v but got %v; see %s", filename, exp.Rect.Size(), got.Rect.Size(), failFilename)
		if err := Save(img, failFilename); err != nil {
			t.Errorf("imagex.Assert: saving %s: %v", failFilename, err)
		}
		return
	}
	diff, bad, first := diffRGBA(got, exp)
	if bad == 0 {
		os.Remove(failFilename)
		os.Remove(diffFilename)
		return
	}
	t.Errorf("imagex.Assert: %s: %d pixels differ by more than %d, first at %v; see %s", filename, bad, Tolerance, first, failFilename)
	if err := Save(img, failFilename); err != nil {
		t.Errorf("imagex.Assert: saving %s: %v", failFilename, err)
	}
	if err := Save(diff, diffFilename); err != nil {
		t.Errorf("imagex.Assert: saving %s: %v", diffFilename, err)
	}
}

// diffRGBA returns the absolute difference of two equally sized images
// with opaque alpha, the number of pixels that differ by more than
// [Tolerance] in any channel, and the first such pixel.
func diffRGBA(a, b *image.RGBA) (diff *image.RGBA, bad int, first image.Point) {
	sz := a.Rect.Size()
	diff = image.NewRGBA(image.Rect(0, 0, sz.X, sz.Y))
	for y := range sz.Y {
		ao := a.PixOffset(a.Rect.Min.X, a.Rect.Min.Y+y)
		bo := b.PixOffset(b.Rect.Min.X, b.Rect.Min.Y+y)
		ar := a.Pix[ao : ao+sz.X*4]
		br := b.Pix[bo : bo+sz.X*4]
		dr := diff.Pix[y*diff.Stride:]
		for x := range sz.X {
			over := false
			for c := range 4 {
				i := x*4 + c
				d := absDiff(ar[i], br[i])
				over = over || d > Tolerance
				if c < 3 {
					dr[i] = uint8(d)
				}
			}
			dr[x*4+3] = 255
			if over {
				if bad == 0 {
					first = image.Pt(x, y)
				}
				bad++
			}
		}
	}
	return
}

func absDiff(a, b uint8) int {
	if a > b {
		return int(a - b)
	}
	return int(b - a)
}
