// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package imagex

import (
	"image"
	"image/draw"

	"github.com/anthonynsimon/bild/transform"
)

// CloneAsRGBA returns an RGBA copy of the supplied image.
func CloneAsRGBA(src image.Image) *image.RGBA {
	if src == nil {
		return nil
	}
	bounds := src.Bounds()
	img := image.NewRGBA(bounds)
	draw.Draw(img, bounds, src, bounds.Min, draw.Src)
	return img
}

// AsRGBA returns the image as an RGBA: if it already is one, then
// it returns that image directly. Otherwise it returns a clone.
func AsRGBA(src image.Image) *image.RGBA {
	if src == nil {
		return nil
	}
	if rgba, ok := src.(*image.RGBA); ok {
		return rgba
	}
	return CloneAsRGBA(src)
}

// Scale returns the image resized by the given factor with linear
// filtering. A factor of 1 or less than or equal to 0 returns src.
func Scale(src image.Image, factor float64) image.Image {
	if factor <= 0 || factor == 1 {
		return src
	}
	sz := src.Bounds().Size()
	w := max(int(float64(sz.X)*factor), 1)
	h := max(int(float64(sz.Y)*factor), 1)
	return transform.Resize(src, w, h, transform.Linear)
}
