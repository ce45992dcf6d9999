// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package transfer

import (
	"image"
	"image/color"
)

// Image returns a horizontal colorbar of the given size showing the
// cached colors from value 0 on the left to 1 on the right.
// The colors are not premultiplied: the alpha channel holds the opacity.
func (f *Function) Image(width, height int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for x := range width {
		v := float32(0)
		if width > 1 {
			v = float32(x) / float32(width-1)
		}
		c := f.Color3D(v)
		nc := color.NRGBA{R: toByte(c.X), G: toByte(c.Y), B: toByte(c.Z), A: toByte(c.W)}
		for y := range height {
			img.SetNRGBA(x, y, nc)
		}
	}
	return img
}

func toByte(c float32) uint8 {
	return uint8(clampUnit(c) * 255)
}
