// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package imagex provides image encoding and decoding helpers,
// and decodes images into scalar planes for volume rendering.
package imagex

import (
	"bufio"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Formats are the supported image formats. WebP can only be decoded.
type Formats int32

const (
	None Formats = iota
	PNG
	JPEG
	GIF
	TIFF
	BMP
	WebP
)

var formatNames = [...]string{"None", "PNG", "JPEG", "GIF", "TIFF", "BMP", "WebP"}

// extFormats maps lowercase extensions, and the names that
// [image.Decode] reports, to formats.
var extFormats = map[string]Formats{
	"png":  PNG,
	"jpg":  JPEG,
	"jpeg": JPEG,
	"gif":  GIF,
	"tif":  TIFF,
	"tiff": TIFF,
	"bmp":  BMP,
	"webp": WebP,
}

func (f Formats) String() string {
	if f < 0 || int(f) >= len(formatNames) {
		return fmt.Sprintf("Formats(%d)", int32(f))
	}
	return formatNames[f]
}

// ExtToFormat returns the format for a filename extension,
// with or without the leading dot.
func ExtToFormat(ext string) (Formats, error) {
	ext = strings.ToLower(strings.TrimPrefix(ext, "."))
	if f, ok := extFormats[ext]; ok {
		return f, nil
	}
	return None, fmt.Errorf("imagex: image extension %q not recognized", ext)
}

// Open opens the image in the given file, detecting its format.
func Open(filename string) (image.Image, Formats, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, None, err
	}
	defer file.Close()
	return Read(file)
}

// Read reads an image from the given reader, detecting its format.
func Read(r io.Reader) (image.Image, Formats, error) {
	im, name, err := image.Decode(r)
	if err != nil {
		return im, None, err
	}
	f, err := ExtToFormat(name)
	return im, f, err
}

// Save saves the image to the given file, in the format
// given by its extension.
func Save(im image.Image, filename string) error {
	f, err := ExtToFormat(filepath.Ext(filename))
	if err != nil {
		return err
	}
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()
	bw := bufio.NewWriter(file)
	if err := Write(im, bw, f); err != nil {
		return err
	}
	return bw.Flush()
}

// Write encodes the image to the given writer in the given format.
func Write(im image.Image, w io.Writer, f Formats) error {
	switch f {
	case PNG:
		return png.Encode(w, im)
	case JPEG:
		return jpeg.Encode(w, im, &jpeg.Options{Quality: 90})
	case GIF:
		return gif.Encode(w, im, nil)
	case TIFF:
		return tiff.Encode(w, im, nil)
	case BMP:
		return bmp.Encode(w, im)
	}
	return fmt.Errorf("imagex: cannot encode format %v", f)
}
