// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package imagex

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/gif"
	"log/slog"
	"os"

	"cogentcore.org/volume/volume"
	"github.com/h2non/filetype"
)

const (
	// MaxPlaneSize is the default largest width or height of a decoded plane.
	MaxPlaneSize = 8192

	// MaxPlanes is the default largest number of planes kept from one input.
	MaxPlanes = 512
)

var (
	// ErrUnsupported is returned for data that is not a supported image format.
	ErrUnsupported = errors.New("unsupported image format")

	// ErrImageTooLarge is returned for images above the size limit.
	ErrImageTooLarge = errors.New("image dimensions too large")
)

// PlaneDecoder decodes encoded images into scalar planes.
// Gray images keep their 8 or 16 bit values, and color images are
// converted to luminance. GIF animations and multi-page TIFF files
// give one plane per frame or page.
type PlaneDecoder struct {

	// MaxSize is the largest allowed width or height; 0 means [MaxPlaneSize].
	MaxSize int

	// MaxPlanes is the largest number of planes returned, with later
	// ones dropped; 0 means [MaxPlanes].
	MaxPlanes int
}

func (pd *PlaneDecoder) maxSize() int {
	if pd.MaxSize > 0 {
		return pd.MaxSize
	}
	return MaxPlaneSize
}

func (pd *PlaneDecoder) maxPlanes() int {
	if pd.MaxPlanes > 0 {
		return pd.MaxPlanes
	}
	return MaxPlanes
}

// Format returns the image format of the given data, sniffed from its
// leading bytes.
func Format(data []byte) (Formats, error) {
	kind, err := filetype.Match(data)
	if err != nil || kind == filetype.Unknown {
		return None, ErrUnsupported
	}
	f, err := ExtToFormat(kind.Extension)
	if err != nil {
		return None, fmt.Errorf("%w: %s", ErrUnsupported, kind.MIME.Value)
	}
	return f, nil
}

// Decode decodes the given image data into planes.
func (pd *PlaneDecoder) Decode(data []byte) ([]volume.Plane, error) {
	f, err := Format(data)
	if err != nil {
		return nil, err
	}
	if f == TIFF {
		return pd.decodeTIFF(data)
	}
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding %v config: %w", f, err)
	}
	if ms := pd.maxSize(); cfg.Width > ms || cfg.Height > ms {
		return nil, fmt.Errorf("%w: %dx%d exceeds %d", ErrImageTooLarge, cfg.Width, cfg.Height, ms)
	}
	if f == GIF {
		return pd.decodeGIF(data)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding %v: %w", f, err)
	}
	slog.Debug("decoded plane", "format", f, "model", modelName(img), "size", img.Bounds().Size())
	return []volume.Plane{ToPlane(img)}, nil
}

// decodeGIF returns one plane per frame, compositing each frame over
// the previous ones on the logical screen.
func (pd *PlaneDecoder) decodeGIF(data []byte) ([]volume.Plane, error) {
	g, err := gif.DecodeAll(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding GIF: %w", err)
	}
	frames := g.Image
	if mp := pd.maxPlanes(); len(frames) > mp {
		slog.Debug("maximum number of planes reached", "frames", len(frames), "max", mp)
		frames = frames[:mp]
	}
	canvas := image.NewRGBA(image.Rect(0, 0, g.Config.Width, g.Config.Height))
	planes := make([]volume.Plane, 0, len(frames))
	for _, fr := range frames {
		draw.Draw(canvas, fr.Bounds(), fr, fr.Bounds().Min, draw.Over)
		planes = append(planes, ToPlane(canvas))
	}
	return planes, nil
}

// ToPlane converts the image to a scalar plane. Gray and Gray16 values
// are kept as they are; other images are converted to luminance from
// their 8 bit RGB channels.
func ToPlane(img image.Image) volume.Plane {
	b := img.Bounds()
	p := volume.NewPlane(b.Dx(), b.Dy())
	switch im := img.(type) {
	case *image.Gray:
		for y := range p.Height {
			row := im.Pix[y*im.Stride:]
			for x := range p.Width {
				p.Values[y*p.Width+x] = uint16(row[x])
			}
		}
	case *image.Gray16:
		for y := range p.Height {
			row := im.Pix[y*im.Stride:]
			for x := range p.Width {
				p.Values[y*p.Width+x] = uint16(row[2*x])<<8 | uint16(row[2*x+1])
			}
		}
	default:
		for y := range p.Height {
			for x := range p.Width {
				c := color.NRGBAModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
				p.Values[y*p.Width+x] = Luminance(c.R, c.G, c.B)
			}
		}
	}
	return p
}

// Luminance returns the gray level of the given 8 bit color.
func Luminance(r, g, b uint8) uint16 {
	return uint16(0.2989*float32(r) + 0.5870*float32(g) + 0.1140*float32(b))
}

func modelName(img image.Image) string {
	switch img.(type) {
	case *image.Gray:
		return "gray8"
	case *image.Gray16:
		return "gray16"
	default:
		return "color"
	}
}

// ReadFiles reads and decodes each of the given files in order,
// returning all of their planes as one stack.
func ReadFiles(dec *PlaneDecoder, filenames ...string) ([]volume.Plane, error) {
	var planes []volume.Plane
	for _, fn := range filenames {
		data, err := os.ReadFile(fn)
		if err != nil {
			return nil, err
		}
		ps, err := dec.Decode(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", fn, err)
		}
		planes = append(planes, ps...)
		if len(planes) >= dec.maxPlanes() {
			slog.Debug("maximum number of planes reached", "file", fn)
			planes = planes[:dec.maxPlanes()]
			break
		}
	}
	return planes, nil
}
