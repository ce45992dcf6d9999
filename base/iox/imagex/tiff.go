// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package imagex

import (
	"encoding/binary"
	"fmt"
	"io"
	"log/slog"

	"cogentcore.org/volume/volume"
	"golang.org/x/image/tiff"
)

// tiffPages returns the offsets of the image file directories of a
// classic TIFF file, following the chain from the header, up to max
// of them. A loop in the chain ends it.
func tiffPages(data []byte, max int) (binary.ByteOrder, []uint32, error) {
	if len(data) < 8 {
		return nil, nil, fmt.Errorf("%w: TIFF header is truncated", ErrUnsupported)
	}
	var order binary.ByteOrder
	switch string(data[:2]) {
	case "II":
		order = binary.LittleEndian
	case "MM":
		order = binary.BigEndian
	default:
		return nil, nil, fmt.Errorf("%w: bad TIFF byte order %q", ErrUnsupported, data[:2])
	}
	if order.Uint16(data[2:4]) != 42 {
		return nil, nil, fmt.Errorf("%w: not a classic TIFF file", ErrUnsupported)
	}
	var pages []uint32
	seen := map[uint32]bool{}
	for off := order.Uint32(data[4:8]); off != 0 && len(pages) < max; {
		if seen[off] || uint64(off)+2 > uint64(len(data)) {
			break
		}
		seen[off] = true
		pages = append(pages, off)
		n := uint64(order.Uint16(data[off : off+2]))
		next := uint64(off) + 2 + 12*n
		if next+4 > uint64(len(data)) {
			break
		}
		off = order.Uint32(data[next : next+4])
	}
	if len(pages) == 0 {
		return nil, nil, fmt.Errorf("%w: TIFF file has no pages", ErrUnsupported)
	}
	return order, pages, nil
}

// tiffPage reads a TIFF file as though the page at ifd were its first.
// [tiff.Decode] only reads the first page, and reads at absolute
// offsets, so only the header offset differs from the file.
type tiffPage struct {
	data []byte
	head [8]byte
	off  int64
}

func newTIFFPage(data []byte, order binary.ByteOrder, ifd uint32) *tiffPage {
	tp := &tiffPage{data: data}
	copy(tp.head[:], data[:8])
	order.PutUint32(tp.head[4:], ifd)
	return tp
}

func (tp *tiffPage) ReadAt(p []byte, off int64) (int, error) {
	if off < 0 {
		return 0, fmt.Errorf("imagex: negative TIFF offset %d", off)
	}
	if off >= int64(len(tp.data)) {
		return 0, io.EOF
	}
	n := copy(p, tp.data[off:])
	for i := off; i < 8 && i < off+int64(n); i++ {
		p[i-off] = tp.head[i]
	}
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

func (tp *tiffPage) Read(p []byte) (int, error) {
	n, err := tp.ReadAt(p, tp.off)
	tp.off += int64(n)
	return n, err
}

// decodeTIFF returns one plane per page of a TIFF file.
func (pd *PlaneDecoder) decodeTIFF(data []byte) ([]volume.Plane, error) {
	order, pages, err := tiffPages(data, pd.maxPlanes())
	if err != nil {
		return nil, err
	}
	ms := pd.maxSize()
	planes := make([]volume.Plane, 0, len(pages))
	for i, ifd := range pages {
		cfg, err := tiff.DecodeConfig(newTIFFPage(data, order, ifd))
		if err != nil {
			return nil, fmt.Errorf("decoding TIFF page %d config: %w", i, err)
		}
		if cfg.Width > ms || cfg.Height > ms {
			return nil, fmt.Errorf("%w: TIFF page %d is %dx%d, exceeding %d", ErrImageTooLarge, i, cfg.Width, cfg.Height, ms)
		}
		img, err := tiff.Decode(newTIFFPage(data, order, ifd))
		if err != nil {
			return nil, fmt.Errorf("decoding TIFF page %d: %w", i, err)
		}
		planes = append(planes, ToPlane(img))
	}
	slog.Debug("decoded TIFF", "pages", len(planes))
	return planes, nil
}
