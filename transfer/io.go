// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package transfer

import (
	"fmt"
	"io"

	"cogentcore.org/volume/base/iox/tomlx"
	"cogentcore.org/volume/math32"
)

// pointsFile is the TOML representation of a transfer function:
//
//	[[points]]
//	value = 0.5
//	color = [1.0, 0.0, 0.0, 0.5]
type pointsFile struct {
	Points []filePoint `toml:"points"`
}

type filePoint struct {
	Value float32    `toml:"value"`
	Color [4]float32 `toml:"color"`
}

func (f *Function) toFile() *pointsFile {
	pf := &pointsFile{Points: make([]filePoint, len(f.points))}
	for i, p := range f.points {
		pf.Points[i] = filePoint{Value: p.Value, Color: [4]float32{p.Color.X, p.Color.Y, p.Color.Z, p.Color.W}}
	}
	return pf
}

func fromFile(pf *pointsFile) (*Function, error) {
	pts := make([]ControlPoint, len(pf.Points))
	for i, p := range pf.Points {
		pts[i] = ControlPoint{Value: p.Value, Color: math32.Vec4(p.Color[0], p.Color[1], p.Color[2], p.Color[3])}
	}
	return NewFromPoints(pts...)
}

// Save writes the control points to the given TOML file.
func (f *Function) Save(filename string) error {
	return tomlx.Save(f.toFile(), filename)
}

// Write writes the control points as TOML to the given writer.
func (f *Function) Write(w io.Writer) error {
	return tomlx.Write(f.toFile(), w)
}

// Open reads a transfer function from the given TOML file.
func Open(filename string) (*Function, error) {
	pf := &pointsFile{}
	if err := tomlx.Open(pf, filename); err != nil {
		return nil, fmt.Errorf("transfer: opening %q: %w", filename, err)
	}
	return fromFile(pf)
}

// Read reads a transfer function as TOML from the given reader.
func Read(r io.Reader) (*Function, error) {
	pf := &pointsFile{}
	if err := tomlx.Read(pf, r); err != nil {
		return nil, err
	}
	return fromFile(pf)
}
