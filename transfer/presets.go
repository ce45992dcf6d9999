// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package transfer

import (
	"fmt"
	"strings"

	"cogentcore.org/volume/math32"
)

// Presets are the named built-in transfer functions.
type Presets int32

const (
	// Grayscale ramps from transparent black to opaque white.
	Grayscale Presets = iota

	// Rainbow runs blue, cyan, green, yellow, red with rising opacity.
	Rainbow

	// Hot runs black, red, yellow, white with rising opacity.
	Hot

	// Cool runs cyan, blue, magenta with rising opacity.
	Cool

	presetsN
)

var presetNames = [...]string{"grayscale", "rainbow", "hot", "cool"}

// String returns the lowercase name of the preset.
func (p Presets) String() string {
	if p < 0 || p >= presetsN {
		return fmt.Sprintf("Presets(%d)", int32(p))
	}
	return presetNames[p]
}

// SetString sets the preset from its case-insensitive name.
func (p *Presets) SetString(s string) error {
	for i, nm := range presetNames {
		if strings.EqualFold(nm, s) {
			*p = Presets(i)
			return nil
		}
	}
	return fmt.Errorf("%q is not a valid value for type Presets", s)
}

// PresetsValues returns all of the presets.
func PresetsValues() []Presets {
	return []Presets{Grayscale, Rainbow, Hot, Cool}
}

// MarshalText implements [encoding.TextMarshaler].
func (p Presets) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (p *Presets) UnmarshalText(text []byte) error {
	return p.SetString(string(text))
}

// Points returns the control points of the preset.
func (p Presets) Points() []ControlPoint {
	switch p {
	case Rainbow:
		return []ControlPoint{
			{0, math32.Vec4(0, 0, 1, 0)},
			{0.25, math32.Vec4(0, 1, 1, 0.25)},
			{0.5, math32.Vec4(0, 1, 0, 0.5)},
			{0.75, math32.Vec4(1, 1, 0, 0.75)},
			{1, math32.Vec4(1, 0, 0, 1)},
		}
	case Hot:
		return []ControlPoint{
			{0, math32.Vec4(0, 0, 0, 0)},
			{0.33, math32.Vec4(1, 0, 0, 0.33)},
			{0.66, math32.Vec4(1, 1, 0, 0.66)},
			{1, math32.Vec4(1, 1, 1, 1)},
		}
	case Cool:
		return []ControlPoint{
			{0, math32.Vec4(0, 1, 1, 0)},
			{0.5, math32.Vec4(0, 0, 1, 0.5)},
			{1, math32.Vec4(1, 0, 1, 1)},
		}
	default:
		return []ControlPoint{
			{0, math32.Vec4(0, 0, 0, 0)},
			{1, math32.Vec4(1, 1, 1, 1)},
		}
	}
}

// NewPreset returns a new transfer function with the points of the
// given preset. Unknown presets give grayscale.
func NewPreset(p Presets) *Function {
	f := &Function{points: p.Points()}
	f.update()
	return f
}
