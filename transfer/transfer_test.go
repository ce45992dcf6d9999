// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package transfer

import (
	"bytes"
	"math/rand/v2"
	"path/filepath"
	"sort"
	"testing"

	"cogentcore.org/volume/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertSorted(t *testing.T, f *Function) {
	t.Helper()
	pts := f.Points()
	assert.GreaterOrEqual(t, len(pts), 2)
	assert.True(t, sort.SliceIsSorted(pts, func(i, j int) bool { return pts[i].Value < pts[j].Value }))
}

// referenceColor recomputes the color at v from the points by a linear
// scan for the rightmost point at or below v.
func referenceColor(pts []ControlPoint, v float32) math32.Vector4 {
	k := -1
	for i, p := range pts {
		if p.Value <= v {
			k = i
		}
	}
	switch {
	case k < 0:
		return pts[0].Color
	case k == len(pts)-1:
		return pts[k].Color
	}
	p1, p2 := pts[k], pts[k+1]
	a := (v - p1.Value) / (p2.Value - p1.Value)
	return math32.Vec4(
		p1.Color.X+(p2.Color.X-p1.Color.X)*a,
		p1.Color.Y+(p2.Color.Y-p1.Color.Y)*a,
		p1.Color.Z+(p2.Color.Z-p1.Color.Z)*a,
		p1.Color.W+(p2.Color.W-p1.Color.W)*a,
	)
}

func assertCache(t *testing.T, f *Function) {
	t.Helper()
	pts := f.Points()
	for i := range CacheSize {
		v := float32(i) / 255
		want := referenceColor(pts, v)
		got := f.Color3D(v)
		assert.InDelta(t, want.X, got.X, 1e-5, "bucket %d red", i)
		assert.InDelta(t, want.Y, got.Y, 1e-5, "bucket %d green", i)
		assert.InDelta(t, want.Z, got.Z, 1e-5, "bucket %d blue", i)
		assert.InDelta(t, want.W, got.W, 1e-5, "bucket %d alpha", i)
	}
}

func TestCacheMatchesPoints(t *testing.T) {
	for _, p := range PresetsValues() {
		t.Run(p.String(), func(t *testing.T) {
			assertCache(t, NewPreset(p))
		})
	}
}

func TestCacheRandomEdits(t *testing.T) {
	rnd := rand.New(rand.NewPCG(1, 2))
	f := NewPreset(Hot)
	for i := range 200 {
		if rnd.IntN(3) == 0 {
			f.RemovePoint(rnd.IntN(f.Len() + 1))
		} else {
			f.AddPoint(rnd.Float32(), math32.Vec4(rnd.Float32(), rnd.Float32(), rnd.Float32(), rnd.Float32()))
		}
		assertSorted(t, f)
		if !assert.GreaterOrEqual(t, f.Len(), 2, "edit %d", i) {
			return
		}
		assertCache(t, f)
	}
}

func TestGrayscale(t *testing.T) {
	f := New()
	assert.Equal(t, 2, f.Len())
	assert.Equal(t, math32.Vec4(0, 0, 0, 0), f.Color3D(0))
	assert.Equal(t, math32.Vec4(1, 1, 1, 1), f.Color3D(1))
	c := f.Color3D(0.5)
	assert.InDelta(t, 127.0/255, c.X, 1e-6)
	assert.InDelta(t, 127.0/255, c.W, 1e-6)
}

func TestColor2D(t *testing.T) {
	f := NewPreset(Hot)
	assert.Equal(t, math32.Vec4(0.25, 0.25, 0.25, 1), f.Color2D(0.25))
	assert.Equal(t, math32.Vec4(0, 0, 0, 1), f.Color2D(-3))
	assert.Equal(t, math32.Vec4(1, 1, 1, 1), f.Color2D(7))
}

func TestColor3DClamp(t *testing.T) {
	f := NewPreset(Rainbow)
	assert.Equal(t, f.Color3D(0), f.Color3D(-1))
	assert.Equal(t, f.Color3D(1), f.Color3D(2))
	assert.Equal(t, f.Color3D(0), f.Color3D(math32.Sqrt(-1)))
	assert.Equal(t, math32.Vec4(1, 0, 0, 1), f.Color3D(1))
}

func TestAddPoint(t *testing.T) {
	f := New()
	f.AddPoint(0.5, math32.Vec4(1, 0, 0, 1))
	assert.Equal(t, 3, f.Len())
	assertSorted(t, f)
	assert.Equal(t, float32(0.5), f.Points()[1].Value)
	c := f.Color3D(0.51)
	assert.InDelta(t, 1, c.X, 0.05)
	assert.InDelta(t, 0, c.Y, 0.05)

	// equal values go after existing ones
	f.AddPoint(0.5, math32.Vec4(0, 1, 0, 1))
	pts := f.Points()
	assert.Equal(t, math32.Vec4(1, 0, 0, 1), pts[1].Color)
	assert.Equal(t, math32.Vec4(0, 1, 0, 1), pts[2].Color)

	// out of range values are clamped
	f.AddPoint(3, math32.Vec4(2, -1, 0.5, 1))
	pts = f.Points()
	last := pts[len(pts)-1]
	assert.Equal(t, float32(1), last.Value)
	assert.Equal(t, math32.Vec4(1, 0, 0.5, 1), last.Color)
	assertSorted(t, f)
}

func TestRemovePoint(t *testing.T) {
	f := New()
	assert.False(t, f.RemovePoint(0))
	assert.False(t, f.RemovePoint(5))
	assert.Equal(t, 2, f.Len())

	f = NewPreset(Hot)
	assert.False(t, f.RemovePoint(-1))
	assert.True(t, f.RemovePoint(1))
	assert.Equal(t, 3, f.Len())
	assert.True(t, f.RemovePoint(1))
	assert.False(t, f.RemovePoint(1))
	assert.Equal(t, 2, f.Len())
	assertSorted(t, f)
	assert.Equal(t, f.interpolate(0.4), f.Color3D(0.4))
}

func TestSetPoint(t *testing.T) {
	f := NewPreset(Cool)
	assert.True(t, f.SetPoint(0, 0.9, math32.Vec4(1, 1, 1, 1)))
	assertSorted(t, f)
	pts := f.Points()
	assert.Equal(t, float32(0.5), pts[0].Value)
	assert.Equal(t, float32(0.9), pts[1].Value)
	assert.False(t, f.SetPoint(3, 0, math32.Vector4{}))
	// below the first point the first color is used
	assert.Equal(t, pts[0].Color, f.Color3D(0))
}

func TestPointsCopy(t *testing.T) {
	f := New()
	pts := f.Points()
	pts[0].Value = 0.7
	assert.Equal(t, float32(0), f.Points()[0].Value)
}

func TestClone(t *testing.T) {
	f := NewPreset(Hot)
	cp := f.Clone()
	assert.Equal(t, f.Points(), cp.Points())
	assert.Equal(t, f.Color3D(0.5), cp.Color3D(0.5))
	cp.AddPoint(0.1, math32.Vec4(0, 1, 0, 1))
	assert.Equal(t, 4, f.Len())
	assert.Equal(t, 5, cp.Len())
}

func TestNewFromPoints(t *testing.T) {
	_, err := NewFromPoints(ControlPoint{Value: 0})
	assert.Error(t, err)

	f, err := NewFromPoints(
		ControlPoint{1, math32.Vec4(1, 1, 1, 1)},
		ControlPoint{0, math32.Vec4(0, 0, 0, 0)},
	)
	require.NoError(t, err)
	assertSorted(t, f)
	assert.Equal(t, New().Points(), f.Points())
}

func TestPresetsString(t *testing.T) {
	for _, p := range PresetsValues() {
		var q Presets
		require.NoError(t, q.SetString(p.String()))
		assert.Equal(t, p, q)
	}
	var q Presets
	assert.NoError(t, q.SetString("HOT"))
	assert.Equal(t, Hot, q)
	assert.Error(t, q.SetString("viridis"))
	assert.Equal(t, "Presets(9)", Presets(9).String())
}

func TestSaveOpen(t *testing.T) {
	f := NewPreset(Rainbow)
	fn := filepath.Join(t.TempDir(), "rainbow.toml")
	require.NoError(t, f.Save(fn))

	g, err := Open(fn)
	require.NoError(t, err)
	assert.Equal(t, f.Points(), g.Points())

	_, err = Open(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestRead(t *testing.T) {
	src := `
[[points]]
value = 1.0
color = [1.0, 0.0, 0.0, 1.0]

[[points]]
value = 0.0
color = [0.0, 0.0, 1.0, 0.0]
`
	f, err := Read(bytes.NewBufferString(src))
	require.NoError(t, err)
	assert.Equal(t, math32.Vec4(0, 0, 1, 0), f.Color3D(0))
	assert.Equal(t, math32.Vec4(1, 0, 0, 1), f.Color3D(1))

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	assert.Contains(t, buf.String(), "[[points]]")

	_, err = Read(bytes.NewBufferString("[[points]]\nvalue = 0.0\n"))
	assert.Error(t, err)
}

func TestImage(t *testing.T) {
	img := NewPreset(Hot).Image(256, 4)
	assert.Equal(t, 256, img.Bounds().Dx())
	assert.Equal(t, 4, img.Bounds().Dy())
	assert.Equal(t, uint8(0), img.NRGBAAt(0, 0).A)
	end := img.NRGBAAt(255, 3)
	assert.Equal(t, uint8(255), end.R)
	assert.Equal(t, uint8(255), end.A)
}
