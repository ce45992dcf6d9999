// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config contains the configuration
// structs for the volview tool.
package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"cogentcore.org/volume/base/iox/tomlx"
	"cogentcore.org/volume/base/iox/yamlx"
	"cogentcore.org/volume/render"
	"cogentcore.org/volume/transfer"
	"cogentcore.org/volume/viewer"
	"github.com/mitchellh/go-homedir"
)

// Config is the main config struct that contains all of the
// configuration options for rendering a volume. It can be read
// from a TOML or YAML file, and command line flags override it.
type Config struct {

	// the width of the rendered image in pixels
	Width int `toml:"width" yaml:"width"`

	// the height of the rendered image in pixels
	Height int `toml:"height" yaml:"height"`

	// the built-in transfer function, used when Transfer is not set
	Preset transfer.Presets `toml:"preset" yaml:"preset"`

	// a TOML file of transfer function control points
	Transfer string `toml:"transfer" yaml:"transfer"`

	// the yaw and pitch deltas applied to the default camera, in radians
	Orbit [2]float32 `toml:"orbit" yaml:"orbit"`

	// the zoom delta applied to the camera
	Zoom float32 `toml:"zoom" yaml:"zoom"`

	// the pan delta applied to the camera
	Pan [2]float32 `toml:"pan" yaml:"pan"`

	// the ray marching step for 3D volumes
	Step float32 `toml:"step" yaml:"step"`

	// the factor by which the output image is scaled
	Scale float64 `toml:"scale" yaml:"scale"`

	// the output image file
	Output string `toml:"output" yaml:"output"`
}

// Defaults sets the default values.
func (c *Config) Defaults() {
	c.Width = 512
	c.Height = 512
	c.Preset = transfer.Grayscale
	c.Step = render.DefaultStep
	c.Scale = 1
	c.Output = "volume.png"
}

// New returns a new config with default values.
func New() *Config {
	c := &Config{}
	c.Defaults()
	return c
}

// Open reads the config from the given file on top of its current
// values, as TOML or YAML based on the extension. A leading ~ is
// expanded to the home directory.
func (c *Config) Open(filename string) error {
	fn, err := homedir.Expand(filename)
	if err != nil {
		return err
	}
	switch strings.ToLower(filepath.Ext(fn)) {
	case ".toml":
		err = tomlx.Open(c, fn)
	case ".yaml", ".yml":
		err = yamlx.Open(c, fn)
	default:
		return fmt.Errorf("config: unsupported config file type %q", filepath.Ext(fn))
	}
	if err != nil {
		return fmt.Errorf("config: opening %q: %w", fn, err)
	}
	return nil
}

// Save writes the config to the given file, as TOML or YAML based
// on the extension.
func (c *Config) Save(filename string) error {
	fn, err := homedir.Expand(filename)
	if err != nil {
		return err
	}
	switch strings.ToLower(filepath.Ext(fn)) {
	case ".toml":
		return tomlx.Save(c, fn)
	case ".yaml", ".yml":
		return yamlx.Save(c, fn)
	}
	return fmt.Errorf("config: unsupported config file type %q", filepath.Ext(fn))
}

// TransferFunction returns the configured transfer function: the
// Transfer file if set, else the Preset.
func (c *Config) TransferFunction() (*transfer.Function, error) {
	if c.Transfer == "" {
		return transfer.NewPreset(c.Preset), nil
	}
	fn, err := homedir.Expand(c.Transfer)
	if err != nil {
		return nil, err
	}
	return transfer.Open(fn)
}

// NewViewer returns a new viewer with the configured size,
// transfer function, and step.
func (c *Config) NewViewer() (*viewer.Viewer, error) {
	vw, err := viewer.New(c.Width, c.Height)
	if err != nil {
		return nil, err
	}
	tf, err := c.TransferFunction()
	if err != nil {
		return nil, err
	}
	vw.SetTransfer(tf)
	if err := vw.SetStep(c.Step); err != nil {
		return nil, err
	}
	return vw, nil
}

// ApplyCamera applies the configured orbit, zoom, and pan to the
// camera of the viewer, which must have a volume loaded.
func (c *Config) ApplyCamera(vw *viewer.Viewer) error {
	if c.Orbit != [2]float32{} {
		if err := vw.Orbit(c.Orbit[0], c.Orbit[1]); err != nil {
			return err
		}
	}
	if c.Zoom != 0 {
		if err := vw.Zoom(c.Zoom); err != nil {
			return err
		}
	}
	if c.Pan != [2]float32{} {
		if err := vw.Pan(c.Pan[:]); err != nil {
			return err
		}
	}
	return nil
}

// OutputPath returns the Output file with a leading ~ expanded.
func (c *Config) OutputPath() (string, error) {
	return homedir.Expand(c.Output)
}
