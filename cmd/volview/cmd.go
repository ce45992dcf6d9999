// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"strconv"
	"strings"

	"cogentcore.org/volume/base/logx"
	"cogentcore.org/volume/config"
	"cogentcore.org/volume/transfer"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// options are the values of the persistent flags.
type options struct {
	cfg        *config.Config
	configFile string
	verbose    int
	quiet      bool
}

func newRootCmd() *cobra.Command {
	opts := &options{cfg: config.New()}
	root := &cobra.Command{
		Use:           "volview",
		Short:         "Render volumes built from stacks of image slices",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logx.SetLevel(logx.LevelFromFlags(opts.verbose >= 2, opts.verbose == 1, opts.quiet))
			logx.SetDefaultLogger()
			return opts.openConfig(cmd.Flags())
		},
	}
	fs := root.PersistentFlags()
	c := opts.cfg
	fs.StringVar(&opts.configFile, "config", "", "TOML or YAML config file; flags override its values")
	fs.IntVar(&c.Width, "width", c.Width, "image width in pixels")
	fs.IntVar(&c.Height, "height", c.Height, "image height in pixels")
	fs.Var((*presetValue)(&c.Preset), "preset", "transfer function preset: grayscale, rainbow, hot, or cool")
	fs.StringVar(&c.Transfer, "transfer", c.Transfer, "TOML file of transfer function control points, overriding --preset")
	fs.Var((*pairValue)(&c.Orbit), "orbit", "camera yaw,pitch deltas in radians")
	fs.Float32Var(&c.Zoom, "zoom", c.Zoom, "camera zoom delta")
	fs.Var((*pairValue)(&c.Pan), "pan", "camera pan dx,dy deltas")
	fs.Float32Var(&c.Step, "step", c.Step, "ray marching step for 3D volumes")
	fs.Float64Var(&c.Scale, "scale", c.Scale, "factor to resize the output image by")
	fs.StringVarP(&c.Output, "output", "o", c.Output, "output image file")
	fs.CountVarP(&opts.verbose, "verbose", "v", "verbose output; repeat for debug output")
	fs.BoolVarP(&opts.quiet, "quiet", "q", false, "only show errors")

	root.AddCommand(newRenderCmd(opts), newColorbarCmd(opts), newWatchCmd(opts))
	return root
}

// openConfig reads the config file, if any, and then reapplies the
// flags that were set on the command line so that they take precedence.
func (o *options) openConfig(fs *pflag.FlagSet) error {
	if o.configFile == "" {
		return nil
	}
	set := map[string]string{}
	fs.Visit(func(f *pflag.Flag) {
		set[f.Name] = f.Value.String()
	})
	o.cfg.Defaults()
	if err := o.cfg.Open(o.configFile); err != nil {
		return err
	}
	for name, val := range set {
		f := fs.Lookup(name)
		if f == nil || name == "verbose" {
			continue
		}
		if err := f.Value.Set(val); err != nil {
			return fmt.Errorf("reapplying --%s: %w", name, err)
		}
	}
	return nil
}

// presetValue is a [pflag.Value] for [transfer.Presets].
type presetValue transfer.Presets

func (p *presetValue) String() string { return transfer.Presets(*p).String() }
func (p *presetValue) Set(s string) error {
	return (*transfer.Presets)(p).SetString(s)
}
func (p *presetValue) Type() string { return "preset" }

// pairValue is a [pflag.Value] for two comma separated numbers.
type pairValue [2]float32

func (p *pairValue) String() string {
	return strconv.FormatFloat(float64(p[0]), 'g', -1, 32) + "," + strconv.FormatFloat(float64(p[1]), 'g', -1, 32)
}

func (p *pairValue) Set(s string) error {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return fmt.Errorf("expected two comma separated numbers, got %q", s)
	}
	for i, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 32)
		if err != nil {
			return err
		}
		p[i] = float32(v)
	}
	return nil
}

func (p *pairValue) Type() string { return "x,y" }
