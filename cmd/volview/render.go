// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"log/slog"

	"cogentcore.org/volume/base/iox/imagex"
	"cogentcore.org/volume/base/logx"
	"cogentcore.org/volume/config"
	"cogentcore.org/volume/viewer"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
)

func newRenderCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "render FILES...",
		Short: "Render the volume stacked from the given slice images",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			vw, err := opts.cfg.NewViewer()
			if err != nil {
				return err
			}
			if err := load(vw, args); err != nil {
				return err
			}
			if err := opts.cfg.ApplyCamera(vw); err != nil {
				return err
			}
			return save(vw, opts.cfg)
		},
	}
}

// load replaces the volume of the viewer with the planes of the given files.
func load(vw *viewer.Viewer, files []string) error {
	paths := make([]string, len(files))
	for i, f := range files {
		p, err := homedir.Expand(f)
		if err != nil {
			return err
		}
		paths[i] = p
	}
	planes, err := imagex.ReadFiles(&imagex.PlaneDecoder{}, paths...)
	if err != nil {
		return err
	}
	dims, err := vw.Load(planes)
	if err != nil {
		return fmt.Errorf("loading volume: %w", err)
	}
	slog.Debug("volume ready", "files", len(files), "dims", dims)
	return nil
}

// save renders the viewer and saves the image to the configured output.
func save(vw *viewer.Viewer, cfg *config.Config) error {
	vw.Render()
	out, err := cfg.OutputPath()
	if err != nil {
		return err
	}
	img := imagex.Scale(vw.Image(), cfg.Scale)
	if err := imagex.Save(img, out); err != nil {
		return err
	}
	sz := img.Bounds().Size()
	logx.PrintlnInfo("rendered ", logx.Cmd(out), " ", logx.Success(fmt.Sprintf("%dx%d", sz.X, sz.Y)))
	return nil
}
