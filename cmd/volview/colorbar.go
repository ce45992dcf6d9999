// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"cogentcore.org/volume/base/iox/imagex"
	"cogentcore.org/volume/base/logx"
	"github.com/spf13/cobra"
)

func newColorbarCmd(opts *options) *cobra.Command {
	height := 32
	cmd := &cobra.Command{
		Use:   "colorbar",
		Short: "Save the transfer function as a horizontal colorbar image",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tf, err := opts.cfg.TransferFunction()
			if err != nil {
				return err
			}
			out, err := opts.cfg.OutputPath()
			if err != nil {
				return err
			}
			if err := imagex.Save(tf.Image(opts.cfg.Width, height), out); err != nil {
				return err
			}
			logx.PrintlnInfo("saved colorbar ", logx.Cmd(out))
			return nil
		},
	}
	cmd.Flags().IntVar(&height, "bar-height", height, "height of the colorbar in pixels")
	return cmd
}
