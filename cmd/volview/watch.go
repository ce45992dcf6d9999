// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"

	"cogentcore.org/volume/base/errors"
	"cogentcore.org/volume/base/logx"
	"cogentcore.org/volume/config"
	"cogentcore.org/volume/viewer"
	"github.com/fsnotify/fsnotify"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
)

func newWatchCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "watch FILES...",
		Short: "Render the volume again whenever one of its slice images changes",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			return watch(ctx, opts.cfg, args)
		},
	}
}

// watcher re-renders a volume when its files change. The viewer is
// only used from the goroutine running [watcher.run].
type watcher struct {
	cfg   *config.Config
	vw    *viewer.Viewer
	files []string

	// targets are the cleaned absolute paths of the files.
	targets map[string]bool

	// rendered is called after each render, if set.
	rendered func()
}

func newWatcher(cfg *config.Config, files []string) (*watcher, error) {
	vw, err := cfg.NewViewer()
	if err != nil {
		return nil, err
	}
	w := &watcher{cfg: cfg, vw: vw, files: files, targets: map[string]bool{}}
	for _, f := range files {
		p, err := homedir.Expand(f)
		if err != nil {
			return nil, err
		}
		abs, err := filepath.Abs(p)
		if err != nil {
			return nil, err
		}
		w.targets[abs] = true
	}
	return w, nil
}

// update reloads the volume wholesale and renders it.
func (w *watcher) update() error {
	if err := load(w.vw, w.files); err != nil {
		return err
	}
	w.vw.ResetCamera()
	if err := w.cfg.ApplyCamera(w.vw); err != nil {
		return err
	}
	if err := save(w.vw, w.cfg); err != nil {
		return err
	}
	if w.rendered != nil {
		w.rendered()
	}
	return nil
}

// run watches the directories of the files, since editors often
// replace files instead of writing them, until ctx is done.
func (w *watcher) run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fw.Close()
	dirs := map[string]bool{}
	for t := range w.targets {
		dirs[filepath.Dir(t)] = true
	}
	for d := range dirs {
		if err := fw.Add(d); err != nil {
			return err
		}
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			abs, err := filepath.Abs(event.Name)
			if err != nil || !w.targets[abs] {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			slog.Debug("file changed", "file", event.Name, "op", event.Op)
			// a file may be partly written; keep watching
			errors.Log(w.update())
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			errors.Log(err)
		}
	}
}

func watch(ctx context.Context, cfg *config.Config, files []string) error {
	w, err := newWatcher(cfg, files)
	if err != nil {
		return err
	}
	if err := w.update(); err != nil {
		return err
	}
	logx.PrintlnInfo("watching ", len(files), " files; press Ctrl+C to stop")
	return w.run(ctx)
}
