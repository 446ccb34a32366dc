package main

import (
	"context"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"
)

func (a *app) watchCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "watch FILE",
		Short: f("rerun a program whenever it changes"),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			path := args[0]
			rerun := func() {
				err := a.runFile(cmd.OutOrStdout(), path)
				if err != nil {
					cmd.PrintErrf("%v\n", err)
				}
			}

			w, err := newFileWatcher(path, a.Logger.Named("watch"))
			if err != nil {
				return
			}
			defer w.Close()

			rerun()
			return w.Run(cmd.Context(), rerun)
		},
	}
}

// fileWatcher reports writes to a single file.
// The parent directory is watched, as editors often replace files rather than write them.
type fileWatcher struct {
	path    string
	logger  hclog.Logger
	watcher *fsnotify.Watcher
}

func newFileWatcher(path string, logger hclog.Logger) (fw *fileWatcher, err error) {
	path, err = filepath.Abs(path)
	if err != nil {
		return
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return
	}

	err = watcher.Add(filepath.Dir(path))
	if err != nil {
		watcher.Close()
		return
	}

	fw = &fileWatcher{
		path:    path,
		logger:  logger,
		watcher: watcher,
	}
	return
}

// Close stops watching.
func (fw *fileWatcher) Close() error {
	return fw.watcher.Close()
}

// Run calls changed on each write or create of the file, until ctx is done.
func (fw *fileWatcher) Run(ctx context.Context, changed func()) (err error) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != fw.path {
				continue
			}
			if event.Op&fsnotify.Write == fsnotify.Write ||
				event.Op&fsnotify.Create == fsnotify.Create {
				fw.logger.Info("changed", "path", fw.path, "op", event.Op.String())
				changed()
			}
		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return nil
			}
			fw.logger.Error("watch", "error", err)
		}
	}
}
