package main

import (
	"context"

	"github.com/fsnotify/fsnotify"
	log "github.com/sirupsen/logrus"
)

// watchConfig monitors path for changes and invokes onChange with the
// reloaded config each time it's rewritten, until ctx is cancelled.
//
// Grounded on watcher in pkg/lib/filemonitor/watcher.go: a single
// fsnotify.Watcher, an event/error select loop run in its own
// goroutine, Close on ctx.Done. Unlike the teacher's generic
// onUpdateFn(*logrus.Logger, fsnotify.Event) callback, watchConfig's
// callback is typed to pkgsolve's own *config, since this file is the
// only site that ever watches anything in this repo.
func watchConfig(ctx context.Context, path string, onChange func(*config)) error {
	notify, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := notify.Add(path); err != nil {
		notify.Close()
		return err
	}

	go func() {
		for {
			select {
			case <-ctx.Done():
				notify.Close()
				log.Debug("pkgsolve: terminating config watcher")
				return
			case event := <-notify.Events:
				log.Debugf("pkgsolve: config watcher got event: %v", event)
				if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
					continue
				}
				cfg, err := loadConfig(path)
				if err != nil {
					log.Warnf("pkgsolve: reloading config: %s", err)
					continue
				}
				onChange(cfg)
			case err := <-notify.Errors:
				log.Warnf("pkgsolve: config watcher got error: %v", err)
			}
		}
	}()

	return nil
}
