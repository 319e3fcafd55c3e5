// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	log "github.com/sirupsen/logrus"
)

// DefaultReloadDebounce collapses the burst of events editors emit on save.
const DefaultReloadDebounce = 200 * time.Millisecond

// ReloadFunc receives the freshly loaded configuration, or the error that
// prevented loading it.
type ReloadFunc func(cfg *Config, err error)

// =============================================================================
// FSNOTIFY WATCHER
// =============================================================================

// Watcher reloads a config file whenever it changes on disk.
//
// The parent directory is watched rather than the file itself so that
// atomic rename-on-save keeps working.
type Watcher struct {
	path      string
	onReload  ReloadFunc
	overrides []Override
	debounce time.Duration
	watcher  *fsnotify.Watcher

	done chan struct{}
	wg   sync.WaitGroup
	once sync.Once
}

// NewWatcher starts watching path. Every reload applies overrides the same
// way LoadWithOverrides does. Close must be called to release it.
func NewWatcher(path string, onReload ReloadFunc, overrides ...Override) (*Watcher, error) {
	return newWatcher(path, onReload, DefaultReloadDebounce, overrides...)
}

func newWatcher(path string, onReload ReloadFunc, debounce time.Duration, overrides ...Override) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve config path: %w", err)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}

	w := &Watcher{
		path:      abs,
		onReload:  onReload,
		overrides: overrides,
		debounce:  debounce,
		watcher:   fw,
		done:      make(chan struct{}),
	}
	w.wg.Add(1)
	go w.run()
	return w, nil
}

// Path returns the absolute path being watched.
func (w *Watcher) Path() string {
	return w.path
}

// Close stops watching and waits for the event loop to exit.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.done)
		err = w.watcher.Close()
		w.wg.Wait()
	})
	return err
}

func (w *Watcher) run() {
	defer w.wg.Done()

	// Stopped timer; armed by the first relevant event.
	timer := time.NewTimer(time.Hour)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-w.done:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			timer.Reset(w.debounce)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.WithError(err).Warn("config watcher error")

		case <-timer.C:
			cfg, err := LoadWithOverrides(w.path, w.overrides...)
			if err != nil {
				log.WithError(err).WithField("path", w.path).Warn("config reload failed")
			} else {
				log.WithField("path", w.path).Info("config reloaded")
			}
			if w.onReload != nil {
				w.onReload(cfg, err)
			}
		}
	}
}
