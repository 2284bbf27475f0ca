package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// reloadDelay coalesces the bursts of events editors produce on save.
const reloadDelay = 50 * time.Millisecond

// Watch reloads path whenever it is written or replaced. Valid configs are
// sent on the first channel, load errors on the second; invalid files never
// replace the last good config. The file need not exist yet; its directory
// is created so a later write is picked up. Both channels are closed when
// ctx is done.
func Watch(ctx context.Context, path string) (<-chan *Config, <-chan error, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to resolve %s: %w", path, err)
	}
	dir := filepath.Dir(abs)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, nil, fmt.Errorf("failed to create config directory %s: %w", dir, err)
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	// Watch the directory so atomic renames are seen.
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return nil, nil, fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	configs := make(chan *Config, 1)
	errs := make(chan error, 1)

	go func() {
		defer close(errs)
		defer close(configs)
		defer fsw.Close()

		var reload <-chan time.Time
		for {
			select {
			case <-ctx.Done():
				return

			case ev, ok := <-fsw.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != abs {
					continue
				}
				if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
					continue
				}
				reload = time.After(reloadDelay)

			case <-reload:
				reload = nil
				cfg, err := Load(abs)
				if err != nil {
					select {
					case errs <- err:
					case <-ctx.Done():
						return
					}
					continue
				}
				select {
				case configs <- cfg:
				case <-ctx.Done():
					return
				}

			case err, ok := <-fsw.Errors:
				if !ok {
					return
				}
				select {
				case errs <- err:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return configs, errs, nil
}
