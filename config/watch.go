package config

import (
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	vrdeck "github.com/vrdeck/vrdeck"
)

// Watch reloads the config whenever the file changes and hands the result to
// onChange. The directory is watched rather than the file because editors
// replace files by rename. The returned stop function ends the watch.
func Watch(path string, log vrdeck.Logger, onChange func(Config)) (stop func() error, err error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		watcher.Close()
		return nil, err
	}
	if err := watcher.Add(filepath.Dir(absPath)); err != nil {
		watcher.Close()
		return nil, err
	}

	go func() {
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != absPath {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
					continue
				}
				cfg, loadErr := Load(absPath)
				if loadErr != nil {
					// Half-written file mid-save; the next event retries.
					log.Debugf("config reload skipped: %v", loadErr)
					continue
				}
				log.Infof("config reloaded from %s", absPath)
				onChange(cfg)

			case watchErr, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Warnf("config watcher: %v", watchErr)
			}
		}
	}()

	return watcher.Close, nil
}
