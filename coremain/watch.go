package coremain

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"slices"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

const reloadDelay = time.Second

// WatchScript replays the script once, then again every time the
// config file or one of its included files changes, until SIGINT or
// SIGTERM.
func WatchScript(rf *runFlags) error {
	if err := chdir(rf.dir); err != nil {
		return err
	}

	cfg, files, err := loadConfigWithInclude(rf.c)
	if err != nil {
		return err
	}
	sl, err := NewSlist(cfg)
	if err != nil {
		return err
	}
	if err := setLogLevel(rf.logLevel); err != nil {
		return err
	}
	if _, err := sl.Replay(&cfg.Script); err != nil {
		sl.logger.Error("script failed", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return sl.watch(ctx, files)
}

// watch replays files[0] on changes of any file in files. Files
// included later by a reload are watched as well.
func (s *Slist) watch(ctx context.Context, files []string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher, %w", err)
	}
	defer watcher.Close()

	for _, f := range files {
		if err := watcher.Add(f); err != nil {
			return fmt.Errorf("failed to watch %s, %w", f, err)
		}
		s.logger.Info("watching script", zap.String("file", f))
	}
	watched := files

	timer := time.NewTimer(0)
	if !timer.Stop() {
		select {
		case <-timer.C:
		default:
		}
	}
	resetTimer := func() {
		if !timer.Stop() {
			select {
			case <-timer.C:
			default:
			}
		}
		timer.Reset(reloadDelay)
	}

	needReWatch := false
	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil

		case e, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if e.Has(fsnotify.Chmod) {
				continue
			}
			// Editors often replace the file, which drops the watch.
			if e.Has(fsnotify.Remove) || e.Has(fsnotify.Rename) {
				needReWatch = true
			}
			resetTimer()

		case <-timer.C:
			if needReWatch {
				needReWatch = false
				for _, f := range watched {
					_ = watcher.Remove(f)
					if err := watcher.Add(f); err != nil {
						s.logger.Warn("failed to re-watch script", zap.String("file", f), zap.Error(err))
					}
				}
			}
			for _, f := range s.reload(files[0]) {
				if slices.Contains(watched, f) {
					continue
				}
				if err := watcher.Add(f); err != nil {
					s.logger.Warn("failed to watch script", zap.String("file", f), zap.Error(err))
					continue
				}
				watched = append(watched, f)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.logger.Warn("watcher error", zap.Error(err))
		}
	}
}

// reload replays file and returns the files it loaded.
func (s *Slist) reload(file string) []string {
	cfg, files, err := loadConfigWithInclude(file)
	if err != nil {
		s.logger.Error("failed to reload script", zap.String("file", file), zap.Error(err))
		return nil
	}
	if _, err := s.Replay(&cfg.Script); err != nil {
		s.logger.Error("script failed", zap.Error(err))
	}
	return files
}
