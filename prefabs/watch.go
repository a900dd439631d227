package prefabs

import (
	"context"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const debounce = 100 * time.Millisecond

// Reload names a changed file by its base name, e.g. "player.yaml" or
// "scene.tengo".
type Reload struct {
	Name string
	Op   fsnotify.Op
}

// Watcher reports edits to prefab specs and level scripts on disk.
type Watcher struct {
	fs      *fsnotify.Watcher
	Reloads chan Reload
	Errors  chan error
	done    chan struct{}
	once    sync.Once
	wg      sync.WaitGroup
}

func NewWatcher(ctx context.Context, dirs ...string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	for _, dir := range dirs {
		if err := fw.Add(dir); err != nil {
			_ = fw.Close()
			return nil, err
		}
	}

	w := &Watcher{
		fs:      fw,
		Reloads: make(chan Reload, 16),
		Errors:  make(chan error, 1),
		done:    make(chan struct{}),
	}
	w.wg.Add(1)
	go w.run(ctx)
	return w, nil
}

// Close stops the watcher. It is safe to call more than once.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.done)
		err = w.fs.Close()
		w.wg.Wait()
		close(w.Reloads)
		close(w.Errors)
	})
	return err
}

func (w *Watcher) run(ctx context.Context) {
	defer w.wg.Done()

	last := make(map[string]time.Time)
	for {
		select {
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if !Watched(ev.Name) {
				continue
			}
			name := filepath.Base(ev.Name)
			now := time.Now()
			if t, ok := last[name]; ok && now.Sub(t) < debounce {
				continue
			}
			last[name] = now
			select {
			case w.Reloads <- Reload{Name: name, Op: ev.Op}:
			case <-w.done:
				return
			case <-ctx.Done():
				return
			}
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			select {
			case w.Errors <- err:
			default:
			}
		case <-w.done:
			return
		case <-ctx.Done():
			return
		}
	}
}

// Watched reports whether a path is a prefab spec or a level script.
func Watched(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml", ".tengo":
		return true
	}
	return false
}
