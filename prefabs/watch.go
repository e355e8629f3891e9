package prefabs

import (
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ChangeKind classifies a changed prefab file.
type ChangeKind int

const (
	ChangeSpec ChangeKind = iota + 1
	ChangeScript
)

// Change is one debounced file change.
type Change struct {
	Path string
	// Name is the path relative to the prefab root, as Load expects it.
	Name string
	Kind ChangeKind
}

const debounce = 100 * time.Millisecond

// Watcher reports edits to prefab specs and scripts on Events.
type Watcher struct {
	watcher *fsnotify.Watcher
	Events  chan Change
	Errors  chan error
	closeCh chan struct{}
	once    sync.Once
}

func NewWatcher(dirs ...string) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	for _, dir := range dirs {
		if err := w.Add(dir); err != nil {
			_ = w.Close()
			return nil, err
		}
	}

	watcher := &Watcher{
		watcher: w,
		Events:  make(chan Change, 16),
		Errors:  make(chan error, 1),
		closeCh: make(chan struct{}),
	}
	go watcher.run()
	return watcher, nil
}

func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
	})
	return err
}

func (w *Watcher) run() {
	defer close(w.Events)
	defer close(w.Errors)

	last := make(map[string]time.Time)
	for {
		select {
		case evt, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if evt.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			change, ok := classify(evt.Name)
			if !ok {
				continue
			}
			now := time.Now()
			if t, ok := last[evt.Name]; ok && now.Sub(t) < debounce {
				continue
			}
			last[evt.Name] = now
			select {
			case w.Events <- change:
			case <-w.closeCh:
				return
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			select {
			case w.Errors <- err:
			default:
			}
		case <-w.closeCh:
			return
		}
	}
}

func classify(path string) (Change, bool) {
	ext := strings.ToLower(filepath.Ext(path))
	base := filepath.Base(path)
	switch ext {
	case ".yaml", ".yml":
		return Change{Path: path, Name: base, Kind: ChangeSpec}, true
	case ".tengo":
		return Change{Path: path, Name: "scripts/" + base, Kind: ChangeScript}, true
	}
	return Change{}, false
}
