// Package hotreload turns edits to shader files on disk into hot-reload requests.
package hotreload

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/Carmen-Shannon/oxy-spine/engine/renderer"
	"github.com/fsnotify/fsnotify"
)

// Requester receives new shader sources. *renderer.HotReloader satisfies it.
type Requester interface {
	Request(prog renderer.Program)
}

var _ Requester = (*renderer.HotReloader)(nil)

// Watcher watches a vertex and a fragment shader file and requests a reload with both sources
// whenever either changes. It watches the parent directories so editors that save by
// rename-and-replace are still seen.
type Watcher struct {
	vertexPath   string
	fragmentPath string
	target       Requester

	fsw       *fsnotify.Watcher
	done      chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once

	requests atomic.Int64
}

// NewWatcher starts watching both files.
//
// Parameters:
//   - vertexPath, fragmentPath: the shader files
//   - target: receives the sources after each change
//
// Returns:
//   - *Watcher: the running watcher, call Close to stop it
//   - error: if the files' directories cannot be watched
func NewWatcher(vertexPath, fragmentPath string, target Requester) (*Watcher, error) {
	if target == nil {
		return nil, errors.New("watcher needs a reload target")
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create file watcher: %w", err)
	}

	w := &Watcher{
		vertexPath:   filepath.Clean(vertexPath),
		fragmentPath: filepath.Clean(fragmentPath),
		target:       target,
		fsw:          fsw,
		done:         make(chan struct{}),
	}

	dirs := map[string]struct{}{
		filepath.Dir(w.vertexPath):   {},
		filepath.Dir(w.fragmentPath): {},
	}
	for dir := range dirs {
		if err := fsw.Add(dir); err != nil {
			fsw.Close()
			return nil, fmt.Errorf("watch %s: %w", dir, err)
		}
	}

	w.wg.Add(1)
	go w.loop()
	return w, nil
}

func (w *Watcher) loop() {
	defer w.wg.Done()
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !w.relevant(event) {
				continue
			}
			if err := w.Reload(); err != nil {
				log.Printf("[Watcher] %v", err)
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			log.Printf("[Watcher] watch error: %v", err)
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
		return false
	}
	name := filepath.Clean(event.Name)
	return name == w.vertexPath || name == w.fragmentPath
}

// Reload reads both files and hands them to the target. A file that cannot be read (for
// example mid-save) skips the request.
//
// Returns:
//   - error: a read error
func (w *Watcher) Reload() error {
	vs, err := os.ReadFile(w.vertexPath)
	if err != nil {
		return fmt.Errorf("read vertex shader: %w", err)
	}
	fs, err := os.ReadFile(w.fragmentPath)
	if err != nil {
		return fmt.Errorf("read fragment shader: %w", err)
	}
	w.target.Request(renderer.Program{Vertex: string(vs), Fragment: string(fs)})
	w.requests.Add(1)
	log.Printf("[Watcher] requested reload of %s + %s", filepath.Base(w.vertexPath), filepath.Base(w.fragmentPath))
	return nil
}

// Requests returns how many reloads have been requested.
func (w *Watcher) Requests() int64 {
	return w.requests.Load()
}

// Close stops the watcher and waits for its goroutine. Safe to call more than once.
func (w *Watcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		close(w.done)
		err = w.fsw.Close()
		w.wg.Wait()
	})
	return err
}
