package behavior

import (
	"context"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/linkki-framework/linkki-sub003/pkg/logutil"
)

var logger = logutil.GetLogger("[behavior] ")

// Reloadable is a Provider whose behaviors can be replaced while it is in
// use. The zero value supplies no behaviors.
type Reloadable struct {
	current atomic.Pointer[List]
}

// NewReloadable returns a Reloadable initially supplying the behaviors of l.
func NewReloadable(l List) *Reloadable {
	r := &Reloadable{}
	r.Set(l)
	return r
}

// Behaviors returns the behaviors currently supplied.
func (r *Reloadable) Behaviors() []Behavior {
	if l := r.current.Load(); l != nil {
		return *l
	}
	return nil
}

// Set replaces the behaviors supplied.
func (r *Reloadable) Set(l List) { r.current.Store(&l) }

// Debounce is how long Watch waits for changes to a file to settle before
// reloading it.
var Debounce = 100 * time.Millisecond

// Watch reloads the behavior config at path into r every time the file
// changes, until ctx is done. Invalid configs are logged and do not replace
// the current behaviors. If onReload is not nil, it is called after every
// successful reload, from a goroutine owned by Watch.
//
// Watch watches the directory of the file, so that editors replacing the
// file instead of writing to it are supported.
func Watch(ctx context.Context, path string, r *Reloadable, onReload func()) error {
	path = filepath.Clean(path)
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return err
	}

	var mu sync.Mutex
	var timer *time.Timer
	reload := func() {
		cfg, err := LoadConfig(path)
		if err != nil {
			logger.Printf("keeping current behaviors: %v", err)
			return
		}
		r.Set(cfg.Provider())
		logger.Printf("reloaded %s", path)
		if onReload != nil {
			onReload()
		}
	}
	defer func() {
		mu.Lock()
		defer mu.Unlock()
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != path ||
				!event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			mu.Lock()
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(Debounce, reload)
			mu.Unlock()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Println("watch error:", err)
		}
	}
}
