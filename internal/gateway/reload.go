package gateway

import (
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/pikachuaaaa/RPGBot/internal/event"
	"github.com/pikachuaaaa/RPGBot/internal/logging"
	"github.com/pikachuaaaa/RPGBot/internal/parser"
)

// Reload sources reported in commands.reloaded events.
const (
	ReloadSourceWatch  = "watch"
	ReloadSourceManual = "manual"
)

// DefaultReloadDelay is how long the reloader waits for file changes to settle.
const DefaultReloadDelay = 200 * time.Millisecond

// BuildFunc builds a parser from the current command sources.
type BuildFunc func() (*parser.Parser, error)

// Reloader rebuilds the dispatcher's parser when template command files
// change. A failed rebuild keeps the previous parser.
type Reloader struct {
	watcher    *fsnotify.Watcher
	dir        string
	build      BuildFunc
	dispatcher *Dispatcher
	bus        *event.Bus
	delay      time.Duration
	stopCh     chan struct{}
	doneCh     chan struct{}
	started    bool
	mu         sync.Mutex
}

// NewReloader watches dir and everything below it. Returns nil if dir does
// not exist.
func NewReloader(dir string, d *Dispatcher, bus *event.Bus, build BuildFunc) (*Reloader, error) {
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		logging.Debug().Str("dir", dir).Msg("command directory missing, reloader disabled")
		return nil, nil
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	r := &Reloader{
		watcher:    w,
		dir:        dir,
		build:      build,
		dispatcher: d,
		bus:        bus,
		delay:      DefaultReloadDelay,
		stopCh:     make(chan struct{}),
		doneCh:     make(chan struct{}),
	}
	if err := r.addTree(dir); err != nil {
		w.Close()
		return nil, err
	}

	logging.Info().Str("dir", dir).Msg("command reloader initialized")
	return r, nil
}

// SetDelay changes the settle delay. It must be called before Start.
func (r *Reloader) SetDelay(d time.Duration) {
	r.delay = d
}

// fsnotify is not recursive, so each directory is watched on its own.
func (r *Reloader) addTree(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return r.watcher.Add(path)
		}
		return nil
	})
}

// Start begins watching for changes.
func (r *Reloader) Start() {
	if r == nil {
		return
	}
	r.mu.Lock()
	if r.started {
		r.mu.Unlock()
		return
	}
	r.started = true
	r.mu.Unlock()
	go r.run()
}

func (r *Reloader) run() {
	defer close(r.doneCh)

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-r.stopCh:
			return
		case ev, ok := <-r.watcher.Events:
			if !ok {
				return
			}
			if ev.Op == fsnotify.Chmod {
				continue
			}
			if ev.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
					if err := r.addTree(ev.Name); err != nil {
						logging.Warn().Err(err).Str("dir", ev.Name).Msg("failed to watch directory")
					}
				}
			}
			logging.Debug().Str("file", ev.Name).Str("op", ev.Op.String()).Msg("command source changed")

			if timer == nil {
				timer = time.NewTimer(r.delay)
			} else {
				timer.Reset(r.delay)
			}
			fire = timer.C
		case <-fire:
			fire = nil
			r.reload(ReloadSourceWatch)
		case err, ok := <-r.watcher.Errors:
			if !ok {
				return
			}
			logging.Error().Err(err).Msg("command reloader error")
		}
	}
}

// Reload rebuilds the parser now.
func (r *Reloader) Reload() error {
	return r.reload(ReloadSourceManual)
}

func (r *Reloader) reload(source string) error {
	p, err := r.build()
	if err != nil {
		logging.Error().Err(err).Str("source", source).Msg("command reload failed, keeping previous commands")
		r.publish(event.CommandsReloadedData{
			Commands: len(r.dispatcher.Parser().Commands()),
			Source:   source,
			Error:    err.Error(),
		})
		return err
	}

	r.dispatcher.Swap(p)
	n := len(p.Commands())
	logging.Info().Int("commands", n).Str("source", source).Msg("commands reloaded")
	r.publish(event.CommandsReloadedData{Commands: n, Source: source})
	return nil
}

func (r *Reloader) publish(data event.CommandsReloadedData) {
	if r.bus != nil {
		r.bus.Publish(event.Event{Type: event.CommandsReloaded, Data: data})
	}
}

// Stop stops the reloader.
func (r *Reloader) Stop() error {
	if r == nil {
		return nil
	}
	r.mu.Lock()
	started := r.started
	r.mu.Unlock()

	select {
	case <-r.stopCh:
	default:
		close(r.stopCh)
	}

	if started {
		<-r.doneCh
	}

	return r.watcher.Close()
}
