package watch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"docmark/internal/logfields"
)

// DefaultDebounce is the quiet period after the last change before a rebuild.
const DefaultDebounce = 300 * time.Millisecond

// Watcher reports changes to the Go sources of one package directory.
type Watcher struct {
	fw       *fsnotify.Watcher
	dir      string
	only     string // set when a single file is watched
	debounce time.Duration
	logger   *slog.Logger
}

type Option func(*Watcher)

func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) { w.debounce = d }
}

func WithLogger(logger *slog.Logger) Option {
	return func(w *Watcher) { w.logger = logger }
}

// New starts watching path. A directory is watched for its non-test .go
// files; a file path watches its directory but reacts to that file only.
func New(path string, opts ...Option) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", path, err)
	}
	st, err := os.Stat(abs)
	if err != nil {
		return nil, err
	}

	w := &Watcher{dir: abs, debounce: DefaultDebounce, logger: slog.Default()}
	if !st.IsDir() {
		w.dir, w.only = filepath.Dir(abs), abs
	}
	for _, opt := range opts {
		opt(w)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("fsnotify: %w", err)
	}
	if err := fw.Add(w.dir); err != nil {
		_ = fw.Close()
		return nil, fmt.Errorf("watch %s: %w", w.dir, err)
	}
	w.fw = fw
	return w, nil
}

// Run calls onChange once per burst of relevant events until ctx is done.
// Errors from onChange are logged and do not stop the loop.
func (w *Watcher) Run(ctx context.Context, onChange func(context.Context) error) error {
	defer func() { _ = w.fw.Close() }()

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
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.fw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(ev) {
				continue
			}
			w.logger.Debug("Source changed", logfields.File(ev.Name), logfields.Event(ev.Op.String()))
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C
		case err, ok := <-w.fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("Watcher error", logfields.Error(err))
		case <-fire:
			fire = nil
			if err := onChange(ctx); err != nil {
				w.logger.Error("Rebuild failed", logfields.Path(w.dir), logfields.Error(err))
			}
		}
	}
}

func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Remove) && !ev.Has(fsnotify.Rename) {
		return false
	}
	if w.only != "" {
		return filepath.Clean(ev.Name) == w.only
	}
	name := filepath.Base(ev.Name)
	return strings.HasSuffix(name, ".go") && !strings.HasSuffix(name, "_test.go")
}
