// Package watch rebuilds the project whenever its sources change, with an
// optional periodic rebuild for projects that want scheduled refreshes.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-co-op/gocron/v2"

	"github.com/Zachdehooge/distbuilder/internal/config"
	"github.com/Zachdehooge/distbuilder/internal/logfields"
	"github.com/Zachdehooge/distbuilder/internal/pipeline"
)

const defaultDebounce = 2 * time.Second

// Rebuilder runs one build. The pipeline Builder satisfies it.
type Rebuilder interface {
	Build(ctx context.Context) (*pipeline.BuildReport, error)
}

// Watcher monitors the project's source files and triggers debounced rebuilds.
type Watcher struct {
	builder  Rebuilder
	debounce time.Duration
	interval time.Duration

	files map[string]struct{} // absolute file paths that trigger a rebuild
	extra []string            // extra directories where any change triggers
	dirs  []string            // directories registered with fsnotify

	mu    sync.Mutex
	timer *time.Timer

	// buildMu serializes rebuilds: a change arriving while a build is running
	// waits for it instead of racing a second pipeline over the same
	// venv/build/dist directories.
	buildMu sync.Mutex
}

// New builds a Watcher for the configured project. Paths are resolved
// relative to root. Watched by default: the entry point, the dependency
// manifest, the icon and all data files, plus any watch.paths entries.
func New(builder Rebuilder, cfg *config.Config, root string) (*Watcher, error) {
	w := &Watcher{
		builder:  builder,
		debounce: config.Duration(cfg.Watch.Debounce, defaultDebounce),
		interval: config.Duration(cfg.Watch.Interval, 0),
		files:    make(map[string]struct{}),
	}

	candidates := []string{cfg.Project.EntryPoint, cfg.Venv.Requirements, cfg.Project.Icon}
	for _, df := range cfg.Project.DataFiles {
		candidates = append(candidates, df.Source)
	}
	for _, p := range candidates {
		if p == "" {
			continue
		}
		abs, err := resolve(root, p)
		if err != nil {
			return nil, err
		}
		w.files[abs] = struct{}{}
		w.addDir(filepath.Dir(abs))
	}

	for _, p := range cfg.Watch.Paths {
		abs, err := resolve(root, p)
		if err != nil {
			return nil, err
		}
		info, err := os.Stat(abs)
		if err == nil && info.IsDir() {
			w.extra = append(w.extra, abs)
			w.addDir(abs)
			continue
		}
		w.files[abs] = struct{}{}
		w.addDir(filepath.Dir(abs))
	}

	if len(w.dirs) == 0 {
		return nil, fmt.Errorf("nothing to watch: no entry point, manifest or watch.paths configured")
	}
	return w, nil
}

// Run watches until the context is canceled. Rebuild failures are logged and
// watching continues; only watcher-level errors end the loop.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer fw.Close()

	for _, dir := range w.dirs {
		if err := fw.Add(dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
	}
	slog.Info("Watching for source changes",
		slog.Int("files", len(w.files)),
		slog.Int("directories", len(w.dirs)),
		slog.Duration("debounce", w.debounce))

	if w.interval > 0 {
		sched, err := gocron.NewScheduler()
		if err != nil {
			return fmt.Errorf("failed to create scheduler: %w", err)
		}
		_, err = sched.NewJob(
			gocron.DurationJob(w.interval),
			gocron.NewTask(func() { w.schedule(ctx) }),
			gocron.WithName("periodic-rebuild"),
		)
		if err != nil {
			return fmt.Errorf("failed to schedule periodic rebuild: %w", err)
		}
		sched.Start()
		defer func() { _ = sched.Shutdown() }()
		slog.Info("Periodic rebuild enabled", slog.Duration("interval", w.interval))
	}

	for {
		select {
		case <-ctx.Done():
			w.stopTimer()
			return nil
		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			slog.Debug("Source change detected", logfields.Path(event.Name))
			w.schedule(ctx)
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			slog.Error("Watcher error", logfields.Error(err))
		}
	}
}

// relevant reports whether the event touches a watched file or extra directory.
func (w *Watcher) relevant(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
		return false
	}
	abs, err := filepath.Abs(event.Name)
	if err != nil {
		return false
	}
	if _, ok := w.files[abs]; ok {
		return true
	}
	for _, dir := range w.extra {
		if strings.HasPrefix(abs, dir+string(os.PathSeparator)) {
			return true
		}
	}
	return false
}

// schedule (re)starts the debounce timer; rapid changes collapse into one build.
func (w *Watcher) schedule(ctx context.Context) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, func() { w.rebuild(ctx) })
}

func (w *Watcher) stopTimer() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
}

func (w *Watcher) rebuild(ctx context.Context) {
	w.buildMu.Lock()
	defer w.buildMu.Unlock()
	if ctx.Err() != nil {
		return
	}
	slog.Info("Changes settled, rebuilding")
	report, err := w.builder.Build(ctx)
	if err != nil {
		slog.Error("Rebuild aborted", logfields.Error(err))
		return
	}
	slog.Info("Rebuild finished",
		logfields.BuildID(report.BuildID),
		logfields.Outcome(string(report.Outcome)))
}

func (w *Watcher) addDir(dir string) {
	for _, d := range w.dirs {
		if d == dir {
			return
		}
	}
	w.dirs = append(w.dirs, dir)
}

func resolve(root, path string) (string, error) {
	if !filepath.IsAbs(path) {
		path = filepath.Join(root, path)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve watch path %s: %w", path, err)
	}
	return abs, nil
}
