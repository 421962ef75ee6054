// Package watch imports course materials into a course as they appear
// in a watched directory.
package watch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/clarity-labs/coursemate-cli/internal/core/ports/driving"
	"github.com/clarity-labs/coursemate-cli/internal/logger"
)

// DefaultDebounce is how long a file must stay unchanged before it is
// imported. Editors and downloads write files in bursts; importing on
// the first event would read half-written content.
const DefaultDebounce = 2 * time.Second

// materialExtensions are the file extensions the watcher imports.
// Matches the filesystem source's supported set.
var materialExtensions = map[string]bool{
	".pdf":      true,
	".txt":      true,
	".md":       true,
	".markdown": true,
}

// Watcher watches one directory and imports files into a course once
// they settle.
type Watcher struct {
	importer driving.Importer
	debounce time.Duration
	fs       *fsnotify.Watcher

	mu      sync.Mutex
	pending map[string]*time.Timer

	// settled receives paths whose debounce window elapsed.
	settled chan string
}

// New creates a watcher that imports through the given importer.
// A non-positive debounce uses DefaultDebounce.
func New(importer driving.Importer, debounce time.Duration) (*Watcher, error) {
	if importer == nil {
		return nil, fmt.Errorf("importer is required")
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create filesystem watcher: %w", err)
	}

	return &Watcher{
		importer: importer,
		debounce: debounce,
		fs:       fsw,
		pending:  make(map[string]*time.Timer),
		settled:  make(chan string, 16),
	}, nil
}

// Close stops the filesystem watcher and cancels pending imports.
func (w *Watcher) Close() error {
	w.mu.Lock()
	for path, timer := range w.pending {
		timer.Stop()
		delete(w.pending, path)
	}
	w.mu.Unlock()
	return w.fs.Close()
}

// Run watches dir until the context is cancelled. Created and modified
// material files are imported into the course after they settle.
func (w *Watcher) Run(ctx context.Context, dir, courseID string) error {
	if courseID == "" {
		return fmt.Errorf("course id is required")
	}

	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("stat %s: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("not a directory: %s", dir)
	}

	if err := w.fs.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	logger.Info("Watching %s (debounce %s)", dir, w.debounce)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			w.handleEvent(event)

		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Watch error: %v", err)

		case path := <-w.settled:
			w.importFile(ctx, path, courseID)
		}
	}
}

// handleEvent starts or resets the debounce timer for a material file.
// Each write within the window pushes the import back.
func (w *Watcher) handleEvent(event fsnotify.Event) {
	if !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Write) {
		return
	}

	name := filepath.Base(event.Name)
	if strings.HasPrefix(name, ".") {
		return
	}
	if !materialExtensions[strings.ToLower(filepath.Ext(name))] {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if timer, ok := w.pending[event.Name]; ok {
		timer.Reset(w.debounce)
		return
	}

	path := event.Name
	w.pending[path] = time.AfterFunc(w.debounce, func() {
		w.mu.Lock()
		delete(w.pending, path)
		w.mu.Unlock()

		// Dropping instead of blocking keeps the timer goroutine from
		// outliving a closed watcher.
		select {
		case w.settled <- path:
		default:
			logger.Warn("Watch import queue full, skipping %s", path)
		}
	})
}

// importFile imports one settled file through the filesystem source,
// scoped to exactly that file.
func (w *Watcher) importFile(ctx context.Context, path, courseID string) {
	logger.Section("Watch Import")
	logger.Info("Importing %s", path)

	report, err := w.importer.Import(ctx, courseID, driving.ImportSpec{
		SourceType: driving.ImportSourceDirectory,
		Path:       filepath.Dir(path),
		Patterns:   []string{filepath.Base(path)},
	})
	if err != nil {
		logger.Warn("Import %s failed: %v", path, err)
		return
	}

	logger.Info("Imported %s: %d processed, %d failed", path, report.Processed, report.Failed)
	for _, msg := range report.Errors {
		logger.Warn("  %s", msg)
	}
}
