package loader

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/angelcm/adboard-go/internal/frame"
)

// Loader reads CSV files into frames and memoizes the parse per path.
// The cache lives for the process: the dashboard treats its input files
// as a static snapshot, so there is no invalidation. It is a struct, not
// a package global, so tests can inject a fresh one.
type Loader struct {
	mu    sync.Mutex
	cache map[string]*frame.Frame
	log   *slog.Logger
}

func New(log *slog.Logger) *Loader {
	return &Loader{cache: make(map[string]*frame.Frame), log: log}
}

// Load returns the parsed frame for path. A missing file is not an
// error: it returns (nil, nil) so callers branch on presence and report
// "not found" instead of halting. Any column named "date" (any casing)
// is coerced to dates, with unparsable entries kept as null-date rows.
func (l *Loader) Load(path string) (*frame.Frame, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if f, ok := l.cache[path]; ok {
		return f, nil
	}

	fh, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			l.log.Info("source file not found", slog.String("path", path))
			return nil, nil
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer fh.Close()

	f, err := frame.ReadCSV(fh)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	for _, col := range f.Columns() {
		if strings.EqualFold(col, "date") {
			f = f.WithDateColumn(col)
		}
	}

	l.cache[path] = f
	l.log.Info("loaded source file",
		slog.String("path", path),
		slog.Int("rows", f.NumRows()),
		slog.Int("cols", f.NumCols()))
	return f, nil
}
