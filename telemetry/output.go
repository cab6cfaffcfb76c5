package telemetry

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/dino/config"
)

// csvSink is one CSV file that writes its header with the first row.
type csvSink struct {
	name   string
	f      *os.File
	header bool
}

func openSink(dir, name string) (*csvSink, error) {
	f, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", name, err)
	}
	return &csvSink{name: name, f: f}, nil
}

func appendRow[T any](s *csvSink, rec T) error {
	rows := []T{rec}
	var err error
	if s.header {
		err = gocsv.MarshalWithoutHeaders(rows, s.f)
	} else {
		err = gocsv.Marshal(rows, s.f)
		s.header = err == nil
	}
	if err != nil {
		return fmt.Errorf("writing %s: %w", s.name, err)
	}
	return nil
}

func (s *csvSink) close() error {
	if s == nil {
		return nil
	}
	return s.f.Close()
}

// OutputManager writes a run's CSV logs and config snapshot into one
// directory. A nil manager discards everything.
type OutputManager struct {
	dir         string
	generations *csvSink
	perf        *csvSink
	bookmarks   *csvSink
}

// NewOutputManager creates dir and the CSV files in it. An empty dir
// disables output and returns a nil manager.
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	om := &OutputManager{dir: dir}
	for _, s := range []struct {
		name string
		dst  **csvSink
	}{
		{"generations.csv", &om.generations},
		{"perf.csv", &om.perf},
		{"bookmarks.csv", &om.bookmarks},
	} {
		sink, err := openSink(dir, s.name)
		if err != nil {
			om.Close()
			return nil, err
		}
		*s.dst = sink
	}
	return om, nil
}

// WriteConfig snapshots the effective configuration as config.yaml.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(om.dir, "config.yaml"))
}

// WriteGeneration appends a row to generations.csv.
func (om *OutputManager) WriteGeneration(stats GenerationStats) error {
	if om == nil {
		return nil
	}
	return appendRow(om.generations, stats)
}

// WritePerf appends a row to perf.csv.
func (om *OutputManager) WritePerf(stats PerfStats, frame int) error {
	if om == nil {
		return nil
	}
	return appendRow(om.perf, stats.ToCSV(frame))
}

// WriteBookmark appends a row to bookmarks.csv.
func (om *OutputManager) WriteBookmark(b Bookmark) error {
	if om == nil {
		return nil
	}
	return appendRow(om.bookmarks, b)
}

// Dir returns the output directory, empty when output is disabled.
func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}

// Close closes every CSV file.
func (om *OutputManager) Close() error {
	if om == nil {
		return nil
	}
	return errors.Join(om.generations.close(), om.perf.close(), om.bookmarks.close())
}
