// Package store persists the best genome found across training runs.
package store

import (
	"compress/gzip"
	"encoding/gob"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/pthm-cable/dino/neat"
)

// Version is the current record format.
const Version = 2

// ErrNoRecord is returned by Load when nothing has been saved yet.
var ErrNoRecord = errors.New("store: no saved genome")

// Record is the on-disk form of a saved genome.
type Record struct {
	Version int
	Fitness float64
	Genome  *neat.Genome
	SavedAt time.Time
}

// Load reads the record at path.
func Load(path string) (*Record, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNoRecord, path)
	}
	if err != nil {
		return nil, fmt.Errorf("opening genome file: %w", err)
	}
	defer f.Close()

	zr, err := gzip.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	defer zr.Close()

	var rec Record
	if err := gob.NewDecoder(zr).Decode(&rec); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	if rec.Version != Version {
		return nil, fmt.Errorf("decoding %s: unsupported version %d", path, rec.Version)
	}
	if rec.Genome == nil {
		return nil, fmt.Errorf("decoding %s: record has no genome", path)
	}
	return &rec, nil
}

// Save writes g to path, replacing any existing record. The file is
// written under a temporary name and renamed into place.
func Save(path string, g *neat.Genome) error {
	rec := Record{
		Version: Version,
		Fitness: g.Fitness,
		Genome:  g,
		SavedAt: time.Now().UTC(),
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temporary genome file: %w", err)
	}
	defer os.Remove(tmp.Name())

	zw := gzip.NewWriter(tmp)
	if err := gob.NewEncoder(zw).Encode(&rec); err != nil {
		tmp.Close()
		return fmt.Errorf("encoding genome: %w", err)
	}
	if err := zw.Close(); err != nil {
		tmp.Close()
		return fmt.Errorf("compressing genome: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("writing genome file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replacing genome file: %w", err)
	}
	return nil
}

// SaveIfBetter saves g when no record exists or when g is strictly fitter
// than the saved one. A record that cannot be decoded is an error and
// nothing is written.
func SaveIfBetter(path string, g *neat.Genome) (bool, error) {
	rec, err := Load(path)
	switch {
	case errors.Is(err, ErrNoRecord):
	case err != nil:
		return false, err
	case g.Fitness <= rec.Fitness:
		return false, nil
	}

	if err := Save(path, g); err != nil {
		return false, err
	}
	return true, nil
}
