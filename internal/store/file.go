// Package store persists named display modes.
package store

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"cathode/internal/display"
)

// FileStore keeps modes in a YAML file holding a flat list of records.
//
// Save is an unlocked read-modify-write of the whole file. Two processes
// saving at the same time can lose one of the writes; cathode is a
// single-user, single-invocation tool and does not guard against this.
type FileStore struct {
	path   string
	logger display.Logger
}

// NewFileStore creates a store backed by the file at path. The file and its
// parent directories are created on first use.
func NewFileStore(path string, logger display.Logger) *FileStore {
	return &FileStore{path: path, logger: logger}
}

// Path returns the backing file path.
func (s *FileStore) Path() string { return s.path }

// Load reads every stored mode. A missing file is created empty. Content that
// is not a YAML list of modes yields an empty collection with Recovered set;
// the file is left as is until the next Save overwrites it.
func (s *FileStore) Load() (*Collection, error) {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return nil, fmt.Errorf("creating store directory: %w", err)
	}
	f, err := os.OpenFile(s.path, os.O_RDWR|os.O_CREATE, 0644)
	if err != nil {
		return nil, fmt.Errorf("opening mode store: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("reading mode store: %w", err)
	}

	return s.decode(data), nil
}

func (s *FileStore) decode(data []byte) *Collection {
	var records []modeRecord
	if err := yaml.Unmarshal(data, &records); err != nil {
		s.logger.Warn("mode store is not a list of modes, treating it as empty", "path", s.path, "error", err)
		return &Collection{Recovered: err}
	}

	c := &Collection{Modes: make([]display.TimingMode, 0, len(records))}
	for _, r := range records {
		c.Modes = append(c.Modes, r.mode())
	}
	for _, m := range c.Modes {
		s.logger.Debug("found stored mode", "mode", m.Name, "clock", m.PixelClock)
	}
	return c
}

// List returns all stored modes in file order.
func (s *FileStore) List() ([]display.TimingMode, error) {
	c, err := s.Load()
	if err != nil {
		return nil, err
	}
	return c.Modes, nil
}

// Find returns the first stored mode called name, or display.ErrNotFound.
func (s *FileStore) Find(name string) (display.TimingMode, error) {
	c, err := s.Load()
	if err != nil {
		return display.TimingMode{}, err
	}
	m, ok := c.Find(name)
	if !ok {
		return display.TimingMode{}, fmt.Errorf("%w: %s", display.ErrNotFound, name)
	}
	return m, nil
}

// Save writes mode, replacing any stored mode with the same name, and
// rewrites the whole file.
func (s *FileStore) Save(mode display.TimingMode) error {
	c, err := s.Load()
	if err != nil {
		return err
	}
	if c.Put(mode) {
		s.logger.Info("mode already stored, overwriting", "mode", mode.Name, "path", s.path)
	}
	return s.write(c.Modes)
}

// Merge saves every mode in modes with the same overwrite-on-name semantics
// as Save, in a single rewrite. It returns how many modes were written.
func (s *FileStore) Merge(modes []display.TimingMode) (int, error) {
	c, err := s.Load()
	if err != nil {
		return 0, err
	}
	for _, m := range modes {
		c.Put(m)
	}
	if err := s.write(c.Modes); err != nil {
		return 0, err
	}
	return len(modes), nil
}

func (s *FileStore) write(modes []display.TimingMode) error {
	records := make([]modeRecord, len(modes))
	for i, m := range modes {
		records[i] = toRecord(m)
	}
	data, err := yaml.Marshal(records)
	if err != nil {
		return fmt.Errorf("encoding modes: %w", err)
	}

	s.logger.Debug("writing mode store", "path", s.path, "modes", len(records))
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("writing mode store: %w", err)
	}
	return nil
}

// Decode parses YAML mode data, such as a file pulled from a remote.
func Decode(data []byte) ([]display.TimingMode, error) {
	var records []modeRecord
	if err := yaml.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decoding modes: %w", err)
	}
	modes := make([]display.TimingMode, len(records))
	for i, r := range records {
		modes[i] = r.mode()
	}
	return modes, nil
}

var _ display.ModeStore = (*FileStore)(nil)
