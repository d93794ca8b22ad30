// Package storage persists the task collection as one JSON file.
package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/nibzard/task-cli/internal/logging"
	"github.com/nibzard/task-cli/internal/task"
)

// DefaultFile is the task file name used when none is configured.
const DefaultFile = "tasks.json"

// DefaultIndent is the number of spaces used to indent the task file.
const DefaultIndent = 4

// ErrCorrupt reports a task file that exists but cannot be parsed.
var ErrCorrupt = errors.New("task file is corrupt")

// CorruptionError describes why a task file could not be parsed.
type CorruptionError struct {
	Path string
	Err  error
}

func (e *CorruptionError) Error() string {
	return fmt.Sprintf("%s: %v: %v", e.Path, ErrCorrupt, e.Err)
}

// Unwrap returns the underlying parse or schema error.
func (e *CorruptionError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrCorrupt) match.
func (e *CorruptionError) Is(target error) bool {
	return target == ErrCorrupt
}

// FileStore reads and writes the whole collection to one file.
type FileStore struct {
	path   string
	indent int
	logger *log.Logger
}

// Option configures a FileStore.
type Option func(*FileStore)

// WithIndent sets the indentation width used by Save.
func WithIndent(n int) Option {
	return func(s *FileStore) {
		if n >= 0 {
			s.indent = n
		}
	}
}

// WithLogger sets the logger for load and save diagnostics.
func WithLogger(logger *log.Logger) Option {
	return func(s *FileStore) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New returns a store backed by the file at path.
func New(path string, opts ...Option) *FileStore {
	s := &FileStore{
		path:   path,
		indent: DefaultIndent,
		logger: logging.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Path returns the file the store reads and writes.
func (s *FileStore) Path() string {
	return s.path
}

// Load reads the collection. A missing file is an empty collection.
func (s *FileStore) Load() ([]task.Task, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		s.logger.Debug("task file not found, starting empty", "path", s.path)
		return []task.Task{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read task file: %w", err)
	}

	tasks, err := Decode(data)
	if err != nil {
		return nil, &CorruptionError{Path: s.path, Err: err}
	}
	s.logger.Debug("loaded tasks", "path", s.path, "count", len(tasks))
	return tasks, nil
}

// Save replaces the file contents with tasks. The data is written to a
// temporary file in the same directory and renamed into place.
func (s *FileStore) Save(tasks []task.Task) error {
	data, err := Encode(tasks, s.indent)
	if err != nil {
		return err
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create task file dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp task file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write task file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write task file: %w", err)
	}
	if err := os.Chmod(tmpPath, 0644); err != nil {
		return fmt.Errorf("chmod task file: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		return fmt.Errorf("replace task file: %w", err)
	}

	s.logger.Debug("saved tasks", "path", s.path, "count", len(tasks))
	return nil
}

// Decode parses and validates a task file document.
func Decode(data []byte) ([]task.Task, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("parse task file: %w", err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("parse task file: unexpected data after top-level array")
	}

	if err := validate(doc); err != nil {
		return nil, fmt.Errorf("validate task file: %w", err)
	}

	var tasks []task.Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		return nil, fmt.Errorf("parse task file: %w", err)
	}
	return tasks, nil
}

// Encode serializes tasks as an indented JSON array with a trailing newline.
func Encode(tasks []task.Task, indent int) ([]byte, error) {
	if tasks == nil {
		tasks = []task.Task{}
	}
	data, err := json.MarshalIndent(tasks, "", strings.Repeat(" ", indent))
	if err != nil {
		return nil, fmt.Errorf("marshal task file: %w", err)
	}
	return append(data, '\n'), nil
}
