package hashhunt

import (
	"os"
	"sync"

	"github.com/pkg/errors"
)

// DefaultFoundFile is where found keys are appended when nothing else is
// configured.
const DefaultFoundFile = "found.txt"

// ResultStore persists found keys. Record must not return until the result
// is durable.
type ResultStore interface {
	Record(r *Result) error
}

// FileStore appends one line per found key, holding the key in decimal.
type FileStore struct {
	mu   sync.Mutex
	path string
}

// NewFileStore returns a store that appends to path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the file the store appends to.
func (s *FileStore) Path() string {
	return s.path
}

// Record appends the decimal key and syncs the file to stable storage.
func (s *FileStore) Record(r *Result) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return errors.Wrapf(err, "failed to open %s", s.path)
	}
	if _, err := f.WriteString(r.PrivateKey.Text(10) + "\n"); err != nil {
		f.Close()
		return errors.Wrapf(err, "failed to write %s", s.path)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return errors.Wrapf(err, "failed to sync %s", s.path)
	}
	return errors.Wrapf(f.Close(), "failed to close %s", s.path)
}

// MemoryStore keeps results in memory. It is useful for tests and for
// library callers that persist results themselves.
type MemoryStore struct {
	mu      sync.Mutex
	results []*Result
}

// Record stores r.
func (s *MemoryStore) Record(r *Result) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results = append(s.results, r)
	return nil
}

// Results returns the recorded results in order.
func (s *MemoryStore) Results() []*Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*Result(nil), s.results...)
}
