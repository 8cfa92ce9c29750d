package jsonstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Makepad-fr/shopfront/internal/store"
)

// JSON-backed key-value storage. Single file, human-readable, portable.
// Writes inside one process are serialized; across processes the last
// writer wins. A file that no longer parses is moved aside on the next
// write so one damaged record cannot block every later one.

const DataFileName = "shop.json"

var errCorrupt = errors.New("corrupt data file")

type Store struct {
	mu   sync.Mutex
	path string
	log  *zap.Logger
}

var _ store.Store = (*Store)(nil)

type Option func(*Store)

func WithLogger(log *zap.Logger) Option {
	return func(s *Store) {
		if log != nil {
			s.log = log.Named("jsonstore")
		}
	}
}

// New returns a store backed by dir/shop.json. The directory is created on
// first write.
func New(dir string, opts ...Option) *Store {
	s := &Store{path: filepath.Join(dir, DataFileName), log: zap.NewNop()}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *Store) Path() string { return s.path }

func (s *Store) Get(_ context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.load()
	if err != nil {
		return "", err
	}
	v, ok := data[key]
	if !ok {
		return "", store.ErrNotFound
	}
	return v, nil
}

func (s *Store) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.loadForWrite()
	if err != nil {
		return err
	}
	data[key] = value
	return s.save(data)
}

func (s *Store) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.loadForWrite()
	if err != nil {
		return err
	}
	if _, ok := data[key]; !ok {
		return nil
	}
	delete(data, key)
	return s.save(data)
}

func (s *Store) load() (map[string]string, error) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("read file: %w", err)
	}
	if len(b) == 0 {
		return map[string]string{}, nil
	}
	data := map[string]string{}
	if err := json.Unmarshal(b, &data); err != nil {
		return nil, fmt.Errorf("%w: json unmarshal: %w", errCorrupt, err)
	}
	return data, nil
}

// loadForWrite is load, except that a corrupt file is renamed to
// shop.json.corrupt-<unix nanos> and writing starts over from nothing.
func (s *Store) loadForWrite() (map[string]string, error) {
	data, err := s.load()
	if !errors.Is(err, errCorrupt) {
		return data, err
	}
	aside := fmt.Sprintf("%s.corrupt-%d", s.path, time.Now().UnixNano())
	if rerr := os.Rename(s.path, aside); rerr != nil {
		return nil, fmt.Errorf("move corrupt file aside: %w", rerr)
	}
	s.log.Warn("moved unreadable data file aside",
		zap.String("path", s.path),
		zap.String("moved_to", aside),
		zap.Error(err))
	return map[string]string{}, nil
}

// save replaces the file atomically so a crash never leaves a torn file.
func (s *Store) save(data map[string]string) error {
	b, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("json marshal: %w", err)
	}
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".shop-*.json")
	if err != nil {
		return fmt.Errorf("create temp: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		return fmt.Errorf("write file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close file: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0o600); err != nil {
		return fmt.Errorf("chmod: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("rename: %w", err)
	}
	return nil
}
