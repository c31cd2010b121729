package profile

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// Store persists a single profile.
type Store interface {
	Load(ctx context.Context) (*Profile, error)
	Save(ctx context.Context, p *Profile) error
}

// FileStore 以缩进 JSON 保存配置，文件不存在时返回空配置
type FileStore struct {
	path string
	mu   sync.Mutex
}

// NewFileStore returns a store backed by the JSON file at path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the backing file.
func (s *FileStore) Path() string {
	return s.path
}

func (s *FileStore) Load(ctx context.Context) (*Profile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return New(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read profile: %w", err)
	}
	p := New()
	if err := json.Unmarshal(data, p); err != nil {
		return nil, fmt.Errorf("decode profile %s: %w", s.path, err)
	}
	if p.PostTypes == nil {
		p.PostTypes = map[string]*PostType{}
	}
	for name, pt := range p.PostTypes {
		switch {
		case pt == nil:
			p.PostTypes[name] = &PostType{Examples: []string{}}
		case pt.Examples == nil:
			pt.Examples = []string{}
		}
	}
	if p.Services == nil {
		p.Services = []string{}
	}
	return p, nil
}

// Save replaces the file atomically through a temporary file.
func (s *FileStore) Save(ctx context.Context, p *Profile) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	// Examples hold HTML markup.
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(p); err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create profile dir: %w", err)
		}
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write profile: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace profile: %w", err)
	}
	return nil
}

// MemoryStore keeps the profile in memory. Load and Save copy.
type MemoryStore struct {
	mu sync.Mutex
	p  *Profile
}

// NewMemoryStore returns a store that starts with an empty profile.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{p: New()}
}

func (s *MemoryStore) Load(context.Context) (*Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.p.Clone(), nil
}

func (s *MemoryStore) Save(_ context.Context, p *Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.p = p.Clone()
	return nil
}
