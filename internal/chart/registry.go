package chart

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// Registry owns the chart files of one output directory, keyed by id. A
// chart is never updated in place: Replace disposes the old file and writes
// a new one.
type Registry struct {
	dir string

	mu    sync.Mutex
	files map[string]string // id -> path
}

// NewRegistry creates dir if needed.
func NewRegistry(dir string) (*Registry, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create chart dir: %w", err)
	}
	return &Registry{dir: dir, files: make(map[string]string)}, nil
}

// Replace disposes any chart registered under id and renders a new one to
// <dir>/<id>.png.
func (r *Registry) Replace(id string, render func(io.Writer) error) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.disposeLocked(id)

	path := filepath.Join(r.dir, id+".png")
	tmp, err := os.CreateTemp(r.dir, id+"-*.png.tmp")
	if err != nil {
		return "", fmt.Errorf("create chart file: %w", err)
	}
	if err := render(tmp); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("close chart file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("rename chart file: %w", err)
	}
	r.files[id] = path
	return path, nil
}

// DisposePrefix removes every chart whose id starts with prefix.
func (r *Registry) DisposePrefix(prefix string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id := range r.files {
		if strings.HasPrefix(id, prefix) {
			r.disposeLocked(id)
		}
	}
}

func (r *Registry) disposeLocked(id string) {
	if path, ok := r.files[id]; ok {
		os.Remove(path)
		delete(r.files, id)
	}
}

// IDs lists the registered chart ids in order.
func (r *Registry) IDs() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids := make([]string, 0, len(r.files))
	for id := range r.files {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
