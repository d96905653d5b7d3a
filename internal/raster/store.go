package raster

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

var ErrNotFound = errors.New("raster not found")

// Store is the destination and source of rasters. Locations returned by
// Write and ExtractByMask are accepted by Read and Delete.
type Store interface {
	Read(location string) (*Raster, error)
	Write(name string, r *Raster) (string, error)
	ExtractByMask(location, mask, name string) (string, error)
	Delete(location string) error
}

// MemoryStore keeps rasters in a map. Masks are registered up front as
// per-pixel keep flags.
type MemoryStore struct {
	mu      sync.Mutex
	rasters map[string]*Raster
	masks   map[string][]bool
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		rasters: make(map[string]*Raster),
		masks:   make(map[string][]bool),
	}
}

func (s *MemoryStore) AddMask(name string, keep []bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.masks[name] = keep
}

func (s *MemoryStore) Read(location string) (*Raster, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.rasters[location]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, location)
	}
	return r.Clone(), nil
}

func (s *MemoryStore) Write(name string, r *Raster) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rasters[name] = r.Clone()
	return name, nil
}

func (s *MemoryStore) ExtractByMask(location, mask, name string) (string, error) {
	s.mu.Lock()
	keep, ok := s.masks[mask]
	s.mu.Unlock()
	if !ok {
		return "", fmt.Errorf("%w: mask %s", ErrNotFound, mask)
	}

	src, err := s.Read(location)
	if err != nil {
		return "", err
	}
	masked, err := ApplyMask(src, keep)
	if err != nil {
		return "", err
	}
	return s.Write(name, masked)
}

func (s *MemoryStore) Delete(location string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.rasters[location]; !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, location)
	}
	delete(s.rasters, location)
	return nil
}

// Locations lists stored rasters in lexical order.
func (s *MemoryStore) Locations() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.rasters))
	for k := range s.rasters {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
