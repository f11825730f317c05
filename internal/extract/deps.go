package extract

import (
	"slices"
	"sync"
)

// DependencySet is a [DependencyTracker] that remembers paths.
//
// The zero value is ready to use.
// It is safe for concurrent use.
type DependencySet struct {
	mu    sync.Mutex
	paths map[string]struct{} // guarded by mu
}

var _ DependencyTracker = (*DependencySet)(nil)

// AddDependency records a path.
// Adding the same path again has no effect.
func (s *DependencySet) AddDependency(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.paths == nil {
		s.paths = make(map[string]struct{})
	}
	s.paths[path] = struct{}{}
}

// Paths returns the recorded paths in sorted order.
func (s *DependencySet) Paths() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	paths := make([]string, 0, len(s.paths))
	for p := range s.paths {
		paths = append(paths, p)
	}
	slices.Sort(paths)
	return paths
}

type nopTracker struct{}

func (nopTracker) AddDependency(string) {}
