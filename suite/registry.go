package suite

import (
	"errors"
	"fmt"
	"sync"
)

var (
	// ErrDuplicateSuite is returned when a suite name is registered twice.
	ErrDuplicateSuite = errors.New("duplicate suite")

	// ErrUnknownSuite is returned when a selected suite is not registered.
	ErrUnknownSuite = errors.New("unknown suite")
)

// Registry holds suites in registration order.
type Registry struct {
	mu     sync.RWMutex
	suites []*Suite
	byName map[string]*Suite
}

// Default is the process-wide registry populated by Register.
var Default = NewRegistry()

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]*Suite)}
}

// Register adds s to the registry.
func (r *Registry) Register(s *Suite) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byName[s.Name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateSuite, s.Name)
	}

	r.suites = append(r.suites, s)
	r.byName[s.Name] = s

	return nil
}

// Suites returns every registered suite in registration order.
func (r *Registry) Suites() []*Suite {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Suite, len(r.suites))
	copy(out, r.suites)

	return out
}

// Select returns the named suites in the given order, or every suite
// when names is empty.
func (r *Registry) Select(names []string) ([]*Suite, error) {
	if len(names) == 0 {
		return r.Suites(), nil
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Suite, 0, len(names))
	for _, name := range names {
		s, ok := r.byName[name]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownSuite, name)
		}
		out = append(out, s)
	}

	return out, nil
}

// Register adds s to the Default registry and panics on a duplicate name.
// It is meant for init functions.
func Register(s *Suite) {
	if err := Default.Register(s); err != nil {
		panic(err)
	}
}
