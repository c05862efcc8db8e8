// Package suite defines benchmark suites as explicitly registered sets of
// named members. Routines and hooks are told apart by their names, which
// keeps the naming convention without any runtime reflection.
package suite

import (
	"fmt"
	"strings"
)

// Func is a member of a suite: a routine or a hook.
type Func func() error

// Suite is a named set of members. Registration order is preserved and
// is the discovery order seen by the benchmark engine.
type Suite struct {
	// Name identifies the suite in the registry and on the command line.
	Name string
	// Label, when set, replaces the name as the report heading.
	Label string
	// Each overrides the repetition count of the engine when > 0.
	Each int

	names   []string
	members map[string]Func
}

// New creates an empty suite.
func New(name string) *Suite {
	return &Suite{
		Name:    name,
		members: make(map[string]Func),
	}
}

// Add registers fn under name and returns the suite for chaining.
// Adding an existing name replaces its function but keeps its position.
func (s *Suite) Add(name string, fn Func) *Suite {
	if s.members == nil {
		s.members = make(map[string]Func)
	}

	if _, ok := s.members[name]; !ok {
		s.names = append(s.names, name)
	}

	s.members[name] = fn

	return s
}

// AddFunc registers a routine that cannot fail.
func (s *Suite) AddFunc(name string, fn func()) *Suite {
	return s.Add(name, func() error {
		fn()
		return nil
	})
}

// WithLabel sets the report heading.
func (s *Suite) WithLabel(label string) *Suite {
	s.Label = label
	return s
}

// WithEach sets the repetition override.
func (s *Suite) WithEach(n int) *Suite {
	s.Each = n
	return s
}

// Lookup returns the member registered under name.
func (s *Suite) Lookup(name string) (Func, bool) {
	fn, ok := s.members[name]
	if !ok || fn == nil {
		return nil, false
	}

	return fn, true
}

// Members returns all member names in registration order.
func (s *Suite) Members() []string {
	out := make([]string, len(s.names))
	copy(out, s.names)

	return out
}

// WithPrefix returns the member names starting with prefix, in
// registration order.
func (s *Suite) WithPrefix(prefix string) []string {
	var out []string
	for _, name := range s.names {
		if strings.HasPrefix(name, prefix) {
			out = append(out, name)
		}
	}

	return out
}

// Title returns the label, or the name with underscores as spaces.
func (s *Suite) Title() string {
	if s.Label != "" {
		return s.Label
	}

	return strings.ReplaceAll(s.Name, "_", " ")
}

// DisplayName strips prefix from a routine name and replaces underscores
// with spaces.
func DisplayName(prefix, name string) string {
	return strings.ReplaceAll(strings.TrimPrefix(name, prefix), "_", " ")
}

func (s *Suite) String() string {
	return fmt.Sprintf("suite %s (%d members)", s.Name, len(s.names))
}
