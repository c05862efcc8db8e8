package suite

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noop() error { return nil }

func TestWithPrefixKeepsRegistrationOrder(t *testing.T) {
	s := New("sorting").
		Add("test_quick", noop).
		Add("setUp", noop).
		Add("test_bubble", noop).
		Add("helper", noop).
		Add("test_merge", noop)

	assert.Equal(t, []string{"test_quick", "test_bubble", "test_merge"},
		s.WithPrefix("test_"))
	assert.Equal(t, []string{"test_quick", "test_bubble", "test_merge"},
		s.WithPrefix("test_"), "discovery must be stable across calls")
	assert.Len(t, s.Members(), 5)
}

func TestAddReplacesInPlace(t *testing.T) {
	called := 0
	s := New("x").Add("test_a", noop).Add("test_b", noop)
	s.Add("test_a", func() error {
		called++
		return nil
	})

	assert.Equal(t, []string{"test_a", "test_b"}, s.Members())

	fn, ok := s.Lookup("test_a")
	require.True(t, ok)
	require.NoError(t, fn())
	assert.Equal(t, 1, called)
}

func TestLookupMissingOrNil(t *testing.T) {
	s := New("x").Add("eachSetUp", nil)

	_, ok := s.Lookup("eachSetUp")
	assert.False(t, ok, "nil member counts as absent")

	_, ok = s.Lookup("tearDown")
	assert.False(t, ok)
}

func TestDisplayName(t *testing.T) {
	tests := []struct {
		prefix, name, want string
	}{
		{"test_", "test_string_join", "string join"},
		{"test_", "test_a", "a"},
		{"bench", "bench_map_lookup", " map lookup"},
		{"test_", "plain", "plain"},
	}

	for _, tt := range tests {
		got := DisplayName(tt.prefix, tt.name)
		if got != tt.want {
			t.Errorf("DisplayName(%q, %q) = %q, want %q",
				tt.prefix, tt.name, got, tt.want)
		}
	}
}

func TestTitle(t *testing.T) {
	assert.Equal(t, "string building", New("string_building").Title())
	assert.Equal(t, "Strings", New("string_building").WithLabel("Strings").Title())
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(New("b")))
	require.NoError(t, r.Register(New("a")))

	err := r.Register(New("a"))
	assert.True(t, errors.Is(err, ErrDuplicateSuite))

	all := r.Suites()
	require.Len(t, all, 2)
	assert.Equal(t, "b", all[0].Name)
	assert.Equal(t, "a", all[1].Name)

	sel, err := r.Select([]string{"a"})
	require.NoError(t, err)
	require.Len(t, sel, 1)
	assert.Equal(t, "a", sel[0].Name)

	_, err = r.Select([]string{"missing"})
	assert.ErrorIs(t, err, ErrUnknownSuite)

	sel, err = r.Select(nil)
	require.NoError(t, err)
	assert.Len(t, sel, 2)
}
