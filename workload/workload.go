// Package workload generates deterministic inputs for benchmark routines.
// The same Config always yields the same data, so suites measure the same
// work across runs and machines.
package workload

import (
	"encoding/hex"
	"math"
	mrand "math/rand"
)

// Distributions accepted by Config.Distribution.
const (
	Uniform     = "uniform"
	PowerLaw    = "power-law"
	Exponential = "exponential"
)

// Config controls input generation.
type Config struct {
	Size         int
	MinValue     int
	MaxValue     int
	Distribution string
	Seed         int64
	KeyLength    int
}

// DefaultConfig returns a small uniform workload.
func DefaultConfig() Config {
	return Config{
		Size:         1000,
		MinValue:     0,
		MaxValue:     1 << 20,
		Distribution: Uniform,
		Seed:         1,
		KeyLength:    16,
	}
}

// Generator produces deterministic inputs from a Config.
type Generator struct {
	cfg Config
	rng *mrand.Rand
}

// NewGenerator creates a Generator from the given Config.
func NewGenerator(cfg Config) *Generator {
	if cfg.MaxValue < cfg.MinValue {
		cfg.MaxValue = cfg.MinValue
	}

	return &Generator{
		cfg: cfg,
		rng: mrand.New(mrand.NewSource(cfg.Seed)),
	}
}

// Ints returns Size integers in [MinValue, MaxValue] drawn from the
// configured distribution.
func (g *Generator) Ints() []int {
	out := make([]int, g.cfg.Size)
	for i := range out {
		out[i] = g.value()
	}

	return out
}

// Keys returns Size random hex strings of KeyLength bytes each.
func (g *Generator) Keys() []string {
	out := make([]string, g.cfg.Size)
	for i := range out {
		out[i] = g.randomKey()
	}

	return out
}

// Words returns Size lower-case words between 1 and KeyLength letters.
func (g *Generator) Words() []string {
	out := make([]string, g.cfg.Size)
	for i := range out {
		n := 1 + g.rng.Intn(max(1, g.cfg.KeyLength))
		buf := make([]byte, n)
		for j := range buf {
			buf[j] = byte('a' + g.rng.Intn(26))
		}
		out[i] = string(buf)
	}

	return out
}

func (g *Generator) randomKey() string {
	buf := make([]byte, max(1, g.cfg.KeyLength))
	g.rng.Read(buf)

	return hex.EncodeToString(buf)
}

func (g *Generator) value() int {
	lo, hi := float64(g.cfg.MinValue), float64(g.cfg.MaxValue)
	span := g.cfg.MaxValue - g.cfg.MinValue

	switch g.cfg.Distribution {
	case PowerLaw:
		alpha := 1.5
		u := g.rng.Float64()
		v := math.Max(lo, 1) / math.Pow(1-u, 1/alpha)

		return int(math.Max(lo, math.Min(v, hi)))

	case Exponential:
		scale := float64(span) / 4
		if scale <= 0 {
			return g.cfg.MinValue
		}
		lambda := math.Log(2) / scale
		v := lo - math.Log(1-g.rng.Float64())/lambda

		return int(math.Min(v, hi))

	default:
		// Unknown distributions fall back to uniform.
		return g.cfg.MinValue + g.rng.Intn(span+1)
	}
}
