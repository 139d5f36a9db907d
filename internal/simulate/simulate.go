// Package simulate generates synthetic person records for demos and tests.
package simulate

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand"

	"github.com/ppiankov/lifelines/internal/model"
)

// Generator draws synthetic records from its own seeded source. Two
// generators never share random state.
type Generator struct {
	cfg  model.SimulationConfig
	seed int64
	rng  *rand.Rand
}

// New creates a generator. A zero seed draws a fresh one from crypto/rand;
// Seed reports the value actually used so a run can be replayed.
func New(cfg model.SimulationConfig, seed int64) (*Generator, error) {
	if cfg.BornMin > cfg.BornMax {
		return nil, fmt.Errorf("born range inverted: %d > %d", cfg.BornMin, cfg.BornMax)
	}
	if cfg.LifespanMin < 0 || cfg.LifespanMin > cfg.LifespanMax {
		return nil, fmt.Errorf("invalid lifespan range: [%d, %d]", cfg.LifespanMin, cfg.LifespanMax)
	}
	if cfg.BornMin < 1000 || cfg.BornMax+cfg.LifespanMax > 9999 {
		return nil, fmt.Errorf("years must stay four digits: born [%d, %d], lifespan up to %d",
			cfg.BornMin, cfg.BornMax, cfg.LifespanMax)
	}

	if seed == 0 {
		s, err := newSeed()
		if err != nil {
			return nil, err
		}
		seed = s
	}

	return &Generator{
		cfg:  cfg,
		seed: seed,
		rng:  rand.New(rand.NewSource(seed)),
	}, nil
}

// Seed returns the seed driving this generator
func (g *Generator) Seed() int64 {
	return g.seed
}

// Generate returns n deceased records. Names are drawn without
// replacement; born and lifespan are uniform over their inclusive ranges.
func (g *Generator) Generate(n int) ([]model.PersonRecord, error) {
	if n < 0 {
		return nil, fmt.Errorf("negative count: %d", n)
	}

	names := popularNames(g.cfg.MinPopularity)
	if n > len(names) {
		return nil, fmt.Errorf("requested %d names but only %d reach popularity %d",
			n, len(names), g.cfg.MinPopularity)
	}

	perm := g.rng.Perm(len(names))
	records := make([]model.PersonRecord, 0, n)
	for i := 0; i < n; i++ {
		born := g.uniform(g.cfg.BornMin, g.cfg.BornMax)
		died := born + g.uniform(g.cfg.LifespanMin, g.cfg.LifespanMax)
		records = append(records, model.NewPersonRecord(names[perm[i]], born, &died))
	}

	return records, nil
}

// uniform returns an int in [lo, hi]
func (g *Generator) uniform(lo, hi int) int {
	return lo + g.rng.Intn(hi-lo+1)
}

func newSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}
	seed := int64(binary.LittleEndian.Uint64(b[:]))
	if seed == 0 {
		seed = 1
	}
	return seed, nil
}
