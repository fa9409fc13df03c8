// Package privacy implements the differential-privacy noise applied to
// client updates before they reach the federated average.
package privacy

import (
	crand "crypto/rand"
	"math/rand/v2"
	"sync"

	"gonum.org/v1/gonum/stat/distuv"

	"hush-backend/internal/core/domain"
)

// Config describes how much noise to add. When Epsilon is positive the
// scale is derived as Sensitivity/Epsilon and Scale is ignored.
type Config struct {
	Scale       float64
	Epsilon     float64
	Sensitivity float64
	ClipBound   float64
	Seed        uint64
}

func (c Config) NoiseScale() float64 {
	if c.Epsilon > 0 {
		return c.Sensitivity / c.Epsilon
	}
	return c.Scale
}

// LaplaceMechanism adds zero-centred Laplace noise to each feature.
type LaplaceMechanism struct {
	mu        sync.Mutex
	rng       *rand.Rand
	dist      distuv.Laplace
	clipBound float64
}

// NewLaplaceMechanism returns a mechanism drawing from Laplace(0, scale).
// A non-positive scale disables noise.
func NewLaplaceMechanism(scale float64, src rand.Source) *LaplaceMechanism {
	if src == nil {
		src = NewSource(0)
	}
	return &LaplaceMechanism{
		rng:  rand.New(src),
		dist: distuv.Laplace{Mu: 0, Scale: scale},
	}
}

// New builds a mechanism from cfg.
func New(cfg Config) *LaplaceMechanism {
	m := NewLaplaceMechanism(cfg.NoiseScale(), NewSource(cfg.Seed))
	m.clipBound = cfg.ClipBound
	return m
}

// NewSource returns a deterministic PCG source for a non-zero seed and a
// ChaCha8 source keyed from crypto/rand otherwise.
func NewSource(seed uint64) rand.Source {
	if seed != 0 {
		return rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)
	}
	var key [32]byte
	_, _ = crand.Read(key[:])
	return rand.NewChaCha8(key)
}

func (m *LaplaceMechanism) Scale() float64 {
	if m.dist.Scale < 0 {
		return 0
	}
	return m.dist.Scale
}

func (m *LaplaceMechanism) ClipBound() float64 {
	return m.clipBound
}

// Noise draws a single sample by inverting the Laplace CDF at a uniform point.
func (m *LaplaceMechanism) Noise() float64 {
	if m.dist.Scale <= 0 {
		return 0
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sample()
}

// Privatize clips v (when a bound is configured) and perturbs every feature
// with an independent draw.
func (m *LaplaceMechanism) Privatize(v domain.FeatureVector) domain.FeatureVector {
	v = v.Clip(m.clipBound)
	if m.dist.Scale <= 0 {
		return v
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return v.Map(func(_ domain.Feature, x float64) float64 {
		return x + m.sample()
	})
}

// sample must be called with mu held.
func (m *LaplaceMechanism) sample() float64 {
	u := m.rng.Float64()
	for u == 0 {
		u = m.rng.Float64()
	}
	return m.dist.Quantile(u)
}
