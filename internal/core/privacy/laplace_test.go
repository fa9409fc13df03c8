package privacy

import (
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hush-backend/internal/core/domain"
)

func TestConfig_NoiseScale(t *testing.T) {
	assert.Equal(t, 0.1, Config{Scale: 0.1}.NoiseScale())
	assert.Equal(t, 0.5, Config{Scale: 0.1, Epsilon: 2, Sensitivity: 1}.NoiseScale())
}

func TestLaplaceMechanism_ZeroScaleIsIdentity(t *testing.T) {
	m := NewLaplaceMechanism(0, NewSource(1))
	v := domain.FeatureVector{Text: 0.7, Typing: 0.2, Voice: 0.1}

	assert.Equal(t, v, m.Privatize(v))
	assert.Equal(t, 0.0, m.Noise())
	assert.Equal(t, 0.0, m.Scale())
}

func TestLaplaceMechanism_SeededIsDeterministic(t *testing.T) {
	a := NewLaplaceMechanism(0.1, NewSource(42))
	b := NewLaplaceMechanism(0.1, NewSource(42))

	for i := 0; i < 100; i++ {
		assert.Equal(t, a.Noise(), b.Noise())
	}
}

func TestLaplaceMechanism_Distribution(t *testing.T) {
	const (
		scale = 0.1
		n     = 20000
	)
	m := NewLaplaceMechanism(scale, NewSource(7))

	var sum, sumAbs float64
	for i := 0; i < n; i++ {
		x := m.Noise()
		require.False(t, math.IsInf(x, 0) || math.IsNaN(x))
		sum += x
		sumAbs += math.Abs(x)
	}

	// Laplace(0, b) has mean 0 and E|X| = b.
	assert.InDelta(t, 0, sum/n, 0.01)
	assert.InDelta(t, scale, sumAbs/n, 0.005)
}

func TestLaplaceMechanism_PrivatizePerturbsEveryFeature(t *testing.T) {
	m := NewLaplaceMechanism(0.1, NewSource(3))
	v := domain.FeatureVector{Text: 0.7, Typing: 0.2, Voice: 0.1}

	out := m.Privatize(v)
	assert.NotEqual(t, v.Text, out.Text)
	assert.NotEqual(t, v.Typing, out.Typing)
	assert.NotEqual(t, v.Voice, out.Voice)
	assert.True(t, out.IsFinite())
}

func TestLaplaceMechanism_ClipsBeforeNoise(t *testing.T) {
	m := New(Config{Scale: 0, ClipBound: 1})
	out := m.Privatize(domain.FeatureVector{Text: 5, Typing: -3, Voice: 0.4})

	assert.Equal(t, domain.FeatureVector{Text: 1, Typing: -1, Voice: 0.4}, out)
	assert.Equal(t, 1.0, m.ClipBound())
}

func TestLaplaceMechanism_ConcurrentUse(t *testing.T) {
	m := NewLaplaceMechanism(0.1, nil)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 500; j++ {
				_ = m.Privatize(domain.FeatureVector{Text: 1})
			}
		}()
	}
	wg.Wait()
}
