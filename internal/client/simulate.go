package client

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"hush-backend/internal/core/domain"
)

type SimulationConfig struct {
	Clients     int
	Rounds      int
	Concurrency int
	Seed        uint64
}

type SimulationResult struct {
	Submitted int
	Last      *domain.GlobalModel
}

// Simulate plays Rounds rounds in which every one of Clients devices sends
// an attribution vector that sums to one. Each device keeps a stable
// preference so the aggregate drifts toward the population mean.
func Simulate(ctx context.Context, c *Client, cfg SimulationConfig) (*SimulationResult, error) {
	if cfg.Clients <= 0 || cfg.Rounds <= 0 {
		return nil, fmt.Errorf("clients and rounds must be positive")
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 4
	}

	rng := rand.New(rand.NewPCG(cfg.Seed, cfg.Seed+1))
	prefs := make([]domain.FeatureVector, cfg.Clients)
	for i := range prefs {
		prefs[i] = randomVector(rng)
	}

	var (
		mu     sync.Mutex
		result SimulationResult
	)
	for round := 0; round < cfg.Rounds; round++ {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(cfg.Concurrency)

		for i := range prefs {
			userID := fmt.Sprintf("sim-%04d", i)
			attrs := jitter(rng, prefs[i])
			g.Go(func() error {
				resp, err := c.SubmitUpdate(gctx, userID, toAttributions(attrs))
				if err != nil {
					return fmt.Errorf("%s: %w", userID, err)
				}
				p := resp.NewDataPoint
				model := domain.GlobalModel{
					Weights: domain.FeatureVector{
						Text:   p.AvgTextImportance,
						Typing: p.AvgTypingImportance,
						Voice:  p.AvgVoiceImportance,
					},
					UpdateCount: p.UpdateCount,
				}

				mu.Lock()
				defer mu.Unlock()
				result.Submitted++
				if result.Last == nil || model.UpdateCount > result.Last.UpdateCount {
					result.Last = &model
				}
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return &result, err
		}
		log.WithFields(log.Fields{"round": round + 1, "submitted": result.Submitted}).Info("simulation round complete")
	}
	return &result, nil
}

func randomVector(rng *rand.Rand) domain.FeatureVector {
	return normalize(domain.FeatureVector{Text: rng.Float64(), Typing: rng.Float64(), Voice: rng.Float64()})
}

func jitter(rng *rand.Rand, v domain.FeatureVector) domain.FeatureVector {
	return normalize(v.Map(func(_ domain.Feature, x float64) float64 {
		return x * (0.8 + 0.4*rng.Float64())
	}))
}

func normalize(v domain.FeatureVector) domain.FeatureVector {
	sum := v.Text + v.Typing + v.Voice
	if sum <= 0 {
		return domain.FeatureVector{Text: 1.0 / 3, Typing: 1.0 / 3, Voice: 1.0 / 3}
	}
	return v.Map(func(_ domain.Feature, x float64) float64 { return x / sum })
}

func toAttributions(v domain.FeatureVector) map[string]float64 {
	out := make(map[string]float64, len(domain.Features))
	for _, f := range domain.Features {
		out[string(f)] = v.Get(f)
	}
	return out
}
