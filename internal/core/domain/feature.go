package domain

import (
	"fmt"
	"math"
)

type Feature string

const (
	FeatureText   Feature = "text"
	FeatureTyping Feature = "typing"
	FeatureVoice  Feature = "voice"
)

// Features lists every modality the global model tracks, in column order.
var Features = []Feature{FeatureText, FeatureTyping, FeatureVoice}

// FeatureVector holds one importance value per feature.
type FeatureVector struct {
	Text   float64 `json:"text"`
	Typing float64 `json:"typing"`
	Voice  float64 `json:"voice"`
}

// FeatureVectorFromAttributions picks the known features out of a client
// attribution map. Missing features count as zero and unknown keys are ignored.
func FeatureVectorFromAttributions(attrs map[string]float64) (FeatureVector, error) {
	var v FeatureVector
	for _, f := range Features {
		x, ok := attrs[string(f)]
		if !ok {
			continue
		}
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return FeatureVector{}, fmt.Errorf("%w: %s", ErrNonFiniteAttribution, f)
		}
		v = v.With(f, x)
	}
	return v, nil
}

func (v FeatureVector) Get(f Feature) float64 {
	switch f {
	case FeatureText:
		return v.Text
	case FeatureTyping:
		return v.Typing
	case FeatureVoice:
		return v.Voice
	}
	return 0
}

// With returns a copy of v with feature f set to x.
func (v FeatureVector) With(f Feature, x float64) FeatureVector {
	switch f {
	case FeatureText:
		v.Text = x
	case FeatureTyping:
		v.Typing = x
	case FeatureVoice:
		v.Voice = x
	}
	return v
}

// Map applies fn to every feature and returns the resulting vector.
func (v FeatureVector) Map(fn func(f Feature, x float64) float64) FeatureVector {
	out := v
	for _, f := range Features {
		out = out.With(f, fn(f, v.Get(f)))
	}
	return out
}

// IsFinite reports whether every component is a finite number.
func (v FeatureVector) IsFinite() bool {
	for _, f := range Features {
		x := v.Get(f)
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}

// Clip clamps every component to [-bound, bound]. A non-positive bound
// leaves the vector untouched.
func (v FeatureVector) Clip(bound float64) FeatureVector {
	if bound <= 0 {
		return v
	}
	return v.Map(func(_ Feature, x float64) float64 {
		return math.Max(-bound, math.Min(bound, x))
	})
}
