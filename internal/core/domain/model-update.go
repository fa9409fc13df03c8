package domain

import "strings"

// ModelUpdate is what an on-device client reports after local training.
// Raw inputs never leave the device, only per-feature attributions.
type ModelUpdate struct {
	UserID              string
	FeatureAttributions map[string]float64
}

// Validate checks the update and returns its attributions as a vector.
func (u ModelUpdate) Validate() (FeatureVector, error) {
	if strings.TrimSpace(u.UserID) == "" {
		return FeatureVector{}, ErrMissingUserID
	}
	if u.FeatureAttributions == nil {
		return FeatureVector{}, ErrMissingAttributions
	}
	return FeatureVectorFromAttributions(u.FeatureAttributions)
}
