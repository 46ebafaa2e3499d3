package model

// DefaultThreshold is the effective decision threshold when no metadata
// is available.
const DefaultThreshold = 0.50

// Bundle is the immutable model configuration built once at startup and
// injected into every request-handling path. Requests only ever read it;
// a future hot-reload must construct a whole new Bundle and swap it
// atomically, never mutate fields in place.
type Bundle struct {
	Booster  *Booster
	Metadata *Metadata // nil when metadata could not be obtained
}

// Loaded reports whether a usable booster is present.
func (b *Bundle) Loaded() bool {
	return b != nil && b.Booster != nil
}

// Version returns the model version from metadata, or "" if unknown.
func (b *Bundle) Version() string {
	if b == nil || b.Metadata == nil {
		return ""
	}
	return b.Metadata.Version
}

// BaseThreshold is the decision threshold for unrecognized domains: the
// metadata's recommended threshold when present, DefaultThreshold
// otherwise.
func (b *Bundle) BaseThreshold() float64 {
	if b != nil && b.Metadata != nil && b.Metadata.RecommendedThreshold > 0 && b.Metadata.RecommendedThreshold < 1 {
		return b.Metadata.RecommendedThreshold
	}
	return DefaultThreshold
}
