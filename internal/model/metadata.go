package model

import (
	"encoding/json"
	"fmt"
	"os"
)

// Metadata describes the trained artifact: version, recommended decision
// threshold, and the feature-name list the model was fitted on. The raw
// document is kept verbatim for the /stats passthrough.
type Metadata struct {
	Version              string   `json:"version"`
	ModelType            string   `json:"model_type"`
	RecommendedThreshold float64  `json:"recommended_threshold"`
	FeatureNames         []string `json:"feature_names"`

	Raw json.RawMessage `json:"-"`
}

// LoadMetadata reads and parses the sibling metadata document. A missing
// or unreadable file is reported as an error; callers treat it as
// non-fatal and fall back to the default threshold.
func LoadMetadata(path string) (*Metadata, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading model metadata: %w", err)
	}
	var meta Metadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("parsing model metadata: %w", err)
	}
	meta.Raw = json.RawMessage(data)
	return &meta, nil
}

// FeatureNamesMatch reports whether the metadata's trained feature list
// matches the canonical list exactly, order included. The service does
// not auto-adapt on divergence; the caller logs a startup warning.
func (m *Metadata) FeatureNamesMatch(canonical []string) bool {
	if m == nil || m.FeatureNames == nil {
		return true // nothing recorded, nothing to check
	}
	if len(m.FeatureNames) != len(canonical) {
		return false
	}
	for i, name := range m.FeatureNames {
		if name != canonical[i] {
			return false
		}
	}
	return true
}
