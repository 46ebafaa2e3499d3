package entity

// FeatureNames is the canonical, ordered list of features the model was
// trained on. The order is load-bearing: the booster consumes vectors
// positionally, and the browser extension extracts the same vector
// client-side. Never reorder without retraining.
var FeatureNames = []string{
	"domain_length",
	"qty_dot_domain",
	"qty_hyphen_domain",
	"domain_entropy",
	"is_ip",
	"path_length",
	"qty_slash_path",
	"qty_hyphen_path",
	"sus_keywords_count",
	"qty_double_slash",
	"has_suspicious_tld",
	"is_https",
	"subdomain_depth",
	"digit_ratio",
	"special_char_count",
	"domain_path_ratio",
}

// FeatureVector holds the numeric feature values for a single URL,
// aligned index-for-index with FeatureNames.
type FeatureVector []float64

// Map returns the vector keyed by canonical feature name, for API
// responses and debugging.
func (v FeatureVector) Map() map[string]float64 {
	if v == nil {
		return nil
	}
	m := make(map[string]float64, len(FeatureNames))
	for i, name := range FeatureNames {
		if i < len(v) {
			m[name] = v[i]
		}
	}
	return m
}
