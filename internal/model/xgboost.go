package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
)

// Booster evaluates an XGBoost gradient-boosted tree ensemble exported in
// the JSON model format. Only what the phishing model needs is supported:
// a single-group binary:logistic ensemble. Evaluation is deterministic,
// so identical vectors always yield identical probabilities.
type Booster struct {
	trees      []tree
	baseMargin float64
	objective  string
	numFeature int
	// FeatureNames as recorded in the artifact itself, when present.
	FeatureNames []string
}

type tree struct {
	splitIndices    []int
	splitConditions []float64
	leftChildren    []int
	rightChildren   []int
	defaultLeft     []int
}

var ErrMalformedModel = errors.New("malformed model artifact")

type boosterJSON struct {
	Learner struct {
		FeatureNames     []string `json:"feature_names"`
		LearnerModelParam struct {
			BaseScore  string `json:"base_score"`
			NumFeature string `json:"num_feature"`
		} `json:"learner_model_param"`
		Objective struct {
			Name string `json:"name"`
		} `json:"objective"`
		GradientBooster struct {
			Model struct {
				Trees []struct {
					SplitIndices    []int     `json:"split_indices"`
					SplitConditions []float64 `json:"split_conditions"`
					LeftChildren    []int     `json:"left_children"`
					RightChildren   []int     `json:"right_children"`
					DefaultLeft     []int     `json:"default_left"`
				} `json:"trees"`
			} `json:"model"`
		} `json:"gradient_booster"`
	} `json:"learner"`
}

// LoadBooster reads and parses an XGBoost JSON artifact from disk.
func LoadBooster(path string) (*Booster, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading model artifact: %w", err)
	}
	return ParseBooster(data)
}

// ParseBooster builds a Booster from the raw JSON artifact bytes.
func ParseBooster(data []byte) (*Booster, error) {
	var raw boosterJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedModel, err)
	}

	rawTrees := raw.Learner.GradientBooster.Model.Trees
	if len(rawTrees) == 0 {
		return nil, fmt.Errorf("%w: no trees", ErrMalformedModel)
	}

	b := &Booster{
		trees:        make([]tree, 0, len(rawTrees)),
		objective:    raw.Learner.Objective.Name,
		FeatureNames: raw.Learner.FeatureNames,
	}

	if s := raw.Learner.LearnerModelParam.NumFeature; s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			return nil, fmt.Errorf("%w: num_feature %q", ErrMalformedModel, s)
		}
		b.numFeature = n
	}

	// base_score is stored in probability space; fold it into the margin
	// once so Predict only sums leaves.
	baseScore := 0.5
	if s := raw.Learner.LearnerModelParam.BaseScore; s != "" {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: base_score %q", ErrMalformedModel, s)
		}
		baseScore = v
	}
	if baseScore <= 0 || baseScore >= 1 {
		b.baseMargin = baseScore
	} else {
		b.baseMargin = math.Log(baseScore / (1 - baseScore))
	}

	for i, rt := range rawTrees {
		n := len(rt.LeftChildren)
		if n == 0 || len(rt.RightChildren) != n || len(rt.SplitIndices) != n || len(rt.SplitConditions) != n {
			return nil, fmt.Errorf("%w: tree %d has inconsistent node arrays", ErrMalformedModel, i)
		}
		b.trees = append(b.trees, tree{
			splitIndices:    rt.SplitIndices,
			splitConditions: rt.SplitConditions,
			leftChildren:    rt.LeftChildren,
			rightChildren:   rt.RightChildren,
			defaultLeft:     rt.DefaultLeft,
		})
	}
	return b, nil
}

// NumTrees reports the ensemble size.
func (b *Booster) NumTrees() int {
	return len(b.trees)
}

// Predict scores a feature vector and returns a probability in [0,1] for
// the binary:logistic objective, or the raw margin otherwise.
func (b *Booster) Predict(vector []float64) (float64, error) {
	if b.numFeature > 0 && len(vector) != b.numFeature {
		return 0, fmt.Errorf("model expects %d features, got %d", b.numFeature, len(vector))
	}
	margin := b.baseMargin
	for i := range b.trees {
		margin += b.trees[i].evaluate(vector)
	}
	if b.objective == "binary:logistic" || b.objective == "" {
		return 1 / (1 + math.Exp(-margin)), nil
	}
	return margin, nil
}

// evaluate walks a single tree to its leaf. Leaves are nodes with no left
// child; their weight lives in splitConditions.
func (t *tree) evaluate(vector []float64) float64 {
	node := 0
	for t.leftChildren[node] != -1 {
		idx := t.splitIndices[node]
		var v float64
		if idx < len(vector) {
			v = vector[idx]
		} else {
			v = math.NaN()
		}
		switch {
		case math.IsNaN(v):
			if node < len(t.defaultLeft) && t.defaultLeft[node] != 0 {
				node = t.leftChildren[node]
			} else {
				node = t.rightChildren[node]
			}
		case v < t.splitConditions[node]:
			node = t.leftChildren[node]
		default:
			node = t.rightChildren[node]
		}
	}
	return t.splitConditions[node]
}
