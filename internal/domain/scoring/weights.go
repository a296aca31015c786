package scoring

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Default scoring weights, used whenever configuration cannot be loaded.
const (
	defaultQualityWeight       = 0.4
	defaultSpeedWeight         = 0.2
	defaultCollaborationWeight = 0.2
	defaultInnovationWeight    = 0.2
)

// Weights controls the convex combination of the four component scores.
type Weights struct {
	Quality       float64 `yaml:"quality_weight"`
	Speed         float64 `yaml:"speed_weight"`
	Collaboration float64 `yaml:"collaboration_weight"`
	Innovation    float64 `yaml:"innovation_weight"`
}

// DefaultWeights returns the documented fallback weights.
func DefaultWeights() Weights {
	return Weights{
		Quality:       defaultQualityWeight,
		Speed:         defaultSpeedWeight,
		Collaboration: defaultCollaborationWeight,
		Innovation:    defaultInnovationWeight,
	}
}

// loadWeights reads <dir>/competition/scoring-weights.yaml. Unset fields
// fall back to the defaults individually, matching the config format.
func loadWeights(dir string) (Weights, error) {
	path := filepath.Join(dir, "competition", "scoring-weights.yaml")
	data, err := os.ReadFile(path)
	if err != nil {
		return Weights{}, fmt.Errorf("read scoring weights: %w", err)
	}

	var w Weights
	if err := yaml.Unmarshal(data, &w); err != nil {
		return Weights{}, fmt.Errorf("parse scoring weights: %w", err)
	}

	def := DefaultWeights()
	if w.Quality <= 0 {
		w.Quality = def.Quality
	}
	if w.Speed <= 0 {
		w.Speed = def.Speed
	}
	if w.Collaboration <= 0 {
		w.Collaboration = def.Collaboration
	}
	if w.Innovation <= 0 {
		w.Innovation = def.Innovation
	}
	return w, nil
}
