package correlation

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/dd0wney/cluso-gac/pkg/algorithms"
	"github.com/dd0wney/cluso-gac/pkg/similarity"
	"github.com/dd0wney/cluso-gac/pkg/validation"
)

// DefaultCliqueSize is the k of k-clique percolation
const DefaultCliqueSize = 15

// Config tunes a correlation run
type Config struct {
	// SimilarityThreshold is the score an alert pair must exceed to be linked
	SimilarityThreshold float64 `yaml:"similarity_threshold" json:"similarity_threshold"`
	// CliqueSize is k: the smallest clique that seeds a community
	CliqueSize int `yaml:"clique_size" json:"clique_size"`
	// Workers sizes the worker pool; 0 means one per CPU, 1 runs inline
	Workers int `yaml:"workers" json:"workers"`
	// MaxSubcliques bounds the k-subset decomposition; 0 removes the bound
	MaxSubcliques int `yaml:"max_subcliques" json:"max_subcliques"`
}

// DefaultConfig returns the standard parameters
func DefaultConfig() Config {
	return Config{
		SimilarityThreshold: similarity.DefaultThreshold,
		CliqueSize:          DefaultCliqueSize,
		Workers:             1,
		MaxSubcliques:       algorithms.DefaultMaxSubcliques,
	}
}

// Validate checks every field and reports all problems at once
func (c Config) Validate() error {
	return validation.NewConfigValidator("Config").
		OpenRangeFloat("SimilarityThreshold", c.SimilarityThreshold, 0, 1).
		MinInt("CliqueSize", c.CliqueSize, 2).
		NonNegative("Workers", c.Workers).
		NonNegative("MaxSubcliques", c.MaxSubcliques).
		Validate()
}

// LoadConfig reads a YAML config file. Keys absent from the file keep their
// defaults; unknown keys are rejected.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}
	return ParseConfig(data)
}

// ParseConfig decodes YAML config data on top of DefaultConfig
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
