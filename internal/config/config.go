// Package config loads engine configuration from HCL files.
package config

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// Config is the complete engine configuration.
type Config struct {
	Simulation SimulationConfig
	Sampling   SamplingConfig
	Decision   DecisionConfig
}

// fileConfig mirrors Config with pointer blocks so files may omit any of
// them.
type fileConfig struct {
	Simulation *SimulationConfig `hcl:"simulation,block"`
	Sampling   *SamplingConfig   `hcl:"sampling,block"`
	Decision   *DecisionConfig   `hcl:"decision,block"`
}

// SimulationConfig holds Monte Carlo defaults.
type SimulationConfig struct {
	Trials    int `hcl:"trials,optional"`
	BatchSize int `hcl:"batch_size,optional"`
	Opponents int `hcl:"opponents,optional"`
	Workers   int `hcl:"workers,optional"`
}

// SamplingConfig tunes the opponent-hand plausibility policy. The defaults
// are heuristic, so deployments can adjust them without a rebuild.
type SamplingConfig struct {
	MadeHandBias      float64 `hcl:"made_hand_bias,optional"`
	MaxRankGap        int     `hcl:"max_rank_gap,optional"`
	PreflopAcceptRate float64 `hcl:"preflop_accept_rate,optional"`
	MaxAttempts       int     `hcl:"max_attempts,optional"`
}

// DecisionConfig selects the advisor's playing style.
type DecisionConfig struct {
	Style string `hcl:"style,optional"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Simulation: SimulationConfig{
			Trials:    10000,
			BatchSize: 1000,
			Opponents: 1,
			Workers:   1,
		},
		Sampling: SamplingConfig{
			MadeHandBias:      0.8,
			MaxRankGap:        4,
			PreflopAcceptRate: 0.2,
			MaxAttempts:       100,
		},
		Decision: DecisionConfig{
			Style: "balanced",
		},
	}
}

// Load reads configuration from an HCL file. A missing file yields the
// defaults; unset fields fall back to their default values.
func Load(filename string) (*Config, error) {
	cfg := Default()

	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return cfg, nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var loaded fileConfig
	if diags := gohcl.DecodeBody(file.Body, nil, &loaded); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode config: %s", diags.Error())
	}

	merge(cfg, &loaded)
	return cfg, nil
}

// merge overlays explicitly set fields onto the defaults.
func merge(base *Config, loaded *fileConfig) {
	if s := loaded.Simulation; s != nil {
		if s.Trials > 0 {
			base.Simulation.Trials = s.Trials
		}
		if s.BatchSize > 0 {
			base.Simulation.BatchSize = s.BatchSize
		}
		if s.Opponents > 0 {
			base.Simulation.Opponents = s.Opponents
		}
		if s.Workers > 0 {
			base.Simulation.Workers = s.Workers
		}
	}
	if s := loaded.Sampling; s != nil {
		if s.MadeHandBias > 0 {
			base.Sampling.MadeHandBias = s.MadeHandBias
		}
		if s.MaxRankGap > 0 {
			base.Sampling.MaxRankGap = s.MaxRankGap
		}
		if s.PreflopAcceptRate > 0 {
			base.Sampling.PreflopAcceptRate = s.PreflopAcceptRate
		}
		if s.MaxAttempts > 0 {
			base.Sampling.MaxAttempts = s.MaxAttempts
		}
	}
	if d := loaded.Decision; d != nil && d.Style != "" {
		base.Decision.Style = d.Style
	}
}
