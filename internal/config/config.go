package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/dusk-indust/planit/internal/agent"
	"github.com/dusk-indust/planit/internal/fusion"
	"github.com/dusk-indust/planit/internal/orchestrator"
	"github.com/dusk-indust/planit/internal/route"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// ProjectConfig holds project-level settings loaded from planit.yml, a
// .env file and PLANIT_* environment variables, in increasing precedence.
type ProjectConfig struct {
	CostPerUnit       float64       `yaml:"costPerUnit,omitempty"`
	Weights           WeightsConfig `yaml:"weights,omitempty"`
	StrictPriority    bool          `yaml:"strictPriority,omitempty"`
	IncludeInfeasible bool          `yaml:"includeInfeasible,omitempty"`
	Parallel          bool          `yaml:"parallel,omitempty"`
	MaxCost           float64       `yaml:"maxCost,omitempty"`
	MaxTime           float64       `yaml:"maxTime,omitempty"`
	RoutesFile        string        `yaml:"routesFile,omitempty"`
	Verbose           bool          `yaml:"verbose,omitempty"`
}

// WeightsConfig overrides the weight set of either priority.
type WeightsConfig struct {
	Fast  *route.WeightSet `yaml:"fast,omitempty"`
	Cheap *route.WeightSet `yaml:"cheap,omitempty"`
}

// Default returns the configuration used when no file or variable is set.
func Default() *ProjectConfig {
	return &ProjectConfig{CostPerUnit: agent.DefaultCostPerUnit}
}

// Load reads planit.yml or planit.yaml from dir, then dir/.env, then the
// process environment. Missing files are not an error.
func Load(dir string) (*ProjectConfig, error) {
	cfg := Default()

	for _, name := range []string{"planit.yml", "planit.yaml"} {
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
		break
	}

	dotenv, err := godotenv.Read(filepath.Join(dir, ".env"))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("read .env: %w", err)
	}
	if err := cfg.applyEnv(func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := dotenv[key]
		return v, ok
	}); err != nil {
		return nil, err
	}

	if cfg.CostPerUnit == 0 {
		cfg.CostPerUnit = agent.DefaultCostPerUnit
	}
	if cfg.RoutesFile != "" && !filepath.IsAbs(cfg.RoutesFile) {
		cfg.RoutesFile = filepath.Join(dir, cfg.RoutesFile)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv overrides fields from PLANIT_* variables found by lookup.
func (c *ProjectConfig) applyEnv(lookup func(string) (string, bool)) error {
	floats := map[string]*float64{
		"PLANIT_COST_PER_UNIT": &c.CostPerUnit,
		"PLANIT_MAX_COST":      &c.MaxCost,
		"PLANIT_MAX_TIME":      &c.MaxTime,
	}
	for key, dst := range floats {
		if v, ok := lookup(key); ok && v != "" {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return fmt.Errorf("%s: %w", key, err)
			}
			*dst = f
		}
	}

	bools := map[string]*bool{
		"PLANIT_STRICT_PRIORITY":    &c.StrictPriority,
		"PLANIT_INCLUDE_INFEASIBLE": &c.IncludeInfeasible,
		"PLANIT_PARALLEL":           &c.Parallel,
		"PLANIT_VERBOSE":            &c.Verbose,
	}
	for key, dst := range bools {
		if v, ok := lookup(key); ok && v != "" {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return fmt.Errorf("%s: %w", key, err)
			}
			*dst = b
		}
	}

	if v, ok := lookup("PLANIT_ROUTES_FILE"); ok && v != "" {
		c.RoutesFile = v
	}
	return nil
}

// Validate checks value ranges.
func (c *ProjectConfig) Validate() error {
	if !(c.CostPerUnit > 0) {
		return fmt.Errorf("%w: costPerUnit must be positive, got %g", route.ErrValidation, c.CostPerUnit)
	}
	if c.MaxCost < 0 || c.MaxTime < 0 {
		return fmt.Errorf("%w: maxCost and maxTime must not be negative", route.ErrValidation)
	}
	if c.Weights.Fast != nil {
		if err := c.Weights.Fast.Validate(); err != nil {
			return fmt.Errorf("weights.fast: %w", err)
		}
	}
	if c.Weights.Cheap != nil {
		if err := c.Weights.Cheap.Validate(); err != nil {
			return fmt.Errorf("weights.cheap: %w", err)
		}
	}
	return nil
}

// Pipeline converts c into an orchestrator configuration.
func (c *ProjectConfig) Pipeline() orchestrator.Config {
	cfg := orchestrator.DefaultConfig()
	cfg.CostPerUnit = c.CostPerUnit
	cfg.Parallel = c.Parallel
	cfg.Preference.Strict = c.StrictPriority
	if c.Weights.Fast != nil {
		cfg.Preference.Fast = *c.Weights.Fast
	}
	if c.Weights.Cheap != nil {
		cfg.Preference.Cheap = *c.Weights.Cheap
	}
	if c.IncludeInfeasible {
		cfg.Policy = fusion.ScoreAll
	}
	if c.MaxCost > 0 || c.MaxTime > 0 {
		cfg.Feasibility = agent.BudgetLimit{MaxCost: c.MaxCost, MaxTime: c.MaxTime}
	}
	return cfg
}
