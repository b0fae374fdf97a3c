package config

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/gravsim/internal/dynamo"
	"github.com/san-kum/gravsim/internal/sim"
	"github.com/san-kum/gravsim/internal/systems"
)

const (
	DefaultScenario    = systems.KindOrbital
	DefaultSteps       = 10000
	DefaultSampleEvery = 10
	DefaultDataDir     = ".gravsim"
)

type Config struct {
	Scenario string `yaml:"scenario"`
	Seed     int64  `yaml:"seed"`
	Steps    int    `yaml:"steps"`
	// Speed overrides the scenario's recommended factor when positive.
	Speed       float64               `yaml:"speed"`
	SampleEvery int                   `yaml:"sample_every"`
	DataDir     string                `yaml:"data_dir"`
	Orbital     systems.OrbitalParams `yaml:"orbital"`
	Cloud       systems.CloudParams   `yaml:"cloud"`
}

func DefaultConfig() *Config {
	return &Config{
		Scenario:    DefaultScenario,
		Seed:        1,
		Steps:       DefaultSteps,
		SampleEvery: DefaultSampleEvery,
		DataDir:     DefaultDataDir,
		Orbital:     systems.DefaultOrbitalParams(),
		Cloud:       systems.DefaultCloudParams(),
	}
}

// Load reads a YAML file over the defaults, so omitted keys keep their
// default values.
func Load(path string) (*Config, error) {
	return Merge(path, DefaultConfig())
}

// Merge reads a YAML file over base, which it modifies and returns.
func Merge(path string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, base); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return base, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	known := false
	for _, k := range systems.Kinds() {
		if k == c.Scenario {
			known = true
			break
		}
	}
	switch {
	case !known:
		return fmt.Errorf("%w: unknown scenario %q (available: %v)", dynamo.ErrInvalidConfiguration, c.Scenario, systems.Kinds())
	case c.Speed < 0 || math.IsNaN(c.Speed) || math.IsInf(c.Speed, 0):
		return fmt.Errorf("%w: speed must be positive, got %g", dynamo.ErrInvalidConfiguration, c.Speed)
	}

	if err := c.RunConfig().Validate(); err != nil {
		return err
	}

	switch c.Scenario {
	case systems.KindOrbital:
		return c.Orbital.Validate()
	case systems.KindCloud:
		return c.Cloud.Validate()
	}
	return nil
}

func (c *Config) Params() systems.Params {
	return systems.Params{Orbital: c.Orbital, Cloud: c.Cloud}
}

func (c *Config) RunConfig() sim.RunConfig {
	return sim.RunConfig{Steps: c.Steps, SampleEvery: c.SampleEvery}
}
