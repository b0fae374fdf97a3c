package config

import (
	"sort"

	"github.com/san-kum/gravsim/internal/physics"
	"github.com/san-kum/gravsim/internal/systems"
)

var Presets = map[string]map[string]*Config{
	systems.KindOrbital: {
		"solar": preset(systems.KindOrbital, func(c *Config) {}),
		"single": preset(systems.KindOrbital, func(c *Config) {
			c.Orbital.Count = 1
			c.Speed = physics.Day
		}),
		"eccentric": preset(systems.KindOrbital, func(c *Config) {
			c.Orbital.Count = 4
			c.Orbital.VelocityMultiplier = 1.2
		}),
		"retrograde": preset(systems.KindOrbital, func(c *Config) {
			c.Orbital.VelocityMultiplier = -1
		}),
		"crowded": preset(systems.KindOrbital, func(c *Config) {
			c.Orbital.Count = 64
			c.Orbital.SatelliteMass = 1e27
		}),
	},
	systems.KindCloud: {
		"default": preset(systems.KindCloud, func(c *Config) {}),
		"sparse": preset(systems.KindCloud, func(c *Config) {
			c.Cloud.Count = 50
		}),
		"dense": preset(systems.KindCloud, func(c *Config) {
			c.Cloud.Count = 1000
			c.Steps = 2000
		}),
	},
	systems.KindEarthMoon: {
		"month": preset(systems.KindEarthMoon, func(c *Config) {
			c.Steps = 1640
		}),
		"fast": preset(systems.KindEarthMoon, func(c *Config) {
			c.Speed = 7 * physics.Day
		}),
	},
}

func preset(kind string, apply func(*Config)) *Config {
	c := DefaultConfig()
	c.Scenario = kind
	apply(c)
	return c
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(scenario, name string) *Config {
	scenarioPresets, ok := Presets[scenario]
	if !ok {
		return nil
	}
	cfg, ok := scenarioPresets[name]
	if !ok {
		return nil
	}
	c := *cfg
	return &c
}

func ListPresets(scenario string) []string {
	scenarioPresets, ok := Presets[scenario]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(scenarioPresets))
	for name := range scenarioPresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
