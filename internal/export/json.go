package export

import (
	"encoding/json"
	"io"

	"github.com/san-kum/gravsim/internal/sim"
	"github.com/san-kum/gravsim/internal/storage"
)

type RunData struct {
	Scenario    string             `json:"scenario"`
	Seed        int64              `json:"seed"`
	Speed       float64            `json:"speed"`
	Steps       int                `json:"steps"`
	EnergyDrift float64            `json:"energy_drift"`
	Metrics     map[string]float64 `json:"metrics"`
	Warnings    []string           `json:"warnings,omitempty"`
	Samples     []sim.Sample       `json:"samples"`
}

// WriteJSON encodes a run and its samples as indented JSON.
func WriteJSON(w io.Writer, info storage.RunInfo, result *sim.Result) error {
	data := RunData{
		Scenario:    info.Scenario,
		Seed:        info.Seed,
		Speed:       info.Speed,
		Steps:       result.StepsTaken,
		EnergyDrift: result.EnergyDrift,
		Metrics:     result.Metrics,
		Samples:     result.Samples,
	}
	for _, err := range result.Warnings {
		data.Warnings = append(data.Warnings, err.Error())
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}
