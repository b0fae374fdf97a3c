package storage

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/san-kum/gravsim/internal/dynamo"
	"github.com/san-kum/gravsim/internal/sim"
)

type TrackPoint struct {
	Step     int
	Time     float64
	Position dynamo.Vec2
	Velocity dynamo.Vec2
	Breakup  bool
}

// Track is the sampled history of one body.
type Track struct {
	Body   int
	Points []TrackPoint
}

// EverBrokeUp reports whether the body was inside a Roche limit at any
// sample.
func (t Track) EverBrokeUp() bool {
	for _, p := range t.Points {
		if p.Breakup {
			return true
		}
	}
	return false
}

// TracksFromSamples regroups per-step samples into per-body tracks.
func TracksFromSamples(samples []sim.Sample) []Track {
	if len(samples) == 0 {
		return []Track{}
	}

	tracks := make([]Track, len(samples[0].Bodies))
	for i := range tracks {
		tracks[i] = Track{Body: i, Points: make([]TrackPoint, 0, len(samples))}
	}

	for _, s := range samples {
		for i, b := range s.Bodies {
			if i >= len(tracks) {
				break
			}
			tracks[i].Points = append(tracks[i].Points, TrackPoint{
				Step:     s.Step,
				Time:     s.Time,
				Position: b.Position,
				Velocity: b.Velocity,
				Breakup:  b.Breakup,
			})
		}
	}
	return tracks
}

// WriteSamplesCSV writes one row per body per sample.
func WriteSamplesCSV(w io.Writer, samples []sim.Sample) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(bodiesHeader); err != nil {
		return err
	}

	for _, s := range samples {
		step := strconv.Itoa(s.Step)
		t := formatFloat(s.Time)
		for i, b := range s.Bodies {
			row := []string{
				step,
				t,
				strconv.Itoa(i),
				formatFloat(b.Position.X),
				formatFloat(b.Position.Y),
				formatFloat(b.Velocity.X),
				formatFloat(b.Velocity.Y),
				strconv.FormatBool(b.Breakup),
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
	}

	cw.Flush()
	return cw.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
