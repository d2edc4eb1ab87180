package glyph

import "github.com/algexeno/cistercian/pkg/errors"

// DefaultCircleResolution is the number of segments per circle used by the
// interactive viewer.
const DefaultCircleResolution = 4

// MaxCircleResolution is the largest accepted circle resolution.
const MaxCircleResolution = 360

// Settings controls how shapes are tessellated into strokes.
type Settings struct {
	// CircleResolution is the number of straight segments approximating one
	// circle. It must be at least 1; 3 or more looks like a circle.
	CircleResolution int `json:"circle_resolution" toml:"circle_resolution"`
}

// DefaultSettings returns the settings used when nothing is configured.
func DefaultSettings() Settings {
	return Settings{CircleResolution: DefaultCircleResolution}
}

// Validate reports settings the flattener cannot work with. The flattener
// itself does not check; callers accepting user input validate first.
func (s Settings) Validate() error {
	if s.CircleResolution < 1 {
		return errors.New(errors.ErrCodeInvalidConfig, "circle resolution must be at least 1, got %d", s.CircleResolution)
	}
	if s.CircleResolution > MaxCircleResolution {
		return errors.New(errors.ErrCodeInvalidConfig, "circle resolution must be at most %d, got %d", MaxCircleResolution, s.CircleResolution)
	}
	return nil
}
