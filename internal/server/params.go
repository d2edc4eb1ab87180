package server

import (
	"net/url"
	"strconv"

	"github.com/algexeno/cistercian/pkg/errors"
	"github.com/algexeno/cistercian/pkg/pipeline"
)

// optionsFromQuery overlays query parameters on the server defaults.
func (s *Server) optionsFromQuery(q url.Values) (pipeline.Options, error) {
	opts := s.defaults
	opts.Formats = nil
	opts.Expression = q.Get("expr")

	if v := q.Get("layout"); v != "" {
		opts.Layout = v
	}
	if err := intParam(q, "resolution", &opts.CircleResolution); err != nil {
		return opts, err
	}
	if err := intParam(q, "fps", &opts.FPS); err != nil {
		return opts, err
	}
	for name, dst := range map[string]*float64{
		"scale":      &opts.Scale,
		"margin":     &opts.Margin,
		"line_width": &opts.LineWidth,
		"speed":      &opts.Speed,
	} {
		if err := floatParam(q, name, dst); err != nil {
			return opts, err
		}
	}
	if err := boolParam(q, "animate", &opts.Animate); err != nil {
		return opts, err
	}
	if err := boolParam(q, "refresh", &opts.Refresh); err != nil {
		return opts, err
	}
	return opts, nil
}

func intParam(q url.Values, name string, dst *int) error {
	v := q.Get(name)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return errors.New(errors.ErrCodeInvalidInput, "%s: not an integer: %q", name, v)
	}
	*dst = n
	return nil
}

func floatParam(q url.Values, name string, dst *float64) error {
	v := q.Get(name)
	if v == "" {
		return nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return errors.New(errors.ErrCodeInvalidInput, "%s: not a number: %q", name, v)
	}
	*dst = f
	return nil
}

func boolParam(q url.Values, name string, dst *bool) error {
	v := q.Get(name)
	if v == "" {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return errors.New(errors.ErrCodeInvalidInput, "%s: not a boolean: %q", name, v)
	}
	*dst = b
	return nil
}
