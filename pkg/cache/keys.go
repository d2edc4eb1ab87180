package cache

// Keyer derives cache keys. Implementations must be deterministic: equal
// inputs give equal keys.
type Keyer interface {
	// ArtifactKey identifies one rendered file of a stroke list.
	ArtifactKey(strokesHash string, opts ArtifactKeyOpts) string

	// StoredRenderKey identifies a render stored under an id.
	StoredRenderKey(id string) string
}

// ArtifactKeyOpts holds everything besides the strokes that changes a
// rendered file.
type ArtifactKeyOpts struct {
	Format string `json:"format"`

	// Title is the expression text embedded in SVG, PDF and JSON output.
	Title string `json:"title,omitempty"`

	// Layout and CircleResolution are recorded in JSON output.
	Layout           string `json:"layout,omitempty"`
	CircleResolution int    `json:"circle_resolution,omitempty"`

	Scale     float64 `json:"scale,omitempty"`
	Margin    float64 `json:"margin,omitempty"`
	LineWidth float64 `json:"line_width,omitempty"`
	Animated  bool    `json:"animated,omitempty"`
	Speed     float64 `json:"speed,omitempty"`
	FPS       int     `json:"fps,omitempty"`
}

// DefaultKeyer hashes its inputs into "<kind>:<sha256>" keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// ArtifactKey returns "artifact:<sha256>".
func (DefaultKeyer) ArtifactKey(strokesHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", strokesHash, opts)
}

// StoredRenderKey returns "render:<id>".
func (DefaultKeyer) StoredRenderKey(id string) string {
	return "render:" + id
}
