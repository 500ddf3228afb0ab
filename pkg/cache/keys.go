package cache

// Keyer derives cache keys.
type Keyer interface {
	// LayoutKey identifies a placed layout by the hash of its chip config.
	LayoutKey(configHash string, opts LayoutKeyOpts) string
	// ArtifactKey identifies one rendered format of a layout.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
	// SceneKey identifies a 3D scene by the hash of its chip config.
	SceneKey(configHash string, opts SceneKeyOpts) string
}

// LayoutKeyOpts holds the placement options that change a layout.
type LayoutKeyOpts struct {
	Pattern   string  `json:"pattern"`
	FirstCell string  `json:"first_cell"`
	Shade     bool    `json:"shade"`
	Labels    bool    `json:"labels"`
	OriginX   float64 `json:"origin_x,omitempty"`
	OriginY   float64 `json:"origin_y,omitempty"`
}

// ArtifactKeyOpts holds the render options that change an artifact.
type ArtifactKeyOpts struct {
	Format   string  `json:"format"`
	Palette  string  `json:"palette,omitempty"`
	Scale    float64 `json:"scale,omitempty"`
	Detailed bool    `json:"detailed,omitempty"`
}

// SceneKeyOpts holds the options that change a 3D scene.
type SceneKeyOpts struct {
	FirstCell string  `json:"first_cell"`
	Mirror    bool    `json:"mirror"`
	Substrate bool    `json:"substrate"`
	Scale     float64 `json:"scale"`
	Format    string  `json:"format"`
}

// DefaultKeyer produces keys of the form "<kind>:<sha256>".
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

func (DefaultKeyer) LayoutKey(configHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", configHash, opts)
}

func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}

func (DefaultKeyer) SceneKey(configHash string, opts SceneKeyOpts) string {
	return hashKey("scene", configHash, opts)
}

var _ Keyer = DefaultKeyer{}
