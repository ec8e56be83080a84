package cache

// ArtifactKeyOpts are the render options that change an artifact's bytes.
type ArtifactKeyOpts struct {
	Format string  `json:"format"`
	Style  string  `json:"style,omitempty"`
	Font   string  `json:"font,omitempty"`
	Scale  float64 `json:"scale,omitempty"`
}

// Keyer builds cache keys.
type Keyer interface {
	// ArtifactKey returns the key of a rendered artifact of the board whose
	// content hash is boardHash.
	ArtifactKey(boardHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer produces unscoped keys of the form "artifact:<sha256>".
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// ArtifactKey implements Keyer.
func (DefaultKeyer) ArtifactKey(boardHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", boardHash, opts)
}
