package cache

// Keyer derives cache keys for pipeline results.
type Keyer interface {
	// LayoutKey identifies a layout document.
	LayoutKey(sourceHash string, opts LayoutKeyOpts) string

	// ArtifactKey identifies a rendered artifact of a layout.
	ArtifactKey(layoutKey string, opts ArtifactKeyOpts) string
}

// LayoutKeyOpts lists everything besides the source that changes a layout.
type LayoutKeyOpts struct {
	Language string `json:"language"`
	Geometry any    `json:"geometry"`
}

// ArtifactKeyOpts lists everything besides the layout that changes an
// artifact.
type ArtifactKeyOpts struct {
	Format   string `json:"format"`
	Style    any    `json:"style"`
	Detailed bool   `json:"detailed,omitempty"`
}

// DefaultKeyer hashes key options with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// LayoutKey returns "layout:<hash>".
func (DefaultKeyer) LayoutKey(sourceHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", sourceHash, opts)
}

// ArtifactKey returns "artifact:<hash>".
func (DefaultKeyer) ArtifactKey(layoutKey string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutKey, opts)
}
