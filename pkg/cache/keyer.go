package cache

// Keyer derives cache keys for each pipeline stage.
type Keyer interface {
	// OptionKey is the key of the option built from the given counts and
	// style config hashes.
	OptionKey(countsHash, configHash string) string

	// ArtifactKey is the key of an option exported to format.
	ArtifactKey(optionHash, format string) string

	// LayoutKey is the key of a stored layout.
	LayoutKey(id string) string
}

// DefaultKeyer produces unscoped keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// OptionKey hashes both inputs so either one changing yields a new key.
func (DefaultKeyer) OptionKey(countsHash, configHash string) string {
	return hashKey("option", countsHash, configHash)
}

// ArtifactKey hashes the option together with the export format.
func (DefaultKeyer) ArtifactKey(optionHash, format string) string {
	return hashKey("artifact", optionHash, format)
}

// LayoutKey uses the id verbatim; ids are generated, not user content.
func (DefaultKeyer) LayoutKey(id string) string {
	return "layout:" + id
}

var _ Keyer = DefaultKeyer{}
