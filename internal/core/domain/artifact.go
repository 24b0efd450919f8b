package domain

// Fingerprint is a content digest of the stylesheet sources.
// It is only ever compared for equality.
type Fingerprint string

// String returns the hex digest.
func (f Fingerprint) String() string {
	return string(f)
}

// Artifact is a compiled stylesheet together with the fingerprint of the sources it was built from.
// The content is opaque and only handed back to the transform engine.
type Artifact struct {
	Fingerprint Fingerprint
	Content     []byte
	// Cached reports whether the artifact came from the cache rather than a fresh compile.
	Cached bool
}
