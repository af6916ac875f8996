package storage

// Zeroize overwrite key material with zeros before it is released
func Zeroize(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// Secret wraps sensitive bytes so they can be wiped deterministically.
// Never logged, never serialized.
type Secret struct {
	b []byte
}

// NewSecret take ownership of b
func NewSecret(b []byte) *Secret {
	return &Secret{b: b}
}

// Bytes expose the underlying material
func (s *Secret) Bytes() []byte {
	return s.b
}

// Len returns the material length
func (s *Secret) Len() int {
	return len(s.b)
}

// Destroy wipe the material; the secret is unusable afterwards
func (s *Secret) Destroy() {
	Zeroize(s.b)
	s.b = nil
}
