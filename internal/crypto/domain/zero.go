package domain

// Zero overwrites b with zeros so discarded key material does not linger in
// memory. A nil slice is a no-op.
func Zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
