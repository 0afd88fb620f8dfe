package common

// WipeByteArray zeroes b in place. Used for passwords once they have been
// sent. A nil slice is a no-op.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
