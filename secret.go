package dh

import "math/big"

// secret wraps a private exponent together with the raw random bytes
// that produced it, so both can be zeroed together on Destroy. Modeling
// the private material this way, rather than relying on the garbage
// collector, is what spec.md's "Secret lifetime" design note asks for.
type secret struct {
	x   *big.Int
	buf []byte
}

// newSecret takes ownership of buf (the caller must not use it again)
// and interprets it as an unsigned big-endian integer.
func newSecret(buf []byte) *secret {
	return &secret{x: new(big.Int).SetBytes(buf), buf: buf}
}

func zeroBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// destroy zeroes the backing buffer and the bignum's words, then drops
// both references. Safe to call on a nil *secret or to call twice.
func (s *secret) destroy() {
	if s == nil {
		return
	}
	zeroBytes(s.buf)
	if s.x != nil {
		words := s.x.Bits()
		for i := range words {
			words[i] = 0
		}
	}
	s.x = nil
	s.buf = nil
}
