package dh

import "math/big"

// SharedSecret computes the Diffie-Hellman shared secret between
// private key priv and peer public key pub, writing the minimal-length
// unsigned big-endian representation into out and returning the number
// of bytes written.
//
// If out is too small, SharedSecret returns a KindBufferOverflow error
// whose Required field carries the needed length; out is left
// untouched and the caller should retry with a bigger buffer.
func SharedSecret(priv, pub *Key, out []byte) (int, error) {
	if priv == nil || pub == nil {
		return 0, newErr(KindInvalidArg, "nil key")
	}
	if priv.Kind != KindPrivate {
		return 0, newErr(KindNotPrivate, "priv is not a private key")
	}
	if !sameGroup(priv, pub) {
		return 0, newErr(KindInvalidGroup, "keys belong to different groups")
	}
	if !isValidPublicValue(pub.Y, priv.P) {
		return 0, newErr(KindInvalidArg, "peer public value failed validation")
	}

	x := priv.X()
	if x == nil {
		return 0, newErr(KindNotPrivate, "private exponent unavailable")
	}

	z := new(big.Int).Exp(pub.Y, x, priv.P)
	secretBytes := z.Bytes()

	if len(out) < len(secretBytes) {
		return 0, overflowErr(len(secretBytes))
	}
	n := copy(out, secretBytes)
	zeroBytes(secretBytes)
	return n, nil
}
