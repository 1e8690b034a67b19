package dh

import (
	"io"
	"math/big"
)

// SignHash produces an ElGamal signature over digest using priv. This
// is the textbook ElGamal scheme, reduced modulo (p-1)/2 rather than
// p-1 as the reference implementation does: sound for safe-prime
// groups, but it has no hash-domain binding of its own and depends on
// k never being reused across signatures, so every call draws its own
// k from prng.
func SignHash(prng io.Reader, digest []byte, priv *Key) ([]byte, error) {
	if priv == nil {
		return nil, newErr(KindInvalidArg, "nil key")
	}
	if priv.Kind != KindPrivate {
		return nil, newErr(KindNotPrivate, "priv is not a private key")
	}
	x := priv.X()
	if x == nil {
		return nil, newErr(KindNotPrivate, "private exponent unavailable")
	}

	p := priv.P
	p1 := new(big.Int).Rsh(new(big.Int).Sub(p, big.NewInt(1)), 1)
	m := new(big.Int).SetBytes(digest)

	keyBytes := KeySizeForGroupBytes(priv.GroupSizeBytes())
	if keyBytes == 0 {
		return nil, newErr(KindInvalidKeySize, "group too large for the exponent-size policy")
	}

	var k, kInv *big.Int
	for {
		buf := make([]byte, keyBytes)
		if _, err := io.ReadFull(prng, buf); err != nil {
			zeroBytes(buf)
			return nil, newErr(KindPRNGReadFailure, "short read from random source")
		}
		k = new(big.Int).SetBytes(buf)
		zeroBytes(buf)
		k.Mod(k, p1)
		if k.Sign() == 0 {
			continue
		}
		kInv = new(big.Int).ModInverse(k, p1)
		if kInv != nil {
			break
		}
	}

	a := new(big.Int).Exp(priv.G, k, p)

	tmp := new(big.Int).Mul(x, a)
	tmp.Mod(tmp, p1)
	tmp.Sub(m, tmp)
	tmp.Mod(tmp, p1)

	b := new(big.Int).Mul(kInv, tmp)
	b.Mod(b, p1)

	der, err := marshalDHSignature(dhSignature{A: a, B: b})
	if err != nil {
		return nil, err
	}
	return der, nil
}

// VerifyHash checks sig against digest under pub, returning stat=1 if
// the signature is mathematically valid and stat=0 if it is not. A
// non-nil error indicates a structural decode or bignum failure, or a
// signature whose a lies outside 0 < a < p or whose b is negative,
// never a mismatched signature: per spec.md's "structural-decode success
// followed by mathematical inequality" rule, a signature that merely
// fails to verify is reported as stat=0 with a nil error.
func VerifyHash(sig, digest []byte, pub *Key) (stat int, err error) {
	if pub == nil {
		return 0, newErr(KindInvalidArg, "nil key")
	}
	var s dhSignature
	if err := unmarshalDHSignature(sig, &s); err != nil {
		return 0, err
	}

	p := pub.P
	if s.A.Sign() <= 0 || s.A.Cmp(p) >= 0 || s.B.Sign() < 0 {
		return 0, newErr(KindInvalidPacket, "signature values out of range")
	}
	m := new(big.Int).SetBytes(digest)
	lhs := new(big.Int).Exp(pub.G, m, p)

	t1 := new(big.Int).Exp(pub.Y, s.A, p)
	t2 := new(big.Int).Exp(s.A, s.B, p)
	rhs := new(big.Int).Mul(t1, t2)
	rhs.Mod(rhs, p)

	if lhs.Cmp(rhs) == 0 {
		return 1, nil
	}
	return 0, nil
}
