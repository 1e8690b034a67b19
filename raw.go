package dh

import "math/big"

// ImportRaw constructs a key from a bare minimal-big-endian integer
// against a named group (prime_hex, base_hex). For a private import, x
// is read from raw and y is derived as g^x mod p; for a public import,
// raw is read directly as y. The constructed key is validated against
// the same rule fresh key generation enforces (1 < y < p-1); on
// failure the key material is cleared and an error returned.
func ImportRaw(raw []byte, kind KeyKind, primeHex, baseHex string) (*Key, error) {
	grp, err := groupFromHex(primeHex, baseHex)
	if err != nil {
		return nil, err
	}

	switch kind {
	case KindPrivate:
		s := newSecret(append([]byte(nil), raw...))
		y := new(big.Int).Exp(grp.G, s.x, grp.P)
		if !isValidPublicValue(y, grp.P) {
			s.destroy()
			return nil, newErr(KindInvalidArg, "derived public value failed validation")
		}
		return &Key{P: grp.P, G: grp.G, Y: y, Kind: KindPrivate, x: s}, nil
	case KindPublic:
		y := new(big.Int).SetBytes(raw)
		if !isValidPublicValue(y, grp.P) {
			return nil, newErr(KindInvalidArg, "public value failed validation")
		}
		return &Key{P: grp.P, G: grp.G, Y: y, Kind: KindPublic}, nil
	default:
		return nil, newErr(KindTypeMismatch, "unrecognized key kind")
	}
}

// ExportRaw returns the key's defining integer as minimal unsigned
// big-endian: x for a private key, y for a public key.
func ExportRaw(k *Key) ([]byte, error) {
	if k == nil {
		return nil, newErr(KindInvalidArg, "nil key")
	}
	if k.Kind == KindPrivate {
		x := k.X()
		if x == nil {
			return nil, newErr(KindNotPrivate, "private exponent unavailable")
		}
		return x.Bytes(), nil
	}
	return k.Y.Bytes(), nil
}
