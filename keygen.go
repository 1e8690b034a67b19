package dh

import (
	"io"
	"math/big"
)

// maxKeygenAttempts bounds the rejection-sampling loop in
// makeKeyFromParams. The loop is statistically certain to terminate far
// sooner than this (safe-prime groups admit only two invalid public
// values out of p-1), so hitting the bound points at a broken PRNG
// rather than bad luck.
const maxKeygenAttempts = 256

// makeKeyFromParams is the single keygen path every exported
// constructor (MakeKey, MakeKeyEx, MakeKeyDHParam) funnels through. The
// reference implementation carried three separate, slightly divergent
// revisions of this loop (one inlining the p-1 comparison, one calling
// a shared "check public key" helper, one factored to accept bignums
// directly); this is that third, bignum-accepting shape, made the only
// one.
func makeKeyFromParams(prng io.Reader, p, g *big.Int) (*Key, error) {
	if prng == nil {
		return nil, newErr(KindPRNGInvalid, "nil random source")
	}
	if p == nil || g == nil || p.Sign() <= 0 || g.Sign() <= 0 {
		return nil, newErr(KindInvalidGroup, "nil or non-positive group parameter")
	}
	groupBytes := len(p.Bytes())
	keyBytes := KeySizeForGroupBytes(groupBytes)
	if keyBytes == 0 {
		return nil, newErr(KindInvalidKeySize, "group too large for the exponent-size policy")
	}

	for attempt := 0; attempt < maxKeygenAttempts; attempt++ {
		buf := make([]byte, keyBytes)
		if _, err := io.ReadFull(prng, buf); err != nil {
			zeroBytes(buf)
			return nil, newErr(KindPRNGReadFailure, "short read from random source")
		}

		s := newSecret(buf)
		y := new(big.Int).Exp(g, s.x, p)

		if isValidPublicValue(y, p) {
			return &Key{P: p, G: g, Y: y, Kind: KindPrivate, x: s}, nil
		}
		s.destroy()
	}
	return nil, newErr(KindPRNGInvalid, "exhausted key-generation attempts")
}

// MakeKey constructs a fresh private key in the smallest catalog group
// whose size is >= groupBytes octets.
func MakeKey(prng io.Reader, groupBytes int) (*Key, error) {
	grp, err := groupByBytes(groupBytes)
	if err != nil {
		return nil, err
	}
	return makeKeyFromParams(prng, grp.P, grp.G)
}

// MakeKeyEx constructs a fresh private key in the group given directly
// as a (prime, base) hex pair, bypassing the catalog.
func MakeKeyEx(prng io.Reader, primeHex, baseHex string) (*Key, error) {
	grp, err := groupFromHex(primeHex, baseHex)
	if err != nil {
		return nil, err
	}
	return makeKeyFromParams(prng, grp.P, grp.G)
}

// MakeKeyDHParam constructs a fresh private key in the group described
// by a DER-encoded DHParameter SEQUENCE { prime INTEGER, base INTEGER }.
func MakeKeyDHParam(prng io.Reader, der []byte) (*Key, error) {
	var params dhParameter
	if err := unmarshalDHParameter(der, &params); err != nil {
		return nil, err
	}
	return makeKeyFromParams(prng, params.Prime, params.Base)
}
