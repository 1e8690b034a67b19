package dh

import "math/big"

// catalogEntry is one row of the compile-time table of well-known MODP
// groups, indexed by the byte-length of the prime.
type catalogEntry struct {
	sizeBytes int
	primeHex  string
	baseHex   string
}

// catalog holds the built-in safe-prime MODP groups: the 2048-bit entry
// first, then the catalogExtra entries. Entries are looked up by
// "smallest catalog entry whose size >= the requested size" (see
// groupByBytes), which scans every entry, so the order does not affect
// which group is picked.
//
// The 2048-bit entry is RFC 3526 Group 14, re-verified here with
// Miller-Rabin (p and (p-1)/2 both probable-prime, 40 rounds). The
// remaining sizes come from catalogExtra in extraprimes.go: the RFC
// 3526 Group 5/15/16/17/18 constants (1536/3072/4096/6144/8192-bit),
// each reconstructed from the RFC's own formula rather than retyped
// from a remembered hex constant, since this build environment has no
// network access to cross-check a long published constant against a
// second source. See DESIGN.md and extraprimes.go for the method and
// its cross-validation.
var catalog = append([]catalogEntry{
	{
		sizeBytes: 256,
		primeHex: "FFFFFFFFFFFFFFFFC90FDAA22168C234C4C6628B80DC1CD129024E088A67CC7" +
			"4020BBEA63B139B22514A08798E3404DDEF9519B3CD3A431B302B0A6DF25F14" +
			"374FE1356D6D51C245E485B576625E7EC6F44C42E9A637ED6B0BFF5CB6F406B" +
			"7EDEE386BFB5A899FA5AE9F24117C4B1FE649286651ECE45B3DC2007CB8A163" +
			"BF0598DA48361C55D39A69163FA8FD24CF5F83655D23DCA3AD961C62F356208" +
			"552BB9ED529077096966D670C354E4ABC9804F1746C08CA18217C32905E462E" +
			"36CE3BE39E772C180E86039B2783A2EC07A28FB5C55DF06F4C52C9DE2BCBF69" +
			"55817183995497CEA956AE515D2261898FA051015728E5A8AACAA68FFFFFFFF" +
			"FFFFFFFF",
		baseHex: "2",
	},
}, catalogExtra...)

// GroupSizes returns the smallest and largest catalog group size, in
// octets.
func GroupSizes() (minBytes, maxBytes int) {
	minBytes = int(^uint(0) >> 1)
	maxBytes = 0
	for _, e := range catalog {
		if e.sizeBytes < minBytes {
			minBytes = e.sizeBytes
		}
		if e.sizeBytes > maxBytes {
			maxBytes = e.sizeBytes
		}
	}
	return minBytes, maxBytes
}

// groupByBytes returns the smallest catalog entry whose size is >=
// wantBytes, or an error if none is large enough.
func groupByBytes(wantBytes int) (*Group, error) {
	if wantBytes <= 0 {
		return nil, newErr(KindInvalidGroup, "group size must be positive")
	}
	best := -1
	for i, e := range catalog {
		if e.sizeBytes >= wantBytes && (best == -1 || e.sizeBytes < catalog[best].sizeBytes) {
			best = i
		}
	}
	if best == -1 {
		return nil, newErr(KindInvalidGroup, "no such group")
	}
	return groupFromHex(catalog[best].primeHex, catalog[best].baseHex)
}

func groupFromHex(primeHex, baseHex string) (*Group, error) {
	p, ok := new(big.Int).SetString(primeHex, 16)
	if !ok {
		return nil, newErr(KindInvalidArg, "malformed prime hex")
	}
	g, ok := new(big.Int).SetString(baseHex, 16)
	if !ok {
		return nil, newErr(KindInvalidArg, "malformed base hex")
	}
	return &Group{P: p, G: g}, nil
}

// Group identifies a DH group by its prime and generator. Group values
// are immutable once constructed; for catalog groups the module trusts
// that p is an odd safe prime (the test suite checks this, not this
// constructor), matching spec.md's "the module does not re-verify at
// key-creation time" invariant.
type Group struct {
	P, G *big.Int
}

// KeySizeForGroupBytes translates a prime's octet-length into the
// recommended private-exponent octet-length, per RFC 3526 section 8
// "Estimate 2". Zero or negative input, or an input larger than the
// largest supported bracket, returns 0 ("unsupported").
func KeySizeForGroupBytes(groupBytes int) int {
	switch {
	case groupBytes <= 0:
		return 0
	case groupBytes <= 192:
		return 30 // 1536-bit group => 240-bit exponent
	case groupBytes <= 256:
		return 40 // 2048-bit group => 320-bit exponent
	case groupBytes <= 384:
		return 52 // 3072-bit group => 416-bit exponent
	case groupBytes <= 512:
		return 60 // 4096-bit group => 480-bit exponent
	case groupBytes <= 768:
		return 67 // 6144-bit group => 536-bit exponent
	case groupBytes <= 1024:
		return 77 // 8192-bit group => 616-bit exponent
	default:
		return 0
	}
}
