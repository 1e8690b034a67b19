package dh

import "math/big"

// KeyKind distinguishes a public key from a private key. The numeric
// values are the same PK_PUBLIC/PK_PRIVATE constants the legacy packet
// format (ExportPacket/ImportPacket) stores on the wire, so they must
// stay stable.
type KeyKind int

const (
	KindPublic  KeyKind = 0
	KindPrivate KeyKind = 1
)

func (k KeyKind) String() string {
	if k == KindPrivate {
		return "private"
	}
	return "public"
}

// Key is either a public key (P, G, Y) or a private key (P, G, X, Y).
// The zero Key is not valid; construct one with MakeKey, MakeKeyEx,
// MakeKeyDHParam, ImportPacket, or ImportRaw.
type Key struct {
	P, G *big.Int
	Y    *big.Int
	Kind KeyKind

	x *secret // non-nil iff Kind == KindPrivate
}

// sameGroup reports whether a and b share the same (p, g).
func sameGroup(a, b *Key) bool {
	return a.P.Cmp(b.P) == 0 && a.G.Cmp(b.G) == 0
}

// Destroy releases the key's bignum storage and zeroes any bytes that
// ever backed the private exponent. Destroy is idempotent and safe to
// call on a nil *Key.
func (k *Key) Destroy() {
	if k == nil {
		return
	}
	k.x.destroy()
	k.x = nil
	k.P, k.G, k.Y = nil, nil, nil
}

// GroupSizeBytes returns the octet length of the key's prime, or 0 if
// k is nil or has no prime set.
func (k *Key) GroupSizeBytes() int {
	if k == nil || k.P == nil {
		return 0
	}
	return len(k.P.Bytes())
}

// X returns the private exponent for a private key, or nil for a
// public key. Callers must not retain the returned pointer past a call
// to Destroy.
func (k *Key) X() *big.Int {
	if k == nil || k.x == nil {
		return nil
	}
	return k.x.x
}
