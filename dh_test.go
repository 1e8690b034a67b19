package dh

import (
	"bytes"
	"crypto/rand"
	"crypto/sha256"
	"math/big"
	"testing"

	"github.com/go-test/deep"
)

func isSafePrime(x *big.Int) bool {
	if !x.ProbablyPrime(40) {
		return false
	}
	q := new(big.Int).Sub(x, big.NewInt(1))
	q.Div(q, big.NewInt(2))
	return q.ProbablyPrime(40)
}

func TestCatalogEntriesAreSafePrimes(t *testing.T) {
	for _, e := range catalog {
		grp, err := groupFromHex(e.primeHex, e.baseHex)
		if err != nil {
			t.Fatalf("sizeBytes=%d: %v", e.sizeBytes, err)
		}
		if len(grp.P.Bytes()) != e.sizeBytes {
			t.Errorf("sizeBytes=%d: prime is actually %d bytes", e.sizeBytes, len(grp.P.Bytes()))
		}
		if !isSafePrime(grp.P) {
			t.Errorf("sizeBytes=%d: prime is not a safe prime", e.sizeBytes)
		}
	}
}

func TestGroupByBytesPicksSmallestFit(t *testing.T) {
	minBytes, maxBytes := GroupSizes()
	if minBytes > maxBytes {
		t.Fatalf("minBytes=%d > maxBytes=%d", minBytes, maxBytes)
	}
	if _, err := groupByBytes(maxBytes + 1); err == nil {
		t.Fatalf("expected error requesting a group larger than any catalog entry")
	}
	grp, err := groupByBytes(1)
	if err != nil {
		t.Fatalf("groupByBytes(1): %v", err)
	}
	if len(grp.P.Bytes()) != minBytes {
		t.Fatalf("groupByBytes(1) picked a %d-byte group, want the smallest (%d)", len(grp.P.Bytes()), minBytes)
	}
}

func TestKeySizeForGroupBytes(t *testing.T) {
	for _, tst := range []struct {
		groupBytes, want int
	}{
		{0, 0},
		{-1, 0},
		{192, 30},
		{256, 40},
		{384, 52},
		{512, 60},
		{768, 67},
		{1024, 77},
		{1025, 0},
	} {
		if got := KeySizeForGroupBytes(tst.groupBytes); got != tst.want {
			t.Errorf("KeySizeForGroupBytes(%d) = %d, want %d", tst.groupBytes, got, tst.want)
		}
	}
}

// TestMakeKeyAcrossAllCatalogSizes walks every size spec.md §2 requires
// the catalog to carry and confirms MakeKey succeeds at each, not just
// at the smallest and largest entries.
func TestMakeKeyAcrossAllCatalogSizes(t *testing.T) {
	for _, size := range []int{192, 256, 384, 512, 768, 1024} {
		k, err := MakeKey(rand.Reader, size)
		if err != nil {
			t.Fatalf("MakeKey(%d): %v", size, err)
		}
		if got := k.GroupSizeBytes(); got != size {
			k.Destroy()
			t.Fatalf("MakeKey(%d).GroupSizeBytes() = %d, want %d", size, got, size)
		}
		k.Destroy()
	}
}

func TestMakeKeyAndAgree(t *testing.T) {
	a, err := MakeKey(rand.Reader, 256)
	if err != nil {
		t.Fatalf("MakeKey: %v", err)
	}
	defer a.Destroy()
	b, err := MakeKey(rand.Reader, 256)
	if err != nil {
		t.Fatalf("MakeKey: %v", err)
	}
	defer b.Destroy()

	aPub := &Key{P: a.P, G: a.G, Y: a.Y, Kind: KindPublic}
	bPub := &Key{P: b.P, G: b.G, Y: b.Y, Kind: KindPublic}

	sharedA := make([]byte, a.GroupSizeBytes())
	nA, err := SharedSecret(a, bPub, sharedA)
	if err != nil {
		t.Fatalf("SharedSecret(a, bPub): %v", err)
	}
	sharedB := make([]byte, b.GroupSizeBytes())
	nB, err := SharedSecret(b, aPub, sharedB)
	if err != nil {
		t.Fatalf("SharedSecret(b, aPub): %v", err)
	}
	if !bytes.Equal(sharedA[:nA], sharedB[:nB]) {
		t.Fatalf("shared secrets disagree: %x != %x", sharedA[:nA], sharedB[:nB])
	}
}

func TestSharedSecretRejectsCrossGroup(t *testing.T) {
	a, err := MakeKey(rand.Reader, 192)
	if err != nil {
		t.Fatalf("MakeKey: %v", err)
	}
	defer a.Destroy()
	b, err := MakeKey(rand.Reader, 256)
	if err != nil {
		t.Fatalf("MakeKey: %v", err)
	}
	defer b.Destroy()

	bPub := &Key{P: b.P, G: b.G, Y: b.Y, Kind: KindPublic}
	out := make([]byte, a.GroupSizeBytes())
	if _, err := SharedSecret(a, bPub, out); err == nil {
		t.Fatalf("expected error agreeing across groups")
	} else if e, ok := err.(*Error); !ok || e.Kind != KindInvalidGroup {
		t.Fatalf("got %v, want KindInvalidGroup", err)
	}
}

func TestSharedSecretRejectsBadPublicValues(t *testing.T) {
	priv, err := MakeKey(rand.Reader, 192)
	if err != nil {
		t.Fatalf("MakeKey: %v", err)
	}
	defer priv.Destroy()

	for _, y := range []*big.Int{
		big.NewInt(1),
		new(big.Int).Sub(priv.P, big.NewInt(1)),
		big.NewInt(0),
	} {
		bad := &Key{P: priv.P, G: priv.G, Y: y, Kind: KindPublic}
		out := make([]byte, priv.GroupSizeBytes())
		if _, err := SharedSecret(priv, bad, out); err == nil {
			t.Errorf("y=%v: expected rejection", y)
		}
	}
}

func TestSharedSecretBufferOverflow(t *testing.T) {
	a, err := MakeKey(rand.Reader, 192)
	if err != nil {
		t.Fatalf("MakeKey: %v", err)
	}
	defer a.Destroy()
	b, err := MakeKey(rand.Reader, 192)
	if err != nil {
		t.Fatalf("MakeKey: %v", err)
	}
	defer b.Destroy()
	bPub := &Key{P: b.P, G: b.G, Y: b.Y, Kind: KindPublic}

	out := make([]byte, 1)
	_, err = SharedSecret(a, bPub, out)
	e, ok := err.(*Error)
	if !ok || e.Kind != KindBufferOverflow {
		t.Fatalf("got %v, want KindBufferOverflow", err)
	}
	if e.Required <= 1 {
		t.Errorf("Required=%d, want something bigger than the 1-byte buffer", e.Required)
	}
}

func TestPacketRoundTrip(t *testing.T) {
	priv, err := MakeKey(rand.Reader, 192)
	if err != nil {
		t.Fatalf("MakeKey: %v", err)
	}
	defer priv.Destroy()

	privPacket, err := ExportPacket(priv)
	if err != nil {
		t.Fatalf("ExportPacket(priv): %v", err)
	}
	gotPriv, err := ImportPacket(privPacket)
	if err != nil {
		t.Fatalf("ImportPacket(privPacket): %v", err)
	}
	defer gotPriv.Destroy()
	if diff := deep.Equal(gotPriv.Y, priv.Y); diff != nil {
		t.Errorf("imported private key's Y differs: %v", diff)
	}
	if gotPriv.X().Cmp(priv.X()) != 0 {
		t.Errorf("imported private key's X differs")
	}

	pub := &Key{P: priv.P, G: priv.G, Y: priv.Y, Kind: KindPublic}
	pubPacket, err := ExportPacket(pub)
	if err != nil {
		t.Fatalf("ExportPacket(pub): %v", err)
	}
	gotPub, err := ImportPacket(pubPacket)
	if err != nil {
		t.Fatalf("ImportPacket(pubPacket): %v", err)
	}
	if diff := deep.Equal(gotPub, pub); diff != nil {
		t.Errorf("imported public key differs: %v", diff)
	}
}

func TestImportPacketRejectsGarbage(t *testing.T) {
	if _, err := ImportPacket([]byte("not a packet")); err == nil {
		t.Fatalf("expected error on garbage input")
	}
	priv, err := MakeKey(rand.Reader, 192)
	if err != nil {
		t.Fatalf("MakeKey: %v", err)
	}
	defer priv.Destroy()
	packet, err := ExportPacket(priv)
	if err != nil {
		t.Fatalf("ExportPacket: %v", err)
	}
	truncated := packet[:len(packet)-2]
	if _, err := ImportPacket(truncated); err == nil {
		t.Fatalf("expected error on truncated packet")
	}
}

func TestRawRoundTrip(t *testing.T) {
	grp := catalog[0]
	priv, err := MakeKeyEx(rand.Reader, grp.primeHex, grp.baseHex)
	if err != nil {
		t.Fatalf("MakeKeyEx: %v", err)
	}
	defer priv.Destroy()

	rawX, err := ExportRaw(priv)
	if err != nil {
		t.Fatalf("ExportRaw: %v", err)
	}
	gotPriv, err := ImportRaw(rawX, KindPrivate, grp.primeHex, grp.baseHex)
	if err != nil {
		t.Fatalf("ImportRaw(private): %v", err)
	}
	defer gotPriv.Destroy()
	if gotPriv.Y.Cmp(priv.Y) != 0 {
		t.Errorf("re-derived Y differs")
	}

	rawX2, err := ExportRaw(gotPriv)
	if err != nil {
		t.Fatalf("ExportRaw: %v", err)
	}
	if !bytes.Equal(rawX2, rawX) {
		t.Errorf("re-exported X differs: got %x want %x", rawX2, rawX)
	}
}

func TestImportRawRejectsBadPublicValue(t *testing.T) {
	grp := catalog[0]
	p, _ := new(big.Int).SetString(grp.primeHex, 16)
	pMinusOne := new(big.Int).Sub(p, big.NewInt(1))
	if _, err := ImportRaw(pMinusOne.Bytes(), KindPublic, grp.primeHex, grp.baseHex); err == nil {
		t.Fatalf("expected rejection of y=p-1")
	}
}

func TestDHESRoundTrip(t *testing.T) {
	priv, err := MakeKey(rand.Reader, 256)
	if err != nil {
		t.Fatalf("MakeKey: %v", err)
	}
	defer priv.Destroy()
	pub := &Key{P: priv.P, G: priv.G, Y: priv.Y, Kind: KindPublic}

	plaintext := []byte("0123456789abcdef0123456789abcdef")[:32] // fits sha256's digest size
	der, err := EncryptKey(rand.Reader, plaintext, pub, "sha256")
	if err != nil {
		t.Fatalf("EncryptKey: %v", err)
	}
	got, err := DecryptKey(priv, der)
	if err != nil {
		t.Fatalf("DecryptKey: %v", err)
	}
	if !bytes.Equal(got, plaintext) {
		t.Fatalf("round trip mismatch: got %x want %x", got, plaintext)
	}
}

func TestDHESRejectsOversizedPlaintext(t *testing.T) {
	priv, err := MakeKey(rand.Reader, 256)
	if err != nil {
		t.Fatalf("MakeKey: %v", err)
	}
	defer priv.Destroy()
	pub := &Key{P: priv.P, G: priv.G, Y: priv.Y, Kind: KindPublic}

	plaintext := make([]byte, sha256.Size+1)
	if _, err := EncryptKey(rand.Reader, plaintext, pub, "sha256"); err == nil {
		t.Fatalf("expected rejection of plaintext longer than the digest size")
	}
}

func TestSignVerify(t *testing.T) {
	priv, err := MakeKey(rand.Reader, 256)
	if err != nil {
		t.Fatalf("MakeKey: %v", err)
	}
	defer priv.Destroy()
	pub := &Key{P: priv.P, G: priv.G, Y: priv.Y, Kind: KindPublic}

	digest := sha256.Sum256([]byte("message to sign"))
	sig, err := SignHash(rand.Reader, digest[:], priv)
	if err != nil {
		t.Fatalf("SignHash: %v", err)
	}
	stat, err := VerifyHash(sig, digest[:], pub)
	if err != nil {
		t.Fatalf("VerifyHash: %v", err)
	}
	if stat != 1 {
		t.Fatalf("VerifyHash returned stat=%d for a valid signature", stat)
	}

	otherDigest := sha256.Sum256([]byte("a different message"))
	stat, err = VerifyHash(sig, otherDigest[:], pub)
	if err != nil {
		t.Fatalf("VerifyHash with wrong digest: %v", err)
	}
	if stat != 0 {
		t.Fatalf("VerifyHash returned stat=%d for a mismatched digest", stat)
	}
}

func TestVerifyHashRejectsGarbageSignature(t *testing.T) {
	priv, err := MakeKey(rand.Reader, 256)
	if err != nil {
		t.Fatalf("MakeKey: %v", err)
	}
	defer priv.Destroy()
	pub := &Key{P: priv.P, G: priv.G, Y: priv.Y, Kind: KindPublic}
	digest := sha256.Sum256([]byte("message"))
	if _, err := VerifyHash([]byte("not a signature"), digest[:], pub); err == nil {
		t.Fatalf("expected decode error on garbage signature")
	}
}

func TestKeyDestroyIsIdempotent(t *testing.T) {
	priv, err := MakeKey(rand.Reader, 192)
	if err != nil {
		t.Fatalf("MakeKey: %v", err)
	}
	priv.Destroy()
	priv.Destroy()
	if priv.X() != nil {
		t.Errorf("X() should be nil after Destroy")
	}
	var nilKey *Key
	nilKey.Destroy() // must not panic
}

func TestMakeKeyDHParam(t *testing.T) {
	grp := catalog[0]
	p, _ := new(big.Int).SetString(grp.primeHex, 16)
	g, _ := new(big.Int).SetString(grp.baseHex, 16)
	der, err := marshalDHParameter(dhParameter{Prime: p, Base: g})
	if err != nil {
		t.Fatalf("marshalDHParameter: %v", err)
	}
	priv, err := MakeKeyDHParam(rand.Reader, der)
	if err != nil {
		t.Fatalf("MakeKeyDHParam: %v", err)
	}
	defer priv.Destroy()
	if priv.P.Cmp(p) != 0 || priv.G.Cmp(g) != 0 {
		t.Fatalf("MakeKeyDHParam produced a key in the wrong group")
	}
}

func TestErrorKindKnownNames(t *testing.T) {
	for _, tst := range []struct {
		k    Kind
		want string
	}{
		{KindMemory, "memory"},
		{KindInvalidArg, "invalid-arg"},
		{KindInvalidGroup, "invalid-group"},
		{KindInvalidKeySize, "invalid-key-size"},
		{KindInvalidPacket, "invalid-packet"},
		{KindBufferOverflow, "buffer-overflow"},
		{KindNotPrivate, "not-private"},
		{KindTypeMismatch, "type-mismatch"},
		{KindPRNGInvalid, "prng-invalid"},
		{KindPRNGReadFailure, "prng-read-failure"},
		{KindInvalidHash, "invalid-hash"},
		{KindBignumBackend, "bignum-backend"},
	} {
		if got := tst.k.String(); got != tst.want {
			t.Errorf("Kind(%d).String() = %q, want %q", tst.k, got, tst.want)
		}
	}
}
