// Package hashreg is a small registry mapping a hash algorithm name to
// its digest constructor, digest size, and a stable ASN.1 object
// identifier, mirroring the role libtomcrypt's hash_descriptor table
// and find_hash_oid() play in the original DH-ES implementation: the
// core DH code never imports a concrete hash package directly, it asks
// this registry to resolve one by name or by OID.
package hashreg

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/asn1"
	"hash"

	"golang.org/x/crypto/sha3"
)

// Algorithm describes one registered hash function.
type Algorithm struct {
	Name   string
	Size   int
	OID    asn1.ObjectIdentifier
	New    func() hash.Hash
}

var byName = map[string]Algorithm{}
var byOID = map[string]Algorithm{}

func register(a Algorithm) {
	byName[a.Name] = a
	byOID[a.OID.String()] = a
}

func init() {
	register(Algorithm{Name: "md5", Size: md5.Size, OID: asn1.ObjectIdentifier{1, 2, 840, 113549, 2, 5}, New: md5.New})
	register(Algorithm{Name: "sha1", Size: sha1.Size, OID: asn1.ObjectIdentifier{1, 3, 14, 3, 2, 26}, New: sha1.New})
	register(Algorithm{Name: "sha256", Size: sha256.Size, OID: asn1.ObjectIdentifier{2, 16, 840, 1, 101, 3, 4, 2, 1}, New: sha256.New})
	register(Algorithm{Name: "sha384", Size: sha512.Size384, OID: asn1.ObjectIdentifier{2, 16, 840, 1, 101, 3, 4, 2, 2}, New: sha512.New384})
	register(Algorithm{Name: "sha512", Size: sha512.Size, OID: asn1.ObjectIdentifier{2, 16, 840, 1, 101, 3, 4, 2, 3}, New: sha512.New})
	register(Algorithm{Name: "sha3-256", Size: 32, OID: asn1.ObjectIdentifier{2, 16, 840, 1, 101, 3, 4, 2, 8}, New: func() hash.Hash { return sha3.New256() }})
}

// ByName looks up an algorithm by its registry name (e.g. "sha256").
// The bool is false if the name is not registered.
func ByName(name string) (Algorithm, bool) {
	a, ok := byName[name]
	return a, ok
}

// ByOID looks up an algorithm by its ASN.1 object identifier, as used
// when decoding a DH-ES ciphertext's hashOID field.
func ByOID(oid asn1.ObjectIdentifier) (Algorithm, bool) {
	a, ok := byOID[oid.String()]
	return a, ok
}
