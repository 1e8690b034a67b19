package dh

import (
	"io"
	"math/big"

	"github.com/frekui/godh/internal/hashreg"
)

// EncryptKey wraps a short symmetric key (or any plaintext no longer
// than the chosen hash's digest size) for pub, using an ephemeral DH
// key and a hash-based key stream, per the DH-ES construction: generate
// an ephemeral key in pub's group, agree on a shared secret with pub,
// hash it, then XOR the hash output against the plaintext.
func EncryptKey(prng io.Reader, plaintext []byte, pub *Key, hashName string) ([]byte, error) {
	if pub == nil {
		return nil, newErr(KindInvalidArg, "nil public key")
	}
	algo, ok := hashreg.ByName(hashName)
	if !ok {
		return nil, newErr(KindInvalidHash, "unknown hash algorithm: "+hashName)
	}
	if len(plaintext) > algo.Size {
		return nil, newErr(KindInvalidHash, "plaintext longer than hash output")
	}

	ephemeral, err := makeKeyFromParams(prng, pub.P, pub.G)
	if err != nil {
		return nil, err
	}
	defer ephemeral.Destroy()

	shared := make([]byte, ephemeral.GroupSizeBytes())
	n, err := SharedSecret(ephemeral, pub, shared)
	if err != nil {
		if ierr, ok := err.(*Error); ok && ierr.Kind == KindBufferOverflow {
			shared = make([]byte, ierr.Required)
			n, err = SharedSecret(ephemeral, pub, shared)
		}
		if err != nil {
			return nil, err
		}
	}
	shared = shared[:n]
	defer zeroBytes(shared)

	h := algo.New()
	h.Write(shared)
	digest := h.Sum(nil)
	defer zeroBytes(digest)

	ciphertext := make([]byte, len(plaintext))
	for i := range plaintext {
		ciphertext[i] = digest[i] ^ plaintext[i]
	}

	yEphemeral := ephemeral.Y.Bytes()
	der, err := marshalDHESCiphertext(dhesCiphertext{
		HashOID:    algo.OID,
		YEphemeral: yEphemeral,
		Ciphertext: ciphertext,
	})
	if err != nil {
		return nil, err
	}
	return der, nil
}

// DecryptKey reverses EncryptKey: it decodes the tagged sequence,
// resolves the hash by OID, imports the ephemeral public value into
// priv's group, recomputes the shared secret and hash, and XORs the
// ciphertext back into plaintext.
func DecryptKey(priv *Key, der []byte) ([]byte, error) {
	if priv == nil {
		return nil, newErr(KindInvalidArg, "nil private key")
	}
	if priv.Kind != KindPrivate {
		return nil, newErr(KindNotPrivate, "priv is not a private key")
	}

	var ct dhesCiphertext
	if err := unmarshalDHESCiphertext(der, &ct); err != nil {
		return nil, err
	}
	algo, ok := hashreg.ByOID(ct.HashOID)
	if !ok {
		return nil, newErr(KindInvalidPacket, "unrecognized hash OID")
	}
	if len(ct.Ciphertext) > algo.Size {
		return nil, newErr(KindInvalidPacket, "ciphertext longer than hash output")
	}

	peer := &Key{
		P:    priv.P,
		G:    priv.G,
		Y:    new(big.Int).SetBytes(ct.YEphemeral),
		Kind: KindPublic,
	}

	shared := make([]byte, priv.GroupSizeBytes())
	n, err := SharedSecret(priv, peer, shared)
	if err != nil {
		if ierr, ok := err.(*Error); ok && ierr.Kind == KindBufferOverflow {
			shared = make([]byte, ierr.Required)
			n, err = SharedSecret(priv, peer, shared)
		}
		if err != nil {
			return nil, err
		}
	}
	shared = shared[:n]
	defer zeroBytes(shared)

	h := algo.New()
	h.Write(shared)
	digest := h.Sum(nil)
	defer zeroBytes(digest)

	plaintext := make([]byte, len(ct.Ciphertext))
	for i := range ct.Ciphertext {
		plaintext[i] = digest[i] ^ ct.Ciphertext[i]
	}
	return plaintext, nil
}
