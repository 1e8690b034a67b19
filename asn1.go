package dh

import (
	"encoding/asn1"
	"math/big"
)

// dhParameter mirrors the DHParameter SEQUENCE from spec.md section 4.2:
// SEQUENCE { prime INTEGER, base INTEGER }. Nothing in the example
// corpus imports a third-party ASN.1 library (the only hits for
// "encoding/asn1" across the retrieved repos are themselves stdlib
// usages), so this codec uses the standard library's encoding/asn1
// rather than inventing a dependency the rest of the ecosystem doesn't
// reach for either.
type dhParameter struct {
	Prime *big.Int
	Base  *big.Int
}

func unmarshalDHParameter(der []byte, out *dhParameter) error {
	rest, err := asn1.Unmarshal(der, out)
	if err != nil {
		return newErr(KindInvalidPacket, "malformed DHParameter: "+err.Error())
	}
	if len(rest) != 0 {
		return newErr(KindInvalidPacket, "trailing bytes after DHParameter")
	}
	if out.Prime == nil || out.Base == nil || out.Prime.Sign() <= 0 || out.Base.Sign() <= 0 {
		return newErr(KindInvalidPacket, "DHParameter fields must be positive")
	}
	return nil
}

func marshalDHParameter(p dhParameter) ([]byte, error) {
	der, err := asn1.Marshal(p)
	if err != nil {
		return nil, newErr(KindInvalidArg, "failed to encode DHParameter: "+err.Error())
	}
	return der, nil
}

// dhesCiphertext mirrors spec.md section 4.5's tagged sequence:
// SEQUENCE { hashOID OBJECT IDENTIFIER, yEphemeral OCTET STRING, ciphertext OCTET STRING }.
type dhesCiphertext struct {
	HashOID    asn1.ObjectIdentifier
	YEphemeral []byte
	Ciphertext []byte
}

func marshalDHESCiphertext(v dhesCiphertext) ([]byte, error) {
	der, err := asn1.Marshal(v)
	if err != nil {
		return nil, newErr(KindInvalidArg, "failed to encode DH-ES ciphertext: "+err.Error())
	}
	return der, nil
}

func unmarshalDHESCiphertext(der []byte, out *dhesCiphertext) error {
	rest, err := asn1.Unmarshal(der, out)
	if err != nil {
		return newErr(KindInvalidPacket, "malformed DH-ES ciphertext: "+err.Error())
	}
	if len(rest) != 0 {
		return newErr(KindInvalidPacket, "trailing bytes after DH-ES ciphertext")
	}
	return nil
}

// dhSignature mirrors spec.md section 4.6's SEQUENCE { a INTEGER, b INTEGER }.
type dhSignature struct {
	A *big.Int
	B *big.Int
}

func marshalDHSignature(v dhSignature) ([]byte, error) {
	der, err := asn1.Marshal(v)
	if err != nil {
		return nil, newErr(KindInvalidArg, "failed to encode signature: "+err.Error())
	}
	return der, nil
}

func unmarshalDHSignature(der []byte, out *dhSignature) error {
	rest, err := asn1.Unmarshal(der, out)
	if err != nil {
		return newErr(KindInvalidPacket, "malformed signature: "+err.Error())
	}
	if len(rest) != 0 {
		return newErr(KindInvalidPacket, "trailing bytes after signature")
	}
	if out.A == nil || out.B == nil {
		return newErr(KindInvalidPacket, "signature fields missing")
	}
	return nil
}
