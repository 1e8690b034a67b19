package dh

import (
	"encoding/binary"
	"math/big"
)

// packetMagic, packetSection, packetSubtype and packetVersion make up
// the fixed header every exported packet starts with. Values are
// implementation-defined but must stay stable across export/import
// within this module.
const (
	packetMagic   uint32 = 0x47444821 // "GDH!"
	packetSection byte   = 'D'
	packetSubtype byte   = 'K'
	packetVersion byte   = 1
	packetHeaderSize = 4 + 1 + 1 + 1 // magic + section + subtype + version
)

func writeHeader(buf []byte) {
	binary.BigEndian.PutUint32(buf[0:4], packetMagic)
	buf[4] = packetSection
	buf[5] = packetSubtype
	buf[6] = packetVersion
}

func checkHeader(buf []byte) bool {
	if len(buf) < packetHeaderSize {
		return false
	}
	return binary.BigEndian.Uint32(buf[0:4]) == packetMagic &&
		buf[4] == packetSection &&
		buf[5] == packetSubtype &&
		buf[6] == packetVersion
}

func appendBignum(buf []byte, x *big.Int) []byte {
	b := x.Bytes()
	var lenField [4]byte
	binary.BigEndian.PutUint32(lenField[:], uint32(len(b)))
	buf = append(buf, lenField[:]...)
	buf = append(buf, b...)
	return buf
}

func readBignum(buf []byte) (*big.Int, []byte, error) {
	if len(buf) < 4 {
		return nil, nil, newErr(KindInvalidPacket, "truncated bignum length")
	}
	n := binary.BigEndian.Uint32(buf[0:4])
	buf = buf[4:]
	if uint64(len(buf)) < uint64(n) {
		return nil, nil, newErr(KindInvalidPacket, "truncated bignum magnitude")
	}
	x := new(big.Int).SetBytes(buf[:n])
	return x, buf[n:], nil
}

// ExportPacket serializes k into the legacy fixed-header binary packet
// format: header, kind byte, then p, g, and (x if private else y) as
// length-prefixed bignums.
func ExportPacket(k *Key) ([]byte, error) {
	if k == nil {
		return nil, newErr(KindInvalidArg, "nil key")
	}
	buf := make([]byte, packetHeaderSize, packetHeaderSize+1+3*(4+k.GroupSizeBytes()))
	writeHeader(buf)
	buf = append(buf, byte(k.Kind))
	buf = appendBignum(buf, k.P)
	buf = appendBignum(buf, k.G)
	if k.Kind == KindPrivate {
		x := k.X()
		if x == nil {
			return nil, newErr(KindNotPrivate, "private exponent unavailable")
		}
		buf = appendBignum(buf, x)
	} else {
		buf = appendBignum(buf, k.Y)
	}
	return buf, nil
}

// ImportPacket parses a packet produced by ExportPacket. For a
// private-kind packet it reconstructs y by re-exponentiation rather
// than trusting the stream, matching the reference implementation's
// import behavior.
func ImportPacket(buf []byte) (*Key, error) {
	if !checkHeader(buf) {
		return nil, newErr(KindInvalidPacket, "bad or missing header")
	}
	rest := buf[packetHeaderSize:]
	if len(rest) < 1 {
		return nil, newErr(KindInvalidPacket, "truncated packet")
	}
	kindByte := rest[0]
	rest = rest[1:]

	p, rest, err := readBignum(rest)
	if err != nil {
		return nil, err
	}
	g, rest, err := readBignum(rest)
	if err != nil {
		return nil, err
	}
	third, _, err := readBignum(rest)
	if err != nil {
		return nil, err
	}

	switch KeyKind(kindByte) {
	case KindPublic:
		return &Key{P: p, G: g, Y: third, Kind: KindPublic}, nil
	case KindPrivate:
		y := new(big.Int).Exp(g, third, p)
		return &Key{P: p, G: g, Y: y, Kind: KindPrivate, x: newSecret(third.Bytes())}, nil
	default:
		return nil, newErr(KindTypeMismatch, "unrecognized key kind byte")
	}
}
