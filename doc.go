/*
Package dh implements finite-field Diffie-Hellman key exchange over the
multiplicative group of integers modulo a safe prime, plus two small
constructions built on top of it: DH-ES (hybrid encryption of a short
symmetric key) and an ElGamal-style signature over a message digest.

Keys are generated in one of a handful of well-known RFC 3526 MODP groups
(see GroupSizes), or in a caller-supplied group given either as a hex
(prime, base) pair or as a DER-encoded DHParameter sequence. A Key is
either a private key (P, G, X, Y) or a public key (P, G, Y); both kinds
share the same Go type, distinguished by Kind.

IMPORTANT NOTE: this is a from-scratch reimplementation of a 20-year-old
C library's DH module. It has not been reviewed by cryptographers. Do
not use it to protect anything that matters.
*/
package dh
