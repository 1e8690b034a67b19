// Package authenc provides encrypt-then-authenticate over a shared
// key: AES-128-CBC for confidentiality, HMAC-SHA256 for integrity, with
// both sub-keys derived from the caller's key via HKDF. It is used by
// cmd/server and cmd/client to protect a message under a Diffie-Hellman
// shared secret once key agreement has happened.
package authenc

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/hmac"
	"crypto/sha256"
	"fmt"
	"hash"
	"io"

	"golang.org/x/crypto/hkdf"
)

func hasher() hash.Hash {
	return sha256.New()
}

// AuthEnc encrypts plaintext under key (which must be 16 bytes),
// returning IV || ciphertext || auth-tag.
func AuthEnc(randr io.Reader, key []byte, plaintext []byte) ([]byte, error) {
	if len(key) != 16 {
		return nil, fmt.Errorf("authenc: got key length %d, want 16", len(key))
	}
	kdfr := hkdf.New(hasher, key, nil, nil)
	cbcKey := make([]byte, 16)
	hmacKey := make([]byte, 16)
	if _, err := io.ReadFull(kdfr, cbcKey); err != nil {
		return nil, err
	}
	if _, err := io.ReadFull(kdfr, hmacKey); err != nil {
		return nil, err
	}

	ciph, err := aes.NewCipher(cbcKey)
	if err != nil {
		return nil, err
	}
	iv := make([]byte, ciph.BlockSize())
	if _, err := io.ReadFull(randr, iv); err != nil {
		return nil, err
	}

	padded := addPadding(ciph.BlockSize(), plaintext)
	res := make([]byte, ciph.BlockSize()+len(padded)+hasher().Size())
	copy(res, iv)
	cipher.NewCBCEncrypter(ciph, iv).CryptBlocks(res[ciph.BlockSize():], padded)

	mac := hmac.New(hasher, hmacKey)
	mac.Write(res[:ciph.BlockSize()+len(padded)])
	copy(res[ciph.BlockSize()+len(padded):], mac.Sum(nil))
	return res, nil
}

// ErrAuthtagMismatch is returned by AuthDec when the ciphertext fails
// authentication.
var ErrAuthtagMismatch = fmt.Errorf("authenc: authtag mismatch")

// AuthDec reverses AuthEnc.
func AuthDec(key []byte, input []byte) ([]byte, error) {
	if len(key) != 16 {
		return nil, fmt.Errorf("authenc: got key length %d, want 16", len(key))
	}
	if len(input) < 3*16 || len(input)%16 != 0 {
		return nil, fmt.Errorf("authenc: malformed input length %d", len(input))
	}

	kdfr := hkdf.New(hasher, key, nil, nil)
	cbcKey := make([]byte, 16)
	hmacKey := make([]byte, 16)
	if _, err := io.ReadFull(kdfr, cbcKey); err != nil {
		return nil, err
	}
	if _, err := io.ReadFull(kdfr, hmacKey); err != nil {
		return nil, err
	}

	iv := input[:16]
	ciphertext := input[16 : len(input)-hasher().Size()]
	authtag := input[len(input)-hasher().Size():]

	mac := hmac.New(hasher, hmacKey)
	mac.Write(iv)
	mac.Write(ciphertext)
	if !hmac.Equal(mac.Sum(nil), authtag) {
		return nil, ErrAuthtagMismatch
	}

	ciph, err := aes.NewCipher(cbcKey)
	if err != nil {
		return nil, err
	}
	plaintext := make([]byte, len(ciphertext))
	cipher.NewCBCDecrypter(ciph, iv).CryptBlocks(plaintext, ciphertext)
	return removePadding(ciph.BlockSize(), plaintext)
}

// addPadding pads input per RFC 5652 section 6.3.
func addPadding(blockSize int, input []byte) []byte {
	out := make([]byte, blockSize*(len(input)/blockSize+1))
	copy(out, input)
	b := byte(blockSize - len(input)%blockSize)
	for i := len(input); i < len(out); i++ {
		out[i] = b
	}
	return out
}

func removePadding(blockSize int, input []byte) ([]byte, error) {
	if len(input) == 0 || len(input)%blockSize != 0 {
		return nil, fmt.Errorf("authenc: invalid padded length %d", len(input))
	}
	b := input[len(input)-1]
	if int(b) == 0 || int(b) > blockSize || int(b) > len(input) {
		return nil, fmt.Errorf("authenc: invalid padding byte %d", b)
	}
	return input[:len(input)-int(b)], nil
}
