package authenc

import (
	"bytes"
	"crypto/rand"
	"testing"
)

func TestPadding(t *testing.T) {
	bs := 16
	for _, tst := range []struct {
		in, expected []byte
	}{
		{[]byte{}, []byte{16, 16, 16, 16, 16, 16, 16, 16, 16, 16, 16, 16, 16, 16, 16, 16}},
		{[]byte{7}, []byte{7, 15, 15, 15, 15, 15, 15, 15, 15, 15, 15, 15, 15, 15, 15, 15}},
		{[]byte{7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7},
			[]byte{7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7,
				16, 16, 16, 16, 16, 16, 16, 16, 16, 16, 16, 16, 16, 16, 16, 16}},
	} {
		padded := addPadding(bs, tst.in)
		if !bytes.Equal(padded, tst.expected) {
			t.Errorf("got %v", padded)
		}
		orig, err := removePadding(bs, padded)
		if err != nil {
			t.Fatalf("removePadding: %v", err)
		}
		if !bytes.Equal(orig, tst.in) {
			t.Errorf("failed to remove padding, got %v", orig)
		}
	}
}

type devZero struct{}

func (devZero) Read(b []byte) (int, error) {
	for i := range b {
		b[i] = 0
	}
	return len(b), nil
}

var authEncDecTests = []struct {
	key, plaintext []byte
}{
	{[]byte{7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7}, []byte{}},
	{[]byte{7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7}, []byte{1, 2, 3}},
	{[]byte("0123456789abcdef"), []byte("a longer message spanning more than one AES block")},
}

func TestAuthEncDecDeterministic(t *testing.T) {
	for _, tst := range authEncDecTests {
		dst, err := AuthEnc(devZero{}, tst.key, tst.plaintext)
		if err != nil {
			t.Fatalf("AuthEnc: %v", err)
		}
		plaintext, err := AuthDec(tst.key, dst)
		if err != nil {
			t.Fatalf("AuthDec: %v", err)
		}
		if !bytes.Equal(tst.plaintext, plaintext) {
			t.Errorf("round trip mismatch: got %v want %v", plaintext, tst.plaintext)
		}
	}
}

func TestAuthEncDecRandomized(t *testing.T) {
	for _, tst := range authEncDecTests {
		seen := map[string]bool{}
		for i := 0; i < 10; i++ {
			dst, err := AuthEnc(rand.Reader, tst.key, tst.plaintext)
			if err != nil {
				t.Fatalf("AuthEnc: %v", err)
			}
			if seen[string(dst)] {
				t.Errorf("got identical ciphertext twice")
			}
			seen[string(dst)] = true

			plaintext, err := AuthDec(tst.key, dst)
			if err != nil {
				t.Fatalf("AuthDec: %v", err)
			}
			if !bytes.Equal(tst.plaintext, plaintext) {
				t.Errorf("round trip mismatch: got %v want %v", plaintext, tst.plaintext)
			}

			wrongKey := append([]byte{}, tst.key...)
			wrongKey[0] ^= 1
			if _, err := AuthDec(wrongKey, dst); err != ErrAuthtagMismatch {
				t.Errorf("AuthDec with wrong key: got %v, want ErrAuthtagMismatch", err)
			}

			tampered := append([]byte{}, dst...)
			tampered[len(tampered)-1] ^= 1
			if _, err := AuthDec(tst.key, tampered); err != ErrAuthtagMismatch {
				t.Errorf("AuthDec with tampered tag: got %v, want ErrAuthtagMismatch", err)
			}
		}
	}
}
