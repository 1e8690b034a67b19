// Package wire contains small line-protocol helpers shared by the
// example server and client in cmd/, the way internal/pkg/util did in
// the teacher repo: newline-delimited frames over a bufio.Reader/Writer,
// with base64 framing around authenc-protected payloads.
package wire

import (
	"bufio"
	"crypto/rand"
	"encoding/base64"
	"fmt"

	"github.com/frekui/godh/internal/authenc"
)

func Write(w *bufio.Writer, data []byte) error {
	fmt.Printf("> %s\n", string(data))
	w.Write(data)
	w.Write([]byte("\n"))
	return w.Flush()
}

func Read(r *bufio.Reader) ([]byte, error) {
	fmt.Print("< ")
	data, err := r.ReadBytes('\n')
	if err != nil {
		return nil, err
	}
	fmt.Print(string(data))
	return data[:len(data)-1], nil
}

func EncryptAndWrite(w *bufio.Writer, key []byte, plaintext string) error {
	ciphertext, err := authenc.AuthEnc(rand.Reader, key, []byte(plaintext))
	if err != nil {
		return err
	}
	encoded := make([]byte, base64.StdEncoding.EncodedLen(len(ciphertext)))
	base64.StdEncoding.Encode(encoded, ciphertext)
	return Write(w, encoded)
}

func ReadAndDecrypt(r *bufio.Reader, key []byte) (string, error) {
	encoded, err := Read(r)
	if err != nil {
		return "", err
	}
	ciphertext := make([]byte, base64.StdEncoding.DecodedLen(len(encoded)))
	n, err := base64.StdEncoding.Decode(ciphertext, encoded)
	if err != nil {
		return "", err
	}
	plaintext, err := authenc.AuthDec(key, ciphertext[:n])
	if err != nil {
		return "", err
	}
	return string(plaintext), nil
}
