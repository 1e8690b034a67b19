// Command client is the counterpart to cmd/server: it generates a key
// in a chosen catalog group, exchanges packaged public keys with the
// server, and uses the shared secret to exchange a protected message.
package main

import (
	"bufio"
	"crypto/rand"
	"crypto/sha256"
	"encoding/json"
	"flag"
	"fmt"
	"net"
	"os"
	"time"

	"github.com/frekui/godh"
	"github.com/frekui/godh/internal/session"
	"github.com/frekui/godh/internal/wire"
	"golang.org/x/crypto/hkdf"
)

type handshakeMsg struct {
	GroupBytes int
	PubPacket  []byte
}

// sessionTTL bounds how long this client keeps a derived secret around
// keyed by server address, in case a future revision adds reconnect.
const sessionTTL = 5 * time.Minute

var sessions session.Store

func main() {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "%s is a simple example client for the godh package. Use together with cmd/server.\nUsage:\n", os.Args[0])
		flag.PrintDefaults()
	}
	addr := flag.String("conn", "localhost:9999", "host to connect to")
	groupBytes := flag.Int("group-bytes", 256, "DH group size in octets (catalog lookup)")
	flag.Parse()

	conn, err := net.Dial("tcp", *addr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	defer conn.Close()

	if err := run(conn, *groupBytes); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

func run(conn net.Conn, groupBytes int) error {
	r := bufio.NewReader(conn)
	w := bufio.NewWriter(conn)

	clientKey, err := dh.MakeKey(rand.Reader, groupBytes)
	if err != nil {
		return err
	}
	defer clientKey.Destroy()

	clientPacket, err := dh.ExportPacket(&dh.Key{P: clientKey.P, G: clientKey.G, Y: clientKey.Y, Kind: dh.KindPublic})
	if err != nil {
		return err
	}
	data1, err := json.Marshal(handshakeMsg{GroupBytes: clientKey.GroupSizeBytes(), PubPacket: clientPacket})
	if err != nil {
		return err
	}
	if err := wire.Write(w, data1); err != nil {
		return err
	}

	data2, err := wire.Read(r)
	if err != nil {
		return err
	}
	var serverMsg handshakeMsg
	if err := json.Unmarshal(data2, &serverMsg); err != nil {
		return err
	}
	serverPub, err := dh.ImportPacket(serverMsg.PubPacket)
	if err != nil {
		return err
	}

	shared := make([]byte, clientKey.GroupSizeBytes())
	n, err := dh.SharedSecret(clientKey, serverPub, shared)
	if err != nil {
		return err
	}
	key := make([]byte, 16)
	if _, err := hkdf.New(sha256.New, shared[:n], nil, nil).Read(key); err != nil {
		return err
	}
	sessions.Put(conn.RemoteAddr().String(), key, sessionTTL, time.Now())

	plaintext, err := wire.ReadAndDecrypt(r, key)
	if err != nil {
		return err
	}
	fmt.Printf("received %q\n", plaintext)

	toServer := "Hi server!"
	fmt.Printf("sending %q\n", toServer)
	return wire.EncryptAndWrite(w, key, toServer)
}
