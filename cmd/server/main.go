// Command server is a simple example server exercising the dh package's
// full lifecycle over a TCP connection: it accepts a peer's packaged
// public key, generates its own key in the same group, exchanges
// packets, and then uses the resulting shared secret to protect a
// message exchange. It is meant to be used together with cmd/client.
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

// sessionTTL bounds how long a connection's derived secret stays in
// sessions, counted from when it is stored after key agreement, in case
// a future revision adds reconnect-and-resume.
const sessionTTL = 5 * time.Minute

var sessions session.Store

func main() {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "%s is a simple example server for the godh package. Use together with cmd/client.\nUsage:\n", os.Args[0])
		flag.PrintDefaults()
	}
	addr := flag.String("l", ":9999", "address to listen on")
	flag.Parse()

	ln, err := net.Listen("tcp", *addr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	for {
		conn, err := ln.Accept()
		if err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			continue
		}
		go handleConn(conn)
	}
}

func handleConn(conn net.Conn) {
	defer conn.Close()
	fmt.Printf("got connection from %s\n", conn.RemoteAddr())
	if err := doHandleConn(conn); err != nil {
		fmt.Printf("doHandleConn: %s\n", err)
	}
}

func doHandleConn(conn net.Conn) error {
	r := bufio.NewReader(conn)
	w := bufio.NewWriter(conn)

	data1, err := wire.Read(r)
	if err != nil {
		return err
	}
	var clientMsg handshakeMsg
	if err := json.Unmarshal(data1, &clientMsg); err != nil {
		return err
	}
	clientPub, err := dh.ImportPacket(clientMsg.PubPacket)
	if err != nil {
		return err
	}

	serverKey, err := dh.MakeKey(rand.Reader, clientPub.GroupSizeBytes())
	if err != nil {
		return err
	}
	defer serverKey.Destroy()

	serverPacket, err := dh.ExportPacket(&dh.Key{P: serverKey.P, G: serverKey.G, Y: serverKey.Y, Kind: dh.KindPublic})
	if err != nil {
		return err
	}
	data2, err := json.Marshal(handshakeMsg{GroupBytes: serverKey.GroupSizeBytes(), PubPacket: serverPacket})
	if err != nil {
		return err
	}
	if err := wire.Write(w, data2); err != nil {
		return err
	}

	shared := make([]byte, serverKey.GroupSizeBytes())
	n, err := dh.SharedSecret(serverKey, clientPub, shared)
	if err != nil {
		return err
	}
	key := make([]byte, 16)
	if _, err := hkdf.New(sha256.New, shared[:n], nil, nil).Read(key); err != nil {
		return err
	}
	sessions.Put(conn.RemoteAddr().String(), key, sessionTTL, time.Now())

	toClient := "Hi client!"
	fmt.Printf("sending %q\n", toClient)
	if err := wire.EncryptAndWrite(w, key, toClient); err != nil {
		return err
	}
	plaintext, err := wire.ReadAndDecrypt(r, key)
	if err != nil {
		return err
	}
	fmt.Printf("received %q\n", plaintext)
	return nil
}
