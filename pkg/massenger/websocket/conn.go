// Package websocket carries massenger frames over a WebSocket connection,
// e.g. to a serial-to-network adapter.
package websocket

import (
	"golang.org/x/net/websocket"

	"github.com/robotalks/massenger/pkg/massenger"
)

// Dial connects to url and wraps the connection as a StreamTransport.
// Binary frames are used so SLIP bytes pass through unchanged.
func Dial(url, origin string) (*massenger.StreamTransport, error) {
	conn, err := websocket.Dial(url, "", origin)
	if err != nil {
		return nil, err
	}
	return New(conn), nil
}

// New wraps an established connection.
func New(conn *websocket.Conn) *massenger.StreamTransport {
	conn.PayloadType = websocket.BinaryFrame
	return massenger.NewStreamTransport(conn)
}

// Handler serves each WebSocket client with fn, handing it a transport
// whose read loop is already running.
func Handler(fn func(*massenger.StreamTransport)) websocket.Handler {
	return func(conn *websocket.Conn) {
		t := New(conn)
		done := make(chan error, 1)
		go func() { done <- t.Run(conn.Request().Context()) }()
		fn(t)
		conn.Close()
		<-done
	}
}
