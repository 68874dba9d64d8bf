package websocket

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/robotalks/massenger/pkg/massenger"
)

func waitAvailable(tr massenger.Transport, n int) bool {
	deadline := time.Now().Add(2 * time.Second)
	for tr.Available() < n {
		if time.Now().After(deadline) {
			return false
		}
		time.Sleep(5 * time.Millisecond)
	}
	return true
}

func TestEcho(t *testing.T) {
	srv := httptest.NewServer(Handler(func(tr *massenger.StreamTransport) {
		if !waitAvailable(tr, len("ping 7\n")) {
			return
		}
		m := massenger.New(tr, massenger.ModeASCII)
		if !m.Receive() || m.Address() != "ping" {
			return
		}
		v, _ := m.NextLong()
		m.SendLongTo("pong", v+1)
	}))
	defer srv.Close()

	tr, err := Dial("ws"+strings.TrimPrefix(srv.URL, "http"), "http://localhost/")
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go tr.Run(ctx)

	m := massenger.New(tr, massenger.ModeASCII)
	require.NoError(t, m.SendLongTo("ping", 7))
	require.True(t, waitAvailable(tr, len("pong 8\n")))
	require.True(t, m.Receive())
	require.Equal(t, "pong", m.Address())
	v, err := m.NextLong()
	require.NoError(t, err)
	require.Equal(t, int32(8), v)
}

func TestDialFailure(t *testing.T) {
	_, err := Dial("ws://127.0.0.1:1/none", "http://localhost/")
	require.Error(t, err)
}
