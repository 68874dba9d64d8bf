package massenger

import "bytes"

// testTransport is an in-memory Transport.
type testTransport struct {
	in  []byte
	out bytes.Buffer
}

func (t *testTransport) Available() int {
	return len(t.in)
}

func (t *testTransport) ReadByte() (byte, error) {
	b := t.in[0]
	t.in = t.in[1:]
	return b, nil
}

func (t *testTransport) WriteByte(b byte) error {
	return t.out.WriteByte(b)
}

func (t *testTransport) inject(p ...byte) *testTransport {
	t.in = append(t.in, p...)
	return t
}

func (t *testTransport) injectString(s string) *testTransport {
	return t.inject([]byte(s)...)
}

// loopback moves everything written into the input.
func (t *testTransport) loopback() *testTransport {
	t.inject(t.out.Bytes()...)
	t.out.Reset()
	return t
}

func newTestMassenger(mode Mode) (*Massenger, *testTransport) {
	t := &testTransport{}
	return New(t, mode), t
}

func newTestMassengerWith(conf Config) (*Massenger, *testTransport) {
	t := &testTransport{}
	return conf.New(t), t
}
