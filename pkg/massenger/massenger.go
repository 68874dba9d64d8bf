package massenger

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// DefaultBufferSize is the default capacity of the receive buffer.
const DefaultBufferSize = 128

// Config defines how a Massenger frames messages.
type Config struct {
	Mode Mode
	// BufferSize is the receive buffer capacity, which bounds a frame.
	BufferSize int
	// ByteOrder of binary arguments in ModeSLIP.
	ByteOrder binary.ByteOrder
	// TerminateAddress writes a NUL after the address in ModeSLIP, which
	// receivers need to find where arguments start. Without it the
	// address of a binary frame with arguments runs into the argument
	// bytes, so Dispatch and Router only match argument-less frames.
	TerminateAddress bool
}

// DefaultConfig gets the default configuration.
func DefaultConfig() Config {
	return Config{
		Mode:       ModeASCII,
		BufferSize: DefaultBufferSize,
		ByteOrder:  binary.LittleEndian,
	}
}

// New creates a Massenger on transport t.
func (c Config) New(t Transport) *Massenger {
	if c.BufferSize < 2 {
		c.BufferSize = DefaultBufferSize
	}
	if c.ByteOrder == nil {
		c.ByteOrder = binary.LittleEndian
	}
	if !c.Mode.IsValid() {
		c.Mode = ModeASCII
	}
	m := &Massenger{
		Transport: t,
		config:    c,
		frame:     newFrameBuffer(c.BufferSize),
	}
	m.mode = c.Mode
	m.codec = m.codecFor(c.Mode)
	return m
}

// New creates a Massenger with default configuration in the given mode.
func New(t Transport, mode Mode) *Massenger {
	c := DefaultConfig()
	c.Mode = mode
	return c.New(t)
}

// Massenger receives and sends framed messages over a Transport.
type Massenger struct {
	Transport Transport

	config Config
	mode   Mode
	codec  codec
	frame  frameBuffer
}

func (m *Massenger) codecFor(mode Mode) codec {
	if mode.IsBinary() {
		return &slipCodec{order: m.config.ByteOrder, terminate: m.config.TerminateAddress}
	}
	return asciiCodec{}
}

// Mode gets the current mode.
func (m *Massenger) Mode() Mode {
	return m.mode
}

// SetMode switches the encoding. A changed mode discards any frame in the
// buffer. Unknown modes are ignored.
func (m *Massenger) SetMode(mode Mode) {
	if mode != m.mode && mode.IsValid() {
		m.mode = mode
		m.codec = m.codecFor(mode)
		m.Flush()
	}
}

// Receive flushes the previous frame and consumes available bytes until a
// frame completes. It returns false when the transport runs dry first, the
// partially received bytes are then dropped by the next call.
func (m *Massenger) Receive() bool {
	m.Flush()
	for m.Transport.Available() > 0 {
		b, err := m.Transport.ReadByte()
		if err != nil {
			return false
		}
		if m.codec.process(&m.frame, b) {
			return true
		}
	}
	return false
}

// Process feeds a single byte to the receiver without flushing. It reports
// true when the byte completes a frame.
func (m *Massenger) Process(b byte) bool {
	return m.codec.process(&m.frame, b)
}

// Flush discards the current frame.
func (m *Massenger) Flush() {
	m.frame.reset()
}

// Dispatch calls fn if the address of the current frame equals address.
func (m *Massenger) Dispatch(address string, fn func()) bool {
	if m.frame.address() != address {
		return false
	}
	fn()
	return true
}

// Address gets the address token of the current frame.
func (m *Massenger) Address() string {
	return m.frame.address()
}

// Frame returns the bytes of the current frame. The slice is only valid
// until the next receive.
func (m *Massenger) Frame() []byte {
	return m.frame.frame()
}

// Len gets the length of the current frame.
func (m *Massenger) Len() int {
	return m.frame.length
}

// Cap gets the capacity of the receive buffer.
func (m *Massenger) Cap() int {
	return m.frame.capacity()
}

// HasNext indicates more arguments can be read.
func (m *Massenger) HasNext() bool {
	return m.frame.hasNext()
}

// Remaining returns the unread bytes of the current frame.
func (m *Massenger) Remaining() []byte {
	return m.frame.remaining()
}

func (m *Massenger) next(kind valueKind) (int64, float64, error) {
	if !m.frame.hasNext() {
		return 0, 0, ErrNoMoreArgs
	}
	return m.codec.next(&m.frame, kind)
}

// NextByte reads the next argument as a byte.
func (m *Massenger) NextByte() (int8, error) {
	v, _, err := m.next(kindByte)
	return int8(v), err
}

// NextInt reads the next argument as a 16-bit integer.
func (m *Massenger) NextInt() (int16, error) {
	v, _, err := m.next(kindInt)
	return int16(v), err
}

// NextLong reads the next argument as a 32-bit integer.
func (m *Massenger) NextLong() (int32, error) {
	v, _, err := m.next(kindLong)
	return int32(v), err
}

// NextFloat reads the next argument as a float.
func (m *Massenger) NextFloat() (float32, error) {
	_, v, err := m.next(kindFloat)
	return float32(v), err
}

// NextDouble reads the next argument as a double.
func (m *Massenger) NextDouble() (float64, error) {
	_, v, err := m.next(kindDouble)
	return v, err
}

// PeekToken returns the raw text of the next argument without consuming it.
// It's only meaningful in ASCII mode.
func (m *Massenger) PeekToken() (string, error) {
	if !m.frame.hasNext() {
		return "", ErrNoMoreArgs
	}
	return string(m.frame.token(m.frame.cursor)), nil
}

// NextToken reads the next argument as its raw text.
// It's only meaningful in ASCII mode.
func (m *Massenger) NextToken() (string, error) {
	if !m.frame.hasNext() {
		return "", ErrNoMoreArgs
	}
	tok := m.frame.token(m.frame.cursor)
	m.frame.skipToken()
	return string(tok), nil
}

func (m *Massenger) send(v value) error {
	return m.codec.write(m.Transport, v)
}

// SendBegin begins a message by sending the address.
func (m *Massenger) SendBegin(address string) error {
	return m.codec.begin(m.Transport, address)
}

// SendByte sends a byte.
func (m *Massenger) SendByte(v uint8) error {
	return m.send(value{kind: kindByte, i: int64(v)})
}

// SendInt sends a 16-bit integer.
func (m *Massenger) SendInt(v int16) error {
	return m.send(value{kind: kindInt, i: int64(v)})
}

// SendLong sends a 32-bit integer.
func (m *Massenger) SendLong(v int32) error {
	return m.send(value{kind: kindLong, i: int64(v)})
}

// SendFloat sends a float.
func (m *Massenger) SendFloat(v float32) error {
	return m.send(value{kind: kindFloat, f: float64(v)})
}

// SendDouble sends a double.
func (m *Massenger) SendDouble(v float64) error {
	return m.send(value{kind: kindDouble, f: v})
}

// SendEnd ends the message.
func (m *Massenger) SendEnd() error {
	return m.codec.end(m.Transport)
}

func (m *Massenger) sendOne(address string, v *value) error {
	if err := m.SendBegin(address); err != nil {
		return err
	}
	if v != nil {
		if err := m.send(*v); err != nil {
			return err
		}
	}
	return m.SendEnd()
}

// Send sends a message without arguments.
func (m *Massenger) Send(address string) error {
	return m.sendOne(address, nil)
}

// SendByteTo sends a message with a single byte.
func (m *Massenger) SendByteTo(address string, v uint8) error {
	return m.sendOne(address, &value{kind: kindByte, i: int64(v)})
}

// SendIntTo sends a message with a single 16-bit integer.
func (m *Massenger) SendIntTo(address string, v int16) error {
	return m.sendOne(address, &value{kind: kindInt, i: int64(v)})
}

// SendLongTo sends a message with a single 32-bit integer.
func (m *Massenger) SendLongTo(address string, v int32) error {
	return m.sendOne(address, &value{kind: kindLong, i: int64(v)})
}

// SendFloatTo sends a message with a single float.
func (m *Massenger) SendFloatTo(address string, v float32) error {
	return m.sendOne(address, &value{kind: kindFloat, f: float64(v)})
}

// SendDoubleTo sends a message with a single double.
func (m *Massenger) SendDoubleTo(address string, v float64) error {
	return m.sendOne(address, &value{kind: kindDouble, f: v})
}

// String renders the frame state for debugging.
func (m *Massenger) String() string {
	var w bytes.Buffer
	fmt.Fprintf(&w, "mode: %s length: %d next: %d\n", m.mode, m.frame.length, m.frame.cursor)
	for i, b := range m.frame.frame() {
		if i > 0 {
			w.WriteByte(' ')
		}
		if b >= 0x20 && b < 0x7f {
			fmt.Fprintf(&w, "%d:%c", b, b)
		} else {
			fmt.Fprintf(&w, "%d:.", b)
		}
	}
	return w.String()
}
