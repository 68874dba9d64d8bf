package massenger

import (
	"context"
	"io"
	"sync"
)

// Transport is the byte link a Massenger runs on. Reads must not block:
// ReadByte is only called after Available reports pending bytes.
// If the transport also implements io.StringWriter, ASCII text is written
// through it.
type Transport interface {
	// Available gets the number of bytes that can be read without blocking.
	Available() int
	io.ByteReader
	io.ByteWriter
}

// StreamTransport adapts a blocking io.ReadWriter (serial port, socket,
// pipe) to Transport. Bytes are collected by Run in the background.
type StreamTransport struct {
	ReadWriter io.ReadWriter

	lock    sync.Mutex
	pending []byte
	readErr error
	notify  chan struct{}
}

// NewStreamTransport creates a StreamTransport.
func NewStreamTransport(rw io.ReadWriter) *StreamTransport {
	return &StreamTransport{ReadWriter: rw, notify: make(chan struct{}, 1)}
}

// Available implements Transport.
func (s *StreamTransport) Available() int {
	s.lock.Lock()
	defer s.lock.Unlock()
	return len(s.pending)
}

// ReadByte implements io.ByteReader.
func (s *StreamTransport) ReadByte() (byte, error) {
	s.lock.Lock()
	defer s.lock.Unlock()
	if len(s.pending) == 0 {
		if s.readErr != nil {
			return 0, s.readErr
		}
		return 0, io.EOF
	}
	b := s.pending[0]
	s.pending = s.pending[1:]
	return b, nil
}

// WriteByte implements io.ByteWriter.
func (s *StreamTransport) WriteByte(b byte) error {
	_, err := s.ReadWriter.Write([]byte{b})
	return err
}

// WriteString implements io.StringWriter.
func (s *StreamTransport) WriteString(str string) (int, error) {
	return s.ReadWriter.Write([]byte(str))
}

// Write implements io.Writer.
func (s *StreamTransport) Write(p []byte) (int, error) {
	return s.ReadWriter.Write(p)
}

// Err gets the error that stopped the read loop.
func (s *StreamTransport) Err() error {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.readErr
}

// Notify gets a chan signaled when new bytes arrive.
func (s *StreamTransport) Notify() <-chan struct{} {
	return s.notify
}

// Run reads from the underlying stream until it fails or ctx is done.
func (s *StreamTransport) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go s.readLoop(errCh)
	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		if closer, ok := s.ReadWriter.(io.Closer); ok {
			closer.Close()
		}
		return ctx.Err()
	}
}

func (s *StreamTransport) readLoop(errCh chan<- error) {
	buf := make([]byte, 64)
	for {
		n, err := s.ReadWriter.Read(buf)
		s.lock.Lock()
		s.pending = append(s.pending, buf[:n]...)
		if err != nil {
			s.readErr = err
		}
		s.lock.Unlock()
		if n > 0 {
			select {
			case s.notify <- struct{}{}:
			default:
			}
		}
		if err != nil {
			errCh <- err
			return
		}
	}
}
