package massenger

import (
	"encoding/binary"
	"io"
	"math"

	"github.com/golang/glog"
)

// valueKind is the wire type of an argument.
type valueKind int

const (
	kindByte valueKind = iota
	kindInt
	kindLong
	kindFloat
	kindDouble
)

var kindSizes = [...]int{kindByte: 1, kindInt: 2, kindLong: 4, kindFloat: 4, kindDouble: 8}

func (k valueKind) size() int {
	return kindSizes[k]
}

// value is a single argument to send.
type value struct {
	kind valueKind
	i    int64
	f    float64
}

// codec is the framing strategy for one Mode.
type codec interface {
	// process consumes one received byte and reports frame completion.
	process(f *frameBuffer, b byte) bool
	// next decodes the argument under the cursor. The caller guarantees
	// the frame has one.
	next(f *frameBuffer, kind valueKind) (int64, float64, error)

	begin(w io.ByteWriter, address string) error
	write(w io.ByteWriter, v value) error
	end(w io.ByteWriter) error
}

func writeString(w io.ByteWriter, s string) error {
	if sw, ok := w.(io.StringWriter); ok {
		_, err := sw.WriteString(s)
		return err
	}
	for i := 0; i < len(s); i++ {
		if err := w.WriteByte(s[i]); err != nil {
			return err
		}
	}
	return nil
}

// asciiCodec: "<address> <arg> <arg>\n".
type asciiCodec struct{}

func (asciiCodec) process(f *frameBuffer, b byte) bool {
	// Keep room for the terminating NUL.
	if last := f.capacity() - 1; f.length >= last {
		f.length = last
		f.data[last] = 0
		glog.V(3).Infof("ascii frame truncated at %d bytes", last)
		return f.complete()
	}
	switch b {
	case '\n', '\r':
		// An empty buffer swallows stray line endings, e.g. the LF of CRLF.
		if f.length > 0 {
			if !f.endsWithNUL() {
				f.write(0)
			}
			return f.complete()
		}
	case ' ':
		// NUL separates tokens, consecutive spaces collapse into one.
		if f.length > 0 && !f.endsWithNUL() {
			f.write(0)
		}
	default:
		f.write(b)
	}
	return false
}

func (asciiCodec) next(f *frameBuffer, kind valueKind) (i int64, r float64, err error) {
	tok := f.token(f.cursor)
	switch kind {
	case kindFloat:
		r = parseReal(tok, 32)
	case kindDouble:
		r = parseReal(tok, 64)
	default:
		i = parseInteger(tok)
	}
	f.skipToken()
	return
}

func (asciiCodec) begin(w io.ByteWriter, address string) error {
	return writeString(w, address)
}

func (asciiCodec) write(w io.ByteWriter, v value) error {
	if err := w.WriteByte(' '); err != nil {
		return err
	}
	switch v.kind {
	case kindFloat:
		return writeString(w, formatReal(v.f, 32))
	case kindDouble:
		return writeString(w, formatReal(v.f, 64))
	}
	return writeString(w, formatInteger(v.i))
}

func (asciiCodec) end(w io.ByteWriter) error {
	return w.WriteByte('\n')
}

// slipCodec: "<address><raw args>END" with SLIP escaping.
type slipCodec struct {
	order binary.ByteOrder
	// terminate writes a NUL after the address so receivers can skip it.
	terminate bool
}

func (c *slipCodec) process(f *frameBuffer, b byte) bool {
	if f.length >= f.capacity() {
		glog.V(3).Infof("slip frame truncated at %d bytes", f.length)
		return f.complete()
	}
	escaping := f.escaping
	f.escaping = false
	out, action := unslip(b, escaping)
	switch action {
	case slipFrameEnd:
		// A leading END only marks the start of a frame.
		if f.length > 0 {
			return f.complete()
		}
	case slipSkip:
		f.escaping = true
	default:
		f.write(out)
	}
	return false
}

func (c *slipCodec) next(f *frameBuffer, kind valueKind) (int64, float64, error) {
	b := f.take(kind.size())
	if b == nil {
		return 0, 0, ErrShortArg
	}
	switch kind {
	case kindByte:
		return int64(int8(b[0])), 0, nil
	case kindInt:
		return int64(int16(c.order.Uint16(b))), 0, nil
	case kindLong:
		return int64(int32(c.order.Uint32(b))), 0, nil
	case kindFloat:
		return 0, float64(math.Float32frombits(c.order.Uint32(b))), nil
	default:
		return 0, math.Float64frombits(c.order.Uint64(b)), nil
	}
}

func (c *slipCodec) begin(w io.ByteWriter, address string) error {
	if err := writeSLIP(w, []byte(address)); err != nil {
		return err
	}
	if c.terminate {
		return w.WriteByte(0)
	}
	return nil
}

func (c *slipCodec) write(w io.ByteWriter, v value) error {
	var b [8]byte
	switch v.kind {
	case kindByte:
		b[0] = byte(v.i)
	case kindInt:
		c.order.PutUint16(b[:], uint16(v.i))
	case kindLong:
		c.order.PutUint32(b[:], uint32(v.i))
	case kindFloat:
		c.order.PutUint32(b[:], math.Float32bits(float32(v.f)))
	case kindDouble:
		c.order.PutUint64(b[:], math.Float64bits(v.f))
	}
	return writeSLIP(w, b[:v.kind.size()])
}

func (c *slipCodec) end(w io.ByteWriter) error {
	return w.WriteByte(SlipEnd)
}
