package massenger

import (
	"encoding/binary"
	"io"
)

// DefaultPacketSize is the default capacity of a Packer.
const DefaultPacketSize = 256

// packetBuffer is a bounded io.ByteWriter.
type packetBuffer struct {
	data []byte
	size int
}

func (b *packetBuffer) WriteByte(c byte) error {
	if b.size >= len(b.data) {
		return ErrBufferFull
	}
	b.data[b.size] = c
	b.size++
	return nil
}

// Packer builds a single packet in memory, to be written out as a whole.
// Bytes beyond the capacity are dropped and reported as ErrBufferFull.
type Packer struct {
	codec codec
	buf   packetBuffer
}

// NewPacker creates a Packer with DefaultPacketSize and DefaultConfig
// settings. Binary packets carry no NUL after the address, use
// NewPackerWith to set Config.TerminateAddress.
func NewPacker(mode Mode) *Packer {
	c := DefaultConfig()
	c.Mode = mode
	return NewPackerWith(c, DefaultPacketSize)
}

// NewPackerWith creates a Packer with the given capacity, encoding
// packets as a Massenger configured with c would send them.
func NewPackerWith(c Config, size int) *Packer {
	p := &Packer{buf: packetBuffer{data: make([]byte, size)}}
	if c.ByteOrder == nil {
		c.ByteOrder = binary.LittleEndian
	}
	if c.Mode.IsBinary() {
		p.codec = &slipCodec{order: c.ByteOrder, terminate: c.TerminateAddress}
	} else {
		p.codec = asciiCodec{}
	}
	return p
}

// Flush discards the current packet.
func (p *Packer) Flush() {
	p.buf.size = 0
}

// Size gets the size of the packet.
func (p *Packer) Size() int {
	return p.buf.size
}

// Bytes returns the packet, valid until the next change.
func (p *Packer) Bytes() []byte {
	return p.buf.data[:p.buf.size]
}

// WriteTo implements io.WriterTo.
func (p *Packer) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(p.Bytes())
	return int64(n), err
}

// BeginPacket erases the previous packet and starts a new one.
func (p *Packer) BeginPacket(address string) error {
	p.Flush()
	return p.codec.begin(&p.buf, address)
}

// AddByte adds a byte.
func (p *Packer) AddByte(v uint8) error {
	return p.codec.write(&p.buf, value{kind: kindByte, i: int64(v)})
}

// AddInt adds a 16-bit integer.
func (p *Packer) AddInt(v int16) error {
	return p.codec.write(&p.buf, value{kind: kindInt, i: int64(v)})
}

// AddLong adds a 32-bit integer.
func (p *Packer) AddLong(v int32) error {
	return p.codec.write(&p.buf, value{kind: kindLong, i: int64(v)})
}

// AddFloat adds a float.
func (p *Packer) AddFloat(v float32) error {
	return p.codec.write(&p.buf, value{kind: kindFloat, f: float64(v)})
}

// AddDouble adds a double.
func (p *Packer) AddDouble(v float64) error {
	return p.codec.write(&p.buf, value{kind: kindDouble, f: v})
}

// EndPacket ends the packet.
func (p *Packer) EndPacket() error {
	return p.codec.end(&p.buf)
}

func (p *Packer) packOne(address string, v *value) error {
	if err := p.BeginPacket(address); err != nil {
		return err
	}
	if v != nil {
		if err := p.codec.write(&p.buf, *v); err != nil {
			return err
		}
	}
	return p.EndPacket()
}

// PackEmpty creates a packet with no arguments.
func (p *Packer) PackEmpty(address string) error {
	return p.packOne(address, nil)
}

// PackOneByte creates a packet with a single byte.
func (p *Packer) PackOneByte(address string, v uint8) error {
	return p.packOne(address, &value{kind: kindByte, i: int64(v)})
}

// PackOneInt creates a packet with a single 16-bit integer.
func (p *Packer) PackOneInt(address string, v int16) error {
	return p.packOne(address, &value{kind: kindInt, i: int64(v)})
}

// PackOneLong creates a packet with a single 32-bit integer.
func (p *Packer) PackOneLong(address string, v int32) error {
	return p.packOne(address, &value{kind: kindLong, i: int64(v)})
}

// PackOneFloat creates a packet with a single float.
func (p *Packer) PackOneFloat(address string, v float32) error {
	return p.packOne(address, &value{kind: kindFloat, f: float64(v)})
}
