package mqtt

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/golang/protobuf/proto"

	"github.com/robotalks/massenger/pkg/massenger"
)

// Value types, matching the Massenger Send* family.
const (
	ValueByte int32 = iota
	ValueInt
	ValueLong
	ValueFloat
	ValueDouble
)

// Value is a single argument of a bridged frame.
type Value struct {
	Type  int32   `protobuf:"varint,1,opt,name=type,proto3" json:"type,omitempty"`
	Int   int64   `protobuf:"zigzag64,2,opt,name=int,proto3" json:"int,omitempty"`
	Float float64 `protobuf:"fixed64,3,opt,name=float,proto3" json:"float,omitempty"`
}

// Reset implements proto.Message.
func (v *Value) Reset() { *v = Value{} }

// String implements proto.Message.
func (v *Value) String() string { return proto.CompactTextString(v) }

// ProtoMessage implements proto.Message.
func (*Value) ProtoMessage() {}

// Frame is the MQTT payload of a bridged frame.
type Frame struct {
	Address string   `protobuf:"bytes,1,opt,name=address,proto3" json:"address,omitempty"`
	Args    []*Value `protobuf:"bytes,2,rep,name=args,proto3" json:"args,omitempty"`
	// Payload holds raw argument bytes of binary frames.
	Payload []byte `protobuf:"bytes,3,opt,name=payload,proto3" json:"payload,omitempty"`
}

// Reset implements proto.Message.
func (f *Frame) Reset() { *f = Frame{} }

// String implements proto.Message.
func (f *Frame) String() string { return proto.CompactTextString(f) }

// ProtoMessage implements proto.Message.
func (*Frame) ProtoMessage() {}

// FrameFrom captures the unread part of the current frame of m.
// ASCII arguments are decoded by the massenger reader, as longs when the
// number is integral and fits 32 bits and as doubles otherwise. Binary
// arguments are kept as raw payload since their types are unknown.
func FrameFrom(m *massenger.Massenger) *Frame {
	f := &Frame{Address: m.Address()}
	if m.Mode().IsBinary() {
		if rest := m.Remaining(); len(rest) > 0 {
			f.Payload = append([]byte(nil), rest...)
		}
		return f
	}
	for m.HasNext() {
		tok, err := m.PeekToken()
		if err != nil {
			break
		}
		if isLong(tok) {
			v, err := m.NextLong()
			if err != nil {
				break
			}
			f.Args = append(f.Args, &Value{Type: ValueLong, Int: int64(v)})
			continue
		}
		v, err := m.NextDouble()
		if err != nil {
			break
		}
		f.Args = append(f.Args, &Value{Type: ValueDouble, Float: v})
	}
	return f
}

// isLong reports whether the leading number of tok is an integer within
// the 32-bit range, i.e. has no fraction or exponent.
func isLong(tok string) bool {
	tok = strings.TrimLeft(tok, " \t\n\v\f\r")
	start := 0
	if start < len(tok) && (tok[start] == '+' || tok[start] == '-') {
		start++
	}
	end := start
	for end < len(tok) && tok[end] >= '0' && tok[end] <= '9' {
		end++
	}
	if end == start {
		return false
	}
	if end < len(tok) && (tok[end] == '.' || tok[end] == 'e' || tok[end] == 'E') {
		return false
	}
	_, err := strconv.ParseInt(tok[:end], 10, 32)
	return err == nil
}

// SendTo sends the frame as a message through m.
func (f *Frame) SendTo(m *massenger.Massenger) error {
	if err := m.SendBegin(f.Address); err != nil {
		return err
	}
	for _, v := range f.Args {
		if err := sendValue(m, v); err != nil {
			return err
		}
	}
	for _, b := range f.Payload {
		if err := m.SendByte(b); err != nil {
			return err
		}
	}
	return m.SendEnd()
}

func sendValue(m *massenger.Massenger, v *Value) error {
	switch v.Type {
	case ValueByte:
		return m.SendByte(uint8(v.Int))
	case ValueInt:
		return m.SendInt(int16(v.Int))
	case ValueLong:
		return m.SendLong(int32(v.Int))
	case ValueFloat:
		return m.SendFloat(float32(v.Float))
	case ValueDouble:
		return m.SendDouble(v.Float)
	}
	return fmt.Errorf("unknown value type %d", v.Type)
}

// DecodeFrame decodes an MQTT payload.
func DecodeFrame(data []byte) (*Frame, error) {
	var f Frame
	if err := proto.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	return &f, nil
}

// Encode encodes the frame into an MQTT payload.
func (f *Frame) Encode() ([]byte, error) {
	return proto.Marshal(f)
}
