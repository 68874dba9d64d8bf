package massenger

import "io"

// SLIP reserved codes.
const (
	SlipEnd    byte = 0xC0
	SlipEsc    byte = 0xDB
	SlipEscEnd byte = 0xDC
	SlipEscEsc byte = 0xDD
)

type slipAction int

const (
	slipAppend slipAction = iota // append the returned byte
	slipSkip                     // ESC, nothing to append yet
	slipFrameEnd
)

// unslip decodes one wire byte. escaping tells whether the previous byte
// was ESC. ESC_END and ESC_ESC outside an escape pass through unchanged.
func unslip(b byte, escaping bool) (byte, slipAction) {
	switch b {
	case SlipEnd:
		return 0, slipFrameEnd
	case SlipEsc:
		return 0, slipSkip
	case SlipEscEnd:
		if escaping {
			return SlipEnd, slipAppend
		}
	case SlipEscEsc:
		if escaping {
			return SlipEsc, slipAppend
		}
	}
	return b, slipAppend
}

// AppendSLIP appends the escaped form of src to dst. No END is added.
func AppendSLIP(dst, src []byte) []byte {
	for _, b := range src {
		switch b {
		case SlipEnd:
			dst = append(dst, SlipEsc, SlipEscEnd)
		case SlipEsc:
			dst = append(dst, SlipEsc, SlipEscEsc)
		default:
			dst = append(dst, b)
		}
	}
	return dst
}

// DecodeSLIP unescapes data up to the first END byte, using the same rules
// as the receiver. Leading END bytes are skipped.
func DecodeSLIP(data []byte) []byte {
	out := make([]byte, 0, len(data))
	var escaping bool
	for _, b := range data {
		c, action := unslip(b, escaping)
		escaping = false
		switch action {
		case slipFrameEnd:
			if len(out) > 0 {
				return out
			}
		case slipSkip:
			escaping = true
		default:
			out = append(out, c)
		}
	}
	return out
}

func writeSLIP(w io.ByteWriter, data []byte) (err error) {
	for _, b := range data {
		switch b {
		case SlipEnd:
			if err = w.WriteByte(SlipEsc); err == nil {
				err = w.WriteByte(SlipEscEnd)
			}
		case SlipEsc:
			if err = w.WriteByte(SlipEsc); err == nil {
				err = w.WriteByte(SlipEscEsc)
			}
		default:
			err = w.WriteByte(b)
		}
		if err != nil {
			return
		}
	}
	return
}
