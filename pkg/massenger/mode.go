package massenger

import "strings"

// Mode selects the wire encoding.
type Mode byte

// Modes.
const (
	// ModeASCII frames are lines of space separated decimal tokens.
	ModeASCII Mode = 0
	// ModeSLIP frames are raw bytes with SLIP byte-stuffing.
	ModeSLIP Mode = 1
	// ModeAuto is reserved. It behaves as ModeASCII.
	ModeAuto Mode = 2
)

// IsValid checks if it's a known mode.
func (m Mode) IsValid() bool {
	return m <= ModeAuto
}

// IsBinary indicates the mode uses SLIP framing.
func (m Mode) IsBinary() bool {
	return m == ModeSLIP
}

// String implements fmt.Stringer.
func (m Mode) String() string {
	switch m {
	case ModeASCII:
		return "ascii"
	case ModeSLIP:
		return "slip"
	case ModeAuto:
		return "auto"
	}
	return "invalid"
}

// ParseMode parses the name of a mode, "binary" is accepted for ModeSLIP.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(s) {
	case "ascii", "text":
		return ModeASCII, nil
	case "slip", "binary", "bin":
		return ModeSLIP, nil
	case "auto", "":
		return ModeAuto, nil
	}
	return ModeASCII, &ModeError{Name: s}
}
