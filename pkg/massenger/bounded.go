package massenger

import "math"

// boundedKind picks the narrowest integer able to hold [min, max].
func boundedKind(min, max int32) valueKind {
	switch {
	case min >= math.MinInt8 && max <= math.MaxInt8:
		return kindByte
	case min >= math.MinInt16 && max <= math.MaxInt16:
		return kindInt
	}
	return kindLong
}

// NextBounded reads an integer known to lie in [min, max], sent with
// SendBounded using the same range.
func (m *Massenger) NextBounded(min, max int32) (int32, error) {
	kind := boundedKind(min, max)
	v, _, err := m.next(kind)
	switch kind {
	case kindByte:
		return int32(int8(v)), err
	case kindInt:
		return int32(int16(v)), err
	}
	return int32(v), err
}

// SendBounded sends an integer known to lie in [min, max] using the
// narrowest integer type covering the range.
func (m *Massenger) SendBounded(min, max, v int32) error {
	return m.send(value{kind: boundedKind(min, max), i: int64(v)})
}
