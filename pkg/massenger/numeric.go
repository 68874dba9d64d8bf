package massenger

import (
	"math"
	"strconv"
)

func isSpace(c byte) bool {
	return c == ' ' || (c >= '\t' && c <= '\r')
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// parseInteger reads a leading base-10 integer like strtol: leading white
// space is skipped, a sign is optional and scanning stops at the first
// non-digit. The result saturates at the int32 range, the widest integer
// on the wire. A token without digits yields 0.
func parseInteger(tok []byte) int64 {
	i := 0
	for i < len(tok) && isSpace(tok[i]) {
		i++
	}
	neg := false
	if i < len(tok) && (tok[i] == '+' || tok[i] == '-') {
		neg = tok[i] == '-'
		i++
	}
	var v int64
	for ; i < len(tok) && isDigit(tok[i]); i++ {
		if v <= math.MaxInt32 {
			v = v*10 + int64(tok[i]-'0')
		}
	}
	if neg {
		v = -v
	}
	if v > math.MaxInt32 {
		return math.MaxInt32
	}
	if v < math.MinInt32 {
		return math.MinInt32
	}
	return v
}

// parseReal reads a leading decimal floating point number like strtod.
// The number is rounded once to bitSize. Hexadecimal floats are not
// recognized. A token without a number yields 0.
func parseReal(tok []byte, bitSize int) float64 {
	start, end := realPrefix(tok)
	if start == end {
		return 0
	}
	// Out of range values come back as ±Inf or 0 together with an error,
	// the same values strtod produces.
	v, _ := strconv.ParseFloat(string(tok[start:end]), bitSize)
	return v
}

// realPrefix locates the number at the beginning of tok after leading
// white space. start == end when there is none.
func realPrefix(tok []byte) (start, end int) {
	i := 0
	for i < len(tok) && isSpace(tok[i]) {
		i++
	}
	start = i
	if i < len(tok) && (tok[i] == '+' || tok[i] == '-') {
		i++
	}
	for _, word := range []string{"infinity", "inf", "nan"} {
		if hasPrefixFold(tok[i:], word) {
			return start, i + len(word)
		}
	}
	digits := 0
	for ; i < len(tok) && isDigit(tok[i]); i++ {
		digits++
	}
	if i < len(tok) && tok[i] == '.' {
		i++
		for ; i < len(tok) && isDigit(tok[i]); i++ {
			digits++
		}
	}
	if digits == 0 {
		return start, start
	}
	if i < len(tok) && (tok[i] == 'e' || tok[i] == 'E') {
		j := i + 1
		if j < len(tok) && (tok[j] == '+' || tok[j] == '-') {
			j++
		}
		if j < len(tok) && isDigit(tok[j]) {
			for j < len(tok) && isDigit(tok[j]) {
				j++
			}
			i = j
		}
	}
	return start, i
}

func hasPrefixFold(b []byte, word string) bool {
	if len(b) < len(word) {
		return false
	}
	for i := 0; i < len(word); i++ {
		c := b[i]
		if c >= 'A' && c <= 'Z' {
			c += 'a' - 'A'
		}
		if c != word[i] {
			return false
		}
	}
	return true
}

func formatInteger(v int64) string {
	return strconv.FormatInt(v, 10)
}

// formatReal uses the shortest representation that parses back to v,
// switching to an exponent for large and small magnitudes.
func formatReal(v float64, bitSize int) string {
	return strconv.FormatFloat(v, 'g', -1, bitSize)
}
