package massenger

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

type testArgs struct {
	b int8
	i int16
	l int32
	f float32
	d float64
}

func sendArgs(t *testing.T, m *Massenger, address string, args testArgs) {
	require.NoError(t, m.SendBegin(address))
	require.NoError(t, m.SendByte(uint8(args.b)))
	require.NoError(t, m.SendInt(args.i))
	require.NoError(t, m.SendLong(args.l))
	require.NoError(t, m.SendFloat(args.f))
	require.NoError(t, m.SendDouble(args.d))
	require.NoError(t, m.SendEnd())
}

func readArgs(t *testing.T, m *Massenger) (args testArgs) {
	var err error
	args.b, err = m.NextByte()
	require.NoError(t, err)
	args.i, err = m.NextInt()
	require.NoError(t, err)
	args.l, err = m.NextLong()
	require.NoError(t, err)
	args.f, err = m.NextFloat()
	require.NoError(t, err)
	args.d, err = m.NextDouble()
	require.NoError(t, err)
	return
}

var roundTripArgs = []testArgs{
	{0, 0, 0, 0, 0},
	{1, 2, 3, 4.5, 6.25},
	{-1, -300, -70000, -0.125, -1e-3},
	{127, math.MaxInt16, math.MaxInt32, 3.1415927, math.Pi},
	{-128, math.MinInt16, math.MinInt32, 1e10, 1.5e300},
	{0x40, 0x40c0, 0x40dbc0db, 0.1, 0.1},
}

func TestASCIIRoundTrip(t *testing.T) {
	for _, args := range roundTripArgs {
		m, tr := newTestMassengerWith(Config{BufferSize: 512})
		sendArgs(t, m, "ctl/x", args)
		tr.loopback()
		require.True(t, m.Receive())
		require.Equal(t, "ctl/x", m.Address())
		require.Equal(t, args, readArgs(t, m))
		require.False(t, m.HasNext())
	}
}

func TestASCIIRoundTripDefaultBuffer(t *testing.T) {
	cases := []testArgs{
		{-128, math.MinInt16, math.MinInt32, -math.MaxFloat32, -math.MaxFloat64},
		{127, math.MaxInt16, math.MaxInt32, math.SmallestNonzeroFloat32, math.SmallestNonzeroFloat64},
		{0, 0, 0, 1e-30, 1e200},
	}
	for _, args := range cases {
		m, tr := newTestMassenger(ModeASCII)
		sendArgs(t, m, "ctl/x", args)
		require.True(t, tr.out.Len() < m.Cap())
		tr.loopback()
		require.True(t, m.Receive())
		require.Equal(t, args, readArgs(t, m))
		require.False(t, m.HasNext())
		require.False(t, m.Receive())
	}

	m, tr := newTestMassenger(ModeASCII)
	require.NoError(t, m.SendDoubleTo("d", 1e200))
	require.Equal(t, "d 1e+200\n", tr.out.String())
}

func TestASCIIWhitespaceInToken(t *testing.T) {
	m, tr := newTestMassenger(ModeASCII)
	tr.injectString("m \t2.5 \t7 \t-1.5\n")
	require.True(t, m.Receive())
	d, err := m.NextDouble()
	require.NoError(t, err)
	require.Equal(t, 2.5, d)
	l, err := m.NextLong()
	require.NoError(t, err)
	require.Equal(t, int32(7), l)
	f, err := m.NextFloat()
	require.NoError(t, err)
	require.Equal(t, float32(-1.5), f)
}

func TestSLIPRoundTrip(t *testing.T) {
	for _, order := range []binary.ByteOrder{binary.LittleEndian, binary.BigEndian} {
		for _, args := range roundTripArgs {
			m, tr := newTestMassengerWith(Config{Mode: ModeSLIP, ByteOrder: order, TerminateAddress: true})
			sendArgs(t, m, "ctl/x", args)
			tr.loopback()
			require.True(t, m.Receive())
			require.Equal(t, "ctl/x", m.Address())
			require.Equal(t, args, readArgs(t, m))
			require.False(t, m.HasNext())
		}
	}
}

func TestASCIISendFormat(t *testing.T) {
	m, tr := newTestMassenger(ModeASCII)
	require.NoError(t, m.SendBegin("led"))
	require.NoError(t, m.SendInt(1))
	require.NoError(t, m.SendByte(255))
	require.NoError(t, m.SendLong(-42))
	require.NoError(t, m.SendFloat(0.5))
	require.NoError(t, m.SendDouble(2))
	require.NoError(t, m.SendEnd())
	require.Equal(t, "led 1 255 -42 0.5 2\n", tr.out.String())

	tr.out.Reset()
	require.NoError(t, m.Send("ping"))
	require.NoError(t, m.SendByteTo("b", 7))
	require.NoError(t, m.SendLongTo("l", 100000))
	require.NoError(t, m.SendFloatTo("f", 1.25))
	require.NoError(t, m.SendDoubleTo("d", -0.75))
	require.Equal(t, "ping\nb 7\nl 100000\nf 1.25\nd -0.75\n", tr.out.String())
}

func TestSLIPSendWire(t *testing.T) {
	m, tr := newTestMassenger(ModeSLIP)
	require.NoError(t, m.SendByteTo("a", 0xC0))
	require.Equal(t, []byte{'a', SlipEsc, SlipEscEnd, SlipEnd}, tr.out.Bytes())

	tr.loopback()
	require.True(t, m.Receive())
	require.Equal(t, []byte{'a', 0xC0}, m.Frame())
}

func TestSLIPSendEscapes(t *testing.T) {
	m, tr := newTestMassengerWith(Config{Mode: ModeSLIP, ByteOrder: binary.BigEndian, TerminateAddress: true})
	require.NoError(t, m.SendIntTo("x", 0x40DB))
	require.Equal(t, []byte{'x', 0, 0x40, SlipEsc, SlipEscEsc, SlipEnd}, tr.out.Bytes())
}

func TestArgumentExhaustion(t *testing.T) {
	for _, in := range []string{"a\n", "a 1\n", "a 1 2.5 3\n"} {
		m, tr := newTestMassenger(ModeASCII)
		tr.injectString(in)
		require.True(t, m.Receive())
		for m.HasNext() {
			_, err := m.NextDouble()
			require.NoError(t, err)
		}
		b, err := m.NextByte()
		require.Equal(t, ErrNoMoreArgs, err)
		require.Zero(t, b)
		i, err := m.NextInt()
		require.Equal(t, ErrNoMoreArgs, err)
		require.Zero(t, i)
		l, err := m.NextLong()
		require.Equal(t, ErrNoMoreArgs, err)
		require.Zero(t, l)
		f, err := m.NextFloat()
		require.Equal(t, ErrNoMoreArgs, err)
		require.Zero(t, f)
		d, err := m.NextDouble()
		require.Equal(t, ErrNoMoreArgs, err)
		require.Zero(t, d)
		tok, err := m.NextToken()
		require.Equal(t, ErrNoMoreArgs, err)
		require.Empty(t, tok)
	}

	// nothing received at all
	m, _ := newTestMassenger(ModeSLIP)
	v, err := m.NextInt()
	require.Equal(t, ErrNoMoreArgs, err)
	require.Zero(t, v)
}

func TestASCIIPermissiveParse(t *testing.T) {
	m, tr := newTestMassenger(ModeASCII)
	tr.injectString("m 12abc -7 x 3.5e2 inf +4 70000 300\n")
	require.True(t, m.Receive())

	i, err := m.NextInt()
	require.NoError(t, err)
	require.Equal(t, int16(12), i)
	i, err = m.NextInt()
	require.NoError(t, err)
	require.Equal(t, int16(-7), i)
	i, err = m.NextInt()
	require.NoError(t, err)
	require.Zero(t, i)
	d, err := m.NextDouble()
	require.NoError(t, err)
	require.Equal(t, 350.0, d)
	f, err := m.NextFloat()
	require.NoError(t, err)
	require.True(t, math.IsInf(float64(f), 1))
	l, err := m.NextLong()
	require.NoError(t, err)
	require.Equal(t, int32(4), l)
	// integers are cut to the requested width
	i, err = m.NextInt()
	require.NoError(t, err)
	require.Equal(t, int16(4464), i)
	b, err := m.NextByte()
	require.NoError(t, err)
	require.Equal(t, int8(44), b)
	require.False(t, m.HasNext())
}

func TestNextToken(t *testing.T) {
	m, tr := newTestMassenger(ModeASCII)
	tr.injectString("cfg speed 1.5\n")
	require.True(t, m.Receive())
	tok, err := m.NextToken()
	require.NoError(t, err)
	require.Equal(t, "speed", tok)
	require.Equal(t, []byte("1.5\x00"), m.Remaining())
	tok, err = m.PeekToken()
	require.NoError(t, err)
	require.Equal(t, "1.5", tok)
	f, err := m.NextFloat()
	require.NoError(t, err)
	require.Equal(t, float32(1.5), f)
	_, err = m.PeekToken()
	require.Equal(t, ErrNoMoreArgs, err)
}

func TestBinaryShortArgument(t *testing.T) {
	m, tr := newTestMassenger(ModeSLIP)
	tr.inject('a', 0, 1, 2, SlipEnd)
	require.True(t, m.Receive())
	require.Equal(t, []byte{1, 2}, m.Remaining())
	v, err := m.NextLong()
	require.Equal(t, ErrShortArg, err)
	require.Zero(t, v)
	_, err = m.NextByte()
	require.Equal(t, ErrNoMoreArgs, err)
}

func TestBinaryWithoutAddressTerminator(t *testing.T) {
	m, tr := newTestMassenger(ModeSLIP)
	require.NoError(t, m.SendIntTo("a", 5))
	tr.loopback()
	require.True(t, m.Receive())
	require.Equal(t, []byte{'a', 5, 0}, m.Frame())
	require.Equal(t, "a\x05", m.Address())
	require.False(t, m.HasNext())
}

func TestBounded(t *testing.T) {
	testCases := []struct {
		min, max, v int32
		wire        []byte
	}{
		{0, 100, 99, []byte{'b', 0, 99}},
		{-128, 127, -128, []byte{'b', 0, 0x80}},
		{0, 255, 200, []byte{'b', 0, 200, 0}},
		{-1000, 1000, -1000, []byte{'b', 0, 0x18, 0xfc}},
		{0, 40000, 40000, []byte{'b', 0, 0x40, 0x9c, 0, 0}},
	}
	for _, tc := range testCases {
		m, tr := newTestMassengerWith(Config{Mode: ModeSLIP, TerminateAddress: true})
		require.NoError(t, m.SendBegin("b"))
		require.NoError(t, m.SendBounded(tc.min, tc.max, tc.v))
		require.NoError(t, m.SendEnd())
		require.Equal(t, append(tc.wire, SlipEnd), tr.out.Bytes())
		tr.loopback()
		require.True(t, m.Receive())
		v, err := m.NextBounded(tc.min, tc.max)
		require.NoError(t, err)
		require.Equal(t, tc.v, v)
	}

	m, tr := newTestMassenger(ModeASCII)
	require.NoError(t, m.SendBegin("b"))
	require.NoError(t, m.SendBounded(0, 40000, 40000))
	require.NoError(t, m.SendEnd())
	tr.loopback()
	require.True(t, m.Receive())
	v, err := m.NextBounded(0, 40000)
	require.NoError(t, err)
	require.Equal(t, int32(40000), v)
}
