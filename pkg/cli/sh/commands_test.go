package sh

import (
	"testing"

	"github.com/stretchr/testify/require"

	bridge "github.com/robotalks/massenger/pkg/bridge/mqtt"
)

func TestParseValue(t *testing.T) {
	testCases := []struct {
		arg   string
		value bridge.Value
	}{
		{"b:255", bridge.Value{Type: bridge.ValueByte, Int: 255}},
		{"i:-300", bridge.Value{Type: bridge.ValueInt, Int: -300}},
		{"l:0x10", bridge.Value{Type: bridge.ValueLong, Int: 16}},
		{"f:1.5", bridge.Value{Type: bridge.ValueFloat, Float: 1.5}},
		{"d:-2.25", bridge.Value{Type: bridge.ValueDouble, Float: -2.25}},
		{"42", bridge.Value{Type: bridge.ValueLong, Int: 42}},
		{"0.5", bridge.Value{Type: bridge.ValueDouble, Float: 0.5}},
		{"3000000000", bridge.Value{Type: bridge.ValueDouble, Float: 3e9}},
	}
	for _, tc := range testCases {
		t.Run(tc.arg, func(t *testing.T) {
			v, err := ParseValue(tc.arg)
			require.NoError(t, err)
			require.Equal(t, tc.value, *v)
		})
	}

	for _, arg := range []string{"b:256", "i:40000", "x:1", "abc", "f:"} {
		_, err := ParseValue(arg)
		require.Error(t, err, arg)
	}
}

func TestParseFrame(t *testing.T) {
	_, err := ParseFrame(nil)
	require.Error(t, err)

	f, err := ParseFrame([]string{"led", "b:1", "0.5"})
	require.NoError(t, err)
	require.Equal(t, "led", f.Address)
	require.Len(t, f.Args, 2)

	_, err = ParseFrame([]string{"led", "nope"})
	require.Error(t, err)
}

func TestFormatFrame(t *testing.T) {
	f := &bridge.Frame{
		Address: "imu",
		Args: []*bridge.Value{
			{Type: bridge.ValueLong, Int: -1},
			{Type: bridge.ValueFloat, Float: 0.5},
			{Type: bridge.ValueDouble, Float: 1e-7},
		},
	}
	require.Equal(t, "imu -1 0.5 1e-07", FormatFrame(f))

	f = &bridge.Frame{Address: "raw", Payload: []byte{1, 0xc0}}
	require.Equal(t, "raw [01 c0]", FormatFrame(f))

	s := &Shell{OutputJSON: true}
	out, err := s.FormatFrame(&bridge.Frame{Address: "a"})
	require.NoError(t, err)
	require.Equal(t, `{"address":"a"}`, out)
}
