package matchrecord

import (
	"math"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNumber(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   any
		want float64
	}{
		{name: "nil", in: nil, want: 0},
		{name: "empty", in: "", want: 0},
		{name: "decimal", in: "3.5", want: 3.5},
		{name: "decimal 3.2", in: "3.2", want: 3.2},
		{name: "thousands", in: "1,000", want: 1000},
		{name: "decimal comma", in: "2,5", want: 25},
		{name: "every comma removed", in: "1,234,567", want: 1234567},
		{name: "dash placeholder", in: "-", want: 0},
		{name: "letters", in: "abc", want: 0},
		{name: "numeric prefix", in: "12abc", want: 12},
		{name: "leading space", in: "  7", want: 7},
		{name: "negative", in: "-4", want: -4},
		{name: "exponent", in: "1e2", want: 100},
		{name: "float", in: 2.25, want: 2.25},
		{name: "int", in: 9, want: 9},
		{name: "nan", in: math.NaN(), want: 0},
		{name: "inf", in: math.Inf(1), want: 0},
		{name: "unsupported", in: []int{1}, want: 0},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, ParseNumber(tc.in))
		})
	}
}

func TestNumberUnmarshalJSON(t *testing.T) {
	t.Parallel()

	var got struct {
		A Number `json:"a"`
		B Number `json:"b"`
		C Number `json:"c"`
		D Number `json:"d"`
		E Number `json:"e"`
	}
	err := sonic.Unmarshal([]byte(`{"a":"1,5","b":null,"c":4,"d":"n/a","e":"2.75"}`), &got)
	require.NoError(t, err)

	assert.Equal(t, Number(15), got.A)
	assert.Equal(t, Number(0), got.B)
	assert.Equal(t, Number(4), got.C)
	assert.Equal(t, Number(0), got.D)
	assert.Equal(t, 2.75, got.E.Float())
}
