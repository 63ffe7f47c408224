package racetime

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseToSeconds(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want float64
	}{
		{name: "track time", in: "14:39.97", want: 879.97},
		{name: "track time faster", in: "14:09.39", want: 849.39},
		{name: "track time without hundredths", in: "29:01", want: 1741},
		{name: "single digit hundredths", in: "14:09.9", want: 849.09},
		{name: "road time", in: "1:04:23", want: 3863},
		{name: "road time over an hour", in: "1:10:21", want: 4221},
		{name: "road time with fraction", in: "1:04:23.5", want: 3863.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, ParseToSeconds(tt.in), 1e-9)
		})
	}
}

func TestParseToSeconds_Unrankable(t *testing.T) {
	for _, in := range []string{"", "DNS", "14", "1:2:3:4", "a:b.c", "14:xx.10", "14:09.ab", "1:xx:00", "-1:00.00"} {
		t.Run(in, func(t *testing.T) {
			got := ParseToSeconds(in)
			assert.True(t, math.IsInf(got, 1), "want +Inf for %q, got %v", in, got)
			assert.Greater(t, got, ParseToSeconds("9:59:59"))
			assert.False(t, Valid(in))
		})
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "14:09.39", want: "14'09\"39"},
		{in: "14:39.97", want: "14'39\"97"},
		{in: "1:10:21", want: "1:10'21"},
		{in: "1:04:23", want: "1:04'23"},
		{in: "29:01", want: "29'01\"0"},
		{in: "DNF", want: "DNF"},
		{in: "", want: ""},
		{in: "1:2:3:4", want: "1:2:3:4"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Format(tt.in))
		})
	}
}

func TestParseDisplay(t *testing.T) {
	for _, in := range []string{"14:09.39", "1:10:21", "29:01", "DNF", ""} {
		t.Run(in, func(t *testing.T) {
			assert.Equal(t, ParseToSeconds(in), ParseDisplay(Format(in)))
		})
	}
}

func TestValid(t *testing.T) {
	assert.True(t, Valid("14:39.97"))
	assert.True(t, Valid("1:04:23"))
	assert.False(t, Valid(""))
}
