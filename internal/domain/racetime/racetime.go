// Package racetime converts athletics time strings between their stored,
// comparable and display forms.
//
// Two shapes are understood, told apart only by the number of colon
// separated segments:
//
//	MM:SS.cc  minutes, seconds and hundredths (track events)
//	H:MM:SS   hours, minutes and seconds (road events)
package racetime

import (
	"math"
	"strconv"
	"strings"
)

// Unrankable is the value ParseToSeconds returns for input it cannot read.
// It compares greater than every real time, so such entries rank last.
var Unrankable = math.Inf(1)

// ParseToSeconds returns the time in seconds, or Unrankable when s is empty,
// has a segment count other than two or three, or a non-numeric segment.
func ParseToSeconds(s string) float64 {
	if s == "" {
		return Unrankable
	}
	parts := strings.Split(s, ":")
	switch len(parts) {
	case 3:
		h, okH := atoi(parts[0])
		m, okM := atoi(parts[1])
		sec, okS := atof(parts[2])
		if !okH || !okM || !okS {
			return Unrankable
		}
		return float64(h*3600+m*60) + sec
	case 2:
		m, okM := atoi(parts[0])
		whole, frac, _ := strings.Cut(parts[1], ".")
		sec, okS := atoi(whole)
		if !okM || !okS {
			return Unrankable
		}
		cs := 0
		if frac != "" {
			var okC bool
			if cs, okC = atoi(frac); !okC {
				return Unrankable
			}
		}
		return float64(m*60+sec) + float64(cs)/100
	default:
		return Unrankable
	}
}

// Valid reports whether s parses to a finite time.
func Valid(s string) bool {
	return !math.IsInf(ParseToSeconds(s), 1)
}

// Format renders a stored time for display:
//
//	"1:10:21"  -> "1:10'21"
//	"14:09.39" -> "14'09\"39"
//	"14:09"    -> "14'09\"0"
//
// Any other shape is returned unchanged.
func Format(s string) string {
	parts := strings.Split(s, ":")
	switch len(parts) {
	case 3:
		return parts[0] + ":" + parts[1] + "'" + parts[2]
	case 2:
		sec, cs, _ := strings.Cut(parts[1], ".")
		if cs == "" {
			cs = "0"
		}
		return parts[0] + "'" + sec + "\"" + cs
	default:
		return s
	}
}

var displayToStored = strings.NewReplacer("'", ":", "\"", ".")

// ParseDisplay is ParseToSeconds for a time already rendered by Format.
func ParseDisplay(s string) float64 {
	return ParseToSeconds(displayToStored.Replace(s))
}

func atoi(s string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

func atof(s string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || f < 0 || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
