// Package code handles hierarchical, dot-separated account codes.
package code

import (
	"strconv"
	"strings"
)

const sep = "."

// Segments splits "1.1.02.01" into ["1", "1", "02", "01"].
func Segments(c string) []string {
	c = strings.TrimSpace(c)
	if c == "" {
		return nil
	}
	return strings.Split(c, sep)
}

// Level returns the depth of a code ("1" -> 1, "1.1.02" -> 3).
func Level(c string) int {
	return len(Segments(c))
}

// Parent drops the last segment of a code.
// "1.1.02.01" -> "1.1.02", "1" -> "".
func Parent(c string) string {
	segs := Segments(c)
	if len(segs) <= 1 {
		return ""
	}
	return strings.Join(segs[:len(segs)-1], sep)
}

// IsUnder reports whether c equals prefix or descends from it, comparing
// whole segments: "1.1.01.03" is under "1.1.01", "1.1.010" is not.
func IsUnder(c, prefix string) bool {
	cs, ps := Segments(c), Segments(prefix)
	if len(ps) == 0 || len(ps) > len(cs) {
		return false
	}
	for i := range ps {
		if cs[i] != ps[i] {
			return false
		}
	}
	return true
}

// Compare orders codes segment by segment, numerically when both segments
// are numbers, so "1.2" sorts before "1.10".
func Compare(a, b string) int {
	as, bs := Segments(a), Segments(b)
	for i := 0; i < len(as) && i < len(bs); i++ {
		if c := compareSegment(as[i], bs[i]); c != 0 {
			return c
		}
	}
	switch {
	case len(as) < len(bs):
		return -1
	case len(as) > len(bs):
		return 1
	}
	return 0
}

func compareSegment(a, b string) int {
	ai, aerr := strconv.Atoi(a)
	bi, berr := strconv.Atoi(b)
	if aerr == nil && berr == nil {
		switch {
		case ai < bi:
			return -1
		case ai > bi:
			return 1
		}
		return 0
	}
	return strings.Compare(a, b)
}
