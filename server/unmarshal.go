package server

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/royalcat/polyquad/geom"
)

func isSpace(c byte) bool {
	return c == ' ' || c == '\n' || c == '\t' || c == '\r'
}

// unmarshalPointsFast parses a JSON array of integer pairs, [[x,y],...],
// appending to result. It avoids reflection for large batch queries.
func unmarshalPointsFast(data []byte, result *[]geom.Point) error {
	i, n := 0, len(data)
	skip := func() {
		for i < n && isSpace(data[i]) {
			i++
		}
	}

	*result = slices.Grow(*result, n/8)

	skip()
	if i >= n || data[i] != '[' {
		return fmt.Errorf("invalid format: expected '['")
	}
	i++

	skip()
	if i < n && data[i] == ']' {
		i++
		return trailing(data[i:])
	}

	for {
		skip()
		if i >= n || data[i] != '[' {
			return fmt.Errorf("invalid format: expected '[' for point at %d", i)
		}
		i++

		var coords [2]int32
		for j := range coords {
			skip()
			start := i
			if i < n && data[i] == '-' {
				i++
			}
			for i < n && data[i] >= '0' && data[i] <= '9' {
				i++
			}
			v, err := strconv.ParseInt(string(data[start:i]), 10, 32)
			if err != nil {
				return fmt.Errorf("invalid coordinate at %d: %w", start, err)
			}
			coords[j] = int32(v)

			skip()
			if j == 0 {
				if i >= n || data[i] != ',' {
					return fmt.Errorf("invalid format: expected ',' between coordinates at %d", i)
				}
				i++
			}
		}
		if i >= n || data[i] != ']' {
			return fmt.Errorf("invalid format: expected ']' at end of point at %d", i)
		}
		i++
		*result = append(*result, geom.Point{X: coords[0], Y: coords[1]})

		skip()
		if i < n && data[i] == ',' {
			i++
			continue
		}
		if i < n && data[i] == ']' {
			i++
			return trailing(data[i:])
		}
		return fmt.Errorf("invalid format: expected ',' or ']' at %d", i)
	}
}

func trailing(rest []byte) error {
	for _, c := range rest {
		if !isSpace(c) {
			return fmt.Errorf("invalid format: trailing data")
		}
	}
	return nil
}
