// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package rxnblock

import (
	"regexp"
	"strconv"
)

// Yield-string patterns: a single number, or two numbers separated by a
// dash, comma, semicolon, colon, or space. The number pattern accepts at
// most one trailing decimal digit; this is a known limitation kept for
// compatibility with the databases these files come from.
var yieldPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^([0-9]+\.?[0-9]?)$`),
	regexp.MustCompile(`^([0-9]+\.?[0-9]?)\s*[-,;:]*\s*([0-9]+\.?[0-9]?)$`),
}

// ParseYield reads a yield percentage out of a property value. A range of
// two numbers averages to one value. Text matching neither pattern reports
// ok false.
func ParseYield(s string) (float64, bool) {
	for _, re := range yieldPatterns {
		m := re.FindStringSubmatch(s)
		if m == nil {
			continue
		}
		sum := 0.0
		for _, g := range m[1:] {
			v, err := strconv.ParseFloat(g, 64)
			if err != nil {
				return 0, false
			}
			sum += v
		}
		return sum / float64(len(m)-1), true
	}
	return 0, false
}
