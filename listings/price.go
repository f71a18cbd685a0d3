// SPDX-License-Identifier: GPL-3.0-only

package listings

import (
	"strconv"
	"strings"
	"unicode"
)

// ParsePrice normalizes a display price such as "24 900 000 kr" into its
// integer value. The parse is fail-soft: any malformed input yields 0, so a
// bad price field can never error out a search.
func ParsePrice(display string) int {
	clean := strings.ToLower(display)
	clean = strings.ReplaceAll(clean, "kr", "")
	clean = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, clean)

	value, err := strconv.Atoi(clean)
	if err != nil {
		return 0
	}
	return value
}
