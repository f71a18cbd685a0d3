// SPDX-License-Identifier: GPL-3.0-only

package listings

import "testing"

func TestParsePrice(t *testing.T) {
	cases := []struct {
		display string
		want    int
	}{
		{"24 900 000 kr", 24900000},
		{"5 250 000 kr", 5250000},
		{"3995000", 3995000},
		{"1 200 000", 1200000},
		{"2 500 000 kr", 2500000}, // non-breaking spaces
		{"KR 750 000", 750000},
		{"", 0},
		{"Pris saknas", 0},
		{"kr", 0},
		{"12,5 mkr", 0},
	}

	for _, tc := range cases {
		got := ParsePrice(tc.display)
		if got != tc.want {
			t.Errorf("ParsePrice(%q) = %d, want %d", tc.display, got, tc.want)
		}
	}
}
