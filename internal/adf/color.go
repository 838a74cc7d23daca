package adf

import "strings"

// namedColors maps the editor palette's hex values to their names. The
// order is the palette order.
var namedColors = []struct {
	Hex  string
	Name string
}{
	{"#0747a6", "bold_blue"},
	{"#008da6", "bold_teal"},
	{"#006644", "bold_green"},
	{"#ff991f", "bold_orange"},
	{"#bf2600", "bold_red"},
	{"#403294", "bold_purple"},
	{"#97a0af", "gray"},
	{"#4c9aff", "blue"},
	{"#00b8d9", "teal"},
	{"#36b37e", "green"},
	{"#ffc400", "yellow"},
	{"#ff5630", "red"},
	{"#6554c0", "purple"},
	{"#ffffff", "white"},
	{"#b3d4ff", "subtle_blue"},
	{"#b3f5ff", "subtle_teal"},
	{"#abf5d1", "subtle_green"},
	{"#fff0b3", "subtle_yellow"},
	{"#ffbdad", "subtle_red"},
	{"#eae6ff", "subtle_purple"},
}

// ColorName returns the palette name of a hex colour. Matching ignores case.
func ColorName(hex string) (string, bool) {
	hex = strings.ToLower(strings.TrimSpace(hex))
	for _, c := range namedColors {
		if c.Hex == hex {
			return c.Name, true
		}
	}
	return "", false
}

// ColorHex returns the hex value of a palette colour name.
func ColorHex(name string) (string, bool) {
	for _, c := range namedColors {
		if c.Name == name {
			return c.Hex, true
		}
	}
	return "", false
}
