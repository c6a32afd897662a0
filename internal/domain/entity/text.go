package entity

import "unicode/utf16"

// TextLength counts s in UTF-16 code units, the unit browser clients use
// for string length. Characters outside the BMP (most emoji) count as two;
// invalid UTF-8 bytes count as one each.
func TextLength(s string) int {
	n := 0
	for _, r := range s {
		if l := utf16.RuneLen(r); l > 0 {
			n += l
		} else {
			n++
		}
	}
	return n
}
