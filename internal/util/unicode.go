// Package util converts between UTF-16 offsets and code point indices.
package util

// utf16Width returns how many UTF-16 code units r occupies.
func utf16Width(r rune) int {
	if r > 0xFFFF {
		return 2
	}
	return 1
}

// UTF16Len returns the length of text measured in UTF-16 code units.
func UTF16Len(text string) int {
	count := 0
	for _, r := range text {
		count += utf16Width(r)
	}
	return count
}

// IndexOf translates a UTF-16 code unit offset into a code point index of text.
func IndexOf(text string, utf16Offset int) int {
	return CodepointIndex([]rune(text), utf16Offset)
}

// CodepointIndex translates a UTF-16 code unit offset into an index of runes.
//
// The returned index is the one right after the code point at which the
// running UTF-16 count first reaches utf16Offset. An offset that lands inside
// a surrogate pair therefore resolves to the code point after the pair.
// Negative offsets clamp to 0, offsets past the end clamp to len(runes).
func CodepointIndex(runes []rune, utf16Offset int) int {
	if utf16Offset <= 0 {
		return 0
	}
	units := 0
	for i, r := range runes {
		units += utf16Width(r)
		if units >= utf16Offset {
			return i + 1
		}
	}
	return len(runes)
}
