package urlparser

import "strings"

// percentEncode copies bytes of input not in set verbatim and emits an
// uppercase %HH triplet for every byte that is in set, and for every byte
// of a multi-byte UTF-8 sequence whose leading byte is in set (spec.md
// §4.3). '%' itself is never a member of any set defined in spec.md §4.2,
// so an input byte sequence already containing percent-triplets passes
// through unchanged (spec.md §9 "percent-encoding of already-encoded
// input").
func percentEncode(input string, set *codePointSet) string {
	var needsEscaping bool
	for i := 0; i < len(input); i++ {
		if set.containsByte(input[i]) {
			needsEscaping = true
			break
		}
	}
	if !needsEscaping {
		return input
	}

	var b strings.Builder
	b.Grow(len(input) + 8)
	for i := 0; i < len(input); i++ {
		c := input[i]
		if set.containsByte(c) {
			b.WriteByte('%')
			b.WriteByte(upperhex[c>>4])
			b.WriteByte(upperhex[c&0xF])
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}

// percentDecode scans input for %HH triplets and decodes them to raw
// bytes; any other byte, including a lone '%' or a '%' followed by
// non-hex digits, is copied verbatim. percentDecode never fails.
func percentDecode(input string) string {
	if !strings.ContainsRune(input, '%') {
		return input
	}
	var b strings.Builder
	b.Grow(len(input))
	for i := 0; i < len(input); i++ {
		c := input[i]
		if c == '%' && i+2 < len(input) {
			if v, ok := decodeHexPair(input[i+1], input[i+2]); ok {
				b.WriteByte(v)
				i += 2
				continue
			}
		}
		b.WriteByte(c)
	}
	return b.String()
}

