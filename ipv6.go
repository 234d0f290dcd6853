package urlparser

import (
	"errors"
	"strconv"
	"strings"
)

var errIPv6 = errors.New("invalid IPv6 address")

// parseIPv6 parses the contents of an IPv6 literal (without the surrounding
// brackets) into 8 16-bit pieces, per spec.md §4.7.
func parseIPv6(input string) (pieces [8]uint16, err error) {
	i := 0
	pieceIndex := 0
	compress := -1

	if i < len(input) && input[i] == ':' {
		if i+1 >= len(input) || input[i+1] != ':' {
			return pieces, errIPv6
		}
		i += 2
		pieceIndex++
		compress = pieceIndex
	}

	for i < len(input) {
		if pieceIndex == 8 {
			return pieces, errIPv6
		}
		if input[i] == ':' {
			if compress != -1 {
				return pieces, errIPv6
			}
			i++
			pieceIndex++
			compress = pieceIndex
			continue
		}

		start := i
		value := 0
		length := 0
		for i < len(input) && length < 4 && isASCIIHexDigit(input[i]) {
			d, _ := decodeHex(input[i])
			value = value*16 + int(d)
			i++
			length++
		}

		if i < len(input) && input[i] == '.' {
			// Trailing dotted-quad: four decimal octets folded into the
			// last two 16-bit pieces.
			if length == 0 {
				return pieces, errIPv6
			}
			i = start
			if pieceIndex > 6 {
				return pieces, errIPv6
			}
			// The hex pre-scan above may have consumed this octet's digits
			// as a hex value (e.g. "192" read as 0x192); restart the
			// accumulator from 0 for the decimal reinterpretation below.
			value = 0
			numbersSeen := 0
			for i < len(input) {
				if numbersSeen > 0 {
					if input[i] == '.' && numbersSeen < 4 {
						i++
					} else {
						return pieces, errIPv6
					}
				}
				if i >= len(input) || !isASCIIDigit(input[i]) {
					return pieces, errIPv6
				}
				numStart := i
				for i < len(input) && isASCIIDigit(input[i]) {
					i++
				}
				numStr := input[numStart:i]
				if len(numStr) > 3 {
					return pieces, errIPv6
				}
				if len(numStr) > 1 && numStr[0] == '0' {
					return pieces, errIPv6
				}
				n, convErr := strconv.Atoi(numStr)
				if convErr != nil || n > 255 {
					return pieces, errIPv6
				}
				value = value*0x100 + n
				numbersSeen++
				if numbersSeen == 2 || numbersSeen == 4 {
					pieces[pieceIndex] = uint16(value)
					pieceIndex++
					value = 0
				}
			}
			// The scan above only stops at EOF (matching the reference
			// algorithm's "while c is not EOF"); trailing bytes after a
			// completed quad already failed inside it. This check rejects
			// input that ends before all four numbers were read.
			if numbersSeen != 4 {
				return pieces, errIPv6
			}
			break
		}

		if i < len(input) && input[i] == ':' {
			i++
			if i >= len(input) {
				return pieces, errIPv6
			}
		} else if i < len(input) {
			return pieces, errIPv6
		}
		pieces[pieceIndex] = uint16(value)
		pieceIndex++
	}

	if compress != -1 {
		swaps := pieceIndex - compress
		dst := 7
		for dst != 0 && swaps > 0 {
			src := compress + swaps - 1
			pieces[dst], pieces[src] = pieces[src], pieces[dst]
			dst--
			swaps--
		}
	} else if pieceIndex != 8 {
		return pieces, errIPv6
	}

	return pieces, nil
}

// serializeIPv6 canonicalizes pieces per spec.md §4.7: lowercase hex, no
// leading zeros per group, and the longest run of two or more consecutive
// zero groups (earliest on ties) compressed to "::".
func serializeIPv6(pieces [8]uint16) string {
	compressStart, compressLen := longestZeroRun(pieces)
	compress := -1
	if compressLen >= 2 {
		compress = compressStart
	}

	var b strings.Builder
	b.WriteByte('[')
	ignore0 := false
	for i := 0; i < 8; i++ {
		if ignore0 && pieces[i] == 0 {
			continue
		}
		if ignore0 {
			ignore0 = false
		}
		if compress == i {
			if i == 0 {
				b.WriteByte(':')
			}
			b.WriteByte(':')
			ignore0 = true
			continue
		}
		b.WriteString(strconv.FormatUint(uint64(pieces[i]), 16))
		if i != 7 {
			b.WriteByte(':')
		}
	}
	b.WriteByte(']')
	return b.String()
}

// longestZeroRun finds the earliest, longest run of consecutive zero
// pieces, returning its start index and length (0 if no run of length >= 1
// exists, in which case compression does not apply since length < 2).
func longestZeroRun(pieces [8]uint16) (start, length int) {
	bestStart, bestLen := -1, 0
	curStart, curLen := -1, 0
	for i := 0; i < 8; i++ {
		if pieces[i] == 0 {
			if curStart == -1 {
				curStart = i
			}
			curLen++
		} else {
			if curLen > bestLen {
				bestStart, bestLen = curStart, curLen
			}
			curStart, curLen = -1, 0
		}
	}
	if curLen > bestLen {
		bestStart, bestLen = curStart, curLen
	}
	return bestStart, bestLen
}
