package urlparser

import "github.com/bits-and-blooms/bitset"

// codePointSet is a byte-indexed membership table for one of the
// percent-encode sets or forbidden-code-point sets of spec.md §4.2. The
// bitset carries per-byte membership for 0-127 only; for anything above
// U+007E, contains and containsByte answer from matchNonASCII instead, which
// is true for all six percent-encode sets (each matches every code point
// above U+007E) and false for the two forbidden-code-point sets.
type codePointSet struct {
	bits          *bitset.BitSet
	matchNonASCII bool
}

func newCodePointSet(matchNonASCII bool, members ...byte) *codePointSet {
	s := &codePointSet{bits: bitset.New(128), matchNonASCII: matchNonASCII}
	for _, b := range members {
		s.bits.Set(uint(b))
	}
	return s
}

// contains reports whether code point r is a member of the set. Non-ASCII
// code points are members iff the set was built with matchNonASCII (every
// percent-encode set in spec.md §4.2 is built on top of the C0 set, which
// matches all code points above U+007E).
func (s *codePointSet) contains(r rune) bool {
	if r < 0 || r > 0x7E {
		return s.matchNonASCII
	}
	return s.bits.Test(uint(r))
}

// containsByte is the byte form of contains, used by percentEncode for every
// percent-encode set and by host.go for the forbidden-host and
// forbidden-domain sets. A byte above 0x7E (including each byte of a
// multi-byte UTF-8 sequence) is a member iff the set has matchNonASCII.
func (s *codePointSet) containsByte(b byte) bool {
	if b > 0x7E {
		return s.matchNonASCII
	}
	return s.bits.Test(uint(b))
}

func union(base *codePointSet, extra ...byte) *codePointSet {
	s := &codePointSet{bits: base.bits.Clone(), matchNonASCII: base.matchNonASCII}
	for _, b := range extra {
		s.bits.Set(uint(b))
	}
	return s
}

var (
	// c0ControlPercentEncodeSet: C0 controls and code points > U+007E.
	c0ControlPercentEncodeSet = func() *codePointSet {
		s := newCodePointSet(true)
		for b := byte(0); b <= 0x1F; b++ {
			s.bits.Set(uint(b))
		}
		s.bits.Set(0x7F)
		return s
	}()

	// fragmentPercentEncodeSet: C0 set ∪ {SP, '"', '<', '>', '`'}.
	fragmentPercentEncodeSet = union(c0ControlPercentEncodeSet, ' ', '"', '<', '>', '`')

	// queryPercentEncodeSet: C0 set ∪ {SP, '"', '#', '<', '>'}.
	queryPercentEncodeSet = union(c0ControlPercentEncodeSet, ' ', '"', '#', '<', '>')

	// specialQueryPercentEncodeSet: query set ∪ {'\''}.
	specialQueryPercentEncodeSet = union(queryPercentEncodeSet, '\'')

	// pathPercentEncodeSet: query set ∪ {'?', '`', '{', '}'}.
	pathPercentEncodeSet = union(queryPercentEncodeSet, '?', '`', '{', '}')

	// userinfoPercentEncodeSet: path set ∪ {'/', ':', ';', '=', '@', '[', '\\', ']', '^', '|'}.
	userinfoPercentEncodeSet = union(pathPercentEncodeSet,
		'/', ':', ';', '=', '@', '[', '\\', ']', '^', '|')

	// forbiddenHostCodePoints: NUL TAB LF CR SP # / : < > ? @ [ \ ] ^ |
	forbiddenHostCodePoints = newCodePointSet(false,
		0x00, '\t', '\n', '\r', ' ', '#', '/', ':', '<', '>', '?', '@',
		'[', '\\', ']', '^', '|')

	// forbiddenDomainCodePoints: forbidden host ∪ C0 controls (U+0000-U+001F) ∪ '%'.
	forbiddenDomainCodePoints = func() *codePointSet {
		s := &codePointSet{bits: forbiddenHostCodePoints.bits.Clone()}
		for b := byte(0); b <= 0x1F; b++ {
			s.bits.Set(uint(b))
		}
		s.bits.Set('%')
		return s
	}()
)
