package urlparser

import (
	"strconv"
	"strings"
)

// Serialize implements spec.md §4.10's serializer, composed in the
// teacher's Normalize/ToNetURL style: one pass assembling scheme,
// authority, path, query and fragment from the record's already-canonical
// fields. No percent-encoding happens here -- every stored component was
// encoded once, during parsing or by a setter.
func (u *URL) Serialize() string {
	return u.serialize(false)
}

// SerializeExcludeFragment implements spec.md §4.10's fragment-less
// serialization, used by callers that need an origin-comparable or
// fragment-insensitive form (e.g. a referrer).
func (u *URL) SerializeExcludeFragment() string {
	return u.serialize(true)
}

func (u *URL) serialize(excludeFragment bool) string {
	var b strings.Builder
	b.WriteString(u.scheme)
	b.WriteByte(':')

	if u.host != nil {
		b.WriteString("//")
		if u.username != "" || u.password != "" {
			b.WriteString(u.username)
			if u.password != "" {
				b.WriteByte(':')
				b.WriteString(u.password)
			}
			b.WriteByte('@')
		}
		b.WriteString(u.host.String())
		if u.port != nil {
			b.WriteByte(':')
			b.WriteString(strconv.FormatUint(uint64(*u.port), 10))
		}
	} else if !u.hasOpaquePath && len(u.path) > 1 && u.path[0] == "" {
		// Without a host, a hierarchical path whose first segment is
		// empty would serialize as "//..." and be misread as an
		// authority on reparse; spec.md §8's round-trip law requires
		// guarding against that.
		b.WriteString("/.")
	}

	b.WriteString(u.serializePath())

	if u.query != nil {
		b.WriteByte('?')
		b.WriteString(*u.query)
	}
	if !excludeFragment && u.fragment != nil {
		b.WriteByte('#')
		b.WriteString(*u.fragment)
	}
	return b.String()
}

func (u *URL) serializePath() string {
	if u.hasOpaquePath {
		return u.opaquePath
	}
	var b strings.Builder
	for _, segment := range u.path {
		b.WriteByte('/')
		b.WriteString(segment)
	}
	return b.String()
}

// String satisfies fmt.Stringer, delegating to Serialize.
func (u *URL) String() string { return u.Serialize() }

// Origin implements the SPEC_FULL.md §3 origin supplement: the
// "scheme://host:port" tuple origin for special schemes other than file.
// The port is always written; when the URL has none, the scheme's default
// port is used.
// Other schemes (including file) have no serializable tuple origin; ok is
// false and the string is empty.
func (u *URL) Origin() (string, bool) {
	if !u.IsSpecial() || u.schemeType == SchemeFile {
		return "", false
	}
	h, _ := u.Host()
	p, hasPort := u.Port()
	if !hasPort {
		p, _ = defaultPortFor(u.schemeType)
	}
	var b strings.Builder
	b.WriteString(u.scheme)
	b.WriteString("://")
	b.WriteString(h.String())
	b.WriteByte(':')
	b.WriteString(strconv.FormatUint(uint64(p), 10))
	return b.String(), true
}
