package urlparser

// URL is the parsed, canonicalized URL record of spec.md §3. A URL value
// returned by Parse always satisfies the invariants of spec.md §3: there is
// no in-memory representation of an "invalid" URL — a failed parse returns
// a nil *URL and a non-nil error instead of a record with is_valid=false,
// which is the idiomatic Go rendering of spec.md's is_valid field (every
// example in the retrieval pack that parses a URL-shaped string reports
// failure via an error return, never a validity flag on the result).
//
// Setters (SetScheme, SetHost, ...) preserve these invariants: a setter
// either fully applies a validated change, or leaves the receiver entirely
// unchanged and reports false (spec.md §4.9).
type URL struct {
	schemeType SchemeType
	scheme     string // always set; canonical lowercase scheme text

	username string
	password string

	host *Host // nil: absent. non-nil HostEmpty: present and empty.
	port *uint16

	hasOpaquePath bool
	opaquePath    string
	path          []string

	query    *string
	fragment *string
}

// Scheme returns the URL's scheme, always lowercase.
func (u *URL) Scheme() string { return u.scheme }

// SchemeType returns the classified scheme type.
func (u *URL) SchemeType() SchemeType { return u.schemeType }

// IsSpecial reports whether the URL's scheme is one of the six special
// schemes.
func (u *URL) IsSpecial() bool { return u.schemeType.isSpecial() }

// Username returns the percent-encoded username, or "" if absent.
func (u *URL) Username() string { return u.username }

// Password returns the percent-encoded password, or "" if absent.
func (u *URL) Password() string { return u.password }

// Host returns the host record and whether a host is present at all
// (absent and empty are distinct per spec.md §3).
func (u *URL) Host() (Host, bool) {
	if u.host == nil {
		return Host{}, false
	}
	return *u.host, true
}

// Hostname returns the host's string form ("" if absent), optionally
// decoded back to Unicode for a domain host (SPEC_FULL.md §3's
// domain_to_unicode supplement).
func (u *URL) Hostname(unicode bool) string {
	if u.host == nil {
		return ""
	}
	if unicode && u.host.Kind == HostDomain {
		return ToUnicode(u.host.Domain)
	}
	return u.host.String()
}

// Port returns the URL's port and whether one is present (absent when
// equal to the scheme's default port, per spec.md §3).
func (u *URL) Port() (uint16, bool) {
	if u.port == nil {
		return 0, false
	}
	return *u.port, true
}

// HasOpaquePath reports whether Path is a single opaque string rather than
// a segment list (spec.md §3).
func (u *URL) HasOpaquePath() bool { return u.hasOpaquePath }

// OpaquePath returns the opaque path string; valid only when
// HasOpaquePath is true.
func (u *URL) OpaquePath() string { return u.opaquePath }

// PathSegments returns the hierarchical path's segments; valid only when
// HasOpaquePath is false. The returned slice is a copy.
func (u *URL) PathSegments() []string {
	out := make([]string, len(u.path))
	copy(out, u.path)
	return out
}

// Query returns the percent-encoded query and whether one is present (null
// vs "" per spec.md §9).
func (u *URL) Query() (string, bool) {
	if u.query == nil {
		return "", false
	}
	return *u.query, true
}

// Fragment returns the percent-encoded fragment and whether one is present.
func (u *URL) Fragment() (string, bool) {
	if u.fragment == nil {
		return "", false
	}
	return *u.fragment, true
}

// cannotHaveCredentialsOrPort implements spec.md §3's invariant test: true
// when the host is absent/empty or the scheme is file.
func (u *URL) cannotHaveCredentialsOrPort() bool {
	if u.schemeType == SchemeFile {
		return true
	}
	return u.host == nil || u.host.isEmpty()
}

// Clone returns an independent copy of u (spec.md §5's value semantics:
// copying produces an independent record).
func (u *URL) Clone() *URL {
	c := *u
	if u.host != nil {
		h := *u.host
		c.host = &h
	}
	if u.port != nil {
		p := *u.port
		c.port = &p
	}
	if u.query != nil {
		q := *u.query
		c.query = &q
	}
	if u.fragment != nil {
		f := *u.fragment
		c.fragment = &f
	}
	c.path = append([]string(nil), u.path...)
	return &c
}
