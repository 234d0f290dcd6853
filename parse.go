package urlparser

import (
	"strconv"
	"strings"
)

// state names the URL parser states of spec.md §4.8.
type state int

const (
	stateSchemeStart state = iota
	stateScheme
	stateNoScheme
	stateSpecialRelativeOrAuthority
	statePathOrAuthority
	stateRelative
	stateRelativeSlash
	stateSpecialAuthoritySlashes
	stateSpecialAuthorityIgnoreSlashes
	stateAuthority
	stateHost
	stateHostname
	statePort
	stateFile
	stateFileSlash
	stateFileHost
	statePathStart
	statePath
	stateOpaquePath
	stateQuery
	stateFragment
)

// parserURL is the mutable record the state machine builds up. Its final
// field values become the immutable URL returned to the caller.
type parserURL struct {
	schemeType SchemeType
	scheme     string

	username string
	password string

	host    *Host
	port    *uint16

	hasOpaquePath bool
	opaquePath    string
	path          []string

	query    *string
	fragment *string
}

func (p *parserURL) cannotHaveCredentialsOrPort() bool {
	if p.schemeType == SchemeFile {
		return true
	}
	return p.host == nil || p.host.isEmpty()
}

func (p *parserURL) isSpecial() bool { return p.schemeType.isSpecial() }

func (p *parserURL) toURL() *URL {
	return &URL{
		schemeType:    p.schemeType,
		scheme:        p.scheme,
		username:      p.username,
		password:      p.password,
		host:          p.host,
		port:          p.port,
		hasOpaquePath: p.hasOpaquePath,
		opaquePath:    p.opaquePath,
		path:          append([]string(nil), p.path...),
		query:         p.query,
		fragment:      p.fragment,
	}
}

func fromURL(u *URL) *parserURL {
	if u == nil {
		return nil
	}
	p := &parserURL{
		schemeType:    u.schemeType,
		scheme:        u.scheme,
		username:      u.username,
		password:      u.password,
		hasOpaquePath: u.hasOpaquePath,
		opaquePath:    u.opaquePath,
		path:          append([]string(nil), u.path...),
	}
	if u.host != nil {
		h := *u.host
		p.host = &h
	}
	if u.port != nil {
		port := *u.port
		p.port = &port
	}
	if u.query != nil {
		q := *u.query
		p.query = &q
	}
	if u.fragment != nil {
		f := *u.fragment
		p.fragment = &f
	}
	return p
}

// machine carries the per-parse mutable scanning state: the input buffer,
// the byte pointer, the accumulation buffer, and the configuration
// (base URL, validation sink, length guard).
type machine struct {
	input string
	base  *parserURL
	cfg   parserConfig

	url   *parserURL
	atObj bool // '@' seen in Authority state

	stateOverride state
	hasOverride   bool
}

func (m *machine) emit(sig Signal) { m.cfg.sink.emit(sig) }

// parseURL is the top-level entry point implementing spec.md §4.8's
// pre-processing plus the state machine starting at Scheme Start.
func parseURL(raw string, base *URL, cfg parserConfig) (*URL, error) {
	p, err := runStateMachine(raw, fromURL(base), cfg, stateSchemeStart, nil)
	if err != nil {
		return nil, err
	}
	return p.toURL(), nil
}

// runStateMachine drives the parser. When ctx is non-nil, it is the record
// being mutated by a setter re-entering at overrideState (spec.md §4.9);
// otherwise a fresh record is built starting at overrideState (always
// stateSchemeStart for a top-level Parse).
func runStateMachine(raw string, base *parserURL, cfg parserConfig, overrideState state, ctx *parserURL) (*parserURL, error) {
	if len(raw) > cfg.maxInputLength {
		return nil, newError("Parse", raw, InputTooLong, nil)
	}

	m := &machine{cfg: cfg, base: base}
	m.hasOverride = ctx != nil
	if ctx != nil {
		m.url = ctx
	} else {
		m.url = &parserURL{}
	}

	input := raw
	// The leading/trailing C0-or-space trim only applies to a fresh parse
	// ("if url is not given" in the reference algorithm); the tab/newline
	// strip below is unconditional and also runs for a setter's re-entry.
	if !m.hasOverride {
		trimmed := strings.TrimFunc(input, func(r rune) bool {
			return r < 0x80 && isC0OrSpace(byte(r))
		})
		if trimmed != input {
			m.emit(SignalLeadingOrTrailingC0OrSpace)
		}
		input = trimmed
	}

	var b strings.Builder
	stripped := false
	b.Grow(len(input))
	for i := 0; i < len(input); i++ {
		if isASCIITabOrNewline(input[i]) {
			stripped = true
			continue
		}
		b.WriteByte(input[i])
	}
	if stripped {
		m.emit(SignalTabOrNewlineStripped)
		input = b.String()
	}
	m.input = input

	st := stateSchemeStart
	if m.hasOverride {
		st = overrideState
	}

	buf := strings.Builder{}
	pointer := 0
	atSignSeen := false
	passwordTokenSeen := false
	insideBrackets := false

	for {
		c, size := byteOrEOF(m.input, pointer)
		switch st {

		case stateSchemeStart:
			if c != 0 && isASCIIAlpha(c) {
				buf.WriteByte(lower(c))
				st = stateScheme
				pointer += size
				continue
			}
			if !m.hasOverride {
				if c == 0 && m.base == nil {
					return nil, newError("Parse", raw, SchemeMissing, nil)
				}
				st = stateNoScheme
				continue
			}
			return nil, newError("Parse", raw, SchemeMissing, nil)

		case stateScheme:
			if c != 0 && (isASCIIAlphanumeric(c) || c == '+' || c == '-' || c == '.') {
				buf.WriteByte(lower(c))
				pointer += size
				continue
			}
			if c == ':' {
				schemeStr := buf.String()
				buf.Reset()
				if err := m.applyScheme(schemeStr); err != nil {
					return nil, err
				}
				pointer += size
				if m.hasOverride {
					if portIsDefault(m.url) {
						m.url.port = nil
					}
					if m.url.schemeType == SchemeFile {
						st = stateFile
						continue
					}
					return m.url, nil
				}
				switch {
				case m.url.schemeType == SchemeFile:
					if !strings.HasPrefix(m.input[pointer:], "//") {
						m.emit(SignalSpecialSchemeMissingSlashes)
					}
					st = stateFile
				case m.url.isSpecial() && m.base != nil && m.base.schemeType == m.url.schemeType:
					st = stateSpecialRelativeOrAuthority
				case m.url.isSpecial():
					st = stateSpecialAuthoritySlashes
				case strings.HasPrefix(m.input[pointer:], "/"):
					st = statePathOrAuthority
					pointer += 1
				default:
					m.url.hasOpaquePath = true
					m.url.path = nil
					st = stateOpaquePath
				}
				continue
			}
			if m.hasOverride {
				return nil, newError("SetScheme", raw, SchemeInvalid, nil)
			}
			buf.Reset()
			st = stateNoScheme
			pointer = 0
			continue

		case stateNoScheme:
			if m.base == nil || (m.base.hasOpaquePath && c != '#') {
				return nil, newError("Parse", raw, RelativeWithoutBase, nil)
			}
			if m.base.hasOpaquePath && c == '#' {
				m.url.schemeType = m.base.schemeType
				m.url.scheme = m.base.scheme
				m.url.hasOpaquePath = true
				m.url.opaquePath = m.base.opaquePath
				m.url.query = copyStr(m.base.query)
				m.url.fragment = nil
				st = stateFragment
				pointer += size
				continue
			}
			if m.base.schemeType != SchemeFile {
				st = stateRelative
				continue
			}
			st = stateFile
			continue

		case stateRelative:
			m.url.schemeType = m.base.schemeType
			m.url.scheme = m.base.scheme
			switch c {
			case 0:
				m.url.host = copyHost(m.base.host)
				m.url.port = copyPort(m.base.port)
				m.url.hasOpaquePath = m.base.hasOpaquePath
				m.url.opaquePath = m.base.opaquePath
				m.url.path = append([]string(nil), m.base.path...)
				m.url.query = copyStr(m.base.query)
				return m.url, nil
			case '/':
				st = stateRelativeSlash
				pointer += size
			case '?':
				m.url.host = copyHost(m.base.host)
				m.url.port = copyPort(m.base.port)
				m.url.path = append([]string(nil), m.base.path...)
				m.url.hasOpaquePath = m.base.hasOpaquePath
				m.url.opaquePath = m.base.opaquePath
				empty := ""
				m.url.query = &empty
				st = stateQuery
				pointer += size
			case '#':
				m.url.host = copyHost(m.base.host)
				m.url.port = copyPort(m.base.port)
				m.url.path = append([]string(nil), m.base.path...)
				m.url.hasOpaquePath = m.base.hasOpaquePath
				m.url.opaquePath = m.base.opaquePath
				m.url.query = copyStr(m.base.query)
				empty := ""
				m.url.fragment = &empty
				st = stateFragment
				pointer += size
			default:
				if m.url.isSpecial() && c == '\\' {
					m.emit(SignalBackslashAsSlash)
					st = stateRelativeSlash
					pointer += size
					continue
				}
				m.url.host = copyHost(m.base.host)
				m.url.port = copyPort(m.base.port)
				m.url.path = append([]string(nil), m.base.path...)
				if len(m.url.path) > 0 {
					m.url.path = m.url.path[:len(m.url.path)-1]
				}
				st = statePath
				continue
			}

		case stateRelativeSlash:
			switch {
			case m.url.isSpecial() && (c == '/' || c == '\\'):
				if c == '\\' {
					m.emit(SignalBackslashAsSlash)
				}
				st = stateSpecialAuthoritySlashes
				pointer += size
			case c == '/':
				st = stateAuthority
				pointer += size
			default:
				m.url.host = copyHost(m.base.host)
				m.url.port = copyPort(m.base.port)
				st = statePath
			}

		case stateSpecialRelativeOrAuthority:
			if c == '/' && byteAt(m.input, pointer+1) == '/' {
				st = stateSpecialAuthoritySlashes
				pointer += 2
				continue
			}
			m.emit(SignalSpecialSchemeMissingSlashes)
			st = stateRelative
			continue

		case statePathOrAuthority:
			if c == '/' {
				st = stateAuthority
				pointer += size
				continue
			}
			st = statePath

		case stateSpecialAuthoritySlashes:
			if c == '/' && byteAt(m.input, pointer+1) == '/' {
				pointer += 2
				st = stateSpecialAuthorityIgnoreSlashes
				continue
			}
			m.emit(SignalSpecialSchemeMissingSlashes)
			st = stateSpecialAuthorityIgnoreSlashes

		case stateSpecialAuthorityIgnoreSlashes:
			if c == '/' || c == '\\' {
				if c == '\\' {
					m.emit(SignalBackslashAsSlash)
				}
				pointer += size
				continue
			}
			st = stateAuthority

		case stateAuthority:
			if c == '@' {
				current := buf.String()
				buf.Reset()
				if atSignSeen {
					current = "%40" + current
				}
				atSignSeen = true
				for i := 0; i < len(current); {
					_, chunkSize, ok := scalarAt(current, i)
					if !ok || chunkSize == 0 {
						chunkSize = 1
					}
					chunk := current[i : i+chunkSize]
					if chunk == ":" && !passwordTokenSeen {
						passwordTokenSeen = true
						i += chunkSize
						continue
					}
					enc := percentEncode(chunk, userinfoPercentEncodeSet)
					if passwordTokenSeen {
						m.url.password += enc
					} else {
						m.url.username += enc
					}
					i += chunkSize
				}
				pointer += size
				continue
			}
			if c == 0 || c == '/' || c == '?' || c == '#' || (m.url.isSpecial() && c == '\\') {
				if atSignSeen && buf.Len() == 0 {
					return nil, newError("Parse", raw, HostMissing, nil)
				}
				pointer -= buf.Len()
				buf.Reset()
				st = stateHost
				continue
			}
			writeChunk(&buf, m.input, pointer, size)
			pointer += size

		case stateHost, stateHostname:
			if m.hasOverride && m.url.schemeType == SchemeFile {
				st = stateFileHost
				continue
			}
			if c == ':' && !insideBrackets {
				if buf.Len() == 0 {
					return nil, newError("Parse", raw, HostMissing, nil)
				}
				h, err := parseHost(buf.String(), !m.url.isSpecial())
				if err != nil {
					return nil, newError("Parse", raw, HostInvalid, err)
				}
				buf.Reset()
				m.url.host = &h
				if m.hasOverride && st == stateHostname {
					return m.url, nil
				}
				st = statePort
				pointer += size
				continue
			}
			if c == 0 || c == '/' || c == '?' || c == '#' || (m.url.isSpecial() && c == '\\') {
				if m.url.isSpecial() && buf.Len() == 0 {
					return nil, newError("Parse", raw, HostMissing, nil)
				}
				if m.hasOverride && buf.Len() == 0 && m.url.cannotHaveCredentialsOrPort() {
					return m.url, nil
				}
				h, err := parseHost(buf.String(), !m.url.isSpecial())
				if err != nil {
					return nil, newError("Parse", raw, HostInvalid, err)
				}
				buf.Reset()
				m.url.host = &h
				if m.hasOverride {
					return m.url, nil
				}
				st = statePathStart
				continue
			}
			if c == '[' {
				insideBrackets = true
			}
			if c == ']' {
				insideBrackets = false
			}
			writeChunk(&buf, m.input, pointer, size)
			pointer += size

		case statePort:
			if c != 0 && isASCIIDigit(c) {
				buf.WriteByte(c)
				pointer += size
				continue
			}
			if c == 0 || c == '/' || c == '?' || c == '#' || (m.url.isSpecial() && c == '\\') || m.hasOverride {
				if buf.Len() > 0 {
					portStr := buf.String()
					n, err := strconv.Atoi(portStr)
					if err != nil || n > 65535 {
						return nil, newError("Parse", raw, PortOverflow, nil)
					}
					buf.Reset()
					port16 := uint16(n)
					if def, ok := defaultPortFor(m.url.schemeType); ok && def == port16 {
						m.url.port = nil
					} else {
						m.url.port = &port16
					}
				}
				if m.hasOverride {
					return m.url, nil
				}
				st = statePathStart
				continue
			}
			return nil, newError("Parse", raw, PortInvalid, nil)

		case stateFile:
			m.url.scheme = "file"
			m.url.schemeType = SchemeFile
			m.url.host = &Host{Kind: HostEmpty}
			switch c {
			case '/', '\\':
				if c == '\\' {
					m.emit(SignalBackslashAsSlash)
				}
				st = stateFileSlash
				pointer += size
			default:
				if m.base != nil && m.base.schemeType == SchemeFile {
					m.url.host = copyHost(m.base.host)
					m.url.path = append([]string(nil), m.base.path...)
					m.url.query = copyStr(m.base.query)
					switch c {
					case '?':
						empty := ""
						m.url.query = &empty
						st = stateQuery
						pointer += size
					case '#':
						empty := ""
						m.url.fragment = &empty
						st = stateFragment
						pointer += size
					case 0:
						return m.url, nil
					default:
						m.url.query = nil
						rest := m.input[pointer:]
						if !startsWithWindowsDriveLetter(rest) {
							m.url.path = shortenPath(true, m.url.path)
						} else {
							m.url.path = nil
						}
						st = statePath
						continue
					}
				} else {
					st = statePath
					continue
				}
			}

		case stateFileSlash:
			if c == '/' || c == '\\' {
				if c == '\\' {
					m.emit(SignalBackslashAsSlash)
				}
				st = stateFileHost
				pointer += size
				continue
			}
			if m.base != nil && m.base.schemeType == SchemeFile {
				bh := copyHost(m.base.host)
				m.url.host = bh
				if rest := m.input[pointer:]; !startsWithWindowsDriveLetter(rest) && len(m.base.path) > 0 && isNormalizedWindowsDriveLetter(m.base.path[0]) {
					m.url.path = append([]string{m.base.path[0]}, m.url.path...)
				}
			}
			st = statePathStart

		case stateFileHost:
			if c == 0 || c == '/' || c == '\\' || c == '?' || c == '#' {
				word := buf.String()
				if isWindowsDriveLetter(word) {
					m.emit(SignalSpecialSchemeMissingSlashes)
					st = statePath
					continue
				}
				if word == "" {
					m.url.host = &Host{Kind: HostEmpty}
					if m.hasOverride {
						return m.url, nil
					}
					st = statePathStart
					continue
				}
				h, err := parseHost(word, false)
				if err != nil {
					return nil, newError("Parse", raw, HostInvalid, err)
				}
				if h.Kind == HostDomain && h.Domain == "localhost" {
					h = Host{Kind: HostEmpty}
				}
				buf.Reset()
				m.url.host = &h
				if m.hasOverride {
					return m.url, nil
				}
				st = statePathStart
				continue
			}
			writeChunk(&buf, m.input, pointer, size)
			pointer += size

		case statePathStart:
			if m.url.isSpecial() {
				if c == '\\' {
					m.emit(SignalBackslashAsSlash)
				}
				st = statePath
				if c == '/' || c == '\\' {
					pointer += size
				}
				continue
			}
			if !m.hasOverride && c == '?' {
				empty := ""
				m.url.query = &empty
				st = stateQuery
				pointer += size
				continue
			}
			if !m.hasOverride && c == '#' {
				empty := ""
				m.url.fragment = &empty
				st = stateFragment
				pointer += size
				continue
			}
			if c != 0 {
				st = statePath
				if c == '/' {
					pointer += size
				}
				continue
			}
			st = statePath

		case statePath:
			atEnd := c == 0 || (!m.hasOverride && (c == '?' || c == '#'))
			isSlash := c == '/' || (m.url.isSpecial() && c == '\\')
			if atEnd || isSlash {
				if m.url.isSpecial() && c == '\\' {
					m.emit(SignalBackslashAsSlash)
				}
				segment := buf.String()
				buf.Reset()
				if isDoubleDotPathSegment(segment) {
					m.url.path = shortenPath(m.url.schemeType == SchemeFile, m.url.path)
					if !isSlash {
						m.url.path = append(m.url.path, "")
					}
				} else if isSingleDotPathSegment(segment) {
					if !isSlash {
						m.url.path = append(m.url.path, "")
					}
				} else {
					if m.url.schemeType == SchemeFile && len(m.url.path) == 0 && isWindowsDriveLetter(segment) {
						segment = string(segment[0]) + ":"
					}
					m.url.path = append(m.url.path, segment)
				}
				if atEnd {
					if c == '?' {
						empty := ""
						m.url.query = &empty
						st = stateQuery
						pointer += size
					} else if c == '#' {
						empty := ""
						m.url.fragment = &empty
						st = stateFragment
						pointer += size
					} else {
						return m.url, nil
					}
					continue
				}
				pointer += size
				continue
			}
			buf.WriteString(percentEncodeRune(m.input, pointer, size, pathPercentEncodeSet, m))
			pointer += size

		case stateOpaquePath:
			switch c {
			case '?':
				empty := ""
				m.url.query = &empty
				st = stateQuery
				pointer += size
			case '#':
				empty := ""
				m.url.fragment = &empty
				st = stateFragment
				pointer += size
			case 0:
				return m.url, nil
			default:
				if c == '\t' || c == '\n' || c == '\r' {
					pointer += size
					continue
				}
				m.url.opaquePath += percentEncodeRune(m.input, pointer, size, c0ControlPercentEncodeSet, m)
				pointer += size
			}

		case stateQuery:
			if c == 0 || (!m.hasOverride && c == '#') {
				set := queryPercentEncodeSet
				if m.url.isSpecial() {
					set = specialQueryPercentEncodeSet
				}
				*m.url.query += percentEncode(buf.String(), set)
				buf.Reset()
				if c == '#' {
					empty := ""
					m.url.fragment = &empty
					st = stateFragment
					pointer += size
					continue
				}
				return m.url, nil
			}
			writeChunk(&buf, m.input, pointer, size)
			pointer += size

		case stateFragment:
			if c == 0 {
				*m.url.fragment += percentEncode(buf.String(), fragmentPercentEncodeSet)
				return m.url, nil
			}
			writeChunk(&buf, m.input, pointer, size)
			pointer += size
		}
	}
}

// byteOrEOF returns the byte at pointer and its UTF-8 encoded length (1 for
// ASCII), or (0, 0) at end of input. The sentinel 0 is safe because NUL is
// itself a forbidden code point everywhere the state machine branches on
// end-of-input, and is stripped nowhere else as a real input byte (NUL
// appearing mid-input is handled like any other non-terminator byte by the
// default branches, which never special-case c==0 themselves — only the
// explicit end-of-input checks do, and those are only reached when pointer
// has actually walked past len(input)).
func byteOrEOF(s string, pointer int) (byte, int) {
	if pointer >= len(s) {
		return 0, 0
	}
	c := s[pointer]
	if c < utf8RuneSelf {
		return c, 1
	}
	_, size, ok := scalarAt(s, pointer)
	if !ok {
		return c, 1
	}
	return c, size
}

const utf8RuneSelf = 0x80

// writeChunk appends the full (possibly multi-byte) code point encoded at
// input[pointer:pointer+size] to buf, keeping buf's byte length in lockstep
// with how far pointer has advanced -- required so that later rewinds
// (e.g. Authority state backing up into Host state) compute the right
// offset purely from buf.Len().
func writeChunk(buf *strings.Builder, input string, pointer, size int) {
	buf.WriteString(input[pointer : pointer+size])
}

func byteAt(s string, i int) byte {
	if i < 0 || i >= len(s) {
		return 0
	}
	return s[i]
}

func lower(c byte) byte {
	if 'A' <= c && c <= 'Z' {
		return c + ('a' - 'A')
	}
	return c
}

func copyStr(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func copyHost(h *Host) *Host {
	if h == nil {
		return nil
	}
	v := *h
	return &v
}

func copyPort(p *uint16) *uint16 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func portIsDefault(u *parserURL) bool {
	if u.port == nil {
		return false
	}
	def, ok := defaultPortFor(u.schemeType)
	return ok && def == *u.port
}

// percentEncodeRune percent-encodes the code point at input[pointer:pointer+size]
// against set, emitting a validation signal when the code point is not a
// URL code point and is not '%' (spec.md §4.1/§7).
func percentEncodeRune(input string, pointer, size int, set *codePointSet, m *machine) string {
	chunk := input[pointer : pointer+size]
	if size == 1 {
		r := rune(chunk[0])
		if r != '%' && !isURLCodePoint(r) {
			m.emit(SignalNonURLCodePoint)
		}
		if r == '%' {
			if !isNonCanonicalPercent(input, pointer) {
				return chunk
			}
			m.emit(SignalNonCanonicalPercentTriplet)
		}
		return percentEncode(chunk, set)
	}
	return percentEncode(chunk, set)
}

// isNonCanonicalPercent reports whether the '%' at input[i] is not followed
// by two valid hex digits.
func isNonCanonicalPercent(input string, i int) bool {
	if i+2 >= len(input) {
		return true
	}
	return !isASCIIHexDigit(input[i+1]) || !isASCIIHexDigit(input[i+2])
}

// applyScheme classifies schemeStr and applies spec.md §4.9's setter
// override rules when the machine is re-entering via a setter (SetScheme).
func (m *machine) applyScheme(schemeStr string) error {
	typ, lowerScheme, _, _ := classifyScheme(schemeStr)

	if m.hasOverride {
		wasSpecial := m.url.isSpecial()
		willBeSpecial := typ.isSpecial()
		if wasSpecial != willBeSpecial {
			return newError("SetScheme", schemeStr, SchemeInvalid, nil)
		}
		if typ == SchemeFile && (m.url.username != "" || m.url.password != "" || m.url.port != nil) {
			return newError("SetScheme", schemeStr, SchemeInvalid, nil)
		}
		if m.url.schemeType == SchemeFile && (m.url.host == nil || m.url.host.isEmpty()) {
			return newError("SetScheme", schemeStr, SchemeInvalid, nil)
		}
	}

	m.url.schemeType = typ
	m.url.scheme = lowerScheme
	return nil
}
