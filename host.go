package urlparser

import (
	"errors"
	"strings"

	"golang.org/x/net/idna"
)

var (
	errHostMissing = errors.New("host missing")
	errHostInvalid = errors.New("invalid host")
)

// HostKind tags the variant carried by a Host value (spec.md §3).
type HostKind int

const (
	HostEmpty HostKind = iota
	HostDomain
	HostIPv4
	HostIPv6
	HostOpaque
)

// Host is the tagged-variant host record of spec.md §3. The zero Host is
// HostEmpty, distinct from an absent host (callers track absence with
// *Host; see URL.host in url.go).
type Host struct {
	Kind    HostKind
	Domain  string    // HostDomain: ASCII (post-IDNA) domain
	IPv4    uint32     // HostIPv4
	IPv6    [8]uint16 // HostIPv6
	Opaque  string    // HostOpaque: percent-encoded opaque host string
}

// String serializes h per spec.md §4.10/§4.7: IPv6 in bracketed canonical
// form, IPv4 as dotted decimal, domain/opaque/empty as their stored string.
func (h Host) String() string {
	switch h.Kind {
	case HostDomain:
		return h.Domain
	case HostIPv4:
		return serializeIPv4(h.IPv4)
	case HostIPv6:
		return serializeIPv6(h.IPv6)
	case HostOpaque:
		return h.Opaque
	default:
		return ""
	}
}

// isEmpty reports whether h is the empty host (a domain/opaque host whose
// string form has zero length), distinct from a nil *Host (absent host).
func (h Host) isEmpty() bool {
	switch h.Kind {
	case HostEmpty:
		return true
	case HostDomain, HostOpaque:
		return h.String() == ""
	}
	return false
}

// idnaProfile implements spec.md §4.5's domain-to-ASCII: IDNA2008/UTS46,
// transitional processing off, bidi and joiner validation on, STD3 ASCII
// rules off, DNS length verification off (this is a URL parser, not a
// resolver; overlong labels are a DNS concern, not a URL syntax concern).
var idnaProfile = idna.New(
	idna.MapForLookup(),
	idna.Transitional(false),
	idna.CheckHyphens(true),
	idna.BidiRule(),
	idna.CheckJoiners(true),
	idna.StrictDomainName(false),
	idna.VerifyDNSLength(false),
)

// domainToASCII runs spec.md §4.5's domain-to-ASCII step.
func domainToASCII(domain string) (string, error) {
	ascii, err := idnaProfile.ToASCII(domain)
	if err != nil {
		return "", err
	}
	return ascii, nil
}

// ToUnicode converts an ASCII (post-IDNA) domain back to its Unicode form,
// supplementing spec.md §6's domain_to_unicode reference operation which
// spec.md's component list names but never wires to a URL-record field
// (see SPEC_FULL.md §3).
func ToUnicode(asciiDomain string) string {
	u, err := idnaProfile.ToUnicode(asciiDomain)
	if err != nil {
		return asciiDomain
	}
	return u
}

// parseHost implements spec.md §4.5. isNotSpecial selects the opaque-host
// path for non-special schemes. An empty input always yields HostEmpty;
// the caller enforces spec.md §3's "special schemes other than file require
// a present, non-empty host" invariant, since that rule depends on the
// scheme, not on host-parsing itself.
func parseHost(input string, isNotSpecial bool) (Host, error) {
	if input == "" {
		return Host{Kind: HostEmpty}, nil
	}

	if strings.HasPrefix(input, "[") {
		if !strings.HasSuffix(input, "]") {
			return Host{}, errHostInvalid
		}
		pieces, err := parseIPv6(input[1 : len(input)-1])
		if err != nil {
			return Host{}, errHostInvalid
		}
		return Host{Kind: HostIPv6, IPv6: pieces}, nil
	}

	if isNotSpecial {
		for i := 0; i < len(input); i++ {
			if forbiddenHostCodePoints.containsByte(input[i]) {
				return Host{}, InvalidHostError(input[i : i+1])
			}
		}
		return Host{Kind: HostOpaque, Opaque: percentEncode(input, c0ControlPercentEncodeSet)}, nil
	}

	domain := percentDecode(input)
	ascii, err := domainToASCII(domain)
	if err != nil {
		return Host{}, errHostInvalid
	}
	for i := 0; i < len(ascii); i++ {
		if forbiddenDomainCodePoints.containsByte(ascii[i]) {
			return Host{}, InvalidHostError(ascii[i : i+1])
		}
	}
	if ascii == "" {
		return Host{}, errHostInvalid
	}

	if endsInANumber(ascii) {
		addr, err := parseIPv4(ascii)
		if err != nil {
			return Host{}, errHostInvalid
		}
		return Host{Kind: HostIPv4, IPv4: addr}, nil
	}

	return Host{Kind: HostDomain, Domain: ascii}, nil
}
