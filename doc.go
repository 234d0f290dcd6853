// Package urlparser implements a WHATWG-conformant URL parser and
// serializer. It parses an input byte sequence, optionally resolved
// against a base URL, into a validated and canonicalized URL record, and
// serializes that record back to a spec-compliant string.
//
// The package does not perform network I/O, DNS resolution, or cookie/MIME
// handling. Host parsing (IPv4, IPv6, opaque hosts, and Unicode/IDNA
// domains), percent-encoding, and relative resolution follow the WHATWG URL
// Standard rather than RFC 3986 where the two disagree.
package urlparser
