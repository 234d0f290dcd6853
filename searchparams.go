package urlparser

import (
	"sort"
	"strings"
)

// NameValuePair is one key/value entry of a SearchParams list, named after
// the url.NameValuePair the pack's nlnwa-whatwg-url canonicalizer iterates
// with SearchParams().Iterate.
type NameValuePair struct {
	Name  string
	Value string
}

// SearchParams is the SPEC_FULL.md §3 supplement: a key/value view over a
// URL's query string. spec.md's §6 External Interfaces exposes query only
// as an opaque percent-encoded string; this adds get/set/delete/iterate
// without changing that field's meaning. When obtained via URL.SearchParams,
// mutating methods write the re-serialized query straight back onto the
// owning record, the same live-view relationship application/x-www-form-urlencoded
// query objects have in every WHATWG implementation.
type SearchParams struct {
	pairs []NameValuePair
	url   *URL
}

// SearchParams returns a live view over u's query string.
func (u *URL) SearchParams() *SearchParams {
	s, _ := u.Query()
	return &SearchParams{pairs: parseSearchParams(s), url: u}
}

// ParseSearchParams parses a detached query string, with no owning record
// to write back to.
func ParseSearchParams(query string) *SearchParams {
	return &SearchParams{pairs: parseSearchParams(query)}
}

func parseSearchParams(s string) []NameValuePair {
	if s == "" {
		return nil
	}
	var out []NameValuePair
	for _, piece := range strings.Split(s, "&") {
		if piece == "" {
			continue
		}
		name, value, _ := strings.Cut(piece, "=")
		out = append(out, NameValuePair{formDecode(name), formDecode(value)})
	}
	return out
}

// Get returns the value of the first pair named name.
func (p *SearchParams) Get(name string) (string, bool) {
	for _, kv := range p.pairs {
		if kv.Name == name {
			return kv.Value, true
		}
	}
	return "", false
}

// GetAll returns the values of every pair named name, in list order.
func (p *SearchParams) GetAll(name string) []string {
	var out []string
	for _, kv := range p.pairs {
		if kv.Name == name {
			out = append(out, kv.Value)
		}
	}
	return out
}

// Has reports whether any pair is named name.
func (p *SearchParams) Has(name string) bool {
	_, ok := p.Get(name)
	return ok
}

// Append adds a new pair without disturbing any existing one.
func (p *SearchParams) Append(name, value string) {
	p.pairs = append(p.pairs, NameValuePair{name, value})
	p.sync()
}

// Set replaces the value of the first pair named name and removes any
// other pair with that name, or appends a new pair if none existed.
func (p *SearchParams) Set(name, value string) {
	found := false
	out := p.pairs[:0]
	for _, kv := range p.pairs {
		if kv.Name == name {
			if !found {
				kv.Value = value
				out = append(out, kv)
				found = true
			}
			continue
		}
		out = append(out, kv)
	}
	if !found {
		out = append(out, NameValuePair{name, value})
	}
	p.pairs = out
	p.sync()
}

// Delete removes every pair named name.
func (p *SearchParams) Delete(name string) {
	out := p.pairs[:0]
	for _, kv := range p.pairs {
		if kv.Name != name {
			out = append(out, kv)
		}
	}
	p.pairs = out
	p.sync()
}

// Iterate calls f for every pair in list order. f may mutate Value in
// place; it must not retain the pointer past the call.
func (p *SearchParams) Iterate(f func(pair *NameValuePair)) {
	for i := range p.pairs {
		f(&p.pairs[i])
	}
}

// Sort stably reorders pairs by name, matching the canonicalizer's
// SortKeys mode.
func (p *SearchParams) Sort() {
	sort.SliceStable(p.pairs, func(i, j int) bool { return p.pairs[i].Name < p.pairs[j].Name })
	p.sync()
}

// String serializes pairs as application/x-www-form-urlencoded.
func (p *SearchParams) String() string {
	var b strings.Builder
	for i, kv := range p.pairs {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(formEncode(kv.Name))
		b.WriteByte('=')
		b.WriteString(formEncode(kv.Value))
	}
	return b.String()
}

func (p *SearchParams) sync() {
	if p.url == nil {
		return
	}
	s := p.String()
	p.url.query = &s
}

// formEncode is the application/x-www-form-urlencoded byte serializer:
// space becomes '+', unreserved bytes pass through, everything else is a
// percent-encoded triplet.
func formEncode(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == ' ':
			b.WriteByte('+')
		case isASCIIAlphanumeric(c) || c == '*' || c == '-' || c == '.' || c == '_':
			b.WriteByte(c)
		default:
			b.WriteByte('%')
			b.WriteByte(upperhex[c>>4])
			b.WriteByte(upperhex[c&0x0f])
		}
	}
	return b.String()
}

// formDecode reverses formEncode: '+' becomes space, then the permissive
// percent decoder (percent.go) runs over the result.
func formDecode(s string) string {
	return percentDecode(strings.ReplaceAll(s, "+", " "))
}
