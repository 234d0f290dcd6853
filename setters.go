package urlparser

import "strings"

// reenter clones u into a parserURL, lets prep adjust the clone before the
// state machine runs (e.g. clearing a field the new state will rebuild),
// then re-enters runStateMachine at overrideState against input. It never
// touches u itself: the caller only commits the result once reenter reports
// success, giving every setter below spec.md §4.9's all-or-nothing
// semantics (the "buffer the proposed change, apply atomically" resolution
// recorded in DESIGN.md).
func (u *URL) reenter(overrideState state, input string, prep func(*parserURL)) (*URL, bool) {
	ctx := fromURL(u)
	if prep != nil {
		prep(ctx)
	}
	result, err := runStateMachine(input, nil, defaultParserConfig(), overrideState, ctx)
	if err != nil {
		return nil, false
	}
	return result.toURL(), true
}

func (u *URL) commit(newURL *URL) {
	*u = *newURL
}

// SetScheme implements spec.md §4.9's set_scheme: re-enters Scheme Start on
// s + ":". Rejected if the change would cross the special/not-special
// boundary, or would move to/from file while credentials, a port, or an
// empty host make that impossible.
func (u *URL) SetScheme(s string) bool {
	newURL, ok := u.reenter(stateSchemeStart, s+":", nil)
	if !ok {
		return false
	}
	u.commit(newURL)
	return true
}

// SetUsername implements spec.md §4.9's set_username: percent-encodes s
// with the userinfo set. Rejected when u cannot have credentials or a port.
func (u *URL) SetUsername(s string) bool {
	if u.cannotHaveCredentialsOrPort() {
		return false
	}
	u.username = percentEncode(s, userinfoPercentEncodeSet)
	return true
}

// SetPassword implements spec.md §4.9's set_password.
func (u *URL) SetPassword(s string) bool {
	if u.cannotHaveCredentialsOrPort() {
		return false
	}
	u.password = percentEncode(s, userinfoPercentEncodeSet)
	return true
}

// SetHost implements spec.md §4.9's set_host: re-enters Host state on s.
// Rejected for opaque-path records.
func (u *URL) SetHost(s string) bool {
	if u.hasOpaquePath {
		return false
	}
	newURL, ok := u.reenter(stateHost, s, nil)
	if !ok {
		return false
	}
	u.commit(newURL)
	return true
}

// SetPort implements spec.md §4.9's set_port. Empty input clears the port;
// otherwise s is re-parsed as a Port state run. Rejected when u cannot have
// a port.
func (u *URL) SetPort(s string) bool {
	if u.cannotHaveCredentialsOrPort() {
		return false
	}
	if s == "" {
		u.port = nil
		return true
	}
	newURL, ok := u.reenter(statePort, s, nil)
	if !ok {
		return false
	}
	u.commit(newURL)
	return true
}

// SetPathname implements spec.md §4.9's set_pathname: replaces the path by
// re-entering Path Start on s. Rejected for opaque-path records.
func (u *URL) SetPathname(s string) bool {
	if u.hasOpaquePath {
		return false
	}
	newURL, ok := u.reenter(statePathStart, s, func(p *parserURL) {
		p.path = nil
	})
	if !ok {
		return false
	}
	u.commit(newURL)
	return true
}

// SetSearch implements spec.md §4.9's set_search: a leading "?" is
// stripped; an empty result clears the query (null, not ""), otherwise s
// is re-parsed as a Query state run.
func (u *URL) SetSearch(s string) bool {
	s = strings.TrimPrefix(s, "?")
	if s == "" {
		u.query = nil
		return true
	}
	newURL, ok := u.reenter(stateQuery, s, func(p *parserURL) {
		empty := ""
		p.query = &empty
	})
	if !ok {
		return false
	}
	u.commit(newURL)
	return true
}

// SetHash implements spec.md §4.9's set_hash: a leading "#" is stripped; an
// empty result clears the fragment, otherwise s is re-parsed as a Fragment
// state run.
func (u *URL) SetHash(s string) bool {
	s = strings.TrimPrefix(s, "#")
	if s == "" {
		u.fragment = nil
		return true
	}
	newURL, ok := u.reenter(stateFragment, s, func(p *parserURL) {
		empty := ""
		p.fragment = &empty
	})
	if !ok {
		return false
	}
	u.commit(newURL)
	return true
}
