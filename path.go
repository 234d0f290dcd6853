package urlparser

// isSingleDotPathSegment reports whether s is "." or its percent-encoded
// equivalent "%2e" / "%2E" (spec.md §4.8 Path state).
func isSingleDotPathSegment(s string) bool {
	return s == "." || strEqualFold(s, "%2e")
}

// isDoubleDotPathSegment reports whether s is ".." or a percent-encoded
// variant thereof ("%2e.", ".%2e", "%2e%2e", case-insensitively).
func isDoubleDotPathSegment(s string) bool {
	switch {
	case s == "..":
		return true
	case strEqualFold(s, ".%2e"), strEqualFold(s, "%2e."), strEqualFold(s, "%2e%2e"):
		return true
	}
	return false
}

func strEqualFold(s, t string) bool {
	if len(s) != len(t) {
		return false
	}
	for i := 0; i < len(s); i++ {
		a, b := s[i], t[i]
		if 'A' <= a && a <= 'Z' {
			a += 'a' - 'A'
		}
		if 'A' <= b && b <= 'Z' {
			b += 'a' - 'A'
		}
		if a != b {
			return false
		}
	}
	return true
}

// isWindowsDriveLetter reports whether s is a two-code-point sequence of
// an ASCII letter followed by ':' or '|' (spec.md §4.8's file-scheme
// drive-letter quirk).
func isWindowsDriveLetter(s string) bool {
	return len(s) == 2 && isASCIIAlpha(s[0]) && (s[1] == ':' || s[1] == '|')
}

// isNormalizedWindowsDriveLetter reports whether s is a drive letter using
// the canonical ':' separator rather than the legacy '|' form.
func isNormalizedWindowsDriveLetter(s string) bool {
	return len(s) == 2 && isASCIIAlpha(s[0]) && s[1] == ':'
}

// startsWithWindowsDriveLetter reports whether s begins with a Windows
// drive letter segment that is itself either the whole string or is
// followed by '/', '\\', '?', or '#'.
func startsWithWindowsDriveLetter(s string) bool {
	if len(s) < 2 || !isWindowsDriveLetter(s[:2]) {
		return false
	}
	if len(s) == 2 {
		return true
	}
	switch s[2] {
	case '/', '\\', '?', '#':
		return true
	}
	return false
}

// shortenPath pops the last segment of path, honoring the file-scheme rule
// that a lone drive-letter segment is never popped (spec.md §4.8 ".." case).
func shortenPath(isFile bool, path []string) []string {
	if len(path) == 0 {
		return path
	}
	if isFile && len(path) == 1 && isNormalizedWindowsDriveLetter(path[0]) {
		return path
	}
	return path[:len(path)-1]
}
