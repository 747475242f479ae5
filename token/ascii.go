package token

// ASCII classification only: the tokenizer never decodes Unicode and never
// calls a locale-dependent predicate. Non-ASCII bytes pass through
// unexamined inside text / attribute-value / name spans.

func isASCIIWhitespace(c byte) bool {
	switch c {
	case '\t', '\n', '\x0c', '\r', ' ':
		return true
	}
	return false
}

func isASCIIUpper(c byte) bool {
	return 'A' <= c && c <= 'Z'
}

func isASCIIAlpha(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

func toASCIILower(c byte) byte {
	if isASCIIUpper(c) {
		return c + ('a' - 'A')
	}
	return c
}

// equalFoldASCII reports whether a and b are equal modulo ASCII case.
func equalFoldASCII(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if toASCIILower(a[i]) != toASCIILower(b[i]) {
			return false
		}
	}
	return true
}

// hasPrefixFoldASCII reports whether src[idx:] begins with prefix, compared
// modulo ASCII case, without requiring src[idx:] to be that long in memory
// beyond what's available (returns false if it runs off the end).
func hasPrefixFoldASCII(src []byte, idx int, prefix string) bool {
	if idx+len(prefix) > len(src) {
		return false
	}
	for i := 0; i < len(prefix); i++ {
		if toASCIILower(src[idx+i]) != toASCIILower(prefix[i]) {
			return false
		}
	}
	return true
}

// hasPrefixAt reports whether src[idx:] begins with the literal prefix
// (exact byte match, used for "--" and "[CDATA[").
func hasPrefixAt(src []byte, idx int, prefix string) bool {
	if idx+len(prefix) > len(src) {
		return false
	}
	return string(src[idx:idx+len(prefix)]) == prefix
}
