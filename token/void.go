package token

import "golang.org/x/net/html/atom"

var voidAtoms = map[atom.Atom]bool{
	atom.Area:   true,
	atom.Base:   true,
	atom.Br:     true,
	atom.Col:    true,
	atom.Embed:  true,
	atom.Hr:     true,
	atom.Img:    true,
	atom.Input:  true,
	atom.Link:   true,
	atom.Meta:   true,
	atom.Source: true,
	atom.Track:  true,
	atom.Wbr:    true,
}

// IsVoid reports whether name (a tag name, compared case-insensitively) is
// one of the thirteen void elements. It is informational: the tokenizer
// itself does not special-case void tags.
func IsVoid(name []byte) bool {
	return voidAtoms[lookupAtom(name)]
}

// TagIsVoid is IsVoid applied to a Tag/TagName token's Name span.
func (t Token) TagIsVoid() bool {
	return voidAtoms[t.DataAtom]
}
