package tsemit

import "strings"

// reservedWords are the ECMAScript reserved words and contextually
// reserved identifiers for the TypeScript/JavaScript target (spec §6).
var reservedWords = map[string]bool{
	"break": true, "case": true, "catch": true, "class": true, "const": true,
	"continue": true, "debugger": true, "default": true, "delete": true,
	"do": true, "else": true, "export": true, "extends": true, "false": true,
	"finally": true, "for": true, "function": true, "if": true, "import": true,
	"in": true, "instanceof": true, "new": true, "null": true, "return": true,
	"super": true, "switch": true, "this": true, "throw": true, "true": true,
	"try": true, "typeof": true, "var": true, "void": true, "while": true,
	"with": true, "let": true, "static": true, "yield": true, "await": true,
	"enum": true, "implements": true, "interface": true, "package": true,
	"private": true, "protected": true, "public": true, "arguments": true,
	"eval": true,
}

// fixIdentifier converts a dash-separated command name into a valid,
// collision-free TypeScript identifier:
//
//  1. dash-separated segments become lowerCamelCase (the first segment
//     is left as-is; later segments have their first byte capitalised),
//  2. if the result exactly equals a reserved keyword, a trailing
//     underscore is appended.
//
// fixIdentifier is idempotent on inputs that contain no dashes and are
// not themselves reserved words.
func fixIdentifier(name string) string {
	segments := strings.Split(name, "-")
	var b strings.Builder
	for i, seg := range segments {
		if seg == "" {
			continue
		}
		if i == 0 {
			b.WriteString(seg)
			continue
		}
		b.WriteByte(upperFirstByte(seg[0]))
		b.WriteString(seg[1:])
	}
	ident := b.String()
	if reservedWords[ident] {
		ident += "_"
	}
	return ident
}

func upperFirstByte(c byte) byte {
	if c >= 'a' && c <= 'z' {
		return c - ('a' - 'A')
	}
	return c
}

// objectKey renders name as an object-literal key: quoted if it contains
// a dash (since it would not otherwise be a valid bare identifier key),
// bare otherwise.
func objectKey(name string) string {
	if strings.Contains(name, "-") {
		return quoteString(name)
	}
	return name
}

func quoteString(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}
