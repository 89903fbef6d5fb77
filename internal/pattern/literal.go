package pattern

import (
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Literal turns one alternative returned by Expand into a doublestar pattern.
// Braces are escaped, so a second group or an unclosed "{" matches itself;
// commas are only special inside braces and stay as they are. If the result
// is still malformed (an unclosed "[" or a trailing backslash), character
// classes and backslashes are taken literally too.
// The result always passes doublestar.ValidatePattern.
func Literal(alt string) string {
	if p := escape(alt, "{}"); doublestar.ValidatePattern(p) {
		return p
	}
	return escape(alt, `\{}[]`)
}

func escape(s, chars string) string {
	if !strings.ContainsAny(s, chars) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + 4)
	for _, r := range s {
		if strings.ContainsRune(chars, r) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
