package preset

import (
	"strings"
)

// MakeLegalAlias percent-escapes every byte that must not appear in a URL
// path segment. The second result is false when anything other than a
// space had to be escaped.
func MakeLegalAlias(text string) (string, bool) {
	if len(text) == 0 {
		return "%00", false
	}

	escaped := strings.Builder{}
	legal := true

	for i := 0; i < len(text); i++ {
		c := text[i]
		if legalInUrl(c) {
			escaped.WriteByte(c)
			continue
		}
		if c != ' ' {
			legal = false
		}
		escaped.WriteByte('%')
		escaped.WriteByte(hexDigits[c>>4])
		escaped.WriteByte(hexDigits[c&0x0F])
	}

	return escaped.String(), legal
}

const hexDigits = "0123456789ABCDEF"

func legalInUrl(char byte) bool {
	if char < '!' || 'z' < char {
		return false
	}
	switch char {
	case
		'"',
		'#',
		'%',
		'&',
		'/',
		':',
		';',
		'<',
		'=',
		'>',
		'?',
		'@',
		'[',
		'\\',
		']',
		'^',
		'`':
		return false
	}
	return true
}
