package port

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Key codes follow the browser keyCode numbering: letters and digits use the
// upper-case ASCII code, named keys use their legacy codes.
var namedKeys = map[string]int{
	"backspace": 8,
	"tab":       9,
	"enter":     13,
	"return":    13,
	"shift":     16,
	"control":   17,
	"ctrl":      17,
	"alt":       18,
	"escape":    27,
	"esc":       27,
	"space":     32,
	"left":      37,
	"up":        38,
	"right":     39,
	"down":      40,
	"delete":    46,
}

// KeyCode resolves a key name to its code.
func KeyCode(name string) (int, bool) {
	if code, ok := namedKeys[strings.ToLower(strings.TrimSpace(name))]; ok {
		return code, true
	}
	if utf8.RuneCountInString(name) != 1 {
		return 0, false
	}
	r, _ := utf8.DecodeRuneInString(name)
	if r > unicode.MaxASCII {
		return 0, false
	}
	return int(unicode.ToUpper(r)), true
}
