package mdrtf

import (
	"strconv"
	"unicode/utf8"

	"github.com/yuin/goldmark/util"
)

// writeEntity renders an entity reference such as &#233;, &#xE9; or &eacute;.
// Numeric references become Unicode escapes. Named references are written as
// text unless FlagNamedEntities is set.
func (r *Renderer) writeEntity(text []byte) {
	if r.flags&FlagVerbatimEntities != 0 {
		r.writeRTFEscaped(text)
		return
	}
	if len(text) > 3 && text[1] == '#' {
		r.writeUnicode(numericEntityRune(text))
		return
	}
	if r.flags&FlagNamedEntities != 0 {
		if ent, ok := lookupNamedEntity(text); ok {
			for _, cp := range ent.CodePoints {
				r.writeUnicode(rune(cp))
			}
			return
		}
	}
	r.writeRTFEscaped(text)
}

// numericEntityRune decodes &#NN; or &#xHH;. Zero, surrogates and values
// beyond the Unicode range decode to U+FFFD.
func numericEntityRune(text []byte) rune {
	body := text[2:]
	base := 10
	if len(body) > 0 && (body[0] == 'x' || body[0] == 'X') {
		body = body[1:]
		base = 16
	}
	end := 0
	for end < len(body) && isEntityDigit(body[end], base) {
		end++
	}
	v, err := strconv.ParseUint(string(body[:end]), base, 32)
	if err != nil || v == 0 || v > utf8.MaxRune || (v >= 0xD800 && v <= 0xDFFF) {
		return utf8.RuneError
	}
	return rune(v)
}

func isEntityDigit(c byte, base int) bool {
	if '0' <= c && c <= '9' {
		return true
	}
	if base == 16 {
		return ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
	}
	return false
}

func lookupNamedEntity(text []byte) (*util.HTML5Entity, bool) {
	if len(text) < 3 || text[0] != '&' || text[len(text)-1] != ';' {
		return nil, false
	}
	return util.LookUpHTML5EntityByName(string(text[1 : len(text)-1]))
}

// entityLen reports the length of the entity reference at the start of s,
// or 0 if s does not start with one. Accepted forms are &name; with an
// alphanumeric name of up to 48 characters starting with a letter, &#NN; with
// 1 to 7 decimal digits and &#xHH; with 1 to 6 hex digits.
func entityLen(s []byte) int {
	if len(s) < 3 || s[0] != '&' {
		return 0
	}
	if s[1] == '#' {
		i, base, maxDigits := 2, 10, 7
		if i < len(s) && (s[i] == 'x' || s[i] == 'X') {
			i++
			base, maxDigits = 16, 6
		}
		start := i
		for i < len(s) && i-start < maxDigits && isEntityDigit(s[i], base) {
			i++
		}
		if i == start || i >= len(s) || s[i] != ';' {
			return 0
		}
		return i + 1
	}
	if !isLetter(s[1]) {
		return 0
	}
	i := 2
	for i < len(s) && i-1 < 48 && isAlnum(s[i]) {
		i++
	}
	if i >= len(s) || s[i] != ';' {
		return 0
	}
	return i + 1
}

func isLetter(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}
