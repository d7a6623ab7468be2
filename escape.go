package mdrtf

import "strconv"

const (
	needRTFEscape uint8 = 1 << iota
	needURLEscape
)

const urlSafePunct = "~-_.+!*(),%#@?=;:/,+$"

// escapeTable marks, per byte value, what needs escaping in RTF text and in
// hyperlink targets.
type escapeTable [256]uint8

func newEscapeTable() escapeTable {
	var t escapeTable
	for i := 0; i < 256; i++ {
		c := byte(i)
		switch {
		case c == '\\', c == '{', c == '}', c == '\n', c >= 0x80:
			t[i] |= needRTFEscape
		}
		if !isAlnum(c) && !isURLSafePunct(c) {
			t[i] |= needURLEscape
		}
	}
	return t
}

func isAlnum(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || ('0' <= c && c <= '9')
}

func isURLSafePunct(c byte) bool {
	for i := 0; i < len(urlSafePunct); i++ {
		if urlSafePunct[i] == c {
			return true
		}
	}
	return false
}

const hexUpper = "0123456789ABCDEF"
const hexLower = "0123456789abcdef"

// writeRTFEscaped writes text with RTF reserved characters escaped and
// non-ASCII bytes converted to Unicode or fallback escapes.
func (r *Renderer) writeRTFEscaped(text []byte) {
	beg, off := 0, 0
	for {
		for off+3 < len(text) &&
			r.esc[text[off]]&needRTFEscape == 0 && r.esc[text[off+1]]&needRTFEscape == 0 &&
			r.esc[text[off+2]]&needRTFEscape == 0 && r.esc[text[off+3]]&needRTFEscape == 0 {
			off += 4
		}
		for off < len(text) && r.esc[text[off]]&needRTFEscape == 0 {
			off++
		}
		if off > beg {
			_, _ = r.out.Write(text[beg:off])
		}
		if off >= len(text) {
			return
		}
		c := text[off]
		if c >= 0x80 {
			off += r.writeNonASCII(text[off:])
		} else {
			switch c {
			case '\\':
				_, _ = r.out.WriteString(`\\`)
			case '{':
				_, _ = r.out.WriteString(`\{`)
			case '}':
				_, _ = r.out.WriteString(`\}`)
			case '\n':
				_, _ = r.out.WriteString(`\line `)
			}
			off++
		}
		beg = off
	}
}

// writeNonASCII escapes the sequence starting at s[0] (a byte >= 0x80) and
// returns how many bytes it consumed. Valid UTF-8 becomes a Unicode escape;
// anything else becomes a single-byte fallback escape so the scan always
// advances.
func (r *Renderer) writeNonASCII(s []byte) int {
	cp, n := decodeUTF8(s)
	if n == 0 {
		r.writeFallback(s[0])
		return 1
	}
	r.writeUnicode(cp)
	return n
}

// decodeUTF8 decodes one sequence by lead and continuation byte patterns
// only. It returns n == 0 when s does not start with a complete sequence.
func decodeUTF8(s []byte) (rune, int) {
	lead := s[0]
	switch {
	case lead&0xE0 == 0xC0:
		if len(s) > 1 && isCont(s[1]) {
			return rune(lead&0x1F)<<6 | rune(s[1]&0x3F), 2
		}
	case lead&0xF0 == 0xE0:
		if len(s) > 2 && isCont(s[1]) && isCont(s[2]) {
			return rune(lead&0x0F)<<12 | rune(s[1]&0x3F)<<6 | rune(s[2]&0x3F), 3
		}
	case lead&0xF8 == 0xF0:
		if len(s) > 3 && isCont(s[1]) && isCont(s[2]) && isCont(s[3]) {
			return rune(lead&0x07)<<18 | rune(s[1]&0x3F)<<12 | rune(s[2]&0x3F)<<6 | rune(s[3]&0x3F), 4
		}
	}
	return 0, 0
}

func isCont(c byte) bool {
	return c&0xC0 == 0x80
}

// writeUnicode writes \uN followed by a space delimiter. The document
// header sets \uc0, so no fallback character follows.
func (r *Renderer) writeUnicode(cp rune) {
	var num [24]byte
	b := append(num[:0], `\u`...)
	b = strconv.AppendUint(b, uint64(cp), 10)
	b = append(b, ' ')
	_, _ = r.out.Write(b)
}

// writeFallback writes the byte as a Windows-1252 \'hh escape.
func (r *Renderer) writeFallback(c byte) {
	b := [4]byte{'\\', '\'', hexLower[c>>4], hexLower[c&0xF]}
	_, _ = r.out.Write(b[:])
}

// writeURLEscaped writes a hyperlink target: unsafe bytes are
// percent-encoded and & becomes &amp; since the target sits inside a field
// instruction.
func (r *Renderer) writeURLEscaped(url []byte) {
	beg, off := 0, 0
	for {
		for off < len(url) && r.esc[url[off]]&needURLEscape == 0 {
			off++
		}
		if off > beg {
			_, _ = r.out.Write(url[beg:off])
		}
		if off >= len(url) {
			return
		}
		c := url[off]
		if c == '&' {
			_, _ = r.out.WriteString("&amp;")
		} else {
			b := [3]byte{'%', hexUpper[c>>4], hexUpper[c&0xF]}
			_, _ = r.out.Write(b[:])
		}
		off++
		beg = off
	}
}
