package mdrtf

// Colour table entries: 1 black, 2 white (the page background), 3 gray,
// 4 link blue, 5 silver for table header shading.
const documentHeader = `{\rtf1\ansi\ansicpg1252\deff0` +
	`{\fonttbl` +
	`{\f0\fswiss Calibri;}` +
	`{\f1\fmodern Courier New;}` +
	`}` +
	`{\colortbl;` +
	`\red0\green0\blue0;` +
	`\red255\green255\blue255;` +
	`\red180\green180\blue180;` +
	`\red0\green102\blue204;` +
	`\red230\green230\blue230;` +
	`}` +
	`{\*\generator mdrtf}`

// Table cell borders. Rich Edit draws undefined or zero-width borders as a
// light gray line, so a hidden border is declared one twip wide in the
// background colour.
const (
	hiddenTop    = `\clbrdrt\brdrs\brdrw1\brdrcf2`
	hiddenBottom = `\clbrdrb\brdrs\brdrw1\brdrcf2`
	hiddenLeft   = `\clbrdrl\brdrs\brdrw1\brdrcf2`
	hiddenRight  = `\clbrdrr\brdrs\brdrw1\brdrcf2`

	quoteBar = `\clbrdrl\brdrs\brdrw50\brdrcf3`
	ruleLine = `\clbrdrt\brdrs\brdrw20\brdrcf3`
)

func (r *Renderer) enterDocument() {
	_, _ = r.out.WriteString(documentHeader)
	var b []byte
	b = append(b, `\paperw`...)
	b = append(b, itoa(r.page.width)...)
	b = append(b, `\paperh`...)
	b = append(b, itoa(r.page.height)...)
	m := itoa(r.page.margin)
	for _, side := range []string{`\margl`, `\margr`, `\margt`, `\margb`} {
		b = append(b, side...)
		b = append(b, m...)
	}
	_, _ = r.out.Write(b)
	_, _ = r.out.WriteString("\\uc0\r\n\\pard")
	_, _ = r.out.WriteString(r.cw.sa[2])
}

func (r *Renderer) fontNormal() {
	_, _ = r.out.WriteString(`\f0`)
	_, _ = r.out.WriteString(r.cw.fs[0])
}

func (r *Renderer) fontMono() {
	_, _ = r.out.WriteString(`\f1`)
	_, _ = r.out.WriteString(r.cw.fs[1])
}

// endBlock restores the regular space after a list, quote, table or rule,
// whose own space-after differs, and ends the paragraph.
func (r *Renderer) endBlock() {
	_, _ = r.out.WriteString(`\pard\f0\fs0`)
	_, _ = r.out.WriteString(r.cw.sa[2])
	_, _ = r.out.WriteString("\\par\r\n")
}

func headingIndex(level int) int {
	switch {
	case level < 1:
		return 0
	case level > 6:
		return 5
	}
	return level - 1
}

func (r *Renderer) enterHeading(b *Block) {
	_, _ = r.out.WriteString(r.cw.heading[headingIndex(b.Level)])
}

func (r *Renderer) leaveHeading(b *Block) {
	if headingIndex(b.Level) > 2 {
		_, _ = r.out.WriteString("\\b0\\i0 \\par\r\n")
		return
	}
	_, _ = r.out.WriteString("\\b0 \\par\r\n")
}

// enterQuote opens a one-cell table whose only visible border is a thick
// left bar. Inner paragraphs must not end with \par or they would add
// blank lines inside the cell.
func (r *Renderer) enterQuote() {
	_, _ = r.out.WriteString(`\pard\f0`)
	_, _ = r.out.WriteString(r.cw.fs[0])
	_, _ = r.out.WriteString(`\trowd`)
	_, _ = r.out.WriteString(r.cw.tr[0])
	_, _ = r.out.WriteString(hiddenTop + hiddenBottom + quoteBar + hiddenRight)
	_, _ = r.out.WriteString(r.cw.cellx[0])
	r.noParEnd = true
}

func (r *Renderer) leaveQuote() {
	_, _ = r.out.WriteString(`\cell\row`)
	r.endBlock()
	r.noParEnd = false
}

// enterCode opens a borderless one-cell table in the monospace font.
func (r *Renderer) enterCode() {
	_, _ = r.out.WriteString(`\pard\f1`)
	_, _ = r.out.WriteString(r.cw.fs[1])
	_, _ = r.out.WriteString(`\trowd`)
	_, _ = r.out.WriteString(r.cw.tr[0])
	_, _ = r.out.WriteString(hiddenTop + hiddenBottom + hiddenLeft + hiddenRight)
	_, _ = r.out.WriteString(r.cw.cellx[0])
	r.noParEnd = true
}

// leaveCode needs no paragraph end: the last code line already ends with a
// line break.
func (r *Renderer) leaveCode() {
	_, _ = r.out.WriteString(`\cell\row\pard\f0`)
	_, _ = r.out.WriteString(r.cw.sa[2])
	r.noParEnd = false
}

// enterThematicBreak draws a zero-height row with only its top border
// visible.
func (r *Renderer) enterThematicBreak() {
	_, _ = r.out.WriteString(`\pard\fs0\trowd\trrh0\trautofit1`)
	_, _ = r.out.WriteString(ruleLine + hiddenBottom + hiddenLeft + hiddenRight)
	_, _ = r.out.WriteString(r.cw.cellx[1])
	_, _ = r.out.WriteString(`\par\cell\row`)
	r.endBlock()
}
