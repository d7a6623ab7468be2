package mdrtf

import "strconv"

const (
	// pageMargin is the margin on all four sides, in twips.
	pageMargin = 400
	// maxFontBase bounds the base font size in half-points.
	maxFontBase = 98
)

// pageGeometry is the page size in twips.
type pageGeometry struct {
	width  int
	height int
	margin int
}

// newPageGeometry converts a page width in millimeters to twips (56.689
// twips per mm) and derives the height from the ISO 216 ratio 1.41428.
func newPageGeometry(docWidthMM uint) pageGeometry {
	w := int(uint64(docWidthMM) * 56689 / 1000)
	return pageGeometry{
		width:  w,
		height: int(uint64(w) * 141428 / 100000),
		margin: pageMargin,
	}
}

// innerWidth is the usable table width: the page width minus both margins
// and a fifth of the page width, which basic viewers need because they
// cannot autofit cells.
func (g pageGeometry) innerWidth() int {
	return (8*g.width - 20*g.margin) / 10
}

// cellWidth is the width of one cell of a table with cols columns.
func (g pageGeometry) cellWidth(cols int) int {
	return (8*g.width - 20*g.margin) / (10 * cols)
}

// controlWords holds the control words whose values depend on the font size
// and page width, built once per render.
type controlWords struct {
	fs      [2]string // normal, monospace font size
	heading [6]string // font size, space-after and weight per heading level
	sa      [3]string // space-after: tight list, loose list, block end
	li      [8]string // left indent per list depth
	tr      [2]string // row presets: pseudo-table block, data table
	fi      [2]string // first-line indent: bullet, numeral
	cellx   [2]string // cell right edge: pseudo-table block, horizontal rule
}

// fontBase converts points to half-points, clamped to maxFontBase.
func fontBase(points uint) int {
	if points > maxFontBase/2 {
		return maxFontBase
	}
	return int(points) * 2
}

func newControlWords(base int, page pageGeometry) controlWords {
	var cw controlWords
	cw.fs[0] = `\fs` + itoa(base) + " "
	cw.fs[1] = `\fs` + itoa(base*9/10) + " "

	// Heading scale in tenths of the base size; levels 4 to 6 are italic.
	scale := [6]int{22, 17, 14, 12, 11, 10}
	for i, s := range scale {
		style := `\b `
		if i >= 3 {
			style = `\b\i `
		}
		cw.heading[i] = `\fs` + itoa(base*s/10) + `\sa` + itoa(2*base) + style
	}

	cw.sa[0] = `\sa` + itoa(2*base) + " "
	cw.sa[1] = `\sa` + itoa(3*base) + " "
	cw.sa[2] = `\sa` + itoa(6*base) + " "

	for i := range cw.li {
		cw.li[i] = `\li` + itoa((i+1)*20*base)
	}

	left := itoa(12 * base)
	cw.tr[0] = `\trgaph` + itoa(6*base) + `\trleft` + left
	cw.tr[1] = `\trgaph` + itoa(3*base) + `\trrh` + itoa(16*base) + `\trleft` + left

	cw.fi[0] = `\fi` + itoa(-10*base) + " "
	cw.fi[1] = `\fi` + itoa(-12*base) + " "

	cw.cellx[0] = `\cellx` + itoa(page.innerWidth()) + " "
	cw.cellx[1] = `\cellx` + itoa(2*page.width) + " "
	return cw
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
