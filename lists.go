package mdrtf

// maxListDepth is the number of nesting levels that carry list state. Deeper
// lists still balance their open and close events but render their items
// without markers.
const maxListDepth = 8

type listKind uint8

const (
	listUnordered listKind = iota
	listOrdered
)

var bulletMarkers = [2]string{`\u8226 `, `\u9702 `}

// listLevel is the state of one open list.
type listLevel struct {
	kind   listKind
	count  int
	start  int
	marker string // bullet glyph or numeral delimiter
	sa     string // space-after control word
	li     string // left indent control word
}

// enterList opens a list one level deeper than the current one.
func (r *Renderer) enterList(b *Block) {
	r.listDepth++
	d := r.listDepth
	// A nested list starts on its own line, after the parent item's text.
	if d > 0 {
		_, _ = r.out.WriteString(`\par`)
	}
	if d >= maxListDepth {
		if r.trace {
			r.log.Debug("list depth beyond limit, items unlabeled", "depth", d)
		}
		return
	}
	lvl := &r.lists[d]
	lvl.count = 0
	if b.Kind == BlockOrderedList {
		lvl.kind = listOrdered
		lvl.start = b.Start
		lvl.marker = "."
		if b.Delimiter == ')' {
			lvl.marker = ")"
		}
	} else {
		lvl.kind = listUnordered
		lvl.start = 0
		lvl.marker = bulletMarkers[d%2]
	}
	lvl.sa = r.cw.sa[1]
	if b.Tight {
		lvl.sa = r.cw.sa[0]
	}
	lvl.li = r.cw.li[d]
	r.listStart()
}

// listStart writes the paragraph preamble of the current list level: the
// first item's marker and the numbering group that lets the viewer draw
// markers for following paragraphs. It runs when a list opens and again
// when a nested list has closed and the parent resumes.
func (r *Renderer) listStart() {
	lvl := &r.lists[r.listDepth]
	_, _ = r.out.WriteString(`\pard`)
	_, _ = r.out.WriteString(r.cw.fs[0])
	_, _ = r.out.WriteString(`{\pntext\f0 `)
	if lvl.kind == listOrdered {
		// count is nonzero when resuming after a nested list.
		num := itoa(lvl.count + lvl.start)
		_, _ = r.out.WriteString(num)
		_, _ = r.out.WriteString(lvl.marker)
		_, _ = r.out.WriteString(`\tab}{\*\pn\pnlvlbody\pnf0\pnstart`)
		_, _ = r.out.WriteString(num)
		_, _ = r.out.WriteString(`\pndec{\pntxta`)
	} else {
		_, _ = r.out.WriteString(lvl.marker)
		_, _ = r.out.WriteString(`\tab}{\*\pn\pnlvlblt\pnf0{\pntxtb`)
	}
	_, _ = r.out.WriteString(lvl.marker)
	_, _ = r.out.WriteString(`}}`)
	_, _ = r.out.WriteString(lvl.li)
	_, _ = r.out.WriteString(lvl.sa)
	if lvl.kind == listOrdered {
		_, _ = r.out.WriteString(r.cw.fi[1])
	} else {
		_, _ = r.out.WriteString(r.cw.fi[0])
	}
	r.listReset = false
}

// listItem writes the marker of an item after the first.
func (r *Renderer) listItem() {
	lvl := &r.lists[r.listDepth]
	_, _ = r.out.WriteString(`{\pntext\f0 `)
	if lvl.kind == listOrdered {
		_, _ = r.out.WriteString(itoa(lvl.count + lvl.start))
	}
	_, _ = r.out.WriteString(lvl.marker)
	_, _ = r.out.WriteString(`\tab}`)
}

func (r *Renderer) enterListItem() {
	if r.listDepth >= 0 && r.listDepth < maxListDepth {
		if r.listReset {
			r.listStart()
		}
		// The first item's marker was written by listStart.
		if r.lists[r.listDepth].count > 0 {
			r.listItem()
		}
		r.lists[r.listDepth].count++
	}
	r.listStop = true
}

// leaveListItem ends the item's paragraph. RTF has no closing tags, only
// paragraph ends, so a run of item closings (several nested items ending
// together) must produce a single \par; listStop is re-armed only by the
// next item opening.
func (r *Renderer) leaveListItem() {
	if r.listStop {
		_, _ = r.out.WriteString(`\par`)
		r.listStop = false
	}
}

func (r *Renderer) leaveList() {
	if r.listDepth > 0 {
		// The parent list must rewrite its preamble before its next item.
		r.listReset = true
	} else {
		r.endBlock()
	}
	r.listDepth--
}
