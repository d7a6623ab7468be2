package mdrtf

// dataCellBorders frames every cell of a data table in gray.
const dataCellBorders = `\clvertalc` +
	`\clbrdrt\brdrs\brdrw20\brdrcf3` +
	`\clbrdrb\brdrs\brdrw20\brdrcf3` +
	`\clbrdrl\brdrs\brdrw20\brdrcf3` +
	`\clbrdrr\brdrs\brdrw20\brdrcf3`

func (r *Renderer) enterTable(b *Block) {
	r.tableCols = b.Columns
	_, _ = r.out.WriteString(`\pard\f0`)
	_, _ = r.out.WriteString(r.cw.fs[1])
}

func (r *Renderer) leaveTable() {
	r.tableCols = 0
	r.tableHead = false
	r.endBlock()
}

// enterTableRow declares the row and its cells. Basic viewers cannot autofit,
// so every cell gets the same fixed width derived from the page width.
func (r *Renderer) enterTableRow() {
	_, _ = r.out.WriteString(`\trowd`)
	_, _ = r.out.WriteString(r.cw.tr[1])
	if r.tableCols <= 0 {
		return
	}
	w := r.page.cellWidth(r.tableCols)
	var b []byte
	for i := 0; i < r.tableCols; i++ {
		b = append(b[:0], dataCellBorders...)
		if r.tableHead {
			b = append(b, `\clcbpat5`...)
		}
		b = append(b, `\cellx`...)
		b = append(b, itoa(w*(i+1))...)
		_, _ = r.out.Write(b)
	}
}

func (r *Renderer) enterTableCell(b *Block) {
	switch b.Align {
	case AlignCenter:
		_, _ = r.out.WriteString(`\qc`)
	case AlignRight:
		_, _ = r.out.WriteString(`\qr`)
	default:
		_, _ = r.out.WriteString(`\ql`)
	}
	if b.Kind == BlockTableHeaderCell {
		_, _ = r.out.WriteString(`\b `)
		return
	}
	_, _ = r.out.WriteString(" ")
}
