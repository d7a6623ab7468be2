package mdrtf

import (
	"bytes"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

var (
	checkboxEmpty   = []byte("☐ ")
	checkboxChecked = []byte("☒ ")
	mailtoPrefix    = []byte("mailto:")
)

func newMarkdown(flags ParserFlags) goldmark.Markdown {
	var exts []goldmark.Extender
	if flags&ParserTables != 0 {
		exts = append(exts, extension.Table)
	}
	if flags&ParserStrikethrough != 0 {
		exts = append(exts, extension.Strikethrough)
	}
	if flags&ParserPermissiveAutolinks != 0 {
		exts = append(exts, extension.Linkify)
	}
	if flags&ParserTaskLists != 0 {
		exts = append(exts, extension.TaskList)
	}
	return goldmark.New(goldmark.WithExtensions(exts...))
}

// Parse parses Markdown source with goldmark and reports the document
// structure to h as block, span and text events in document order. It stops
// at and returns the first error h returns.
func Parse(src []byte, flags ParserFlags, h Handler) error {
	doc := newMarkdown(flags).Parser().Parse(text.NewReader(src))
	w := &walker{src: src, flags: flags, h: h}
	return ast.Walk(doc, w.visit)
}

type walker struct {
	src   []byte
	flags ParserFlags
	h     Handler
}

func (w *walker) block(entering bool, b *Block) (ast.WalkStatus, error) {
	var err error
	if entering {
		err = w.h.EnterBlock(b)
	} else {
		err = w.h.LeaveBlock(b)
	}
	if err != nil {
		return ast.WalkStop, err
	}
	return ast.WalkContinue, nil
}

func (w *walker) span(entering bool, s *Span) (ast.WalkStatus, error) {
	var err error
	if entering {
		err = w.h.EnterSpan(s)
	} else {
		err = w.h.LeaveSpan(s)
	}
	if err != nil {
		return ast.WalkStop, err
	}
	return ast.WalkContinue, nil
}

func (w *walker) visit(n ast.Node, entering bool) (ast.WalkStatus, error) {
	switch n := n.(type) {
	case *ast.Document:
		return w.block(entering, &Block{Kind: BlockDocument})
	case *ast.Paragraph:
		return w.block(entering, &Block{Kind: BlockParagraph})
	case *ast.Heading:
		return w.block(entering, &Block{Kind: BlockHeading, Level: n.Level})
	case *ast.ThematicBreak:
		return w.block(entering, &Block{Kind: BlockThematicBreak})
	case *ast.Blockquote:
		return w.block(entering, &Block{Kind: BlockQuote})
	case *ast.List:
		return w.block(entering, listBlock(n))
	case *ast.ListItem:
		return w.block(entering, &Block{Kind: BlockListItem})
	case *ast.CodeBlock:
		return w.codeBlock(entering, n, &Block{Kind: BlockCode})
	case *ast.FencedCodeBlock:
		b := &Block{Kind: BlockCode}
		if n.Info != nil {
			b.Info = string(n.Info.Segment.Value(w.src))
		}
		return w.codeBlock(entering, n, b)
	case *ast.HTMLBlock:
		return w.htmlBlock(entering, n)
	case *east.Table:
		return w.block(entering, &Block{Kind: BlockTable, Columns: len(n.Alignments)})
	case *east.TableHeader:
		return w.tableHeader(entering)
	case *east.TableRow:
		return w.tableRow(entering, n)
	case *east.TableCell:
		kind := BlockTableCell
		if _, ok := n.Parent().(*east.TableHeader); ok {
			kind = BlockTableHeaderCell
		}
		return w.block(entering, &Block{Kind: kind, Align: cellAlign(n.Alignment)})
	case *east.TaskCheckBox:
		if !entering {
			return ast.WalkContinue, nil
		}
		box := checkboxEmpty
		if n.IsChecked {
			box = checkboxChecked
		}
		return w.status(w.h.Text(TextNormal, box))
	case *ast.Text:
		if !entering {
			return ast.WalkContinue, nil
		}
		return w.status(w.text(n))
	case *ast.String:
		if !entering {
			return ast.WalkContinue, nil
		}
		if n.IsCode() || n.IsRaw() {
			return w.status(w.h.Text(TextNormal, n.Value))
		}
		return w.status(w.emitText(TextNormal, n.Value))
	case *ast.CodeSpan:
		return w.codeSpan(entering, n)
	case *ast.Emphasis:
		return w.span(entering, &Span{Kind: w.emphasisKind(n)})
	case *east.Strikethrough:
		return w.span(entering, &Span{Kind: SpanStrikethrough})
	case *ast.Link:
		return w.span(entering, &Span{Kind: SpanLink, Href: n.Destination, Title: n.Title})
	case *ast.Image:
		return w.span(entering, &Span{Kind: SpanImage, Href: n.Destination, Title: n.Title})
	case *ast.AutoLink:
		return w.autoLink(entering, n)
	case *ast.RawHTML:
		if !entering {
			return ast.WalkContinue, nil
		}
		for i := 0; i < n.Segments.Len(); i++ {
			seg := n.Segments.At(i)
			if err := w.h.Text(TextHTML, seg.Value(w.src)); err != nil {
				return ast.WalkStop, err
			}
		}
		return ast.WalkSkipChildren, nil
	}
	return ast.WalkContinue, nil
}

func (w *walker) status(err error) (ast.WalkStatus, error) {
	if err != nil {
		return ast.WalkStop, err
	}
	return ast.WalkContinue, nil
}

func listBlock(n *ast.List) *Block {
	b := &Block{Kind: BlockUnorderedList, Tight: n.IsTight, Delimiter: n.Marker}
	if n.IsOrdered() {
		b.Kind = BlockOrderedList
		b.Start = n.Start
	}
	return b
}

func cellAlign(a east.Alignment) Alignment {
	switch a {
	case east.AlignLeft:
		return AlignLeft
	case east.AlignCenter:
		return AlignCenter
	case east.AlignRight:
		return AlignRight
	}
	return AlignDefault
}

// codeBlock reports each source line, trailing newline included, as one
// code text run.
func (w *walker) codeBlock(entering bool, n ast.Node, b *Block) (ast.WalkStatus, error) {
	if !entering {
		return w.block(false, b)
	}
	if err := w.h.EnterBlock(b); err != nil {
		return ast.WalkStop, err
	}
	if err := w.lines(TextCode, n.Lines()); err != nil {
		return ast.WalkStop, err
	}
	return ast.WalkSkipChildren, nil
}

func (w *walker) htmlBlock(entering bool, n *ast.HTMLBlock) (ast.WalkStatus, error) {
	b := &Block{Kind: BlockHTML}
	if !entering {
		return w.block(false, b)
	}
	if err := w.h.EnterBlock(b); err != nil {
		return ast.WalkStop, err
	}
	if err := w.lines(TextHTML, n.Lines()); err != nil {
		return ast.WalkStop, err
	}
	if n.HasClosure() {
		if err := w.h.Text(TextHTML, n.ClosureLine.Value(w.src)); err != nil {
			return ast.WalkStop, err
		}
	}
	return ast.WalkSkipChildren, nil
}

func (w *walker) lines(kind TextKind, lines *text.Segments) error {
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		if err := w.h.Text(kind, seg.Value(w.src)); err != nil {
			return err
		}
	}
	return nil
}

// tableHeader reports goldmark's header (cells without a row) as a head
// section holding one row.
func (w *walker) tableHeader(entering bool) (ast.WalkStatus, error) {
	head := &Block{Kind: BlockTableHead}
	row := &Block{Kind: BlockTableRow}
	if entering {
		if err := w.h.EnterBlock(head); err != nil {
			return ast.WalkStop, err
		}
		return w.block(true, row)
	}
	if err := w.h.LeaveBlock(row); err != nil {
		return ast.WalkStop, err
	}
	return w.block(false, head)
}

// tableRow wraps the run of body rows in a body section.
func (w *walker) tableRow(entering bool, n *east.TableRow) (ast.WalkStatus, error) {
	body := &Block{Kind: BlockTableBody}
	row := &Block{Kind: BlockTableRow}
	if entering {
		if _, ok := n.PreviousSibling().(*east.TableRow); !ok {
			if err := w.h.EnterBlock(body); err != nil {
				return ast.WalkStop, err
			}
		}
		return w.block(true, row)
	}
	if err := w.h.LeaveBlock(row); err != nil {
		return ast.WalkStop, err
	}
	if n.NextSibling() == nil {
		return w.block(false, body)
	}
	return ast.WalkContinue, nil
}

func (w *walker) codeSpan(entering bool, n *ast.CodeSpan) (ast.WalkStatus, error) {
	s := &Span{Kind: SpanCode}
	if !entering {
		return w.span(false, s)
	}
	if err := w.h.EnterSpan(s); err != nil {
		return ast.WalkStop, err
	}
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		var value []byte
		switch c := c.(type) {
		case *ast.Text:
			value = c.Segment.Value(w.src)
			// A line ending inside a code span reads as a space.
			if bytes.HasSuffix(value, []byte("\n")) {
				value = append(value[:len(value)-1:len(value)-1], ' ')
			}
		case *ast.String:
			value = c.Value
		default:
			continue
		}
		if err := w.h.Text(TextCode, value); err != nil {
			return ast.WalkStop, err
		}
	}
	return ast.WalkSkipChildren, nil
}

func (w *walker) autoLink(entering bool, n *ast.AutoLink) (ast.WalkStatus, error) {
	url := n.URL(w.src)
	if n.AutoLinkType == ast.AutoLinkEmail && !bytes.HasPrefix(bytes.ToLower(url), mailtoPrefix) {
		url = append(append([]byte{}, mailtoPrefix...), url...)
	}
	s := &Span{Kind: SpanLink, Href: url}
	if !entering {
		return w.span(false, s)
	}
	if err := w.h.EnterSpan(s); err != nil {
		return ast.WalkStop, err
	}
	if err := w.h.Text(TextNormal, n.Label(w.src)); err != nil {
		return ast.WalkStop, err
	}
	return ast.WalkSkipChildren, nil
}

// emphasisKind maps goldmark emphasis to a span. With ParserUnderline,
// single emphasis written with underscores becomes underline.
func (w *walker) emphasisKind(n *ast.Emphasis) SpanKind {
	if n.Level >= 2 {
		return SpanStrong
	}
	if w.flags&ParserUnderline != 0 && w.emphasisMarker(n) == '_' {
		return SpanUnderline
	}
	return SpanEmphasis
}

// emphasisMarker returns the delimiter character of n, read from the source
// position where n opens.
func (w *walker) emphasisMarker(n *ast.Emphasis) byte {
	if pos, ok := w.openOffset(n); ok && pos < len(w.src) {
		return w.src[pos]
	}
	return '*'
}

// openOffset returns the source offset of the first byte of inline node n,
// including its opening delimiters. It derives the offset from the first
// descendant that carries a source segment.
func (w *walker) openOffset(n ast.Node) (int, bool) {
	var pos int
	var ok bool
	switch n := n.(type) {
	case *ast.Text:
		pos, ok = n.Segment.Start, true
	case *ast.Emphasis:
		if pos, ok = w.firstChildOffset(n); ok {
			pos -= n.Level
		}
	case *ast.Link:
		if pos, ok = w.firstChildOffset(n); ok {
			pos-- // [
		}
	case *ast.Image:
		if pos, ok = w.firstChildOffset(n); ok {
			pos -= 2 // ![
		}
	case *ast.CodeSpan:
		t, isText := n.FirstChild().(*ast.Text)
		if !isText {
			return 0, false
		}
		pos, ok = t.Segment.Start, true
		// One padding space may have been trimmed from the content.
		if pos > 1 && (w.src[pos-1] == ' ' || w.src[pos-1] == '\n') && w.src[pos-2] == '`' {
			pos--
		}
		for pos > 0 && w.src[pos-1] == '`' {
			pos--
		}
	case *ast.AutoLink:
		if pos, ok = w.sourceOffset(n.Label(w.src)); ok && pos > 0 && w.src[pos-1] == '<' {
			pos--
		}
	case *ast.RawHTML:
		if n.Segments.Len() > 0 {
			pos, ok = n.Segments.At(0).Start, true
		}
	}
	if !ok || pos < 0 {
		return 0, false
	}
	return pos, true
}

func (w *walker) firstChildOffset(n ast.Node) (int, bool) {
	if c := n.FirstChild(); c != nil {
		return w.openOffset(c)
	}
	return 0, false
}

// sourceOffset locates b inside the source when b is a subslice of it.
func (w *walker) sourceOffset(b []byte) (int, bool) {
	if len(b) == 0 {
		return 0, false
	}
	off := cap(w.src) - cap(b)
	if off < 0 || off >= len(w.src) || &w.src[off] != &b[0] {
		return 0, false
	}
	return off, true
}

func (w *walker) text(n *ast.Text) error {
	value := n.Segment.Value(w.src)
	var err error
	if n.IsRaw() {
		err = w.h.Text(TextNormal, value)
	} else {
		err = w.emitText(TextNormal, value)
	}
	if err != nil {
		return err
	}
	switch {
	case n.HardLineBreak():
		return w.h.Text(TextBreak, nil)
	case n.SoftLineBreak():
		if w.flags&ParserHardSoftBreaks != 0 {
			return w.h.Text(TextBreak, nil)
		}
		return w.h.Text(TextSoftBreak, nil)
	}
	return nil
}

// emitText splits a source text run at backslash escapes, whose backslash is
// dropped, at entity references, reported as TextEntity, and at NUL bytes.
func (w *walker) emitText(kind TextKind, b []byte) error {
	beg := 0
	flush := func(end int) error {
		if end > beg {
			return w.h.Text(kind, b[beg:end])
		}
		return nil
	}
	for i := 0; i < len(b); {
		switch c := b[i]; {
		case c == '\\' && i+1 < len(b) && util.IsPunct(b[i+1]):
			if err := flush(i); err != nil {
				return err
			}
			beg = i + 1
			i += 2
		case c == '&':
			n := entityLen(b[i:])
			if n == 0 {
				i++
				continue
			}
			if err := flush(i); err != nil {
				return err
			}
			if err := w.h.Text(TextEntity, b[i:i+n]); err != nil {
				return err
			}
			i += n
			beg = i
		case c == 0:
			if err := flush(i); err != nil {
				return err
			}
			if err := w.h.Text(TextNullChar, nil); err != nil {
				return err
			}
			i++
			beg = i
		default:
			i++
		}
	}
	return flush(len(b))
}
