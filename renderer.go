package mdrtf

import (
	"context"
	"io"
	"log/slog"
)

// Renderer turns structural Markdown events into RTF. It implements Handler
// and holds all state of one render; a Renderer is not safe for concurrent
// use and is not reused across documents.
type Renderer struct {
	out   *Sink
	esc   escapeTable
	flags Flags
	log   *slog.Logger
	trace bool

	page     pageGeometry
	fontBase int
	cw       controlWords

	lists     [maxListDepth]listLevel
	listDepth int
	listStop  bool
	listReset bool

	tableCols int
	tableHead bool

	noParEnd bool
}

var _ Handler = (*Renderer)(nil)

// NewRenderer returns a Renderer writing RTF to w. Call Flush once the last
// event has been delivered.
func NewRenderer(w io.Writer, cfg Config, opts ...RenderOption) *Renderer {
	return newRenderer(w, applyConfig(cfg), buildRenderConfig(opts))
}

func newRenderer(w io.Writer, cfg Config, rc renderConfig) *Renderer {
	switch {
	case cfg.DocWidth < minDocWidth:
		cfg.DocWidth = minDocWidth
	case cfg.DocWidth > maxDocWidth:
		cfg.DocWidth = maxDocWidth
	}
	log := resolveLogger(rc.logger, cfg.Flags)
	r := &Renderer{
		out:       NewSink(w, rc.maxOutput),
		esc:       newEscapeTable(),
		flags:     cfg.Flags,
		log:       log,
		trace:     cfg.Flags&FlagDebug != 0 && log.Enabled(context.Background(), slog.LevelDebug),
		page:      newPageGeometry(cfg.DocWidth),
		fontBase:  fontBase(cfg.FontSize),
		listDepth: -1,
	}
	r.cw = newControlWords(r.fontBase, r.page)
	return r
}

// Flush writes any buffered output and returns the first output error.
func (r *Renderer) Flush() error {
	return r.out.Flush()
}

// Written returns the number of RTF bytes delivered to the writer or still
// buffered for it.
func (r *Renderer) Written() int {
	return r.out.Len()
}

// EnterBlock implements Handler.
func (r *Renderer) EnterBlock(b *Block) error {
	if r.trace {
		r.log.Debug("enter block", "kind", b.Kind.String(), "depth", r.listDepth)
	}
	switch b.Kind {
	case BlockDocument:
		r.enterDocument()
	case BlockQuote:
		r.enterQuote()
	case BlockUnorderedList, BlockOrderedList:
		r.enterList(b)
	case BlockListItem:
		r.enterListItem()
	case BlockThematicBreak:
		r.enterThematicBreak()
	case BlockHeading:
		r.enterHeading(b)
	case BlockCode:
		r.enterCode()
	case BlockParagraph:
		r.fontNormal()
	case BlockTable:
		r.enterTable(b)
	case BlockTableHead:
		r.tableHead = true
	case BlockTableRow:
		r.enterTableRow()
	case BlockTableHeaderCell, BlockTableCell:
		r.enterTableCell(b)
	}
	return r.out.Err()
}

// LeaveBlock implements Handler.
func (r *Renderer) LeaveBlock(b *Block) error {
	if r.trace {
		r.log.Debug("leave block", "kind", b.Kind.String(), "depth", r.listDepth)
	}
	switch b.Kind {
	case BlockDocument:
		_, _ = r.out.WriteString("}")
	case BlockQuote:
		r.leaveQuote()
	case BlockUnorderedList, BlockOrderedList:
		r.leaveList()
	case BlockListItem:
		r.leaveListItem()
	case BlockHeading:
		r.leaveHeading(b)
	case BlockCode:
		r.leaveCode()
	case BlockParagraph:
		if !r.noParEnd {
			_, _ = r.out.WriteString("\\par\r\n")
		}
	case BlockTable:
		r.leaveTable()
	case BlockTableHead:
		r.tableHead = false
	case BlockTableRow:
		_, _ = r.out.WriteString("\\row\r\n")
	case BlockTableHeaderCell:
		_, _ = r.out.WriteString(`\b0\intbl\cell `)
	case BlockTableCell:
		_, _ = r.out.WriteString(`\intbl\cell `)
	}
	return r.out.Err()
}

// EnterSpan implements Handler.
func (r *Renderer) EnterSpan(s *Span) error {
	if r.trace {
		r.log.Debug("enter span", "kind", s.Kind.String())
	}
	r.enterSpan(s)
	return r.out.Err()
}

// LeaveSpan implements Handler.
func (r *Renderer) LeaveSpan(s *Span) error {
	if r.trace {
		r.log.Debug("leave span", "kind", s.Kind.String())
	}
	r.leaveSpan(s)
	return r.out.Err()
}

// Text implements Handler.
func (r *Renderer) Text(kind TextKind, text []byte) error {
	if r.trace {
		r.log.Debug("text", "kind", kind.String(), "text", textPreview(text))
	}
	switch kind {
	case TextNullChar:
	case TextBreak:
		_, _ = r.out.WriteString(`\line `)
	case TextSoftBreak:
		// RTF ignores CR and LF; the space keeps the words apart.
		_, _ = r.out.WriteString("\r\n ")
	case TextEntity:
		r.writeEntity(text)
	default:
		r.writeRTFEscaped(text)
	}
	return r.out.Err()
}
