package mdrtf

// BlockKind identifies a block-level structure in the event stream.
type BlockKind uint8

const (
	BlockDocument BlockKind = iota
	BlockQuote
	BlockUnorderedList
	BlockOrderedList
	BlockListItem
	BlockThematicBreak
	BlockHeading
	BlockCode
	BlockHTML
	BlockParagraph
	BlockTable
	BlockTableHead
	BlockTableBody
	BlockTableRow
	BlockTableHeaderCell
	BlockTableCell
)

var blockKindNames = [...]string{
	BlockDocument:        "doc",
	BlockQuote:           "quote",
	BlockUnorderedList:   "ul",
	BlockOrderedList:     "ol",
	BlockListItem:        "li",
	BlockThematicBreak:   "hr",
	BlockHeading:         "h",
	BlockCode:            "code",
	BlockHTML:            "html",
	BlockParagraph:       "p",
	BlockTable:           "table",
	BlockTableHead:       "thead",
	BlockTableBody:       "tbody",
	BlockTableRow:        "tr",
	BlockTableHeaderCell: "th",
	BlockTableCell:       "td",
}

func (k BlockKind) String() string {
	if int(k) < len(blockKindNames) {
		return blockKindNames[k]
	}
	return "block?"
}

// SpanKind identifies an inline structure in the event stream.
type SpanKind uint8

const (
	SpanEmphasis SpanKind = iota
	SpanStrong
	SpanUnderline
	SpanStrikethrough
	SpanCode
	SpanLink
	SpanImage
)

var spanKindNames = [...]string{
	SpanEmphasis:      "em",
	SpanStrong:        "strong",
	SpanUnderline:     "u",
	SpanStrikethrough: "del",
	SpanCode:          "code",
	SpanLink:          "a",
	SpanImage:         "img",
}

func (k SpanKind) String() string {
	if int(k) < len(spanKindNames) {
		return spanKindNames[k]
	}
	return "span?"
}

// TextKind classifies a text run.
type TextKind uint8

const (
	TextNormal TextKind = iota
	TextCode
	TextHTML
	TextEntity
	TextBreak
	TextSoftBreak
	TextNullChar
)

var textKindNames = [...]string{
	TextNormal:    "text",
	TextCode:      "code",
	TextHTML:      "html",
	TextEntity:    "entity",
	TextBreak:     "br",
	TextSoftBreak: "softbr",
	TextNullChar:  "nul",
}

func (k TextKind) String() string {
	if int(k) < len(textKindNames) {
		return textKindNames[k]
	}
	return "text?"
}

// Alignment is the horizontal alignment of a table column.
type Alignment uint8

const (
	AlignDefault Alignment = iota
	AlignLeft
	AlignCenter
	AlignRight
)

// Block describes a block event. Only the fields relevant to Kind are set.
type Block struct {
	Kind BlockKind

	// Level is the heading level, 1 to 6.
	Level int

	// Tight, Start and Delimiter describe lists. Delimiter is '.' or ')' for
	// ordered lists and the bullet character for unordered ones.
	Tight     bool
	Start     int
	Delimiter byte

	// Columns is the column count of a table.
	Columns int

	// Align is the alignment of a table cell.
	Align Alignment

	// Info is the info string of a fenced code block.
	Info string
}

// Span describes a span event.
type Span struct {
	Kind SpanKind

	// Href and Title are set for links and images.
	Href  []byte
	Title []byte
}

// Handler receives the structural events of one document, in document
// order. A non-nil error stops the event source.
type Handler interface {
	EnterBlock(b *Block) error
	LeaveBlock(b *Block) error
	EnterSpan(s *Span) error
	LeaveSpan(s *Span) error
	Text(kind TextKind, text []byte) error
}
