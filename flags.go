package mdrtf

// Flags toggles renderer behavior.
type Flags uint32

const (
	// FlagDebug traces every event through the logger at debug level. When
	// no logger is supplied, records go to stderr.
	FlagDebug Flags = 1 << iota
	// FlagVerbatimEntities renders every entity reference as written,
	// numeric ones included.
	FlagVerbatimEntities
	// FlagSkipUTF8BOM drops a leading UTF-8 byte order mark from the source.
	FlagSkipUTF8BOM
	// FlagNamedEntities resolves named entity references such as &nbsp;.
	// Unknown names are rendered as written.
	FlagNamedEntities
)

// ParserFlags selects the Markdown dialect handed to the parsing engine.
type ParserFlags uint32

const (
	// ParserTables enables pipe tables.
	ParserTables ParserFlags = 1 << iota
	// ParserStrikethrough enables ~~strikethrough~~ spans.
	ParserStrikethrough
	// ParserUnderline renders _single underscore_ emphasis as underline.
	ParserUnderline
	// ParserPermissiveAutolinks recognizes bare URLs, www. links and e-mail
	// addresses without angle brackets.
	ParserPermissiveAutolinks
	// ParserTaskLists enables [ ] and [x] task list items.
	ParserTaskLists
	// ParserHardSoftBreaks renders every soft line break as a hard one.
	ParserHardSoftBreaks
)

const (
	// DialectCommonMark is plain CommonMark.
	DialectCommonMark ParserFlags = 0
	// DialectGitHub approximates GitHub Flavored Markdown.
	DialectGitHub = ParserTables | ParserStrikethrough | ParserPermissiveAutolinks | ParserTaskLists
	// DefaultParserFlags is the dialect used by DefaultConfig.
	DefaultParserFlags = ParserUnderline | ParserTables | ParserPermissiveAutolinks
)
