// Package mdrtf renders Markdown to Rich Text Format.
//
// Markdown is parsed with goldmark and replayed as a flat stream of
// enter/leave block, enter/leave span and text events (see Handler). The
// Renderer turns those events into RTF 1.x control words that basic viewers
// such as WordPad or TextEdit display correctly: a fixed font and color
// table, page geometry derived from a configurable width, numbered and
// bulleted lists, fixed-width tables and HYPERLINK fields.
//
// Core properties:
//   - Output is ASCII only; non-ASCII text is written as \uN escapes
//   - Braces are always balanced, including for list nesting overflow
//   - Output goes through a batching sink with an optional size cap
//
// Example:
//
//	reader := strings.NewReader("# Hello\n\nMarkdown in, RTF out.\n")
//	err := mdrtf.Render(mdrtf.RenderRequest{
//		Reader: reader,
//		Writer: os.Stdout,
//		Config: mdrtf.DefaultConfig(),
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//
// Rendering can be tuned with RenderOptions such as WithLogger,
// WithMaxOutput and WithFrontMatter.
package mdrtf
