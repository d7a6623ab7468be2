package mdrtf

import (
	"strconv"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestRenderBlocks(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "heading level 4",
			src:  "#### Four",
			want: `\fs28\sa48\b\i Four\b0\i0 \par` + "\r\n",
		},
		{
			name: "heading level 2",
			src:  "Two\n---",
			want: `\fs40\sa48\b Two\b0 \par` + "\r\n",
		},
		{
			name: "quote",
			src:  "> quoted",
			want: `\pard\f0\fs24 \trowd\trgaph144\trleft288` +
				hiddenTop + hiddenBottom + quoteBar + hiddenRight + `\cellx8723 ` +
				`\f0\fs24 quoted` +
				`\cell\row` + listEnd,
		},
		{
			name: "fenced code",
			src:  "```go\nx := {}\n```",
			want: `\pard\f1\fs21 \trowd\trgaph144\trleft288` +
				hiddenTop + hiddenBottom + hiddenLeft + hiddenRight + `\cellx8723 ` +
				`x := \{\}\line ` +
				`\cell\row\pard\f0\sa144 `,
		},
		{
			name: "indented code",
			src:  "    a\\b",
			want: `\pard\f1\fs21 \trowd\trgaph144\trleft288` +
				hiddenTop + hiddenBottom + hiddenLeft + hiddenRight + `\cellx8723 ` +
				`a\\b` +
				`\cell\row\pard\f0\sa144 `,
		},
		{
			name: "thematic break",
			src:  "***",
			want: `\pard\fs0\trowd\trrh0\trautofit1` +
				ruleLine + hiddenBottom + hiddenLeft + hiddenRight +
				`\cellx23808 \par\cell\row` + listEnd,
		},
		{
			name: "html block",
			src:  "<div>\n{x}\n</div>",
			want: `<div>\line \{x\}\line </div>`,
		},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := body(t, renderRTF(t, tc.src))
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRenderSpans(t *testing.T) {
	t.Parallel()
	cfg := DefaultConfig()
	cfg.ParserFlags |= ParserStrikethrough | ParserTaskLists
	tests := []struct {
		name string
		src  string
		want string
	}{
		{name: "emphasis", src: "*e*", want: `\i e\i0 `},
		{name: "strong", src: "**s**", want: `\b s\b0 `},
		{name: "underline", src: "_u_", want: `\ul u\ul0 `},
		{name: "strong underscore", src: "__s__", want: `\b s\b0 `},
		{name: "nested", src: "**_x_**", want: `\b \ul x\ul0 \b0 `},
		{name: "underline around strong", src: "_**x**_", want: `\ul \b x\b0 \ul0 `},
		{name: "underline around code", src: "_`c`_", want: `\ul \f1\fs21 c\f0\fs24 \ul0 `},
		{name: "underline around padded code", src: "_`` `c` ``_", want: `\ul \f1\fs21 ` + "`c`" + `\f0\fs24 \ul0 `},
		{
			name: "underline around link",
			src:  "_[l](http://x.y)_",
			want: `\ul \cf4\ul {\field{\*\fldinst HYPERLINK "http://x.y"}{\fldrslt l}}\ul0 \cf0 \ul0 `,
		},
		{name: "emphasis around code", src: "*`c`*", want: `\i \f1\fs21 c\f0\fs24 \i0 `},
		{name: "strikethrough", src: "~~d~~", want: `\strike d\strike0 `},
		{name: "code span", src: "`x{}`", want: `\f1\fs21 x\{\}\f0\fs24 `},
		{
			name: "link",
			src:  "[t](http://a/?x=1&y=2)",
			want: `\cf4\ul {\field{\*\fldinst HYPERLINK "http://a/?x=1&amp;y=2"}{\fldrslt t}}\ul0 \cf0 `,
		},
		{
			name: "email autolink",
			src:  "<me@example.com>",
			want: `\cf4\ul {\field{\*\fldinst HYPERLINK "mailto:me@example.com"}{\fldrslt me@example.com}}\ul0 \cf0 `,
		},
		{name: "hard break", src: "a  \nb", want: `\line b`},
		{name: "soft break", src: "a\nb", want: "a\r\n b"},
		{name: "backslash escape", src: `\*not\*`, want: `*not*`},
		{name: "inline html", src: "a <b>x</b>", want: `a <b>x</b>`},
		{name: "image alt", src: "![alt](i.png)", want: `alt`},
		{name: "task", src: "- [x] done", want: `\u` + strconv.Itoa(0x2612) + ` done`},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := body(t, renderRTFConfig(t, tc.src, cfg))
			if !strings.Contains(got, tc.want) {
				t.Fatalf("missing %q in %q", tc.want, got)
			}
		})
	}
}

func TestUnderlineDisabled(t *testing.T) {
	t.Parallel()
	cfg := DefaultConfig()
	cfg.ParserFlags &^= ParserUnderline
	got := body(t, renderRTFConfig(t, "_u_", cfg))
	if !strings.Contains(got, `\i u\i0 `) {
		t.Fatalf("expected emphasis without underline flag, got %q", got)
	}
}

func TestHardSoftBreaks(t *testing.T) {
	t.Parallel()
	cfg := DefaultConfig()
	cfg.ParserFlags |= ParserHardSoftBreaks
	got := body(t, renderRTFConfig(t, "a\nb", cfg))
	if !strings.Contains(got, `a\line b`) {
		t.Fatalf("soft break not promoted: %q", got)
	}
}
