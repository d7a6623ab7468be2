package mdrtf

func (r *Renderer) enterSpan(s *Span) {
	switch s.Kind {
	case SpanEmphasis:
		_, _ = r.out.WriteString(`\i `)
	case SpanStrong:
		_, _ = r.out.WriteString(`\b `)
	case SpanUnderline:
		_, _ = r.out.WriteString(`\ul `)
	case SpanStrikethrough:
		_, _ = r.out.WriteString(`\strike `)
	case SpanCode:
		r.fontMono()
	case SpanLink:
		// The visible text follows inside \fldrslt; leaveSpan closes both
		// groups.
		_, _ = r.out.WriteString(`\cf4\ul {\field{\*\fldinst HYPERLINK "`)
		r.writeURLEscaped(s.Href)
		_, _ = r.out.WriteString(`"}{\fldrslt `)
	}
}

func (r *Renderer) leaveSpan(s *Span) {
	switch s.Kind {
	case SpanEmphasis:
		_, _ = r.out.WriteString(`\i0 `)
	case SpanStrong:
		_, _ = r.out.WriteString(`\b0 `)
	case SpanUnderline:
		_, _ = r.out.WriteString(`\ul0 `)
	case SpanStrikethrough:
		_, _ = r.out.WriteString(`\strike0 `)
	case SpanCode:
		r.fontNormal()
	case SpanLink:
		_, _ = r.out.WriteString(`}}\ul0 \cf0 `)
	}
}
