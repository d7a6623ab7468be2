package mdrtf

import (
	"bytes"
	"fmt"
	"io"
	"sync"
)

var srcBufPool = sync.Pool{
	New: func() any {
		return new(bytes.Buffer)
	},
}

// maxPooledSource bounds the source buffers kept for reuse.
const maxPooledSource = 1 << 20

// RenderRequest configures Render.
type RenderRequest struct {
	Reader  io.Reader
	Writer  io.Writer
	Config  Config
	Options []RenderOption
}

// Render reads Markdown from req.Reader and writes one RTF document to
// req.Writer. Zero FontSize and DocWidth take their defaults.
func Render(req RenderRequest) error {
	if req.Reader == nil {
		return fmt.Errorf("render: reader is nil")
	}
	if req.Writer == nil {
		return fmt.Errorf("render: writer is nil")
	}
	cfg := applyConfig(req.Config)
	if err := validateConfig(cfg); err != nil {
		return err
	}
	buf := srcBufPool.Get().(*bytes.Buffer)
	buf.Reset()
	defer func() {
		if buf.Cap() <= maxPooledSource {
			srcBufPool.Put(buf)
		}
	}()
	if _, err := buf.ReadFrom(req.Reader); err != nil {
		return fmt.Errorf("render: read input: %w", err)
	}
	return convert(buf.Bytes(), req.Writer, cfg, buildRenderConfig(req.Options))
}

// Convert renders the Markdown in src to w.
func Convert(src []byte, w io.Writer, cfg Config, opts ...RenderOption) error {
	if w == nil {
		return fmt.Errorf("render: writer is nil")
	}
	cfg = applyConfig(cfg)
	if err := validateConfig(cfg); err != nil {
		return err
	}
	return convert(src, w, cfg, buildRenderConfig(opts))
}

func convert(src []byte, w io.Writer, cfg Config, rc renderConfig) error {
	if cfg.Flags&FlagSkipUTF8BOM != 0 {
		src = trimBOM(src)
	}
	if !rc.keepFrontMatter {
		src = stripFrontMatter(src)
	}
	r := newRenderer(w, cfg, rc)
	defer r.out.release()
	if r.trace {
		r.log.Debug("render start",
			"bytes", len(src),
			"font_base", r.fontBase,
			"page_width", r.page.width,
			"page_height", r.page.height)
	}
	if err := Parse(src, cfg.ParserFlags, r); err != nil {
		return fmt.Errorf("render: %w", err)
	}
	if err := r.Flush(); err != nil {
		return fmt.Errorf("render: %w", err)
	}
	if r.trace {
		r.log.Debug("render done", "written", r.Written())
	}
	return nil
}
