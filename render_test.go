package mdrtf

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestRenderTitleAndParagraph(t *testing.T) {
	t.Parallel()
	var out bytes.Buffer
	err := Render(RenderRequest{
		Reader: strings.NewReader("# Title\n\nHello *world*."),
		Writer: &out,
		Config: DefaultConfig(),
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	want := testHeader +
		`\fs52\sa48\b Title\b0 \par` + "\r\n" +
		`\f0\fs24 Hello \i world\i0 .\par` + "\r\n" +
		`}`
	if diff := cmp.Diff(want, out.String()); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderZeroConfigUsesDefaults(t *testing.T) {
	t.Parallel()
	var out bytes.Buffer
	if err := Render(RenderRequest{Reader: strings.NewReader("x"), Writer: &out}); err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.HasPrefix(out.String(), testHeader) {
		t.Fatalf("unexpected header: %q", out.String())
	}
}

func TestRenderEmptyInput(t *testing.T) {
	t.Parallel()
	got := renderRTF(t, "")
	if got != testHeader+"}" {
		t.Fatalf("unexpected output: %q", got)
	}
}

func TestRenderRequestValidation(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		req  RenderRequest
		want string
	}{
		{name: "nil reader", req: RenderRequest{Writer: io.Discard}, want: "reader is nil"},
		{name: "nil writer", req: RenderRequest{Reader: strings.NewReader("x")}, want: "writer is nil"},
		{
			name: "narrow page",
			req:  RenderRequest{Reader: strings.NewReader("x"), Writer: io.Discard, Config: Config{DocWidth: 39}},
			want: "width 39 mm is outside 40 to 1000 mm",
		},
		{
			name: "wide page",
			req:  RenderRequest{Reader: strings.NewReader("x"), Writer: io.Discard, Config: Config{DocWidth: 1001}},
			want: "width 1001 mm is outside",
		},
		{
			name: "absurd page",
			req:  RenderRequest{Reader: strings.NewReader("x"), Writer: io.Discard, Config: Config{DocWidth: ^uint(0)}},
			want: "is outside 40 to 1000 mm",
		},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			err := Render(tc.req)
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected error containing %q, got %v", tc.want, err)
			}
		})
	}
}

func TestNewRendererClampsPageWidth(t *testing.T) {
	t.Parallel()
	var out bytes.Buffer
	r := NewRenderer(&out, Config{DocWidth: ^uint(0)})
	want := newPageGeometry(maxDocWidth)
	if r.page != want {
		t.Fatalf("page = %+v, want %+v", r.page, want)
	}
	if r.page.width <= 0 || r.page.height <= r.page.width {
		t.Fatalf("page geometry out of range: %+v", r.page)
	}
	if err := Convert([]byte("x"), &out, Config{DocWidth: maxDocWidth}); err != nil {
		t.Fatalf("widest page rejected: %v", err)
	}
}

func TestRenderSkipsBOM(t *testing.T) {
	t.Parallel()
	src := "\xEF\xBB\xBFHello"
	got := body(t, renderRTF(t, src))
	if got != `\f0\fs24 Hello\par`+"\r\n" {
		t.Fatalf("BOM not skipped: %q", got)
	}
}

func TestRenderFontSizeAndWidth(t *testing.T) {
	t.Parallel()
	cfg := Config{FontSize: 10, DocWidth: 100, ParserFlags: DefaultParserFlags}
	got := renderRTFConfig(t, "Hi", cfg)
	for _, want := range []string{
		`\paperw5668\paperh8016`,
		`\f0\fs20 Hi\par`,
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("missing %q in %q", want, got)
		}
	}
}

func TestRenderMaxOutput(t *testing.T) {
	t.Parallel()
	var out bytes.Buffer
	err := Convert([]byte(strings.Repeat("word ", 200)), &out, DefaultConfig(), WithMaxOutput(300))
	if !errors.Is(err, ErrSinkCapacity) {
		t.Fatalf("expected ErrSinkCapacity, got %v", err)
	}
	if out.Len() > 300 {
		t.Fatalf("wrote %d bytes past a 300 byte limit", out.Len())
	}

	out.Reset()
	if err := Convert([]byte("short"), &out, DefaultConfig(), WithMaxOutput(1<<20)); err != nil {
		t.Fatalf("unexpected error under limit: %v", err)
	}
}

type failingWriter struct{ err error }

func (w failingWriter) Write([]byte) (int, error) { return 0, w.err }

func TestRenderReturnsWriterError(t *testing.T) {
	t.Parallel()
	boom := errors.New("boom")
	err := Convert([]byte("# Hi"), failingWriter{err: boom}, DefaultConfig())
	if !errors.Is(err, boom) {
		t.Fatalf("expected writer error, got %v", err)
	}
}

func TestRenderBalancedBraces(t *testing.T) {
	t.Parallel()
	inputs := []string{
		"# H\n\n> quote {with} braces\n\n- a\n  - b\n- c\n",
		"[link](http://x/?a=1&b={2}) and `code {}` and \\{ \\}",
		"| a | b |\n|---|:-:|\n| 1 | 2 |\n",
		"```\n{\n}\n```\n\n---\n\n<div>{</div>\n",
		strings.Repeat("- ", 12) + "deep\n",
		"\xff\xfe broken utf-8 } {",
	}
	for _, src := range inputs {
		got := renderRTF(t, src)
		depth, low := braceDepth(got)
		if depth != 0 || low < 0 {
			t.Fatalf("unbalanced braces (depth %d, low %d) for %q:\n%q", depth, low, src, got)
		}
	}
}

func TestRenderFrontMatter(t *testing.T) {
	t.Parallel()
	src := "---\ntitle: Post\n---\n\nBody\n"
	got := renderRTF(t, src)
	if strings.Contains(got, "title") {
		t.Fatalf("front matter not stripped: %q", got)
	}
	kept := renderRTF(t, src, WithFrontMatter(true))
	if !strings.Contains(kept, "title: Post") {
		t.Fatalf("front matter dropped with WithFrontMatter(true): %q", kept)
	}
}

func TestRenderDebugLogsEvents(t *testing.T) {
	t.Parallel()
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	cfg := DefaultConfig()
	cfg.Flags |= FlagDebug
	got := renderRTFConfig(t, "# Title\n\n"+strings.Repeat("long text ", 10), cfg, WithLogger(logger))
	if !strings.Contains(got, "Title") {
		t.Fatalf("missing output: %q", got)
	}
	for _, want := range []string{"enter block", "kind=h", "render done", "…"} {
		if !strings.Contains(logs.String(), want) {
			t.Fatalf("missing %q in logs:\n%s", want, logs.String())
		}
	}
}

func TestRenderWithoutDebugIsSilent(t *testing.T) {
	t.Parallel()
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	_ = renderRTF(t, "# Title", WithLogger(logger))
	if logs.Len() != 0 {
		t.Fatalf("expected no logs without FlagDebug, got:\n%s", logs.String())
	}
}

func TestHTTPRender(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/doc.md":
			_, _ = io.WriteString(w, "# Remote\n")
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	var out bytes.Buffer
	err := HTTPRender(context.Background(), HTTPRenderRequest{
		URL:    srv.URL + "/doc.md",
		Client: srv.Client(),
		Writer: &out,
	})
	if err != nil {
		t.Fatalf("http render: %v", err)
	}
	if !strings.Contains(out.String(), `\b Remote\b0`) {
		t.Fatalf("unexpected output: %q", out.String())
	}

	err = HTTPRender(context.Background(), HTTPRenderRequest{
		URL:    srv.URL + "/missing.md",
		Client: srv.Client(),
		Writer: io.Discard,
	})
	if err == nil || !strings.Contains(err.Error(), "404") {
		t.Fatalf("expected status error, got %v", err)
	}

	err = HTTPRender(context.Background(), HTTPRenderRequest{URL: "ftp://example.com/x.md", Writer: io.Discard})
	if err == nil || !strings.Contains(err.Error(), "unsupported scheme") {
		t.Fatalf("expected scheme error, got %v", err)
	}
}

func TestOpenHTTP(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Accept") != markdownAccept {
			http.Error(w, "bad accept", http.StatusNotAcceptable)
			return
		}
		_, _ = io.WriteString(w, "*remote*")
	}))
	defer srv.Close()

	body, err := OpenHTTP(context.Background(), srv.Client(), srv.URL)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	data, err := io.ReadAll(body)
	_ = body.Close()
	if err != nil || string(data) != "*remote*" {
		t.Fatalf("unexpected body %q: %v", data, err)
	}

	tests := []struct {
		name string
		url  string
		want string
	}{
		{name: "empty", url: "", want: "URL is required"},
		{name: "scheme", url: "file:///tmp/x.md", want: `unsupported scheme "file"`},
		{name: "unreachable", url: "http://127.0.0.1:0/x.md", want: "render http:"},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			body, err := OpenHTTP(context.Background(), nil, tc.url)
			if err == nil {
				_ = body.Close()
				t.Fatalf("expected error for %q", tc.url)
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("error %q does not contain %q", err, tc.want)
			}
		})
	}
}

func TestOutputFuncReceivesWholeDocument(t *testing.T) {
	t.Parallel()
	src := strings.Repeat("Paragraph with some text.\n\n", 500)
	var want bytes.Buffer
	if err := Convert([]byte(src), &want, DefaultConfig()); err != nil {
		t.Fatalf("convert: %v", err)
	}
	var got []byte
	calls := 0
	out := OutputFunc(func(p []byte) {
		calls++
		got = append(got, p...)
	})
	if err := Convert([]byte(src), out, DefaultConfig()); err != nil {
		t.Fatalf("convert: %v", err)
	}
	if calls < 2 {
		t.Fatalf("expected chunked delivery, got %d calls", calls)
	}
	if !bytes.Equal(got, want.Bytes()) {
		t.Fatalf("chunked output differs from buffered output")
	}
}
