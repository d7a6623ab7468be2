package mdrtf

import (
	"bytes"
	"testing"
)

func newTestRenderer(t *testing.T, cfg Config) (*Renderer, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	return NewRenderer(&out, cfg), &out
}

func flushed(t *testing.T, r *Renderer, out *bytes.Buffer) string {
	t.Helper()
	if err := r.Flush(); err != nil {
		t.Fatalf("flush: %v", err)
	}
	return out.String()
}

func TestWriteRTFEscaped(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "plain", in: "plain text", want: "plain text"},
		{name: "reserved", in: `a\b{c}d`, want: `a\\b\{c\}d`},
		{name: "newline", in: "x\ny", want: `x\line y`},
		{name: "two byte", in: "é", want: `\u233 `},
		{name: "three byte", in: "€5", want: `\u8364 5`},
		{name: "four byte", in: "😀", want: `\u128512 `},
		{name: "stray lead", in: "\xC3x", want: `\'c3x`},
		{name: "stray continuation", in: "\x80", want: `\'80`},
		{name: "truncated four byte", in: "\xF0\x9F\x98", want: `\'f0\'9f\'98`},
		{name: "bad third continuation", in: "\xF0\x9F\x28\x80", want: `\'f0\'9f(\'80`},
		{name: "long ascii run", in: "abcdefghijklmnop{", want: `abcdefghijklmnop\{`},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			r, out := newTestRenderer(t, DefaultConfig())
			r.writeRTFEscaped([]byte(tc.in))
			if got := flushed(t, r, out); got != tc.want {
				t.Fatalf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestWriteURLEscaped(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in   string
		want string
	}{
		{in: "https://example.com/a_b-c.d?q=1", want: "https://example.com/a_b-c.d?q=1"},
		{in: "http://x/?a=1&b=2", want: "http://x/?a=1&amp;b=2"},
		{in: `http://x/"quoted" path`, want: "http://x/%22quoted%22%20path"},
		{in: "http://x/{a}\\", want: "http://x/%7Ba%7D%5C"},
		{in: "http://x/é", want: "http://x/%C3%A9"},
	}
	for _, tc := range tests {
		r, out := newTestRenderer(t, DefaultConfig())
		r.writeURLEscaped([]byte(tc.in))
		if got := flushed(t, r, out); got != tc.want {
			t.Fatalf("escape %q: got %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestDecodeUTF8(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in   string
		cp   rune
		size int
	}{
		{in: "é", cp: 'é', size: 2},
		{in: "€", cp: '€', size: 3},
		{in: "😀", cp: '😀', size: 4},
		{in: "\xC3", size: 0},
		{in: "\xE2\x82", size: 0},
		{in: "\xFF", size: 0},
	}
	for _, tc := range tests {
		cp, n := decodeUTF8([]byte(tc.in))
		if n != tc.size || (n > 0 && cp != tc.cp) {
			t.Fatalf("decode %q: got (%U, %d), want (%U, %d)", tc.in, cp, n, tc.cp, tc.size)
		}
	}
}
