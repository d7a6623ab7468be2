package mdrtf

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

const testHeader = `{\rtf1\ansi\ansicpg1252\deff0{\fonttbl{\f0\fswiss Calibri;}{\f1\fmodern Courier New;}}` +
	`{\colortbl;\red0\green0\blue0;\red255\green255\blue255;\red180\green180\blue180;\red0\green102\blue204;\red230\green230\blue230;}` +
	`{\*\generator mdrtf}\paperw11904\paperh16835\margl400\margr400\margt400\margb400\uc0` + "\r\n" + `\pard\sa144 `

func renderRTF(t *testing.T, src string, opts ...RenderOption) string {
	t.Helper()
	return renderRTFConfig(t, src, DefaultConfig(), opts...)
}

func renderRTFConfig(t *testing.T, src string, cfg Config, opts ...RenderOption) string {
	t.Helper()
	var out bytes.Buffer
	if err := Convert([]byte(src), &out, cfg, opts...); err != nil {
		t.Fatalf("convert: %v", err)
	}
	return out.String()
}

// body strips the fixed document header and the closing brace.
func body(t *testing.T, rtf string) string {
	t.Helper()
	if !strings.HasPrefix(rtf, testHeader) {
		t.Fatalf("unexpected header: %q", rtf)
	}
	if !strings.HasSuffix(rtf, "}") {
		t.Fatalf("document not closed: %q", rtf)
	}
	return strings.TrimSuffix(strings.TrimPrefix(rtf, testHeader), "}")
}

// braceDepth returns the final group depth of rtf and the lowest depth
// reached, ignoring escaped braces.
func braceDepth(rtf string) (depth, low int) {
	for i := 0; i < len(rtf); i++ {
		switch rtf[i] {
		case '\\':
			i++
		case '{':
			depth++
		case '}':
			depth--
			if depth < low {
				low = depth
			}
		}
	}
	return depth, low
}

func readSample(t testing.TB) []byte {
	t.Helper()
	data, err := os.ReadFile("testdata/sample.md")
	if err != nil {
		t.Fatalf("read sample.md: %v", err)
	}
	return data
}
