package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/muesli/reflow/wordwrap"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"golang.org/x/term"
	"pkt.systems/mdrtf"
	"pkt.systems/version"
)

const defaultUsageWidth = 80

const description = "Converts Markdown to Rich Text Format. Inputs may be files, file:// " +
	"or http(s):// URLs and are concatenated in order; with no input, Markdown is read " +
	"from stdin. Every flag can also be set in $XDG_CONFIG_HOME/mdrtf/config.yaml " +
	"(or .toml/.json) or through MDRTF_* environment variables, e.g. MDRTF_FONT_SIZE=14."

func init() {
	version.SetDefaultModule("pkt.systems/mdrtf")
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var (
		outPath     string
		configPath  string
		showVersion bool
	)
	flags := pflag.NewFlagSet("mdrtf", pflag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.StringVarP(&outPath, "output", "o", "", "Output file instead of stdout")
	flags.StringVarP(&configPath, "config", "c", "", "Config file (yaml, toml or json)")
	flags.BoolVar(&showVersion, "version", false, "Print version and exit")
	registerFlags(flags)

	flags.SetInterspersed(true)
	flags.Usage = func() {
		fmt.Fprintln(stderr, version.Module(), version.Current())
		fmt.Fprintf(stderr, "Usage: mdrtf [flags] [inputs...]\n\n")
		fmt.Fprintln(stderr, wordwrap.String(description, usageWidth(stderr)))
		fmt.Fprintln(stderr, "\nFlags:")
		flags.PrintDefaults()
	}

	if err := flags.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		return 2
	}
	if showVersion {
		fmt.Fprintln(stdout, version.Module(), version.Current())
		return 0
	}

	s, err := loadSettings(viper.New(), flags, configPath)
	if err != nil {
		fmt.Fprintf(stderr, "config: %v\n", err)
		return 2
	}
	cfg, err := s.renderConfig()
	if err != nil {
		fmt.Fprintf(stderr, "config: %v\n", err)
		return 2
	}
	if s.Debug && s.ConfigFile != "" {
		fmt.Fprintf(stderr, "using config %s\n", s.ConfigFile)
	}

	inputs := flags.Args()
	if len(inputs) == 0 && isTerminal(stdin) {
		fmt.Fprintln(stderr, "reading Markdown from stdin (end with Ctrl-D)")
	}
	reader, closer, err := openInputs(inputs, stdin)
	if err != nil {
		fmt.Fprintf(stderr, "open input: %v\n", err)
		return 1
	}
	if closer != nil {
		defer func() { _ = closer.Close() }()
	}
	src, err := io.ReadAll(reader)
	if err != nil {
		fmt.Fprintf(stderr, "read input: %v\n", err)
		return 1
	}
	if !s.AllowBinary {
		if err := mdrtf.ValidateInput(src); err != nil {
			fmt.Fprintf(stderr, "input: %v (use --allow-binary to render anyway)\n", err)
			return 1
		}
	}

	writer, closeOut, err := resolveOutput(outPath, stdout)
	if err != nil {
		fmt.Fprintf(stderr, "open output: %v\n", err)
		return 1
	}
	if isTerminal(writer) {
		fmt.Fprintln(stderr, "warning: writing RTF to a terminal; use -o/--output to save a document")
	}

	// Buffer so a failed render leaves no partial document behind.
	var out bytes.Buffer
	if err := mdrtf.Convert(src, &out, cfg, s.renderOptions()...); err != nil {
		if closeOut != nil {
			_ = closeOut.Close()
		}
		fmt.Fprintf(stderr, "%v\n", err)
		return 1
	}
	if _, err := out.WriteTo(writer); err != nil {
		fmt.Fprintf(stderr, "write output: %v\n", err)
		return 1
	}
	if closeOut != nil {
		if err := closeOut.Close(); err != nil {
			fmt.Fprintf(stderr, "close output: %v\n", err)
			return 1
		}
	}
	return 0
}

func usageWidth(w io.Writer) int {
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		if width, _, err := term.GetSize(int(f.Fd())); err == nil && width > 0 {
			return width
		}
	}
	return defaultUsageWidth
}

type inputSource struct {
	open func() (io.Reader, io.Closer, error)
}

type multiInputReader struct {
	sources   []inputSource
	idx       int
	cur       io.Reader
	curCloser io.Closer
	closed    bool
}

func (m *multiInputReader) Read(p []byte) (int, error) {
	for {
		if m.closed {
			return 0, io.EOF
		}
		if m.cur == nil {
			if m.idx >= len(m.sources) {
				m.closed = true
				return 0, io.EOF
			}
			reader, closer, err := m.sources[m.idx].open()
			if err != nil {
				return 0, err
			}
			m.cur = reader
			m.curCloser = closer
			m.idx++
		}
		n, err := m.cur.Read(p)
		if n > 0 {
			return n, nil
		}
		if err == io.EOF {
			if m.curCloser != nil {
				_ = m.curCloser.Close()
			}
			m.cur = nil
			m.curCloser = nil
			continue
		}
		if err != nil {
			return 0, err
		}
	}
}

func (m *multiInputReader) Close() error {
	m.closed = true
	if m.curCloser != nil {
		return m.curCloser.Close()
	}
	return nil
}

func openInputs(args []string, stdin io.Reader) (io.Reader, io.Closer, error) {
	if len(args) == 0 {
		return stdin, nil, nil
	}
	sources := make([]inputSource, 0, len(args))
	for _, raw := range args {
		if raw == "-" {
			sources = append(sources, inputSource{open: func() (io.Reader, io.Closer, error) {
				return stdin, nil, nil
			}})
			continue
		}
		src, err := makeInputSource(raw)
		if err != nil {
			return nil, nil, err
		}
		sources = append(sources, src)
	}
	m := &multiInputReader{sources: sources}
	return m, m, nil
}

func makeInputSource(raw string) (inputSource, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return inputSource{}, fmt.Errorf("empty input argument")
	}
	u, err := url.Parse(raw)
	if err == nil && u.Scheme != "" {
		switch strings.ToLower(u.Scheme) {
		case "http", "https":
			return inputSource{open: func() (io.Reader, io.Closer, error) {
				return openURL(raw)
			}}, nil
		case "file":
			path := u.Path
			if path == "" {
				path = u.Host
			}
			if unescaped, err := url.PathUnescape(path); err == nil {
				path = unescaped
			}
			return inputSource{open: func() (io.Reader, io.Closer, error) {
				return openFile(path)
			}}, nil
		}
	}
	return inputSource{open: func() (io.Reader, io.Closer, error) {
		return openFile(raw)
	}}, nil
}

func openURL(raw string) (io.Reader, io.Closer, error) {
	body, err := mdrtf.OpenHTTP(context.Background(), nil, raw)
	if err != nil {
		return nil, nil, err
	}
	return body, body, nil
}

func openFile(path string) (io.Reader, io.Closer, error) {
	clean := normalizePath(path)
	f, err := os.Open(clean)
	if err != nil {
		return nil, nil, err
	}
	return f, f, nil
}

func resolveOutput(path string, stdout io.Writer) (io.Writer, io.Closer, error) {
	if strings.TrimSpace(path) == "" || path == "-" {
		return stdout, nil, nil
	}
	clean := normalizePath(path)
	dir := filepath.Dir(clean)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, nil, err
		}
	}
	f, err := os.Create(clean)
	if err != nil {
		return nil, nil, err
	}
	return f, f, nil
}

func normalizePath(path string) string {
	if strings.HasPrefix(path, "~/") || path == "~" {
		home, err := os.UserHomeDir()
		if err == nil {
			if path == "~" {
				path = home
			} else {
				path = filepath.Join(home, path[2:])
			}
		}
	}
	abs, err := filepath.Abs(path)
	if err == nil {
		return abs
	}
	return path
}

func isTerminal(v any) bool {
	f, ok := v.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
