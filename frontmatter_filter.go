package mdrtf

import "bytes"

// maxFrontMatterBytes bounds how far into the source a closing front matter
// delimiter is searched for.
const maxFrontMatterBytes = 64 * 1024

// stripFrontMatter returns src without a leading YAML (---), TOML (+++) or
// JSON (;;;) front matter block. The block is only recognized when its first
// line looks like metadata and it is closed within maxFrontMatterBytes;
// otherwise src is returned unchanged, so a document opening with a thematic
// break keeps it.
func stripFrontMatter(src []byte) []byte {
	openLine, openNext, ok := nextLine(src, 0)
	if !ok {
		return src
	}
	delim, isFrontMatter := parseOpeningFrontMatterDelimiter(openLine)
	if !isFrontMatter {
		return src
	}
	secondLine, secondNext, ok := nextLine(src, openNext)
	if !ok || !frontMatterMetadataLikely(secondLine) {
		return src
	}
	scan := src
	if len(scan) > maxFrontMatterBytes {
		scan = scan[:maxFrontMatterBytes]
	}
	closeNext, found := findClosingFrontMatterDelimiter(scan, secondNext, delim)
	if !found {
		return src
	}
	return src[closeNext:]
}

// nextLine returns the line starting at start without its line ending, and
// the offset of the following line.
func nextLine(src []byte, start int) ([]byte, int, bool) {
	if start >= len(src) {
		return nil, 0, false
	}
	i := bytes.IndexByte(src[start:], '\n')
	if i < 0 {
		return trimCR(src[start:]), len(src), true
	}
	lineEnd := start + i
	return trimCR(src[start:lineEnd]), lineEnd + 1, true
}

func parseOpeningFrontMatterDelimiter(line []byte) ([]byte, bool) {
	trimmed := bytes.TrimSpace(trimBOM(line))
	switch {
	case bytes.Equal(trimmed, []byte("---")):
		return []byte("---"), true
	case bytes.Equal(trimmed, []byte("+++")):
		return []byte("+++"), true
	case bytes.Equal(trimmed, []byte(";;;")):
		return []byte(";;;"), true
	default:
		return nil, false
	}
}

func frontMatterMetadataLikely(line []byte) bool {
	trimmed := bytes.TrimSpace(line)
	if len(trimmed) == 0 {
		return false
	}
	if bytes.HasPrefix(trimmed, []byte("{")) || bytes.HasPrefix(trimmed, []byte("[")) {
		return true
	}
	return bytes.Contains(trimmed, []byte(":")) || bytes.Contains(trimmed, []byte("="))
}

func findClosingFrontMatterDelimiter(src []byte, start int, delim []byte) (int, bool) {
	for idx := start; idx < len(src); {
		line, next, ok := nextLine(src, idx)
		if !ok {
			return 0, false
		}
		if bytes.Equal(bytes.TrimSpace(line), delim) {
			return next, true
		}
		idx = next
	}
	return 0, false
}

func trimCR(b []byte) []byte {
	if len(b) > 0 && b[len(b)-1] == '\r' {
		return b[:len(b)-1]
	}
	return b
}

// trimBOM drops a leading UTF-8 byte order mark.
func trimBOM(b []byte) []byte {
	if len(b) >= 3 && b[0] == 0xEF && b[1] == 0xBB && b[2] == 0xBF {
		return b[3:]
	}
	return b
}
