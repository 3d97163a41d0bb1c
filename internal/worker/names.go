package worker

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ReadNames reads company names from a file, one per line. Names are kept as
// written, minus a trailing carriage return; lines holding only whitespace are
// skipped. Duplicates are kept so that the output has one record per input line.
func ReadNames(filePath string, encoding string) ([]string, error) {
	decoder, err := newDecoder(encoding)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var names []string

	scanner := bufio.NewScanner(transform.NewReader(file, decoder))
	for scanner.Scan() {
		line := strings.TrimPrefix(scanner.Text(), "\ufeff")
		line = strings.TrimSuffix(line, "\r")

		if strings.TrimSpace(line) == "" {
			continue
		}
		names = append(names, line)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return names, nil
}

// newDecoder maps an input encoding name to a decoder. "auto" honours a UTF-8
// or UTF-16 byte order mark and falls back to UTF-8.
func newDecoder(encoding string) (transform.Transformer, error) {
	switch strings.ToLower(encoding) {
	case "", "auto":
		return unicode.BOMOverride(unicode.UTF8.NewDecoder()), nil
	case "utf-8", "utf8":
		return unicode.UTF8BOM.NewDecoder(), nil
	case "utf-16", "utf16":
		return unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder(), nil
	case "utf-16le":
		return unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewDecoder(), nil
	case "utf-16be":
		return unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM).NewDecoder(), nil
	default:
		return nil, fmt.Errorf("unknown input encoding: %q", encoding)
	}
}
