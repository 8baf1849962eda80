// Package csvio reads journal exports into headers plus row maps, the shape
// the column matcher and the importer consume. Exports come from many tools,
// so the delimiter is sniffed and ragged rows are tolerated.
package csvio

import (
	"encoding/csv"
	"errors"
	"io"
	"os"
	"strings"
)

type File struct {
	Headers   []string
	Rows      []map[string]string
	Delimiter rune
}

var ErrEmptyFile = errors.New("csv file has no header row")

// DetectDelimiter picks the delimiter with the most occurrences on the
// header line. Comma wins ties, matching the order below.
func DetectDelimiter(headerLine string) rune {
	best, bestCount := ',', 0
	for _, d := range []rune{',', ';', '\t', '|'} {
		if c := strings.Count(headerLine, string(d)); c > bestCount {
			best, bestCount = d, c
		}
	}
	return best
}

// Read parses an export into headers and row maps. The first line is the
// header row; a UTF-8 BOM is stripped. Rows shorter than the header leave
// the missing cells empty, longer rows drop the extras.
func Read(r io.Reader) (*File, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	text := strings.TrimPrefix(string(data), "\uFEFF")
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyFile
	}

	firstLine := text
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		firstLine = text[:i]
	}
	delim := DetectDelimiter(firstLine)

	cr := csv.NewReader(strings.NewReader(text))
	cr.Comma = delim
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1

	headers, err := cr.Read()
	if err != nil {
		return nil, ErrEmptyFile
	}
	for i := range headers {
		headers[i] = strings.TrimSpace(headers[i])
	}

	f := &File{Headers: headers, Delimiter: delim}
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			continue
		}
		row := make(map[string]string, len(headers))
		for i, h := range headers {
			if i < len(rec) {
				row[h] = strings.TrimSpace(rec[i])
			} else {
				row[h] = ""
			}
		}
		f.Rows = append(f.Rows, row)
	}
	return f, nil
}

func ReadFile(path string) (*File, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fh.Close()
	return Read(fh)
}
