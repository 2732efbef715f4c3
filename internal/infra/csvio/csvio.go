// Package csvio reads and writes the spreadsheet-friendly CSV files exchanged with
// operators: UTF-8 with a byte-order mark, tolerant of Latin-1 exports.
package csvio

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/jszwec/csvutil"
	"golang.org/x/text/encoding/charmap"
)

// BOM is the UTF-8 byte-order mark written ahead of every generated file.
const BOM = "\ufeff"

// ReadAll parses every record of r. A leading BOM is dropped, fields that are not
// valid UTF-8 are decoded as ISO-8859-1, and rows may have any number of fields.
// Fully blank rows are skipped.
func ReadAll(r io.Reader) ([][]string, error) {
	br := bufio.NewReader(r)
	if head, err := br.Peek(len(BOM)); err == nil && string(head) == BOM {
		if _, err := br.Discard(len(BOM)); err != nil {
			return nil, fmt.Errorf("csv: skip bom: %w", err)
		}
	}

	reader := csv.NewReader(br)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var out [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return nil, fmt.Errorf("csv: read row: %w", err)
		}
		blank := true
		for i, field := range record {
			field = strings.TrimSpace(repairCharset(field))
			record[i] = field
			if field != "" {
				blank = false
			}
		}
		if blank {
			continue
		}
		out = append(out, record)
	}
}

// SkipHeader drops the first record.
func SkipHeader(records [][]string) [][]string {
	if len(records) == 0 {
		return records
	}
	return records[1:]
}

// Field returns the trimmed field at index i, or "" when the row is shorter.
func Field(record []string, i int) string {
	if i < 0 || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}

// WriteAll encodes records with a leading BOM.
func WriteAll(records [][]string) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(BOM)
	w := csv.NewWriter(&buf)
	if err := w.WriteAll(records); err != nil {
		return nil, fmt.Errorf("csv: write rows: %w", err)
	}
	return buf.Bytes(), nil
}

// Marshal encodes a slice of csv-tagged structs, header included, with a leading BOM.
func Marshal(v any) ([]byte, error) {
	data, err := csvutil.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("csv: marshal: %w", err)
	}
	return append([]byte(BOM), data...), nil
}

func repairCharset(field string) string {
	if utf8.ValidString(field) {
		return field
	}
	decoded, err := charmap.ISO8859_1.NewDecoder().String(field)
	if err != nil {
		return strings.ToValidUTF8(field, "")
	}
	return decoded
}
