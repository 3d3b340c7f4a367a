package extract

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// SheetText converts a spreadsheet exported as CSV into pipe delimited text,
// one line per non blank row, ready to be sent to the extraction call.
func SheetText(r io.Reader) (string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	reader.LazyQuotes = true

	var lines []string
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", fmt.Errorf("could not read sheet: %w", err)
		}
		blank := true
		for i, cell := range row {
			row[i] = strings.TrimSpace(cell)
			if row[i] != "" {
				blank = false
			}
		}
		if blank {
			continue
		}
		lines = append(lines, strings.Join(row, " | "))
	}
	return strings.Join(lines, "\n"), nil
}
