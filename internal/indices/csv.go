package indices

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/shopspring/decimal"
)

// Header is the CSV header for an index file.
var Header = []string{"period", "index"}

// ReadRows reads "period,index" rows. Lines starting with '#' are ignored
// and a decimal comma ("1234,56") is accepted when the file uses ';'.
func ReadRows(r io.Reader) ([]Row, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading index CSV: %w", err)
	}

	cr := csv.NewReader(strings.NewReader(string(data)))
	cr.Comment = '#'
	cr.FieldsPerRecord = 2
	if firstLineHas(string(data), ';') {
		cr.Comma = ';'
	}

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading index CSV: %w", err)
	}

	var rows []Row
	for i, rec := range records {
		if i == 0 && strings.EqualFold(strings.TrimSpace(rec[0]), Header[0]) {
			continue
		}
		p, err := ParsePeriod(rec[0])
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		raw := strings.TrimSpace(rec[1])
		if cr.Comma == ';' {
			raw = strings.ReplaceAll(raw, ".", "")
			raw = strings.ReplaceAll(raw, ",", ".")
		}
		v, err := decimal.NewFromString(raw)
		if err != nil {
			return nil, fmt.Errorf("row %d: parsing index %q: %w", i+1, rec[1], err)
		}
		rows = append(rows, Row{Period: p, Value: v})
	}
	return rows, nil
}

func firstLineHas(s string, r rune) bool {
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		return strings.ContainsRune(line, r)
	}
	return false
}

// WriteRows writes rows with a header.
func WriteRows(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, r := range rows {
		if err := cw.Write([]string{r.Period.String(), r.Value.String()}); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// Load reads an index file and builds a Table.
func Load(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening index file: %w", err)
	}
	defer f.Close()

	rows, err := ReadRows(f)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	t, err := NewTable(rows)
	if err != nil {
		return nil, fmt.Errorf("building index table from %s: %w", path, err)
	}
	return t, nil
}
