package journal

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/contalivre/contalivre/internal/model"
)

// Header is the CSV header for entries.csv.
const Header = "entry_id,date,memo,account_id,description,debit,credit"

const (
	numFields  = 7
	dateFormat = "2006-01-02"
	colEntryID = 0
	colDate    = 1
	colMemo    = 2
	colAcctID  = 3
	colDesc    = 4
	colDebit   = 5
	colCredit  = 6
)

// ReadEntries reads all entries from an entries.csv reader. Rows sharing an
// entry_id form one entry; entries keep the order their first row appears in.
func ReadEntries(r io.Reader) ([]model.JournalEntry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading journal CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, nil
	}

	var entries []model.JournalEntry
	index := make(map[string]int)
	for i, rec := range records[1:] {
		row, err := unmarshalRow(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		pos, seen := index[row.entryID]
		if !seen {
			pos = len(entries)
			index[row.entryID] = pos
			entries = append(entries, model.JournalEntry{ID: row.entryID, Date: row.date, Memo: row.memo})
		}
		if !entries[pos].Date.Equal(row.date) {
			return nil, fmt.Errorf("row %d: entry %s has conflicting dates", i+2, row.entryID)
		}
		entries[pos].Lines = append(entries[pos].Lines, row.line)
	}
	return entries, nil
}

// WriteEntries writes entries to an entries.csv writer (including header).
func WriteEntries(w io.Writer, entries []model.JournalEntry) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	if err := writeRows(cw, entries); err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}

// AppendEntries appends entries to an existing entries.csv writer (no header).
func AppendEntries(w io.Writer, entries []model.JournalEntry) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := writeRows(cw, entries); err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}

func writeRows(cw *csv.Writer, entries []model.JournalEntry) error {
	for _, e := range entries {
		for i, line := range e.Lines {
			if err := cw.Write(MarshalLine(e, line)); err != nil {
				return fmt.Errorf("writing entry %s line %d: %w", e.ID, i, err)
			}
		}
	}
	return nil
}

// MarshalLine converts one line of an entry to a CSV row.
func MarshalLine(e model.JournalEntry, line model.JournalLine) []string {
	row := make([]string, numFields)
	row[colEntryID] = e.ID
	row[colDate] = e.Date.Format(dateFormat)
	row[colMemo] = e.Memo
	row[colAcctID] = line.AccountID
	row[colDesc] = line.Description

	if !line.Debit.IsZero() {
		row[colDebit] = line.Debit.StringFixed(2)
	}
	if !line.Credit.IsZero() {
		row[colCredit] = line.Credit.StringFixed(2)
	}
	return row
}

type row struct {
	entryID string
	date    time.Time
	memo    string
	line    model.JournalLine
}

// unmarshalRow converts a CSV row to its entry header fields and line.
func unmarshalRow(record []string) (row, error) {
	if len(record) != numFields {
		return row{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	if record[colEntryID] == "" {
		return row{}, fmt.Errorf("missing entry_id")
	}

	date, err := time.Parse(dateFormat, record[colDate])
	if err != nil {
		return row{}, fmt.Errorf("parsing date %q: %w", record[colDate], err)
	}

	var debit, credit decimal.Decimal

	if record[colDebit] != "" {
		debit, err = decimal.NewFromString(record[colDebit])
		if err != nil {
			return row{}, fmt.Errorf("parsing debit %q: %w", record[colDebit], err)
		}
	}

	if record[colCredit] != "" {
		credit, err = decimal.NewFromString(record[colCredit])
		if err != nil {
			return row{}, fmt.Errorf("parsing credit %q: %w", record[colCredit], err)
		}
	}

	return row{
		entryID: record[colEntryID],
		date:    date,
		memo:    record[colMemo],
		line: model.JournalLine{
			AccountID:   record[colAcctID],
			Description: record[colDesc],
			Debit:       debit,
			Credit:      credit,
		},
	}, nil
}
