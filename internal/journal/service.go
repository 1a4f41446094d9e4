package journal

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/contalivre/contalivre/internal/model"
)

// Service reads and appends journal entries stored in a project root.
type Service struct {
	root      string
	accounts  AccountChecker
	tolerance decimal.Decimal
}

// NewService creates a journal Service.
func NewService(root string, accounts AccountChecker, tolerance decimal.Decimal) *Service {
	return &Service{root: root, accounts: accounts, tolerance: tolerance}
}

// Path returns the journal location inside a project root.
func Path(root string) string {
	return filepath.Join(root, "journal", "entries.csv")
}

// AddDoubleParams holds parameters for creating a two-line journal entry.
type AddDoubleParams struct {
	Date          time.Time
	Memo          string
	Description   string
	DebitAccount  string
	CreditAccount string
	Amount        decimal.Decimal
}

// AddDouble creates a balanced debit + credit entry and appends it.
// Returns the entry ID.
func (s *Service) AddDouble(params AddDoubleParams) (string, error) {
	return s.Add(model.JournalEntry{
		Date: params.Date,
		Memo: params.Memo,
		Lines: []model.JournalLine{
			{AccountID: params.DebitAccount, Debit: params.Amount, Description: params.Description},
			{AccountID: params.CreditAccount, Credit: params.Amount, Description: params.Description},
		},
	})
}

// Add validates an entry against the existing journal and appends it to
// entries.csv. Entries without an ID get a random one. Returns the entry ID.
func (s *Service) Add(entry model.JournalEntry) (string, error) {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}

	existing, err := s.ReadAll()
	if err != nil {
		return "", err
	}

	all := append(existing, entry)
	if verrs := ValidateEntries(all, s.accounts, s.tolerance); len(verrs) > 0 {
		msgs := make([]string, len(verrs))
		for i, ve := range verrs {
			msgs[i] = ve.Error()
		}
		return "", fmt.Errorf("validation failed: %s", strings.Join(msgs, "; "))
	}

	path := Path(s.root)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("creating journal dir: %w", err)
	}

	isNew := false
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		isNew = true
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return "", fmt.Errorf("opening journal: %w", err)
	}
	defer f.Close()

	if isNew {
		if _, err := fmt.Fprintln(f, Header); err != nil {
			return "", fmt.Errorf("writing header: %w", err)
		}
	}

	if err := AppendEntries(f, []model.JournalEntry{entry}); err != nil {
		return "", fmt.Errorf("appending entry: %w", err)
	}

	return entry.ID, nil
}

// ReadAll reads every entry in the journal. A missing journal is empty.
func (s *Service) ReadAll() ([]model.JournalEntry, error) {
	path := Path(s.root)
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening journal %s: %w", path, err)
	}
	defer f.Close()

	entries, err := ReadEntries(f)
	if err != nil {
		return nil, fmt.Errorf("reading journal %s: %w", path, err)
	}
	return entries, nil
}
