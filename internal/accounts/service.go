package accounts

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/contalivre/contalivre/internal/code"
	"github.com/contalivre/contalivre/internal/model"
)

// Service provides in-memory lookup over the chart of accounts.
type Service struct {
	accounts []model.Account
	byID     map[string]model.Account
	byCode   map[string]model.Account
}

// NewService creates a Service from a slice of accounts.
func NewService(accounts []model.Account) *Service {
	byID := make(map[string]model.Account, len(accounts))
	byCode := make(map[string]model.Account, len(accounts))
	for _, a := range accounts {
		byID[a.ID] = a
		if a.Code != "" {
			byCode[a.Code] = a
		}
	}
	return &Service{accounts: accounts, byID: byID, byCode: byCode}
}

// Path returns the chart location inside a project root.
func Path(root string) string {
	return filepath.Join(root, "accounts", "chart-of-accounts.csv")
}

// Load reads chart-of-accounts.csv from a project root and returns a Service.
func Load(root string) (*Service, error) {
	f, err := os.Open(Path(root))
	if err != nil {
		return nil, fmt.Errorf("opening chart of accounts: %w", err)
	}
	defer f.Close()

	accts, err := ReadAccounts(f)
	if err != nil {
		return nil, fmt.Errorf("reading chart of accounts: %w", err)
	}
	if err := Validate(accts); err != nil {
		return nil, err
	}
	return NewService(accts), nil
}

// Validate checks that ids and codes are unique and parents resolve.
func Validate(accts []model.Account) error {
	ids := make(map[string]bool, len(accts))
	codes := make(map[string]bool, len(accts))
	for _, a := range accts {
		if a.ID == "" {
			return fmt.Errorf("account %q has no id", a.Name)
		}
		if ids[a.ID] {
			return fmt.Errorf("duplicate account id %q", a.ID)
		}
		ids[a.ID] = true
		if a.Code != "" {
			if codes[a.Code] {
				return fmt.Errorf("duplicate account code %q", a.Code)
			}
			codes[a.Code] = true
		}
	}
	for _, a := range accts {
		if a.ParentID != "" && !ids[a.ParentID] {
			return fmt.Errorf("account %q references unknown parent %q", a.ID, a.ParentID)
		}
	}
	return nil
}

// All returns all accounts.
func (s *Service) All() []model.Account {
	return s.accounts
}

// Get returns an account by ID.
func (s *Service) Get(id string) (model.Account, bool) {
	a, ok := s.byID[id]
	return a, ok
}

// ByCode returns an account by its hierarchical code.
func (s *Service) ByCode(c string) (model.Account, bool) {
	a, ok := s.byCode[c]
	return a, ok
}

// Exists reports whether an account ID exists.
func (s *Service) Exists(id string) bool {
	_, ok := s.byID[id]
	return ok
}

// IsHeader reports whether id names a header account.
func (s *Service) IsHeader(id string) bool {
	return s.byID[id].IsHeader
}

// ByKind returns all accounts of the given kind.
func (s *Service) ByKind(kind model.AccountKind) []model.Account {
	var result []model.Account
	for _, a := range s.accounts {
		if a.Kind == kind {
			result = append(result, a)
		}
	}
	return result
}

// Children returns the direct children of id ordered by code.
func (s *Service) Children(id string) []model.Account {
	var result []model.Account
	for _, a := range s.accounts {
		if a.ParentID == id {
			result = append(result, a)
		}
	}
	sort.SliceStable(result, func(i, j int) bool { return code.Compare(result[i].Code, result[j].Code) < 0 })
	return result
}

// Postable returns the non-header accounts ordered by code.
func (s *Service) Postable() []model.Account {
	var result []model.Account
	for _, a := range s.accounts {
		if !a.IsHeader {
			result = append(result, a)
		}
	}
	sort.SliceStable(result, func(i, j int) bool { return code.Compare(result[i].Code, result[j].Code) < 0 })
	return result
}

// Save writes the chart of accounts to accounts/chart-of-accounts.csv.
func (s *Service) Save(root string) error {
	path := Path(root)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating accounts dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating chart of accounts file: %w", err)
	}
	defer f.Close()

	if err := WriteAccounts(f, s.accounts); err != nil {
		return fmt.Errorf("writing chart of accounts: %w", err)
	}
	return nil
}
