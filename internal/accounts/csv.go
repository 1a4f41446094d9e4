package accounts

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/contalivre/contalivre/internal/model"
	"github.com/contalivre/contalivre/internal/taxonomy"
)

// Header is the CSV header for chart-of-accounts.csv.
var Header = []string{"id", "code", "name", "kind", "section", "statement_group", "normal_side", "is_contra", "is_header", "parent_id"}

const (
	numFields   = 10
	colID       = 0
	colCode     = 1
	colName     = 2
	colKind     = 3
	colSection  = 4
	colGroup    = 5
	colSide     = 6
	colContra   = 7
	colHeader   = 8
	colParentID = 9
)

// ReadAccounts reads chart-of-accounts.csv.
func ReadAccounts(r io.Reader) ([]model.Account, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading accounts CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, nil
	}

	var accounts []model.Account
	for i, rec := range records[1:] {
		acct, err := UnmarshalAccount(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		accounts = append(accounts, acct)
	}
	return accounts, nil
}

// WriteAccounts writes chart-of-accounts.csv.
func WriteAccounts(w io.Writer, accounts []model.Account) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, acct := range accounts {
		if err := cw.Write(MarshalAccount(acct)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// MarshalAccount converts an Account to a CSV row.
func MarshalAccount(acct model.Account) []string {
	row := make([]string, numFields)
	row[colID] = acct.ID
	row[colCode] = acct.Code
	row[colName] = acct.Name
	row[colKind] = string(acct.Kind)
	row[colSection] = string(acct.Section)
	row[colGroup] = string(acct.StatementGroup)
	row[colSide] = string(acct.Side())
	row[colContra] = strconv.FormatBool(acct.IsContra)
	row[colHeader] = strconv.FormatBool(acct.IsHeader)
	row[colParentID] = acct.ParentID
	return row
}

// UnmarshalAccount converts a CSV row to an Account.
func UnmarshalAccount(record []string) (model.Account, error) {
	if len(record) != numFields {
		return model.Account{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	kind := model.AccountKind(record[colKind])
	if !kind.Valid() {
		return model.Account{}, fmt.Errorf("invalid kind %q", record[colKind])
	}

	side := model.Side(record[colSide])
	switch side {
	case "", model.SideDebit, model.SideCredit:
	default:
		return model.Account{}, fmt.Errorf("invalid normal_side %q", record[colSide])
	}

	group := taxonomy.Group(record[colGroup])
	if group != "" {
		if _, ok := taxonomy.Lookup(group); !ok {
			return model.Account{}, fmt.Errorf("unknown statement_group %q", record[colGroup])
		}
	}

	contra, err := parseBool(record[colContra])
	if err != nil {
		return model.Account{}, fmt.Errorf("parsing is_contra %q: %w", record[colContra], err)
	}
	header, err := parseBool(record[colHeader])
	if err != nil {
		return model.Account{}, fmt.Errorf("parsing is_header %q: %w", record[colHeader], err)
	}
	if side == "" {
		side = model.DefaultSide(kind, contra)
	}

	return model.Account{
		ID:             record[colID],
		Code:           record[colCode],
		Name:           record[colName],
		Kind:           kind,
		Section:        taxonomy.AccountSection(record[colSection]),
		StatementGroup: group,
		NormalSide:     side,
		IsContra:       contra,
		IsHeader:       header,
		ParentID:       record[colParentID],
	}, nil
}

func parseBool(s string) (bool, error) {
	if s == "" {
		return false, nil
	}
	return strconv.ParseBool(s)
}
