// Package ledger posts journal entries into per-account ledgers and derives
// the trial balance from them.
package ledger

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/contalivre/contalivre/internal/code"
	"github.com/contalivre/contalivre/internal/model"
)

// Movement is a snapshot of one posted line.
type Movement struct {
	EntryID     string
	Date        time.Time
	Memo        string
	Description string
	Debit       decimal.Decimal
	Credit      decimal.Decimal
	Balance     decimal.Decimal // running balance after this line
}

// Account holds the running totals and history of one account.
type Account struct {
	Account     model.Account
	Movements   []Movement
	TotalDebit  decimal.Decimal
	TotalCredit decimal.Decimal
	Balance     decimal.Decimal // on the account's normal side
}

// Ledger maps account IDs to their ledger.
type Ledger struct {
	Accounts map[string]*Account

	// Lines skipped because the account does not exist.
	UnmappedLines      int
	UnmappedAccountIDs []string
	// Lines skipped because they target a header account.
	HeaderLines int
}

// ComputeLedger replays entries in ascending date order (stable for equal
// dates) into per-account totals. It never fails: lines to unknown or header
// accounts are skipped and counted.
func ComputeLedger(entries []model.JournalEntry, accounts []model.Account) *Ledger {
	l := &Ledger{Accounts: make(map[string]*Account, len(accounts))}
	byID := make(map[string]model.Account, len(accounts))
	for _, a := range accounts {
		byID[a.ID] = a
	}

	sorted := make([]model.JournalEntry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Date.Before(sorted[j].Date) })

	unmapped := make(map[string]bool)
	for _, e := range sorted {
		for _, line := range e.Lines {
			acct, ok := byID[line.AccountID]
			if !ok {
				l.UnmappedLines++
				unmapped[line.AccountID] = true
				continue
			}
			if acct.IsHeader {
				l.HeaderLines++
				continue
			}
			la, ok := l.Accounts[acct.ID]
			if !ok {
				la = &Account{Account: acct}
				l.Accounts[acct.ID] = la
			}
			la.post(e, line)
		}
	}

	for id := range unmapped {
		l.UnmappedAccountIDs = append(l.UnmappedAccountIDs, id)
	}
	sort.Strings(l.UnmappedAccountIDs)
	return l
}

func (a *Account) post(e model.JournalEntry, line model.JournalLine) {
	a.TotalDebit = a.TotalDebit.Add(line.Debit)
	a.TotalCredit = a.TotalCredit.Add(line.Credit)
	a.Balance = NormalBalance(a.Account, a.TotalDebit, a.TotalCredit)
	a.Movements = append(a.Movements, Movement{
		EntryID:     e.ID,
		Date:        e.Date,
		Memo:        e.Memo,
		Description: line.Description,
		Debit:       line.Debit,
		Credit:      line.Credit,
		Balance:     a.Balance,
	})
}

// NormalBalance returns debit-credit for debit-normal accounts and
// credit-debit otherwise.
func NormalBalance(a model.Account, debit, credit decimal.Decimal) decimal.Decimal {
	if a.Side() == model.SideDebit {
		return debit.Sub(credit)
	}
	return credit.Sub(debit)
}

// Get returns the ledger of one account.
func (l *Ledger) Get(id string) (*Account, bool) {
	a, ok := l.Accounts[id]
	return a, ok
}

// Sorted returns the account ledgers ordered by code, then ID.
func (l *Ledger) Sorted() []*Account {
	out := make([]*Account, 0, len(l.Accounts))
	for _, a := range l.Accounts {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return lessAccount(out[i].Account, out[j].Account) })
	return out
}

func lessAccount(a, b model.Account) bool {
	if c := code.Compare(a.Code, b.Code); c != 0 {
		return c < 0
	}
	return a.ID < b.ID
}
