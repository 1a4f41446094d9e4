// Package rt6 restates historical amounts into closing-date purchasing
// power with a price index and computes the resulting RECPAM.
package rt6

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ErrUnknownGroup is returned for a partida with an unrecognised group.
var ErrUnknownGroup = errors.New("unknown partida group")

// Group is the balance-sheet side of a partida.
type Group string

const (
	GroupActivo Group = "activo"
	GroupPasivo Group = "pasivo"
	GroupPN     Group = "pn"
)

// Groups lists every group in presentation order.
var Groups = []Group{GroupActivo, GroupPasivo, GroupPN}

// Valid reports whether g is known.
func (g Group) Valid() bool {
	switch g {
	case GroupActivo, GroupPasivo, GroupPN:
		return true
	}
	return false
}

// Profile describes how a partida's lots arise.
type Profile string

const (
	ProfileMercaderias      Profile = "mercaderias"
	ProfileMonedaExtranjera Profile = "moneda_extranjera"
	ProfileGeneric          Profile = "generic"
)

// Valid reports whether p is known. The empty profile is treated as generic.
func (p Profile) Valid() bool {
	switch p {
	case ProfileMercaderias, ProfileMonedaExtranjera, ProfileGeneric, "":
		return true
	}
	return false
}

// Lot is one layer of historical cost with its own origin date.
type Lot struct {
	ID         string          `yaml:"id"`
	OriginDate time.Time       `yaml:"origin_date"`
	BaseAmount decimal.Decimal `yaml:"base_amount"`
}

// NewLot returns a lot with a fresh ID.
func NewLot(origin time.Time, base decimal.Decimal) Lot {
	return Lot{ID: uuid.NewString(), OriginDate: origin, BaseAmount: base}
}

// Partida is a non-monetary item restated lot by lot.
type Partida struct {
	ID          string  `yaml:"id"`
	Group       Group   `yaml:"group"`
	Rubro       string  `yaml:"rubro"`
	AccountCode string  `yaml:"account_code"`
	Profile     Profile `yaml:"profile,omitempty"`
	Lots        []Lot   `yaml:"lots"`
}

// Validate checks the group and profile.
func (p Partida) Validate() error {
	if !p.Group.Valid() {
		return fmt.Errorf("partida %s: %w %q", p.ID, ErrUnknownGroup, p.Group)
	}
	if !p.Profile.Valid() {
		return fmt.Errorf("partida %s: unknown profile %q", p.ID, p.Profile)
	}
	return nil
}

// BaseTotal is the sum of every lot's base amount.
func (p Partida) BaseTotal() decimal.Decimal {
	total := decimal.Zero
	for _, l := range p.Lots {
		total = total.Add(l.BaseAmount)
	}
	return total
}

// WithLot returns a copy of p with l appended. A lot without an ID gets one.
func (p Partida) WithLot(l Lot) Partida {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	lots := make([]Lot, len(p.Lots), len(p.Lots)+1)
	copy(lots, p.Lots)
	p.Lots = append(lots, l)
	return p
}

// WithoutLot returns a copy of p without the lot with the given ID.
func (p Partida) WithoutLot(id string) Partida {
	lots := make([]Lot, 0, len(p.Lots))
	for _, l := range p.Lots {
		if l.ID != id {
			lots = append(lots, l)
		}
	}
	p.Lots = lots
	return p
}

// WithProfile returns a copy of p with a different profile.
func (p Partida) WithProfile(profile Profile) Partida {
	p.Lots = append([]Lot(nil), p.Lots...)
	p.Profile = profile
	return p
}
