package seed

import (
	"errors"
	"fmt"
	"strings"

	"github.com/kasuganosora/coffeemon-seed/config"
	"github.com/kasuganosora/coffeemon-seed/model"
	"github.com/shopspring/decimal"
)

// AccountSeed is an account created through the Account Service.
type AccountSeed struct {
	Username string
	Email    string
	Password string
}

type ProductSeed struct {
	Name        string
	Description string
	Price       decimal.Decimal
	Image       string
}

type MoveSeed struct {
	ID          int64
	Name        string
	Description string
	Type        string
	Power       int
	Effects     string // JSON array, empty for none
}

type LearnsetSeed struct {
	MoveID int64
	Method model.LearnMethod
	Level  int // only for level_up
}

type SpeciesSeed struct {
	ID          int64
	Name        string
	Type        string
	BaseHP      int
	BaseAttack  int
	BaseDefense int
	Learnset    []LearnsetSeed
}

// Assignment lists the species a player receives, in grant order.
type Assignment struct {
	Email      string
	SpeciesIDs []int64
}

type OrderItemSeed struct {
	Product   string // product name
	Quantity  int
	UnitPrice decimal.Decimal
}

// LineTotal is unit price times quantity.
func (i OrderItemSeed) LineTotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// OrderSeed is a demo order. TotalAmount and TotalQuantity are literal and
// must agree with the items; Validate checks that.
type OrderSeed struct {
	Email         string
	Status        string
	DaysAgo       int
	TotalAmount   decimal.Decimal
	TotalQuantity int
	Items         []OrderItemSeed
}

// Dataset is the fixed logical content a seed run applies.
type Dataset struct {
	Accounts    []AccountSeed
	AdminEmail  string
	Products    []ProductSeed
	Moves       []MoveSeed
	Species     []SpeciesSeed
	Assignments []Assignment
	Orders      []OrderSeed
}

// ApplyConfig overrides the admin email and, when set, every account
// password.
func (d *Dataset) ApplyConfig(cfg config.SeedConfig) {
	if cfg.AdminEmail != "" {
		d.AdminEmail = cfg.AdminEmail
	}
	if cfg.DefaultPassword != "" {
		for i := range d.Accounts {
			d.Accounts[i].Password = cfg.DefaultPassword
		}
	}
}

// Validate checks the dataset for duplicate natural keys and for orders
// whose totals disagree with their items. References to species, moves and
// products are not required to resolve inside the dataset because the
// application may have created those rows itself.
func (d Dataset) Validate() error {
	var errs []error

	emails := make(map[string]bool, len(d.Accounts))
	for _, a := range d.Accounts {
		if a.Email == "" || a.Username == "" {
			errs = append(errs, fmt.Errorf("account %q: username and email are required", a.Email))
			continue
		}
		key := strings.ToLower(a.Email)
		if emails[key] {
			errs = append(errs, fmt.Errorf("account %q: duplicate email", a.Email))
		}
		emails[key] = true
	}

	products := make(map[string]bool, len(d.Products))
	for _, p := range d.Products {
		if products[p.Name] {
			errs = append(errs, fmt.Errorf("product %q: duplicate name", p.Name))
		}
		if p.Price.IsNegative() {
			errs = append(errs, fmt.Errorf("product %q: negative price", p.Name))
		}
		products[p.Name] = true
	}

	moves := make(map[int64]bool, len(d.Moves))
	for _, m := range d.Moves {
		if m.ID <= 0 || moves[m.ID] {
			errs = append(errs, fmt.Errorf("move %d (%s): id must be positive and unique", m.ID, m.Name))
		}
		moves[m.ID] = true
	}

	species := make(map[int64]bool, len(d.Species))
	for _, s := range d.Species {
		if s.ID <= 0 || species[s.ID] {
			errs = append(errs, fmt.Errorf("species %d (%s): id must be positive and unique", s.ID, s.Name))
		}
		species[s.ID] = true
	}

	for i, o := range d.Orders {
		sum := decimal.Zero
		qty := 0
		for _, it := range o.Items {
			if it.Quantity <= 0 {
				errs = append(errs, fmt.Errorf("order %d (%s): item %q has quantity %d", i, o.Email, it.Product, it.Quantity))
			}
			sum = sum.Add(it.LineTotal())
			qty += it.Quantity
		}
		if !sum.Equal(o.TotalAmount) {
			errs = append(errs, fmt.Errorf("order %d (%s): items total %s, order says %s", i, o.Email, sum.StringFixed(2), o.TotalAmount.StringFixed(2)))
		}
		if qty != o.TotalQuantity {
			errs = append(errs, fmt.Errorf("order %d (%s): items quantity %d, order says %d", i, o.Email, qty, o.TotalQuantity))
		}
	}

	return errors.Join(errs...)
}
