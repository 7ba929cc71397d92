package category

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownVariant  = errors.New("unknown chart of accounts")
	ErrUnknownCategory = errors.New("unknown category")
)

// Type classifies a category as income, expense or private movement.
type Type string

const (
	TypeIncome  Type = "income"
	TypeExpense Type = "expense"
	TypePrivate Type = "private"
)

func (t Type) valid() bool {
	switch t {
	case TypeIncome, TypeExpense, TypePrivate:
		return true
	}

	return false
}

// Info is one account category of a chart of accounts.
type Info struct {
	Key     string  `yaml:"key" json:"key"`
	Name    string  `yaml:"name" json:"name"`
	Type    Type    `yaml:"type" json:"type"`
	Code    string  `yaml:"code" json:"code"`
	VATRate float64 `yaml:"vat_rate" json:"vat_rate"`
}

// Table is the category table of one chart of accounts variant.
// It is read-only once built and safe for concurrent use.
type Table struct {
	Variant Variant
	Name    string

	byKey map[string]Info
	order []string
}

// NewTable builds a table from categories in document order.
func NewTable(variant Variant, name string, infos []Info) (*Table, error) {
	t := &Table{
		Variant: variant,
		Name:    name,
		byKey:   make(map[string]Info, len(infos)),
		order:   make([]string, 0, len(infos)),
	}

	for i, info := range infos {
		if info.Key == "" {
			return nil, fmt.Errorf("category %d: missing key", i)
		}

		if _, dup := t.byKey[info.Key]; dup {
			return nil, fmt.Errorf("category %q: duplicate key", info.Key)
		}

		if !info.Type.valid() {
			return nil, fmt.Errorf("category %q: invalid type %q", info.Key, info.Type)
		}

		if info.VATRate < 0 {
			return nil, fmt.Errorf("category %q: negative vat rate", info.Key)
		}

		// Private movements are never split into net and VAT.
		if info.Type == TypePrivate && info.VATRate != 0 {
			return nil, fmt.Errorf("category %q: private category with vat rate %v", info.Key, info.VATRate)
		}

		t.byKey[info.Key] = info
		t.order = append(t.order, info.Key)
	}

	return t, nil
}

// Lookup returns the category registered under key.
func (t *Table) Lookup(key string) (Info, bool) {
	if t == nil {
		return Info{}, false
	}

	info, ok := t.byKey[key]

	return info, ok
}

// All returns every category in document order.
func (t *Table) All() []Info {
	infos := make([]Info, 0, len(t.order))
	for _, k := range t.order {
		infos = append(infos, t.byKey[k])
	}

	return infos
}

// OfType returns the categories of the given type in document order.
func (t *Table) OfType(typ Type) []Info {
	var infos []Info

	for _, k := range t.order {
		if info := t.byKey[k]; info.Type == typ {
			infos = append(infos, info)
		}
	}

	return infos
}

func (t *Table) Len() int {
	return len(t.order)
}
