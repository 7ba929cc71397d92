package elster

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"slices"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Group names of the field definition document.
const (
	GroupGeneral       = "Allgemeine Angaben"
	GroupParticipation = "Beteiligungen"
	GroupIncome        = "Betriebseinnahmen"
	GroupExpense       = "Betriebsausgaben"
	GroupProfit        = "Ermittlung des Gewinns"
	GroupReserves      = "Rücklagen"
	GroupDrawings      = "Entnahmen und Einlagen"
)

// DefinitionType is the role of a form line inferred from its group.
type DefinitionType string

const (
	DefinitionIncome     DefinitionType = "income"
	DefinitionExpense    DefinitionType = "expense"
	DefinitionVATPaid    DefinitionType = "vat_paid"
	DefinitionTotal      DefinitionType = "total"
	DefinitionProfitCalc DefinitionType = "profit_calc"
	DefinitionPersonal   DefinitionType = "personal"
)

// autoCalculated lists the lines the form computes itself.
var autoCalculated = map[int]bool{140: true, 159: true, 185: true, 199: true, 219: true}

// Document is the raw field definition document.
type Document struct {
	Form   string          `yaml:"form"`
	Groups []DocumentGroup `yaml:"groups"`
}

type DocumentGroup struct {
	Name   string          `yaml:"name"`
	Fields []DocumentField `yaml:"fields"`
}

type DocumentField struct {
	Number   string `yaml:"number"`
	Label    string `yaml:"label"`
	Required bool   `yaml:"required"`
}

// Definition is a normalized form line.
type Definition struct {
	Number         string         `json:"number"`
	Label          string         `json:"label"`
	Group          string         `json:"group"`
	Type           DefinitionType `json:"type"`
	AutoCalculated bool           `json:"auto_calculated"`
}

//go:embed data/anlage_euer.yaml
var embeddedDefinitions []byte

// DecodeDocument reads a field definition document.
func DecodeDocument(r io.Reader) (*Document, error) {
	var doc Document
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode field definitions: %w", err)
	}

	return &doc, nil
}

// DefaultDocument returns the field definitions shipped with the binary.
func DefaultDocument() (*Document, error) {
	return DecodeDocument(bytes.NewReader(embeddedDefinitions))
}

// LoadDefinitions decodes and normalizes the built-in field definitions.
func LoadDefinitions() ([]Definition, error) {
	doc, err := DefaultDocument()
	if err != nil {
		return nil, err
	}

	return Normalize(doc)
}

// Normalize flattens the document into definitions sorted by number.
// The general data and participation groups are left out since they are
// filled from the profile. The first definition of a number wins.
func Normalize(doc *Document) ([]Definition, error) {
	type numbered struct {
		n   int
		def Definition
	}

	seen := make(map[int]bool)

	var out []numbered

	for _, g := range doc.Groups {
		if g.Name == GroupGeneral || g.Name == GroupParticipation {
			continue
		}

		for _, f := range g.Fields {
			n, err := strconv.Atoi(f.Number)
			if err != nil {
				return nil, fmt.Errorf("group %q: field number %q: %w", g.Name, f.Number, err)
			}

			if seen[n] {
				continue
			}

			seen[n] = true

			out = append(out, numbered{n: n, def: Definition{
				Number:         f.Number,
				Label:          f.Label,
				Group:          g.Name,
				Type:           inferType(g.Name, n),
				AutoCalculated: autoCalculated[n],
			}})
		}
	}

	slices.SortFunc(out, func(a, b numbered) int { return a.n - b.n })

	defs := make([]Definition, len(out))
	for i, o := range out {
		defs[i] = o.def
	}

	return defs, nil
}

func inferType(group string, n int) DefinitionType {
	switch group {
	case GroupIncome:
		return DefinitionIncome
	case GroupExpense:
		if n >= 185 && n <= 186 {
			return DefinitionVATPaid
		}

		return DefinitionExpense
	case GroupProfit:
		if n < 200 {
			return DefinitionTotal
		}

		return DefinitionProfitCalc
	case GroupReserves:
		return DefinitionExpense
	case GroupDrawings:
		return DefinitionIncome
	}

	return DefinitionPersonal
}

// MissingAutoCalculated returns the auto-calculated lines the populated
// fields lack. VAT lines are not expected for flat-rate businesses.
func MissingAutoCalculated(defs []Definition, fields []FieldValue, flatRate bool) []string {
	var missing []string

	for _, d := range defs {
		if !d.AutoCalculated {
			continue
		}

		if flatRate && (d.Number == FieldVATOwed || d.Number == FieldVATPaid) {
			continue
		}

		if _, ok := Find(fields, d.Number); !ok {
			missing = append(missing, d.Number)
		}
	}

	return missing
}
