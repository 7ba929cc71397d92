package profile

import (
	"fmt"
	"io"
	"time"

	"gopkg.in/yaml.v3"
)

// Profile holds the personal and business data printed in the header of
// the Anlage EÜR. SpouseTaxID is optional and only reported when set.
type Profile struct {
	LastName    string `yaml:"last_name" json:"last_name"`
	FirstName   string `yaml:"first_name" json:"first_name"`
	Street      string `yaml:"street" json:"street"`
	HouseNumber string `yaml:"house_number" json:"house_number"`
	PostalCode  string `yaml:"postal_code" json:"postal_code"`
	City        string `yaml:"city" json:"city"`
	TaxNumber   string `yaml:"tax_number" json:"tax_number"`
	TaxID       string `yaml:"tax_id" json:"tax_id"`
	SpouseTaxID string `yaml:"spouse_tax_id,omitempty" json:"spouse_tax_id,omitempty"`

	FiscalYearStart time.Time `yaml:"fiscal_year_start" json:"fiscal_year_start"`
	FiscalYearEnd   time.Time `yaml:"fiscal_year_end" json:"fiscal_year_end"`

	Profession    string `yaml:"profession" json:"profession"`
	SmallBusiness bool   `yaml:"small_business" json:"small_business"`
	Commercial    bool   `yaml:"commercial" json:"commercial"`
	PropertySold  bool   `yaml:"property_sold" json:"property_sold"`
}

// CalendarYear returns a profile skeleton whose fiscal year is the given
// calendar year.
func CalendarYear(year int) Profile {
	return Profile{
		FiscalYearStart: time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC),
		FiscalYearEnd:   time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC),
	}
}

// Decode reads a profile from YAML.
func Decode(r io.Reader) (*Profile, error) {
	var p Profile
	if err := yaml.NewDecoder(r).Decode(&p); err != nil {
		return nil, fmt.Errorf("decode profile: %w", err)
	}

	if !p.FiscalYearStart.IsZero() && !p.FiscalYearEnd.IsZero() && p.FiscalYearEnd.Before(p.FiscalYearStart) {
		return nil, fmt.Errorf("decode profile: fiscal year ends before it starts")
	}

	return &p, nil
}
