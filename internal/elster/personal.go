package elster

import (
	"time"

	"github.com/MrJamesThe3rd/euer/internal/profile"
)

type personalField struct {
	number   string
	label    string
	required bool
	optional bool // only reported when set
	value    func(p *profile.Profile) string
}

// personalFields is the general data block at the top of the form.
var personalFields = []personalField{
	{"10", "Name", true, false, func(p *profile.Profile) string { return p.LastName }},
	{"11", "Vorname", true, false, func(p *profile.Profile) string { return p.FirstName }},
	{"12", "Straße", false, false, func(p *profile.Profile) string { return p.Street }},
	{"13", "Hausnummer", false, false, func(p *profile.Profile) string { return p.HouseNumber }},
	{"14", "Postleitzahl", false, false, func(p *profile.Profile) string { return p.PostalCode }},
	{"15", "Ort", false, false, func(p *profile.Profile) string { return p.City }},
	{"16", "Steuernummer", true, false, func(p *profile.Profile) string { return p.TaxNumber }},
	{"17", "Identifikationsnummer", false, false, func(p *profile.Profile) string { return p.TaxID }},
	{"18", "Identifikationsnummer Ehegatte/Lebenspartner", false, true, func(p *profile.Profile) string { return p.SpouseTaxID }},
	{"19", "Beginn des Wirtschaftsjahres", true, false, func(p *profile.Profile) string { return date(p.FiscalYearStart) }},
	{"20", "Ende des Wirtschaftsjahres", true, false, func(p *profile.Profile) string { return date(p.FiscalYearEnd) }},
	{"21", "Art des Betriebs", true, false, func(p *profile.Profile) string { return p.Profession }},
	{"22", "Kleinunternehmer", false, false, func(p *profile.Profile) string { return yesNo(p.SmallBusiness) }},
	{"23", "Gewerbebetrieb", false, false, func(p *profile.Profile) string { return yesNo(p.Commercial) }},
	{"24", "Grundstücke veräußert", false, false, func(p *profile.Profile) string { return yesNo(p.PropertySold) }},
}

func date(t time.Time) string {
	if t.IsZero() {
		return ""
	}

	return t.Format("02.01.2006")
}

func yesNo(b bool) string {
	if b {
		return "Ja"
	}

	return "Nein"
}
