package category

import (
	"regexp"
	"strings"
)

// Variant names a chart of accounts (Standardkontenrahmen).
type Variant string

const (
	SKR03 Variant = "skr03"
	SKR04 Variant = "skr04"
	SKR49 Variant = "skr49"

	DefaultVariant = SKR03
)

var variantPattern = regexp.MustCompile(`^[a-z0-9_-]+$`)

// Variants lists the charts of accounts shipped with the binary.
func Variants() []Variant {
	return []Variant{SKR03, SKR04, SKR49}
}

// NormalizeVariant lower-cases a user supplied variant name.
// An empty name selects the default variant.
func NormalizeVariant(s string) Variant {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return DefaultVariant
	}

	return Variant(s)
}

func (v Variant) valid() bool {
	return variantPattern.MatchString(string(v))
}
