package domain

import "regexp"

// Currency represents a supported currency or platform token.
// The set is open: new codes can be registered at runtime, so platform
// tokens (NVCT, AFD1, SFN, AKLUMI) live alongside ISO-4217 codes without a
// code change.
type Currency struct {
	CurrencyCode string `json:"currencyCode"` // Primary Key (e.g., "USD", "NVCT")
	Symbol       string `json:"symbol"`       // e.g., "$"
	Name         string `json:"name"`         // e.g., "US Dollar"
	Precision    int    `json:"precision"`    // decimal places, e.g. 2 for USD, 0 for JPY
	AuditFields
}

// currencyCodePattern accepts ISO-4217 codes plus the platform's longer
// token identifiers (3 to 6 uppercase alphanumerics).
var currencyCodePattern = regexp.MustCompile(`^[A-Z0-9]{3,6}$`)

// ValidCurrencyCode reports whether a code is well formed. Membership in the
// registry is a separate check owned by the currency service.
func ValidCurrencyCode(code string) bool {
	return currencyCodePattern.MatchString(code)
}
