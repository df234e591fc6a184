package domain

import (
	"strings"
	"unicode"
)

// SwiftProfile holds the SWIFT connectivity details of an institution as a
// typed sub-structure, not a free-form metadata blob.
type SwiftProfile struct {
	BIC             string `json:"bic"`
	APIKey          string `json:"apiKey,omitempty"`
	Username        string `json:"username,omitempty"`
	Password        string `json:"password,omitempty"`
	CertificatePath string `json:"certificatePath,omitempty"`
}

// FinancialInstitution is a counterparty bank reachable over the SWIFT
// network.
type FinancialInstitution struct {
	InstitutionID string       `json:"institutionID"` // Primary Key (UUID)
	Name          string       `json:"name"`
	Active        bool         `json:"active"`
	Swift         SwiftProfile `json:"swift"`
	AuditFields
}

// SwiftCredentials is the resolved addressing/auth material for one side of
// a SWIFT exchange.
type SwiftCredentials struct {
	BIC             string
	InstitutionName string
	APIKey          string
	Username        string
	Password        string
	CertificatePath string
}

// Valid reports whether the credentials are usable for message routing.
// A BIC is 8 or 11 characters; anything shorter cannot address a message.
func (c SwiftCredentials) Valid() bool {
	return len(strings.TrimSpace(c.BIC)) >= 8
}

// Credentials resolves SWIFT credentials for the institution. When no BIC is
// on file, one is derived from the sanitized institution name so that legacy
// records without a profile remain addressable in sandbox deployments.
func (f FinancialInstitution) Credentials() SwiftCredentials {
	creds := SwiftCredentials{
		BIC:             f.Swift.BIC,
		InstitutionName: f.Name,
		APIKey:          f.Swift.APIKey,
		Username:        f.Swift.Username,
		Password:        f.Swift.Password,
		CertificatePath: f.Swift.CertificatePath,
	}
	if strings.TrimSpace(creds.BIC) == "" {
		creds.BIC = deriveBICFromName(f.Name)
	}
	return creds
}

// deriveBICFromName builds a placeholder BIC from the first eight
// alphanumerics of the institution name, padded with X.
func deriveBICFromName(name string) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(name) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			if b.Len() >= 8 {
				break
			}
		}
	}
	if b.Len() == 0 {
		return ""
	}
	return b.String() + "XXXX"
}
