package swift

import (
	"fmt"
	"strings"
	"time"

	"github.com/nvcfn/swiftgate/internal/apperrors"
	"github.com/shopspring/decimal"
)

// MT760 is a standby letter of credit issuance.
type MT760 struct {
	header
	IssueDate          time.Time
	ExpiryDate         time.Time
	Amount             decimal.Decimal
	Currency           string
	Applicant          string
	Beneficiary        string
	TermsAndConditions string
}

// NewMT760 builds a standby letter of credit message.
func NewMT760(senderBIC, receiverBIC, reference string, amount decimal.Decimal, currency string) *MT760 {
	return &MT760{
		header:   header{senderBIC: senderBIC, receiverBIC: receiverBIC, reference: reference},
		Amount:   amount,
		Currency: strings.ToUpper(currency),
	}
}

func (m *MT760) Type() MessageType { return TypeMT760 }

func (m *MT760) Validate() error {
	if err := m.header.validate(TypeMT760); err != nil {
		return err
	}
	var missing []string
	if m.Amount.LessThanOrEqual(decimal.Zero) {
		missing = append(missing, "positive amount")
	}
	if m.Currency == "" {
		missing = append(missing, "currency")
	}
	if m.IssueDate.IsZero() {
		missing = append(missing, "issue date")
	}
	if m.ExpiryDate.IsZero() {
		missing = append(missing, "expiry date")
	}
	if !m.IssueDate.IsZero() && !m.ExpiryDate.IsZero() && !m.ExpiryDate.After(m.IssueDate) {
		missing = append(missing, "expiry date after issue date")
	}
	if strings.TrimSpace(m.Beneficiary) == "" {
		missing = append(missing, "beneficiary")
	}
	if strings.TrimSpace(m.TermsAndConditions) == "" {
		missing = append(missing, "terms and conditions")
	}
	if len(missing) > 0 {
		return apperrors.NewValidationError("MT760 missing required fields: " + strings.Join(missing, ", "))
	}
	return nil
}

func (m *MT760) block4() []Field {
	return []Field{
		{Tag: "20", Value: m.reference},
		{Tag: "30", Value: formatDate(m.IssueDate)},
		{Tag: "31D", Value: formatDate(m.ExpiryDate)},
		{Tag: "32B", Value: fmt.Sprintf("%s%s", m.Currency, formatAmount(m.Amount))},
		{Tag: "50", Value: m.Applicant},
		{Tag: "59", Value: m.Beneficiary},
		{Tag: "77D", Value: normalizeText(m.TermsAndConditions)},
	}
}

func (m *MT760) Format() (string, error) {
	if err := m.Validate(); err != nil {
		return "", err
	}
	return m.renderBlocks(TypeMT760, m.block4()), nil
}

func (m *MT760) Fields() []Field {
	fields := []Field{
		{Tag: typeFieldTag, Value: string(TypeMT760)},
		{Tag: "sender_bic", Value: m.senderBIC},
		{Tag: "receiver_bic", Value: m.receiverBIC},
	}
	return append(fields, m.block4()...)
}
