package swift

import (
	"fmt"
	"strings"
	"time"

	"github.com/nvcfn/swiftgate/internal/apperrors"
	"github.com/shopspring/decimal"
)

// MT103 is a single customer credit transfer.
type MT103 struct {
	header
	Amount                 decimal.Decimal
	Currency               string
	ValueDate              time.Time
	OrderingCustomer       string
	OrderingInstitution    string
	BeneficiaryCustomer    string
	BeneficiaryInstitution string
	PaymentDetails         string // optional
}

// NewMT103 builds a customer credit transfer message.
func NewMT103(senderBIC, receiverBIC, reference string, amount decimal.Decimal, currency string, valueDate time.Time) *MT103 {
	return &MT103{
		header:    header{senderBIC: senderBIC, receiverBIC: receiverBIC, reference: reference},
		Amount:    amount,
		Currency:  strings.ToUpper(currency),
		ValueDate: valueDate,
	}
}

func (m *MT103) Type() MessageType { return TypeMT103 }

func (m *MT103) Validate() error {
	if err := m.header.validate(TypeMT103); err != nil {
		return err
	}
	var missing []string
	if m.Amount.LessThanOrEqual(decimal.Zero) {
		missing = append(missing, "positive amount")
	}
	if m.Currency == "" {
		missing = append(missing, "currency")
	}
	if m.ValueDate.IsZero() {
		missing = append(missing, "value date")
	}
	if strings.TrimSpace(m.OrderingCustomer) == "" {
		missing = append(missing, "ordering customer")
	}
	if strings.TrimSpace(m.BeneficiaryCustomer) == "" {
		missing = append(missing, "beneficiary customer")
	}
	if len(missing) > 0 {
		return apperrors.NewValidationError("MT103 missing required fields: " + strings.Join(missing, ", "))
	}
	return nil
}

// block4 lists the text fields in the fixed MT103 tag order.
func (m *MT103) block4() []Field {
	fields := []Field{
		{Tag: "20", Value: m.reference},
		{Tag: "23B", Value: "CRED"},
		{Tag: "32A", Value: fmt.Sprintf("%s%s%s", formatDate(m.ValueDate), m.Currency, formatAmount(m.Amount))},
		{Tag: "50K", Value: m.OrderingCustomer},
		{Tag: "52A", Value: m.OrderingInstitution},
		{Tag: "57A", Value: m.BeneficiaryInstitution},
		{Tag: "59", Value: m.BeneficiaryCustomer},
	}
	if strings.TrimSpace(m.PaymentDetails) != "" {
		fields = append(fields, Field{Tag: "70", Value: normalizeText(m.PaymentDetails)})
	}
	return fields
}

func (m *MT103) Format() (string, error) {
	if err := m.Validate(); err != nil {
		return "", err
	}
	return m.renderBlocks(TypeMT103, m.block4()), nil
}

func (m *MT103) Fields() []Field {
	fields := []Field{
		{Tag: typeFieldTag, Value: string(TypeMT103)},
		{Tag: "sender_bic", Value: m.senderBIC},
		{Tag: "receiver_bic", Value: m.receiverBIC},
	}
	return append(fields, m.block4()...)
}
