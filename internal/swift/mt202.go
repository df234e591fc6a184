package swift

import (
	"fmt"
	"strings"
	"time"

	"github.com/nvcfn/swiftgate/internal/apperrors"
	"github.com/shopspring/decimal"
)

// MT202 is a general financial institution transfer.
type MT202 struct {
	header
	Amount                decimal.Decimal
	Currency              string
	ValueDate             time.Time
	RelatedReference      string
	SenderCorrespondent   string
	ReceiverCorrespondent string
	PaymentDetails        string // optional
}

// NewMT202 builds a financial institution transfer message.
func NewMT202(senderBIC, receiverBIC, reference string, amount decimal.Decimal, currency string, valueDate time.Time) *MT202 {
	return &MT202{
		header:    header{senderBIC: senderBIC, receiverBIC: receiverBIC, reference: reference},
		Amount:    amount,
		Currency:  strings.ToUpper(currency),
		ValueDate: valueDate,
	}
}

func (m *MT202) Type() MessageType { return TypeMT202 }

func (m *MT202) Validate() error {
	if err := m.header.validate(TypeMT202); err != nil {
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
	if strings.TrimSpace(m.RelatedReference) == "" {
		missing = append(missing, "related reference")
	}
	if len(missing) > 0 {
		return apperrors.NewValidationError("MT202 missing required fields: " + strings.Join(missing, ", "))
	}
	return nil
}

func (m *MT202) block4() []Field {
	fields := []Field{
		{Tag: "20", Value: m.reference},
		{Tag: "21", Value: m.RelatedReference},
		{Tag: "32A", Value: fmt.Sprintf("%s%s%s", formatDate(m.ValueDate), m.Currency, formatAmount(m.Amount))},
		{Tag: "53A", Value: m.SenderCorrespondent},
		{Tag: "54A", Value: m.ReceiverCorrespondent},
	}
	if strings.TrimSpace(m.PaymentDetails) != "" {
		fields = append(fields, Field{Tag: "72", Value: normalizeText(m.PaymentDetails)})
	}
	return fields
}

func (m *MT202) Format() (string, error) {
	if err := m.Validate(); err != nil {
		return "", err
	}
	return m.renderBlocks(TypeMT202, m.block4()), nil
}

func (m *MT202) Fields() []Field {
	fields := []Field{
		{Tag: typeFieldTag, Value: string(TypeMT202)},
		{Tag: "sender_bic", Value: m.senderBIC},
		{Tag: "receiver_bic", Value: m.receiverBIC},
	}
	return append(fields, m.block4()...)
}
