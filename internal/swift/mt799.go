package swift

import (
	"strings"

	"github.com/nvcfn/swiftgate/internal/apperrors"
)

// MT799 is a free format message.
type MT799 struct {
	header
	Narrative string
}

// NewMT799 builds a free format message.
func NewMT799(senderBIC, receiverBIC, reference, narrative string) *MT799 {
	return &MT799{
		header:    header{senderBIC: senderBIC, receiverBIC: receiverBIC, reference: reference},
		Narrative: narrative,
	}
}

func (m *MT799) Type() MessageType { return TypeMT799 }

func (m *MT799) Validate() error {
	if err := m.header.validate(TypeMT799); err != nil {
		return err
	}
	if strings.TrimSpace(m.Narrative) == "" {
		return apperrors.NewValidationError("MT799 missing required fields: narrative text")
	}
	return nil
}

func (m *MT799) block4() []Field {
	return []Field{
		{Tag: "20", Value: m.reference},
		{Tag: "79", Value: normalizeText(m.Narrative)},
	}
}

func (m *MT799) Format() (string, error) {
	if err := m.Validate(); err != nil {
		return "", err
	}
	return m.renderBlocks(TypeMT799, m.block4()), nil
}

func (m *MT799) Fields() []Field {
	fields := []Field{
		{Tag: typeFieldTag, Value: string(TypeMT799)},
		{Tag: "sender_bic", Value: m.senderBIC},
		{Tag: "receiver_bic", Value: m.receiverBIC},
	}
	return append(fields, m.block4()...)
}
