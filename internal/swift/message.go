// Package swift implements construction, serialization and transmission of
// SWIFT MT messages (MT103, MT202, MT760, MT799).
//
// The wire format is the classic block structure: basic header (block 1),
// application header (block 2) and the tagged text block (block 4),
// terminated by "-}". This is a simplified formatter following the MT field
// tag conventions, not a certified SWIFT Alliance Gateway client.
package swift

import (
	"fmt"
	"strings"
	"time"

	"github.com/nvcfn/swiftgate/internal/apperrors"
	"github.com/shopspring/decimal"
)

// MessageType identifies a supported SWIFT MT message type.
type MessageType string

const (
	TypeMT103 MessageType = "MT103" // customer credit transfer
	TypeMT202 MessageType = "MT202" // general financial institution transfer
	TypeMT760 MessageType = "MT760" // standby letter of credit
	TypeMT799 MessageType = "MT799" // free format message
)

// numeric returns the 3-digit type code used in the application header.
func (t MessageType) numeric() string {
	return strings.TrimPrefix(string(t), "MT")
}

// Field is one tagged value of a message. Fields are ordered; the order is
// fixed per message type.
type Field struct {
	Tag   string `json:"tag"`
	Value string `json:"value"`
}

// Message is a SWIFT MT message capable of producing both the raw wire text
// and a structured field list for transports that submit JSON instead.
type Message interface {
	Type() MessageType
	Reference() string
	SenderBIC() string
	ReceiverBIC() string
	// Validate reports missing or malformed required fields.
	Validate() error
	// Format renders the canonical block wire text.
	Format() (string, error)
	// Fields returns every formatted value, in tag order, prefixed with the
	// message type. No information is lost by choosing Fields over Format.
	Fields() []Field
}

const crlf = "\r\n"

// header identifies sender and receiver; embedded by every message type.
type header struct {
	senderBIC   string
	receiverBIC string
	reference   string
}

func (h header) SenderBIC() string   { return h.senderBIC }
func (h header) ReceiverBIC() string { return h.receiverBIC }
func (h header) Reference() string   { return h.reference }

func (h header) validate(msgType MessageType) error {
	var missing []string
	if strings.TrimSpace(h.senderBIC) == "" {
		missing = append(missing, "sender BIC")
	}
	if strings.TrimSpace(h.receiverBIC) == "" {
		missing = append(missing, "receiver BIC")
	}
	if strings.TrimSpace(h.reference) == "" {
		missing = append(missing, "transaction reference")
	}
	if len(missing) > 0 {
		return apperrors.NewValidationError(fmt.Sprintf("%s missing required fields: %s", msgType, strings.Join(missing, ", ")))
	}
	return nil
}

// padBIC pads a BIC to the 12-character logical terminal address used in
// the headers.
func padBIC(bic string) string {
	bic = strings.ToUpper(strings.TrimSpace(bic))
	for len(bic) < 12 {
		bic += "X"
	}
	return bic[:12]
}

// basicHeader renders block 1: application id F, service id 01, sender
// address, session and sequence zeroed (assigned by the network).
func (h header) basicHeader() string {
	return fmt.Sprintf("{1:F01%s0000000000}", padBIC(h.senderBIC))
}

// applicationHeader renders block 2 for input messages with normal priority.
func (h header) applicationHeader(t MessageType) string {
	return fmt.Sprintf("{2:I%s%sN}", t.numeric(), padBIC(h.receiverBIC))
}

// renderBlocks assembles the full wire message around the given block 4
// fields.
func (h header) renderBlocks(t MessageType, fields []Field) string {
	var b strings.Builder
	b.WriteString(h.basicHeader())
	b.WriteString(h.applicationHeader(t))
	b.WriteString("{4:")
	b.WriteString(crlf)
	for _, f := range fields {
		b.WriteString(":")
		b.WriteString(f.Tag)
		b.WriteString(":")
		b.WriteString(f.Value)
		b.WriteString(crlf)
	}
	b.WriteString("-}")
	return b.String()
}

// formatDate renders a date as YYMMDD.
func formatDate(t time.Time) string {
	return t.Format("060102")
}

// formatAmount renders an amount with fixed 2-decimal formatting and no
// thousands separators.
func formatAmount(amount decimal.Decimal) string {
	return amount.StringFixed(2)
}

// normalizeText converts embedded newlines in free-text fields to CRLF, the
// network line convention, collapsing any pre-existing CR.
func normalizeText(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	return strings.ReplaceAll(s, "\n", crlf)
}

// typeField is the pseudo-field carrying the message type in the structured
// representation.
const typeFieldTag = "message_type"

// ParseFields extracts the block 4 tagged fields from wire text produced by
// Format. Continuation lines of a multi-line value are folded back into the
// preceding tag.
func ParseFields(wire string) ([]Field, error) {
	start := strings.Index(wire, "{4:")
	if start < 0 {
		return nil, apperrors.NewValidationError("wire text has no block 4")
	}
	end := strings.LastIndex(wire, "-}")
	if end < 0 || end < start {
		return nil, apperrors.NewValidationError("wire text block 4 is not terminated")
	}
	body := wire[start+len("{4:") : end]

	var fields []Field
	for _, line := range strings.Split(body, crlf) {
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, ":") {
			rest := line[1:]
			sep := strings.Index(rest, ":")
			if sep <= 0 {
				return nil, apperrors.NewValidationError(fmt.Sprintf("malformed tag line %q", line))
			}
			fields = append(fields, Field{Tag: rest[:sep], Value: rest[sep+1:]})
			continue
		}
		// Continuation of the previous field's free text.
		if len(fields) == 0 {
			return nil, apperrors.NewValidationError(fmt.Sprintf("continuation line %q before any tag", line))
		}
		fields[len(fields)-1].Value += crlf + line
	}
	return fields, nil
}
