package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DeliveryStatus is the transport-reported state of a sent message.
// pending -> delivered | failed | unknown; delivered and failed are terminal.
type DeliveryStatus string

const (
	DeliveryPending   DeliveryStatus = "pending"
	DeliveryDelivered DeliveryStatus = "delivered"
	DeliveryFailed    DeliveryStatus = "failed"
	DeliveryUnknown   DeliveryStatus = "unknown"
)

// Terminal reports whether no further status transitions are possible.
func (s DeliveryStatus) Terminal() bool {
	return s == DeliveryDelivered || s == DeliveryFailed
}

// DeliveryRecord is the transport's view of one message's delivery.
type DeliveryRecord struct {
	MessageID    string            `json:"messageID"`
	Status       DeliveryStatus    `json:"status"`
	DeliveryTime *time.Time        `json:"deliveryTime,omitempty"`
	RawDetails   map[string]string `json:"rawDetails,omitempty"`
}

// SwiftTransaction is the transaction-log entry recorded after a confirmed
// (or sandbox-simulated) send. It is never written for a failed send.
type SwiftTransaction struct {
	TransactionID string          `json:"transactionID"` // Primary Key (UUID)
	UserID        string          `json:"userID"`
	MessageType   string          `json:"messageType"` // MT103, MT202, MT760, MT799
	Reference     string          `json:"reference"`   // sender reference (:20:)
	InstitutionID string          `json:"institutionID"`
	ReceiverBIC   string          `json:"receiverBIC"`
	Amount        decimal.Decimal `json:"amount"` // zero for free-format messages
	CurrencyCode  string          `json:"currencyCode"`
	Status        DeliveryStatus  `json:"status"`
	MessageID     string          `json:"messageID"` // gateway id for later status lookups
	Description   string          `json:"description"`
	Metadata      string          `json:"metadata"` // JSON snapshot of the message fields
	AuditFields
}
