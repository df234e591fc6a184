package swift

import (
	"context"

	"github.com/nvcfn/swiftgate/internal/core/domain"
)

// SendReceipt is the transport's acknowledgement of an accepted message.
type SendReceipt struct {
	MessageID string
	Status    domain.DeliveryStatus
	Detail    string
}

// Transport delivers formatted messages to a counterparty institution and
// polls delivery status. Implementations convert every internal failure into
// an error return; they never panic across this boundary, because a caller
// mid-transaction must still be able to roll back its own writes.
type Transport interface {
	// TestConnection verifies the gateway is reachable, returning a
	// human-readable detail string.
	TestConnection(ctx context.Context) (string, error)

	// Send delivers a message. The receipt is non-nil exactly when the
	// error is nil.
	Send(ctx context.Context, msg Message) (*SendReceipt, error)

	// GetStatus polls the delivery status of a previously sent message.
	// Unknown message ids yield apperrors.ErrNotFound.
	GetStatus(ctx context.Context, messageID string) (*domain.DeliveryRecord, error)
}
