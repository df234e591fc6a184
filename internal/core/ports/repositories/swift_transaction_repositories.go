package repositories

import (
	"context"

	"github.com/nvcfn/swiftgate/internal/core/domain"
)

// SwiftTransactionReader defines read operations for the SWIFT transaction log.
type SwiftTransactionReader interface {
	// FindSwiftTransactionByReference retrieves a log entry by its sender
	// reference. Absence is apperrors.ErrNotFound.
	FindSwiftTransactionByReference(ctx context.Context, reference string) (*domain.SwiftTransaction, error)

	// ListSwiftTransactionsByUser lists a user's log entries, newest first.
	ListSwiftTransactionsByUser(ctx context.Context, userID string, limit int) ([]domain.SwiftTransaction, error)
}

// SwiftTransactionWriter defines write operations for the SWIFT transaction log.
type SwiftTransactionWriter interface {
	// SaveSwiftTransaction appends a new log entry.
	SaveSwiftTransaction(ctx context.Context, txn domain.SwiftTransaction) error

	// UpdateSwiftTransactionStatus records a delivery status change for the
	// entry with the given reference.
	UpdateSwiftTransactionStatus(ctx context.Context, reference string, status domain.DeliveryStatus, updaterUserID string) error
}

// SwiftTransactionRepositoryFacade combines all SWIFT transaction log
// repository interfaces.
type SwiftTransactionRepositoryFacade interface {
	SwiftTransactionReader
	SwiftTransactionWriter
}
