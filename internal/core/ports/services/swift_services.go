package services

import (
	"context"

	"github.com/nvcfn/swiftgate/internal/core/domain"
	"github.com/nvcfn/swiftgate/internal/dto"
	"github.com/shopspring/decimal"
)

// SwiftSvcFacade exposes the SWIFT messaging use cases to the web layer.
// Every operation resolves credentials, builds the message, sends it and --
// only after a confirmed send -- appends a transaction log entry.
type SwiftSvcFacade interface {
	// IssueStandbyLetterOfCredit constructs and transmits an MT760.
	IssueStandbyLetterOfCredit(ctx context.Context, req dto.IssueLetterOfCreditRequest, userID string) (*domain.SwiftTransaction, error)

	// IssueFundTransfer constructs and transmits an MT103, or an MT202 when
	// the institution-transfer flag is set.
	IssueFundTransfer(ctx context.Context, req dto.IssueFundTransferRequest, userID string) (*domain.SwiftTransaction, error)

	// SendFreeFormatMessage constructs and transmits an MT799.
	SendFreeFormatMessage(ctx context.Context, req dto.FreeFormatMessageRequest, userID string) (*domain.SwiftTransaction, error)

	// GetMessageStatus looks up a logged message by sender reference and
	// polls the transport for its current delivery state.
	GetMessageStatus(ctx context.Context, reference string) (*domain.SwiftTransaction, *domain.DeliveryRecord, error)

	// ListUserMessages lists the caller's logged messages, newest first.
	ListUserMessages(ctx context.Context, userID string, limit int) ([]domain.SwiftTransaction, error)

	// ListSwiftInstitutions lists counterparties reachable over SWIFT.
	ListSwiftInstitutions(ctx context.Context) ([]domain.FinancialInstitution, error)
}

// GoldPriceSvc supplies the current gold price in USD per ounce; used only
// for seeding the gold-pegged unit's rate.
type GoldPriceSvc interface {
	CurrentPrice(ctx context.Context) (decimal.Decimal, error)
}

// IdentitySvc supplies the initiating user's display identity for the
// default ordering-customer text.
type IdentitySvc interface {
	DisplayName(ctx context.Context, userID string) (string, error)
}
