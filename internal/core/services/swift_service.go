package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nvcfn/swiftgate/internal/apperrors"
	"github.com/nvcfn/swiftgate/internal/core/domain"
	portsrepo "github.com/nvcfn/swiftgate/internal/core/ports/repositories"
	portssvc "github.com/nvcfn/swiftgate/internal/core/ports/services"
	"github.com/nvcfn/swiftgate/internal/dto"
	"github.com/nvcfn/swiftgate/internal/swift"
	"github.com/nvcfn/swiftgate/internal/utils"
	"github.com/shopspring/decimal"
)

// SenderProfile is the local institution's SWIFT identity, resolved from
// configuration.
type SenderProfile struct {
	BIC             string
	InstitutionName string
}

// Credentials converts the profile to credentials for validity checks.
func (p SenderProfile) Credentials() domain.SwiftCredentials {
	return domain.SwiftCredentials{BIC: p.BIC, InstitutionName: p.InstitutionName}
}

// SwiftService orchestrates SWIFT messaging: credential resolution, message
// construction, transport dispatch and transaction logging. A log entry is
// written only after the transport confirms (or sandbox-simulates) the send.
type SwiftService struct {
	sender          SenderProfile
	institutionRepo portsrepo.InstitutionReader
	txnRepo         portsrepo.SwiftTransactionRepositoryFacade
	transport       swift.Transport
	identity        portssvc.IdentitySvc
	baseCurrency    string
	now             func() time.Time
}

// NewSwiftService creates a new SwiftService.
func NewSwiftService(sender SenderProfile, institutionRepo portsrepo.InstitutionReader, txnRepo portsrepo.SwiftTransactionRepositoryFacade, transport swift.Transport, identity portssvc.IdentitySvc, baseCurrency string) *SwiftService {
	return &SwiftService{
		sender:          sender,
		institutionRepo: institutionRepo,
		txnRepo:         txnRepo,
		transport:       transport,
		identity:        identity,
		baseCurrency:    strings.ToUpper(baseCurrency),
		now:             time.Now,
	}
}

// resolveReceiver loads the counterparty institution and validates its
// credentials before any transmission is attempted.
func (s *SwiftService) resolveReceiver(ctx context.Context, institutionID string) (*domain.FinancialInstitution, domain.SwiftCredentials, error) {
	institution, err := s.institutionRepo.FindInstitutionByID(ctx, institutionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, domain.SwiftCredentials{}, fmt.Errorf("%w: receiver institution %s not found", apperrors.ErrValidation, institutionID)
		}
		return nil, domain.SwiftCredentials{}, fmt.Errorf("failed to resolve receiver institution: %w", err)
	}
	if !institution.Active {
		return nil, domain.SwiftCredentials{}, fmt.Errorf("%w: receiver institution %s is inactive", apperrors.ErrValidation, institution.Name)
	}
	creds := institution.Credentials()
	if !creds.Valid() {
		return nil, domain.SwiftCredentials{}, fmt.Errorf("%w: receiver institution %s has no usable BIC", apperrors.ErrValidation, institution.Name)
	}
	if !s.sender.Credentials().Valid() {
		return nil, domain.SwiftCredentials{}, fmt.Errorf("%w: sender BIC is not configured", apperrors.ErrValidation)
	}
	return institution, creds, nil
}

// logTransaction appends the transaction log entry for a confirmed send.
func (s *SwiftService) logTransaction(ctx context.Context, userID string, institution *domain.FinancialInstitution, creds domain.SwiftCredentials, msg swift.Message, receipt *swift.SendReceipt, amount decimal.Decimal, currency, description string) (*domain.SwiftTransaction, error) {
	snapshot, err := json.Marshal(msg.Fields())
	if err != nil {
		return nil, fmt.Errorf("failed to serialize message fields: %w", err)
	}

	now := s.now()
	txn := domain.SwiftTransaction{
		TransactionID: uuid.NewString(),
		UserID:        userID,
		MessageType:   string(msg.Type()),
		Reference:     msg.Reference(),
		InstitutionID: institution.InstitutionID,
		ReceiverBIC:   creds.BIC,
		Amount:        amount,
		CurrencyCode:  strings.ToUpper(currency),
		Status:        receipt.Status,
		MessageID:     receipt.MessageID,
		Description:   description,
		Metadata:      string(snapshot),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if err := s.txnRepo.SaveSwiftTransaction(ctx, txn); err != nil {
		return nil, fmt.Errorf("message %s sent but logging failed: %w", receipt.MessageID, err)
	}
	return &txn, nil
}

// IssueStandbyLetterOfCredit constructs and transmits an MT760.
func (s *SwiftService) IssueStandbyLetterOfCredit(ctx context.Context, req dto.IssueLetterOfCreditRequest, userID string) (*domain.SwiftTransaction, error) {
	institution, creds, err := s.resolveReceiver(ctx, req.ReceiverInstitutionID)
	if err != nil {
		return nil, err
	}

	reference, err := utils.GenerateMessageReference("SBLC", s.now())
	if err != nil {
		return nil, fmt.Errorf("failed to generate reference: %w", err)
	}

	msg := swift.NewMT760(s.sender.BIC, creds.BIC, reference, req.Amount, req.CurrencyCode)
	msg.IssueDate = s.now()
	msg.ExpiryDate = req.ExpiryDate
	msg.Applicant = req.Applicant
	if strings.TrimSpace(msg.Applicant) == "" {
		msg.Applicant = s.sender.InstitutionName
	}
	msg.Beneficiary = req.Beneficiary
	msg.TermsAndConditions = req.TermsAndConditions

	receipt, err := s.transport.Send(ctx, msg)
	if err != nil {
		return nil, err
	}

	description := fmt.Sprintf("Standby Letter of Credit %s for %s %s", reference, req.Amount.StringFixed(2), strings.ToUpper(req.CurrencyCode))
	return s.logTransaction(ctx, userID, institution, creds, msg, receipt, req.Amount, req.CurrencyCode, description)
}

// IssueFundTransfer constructs and transmits an MT103 customer transfer, or
// an MT202 institution transfer when the flag is set. The ordering customer
// defaults to the initiating user's identity when not supplied.
func (s *SwiftService) IssueFundTransfer(ctx context.Context, req dto.IssueFundTransferRequest, userID string) (*domain.SwiftTransaction, error) {
	institution, creds, err := s.resolveReceiver(ctx, req.ReceiverInstitutionID)
	if err != nil {
		return nil, err
	}

	reference, err := utils.GenerateMessageReference("TRF", s.now())
	if err != nil {
		return nil, fmt.Errorf("failed to generate reference: %w", err)
	}

	orderingCustomer := strings.TrimSpace(req.OrderingCustomer)
	if orderingCustomer == "" {
		orderingCustomer, err = s.identity.DisplayName(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve ordering customer identity: %w", err)
		}
	}

	var msg swift.Message
	if req.InstitutionTransfer {
		mt202 := swift.NewMT202(s.sender.BIC, creds.BIC, reference, req.Amount, req.CurrencyCode, s.now())
		mt202.RelatedReference = reference
		mt202.SenderCorrespondent = s.sender.BIC
		mt202.ReceiverCorrespondent = creds.BIC
		mt202.PaymentDetails = req.PaymentDetails
		msg = mt202
	} else {
		mt103 := swift.NewMT103(s.sender.BIC, creds.BIC, reference, req.Amount, req.CurrencyCode, s.now())
		mt103.OrderingCustomer = orderingCustomer
		mt103.OrderingInstitution = s.sender.BIC
		mt103.BeneficiaryInstitution = creds.BIC
		mt103.BeneficiaryCustomer = req.BeneficiaryCustomer
		mt103.PaymentDetails = req.PaymentDetails
		msg = mt103
	}

	receipt, err := s.transport.Send(ctx, msg)
	if err != nil {
		return nil, err
	}

	description := fmt.Sprintf("SWIFT %s Fund Transfer %s for %s %s", msg.Type(), reference, req.Amount.StringFixed(2), strings.ToUpper(req.CurrencyCode))
	return s.logTransaction(ctx, userID, institution, creds, msg, receipt, req.Amount, req.CurrencyCode, description)
}

// SendFreeFormatMessage constructs and transmits an MT799. The log entry
// carries a zero amount in the base currency.
func (s *SwiftService) SendFreeFormatMessage(ctx context.Context, req dto.FreeFormatMessageRequest, userID string) (*domain.SwiftTransaction, error) {
	institution, creds, err := s.resolveReceiver(ctx, req.ReceiverInstitutionID)
	if err != nil {
		return nil, err
	}

	reference := strings.TrimSpace(req.Reference)
	if len(reference) > utils.MaxReferenceLength {
		return nil, fmt.Errorf("%w: reference exceeds %d characters", apperrors.ErrValidation, utils.MaxReferenceLength)
	}
	if reference == "" {
		reference, err = utils.GenerateMessageReference("FM", s.now())
		if err != nil {
			return nil, fmt.Errorf("failed to generate reference: %w", err)
		}
	}

	msg := swift.NewMT799(s.sender.BIC, creds.BIC, reference, req.Narrative)

	receipt, err := s.transport.Send(ctx, msg)
	if err != nil {
		return nil, err
	}

	description := fmt.Sprintf("SWIFT MT799 Free Format Message %s", reference)
	return s.logTransaction(ctx, userID, institution, creds, msg, receipt, decimal.Zero, s.baseCurrency, description)
}

// GetMessageStatus looks up a logged message by sender reference and polls
// the transport. Terminal statuses are returned from the log without a
// transport call; otherwise the polled status is written back.
func (s *SwiftService) GetMessageStatus(ctx context.Context, reference string) (*domain.SwiftTransaction, *domain.DeliveryRecord, error) {
	txn, err := s.txnRepo.FindSwiftTransactionByReference(ctx, reference)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to look up message %s: %w", reference, err)
	}

	if txn.Status.Terminal() {
		return txn, &domain.DeliveryRecord{MessageID: txn.MessageID, Status: txn.Status}, nil
	}

	record, err := s.transport.GetStatus(ctx, txn.MessageID)
	if err != nil {
		return nil, nil, err
	}
	if record.Status != txn.Status {
		if err := s.txnRepo.UpdateSwiftTransactionStatus(ctx, reference, record.Status, txn.UserID); err != nil {
			return nil, nil, fmt.Errorf("failed to record status change for %s: %w", reference, err)
		}
		txn.Status = record.Status
	}
	return txn, record, nil
}

// defaultMessageListLimit bounds history queries without an explicit limit.
const (
	defaultMessageListLimit = 50
	maxMessageListLimit     = 200
)

// ListUserMessages lists the caller's logged messages, newest first.
func (s *SwiftService) ListUserMessages(ctx context.Context, userID string, limit int) ([]domain.SwiftTransaction, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, fmt.Errorf("%w: user id must not be empty", apperrors.ErrValidation)
	}
	if limit <= 0 {
		limit = defaultMessageListLimit
	}
	if limit > maxMessageListLimit {
		limit = maxMessageListLimit
	}

	txns, err := s.txnRepo.ListSwiftTransactionsByUser(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages for user %s: %w", userID, err)
	}
	if txns == nil {
		txns = []domain.SwiftTransaction{}
	}
	return txns, nil
}

// ListSwiftInstitutions lists the counterparties currently reachable over
// SWIFT.
func (s *SwiftService) ListSwiftInstitutions(ctx context.Context) ([]domain.FinancialInstitution, error) {
	institutions, err := s.institutionRepo.ListActiveInstitutions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list institutions: %w", err)
	}
	if institutions == nil {
		institutions = []domain.FinancialInstitution{}
	}
	return institutions, nil
}
