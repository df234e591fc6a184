package dto

import (
	"time"

	"github.com/nvcfn/swiftgate/internal/core/domain"
	"github.com/shopspring/decimal"
)

// IssueLetterOfCreditRequest asks for an MT760 standby letter of credit.
type IssueLetterOfCreditRequest struct {
	ReceiverInstitutionID string          `json:"receiverInstitutionID" binding:"required"`
	Amount                decimal.Decimal `json:"amount" binding:"required"`
	CurrencyCode          string          `json:"currencyCode" binding:"required,currency_code"`
	Beneficiary           string          `json:"beneficiary" binding:"required"`
	ExpiryDate            time.Time       `json:"expiryDate" binding:"required"`
	TermsAndConditions    string          `json:"termsAndConditions" binding:"required"`
	Applicant             string          `json:"applicant"`
}

// IssueFundTransferRequest asks for an MT103 customer transfer, or an MT202
// institution transfer when InstitutionTransfer is set.
type IssueFundTransferRequest struct {
	ReceiverInstitutionID string          `json:"receiverInstitutionID" binding:"required"`
	Amount                decimal.Decimal `json:"amount" binding:"required"`
	CurrencyCode          string          `json:"currencyCode" binding:"required,currency_code"`
	BeneficiaryCustomer   string          `json:"beneficiaryCustomer" binding:"required"`
	OrderingCustomer      string          `json:"orderingCustomer"` // defaults to the initiating user's identity
	PaymentDetails        string          `json:"paymentDetails"`
	InstitutionTransfer   bool            `json:"institutionTransfer"`
}

// FreeFormatMessageRequest asks for an MT799 free-format message. The caller
// may supply its own sender reference; one is generated otherwise. The
// reference bound matches utils.MaxReferenceLength and the log column width.
type FreeFormatMessageRequest struct {
	ReceiverInstitutionID string `json:"receiverInstitutionID" binding:"required"`
	Reference             string `json:"reference" binding:"max=32"`
	Narrative             string `json:"narrative" binding:"required"`
}

// SwiftTransactionResponse is the logged outcome of a SWIFT operation.
type SwiftTransactionResponse struct {
	TransactionID string          `json:"transactionID"`
	MessageType   string          `json:"messageType"`
	Reference     string          `json:"reference"`
	ReceiverBIC   string          `json:"receiverBIC"`
	Amount        decimal.Decimal `json:"amount"`
	CurrencyCode  string          `json:"currencyCode"`
	Status        string          `json:"status"`
	MessageID     string          `json:"messageID"`
	Description   string          `json:"description"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// ToSwiftTransactionResponse converts a domain.SwiftTransaction to its
// response DTO.
func ToSwiftTransactionResponse(txn *domain.SwiftTransaction) SwiftTransactionResponse {
	return SwiftTransactionResponse{
		TransactionID: txn.TransactionID,
		MessageType:   txn.MessageType,
		Reference:     txn.Reference,
		ReceiverBIC:   txn.ReceiverBIC,
		Amount:        txn.Amount,
		CurrencyCode:  txn.CurrencyCode,
		Status:        string(txn.Status),
		MessageID:     txn.MessageID,
		Description:   txn.Description,
		CreatedAt:     txn.CreatedAt,
	}
}

// MessageStatusResponse reports the delivery state of a logged message.
type MessageStatusResponse struct {
	Reference    string            `json:"reference"`
	MessageID    string            `json:"messageID"`
	Status       string            `json:"status"`
	DeliveryTime *time.Time        `json:"deliveryTime,omitempty"`
	Details      map[string]string `json:"details,omitempty"`
}

// InstitutionResponse is a directory entry for a SWIFT-reachable
// counterparty.
type InstitutionResponse struct {
	InstitutionID string `json:"institutionID"`
	Name          string `json:"name"`
	BIC           string `json:"bic"`
	Active        bool   `json:"active"`
}

// ToInstitutionResponse converts a domain.FinancialInstitution to its
// response DTO. The BIC shown is the resolved one, including the
// name-derived fallback.
func ToInstitutionResponse(inst *domain.FinancialInstitution) InstitutionResponse {
	return InstitutionResponse{
		InstitutionID: inst.InstitutionID,
		Name:          inst.Name,
		BIC:           inst.Credentials().BIC,
		Active:        inst.Active,
	}
}

// ValidateRoutingNumberRequest carries an ABA routing number to validate.
type ValidateRoutingNumberRequest struct {
	RoutingNumber string `json:"routingNumber" binding:"required"`
}

// ValidateRoutingNumberResponse reports the checksum verdict.
type ValidateRoutingNumberResponse struct {
	RoutingNumber string `json:"routingNumber"`
	Valid         bool   `json:"valid"`
}
