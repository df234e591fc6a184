package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nvcfn/swiftgate/internal/apperrors"
	"github.com/nvcfn/swiftgate/internal/core/domain"
)

// PgxSwiftTransactionRepository implements the SWIFT transaction log using
// pgxpool. The log is append-plus-status-update only; entries are never
// deleted.
type PgxSwiftTransactionRepository struct {
	BaseRepository
}

// NewPgxSwiftTransactionRepository creates a new PgxSwiftTransactionRepository.
func NewPgxSwiftTransactionRepository(db *pgxpool.Pool) *PgxSwiftTransactionRepository {
	return &PgxSwiftTransactionRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

const swiftTransactionColumns = `
	transaction_id, user_id, message_type, reference, institution_id, receiver_bic,
	amount, currency_code, status, message_id, description, metadata,
	created_at, created_by, last_updated_at, last_updated_by`

func scanSwiftTransaction(row pgx.Row) (*domain.SwiftTransaction, error) {
	var txn domain.SwiftTransaction
	err := row.Scan(
		&txn.TransactionID, &txn.UserID, &txn.MessageType, &txn.Reference,
		&txn.InstitutionID, &txn.ReceiverBIC, &txn.Amount, &txn.CurrencyCode,
		&txn.Status, &txn.MessageID, &txn.Description, &txn.Metadata,
		&txn.CreatedAt, &txn.CreatedBy, &txn.LastUpdatedAt, &txn.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &txn, nil
}

// SaveSwiftTransaction appends a new log entry.
func (r *PgxSwiftTransactionRepository) SaveSwiftTransaction(ctx context.Context, txn domain.SwiftTransaction) error {
	_, err := r.Pool.Exec(ctx, `
		INSERT INTO swift_transactions (`+swiftTransactionColumns+`
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`,
		txn.TransactionID, txn.UserID, txn.MessageType, txn.Reference,
		txn.InstitutionID, txn.ReceiverBIC, txn.Amount, txn.CurrencyCode,
		txn.Status, txn.MessageID, txn.Description, txn.Metadata,
		txn.CreatedAt, txn.CreatedBy, txn.LastUpdatedAt, txn.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to save swift transaction", err)
	}
	return nil
}

// FindSwiftTransactionByReference retrieves a log entry by sender reference.
func (r *PgxSwiftTransactionRepository) FindSwiftTransactionByReference(ctx context.Context, reference string) (*domain.SwiftTransaction, error) {
	row := r.Pool.QueryRow(ctx, `
		SELECT `+swiftTransactionColumns+`
		FROM swift_transactions
		WHERE reference = $1`,
		reference,
	)
	txn, err := scanSwiftTransaction(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("swift transaction with reference " + reference + " not found")
		}
		return nil, apperrors.NewAppError(500, "failed to find swift transaction", err)
	}
	return txn, nil
}

// ListSwiftTransactionsByUser lists a user's log entries, newest first.
func (r *PgxSwiftTransactionRepository) ListSwiftTransactionsByUser(ctx context.Context, userID string, limit int) ([]domain.SwiftTransaction, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.Pool.Query(ctx, `
		SELECT `+swiftTransactionColumns+`
		FROM swift_transactions
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2`,
		userID, limit,
	)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list swift transactions", err)
	}
	defer rows.Close()

	var txns []domain.SwiftTransaction
	for rows.Next() {
		txn, err := scanSwiftTransaction(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan swift transaction", err)
		}
		txns = append(txns, *txn)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating swift transactions", err)
	}
	return txns, nil
}

// UpdateSwiftTransactionStatus records a delivery status change.
func (r *PgxSwiftTransactionRepository) UpdateSwiftTransactionStatus(ctx context.Context, reference string, status domain.DeliveryStatus, updaterUserID string) error {
	tag, err := r.Pool.Exec(ctx, `
		UPDATE swift_transactions
		SET status = $1, last_updated_at = $2, last_updated_by = $3
		WHERE reference = $4`,
		status, time.Now(), updaterUserID, reference,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update swift transaction status", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("swift transaction with reference " + reference + " not found")
	}
	return nil
}
