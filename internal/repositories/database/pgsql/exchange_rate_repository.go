package pgsql

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nvcfn/swiftgate/internal/apperrors"
	"github.com/nvcfn/swiftgate/internal/core/domain"
)

// PgxExchangeRateRepository implements the exchange rate store using pgxpool.
type PgxExchangeRateRepository struct {
	BaseRepository
}

// NewPgxExchangeRateRepository creates a new PgxExchangeRateRepository.
func NewPgxExchangeRateRepository(db *pgxpool.Pool) *PgxExchangeRateRepository {
	return &PgxExchangeRateRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

// SaveExchangeRate inserts or updates the rate for its ordered pair. The
// select runs FOR UPDATE inside the transaction so the rate and its stored
// inverse are never torn apart by a concurrent writer.
func (r *PgxExchangeRateRepository) SaveExchangeRate(ctx context.Context, rate domain.ExchangeRate) error {
	fromCurrency := strings.ToUpper(rate.FromCurrencyCode)
	toCurrency := strings.ToUpper(rate.ToCurrencyCode)
	if fromCurrency == toCurrency {
		return apperrors.NewValidationError("from and to currencies cannot be the same")
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}

	var existingID string
	err = tx.QueryRow(ctx,
		`SELECT exchange_rate_id FROM exchange_rates
		WHERE from_currency_code = $1 AND to_currency_code = $2
		FOR UPDATE`,
		fromCurrency, toCurrency,
	).Scan(&existingID)

	if err == nil && existingID != "" {
		_, err = tx.Exec(ctx, `
			UPDATE exchange_rates
			SET rate = $1, inverse_rate = $2, source = $3, is_active = $4,
				last_updated_at = $5, last_updated_by = $6
			WHERE exchange_rate_id = $7`,
			rate.Rate, rate.InverseRate, rate.Source, rate.Active,
			rate.LastUpdatedAt, rate.LastUpdatedBy, existingID,
		)
	} else if errors.Is(err, pgx.ErrNoRows) {
		_, err = tx.Exec(ctx, `
			INSERT INTO exchange_rates (
				exchange_rate_id, from_currency_code, to_currency_code, rate, inverse_rate,
				source, is_active, created_at, created_by, last_updated_at, last_updated_by
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
			rate.ExchangeRateID, fromCurrency, toCurrency, rate.Rate, rate.InverseRate,
			rate.Source, rate.Active, rate.CreatedAt, rate.CreatedBy,
			rate.LastUpdatedAt, rate.LastUpdatedBy,
		)
	}

	if err != nil {
		_ = r.Rollback(ctx, tx)
		return apperrors.NewAppError(500, "failed to save exchange rate", err)
	}
	return r.Commit(ctx, tx)
}

// FindExchangeRate retrieves the most recently updated active rate for the
// exact ordered pair. Absence maps to ErrNotFound; storage failures stay
// distinguishable as AppError.
func (r *PgxExchangeRateRepository) FindExchangeRate(ctx context.Context, fromCurrencyCode, toCurrencyCode string) (*domain.ExchangeRate, error) {
	fromCurrency := strings.ToUpper(fromCurrencyCode)
	toCurrency := strings.ToUpper(toCurrencyCode)

	query := `
		SELECT
			exchange_rate_id, from_currency_code, to_currency_code, rate, inverse_rate,
			source, is_active, created_at, created_by, last_updated_at, last_updated_by
		FROM exchange_rates
		WHERE from_currency_code = $1 AND to_currency_code = $2 AND is_active = TRUE
		ORDER BY last_updated_at DESC
		LIMIT 1;
	`

	var rate domain.ExchangeRate
	err := r.Pool.QueryRow(ctx, query, fromCurrency, toCurrency).Scan(
		&rate.ExchangeRateID, &rate.FromCurrencyCode, &rate.ToCurrencyCode,
		&rate.Rate, &rate.InverseRate, &rate.Source, &rate.Active,
		&rate.CreatedAt, &rate.CreatedBy, &rate.LastUpdatedAt, &rate.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("exchange rate not found for " + fromCurrency + " to " + toCurrency)
		}
		return nil, apperrors.NewAppError(500, "failed to find exchange rate", err)
	}
	return &rate, nil
}

// DeactivateExchangeRate soft-deletes the rate for the ordered pair.
func (r *PgxExchangeRateRepository) DeactivateExchangeRate(ctx context.Context, fromCurrencyCode, toCurrencyCode string) error {
	tag, err := r.Pool.Exec(ctx, `
		UPDATE exchange_rates
		SET is_active = FALSE, last_updated_at = NOW()
		WHERE from_currency_code = $1 AND to_currency_code = $2`,
		strings.ToUpper(fromCurrencyCode), strings.ToUpper(toCurrencyCode),
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to deactivate exchange rate", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("exchange rate not found for " + fromCurrencyCode + " to " + toCurrencyCode)
	}
	return nil
}
