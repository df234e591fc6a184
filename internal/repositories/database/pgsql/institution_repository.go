package pgsql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nvcfn/swiftgate/internal/apperrors"
	"github.com/nvcfn/swiftgate/internal/core/domain"
)

// PgxInstitutionRepository implements the institution directory using
// pgxpool. The SWIFT profile is stored as typed columns, not a metadata
// blob.
type PgxInstitutionRepository struct {
	BaseRepository
}

// NewPgxInstitutionRepository creates a new PgxInstitutionRepository.
func NewPgxInstitutionRepository(db *pgxpool.Pool) *PgxInstitutionRepository {
	return &PgxInstitutionRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

const institutionColumns = `
	institution_id, name, is_active, swift_bic, swift_api_key, swift_username,
	swift_password, swift_certificate_path, created_at, created_by, last_updated_at, last_updated_by`

func scanInstitution(row pgx.Row) (*domain.FinancialInstitution, error) {
	var inst domain.FinancialInstitution
	err := row.Scan(
		&inst.InstitutionID, &inst.Name, &inst.Active,
		&inst.Swift.BIC, &inst.Swift.APIKey, &inst.Swift.Username,
		&inst.Swift.Password, &inst.Swift.CertificatePath,
		&inst.CreatedAt, &inst.CreatedBy, &inst.LastUpdatedAt, &inst.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &inst, nil
}

// FindInstitutionByID retrieves an institution record.
func (r *PgxInstitutionRepository) FindInstitutionByID(ctx context.Context, institutionID string) (*domain.FinancialInstitution, error) {
	row := r.Pool.QueryRow(ctx, `
		SELECT `+institutionColumns+`
		FROM financial_institutions
		WHERE institution_id = $1`,
		institutionID,
	)
	inst, err := scanInstitution(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("institution " + institutionID + " not found")
		}
		return nil, apperrors.NewAppError(500, "failed to find institution", err)
	}
	return inst, nil
}

// ListActiveInstitutions lists the institutions currently reachable over
// SWIFT, sorted by name.
func (r *PgxInstitutionRepository) ListActiveInstitutions(ctx context.Context) ([]domain.FinancialInstitution, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT `+institutionColumns+`
		FROM financial_institutions
		WHERE is_active = TRUE
		ORDER BY name`,
	)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list institutions", err)
	}
	defer rows.Close()

	var institutions []domain.FinancialInstitution
	for rows.Next() {
		inst, err := scanInstitution(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan institution", err)
		}
		institutions = append(institutions, *inst)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating institutions", err)
	}
	return institutions, nil
}

// SaveInstitution inserts or updates an institution record.
func (r *PgxInstitutionRepository) SaveInstitution(ctx context.Context, inst domain.FinancialInstitution) error {
	_, err := r.Pool.Exec(ctx, `
		INSERT INTO financial_institutions (`+institutionColumns+`
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (institution_id) DO UPDATE SET
			name = EXCLUDED.name,
			is_active = EXCLUDED.is_active,
			swift_bic = EXCLUDED.swift_bic,
			swift_api_key = EXCLUDED.swift_api_key,
			swift_username = EXCLUDED.swift_username,
			swift_password = EXCLUDED.swift_password,
			swift_certificate_path = EXCLUDED.swift_certificate_path,
			last_updated_at = EXCLUDED.last_updated_at,
			last_updated_by = EXCLUDED.last_updated_by`,
		inst.InstitutionID, inst.Name, inst.Active,
		inst.Swift.BIC, inst.Swift.APIKey, inst.Swift.Username,
		inst.Swift.Password, inst.Swift.CertificatePath,
		inst.CreatedAt, inst.CreatedBy, inst.LastUpdatedAt, inst.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to save institution", err)
	}
	return nil
}
