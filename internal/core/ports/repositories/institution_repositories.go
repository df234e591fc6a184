package repositories

import (
	"context"

	"github.com/nvcfn/swiftgate/internal/core/domain"
)

// InstitutionReader defines read operations against the institution directory.
type InstitutionReader interface {
	// FindInstitutionByID retrieves an institution record. Absence is
	// apperrors.ErrNotFound.
	FindInstitutionByID(ctx context.Context, institutionID string) (*domain.FinancialInstitution, error)

	// ListActiveInstitutions lists the institutions currently reachable
	// over SWIFT.
	ListActiveInstitutions(ctx context.Context) ([]domain.FinancialInstitution, error)
}

// InstitutionWriter defines write operations against the institution directory.
type InstitutionWriter interface {
	// SaveInstitution inserts or updates an institution record.
	SaveInstitution(ctx context.Context, institution domain.FinancialInstitution) error
}

// InstitutionRepositoryFacade combines all institution directory interfaces.
type InstitutionRepositoryFacade interface {
	InstitutionReader
	InstitutionWriter
}
