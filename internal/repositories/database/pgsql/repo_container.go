package pgsql

import (
	portsrepo "github.com/nvcfn/swiftgate/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires all PostgreSQL-backed repositories over one
// shared pool.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		ExchangeRateRepo:     NewPgxExchangeRateRepository(dbPool),
		SwiftTransactionRepo: NewPgxSwiftTransactionRepository(dbPool),
		InstitutionRepo:      NewPgxInstitutionRepository(dbPool),
	}
}
