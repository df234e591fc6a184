package services

import (
	"log/slog"

	portsrepo "github.com/nvcfn/swiftgate/internal/core/ports/repositories"
	portssvc "github.com/nvcfn/swiftgate/internal/core/ports/services"
	"github.com/nvcfn/swiftgate/internal/platform/config"
	"github.com/nvcfn/swiftgate/internal/swift"
)

// NewServiceContainer creates a new service container with properly
// initialized dependencies. The transport, gold feed and identity adapters
// are built by the caller so sandbox and live deployments wire differently.
func NewServiceContainer(
	cfg *config.Config,
	repos portsrepo.RepositoryProvider,
	transport swift.Transport,
	goldFeed portssvc.GoldPriceSvc,
	identity portssvc.IdentitySvc,
) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Currency = NewCurrencyService()
	container.ExchangeRate = NewExchangeRateService(repos.ExchangeRateRepo, container.Currency, goldFeed, cfg.BaseCurrency)

	cache := NewSeededRateCache(cfg.BaseCurrency)
	container.RateResolver = NewRateResolverService(repos.ExchangeRateRepo, cache, cfg.BaseCurrency, slog.Default())

	sender := SenderProfile{
		BIC:             cfg.SwiftSenderBIC,
		InstitutionName: cfg.SwiftInstitutionName,
	}
	container.Swift = NewSwiftService(sender, repos.InstitutionRepo, repos.SwiftTransactionRepo, transport, identity, cfg.BaseCurrency)

	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.CurrencySvcFacade     = (*CurrencyService)(nil)
	_ portssvc.ExchangeRateSvcFacade = (*ExchangeRateService)(nil)
	_ portssvc.RateResolverSvc       = (*RateResolverService)(nil)
	_ portssvc.SwiftSvcFacade        = (*SwiftService)(nil)
)
