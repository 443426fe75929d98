// Package di provides dependency injection configuration for the bookshelf server.
package di

import (
	"github.com/samber/do/v2"

	"github.com/listenupapp/bookshelf-server/internal/autotag"
	"github.com/listenupapp/bookshelf-server/internal/config"
	"github.com/listenupapp/bookshelf-server/internal/di/providers"
	"github.com/listenupapp/bookshelf-server/internal/logger"
	"github.com/listenupapp/bookshelf-server/internal/service"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer() *do.RootScope {
	injector := do.New()
	do.Provide(injector, providers.ProvideConfig)
	register(injector)
	return injector
}

// NewContainerWithConfig is like NewContainer but uses an already loaded config.
func NewContainerWithConfig(cfg *config.Config) *do.RootScope {
	injector := do.New()
	do.ProvideValue(injector, cfg)
	register(injector)
	return injector
}

func register(injector do.Injector) {
	// Core infrastructure
	do.Provide(injector, providers.ProvideLogger)

	// Storage layer
	do.Provide(injector, providers.ProvideStore)
	do.Provide(injector, providers.ProvideSearchIndex)
	do.Provide(injector, providers.ProvideSearchService)

	// Auto-tagging
	do.Provide(injector, providers.ProvideTagger)

	// Business services
	do.Provide(injector, providers.ProvideBookService)
	do.Provide(injector, providers.ProvideListService)
	do.Provide(injector, providers.ProvideRecommendationService)
	do.Provide(injector, providers.ProvideTaggingService)
	do.Provide(injector, providers.ProvideShareService)

	// Server
	do.Provide(injector, providers.ProvideRateLimiter)
	do.Provide(injector, providers.ProvideAPIServer)
	do.Provide(injector, providers.ProvideHTTPServer)
}

// Bootstrap initializes all services. Invoking the HTTP server handle starts listening.
func Bootstrap(injector do.Injector) error {
	_ = do.MustInvoke[*config.Config](injector)
	_ = do.MustInvoke[*logger.Logger](injector)
	_ = do.MustInvoke[*providers.StoreHandle](injector)
	_ = do.MustInvoke[*providers.SearchIndexHandle](injector)
	_ = do.MustInvoke[*service.SearchService](injector)
	_ = do.MustInvoke[*autotag.Tagger](injector)

	_ = do.MustInvoke[*service.BookService](injector)
	_ = do.MustInvoke[*service.ListService](injector)
	_ = do.MustInvoke[*service.RecommendationService](injector)
	_ = do.MustInvoke[*service.TaggingService](injector)
	_ = do.MustInvoke[*service.ShareService](injector)

	_ = do.MustInvoke[*providers.RateLimiterHandle](injector)
	_ = do.MustInvoke[*providers.HTTPServerHandle](injector)

	providers.TriggerSearchReindexIfNeeded(injector)

	return nil
}
