package providers

import (
	"github.com/samber/do/v2"

	"github.com/listenupapp/bookshelf-server/internal/autotag"
	"github.com/listenupapp/bookshelf-server/internal/config"
	"github.com/listenupapp/bookshelf-server/internal/logger"
	"github.com/listenupapp/bookshelf-server/internal/service"
)

// ProvideTagger provides the auto-tagger, loading keyword overrides when configured.
func ProvideTagger(i do.Injector) (*autotag.Tagger, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	if cfg.Autotag.TablesPath == "" {
		return autotag.Default(), nil
	}

	tables, err := autotag.LoadTables(cfg.Autotag.TablesPath)
	if err != nil {
		return nil, err
	}

	log.Info("Auto-tag tables loaded",
		"path", cfg.Autotag.TablesPath,
		"moods", len(tables.Moods),
		"warnings", len(tables.Warnings),
		"genres", len(tables.Genres),
	)

	return autotag.New(tables), nil
}

// ProvideBookService provides the book service.
func ProvideBookService(i do.Injector) (*service.BookService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	tagger := do.MustInvoke[*autotag.Tagger](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewBookService(storeHandle.Store, tagger, log.Component("books")), nil
}

// ProvideListService provides the list service.
func ProvideListService(i do.Injector) (*service.ListService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewListService(storeHandle.Store, log.Component("lists")), nil
}

// ProvideRecommendationService provides the recommendation service.
func ProvideRecommendationService(i do.Injector) (*service.RecommendationService, error) {
	cfg := do.MustInvoke[*config.Config](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewRecommendationService(storeHandle.Store, cfg.Recommend.DefaultMax, log.Component("recommend")), nil
}

// ProvideTaggingService provides the tagging service.
func ProvideTaggingService(i do.Injector) (*service.TaggingService, error) {
	tagger := do.MustInvoke[*autotag.Tagger](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewTaggingService(tagger, log.Component("autotag")), nil
}

// ProvideShareService provides the share service.
func ProvideShareService(i do.Injector) (*service.ShareService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewShareService(storeHandle.Store, log.Component("share")), nil
}
