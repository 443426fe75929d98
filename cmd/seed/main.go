// Package main seeds a bookshelf database with a small demo library.
//
// Books are created through the service layer, so tags are normalized, the
// auto-tagger fills blanks, and the search index is kept current.
//
// Usage:
//
//	go run ./cmd/seed -data-path ~/Bookshelf/data
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/listenupapp/bookshelf-server/internal/autotag"
	"github.com/listenupapp/bookshelf-server/internal/config"
	"github.com/listenupapp/bookshelf-server/internal/logger"
	"github.com/listenupapp/bookshelf-server/internal/search"
	"github.com/listenupapp/bookshelf-server/internal/service"
	"github.com/listenupapp/bookshelf-server/internal/store/sqlite"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.ForEnvironment(cfg.App.Environment, cfg.Logger.Level)

	if err := run(context.Background(), cfg, log); err != nil {
		log.WithError(err).Fatal("Seeding failed")
	}
}

func run(ctx context.Context, cfg *config.Config, log *logger.Logger) error {
	if err := os.MkdirAll(cfg.Data.Path, 0o750); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}

	st, err := sqlite.Open(filepath.Join(cfg.Data.Path, "bookshelf.db"), log.Component("store"))
	if err != nil {
		return err
	}
	defer st.Close()

	index, err := search.NewBookIndex(search.Options{DataPath: cfg.Data.Path, Logger: log.Component("search")})
	if err != nil {
		return err
	}
	defer index.Close()

	st.SetSearchIndexer(service.NewSearchService(index, st, log.Component("search")))

	existing, err := st.ListAllBooks(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		log.Info("Library already has books, nothing to seed", "books", len(existing))
		return nil
	}

	tagger := autotag.Default()
	if cfg.Autotag.TablesPath != "" {
		tables, err := autotag.LoadTables(cfg.Autotag.TablesPath)
		if err != nil {
			return err
		}
		tagger = autotag.New(tables)
	}

	books := service.NewBookService(st, tagger, log.Component("books"))
	lists := service.NewListService(st, log.Component("lists"))

	byTitle := make(map[string]string, len(demoBooks))
	for _, in := range demoBooks {
		b, err := books.CreateBook(ctx, in)
		if err != nil {
			return fmt.Errorf("create %q: %w", in.Title, err)
		}
		byTitle[b.Title] = b.ID
		log.Info("Seeded book",
			"title", b.Title,
			"genre", b.Genre,
			"moods", b.Moods,
			"spice", b.Spice,
		)
	}

	for _, dl := range demoLists {
		ids := make([]string, 0, len(dl.titles))
		for _, title := range dl.titles {
			ids = append(ids, byTitle[title])
		}
		if _, err := lists.CreateList(ctx, dl.name, dl.description, ids); err != nil {
			return fmt.Errorf("create list %q: %w", dl.name, err)
		}
	}

	log.Info("Seeding complete", "books", len(demoBooks), "lists", len(demoLists))
	return nil
}
