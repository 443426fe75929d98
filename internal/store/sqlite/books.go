package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/goccy/go-json"

	"github.com/listenupapp/bookshelf-server/internal/domain"
	"github.com/listenupapp/bookshelf-server/internal/store"
)

// bookColumns is the ordered list of columns selected in book queries.
// Must match the scan order in scanBook.
const bookColumns = `id, created_at, updated_at, title, author, genre, sub_genre,
	moods, content_warnings, spice, rating, reading_progress,
	isbn, series, series_order, format, description, notes, review`

// scanBook scans a sql.Row (or sql.Rows via its Scan method) into a domain.Book.
func scanBook(scanner interface{ Scan(dest ...any) error }) (*domain.Book, error) {
	var b domain.Book

	var (
		createdAt   string
		updatedAt   string
		genre       sql.NullString
		subGenre    sql.NullString
		moods       string
		warnings    string
		isbn        sql.NullString
		series      sql.NullString
		seriesOrder sql.NullString
		format      sql.NullString
		desc        sql.NullString
		notes       sql.NullString
		review      sql.NullString
	)

	err := scanner.Scan(
		&b.ID,
		&createdAt,
		&updatedAt,
		&b.Title,
		&b.Author,
		&genre,
		&subGenre,
		&moods,
		&warnings,
		&b.Spice,
		&b.Rating,
		&b.ReadingProgress,
		&isbn,
		&series,
		&seriesOrder,
		&format,
		&desc,
		&notes,
		&review,
	)
	if err != nil {
		return nil, err
	}

	b.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	b.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, err
	}

	b.Genre = genre.String
	b.SubGenre = subGenre.String
	b.ISBN = isbn.String
	b.Series = series.String
	b.SeriesOrder = seriesOrder.String
	b.Format = format.String
	b.Description = desc.String
	b.Notes = notes.String
	b.Review = review.String

	if err := json.Unmarshal([]byte(moods), &b.Moods); err != nil {
		return nil, fmt.Errorf("unmarshal moods: %w", err)
	}
	if err := json.Unmarshal([]byte(warnings), &b.ContentWarnings); err != nil {
		return nil, fmt.Errorf("unmarshal content_warnings: %w", err)
	}

	return &b, nil
}

// bookArgs returns the column values for an insert or update, in bookColumns order
// after the id and created_at columns.
func bookArgs(b *domain.Book) ([]any, error) {
	moods, err := marshalTags(b.Moods)
	if err != nil {
		return nil, fmt.Errorf("marshal moods: %w", err)
	}
	warnings, err := marshalTags(b.ContentWarnings)
	if err != nil {
		return nil, fmt.Errorf("marshal content_warnings: %w", err)
	}

	return []any{
		formatTime(b.UpdatedAt),
		b.Title,
		b.Author,
		nullString(b.Genre),
		nullString(b.SubGenre),
		moods,
		warnings,
		b.Spice,
		b.Rating,
		b.ReadingProgress,
		nullString(b.ISBN),
		nullString(b.Series),
		nullString(b.SeriesOrder),
		nullString(b.Format),
		nullString(b.Description),
		nullString(b.Notes),
		nullString(b.Review),
	}, nil
}

func marshalTags(tags []string) (string, error) {
	if tags == nil {
		tags = []string{}
	}
	data, err := json.Marshal(tags)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// CreateBook inserts a new book.
// Returns store.ErrAlreadyExists on duplicate ID.
func (s *Store) CreateBook(ctx context.Context, book *domain.Book) error {
	args, err := bookArgs(book)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO books (`+bookColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		append([]any{book.ID, formatTime(book.CreatedAt)}, args...)...,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return store.ErrAlreadyExists.WithMessage("book already exists").WithCause(err)
		}
		return fmt.Errorf("insert book: %w", err)
	}

	s.indexBook(ctx, book)
	return nil
}

// GetBook returns a book with its list membership populated.
func (s *Store) GetBook(ctx context.Context, id string) (*domain.Book, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+bookColumns+` FROM books WHERE id = ?`, id)
	b, err := scanBook(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrBookNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get book: %w", err)
	}

	b.Lists, err = s.loadBookListIDs(ctx, id)
	if err != nil {
		return nil, err
	}
	return b, nil
}

// UpdateBook replaces every stored field of an existing book.
// List membership is managed through the list operations and is not touched.
func (s *Store) UpdateBook(ctx context.Context, book *domain.Book) error {
	args, err := bookArgs(book)
	if err != nil {
		return err
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE books SET
			updated_at = ?, title = ?, author = ?, genre = ?, sub_genre = ?,
			moods = ?, content_warnings = ?, spice = ?, rating = ?, reading_progress = ?,
			isbn = ?, series = ?, series_order = ?, format = ?,
			description = ?, notes = ?, review = ?
		WHERE id = ?`,
		append(args, book.ID)...,
	)
	if err != nil {
		return fmt.Errorf("update book: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return store.ErrBookNotFound
	}

	s.indexBook(ctx, book)
	return nil
}

// DeleteBook removes a book. Its list memberships are removed by cascade.
func (s *Store) DeleteBook(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM books WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete book: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return store.ErrBookNotFound
	}

	if err := s.searchIndexer.DeleteBook(ctx, id); err != nil {
		s.logger.Warn("failed to remove book from search index", "book_id", id, "error", err)
	}
	return nil
}

// ListAllBooks returns every book, oldest first, with list membership populated.
func (s *Store) ListAllBooks(ctx context.Context) ([]*domain.Book, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+bookColumns+` FROM books ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	defer rows.Close()

	var books []*domain.Book
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, fmt.Errorf("scan book: %w", err)
		}
		books = append(books, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	memberships, err := s.loadAllListMemberships(ctx)
	if err != nil {
		return nil, err
	}
	for _, b := range books {
		b.Lists = memberships[b.ID]
	}

	return books, nil
}

// indexBook updates the search index. Failures are logged, not returned.
func (s *Store) indexBook(ctx context.Context, book *domain.Book) {
	if err := s.searchIndexer.IndexBook(ctx, book); err != nil {
		s.logger.Warn("failed to index book", "book_id", book.ID, "error", err)
	}
}
