package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/listenupapp/bookshelf-server/internal/domain"
	"github.com/listenupapp/bookshelf-server/internal/store"
)

// listColumns must match the scan order in scanList.
const listColumns = `id, created_at, updated_at, name, description`

func scanList(scanner interface{ Scan(dest ...any) error }) (*domain.List, error) {
	var (
		l           domain.List
		createdAt   string
		updatedAt   string
		description sql.NullString
	)

	if err := scanner.Scan(&l.ID, &createdAt, &updatedAt, &l.Name, &description); err != nil {
		return nil, err
	}

	var err error
	l.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	l.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, err
	}
	l.Description = description.String

	return &l, nil
}

// CreateList inserts a new list and its initial book associations.
// Returns store.ErrAlreadyExists on duplicate ID.
func (s *Store) CreateList(ctx context.Context, list *domain.List) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO lists (`+listColumns+`) VALUES (?, ?, ?, ?, ?)`,
		list.ID,
		formatTime(list.CreatedAt),
		formatTime(list.UpdatedAt),
		list.Name,
		nullString(list.Description),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return store.ErrAlreadyExists.WithMessage("list already exists").WithCause(err)
		}
		return fmt.Errorf("insert list: %w", err)
	}

	for i, bookID := range list.BookIDs {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO list_books (list_id, book_id, sort_order) VALUES (?, ?, ?)`,
			list.ID, bookID, i)
		if err != nil {
			if isForeignKeyViolation(err) {
				return store.ErrBookNotFound
			}
			return fmt.Errorf("insert list book %s: %w", bookID, err)
		}
	}

	return tx.Commit()
}

// GetList returns a list with its ordered book IDs.
func (s *Store) GetList(ctx context.Context, id string) (*domain.List, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+listColumns+` FROM lists WHERE id = ?`, id)
	l, err := scanList(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrListNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get list: %w", err)
	}

	l.BookIDs, err = s.loadListBookIDs(ctx, id)
	if err != nil {
		return nil, err
	}
	return l, nil
}

// ListLists returns every list ordered by name.
func (s *Store) ListLists(ctx context.Context) ([]*domain.List, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+listColumns+` FROM lists ORDER BY name COLLATE NOCASE, id`)
	if err != nil {
		return nil, fmt.Errorf("list lists: %w", err)
	}
	defer rows.Close()

	var lists []*domain.List
	for rows.Next() {
		l, err := scanList(rows)
		if err != nil {
			return nil, fmt.Errorf("scan list: %w", err)
		}
		lists = append(lists, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, l := range lists {
		l.BookIDs, err = s.loadListBookIDs(ctx, l.ID)
		if err != nil {
			return nil, err
		}
	}
	return lists, nil
}

// UpdateList updates a list's name and description.
func (s *Store) UpdateList(ctx context.Context, list *domain.List) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE lists SET updated_at = ?, name = ?, description = ? WHERE id = ?`,
		formatTime(list.UpdatedAt), list.Name, nullString(list.Description), list.ID)
	if err != nil {
		return fmt.Errorf("update list: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return store.ErrListNotFound
	}
	return nil
}

// DeleteList removes a list and its memberships. Books are untouched.
func (s *Store) DeleteList(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM lists WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete list: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return store.ErrListNotFound
	}
	return nil
}

// AddBookToList prepends a book to a list. Adding a book that is already
// a member is a no-op.
func (s *Store) AddBookToList(ctx context.Context, listID, bookID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var first sql.NullInt64
	if err := tx.QueryRowContext(ctx,
		`SELECT MIN(sort_order) FROM list_books WHERE list_id = ?`, listID).Scan(&first); err != nil {
		return fmt.Errorf("read list order: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO list_books (list_id, book_id, sort_order) VALUES (?, ?, ?)
		ON CONFLICT (list_id, book_id) DO NOTHING`,
		listID, bookID, first.Int64-1)
	if err != nil {
		if isForeignKeyViolation(err) {
			return s.missingListOrBook(ctx, tx, listID)
		}
		return fmt.Errorf("add book to list: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE lists SET updated_at = ? WHERE id = ?`, formatTime(time.Now()), listID); err != nil {
		return fmt.Errorf("touch list: %w", err)
	}

	return tx.Commit()
}

// RemoveBookFromList removes a book from a list. Removing a non-member is a no-op.
func (s *Store) RemoveBookFromList(ctx context.Context, listID, bookID string) error {
	res, err := s.db.ExecContext(ctx, `UPDATE lists SET updated_at = ? WHERE id = ?`, formatTime(time.Now()), listID)
	if err != nil {
		return fmt.Errorf("touch list: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return store.ErrListNotFound
	}

	if _, err := s.db.ExecContext(ctx,
		`DELETE FROM list_books WHERE list_id = ? AND book_id = ?`, listID, bookID); err != nil {
		return fmt.Errorf("remove book from list: %w", err)
	}
	return nil
}

// missingListOrBook decides which side of a failed membership insert is missing.
func (s *Store) missingListOrBook(ctx context.Context, tx *sql.Tx, listID string) error {
	var n int
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM lists WHERE id = ?`, listID).Scan(&n); err != nil {
		return err
	}
	if n == 0 {
		return store.ErrListNotFound
	}
	return store.ErrBookNotFound
}

// loadListBookIDs loads the ordered book IDs for a list.
func (s *Store) loadListBookIDs(ctx context.Context, listID string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT book_id FROM list_books WHERE list_id = ? ORDER BY sort_order`, listID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bookIDs := []string{}
	for rows.Next() {
		var bookID string
		if err := rows.Scan(&bookID); err != nil {
			return nil, err
		}
		bookIDs = append(bookIDs, bookID)
	}
	return bookIDs, rows.Err()
}

// loadBookListIDs loads the IDs of every list containing a book.
func (s *Store) loadBookListIDs(ctx context.Context, bookID string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT list_id FROM list_books WHERE book_id = ? ORDER BY list_id`, bookID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var listIDs []string
	for rows.Next() {
		var listID string
		if err := rows.Scan(&listID); err != nil {
			return nil, err
		}
		listIDs = append(listIDs, listID)
	}
	return listIDs, rows.Err()
}

// loadAllListMemberships maps book ID to the IDs of the lists containing it.
func (s *Store) loadAllListMemberships(ctx context.Context) (map[string][]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT book_id, list_id FROM list_books ORDER BY book_id, list_id`)
	if err != nil {
		return nil, fmt.Errorf("load list memberships: %w", err)
	}
	defer rows.Close()

	out := make(map[string][]string)
	for rows.Next() {
		var bookID, listID string
		if err := rows.Scan(&bookID, &listID); err != nil {
			return nil, err
		}
		out[bookID] = append(out[bookID], listID)
	}
	return out, rows.Err()
}
