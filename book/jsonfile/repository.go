package jsonfile

import (
	"context"

	"github.com/marcelsud/bookshelf-api/apperr"
	"github.com/marcelsud/bookshelf-api/book"
	"github.com/marcelsud/bookshelf-api/ident"
	"github.com/marcelsud/bookshelf-api/storage/jsonfile"
)

const collection = "books"

/* record is a book entry in the JSON file.
 * IDs are plain numbers in the file and strings everywhere else.
 */
type record struct {
	ID     int64   `json:"id"`
	Titulo string  `json:"titulo"`
	Autor  string  `json:"autor"`
	Ano    float64 `json:"ano"`
}

func (r record) toBook() book.Record {
	return book.Record{
		ID:     ident.FormatSequential(r.ID),
		Titulo: r.Titulo,
		Autor:  r.Autor,
		Ano:    r.Ano,
	}
}

type Repository struct {
	DB *jsonfile.DB
}

func NewRepository(db *jsonfile.DB) *Repository {
	return &Repository{DB: db}
}

func (r *Repository) Scheme() ident.Scheme {
	return ident.Sequential
}

// SelectAll returns the books in insertion order
func (r *Repository) SelectAll(ctx context.Context) ([]book.Record, error) {
	var all []record
	err := r.DB.View(ctx, func(tx *jsonfile.Tx) error {
		return tx.Load(collection, &all)
	})
	if err != nil {
		return nil, storageError(err)
	}
	books := make([]book.Record, 0, len(all))
	for _, b := range all {
		books = append(books, b.toBook())
	}
	return books, nil
}

func (r *Repository) Select(ctx context.Context, id string) (book.Record, bool, error) {
	n, err := ident.ParseSequential(id)
	if err != nil {
		return book.Record{}, false, nil
	}
	var all []record
	err = r.DB.View(ctx, func(tx *jsonfile.Tx) error {
		return tx.Load(collection, &all)
	})
	if err != nil {
		return book.Record{}, false, storageError(err)
	}
	if i := indexOf(all, n); i >= 0 {
		return all[i].toBook(), true, nil
	}
	return book.Record{}, false, nil
}

func (r *Repository) Insert(ctx context.Context, b book.Book) (book.Record, error) {
	var saved record
	err := r.DB.Update(ctx, func(tx *jsonfile.Tx) error {
		var all []record
		if err := tx.Load(collection, &all); err != nil {
			return err
		}
		id, err := tx.NextID(collection, maxID(all))
		if err != nil {
			return err
		}
		saved = record{
			ID:     id,
			Titulo: b.Titulo,
			Autor:  b.Autor,
			Ano:    b.Ano,
		}
		return tx.Store(collection, append(all, saved))
	})
	if err != nil {
		return book.Record{}, storageError(err)
	}
	return saved.toBook(), nil
}

func (r *Repository) Update(ctx context.Context, id string, p book.Patch) (book.Record, bool, error) {
	n, err := ident.ParseSequential(id)
	if err != nil {
		return book.Record{}, false, nil
	}
	var (
		updated book.Record
		found   bool
	)
	err = r.DB.Update(ctx, func(tx *jsonfile.Tx) error {
		var all []record
		if err := tx.Load(collection, &all); err != nil {
			return err
		}
		i := indexOf(all, n)
		if i < 0 {
			return nil
		}
		found = true
		updated = p.Apply(all[i].toBook())
		all[i].Titulo = updated.Titulo
		all[i].Autor = updated.Autor
		all[i].Ano = updated.Ano
		return tx.Store(collection, all)
	})
	if err != nil {
		return book.Record{}, false, storageError(err)
	}
	return updated, found, nil
}

func (r *Repository) Delete(ctx context.Context, id string) (book.Record, bool, error) {
	n, err := ident.ParseSequential(id)
	if err != nil {
		return book.Record{}, false, nil
	}
	var (
		deleted book.Record
		found   bool
	)
	err = r.DB.Update(ctx, func(tx *jsonfile.Tx) error {
		var all []record
		if err := tx.Load(collection, &all); err != nil {
			return err
		}
		i := indexOf(all, n)
		if i < 0 {
			return nil
		}
		found = true
		deleted = all[i].toBook()
		return tx.Store(collection, append(all[:i], all[i+1:]...))
	})
	if err != nil {
		return book.Record{}, false, storageError(err)
	}
	return deleted, found, nil
}

// Close is a no-op: the file is opened per operation
func (r *Repository) Close(ctx context.Context) error {
	return nil
}

func indexOf(all []record, id int64) int {
	for i, b := range all {
		if b.ID == id {
			return i
		}
	}
	return -1
}

func maxID(all []record) int64 {
	var m int64
	for _, b := range all {
		if b.ID > m {
			m = b.ID
		}
	}
	return m
}

func storageError(err error) error {
	return apperr.NewStorage("Database error", err)
}
