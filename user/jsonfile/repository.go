package jsonfile

import (
	"context"

	"github.com/marcelsud/bookshelf-api/apperr"
	"github.com/marcelsud/bookshelf-api/ident"
	"github.com/marcelsud/bookshelf-api/storage/jsonfile"
	"github.com/marcelsud/bookshelf-api/user"
)

const collection = "users"

// record is a user entry in the JSON file; saldo is left out when it was never set
type record struct {
	ID    int64    `json:"id"`
	Nome  string   `json:"nome"`
	Ativo bool     `json:"ativo"`
	Saldo *float64 `json:"saldo,omitempty"`
}

func (r record) toUser() user.Record {
	return user.Record{
		ID:    ident.FormatSequential(r.ID),
		Nome:  r.Nome,
		Ativo: r.Ativo,
		Saldo: copySaldo(r.Saldo),
	}
}

func copySaldo(s *float64) *float64 {
	if s == nil {
		return nil
	}
	v := *s
	return &v
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

func (r *Repository) load(ctx context.Context) ([]record, error) {
	var all []record
	err := r.DB.View(ctx, func(tx *jsonfile.Tx) error {
		return tx.Load(collection, &all)
	})
	if err != nil {
		return nil, apperr.NewStorage("Database error", err)
	}
	return all, nil
}

func (r *Repository) SelectAll(ctx context.Context) ([]user.Record, error) {
	all, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	users := make([]user.Record, 0, len(all))
	for _, u := range all {
		users = append(users, u.toUser())
	}
	return users, nil
}

func (r *Repository) Select(ctx context.Context, id string) (user.Record, bool, error) {
	n, err := ident.ParseSequential(id)
	if err != nil {
		return user.Record{}, false, nil
	}
	all, err := r.load(ctx)
	if err != nil {
		return user.Record{}, false, err
	}
	for _, u := range all {
		if u.ID == n {
			return u.toUser(), true, nil
		}
	}
	return user.Record{}, false, nil
}

func (r *Repository) Insert(ctx context.Context, u user.User) (user.Record, error) {
	saved := record{
		Nome:  u.Nome,
		Ativo: u.Ativo,
		Saldo: copySaldo(u.Saldo),
	}
	err := r.DB.Update(ctx, func(tx *jsonfile.Tx) error {
		var all []record
		if err := tx.Load(collection, &all); err != nil {
			return err
		}
		var highest int64
		for _, x := range all {
			highest = max(highest, x.ID)
		}
		id, err := tx.NextID(collection, highest)
		if err != nil {
			return err
		}
		saved.ID = id
		return tx.Store(collection, append(all, saved))
	})
	if err != nil {
		return user.Record{}, apperr.NewStorage("Database error", err)
	}
	return saved.toUser(), nil
}

// Update applies p to the user with id; the returned bool is false when there is no such user
func (r *Repository) Update(ctx context.Context, id string, p user.Patch) (user.Record, bool, error) {
	return r.mutate(ctx, id, func(all []record, i int) ([]record, user.Record) {
		merged := p.Apply(all[i].toUser())
		all[i].Nome = merged.Nome
		all[i].Ativo = merged.Ativo
		all[i].Saldo = merged.Saldo
		return all, merged
	})
}

func (r *Repository) Delete(ctx context.Context, id string) (user.Record, bool, error) {
	return r.mutate(ctx, id, func(all []record, i int) ([]record, user.Record) {
		removed := all[i].toUser()
		return append(all[:i], all[i+1:]...), removed
	})
}

// mutate runs change against the user with id inside a single write transaction
func (r *Repository) mutate(ctx context.Context, id string, change func(all []record, i int) ([]record, user.Record)) (user.Record, bool, error) {
	n, err := ident.ParseSequential(id)
	if err != nil {
		return user.Record{}, false, nil
	}
	var (
		result user.Record
		found  bool
	)
	err = r.DB.Update(ctx, func(tx *jsonfile.Tx) error {
		var all []record
		if err := tx.Load(collection, &all); err != nil {
			return err
		}
		for i := range all {
			if all[i].ID != n {
				continue
			}
			found = true
			var next []record
			next, result = change(all, i)
			return tx.Store(collection, next)
		}
		return nil
	})
	if err != nil {
		return user.Record{}, false, apperr.NewStorage("Database error", err)
	}
	return result, found, nil
}

func (r *Repository) Close(ctx context.Context) error {
	return nil
}
