package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/marcelsud/bookshelf-api/apperr"
	"github.com/marcelsud/bookshelf-api/book"
	"github.com/marcelsud/bookshelf-api/ident"
	"github.com/redis/go-redis/v9"
)

/* Redis implementation of book.Repository
 * Each book is a hash book:{id}; the sorted set "books" indexes every id,
 * scored by an insertion counter so listings keep insertion order.
 */

const (
	hashPrefix = "book"      // Hash naming: book:{id}
	indexKey   = "books"     // Sorted set of ids
	seqKey     = "books:seq" // Insertion counter used as score
	maxRetries = 3           // Optimistic transaction attempts
)

type Repository struct {
	client *redis.Client
}

func NewRepository(client *redis.Client) *Repository {
	return &Repository{client: client}
}

func (r *Repository) Scheme() ident.Scheme {
	return ident.ObjectID
}

func hashKey(id string) string {
	return fmt.Sprintf("%s:%s", hashPrefix, id)
}

// SelectAll reads the index and fetches every hash in one pipeline
func (r *Repository) SelectAll(ctx context.Context) ([]book.Record, error) {
	ids, err := r.client.ZRange(ctx, indexKey, 0, -1).Result()
	if err != nil {
		return nil, storageError(fmt.Errorf("reading index: %w", err))
	}
	books := make([]book.Record, 0, len(ids))
	if len(ids) == 0 {
		return books, nil
	}

	cmds := make([]*redis.MapStringStringCmd, len(ids))
	_, err = r.client.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		for i, id := range ids {
			cmds[i] = pipe.HGetAll(ctx, hashKey(id))
		}
		return nil
	})
	if err != nil {
		return nil, storageError(fmt.Errorf("reading books: %w", err))
	}
	for _, cmd := range cmds {
		data := cmd.Val()
		// deleted between ZRANGE and HGETALL
		if len(data) == 0 {
			continue
		}
		b, err := fromHash(data)
		if err != nil {
			return nil, storageError(err)
		}
		books = append(books, b)
	}
	return books, nil
}

func (r *Repository) Select(ctx context.Context, id string) (book.Record, bool, error) {
	data, err := r.client.HGetAll(ctx, hashKey(id)).Result()
	if err != nil {
		return book.Record{}, false, storageError(fmt.Errorf("getting book: %w", err))
	}
	if len(data) == 0 {
		return book.Record{}, false, nil
	}
	b, err := fromHash(data)
	if err != nil {
		return book.Record{}, false, storageError(err)
	}
	return b, true, nil
}

// Insert stores the hash and the index entry in a single MULTI/EXEC
func (r *Repository) Insert(ctx context.Context, b book.Book) (book.Record, error) {
	id, err := ident.NewObjectID()
	if err != nil {
		return book.Record{}, storageError(err)
	}
	seq, err := r.client.Incr(ctx, seqKey).Result()
	if err != nil {
		return book.Record{}, storageError(fmt.Errorf("incrementing sequence: %w", err))
	}
	saved := book.ToRecord(b)
	saved.ID = id

	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, hashKey(id), toHash(saved))
		pipe.ZAdd(ctx, indexKey, redis.Z{Score: float64(seq), Member: id})
		return nil
	})
	if err != nil {
		return book.Record{}, storageError(fmt.Errorf("storing book: %w", err))
	}
	return saved, nil
}

// Update applies p under WATCH so a concurrent delete cannot be overwritten
func (r *Repository) Update(ctx context.Context, id string, p book.Patch) (book.Record, bool, error) {
	var (
		updated book.Record
		found   bool
	)
	key := hashKey(id)
	err := r.watch(ctx, key, func(tx *redis.Tx) error {
		data, err := tx.HGetAll(ctx, key).Result()
		if err != nil {
			return err
		}
		if len(data) == 0 {
			found = false
			return nil
		}
		current, err := fromHash(data)
		if err != nil {
			return err
		}
		found = true
		updated = p.Apply(current)
		if p.IsEmpty() {
			return nil
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.HSet(ctx, key, toHash(updated))
			return nil
		})
		return err
	})
	if err != nil {
		return book.Record{}, false, storageError(fmt.Errorf("updating book: %w", err))
	}
	return updated, found, nil
}

func (r *Repository) Delete(ctx context.Context, id string) (book.Record, bool, error) {
	var (
		deleted book.Record
		found   bool
	)
	key := hashKey(id)
	err := r.watch(ctx, key, func(tx *redis.Tx) error {
		data, err := tx.HGetAll(ctx, key).Result()
		if err != nil {
			return err
		}
		if len(data) == 0 {
			found = false
			return nil
		}
		if deleted, err = fromHash(data); err != nil {
			return err
		}
		found = true
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Del(ctx, key)
			pipe.ZRem(ctx, indexKey, id)
			return nil
		})
		return err
	})
	if err != nil {
		return book.Record{}, false, storageError(fmt.Errorf("deleting book: %w", err))
	}
	return deleted, found, nil
}

// Close is a no-op: the client is shared with the user repository and closed by its owner
func (r *Repository) Close(ctx context.Context) error {
	return nil
}

// watch runs fn in a WATCH transaction, retrying when the key changed underneath
func (r *Repository) watch(ctx context.Context, key string, fn func(tx *redis.Tx) error) error {
	var err error
	for i := 0; i < maxRetries; i++ {
		err = r.client.Watch(ctx, fn, key)
		if !errors.Is(err, redis.TxFailedErr) {
			return err
		}
	}
	return err
}

func toHash(b book.Record) map[string]interface{} {
	return map[string]interface{}{
		"id":     b.ID,
		"titulo": b.Titulo,
		"autor":  b.Autor,
		"ano":    strconv.FormatFloat(b.Ano, 'g', -1, 64),
	}
}

func fromHash(data map[string]string) (book.Record, error) {
	ano, err := strconv.ParseFloat(data["ano"], 64)
	if err != nil {
		return book.Record{}, fmt.Errorf("parsing ano of book %s: %w", data["id"], err)
	}
	return book.Record{
		ID:     data["id"],
		Titulo: data["titulo"],
		Autor:  data["autor"],
		Ano:    ano,
	}, nil
}

func storageError(err error) error {
	return apperr.NewStorage("Database error", err)
}
