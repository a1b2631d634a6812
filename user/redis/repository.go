package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/marcelsud/bookshelf-api/apperr"
	"github.com/marcelsud/bookshelf-api/ident"
	"github.com/marcelsud/bookshelf-api/user"
	"github.com/redis/go-redis/v9"
)

/* Redis implementation of user.Repository
 * Same layout as books: hash user:{id} plus the "users" sorted set.
 * The saldo field is absent from the hash when the user has no balance.
 */

const (
	hashPrefix = "user"
	indexKey   = "users"
	seqKey     = "users:seq"
	maxRetries = 3
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

func key(id string) string {
	return fmt.Sprintf("%s:%s", hashPrefix, id)
}

func (r *Repository) SelectAll(ctx context.Context) ([]user.Record, error) {
	ids, err := r.client.ZRange(ctx, indexKey, 0, -1).Result()
	if err != nil {
		return nil, apperr.NewStorage("Database error", fmt.Errorf("reading index: %w", err))
	}
	cmds := make([]*redis.MapStringStringCmd, len(ids))
	if len(ids) > 0 {
		pipe := r.client.Pipeline()
		for i, id := range ids {
			cmds[i] = pipe.HGetAll(ctx, key(id))
		}
		if _, err := pipe.Exec(ctx); err != nil {
			return nil, apperr.NewStorage("Database error", fmt.Errorf("reading users: %w", err))
		}
	}
	users := make([]user.Record, 0, len(ids))
	for _, cmd := range cmds {
		if len(cmd.Val()) == 0 {
			continue
		}
		u, err := fromHash(cmd.Val())
		if err != nil {
			return nil, apperr.NewStorage("Database error", err)
		}
		users = append(users, u)
	}
	return users, nil
}

func (r *Repository) Select(ctx context.Context, id string) (user.Record, bool, error) {
	data, err := r.client.HGetAll(ctx, key(id)).Result()
	if err != nil {
		return user.Record{}, false, apperr.NewStorage("Database error", fmt.Errorf("getting user: %w", err))
	}
	if len(data) == 0 {
		return user.Record{}, false, nil
	}
	u, err := fromHash(data)
	if err != nil {
		return user.Record{}, false, apperr.NewStorage("Database error", err)
	}
	return u, true, nil
}

func (r *Repository) Insert(ctx context.Context, u user.User) (user.Record, error) {
	id, err := ident.NewObjectID()
	if err != nil {
		return user.Record{}, apperr.NewStorage("Database error", err)
	}
	seq, err := r.client.Incr(ctx, seqKey).Result()
	if err != nil {
		return user.Record{}, apperr.NewStorage("Database error", fmt.Errorf("incrementing sequence: %w", err))
	}
	saved := user.ToRecord(u)
	saved.ID = id

	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, key(id), toHash(saved))
		pipe.ZAdd(ctx, indexKey, redis.Z{Score: float64(seq), Member: id})
		return nil
	})
	if err != nil {
		return user.Record{}, apperr.NewStorage("Database error", fmt.Errorf("storing user: %w", err))
	}
	return saved, nil
}

func (r *Repository) Update(ctx context.Context, id string, p user.Patch) (user.Record, bool, error) {
	var (
		updated user.Record
		found   bool
	)
	k := key(id)
	err := r.watch(ctx, k, func(tx *redis.Tx) error {
		found = false
		data, err := tx.HGetAll(ctx, k).Result()
		if err != nil || len(data) == 0 {
			return err
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
			pipe.HSet(ctx, k, toHash(updated))
			return nil
		})
		return err
	})
	if err != nil {
		return user.Record{}, false, apperr.NewStorage("Database error", fmt.Errorf("updating user: %w", err))
	}
	return updated, found, nil
}

func (r *Repository) Delete(ctx context.Context, id string) (user.Record, bool, error) {
	var (
		deleted user.Record
		found   bool
	)
	k := key(id)
	err := r.watch(ctx, k, func(tx *redis.Tx) error {
		found = false
		data, err := tx.HGetAll(ctx, k).Result()
		if err != nil || len(data) == 0 {
			return err
		}
		if deleted, err = fromHash(data); err != nil {
			return err
		}
		found = true
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Del(ctx, k)
			pipe.ZRem(ctx, indexKey, id)
			return nil
		})
		return err
	})
	if err != nil {
		return user.Record{}, false, apperr.NewStorage("Database error", fmt.Errorf("deleting user: %w", err))
	}
	return deleted, found, nil
}

func (r *Repository) Close(ctx context.Context) error {
	return nil
}

func (r *Repository) watch(ctx context.Context, k string, fn func(tx *redis.Tx) error) error {
	var err error
	for i := 0; i < maxRetries; i++ {
		if err = r.client.Watch(ctx, fn, k); !errors.Is(err, redis.TxFailedErr) {
			return err
		}
	}
	return err
}

func toHash(u user.Record) map[string]interface{} {
	h := map[string]interface{}{
		"id":    u.ID,
		"nome":  u.Nome,
		"ativo": strconv.FormatBool(u.Ativo),
	}
	if u.Saldo != nil {
		h["saldo"] = strconv.FormatFloat(*u.Saldo, 'f', -1, 64)
	}
	return h
}

func fromHash(data map[string]string) (user.Record, error) {
	ativo, err := strconv.ParseBool(data["ativo"])
	if err != nil {
		return user.Record{}, fmt.Errorf("parsing ativo of user %s: %w", data["id"], err)
	}
	u := user.Record{
		ID:    data["id"],
		Nome:  data["nome"],
		Ativo: ativo,
	}
	if s, ok := data["saldo"]; ok {
		saldo, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return user.Record{}, fmt.Errorf("parsing saldo of user %s: %w", data["id"], err)
		}
		u.Saldo = &saldo
	}
	return u, nil
}
