package backend

import (
	"context"
	"errors"
	"fmt"

	"github.com/marcelsud/bookshelf-api/book"
	bookjson "github.com/marcelsud/bookshelf-api/book/jsonfile"
	bookmongo "github.com/marcelsud/bookshelf-api/book/mongo"
	bookredis "github.com/marcelsud/bookshelf-api/book/redis"
	"github.com/marcelsud/bookshelf-api/config"
	"github.com/marcelsud/bookshelf-api/ident"
	"github.com/marcelsud/bookshelf-api/storage/jsonfile"
	storagemongo "github.com/marcelsud/bookshelf-api/storage/mongo"
	storageredis "github.com/marcelsud/bookshelf-api/storage/redis"
	"github.com/marcelsud/bookshelf-api/user"
	userjson "github.com/marcelsud/bookshelf-api/user/jsonfile"
	usermongo "github.com/marcelsud/bookshelf-api/user/mongo"
	userredis "github.com/marcelsud/bookshelf-api/user/redis"
)

// Stores are the repositories of one backend plus whatever owns their connection
type Stores struct {
	Books book.Repository
	Users user.Repository
	close func(ctx context.Context) error
}

// Scheme is the identifier shape of both repositories
func (s *Stores) Scheme() ident.Scheme {
	return s.Books.Scheme()
}

// Close releases the repositories and then the shared connection
func (s *Stores) Close(ctx context.Context) error {
	err := errors.Join(s.Books.Close(ctx), s.Users.Close(ctx))
	if s.close != nil {
		err = errors.Join(err, s.close(ctx))
	}
	return err
}

// Open connects to the backend selected in cfg
func Open(ctx context.Context, cfg *config.Config) (*Stores, error) {
	switch cfg.StorageBackend {
	case config.File:
		db, err := jsonfile.Open(cfg.DBFile)
		if err != nil {
			return nil, fmt.Errorf("opening database file: %w", err)
		}
		return &Stores{
			Books: bookjson.NewRepository(db),
			Users: userjson.NewRepository(db),
		}, nil
	case config.Mongo:
		db, err := storagemongo.Connect(ctx, cfg.MongoURI, cfg.MongoDatabase)
		if err != nil {
			return nil, err
		}
		return &Stores{
			Books: bookmongo.NewRepository(db),
			Users: usermongo.NewRepository(db),
			close: func(ctx context.Context) error {
				return storagemongo.Disconnect(ctx, db)
			},
		}, nil
	case config.Redis:
		client, err := storageredis.NewClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return nil, err
		}
		return &Stores{
			Books: bookredis.NewRepository(client),
			Users: userredis.NewRepository(client),
			close: func(context.Context) error {
				return client.Close()
			},
		}, nil
	}
	return nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
}
