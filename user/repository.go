package user

import (
	"context"

	"github.com/marcelsud/bookshelf-api/ident"
)

// Reader provides read operations for users
type Reader interface {
	// Select reports false when no user has the given id
	Select(ctx context.Context, id string) (Record, bool, error)
	SelectAll(ctx context.Context) ([]Record, error)
}

// Writer provides write operations for users
type Writer interface {
	// Insert assigns the identifier
	Insert(ctx context.Context, u User) (Record, error)
	Update(ctx context.Context, id string, p Patch) (Record, bool, error)
	// Delete returns the removed record
	Delete(ctx context.Context, id string) (Record, bool, error)
}

type Repository interface {
	Reader
	Writer
	Scheme() ident.Scheme
	Close(ctx context.Context) error
}
