package book

import (
	"context"

	"github.com/marcelsud/bookshelf-api/ident"
)

/* Interfaces pequenas */

/* Interfaces abstraem comportamento e não coisas.
 * "Absent" is reported through the bool, not through an error: a missing book
 * is a normal outcome for the repository and only the service decides it is a 404.
 * Every error returned here is an *apperr.Error of kind Storage.
 */

type Reader interface {
	Select(ctx context.Context, id string) (Record, bool, error)
	SelectAll(ctx context.Context) ([]Record, error)
}

type Writer interface {
	Insert(ctx context.Context, b Book) (Record, error)
	Update(ctx context.Context, id string, p Patch) (Record, bool, error)
	Delete(ctx context.Context, id string) (Record, bool, error)
}

/* Composição de interfaces */

type Repository interface {
	Reader
	Writer
	Scheme() ident.Scheme
	Close(ctx context.Context) error
}
