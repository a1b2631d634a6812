package mongo

import (
	"context"
	"errors"

	"github.com/marcelsud/bookshelf-api/apperr"
	"github.com/marcelsud/bookshelf-api/book"
	"github.com/marcelsud/bookshelf-api/ident"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const collectionName = "books"

type document struct {
	ID     primitive.ObjectID `bson:"_id,omitempty"`
	Titulo string             `bson:"titulo"`
	Autor  string             `bson:"autor"`
	Ano    float64            `bson:"ano"`
}

func (d document) toBook() book.Record {
	return book.Record{
		ID:     d.ID.Hex(),
		Titulo: d.Titulo,
		Autor:  d.Autor,
		Ano:    d.Ano,
	}
}

type Repository struct {
	coll *mongo.Collection
}

// NewRepository uses the "books" collection of db
func NewRepository(db *mongo.Database) *Repository {
	return &Repository{coll: db.Collection(collectionName)}
}

func (r *Repository) Scheme() ident.Scheme {
	return ident.ObjectID
}

func (r *Repository) SelectAll(ctx context.Context) ([]book.Record, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cur, err := r.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, storageError(err)
	}
	var docs []document
	if err := cur.All(ctx, &docs); err != nil {
		return nil, storageError(err)
	}
	books := make([]book.Record, 0, len(docs))
	for _, d := range docs {
		books = append(books, d.toBook())
	}
	return books, nil
}

func (r *Repository) Select(ctx context.Context, id string) (book.Record, bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return book.Record{}, false, nil
	}
	var d document
	err = r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&d)
	return result(d, err)
}

func (r *Repository) Insert(ctx context.Context, b book.Book) (book.Record, error) {
	d := document{
		Titulo: b.Titulo,
		Autor:  b.Autor,
		Ano:    b.Ano,
	}
	res, err := r.coll.InsertOne(ctx, d)
	if err != nil {
		return book.Record{}, storageError(err)
	}
	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return book.Record{}, apperr.NewStorage("Database error", errors.New("unexpected inserted id type"))
	}
	d.ID = oid
	return d.toBook(), nil
}

/* Update applies the patch with $set and returns the document after the update.
 * An empty patch reads the document instead, since $set with no fields is rejected by the server.
 */
func (r *Repository) Update(ctx context.Context, id string, p book.Patch) (book.Record, bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return book.Record{}, false, nil
	}
	set := bson.D{}
	if p.Titulo != nil {
		set = append(set, bson.E{Key: "titulo", Value: *p.Titulo})
	}
	if p.Autor != nil {
		set = append(set, bson.E{Key: "autor", Value: *p.Autor})
	}
	if p.Ano != nil {
		set = append(set, bson.E{Key: "ano", Value: *p.Ano})
	}
	if len(set) == 0 {
		return r.Select(ctx, id)
	}
	var d document
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	err = r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.D{{Key: "$set", Value: set}}, opts).Decode(&d)
	return result(d, err)
}

func (r *Repository) Delete(ctx context.Context, id string) (book.Record, bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return book.Record{}, false, nil
	}
	var d document
	err = r.coll.FindOneAndDelete(ctx, bson.M{"_id": oid}).Decode(&d)
	return result(d, err)
}

// Close is a no-op; the shared client is disconnected by its owner
func (r *Repository) Close(ctx context.Context) error {
	return nil
}

func result(d document, err error) (book.Record, bool, error) {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return book.Record{}, false, nil
	}
	if err != nil {
		return book.Record{}, false, storageError(err)
	}
	return d.toBook(), true, nil
}

func storageError(err error) error {
	return apperr.NewStorage("Database error", err)
}
