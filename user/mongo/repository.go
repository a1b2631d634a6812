package mongo

import (
	"context"
	"errors"
	"fmt"

	"github.com/marcelsud/bookshelf-api/apperr"
	"github.com/marcelsud/bookshelf-api/ident"
	"github.com/marcelsud/bookshelf-api/user"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type document struct {
	ID    primitive.ObjectID `bson:"_id,omitempty"`
	Nome  string             `bson:"nome"`
	Ativo bool               `bson:"ativo"`
	Saldo *float64           `bson:"saldo,omitempty"`
}

func (d document) toUser() user.Record {
	return user.Record{
		ID:    d.ID.Hex(),
		Nome:  d.Nome,
		Ativo: d.Ativo,
		Saldo: d.Saldo,
	}
}

type Repository struct {
	coll *mongo.Collection
}

func NewRepository(db *mongo.Database) *Repository {
	return &Repository{coll: db.Collection("users")}
}

func (r *Repository) Scheme() ident.Scheme {
	return ident.ObjectID
}

// SelectAll lists users by _id, which follows insertion order for driver-generated ids
func (r *Repository) SelectAll(ctx context.Context) ([]user.Record, error) {
	cur, err := r.coll.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, apperr.NewStorage("Database error", err)
	}
	defer cur.Close(ctx)

	users := []user.Record{}
	for cur.Next(ctx) {
		var d document
		if err := cur.Decode(&d); err != nil {
			return nil, apperr.NewStorage("Database error", fmt.Errorf("decoding user: %w", err))
		}
		users = append(users, d.toUser())
	}
	if err := cur.Err(); err != nil {
		return nil, apperr.NewStorage("Database error", err)
	}
	return users, nil
}

func (r *Repository) Select(ctx context.Context, id string) (user.Record, bool, error) {
	filter, ok := byID(id)
	if !ok {
		return user.Record{}, false, nil
	}
	return decode(r.coll.FindOne(ctx, filter))
}

func (r *Repository) Insert(ctx context.Context, u user.User) (user.Record, error) {
	d := document{
		ID:    primitive.NewObjectID(),
		Nome:  u.Nome,
		Ativo: u.Ativo,
	}
	if u.Saldo != nil {
		s := *u.Saldo
		d.Saldo = &s
	}
	if _, err := r.coll.InsertOne(ctx, d); err != nil {
		return user.Record{}, apperr.NewStorage("Database error", err)
	}
	return d.toUser(), nil
}

func (r *Repository) Update(ctx context.Context, id string, p user.Patch) (user.Record, bool, error) {
	filter, ok := byID(id)
	if !ok {
		return user.Record{}, false, nil
	}
	set := bson.M{}
	if p.Nome != nil {
		set["nome"] = *p.Nome
	}
	if p.Ativo != nil {
		set["ativo"] = *p.Ativo
	}
	if p.Saldo != nil {
		set["saldo"] = *p.Saldo
	}
	if len(set) == 0 {
		return decode(r.coll.FindOne(ctx, filter))
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	return decode(r.coll.FindOneAndUpdate(ctx, filter, bson.M{"$set": set}, opts))
}

func (r *Repository) Delete(ctx context.Context, id string) (user.Record, bool, error) {
	filter, ok := byID(id)
	if !ok {
		return user.Record{}, false, nil
	}
	return decode(r.coll.FindOneAndDelete(ctx, filter))
}

func (r *Repository) Close(ctx context.Context) error {
	return nil
}

func byID(id string) (bson.M, bool) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, false
	}
	return bson.M{"_id": oid}, true
}

func decode(res *mongo.SingleResult) (user.Record, bool, error) {
	var d document
	err := res.Decode(&d)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return user.Record{}, false, nil
	}
	if err != nil {
		return user.Record{}, false, apperr.NewStorage("Database error", err)
	}
	return d.toUser(), true, nil
}
