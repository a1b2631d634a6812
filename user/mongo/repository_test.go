package mongo

import (
	"context"
	"testing"

	"github.com/marcelsud/bookshelf-api/ident"
	"github.com/marcelsud/bookshelf-api/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestRepository_MalformedID(t *testing.T) {
	ctx := context.Background()
	repo := &Repository{}
	assert.Equal(t, ident.ObjectID, repo.Scheme())

	nome := "Ana"
	for _, id := range []string{"1", "zzzzzzzzzzzzzzzzzzzzzzzz", ""} {
		_, ok, err := repo.Select(ctx, id)
		assert.NoError(t, err)
		assert.False(t, ok, id)

		_, ok, err = repo.Update(ctx, id, user.Patch{Nome: &nome})
		assert.NoError(t, err)
		assert.False(t, ok, id)

		_, ok, err = repo.Delete(ctx, id)
		assert.NoError(t, err)
		assert.False(t, ok, id)
	}
}

func TestDocument_ToUser(t *testing.T) {
	oid := primitive.NewObjectID()

	r := document{ID: oid, Nome: "Ana", Ativo: true}.toUser()
	assert.Equal(t, oid.Hex(), r.ID)
	assert.Nil(t, r.Saldo)

	saldo := 10.25
	r = document{ID: oid, Nome: "Ana", Saldo: &saldo}.toUser()
	require.NotNil(t, r.Saldo)
	assert.Equal(t, 10.25, *r.Saldo)
	assert.False(t, r.Ativo)
}
