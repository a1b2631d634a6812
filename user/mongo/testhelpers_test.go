//go:build integration

package mongo

import (
	"context"
	"fmt"
	"testing"
	"time"

	storage "github.com/marcelsud/bookshelf-api/storage/mongo"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"
	"go.mongodb.org/mongo-driver/mongo"
)

/*
Test Helpers para MongoDB com Testcontainers.
Cada teste recebe um banco com nome próprio, então os testes não enxergam os dados uns dos outros.
*/

// SetupMongoContainer sobe um container mongo e devolve a URI de conexão
func SetupMongoContainer(t *testing.T, ctx context.Context) string {
	t.Helper()

	container, err := mongodb.Run(ctx, "mongo:7")
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = container.Terminate(context.Background())
	})

	uri, err := container.ConnectionString(ctx)
	require.NoError(t, err)
	return uri
}

// SetupDatabase conecta no container e cria um banco isolado para o teste
func SetupDatabase(t *testing.T, ctx context.Context, uri string) *mongo.Database {
	t.Helper()

	db, err := storage.Connect(ctx, uri, fmt.Sprintf("bookshelf_test_%d", time.Now().UnixNano()))
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = db.Drop(context.Background())
		_ = storage.Disconnect(context.Background(), db)
	})
	return db
}
