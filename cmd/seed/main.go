package main

import (
	"context"
	"fmt"
	"os"

	"github.com/marcelsud/bookshelf-api/book"
	"github.com/marcelsud/bookshelf-api/config"
	"github.com/marcelsud/bookshelf-api/fixtures"
	"github.com/marcelsud/bookshelf-api/internal/backend"
	"github.com/marcelsud/bookshelf-api/user"
)

/* seed - creates the records of a fixtures file in the configured backend
 * Usage: go run ./cmd/seed [fixtures.yaml]
 */

func main() {
	fixturesFile := "fixtures.yaml"
	if len(os.Args) > 1 {
		fixturesFile = os.Args[1]
	}
	if err := run(fixturesFile); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func run(fixturesFile string) error {
	cfg, err := config.GetConfig()
	if err != nil {
		return err
	}
	loader := fixtures.NewLoader()
	if err := loader.Load(fixturesFile); err != nil {
		return err
	}

	ctx := context.Background()
	stores, err := backend.Open(ctx, cfg)
	if err != nil {
		return err
	}
	defer stores.Close(ctx)

	res, err := loader.Seed(ctx, book.NewService(stores.Books), user.NewService(stores.Users))
	fmt.Printf("Created %d book(s) and %d user(s) in the %s backend\n", res.Books, res.Users, cfg.StorageBackend)
	return err
}
