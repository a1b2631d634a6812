package fixtures

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/marcelsud/bookshelf-api/book"
	"github.com/marcelsud/bookshelf-api/user"
	"gopkg.in/yaml.v3"
)

/* Loader reads seed data from a YAML file:
 *
 *   books:
 *     - titulo: "Dom Casmurro"
 *       autor: "Machado de Assis"
 *       ano: 1899
 *   users:
 *     - nome: "Ana"
 *       ativo: true
 *       saldo: 100.5
 */

// Config represents the structure of a fixtures file
type Config struct {
	Books []BookFixture `yaml:"books"`
	Users []UserFixture `yaml:"users"`
}

// Loader holds the loaded fixtures
type Loader struct {
	books []book.DTO
	users []user.DTO
}

// NewLoader creates a new fixtures loader
func NewLoader() *Loader {
	return &Loader{}
}

// Load reads, parses and validates the fixtures file; nothing is kept if any entry is invalid
func (l *Loader) Load(filePath string) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("reading fixtures file: %w", err)
	}

	var config Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&config); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("parsing fixtures YAML: %w", err)
	}

	books := make([]book.DTO, 0, len(config.Books))
	for i, b := range config.Books {
		if err := b.Validate(); err != nil {
			return fmt.Errorf("validating book #%d: %w", i+1, err)
		}
		books = append(books, b.DTO())
	}
	users := make([]user.DTO, 0, len(config.Users))
	for i, u := range config.Users {
		if err := u.Validate(); err != nil {
			return fmt.Errorf("validating user #%d: %w", i+1, err)
		}
		users = append(users, u.DTO())
	}

	l.books = books
	l.users = users
	return nil
}

// Books returns the loaded books in file order
func (l *Loader) Books() []book.DTO {
	return l.books
}

// Users returns the loaded users in file order
func (l *Loader) Users() []user.DTO {
	return l.users
}

// Result counts what Seed created
type Result struct {
	Books int
	Users int
}

// Seed creates every loaded record through the services, stopping at the first failure
func (l *Loader) Seed(ctx context.Context, books book.UseCase, users user.UseCase) (Result, error) {
	var res Result
	for _, b := range l.books {
		if _, err := books.Create(ctx, b); err != nil {
			return res, fmt.Errorf("creating book %q: %w", b.Titulo, err)
		}
		res.Books++
	}
	for _, u := range l.users {
		if _, err := users.Create(ctx, u); err != nil {
			return res, fmt.Errorf("creating user %q: %w", u.Nome, err)
		}
		res.Users++
	}
	return res, nil
}
