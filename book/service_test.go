package book_test

import (
	"context"
	"testing"

	"github.com/marcelsud/bookshelf-api/apperr"
	"github.com/marcelsud/bookshelf-api/book"
	"github.com/marcelsud/bookshelf-api/book/mocks"
	"github.com/marcelsud/bookshelf-api/ident"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreate(t *testing.T) {
	ctx := context.Background()
	t.Run("success", func(t *testing.T) {
		b := book.Book{
			Titulo: "teste",
			Autor:  "João",
			Ano:    2025,
		}
		repo := mocks.NewRepository(t)
		repo.On("Insert", ctx, b).Return(book.Record{ID: "1", Titulo: "teste", Autor: "João", Ano: 2025}, nil)
		s := book.NewService(repo)
		saved, err := s.Create(ctx, book.DTO{ID: "ignored", Titulo: "teste", Autor: "João", Ano: 2025})
		require.NoError(t, err)
		assert.Equal(t, "1", saved.ID)
		assert.Equal(t, "teste", saved.Titulo)
		assert.Equal(t, "João", saved.Autor)
		assert.Equal(t, 2025.0, saved.Ano)
	})
	t.Run("storage failure", func(t *testing.T) {
		repo := mocks.NewRepository(t)
		repo.On("Insert", ctx, book.Book{Titulo: "x"}).Return(book.Record{}, apperr.NewStorage("Database error", assert.AnError))
		s := book.NewService(repo)
		saved, err := s.Create(ctx, book.DTO{Titulo: "x"})
		require.Error(t, err)
		assert.True(t, apperr.Is(err, apperr.Storage))
		assert.Empty(t, saved)
	})
}

func TestList(t *testing.T) {
	ctx := context.Background()
	t.Run("maps every record", func(t *testing.T) {
		repo := mocks.NewRepository(t)
		repo.On("SelectAll", ctx).Return([]book.Record{
			{ID: "1", Titulo: "Dune", Autor: "Frank Herbert", Ano: 1965},
			{ID: "2", Titulo: "1984", Autor: "George Orwell", Ano: 1949},
		}, nil)
		all, err := book.NewService(repo).List(ctx)
		require.NoError(t, err)
		require.Len(t, all, 2)
		assert.Equal(t, "Dune", all[0].Titulo)
		assert.Equal(t, "2", all[1].ID)
	})
	t.Run("empty collection gives empty slice", func(t *testing.T) {
		repo := mocks.NewRepository(t)
		repo.On("SelectAll", ctx).Return(nil, nil)
		all, err := book.NewService(repo).List(ctx)
		require.NoError(t, err)
		assert.NotNil(t, all)
		assert.Empty(t, all)
	})
}

func TestGet(t *testing.T) {
	ctx := context.Background()
	t.Run("found", func(t *testing.T) {
		repo := mocks.NewRepository(t)
		repo.On("Scheme").Return(ident.Sequential)
		repo.On("Select", ctx, "3").Return(book.Record{ID: "3", Titulo: "Foundation"}, true, nil)
		got, err := book.NewService(repo).Get(ctx, "3")
		require.NoError(t, err)
		assert.Equal(t, "Foundation", got.Titulo)
	})
	t.Run("not found", func(t *testing.T) {
		repo := mocks.NewRepository(t)
		repo.On("Scheme").Return(ident.Sequential)
		repo.On("Select", ctx, "99").Return(book.Record{}, false, nil)
		_, err := book.NewService(repo).Get(ctx, "99")
		e, ok := apperr.As(err)
		require.True(t, ok)
		assert.Equal(t, apperr.NotFound, e.Kind)
		assert.Equal(t, "Book not found", e.Message)
	})
	t.Run("malformed id never reaches the repository", func(t *testing.T) {
		repo := mocks.NewRepository(t)
		repo.On("Scheme").Return(ident.Sequential)
		_, err := book.NewService(repo).Get(ctx, "abc")
		require.Error(t, err)
		_, isTaxonomy := apperr.As(err)
		assert.False(t, isTaxonomy)
	})
}

func TestUpdate(t *testing.T) {
	ctx := context.Background()
	titulo := "The Foundation"
	p := book.Patch{Titulo: &titulo}
	t.Run("success", func(t *testing.T) {
		repo := mocks.NewRepository(t)
		repo.On("Scheme").Return(ident.ObjectID)
		repo.On("Update", ctx, "65f0c0ffee0ddba11ad0beef", p).
			Return(book.Record{ID: "65f0c0ffee0ddba11ad0beef", Titulo: titulo, Autor: "Isaac Asimov", Ano: 1951}, true, nil)
		got, err := book.NewService(repo).Update(ctx, "65f0c0ffee0ddba11ad0beef", p)
		require.NoError(t, err)
		assert.Equal(t, titulo, got.Titulo)
		assert.Equal(t, "65f0c0ffee0ddba11ad0beef", got.ID)
	})
	t.Run("not found", func(t *testing.T) {
		repo := mocks.NewRepository(t)
		repo.On("Scheme").Return(ident.Sequential)
		repo.On("Update", ctx, "7", p).Return(book.Record{}, false, nil)
		_, err := book.NewService(repo).Update(ctx, "7", p)
		assert.True(t, apperr.Is(err, apperr.NotFound))
	})
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	t.Run("returns removed record", func(t *testing.T) {
		repo := mocks.NewRepository(t)
		repo.On("Scheme").Return(ident.Sequential)
		repo.On("Delete", ctx, "1").Return(book.Record{ID: "1", Titulo: "Dune"}, true, nil)
		got, err := book.NewService(repo).Delete(ctx, "1")
		require.NoError(t, err)
		assert.Equal(t, "Dune", got.Titulo)
	})
	t.Run("not found", func(t *testing.T) {
		repo := mocks.NewRepository(t)
		repo.On("Scheme").Return(ident.Sequential)
		repo.On("Delete", ctx, "1").Return(book.Record{}, false, nil)
		_, err := book.NewService(repo).Delete(ctx, "1")
		assert.True(t, apperr.Is(err, apperr.NotFound))
	})
}

func TestCount(t *testing.T) {
	ctx := context.Background()
	repo := mocks.NewRepository(t)
	repo.On("SelectAll", ctx).Return([]book.Record{{ID: "1"}, {ID: "2"}}, nil)
	n, err := book.NewService(repo).Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}
