package book

import (
	"context"
	"fmt"

	"github.com/marcelsud/bookshelf-api/apperr"
)

/*
 * - Quando uma struct representa DADOS deveria usar sempre value semantics e não pointer (ex: Book) .
 * Se a struct representa uma API deveria ser pointer (ex: Service).
 */

const notFoundMessage = "Book not found"

type UseCase interface {
	List(ctx context.Context) ([]DTO, error)
	Get(ctx context.Context, id string) (DTO, error)
	Create(ctx context.Context, d DTO) (DTO, error)
	Update(ctx context.Context, id string, p Patch) (DTO, error)
	Delete(ctx context.Context, id string) (DTO, error)
	Count(ctx context.Context) (int64, error)
}

type Service struct {
	Repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{
		Repo: repo,
	}
}

func (s *Service) List(ctx context.Context) ([]DTO, error) {
	all, err := s.Repo.SelectAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("selecting books: %w", err)
	}
	result := make([]DTO, 0, len(all))
	for _, r := range all {
		result = append(result, ToDTO(r))
	}
	return result, nil
}

func (s *Service) Get(ctx context.Context, id string) (DTO, error) {
	if err := s.Repo.Scheme().Validate(id); err != nil {
		return DTO{}, fmt.Errorf("getting book: %w", err)
	}
	r, found, err := s.Repo.Select(ctx, id)
	if err != nil {
		return DTO{}, fmt.Errorf("selecting book: %w", err)
	}
	if !found {
		return DTO{}, apperr.NewNotFound(notFoundMessage)
	}
	return ToDTO(r), nil
}

// Create assumes the controller already checked the required fields
func (s *Service) Create(ctx context.Context, d DTO) (DTO, error) {
	r, err := s.Repo.Insert(ctx, FromDTO(d))
	if err != nil {
		return DTO{}, fmt.Errorf("inserting book: %w", err)
	}
	return ToDTO(r), nil
}

func (s *Service) Update(ctx context.Context, id string, p Patch) (DTO, error) {
	if err := s.Repo.Scheme().Validate(id); err != nil {
		return DTO{}, fmt.Errorf("updating book: %w", err)
	}
	r, found, err := s.Repo.Update(ctx, id, p)
	if err != nil {
		return DTO{}, fmt.Errorf("updating book: %w", err)
	}
	if !found {
		return DTO{}, apperr.NewNotFound(notFoundMessage)
	}
	return ToDTO(r), nil
}

func (s *Service) Delete(ctx context.Context, id string) (DTO, error) {
	if err := s.Repo.Scheme().Validate(id); err != nil {
		return DTO{}, fmt.Errorf("deleting book: %w", err)
	}
	r, found, err := s.Repo.Delete(ctx, id)
	if err != nil {
		return DTO{}, fmt.Errorf("deleting book: %w", err)
	}
	if !found {
		return DTO{}, apperr.NewNotFound(notFoundMessage)
	}
	return ToDTO(r), nil
}

// Count returns how many books are stored
func (s *Service) Count(ctx context.Context) (int64, error) {
	all, err := s.Repo.SelectAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("counting books: %w", err)
	}
	return int64(len(all)), nil
}
