package user

import (
	"context"
	"fmt"

	"github.com/marcelsud/bookshelf-api/apperr"
)

const notFoundMessage = "User not found"

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

// List returns every user in the repository's order
func (s *Service) List(ctx context.Context) ([]DTO, error) {
	all, err := s.Repo.SelectAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("selecting users: %w", err)
	}
	result := make([]DTO, 0, len(all))
	for _, r := range all {
		result = append(result, ToDTO(r))
	}
	return result, nil
}

func (s *Service) Get(ctx context.Context, id string) (DTO, error) {
	if err := s.checkID(id); err != nil {
		return DTO{}, err
	}
	r, found, err := s.Repo.Select(ctx, id)
	if err != nil {
		return DTO{}, fmt.Errorf("selecting user: %w", err)
	}
	if !found {
		return DTO{}, apperr.NewNotFound(notFoundMessage)
	}
	return ToDTO(r), nil
}

func (s *Service) Create(ctx context.Context, d DTO) (DTO, error) {
	r, err := s.Repo.Insert(ctx, FromDTO(d))
	if err != nil {
		return DTO{}, fmt.Errorf("inserting user: %w", err)
	}
	return ToDTO(r), nil
}

func (s *Service) Update(ctx context.Context, id string, p Patch) (DTO, error) {
	if err := s.checkID(id); err != nil {
		return DTO{}, err
	}
	r, found, err := s.Repo.Update(ctx, id, p)
	if err != nil {
		return DTO{}, fmt.Errorf("updating user: %w", err)
	}
	if !found {
		return DTO{}, apperr.NewNotFound(notFoundMessage)
	}
	return ToDTO(r), nil
}

func (s *Service) Delete(ctx context.Context, id string) (DTO, error) {
	if err := s.checkID(id); err != nil {
		return DTO{}, err
	}
	r, found, err := s.Repo.Delete(ctx, id)
	if err != nil {
		return DTO{}, fmt.Errorf("deleting user: %w", err)
	}
	if !found {
		return DTO{}, apperr.NewNotFound(notFoundMessage)
	}
	return ToDTO(r), nil
}

// checkID rejects identifiers the controller should already have refused
func (s *Service) checkID(id string) error {
	if err := s.Repo.Scheme().Validate(id); err != nil {
		return fmt.Errorf("checking user id: %w", err)
	}
	return nil
}

// Count returns how many users are stored
func (s *Service) Count(ctx context.Context) (int64, error) {
	all, err := s.Repo.SelectAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("counting users: %w", err)
	}
	return int64(len(all)), nil
}
