package service

import (
	"context"

	"github.com/perenos/yamdb-final/internal/http-api/dto"
	"github.com/perenos/yamdb-final/internal/http-api/models"
	"github.com/perenos/yamdb-final/internal/http-api/permissions"
	"github.com/perenos/yamdb-final/internal/http-api/repository"
)

type GenreService interface {
	List(ctx context.Context, search string, limit, offset int) (*dto.Paginated[dto.GenreResponse], error)
	Create(ctx context.Context, requester *models.User, req dto.CreateGenreDTO) (*dto.GenreResponse, error)
	Delete(ctx context.Context, requester *models.User, slug string) error
}

type genreService struct {
	genreRepo repository.GenreRepository
}

func NewGenreService(genreRepo repository.GenreRepository) GenreService {
	return &genreService{genreRepo: genreRepo}
}

// List is open to anonymous callers.
func (s *genreService) List(ctx context.Context, search string, limit, offset int) (*dto.Paginated[dto.GenreResponse], error) {
	genres, total, err := s.genreRepo.GetAll(ctx, search, limit, offset)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.GenreResponse, 0, len(genres))
	for i := range genres {
		responses = append(responses, *dto.FromModelToGenreResponse(&genres[i]))
	}
	return dto.NewPaginated(responses, total), nil
}

func (s *genreService) Create(ctx context.Context, requester *models.User, req dto.CreateGenreDTO) (*dto.GenreResponse, error) {
	if !permissions.CanManageCatalog(requester) {
		return nil, ErrPermissionDenied
	}
	if err := validateSlug(req.Slug); err != nil {
		return nil, err
	}

	genre := &models.Genre{Name: req.Name, Slug: req.Slug}
	if err := s.genreRepo.Create(ctx, genre); err != nil {
		return nil, err
	}
	return dto.FromModelToGenreResponse(genre), nil
}

func (s *genreService) Delete(ctx context.Context, requester *models.User, slug string) error {
	if !permissions.CanManageCatalog(requester) {
		return ErrPermissionDenied
	}
	return s.genreRepo.Delete(ctx, slug)
}
