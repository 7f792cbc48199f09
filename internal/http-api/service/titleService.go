package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/perenos/yamdb-final/internal/http-api/cache"
	"github.com/perenos/yamdb-final/internal/http-api/dto"
	"github.com/perenos/yamdb-final/internal/http-api/models"
	"github.com/perenos/yamdb-final/internal/http-api/permissions"
	"github.com/perenos/yamdb-final/internal/http-api/repository"
)

type TitleService interface {
	List(ctx context.Context, filter repository.TitleFilter, limit, offset int) (*dto.Paginated[dto.TitleResponse], error)
	Get(ctx context.Context, id int64) (*dto.TitleResponse, error)
	Create(ctx context.Context, requester *models.User, req dto.CreateTitleDTO) (*dto.TitleResponse, error)
	Update(ctx context.Context, requester *models.User, id int64, req dto.UpdateTitleDTO) (*dto.TitleResponse, error)
	Delete(ctx context.Context, requester *models.User, id int64) error
}

type titleService struct {
	titleRepo    repository.TitleRepository
	categoryRepo repository.CategoryRepository
	genreRepo    repository.GenreRepository
	titleCache   *cache.TitleCache
	logger       *slog.Logger
}

func NewTitleService(
	titleRepo repository.TitleRepository,
	categoryRepo repository.CategoryRepository,
	genreRepo repository.GenreRepository,
	titleCache *cache.TitleCache,
	logger *slog.Logger,
) TitleService {
	return &titleService{
		titleRepo:    titleRepo,
		categoryRepo: categoryRepo,
		genreRepo:    genreRepo,
		titleCache:   titleCache,
		logger:       logger,
	}
}

// validateYear is the single validation entry point for release years,
// shared by create and update.
func validateYear(year int) error {
	if year > time.Now().Year() {
		return ErrFutureYear
	}
	return nil
}

func (s *titleService) List(ctx context.Context, filter repository.TitleFilter, limit, offset int) (*dto.Paginated[dto.TitleResponse], error) {
	titles, total, err := s.titleRepo.GetAll(ctx, filter, limit, offset)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.TitleResponse, 0, len(titles))
	for i := range titles {
		responses = append(responses, *dto.FromModelToTitleResponse(&titles[i]))
	}
	return dto.NewPaginated(responses, total), nil
}

func (s *titleService) Get(ctx context.Context, id int64) (*dto.TitleResponse, error) {
	if cached, err := s.titleCache.Get(ctx, id); err != nil {
		s.logger.Warn("title cache read failed", "title_id", id, "error", err)
	} else if cached != nil {
		return dto.FromModelToTitleResponse(cached), nil
	}

	title, err := s.titleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.titleCache.Set(ctx, title); err != nil {
		s.logger.Warn("title cache write failed", "title_id", id, "error", err)
	}
	return dto.FromModelToTitleResponse(title), nil
}

func (s *titleService) Create(ctx context.Context, requester *models.User, req dto.CreateTitleDTO) (*dto.TitleResponse, error) {
	if !permissions.CanManageCatalog(requester) {
		return nil, ErrPermissionDenied
	}
	if err := validateYear(req.Year); err != nil {
		return nil, err
	}

	title := &models.Title{
		Name:        req.Name,
		Year:        req.Year,
		Description: req.Description,
	}

	if req.Category != nil {
		category, err := s.categoryRepo.GetBySlug(ctx, *req.Category)
		if err != nil {
			return nil, err
		}
		title.CategoryID = &category.ID
		title.Category = category
	}

	genres, err := s.genreRepo.GetBySlugs(ctx, req.Genre)
	if err != nil {
		return nil, err
	}
	title.Genres = genres

	if err := s.titleRepo.Create(ctx, title); err != nil {
		return nil, err
	}
	return dto.FromModelToTitleResponse(title), nil
}

func (s *titleService) Update(ctx context.Context, requester *models.User, id int64, req dto.UpdateTitleDTO) (*dto.TitleResponse, error) {
	if !permissions.CanManageCatalog(requester) {
		return nil, ErrPermissionDenied
	}

	title, err := s.titleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		title.Name = *req.Name
	}
	if req.Year != nil {
		if err := validateYear(*req.Year); err != nil {
			return nil, err
		}
		title.Year = *req.Year
	}
	if req.Description != nil {
		title.Description = *req.Description
	}
	if req.Category != nil {
		category, err := s.categoryRepo.GetBySlug(ctx, *req.Category)
		if err != nil {
			return nil, err
		}
		title.CategoryID = &category.ID
		title.Category = category
	}

	if err := s.titleRepo.Update(ctx, title); err != nil {
		return nil, err
	}

	if req.Genre != nil {
		genres, err := s.genreRepo.GetBySlugs(ctx, *req.Genre)
		if err != nil {
			return nil, err
		}
		if err := s.titleRepo.ReplaceGenres(ctx, title, genres); err != nil {
			return nil, err
		}
	}

	if err := s.titleCache.Invalidate(ctx, id); err != nil {
		s.logger.Warn("title cache invalidation failed", "title_id", id, "error", err)
	}
	return dto.FromModelToTitleResponse(title), nil
}

func (s *titleService) Delete(ctx context.Context, requester *models.User, id int64) error {
	if !permissions.CanManageCatalog(requester) {
		return ErrPermissionDenied
	}
	if err := s.titleRepo.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.titleCache.Invalidate(ctx, id); err != nil {
		s.logger.Warn("title cache invalidation failed", "title_id", id, "error", err)
	}
	return nil
}
