package service

import (
	"context"
	"regexp"

	"github.com/perenos/yamdb-final/internal/http-api/dto"
	"github.com/perenos/yamdb-final/internal/http-api/models"
	"github.com/perenos/yamdb-final/internal/http-api/permissions"
	"github.com/perenos/yamdb-final/internal/http-api/repository"
)

var slugPattern = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)

func validateSlug(slug string) error {
	if !slugPattern.MatchString(slug) {
		return ErrInvalidSlug
	}
	return nil
}

type CategoryService interface {
	List(ctx context.Context, search string, limit, offset int) (*dto.Paginated[dto.CategoryResponse], error)
	Create(ctx context.Context, requester *models.User, req dto.CreateCategoryDTO) (*dto.CategoryResponse, error)
	Delete(ctx context.Context, requester *models.User, slug string) error
}

type categoryService struct {
	categoryRepo repository.CategoryRepository
}

func NewCategoryService(categoryRepo repository.CategoryRepository) CategoryService {
	return &categoryService{categoryRepo: categoryRepo}
}

// List is open to anonymous callers.
func (s *categoryService) List(ctx context.Context, search string, limit, offset int) (*dto.Paginated[dto.CategoryResponse], error) {
	categories, total, err := s.categoryRepo.GetAll(ctx, search, limit, offset)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.CategoryResponse, 0, len(categories))
	for i := range categories {
		responses = append(responses, *dto.FromModelToCategoryResponse(&categories[i]))
	}
	return dto.NewPaginated(responses, total), nil
}

func (s *categoryService) Create(ctx context.Context, requester *models.User, req dto.CreateCategoryDTO) (*dto.CategoryResponse, error) {
	if !permissions.CanManageCatalog(requester) {
		return nil, ErrPermissionDenied
	}
	if err := validateSlug(req.Slug); err != nil {
		return nil, err
	}

	category := &models.Category{Name: req.Name, Slug: req.Slug}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}
	return dto.FromModelToCategoryResponse(category), nil
}

func (s *categoryService) Delete(ctx context.Context, requester *models.User, slug string) error {
	if !permissions.CanManageCatalog(requester) {
		return ErrPermissionDenied
	}
	return s.categoryRepo.Delete(ctx, slug)
}
