package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/perenos/yamdb-final/internal/http-api/cache"
	"github.com/perenos/yamdb-final/internal/http-api/dto"
	"github.com/perenos/yamdb-final/internal/http-api/models"
	"github.com/perenos/yamdb-final/internal/http-api/permissions"
	"github.com/perenos/yamdb-final/internal/http-api/repository"
)

type ReviewService interface {
	List(ctx context.Context, titleID int64, limit, offset int) (*dto.Paginated[dto.ReviewResponse], error)
	Get(ctx context.Context, titleID, reviewID int64) (*dto.ReviewResponse, error)
	Create(ctx context.Context, requester *models.User, titleID int64, req dto.CreateReviewDTO) (*dto.ReviewResponse, error)
	Update(ctx context.Context, requester *models.User, titleID, reviewID int64, req dto.UpdateReviewDTO) (*dto.ReviewResponse, error)
	Delete(ctx context.Context, requester *models.User, titleID, reviewID int64) error
}

type reviewService struct {
	reviewRepo repository.ReviewRepository
	titleRepo  repository.TitleRepository
	titleCache *cache.TitleCache
	logger     *slog.Logger
}

func NewReviewService(
	reviewRepo repository.ReviewRepository,
	titleRepo repository.TitleRepository,
	titleCache *cache.TitleCache,
	logger *slog.Logger,
) ReviewService {
	return &reviewService{
		reviewRepo: reviewRepo,
		titleRepo:  titleRepo,
		titleCache: titleCache,
		logger:     logger,
	}
}

// validateScore enforces the 0..10 inclusive score range.
func validateScore(score int) error {
	if score < 0 || score > 10 {
		return ErrScoreOutOfRange
	}
	return nil
}

func (s *reviewService) List(ctx context.Context, titleID int64, limit, offset int) (*dto.Paginated[dto.ReviewResponse], error) {
	if _, err := s.titleRepo.GetByID(ctx, titleID); err != nil {
		return nil, err
	}

	reviews, total, err := s.reviewRepo.GetByTitle(ctx, titleID, limit, offset)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.ReviewResponse, 0, len(reviews))
	for i := range reviews {
		responses = append(responses, *dto.FromModelToReviewResponse(&reviews[i]))
	}
	return dto.NewPaginated(responses, total), nil
}

func (s *reviewService) Get(ctx context.Context, titleID, reviewID int64) (*dto.ReviewResponse, error) {
	review, err := s.getScoped(ctx, titleID, reviewID)
	if err != nil {
		return nil, err
	}
	return dto.FromModelToReviewResponse(review), nil
}

func (s *reviewService) Create(ctx context.Context, requester *models.User, titleID int64, req dto.CreateReviewDTO) (*dto.ReviewResponse, error) {
	if requester == nil {
		return nil, ErrNotAuthenticated
	}
	if err := validateScore(*req.Score); err != nil {
		return nil, err
	}
	if _, err := s.titleRepo.GetByID(ctx, titleID); err != nil {
		return nil, err
	}

	// pre-check for the friendly error; the composite unique index decides
	// the race
	if _, err := s.reviewRepo.GetByTitleAndAuthor(ctx, titleID, requester.ID); err == nil {
		return nil, ErrReviewExists
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	review := &models.Review{
		TitleID:  titleID,
		AuthorID: requester.ID,
		Text:     req.Text,
		Score:    *req.Score,
	}
	if err := s.reviewRepo.Create(ctx, review); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, ErrReviewExists
		}
		return nil, err
	}

	s.invalidateTitle(ctx, titleID)

	// reload to resolve author/title back-references for the response
	created, err := s.reviewRepo.GetByID(ctx, review.ID)
	if err != nil {
		return nil, err
	}
	return dto.FromModelToReviewResponse(created), nil
}

func (s *reviewService) Update(ctx context.Context, requester *models.User, titleID, reviewID int64, req dto.UpdateReviewDTO) (*dto.ReviewResponse, error) {
	if requester == nil {
		return nil, ErrNotAuthenticated
	}

	review, err := s.getScoped(ctx, titleID, reviewID)
	if err != nil {
		return nil, err
	}
	if !permissions.CanModifyContent(requester, review.AuthorID) {
		return nil, ErrPermissionDenied
	}

	if req.Text != nil {
		review.Text = *req.Text
	}
	if req.Score != nil {
		if err := validateScore(*req.Score); err != nil {
			return nil, err
		}
		review.Score = *req.Score
	}

	if err := s.reviewRepo.Update(ctx, review); err != nil {
		return nil, err
	}

	s.invalidateTitle(ctx, titleID)
	return dto.FromModelToReviewResponse(review), nil
}

func (s *reviewService) Delete(ctx context.Context, requester *models.User, titleID, reviewID int64) error {
	if requester == nil {
		return ErrNotAuthenticated
	}

	review, err := s.getScoped(ctx, titleID, reviewID)
	if err != nil {
		return err
	}
	if !permissions.CanModifyContent(requester, review.AuthorID) {
		return ErrPermissionDenied
	}

	if err := s.reviewRepo.Delete(ctx, reviewID); err != nil {
		return err
	}
	s.invalidateTitle(ctx, titleID)
	return nil
}

// getScoped loads a review and verifies it belongs to the title named in
// the URL; a mismatch reads as not found.
func (s *reviewService) getScoped(ctx context.Context, titleID, reviewID int64) (*models.Review, error) {
	review, err := s.reviewRepo.GetByID(ctx, reviewID)
	if err != nil {
		return nil, err
	}
	if review.TitleID != titleID {
		return nil, repository.ErrNotFound
	}
	return review, nil
}

// invalidateTitle drops the cached title entry after any review mutation,
// since the derived rating just changed.
func (s *reviewService) invalidateTitle(ctx context.Context, titleID int64) {
	if err := s.titleCache.Invalidate(ctx, titleID); err != nil {
		s.logger.Warn("title cache invalidation failed", "title_id", titleID, "error", err)
	}
}
