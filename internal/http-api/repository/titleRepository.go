package repository

import (
	"context"
	"fmt"

	"github.com/perenos/yamdb-final/internal/http-api/models"

	"gorm.io/gorm"
)

// TitleFilter holds the optional list filters; zero values mean "no filter".
type TitleFilter struct {
	CategorySlug string
	GenreSlug    string
	Name         string
	Year         int
}

type TitleRepository interface {
	GetAll(ctx context.Context, filter TitleFilter, limit, offset int) ([]models.Title, int64, error)
	GetByID(ctx context.Context, id int64) (*models.Title, error)
	Create(ctx context.Context, t *models.Title) error
	Update(ctx context.Context, t *models.Title) error
	ReplaceGenres(ctx context.Context, t *models.Title, genres []models.Genre) error
	Delete(ctx context.Context, id int64) error
}

type titleRepository struct {
	db *gorm.DB
}

func NewTitleRepository(db *gorm.DB) TitleRepository {
	return &titleRepository{db: db}
}

func (r *titleRepository) GetAll(ctx context.Context, filter TitleFilter, limit, offset int) ([]models.Title, int64, error) {
	var list []models.Title
	var total int64

	db := r.db.WithContext(ctx).Model(&models.Title{})
	if filter.Name != "" {
		db = db.Where("titles.name ILIKE ?", "%"+filter.Name+"%")
	}
	if filter.Year != 0 {
		db = db.Where("titles.year = ?", filter.Year)
	}
	if filter.CategorySlug != "" {
		db = db.Joins("JOIN categories ON categories.id = titles.category_id").
			Where("categories.slug = ?", filter.CategorySlug)
	}
	if filter.GenreSlug != "" {
		db = db.Joins("JOIN title_genres tg ON tg.title_id = titles.id").
			Joins("JOIN genres ON genres.id = tg.genre_id").
			Where("genres.slug = ?", filter.GenreSlug)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, translateError(err)
	}

	if err := db.Preload("Category").
		Preload("Genres").
		Order("titles.name asc, titles.year asc").
		Limit(limit).
		Offset(offset).
		Find(&list).Error; err != nil {
		return nil, 0, translateError(err)
	}

	if err := r.attachRatings(ctx, list); err != nil {
		return nil, 0, err
	}

	return list, total, nil
}

func (r *titleRepository) GetByID(ctx context.Context, id int64) (*models.Title, error) {
	var t models.Title
	if err := r.db.WithContext(ctx).
		Preload("Category").
		Preload("Genres").
		First(&t, id).Error; err != nil {
		return nil, translateError(err)
	}

	rating, err := r.averageRating(ctx, id)
	if err != nil {
		return nil, err
	}
	t.Rating = rating
	return &t, nil
}

func (r *titleRepository) Create(ctx context.Context, t *models.Title) error {
	if err := r.db.WithContext(ctx).Create(t).Error; err != nil {
		return translateError(err)
	}
	return nil
}

func (r *titleRepository) Update(ctx context.Context, t *models.Title) error {
	// Save without touching the genre association; ReplaceGenres handles it
	if err := r.db.WithContext(ctx).Omit("Genres", "Category").Save(t).Error; err != nil {
		return translateError(err)
	}
	return nil
}

func (r *titleRepository) ReplaceGenres(ctx context.Context, t *models.Title, genres []models.Genre) error {
	if err := r.db.WithContext(ctx).Model(t).Association("Genres").Replace(genres); err != nil {
		return fmt.Errorf("replace genres: %w", err)
	}
	t.Genres = genres
	return nil
}

func (r *titleRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&models.Title{}, id)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// averageRating computes the derived rating for a single title at read
// time. Returns nil (not zero) when the title has no reviews.
func (r *titleRepository) averageRating(ctx context.Context, titleID int64) (*float64, error) {
	var avg *float64
	err := r.db.WithContext(ctx).Model(&models.Review{}).
		Select("AVG(score)").
		Where("title_id = ?", titleID).
		Scan(&avg).Error
	if err != nil {
		return nil, translateError(err)
	}
	return avg, nil
}

// attachRatings fills Rating for a page of titles with one grouped query.
func (r *titleRepository) attachRatings(ctx context.Context, titles []models.Title) error {
	if len(titles) == 0 {
		return nil
	}

	ids := make([]int64, 0, len(titles))
	for _, t := range titles {
		ids = append(ids, t.ID)
	}

	var rows []struct {
		TitleID int64
		Avg     float64
	}
	if err := r.db.WithContext(ctx).Model(&models.Review{}).
		Select("title_id, AVG(score) as avg").
		Where("title_id IN ?", ids).
		Group("title_id").
		Scan(&rows).Error; err != nil {
		return translateError(err)
	}

	byID := make(map[int64]float64, len(rows))
	for _, row := range rows {
		byID[row.TitleID] = row.Avg
	}
	for i := range titles {
		if avg, ok := byID[titles[i].ID]; ok {
			v := avg
			titles[i].Rating = &v
		}
	}
	return nil
}
