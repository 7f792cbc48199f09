package dto

import (
	"time"

	"github.com/perenos/yamdb-final/internal/http-api/models"
)

// CreateReviewDTO for posting a review. Score is a pointer so a literal 0
// survives the required check.
type CreateReviewDTO struct {
	Text  string `json:"text" binding:"required,max=256"`
	Score *int   `json:"score" binding:"required"`
}

// UpdateReviewDTO for partial review updates; author, title and pub_date
// are never updatable
type UpdateReviewDTO struct {
	Text  *string `json:"text,omitempty" binding:"omitempty,max=256"`
	Score *int    `json:"score,omitempty"`
}

// ReviewResponse resolves the author and title references to display names
type ReviewResponse struct {
	ID      int64     `json:"id"`
	Title   string    `json:"title"`
	Text    string    `json:"text"`
	Author  string    `json:"author"`
	Score   int       `json:"score"`
	PubDate time.Time `json:"pub_date"`
}

func FromModelToReviewResponse(r *models.Review) *ReviewResponse {
	return &ReviewResponse{
		ID:      r.ID,
		Title:   r.Title.Name,
		Text:    r.Text,
		Author:  r.Author.Username,
		Score:   r.Score,
		PubDate: r.PubDate,
	}
}
