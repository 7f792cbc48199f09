package models

import "time"

type Title struct {
	ID          int64   `json:"id" gorm:"primaryKey;autoIncrement"`
	Name        string  `json:"name" gorm:"size:256;not null"`
	Year        int     `json:"year" gorm:"not null"`
	Description string  `json:"description,omitempty" gorm:"size:256"`
	CategoryID  *int64  `json:"-" gorm:"index"`
	Rating      *float64 `json:"rating" gorm:"-"` // derived: AVG of review scores, null when no reviews

	CreatedAt time.Time `json:"created_at,omitempty" gorm:"autoCreateTime"`

	// associations
	// category link is weak: deleting a category nulls the reference
	Category *Category `json:"category,omitempty" gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL;"`
	Genres   []Genre   `json:"genre" gorm:"many2many:title_genres;constraint:OnDelete:CASCADE;"`
}

func (Title) TableName() string {
	return "titles"
}
