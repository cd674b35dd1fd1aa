package category

import "time"

// Category is the single representation of a ticket category. Legacy
// free-text values are backfilled into rows at seed time so nothing
// downstream branches on shape.
type Category struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	NameLower string    `gorm:"size:255;uniqueIndex;not null" json:"-"`
	Active    bool      `gorm:"default:true" json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CreateCategoryInput struct {
	Name string `json:"name" binding:"required"`
}
