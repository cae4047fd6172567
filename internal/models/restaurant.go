package models

import "time"

// Restaurant is a tried/wishlist entry. GroupID nil means a personal
// restaurant governed by ownership and friend visibility; non-nil means a
// group-scoped restaurant governed by group membership rules instead.
type Restaurant struct {
	ID         uint    `gorm:"primaryKey"`
	OwnerID    uint    `gorm:"not null;index"`
	GroupID    *uint   `gorm:"index"`
	Name       string  `gorm:"size:255;not null"`
	Cuisine    string  `gorm:"size:255;not null"`
	Location   string  `gorm:"size:255;not null"`
	Rating     float64 `gorm:"not null;default:0"`
	IsWishlist bool    `gorm:"not null;default:false"`
	IsHidden   bool    `gorm:"not null;default:false"`
	CreatedAt  time.Time

	Owner User   `gorm:"foreignKey:OwnerID;references:ID"`
	Group *Group `gorm:"foreignKey:GroupID;references:ID;constraint:OnDelete:CASCADE;"`
}
