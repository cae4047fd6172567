package models

import "time"

// Group is a shared restaurant list. The creator holds permanent administrative
// rights over it; there is no ownership transfer.
type Group struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"size:255;not null"`
	CreatedBy uint   `gorm:"not null;index"`
	CreatedAt time.Time

	Creator User `gorm:"foreignKey:CreatedBy;references:ID"`
}
