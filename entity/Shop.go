package entity

import (
	"gorm.io/gorm"
)

type Shop struct {
	gorm.Model
	Name        string `gorm:"not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	Address     string `json:"address"`
	Image       string `gorm:"type:text" json:"image"`

	// one shop per owner
	OwnerID uint `gorm:"uniqueIndex;not null" json:"ownerId"`
	Owner   User `gorm:"foreignKey:OwnerID" json:"-"`

	MenuItems []MenuItem `json:"-"`
}
