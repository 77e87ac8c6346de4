package models

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Category groups transactions, e.g. "Groceries" or "Rent".
type Category struct {
	DefaultModel
	Group   Group     `json:"-"`
	GroupID uuid.UUID `gorm:"uniqueIndex:category_name_group_id"`
	Name    string    `gorm:"uniqueIndex:category_name_group_id"`
	Note    string
	Archived bool
}

func (c *Category) BeforeSave(_ *gorm.DB) error {
	c.Name = strings.TrimSpace(c.Name)
	c.Note = strings.TrimSpace(c.Note)

	return nil
}

func (c *Category) BeforeCreate(tx *gorm.DB) error {
	_ = c.DefaultModel.BeforeCreate(tx)

	toSave := tx.Statement.Dest.(*Category)
	return c.checkIntegrity(tx, *toSave)
}

// checkIntegrity verifies references to other resources
func (c *Category) checkIntegrity(tx *gorm.DB, toSave Category) error {
	return tx.First(&Group{}, toSave.GroupID).Error
}
