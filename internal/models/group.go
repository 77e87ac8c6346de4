package models

import (
	"strings"

	"gorm.io/gorm"
)

// Group represents a household.
//
// A group is the highest level of organization in Hauskasse. Accounts and
// categories belong to the group and are shared by all its users.
type Group struct {
	DefaultModel
	Name string
	Note string
}

// BeforeSave trims whitespace from all strings.
func (g *Group) BeforeSave(_ *gorm.DB) error {
	g.Name = strings.TrimSpace(g.Name)
	g.Note = strings.TrimSpace(g.Note)

	return nil
}
