package models

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User represents a member of a group. Transactions, budgets and budget
// periods belong to exactly one user.
type User struct {
	DefaultModel
	Group   Group     `json:"-"`
	GroupID uuid.UUID `gorm:"uniqueIndex:user_name_group_id"`
	Name    string    `gorm:"uniqueIndex:user_name_group_id"`
}

func (u *User) BeforeSave(_ *gorm.DB) error {
	u.Name = strings.TrimSpace(u.Name)

	return nil
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	_ = u.DefaultModel.BeforeCreate(tx)

	toSave := tx.Statement.Dest.(*User)
	return u.checkIntegrity(tx, *toSave)
}

// checkIntegrity verifies references to other resources
func (u *User) checkIntegrity(tx *gorm.DB, toSave User) error {
	return tx.First(&Group{}, toSave.GroupID).Error
}

// Accounts returns all accounts the user participates in.
func (u User) Accounts(db *gorm.DB) ([]Account, error) {
	var accounts []Account

	err := db.
		Joins("JOIN account_users ON account_users.account_id = accounts.id").
		Where("account_users.user_id = ?", u.ID).
		Find(&accounts).Error
	if err != nil {
		return []Account{}, err
	}

	return accounts, nil
}

// Transactions returns all transactions of the user, ordered by date.
func (u User) Transactions(db *gorm.DB) ([]Transaction, error) {
	var transactions []Transaction

	err := db.
		Where(&Transaction{UserID: u.ID}).
		Order(DateTimeSort(db, "transactions.date") + " ASC").
		Find(&transactions).Error
	if err != nil {
		return []Transaction{}, err
	}

	return transactions, nil
}
