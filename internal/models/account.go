package models

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

// AccountType describes what kind of account this is.
type AccountType string

const (
	AccountTypeChecking   AccountType = "checking"
	AccountTypeSavings    AccountType = "savings"
	AccountTypeCash       AccountType = "cash"
	AccountTypeInvestment AccountType = "investment"
)

// Account represents an account of the household, e.g. a bank account.
//
// Accounts can be shared by multiple users of the group. The balance is a
// running total: it starts at InitialBalance and is updated in the same
// database transaction as every transaction write that references the
// account.
type Account struct {
	DefaultModel
	Group          Group       `json:"-"`
	GroupID        uuid.UUID   `gorm:"uniqueIndex:account_name_group_id"`
	Name           string      `gorm:"uniqueIndex:account_name_group_id"`
	Note           string
	Type           AccountType
	InitialBalance decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	Balance        decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	Archived       bool
	Users          []User `gorm:"many2many:account_users" json:"-"`
}

var accountTypes = []AccountType{AccountTypeChecking, AccountTypeSavings, AccountTypeCash, AccountTypeInvestment}

// BeforeSave defaults the type and trims whitespace from all strings.
func (a *Account) BeforeSave(_ *gorm.DB) error {
	if a.Type == "" {
		a.Type = AccountTypeChecking
	}

	a.Name = strings.TrimSpace(a.Name)
	a.Note = strings.TrimSpace(a.Note)

	return nil
}

func (a *Account) BeforeCreate(tx *gorm.DB) error {
	_ = a.DefaultModel.BeforeCreate(tx)

	toSave := tx.Statement.Dest.(*Account)
	if toSave.Type != "" && !slices.Contains(accountTypes, toSave.Type) {
		return ErrAccountTypeInvalid
	}

	// The balance of a new account is its initial balance
	a.Balance = toSave.InitialBalance

	return a.checkIntegrity(tx, *toSave)
}

// checkIntegrity verifies references to other resources
func (a *Account) checkIntegrity(tx *gorm.DB, toSave Account) error {
	return tx.First(&Group{}, toSave.GroupID).Error
}

// Transactions returns all transactions for this account,
// regardless of direction.
func (a Account) Transactions(db *gorm.DB) ([]Transaction, error) {
	var transactions []Transaction

	err := db.
		Where(db.Where(&Transaction{AccountID: a.ID}).Or("transactions.to_account_id = ?", a.ID)).
		Order(DateTimeSort(db, "transactions.date") + " ASC").
		Find(&transactions).Error
	if err != nil {
		return []Transaction{}, err
	}

	return transactions, nil
}

// ReplaceUsers sets the users sharing the account.
func (a *Account) ReplaceUsers(db *gorm.DB, userIDs []uuid.UUID) error {
	users := make([]User, 0, len(userIDs))
	for _, id := range userIDs {
		var user User
		err := db.First(&user, id).Error
		if err != nil {
			return err
		}

		users = append(users, user)
	}

	return db.Model(a).Association("Users").Replace(users)
}

// UserIDs returns the IDs of all users sharing the account.
func (a Account) UserIDs(db *gorm.DB) ([]uuid.UUID, error) {
	var ids []uuid.UUID

	err := db.
		Table("account_users").
		Where("account_id = ?", a.ID).
		Pluck("user_id", &ids).Error
	if err != nil {
		return nil, err
	}

	return ids, nil
}
