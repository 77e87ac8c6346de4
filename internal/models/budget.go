package models

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

// BudgetType is the recurrence of the spending cap.
type BudgetType string

const (
	BudgetMonthly  BudgetType = "monthly"
	BudgetAnnually BudgetType = "annually"
)

var budgetTypes = []BudgetType{BudgetMonthly, BudgetAnnually}

// Budget is a spending cap for a set of categories, owned by one user.
type Budget struct {
	DefaultModel
	User       User      `json:"-"`
	UserID     uuid.UUID `gorm:"uniqueIndex:budget_name_user_id"`
	Name       string    `gorm:"uniqueIndex:budget_name_user_id"`
	Note       string
	Amount     decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	Type       BudgetType
	Categories []Category `gorm:"many2many:budget_categories" json:"-"`
	Archived   bool
}

// BeforeSave defaults the type to monthly and trims whitespace from all
// strings.
func (b *Budget) BeforeSave(_ *gorm.DB) error {
	if b.Type == "" {
		b.Type = BudgetMonthly
	}

	if !slices.Contains(budgetTypes, b.Type) {
		return ErrBudgetTypeInvalid
	}

	if !b.Amount.IsPositive() {
		return ErrBudgetAmountNotPositive
	}

	b.Name = strings.TrimSpace(b.Name)
	b.Note = strings.TrimSpace(b.Note)

	return nil
}

func (b *Budget) BeforeCreate(tx *gorm.DB) error {
	_ = b.DefaultModel.BeforeCreate(tx)

	toSave := tx.Statement.Dest.(*Budget)
	return b.checkIntegrity(tx, *toSave)
}

// checkIntegrity verifies references to other resources
func (b *Budget) checkIntegrity(tx *gorm.DB, toSave Budget) error {
	return tx.First(&User{}, toSave.UserID).Error
}

// CategoryIDs returns the IDs of all categories the budget covers.
func (b Budget) CategoryIDs(db *gorm.DB) ([]uuid.UUID, error) {
	var ids []uuid.UUID

	err := db.
		Table("budget_categories").
		Where("budget_id = ?", b.ID).
		Pluck("category_id", &ids).Error
	if err != nil {
		return nil, err
	}

	return ids, nil
}

// ReplaceCategories sets the category set of the budget.
func (b *Budget) ReplaceCategories(db *gorm.DB, categoryIDs []uuid.UUID) error {
	categories := make([]Category, 0, len(categoryIDs))
	for _, id := range categoryIDs {
		var category Category
		err := db.First(&category, id).Error
		if err != nil {
			return err
		}

		categories = append(categories, category)
	}

	return db.Model(b).Association("Categories").Replace(categories)
}
