package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Investment is a position of shares in a security, held in one of the
// user's accounts. The current value is calculated with quotes from the
// market data provider, it is never stored.
type Investment struct {
	DefaultModel
	User          User      `json:"-"`
	UserID        uuid.UUID
	Account       Account   `json:"-"`
	AccountID     uuid.UUID
	Symbol        string
	Shares        decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	PurchasePrice decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	PurchaseDate  time.Time
}

// BeforeSave validates the position and normalizes the symbol.
func (i *Investment) BeforeSave(_ *gorm.DB) error {
	i.Symbol = strings.ToUpper(strings.TrimSpace(i.Symbol))

	if !i.Shares.IsPositive() {
		return ErrInvestmentSharesNotPositive
	}

	if i.PurchaseDate.IsZero() {
		i.PurchaseDate = time.Now().In(time.UTC)
	} else {
		i.PurchaseDate = i.PurchaseDate.In(time.UTC)
	}

	return nil
}

func (i *Investment) BeforeCreate(tx *gorm.DB) error {
	_ = i.DefaultModel.BeforeCreate(tx)

	return i.checkIntegrity(tx)
}

// checkIntegrity verifies references to other resources
func (i *Investment) checkIntegrity(tx *gorm.DB) error {
	err := tx.First(&User{}, i.UserID).Error
	if err != nil {
		return err
	}

	return tx.First(&Account{}, i.AccountID).Error
}
