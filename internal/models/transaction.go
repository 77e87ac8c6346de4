package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

// TransactionType describes the effect a transaction has on the ledger.
type TransactionType string

const (
	TransactionIncome   TransactionType = "income"
	TransactionExpense  TransactionType = "expense"
	TransactionTransfer TransactionType = "transfer"
)

var transactionTypes = []TransactionType{TransactionIncome, TransactionExpense, TransactionTransfer}

// Transaction represents a single entry in the ledger.
//
// Expenses and income reference one account. Transfers move money from
// AccountID to ToAccountID, which must be a different account.
type Transaction struct {
	DefaultModel
	Type        TransactionType
	Date        time.Time       // Time of day is currently only used for sorting
	Amount      decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	Note        string
	User        User      `json:"-"`
	UserID      uuid.UUID
	Account     Account   `json:"-"`
	AccountID   uuid.UUID `gorm:"check:account_to_account_different,account_id != to_account_id"`
	ToAccount   *Account  `json:"-"`
	ToAccountID *uuid.UUID
	Category    *Category `json:"-"`
	CategoryID  *uuid.UUID
}

// AfterFind updates the timestamps to use UTC as
// timezone, not +0000. Yes, this is different.
//
// We already store them in UTC, but somehow reading
// them from the database returns them as +0000.
func (t *Transaction) AfterFind(tx *gorm.DB) (err error) {
	err = t.DefaultModel.AfterFind(tx)
	if err != nil {
		return err
	}

	// Enforce dates to be in UTC
	t.Date = t.Date.In(time.UTC)
	return
}

// BeforeSave
//   - sets the timezone for the Date to UTC
//   - validates the type, the amount and the transfer accounts
//   - trims whitespace from string fields
func (t *Transaction) BeforeSave(_ *gorm.DB) error {
	t.Note = strings.TrimSpace(t.Note)

	if t.Date.IsZero() {
		t.Date = time.Now().In(time.UTC)
	} else {
		t.Date = t.Date.In(time.UTC)
	}

	// Most entries in a household ledger are expenses, default to them
	if t.Type == "" {
		t.Type = TransactionExpense
	}

	if !slices.Contains(transactionTypes, t.Type) {
		return ErrTransactionTypeInvalid
	}

	if !t.Amount.IsPositive() {
		return ErrTransactionAmountNotPositive
	}

	// Ensure that IDs are nil and not pointers to nil UUIDs when they are set
	if t.CategoryID != nil && *t.CategoryID == uuid.Nil {
		t.CategoryID = nil
	}

	if t.ToAccountID != nil && *t.ToAccountID == uuid.Nil {
		t.ToAccountID = nil
	}

	if t.Type == TransactionTransfer {
		if t.ToAccountID == nil {
			return ErrTransferDestinationMissing
		}

		if *t.ToAccountID == t.AccountID {
			return ErrTransferAccountsIdentical
		}
	} else if t.ToAccountID != nil {
		return ErrDestinationOnlyForTransfers
	}

	return nil
}

func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	_ = t.DefaultModel.BeforeCreate(tx)

	return t.checkIntegrity(tx)
}

// checkIntegrity verifies references to other resources
func (t *Transaction) checkIntegrity(tx *gorm.DB) error {
	err := tx.First(&User{}, t.UserID).Error
	if err != nil {
		return err
	}

	err = tx.First(&Account{}, t.AccountID).Error
	if err != nil {
		return err
	}

	if t.ToAccountID != nil {
		err = tx.First(&Account{}, t.ToAccountID).Error
		if err != nil {
			return err
		}
	}

	if t.CategoryID != nil {
		err = tx.First(&Category{}, t.CategoryID).Error
		if err != nil {
			return err
		}
	}

	return nil
}

// AfterCreate applies the balance deltas of the transaction to the
// accounts it references.
func (t *Transaction) AfterCreate(tx *gorm.DB) error {
	return t.applyBalanceDeltas(tx, false)
}

// BeforeUpdate reverses the balance deltas of the stored transaction.
// AfterUpdate then applies the deltas of the updated one, together
// performing the reverse-then-reapply for updates.
func (t *Transaction) BeforeUpdate(tx *gorm.DB) error {
	var stored Transaction
	err := tx.Session(&gorm.Session{NewDB: true}).First(&stored, t.ID).Error
	if err != nil {
		return err
	}

	return stored.applyBalanceDeltas(tx, true)
}

func (t *Transaction) AfterUpdate(tx *gorm.DB) error {
	var stored Transaction
	err := tx.Session(&gorm.Session{NewDB: true}).First(&stored, t.ID).Error
	if err != nil {
		return err
	}

	return stored.applyBalanceDeltas(tx, false)
}

// AfterDelete reverses the balance deltas so that deleted transactions
// no longer affect account balances.
func (t *Transaction) AfterDelete(tx *gorm.DB) error {
	return t.applyBalanceDeltas(tx, true)
}

// applyBalanceDeltas updates the running balance of all accounts the
// transaction touches. With reverse set, the deltas are applied with
// inverted sign.
func (t Transaction) applyBalanceDeltas(tx *gorm.DB, reverse bool) error {
	amount := t.Amount
	if reverse {
		amount = amount.Neg()
	}

	switch t.Type {
	case TransactionIncome:
		return addToBalance(tx, t.AccountID, amount)
	case TransactionExpense:
		return addToBalance(tx, t.AccountID, amount.Neg())
	case TransactionTransfer:
		err := addToBalance(tx, t.AccountID, amount.Neg())
		if err != nil {
			return err
		}

		return addToBalance(tx, *t.ToAccountID, amount)
	}

	return nil
}

func addToBalance(tx *gorm.DB, id uuid.UUID, delta decimal.Decimal) error {
	var account Account

	db := tx.Session(&gorm.Session{NewDB: true})

	err := db.First(&account, id).Error
	if err != nil {
		return err
	}

	return db.Model(&account).Update("balance", account.Balance.Add(delta)).Error
}
