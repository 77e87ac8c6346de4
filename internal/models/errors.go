package models

import (
	"errors"
)

var (
	ErrGeneral          = errors.New("an error occurred on the server during your request")
	ErrResourceNotFound = errors.New("there is no")
)

// Account errors
var (
	ErrAccountNameNotUnique = errors.New("the account name must be unique for the group")
	ErrAccountTypeInvalid   = errors.New("the account type must be one of 'checking', 'savings', 'cash' or 'investment'")
)

// Category errors
var (
	ErrCategoryNameNotUnique = errors.New("the category name must be unique for the group")
)

// Transaction errors
var (
	ErrTransactionAmountNotPositive = errors.New("transaction amounts must be larger than zero")
	ErrTransactionTypeInvalid       = errors.New("the transaction type must be one of 'income', 'expense' or 'transfer'")
	ErrTransferAccountsIdentical    = errors.New("a transfer must use two different accounts")
	ErrTransferDestinationMissing   = errors.New("a transfer needs a destination account")
	ErrDestinationOnlyForTransfers  = errors.New("only transfers can have a destination account")
	ErrRecurringIntervalInvalid     = errors.New("the interval must be one of 'daily', 'weekly', 'biweekly', 'monthly' or 'yearly'")
	ErrRecurringTypeInvalid         = errors.New("recurring transactions must have the type 'income' or 'expense'")
	ErrInvestmentSharesNotPositive  = errors.New("investments must have more than zero shares")
)

// Budget errors
var (
	ErrBudgetAmountNotPositive = errors.New("budget amounts must be larger than zero")
	ErrBudgetTypeInvalid       = errors.New("the budget type must be 'monthly' or 'annually'")
)

// Budget period errors
var (
	ErrPeriodEndBeforeStart = errors.New("the end date of a budget period must not be before its start date")
	ErrPeriodAlreadyClosed  = errors.New("the budget period is already closed")
	ErrPeriodOverlap        = errors.New("there already is an open budget period for this user")
)
