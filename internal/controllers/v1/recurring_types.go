package v1

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/hauskasse/backend/internal/models"
	hk_uuid "github.com/hauskasse/backend/internal/uuid"
	"github.com/shopspring/decimal"
)

// RecurringTransactionEditable represents all user configurable parameters
type RecurringTransactionEditable struct {
	Name       string                 `json:"name" example:"Rent" default:""`                                          // Name of the recurring transaction
	UserID     uuid.UUID              `json:"userId" example:"d3c3ea1e-567c-48ce-bb13-8ff47fbe4e15"`                   // ID of the user the template belongs to
	AccountID  uuid.UUID              `json:"accountId" example:"af892e10-7e0a-4fb8-b1bc-4b6d88401ed2"`                // ID of the affected account
	CategoryID *uuid.UUID             `json:"categoryId" example:"2649c965-7999-4873-ae16-89d5d5fa972e"`               // ID of the category
	Type       models.TransactionType `json:"type" example:"expense" default:"expense" enums:"income,expense"`         // Type of the generated transactions, transfers do not recur
	Amount     decimal.Decimal        `json:"amount" example:"950.00" minimum:"0.00000001" maximum:"999999999999.99999999"` // The amount for each occurrence

	Interval models.RecurringInterval `json:"interval" example:"monthly" default:"monthly" enums:"daily,weekly,biweekly,monthly,yearly"` // Cadence of the recurrence

	NextDate time.Time `json:"nextDate" example:"2022-08-01T00:00:00Z"` // Date of the next occurrence
	Active   bool      `json:"active" example:"true" default:"false"`   // Is the recurrence active?
}

func (editable RecurringTransactionEditable) model() models.RecurringTransaction {
	return models.RecurringTransaction{
		UserID:     editable.UserID,
		AccountID:  editable.AccountID,
		CategoryID: editable.CategoryID,
		Name:       editable.Name,
		Type:       editable.Type,
		Amount:     editable.Amount,
		Interval:   editable.Interval,
		NextDate:   editable.NextDate,
		Active:     editable.Active,
	}
}

type RecurringTransactionLinks struct {
	Self string `json:"self" example:"https://example.com/api/v1/recurring-transactions/c6f44571-47b3-44e3-94cb-8ea4bbc05a98"` // The recurring transaction itself
}

// RecurringTransaction is the representation of a RecurringTransaction in API v1.
type RecurringTransaction struct {
	models.DefaultModel
	RecurringTransactionEditable
	Links RecurringTransactionLinks `json:"links"`

	// MonthlyAmount is computed from amount and interval
	MonthlyAmount decimal.Decimal `json:"monthlyAmount" example:"950.00"` // The normalized monthly amount of the recurrence
}

// newRecurringTransaction returns the API v1 representation of the resource
func newRecurringTransaction(c *gin.Context, model models.RecurringTransaction, monthly decimal.Decimal) RecurringTransaction {
	url := c.GetString(string(models.DBContextURL))

	return RecurringTransaction{
		DefaultModel: model.DefaultModel,
		RecurringTransactionEditable: RecurringTransactionEditable{
			UserID:     model.UserID,
			AccountID:  model.AccountID,
			CategoryID: model.CategoryID,
			Name:       model.Name,
			Type:       model.Type,
			Amount:     model.Amount,
			Interval:   model.Interval,
			NextDate:   model.NextDate,
			Active:     model.Active,
		},
		MonthlyAmount: monthly,
		Links: RecurringTransactionLinks{
			Self: fmt.Sprintf("%s/v1/recurring-transactions/%s", url, model.ID),
		},
	}
}

type RecurringTransactionListResponse struct {
	Data       []RecurringTransaction `json:"data"`                                                          // List of recurring transactions
	Error      *string                `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination            `json:"pagination"`                                                    // Pagination information
}

type RecurringTransactionCreateResponse struct {
	Data  []RecurringTransactionResponse `json:"data"`                                                          // List of the created RecurringTransactions or their respective error
	Error *string                        `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (r *RecurringTransactionCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	r.Data = append(r.Data, RecurringTransactionResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type RecurringTransactionResponse struct {
	Data  *RecurringTransaction `json:"data"`                                                          // Data for the RecurringTransaction
	Error *string               `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type RecurringTransactionQueryFilter struct {
	UserID    hk_uuid.UUID             `form:"user"`                       // By ID of the user
	AccountID hk_uuid.UUID             `form:"account"`                    // By ID of the account
	Type      models.TransactionType   `form:"type"`                       // By transaction type
	Interval  models.RecurringInterval `form:"interval"`                   // By recurrence interval
	Active    bool                     `form:"active"`                     // Is the recurrence active?
	Name      string                   `form:"name" filterField:"false"`   // By name
	Search    string                   `form:"search" filterField:"false"` // By string in the name
	Offset    uint                     `form:"offset" filterField:"false"` // The offset of the first RecurringTransaction returned. Defaults to 0.
	Limit     int                      `form:"limit" filterField:"false"`  // Maximum number of RecurringTransactions to return. Defaults to 50.
}

func (f RecurringTransactionQueryFilter) model() (models.RecurringTransaction, error) {
	return models.RecurringTransaction{
		UserID:    f.UserID.UUID,
		AccountID: f.AccountID.UUID,
		Type:      f.Type,
		Interval:  f.Interval,
		Active:    f.Active,
	}, nil
}
