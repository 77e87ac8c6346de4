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

// TransactionEditable represents all user configurable parameters
type TransactionEditable struct {
	Type models.TransactionType `json:"type" example:"expense" default:"expense" enums:"income,expense,transfer"` // Type of the transaction

	Date time.Time `json:"date" example:"1815-12-10T18:43:00.271152Z"` // Date of the transaction. Time is currently only used for sorting

	// The maximum value is "999999999999.99999999", swagger unfortunately rounds this.
	Amount decimal.Decimal `json:"amount" example:"14.03" minimum:"0.00000001" maximum:"999999999999.99999999" multipleOf:"0.00000001"` // The amount for the transaction

	Note        string     `json:"note" example:"Lunch" default:""`                                // A note
	UserID      uuid.UUID  `json:"userId" example:"d3c3ea1e-567c-48ce-bb13-8ff47fbe4e15"`          // ID of the user who entered the transaction
	AccountID   uuid.UUID  `json:"accountId" example:"af892e10-7e0a-4fb8-b1bc-4b6d88401ed2"`       // ID of the affected account
	ToAccountID *uuid.UUID `json:"toAccountId" example:"8e16b456-a719-48ce-9fec-e115cfa7cbcc"`     // ID of the destination account, only set for transfers
	CategoryID  *uuid.UUID `json:"categoryId" example:"2649c965-7999-4873-ae16-89d5d5fa972e"`      // ID of the category
}

// model returns the database resource for the API representation of the editable fields
func (editable TransactionEditable) model() models.Transaction {
	return models.Transaction{
		Type:        editable.Type,
		Date:        editable.Date,
		Amount:      editable.Amount,
		Note:        editable.Note,
		UserID:      editable.UserID,
		AccountID:   editable.AccountID,
		ToAccountID: editable.ToAccountID,
		CategoryID:  editable.CategoryID,
	}
}

type TransactionLinks struct {
	Self string `json:"self" example:"https://example.com/api/v1/transactions/d430d7c3-d14c-4712-9336-ee56965a6673"` // The transaction itself
}

// Transaction is the representation of a Transaction in API v1.
type Transaction struct {
	models.DefaultModel
	TransactionEditable
	Links TransactionLinks `json:"links"`
}

// newTransaction returns the API v1 representation of the resource
func newTransaction(c *gin.Context, model models.Transaction) Transaction {
	url := c.GetString(string(models.DBContextURL))

	return Transaction{
		DefaultModel: model.DefaultModel,
		TransactionEditable: TransactionEditable{
			Type:        model.Type,
			Date:        model.Date,
			Amount:      model.Amount,
			Note:        model.Note,
			UserID:      model.UserID,
			AccountID:   model.AccountID,
			ToAccountID: model.ToAccountID,
			CategoryID:  model.CategoryID,
		},
		Links: TransactionLinks{
			Self: fmt.Sprintf("%s/v1/transactions/%s", url, model.ID),
		},
	}
}

type TransactionListResponse struct {
	Data       []Transaction `json:"data"`                                                          // List of transactions
	Error      *string       `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination   `json:"pagination"`                                                    // Pagination information
}

type TransactionCreateResponse struct {
	Error *string               `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Data  []TransactionResponse `json:"data"`                                                          // List of created Transactions
}

func (t *TransactionCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	t.Data = append(t.Data, TransactionResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type TransactionResponse struct {
	Error *string      `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred for this transaction
	Data  *Transaction `json:"data"`                                                          // The Transaction data, if creation was successful
}

type TransactionQueryFilter struct {
	Date              time.Time              `form:"date" filterField:"false"`              // Exact date. Time is ignored.
	FromDate          time.Time              `form:"fromDate" filterField:"false"`          // From this date. Time is ignored.
	UntilDate         time.Time              `form:"untilDate" filterField:"false"`         // Until this date. Time is ignored.
	Amount            decimal.Decimal        `form:"amount"`                                // Exact amount
	AmountLessOrEqual decimal.Decimal        `form:"amountLessOrEqual" filterField:"false"` // Amount less than or equal to this
	AmountMoreOrEqual decimal.Decimal        `form:"amountMoreOrEqual" filterField:"false"` // Amount more than or equal to this
	Month             string                 `form:"month" filterField:"false"`             // Month of the transaction, as YYYY-MM
	Note              string                 `form:"note" filterField:"false"`              // Note contains this string
	Type              models.TransactionType `form:"type"`                                  // Type of the transaction
	UserID            hk_uuid.UUID           `form:"user"`                                  // ID of the user
	AccountID         hk_uuid.UUID           `form:"account" filterField:"false"`           // ID of either the account or the transfer destination
	CategoryID        hk_uuid.UUID           `form:"category"`                              // ID of the category
	Offset            uint                   `form:"offset" filterField:"false"`            // The offset of the first Transaction returned. Defaults to 0.
	Limit             int                    `form:"limit" filterField:"false"`             // Maximum number of transactions to return. Defaults to 50.
}

func (f TransactionQueryFilter) model() (models.Transaction, error) {
	if f.Type != "" && f.Type != models.TransactionIncome && f.Type != models.TransactionExpense && f.Type != models.TransactionTransfer {
		return models.Transaction{}, errTransactionTypeInvalid
	}

	// If the categoryID is nil, use an actual nil, not uuid.Nil
	var cID *uuid.UUID
	if f.CategoryID != hk_uuid.Nil {
		cID = &f.CategoryID.UUID
	}

	// This does not set the string and date fields since they are
	// handled in the controller function
	return models.Transaction{
		Type:       f.Type,
		Amount:     f.Amount,
		UserID:     f.UserID.UUID,
		CategoryID: cID,
	}, nil
}
