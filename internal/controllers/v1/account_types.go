package v1

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/hauskasse/backend/internal/models"
	hk_uuid "github.com/hauskasse/backend/internal/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// AccountEditable represents all user configurable parameters
type AccountEditable struct {
	Name    string             `json:"name" example:"Joint checking" default:""`                                // Name of the account
	GroupID uuid.UUID          `json:"groupId" example:"9e364855-806a-4ed1-b1fb-5b2357bd9d4d"`                  // ID of the group the account belongs to
	Note    string             `json:"note" example:"Main account for shared expenses" default:""`              // Notes about the account
	Type    models.AccountType `json:"type" example:"checking" default:"checking" enums:"checking,savings,cash,investment"` // Type of the account

	// The initial balance is applied before any transactions, swagger unfortunately rounds the maximum.
	InitialBalance decimal.Decimal `json:"initialBalance" example:"1200.00" maximum:"999999999999.99999999"` // Balance of the account before any transactions

	Archived bool        `json:"archived" example:"true" default:"false"`  // Is the account archived?
	UserIDs  []uuid.UUID `json:"userIds"`                                  // IDs of the users sharing the account
}

func (editable AccountEditable) model() models.Account {
	return models.Account{
		GroupID:        editable.GroupID,
		Name:           editable.Name,
		Note:           editable.Note,
		Type:           editable.Type,
		InitialBalance: editable.InitialBalance,
		Archived:       editable.Archived,
	}
}

type AccountLinks struct {
	Self         string `json:"self" example:"https://example.com/api/v1/accounts/af892e10-7e0a-4fb8-b1bc-4b6d88401ed2"`                   // The account itself
	Transactions string `json:"transactions" example:"https://example.com/api/v1/transactions?account=af892e10-7e0a-4fb8-b1bc-4b6d88401ed2"` // Transactions referencing the account
}

// Account is the representation of an Account in API v1.
type Account struct {
	models.DefaultModel
	AccountEditable
	Links AccountLinks `json:"links"`

	// Balance is computed from the initial balance and all transactions
	Balance decimal.Decimal `json:"balance" example:"871.12"` // Current balance of the account
}

// newAccount returns the API v1 representation of the resource
func newAccount(c *gin.Context, db *gorm.DB, model models.Account) (Account, error) {
	url := c.GetString(string(models.DBContextURL))

	userIDs, err := model.UserIDs(db)
	if err != nil {
		return Account{}, err
	}

	return Account{
		DefaultModel: model.DefaultModel,
		AccountEditable: AccountEditable{
			GroupID:        model.GroupID,
			Name:           model.Name,
			Note:           model.Note,
			Type:           model.Type,
			InitialBalance: model.InitialBalance,
			Archived:       model.Archived,
			UserIDs:        userIDs,
		},
		Balance: model.Balance,
		Links: AccountLinks{
			Self:         fmt.Sprintf("%s/v1/accounts/%s", url, model.ID),
			Transactions: fmt.Sprintf("%s/v1/transactions?account=%s", url, model.ID),
		},
	}, nil
}

type AccountListResponse struct {
	Data       []Account   `json:"data"`                                                          // List of accounts
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type AccountCreateResponse struct {
	Data  []AccountResponse `json:"data"`                                                          // List of the created Accounts or their respective error
	Error *string           `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (a *AccountCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	a.Data = append(a.Data, AccountResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type AccountResponse struct {
	Data  *Account `json:"data"`                                                          // Data for the Account
	Error *string  `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type AccountQueryFilter struct {
	GroupID  hk_uuid.UUID       `form:"group"`                      // By ID of the Group
	Name     string             `form:"name" filterField:"false"`   // By name
	Note     string             `form:"note" filterField:"false"`   // By note
	Type     models.AccountType `form:"type"`                       // By type
	Archived bool               `form:"archived"`                   // Is the Account archived?
	User     hk_uuid.UUID       `form:"user" filterField:"false"`   // By ID of a user sharing the account
	Search   string             `form:"search" filterField:"false"` // By string in name or note
	Offset   uint               `form:"offset" filterField:"false"` // The offset of the first Account returned. Defaults to 0.
	Limit    int                `form:"limit" filterField:"false"`  // Maximum number of Accounts to return. Defaults to 50.
}

func (f AccountQueryFilter) model() (models.Account, error) {
	return models.Account{
		GroupID:  f.GroupID.UUID,
		Type:     f.Type,
		Archived: f.Archived,
	}, nil
}
