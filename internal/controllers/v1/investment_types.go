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

// InvestmentEditable represents all user configurable parameters
type InvestmentEditable struct {
	UserID    uuid.UUID `json:"userId" example:"d3c3ea1e-567c-48ce-bb13-8ff47fbe4e15"`    // ID of the user holding the position
	AccountID uuid.UUID `json:"accountId" example:"af892e10-7e0a-4fb8-b1bc-4b6d88401ed2"` // ID of the account holding the position
	Symbol    string    `json:"symbol" example:"ACME" default:""`                          // Ticker symbol, stored uppercase

	Shares        decimal.Decimal `json:"shares" example:"2.5" minimum:"0.00000001"`     // Number of shares held
	PurchasePrice decimal.Decimal `json:"purchasePrice" example:"104.32"`                // Price per share at purchase
	PurchaseDate  time.Time       `json:"purchaseDate" example:"2022-03-17T00:00:00Z"`   // Date of the purchase
}

func (editable InvestmentEditable) model() models.Investment {
	return models.Investment{
		UserID:        editable.UserID,
		AccountID:     editable.AccountID,
		Symbol:        editable.Symbol,
		Shares:        editable.Shares,
		PurchasePrice: editable.PurchasePrice,
		PurchaseDate:  editable.PurchaseDate,
	}
}

type InvestmentLinks struct {
	Self string `json:"self" example:"https://example.com/api/v1/investments/ec6a9b62-b350-4a27-b853-d09cf1d668f3"` // The investment itself
}

// Investment is the representation of an Investment in API v1.
type Investment struct {
	models.DefaultModel
	InvestmentEditable
	Links InvestmentLinks `json:"links"`
}

// newInvestment returns the API v1 representation of the resource
func newInvestment(c *gin.Context, model models.Investment) Investment {
	url := c.GetString(string(models.DBContextURL))

	return Investment{
		DefaultModel: model.DefaultModel,
		InvestmentEditable: InvestmentEditable{
			UserID:        model.UserID,
			AccountID:     model.AccountID,
			Symbol:        model.Symbol,
			Shares:        model.Shares,
			PurchasePrice: model.PurchasePrice,
			PurchaseDate:  model.PurchaseDate,
		},
		Links: InvestmentLinks{
			Self: fmt.Sprintf("%s/v1/investments/%s", url, model.ID),
		},
	}
}

type InvestmentListResponse struct {
	Data       []Investment `json:"data"`                                                          // List of investments
	Error      *string      `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination  `json:"pagination"`                                                    // Pagination information
}

type InvestmentCreateResponse struct {
	Data  []InvestmentResponse `json:"data"`                                                          // List of the created Investments or their respective error
	Error *string              `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (i *InvestmentCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	i.Data = append(i.Data, InvestmentResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type InvestmentResponse struct {
	Data  *Investment `json:"data"`                                                          // Data for the Investment
	Error *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

// InvestmentPosition is one position in a valuation.
type InvestmentPosition struct {
	Investment
	LastClose    decimal.Decimal `json:"lastClose" example:"131.72"`     // Last closing price per share, zero when unavailable
	CurrentValue decimal.Decimal `json:"currentValue" example:"329.30"`  // Shares times the last closing price
	GainLoss     decimal.Decimal `json:"gainLoss" example:"68.50"`       // Current value minus the purchase value
}

// InvestmentValuation is the valuation of all positions of a user.
type InvestmentValuation struct {
	Positions     []InvestmentPosition `json:"positions"`                          // The individual positions
	PurchaseValue decimal.Decimal      `json:"purchaseValue" example:"1020.10"`    // Sum of shares times purchase price
	CurrentValue  decimal.Decimal      `json:"currentValue" example:"1104.84"`     // Sum of shares times last closing price
	GainLoss      decimal.Decimal      `json:"gainLoss" example:"84.74"`           // Current value minus purchase value
}

type InvestmentValuationResponse struct {
	Data  *InvestmentValuation `json:"data"`                                                          // The valuation data
	Error *string              `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type InvestmentQueryFilter struct {
	UserID    hk_uuid.UUID `form:"user"`                       // By ID of the user
	AccountID hk_uuid.UUID `form:"account"`                    // By ID of the account
	Symbol    string       `form:"symbol"`                     // By ticker symbol
	Offset    uint         `form:"offset" filterField:"false"` // The offset of the first Investment returned. Defaults to 0.
	Limit     int          `form:"limit" filterField:"false"`  // Maximum number of Investments to return. Defaults to 50.
}

func (f InvestmentQueryFilter) model() (models.Investment, error) {
	return models.Investment{
		UserID:    f.UserID.UUID,
		AccountID: f.AccountID.UUID,
		Symbol:    f.Symbol,
	}, nil
}
