package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/hauskasse/backend/internal/finance"
	"github.com/hauskasse/backend/internal/httputil"
	"github.com/hauskasse/backend/internal/models"
	hk_uuid "github.com/hauskasse/backend/internal/uuid"
	"github.com/shopspring/decimal"
)

// RegisterOverviewRoutes registers the routes for the overview with
// the RouterGroup that is passed.
func RegisterOverviewRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", OptionsOverview)
	r.GET("", GetOverview)
}

// Overview contains the financial metrics of one user.
type Overview struct {
	TotalEarned      decimal.Decimal         `json:"totalEarned" example:"3500.00"`     // Income plus transfers into the user's accounts
	TotalSpent       decimal.Decimal         `json:"totalSpent" example:"2134.99"`      // Expenses plus transfers out of the user's accounts
	TotalTransferred decimal.Decimal         `json:"totalTransferred" example:"600.00"` // Transfers between the user's own accounts
	Balance          decimal.Decimal         `json:"balance" example:"1365.01"`         // Sum of the balances of the user's accounts
	MonthlyRecurring decimal.Decimal         `json:"monthlyRecurring" example:"-950.00"` // Net monthly amount of all active recurring transactions
	Categories       []CategorySpend         `json:"categories"`                        // Per-category spending in the open budget period
	Years            []YearSummary           `json:"years"`                             // Earned and spent per calendar year
	Periods          []BudgetPeriodSummary   `json:"periods"`                           // Balance development over the budget periods
}

// CategorySpend is the spending in a single category.
type CategorySpend struct {
	CategoryID hk_uuid.UUID    `json:"categoryId"`                  // ID of the category
	Spent      decimal.Decimal `json:"spent" example:"120.00"`      // Money spent in the category
	Received   decimal.Decimal `json:"received" example:"20.00"`    // Money received in the category
	Net        decimal.Decimal `json:"net" example:"100.00"`        // Spent minus received
	Percentage decimal.Decimal `json:"percentage" example:"25"`     // Share of the total positive net spending
}

// YearSummary is the earned and spent total of one calendar year.
type YearSummary struct {
	Year   int             `json:"year" example:"2022"`       // The calendar year
	Earned decimal.Decimal `json:"earned" example:"42000.00"` // Money earned in the year
	Spent  decimal.Decimal `json:"spent" example:"38000.00"`  // Money spent in the year
}

// BudgetPeriodSummary is the balance development over one budget period.
type BudgetPeriodSummary struct {
	Period       BudgetPeriod    `json:"period"`                        // The budget period
	Income       decimal.Decimal `json:"income" example:"3500.00"`      // Money earned in the period
	Spent        decimal.Decimal `json:"spent" example:"2134.99"`       // Money spent in the period
	StartBalance decimal.Decimal `json:"startBalance" example:"800.00"` // Balance at the start of the period
	EndBalance   decimal.Decimal `json:"endBalance" example:"2165.01"`  // Balance at the end of the period
}

type OverviewResponse struct {
	Data  *Overview `json:"data"`                                                          // The overview data
	Error *string   `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Overview
// @Success		204
// @Router			/v1/overview [options]
func OptionsOverview(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Get overview
// @Description	Returns the financial overview of a user: earned, spent and transferred totals, category spending in the open budget period, annual breakdown and the balance development over the budget periods.
// @Tags			Overview
// @Produce		json
// @Success		200		{object}	OverviewResponse
// @Failure		400		{object}	OverviewResponse
// @Failure		404		{object}	OverviewResponse
// @Failure		500		{object}	OverviewResponse
// @Param			user	query		string	true	"ID of the user"
// @Router			/v1/overview [get]
func GetOverview(c *gin.Context) {
	var query struct {
		UserID hk_uuid.UUID `form:"user"`
	}
	if err := c.Bind(&query); err != nil {
		s := httputil.ErrInvalidUUID.Error()
		c.JSON(http.StatusBadRequest, OverviewResponse{
			Error: &s,
		})
		return
	}

	if query.UserID == hk_uuid.Nil {
		s := errUserParameter.Error()
		c.JSON(http.StatusBadRequest, OverviewResponse{
			Error: &s,
		})
		return
	}

	var user models.User
	err := models.DB.First(&user, query.UserID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), OverviewResponse{
			Error: &s,
		})
		return
	}

	accounts, err := user.Accounts(models.DB)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), OverviewResponse{
			Error: &s,
		})
		return
	}

	accountIDs := make([]uuid.UUID, 0, len(accounts))
	balance := decimal.Zero
	for _, account := range accounts {
		accountIDs = append(accountIDs, account.ID)
		balance = balance.Add(account.Balance)
	}
	accountSet := finance.AccountSet(accountIDs)

	// All transactions touching one of the user's accounts
	var transactions []models.Transaction
	if len(accountIDs) > 0 {
		err = models.DB.
			Where("transactions.account_id IN ? OR transactions.to_account_id IN ?", accountIDs, accountIDs).
			Order(models.DateTimeSort(models.DB, "transactions.date") + " ASC").
			Find(&transactions).Error
		if err != nil {
			s := err.Error()
			c.JSON(status(err), OverviewResponse{
				Error: &s,
			})
			return
		}
	}

	totals := finance.OverviewFor(transactions, accountSet)

	overview := Overview{
		TotalEarned:      totals.TotalEarned,
		TotalSpent:       totals.TotalSpent,
		TotalTransferred: totals.TotalTransferred,
		Balance:          balance,
		Categories:       make([]CategorySpend, 0),
		Years:            make([]YearSummary, 0),
		Periods:          make([]BudgetPeriodSummary, 0),
	}

	// Category spending is calculated over the open budget period
	var periodStart, periodEnd *time.Time
	activePeriod, err := models.ActivePeriod(models.DB, user.ID)
	if err == nil {
		periodStart = &activePeriod.StartDate
		periodEnd = activePeriod.EndDate
	}

	for _, spend := range finance.CategorySpending(transactions, periodStart, periodEnd) {
		overview.Categories = append(overview.Categories, CategorySpend{
			CategoryID: hk_uuid.UUID{UUID: spend.CategoryID},
			Spent:      spend.Spent,
			Received:   spend.Received,
			Net:        spend.Net,
			Percentage: spend.Percentage,
		})
	}

	for _, year := range finance.AnnualBreakdown(transactions, accountSet) {
		overview.Years = append(overview.Years, YearSummary{
			Year:   year.Year,
			Earned: year.Earned,
			Spent:  year.Spent,
		})
	}

	// Balance development over the budget periods, oldest first
	periods, err := models.Periods(models.DB, user.ID)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), OverviewResponse{
			Error: &s,
		})
		return
	}

	if len(periods) > 0 {
		startBalance := finance.BalanceAt(balance, transactions, accountSet, periods[0].StartDate)

		for _, summary := range finance.AccumulatePeriods(periods, transactions, accountSet, startBalance) {
			overview.Periods = append(overview.Periods, BudgetPeriodSummary{
				Period:       newBudgetPeriod(c, summary.Period),
				Income:       summary.Income,
				Spent:        summary.Spent,
				StartBalance: summary.StartBalance,
				EndBalance:   summary.EndBalance,
			})
		}
	}

	// Active recurring transactions, normalized to one month
	var recurring []models.RecurringTransaction
	err = models.DB.Where(&models.RecurringTransaction{UserID: user.ID, Active: true}).Find(&recurring).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), OverviewResponse{
			Error: &s,
		})
		return
	}
	overview.MonthlyRecurring = finance.MonthlyRecurringTotal(recurring)

	c.JSON(http.StatusOK, OverviewResponse{Data: &overview})
}
