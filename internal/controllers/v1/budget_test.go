package v1_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	v1 "github.com/hauskasse/backend/internal/controllers/v1"
	"github.com/hauskasse/backend/internal/models"
	"github.com/hauskasse/backend/test"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

// createTestBudget creates a test budget via the v1 API.
func createTestBudget(t *testing.T, budget v1.BudgetEditable, expectedStatus ...int) v1.BudgetResponse {
	if budget.Name == "" {
		budget.Name = uuid.New().String()
	}

	if budget.UserID == uuid.Nil {
		budget.UserID = createTestUser(t, v1.UserEditable{}).Data.ID
	}

	if budget.Amount.IsZero() {
		budget.Amount = decimal.NewFromFloat(500)
	}

	// Default to 201 Created as expected status
	if len(expectedStatus) == 0 {
		expectedStatus = append(expectedStatus, http.StatusCreated)
	}

	reqBody := []v1.BudgetEditable{budget}

	r := test.Request(t, http.MethodPost, "http://example.com/v1/budgets", reqBody)
	test.AssertHTTPStatus(t, &r, expectedStatus...)

	var br v1.BudgetCreateResponse
	test.DecodeResponse(t, &r, &br)

	return br.Data[0]
}

// TestBudgetsOptions verifies that the HTTP OPTIONS response for /budgets/{id} is correct.
func (suite *TestSuiteStandard) TestBudgetsOptions() {
	tests := []struct {
		name     string        // Name for the test
		status   int           // Expected HTTP status
		id       string        // String to use as ID. Ignored when pathFunc is non-nil
		pathFunc func() string // Function returning the path
	}{
		{
			"Does not exist",
			http.StatusNotFound,
			uuid.New().String(),
			nil,
		},
		{
			"Invalid UUID",
			http.StatusBadRequest,
			"NotParseableAsUUID",
			nil,
		},
		{
			"Success",
			http.StatusNoContent,
			"",
			func() string {
				return createTestBudget(suite.T(), v1.BudgetEditable{}).Data.Links.Self
			},
		},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			var p string
			if tt.pathFunc != nil {
				p = tt.pathFunc()
			} else {
				p = fmt.Sprintf("%s/%s", "http://example.com/v1/budgets", tt.id)
			}

			r := test.Request(t, http.MethodOptions, p, "")
			test.AssertHTTPStatus(t, &r, tt.status)

			if tt.status == http.StatusNoContent {
				assert.Equal(t, "GET, PATCH, DELETE", r.Header().Get("allow"))
			}
		})
	}
}

// TestBudgetsDatabaseError verifies that the endpoints return the appropriate
// error when the database is disconnected.
func (suite *TestSuiteStandard) TestBudgetsDatabaseError() {
	tests := []struct {
		name   string // Name of the test
		path   string // Path to send request to
		method string // HTTP method to use
		body   string // The request body
	}{
		{"GET Collection", "", http.MethodGet, ""},
		{"OPTIONS Single", fmt.Sprintf("/%s", uuid.New().String()), http.MethodOptions, ""},
		{"GET Single", fmt.Sprintf("/%s", uuid.New().String()), http.MethodGet, ""},
		{"GET Progress", fmt.Sprintf("/%s/progress", uuid.New().String()), http.MethodGet, ""},
		{"PATCH Single", fmt.Sprintf("/%s", uuid.New().String()), http.MethodPatch, ""},
		{"DELETE Single", fmt.Sprintf("/%s", uuid.New().String()), http.MethodDelete, ""},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			suite.CloseDB()

			recorder := test.Request(t, tt.method, fmt.Sprintf("http://example.com/v1/budgets%s", tt.path), tt.body)
			test.AssertHTTPStatus(t, &recorder, http.StatusInternalServerError)

			var response v1.BudgetListResponse
			test.DecodeResponse(t, &recorder, &response)
			assert.Equal(t, models.ErrGeneral.Error(), *response.Error)
		})
	}
}

func (suite *TestSuiteStandard) TestBudgetsCreate() {
	group := createTestGroup(suite.T(), v1.GroupEditable{Name: "Budget create group"})
	user := createTestUser(suite.T(), v1.UserEditable{Name: "Alice", GroupID: group.Data.ID})
	groceries := createTestCategory(suite.T(), v1.CategoryEditable{Name: "Groceries", GroupID: group.Data.ID})
	eatingOut := createTestCategory(suite.T(), v1.CategoryEditable{Name: "Eating out", GroupID: group.Data.ID})

	budget := createTestBudget(suite.T(), v1.BudgetEditable{
		Name:        "Food",
		UserID:      user.Data.ID,
		Amount:      decimal.NewFromFloat(500),
		CategoryIDs: []uuid.UUID{groceries.Data.ID, eatingOut.Data.ID},
	})

	assert.Equal(suite.T(), "Food", budget.Data.Name)
	assert.Equal(suite.T(), models.BudgetMonthly, budget.Data.Type)
	assert.ElementsMatch(suite.T(), []uuid.UUID{groceries.Data.ID, eatingOut.Data.ID}, budget.Data.CategoryIDs)
}

// TestBudgetsCreateErrors verifies the validations when creating budgets.
func (suite *TestSuiteStandard) TestBudgetsCreateErrors() {
	user := createTestUser(suite.T(), v1.UserEditable{})

	tests := []struct {
		name   string
		status int
		body   v1.BudgetEditable
		err    string
	}{
		{
			"Amount zero",
			http.StatusBadRequest,
			v1.BudgetEditable{Name: "No amount", UserID: user.Data.ID},
			models.ErrBudgetAmountNotPositive.Error(),
		},
		{
			"Invalid type",
			http.StatusBadRequest,
			v1.BudgetEditable{Name: "Weekly", UserID: user.Data.ID, Amount: decimal.NewFromFloat(100), Type: "weekly"},
			models.ErrBudgetTypeInvalid.Error(),
		},
		{
			"User does not exist",
			http.StatusNotFound,
			v1.BudgetEditable{Name: "Orphan", UserID: uuid.New(), Amount: decimal.NewFromFloat(100)},
			"there is no user matching your query",
		},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			recorder := test.Request(t, http.MethodPost, "http://example.com/v1/budgets", []v1.BudgetEditable{tt.body})
			test.AssertHTTPStatus(t, &recorder, tt.status)

			var response v1.BudgetCreateResponse
			test.DecodeResponse(t, &recorder, &response)
			assert.Equal(t, tt.err, *response.Data[0].Error)
		})
	}
}

func (suite *TestSuiteStandard) TestBudgetsGetListFilter() {
	user := createTestUser(suite.T(), v1.UserEditable{Name: "Budget filter user"})

	_ = createTestBudget(suite.T(), v1.BudgetEditable{Name: "Food", UserID: user.Data.ID})
	_ = createTestBudget(suite.T(), v1.BudgetEditable{Name: "Vacation", UserID: user.Data.ID, Type: models.BudgetAnnually})
	_ = createTestBudget(suite.T(), v1.BudgetEditable{Name: "Old budget", UserID: user.Data.ID, Archived: true})

	tests := []struct {
		name  string
		query string
		len   int
	}{
		{"User", fmt.Sprintf("user=%s", user.Data.ID), 3},
		{"User no match", fmt.Sprintf("user=%s", uuid.New()), 0},
		{"Type monthly", "type=monthly", 2},
		{"Type annually", "type=annually", 1},
		{"Archived", "archived=true", 1},
		{"Name", "name=Vacation", 1},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			recorder := test.Request(t, http.MethodGet, fmt.Sprintf("http://example.com/v1/budgets?%s", tt.query), "")
			test.AssertHTTPStatus(t, &recorder, http.StatusOK)

			var response v1.BudgetListResponse
			test.DecodeResponse(t, &recorder, &response)
			assert.Len(t, response.Data, tt.len)
		})
	}
}

// TestBudgetsUpdateCategories verifies that the category set of a budget
// can be replaced with a PATCH request.
func (suite *TestSuiteStandard) TestBudgetsUpdateCategories() {
	group := createTestGroup(suite.T(), v1.GroupEditable{Name: "Budget category group"})
	user := createTestUser(suite.T(), v1.UserEditable{Name: "Alice", GroupID: group.Data.ID})
	groceries := createTestCategory(suite.T(), v1.CategoryEditable{Name: "Groceries", GroupID: group.Data.ID})
	transport := createTestCategory(suite.T(), v1.CategoryEditable{Name: "Transport", GroupID: group.Data.ID})

	budget := createTestBudget(suite.T(), v1.BudgetEditable{
		Name:        "Everything",
		UserID:      user.Data.ID,
		CategoryIDs: []uuid.UUID{groceries.Data.ID},
	})

	recorder := test.Request(suite.T(), http.MethodPatch, budget.Data.Links.Self, map[string]any{
		"categoryIds": []uuid.UUID{transport.Data.ID},
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.BudgetResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	assert.Equal(suite.T(), []uuid.UUID{transport.Data.ID}, response.Data.CategoryIDs)
}

// TestBudgetsUpdate verifies that updates keep the old amount when the
// request does not contain one.
func (suite *TestSuiteStandard) TestBudgetsUpdate() {
	budget := createTestBudget(suite.T(), v1.BudgetEditable{Amount: decimal.NewFromFloat(300)})

	recorder := test.Request(suite.T(), http.MethodPatch, budget.Data.Links.Self, map[string]any{
		"note": "Updated note",
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.BudgetResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	assert.Equal(suite.T(), "Updated note", response.Data.Note)
	assert.True(suite.T(), response.Data.Amount.Equal(decimal.NewFromFloat(300)), response.Data.Amount)
}

// TestBudgetsProgress verifies the spending progress calculation over
// the open budget period.
func (suite *TestSuiteStandard) TestBudgetsProgress() {
	group := createTestGroup(suite.T(), v1.GroupEditable{Name: "Progress group"})
	user := createTestUser(suite.T(), v1.UserEditable{Name: "Alice", GroupID: group.Data.ID})
	account := createTestAccount(suite.T(), v1.AccountEditable{Name: "Checking", GroupID: group.Data.ID, UserIDs: []uuid.UUID{user.Data.ID}})
	groceries := createTestCategory(suite.T(), v1.CategoryEditable{Name: "Groceries", GroupID: group.Data.ID})
	other := createTestCategory(suite.T(), v1.CategoryEditable{Name: "Other", GroupID: group.Data.ID})

	_ = createTestBudgetPeriod(suite.T(), v1.BudgetPeriodEditable{
		UserID:    user.Data.ID,
		StartDate: time.Date(2023, 5, 1, 0, 0, 0, 0, time.UTC),
	})

	budget := createTestBudget(suite.T(), v1.BudgetEditable{
		Name:        "Food",
		UserID:      user.Data.ID,
		Amount:      decimal.NewFromFloat(500),
		CategoryIDs: []uuid.UUID{groceries.Data.ID},
	})

	// In the period and the category
	_ = createTestTransaction(suite.T(), v1.TransactionEditable{
		Date:       time.Date(2023, 5, 3, 12, 0, 0, 0, time.UTC),
		Amount:     decimal.NewFromFloat(120),
		UserID:     user.Data.ID,
		AccountID:  account.Data.ID,
		CategoryID: &groceries.Data.ID,
	})

	// A refund in the category reduces the spend
	_ = createTestTransaction(suite.T(), v1.TransactionEditable{
		Type:       models.TransactionIncome,
		Date:       time.Date(2023, 5, 4, 12, 0, 0, 0, time.UTC),
		Amount:     decimal.NewFromFloat(20),
		UserID:     user.Data.ID,
		AccountID:  account.Data.ID,
		CategoryID: &groceries.Data.ID,
	})

	// Different category, does not count
	_ = createTestTransaction(suite.T(), v1.TransactionEditable{
		Date:       time.Date(2023, 5, 5, 12, 0, 0, 0, time.UTC),
		Amount:     decimal.NewFromFloat(50),
		UserID:     user.Data.ID,
		AccountID:  account.Data.ID,
		CategoryID: &other.Data.ID,
	})

	// Before the period, does not count
	_ = createTestTransaction(suite.T(), v1.TransactionEditable{
		Date:       time.Date(2023, 4, 28, 12, 0, 0, 0, time.UTC),
		Amount:     decimal.NewFromFloat(300),
		UserID:     user.Data.ID,
		AccountID:  account.Data.ID,
		CategoryID: &groceries.Data.ID,
	})

	recorder := test.Request(suite.T(), http.MethodGet, budget.Data.Links.Progress, "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.BudgetProgressResponse
	test.DecodeResponse(suite.T(), &recorder, &response)

	assert.True(suite.T(), response.Data.Spent.Equal(decimal.NewFromFloat(100)), response.Data.Spent)
	assert.True(suite.T(), response.Data.Remaining.Equal(decimal.NewFromFloat(400)), response.Data.Remaining)
	assert.True(suite.T(), response.Data.Percentage.Equal(decimal.NewFromFloat(20)), response.Data.Percentage)
	assert.Equal(suite.T(), 2, response.Data.TransactionCount)
}

// TestBudgetsProgressNoPeriod verifies that the progress is zero when
// the user has no open budget period.
func (suite *TestSuiteStandard) TestBudgetsProgressNoPeriod() {
	budget := createTestBudget(suite.T(), v1.BudgetEditable{})

	recorder := test.Request(suite.T(), http.MethodGet, budget.Data.Links.Progress, "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.BudgetProgressResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	assert.True(suite.T(), response.Data.Spent.IsZero(), response.Data.Spent)
	assert.Equal(suite.T(), 0, response.Data.TransactionCount)
}

func (suite *TestSuiteStandard) TestBudgetsDelete() {
	budget := createTestBudget(suite.T(), v1.BudgetEditable{})

	recorder := test.Request(suite.T(), http.MethodDelete, budget.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNoContent)

	recorder = test.Request(suite.T(), http.MethodGet, budget.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNotFound)
}
