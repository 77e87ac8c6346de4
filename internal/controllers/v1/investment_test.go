package v1_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	v1 "github.com/hauskasse/backend/internal/controllers/v1"
	"github.com/hauskasse/backend/internal/models"
	"github.com/hauskasse/backend/test"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

// createTestInvestment creates a test investment via the v1 API.
func createTestInvestment(t *testing.T, investment v1.InvestmentEditable, expectedStatus ...int) v1.InvestmentResponse {
	if investment.Symbol == "" {
		investment.Symbol = "ACME"
	}

	if investment.UserID == uuid.Nil {
		investment.UserID = createTestUser(t, v1.UserEditable{}).Data.ID
	}

	if investment.AccountID == uuid.Nil {
		investment.AccountID = createTestAccount(t, v1.AccountEditable{Type: models.AccountTypeInvestment}).Data.ID
	}

	if investment.Shares.IsZero() {
		investment.Shares = decimal.NewFromFloat(1)
	}

	if investment.PurchasePrice.IsZero() {
		investment.PurchasePrice = decimal.NewFromFloat(100)
	}

	// Default to 201 Created as expected status
	if len(expectedStatus) == 0 {
		expectedStatus = append(expectedStatus, http.StatusCreated)
	}

	reqBody := []v1.InvestmentEditable{investment}

	r := test.Request(t, http.MethodPost, "http://example.com/v1/investments", reqBody)
	test.AssertHTTPStatus(t, &r, expectedStatus...)

	var ir v1.InvestmentCreateResponse
	test.DecodeResponse(t, &r, &ir)

	return ir.Data[0]
}

// TestInvestmentsOptions verifies that the HTTP OPTIONS response for /investments/{id} is correct.
func (suite *TestSuiteStandard) TestInvestmentsOptions() {
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
				return createTestInvestment(suite.T(), v1.InvestmentEditable{}).Data.Links.Self
			},
		},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			var p string
			if tt.pathFunc != nil {
				p = tt.pathFunc()
			} else {
				p = fmt.Sprintf("%s/%s", "http://example.com/v1/investments", tt.id)
			}

			r := test.Request(t, http.MethodOptions, p, "")
			test.AssertHTTPStatus(t, &r, tt.status)

			if tt.status == http.StatusNoContent {
				assert.Equal(t, "GET, PATCH, DELETE", r.Header().Get("allow"))
			}
		})
	}
}

// TestInvestmentsDatabaseError verifies that the endpoints return the
// appropriate error when the database is disconnected.
func (suite *TestSuiteStandard) TestInvestmentsDatabaseError() {
	tests := []struct {
		name   string // Name of the test
		path   string // Path to send request to
		method string // HTTP method to use
		body   string // The request body
	}{
		{"GET Collection", "", http.MethodGet, ""},
		{"OPTIONS Single", fmt.Sprintf("/%s", uuid.New().String()), http.MethodOptions, ""},
		{"GET Single", fmt.Sprintf("/%s", uuid.New().String()), http.MethodGet, ""},
		{"GET Valuation", fmt.Sprintf("/valuation?user=%s", uuid.New().String()), http.MethodGet, ""},
		{"PATCH Single", fmt.Sprintf("/%s", uuid.New().String()), http.MethodPatch, ""},
		{"DELETE Single", fmt.Sprintf("/%s", uuid.New().String()), http.MethodDelete, ""},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			suite.CloseDB()

			recorder := test.Request(t, tt.method, fmt.Sprintf("http://example.com/v1/investments%s", tt.path), tt.body)
			test.AssertHTTPStatus(t, &recorder, http.StatusInternalServerError)

			var response v1.InvestmentListResponse
			test.DecodeResponse(t, &recorder, &response)
			assert.Equal(t, models.ErrGeneral.Error(), *response.Error)
		})
	}
}

// TestInvestmentsCreate verifies that the symbol is normalized to upper
// case on creation.
func (suite *TestSuiteStandard) TestInvestmentsCreate() {
	investment := createTestInvestment(suite.T(), v1.InvestmentEditable{
		Symbol:        " vwce.de ",
		Shares:        decimal.NewFromFloat(2.5),
		PurchasePrice: decimal.NewFromFloat(104.32),
		PurchaseDate:  time.Date(2022, 3, 17, 0, 0, 0, 0, time.UTC),
	})

	assert.Equal(suite.T(), "VWCE.DE", investment.Data.Symbol)
	assert.True(suite.T(), investment.Data.Shares.Equal(decimal.NewFromFloat(2.5)), investment.Data.Shares)
}

// TestInvestmentsCreateErrors verifies the validations when creating
// investments.
func (suite *TestSuiteStandard) TestInvestmentsCreateErrors() {
	user := createTestUser(suite.T(), v1.UserEditable{})
	account := createTestAccount(suite.T(), v1.AccountEditable{Type: models.AccountTypeInvestment})

	recorder := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/investments", []v1.InvestmentEditable{
		{Symbol: "ACME", UserID: user.Data.ID, AccountID: account.Data.ID, PurchasePrice: decimal.NewFromFloat(10)},
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)

	var response v1.InvestmentCreateResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	assert.Equal(suite.T(), models.ErrInvestmentSharesNotPositive.Error(), *response.Data[0].Error)
}

func (suite *TestSuiteStandard) TestInvestmentsGetListFilter() {
	user := createTestUser(suite.T(), v1.UserEditable{})
	account := createTestAccount(suite.T(), v1.AccountEditable{Type: models.AccountTypeInvestment})

	_ = createTestInvestment(suite.T(), v1.InvestmentEditable{Symbol: "ACME", UserID: user.Data.ID, AccountID: account.Data.ID})
	_ = createTestInvestment(suite.T(), v1.InvestmentEditable{Symbol: "ACME", UserID: user.Data.ID, AccountID: account.Data.ID})
	_ = createTestInvestment(suite.T(), v1.InvestmentEditable{Symbol: "GLOBEX", UserID: user.Data.ID, AccountID: account.Data.ID})

	tests := []struct {
		name  string
		query string
		len   int
	}{
		{"User", fmt.Sprintf("user=%s", user.Data.ID), 3},
		{"Account", fmt.Sprintf("account=%s", account.Data.ID), 3},
		{"Symbol", "symbol=ACME", 2},
		{"Symbol no match", "symbol=UNKNOWN", 0},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			recorder := test.Request(t, http.MethodGet, fmt.Sprintf("http://example.com/v1/investments?%s", tt.query), "")
			test.AssertHTTPStatus(t, &recorder, http.StatusOK)

			var response v1.InvestmentListResponse
			test.DecodeResponse(t, &recorder, &response)
			assert.Len(t, response.Data, tt.len)
		})
	}
}

// TestInvestmentsValuation verifies the valuation of all positions of a
// user with prices from the market data provider.
func (suite *TestSuiteStandard) TestInvestmentsValuation() {
	prices := map[string]string{
		"ACME":   "120.00",
		"GLOBEX": "20.00",
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		symbol := r.URL.Query().Get("symbol")

		price, ok := prices[symbol]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"symbol":%q,"close":%q}`, symbol, price)
	}))
	defer server.Close()

	suite.T().Setenv("QUOTES_URL", server.URL)

	user := createTestUser(suite.T(), v1.UserEditable{})
	account := createTestAccount(suite.T(), v1.AccountEditable{Type: models.AccountTypeInvestment})

	// 2 shares bought at 100, now worth 120 each
	_ = createTestInvestment(suite.T(), v1.InvestmentEditable{
		Symbol:        "ACME",
		UserID:        user.Data.ID,
		AccountID:     account.Data.ID,
		Shares:        decimal.NewFromFloat(2),
		PurchasePrice: decimal.NewFromFloat(100),
	})

	// 10 shares bought at 25, now worth 20 each
	_ = createTestInvestment(suite.T(), v1.InvestmentEditable{
		Symbol:        "GLOBEX",
		UserID:        user.Data.ID,
		AccountID:     account.Data.ID,
		Shares:        decimal.NewFromFloat(10),
		PurchasePrice: decimal.NewFromFloat(25),
	})

	recorder := test.Request(suite.T(), http.MethodGet, fmt.Sprintf("http://example.com/v1/investments/valuation?user=%s", user.Data.ID), "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.InvestmentValuationResponse
	test.DecodeResponse(suite.T(), &recorder, &response)

	assert.Len(suite.T(), response.Data.Positions, 2)
	assert.True(suite.T(), response.Data.PurchaseValue.Equal(decimal.NewFromFloat(450)), response.Data.PurchaseValue)
	assert.True(suite.T(), response.Data.CurrentValue.Equal(decimal.NewFromFloat(440)), response.Data.CurrentValue)
	assert.True(suite.T(), response.Data.GainLoss.Equal(decimal.NewFromFloat(-10)), response.Data.GainLoss)

	// Positions are sorted by symbol
	acme := response.Data.Positions[0]
	assert.Equal(suite.T(), "ACME", acme.Symbol)
	assert.True(suite.T(), acme.LastClose.Equal(decimal.NewFromFloat(120)), acme.LastClose)
	assert.True(suite.T(), acme.CurrentValue.Equal(decimal.NewFromFloat(240)), acme.CurrentValue)
	assert.True(suite.T(), acme.GainLoss.Equal(decimal.NewFromFloat(40)), acme.GainLoss)
}

// TestInvestmentsValuationWithoutProvider verifies that positions are
// valued at zero when no provider is configured.
func (suite *TestSuiteStandard) TestInvestmentsValuationWithoutProvider() {
	suite.T().Setenv("QUOTES_URL", "")

	user := createTestUser(suite.T(), v1.UserEditable{})

	_ = createTestInvestment(suite.T(), v1.InvestmentEditable{
		UserID:        user.Data.ID,
		Shares:        decimal.NewFromFloat(3),
		PurchasePrice: decimal.NewFromFloat(50),
	})

	recorder := test.Request(suite.T(), http.MethodGet, fmt.Sprintf("http://example.com/v1/investments/valuation?user=%s", user.Data.ID), "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.InvestmentValuationResponse
	test.DecodeResponse(suite.T(), &recorder, &response)

	assert.True(suite.T(), response.Data.PurchaseValue.Equal(decimal.NewFromFloat(150)), response.Data.PurchaseValue)
	assert.True(suite.T(), response.Data.CurrentValue.IsZero(), response.Data.CurrentValue)
	assert.True(suite.T(), response.Data.GainLoss.Equal(decimal.NewFromFloat(-150)), response.Data.GainLoss)
}

// TestInvestmentsValuationErrors verifies the validations of the
// valuation endpoint.
func (suite *TestSuiteStandard) TestInvestmentsValuationErrors() {
	tests := []struct {
		name   string
		query  string
		status int
	}{
		{"Missing user", "", http.StatusBadRequest},
		{"Invalid user ID", "user=NotAUUID", http.StatusBadRequest},
		{"User does not exist", fmt.Sprintf("user=%s", uuid.New()), http.StatusNotFound},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			recorder := test.Request(t, http.MethodGet, fmt.Sprintf("http://example.com/v1/investments/valuation?%s", tt.query), "")
			test.AssertHTTPStatus(t, &recorder, tt.status)
		})
	}
}

// TestInvestmentsUpdate verifies that updates keep the old share count
// when the request does not contain one.
func (suite *TestSuiteStandard) TestInvestmentsUpdate() {
	investment := createTestInvestment(suite.T(), v1.InvestmentEditable{
		Shares: decimal.NewFromFloat(5),
	})

	recorder := test.Request(suite.T(), http.MethodPatch, investment.Data.Links.Self, map[string]any{
		"symbol": "NEWCO",
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.InvestmentResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	assert.Equal(suite.T(), "NEWCO", response.Data.Symbol)
	assert.True(suite.T(), response.Data.Shares.Equal(decimal.NewFromFloat(5)), response.Data.Shares)
}

func (suite *TestSuiteStandard) TestInvestmentsDelete() {
	investment := createTestInvestment(suite.T(), v1.InvestmentEditable{})

	recorder := test.Request(suite.T(), http.MethodDelete, investment.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNoContent)

	recorder = test.Request(suite.T(), http.MethodGet, investment.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNotFound)
}
