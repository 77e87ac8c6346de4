package v1_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	v1 "github.com/hauskasse/backend/internal/controllers/v1"
	"github.com/hauskasse/backend/internal/models"
	"github.com/hauskasse/backend/test"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

// createTestAccount creates a test account via the v1 API.
func createTestAccount(t *testing.T, account v1.AccountEditable, expectedStatus ...int) v1.AccountResponse {
	if account.Name == "" {
		account.Name = uuid.New().String()
	}

	if account.GroupID == uuid.Nil {
		account.GroupID = createTestGroup(t, v1.GroupEditable{Name: "Group for " + account.Name}).Data.ID
	}

	// Default to 201 Created as expected status
	if len(expectedStatus) == 0 {
		expectedStatus = append(expectedStatus, http.StatusCreated)
	}

	reqBody := []v1.AccountEditable{account}

	r := test.Request(t, http.MethodPost, "http://example.com/v1/accounts", reqBody)
	test.AssertHTTPStatus(t, &r, expectedStatus...)

	var ar v1.AccountCreateResponse
	test.DecodeResponse(t, &r, &ar)

	return ar.Data[0]
}

// TestAccountsOptions verifies that the HTTP OPTIONS response for /accounts/{id} is correct.
func (suite *TestSuiteStandard) TestAccountsOptions() {
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
				return createTestAccount(suite.T(), v1.AccountEditable{}).Data.Links.Self
			},
		},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			var p string
			if tt.pathFunc != nil {
				p = tt.pathFunc()
			} else {
				p = fmt.Sprintf("%s/%s", "http://example.com/v1/accounts", tt.id)
			}

			r := test.Request(t, http.MethodOptions, p, "")
			test.AssertHTTPStatus(t, &r, tt.status)

			if tt.status == http.StatusNoContent {
				assert.Equal(t, "GET, PATCH, DELETE", r.Header().Get("allow"))
			}
		})
	}
}

// TestAccountsDatabaseError verifies that the endpoints return the appropriate
// error when the database is disconnected.
func (suite *TestSuiteStandard) TestAccountsDatabaseError() {
	tests := []struct {
		name   string // Name of the test
		path   string // Path to send request to
		method string // HTTP method to use
		body   string // The request body
	}{
		{"GET Collection", "", http.MethodGet, ""},
		{"OPTIONS Single", fmt.Sprintf("/%s", uuid.New().String()), http.MethodOptions, ""},
		{"GET Single", fmt.Sprintf("/%s", uuid.New().String()), http.MethodGet, ""},
		{"PATCH Single", fmt.Sprintf("/%s", uuid.New().String()), http.MethodPatch, ""},
		{"DELETE Single", fmt.Sprintf("/%s", uuid.New().String()), http.MethodDelete, ""},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			suite.CloseDB()

			recorder := test.Request(t, tt.method, fmt.Sprintf("http://example.com/v1/accounts%s", tt.path), tt.body)
			test.AssertHTTPStatus(t, &recorder, http.StatusInternalServerError)

			var response v1.AccountListResponse
			test.DecodeResponse(t, &recorder, &response)
			assert.Equal(t, models.ErrGeneral.Error(), *response.Error)
		})
	}
}

func (suite *TestSuiteStandard) TestAccountsCreate() {
	group := createTestGroup(suite.T(), v1.GroupEditable{Name: "Account create group"})
	user := createTestUser(suite.T(), v1.UserEditable{Name: "Alice", GroupID: group.Data.ID})

	account := createTestAccount(suite.T(), v1.AccountEditable{
		Name:           "Joint checking",
		GroupID:        group.Data.ID,
		Type:           models.AccountTypeChecking,
		InitialBalance: decimal.NewFromFloat(1200),
		UserIDs:        []uuid.UUID{user.Data.ID},
	})

	assert.Equal(suite.T(), "Joint checking", account.Data.Name)
	assert.True(suite.T(), account.Data.Balance.Equal(decimal.NewFromFloat(1200)), account.Data.Balance)
	assert.Equal(suite.T(), []uuid.UUID{user.Data.ID}, account.Data.UserIDs)
}

// TestAccountsCreateDuplicateName verifies that two accounts in the same
// group cannot share a name.
func (suite *TestSuiteStandard) TestAccountsCreateDuplicateName() {
	group := createTestGroup(suite.T(), v1.GroupEditable{Name: "Duplicate account group"})

	_ = createTestAccount(suite.T(), v1.AccountEditable{Name: "Cash box", GroupID: group.Data.ID})

	recorder := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/accounts", []v1.AccountEditable{
		{Name: "Cash box", GroupID: group.Data.ID},
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)

	var response v1.AccountCreateResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	assert.Equal(suite.T(), models.ErrAccountNameNotUnique.Error(), *response.Data[0].Error)
}

// TestAccountsBalance verifies that the account balance reflects the
// transactions referencing the account.
func (suite *TestSuiteStandard) TestAccountsBalance() {
	group := createTestGroup(suite.T(), v1.GroupEditable{Name: "Balance test group"})
	user := createTestUser(suite.T(), v1.UserEditable{Name: "Alice", GroupID: group.Data.ID})
	checking := createTestAccount(suite.T(), v1.AccountEditable{
		Name:           "Checking",
		GroupID:        group.Data.ID,
		InitialBalance: decimal.NewFromFloat(100),
	})
	savings := createTestAccount(suite.T(), v1.AccountEditable{
		Name:    "Savings",
		GroupID: group.Data.ID,
		Type:    models.AccountTypeSavings,
	})

	_ = createTestTransaction(suite.T(), v1.TransactionEditable{
		Type:      models.TransactionIncome,
		Amount:    decimal.NewFromFloat(250),
		UserID:    user.Data.ID,
		AccountID: checking.Data.ID,
	})
	_ = createTestTransaction(suite.T(), v1.TransactionEditable{
		Type:        models.TransactionTransfer,
		Amount:      decimal.NewFromFloat(120),
		UserID:      user.Data.ID,
		AccountID:   checking.Data.ID,
		ToAccountID: &savings.Data.ID,
	})

	recorder := test.Request(suite.T(), http.MethodGet, checking.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.AccountResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	assert.True(suite.T(), response.Data.Balance.Equal(decimal.NewFromFloat(230)), response.Data.Balance)

	recorder = test.Request(suite.T(), http.MethodGet, savings.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	test.DecodeResponse(suite.T(), &recorder, &response)
	assert.True(suite.T(), response.Data.Balance.Equal(decimal.NewFromFloat(120)), response.Data.Balance)
}

func (suite *TestSuiteStandard) TestAccountsGetListFilter() {
	group := createTestGroup(suite.T(), v1.GroupEditable{Name: "Account filter group"})
	user := createTestUser(suite.T(), v1.UserEditable{Name: "Alice", GroupID: group.Data.ID})

	_ = createTestAccount(suite.T(), v1.AccountEditable{
		Name:    "Checking",
		GroupID: group.Data.ID,
		UserIDs: []uuid.UUID{user.Data.ID},
	})
	_ = createTestAccount(suite.T(), v1.AccountEditable{
		Name:    "Savings",
		GroupID: group.Data.ID,
		Type:    models.AccountTypeSavings,
	})
	_ = createTestAccount(suite.T(), v1.AccountEditable{
		Name:     "Old cash box",
		GroupID:  group.Data.ID,
		Type:     models.AccountTypeCash,
		Archived: true,
	})

	tests := []struct {
		name  string
		query string
		len   int
	}{
		{"Group", fmt.Sprintf("group=%s", group.Data.ID), 3},
		{"Type checking", "type=checking", 1},
		{"Type savings", "type=savings", 1},
		{"Archived", "archived=true", 1},
		{"User", fmt.Sprintf("user=%s", user.Data.ID), 1},
		{"Name", "name=Checking", 1},
		{"Search", "search=cash", 1},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			recorder := test.Request(t, http.MethodGet, fmt.Sprintf("http://example.com/v1/accounts?%s", tt.query), "")
			test.AssertHTTPStatus(t, &recorder, http.StatusOK)

			var response v1.AccountListResponse
			test.DecodeResponse(t, &recorder, &response)
			assert.Len(t, response.Data, tt.len)
		})
	}
}

// TestAccountsUpdateUsers verifies that the users sharing an account can
// be replaced with a PATCH request.
func (suite *TestSuiteStandard) TestAccountsUpdateUsers() {
	group := createTestGroup(suite.T(), v1.GroupEditable{Name: "Update users group"})
	alice := createTestUser(suite.T(), v1.UserEditable{Name: "Alice", GroupID: group.Data.ID})
	bob := createTestUser(suite.T(), v1.UserEditable{Name: "Bob", GroupID: group.Data.ID})

	account := createTestAccount(suite.T(), v1.AccountEditable{
		Name:    "Shared",
		GroupID: group.Data.ID,
		UserIDs: []uuid.UUID{alice.Data.ID},
	})

	recorder := test.Request(suite.T(), http.MethodPatch, account.Data.Links.Self, map[string]any{
		"userIds": []uuid.UUID{alice.Data.ID, bob.Data.ID},
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.AccountResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	assert.ElementsMatch(suite.T(), []uuid.UUID{alice.Data.ID, bob.Data.ID}, response.Data.UserIDs)
}

func (suite *TestSuiteStandard) TestAccountsDelete() {
	account := createTestAccount(suite.T(), v1.AccountEditable{})

	recorder := test.Request(suite.T(), http.MethodDelete, account.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNoContent)

	recorder = test.Request(suite.T(), http.MethodGet, account.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNotFound)
}
