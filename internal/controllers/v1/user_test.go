package v1_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	v1 "github.com/hauskasse/backend/internal/controllers/v1"
	"github.com/hauskasse/backend/internal/models"
	"github.com/hauskasse/backend/test"
	"github.com/stretchr/testify/assert"
)

// createTestUser creates a test user via the v1 API.
func createTestUser(t *testing.T, user v1.UserEditable, expectedStatus ...int) v1.UserResponse {
	if user.Name == "" {
		user.Name = uuid.New().String()
	}

	if user.GroupID == uuid.Nil {
		user.GroupID = createTestGroup(t, v1.GroupEditable{Name: "Group for " + user.Name}).Data.ID
	}

	// Default to 201 Created as expected status
	if len(expectedStatus) == 0 {
		expectedStatus = append(expectedStatus, http.StatusCreated)
	}

	reqBody := []v1.UserEditable{user}

	r := test.Request(t, http.MethodPost, "http://example.com/v1/users", reqBody)
	test.AssertHTTPStatus(t, &r, expectedStatus...)

	var ur v1.UserCreateResponse
	test.DecodeResponse(t, &r, &ur)

	return ur.Data[0]
}

// TestUsersOptions verifies that the HTTP OPTIONS response for /users/{id} is correct.
func (suite *TestSuiteStandard) TestUsersOptions() {
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
				return createTestUser(suite.T(), v1.UserEditable{}).Data.Links.Self
			},
		},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			var p string
			if tt.pathFunc != nil {
				p = tt.pathFunc()
			} else {
				p = fmt.Sprintf("%s/%s", "http://example.com/v1/users", tt.id)
			}

			r := test.Request(t, http.MethodOptions, p, "")
			test.AssertHTTPStatus(t, &r, tt.status)

			if tt.status == http.StatusNoContent {
				assert.Equal(t, "GET, PATCH, DELETE", r.Header().Get("allow"))
			}
		})
	}
}

// TestUsersDatabaseError verifies that the endpoints return the appropriate
// error when the database is disconnected.
func (suite *TestSuiteStandard) TestUsersDatabaseError() {
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

			recorder := test.Request(t, tt.method, fmt.Sprintf("http://example.com/v1/users%s", tt.path), tt.body)
			test.AssertHTTPStatus(t, &recorder, http.StatusInternalServerError)

			var response v1.UserListResponse
			test.DecodeResponse(t, &recorder, &response)
			assert.Equal(t, models.ErrGeneral.Error(), *response.Error)
		})
	}
}

func (suite *TestSuiteStandard) TestUsersCreate() {
	group := createTestGroup(suite.T(), v1.GroupEditable{Name: "Create user test group"})
	user := createTestUser(suite.T(), v1.UserEditable{Name: "Alice", GroupID: group.Data.ID})

	assert.Equal(suite.T(), "Alice", user.Data.Name)
	assert.Equal(suite.T(), group.Data.ID, user.Data.GroupID)
}

// TestUsersCreateGroupMissing verifies that creating a user referencing
// a group that does not exist fails.
func (suite *TestSuiteStandard) TestUsersCreateGroupMissing() {
	recorder := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/users", []v1.UserEditable{
		{Name: "Nobody", GroupID: uuid.New()},
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNotFound)

	var response v1.UserCreateResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	assert.Equal(suite.T(), "there is no group matching your query", *response.Data[0].Error)
}

func (suite *TestSuiteStandard) TestUsersGetListFilter() {
	group := createTestGroup(suite.T(), v1.GroupEditable{Name: "Filter user test group"})
	otherGroup := createTestGroup(suite.T(), v1.GroupEditable{Name: "Other group"})

	_ = createTestUser(suite.T(), v1.UserEditable{Name: "Alice", GroupID: group.Data.ID})
	_ = createTestUser(suite.T(), v1.UserEditable{Name: "Bob", GroupID: group.Data.ID})
	_ = createTestUser(suite.T(), v1.UserEditable{Name: "Alicia", GroupID: otherGroup.Data.ID})

	tests := []struct {
		name  string
		query string
		len   int
	}{
		{"Group", fmt.Sprintf("group=%s", group.Data.ID), 2},
		{"Group no match", fmt.Sprintf("group=%s", uuid.New()), 0},
		{"Name", "name=Bob", 1},
		{"Search", "search=Ali", 2},
		{"Group and search", fmt.Sprintf("group=%s&search=Ali", group.Data.ID), 1},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			recorder := test.Request(t, http.MethodGet, fmt.Sprintf("http://example.com/v1/users?%s", tt.query), "")
			test.AssertHTTPStatus(t, &recorder, http.StatusOK)

			var response v1.UserListResponse
			test.DecodeResponse(t, &recorder, &response)
			assert.Len(t, response.Data, tt.len)
		})
	}
}

func (suite *TestSuiteStandard) TestUsersGetSingle() {
	user := createTestUser(suite.T(), v1.UserEditable{Name: "Carol"})

	recorder := test.Request(suite.T(), http.MethodGet, user.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.UserResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	assert.Equal(suite.T(), "Carol", response.Data.Name)
}

func (suite *TestSuiteStandard) TestUsersUpdate() {
	user := createTestUser(suite.T(), v1.UserEditable{Name: "Old name"})

	recorder := test.Request(suite.T(), http.MethodPatch, user.Data.Links.Self, map[string]any{
		"name": "New name",
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.UserResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	assert.Equal(suite.T(), "New name", response.Data.Name)
}

func (suite *TestSuiteStandard) TestUsersDelete() {
	user := createTestUser(suite.T(), v1.UserEditable{})

	recorder := test.Request(suite.T(), http.MethodDelete, user.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNoContent)

	recorder = test.Request(suite.T(), http.MethodGet, user.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNotFound)
}
