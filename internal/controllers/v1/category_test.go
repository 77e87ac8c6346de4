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

// createTestCategory creates a test category via the v1 API.
func createTestCategory(t *testing.T, category v1.CategoryEditable, expectedStatus ...int) v1.CategoryResponse {
	if category.Name == "" {
		category.Name = uuid.New().String()
	}

	if category.GroupID == uuid.Nil {
		category.GroupID = createTestGroup(t, v1.GroupEditable{Name: "Group for " + category.Name}).Data.ID
	}

	// Default to 201 Created as expected status
	if len(expectedStatus) == 0 {
		expectedStatus = append(expectedStatus, http.StatusCreated)
	}

	reqBody := []v1.CategoryEditable{category}

	r := test.Request(t, http.MethodPost, "http://example.com/v1/categories", reqBody)
	test.AssertHTTPStatus(t, &r, expectedStatus...)

	var cr v1.CategoryCreateResponse
	test.DecodeResponse(t, &r, &cr)

	return cr.Data[0]
}

// TestCategoriesOptions verifies that the HTTP OPTIONS response for /categories/{id} is correct.
func (suite *TestSuiteStandard) TestCategoriesOptions() {
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
				return createTestCategory(suite.T(), v1.CategoryEditable{}).Data.Links.Self
			},
		},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			var p string
			if tt.pathFunc != nil {
				p = tt.pathFunc()
			} else {
				p = fmt.Sprintf("%s/%s", "http://example.com/v1/categories", tt.id)
			}

			r := test.Request(t, http.MethodOptions, p, "")
			test.AssertHTTPStatus(t, &r, tt.status)

			if tt.status == http.StatusNoContent {
				assert.Equal(t, "GET, PATCH, DELETE", r.Header().Get("allow"))
			}
		})
	}
}

// TestCategoriesDatabaseError verifies that the endpoints return the appropriate
// error when the database is disconnected.
func (suite *TestSuiteStandard) TestCategoriesDatabaseError() {
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

			recorder := test.Request(t, tt.method, fmt.Sprintf("http://example.com/v1/categories%s", tt.path), tt.body)
			test.AssertHTTPStatus(t, &recorder, http.StatusInternalServerError)

			var response v1.CategoryListResponse
			test.DecodeResponse(t, &recorder, &response)
			assert.Equal(t, models.ErrGeneral.Error(), *response.Error)
		})
	}
}

func (suite *TestSuiteStandard) TestCategoriesCreate() {
	group := createTestGroup(suite.T(), v1.GroupEditable{Name: "Category create group"})
	category := createTestCategory(suite.T(), v1.CategoryEditable{
		Name:    "Groceries",
		GroupID: group.Data.ID,
		Note:    "Everything edible",
	})

	assert.Equal(suite.T(), "Groceries", category.Data.Name)
	assert.Equal(suite.T(), "Everything edible", category.Data.Note)
	assert.Equal(suite.T(), group.Data.ID, category.Data.GroupID)
}

// TestCategoriesCreateDuplicateName verifies that two categories in the
// same group cannot share a name.
func (suite *TestSuiteStandard) TestCategoriesCreateDuplicateName() {
	group := createTestGroup(suite.T(), v1.GroupEditable{Name: "Duplicate category group"})

	_ = createTestCategory(suite.T(), v1.CategoryEditable{Name: "Groceries", GroupID: group.Data.ID})

	recorder := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/categories", []v1.CategoryEditable{
		{Name: "Groceries", GroupID: group.Data.ID},
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)

	var response v1.CategoryCreateResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	assert.Equal(suite.T(), models.ErrCategoryNameNotUnique.Error(), *response.Data[0].Error)
}

func (suite *TestSuiteStandard) TestCategoriesGetListFilter() {
	group := createTestGroup(suite.T(), v1.GroupEditable{Name: "Category filter group"})

	_ = createTestCategory(suite.T(), v1.CategoryEditable{Name: "Groceries", GroupID: group.Data.ID})
	_ = createTestCategory(suite.T(), v1.CategoryEditable{Name: "Transport", GroupID: group.Data.ID, Note: "Bus and train"})
	_ = createTestCategory(suite.T(), v1.CategoryEditable{Name: "Old hobby", GroupID: group.Data.ID, Archived: true})

	tests := []struct {
		name  string
		query string
		len   int
	}{
		{"Group", fmt.Sprintf("group=%s", group.Data.ID), 3},
		{"Group no match", fmt.Sprintf("group=%s", uuid.New()), 0},
		{"Name", "name=Transport", 1},
		{"Note", "note=train", 1},
		{"Archived", "archived=true", 1},
		{"Search", "search=o", 3},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			recorder := test.Request(t, http.MethodGet, fmt.Sprintf("http://example.com/v1/categories?%s", tt.query), "")
			test.AssertHTTPStatus(t, &recorder, http.StatusOK)

			var response v1.CategoryListResponse
			test.DecodeResponse(t, &recorder, &response)
			assert.Len(t, response.Data, tt.len)
		})
	}
}

func (suite *TestSuiteStandard) TestCategoriesUpdate() {
	category := createTestCategory(suite.T(), v1.CategoryEditable{Name: "Rename me"})

	recorder := test.Request(suite.T(), http.MethodPatch, category.Data.Links.Self, map[string]any{
		"name":     "Renamed",
		"archived": true,
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.CategoryResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	assert.Equal(suite.T(), "Renamed", response.Data.Name)
	assert.True(suite.T(), response.Data.Archived)
}

func (suite *TestSuiteStandard) TestCategoriesDelete() {
	category := createTestCategory(suite.T(), v1.CategoryEditable{})

	recorder := test.Request(suite.T(), http.MethodDelete, category.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNoContent)

	recorder = test.Request(suite.T(), http.MethodGet, category.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNotFound)
}
