package v1_test

import (
	"net/http"
	"testing"

	"github.com/hauskasse/backend/test"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestOptionsHeaderResources() {
	optionsHeaderTests := []struct {
		path     string
		response string
	}{
		{"http://example.com/v1", "GET"},
		{"http://example.com/v1/groups", "GET, POST"},
		{"http://example.com/v1/users", "GET, POST"},
		{"http://example.com/v1/accounts", "GET, POST"},
		{"http://example.com/v1/categories", "GET, POST"},
		{"http://example.com/v1/transactions", "GET, POST"},
		{"http://example.com/v1/budgets", "GET, POST"},
		{"http://example.com/v1/budget-periods", "GET, POST"},
		{"http://example.com/v1/recurring-transactions", "GET, POST"},
		{"http://example.com/v1/investments", "GET, POST"},
		{"http://example.com/v1/overview", "GET"},
	}

	for _, tt := range optionsHeaderTests {
		suite.T().Run(tt.path, func(t *testing.T) {
			recorder := test.Request(suite.T(), http.MethodOptions, tt.path, "")

			assert.Equal(t, http.StatusNoContent, recorder.Code)
			assert.Equal(t, recorder.Header().Get("allow"), tt.response)
		})
	}
}
