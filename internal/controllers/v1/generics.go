package v1

import (
	"github.com/gin-gonic/gin"
	"github.com/hauskasse/backend/internal/httputil"
	"github.com/hauskasse/backend/internal/models"
)

// resourceOptionsDetail returns the appropriate response for an HTTP OPTIONS request for a specific resource.
//
// Note: This function only works for resources with an ID, not for calculated endpoints (like /overview)
func resourceOptionsDetail[R models.Group | models.User | models.Account | models.Category | models.Transaction | models.Budget | models.RecurringTransaction | models.Investment](c *gin.Context, resource R) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.First(&resource, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	httputil.OptionsGetPatchDelete(c)
}
