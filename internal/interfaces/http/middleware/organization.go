package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/caseguard/caseguard/internal/shared/constants"
	"github.com/caseguard/caseguard/internal/shared/errors"
	"github.com/caseguard/caseguard/internal/shared/utils"
)

const maxOrganizationIDLength = 64

// RequireOrganization scopes the request to the organization named by the
// X-Organization-ID header. The gateway in front of the service is
// responsible for authenticating that header.
func RequireOrganization() gin.HandlerFunc {
	return func(c *gin.Context) {
		orgID := strings.TrimSpace(c.GetHeader(constants.HeaderOrganizationID))
		if orgID == "" {
			utils.ErrorResponseWithError(c, errors.NewBadRequestError("X-Organization-ID header is required"))
			c.Abort()
			return
		}
		if len(orgID) > maxOrganizationIDLength {
			utils.ErrorResponseWithError(c, errors.NewBadRequestError("X-Organization-ID header is too long"))
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyOrgID, orgID)
		c.Next()
	}
}

// OrganizationID returns the organization set by RequireOrganization.
func OrganizationID(c *gin.Context) (string, bool) {
	v, ok := c.Get(constants.ContextKeyOrgID)
	if !ok {
		return "", false
	}
	orgID, ok := v.(string)
	return orgID, ok && orgID != ""
}
