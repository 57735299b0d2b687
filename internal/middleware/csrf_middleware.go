package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/selim/alumnihub/internal/app/models/dto"
)

// CSRFHeader carries the token clients mirror back on mutating requests
const CSRFHeader = "X-CSRF-Token"

// CSRFProtection verifies the double-submit CSRF token on every mutating
// request. The expected value comes from the access token claims, so it must
// run after JWTAuth.
func CSRFProtection() gin.HandlerFunc {
	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			c.Next()
			return
		}

		expected, exists := c.Get(ContextCSRFToken)
		expectedStr, ok := expected.(string)
		if !exists || !ok || expectedStr == "" {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeCSRFMismatch, "Invalid session token")
			c.AbortWithStatusJSON(http.StatusForbidden, dto.NewErrorResponse(errorDetail))
			return
		}

		presented := c.GetHeader(CSRFHeader)
		if subtle.ConstantTimeCompare([]byte(presented), []byte(expectedStr)) != 1 {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeCSRFMismatch, "Invalid session token")
			c.AbortWithStatusJSON(http.StatusForbidden, dto.NewErrorResponse(errorDetail))
			return
		}

		c.Next()
	}
}
