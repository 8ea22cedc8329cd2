package middleware

import (
	"github.com/gin-gonic/gin"

	ierr "github.com/medfiscal/medfiscal/internal/errors"
)

// ErrorHandler translates errors pushed into gin's error chain to JSON
// responses with the status derived from the error mark.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 {
			err := c.Errors.Last().Err
			c.JSON(ierr.HTTPStatusFromErr(err), ierr.NewErrorResponse(err))
		}
	}
}
