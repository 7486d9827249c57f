package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/walletnames/registrar/internal/shared/constants"
	"github.com/walletnames/registrar/internal/shared/errors"
)

// ErrorBody is the payload of every failed request.
type ErrorBody struct {
	Error   string `json:"error"`
	Success bool   `json:"success"`
}

// ErrorResponse sends {"error": message, "success": false}.
func ErrorResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, ErrorBody{Error: message, Success: false})
}

// ErrorResponseWithError renders an AppError with its own status. Any other
// error becomes a 500 without internal details.
func ErrorResponseWithError(c *gin.Context, err error) {
	if appErr := errors.GetAppError(err); appErr != nil {
		ErrorResponse(c, appErr.Code, appErr.Message)
		return
	}
	ErrorResponse(c, http.StatusInternalServerError, constants.ErrMsgInternalServerError)
}

// AbortWithError renders err and stops the handler chain.
func AbortWithError(c *gin.Context, err error) {
	ErrorResponseWithError(c, err)
	c.Abort()
}
