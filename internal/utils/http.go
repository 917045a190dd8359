package utils

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Response is the envelope every endpoint of the local surface answers with
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// SuccessResponse sends a success response with data
func SuccessResponse(c echo.Context, statusCode int, message string, data interface{}) error {
	return c.JSON(statusCode, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// ErrorResponseHandler sends an error response. data may carry the state the
// caller should render next to the error, typically the current snapshot.
func ErrorResponseHandler(c echo.Context, statusCode int, errorMessage string, data interface{}) error {
	return c.JSON(statusCode, Response{
		Success: false,
		Error:   errorMessage,
		Data:    data,
	})
}

// BadRequestResponse sends a 400 Bad Request response
func BadRequestResponse(c echo.Context, errorMessage string) error {
	return ErrorResponseHandler(c, http.StatusBadRequest, errorMessage, nil)
}

// UnauthorizedResponse sends a 401 Unauthorized response
func UnauthorizedResponse(c echo.Context, errorMessage string) error {
	if errorMessage == "" {
		errorMessage = "Unauthorized"
	}
	return ErrorResponseHandler(c, http.StatusUnauthorized, errorMessage, nil)
}

// ConflictResponse sends a 409 Conflict response, used when the trip is not in
// a state that allows the requested action
func ConflictResponse(c echo.Context, errorMessage string, data interface{}) error {
	return ErrorResponseHandler(c, http.StatusConflict, errorMessage, data)
}

// UnprocessableResponse sends a 422 response carrying a backend rejection
// message verbatim
func UnprocessableResponse(c echo.Context, errorMessage string, data interface{}) error {
	return ErrorResponseHandler(c, http.StatusUnprocessableEntity, errorMessage, data)
}

// InternalServerErrorResponse sends a 500 Internal Server Error response
func InternalServerErrorResponse(c echo.Context, errorMessage string) error {
	if errorMessage == "" {
		errorMessage = "Internal server error"
	}
	return ErrorResponseHandler(c, http.StatusInternalServerError, errorMessage, nil)
}

// ServiceUnavailableResponse sends a 503 Service Unavailable response
func ServiceUnavailableResponse(c echo.Context, errorMessage string) error {
	if errorMessage == "" {
		errorMessage = "Service unavailable"
	}
	return ErrorResponseHandler(c, http.StatusServiceUnavailable, errorMessage, nil)
}
