// Package response shapes every JSON body the API writes.
package response

import (
	"net/http"

	deliverycontext "tasktrack/internal/delivery/context"

	"github.com/labstack/echo/v4"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Success   bool       `json:"success"`
	Error     *ErrorInfo `json:"error"`
	RequestID string     `json:"requestId"`
}

// ErrorInfo contains the machine-readable code and a user-facing message.
type ErrorInfo struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// Success writes {success:true, ...fields}.
func Success(c echo.Context, statusCode int, fields echo.Map) error {
	body := echo.Map{"success": true}
	for k, v := range fields {
		body[k] = v
	}

	return c.JSON(statusCode, body)
}

// Created is Success with 201.
func Created(c echo.Context, fields echo.Map) error {
	return Success(c, http.StatusCreated, fields)
}

// OK is Success with 200.
func OK(c echo.Context, fields echo.Map) error {
	return Success(c, http.StatusOK, fields)
}

// Error writes the error envelope. Details are dropped for authentication,
// authorization and server errors.
func Error(c echo.Context, statusCode int, errorCode, message, details string) error {
	if statusCode >= http.StatusInternalServerError || statusCode == http.StatusUnauthorized || statusCode == http.StatusForbidden {
		details = ""
	}

	return c.JSON(statusCode, ErrorResponse{
		Success: false,
		Error: &ErrorInfo{
			Code:    errorCode,
			Message: message,
			Details: details,
		},
		RequestID: deliverycontext.GetRequestID(c),
	})
}
