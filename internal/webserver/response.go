package webserver

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

const timestampFormat = "2006-01-02 15:04:05"

// ApiResponse is the JSON envelope for every non-binary endpoint.
type ApiResponse struct {
	StatusCode    int         `json:"statusCode"`
	StatusMessage string      `json:"statusMessage"`
	Description   string      `json:"description"`
	Payload       interface{} `json:"payload"`
	Timestamp     string      `json:"timestamp"`
}

func envelope(status int, description string, payload interface{}) ApiResponse {
	return ApiResponse{
		StatusCode:    status,
		StatusMessage: http.StatusText(status),
		Description:   description,
		Payload:       payload,
		Timestamp:     time.Now().Format(timestampFormat),
	}
}

// OK writes a success envelope with the given payload.
func OK(c echo.Context, status int, description string, payload interface{}) error {
	return c.JSON(status, envelope(status, description, payload))
}

// Fail writes an error envelope without payload.
func Fail(c echo.Context, status int, description string) error {
	return c.JSON(status, envelope(status, description, nil))
}

// FailWithPayload writes an error envelope carrying detail, e.g. the
// field->message map from request validation.
func FailWithPayload(c echo.Context, status int, description string, payload interface{}) error {
	return c.JSON(status, envelope(status, description, payload))
}
