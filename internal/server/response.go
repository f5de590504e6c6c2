// Package server exposes the HTTP API: merchant resolution, card
// recommendation, and guarded credit questions.
package server

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// APIResponse is the standard response envelope.
type APIResponse struct {
	Success   bool      `json:"success"`
	Data      any       `json:"data,omitempty"`
	Error     *APIError `json:"error,omitempty"`
	RequestID string    `json:"request_id,omitempty"`
	Timestamp string    `json:"timestamp"`
}

// APIError is the standard error block.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func successResponse(c *fiber.Ctx, data any) error {
	requestID, _ := c.Locals("requestid").(string)
	return c.JSON(APIResponse{
		Success:   true,
		Data:      data,
		RequestID: requestID,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

func errorResponse(c *fiber.Ctx, status int, code, message string) error {
	requestID, _ := c.Locals("requestid").(string)
	return c.Status(status).JSON(APIResponse{
		Success:   false,
		Error:     &APIError{Code: code, Message: message},
		RequestID: requestID,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}
