package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/gofiber/fiber/v3"

	"movie-catalog-api/internal/service"
)

// ErrorResponse is the error body shared by every endpoint.
type ErrorResponse struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
}

// respondError maps a service error to the HTTP contract: validation
// failures carry their own message, missing entities use notFoundMsg,
// and anything else is a generic 500 with the cause logged only.
func respondError(c fiber.Ctx, err error, notFoundMsg string) error {
	var invalid *service.InvalidArgumentError
	if errors.As(err, &invalid) {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: true, Message: invalid.Message})
	}
	if errors.Is(err, service.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Error: true, Message: notFoundMsg})
	}
	slog.Error("database error", "path", c.Path(), "error", err)
	return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: true, Message: "Database error"})
}

// strayQueryParams reports whether the request carries query
// parameters, with a message enumerating the offending keys. Used by
// the parameter-free detail endpoints.
func strayQueryParams(c fiber.Ctx) (string, bool) {
	queries := c.Queries()
	if len(queries) == 0 {
		return "", false
	}
	keys := make([]string, 0, len(queries))
	for k := range queries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	msg := fmt.Sprintf("Invalid query parameters: %s. Query parameters are not permitted.", strings.Join(keys, ", "))
	return msg, true
}
