package handler

import (
	"errors"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// queryParams copies the request's query string into a plain map for the
// query builder.
func queryParams(c *fiber.Ctx) map[string]string {
	params := map[string]string{}
	for key, value := range c.Queries() {
		params[key] = value
	}
	return params
}

func parsePathID(c *fiber.Ctx, name string) (uint, error) {
	value := strings.TrimSpace(c.Params(name))
	parsed, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return 0, err
	}
	return uint(parsed), nil
}

// actorFromContext extracts the authenticated user id placed by the JWT
// middleware; nil when the request carries no identity.
func actorFromContext(c *fiber.Ctx) *uint {
	if v := c.Locals("user_id"); v != nil {
		if id, ok := v.(uint); ok && id > 0 {
			return &id
		}
	}
	return nil
}

func isValidationError(err error) bool {
	var validationErrors validator.ValidationErrors
	return errors.As(err, &validationErrors)
}
