package server

import (
	"errors"
	"strconv"
	"strings"

	"pulseboard/internal/models"
	"pulseboard/internal/service"

	"github.com/gofiber/fiber/v2"
)

// parseDashboardQuery reads the platform, hook and days query parameters.
// platform and hook may be repeated or comma separated.
func parseDashboardQuery(c *fiber.Ctx, surface string) (service.DashboardQuery, error) {
	q := service.DashboardQuery{
		Platforms: queryList(c, "platform"),
		HookTypes: queryList(c, "hook"),
		Subject:   c.IP(),
		Surface:   surface,
	}

	if raw := strings.TrimSpace(c.Query("days")); raw != "" {
		days, err := strconv.Atoi(raw)
		if err != nil || days < 1 {
			return service.DashboardQuery{}, models.NewValidationError("days must be a positive integer")
		}
		q.Days = days
	}
	return q, nil
}

// queryList collects every value of a repeatable, comma separated parameter.
// It returns nil when the parameter is absent.
func queryList(c *fiber.Ctx, key string) []string {
	var out []string
	for _, raw := range c.Context().QueryArgs().PeekMulti(key) {
		for _, v := range strings.Split(string(raw), ",") {
			if v = strings.TrimSpace(v); v != "" {
				out = append(out, v)
			}
		}
	}
	return out
}

// statusFor maps service errors to an HTTP status.
func statusFor(err error) int {
	var appErr *models.AppError
	if errors.As(err, &appErr) {
		switch appErr.Code {
		case "VALIDATION_ERROR":
			return fiber.StatusBadRequest
		case "NOT_FOUND":
			return fiber.StatusNotFound
		case "RATE_LIMITED":
			return fiber.StatusTooManyRequests
		}
	}
	return fiber.StatusInternalServerError
}

// statusCode is the error code reported for a bare HTTP status.
func statusCode(status int) string {
	switch status {
	case fiber.StatusBadRequest:
		return "VALIDATION_ERROR"
	case fiber.StatusNotFound:
		return "NOT_FOUND"
	case fiber.StatusTooManyRequests:
		return "RATE_LIMITED"
	case fiber.StatusMethodNotAllowed:
		return "METHOD_NOT_ALLOWED"
	}
	if status >= fiber.StatusInternalServerError {
		return "INTERNAL_ERROR"
	}
	return ""
}
