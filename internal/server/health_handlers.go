package server

import (
	"context"
	"time"

	"pulseboard/internal/service"

	"github.com/gofiber/fiber/v2"
)

// Version is set via -ldflags at build time.
var Version = "dev"

// HealthCheck is a legacy/simple alias for ReadinessCheck
func (s *Server) HealthCheck(c *fiber.Ctx) error {
	return s.ReadinessCheck(c)
}

// LivenessCheck handles liveness probe requests
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}

// ReadinessCheck handles readiness probe requests. Redis is optional: an
// unconfigured client reports "disabled" and keeps the service ready, while
// a configured but unreachable one makes it unready.
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 5*time.Second)
	defer cancel()

	datasetStatus := "healthy"
	if _, _, err := s.dashboard.Posts(ctx, service.DashboardQuery{Surface: "health"}); err != nil {
		datasetStatus = "unhealthy"
	}

	redisStatus := "disabled"
	if s.redis != nil {
		redisStatus = "healthy"
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	}

	status := fiber.StatusOK
	overallStatus := "healthy"
	if datasetStatus != "healthy" || redisStatus == "unhealthy" {
		status = fiber.StatusServiceUnavailable
		overallStatus = "unhealthy"
	}

	return c.Status(status).JSON(fiber.Map{
		"message": "Pulseboard",
		"version": Version,
		"status":  overallStatus,
		"uptime":  time.Since(s.startedAt).Round(time.Second).String(),
		"checks": fiber.Map{
			"dataset": datasetStatus,
			"redis":   redisStatus,
		},
		"time": time.Now(),
	})
}
