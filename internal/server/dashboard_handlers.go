package server

import (
	"bytes"
	"fmt"
	"strconv"

	"pulseboard/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetDashboard handles GET /api/dashboard
// @Summary Dashboard view
// @Description KPI summary, panel aggregations and top posts for a filter selection
// @Tags dashboard
// @Produce json
// @Param platform query []string false "Platforms (repeatable or comma separated)"
// @Param hook query []string false "Hook types (repeatable or comma separated)"
// @Param days query int false "Window in days"
// @Success 200 {object} analytics.View
// @Failure 400 {object} models.ErrorResponse
// @Router /dashboard [get]
func (s *Server) GetDashboard(c *fiber.Ctx) error {
	q, err := parseDashboardQuery(c, "api")
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, err)
	}

	view, err := s.dashboard.Dashboard(c.UserContext(), q)
	if err != nil {
		return models.RespondWithError(c, statusFor(err), err)
	}
	return c.JSON(view)
}

// GetPosts handles GET /api/posts
// @Summary Filtered posts
// @Description Enriched posts matching the filter, in dataset order
// @Tags dashboard
// @Produce json
// @Param platform query []string false "Platforms (repeatable or comma separated)"
// @Param hook query []string false "Hook types (repeatable or comma separated)"
// @Param days query int false "Window in days"
// @Success 200 {object} object{filter=analytics.Filter,count=int,posts=[]models.EnrichedPost}
// @Failure 400 {object} models.ErrorResponse
// @Router /posts [get]
func (s *Server) GetPosts(c *fiber.Ctx) error {
	q, err := parseDashboardQuery(c, "api")
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, err)
	}

	posts, f, err := s.dashboard.Posts(c.UserContext(), q)
	if err != nil {
		return models.RespondWithError(c, statusFor(err), err)
	}
	return c.JSON(fiber.Map{
		"filter": f,
		"count":  len(posts),
		"posts":  posts,
	})
}

// GetCatalog handles GET /api/catalog
// @Summary Catalog
// @Description Platforms, vocabularies and distributions the dataset is generated from
// @Tags dashboard
// @Produce json
// @Success 200 {object} object{catalog=catalog.Catalog,dataset_size=int,seed=int,lookback_days=int,default_window_days=int}
// @Router /catalog [get]
func (s *Server) GetCatalog(c *fiber.Ctx) error {
	opts := s.dashboard.Options()
	return c.JSON(fiber.Map{
		"catalog":             s.dashboard.Catalog(),
		"dataset_size":        opts.DatasetSize,
		"seed":                opts.Seed,
		"lookback_days":       opts.LookbackDays,
		"default_window_days": opts.DefaultWindowDays,
	})
}

// ExportCSV handles GET /api/export.csv
// @Summary CSV export
// @Description Filtered enriched posts as CSV, raw columns first then derived ones
// @Tags dashboard
// @Produce text/csv
// @Param platform query []string false "Platforms (repeatable or comma separated)"
// @Param hook query []string false "Hook types (repeatable or comma separated)"
// @Param days query int false "Window in days"
// @Success 200 {file} file
// @Failure 400 {object} models.ErrorResponse
// @Failure 429 {object} models.ErrorResponse
// @Router /export.csv [get]
func (s *Server) ExportCSV(c *fiber.Ctx) error {
	q, err := parseDashboardQuery(c, "export")
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, err)
	}

	// Buffer so a failure does not leave a half written 200 response.
	var buf bytes.Buffer
	n, err := s.dashboard.Export(c.UserContext(), q, &buf)
	if err != nil {
		return models.RespondWithError(c, statusFor(err), err)
	}

	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, s.dashboard.ExportFileName()))
	c.Set("X-Export-Rows", strconv.Itoa(n))
	return c.Send(buf.Bytes())
}
