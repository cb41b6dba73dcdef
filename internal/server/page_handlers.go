package server

import (
	"bytes"
	"fmt"
	"html/template"
	"net/url"
	"regexp"
	"strconv"
	"sync"
	"time"

	"pulseboard/internal/analytics"
	"pulseboard/internal/models"

	"github.com/gofiber/fiber/v2"
)

var (
	pageTmplOnce sync.Once
	pageTmpl     *template.Template

	hexColor = regexp.MustCompile(`^#[0-9A-Fa-f]{3,8}$`)
)

// pageData holds all template data for the HTML dashboard.
type pageData struct {
	GeneratedAt  string
	Lookback     int
	Days         int
	Platforms    []option
	HookTypes    []option
	ExportURL    string
	Error        string
	View         *analytics.View
	Panels       map[string]bool
	MaxHookReach float64
	MaxHourER    float64
	MaxEff       float64
}

type option struct {
	Name     string
	Color    template.CSS
	Selected bool
}

func loadPageTemplate() *template.Template {
	pageTmplOnce.Do(func() {
		pageTmpl = template.Must(template.New("dashboard").Funcs(template.FuncMap{
			"bar": func(v, maxValue float64) template.CSS {
				if maxValue <= 0 || v <= 0 {
					return "width:0%"
				}
				return template.CSS(fmt.Sprintf("width:%.1f%%", min(v/maxValue, 1)*100)) //nolint:gosec // numeric only
			},
			"f1": func(v float64) string { return strconv.FormatFloat(v, 'f', 1, 64) },
			"f2": func(v float64) string { return strconv.FormatFloat(v, 'f', 2, 64) },
			"f3": func(v float64) string { return strconv.FormatFloat(v, 'f', 3, 64) },
			"f0": func(v float64) string { return strconv.FormatFloat(v, 'f', 0, 64) },
		}).Parse(pageTemplate))
	})
	return pageTmpl
}

// DashboardPage handles GET / and renders the dashboard as HTML. Filter
// errors are shown inline above an empty dashboard.
func (s *Server) DashboardPage(c *fiber.Ctx) error {
	cat := s.dashboard.Catalog()
	opts := s.dashboard.Options()

	data := pageData{
		GeneratedAt: time.Now().Format("2006-01-02 15:04 MST"),
		Lookback:    opts.LookbackDays,
		Days:        opts.DefaultWindowDays,
	}

	q, err := parseDashboardQuery(c, "html")
	if err == nil {
		data.View, err = s.dashboard.Dashboard(c.UserContext(), q)
	}
	if err != nil {
		status := statusFor(err)
		if status != fiber.StatusBadRequest {
			return models.RespondWithError(c, status, err)
		}
		data.Error = err.Error()
	}

	if data.View != nil {
		data.Days = data.View.Filter.WindowDays
		data.Panels = s.dashboard.Panels(q.Subject)
		for _, h := range data.View.HookPerformance {
			data.MaxHookReach = max(data.MaxHookReach, h.AvgReach)
		}
		for _, h := range data.View.TimeOfDay {
			data.MaxHourER = max(data.MaxHourER, h.AvgEngagementRate)
		}
		for _, e := range data.View.ReachEfficiency {
			data.MaxEff = max(data.MaxEff, e.AvgReachEfficiency)
		}
	}

	selected := func(values []string) map[string]bool {
		m := make(map[string]bool, len(values))
		for _, v := range values {
			m[v] = true
		}
		return m
	}
	platforms, hooks := selected(q.Platforms), selected(q.HookTypes)
	for _, p := range cat.Platforms {
		o := option{Name: p.Name, Selected: platforms[p.Name]}
		if hexColor.MatchString(p.Color) {
			o.Color = template.CSS("background:" + p.Color) //nolint:gosec // validated hex colour
		}
		data.Platforms = append(data.Platforms, o)
	}
	for _, h := range cat.HookTypes {
		data.HookTypes = append(data.HookTypes, option{Name: h, Selected: hooks[h]})
	}

	export := url.Values{}
	for _, p := range q.Platforms {
		export.Add("platform", p)
	}
	for _, h := range q.HookTypes {
		export.Add("hook", h)
	}
	export.Set("days", strconv.Itoa(data.Days))
	data.ExportURL = "/api/export.csv?" + export.Encode()

	var buf bytes.Buffer
	if err := loadPageTemplate().Execute(&buf, data); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, models.NewInternalError(err))
	}

	status := fiber.StatusOK
	if data.Error != "" {
		status = fiber.StatusBadRequest
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Status(status).Send(buf.Bytes())
}
