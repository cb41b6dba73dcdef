package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"pulseboard/internal/analytics"
)

// Options controls what Render prints.
type Options struct {
	// Panels limits the optional panels; nil prints every panel the view holds.
	Panels map[string]bool
	// SummaryOnly prints only the KPI summary.
	SummaryOnly bool
}

func f(v float64, places int) string {
	return strconv.FormatFloat(v, 'f', places, 64)
}

// Render writes the KPI summary, each enabled panel and the top posts table.
func Render(w io.Writer, view *analytics.View, opts Options) error {
	if view == nil {
		return nil
	}
	show := func(panel string) bool {
		return opts.Panels == nil || opts.Panels[panel]
	}

	if err := renderSummary(w, view); err != nil {
		return err
	}
	if opts.SummaryOnly {
		return nil
	}

	sections := []struct {
		panel string
		title string
		table func() *Table
	}{
		{analytics.PanelHookPerformance, "Hook Performance", func() *Table { return hookTable(view.HookPerformance) }},
		{analytics.PanelTimeOfDay, "Time of Day", func() *Table { return hourTable(view.TimeOfDay) }},
		{analytics.PanelQualityScatter, "Quality vs Virality", func() *Table { return scatterTable(view.QualityScatter) }},
		{analytics.PanelCreativeMix, "Creative Mix", func() *Table { return mixTable(view.CreativeMix) }},
		{analytics.PanelEngagementQuality, "Engagement Quality by Visual Style", func() *Table { return visualTable(view.VisualStyles) }},
		{analytics.PanelReachEfficiency, "Reach Efficiency by Creative", func() *Table { return efficiencyTable(view.ReachEfficiency) }},
	}
	for _, s := range sections {
		if !show(s.panel) {
			continue
		}
		if err := renderSection(w, s.title, s.table()); err != nil {
			return err
		}
	}
	return renderSection(w, "Top Posts", topTable(view.TopPosts))
}

func renderSummary(w io.Writer, view *analytics.View) error {
	s := view.Summary
	filter := "all platforms"
	if len(view.Filter.Platforms) > 0 {
		filter = strings.Join(view.Filter.Platforms, ", ")
	}
	if len(view.Filter.HookTypes) > 0 {
		filter += " / " + strings.Join(view.Filter.HookTypes, ", ")
	}

	_, _ = fmt.Fprintf(w, "%s\n", SectionTitle("Social Intelligence Dashboard"))
	_, _ = fmt.Fprintf(w, "  %s, last %d day(s) since %s\n\n", filter, view.Filter.WindowDays, view.Cutoff.Format(time.DateOnly))

	tbl := NewTable(
		Column{Header: "Posts", Align: AlignRight},
		Column{Header: "Total Reach", Align: AlignRight},
		Column{Header: "Avg ER %", Align: AlignRight},
		Column{Header: "Avg Quality", Align: AlignRight, Color: ColorQuality},
		Column{Header: "Total Saves", Align: AlignRight},
		Column{Header: "Avg Viral Ratio", Align: AlignRight, Color: ColorViral},
	)
	tbl.AddRow(
		strconv.Itoa(s.Posts),
		strconv.Itoa(s.TotalReach),
		f(s.AvgEngagementRate, 2),
		f(s.AvgQualityScore, 1),
		strconv.Itoa(s.TotalSaves),
		f(s.AvgViralRatio, 1),
	)
	if err := tbl.Render(w); err != nil {
		return err
	}
	_, _ = fmt.Fprintln(w)
	return nil
}

func renderSection(w io.Writer, title string, tbl *Table) error {
	_, _ = fmt.Fprintf(w, "%s\n", SectionTitle(title))
	_, _ = fmt.Fprintf(w, "%s\n", strings.Repeat("-", len(title)))
	if tbl.Len() == 0 {
		_, _ = fmt.Fprintf(w, "  No posts match the filters.\n\n")
		return nil
	}
	if err := tbl.Render(w); err != nil {
		return err
	}
	_, _ = fmt.Fprintln(w)
	return nil
}

func hookTable(rows []analytics.HookPerformance) *Table {
	tbl := NewTable(
		Column{Header: "Hook", Color: ColorLabel},
		Column{Header: "Posts", Align: AlignRight},
		Column{Header: "Avg Reach", Align: AlignRight},
		Column{Header: "Avg Quality", Align: AlignRight},
		Column{Header: "Avg Saves", Align: AlignRight},
		Column{Header: "Avg Shares", Align: AlignRight},
	)
	for _, r := range rows {
		tbl.AddRow(r.HookType, strconv.Itoa(r.Posts), f(r.AvgReach, 0), f(r.AvgQualityScore, 0), f(r.AvgSaves, 0), f(r.AvgShares, 0))
	}
	return tbl
}

func hourTable(rows []analytics.HourPerformance) *Table {
	tbl := NewTable(
		Column{Header: "Hour"},
		Column{Header: "Posts", Align: AlignRight},
		Column{Header: "Avg Reach", Align: AlignRight},
		Column{Header: "Avg ER %", Align: AlignRight},
	)
	for _, r := range rows {
		tbl.AddRow(fmt.Sprintf("%02d:00", r.Hour), strconv.Itoa(r.Posts), f(r.AvgReach, 0), f(r.AvgEngagementRate, 2))
	}
	return tbl
}

func scatterTable(rows []analytics.QualityPoint) *Table {
	tbl := NewTable(
		Column{Header: "Post"},
		Column{Header: "Platform", Color: ColorLabel},
		Column{Header: "Quality", Align: AlignRight, Color: ColorQuality},
		Column{Header: "Viral Ratio", Align: AlignRight, Color: ColorViral},
		Column{Header: "Reach", Align: AlignRight},
		Column{Header: "Saves", Align: AlignRight},
	)
	for _, r := range rows {
		tbl.AddRow(r.PostID, r.Platform, f(r.QualityScore, 1), f(r.ViralRatio, 2), strconv.Itoa(r.Reach), strconv.Itoa(r.Saves))
	}
	return tbl
}

func mixTable(rows []analytics.CreativeShare) *Table {
	tbl := NewTable(
		Column{Header: "Creative", Color: ColorLabel},
		Column{Header: "Posts", Align: AlignRight},
		Column{Header: "Share %", Align: AlignRight},
	)
	for _, r := range rows {
		tbl.AddRow(r.CreativeType, strconv.Itoa(r.Posts), f(r.Percent, 1))
	}
	return tbl
}

func visualTable(rows []analytics.VisualStyleRates) *Table {
	tbl := NewTable(
		Column{Header: "Visual Style", Color: ColorLabel},
		Column{Header: "Posts", Align: AlignRight},
		Column{Header: "Save Rate %", Align: AlignRight},
		Column{Header: "Share Rate %", Align: AlignRight},
		Column{Header: "ER %", Align: AlignRight},
	)
	for _, r := range rows {
		tbl.AddRow(r.VisualStyle, strconv.Itoa(r.Posts), f(r.AvgSaveRate, 3), f(r.AvgShareRate, 3), f(r.AvgEngagementRate, 2))
	}
	return tbl
}

func efficiencyTable(rows []analytics.CreativeEfficiency) *Table {
	tbl := NewTable(
		Column{Header: "Creative", Color: ColorLabel},
		Column{Header: "Posts", Align: AlignRight},
		Column{Header: "Reach / Follower", Align: AlignRight},
	)
	for _, r := range rows {
		tbl.AddRow(r.CreativeType, strconv.Itoa(r.Posts), f(r.AvgReachEfficiency, 2))
	}
	return tbl
}

func topTable(rows []analytics.TableRow) *Table {
	tbl := NewTable(
		Column{Header: "Post"},
		Column{Header: "Platform", Color: ColorLabel},
		Column{Header: "Date"},
		Column{Header: "Hook"},
		Column{Header: "Creative"},
		Column{Header: "Reach", Align: AlignRight},
		Column{Header: "ER %", Align: AlignRight},
		Column{Header: "Quality", Align: AlignRight, Color: ColorQuality},
		Column{Header: "Viral", Align: AlignRight, Color: ColorViral},
	)
	for _, r := range rows {
		tbl.AddRow(r.PostID, r.Platform, r.Date, r.HookType, r.CreativeType,
			strconv.Itoa(r.Reach), f(r.EngagementRate, 2), f(r.QualityScore, 1), f(r.ViralRatio, 2))
	}
	return tbl
}
