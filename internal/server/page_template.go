package server

const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Social Intelligence Dashboard</title>
<style>
:root {
  --bg: #fff; --fg: #1a1a2e; --card-bg: #f8f9fa; --border: #dee2e6;
  --table-alt: #f1f3f5; --muted: #6c757d; --accent: #667eea; --error: #dc3545;
}
@media (prefers-color-scheme: dark) {
  :root {
    --bg: #1a1a2e; --fg: #e9ecef; --card-bg: #16213e; --border: #495057;
    --table-alt: #0f3460; --muted: #adb5bd; --accent: #8fa2ff; --error: #f55;
  }
}
* { box-sizing: border-box; margin: 0; padding: 0; }
body { font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif; background: var(--bg); color: var(--fg); line-height: 1.5; display: grid; grid-template-columns: 260px 1fr; min-height: 100vh; }
@media (max-width: 900px) { body { grid-template-columns: 1fr; } }
aside { background: var(--card-bg); border-right: 1px solid var(--border); padding: 1rem; }
aside h2 { font-size: 1rem; margin-bottom: .75rem; }
aside fieldset { border: none; margin-bottom: 1rem; }
aside legend { font-size: .75rem; text-transform: uppercase; color: var(--muted); margin-bottom: .25rem; }
aside label { display: block; font-size: .875rem; }
aside input[type=number] { width: 5rem; padding: .25rem; }
aside button, aside a.button { display: inline-block; margin-top: .5rem; padding: .375rem .75rem; border: 1px solid var(--accent); border-radius: 4px; background: var(--accent); color: #fff; text-decoration: none; font-size: .875rem; cursor: pointer; }
.dot { display: inline-block; width: .625rem; height: .625rem; border-radius: 50%; margin-right: .25rem; }
main { padding: 1rem 1.5rem; max-width: 1400px; }
header { margin-bottom: 1.5rem; }
header h1 { font-size: 1.5rem; }
header p { color: var(--muted); font-size: .875rem; }
.error { border: 1px solid var(--error); color: var(--error); border-radius: 8px; padding: .75rem; margin-bottom: 1rem; }
.cards { display: grid; grid-template-columns: repeat(auto-fit, minmax(140px, 1fr)); gap: .75rem; margin-bottom: 1.5rem; }
.card { background: var(--card-bg); border: 1px solid var(--border); border-radius: 8px; padding: .75rem; text-align: center; }
.card .value { font-size: 1.5rem; font-weight: 700; }
.card .label { font-size: .75rem; color: var(--muted); text-transform: uppercase; }
.panels { display: grid; grid-template-columns: repeat(2, 1fr); gap: 1rem; margin-bottom: 1.5rem; }
@media (max-width: 1100px) { .panels { grid-template-columns: 1fr; } }
.panel { background: var(--card-bg); border: 1px solid var(--border); border-radius: 8px; padding: 1rem; overflow-x: auto; }
.panel h3 { font-size: .875rem; margin-bottom: .5rem; }
.bar { height: .5rem; background: var(--accent); border-radius: 2px; min-width: 1px; }
table { width: 100%; border-collapse: collapse; font-size: .8125rem; }
th, td { padding: .375rem .5rem; text-align: left; border-bottom: 1px solid var(--border); white-space: nowrap; }
td.num, th.num { text-align: right; }
tr:nth-child(even) { background: var(--table-alt); }
.empty { color: var(--muted); font-size: .875rem; }
</style>
</head>
<body>
<aside>
  <h2>Filters</h2>
  <form method="get" action="/">
    <fieldset>
      <legend>Platforms</legend>
      {{range .Platforms}}<label><input type="checkbox" name="platform" value="{{.Name}}"{{if .Selected}} checked{{end}}> <span class="dot" style="{{.Color}}"></span>{{.Name}}</label>
      {{end}}
    </fieldset>
    <fieldset>
      <legend>Hook types</legend>
      {{range .HookTypes}}<label><input type="checkbox" name="hook" value="{{.Name}}"{{if .Selected}} checked{{end}}> {{.Name}}</label>
      {{end}}
    </fieldset>
    <fieldset>
      <legend>Last N days</legend>
      <input type="number" name="days" min="1" max="{{.Lookback}}" value="{{.Days}}">
    </fieldset>
    <button type="submit">Apply</button>
  </form>
  <a class="button" href="{{.ExportURL}}">Download CSV</a>
</aside>
<main>
<header>
  <h1>Social Intelligence Dashboard</h1>
  <p>Generated {{.GeneratedAt}} &middot; last {{.Days}} day(s){{with .View}} &middot; {{.Summary.Posts}} post(s) selected{{end}}</p>
</header>
{{if .Error}}<div class="error">{{.Error}}</div>{{end}}
{{with .View}}
<section class="cards" id="summary">
  <div class="card"><div class="value">{{.Summary.TotalReach}}</div><div class="label">Total Reach</div></div>
  <div class="card"><div class="value">{{f2 .Summary.AvgEngagementRate}}%</div><div class="label">Avg Engagement Rate</div></div>
  <div class="card"><div class="value">{{f1 .Summary.AvgQualityScore}}</div><div class="label">Avg Quality Score</div></div>
  <div class="card"><div class="value">{{.Summary.TotalSaves}}</div><div class="label">Total Saves</div></div>
  <div class="card"><div class="value">{{f1 .Summary.AvgViralRatio}}</div><div class="label">Avg Viral Ratio</div></div>
</section>

<section class="panels" id="panels">
  {{if index $.Panels "hook_performance"}}
  <div class="panel" id="hook-performance"><h3>Hook Performance</h3>
  {{if .HookPerformance}}<table><thead><tr><th>Hook</th><th class="num">Posts</th><th class="num">Avg Reach</th><th></th><th class="num">Avg Quality</th><th class="num">Avg Saves</th><th class="num">Avg Shares</th></tr></thead><tbody>
  {{range .HookPerformance}}<tr><td>{{.HookType}}</td><td class="num">{{.Posts}}</td><td class="num">{{f0 .AvgReach}}</td><td style="width:30%"><div class="bar" style="{{bar .AvgReach $.MaxHookReach}}"></div></td><td class="num">{{f0 .AvgQualityScore}}</td><td class="num">{{f0 .AvgSaves}}</td><td class="num">{{f0 .AvgShares}}</td></tr>
  {{end}}</tbody></table>{{else}}<p class="empty">No posts match the filters.</p>{{end}}
  </div>
  {{end}}

  {{if index $.Panels "time_of_day"}}
  <div class="panel" id="time-of-day"><h3>Time of Day</h3>
  {{if .TimeOfDay}}<table><thead><tr><th>Hour</th><th class="num">Posts</th><th class="num">Avg Reach</th><th class="num">Avg ER %</th><th></th></tr></thead><tbody>
  {{range .TimeOfDay}}<tr><td>{{printf "%02d:00" .Hour}}</td><td class="num">{{.Posts}}</td><td class="num">{{f0 .AvgReach}}</td><td class="num">{{f2 .AvgEngagementRate}}</td><td style="width:30%"><div class="bar" style="{{bar .AvgEngagementRate $.MaxHourER}}"></div></td></tr>
  {{end}}</tbody></table>{{else}}<p class="empty">No posts match the filters.</p>{{end}}
  </div>
  {{end}}

  {{if index $.Panels "quality_scatter"}}
  <div class="panel" id="quality-scatter"><h3>Quality vs Virality</h3>
  {{if .QualityScatter}}<table><thead><tr><th>Post</th><th>Platform</th><th class="num">Quality</th><th class="num">Viral Ratio</th><th class="num">Reach</th><th>Hook</th><th>Creative</th><th class="num">Saves</th></tr></thead><tbody>
  {{range .QualityScatter}}<tr><td>{{.PostID}}</td><td>{{.Platform}}</td><td class="num">{{f1 .QualityScore}}</td><td class="num">{{f2 .ViralRatio}}</td><td class="num">{{.Reach}}</td><td>{{.HookType}}</td><td>{{.CreativeType}}</td><td class="num">{{.Saves}}</td></tr>
  {{end}}</tbody></table>{{else}}<p class="empty">No posts match the filters.</p>{{end}}
  </div>
  {{end}}

  {{if index $.Panels "creative_mix"}}
  <div class="panel" id="creative-mix"><h3>Creative Mix</h3>
  {{if .CreativeMix}}<table><thead><tr><th>Creative</th><th class="num">Posts</th><th class="num">Share</th><th></th></tr></thead><tbody>
  {{range .CreativeMix}}<tr><td>{{.CreativeType}}</td><td class="num">{{.Posts}}</td><td class="num">{{f1 .Percent}}%</td><td style="width:40%"><div class="bar" style="{{bar .Percent 100.0}}"></div></td></tr>
  {{end}}</tbody></table>{{else}}<p class="empty">No posts match the filters.</p>{{end}}
  </div>
  {{end}}

  {{if index $.Panels "engagement_quality"}}
  <div class="panel" id="engagement-quality"><h3>Engagement Quality by Visual Style</h3>
  {{if .VisualStyles}}<table><thead><tr><th>Visual Style</th><th class="num">Posts</th><th class="num">Save Rate %</th><th class="num">Share Rate %</th><th class="num">ER %</th></tr></thead><tbody>
  {{range .VisualStyles}}<tr><td>{{.VisualStyle}}</td><td class="num">{{.Posts}}</td><td class="num">{{f3 .AvgSaveRate}}</td><td class="num">{{f3 .AvgShareRate}}</td><td class="num">{{f2 .AvgEngagementRate}}</td></tr>
  {{end}}</tbody></table>{{else}}<p class="empty">No posts match the filters.</p>{{end}}
  </div>
  {{end}}

  {{if index $.Panels "reach_efficiency"}}
  <div class="panel" id="reach-efficiency"><h3>Reach Efficiency by Creative</h3>
  {{if .ReachEfficiency}}<table><thead><tr><th>Creative</th><th class="num">Posts</th><th class="num">Reach / Follower</th><th></th></tr></thead><tbody>
  {{range .ReachEfficiency}}<tr><td>{{.CreativeType}}</td><td class="num">{{.Posts}}</td><td class="num">{{f2 .AvgReachEfficiency}}</td><td style="width:40%"><div class="bar" style="{{bar .AvgReachEfficiency $.MaxEff}}"></div></td></tr>
  {{end}}</tbody></table>{{else}}<p class="empty">No posts match the filters.</p>{{end}}
  </div>
  {{end}}
</section>

<section class="panel" id="top-posts">
  <h3>Top Posts</h3>
  {{if .TopPosts}}<table><thead><tr><th>Post</th><th>Platform</th><th>Date</th><th>Hook</th><th>Creative</th><th>Visual</th><th class="num">Reach</th><th class="num">ER %</th><th class="num">Quality</th><th class="num">Save Rate %</th><th class="num">Viral Ratio</th></tr></thead><tbody>
  {{range .TopPosts}}<tr><td>{{.PostID}}</td><td>{{.Platform}}</td><td>{{.Date}}</td><td>{{.HookType}}</td><td>{{.CreativeType}}</td><td>{{.VisualStyle}}</td><td class="num">{{.Reach}}</td><td class="num">{{f2 .EngagementRate}}</td><td class="num">{{f1 .QualityScore}}</td><td class="num">{{f3 .SaveRate}}</td><td class="num">{{f2 .ViralRatio}}</td></tr>
  {{end}}</tbody></table>{{else}}<p class="empty">No posts match the filters.</p>{{end}}
</section>
{{end}}
</main>
</body>
</html>
`
