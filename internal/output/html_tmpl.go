package output

const htmlTemplate = `<!DOCTYPE html>
<html lang="id">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}</title>
<style>
:root {
  --bg: #fff; --fg: #1a1a2e; --card-bg: #f8f9fa; --border: #dee2e6;
  --table-alt: #f1f3f5; --hover: #e9ecef; --muted: #6c757d;
  --accent: #9fc131;
}
@media (prefers-color-scheme: dark) {
  :root {
    --bg: #1a1a2e; --fg: #e9ecef; --card-bg: #16213e; --border: #495057;
    --table-alt: #0f3460; --hover: #1a1a4e; --muted: #adb5bd;
    --accent: #b5d94a;
  }
}
* { box-sizing: border-box; margin: 0; padding: 0; }
body { font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif; background: var(--bg); color: var(--fg); line-height: 1.5; }
.layout { display: grid; grid-template-columns: 260px 1fr; min-height: 100vh; }
@media (max-width: 900px) { .layout { grid-template-columns: 1fr; } }
aside { background: var(--card-bg); border-right: 1px solid var(--border); padding: 1rem; }
aside h2 { font-size: 1rem; margin-bottom: .75rem; }
aside label { display: block; font-size: .75rem; color: var(--muted); text-transform: uppercase; margin: .75rem 0 .25rem; }
aside select { width: 100%; padding: .25rem; border: 1px solid var(--border); border-radius: 4px; background: var(--bg); color: var(--fg); font-size: .8125rem; }
aside button { margin-top: 1rem; width: 100%; padding: .5rem; border: 0; border-radius: 4px; background: var(--accent); color: #1a1a2e; font-weight: 600; cursor: pointer; }
main { padding: 1rem 1.5rem; max-width: 1400px; }
header { margin-bottom: 1.5rem; }
header h1 { font-size: 1.5rem; margin-bottom: .25rem; }
header .heading { font-size: 1.125rem; font-weight: 600; margin-bottom: .25rem; }
header p { color: var(--muted); font-size: .875rem; }
.cards { display: grid; grid-template-columns: repeat(3, 1fr); gap: .75rem; margin-bottom: 1.5rem; }
.card { background: var(--card-bg); border: 1px solid var(--border); border-radius: 8px; padding: .75rem; }
.card .value { font-size: 1.75rem; font-weight: 700; }
.card .label { font-size: .75rem; color: var(--muted); text-transform: uppercase; }
.sections { display: grid; grid-template-columns: repeat(2, 1fr); gap: 1rem; }
@media (max-width: 1100px) { .sections { grid-template-columns: 1fr; } }
.chart-box { background: var(--card-bg); border: 1px solid var(--border); border-radius: 8px; padding: 1rem; overflow-x: auto; }
.chart-box.wide { grid-column: 1 / -1; }
.chart-box h3 { font-size: .9375rem; margin-bottom: .5rem; }
.chart-box img { max-width: 100%; }
.skipped { color: var(--muted); font-style: italic; font-size: .875rem; }
details { margin-top: .5rem; font-size: .8125rem; }
table { width: 100%; border-collapse: collapse; font-size: .8125rem; margin-top: .5rem; }
th, td { padding: .375rem .5rem; text-align: left; border-bottom: 1px solid var(--border); }
td.num, th.num { text-align: right; font-variant-numeric: tabular-nums; }
tr:nth-child(even) { background: var(--table-alt); }
tr:hover { background: var(--hover); }
</style>
</head>
<body>
<div class="layout">
<aside>
  <h2>Filters</h2>
  {{if .Interactive}}
  <form method="get" action="">
    <label for="page">Halaman</label>
    <select id="page" name="page">
      {{range .Pages}}<option value="{{.}}"{{if eq . $.Page}} selected{{end}}>{{.}}</option>{{end}}
    </select>
    {{range .Options}}
    <label for="f-{{.Name}}">{{.Label}}</label>
    <select id="f-{{.Name}}" name="{{.Name}}" multiple size="5">
      {{range .Values}}<option value="{{.Value}}"{{if .Selected}} selected{{end}}>{{.Value}}</option>{{end}}
    </select>
    {{end}}
    <button type="submit">Terapkan</button>
  </form>
  {{else}}
  <p class="skipped">{{.Filters}}</p>
  {{range .Options}}
  <label>{{.Label}}</label>
  <div>{{len .Values}} pilihan</div>
  {{end}}
  {{end}}
</aside>
<main>
<header>
  <h1>&#128202; {{.Title}}</h1>
  {{if .Heading}}<div class="heading" id="heading">{{.Heading}}</div>{{end}}
  <p>Generated {{.GeneratedAt}} &middot; {{.Source}} &middot; {{.ViewRows}} of {{.TotalRows}} rows{{if .Rejected}} &middot; {{.Rejected}} rows rejected at load{{end}}</p>
</header>

<h2 style="font-size:1.125rem;margin-bottom:.5rem">KPI Metrics</h2>
<section class="cards" id="kpis">
  {{range .Metrics}}<div class="card"><div class="label">{{.Label}}</div><div class="value">{{.Value}}</div></div>{{end}}
</section>

<section class="sections" id="sections">
{{range $sec := .Sections}}{{if ne .Name "kpi"}}
  <div class="chart-box{{if or (eq .Name "quota-by-year") (eq .Name "trend") (eq .Name "program-summary")}} wide{{end}}" id="section-{{.Name}}">
    <h3>{{.Title}}</h3>
    {{if .Skipped}}<p class="skipped">{{.Reason}}</p>{{else}}
    {{if .ImgSrc}}<img src="{{.ImgSrc}}" alt="{{.Title}}">{{else if .SVG}}{{.SVG}}{{end}}
    {{if .Header}}
    <details{{if not (or .SVG .ImgSrc)}} open{{end}}><summary>Data</summary>
    <table>
      <thead><tr>{{range $i, $h := .Header}}<th{{if index $sec.Numeric $i}} class="num"{{end}}>{{$h}}</th>{{end}}</tr></thead>
      <tbody>
      {{range .Rows}}<tr>{{range $i, $c := .}}<td{{if index $sec.Numeric $i}} class="num"{{end}}>{{$c}}</td>{{end}}</tr>
      {{end}}
      </tbody>
    </table>
    </details>
    {{end}}{{end}}
  </div>
{{end}}{{end}}
</section>
</main>
</div>
</body>
</html>
`
