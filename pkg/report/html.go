// pkg/report/html.go

package report

import (
	"bytes"
	"html/template"
	"sort"
	"strings"

	cerr "github.com/cockroachdb/errors"

	"github.com/stoshu2/opsreport/pkg/classify"
)

// badgeClass maps severities to the stylesheet classes.
var badgeClass = map[classify.Severity]string{
	classify.SeverityOK:      "ok",
	classify.SeverityWarning: "warn",
	classify.SeverityFailed:  "bad",
	classify.SeverityStale:   "stale",
}

var htmlTmpl = template.Must(template.New("report").Funcs(template.FuncMap{
	"badge": func(s classify.Severity) template.HTML {
		cls, ok := badgeClass[s]
		if !ok {
			cls = "ok"
		}
		var b strings.Builder
		b.WriteString(`<span class='badge `)
		b.WriteString(cls)
		b.WriteString(`'>`)
		b.WriteString(template.HTMLEscapeString(strings.ToUpper(string(s))))
		b.WriteString(`</span>`)
		return template.HTML(b.String())
	},
	"attrs": func(m map[string]string) string {
		if len(m) == 0 {
			return ""
		}
		parts := make([]string, 0, len(m))
		for _, k := range sortedKeys(m) {
			parts = append(parts, k+"="+m[k])
		}
		return strings.Join(parts, "; ")
	},
	"title": func(s classify.Severity) string {
		switch s {
		case classify.SeverityFailed:
			return "Failed"
		case classify.SeverityWarning:
			return "Warnings"
		case classify.SeverityStale:
			return "Stale"
		default:
			return "OK"
		}
	},
}).Parse(htmlSource))

// RenderHTML produces the self-contained HTML document. No external assets:
// the stylesheet is inlined, matching the JSON content exactly.
func (r *Report) RenderHTML() ([]byte, error) {
	data := struct {
		*Report
		Severities []classify.Severity
	}{r, classify.WorstFirst()}

	var buf bytes.Buffer
	if err := htmlTmpl.Execute(&buf, data); err != nil {
		return nil, cerr.Wrap(err, "rendering HTML report")
	}
	return buf.Bytes(), nil
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

const htmlSource = `<!doctype html>
<html>
<head>
  <meta charset="utf-8" />
  <title>{{.Meta.Title}} - {{.Meta.Host}}</title>
  <style>
    body { font-family: Segoe UI, Arial, sans-serif; margin: 24px; }
    h1 { margin-bottom: 6px; }
    .meta { color: #555; margin-bottom: 18px; }
    .badge { display: inline-block; padding: 2px 8px; border-radius: 999px; font-weight: 700; font-size: 12px; }
    .ok { background: #e9f7ef; }
    .warn { background: #fff4e5; }
    .bad { background: #fdecea; }
    .stale { background: #ede7f6; }
    table { border-collapse: collapse; width: 100%; margin: 10px 0 22px; }
    th, td { border: 1px solid #ddd; padding: 8px; font-size: 14px; vertical-align: top; }
    th { text-align: left; background: #f6f6f6; }
    code { background: #f4f4f4; padding: 2px 4px; border-radius: 4px; }
  </style>
</head>
<body>
  <h1>{{.Meta.Title}}</h1>
  <div class="meta">
    <div><b>Host:</b> {{.Meta.Host}}</div>
    <div><b>Generated:</b> {{.Meta.GeneratedAt.Format "2006-01-02 15:04:05"}}</div>
    <div><b>Run ID:</b> <code>{{.Meta.RunID}}</code></div>
    {{- if .Meta.TicketLabel}}
    <div><b>Ticket:</b> {{.Meta.TicketLabel}}</div>
    {{- end}}
  </div>

  <h2>Summary</h2>
  <table>
    <thead><tr><th>Total</th>{{range .Severities}}<th>{{title .}}</th>{{end}}</tr></thead>
    <tbody>
      <tr>
        <td>{{.Counts.Total}}</td>
        {{- $c := .Counts}}
        {{range .Severities}}<td>{{index $c .}}</td>{{end}}
      </tr>
    </tbody>
  </table>

  {{range $sev := .Severities}}
  {{- $group := $.BySeverity $sev}}
  {{- if $group}}
  <h2>{{title $sev}}</h2>
  <table>
    <thead><tr><th>Status</th><th>Entity</th><th>Reason</th><th>Details</th></tr></thead>
    <tbody>
    {{- range $group}}
      <tr><td>{{badge .Severity}}</td><td>{{.Name}}</td><td>{{.Reason}}</td><td>{{attrs .Attributes}}</td></tr>
    {{- end}}
    </tbody>
  </table>
  {{- end}}
  {{end}}

  {{range .Sections}}
  <h2>{{.Title}}</h2>
  <table>
    <thead><tr>{{range .Headers}}<th>{{.}}</th>{{end}}</tr></thead>
    <tbody>
    {{- if .Rows}}
    {{- range .Rows}}
      <tr>{{range .}}<td>{{.}}</td>{{end}}</tr>
    {{- end}}
    {{- else}}
      <tr><td colspan="{{len .Headers}}"><i>No data</i></td></tr>
    {{- end}}
    </tbody>
  </table>
  {{end}}
</body>
</html>
`
