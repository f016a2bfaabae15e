package render

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/dreschagin/macro-watch/internal/application/dto"
)

// HTMLRenderer renders a run report as a self-contained HTML document
// suitable for email delivery, so every style is inlined.
type HTMLRenderer struct {
	tmpl *template.Template
}

func NewHTMLRenderer() (*HTMLRenderer, error) {
	tmpl, err := template.New("report").Funcs(template.FuncMap{
		"statusColor": statusColor,
		"statusLabel": statusLabel,
	}).Parse(reportTemplate)
	if err != nil {
		return nil, fmt.Errorf("parse report template: %w", err)
	}
	return &HTMLRenderer{tmpl: tmpl}, nil
}

func (r *HTMLRenderer) Render(report *dto.ReportDTO) ([]byte, string, error) {
	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, report); err != nil {
		return nil, "", fmt.Errorf("execute report template: %w", err)
	}
	return buf.Bytes(), "text/html; charset=utf-8", nil
}

func statusColor(status string) string {
	switch status {
	case "critical":
		return "#dc3545"
	case "warning":
		return "#f39c12"
	case "stable":
		return "#27ae60"
	case "info":
		return "#3498db"
	default:
		return "#95a5a6"
	}
}

func statusLabel(status string) string {
	switch status {
	case "critical":
		return "CRITICAL"
	case "warning":
		return "WARNING"
	case "stable":
		return "STABLE"
	case "info":
		return "INFO"
	default:
		return "NO DATA"
	}
}

const reportTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Macro Watch Report</title>
</head>
<body style="margin:0;padding:0;background-color:#f4f5f7;font-family:-apple-system,Segoe UI,Helvetica,Arial,sans-serif;color:#2c3e50;">
<div style="max-width:720px;margin:0 auto;padding:24px 16px;">

  <div style="background-color:{{statusColor .Overall}};color:#ffffff;border-radius:8px 8px 0 0;padding:20px 24px;">
    <h1 style="margin:0;font-size:20px;">Macro Watch</h1>
    <p style="margin:8px 0 0;font-size:14px;">{{.Summary}}</p>
  </div>

  <div style="background-color:#ffffff;border-radius:0 0 8px 8px;padding:8px 24px 24px;">
  {{range .Assessments}}
    <div style="border-bottom:1px solid #ecf0f1;padding:16px 0;{{if .Informational}}opacity:0.85;{{end}}">
      <table style="width:100%;border-collapse:collapse;">
        <tr>
          <td style="font-size:15px;font-weight:600;">{{.Title}}</td>
          <td style="text-align:right;">
            <span style="display:inline-block;background-color:{{statusColor .Status}};color:#ffffff;border-radius:4px;padding:2px 10px;font-size:11px;font-weight:700;">{{statusLabel .Status}}</span>
          </td>
        </tr>
      </table>
      <p style="margin:8px 0 0;font-size:22px;font-weight:700;">{{.DisplayValue}}</p>
      {{if .Error}}<p style="margin:6px 0 0;font-size:12px;color:#dc3545;">{{.Error}}</p>{{end}}
      {{if .Deltas}}
      <table style="margin-top:8px;border-collapse:collapse;font-size:12px;color:#7f8c8d;">
        {{range .Deltas}}<tr><td style="padding:1px 12px 1px 0;">{{.Label}}</td><td style="padding:1px 0;">{{.Display}}</td></tr>{{end}}
      </table>
      {{end}}
      {{if .Details}}
      <table style="margin-top:6px;border-collapse:collapse;font-size:12px;color:#7f8c8d;">
        {{range .Details}}<tr><td style="padding:1px 12px 1px 0;">{{.Label}}</td><td style="padding:1px 0;">{{.Value}}</td></tr>{{end}}
      </table>
      {{end}}
      {{if .ThresholdNote}}<p style="margin:8px 0 0;font-size:11px;color:#95a5a6;">{{.ThresholdNote}}</p>{{end}}
      {{if .Context}}<p style="margin:6px 0 0;font-size:12px;color:#7f8c8d;">{{.Context}}</p>{{end}}
      {{if .Freshness}}<p style="margin:6px 0 0;font-size:11px;color:#bdc3c7;">Data as of {{.Freshness}} &middot; {{.Source}}</p>{{end}}
    </div>
  {{end}}

    <p style="margin:20px 0 0;font-size:11px;color:#bdc3c7;">
      Run {{.RunID}} &middot; generated {{.GeneratedAt.Format "2006-01-02 15:04 MST"}}
      {{if .Host}}&middot; {{.Host.Hostname}} ({{.Host.Platform}}), up {{printf "%.1f" .Host.UptimeHours}}h, mem {{printf "%.0f" .Host.MemUsedPercent}}%{{end}}
    </p>
  </div>

</div>
</body>
</html>
`
