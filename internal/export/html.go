// Package export turns paginated resume layouts into HTML and prints them
// to PDF with a headless browser. Pagination decisions are made upstream;
// the HTML reproduces them exactly, one fixed-size page per layout page.
package export

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/jonathan/resume-studio/internal/pagination"
)

const pageTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<style>
  @page { size: A4; margin: 0; }
  html, body { margin: 0; padding: 0; }
  body { font-family: Helvetica, Arial, sans-serif; }
  .page {
    position: relative;
    width: {{.PageWidth}}pt;
    height: {{.PageHeight}}pt;
    overflow: hidden;
    page-break-after: always;
  }
  .page:last-child { page-break-after: auto; }
  .block { position: absolute; white-space: pre; }
  .bold { font-weight: bold; }
</style>
</head>
<body>
{{- range .Pages}}
<div class="page">
{{- range .Blocks}}
{{- if .Bullet}}
<div class="block" style="left: {{.BulletX}}pt; top: {{.Top}}pt; font-size: {{.Size}}pt; line-height: {{.LineHeight}}pt;">&#8226;</div>
{{- end}}
<div class="block{{if .Bold}} bold{{end}}" style="left: {{.Left}}pt; top: {{.Top}}pt; font-size: {{.Size}}pt; line-height: {{.LineHeight}}pt;">
{{- range $i, $line := .Lines}}{{if $i}}<br>{{end}}{{$line}}{{end -}}
</div>
{{- end}}
</div>
{{- end}}
</body>
</html>
`

var htmlTemplate = template.Must(template.New("resume").Parse(pageTemplate))

type documentView struct {
	PageWidth  string
	PageHeight string
	Pages      []pageView
}

type pageView struct {
	Blocks []blockView
}

type blockView struct {
	Left       string
	BulletX    string
	Top        string
	Size       string
	LineHeight string
	Bold       bool
	Bullet     bool
	Lines      []string
}

// RenderHTML produces a standalone HTML document from paginated layout.
// Block positions are emitted in points so the printed output matches the
// layout engine's geometry.
func RenderHTML(pages []pagination.Page) (string, error) {
	view := documentView{
		PageWidth:  pt(pagination.PageWidth),
		PageHeight: pt(pagination.PageHeight),
		Pages:      make([]pageView, 0, len(pages)),
	}

	for _, page := range pages {
		pv := pageView{Blocks: make([]blockView, 0, len(page.Blocks))}
		for _, block := range page.Blocks {
			pv.Blocks = append(pv.Blocks, blockView{
				Left:       pt(block.X),
				BulletX:    pt(pagination.Margin),
				Top:        pt(block.Y),
				Size:       pt(block.Style.Size),
				LineHeight: pt(block.Style.LineHeight()),
				Bold:       block.Style.Bold,
				Bullet:     block.Bullet,
				Lines:      block.Lines,
			})
		}
		view.Pages = append(view.Pages, pv)
	}

	var sb strings.Builder
	if err := htmlTemplate.Execute(&sb, view); err != nil {
		return "", fmt.Errorf("failed to render HTML: %w", err)
	}
	return sb.String(), nil
}

func pt(v float64) string {
	return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.2f", v), "0"), ".")
}
