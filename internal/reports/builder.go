package reports

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"

	"epichart/internal/charts"
	"epichart/internal/config"
	"epichart/internal/logger"
)

// Builder assembles the HTML report for a derived view
type Builder struct {
	goldmark goldmark.Markdown
	page     *template.Template
	cdn      string
	log      *logger.Logger
}

// TemplateData is what the report template renders
type TemplateData struct {
	Title       string
	GeneratedAt string
	Version     string
	Summary     template.HTML
	Charts      template.HTML
}

// NewBuilder creates a report builder that loads ECharts from cdn
func NewBuilder(cdn string) *Builder {
	md := goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			html.WithHardWraps(),
		),
	)

	return &Builder{
		goldmark: md,
		page:     template.Must(template.New("report").Parse(reportTemplate)),
		cdn:      cdn,
		log:      logger.GetGlobalLogger().WithComponent("reports"),
	}
}

// ConvertMarkdownToHTML converts markdown to HTML using goldmark
func (b *Builder) ConvertMarkdownToHTML(markdownContent string) (string, error) {
	var buf bytes.Buffer
	if err := b.goldmark.Convert([]byte(markdownContent), &buf); err != nil {
		return "", fmt.Errorf("failed to convert markdown: %w", err)
	}
	return buf.String(), nil
}

// Build renders the full report: summary on top, both charts stacked below
func (b *Builder) Build(v charts.View, generatedAt time.Time) (string, error) {
	summaryHTML, err := b.ConvertMarkdownToHTML(Summary(v))
	if err != nil {
		return "", err
	}

	snippets, err := charts.ViewSnippets(v)
	if err != nil {
		return "", fmt.Errorf("failed to build chart snippets: %w", err)
	}

	data := TemplateData{
		Title:       areaLabel(v.Area) + " 疫情趋势",
		GeneratedAt: generatedAt.UTC().Format("2006-01-02 15:04:05 UTC"),
		Version:     config.GetVersion(),
		Summary:     template.HTML(summaryHTML),
		Charts:      template.HTML(charts.StackedHTML(snippets, b.cdn)),
	}

	var buf bytes.Buffer
	if err := b.page.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}

	b.log.Debug("Built report", map[string]interface{}{
		"area":   v.Area,
		"points": v.Series.Len(),
		"bytes":  buf.Len(),
	})
	return buf.String(), nil
}

const reportTemplate = `<!DOCTYPE html>
<html lang="zh-CN">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}</title>
<style>
body { margin: 0; font-family: -apple-system, "PingFang SC", "Microsoft YaHei", sans-serif; color: #32325d; }
main { display: flex; flex-direction: column; height: 100vh; padding: 0 24px; box-sizing: border-box; }
.summary table { border-collapse: collapse; }
.summary th, .summary td { border: 1px solid #e9ecef; padding: 4px 12px; text-align: right; }
.charts { flex: 1 1 auto; min-height: 640px; }
footer { color: #8898aa; font-size: 12px; padding: 8px 0; }
</style>
</head>
<body>
<main>
<section class="summary">{{.Summary}}</section>
<section class="charts">{{.Charts}}</section>
<footer>生成于 {{.GeneratedAt}} · v{{.Version}}</footer>
</main>
</body>
</html>
`
