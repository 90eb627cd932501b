package charts

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// DefaultEChartsCDN is the ECharts bundle loaded by generated snippets
const DefaultEChartsCDN = "https://cdn.jsdelivr.net/npm/echarts@5.4.3/dist/echarts.min.js"

// ErrUnknownChart is returned for a chart name other than the two known charts
var ErrUnknownChart = errors.New("unknown chart")

// ChartSnippet represents an embeddable ECharts chart fragment.
// Div holds a single root <div id="..." style="..."></div>.
// Script holds the <script>...</script> block that initializes the chart in that div.
// HTML is the div and script combined for template substitution.
type ChartSnippet struct {
	ID     string
	Title  string
	Div    string
	Script string
	HTML   string
}

// NewSnippet embeds opt verbatim as the ECharts option of a new chart element
func NewSnippet(id string, opt ChartOptions) (ChartSnippet, error) {
	optJSON, err := json.Marshal(opt)
	if err != nil {
		return ChartSnippet{}, fmt.Errorf("failed to marshal chart options: %w", err)
	}

	div := fmt.Sprintf("<div id=\"%s\" class=\"epi-chart\" style=\"width:100%%;height:100%%;\"></div>", id)
	script := fmt.Sprintf(`<script>(function(){var el=document.getElementById('%s');if(!el)return;var c=echarts.init(el);var option=%s;c.setOption(option);window.addEventListener('resize',function(){c.resize();});})();</script>`, id, string(optJSON))

	return ChartSnippet{
		ID:     id,
		Title:  opt.Title.Text,
		Div:    div,
		Script: script,
		HTML:   div + "\n" + script,
	}, nil
}

// ViewSnippets returns one snippet per chart, top to bottom
func ViewSnippets(v View) ([]ChartSnippet, error) {
	var snippets []ChartSnippet
	for _, c := range v.Charts() {
		snippet, err := NewSnippet("chart-"+c.Name, c.Options)
		if err != nil {
			return nil, fmt.Errorf("failed to build %s snippet: %w", c.Name, err)
		}
		snippets = append(snippets, snippet)
	}
	return snippets, nil
}

// StackedHTML lays the snippets out in a full-width column, sharing the
// container height equally, and loads ECharts from cdn once.
func StackedHTML(snippets []ChartSnippet, cdn string) string {
	if cdn == "" {
		cdn = DefaultEChartsCDN
	}

	var divs, scripts []string
	for _, s := range snippets {
		divs = append(divs, fmt.Sprintf(`<div style="flex:1 1 0;width:100%%;min-height:0;">%s</div>`, s.Div))
		scripts = append(scripts, s.Script)
	}

	return fmt.Sprintf(`<script src="%s"></script>
<div class="epi-charts" style="display:flex;flex-direction:column;width:100%%;height:100%%;">
	%s
</div>
%s`, cdn, strings.Join(divs, "\n\t"), strings.Join(scripts, "\n"))
}
