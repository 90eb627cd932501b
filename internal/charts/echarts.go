package charts

import (
	"fmt"
	"io"
	"strconv"
	"time"

	echarts "github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
)

const dateKeyLayout = "20060102"

// NewLine converts a chart configuration into a go-echarts line chart
func NewLine(opt ChartOptions) *echarts.Line {
	line := echarts.NewLine()
	line.SetGlobalOptions(
		echarts.WithInitializationOpts(opts.Initialization{
			Width:  "100%",
			Height: "420px",
		}),
		echarts.WithTitleOpts(opts.Title{
			Title: opt.Title.Text,
		}),
		echarts.WithLegendOpts(opts.Legend{
			Show:   opts.Bool(true),
			Orient: opt.Legend.Orient,
			Data:   opt.Legend.Data,
			Right:  "10",
		}),
		echarts.WithTooltipOpts(opts.Tooltip{
			Show:    opts.Bool(true),
			Trigger: opt.Tooltip.Trigger,
		}),
		echarts.WithXAxisOpts(opts.XAxis{
			Name: opt.XAxis.Name,
			Type: opt.XAxis.Type,
		}),
		echarts.WithYAxisOpts(opts.YAxis{
			Name: opt.YAxis.Name,
		}),
		echarts.WithColorsOpts(opts.Colors(opt.Color)),
	)

	for _, s := range opt.Series {
		data := make([]opts.LineData, 0, len(s.Data))
		for _, p := range s.Data {
			data = append(data, opts.LineData{Value: []interface{}{dateValue(p.Date()), p.Value()}})
		}

		seriesOpts := []echarts.SeriesOpts{
			echarts.WithLineChartOpts(opts.LineChart{
				Stack:      s.Stack,
				SymbolSize: s.SymbolSize,
			}),
			echarts.WithLineStyleOpts(opts.LineStyle{
				Width: float32(s.LineStyle.Width),
			}),
		}
		if s.AreaStyle != nil {
			seriesOpts = append(seriesOpts, echarts.WithAreaStyleOpts(opts.AreaStyle{
				Color: s.AreaStyle.Color,
			}))
		}

		line.AddSeries(s.Name, data, seriesOpts...)
	}

	return line
}

// RenderPage writes a standalone go-echarts page with both charts stacked
func RenderPage(w io.Writer, v View, title string) error {
	page := components.NewPage()
	page.PageTitle = title

	for _, c := range v.Charts() {
		page.AddCharts(NewLine(c.Options))
	}

	if err := page.Render(w); err != nil {
		return fmt.Errorf("failed to render chart page: %w", err)
	}
	return nil
}

// dateValue formats a yyyymmdd date as an ISO date for the time axis.
// Other values are passed through unchanged.
func dateValue(date int64) interface{} {
	if t, ok := parseDate(date); ok {
		return t.Format("2006-01-02")
	}
	return date
}

func parseDate(date int64) (time.Time, bool) {
	key := strconv.FormatInt(date, 10)
	if len(key) != len(dateKeyLayout) {
		return time.Time{}, false
	}
	t, err := time.Parse(dateKeyLayout, key)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// FormatDate renders a yyyymmdd date as 2006-01-02, or as the bare number otherwise
func FormatDate(date int64) string {
	if t, ok := parseDate(date); ok {
		return t.Format("2006-01-02")
	}
	return strconv.FormatInt(date, 10)
}
