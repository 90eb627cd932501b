package charts

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/golang/freetype/truetype"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// minTickSpacing is the narrowest gap, in pixels, between two x-axis date labels
const minTickSpacing = 60

// PNGOptions sizes a rendered image. Font must cover CJK glyphs for the
// labels to be legible; nil falls back to go-chart's default font.
type PNGOptions struct {
	Width  int
	Height int
	Font   *truetype.Font
}

// RenderPNG draws opt as a PNG image. Stacked series are accumulated and
// filled with their area color; the y-axis always starts at zero.
func RenderPNG(w io.Writer, opt ChartOptions, po PNGOptions) error {
	var plotted []chart.Series
	stackTotals := make(map[string][]float64)
	dateSet := make(map[time.Time]struct{})
	maxY := 0.0

	for i, s := range opt.Series {
		color := seriesColor(opt.Color, i)
		xValues := make([]time.Time, len(s.Data))
		yValues := make([]float64, len(s.Data))

		totals := stackTotals[s.Stack]
		for j, p := range s.Data {
			xValues[j] = pointTime(p.Date())
			yValues[j] = float64(p.Value())
			if s.Stack != "" && j < len(totals) {
				yValues[j] += totals[j]
			}
			dateSet[xValues[j]] = struct{}{}
			maxY = math.Max(maxY, yValues[j])
		}
		if s.Stack != "" {
			stackTotals[s.Stack] = yValues
		}

		style := chart.Style{
			StrokeColor: color,
			StrokeWidth: float64(s.LineStyle.Width),
			DotColor:    color,
			DotWidth:    float64(s.SymbolSize) / 2,
		}
		if s.AreaStyle != nil {
			style.FillColor = hexColor(s.AreaStyle.Color)
		}

		plotted = append(plotted, chart.TimeSeries{
			Name:    s.Name,
			Style:   style,
			XValues: xValues,
			YValues: yValues,
		})
	}

	// Stacked fills are painted top series first so lower bands stay visible.
	if len(stackTotals) > 0 {
		for i, j := 0, len(plotted)-1; i < j; i, j = i+1, j-1 {
			plotted[i], plotted[j] = plotted[j], plotted[i]
		}
	}

	dates := make([]time.Time, 0, len(dateSet))
	for d := range dateSet {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	// The x range follows the ticks, so it needs two distinct dates.
	switch len(dates) {
	case 0:
		today := time.Now().UTC().Truncate(24 * time.Hour)
		dates = []time.Time{today.AddDate(0, 0, -1), today}
	case 1:
		dates = []time.Time{dates[0].AddDate(0, 0, -1), dates[0]}
	}
	maxX := dates[len(dates)-1]

	// go-chart rejects series without values; an empty series is drawn as a zero point.
	for i, p := range plotted {
		if ts := p.(chart.TimeSeries); len(ts.XValues) == 0 {
			ts.XValues = []time.Time{maxX}
			ts.YValues = []float64{0}
			plotted[i] = ts
		}
	}

	graph := chart.Chart{
		Title: opt.Title.Text,
		TitleStyle: chart.Style{
			FontSize:  14,
			FontColor: drawing.ColorBlack,
		},
		Width:  po.Width,
		Height: po.Height,
		Font:   po.Font,
		Background: chart.Style{
			Padding: chart.Box{Top: 50, Left: 20, Right: 20, Bottom: 20},
		},
		XAxis: chart.XAxis{
			Name:           opt.XAxis.Name,
			Ticks:          dateTicks(dates, maxDateTicks(po.Width)),
			ValueFormatter: dateFormatter,
		},
		YAxis: chart.YAxis{
			Name:           opt.YAxis.Name,
			Ticks:          countTicks(maxY, 5),
			ValueFormatter: countFormatter,
		},
		Series: plotted,
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	if err := graph.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("failed to render %q chart: %w", opt.Title.Text, err)
	}
	return nil
}

func maxDateTicks(width int) int {
	if n := width / minTickSpacing; n > 2 {
		return n
	}
	return 2
}

// dateTicks labels at most max of the sorted dates, evenly thinned.
// The first and last dates are always labelled.
func dateTicks(dates []time.Time, max int) []chart.Tick {
	if len(dates) == 0 {
		return nil
	}
	last := len(dates) - 1
	step := 1
	if max > 1 && len(dates) > max {
		step = (last + max - 2) / (max - 1)
	}

	var ticks []chart.Tick
	for i := 0; i < last; i += step {
		ticks = append(ticks, chart.Tick{Value: chart.TimeToFloat64(dates[i]), Label: dates[i].Format("01-02")})
	}
	return append(ticks, chart.Tick{Value: chart.TimeToFloat64(dates[last]), Label: dates[last].Format("01-02")})
}

// countTicks spaces about n integer ticks from zero to just above maxY
func countTicks(maxY float64, n int) []chart.Tick {
	step := niceStep(maxY / float64(n))
	top := (math.Floor(maxY/step) + 1) * step

	var ticks []chart.Tick
	for v := 0.0; v <= top; v += step {
		ticks = append(ticks, chart.Tick{Value: v, Label: countFormatter(v)})
	}
	return ticks
}

// niceStep rounds raw up to 1, 2 or 5 times a power of ten, never below 1
func niceStep(raw float64) float64 {
	if raw <= 1 {
		return 1
	}
	mag := math.Pow(10, math.Floor(math.Log10(raw)))
	for _, m := range []float64{1, 2, 5} {
		if raw <= m*mag {
			return m * mag
		}
	}
	return 10 * mag
}

func dateFormatter(v interface{}) string {
	switch tv := v.(type) {
	case float64:
		return chart.TimeFromFloat64(tv).UTC().Format("01-02")
	case time.Time:
		return tv.UTC().Format("01-02")
	}
	return ""
}

func countFormatter(v interface{}) string {
	if f, ok := v.(float64); ok {
		return strconv.FormatFloat(math.Round(f), 'f', 0, 64)
	}
	return fmt.Sprint(v)
}

// pointTime maps a yyyymmdd date to midnight UTC; other integers count days from the epoch
func pointTime(date int64) time.Time {
	if t, ok := parseDate(date); ok {
		return t
	}
	return time.Unix(0, 0).UTC().AddDate(0, 0, int(date))
}

func seriesColor(palette []string, i int) drawing.Color {
	if len(palette) == 0 {
		return chart.GetDefaultColor(i)
	}
	return hexColor(palette[i%len(palette)])
}

func hexColor(hex string) drawing.Color {
	return drawing.ColorFromHex(strings.TrimPrefix(hex, "#"))
}
