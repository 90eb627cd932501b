package reports

import (
	"fmt"
	"strings"

	"epichart/internal/charts"
	"epichart/internal/series"
)

func areaLabel(area string) string {
	if area == "" {
		return "未选择地区"
	}
	return area
}

// Summary writes a markdown overview of the latest snapshot for the view's area
func Summary(v charts.View) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "## %s\n\n", areaLabel(v.Area))

	date, latest, ok := v.Series.Latest()
	if !ok {
		sb.WriteString("暂无数据\n")
		return sb.String()
	}

	first := v.Series.Confirmed[0].Date()
	fmt.Fprintf(&sb, "数据区间: %s 至 %s, 共 %d 天\n\n", charts.FormatDate(first), charts.FormatDate(date), v.Series.Len())

	sb.WriteString("| 指标 | 最新 | 较前一日 |\n")
	sb.WriteString("|:-----|-----:|-----:|\n")
	rows := []struct {
		label string
		value int64
		data  []series.Point
	}{
		{"确诊", latest.Confirmed, v.Series.Confirmed},
		{"疑似", latest.Suspected, v.Series.Suspected},
		{"治愈", latest.Cured, v.Series.Cured},
		{"死亡", latest.Dead, v.Series.Dead},
	}
	for _, r := range rows {
		fmt.Fprintf(&sb, "| %s | %d | %s |\n", r.label, r.value, delta(r.data))
	}
	return sb.String()
}

// delta is the change between the last two points, or "-" with fewer than two
func delta(points []series.Point) string {
	n := len(points)
	if n < 2 {
		return "-"
	}
	return fmt.Sprintf("%+d", points[n-1].Value()-points[n-2].Value())
}
