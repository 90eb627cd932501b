package charts

import (
	"epichart/internal/series"
)

// Fixed styling shared by every line series
const (
	LineWidth  = 5
	SymbolSize = 10
)

const (
	chartHeight    = "50%"
	stackTotal     = "总量"
	axisTime       = "时间"
	axisCases      = "例"
	axisPeople     = "人数"
	labelConfirmed = "确诊"
	labelSuspected = "疑似"
	labelCured     = "治愈"
	labelDead      = "死亡"
)

// ChartOptions is the ECharts option object handed to the chart wrapper.
// Field names and nesting follow the ECharts option schema.
type ChartOptions struct {
	Height  string       `json:"height"`
	Title   Title        `json:"title"`
	Legend  Legend       `json:"legend"`
	Tooltip Tooltip      `json:"tooltip"`
	XAxis   Axis         `json:"xAxis"`
	YAxis   Axis         `json:"yAxis"`
	Series  []LineSeries `json:"series"`
	Color   []string     `json:"color"`
}

type Title struct {
	Text string `json:"text"`
}

type Legend struct {
	Orient string   `json:"orient"`
	Data   []string `json:"data"`
}

type Tooltip struct {
	Trigger string `json:"trigger"`
}

// Axis carries both name and title; title is only set where the
// existing wrapper expects it.
type Axis struct {
	Name  string `json:"name"`
	Title string `json:"title,omitempty"`
	Type  string `json:"type,omitempty"`
}

type LineSeries struct {
	Name       string         `json:"name"`
	Data       []series.Point `json:"data"`
	Type       string         `json:"type"`
	Stack      string         `json:"stack,omitempty"`
	SymbolSize int            `json:"symbolSize"`
	LineStyle  LineStyle      `json:"lineStyle"`
	AreaStyle  *AreaStyle     `json:"areaStyle,omitempty"`
}

type LineStyle struct {
	Width int `json:"width"`
}

type AreaStyle struct {
	Color string `json:"color"`
}

func lineSeries(name string, data []series.Point) LineSeries {
	if data == nil {
		data = []series.Point{}
	}
	return LineSeries{
		Name:       name,
		Data:       data,
		Type:       "line",
		SymbolSize: SymbolSize,
		LineStyle:  LineStyle{Width: LineWidth},
	}
}

// ConfirmedSuspectedOptions builds the stacked-area chart of confirmed and suspected cases for area
func ConfirmedSuspectedOptions(s series.Series, area string) ChartOptions {
	confirmed := lineSeries(labelConfirmed, s.Confirmed)
	confirmed.Stack = stackTotal
	confirmed.AreaStyle = &AreaStyle{Color: "#f6bdcd"}

	suspected := lineSeries(labelSuspected, s.Suspected)
	suspected.Stack = stackTotal
	suspected.AreaStyle = &AreaStyle{Color: "#f9e4ba"}

	return ChartOptions{
		Height:  chartHeight,
		Title:   Title{Text: area + "疫情确诊/疑似数"},
		Legend:  Legend{Orient: "horizontal", Data: []string{labelConfirmed, labelSuspected}},
		Tooltip: Tooltip{Trigger: "axis"},
		XAxis:   Axis{Name: axisTime, Type: "time"},
		YAxis:   Axis{Name: axisCases},
		Series:  []LineSeries{confirmed, suspected},
		Color:   []string{"#c22b49", "#cca42d"},
	}
}

// CuredDeadOptions builds the unstacked chart of cured and dead cases.
// The title does not mention the area.
func CuredDeadOptions(s series.Series) ChartOptions {
	return ChartOptions{
		Height:  chartHeight,
		Title:   Title{Text: "疫情治愈/死亡数"},
		Legend:  Legend{Orient: "horizontal", Data: []string{labelCured, labelDead}},
		Tooltip: Tooltip{Trigger: "axis"},
		XAxis:   Axis{Name: axisTime, Title: axisTime, Type: "time"},
		YAxis:   Axis{Name: axisCases, Title: axisPeople},
		Series: []LineSeries{
			lineSeries(labelCured, s.Cured),
			lineSeries(labelDead, s.Dead),
		},
		Color: []string{"#2dce89", "#86868d"},
	}
}
