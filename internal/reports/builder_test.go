package reports

import (
	"strings"
	"testing"
	"time"

	"epichart/internal/charts"
	"epichart/internal/models"
)

func sampleView(t *testing.T, area string) charts.View {
	t.Helper()
	v, err := charts.Derive(models.Props{
		Area: area,
		Data: models.OverallCountryData{
			ProvincesSeries: map[string]models.ProvinceSnapshot{
				"20200120": {"广东": {Confirmed: 4}},
				"20200121": {"广东": {Confirmed: 6}},
			},
			CountrySeries: map[string]models.CountrySnapshot{
				"20200121": {ConfirmedCount: 100, SuspectedCount: 50, CuredCount: 10, DeadCount: 5},
				"20200120": {ConfirmedCount: 80, SuspectedCount: 40, CuredCount: 8, DeadCount: 3},
			},
		},
	})
	if err != nil {
		t.Fatalf("Derive failed: %v", err)
	}
	return v
}

func TestSummary(t *testing.T) {
	md := Summary(sampleView(t, models.WholeCountry))

	for _, want := range []string{
		"## 中国",
		"2020-01-20 至 2020-01-21, 共 2 天",
		"| 确诊 | 100 | +20 |",
		"| 疑似 | 50 | +10 |",
		"| 治愈 | 10 | +2 |",
		"| 死亡 | 5 | +2 |",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("Summary missing %q:\n%s", want, md)
		}
	}
}

func TestSummaryEmpty(t *testing.T) {
	md := Summary(sampleView(t, "湖北"))
	if !strings.Contains(md, "## 湖北") {
		t.Errorf("Summary missing heading:\n%s", md)
	}
	// 湖北 is absent on both province dates, so its rows are zero
	if !strings.Contains(md, "| 确诊 | 0 | +0 |") {
		t.Errorf("Expected zero row:\n%s", md)
	}
	if strings.Contains(md, "暂无数据") {
		t.Errorf("Province dates without the area still count as data:\n%s", md)
	}

	v, err := charts.Derive(models.DefaultProps())
	if err != nil {
		t.Fatalf("Derive failed: %v", err)
	}
	md = Summary(v)
	if !strings.Contains(md, "未选择地区") || !strings.Contains(md, "暂无数据") {
		t.Errorf("Unexpected empty summary:\n%s", md)
	}
}

func TestDelta(t *testing.T) {
	if got := delta(nil); got != "-" {
		t.Errorf("delta(nil) = %s", got)
	}
	v := sampleView(t, models.WholeCountry)
	if got := delta(v.Series.Confirmed); got != "+20" {
		t.Errorf("delta(confirmed) = %s", got)
	}
}

func TestBuild(t *testing.T) {
	b := NewBuilder("")
	v := sampleView(t, models.WholeCountry)

	html, err := b.Build(v, time.Date(2020, 1, 22, 8, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	for _, want := range []string{
		"<title>中国 疫情趋势</title>",
		"<table>",
		"chart-confirmed-suspected",
		"chart-cured-dead",
		charts.DefaultEChartsCDN,
		"2020-01-22 08:00:00 UTC",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("Report missing %q", want)
		}
	}
}

func TestConvertMarkdownToHTML(t *testing.T) {
	b := NewBuilder("")
	html, err := b.ConvertMarkdownToHTML("## 标题\n\n| a | b |\n|---|---|\n| 1 | 2 |\n")
	if err != nil {
		t.Fatalf("ConvertMarkdownToHTML failed: %v", err)
	}
	if !strings.Contains(html, "<h2") || !strings.Contains(html, "<table>") {
		t.Errorf("Unexpected HTML: %s", html)
	}
}
