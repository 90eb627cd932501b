package charts

import (
	"encoding/json"
	"reflect"
	"testing"

	"epichart/internal/models"
	"epichart/internal/series"
)

func sampleSeries() series.Series {
	return series.Series{
		Confirmed: []series.Point{{20200120, 80}, {20200121, 100}},
		Suspected: []series.Point{{20200120, 40}, {20200121, 50}},
		Cured:     []series.Point{{20200120, 8}, {20200121, 10}},
		Dead:      []series.Point{{20200120, 3}, {20200121, 5}},
	}
}

func TestConfirmedSuspectedOptions(t *testing.T) {
	s := sampleSeries()
	opt := ConfirmedSuspectedOptions(s, "湖北")

	if opt.Title.Text != "湖北疫情确诊/疑似数" {
		t.Errorf("Unexpected title '%s'", opt.Title.Text)
	}
	if opt.Height != "50%" {
		t.Errorf("Expected height '50%%', got '%s'", opt.Height)
	}
	if !reflect.DeepEqual(opt.Legend.Data, []string{"确诊", "疑似"}) {
		t.Errorf("Unexpected legend %v", opt.Legend.Data)
	}
	if opt.XAxis.Type != "time" || opt.XAxis.Name != "时间" || opt.YAxis.Name != "例" {
		t.Errorf("Unexpected axes %+v %+v", opt.XAxis, opt.YAxis)
	}
	if !reflect.DeepEqual(opt.Color, []string{"#c22b49", "#cca42d"}) {
		t.Errorf("Unexpected palette %v", opt.Color)
	}
	if len(opt.Series) != 2 {
		t.Fatalf("Expected 2 series, got %d", len(opt.Series))
	}

	fills := []string{"#f6bdcd", "#f9e4ba"}
	for i, ls := range opt.Series {
		if ls.Stack != "总量" {
			t.Errorf("Series %d expected stack '总量', got '%s'", i, ls.Stack)
		}
		if ls.Type != "line" || ls.SymbolSize != SymbolSize || ls.LineStyle.Width != LineWidth {
			t.Errorf("Series %d has unexpected styling %+v", i, ls)
		}
		if ls.AreaStyle == nil || ls.AreaStyle.Color != fills[i] {
			t.Errorf("Series %d expected area fill %s, got %+v", i, fills[i], ls.AreaStyle)
		}
	}
	if !reflect.DeepEqual(opt.Series[0].Data, s.Confirmed) || !reflect.DeepEqual(opt.Series[1].Data, s.Suspected) {
		t.Error("Series data does not match confirmed/suspected input")
	}
}

func TestCuredDeadOptions(t *testing.T) {
	s := sampleSeries()
	opt := CuredDeadOptions(s)

	if opt.Title.Text != "疫情治愈/死亡数" {
		t.Errorf("Unexpected title '%s'", opt.Title.Text)
	}
	if opt.XAxis.Title != "时间" || opt.YAxis.Title != "人数" || opt.YAxis.Name != "例" {
		t.Errorf("Unexpected axes %+v %+v", opt.XAxis, opt.YAxis)
	}
	for i, ls := range opt.Series {
		if ls.Stack != "" || ls.AreaStyle != nil {
			t.Errorf("Series %d should be neither stacked nor filled: %+v", i, ls)
		}
	}
	if !reflect.DeepEqual(opt.Series[0].Data, s.Cured) || !reflect.DeepEqual(opt.Series[1].Data, s.Dead) {
		t.Error("Series data does not match cured/dead input")
	}
	if !reflect.DeepEqual(opt.Color, []string{"#2dce89", "#86868d"}) {
		t.Errorf("Unexpected palette %v", opt.Color)
	}
}

func TestOptionsJSONShape(t *testing.T) {
	raw, err := json.Marshal(CuredDeadOptions(sampleSeries()))
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	var doc map[string]interface{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	for _, key := range []string{"height", "title", "legend", "tooltip", "xAxis", "yAxis", "series", "color"} {
		if _, ok := doc[key]; !ok {
			t.Errorf("Missing top-level key %q", key)
		}
	}

	yAxis := doc["yAxis"].(map[string]interface{})
	if yAxis["title"] != "人数" || yAxis["name"] != "例" {
		t.Errorf("Unexpected yAxis %v", yAxis)
	}

	first := doc["series"].([]interface{})[0].(map[string]interface{})
	if _, ok := first["stack"]; ok {
		t.Error("Unstacked series should omit 'stack'")
	}
	if _, ok := first["areaStyle"]; ok {
		t.Error("Unfilled series should omit 'areaStyle'")
	}
	if first["lineStyle"].(map[string]interface{})["width"] != float64(LineWidth) {
		t.Errorf("Unexpected lineStyle %v", first["lineStyle"])
	}
	point := first["data"].([]interface{})[0].([]interface{})
	if point[0] != float64(20200120) || point[1] != float64(8) {
		t.Errorf("Unexpected first point %v", point)
	}

	csRaw, _ := json.Marshal(ConfirmedSuspectedOptions(series.Series{}, models.WholeCountry))
	var cs ChartOptions
	if err := json.Unmarshal(csRaw, &cs); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if cs.XAxis.Title != "" {
		t.Errorf("Confirmed/suspected x-axis should have no title, got '%s'", cs.XAxis.Title)
	}
	if cs.Series[0].Data == nil || len(cs.Series[0].Data) != 0 {
		t.Errorf("Expected empty data array, got %v", cs.Series[0].Data)
	}
}

func TestBuildersIdempotent(t *testing.T) {
	s := sampleSeries()
	if !reflect.DeepEqual(ConfirmedSuspectedOptions(s, "湖北"), ConfirmedSuspectedOptions(s, "湖北")) {
		t.Error("ConfirmedSuspectedOptions is not idempotent")
	}
	if !reflect.DeepEqual(CuredDeadOptions(s), CuredDeadOptions(s)) {
		t.Error("CuredDeadOptions is not idempotent")
	}
}
