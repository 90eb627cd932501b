package models

import (
	"errors"
	"reflect"
	"testing"
)

func TestSnapshotCounts(t *testing.T) {
	country := CountrySnapshot{ConfirmedCount: 100, SuspectedCount: 50, CuredCount: 10, DeadCount: 5}
	province := ProvinceSnapshot{
		"湖北": {Confirmed: 50, Suspected: 10, Cured: 2, Dead: 1},
	}

	tests := []struct {
		name   string
		snap   Snapshot
		area   string
		want   AreaCounts
		wantOK bool
	}{
		{"country ignores area", country, "anything", AreaCounts{100, 50, 10, 5}, true},
		{"province present", province, "湖北", AreaCounts{50, 10, 2, 1}, true},
		{"province absent", province, "浙江", AreaCounts{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.snap.Counts(tt.area)
			if ok != tt.wantOK {
				t.Errorf("Expected ok=%v, got %v", tt.wantOK, ok)
			}
			if got != tt.want {
				t.Errorf("Expected %+v, got %+v", tt.want, got)
			}
		})
	}
}

func TestDecodeProps(t *testing.T) {
	raw := []byte(`{
		"area": "湖北",
		"data": {
			"provincesSeries": {"20200120": {"湖北": {"confirmed": 50, "suspected": 10, "cured": 2, "dead": 1}}},
			"countrySeries": {"20200120": {"confirmedCount": 80, "suspectedCount": 40, "curedCount": 8, "deadCount": 3}}
		}
	}`)

	props, err := DecodeProps(raw)
	if err != nil {
		t.Fatalf("DecodeProps failed: %v", err)
	}
	if props.Area != "湖北" {
		t.Errorf("Expected area '湖北', got '%s'", props.Area)
	}
	if got := props.Data.ProvincesSeries["20200120"]["湖北"].Confirmed; got != 50 {
		t.Errorf("Expected confirmed 50, got %d", got)
	}
	if got := props.Data.CountrySeries["20200120"].DeadCount; got != 3 {
		t.Errorf("Expected deadCount 3, got %d", got)
	}
}

func TestDecodePropsDefaults(t *testing.T) {
	for _, raw := range []string{"", "{}", `{"data": null}`, `{"data": {"provincesSeries": null}}`} {
		props, err := DecodeProps([]byte(raw))
		if err != nil {
			t.Fatalf("DecodeProps(%q) failed: %v", raw, err)
		}
		if props.Data.ProvincesSeries == nil || props.Data.CountrySeries == nil {
			t.Errorf("DecodeProps(%q) left nil maps", raw)
		}
		if props.Area != "" {
			t.Errorf("DecodeProps(%q) expected empty area, got '%s'", raw, props.Area)
		}
	}
}

func TestDecodePropsErrors(t *testing.T) {
	if _, err := DecodeProps([]byte(`{"data": `)); err == nil {
		t.Error("Expected error for truncated JSON")
	}

	_, err := DecodeProps([]byte(`{"data": {"countrySeries": {"20200120": {"deadCount": -1}}}}`))
	if !errors.Is(err, ErrNegativeCount) {
		t.Errorf("Expected ErrNegativeCount, got %v", err)
	}

	_, err = DecodeProps([]byte(`{"data": {"provincesSeries": {"20200120": {"湖北": {"cured": -2}}}}}`))
	if !errors.Is(err, ErrNegativeCount) {
		t.Errorf("Expected ErrNegativeCount for province counts, got %v", err)
	}
}

func TestAreas(t *testing.T) {
	data := OverallCountryData{
		ProvincesSeries: map[string]ProvinceSnapshot{
			"20200120": {"湖北": {}, "浙江": {}},
			"20200121": {"湖北": {}, "广东": {}},
		},
	}

	want := []string{"广东", "浙江", "湖北"}
	if got := data.Areas(); !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}

	if got := EmptyData().Areas(); len(got) != 0 {
		t.Errorf("Expected no areas, got %v", got)
	}
}
