package charts

import (
	"fmt"

	"epichart/internal/models"
	"epichart/internal/series"
)

// Chart names, in display order
const (
	ChartConfirmedSuspected = "confirmed-suspected"
	ChartCuredDead          = "cured-dead"
)

// View is everything derived from one set of props: the extracted series and
// both chart configurations, top to bottom.
type View struct {
	Area               string        `json:"area"`
	Series             series.Series `json:"-"`
	ConfirmedSuspected ChartOptions  `json:"confirmedSuspected"`
	CuredDead          ChartOptions  `json:"curedDead"`
}

// Derive rebuilds the view from props. It holds no state and caches nothing,
// so it is called again whenever the props change.
func Derive(props models.Props) (View, error) {
	provinces, err := series.Order(props.Data.ProvincesSeries)
	if err != nil {
		return View{}, fmt.Errorf("failed to order province series: %w", err)
	}
	country, err := series.Order(props.Data.CountrySeries)
	if err != nil {
		return View{}, fmt.Errorf("failed to order country series: %w", err)
	}

	s := series.Extract(provinces, country, props.Area)
	return View{
		Area:               props.Area,
		Series:             s,
		ConfirmedSuspected: ConfirmedSuspectedOptions(s, props.Area),
		CuredDead:          CuredDeadOptions(s),
	}, nil
}

// Chart returns the named chart configuration
func (v View) Chart(name string) (ChartOptions, error) {
	switch name {
	case ChartConfirmedSuspected:
		return v.ConfirmedSuspected, nil
	case ChartCuredDead:
		return v.CuredDead, nil
	default:
		return ChartOptions{}, fmt.Errorf("%w: %q", ErrUnknownChart, name)
	}
}

// Charts returns both configurations keyed by name, in display order
func (v View) Charts() []NamedChart {
	return []NamedChart{
		{Name: ChartConfirmedSuspected, Options: v.ConfirmedSuspected},
		{Name: ChartCuredDead, Options: v.CuredDead},
	}
}

// NamedChart pairs a configuration with its chart name
type NamedChart struct {
	Name    string
	Options ChartOptions
}
