package models

// WholeCountry is the area selector that routes to the country-wide series
const WholeCountry = "中国"

// OverallCountryData carries both epidemic time series, keyed by date string (e.g. "20200120")
type OverallCountryData struct {
	ProvincesSeries map[string]ProvinceSnapshot `json:"provincesSeries"`
	CountrySeries   map[string]CountrySnapshot  `json:"countrySeries"`
}

// AreaCounts holds the cumulative counts recorded for one province or region on one date
type AreaCounts struct {
	Confirmed int64 `json:"confirmed"`
	Suspected int64 `json:"suspected"`
	Cured     int64 `json:"cured"`
	Dead      int64 `json:"dead"`
}

// CountrySnapshot is the country-wide aggregate for one date
type CountrySnapshot struct {
	ConfirmedCount int64 `json:"confirmedCount"`
	SuspectedCount int64 `json:"suspectedCount"`
	CuredCount     int64 `json:"curedCount"`
	DeadCount      int64 `json:"deadCount"`
}

// ProvinceSnapshot maps an area name to its counts for one date
type ProvinceSnapshot map[string]AreaCounts

// Snapshot is implemented by CountrySnapshot and ProvinceSnapshot.
// Counts reports the counts for area and whether the snapshot has them.
type Snapshot interface {
	Counts(area string) (AreaCounts, bool)
}

// Counts returns the country aggregate regardless of area
func (c CountrySnapshot) Counts(string) (AreaCounts, bool) {
	return AreaCounts{
		Confirmed: c.ConfirmedCount,
		Suspected: c.SuspectedCount,
		Cured:     c.CuredCount,
		Dead:      c.DeadCount,
	}, true
}

// Counts looks up area; absent areas yield zero counts and false
func (p ProvinceSnapshot) Counts(area string) (AreaCounts, bool) {
	c, ok := p[area]
	return c, ok
}

// Props are the externally supplied inputs of the chart view
type Props struct {
	Data OverallCountryData `json:"data"`
	Area string             `json:"area"`
}

// DefaultProps returns empty series and an empty area
func DefaultProps() Props {
	return Props{Data: EmptyData()}
}

// EmptyData returns OverallCountryData with both maps allocated
func EmptyData() OverallCountryData {
	return OverallCountryData{
		ProvincesSeries: map[string]ProvinceSnapshot{},
		CountrySeries:   map[string]CountrySnapshot{},
	}
}
