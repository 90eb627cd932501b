package series

import (
	"encoding/json"

	"epichart/internal/models"
)

// Point is a [date, value] pair, encoded as a two-element JSON array
type Point [2]int64

// Date returns the date half of the pair
func (p Point) Date() int64 { return p[0] }

// Value returns the count half of the pair
func (p Point) Value() int64 { return p[1] }

// Series holds the four metric series, aligned index for index
type Series struct {
	Confirmed []Point `json:"confirmedData"`
	Suspected []Point `json:"suspectedData"`
	Cured     []Point `json:"curedData"`
	Dead      []Point `json:"deadData"`
}

// Len returns the number of dates in the series
func (s Series) Len() int {
	return len(s.Confirmed)
}

// Latest returns the last date and its counts
func (s Series) Latest() (int64, models.AreaCounts, bool) {
	n := s.Len()
	if n == 0 {
		return 0, models.AreaCounts{}, false
	}
	return s.Confirmed[n-1].Date(), models.AreaCounts{
		Confirmed: s.Confirmed[n-1].Value(),
		Suspected: s.Suspected[n-1].Value(),
		Cured:     s.Cured[n-1].Value(),
		Dead:      s.Dead[n-1].Value(),
	}, true
}

// MarshalJSON keeps empty series as [] rather than null
func (s Series) MarshalJSON() ([]byte, error) {
	type plain Series
	return json.Marshal(plain{
		Confirmed: nonNil(s.Confirmed),
		Suspected: nonNil(s.Suspected),
		Cured:     nonNil(s.Cured),
		Dead:      nonNil(s.Dead),
	})
}

func nonNil(p []Point) []Point {
	if p == nil {
		return []Point{}
	}
	return p
}

// Extract builds the four series for area. The country sequence is used for
// models.WholeCountry; any other area is looked up in each province snapshot,
// with zero counts on dates where it is missing.
func Extract(provinces []DatedRecord[models.ProvinceSnapshot], country []DatedRecord[models.CountrySnapshot], area string) Series {
	if area == models.WholeCountry {
		return extract(country, area)
	}
	return extract(provinces, area)
}

func extract[T models.Snapshot](records []DatedRecord[T], area string) Series {
	s := Series{
		Confirmed: make([]Point, 0, len(records)),
		Suspected: make([]Point, 0, len(records)),
		Cured:     make([]Point, 0, len(records)),
		Dead:      make([]Point, 0, len(records)),
	}
	for _, r := range records {
		c, _ := r.Record.Counts(area)
		s.Confirmed = append(s.Confirmed, Point{r.Date, c.Confirmed})
		s.Suspected = append(s.Suspected, Point{r.Date, c.Suspected})
		s.Cured = append(s.Cured, Point{r.Date, c.Cured})
		s.Dead = append(s.Dead, Point{r.Date, c.Dead})
	}
	return s
}
