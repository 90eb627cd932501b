package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
)

// ErrNegativeCount is returned when a snapshot carries a negative count
var ErrNegativeCount = errors.New("negative count")

// Normalize replaces nil maps with empty ones
func (d *OverallCountryData) Normalize() {
	if d.ProvincesSeries == nil {
		d.ProvincesSeries = map[string]ProvinceSnapshot{}
	}
	if d.CountrySeries == nil {
		d.CountrySeries = map[string]CountrySnapshot{}
	}
}

// Validate checks that every count is non-negative.
// Date keys are checked later by the orderer.
func (d OverallCountryData) Validate() error {
	var bad []string
	for key, snap := range d.CountrySeries {
		if snap.ConfirmedCount < 0 || snap.SuspectedCount < 0 || snap.CuredCount < 0 || snap.DeadCount < 0 {
			bad = append(bad, key)
		}
	}
	for key, snap := range d.ProvincesSeries {
		for area, c := range snap {
			if c.Confirmed < 0 || c.Suspected < 0 || c.Cured < 0 || c.Dead < 0 {
				bad = append(bad, key+"/"+area)
			}
		}
	}
	if len(bad) > 0 {
		sort.Strings(bad)
		return fmt.Errorf("%w: %v", ErrNegativeCount, bad)
	}
	return nil
}

// Areas returns every area name present in the province series, sorted
func (d OverallCountryData) Areas() []string {
	seen := make(map[string]struct{})
	for _, snap := range d.ProvincesSeries {
		for area := range snap {
			seen[area] = struct{}{}
		}
	}
	areas := make([]string, 0, len(seen))
	for area := range seen {
		areas = append(areas, area)
	}
	sort.Strings(areas)
	return areas
}

// DecodeProps parses a props document, filling defaults and validating counts
func DecodeProps(raw []byte) (Props, error) {
	props := DefaultProps()
	if len(bytes.TrimSpace(raw)) == 0 {
		return props, nil
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	if err := dec.Decode(&props); err != nil {
		return Props{}, fmt.Errorf("failed to decode props: %w", err)
	}

	props.Data.Normalize()
	if err := props.Data.Validate(); err != nil {
		return Props{}, err
	}
	return props, nil
}
