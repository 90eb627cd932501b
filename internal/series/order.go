package series

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// ErrInvalidDateKey is returned when a series key does not parse as an integer date
var ErrInvalidDateKey = errors.New("invalid date key")

// DatedRecord is a snapshot tagged with the integer date parsed from its key
type DatedRecord[T any] struct {
	Date   int64
	Key    string
	Record T
}

// Order turns a date-keyed map into a slice sorted by ascending date.
// Every entry is kept. Equal dates are ordered by key so the result does not
// depend on map iteration order. Keys that are not integers reject the whole input.
func Order[T any](data map[string]T) ([]DatedRecord[T], error) {
	out := make([]DatedRecord[T], 0, len(data))
	var invalid []string

	for key, record := range data {
		date, err := strconv.ParseInt(strings.TrimSpace(key), 10, 64)
		if err != nil {
			invalid = append(invalid, key)
			continue
		}
		out = append(out, DatedRecord[T]{Date: date, Key: key, Record: record})
	}

	if len(invalid) > 0 {
		sort.Strings(invalid)
		return nil, fmt.Errorf("%w: %q", ErrInvalidDateKey, invalid)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].Key < out[j].Key
	})
	return out, nil
}
