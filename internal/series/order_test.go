package series

import (
	"errors"
	"fmt"
	"testing"

	"epichart/internal/models"
)

func TestOrderScenario(t *testing.T) {
	input := map[string]models.CountrySnapshot{
		"20200121": {ConfirmedCount: 100, SuspectedCount: 50, CuredCount: 10, DeadCount: 5},
		"20200120": {ConfirmedCount: 80, SuspectedCount: 40, CuredCount: 8, DeadCount: 3},
	}

	ordered, err := Order(input)
	if err != nil {
		t.Fatalf("Order failed: %v", err)
	}
	if len(ordered) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(ordered))
	}
	if ordered[0].Date != 20200120 || ordered[1].Date != 20200121 {
		t.Errorf("Expected dates [20200120 20200121], got [%d %d]", ordered[0].Date, ordered[1].Date)
	}
	if ordered[0].Record.ConfirmedCount != 80 {
		t.Errorf("Expected first record confirmedCount 80, got %d", ordered[0].Record.ConfirmedCount)
	}
}

func TestOrderLengthAndMonotonic(t *testing.T) {
	for _, n := range []int{0, 1, 7, 64} {
		t.Run(fmt.Sprintf("%d entries", n), func(t *testing.T) {
			input := make(map[string]int, n)
			for i := 0; i < n; i++ {
				// scatter dates so map order and date order disagree
				input[fmt.Sprintf("%d", 20200101+(i*37)%n)] = i
			}

			ordered, err := Order(input)
			if err != nil {
				t.Fatalf("Order failed: %v", err)
			}
			if len(ordered) != len(input) {
				t.Errorf("Expected %d records, got %d", len(input), len(ordered))
			}
			for i := 1; i < len(ordered); i++ {
				if ordered[i].Date < ordered[i-1].Date {
					t.Errorf("Dates decrease at index %d: %d after %d", i, ordered[i].Date, ordered[i-1].Date)
				}
			}
		})
	}
}

func TestOrderDuplicateDatesDeterministic(t *testing.T) {
	input := map[string]string{
		"20200120":  "b",
		"020200120": "a",
		"20200119":  "c",
	}

	for i := 0; i < 20; i++ {
		ordered, err := Order(input)
		if err != nil {
			t.Fatalf("Order failed: %v", err)
		}
		got := ordered[0].Record + ordered[1].Record + ordered[2].Record
		if got != "cab" {
			t.Fatalf("Expected order 'cab', got '%s'", got)
		}
	}
}

func TestOrderRejectsInvalidKeys(t *testing.T) {
	input := map[string]int{
		"20200120": 1,
		"latest":   2,
		"2020-01":  3,
	}

	ordered, err := Order(input)
	if !errors.Is(err, ErrInvalidDateKey) {
		t.Fatalf("Expected ErrInvalidDateKey, got %v", err)
	}
	if ordered != nil {
		t.Errorf("Expected no output on error, got %v", ordered)
	}
}

func TestOrderNilMap(t *testing.T) {
	ordered, err := Order[models.CountrySnapshot](nil)
	if err != nil {
		t.Fatalf("Order failed: %v", err)
	}
	if len(ordered) != 0 {
		t.Errorf("Expected empty output, got %d records", len(ordered))
	}
}
