package feed

import (
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func ids(items []Item) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, item.ID)
	}
	return out
}

func TestSortByDate(t *testing.T) {
	items := []Item{
		{ID: "a", Date: strPtr("01/05/2025")},
		{ID: "none-1"},
		{ID: "b", Date: strPtr("20/05/2025")},
		{ID: "c", Date: strPtr("15/12/2024")},
		{ID: "none-2"},
		{ID: "d", Date: strPtr("02/05/2025")},
	}

	SortByDate(items)

	want := []string{"b", "d", "a", "c", "none-1", "none-2"}
	if diff := cmp.Diff(want, ids(items)); diff != "" {
		t.Errorf("Sort order mismatch (-want +got):\n%s", diff)
	}
}

func TestSortByDateComparesFullCalendarDate(t *testing.T) {
	// Day-first strings must not be compared lexically.
	items := []Item{
		{ID: "jan-2025", Date: strPtr("31/01/2025")},
		{ID: "feb-2024", Date: strPtr("01/02/2024")},
		{ID: "dec-2024", Date: strPtr("01/12/2024")},
	}

	SortByDate(items)

	want := []string{"jan-2025", "dec-2024", "feb-2024"}
	if diff := cmp.Diff(want, ids(items)); diff != "" {
		t.Errorf("Sort order mismatch (-want +got):\n%s", diff)
	}
}

func TestSortByDateStableForEqualDates(t *testing.T) {
	items := []Item{
		{ID: "first", Date: strPtr("20/05/2025")},
		{ID: "second", Date: strPtr("20/05/2025")},
		{ID: "unparseable", Date: strPtr("soon")},
		{ID: "third", Date: strPtr("20/05/2025")},
	}

	SortByDate(items)

	want := []string{"first", "second", "third", "unparseable"}
	if diff := cmp.Diff(want, ids(items)); diff != "" {
		t.Errorf("Sort order mismatch (-want +got):\n%s", diff)
	}
}

func TestSortByDateProperties(t *testing.T) {
	dates := []string{"01/01/2024", "15/06/2024", "31/12/2024", "01/01/2025", "20/05/2025"}
	rng := rand.New(rand.NewSource(42))

	for round := 0; round < 200; round++ {
		n := rng.Intn(12)
		items := make([]Item, n)
		for i := range items {
			items[i].ID = string(rune('a' + i))
			if rng.Intn(3) > 0 {
				items[i].Date = strPtr(dates[rng.Intn(len(dates))])
			}
		}

		SortByDate(items)

		seenAbsent := false
		for i, item := range items {
			if item.Date == nil {
				seenAbsent = true
				continue
			}
			if seenAbsent {
				t.Fatalf("Round %d: dated item %s after undated item", round, item.ID)
			}
			if i > 0 && items[i-1].Date != nil && CompareByDate(items[i-1], item) > 0 {
				t.Fatalf("Round %d: dates not non-increasing at %d", round, i)
			}
		}
	}
}

func TestCompareByDate(t *testing.T) {
	dated := Item{Date: strPtr("20/05/2025")}
	older := Item{Date: strPtr("19/05/2025")}
	undated := Item{}

	if CompareByDate(dated, older) >= 0 {
		t.Error("Expected newer item first")
	}
	if CompareByDate(undated, dated) <= 0 {
		t.Error("Expected undated item after dated item")
	}
	if CompareByDate(dated, undated) >= 0 {
		t.Error("Expected dated item before undated item")
	}
	if CompareByDate(undated, Item{}) != 0 {
		t.Error("Expected two undated items to compare equal")
	}
}
