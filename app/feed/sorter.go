package feed

import (
	"slices"
)

// SortByDate orders items by date, most recent first. Items without a
// parseable date go last and keep their relative order.
func SortByDate(items []Item) {
	slices.SortStableFunc(items, CompareByDate)
}

// CompareByDate is the comparison used by SortByDate.
func CompareByDate(a, b Item) int {
	da, okA := itemDate(a)
	db, okB := itemDate(b)

	switch {
	case !okA && !okB:
		return 0
	case !okA:
		return 1
	case !okB:
		return -1
	default:
		return db.Compare(da)
	}
}

func itemDate(item Item) (Date, bool) {
	if item.Date == nil {
		return Date{}, false
	}
	d, err := ParseDisplayDate(*item.Date)
	if err != nil {
		return Date{}, false
	}
	return d, true
}
