package query

import "strconv"

// CountBy groups the items by a field value and counts each group
func CountBy[T any](items []T, field func(T) string) map[string]int {
	counts := make(map[string]int)
	for _, item := range items {
		counts[field(item)]++
	}
	return counts
}

// Sum folds a numeric field over the items
func Sum[T any](items []T, value func(T) float64) float64 {
	var total float64
	for _, item := range items {
		total += value(item)
	}
	return total
}

// Average returns the mean of a numeric field, 0 for an empty slice
func Average[T any](items []T, value func(T) float64) float64 {
	if len(items) == 0 {
		return 0
	}
	return Sum(items, value) / float64(len(items))
}

// AverageString formats the mean the way the dashboards display it: "0" for
// an empty result set, one decimal place otherwise.
func AverageString[T any](items []T, value func(T) float64) string {
	if len(items) == 0 {
		return "0"
	}
	return strconv.FormatFloat(Average(items, value), 'f', 1, 64)
}
