package query_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/carepoint/clinic-api/query"
)

type record struct {
	Status string
	Amount float64
}

func TestCountBy(t *testing.T) {
	records := []record{{Status: "paid"}, {Status: "pending"}, {Status: "paid"}}

	got := query.CountBy(records, func(r record) string { return r.Status })

	assert.Equal(t, map[string]int{"paid": 2, "pending": 1}, got)
}

func TestSum(t *testing.T) {
	records := []record{{Amount: 100}, {Amount: 250.5}}

	assert.Equal(t, 350.5, query.Sum(records, func(r record) float64 { return r.Amount }))
}

func TestAverageEmptyIsZero(t *testing.T) {
	assert.Equal(t, 0.0, query.Average([]record{}, func(r record) float64 { return r.Amount }))
}

func TestAverageString(t *testing.T) {
	assert.Equal(t, "0", query.AverageString([]record{}, func(r record) float64 { return r.Amount }))

	records := []record{{Amount: 2}, {Amount: 4}, {Amount: 6}}
	assert.Equal(t, "4.0", query.AverageString(records, func(r record) float64 { return r.Amount }))
}
