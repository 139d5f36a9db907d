// Package stats computes descriptive summaries over person records.
package stats

import (
	"sort"

	"github.com/ppiankov/lifelines/internal/model"
)

// Summarize counts living and deceased subjects and describes the age at
// death distribution. Age fields stay nil when nobody has died. Ties keep
// the earliest record in input order.
func Summarize(records []model.PersonRecord) model.Summary {
	s := model.Summary{Total: len(records)}

	var ages []int
	for i := range records {
		rec := records[i]

		if s.EarliestBorn == nil || rec.Born < s.EarliestBorn.Born {
			s.EarliestBorn = &records[i]
		}
		if s.LatestBorn == nil || rec.Born > s.LatestBorn.Born {
			s.LatestBorn = &records[i]
		}

		if rec.Alive() {
			s.Living++
			continue
		}

		s.Deceased++
		if rec.AgeAtDeath == nil {
			continue
		}
		age := *rec.AgeAtDeath
		ages = append(ages, age)

		if s.Longest == nil || age > *s.Longest.AgeAtDeath {
			s.Longest = &records[i]
		}
		if s.Shortest == nil || age < *s.Shortest.AgeAtDeath {
			s.Shortest = &records[i]
		}
	}

	if len(ages) > 0 {
		mean := Mean(ages)
		median := Median(ages)
		s.MeanAgeAtDeath = &mean
		s.MedianAgeAtDeath = &median
	}

	return s
}

// Mean returns the arithmetic mean; 0 for an empty slice
func Mean(values []int) float64 {
	if len(values) == 0 {
		return 0
	}
	total := 0
	for _, v := range values {
		total += v
	}
	return float64(total) / float64(len(values))
}

// Median returns the middle value, averaging the two middle values for
// even counts; 0 for an empty slice
func Median(values []int) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := append([]int(nil), values...)
	sort.Ints(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return float64(sorted[mid])
	}
	return float64(sorted[mid-1]+sorted[mid]) / 2
}
