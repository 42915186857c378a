package services

import (
	"sort"

	"github.com/andrrresj/automotive-market-dashboard/models"
)

func round2(f float64) float64 {
	if f < 0 {
		return -round2(-f)
	}
	return float64(int64(f*100+0.5)) / 100
}

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	var total float64
	for _, x := range xs {
		total += x
	}
	return total / float64(len(xs))
}

func median(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	sorted := make([]float64, len(xs))
	copy(sorted, xs)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}

// valueCounts counts the non-null values of a column, most frequent first and
// ties broken by name.
func valueCounts(t *models.Table, column string) []models.ValueCount {
	values, ok := t.Column(column)
	if !ok {
		return nil
	}
	counts := make(map[string]int)
	for _, v := range values {
		if v.IsNull() {
			continue
		}
		counts[v.Text()]++
	}
	return sortCounts(counts)
}

func sortCounts(counts map[string]int) []models.ValueCount {
	out := make([]models.ValueCount, 0, len(counts))
	for name, n := range counts {
		out = append(out, models.ValueCount{Name: name, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Name < out[j].Name
	})
	return out
}

func head[T any](xs []T, n int) []T {
	if len(xs) > n {
		return xs[:n]
	}
	return xs
}

func isTrue(v models.Value) bool {
	b, ok := v.AsBool()
	return ok && b
}
