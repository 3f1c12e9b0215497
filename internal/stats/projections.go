package stats

import (
	"sort"
)

// projectionSize caps each report projection to the top entries of its sort.
const projectionSize = 8

// SortByDriverOrder stable-sorts question stats by the fixed driver priority
// (Purpose, People, Plan, Product, Profit) and returns a new slice. A driver
// absent from the priority list ranks before all known drivers; renderers
// depend on that ordering, so it is preserved as-is.
func SortByDriverOrder(questionStats []QuestionStats) []QuestionStats {
	sorted := make([]QuestionStats, len(questionStats))
	copy(sorted, questionStats)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Question.Driver.Rank() < sorted[j].Question.Driver.Rank()
	})
	return sorted
}

// project stable-sorts a copy of the stats by less, keeps the top
// min(n, len) entries, and re-orders the capped slice by driver priority
// for presentation.
func project(questionStats []QuestionStats, n int, less func(a, b QuestionStats) bool) []QuestionStats {
	sorted := make([]QuestionStats, len(questionStats))
	copy(sorted, questionStats)
	sort.SliceStable(sorted, func(i, j int) bool {
		return less(sorted[i], sorted[j])
	})

	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return SortByDriverOrder(sorted)
}

// topByStdDevAsc returns the questions with the lowest disagreement.
func topByStdDevAsc(questionStats []QuestionStats, n int) []QuestionStats {
	return project(questionStats, n, func(a, b QuestionStats) bool { return a.StdDev < b.StdDev })
}

// topByStdDevDesc returns the questions with the highest disagreement.
func topByStdDevDesc(questionStats []QuestionStats, n int) []QuestionStats {
	return project(questionStats, n, func(a, b QuestionStats) bool { return a.StdDev > b.StdDev })
}

// topByAverageDesc returns the highest-scoring questions.
func topByAverageDesc(questionStats []QuestionStats, n int) []QuestionStats {
	return project(questionStats, n, func(a, b QuestionStats) bool { return a.Average > b.Average })
}

// topByAverageAsc returns the lowest-scoring questions.
func topByAverageAsc(questionStats []QuestionStats, n int) []QuestionStats {
	return project(questionStats, n, func(a, b QuestionStats) bool { return a.Average < b.Average })
}

// maxBy returns a copy of the first-seen entry with the strictly greatest
// key, or nil for empty input.
func maxBy(questionStats []QuestionStats, key func(QuestionStats) float64) *QuestionStats {
	if len(questionStats) == 0 {
		return nil
	}
	best := questionStats[0]
	for _, stat := range questionStats[1:] {
		if key(stat) > key(best) {
			best = stat
		}
	}
	return &best
}

// minBy returns a copy of the first-seen entry with the strictly smallest
// key, or nil for empty input.
func minBy(questionStats []QuestionStats, key func(QuestionStats) float64) *QuestionStats {
	if len(questionStats) == 0 {
		return nil
	}
	best := questionStats[0]
	for _, stat := range questionStats[1:] {
		if key(stat) < key(best) {
			best = stat
		}
	}
	return &best
}
