package stats

import (
	"context"
	"log/slog"
	"math"

	"github.com/SethFaerber/tma-report/internal/survey"
)

// Engine computes the calculated dataset for one survey upload. It holds the
// validated taxonomy and a logger; all arithmetic lives in pure methods.
type Engine struct {
	taxonomy *survey.Taxonomy
	logger   *slog.Logger
}

// NewEngine creates an aggregation engine for the given taxonomy.
func NewEngine(taxonomy *survey.Taxonomy, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{taxonomy: taxonomy, logger: logger}
}

// Calculate builds the full dataset from normalized respondents.
//
// Respondents with zero valid scores are dropped before aggregation: they
// contribute no information and would corrupt means with empty divisors.
// The drop is silent toward the caller but logged for operator awareness.
// Calculate never fails; degenerate inputs yield a structurally complete
// dataset with zero values.
func (e *Engine) Calculate(ctx context.Context, respondents []survey.Respondent) *Dataset {
	kept := make([]survey.Respondent, 0, len(respondents))
	for i, r := range respondents {
		if !r.HasValidScores() {
			e.logger.WarnContext(ctx, "excluding respondent with no valid scores",
				slog.Int("respondent", i+1),
				slog.String("name", r.Name),
			)
			continue
		}
		kept = append(kept, r)
	}

	questionStats := e.computeQuestionStats(kept)
	driverScores := e.computeDriverScores(questionStats)
	extremes := FindExtremeDrivers(driverScores)
	summaries := e.computeRespondentSummaries(kept, questionStats)

	ds := &Dataset{
		QuestionStats:  questionStats,
		DriverScores:   driverScores,
		Extremes:       extremes,
		Respondents:    summaries,
		MostAligned:    topByStdDevAsc(questionStats, projectionSize),
		MostDifferent:  topByStdDevDesc(questionStats, projectionSize),
		HighestScoring: topByAverageDesc(questionStats, projectionSize),
		LowestScoring:  topByAverageAsc(questionStats, projectionSize),
	}

	ds.HighestQuestion = maxBy(questionStats, func(s QuestionStats) float64 { return s.Average })
	ds.LowestQuestion = minBy(questionStats, func(s QuestionStats) float64 { return s.Average })
	ds.MostAlignedQuestion = minBy(questionStats, func(s QuestionStats) float64 { return s.StdDev })
	ds.MostDisagreedQuestion = maxBy(questionStats, func(s QuestionStats) float64 { return s.StdDev })

	e.logger.InfoContext(ctx, "calculated survey dataset",
		slog.Int("questions", len(questionStats)),
		slog.Int("respondents", len(summaries)),
		slog.Int("excluded_respondents", len(respondents)-len(kept)),
		slog.Int("drivers", len(driverScores)),
	)

	return ds
}

// computeQuestionStats derives per-question statistics across all kept
// respondents. A question nobody answered gets all-zero stats; that is a
// defined state, not an error.
func (e *Engine) computeQuestionStats(respondents []survey.Respondent) []QuestionStats {
	out := make([]QuestionStats, 0, e.taxonomy.Len())

	for _, q := range e.taxonomy.Questions {
		stat := QuestionStats{Question: q}

		sum := 0
		count := 0
		for _, r := range respondents {
			score := r.Scores[q.Index]
			if !score.Valid() {
				continue
			}
			stat.Distribution[score-1]++
			sum += int(score)
			count++
		}

		if count > 0 {
			mean := float64(sum) / float64(count)
			stat.Average = round2(mean)

			sumSquares := 0.0
			for _, r := range respondents {
				score := r.Scores[q.Index]
				if !score.Valid() {
					continue
				}
				dev := float64(score) - mean
				sumSquares += dev * dev
			}
			stat.StdDev = round2(math.Sqrt(sumSquares / float64(count)))
		}

		out = append(out, stat)
	}

	return out
}

// computeDriverScores groups question stats by driver and averages their
// already-rounded averages (mean-of-means, not mean of raw scores). Groups
// follow first-seen taxonomy order and every taxonomy driver appears, even
// with degenerate stats.
func (e *Engine) computeDriverScores(questionStats []QuestionStats) []DriverScore {
	drivers := e.taxonomy.Drivers()
	out := make([]DriverScore, 0, len(drivers))

	for _, driver := range drivers {
		sum := 0.0
		count := 0
		for _, stat := range questionStats {
			if stat.Question.Driver != driver {
				continue
			}
			sum += stat.Average
			count++
		}

		score := 0.0
		if count > 0 {
			score = round2(sum / float64(count))
		}
		out = append(out, DriverScore{Driver: driver, Score: score})
	}

	return out
}

// FindExtremeDrivers scans driver scores for the strongest and weakest
// entries. Replacement uses strict inequality so the first-seen driver wins
// all ties; an empty input yields nil for both.
func FindExtremeDrivers(scores []DriverScore) ExtremeDrivers {
	if len(scores) == 0 {
		return ExtremeDrivers{}
	}

	strongest := scores[0]
	weakest := scores[0]
	for _, ds := range scores[1:] {
		if ds.Score > strongest.Score {
			strongest = ds
		}
		if ds.Score < weakest.Score {
			weakest = ds
		}
	}

	return ExtremeDrivers{Strongest: &strongest, Weakest: &weakest}
}

// computeRespondentSummaries derives each respondent's personal statistics:
// overall mean, per-driver means over the respondent's own scores, the
// first-seen highest and lowest driver, and outliers against the team's
// rounded per-question averages.
func (e *Engine) computeRespondentSummaries(respondents []survey.Respondent, questionStats []QuestionStats) []RespondentSummary {
	drivers := e.taxonomy.Drivers()
	out := make([]RespondentSummary, 0, len(respondents))

	for _, r := range respondents {
		summary := RespondentSummary{
			Name:             r.Name,
			DriverScores:     make([]DriverScore, 0, len(drivers)),
			OutlierQuestions: []OutlierQuestion{},
		}

		sum := 0
		count := 0
		for _, s := range r.Scores {
			if s.Valid() {
				sum += int(s)
				count++
			}
		}
		if count > 0 {
			summary.OverallAverage = round2(float64(sum) / float64(count))
		}

		for _, driver := range drivers {
			dSum := 0
			dCount := 0
			for _, q := range e.taxonomy.Questions {
				if q.Driver != driver {
					continue
				}
				if s := r.Scores[q.Index]; s.Valid() {
					dSum += int(s)
					dCount++
				}
			}

			score := 0.0
			if dCount > 0 {
				score = round2(float64(dSum) / float64(dCount))
			}
			summary.DriverScores = append(summary.DriverScores, DriverScore{Driver: driver, Score: score})
		}

		if extremes := FindExtremeDrivers(summary.DriverScores); extremes.Strongest != nil {
			summary.HighestDriver = extremes.Strongest.Driver
			summary.LowestDriver = extremes.Weakest.Driver
		}

		for _, stat := range questionStats {
			score := r.Scores[stat.Question.Index]
			if !score.Valid() {
				continue
			}
			diff := float64(score) - stat.Average
			if math.Abs(diff) < OutlierThreshold {
				continue
			}
			summary.OutlierQuestions = append(summary.OutlierQuestions, OutlierQuestion{
				QuestionText: stat.Question.Text,
				Score:        score,
				TeamAverage:  stat.Average,
				Difference:   round2(diff),
			})
		}

		out = append(out, summary)
	}

	return out
}
