package stats

import (
	"math"

	"github.com/SethFaerber/tma-report/internal/survey"
)

// OutlierThreshold is the minimum absolute difference between a respondent's
// score and the team average for a question to be flagged as an outlier.
// The comparison is inclusive (>=) and runs against the rounded team average.
const OutlierThreshold = 1.5

// QuestionStats holds the team-level descriptive statistics for one question.
type QuestionStats struct {
	Question survey.Question `json:"question"`

	// Average is the mean of all non-missing scores, rounded to 2 decimals.
	Average float64 `json:"average"`
	// StdDev is the population standard deviation (divisor N) of the same
	// scores, rounded to 2 decimals.
	StdDev float64 `json:"std_dev"`
	// Distribution counts respondents per score: index i holds the number
	// of respondents who answered i+1. Missing answers are not counted.
	Distribution [5]int `json:"distribution"`
}

// DriverScore pairs a driver with its aggregated score.
type DriverScore struct {
	Driver survey.Driver `json:"driver"`
	Score  float64       `json:"score"`
}

// ExtremeDrivers identifies the strongest and weakest drivers by score.
// Both are nil when no drivers exist; on ties the first-seen driver wins.
type ExtremeDrivers struct {
	Strongest *DriverScore `json:"strongest"`
	Weakest   *DriverScore `json:"weakest"`
}

// OutlierQuestion records one question where a respondent's answer deviates
// from the team average by at least OutlierThreshold.
type OutlierQuestion struct {
	QuestionText string       `json:"question_text"`
	Score        survey.Score `json:"score"`
	TeamAverage  float64      `json:"team_average"`
	// Difference is the signed respondent-minus-team gap, rounded to 2
	// decimals.
	Difference float64 `json:"difference"`
}

// RespondentSummary holds one respondent's personal statistics, computed
// over that respondent's own scores only.
type RespondentSummary struct {
	Name           string        `json:"name"`
	OverallAverage float64       `json:"overall_average"`
	DriverScores   []DriverScore `json:"driver_scores"`
	HighestDriver  survey.Driver `json:"highest_driver"`
	LowestDriver   survey.Driver `json:"lowest_driver"`
	// OutlierQuestions lists every question where this respondent's answer
	// deviates from the team average by at least OutlierThreshold. Missing
	// answers never appear here.
	OutlierQuestions []OutlierQuestion `json:"outlier_questions"`
}

// Dataset is the complete calculated output for one uploaded survey.
// It is built once by Engine.Calculate and handed to consumers by value
// semantics: nothing in this package retains or mutates it afterwards.
type Dataset struct {
	// QuestionStats lists all questions in original taxonomy order.
	QuestionStats []QuestionStats `json:"question_stats"`
	// DriverScores lists per-driver mean-of-means in first-seen taxonomy
	// order. Every driver in the taxonomy appears, degenerate or not.
	DriverScores []DriverScore  `json:"driver_scores"`
	Extremes     ExtremeDrivers `json:"extremes"`
	// Respondents lists summaries for every respondent who answered at
	// least one question; fully-blank respondents are excluded upstream.
	Respondents []RespondentSummary `json:"respondents"`

	// Report projections: each is the top 8 of a full sort, re-ordered by
	// the fixed driver priority for presentation.
	MostAligned    []QuestionStats `json:"most_aligned"`
	MostDifferent  []QuestionStats `json:"most_different"`
	HighestScoring []QuestionStats `json:"highest_scoring"`
	LowestScoring  []QuestionStats `json:"lowest_scoring"`

	// Uncapped single extremes used as narrative-generation context.
	HighestQuestion       *QuestionStats `json:"highest_question"`
	LowestQuestion        *QuestionStats `json:"lowest_question"`
	MostAlignedQuestion   *QuestionStats `json:"most_aligned_question"`
	MostDisagreedQuestion *QuestionStats `json:"most_disagreed_question"`
}

// round2 rounds half-up to two decimal places. Applied at every derivation
// boundary so chained computations reuse the rounded value.
func round2(v float64) float64 {
	return math.Floor(v*100+0.5) / 100
}
