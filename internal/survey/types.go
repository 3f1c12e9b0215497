package survey

import (
	"fmt"
)

// Driver is one of the five strategic dimensions a question belongs to.
type Driver string

const (
	DriverPurpose Driver = "Purpose"
	DriverPeople  Driver = "People"
	DriverPlan    Driver = "Plan"
	DriverProduct Driver = "Product"
	DriverProfit  Driver = "Profit"
)

// DriverOrder is the fixed presentation order used by report sections.
// Sorting treats any driver not in this list as ranking before all known
// drivers; that ordering is depended on by downstream renderers.
var DriverOrder = []Driver{
	DriverPurpose,
	DriverPeople,
	DriverPlan,
	DriverProduct,
	DriverProfit,
}

// Rank returns the driver's position in DriverOrder, or -1 when the driver
// is not in the fixed list.
func (d Driver) Rank() int {
	for i, known := range DriverOrder {
		if known == d {
			return i
		}
	}
	return -1
}

// String implements fmt.Stringer.
func (d Driver) String() string {
	return string(d)
}

// Score is a normalized Likert answer. Valid values are 1 through 5;
// ScoreMissing marks an answer that could not be matched against the
// vocabulary (or was absent). Missing is a regular state, not an error.
type Score int

// ScoreMissing marks an unanswered or unmatched response cell.
const ScoreMissing Score = 0

// Valid reports whether the score carries an actual 1..5 answer.
func (s Score) Valid() bool {
	return s >= 1 && s <= 5
}

// Question is a single survey prompt within the taxonomy.
type Question struct {
	Index  int    `json:"index" yaml:"index"`
	Driver Driver `json:"driver" yaml:"driver"`
	Skill  string `json:"skill" yaml:"skill"`
	Text   string `json:"text" yaml:"text"`
}

// Taxonomy is the ordered, validated question list for one survey layout.
// Question order matches source spreadsheet column order; Question.Index is
// the position in Questions.
type Taxonomy struct {
	Questions []Question
}

// NewTaxonomy validates the question list against the expected count and
// assigns positional indices. A count mismatch is a configuration error and
// must abort startup; every positional invariant downstream depends on it.
func NewTaxonomy(questions []Question, expectedCount int) (*Taxonomy, error) {
	if len(questions) != expectedCount {
		return nil, fmt.Errorf("taxonomy has %d questions, expected %d", len(questions), expectedCount)
	}

	indexed := make([]Question, len(questions))
	copy(indexed, questions)
	for i := range indexed {
		indexed[i].Index = i
	}

	return &Taxonomy{Questions: indexed}, nil
}

// Len returns the number of questions in the taxonomy.
func (t *Taxonomy) Len() int {
	return len(t.Questions)
}

// Drivers returns the distinct drivers present in the taxonomy in first-seen
// order. The result always covers every driver a question references, even
// when that driver ends up with degenerate (zero-count) statistics.
func (t *Taxonomy) Drivers() []Driver {
	seen := make(map[Driver]bool, len(DriverOrder))
	var drivers []Driver
	for _, q := range t.Questions {
		if !seen[q.Driver] {
			seen[q.Driver] = true
			drivers = append(drivers, q.Driver)
		}
	}
	return drivers
}

// ResponseRow is a single pre-decoded spreadsheet row: a respondent display
// name plus raw answer cells positionally aligned to taxonomy column order.
// Cells hold the literal spreadsheet text; normalization happens later.
type ResponseRow struct {
	Name  string
	Cells []string
}

// Respondent is one row of the uploaded survey: a display name plus a score
// sequence positionally aligned to the taxonomy.
type Respondent struct {
	Name   string
	Scores []Score
}

// NewRespondent builds a respondent, checking the score sequence length
// against the taxonomy so positional alignment can never silently drift.
func NewRespondent(name string, scores []Score, taxonomy *Taxonomy) (Respondent, error) {
	if len(scores) != taxonomy.Len() {
		return Respondent{}, fmt.Errorf("respondent %q has %d scores, taxonomy has %d questions",
			name, len(scores), taxonomy.Len())
	}
	copied := make([]Score, len(scores))
	copy(copied, scores)
	return Respondent{Name: name, Scores: copied}, nil
}

// HasValidScores reports whether the respondent answered at least one
// question with a score the vocabulary recognized.
func (r Respondent) HasValidScores() bool {
	for _, s := range r.Scores {
		if s.Valid() {
			return true
		}
	}
	return false
}

// ValidScoreCount returns how many of the respondent's answers carry a real
// 1..5 score.
func (r Respondent) ValidScoreCount() int {
	count := 0
	for _, s := range r.Scores {
		if s.Valid() {
			count++
		}
	}
	return count
}
