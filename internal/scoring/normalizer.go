package scoring

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SethFaerber/tma-report/internal/survey"
)

// Normalizer applies the Likert vocabulary to decoded spreadsheet rows.
type Normalizer struct {
	vocab  Vocabulary
	logger *slog.Logger
}

// Result carries the normalized respondents plus data-quality counters for
// operator metrics. Unmatched covers non-empty cells the vocabulary did not
// recognize; Empty covers blank cells. Both become missing scores.
type Result struct {
	Respondents []survey.Respondent
	Unmatched   int
	Empty       int
}

// NewNormalizer creates a normalizer for the given vocabulary.
func NewNormalizer(vocab Vocabulary, logger *slog.Logger) *Normalizer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Normalizer{vocab: vocab, logger: logger}
}

// NormalizeRows converts raw response rows into respondents with normalized
// score sequences. Each unmatched cell is logged with its respondent ordinal,
// question index and raw text, then carried forward as a missing value; a
// single bad cell never invalidates the rest of a respondent's answers.
//
// Rows whose cell count does not match the taxonomy are rejected, since
// positional alignment is the one invariant normalization cannot repair.
func (n *Normalizer) NormalizeRows(ctx context.Context, taxonomy *survey.Taxonomy, rows []survey.ResponseRow) (*Result, error) {
	result := &Result{
		Respondents: make([]survey.Respondent, 0, len(rows)),
	}

	for ordinal, row := range rows {
		if len(row.Cells) != taxonomy.Len() {
			return nil, fmt.Errorf("respondent %d has %d answer cells, taxonomy has %d questions",
				ordinal+1, len(row.Cells), taxonomy.Len())
		}

		name := strings.TrimSpace(row.Name)
		if name == "" {
			name = fmt.Sprintf("Respondent %d", ordinal+1)
		}

		scores := make([]survey.Score, len(row.Cells))
		for qi, cell := range row.Cells {
			score, ok := n.vocab.TextToScore(cell)
			scores[qi] = score
			if ok {
				continue
			}

			if strings.TrimSpace(cell) == "" {
				result.Empty++
				continue
			}

			result.Unmatched++
			n.logger.WarnContext(ctx, "response cell did not match Likert vocabulary",
				slog.Int("respondent", ordinal+1),
				slog.Int("question_index", qi),
				slog.String("raw", cell),
			)
		}

		respondent, err := survey.NewRespondent(name, scores, taxonomy)
		if err != nil {
			return nil, fmt.Errorf("normalize respondent %d: %w", ordinal+1, err)
		}
		result.Respondents = append(result.Respondents, respondent)
	}

	n.logger.InfoContext(ctx, "normalized survey responses",
		slog.Int("respondents", len(result.Respondents)),
		slog.Int("unmatched_cells", result.Unmatched),
		slog.Int("empty_cells", result.Empty),
	)

	return result, nil
}
