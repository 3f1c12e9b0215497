// Package report assembles the renderer-facing report model from a
// calculated dataset and writes it out as JSON, CSV or a plain-text table
// layout. Writers only format numbers the engine already rounded; no
// arithmetic happens here.
package report

import (
	"time"

	"github.com/google/uuid"

	"github.com/SethFaerber/tma-report/internal/narrative"
	"github.com/SethFaerber/tma-report/internal/stats"
)

// Report is the complete survey report: the calculated dataset plus the
// narrative prose, stamped with an id and generation time.
type Report struct {
	ID          string               `json:"id"`
	GeneratedAt time.Time            `json:"generated_at"`
	Dataset     *stats.Dataset       `json:"dataset"`
	Narrative   *narrative.Narrative `json:"narrative"`
}

// New assembles a report from its parts.
func New(dataset *stats.Dataset, n *narrative.Narrative) *Report {
	return &Report{
		ID:          uuid.NewString(),
		GeneratedAt: time.Now().UTC(),
		Dataset:     dataset,
		Narrative:   n,
	}
}
