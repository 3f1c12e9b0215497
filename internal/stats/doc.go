// Package stats implements the aggregation engine that turns normalized
// respondent scores into the calculated dataset consumed by narrative
// generation and report rendering: per-question averages, population
// standard deviations and score distributions, per-driver mean-of-means,
// per-respondent summaries with outlier detection, and the capped sorted
// projections the report walks.
//
// The engine is pure and synchronous. Calculate allocates a fresh Dataset
// per call, never mutates its inputs, and never fails for data-shape
// reasons once the taxonomy has been validated upstream: empty or
// degenerate inputs produce defined zero values so downstream consumers
// always receive a structurally complete dataset.
//
// Every derived decimal is rounded half-up to two places at the point of
// derivation, and later comparisons (driver mean-of-means, outlier
// detection, extremal selection) operate on those rounded values. Rounding
// is not deferred to display; deferring it would silently change the
// numbers reports show.
package stats
