// Package scoring converts raw spreadsheet response cells into normalized
// Likert scores. Matching is deliberately strict: trim surrounding
// whitespace, fold case, and compare against the five configured phrases.
// Anything else becomes a missing value; ambiguous text is never guessed
// into a score. Unmatched cells are logged with enough positional context
// for data-quality audits but never abort ingestion.
package scoring
