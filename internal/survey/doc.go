// Package survey defines the domain types shared across the report pipeline:
// the question taxonomy (questions grouped under the five drivers), Likert
// scores with an explicit missing marker, and respondents whose answers are
// positionally aligned to the taxonomy.
//
// All types here are plain immutable values. Construction is the only place
// invariants are checked: a Taxonomy must match the configured question count
// and a Respondent's score sequence must match the taxonomy length. Once
// built, nothing in this package mutates.
package survey
