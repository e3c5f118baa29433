// Package submissions provides read access to identification submissions
// and their candidate species options. Submissions are created upstream;
// this service only consumes them.
package submissions

import "time"

// Submission is an identification event with the species a user was
// asked to choose between.
type Submission struct {
	ID          int        `json:"identification_id"`
	SubmittedAt *time.Time `json:"submitted_at,omitempty"`
	OptionIDs   []int      `json:"option_species_ids"`
}
