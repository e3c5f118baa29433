// Package corrections records user-reported plant species misidentifications.
package corrections

import "time"

// RecordedMessage confirms a successfully stored correction.
const RecordedMessage = "Incorrect identification recorded."

// Correction links an identification submission to the species the user
// actually saw and the species the system suggested instead.
type Correction struct {
	IdentificationID   int       `json:"identification_id"`
	CorrectSpeciesID   int       `json:"correct_species_id"`
	IncorrectSpeciesID int       `json:"incorrect_species_id"`
	ReportedAt         time.Time `json:"reported_at"`
}

// CreateCommand carries the fields accepted when reporting a misidentification.
type CreateCommand struct {
	IdentificationID   int `json:"identification_id" validate:"required,gt=0"`
	CorrectSpeciesID   int `json:"correct_species_id" validate:"required,gt=0"`
	IncorrectSpeciesID int `json:"incorrect_species_id" validate:"required,gt=0"`
}

// CreateResult echoes the recorded correction back to the caller.
type CreateResult struct {
	IdentificationID   int    `json:"identification_id"`
	CorrectSpeciesID   int    `json:"correct_species_id"`
	IncorrectSpeciesID int    `json:"incorrect_species_id"`
	Message            string `json:"message"`
}
