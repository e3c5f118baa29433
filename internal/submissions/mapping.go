package submissions

import (
	"github.com/identiflora/identiflora/pkg/query"
	"github.com/identiflora/identiflora/pkg/repository"
)

func projection() *query.ProjectionMap {
	return query.NewProjectionMap("public", "identification_submission", "s").
		Project("identification_id", "ID").
		Project("submitted_at", "SubmittedAt")
}

func scanSubmission(s repository.Scanner) (Submission, error) {
	var sub Submission
	err := s.Scan(&sub.ID, &sub.SubmittedAt)
	return sub, err
}

func scanOptionID(s repository.Scanner) (int, error) {
	var id int
	err := s.Scan(&id)
	return id, err
}
