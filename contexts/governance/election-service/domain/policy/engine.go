package policy

import (
	"strings"

	"elect/contexts/governance/election-service/domain/entities"
	domainerrors "elect/contexts/governance/election-service/domain/errors"
)

// SubmissionOutcome is the result of validating every ballot of one
// submission. Errors is keyed by ballot id. Notice carries the single
// top-level message shown when every ballot is valid but none was answered.
type SubmissionOutcome struct {
	Ballots []entities.ValidatedBallot
	Errors  map[string][]string
	Notice  string
}

func (o SubmissionOutcome) Accepted() bool {
	return len(o.Errors) == 0 && o.Notice == ""
}

// ValidateSubmission validates every ballot of an election against the raw
// answers. Ballots missing from raw are treated as left blank. Every ballot
// is checked even after one fails. Answers that name a ballot outside the
// election fail with domainerrors.ErrBallotNotFound.
func ValidateSubmission(
	ballots []entities.Ballot,
	candidatesByBallot map[string][]entities.Candidate,
	raw []entities.BallotSubmission,
) (SubmissionOutcome, error) {
	known := make(map[string]struct{}, len(ballots))
	for _, ballot := range ballots {
		known[ballot.BallotID] = struct{}{}
	}
	answers := make(map[string]entities.BallotSubmission, len(raw))
	for _, answer := range raw {
		ballotID := strings.TrimSpace(answer.BallotID)
		if _, ok := known[ballotID]; !ok {
			return SubmissionOutcome{}, domainerrors.ErrBallotNotFound
		}
		answer.BallotID = ballotID
		answers[ballotID] = answer
	}

	outcome := SubmissionOutcome{Errors: map[string][]string{}}
	for _, ballot := range ballots {
		p, err := For(ballot.Type)
		if err != nil {
			return SubmissionOutcome{}, err
		}
		answer := answers[ballot.BallotID]
		answer.BallotID = ballot.BallotID
		validated, messages := p.Validate(ballot, candidatesByBallot[ballot.BallotID], answer)
		if len(messages) > 0 {
			outcome.Errors[ballot.BallotID] = messages
			continue
		}
		outcome.Ballots = append(outcome.Ballots, validated)
	}
	if len(outcome.Errors) > 0 {
		outcome.Ballots = nil
		return outcome, nil
	}

	for _, validated := range outcome.Ballots {
		if validated.HasSelections() {
			return outcome, nil
		}
	}
	outcome.Notice = MessageEmptySubmission
	return outcome, nil
}
