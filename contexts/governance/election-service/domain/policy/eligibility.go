package policy

import (
	"time"

	"elect/contexts/governance/election-service/domain/entities"
	domainerrors "elect/contexts/governance/election-service/domain/errors"
)

// CheckEligibility returns nil when voterID may vote in election at now.
// Failures wrap domainerrors.ErrNotEligible.
func CheckEligibility(election entities.Election, voterID string, hasVoted bool, now time.Time) error {
	if !election.VotingAllowedOn(now) {
		return domainerrors.ErrVotingClosed
	}
	if !election.AllowsVoter(voterID) {
		return domainerrors.ErrVoterNotAllowed
	}
	if hasVoted {
		return domainerrors.ErrAlreadyVoted
	}
	return nil
}
