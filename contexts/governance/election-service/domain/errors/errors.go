package errors

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidElectionInput  = errors.New("invalid election input")
	ErrInvalidBallotInput    = errors.New("invalid ballot input")
	ErrInvalidCandidateInput = errors.New("invalid candidate input")
	ErrInvalidSubmission     = errors.New("invalid vote submission")
	ErrUnknownBallotType     = errors.New("unknown ballot type")
	ErrElectionNotFound      = errors.New("election not found")
	ErrNoElections           = errors.New("no elections have been entered yet")
	ErrBallotNotFound        = errors.New("ballot not found")
	ErrCandidateNotFound     = errors.New("candidate not found")
	ErrVoteNotFound          = errors.New("vote not found")
	ErrConflict              = errors.New("election conflict")
	ErrVotingStillOpen       = errors.New("voting window has not closed")

	// ErrNotEligible is the parent of every eligibility failure.
	ErrNotEligible     = errors.New("voter is not eligible")
	ErrVotingClosed    = fmt.Errorf("%w: voting is not open", ErrNotEligible)
	ErrVoterNotAllowed = fmt.Errorf("%w: voter is not on the allow-list", ErrNotEligible)
	ErrAlreadyVoted    = fmt.Errorf("%w: voter has already voted", ErrNotEligible)
)
