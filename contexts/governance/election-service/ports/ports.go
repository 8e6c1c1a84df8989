package ports

import (
	"context"
	"time"

	"elect/contexts/governance/election-service/domain/entities"
)

type ElectionRepository interface {
	CreateElection(ctx context.Context, election entities.Election) error
	GetElection(ctx context.Context, electionID string) (entities.Election, error)
	GetLatestElection(ctx context.Context) (entities.Election, error)
	ListElections(ctx context.Context) ([]entities.Election, error)
	SetAllowedVoters(ctx context.Context, electionID string, voterIDs []string) error

	CreateBallot(ctx context.Context, ballot entities.Ballot) error
	GetBallot(ctx context.Context, ballotID string) (entities.Ballot, error)
	ListBallots(ctx context.Context, electionID string) ([]entities.Ballot, error)

	CreateCandidate(ctx context.Context, candidate entities.Candidate) error
	ListCandidates(ctx context.Context, ballotID string) ([]entities.Candidate, error)
	ListCandidatesByElection(ctx context.Context, electionID string) ([]entities.Candidate, error)
}

type VoteRepository interface {
	HasVoted(ctx context.Context, electionID string, voterID string) (bool, error)
	GetVote(ctx context.Context, voteID string) (entities.Vote, error)
	ListVotes(ctx context.Context, electionID string) ([]entities.Vote, error)
	ListSelectionsByBallot(ctx context.Context, ballotID string) ([]entities.Selection, error)
	ListSelectionsByElection(ctx context.Context, electionID string) ([]entities.Selection, error)
	ListSelectionsByVote(ctx context.Context, voteID string) ([]entities.Selection, error)
	// DisassociateVoters clears the voter of every vote in the election and
	// returns the number of votes touched.
	DisassociateVoters(ctx context.Context, electionID string) (int64, error)
	// RecordVote runs fn in one write transaction. Nothing fn wrote is kept
	// when it returns an error.
	RecordVote(ctx context.Context, fn func(tx VoteTransaction) error) error
}

// VoteTransaction is the write side of a single vote recording.
type VoteTransaction interface {
	GetElection(ctx context.Context, electionID string) (entities.Election, error)
	HasVoted(ctx context.Context, electionID string, voterID string) (bool, error)
	CreateVote(ctx context.Context, vote entities.Vote) error
	// GetOrCreateWriteIn returns the write-in candidate matching the ballot
	// and both names, creating it from candidate when none exists.
	GetOrCreateWriteIn(ctx context.Context, candidate entities.Candidate) (entities.Candidate, error)
	CreateSelection(ctx context.Context, selection entities.Selection) error
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
