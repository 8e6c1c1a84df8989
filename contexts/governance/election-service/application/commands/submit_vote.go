package commands

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	application "elect/contexts/governance/election-service/application"
	"elect/contexts/governance/election-service/domain/entities"
	domainerrors "elect/contexts/governance/election-service/domain/errors"
	"elect/contexts/governance/election-service/domain/policy"
	"elect/contexts/governance/election-service/ports"
)

// SubmitVoteCommand carries one voter's answers for every ballot of an
// election. An empty ElectionID targets the latest election.
type SubmitVoteCommand struct {
	ElectionID string
	VoterID    string
	Ballots    []entities.BallotSubmission
}

// SubmitVoteResult is either an accepted vote or the messages explaining why
// the submission was turned away. Rejections are not errors: the voter fixes
// the ballots and submits again.
type SubmitVoteResult struct {
	Accepted   bool
	Vote       entities.Vote
	Selections []entities.Selection
	Errors     map[string][]string
	Notice     string
}

// VoteUseCase validates ballots and records a vote atomically. Eligibility
// is checked up front for a fast answer and again inside the write
// transaction.
type VoteUseCase struct {
	Elections ports.ElectionRepository
	Votes     ports.VoteRepository
	Clock     ports.Clock
	IDGen     ports.IDGenerator
	Logger    *slog.Logger
}

func (uc VoteUseCase) SubmitVote(ctx context.Context, cmd SubmitVoteCommand) (SubmitVoteResult, error) {
	logger := application.ResolveLogger(uc.Logger)
	voterID := strings.TrimSpace(cmd.VoterID)
	logger.Info("vote submission started",
		"event", "election_vote_submit_started",
		"module", "governance/election-service",
		"layer", "application",
		"election_id", strings.TrimSpace(cmd.ElectionID),
		"voter_id", voterID,
		"ballots", len(cmd.Ballots),
	)
	if voterID == "" {
		return SubmitVoteResult{}, domainerrors.ErrInvalidSubmission
	}

	election, err := resolveElection(ctx, uc.Elections, cmd.ElectionID)
	if err != nil {
		return SubmitVoteResult{}, err
	}
	hasVoted, err := uc.Votes.HasVoted(ctx, election.ElectionID, voterID)
	if err != nil {
		return SubmitVoteResult{}, err
	}
	if err := policy.CheckEligibility(election, voterID, hasVoted, uc.now()); err != nil {
		logger.Warn("vote submission not eligible",
			"event", "election_vote_submit_not_eligible",
			"module", "governance/election-service",
			"layer", "application",
			"election_id", election.ElectionID,
			"voter_id", voterID,
			"reason", err.Error(),
		)
		return SubmitVoteResult{}, err
	}

	ballots, candidates, err := loadBallots(ctx, uc.Elections, election.ElectionID)
	if err != nil {
		return SubmitVoteResult{}, err
	}
	outcome, err := policy.ValidateSubmission(ballots, candidates, cmd.Ballots)
	if err != nil {
		return SubmitVoteResult{}, err
	}
	if !outcome.Accepted() {
		logger.Info("vote submission rejected",
			"event", "election_vote_submit_rejected",
			"module", "governance/election-service",
			"layer", "application",
			"election_id", election.ElectionID,
			"voter_id", voterID,
			"invalid_ballots", len(outcome.Errors),
			"empty", outcome.Notice != "",
		)
		return SubmitVoteResult{Errors: outcome.Errors, Notice: outcome.Notice}, nil
	}

	var result SubmitVoteResult
	err = uc.Votes.RecordVote(ctx, func(tx ports.VoteTransaction) error {
		current, err := tx.GetElection(ctx, election.ElectionID)
		if err != nil {
			return err
		}
		voted, err := tx.HasVoted(ctx, current.ElectionID, voterID)
		if err != nil {
			return err
		}
		now := uc.now()
		if err := policy.CheckEligibility(current, voterID, voted, now); err != nil {
			return err
		}

		voteID, err := uc.IDGen.NewID(ctx)
		if err != nil {
			return err
		}
		vote := entities.Vote{
			VoteID:     voteID,
			ElectionID: current.ElectionID,
			VoterID:    voterID,
			CreatedAt:  now,
		}
		if err := tx.CreateVote(ctx, vote); err != nil {
			return err
		}
		selections, err := uc.recordSelections(ctx, tx, vote, outcome.Ballots, now)
		if err != nil {
			return err
		}
		result = SubmitVoteResult{Accepted: true, Vote: vote, Selections: selections}
		return nil
	})
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotEligible) {
			logger.Warn("vote submission lost eligibility during recording",
				"event", "election_vote_submit_not_eligible",
				"module", "governance/election-service",
				"layer", "application",
				"election_id", election.ElectionID,
				"voter_id", voterID,
				"reason", err.Error(),
			)
			return SubmitVoteResult{}, err
		}
		logger.Error("vote recording failed",
			"event", "election_vote_record_failed",
			"module", "governance/election-service",
			"layer", "application",
			"election_id", election.ElectionID,
			"voter_id", voterID,
			"error", err.Error(),
		)
		return SubmitVoteResult{}, err
	}

	logger.Info("vote recorded",
		"event", "election_vote_recorded",
		"module", "governance/election-service",
		"layer", "application",
		"election_id", election.ElectionID,
		"vote_id", result.Vote.VoteID,
		"selections", len(result.Selections),
	)
	return result, nil
}

// recordSelections resolves write-ins and writes one selection per choice.
// Selections on secret ballots are detached from the vote before saving.
func (uc VoteUseCase) recordSelections(
	ctx context.Context,
	tx ports.VoteTransaction,
	vote entities.Vote,
	ballots []entities.ValidatedBallot,
	now time.Time,
) ([]entities.Selection, error) {
	var recorded []entities.Selection
	for _, validated := range ballots {
		choices := append([]entities.Choice(nil), validated.Choices...)
		if validated.WriteIn != nil {
			candidateID, err := uc.IDGen.NewID(ctx)
			if err != nil {
				return nil, err
			}
			candidate, err := tx.GetOrCreateWriteIn(ctx, entities.Candidate{
				CandidateID: candidateID,
				BallotID:    validated.Ballot.BallotID,
				FirstName:   validated.WriteIn.FirstName,
				LastName:    validated.WriteIn.LastName,
				WriteIn:     true,
				CreatedAt:   now,
			})
			if err != nil {
				return nil, err
			}
			choices = append(choices, entities.Choice{CandidateID: candidate.CandidateID, Points: validated.WriteIn.Points})
		}

		for _, choice := range choices {
			selectionID, err := uc.IDGen.NewID(ctx)
			if err != nil {
				return nil, err
			}
			selection := entities.Selection{
				SelectionID: selectionID,
				VoteID:      vote.VoteID,
				BallotID:    validated.Ballot.BallotID,
				BallotType:  validated.Ballot.Type,
				CandidateID: choice.CandidateID,
				Points:      choice.Points,
				CreatedAt:   now,
			}
			if validated.Ballot.IsSecret {
				selection = selection.DetachVoter()
			}
			if err := tx.CreateSelection(ctx, selection); err != nil {
				return nil, err
			}
			recorded = append(recorded, selection)
		}
	}
	return recorded, nil
}

func (uc VoteUseCase) now() time.Time {
	now := time.Now().UTC()
	if uc.Clock != nil {
		now = uc.Clock.Now().UTC()
	}
	return now
}

func resolveElection(ctx context.Context, repo ports.ElectionRepository, electionID string) (entities.Election, error) {
	electionID = strings.TrimSpace(electionID)
	if electionID == "" {
		return repo.GetLatestElection(ctx)
	}
	return repo.GetElection(ctx, electionID)
}

func loadBallots(
	ctx context.Context,
	repo ports.ElectionRepository,
	electionID string,
) ([]entities.Ballot, map[string][]entities.Candidate, error) {
	ballots, err := repo.ListBallots(ctx, electionID)
	if err != nil {
		return nil, nil, err
	}
	candidates := make(map[string][]entities.Candidate, len(ballots))
	for _, ballot := range ballots {
		items, err := repo.ListCandidates(ctx, ballot.BallotID)
		if err != nil {
			return nil, nil, err
		}
		candidates[ballot.BallotID] = items
	}
	return ballots, candidates, nil
}
