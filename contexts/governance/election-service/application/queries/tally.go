package queries

import (
	"context"
	"sort"
	"strings"

	"elect/contexts/governance/election-service/domain/entities"
	"elect/contexts/governance/election-service/domain/policy"
	"elect/contexts/governance/election-service/ports"
)

// TallyUseCase aggregates recorded selections. Totals are computed here
// from raw rows so every store yields the same ranking.
type TallyUseCase struct {
	Elections ports.ElectionRepository
	Votes     ports.VoteRepository
}

func (uc TallyUseCase) BallotStats(ctx context.Context, ballotID string) (entities.BallotStats, error) {
	ballot, err := uc.Elections.GetBallot(ctx, strings.TrimSpace(ballotID))
	if err != nil {
		return entities.BallotStats{}, err
	}
	return uc.ballotStats(ctx, ballot)
}

// ElectionStats returns the ranked candidates of every ballot in display order.
func (uc TallyUseCase) ElectionStats(ctx context.Context, electionID string) (entities.Election, []entities.BallotStats, error) {
	election, err := uc.Elections.GetElection(ctx, strings.TrimSpace(electionID))
	if err != nil {
		return entities.Election{}, nil, err
	}
	ballots, err := uc.Elections.ListBallots(ctx, election.ElectionID)
	if err != nil {
		return entities.Election{}, nil, err
	}
	entities.SortBallots(ballots)

	stats := make([]entities.BallotStats, 0, len(ballots))
	for _, ballot := range ballots {
		item, err := uc.ballotStats(ctx, ballot)
		if err != nil {
			return entities.Election{}, nil, err
		}
		stats = append(stats, item)
	}
	return election, stats, nil
}

// ElectionFullReport lays out every candidate of the election in ballot then
// candidate order, with one row of contributions per vote.
func (uc TallyUseCase) ElectionFullReport(ctx context.Context, electionID string) (entities.ElectionReport, error) {
	election, err := uc.Elections.GetElection(ctx, strings.TrimSpace(electionID))
	if err != nil {
		return entities.ElectionReport{}, err
	}
	ballots, err := uc.Elections.ListBallots(ctx, election.ElectionID)
	if err != nil {
		return entities.ElectionReport{}, err
	}
	entities.SortBallots(ballots)

	report := entities.ElectionReport{Election: election, Ballots: ballots}
	for _, ballot := range ballots {
		candidates, err := uc.Elections.ListCandidates(ctx, ballot.BallotID)
		if err != nil {
			return entities.ElectionReport{}, err
		}
		entities.SortCandidates(candidates)
		report.Candidates = append(report.Candidates, candidates...)
	}

	votes, err := uc.Votes.ListVotes(ctx, election.ElectionID)
	if err != nil {
		return entities.ElectionReport{}, err
	}
	sortVotes(votes)
	selections, err := uc.Votes.ListSelectionsByElection(ctx, election.ElectionID)
	if err != nil {
		return entities.ElectionReport{}, err
	}
	report.Rows = policy.Contributions(report.Candidates, votes, selections)
	return report, nil
}

// VoteDetails returns, per ballot in display order, the candidates one vote
// chose and the score each received.
func (uc TallyUseCase) VoteDetails(ctx context.Context, voteID string) (entities.VoteDetails, error) {
	vote, err := uc.Votes.GetVote(ctx, strings.TrimSpace(voteID))
	if err != nil {
		return entities.VoteDetails{}, err
	}
	ballots, err := uc.Elections.ListBallots(ctx, vote.ElectionID)
	if err != nil {
		return entities.VoteDetails{}, err
	}
	entities.SortBallots(ballots)
	candidates, err := uc.Elections.ListCandidatesByElection(ctx, vote.ElectionID)
	if err != nil {
		return entities.VoteDetails{}, err
	}
	byID := make(map[string]entities.Candidate, len(candidates))
	for _, candidate := range candidates {
		byID[candidate.CandidateID] = candidate
	}
	selections, err := uc.Votes.ListSelectionsByVote(ctx, vote.VoteID)
	if err != nil {
		return entities.VoteDetails{}, err
	}
	byBallot := make(map[string][]entities.CandidateScore, len(ballots))
	for _, selection := range selections {
		candidate, ok := byID[selection.CandidateID]
		if !ok {
			candidate = entities.Candidate{CandidateID: selection.CandidateID, BallotID: selection.BallotID}
		}
		byBallot[selection.BallotID] = append(byBallot[selection.BallotID], entities.CandidateScore{
			Candidate: candidate,
			Score:     policy.Score(selection),
		})
	}

	details := entities.VoteDetails{Vote: vote}
	for _, ballot := range ballots {
		choices := byBallot[ballot.BallotID]
		sort.SliceStable(choices, func(i, j int) bool {
			return entities.CandidateLess(choices[i].Candidate, choices[j].Candidate)
		})
		details.Ballots = append(details.Ballots, entities.BallotDetail{Ballot: ballot, Choices: choices})
	}
	return details, nil
}

func (uc TallyUseCase) ballotStats(ctx context.Context, ballot entities.Ballot) (entities.BallotStats, error) {
	candidates, err := uc.Elections.ListCandidates(ctx, ballot.BallotID)
	if err != nil {
		return entities.BallotStats{}, err
	}
	selections, err := uc.Votes.ListSelectionsByBallot(ctx, ballot.BallotID)
	if err != nil {
		return entities.BallotStats{}, err
	}
	return entities.BallotStats{
		Ballot: ballot,
		Scores: policy.Aggregate(candidates, selections),
	}, nil
}

func sortVotes(items []entities.Vote) {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].VoteID < items[j].VoteID
		}
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})
}
