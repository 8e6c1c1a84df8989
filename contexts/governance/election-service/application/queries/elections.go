package queries

import (
	"context"
	"errors"
	"strings"
	"time"

	"elect/contexts/governance/election-service/domain/entities"
	domainerrors "elect/contexts/governance/election-service/domain/errors"
	"elect/contexts/governance/election-service/domain/policy"
	"elect/contexts/governance/election-service/ports"
)

type ElectionQueryUseCase struct {
	Elections ports.ElectionRepository
	Votes     ports.VoteRepository
	Clock     ports.Clock
}

func (uc ElectionQueryUseCase) LatestElection(ctx context.Context) (entities.Election, error) {
	return uc.Elections.GetLatestElection(ctx)
}

func (uc ElectionQueryUseCase) ListElections(ctx context.Context) ([]entities.Election, error) {
	items, err := uc.Elections.ListElections(ctx)
	if err != nil {
		return nil, err
	}
	entities.SortElections(items)
	return items, nil
}

// Sheet returns the election with its ballots and printed candidates, as a
// voter sees them. An empty electionID targets the latest election.
func (uc ElectionQueryUseCase) Sheet(ctx context.Context, electionID string) (entities.ElectionSheet, error) {
	election, err := resolveElection(ctx, uc.Elections, electionID)
	if err != nil {
		return entities.ElectionSheet{}, err
	}
	ballots, err := uc.Elections.ListBallots(ctx, election.ElectionID)
	if err != nil {
		return entities.ElectionSheet{}, err
	}
	entities.SortBallots(ballots)

	sheet := entities.ElectionSheet{Election: election}
	for _, ballot := range ballots {
		candidates, err := uc.Elections.ListCandidates(ctx, ballot.BallotID)
		if err != nil {
			return entities.ElectionSheet{}, err
		}
		printed := entities.RegularCandidates(candidates)
		entities.SortCandidates(printed)
		exclusive := false
		if p, err := policy.For(ballot.Type); err == nil {
			exclusive = p.Exclusive(ballot)
		}
		sheet.Ballots = append(sheet.Ballots, entities.BallotListing{
			Ballot:        ballot,
			Candidates:    printed,
			Exclusive:     exclusive,
			HasIncumbents: entities.HasIncumbents(printed),
		})
	}
	return sheet, nil
}

// IsVotingOpenFor reports whether voterID could submit a vote right now.
// Ineligibility is an answer, not an error.
func (uc ElectionQueryUseCase) IsVotingOpenFor(ctx context.Context, electionID string, voterID string) (bool, error) {
	voterID = strings.TrimSpace(voterID)
	if voterID == "" {
		return false, nil
	}
	election, err := resolveElection(ctx, uc.Elections, electionID)
	if err != nil {
		return false, err
	}
	hasVoted, err := uc.Votes.HasVoted(ctx, election.ElectionID, voterID)
	if err != nil {
		return false, err
	}
	err = policy.CheckEligibility(election, voterID, hasVoted, uc.now())
	if errors.Is(err, domainerrors.ErrNotEligible) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Biographies lists, per ballot of the latest election, the candidates that
// have a biography. Ballots without any are left out.
func (uc ElectionQueryUseCase) Biographies(ctx context.Context) (entities.Election, []entities.BallotBiographies, error) {
	sheet, err := uc.Sheet(ctx, "")
	if err != nil {
		return entities.Election{}, nil, err
	}
	var out []entities.BallotBiographies
	for _, listing := range sheet.Ballots {
		withBio := entities.WithBiographies(listing.Candidates)
		if len(withBio) == 0 {
			continue
		}
		out = append(out, entities.BallotBiographies{Ballot: listing.Ballot, Candidates: withBio})
	}
	return sheet.Election, out, nil
}

func (uc ElectionQueryUseCase) now() time.Time {
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
