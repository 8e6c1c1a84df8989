package commands

import (
	"context"
	"log/slog"
	"strings"
	"time"

	application "elect/contexts/governance/election-service/application"
	"elect/contexts/governance/election-service/domain/entities"
	domainerrors "elect/contexts/governance/election-service/domain/errors"
	"elect/contexts/governance/election-service/domain/policy"
	"elect/contexts/governance/election-service/ports"
)

type CreateElectionCommand struct {
	Name          string
	Introduction  string
	VoteStart     time.Time
	VoteEnd       time.Time
	AllowedVoters []string
}

type AddBallotCommand struct {
	ElectionID       string
	PositionNumber   int
	Description      string
	Introduction     string
	Type             entities.BallotType
	SeatsAvailable   int
	IsSecret         bool
	WriteInAvailable bool
}

type AddCandidateCommand struct {
	BallotID    string
	FirstName   string
	LastName    string
	Institution string
	Incumbent   bool
	ImageURL    string
	Biography   string
}

// AdminUseCase covers election setup and the post-election disassociation
// of voters from their votes.
type AdminUseCase struct {
	Elections ports.ElectionRepository
	Votes     ports.VoteRepository
	Clock     ports.Clock
	IDGen     ports.IDGenerator
	Logger    *slog.Logger
}

func (uc AdminUseCase) CreateElection(ctx context.Context, cmd CreateElectionCommand) (entities.Election, error) {
	logger := application.ResolveLogger(uc.Logger)
	name := strings.TrimSpace(cmd.Name)
	if name == "" || cmd.VoteStart.IsZero() || cmd.VoteEnd.IsZero() {
		return entities.Election{}, domainerrors.ErrInvalidElectionInput
	}
	start := entities.CivilDate(cmd.VoteStart)
	end := entities.CivilDate(cmd.VoteEnd)
	if start.After(end) {
		return entities.Election{}, domainerrors.ErrInvalidElectionInput
	}

	electionID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return entities.Election{}, err
	}
	election := entities.Election{
		ElectionID:    electionID,
		Name:          name,
		Introduction:  strings.TrimSpace(cmd.Introduction),
		VoteStart:     start,
		VoteEnd:       end,
		AllowedVoters: normalizeVoters(cmd.AllowedVoters),
		CreatedAt:     uc.now(),
	}
	if err := uc.Elections.CreateElection(ctx, election); err != nil {
		return entities.Election{}, err
	}
	logger.Info("election created",
		"event", "election_created",
		"module", "governance/election-service",
		"layer", "application",
		"election_id", election.ElectionID,
		"name", election.Name,
	)
	return election, nil
}

func (uc AdminUseCase) AddBallot(ctx context.Context, cmd AddBallotCommand) (entities.Ballot, error) {
	logger := application.ResolveLogger(uc.Logger)
	if _, err := policy.For(cmd.Type); err != nil {
		return entities.Ballot{}, domainerrors.ErrInvalidBallotInput
	}
	if cmd.SeatsAvailable < 1 || cmd.PositionNumber < 0 {
		return entities.Ballot{}, domainerrors.ErrInvalidBallotInput
	}
	election, err := uc.Elections.GetElection(ctx, strings.TrimSpace(cmd.ElectionID))
	if err != nil {
		return entities.Ballot{}, err
	}

	ballotID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return entities.Ballot{}, err
	}
	position := cmd.PositionNumber
	if position == 0 {
		position = 1
	}
	ballot := entities.Ballot{
		BallotID:         ballotID,
		ElectionID:       election.ElectionID,
		PositionNumber:   position,
		Description:      strings.TrimSpace(cmd.Description),
		Introduction:     strings.TrimSpace(cmd.Introduction),
		Type:             cmd.Type,
		SeatsAvailable:   cmd.SeatsAvailable,
		IsSecret:         cmd.IsSecret,
		WriteInAvailable: cmd.WriteInAvailable,
		CreatedAt:        uc.now(),
	}
	if err := uc.Elections.CreateBallot(ctx, ballot); err != nil {
		return entities.Ballot{}, err
	}
	logger.Info("ballot added",
		"event", "election_ballot_added",
		"module", "governance/election-service",
		"layer", "application",
		"election_id", ballot.ElectionID,
		"ballot_id", ballot.BallotID,
		"ballot_type", string(ballot.Type),
	)
	return ballot, nil
}

func (uc AdminUseCase) AddCandidate(ctx context.Context, cmd AddCandidateCommand) (entities.Candidate, error) {
	firstName := strings.TrimSpace(cmd.FirstName)
	lastName := strings.TrimSpace(cmd.LastName)
	if firstName == "" || lastName == "" {
		return entities.Candidate{}, domainerrors.ErrInvalidCandidateInput
	}
	ballot, err := uc.Elections.GetBallot(ctx, strings.TrimSpace(cmd.BallotID))
	if err != nil {
		return entities.Candidate{}, err
	}

	candidateID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return entities.Candidate{}, err
	}
	candidate := entities.Candidate{
		CandidateID: candidateID,
		BallotID:    ballot.BallotID,
		FirstName:   firstName,
		LastName:    lastName,
		Institution: strings.TrimSpace(cmd.Institution),
		Incumbent:   cmd.Incumbent,
		ImageURL:    strings.TrimSpace(cmd.ImageURL),
		Biography:   strings.TrimSpace(cmd.Biography),
		CreatedAt:   uc.now(),
	}
	if err := uc.Elections.CreateCandidate(ctx, candidate); err != nil {
		return entities.Candidate{}, err
	}
	return candidate, nil
}

// SetAllowedVoters replaces the allow-list. An empty list opens the election
// to every voter.
func (uc AdminUseCase) SetAllowedVoters(ctx context.Context, electionID string, voterIDs []string) (entities.Election, error) {
	logger := application.ResolveLogger(uc.Logger)
	election, err := uc.Elections.GetElection(ctx, strings.TrimSpace(electionID))
	if err != nil {
		return entities.Election{}, err
	}
	election.AllowedVoters = normalizeVoters(voterIDs)
	if err := uc.Elections.SetAllowedVoters(ctx, election.ElectionID, election.AllowedVoters); err != nil {
		return entities.Election{}, err
	}
	logger.Info("election allow-list replaced",
		"event", "election_allow_list_replaced",
		"module", "governance/election-service",
		"layer", "application",
		"election_id", election.ElectionID,
		"voters", len(election.AllowedVoters),
	)
	return election, nil
}

// DisassociateVoters strips voter identity from every vote of a closed
// election and returns how many votes were touched.
func (uc AdminUseCase) DisassociateVoters(ctx context.Context, electionID string) (int64, error) {
	logger := application.ResolveLogger(uc.Logger)
	election, err := uc.Elections.GetElection(ctx, strings.TrimSpace(electionID))
	if err != nil {
		return 0, err
	}
	if !election.VotingClosedOn(uc.now()) {
		logger.Warn("disassociation refused while voting is open",
			"event", "election_disassociate_refused",
			"module", "governance/election-service",
			"layer", "application",
			"election_id", election.ElectionID,
		)
		return 0, domainerrors.ErrVotingStillOpen
	}
	affected, err := uc.Votes.DisassociateVoters(ctx, election.ElectionID)
	if err != nil {
		return 0, err
	}
	logger.Info("voters disassociated",
		"event", "election_voters_disassociated",
		"module", "governance/election-service",
		"layer", "application",
		"election_id", election.ElectionID,
		"affected", affected,
	)
	return affected, nil
}

func (uc AdminUseCase) now() time.Time {
	now := time.Now().UTC()
	if uc.Clock != nil {
		now = uc.Clock.Now().UTC()
	}
	return now
}

func normalizeVoters(voterIDs []string) []string {
	seen := make(map[string]struct{}, len(voterIDs))
	out := make([]string, 0, len(voterIDs))
	for _, voterID := range voterIDs {
		voterID = strings.TrimSpace(voterID)
		if voterID == "" {
			continue
		}
		if _, ok := seen[voterID]; ok {
			continue
		}
		seen[voterID] = struct{}{}
		out = append(out, voterID)
	}
	return out
}
