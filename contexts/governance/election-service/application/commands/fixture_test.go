package commands_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"elect/contexts/governance/election-service/adapters/memory"
	"elect/contexts/governance/election-service/application/commands"
	"elect/contexts/governance/election-service/domain/entities"
)

var votingDay = time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

type fixture struct {
	store *memory.Store
	votes commands.VoteUseCase
	admin commands.AdminUseCase
}

func newFixture() fixture {
	store := memory.NewStore(nil)
	store.SetNow(votingDay)
	return fixture{
		store: store,
		votes: commands.VoteUseCase{Elections: store, Votes: store, Clock: store, IDGen: store},
		admin: commands.AdminUseCase{Elections: store, Votes: store, Clock: store, IDGen: store},
	}
}

func (f fixture) election(t *testing.T, name string, allowed ...string) entities.Election {
	t.Helper()
	election, err := f.admin.CreateElection(context.Background(), commands.CreateElectionCommand{
		Name:          name,
		VoteStart:     votingDay.AddDate(0, 0, -1),
		VoteEnd:       votingDay.AddDate(0, 0, 1),
		AllowedVoters: allowed,
	})
	if err != nil {
		t.Fatalf("create election failed: %v", err)
	}
	return election
}

func (f fixture) ballot(t *testing.T, electionID string, cmd commands.AddBallotCommand) entities.Ballot {
	t.Helper()
	cmd.ElectionID = electionID
	if cmd.SeatsAvailable == 0 {
		cmd.SeatsAvailable = 1
	}
	ballot, err := f.admin.AddBallot(context.Background(), cmd)
	if err != nil {
		t.Fatalf("add ballot failed: %v", err)
	}
	return ballot
}

// candidates adds one candidate per "First Last" name and returns them keyed
// by first name.
func (f fixture) candidates(t *testing.T, ballotID string, names ...string) map[string]entities.Candidate {
	t.Helper()
	out := make(map[string]entities.Candidate, len(names))
	for _, name := range names {
		parts := strings.Fields(name)
		candidate, err := f.admin.AddCandidate(context.Background(), commands.AddCandidateCommand{
			BallotID:  ballotID,
			FirstName: parts[0],
			LastName:  parts[1],
		})
		if err != nil {
			t.Fatalf("add candidate failed: %v", err)
		}
		out[parts[0]] = candidate
	}
	return out
}
