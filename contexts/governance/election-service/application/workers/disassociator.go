package workers

import (
	"context"
	"log/slog"
	"time"

	application "elect/contexts/governance/election-service/application"
	"elect/contexts/governance/election-service/ports"
)

// VoterDisassociator sweeps elections whose voting window has closed and
// unlinks their votes from voter identities.
type VoterDisassociator struct {
	Elections ports.ElectionRepository
	Votes     ports.VoteRepository
	Clock     ports.Clock
	Logger    *slog.Logger
}

// RunOnce returns the number of votes unlinked across all elections.
func (d VoterDisassociator) RunOnce(ctx context.Context) (int64, error) {
	logger := application.ResolveLogger(d.Logger)
	now := time.Now().UTC()
	if d.Clock != nil {
		now = d.Clock.Now().UTC()
	}

	elections, err := d.Elections.ListElections(ctx)
	if err != nil {
		return 0, err
	}
	var total int64
	for _, election := range elections {
		if !election.VotingClosedOn(now) {
			continue
		}
		votes, err := d.Votes.ListVotes(ctx, election.ElectionID)
		if err != nil {
			return total, err
		}
		linked := false
		for _, vote := range votes {
			if !vote.Disassociated() {
				linked = true
				break
			}
		}
		if !linked {
			continue
		}

		affected, err := d.Votes.DisassociateVoters(ctx, election.ElectionID)
		if err != nil {
			logger.Error("voter disassociation sweep failed",
				"event", "election_disassociation_sweep_failed",
				"module", "governance/election-service",
				"layer", "worker",
				"election_id", election.ElectionID,
				"error", err.Error(),
			)
			return total, err
		}
		total += affected
		logger.Info("voter disassociation sweep completed",
			"event", "election_disassociation_sweep_completed",
			"module", "governance/election-service",
			"layer", "worker",
			"election_id", election.ElectionID,
			"affected", affected,
		)
	}
	return total, nil
}
