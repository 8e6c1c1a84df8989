package commands_test

import (
	"context"
	"errors"
	"reflect"
	"sync"
	"sync/atomic"
	"testing"

	"elect/contexts/governance/election-service/application/commands"
	"elect/contexts/governance/election-service/application/queries"
	"elect/contexts/governance/election-service/domain/entities"
	domainerrors "elect/contexts/governance/election-service/domain/errors"
	"elect/contexts/governance/election-service/domain/policy"
)

func TestSubmitVoteRecordsPluralitySelections(t *testing.T) {
	f := newFixture()
	election := f.election(t, "Board 2026")
	ballot := f.ballot(t, election.ElectionID, commands.AddBallotCommand{Type: entities.BallotTypePlurality, SeatsAvailable: 2})
	c := f.candidates(t, ballot.BallotID, "Xavier Xu", "Yara Young", "Zoe Zimmer")

	result, err := f.votes.SubmitVote(context.Background(), commands.SubmitVoteCommand{
		ElectionID: election.ElectionID,
		VoterID:    "voter-1",
		Ballots: []entities.BallotSubmission{{
			BallotID: ballot.BallotID,
			Selected: []string{c["Xavier"].CandidateID, c["Yara"].CandidateID},
		}},
	})
	if err != nil {
		t.Fatalf("submit vote failed: %v", err)
	}
	if !result.Accepted || result.Vote.VoterID != "voter-1" {
		t.Fatalf("expected accepted vote for voter-1, got %+v", result)
	}
	if len(result.Selections) != 2 {
		t.Fatalf("expected 2 selections, got %d", len(result.Selections))
	}
	for _, selection := range result.Selections {
		if selection.VoteID != result.Vote.VoteID || selection.Points != 1 {
			t.Fatalf("unexpected selection %+v", selection)
		}
	}
	voted, _ := f.store.HasVoted(context.Background(), election.ElectionID, "voter-1")
	if !voted {
		t.Fatalf("expected voter-1 to be marked as voted")
	}
}

func TestSubmitVoteRejectionRecordsNothing(t *testing.T) {
	f := newFixture()
	election := f.election(t, "Board 2026")
	ballot := f.ballot(t, election.ElectionID, commands.AddBallotCommand{Type: entities.BallotTypePlurality, SeatsAvailable: 2})
	c := f.candidates(t, ballot.BallotID, "Xavier Xu", "Yara Young", "Zoe Zimmer")

	result, err := f.votes.SubmitVote(context.Background(), commands.SubmitVoteCommand{
		ElectionID: election.ElectionID,
		VoterID:    "voter-1",
		Ballots: []entities.BallotSubmission{{
			BallotID: ballot.BallotID,
			Selected: []string{c["Xavier"].CandidateID, c["Yara"].CandidateID, c["Zoe"].CandidateID},
		}},
	})
	if err != nil {
		t.Fatalf("submit vote failed: %v", err)
	}
	if result.Accepted {
		t.Fatalf("expected rejection")
	}
	want := map[string][]string{ballot.BallotID: {"Please select 2 or fewer candidates."}}
	if !reflect.DeepEqual(result.Errors, want) {
		t.Fatalf("expected %v, got %v", want, result.Errors)
	}
	votes, _ := f.store.ListVotes(context.Background(), election.ElectionID)
	selections, _ := f.store.ListSelectionsByElection(context.Background(), election.ElectionID)
	if len(votes) != 0 || len(selections) != 0 {
		t.Fatalf("expected nothing recorded, got %d votes and %d selections", len(votes), len(selections))
	}
}

func TestSubmitVotePreferentialDuplicateRejected(t *testing.T) {
	f := newFixture()
	election := f.election(t, "Board 2026")
	ballot := f.ballot(t, election.ElectionID, commands.AddBallotCommand{Type: entities.BallotTypePreferential})
	c := f.candidates(t, ballot.BallotID, "Ann Able", "Ben Baker", "Cat Cole")

	result, err := f.votes.SubmitVote(context.Background(), commands.SubmitVoteCommand{
		ElectionID: election.ElectionID,
		VoterID:    "voter-1",
		Ballots: []entities.BallotSubmission{{
			BallotID: ballot.BallotID,
			Points: map[string]int{
				c["Ann"].CandidateID: 2,
				c["Ben"].CandidateID: 2,
				c["Cat"].CandidateID: 0,
			},
		}},
	})
	if err != nil {
		t.Fatalf("submit vote failed: %v", err)
	}
	if result.Accepted || !reflect.DeepEqual(result.Errors[ballot.BallotID], []string{policy.MessageDuplicatePoints}) {
		t.Fatalf("expected duplicate points rejection, got %+v", result)
	}
}

func TestSubmitVotePaddedCandidateKeysRejected(t *testing.T) {
	f := newFixture()
	election := f.election(t, "Board 2026")
	ballot := f.ballot(t, election.ElectionID, commands.AddBallotCommand{Type: entities.BallotTypePreferential})
	c := f.candidates(t, ballot.BallotID, "Ann Able", "Ben Baker", "Cat Cole")
	ann := c["Ann"].CandidateID

	result, err := f.votes.SubmitVote(context.Background(), commands.SubmitVoteCommand{
		ElectionID: election.ElectionID,
		VoterID:    "voter-1",
		Ballots: []entities.BallotSubmission{{
			BallotID: ballot.BallotID,
			Points:   map[string]int{ann: 3, " " + ann: 2, ann + " ": 1},
		}},
	})
	if err != nil {
		t.Fatalf("submit vote failed: %v", err)
	}
	if result.Accepted || !reflect.DeepEqual(result.Errors[ballot.BallotID], []string{policy.MessageDuplicatePoints}) {
		t.Fatalf("expected duplicate points rejection, got %+v", result)
	}

	voted, _ := f.store.HasVoted(context.Background(), election.ElectionID, "voter-1")
	if voted {
		t.Fatalf("rejected submission must not mark the voter")
	}
	selections, _ := f.store.ListSelectionsByBallot(context.Background(), ballot.BallotID)
	if len(selections) != 0 {
		t.Fatalf("expected no selections, got %+v", selections)
	}
	stats, err := queries.TallyUseCase{Elections: f.store, Votes: f.store}.BallotStats(context.Background(), ballot.BallotID)
	if err != nil {
		t.Fatalf("ballot stats failed: %v", err)
	}
	for _, score := range stats.Scores {
		if score.Score != 0 {
			t.Fatalf("expected no points recorded, got %+v", stats.Scores)
		}
	}
}

func TestSubmitVoteSecretBallotDetachesSelections(t *testing.T) {
	f := newFixture()
	election := f.election(t, "Board 2026")
	ballot := f.ballot(t, election.ElectionID, commands.AddBallotCommand{Type: entities.BallotTypePlurality, IsSecret: true})
	c := f.candidates(t, ballot.BallotID, "Xavier Xu", "Yara Young")

	result, err := f.votes.SubmitVote(context.Background(), commands.SubmitVoteCommand{
		ElectionID: election.ElectionID,
		VoterID:    "voter-1",
		Ballots:    []entities.BallotSubmission{{BallotID: ballot.BallotID, Selected: []string{c["Xavier"].CandidateID}}},
	})
	if err != nil || !result.Accepted {
		t.Fatalf("expected accepted vote, got %+v err=%v", result, err)
	}
	if result.Vote.VoterID != "voter-1" {
		t.Fatalf("vote should still record the voter")
	}

	selections, _ := f.store.ListSelectionsByBallot(context.Background(), ballot.BallotID)
	if len(selections) != 1 || selections[0].Linked() {
		t.Fatalf("expected one detached selection, got %+v", selections)
	}
	linked, _ := f.store.ListSelectionsByVote(context.Background(), result.Vote.VoteID)
	if len(linked) != 0 {
		t.Fatalf("secret selections must not be reachable from the vote, got %+v", linked)
	}
	voted, _ := f.store.HasVoted(context.Background(), election.ElectionID, "voter-1")
	if !voted {
		t.Fatalf("expected has_voted to be true")
	}
}

func TestSubmitVoteAllowList(t *testing.T) {
	f := newFixture()
	open := f.election(t, "Open")
	openBallot := f.ballot(t, open.ElectionID, commands.AddBallotCommand{Type: entities.BallotTypePlurality})
	openCandidates := f.candidates(t, openBallot.BallotID, "Xavier Xu")

	result, err := f.votes.SubmitVote(context.Background(), commands.SubmitVoteCommand{
		ElectionID: open.ElectionID,
		VoterID:    "anyone",
		Ballots:    []entities.BallotSubmission{{BallotID: openBallot.BallotID, Selected: []string{openCandidates["Xavier"].CandidateID}}},
	})
	if err != nil || !result.Accepted {
		t.Fatalf("empty allow-list should admit anyone, got %+v err=%v", result, err)
	}

	restricted := f.election(t, "Restricted", "v1")
	ballot := f.ballot(t, restricted.ElectionID, commands.AddBallotCommand{Type: entities.BallotTypePlurality})
	c := f.candidates(t, ballot.BallotID, "Yara Young")
	_, err = f.votes.SubmitVote(context.Background(), commands.SubmitVoteCommand{
		ElectionID: restricted.ElectionID,
		VoterID:    "v2",
		Ballots:    []entities.BallotSubmission{{BallotID: ballot.BallotID, Selected: []string{c["Yara"].CandidateID}}},
	})
	if !errors.Is(err, domainerrors.ErrVoterNotAllowed) || !errors.Is(err, domainerrors.ErrNotEligible) {
		t.Fatalf("expected ErrVoterNotAllowed, got %v", err)
	}
}

func TestSubmitVoteRejectsSecondVote(t *testing.T) {
	f := newFixture()
	election := f.election(t, "Board 2026")
	ballot := f.ballot(t, election.ElectionID, commands.AddBallotCommand{Type: entities.BallotTypePlurality})
	c := f.candidates(t, ballot.BallotID, "Xavier Xu")
	cmd := commands.SubmitVoteCommand{
		ElectionID: election.ElectionID,
		VoterID:    "voter-1",
		Ballots:    []entities.BallotSubmission{{BallotID: ballot.BallotID, Selected: []string{c["Xavier"].CandidateID}}},
	}
	if _, err := f.votes.SubmitVote(context.Background(), cmd); err != nil {
		t.Fatalf("first vote failed: %v", err)
	}
	if _, err := f.votes.SubmitVote(context.Background(), cmd); !errors.Is(err, domainerrors.ErrAlreadyVoted) {
		t.Fatalf("expected ErrAlreadyVoted, got %v", err)
	}
}

func TestSubmitVoteOutsideWindow(t *testing.T) {
	f := newFixture()
	election := f.election(t, "Board 2026")
	ballot := f.ballot(t, election.ElectionID, commands.AddBallotCommand{Type: entities.BallotTypePlurality})
	c := f.candidates(t, ballot.BallotID, "Xavier Xu")
	f.store.SetNow(votingDay.AddDate(0, 0, 2))

	_, err := f.votes.SubmitVote(context.Background(), commands.SubmitVoteCommand{
		ElectionID: election.ElectionID,
		VoterID:    "voter-1",
		Ballots:    []entities.BallotSubmission{{BallotID: ballot.BallotID, Selected: []string{c["Xavier"].CandidateID}}},
	})
	if !errors.Is(err, domainerrors.ErrVotingClosed) {
		t.Fatalf("expected ErrVotingClosed, got %v", err)
	}
}

func TestSubmitVoteEmptySubmissionNotice(t *testing.T) {
	f := newFixture()
	election := f.election(t, "Board 2026")
	first := f.ballot(t, election.ElectionID, commands.AddBallotCommand{Type: entities.BallotTypePlurality})
	second := f.ballot(t, election.ElectionID, commands.AddBallotCommand{Type: entities.BallotTypePreferential, PositionNumber: 2})
	f.candidates(t, first.BallotID, "Xavier Xu")
	c := f.candidates(t, second.BallotID, "Ann Able")

	result, err := f.votes.SubmitVote(context.Background(), commands.SubmitVoteCommand{
		ElectionID: election.ElectionID,
		VoterID:    "voter-1",
		Ballots: []entities.BallotSubmission{
			{BallotID: first.BallotID},
			{BallotID: second.BallotID, Points: map[string]int{c["Ann"].CandidateID: 0}},
		},
	})
	if err != nil {
		t.Fatalf("submit vote failed: %v", err)
	}
	if result.Accepted || result.Notice != policy.MessageEmptySubmission || len(result.Errors) != 0 {
		t.Fatalf("expected empty submission notice, got %+v", result)
	}
	voted, _ := f.store.HasVoted(context.Background(), election.ElectionID, "voter-1")
	if voted {
		t.Fatalf("empty submission must not record a vote")
	}
}

func TestSubmitVoteTargetsLatestElection(t *testing.T) {
	f := newFixture()
	if _, err := f.votes.SubmitVote(context.Background(), commands.SubmitVoteCommand{VoterID: "voter-1"}); !errors.Is(err, domainerrors.ErrNoElections) {
		t.Fatalf("expected ErrNoElections, got %v", err)
	}

	election := f.election(t, "Board 2026")
	ballot := f.ballot(t, election.ElectionID, commands.AddBallotCommand{Type: entities.BallotTypePlurality})
	c := f.candidates(t, ballot.BallotID, "Xavier Xu")
	result, err := f.votes.SubmitVote(context.Background(), commands.SubmitVoteCommand{
		VoterID: "voter-1",
		Ballots: []entities.BallotSubmission{{BallotID: ballot.BallotID, Selected: []string{c["Xavier"].CandidateID}}},
	})
	if err != nil || result.Vote.ElectionID != election.ElectionID {
		t.Fatalf("expected vote on latest election, got %+v err=%v", result, err)
	}
}

func TestSubmitVoteWriteInResolvedOnce(t *testing.T) {
	f := newFixture()
	election := f.election(t, "Board 2026")
	ballot := f.ballot(t, election.ElectionID, commands.AddBallotCommand{Type: entities.BallotTypePlurality, WriteInAvailable: true})
	f.candidates(t, ballot.BallotID, "Xavier Xu")

	var candidateIDs []string
	for _, voter := range []string{"voter-1", "voter-2"} {
		result, err := f.votes.SubmitVote(context.Background(), commands.SubmitVoteCommand{
			ElectionID: election.ElectionID,
			VoterID:    voter,
			Ballots: []entities.BallotSubmission{{
				BallotID: ballot.BallotID,
				WriteIn:  &entities.WriteIn{FirstName: "Walt", LastName: "Wren"},
			}},
		})
		if err != nil || !result.Accepted {
			t.Fatalf("write-in vote failed: %+v err=%v", result, err)
		}
		candidateIDs = append(candidateIDs, result.Selections[0].CandidateID)
	}
	if candidateIDs[0] != candidateIDs[1] {
		t.Fatalf("expected both votes to share one write-in candidate, got %v", candidateIDs)
	}

	candidates, _ := f.store.ListCandidates(context.Background(), ballot.BallotID)
	writeIns := 0
	for _, candidate := range candidates {
		if candidate.WriteIn {
			writeIns++
		}
	}
	if writeIns != 1 {
		t.Fatalf("expected exactly one write-in candidate, got %d", writeIns)
	}
}

func TestSubmitVoteRejectedSubmissionCreatesNoWriteIn(t *testing.T) {
	f := newFixture()
	election := f.election(t, "Board 2026")
	withWriteIn := f.ballot(t, election.ElectionID, commands.AddBallotCommand{Type: entities.BallotTypePlurality, WriteInAvailable: true})
	strict := f.ballot(t, election.ElectionID, commands.AddBallotCommand{Type: entities.BallotTypePlurality, PositionNumber: 2})
	f.candidates(t, withWriteIn.BallotID, "Xavier Xu")
	c := f.candidates(t, strict.BallotID, "Ann Able", "Ben Baker")

	result, err := f.votes.SubmitVote(context.Background(), commands.SubmitVoteCommand{
		ElectionID: election.ElectionID,
		VoterID:    "voter-1",
		Ballots: []entities.BallotSubmission{
			{BallotID: withWriteIn.BallotID, WriteIn: &entities.WriteIn{FirstName: "Walt", LastName: "Wren"}},
			{BallotID: strict.BallotID, Selected: []string{c["Ann"].CandidateID, c["Ben"].CandidateID}},
		},
	})
	if err != nil || result.Accepted {
		t.Fatalf("expected rejection, got %+v err=%v", result, err)
	}
	if _, ok := result.Errors[withWriteIn.BallotID]; ok {
		t.Fatalf("valid ballot should carry no messages: %v", result.Errors)
	}
	candidates, _ := f.store.ListCandidates(context.Background(), withWriteIn.BallotID)
	if len(candidates) != 1 {
		t.Fatalf("rejected submission must not create write-in candidates, got %+v", candidates)
	}
}

func TestSubmitVoteConcurrentSubmissionsRecordOnce(t *testing.T) {
	f := newFixture()
	election := f.election(t, "Board 2026")
	ballot := f.ballot(t, election.ElectionID, commands.AddBallotCommand{Type: entities.BallotTypePlurality})
	c := f.candidates(t, ballot.BallotID, "Xavier Xu")
	cmd := commands.SubmitVoteCommand{
		ElectionID: election.ElectionID,
		VoterID:    "voter-1",
		Ballots:    []entities.BallotSubmission{{BallotID: ballot.BallotID, Selected: []string{c["Xavier"].CandidateID}}},
	}

	const attempts = 20
	var accepted, rejected, unexpected int32
	var wg sync.WaitGroup
	wg.Add(attempts)
	for i := 0; i < attempts; i++ {
		go func() {
			defer wg.Done()
			result, err := f.votes.SubmitVote(context.Background(), cmd)
			switch {
			case err == nil && result.Accepted:
				atomic.AddInt32(&accepted, 1)
			case errors.Is(err, domainerrors.ErrAlreadyVoted):
				atomic.AddInt32(&rejected, 1)
			default:
				atomic.AddInt32(&unexpected, 1)
			}
		}()
	}
	wg.Wait()

	if accepted != 1 || rejected != attempts-1 || unexpected != 0 {
		t.Fatalf("expected 1 accepted and %d rejected, got accepted=%d rejected=%d unexpected=%d",
			attempts-1, accepted, rejected, unexpected)
	}
	votes, _ := f.store.ListVotes(context.Background(), election.ElectionID)
	if len(votes) != 1 {
		t.Fatalf("expected exactly one stored vote, got %d", len(votes))
	}
}

func TestSubmitVoteRequiresVoter(t *testing.T) {
	f := newFixture()
	f.election(t, "Board 2026")
	if _, err := f.votes.SubmitVote(context.Background(), commands.SubmitVoteCommand{VoterID: "  "}); !errors.Is(err, domainerrors.ErrInvalidSubmission) {
		t.Fatalf("expected ErrInvalidSubmission, got %v", err)
	}
}

func TestSubmitVoteUnknownBallot(t *testing.T) {
	f := newFixture()
	election := f.election(t, "Board 2026")
	f.ballot(t, election.ElectionID, commands.AddBallotCommand{Type: entities.BallotTypePlurality})
	_, err := f.votes.SubmitVote(context.Background(), commands.SubmitVoteCommand{
		ElectionID: election.ElectionID,
		VoterID:    "voter-1",
		Ballots:    []entities.BallotSubmission{{BallotID: "elsewhere"}},
	})
	if !errors.Is(err, domainerrors.ErrBallotNotFound) {
		t.Fatalf("expected ErrBallotNotFound, got %v", err)
	}
}
