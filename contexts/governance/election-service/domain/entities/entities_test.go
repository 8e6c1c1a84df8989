package entities

import (
	"testing"
	"time"
)

func TestCandidateDisplayName(t *testing.T) {
	cases := map[string]Candidate{
		"*Ada Lovelace (Analytical Society)": {FirstName: "Ada", LastName: "Lovelace", Institution: "Analytical Society", Incumbent: true},
		"Walt Wren (write-in)":               {FirstName: "Walt", LastName: "Wren", WriteIn: true},
		"Grace Hopper":                       {FirstName: "Grace", LastName: "Hopper"},
	}
	for want, candidate := range cases {
		if got := candidate.DisplayName(); got != want {
			t.Fatalf("expected %q, got %q", want, got)
		}
	}
}

func TestSortBallotsAndCandidates(t *testing.T) {
	ballots := []Ballot{
		{BallotID: "b3", PositionNumber: 2, Type: BallotTypePlurality},
		{BallotID: "b2", PositionNumber: 1, Type: BallotTypePreferential},
		{BallotID: "b1", PositionNumber: 1, Type: BallotTypePlurality, Description: "Treasurer"},
		{BallotID: "b0", PositionNumber: 1, Type: BallotTypePlurality, Description: "President"},
	}
	SortBallots(ballots)
	got := []string{ballots[0].BallotID, ballots[1].BallotID, ballots[2].BallotID, ballots[3].BallotID}
	if got[0] != "b0" || got[1] != "b1" || got[2] != "b2" || got[3] != "b3" {
		t.Fatalf("unexpected ballot order %v", got)
	}

	candidates := []Candidate{
		{CandidateID: "c2", FirstName: "Bea", LastName: "Able"},
		{CandidateID: "c1", FirstName: "Al", LastName: "Able"},
		{CandidateID: "c0", FirstName: "Al", LastName: "Zane"},
	}
	SortCandidates(candidates)
	if candidates[0].CandidateID != "c1" || candidates[1].CandidateID != "c2" || candidates[2].CandidateID != "c0" {
		t.Fatalf("unexpected candidate order %+v", candidates)
	}
}

func TestElectionWindowIsInclusiveByDate(t *testing.T) {
	election := Election{
		VoteStart: time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC),
		VoteEnd:   time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC),
	}
	if !election.VotingAllowedOn(time.Date(2026, 5, 1, 23, 0, 0, 0, time.UTC)) {
		t.Fatalf("single-day window should be open all day")
	}
	if election.VotingAllowedOn(time.Date(2026, 4, 30, 23, 0, 0, 0, time.UTC)) {
		t.Fatalf("window should not be open the day before")
	}
	if !election.VotingClosedOn(time.Date(2026, 5, 2, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("window should be closed the day after")
	}
	if !election.AllowsVoter("anyone") {
		t.Fatalf("empty allow-list admits everyone")
	}
	election.AllowedVoters = []string{"v1"}
	if election.AllowsVoter("v2") {
		t.Fatalf("allow-list should reject v2")
	}
}

func TestSelectionDetachVoter(t *testing.T) {
	selection := Selection{VoteID: "vote-1", CandidateID: "c1"}
	detached := selection.DetachVoter()
	if detached.Linked() || !selection.Linked() {
		t.Fatalf("detach should clear only the copy's vote link")
	}
}
