package entities

import (
	"strings"
	"time"
)

// Vote records that a voter took part in an election. VoterID is cleared
// when an administrator disassociates voters after the window closes.
type Vote struct {
	VoteID     string
	ElectionID string
	VoterID    string
	CreatedAt  time.Time
}

func (v Vote) Disassociated() bool {
	return strings.TrimSpace(v.VoterID) == ""
}

// Selection is one recorded choice on one ballot. VoteID is empty for
// selections made on a secret ballot. Points is the Borda value on
// preferential ballots and 1 on plurality ballots.
type Selection struct {
	SelectionID string
	VoteID      string
	BallotID    string
	BallotType  BallotType
	CandidateID string
	Points      int
	CreatedAt   time.Time
}

// DetachVoter severs the link between a selection and the vote that cast it.
func (s Selection) DetachVoter() Selection {
	s.VoteID = ""
	return s
}

func (s Selection) Linked() bool {
	return strings.TrimSpace(s.VoteID) != ""
}
