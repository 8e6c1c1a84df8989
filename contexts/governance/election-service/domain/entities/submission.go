package entities

import "strings"

// WriteIn is a voter-supplied candidate name. Points only matters on
// preferential ballots.
type WriteIn struct {
	FirstName string
	LastName  string
	Points    int
}

func (w WriteIn) Blank() bool {
	return strings.TrimSpace(w.FirstName) == "" && strings.TrimSpace(w.LastName) == ""
}

func (w WriteIn) Complete() bool {
	return strings.TrimSpace(w.FirstName) != "" && strings.TrimSpace(w.LastName) != ""
}

// BallotSubmission is the raw, unvalidated answer for one ballot.
// Plurality ballots read Selected; preferential ballots read Points.
type BallotSubmission struct {
	BallotID string
	Selected []string
	Points   map[string]int
	WriteIn  *WriteIn
}

type Choice struct {
	CandidateID string
	Points      int
}

// ValidatedBallot is a ballot answer that passed its ballot type rules.
// WriteIn is set when a complete write-in still has to be resolved to a
// candidate.
type ValidatedBallot struct {
	Ballot  Ballot
	Choices []Choice
	WriteIn *WriteIn
}

func (v ValidatedBallot) HasSelections() bool {
	return len(v.Choices) > 0 || v.WriteIn != nil
}
