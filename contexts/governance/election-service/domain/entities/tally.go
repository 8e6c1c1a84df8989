package entities

type CandidateScore struct {
	Candidate Candidate
	Score     int
}

// VoteContribution is one vote's row in the full report. Points lines up
// with ElectionReport.Candidates.
type VoteContribution struct {
	Vote   Vote
	Points []int
}

type ElectionReport struct {
	Election   Election
	Ballots    []Ballot
	Candidates []Candidate
	Rows       []VoteContribution
}

type BallotStats struct {
	Ballot Ballot
	Scores []CandidateScore
}

// BallotDetail lists what one vote chose on one ballot. Secret ballots
// always come back empty because their selections are not linked.
type BallotDetail struct {
	Ballot  Ballot
	Choices []CandidateScore
}

type VoteDetails struct {
	Vote    Vote
	Ballots []BallotDetail
}

type BallotBiographies struct {
	Ballot     Ballot
	Candidates []Candidate
}
