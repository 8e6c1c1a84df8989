package http

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type WriteInRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Points    int    `json:"points,omitempty"`
}

// BallotSubmissionRequest answers one ballot. Plurality ballots read
// selected; preferential ballots read points keyed by candidate id.
type BallotSubmissionRequest struct {
	BallotID string          `json:"ballot_id"`
	Selected []string        `json:"selected,omitempty"`
	Points   map[string]int  `json:"points,omitempty"`
	WriteIn  *WriteInRequest `json:"write_in,omitempty"`
}

type SubmitVoteRequest struct {
	Ballots []BallotSubmissionRequest `json:"ballots"`
}

type SubmitVoteResponse struct {
	Accepted   bool                `json:"accepted"`
	VoteID     string              `json:"vote_id,omitempty"`
	ElectionID string              `json:"election_id,omitempty"`
	Selections int                 `json:"selections,omitempty"`
	Errors     map[string][]string `json:"errors,omitempty"`
	Notice     string              `json:"notice,omitempty"`
}

type ElectionResponse struct {
	ElectionID    string   `json:"election_id"`
	Name          string   `json:"name"`
	Introduction  string   `json:"introduction,omitempty"`
	VoteStart     string   `json:"vote_start"`
	VoteEnd       string   `json:"vote_end"`
	AllowedVoters []string `json:"allowed_voters,omitempty"`
}

type ElectionListResponse struct {
	Items []ElectionResponse `json:"items"`
}

type CandidateResponse struct {
	CandidateID string `json:"candidate_id"`
	BallotID    string `json:"ballot_id"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	DisplayName string `json:"display_name"`
	Institution string `json:"institution,omitempty"`
	Incumbent   bool   `json:"incumbent"`
	ImageURL    string `json:"image_url,omitempty"`
	Biography   string `json:"biography,omitempty"`
	WriteIn     bool   `json:"write_in"`
}

type BallotResponse struct {
	BallotID         string              `json:"ballot_id"`
	ElectionID       string              `json:"election_id"`
	PositionNumber   int                 `json:"position_number"`
	Description      string              `json:"description,omitempty"`
	Introduction     string              `json:"introduction,omitempty"`
	Type             string              `json:"type"`
	TypeLabel        string              `json:"type_label"`
	SeatsAvailable   int                 `json:"seats_available"`
	IsSecret         bool                `json:"is_secret"`
	WriteInAvailable bool                `json:"write_in_available"`
	Exclusive        bool                `json:"exclusive"`
	HasIncumbents    bool                `json:"has_incumbents"`
	Candidates       []CandidateResponse `json:"candidates,omitempty"`
}

type ElectionSheetResponse struct {
	Election ElectionResponse `json:"election"`
	Ballots  []BallotResponse `json:"ballots"`
}

type EligibilityResponse struct {
	ElectionID string `json:"election_id"`
	VoterID    string `json:"voter_id"`
	VotingOpen bool   `json:"voting_open"`
}

type BiographiesResponse struct {
	Election ElectionResponse `json:"election"`
	Ballots  []BallotResponse `json:"ballots"`
}

type CandidateScoreItem struct {
	CandidateID string `json:"candidate_id"`
	DisplayName string `json:"display_name"`
	WriteIn     bool   `json:"write_in"`
	Score       int    `json:"score"`
	Rank        int    `json:"rank"`
}

type BallotStatsResponse struct {
	BallotID    string               `json:"ballot_id"`
	Description string               `json:"description,omitempty"`
	Type        string               `json:"type"`
	Items       []CandidateScoreItem `json:"items"`
}

type ElectionStatsResponse struct {
	ElectionID string                `json:"election_id"`
	Name       string                `json:"name"`
	Ballots    []BallotStatsResponse `json:"ballots"`
}

type ReportRow struct {
	VoteID  string `json:"vote_id"`
	VoterID string `json:"voter_id,omitempty"`
	Points  []int  `json:"points"`
}

type ElectionReportResponse struct {
	ElectionID string              `json:"election_id"`
	Candidates []CandidateResponse `json:"candidates"`
	Rows       []ReportRow         `json:"rows"`
}

type VoteDetailBallot struct {
	BallotID    string               `json:"ballot_id"`
	Description string               `json:"description,omitempty"`
	Type        string               `json:"type"`
	Choices     []CandidateScoreItem `json:"choices"`
}

type VoteDetailsResponse struct {
	VoteID     string             `json:"vote_id"`
	ElectionID string             `json:"election_id"`
	VoterID    string             `json:"voter_id,omitempty"`
	Ballots    []VoteDetailBallot `json:"ballots"`
}

type CreateElectionRequest struct {
	Name          string   `json:"name"`
	Introduction  string   `json:"introduction,omitempty"`
	VoteStart     string   `json:"vote_start"`
	VoteEnd       string   `json:"vote_end"`
	AllowedVoters []string `json:"allowed_voters,omitempty"`
}

type AddBallotRequest struct {
	PositionNumber   int    `json:"position_number,omitempty"`
	Description      string `json:"description,omitempty"`
	Introduction     string `json:"introduction,omitempty"`
	Type             string `json:"type"`
	SeatsAvailable   int    `json:"seats_available"`
	IsSecret         bool   `json:"is_secret"`
	WriteInAvailable bool   `json:"write_in_available"`
}

type AddCandidateRequest struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Institution string `json:"institution,omitempty"`
	Incumbent   bool   `json:"incumbent"`
	ImageURL    string `json:"image_url,omitempty"`
	Biography   string `json:"biography,omitempty"`
}

type SetAllowedVotersRequest struct {
	VoterIDs []string `json:"voter_ids"`
}

type DisassociateResponse struct {
	ElectionID string `json:"election_id"`
	Affected   int64  `json:"affected"`
}
