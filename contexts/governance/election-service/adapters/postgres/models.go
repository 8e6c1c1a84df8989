package postgresadapter

import (
	"strings"
	"time"

	"elect/contexts/governance/election-service/domain/entities"
)

type electionModel struct {
	ID           string    `gorm:"column:id;primaryKey"`
	Name         string    `gorm:"column:name"`
	Introduction string    `gorm:"column:introduction"`
	VoteStart    time.Time `gorm:"column:vote_start;type:date"`
	VoteEnd      time.Time `gorm:"column:vote_end;type:date"`
	CreatedAt    time.Time `gorm:"column:created_at"`
}

func (electionModel) TableName() string {
	return "elections"
}

func electionModelFromEntity(election entities.Election) electionModel {
	row := electionModel{
		ID:           strings.TrimSpace(election.ElectionID),
		Name:         strings.TrimSpace(election.Name),
		Introduction: election.Introduction,
		VoteStart:    entities.CivilDate(election.VoteStart),
		VoteEnd:      entities.CivilDate(election.VoteEnd),
		CreatedAt:    election.CreatedAt.UTC(),
	}
	if row.CreatedAt.IsZero() {
		row.CreatedAt = time.Now().UTC()
	}
	return row
}

func (m electionModel) toEntity(allowed []string) entities.Election {
	return entities.Election{
		ElectionID:    m.ID,
		Name:          m.Name,
		Introduction:  m.Introduction,
		VoteStart:     entities.CivilDate(m.VoteStart),
		VoteEnd:       entities.CivilDate(m.VoteEnd),
		AllowedVoters: allowed,
		CreatedAt:     m.CreatedAt.UTC(),
	}
}

type allowedVoterModel struct {
	ElectionID string `gorm:"column:election_id;primaryKey"`
	VoterID    string `gorm:"column:voter_id;primaryKey"`
}

func (allowedVoterModel) TableName() string {
	return "election_allowed_voters"
}

type ballotModel struct {
	ID               string    `gorm:"column:id;primaryKey"`
	ElectionID       string    `gorm:"column:election_id"`
	PositionNumber   int       `gorm:"column:position_number"`
	Description      string    `gorm:"column:description"`
	Introduction     string    `gorm:"column:introduction"`
	Type             string    `gorm:"column:type"`
	SeatsAvailable   int       `gorm:"column:seats_available"`
	IsSecret         bool      `gorm:"column:is_secret"`
	WriteInAvailable bool      `gorm:"column:write_in_available"`
	CreatedAt        time.Time `gorm:"column:created_at"`
}

func (ballotModel) TableName() string {
	return "election_ballots"
}

func ballotModelFromEntity(ballot entities.Ballot) ballotModel {
	row := ballotModel{
		ID:               strings.TrimSpace(ballot.BallotID),
		ElectionID:       strings.TrimSpace(ballot.ElectionID),
		PositionNumber:   ballot.PositionNumber,
		Description:      ballot.Description,
		Introduction:     ballot.Introduction,
		Type:             string(ballot.Type),
		SeatsAvailable:   ballot.SeatsAvailable,
		IsSecret:         ballot.IsSecret,
		WriteInAvailable: ballot.WriteInAvailable,
		CreatedAt:        ballot.CreatedAt.UTC(),
	}
	if row.CreatedAt.IsZero() {
		row.CreatedAt = time.Now().UTC()
	}
	return row
}

func (m ballotModel) toEntity() entities.Ballot {
	return entities.Ballot{
		BallotID:         m.ID,
		ElectionID:       m.ElectionID,
		PositionNumber:   m.PositionNumber,
		Description:      m.Description,
		Introduction:     m.Introduction,
		Type:             entities.BallotType(m.Type),
		SeatsAvailable:   m.SeatsAvailable,
		IsSecret:         m.IsSecret,
		WriteInAvailable: m.WriteInAvailable,
		CreatedAt:        m.CreatedAt.UTC(),
	}
}

type candidateModel struct {
	ID          string    `gorm:"column:id;primaryKey"`
	BallotID    string    `gorm:"column:ballot_id"`
	FirstName   string    `gorm:"column:first_name"`
	LastName    string    `gorm:"column:last_name"`
	Institution string    `gorm:"column:institution"`
	Incumbent   bool      `gorm:"column:incumbent"`
	ImageURL    string    `gorm:"column:image_url"`
	Biography   string    `gorm:"column:biography"`
	WriteIn     bool      `gorm:"column:write_in"`
	CreatedAt   time.Time `gorm:"column:created_at"`
}

func (candidateModel) TableName() string {
	return "election_candidates"
}

func candidateModelFromEntity(candidate entities.Candidate) candidateModel {
	row := candidateModel{
		ID:          strings.TrimSpace(candidate.CandidateID),
		BallotID:    strings.TrimSpace(candidate.BallotID),
		FirstName:   candidate.FirstName,
		LastName:    candidate.LastName,
		Institution: candidate.Institution,
		Incumbent:   candidate.Incumbent,
		ImageURL:    candidate.ImageURL,
		Biography:   candidate.Biography,
		WriteIn:     candidate.WriteIn,
		CreatedAt:   candidate.CreatedAt.UTC(),
	}
	if row.CreatedAt.IsZero() {
		row.CreatedAt = time.Now().UTC()
	}
	return row
}

func (m candidateModel) toEntity() entities.Candidate {
	return entities.Candidate{
		CandidateID: m.ID,
		BallotID:    m.BallotID,
		FirstName:   m.FirstName,
		LastName:    m.LastName,
		Institution: m.Institution,
		Incumbent:   m.Incumbent,
		ImageURL:    m.ImageURL,
		Biography:   m.Biography,
		WriteIn:     m.WriteIn,
		CreatedAt:   m.CreatedAt.UTC(),
	}
}

type voteModel struct {
	ID         string    `gorm:"column:id;primaryKey"`
	ElectionID string    `gorm:"column:election_id"`
	VoterID    *string   `gorm:"column:voter_id"`
	CreatedAt  time.Time `gorm:"column:created_at"`
}

func (voteModel) TableName() string {
	return "election_votes"
}

func voteModelFromEntity(vote entities.Vote) voteModel {
	row := voteModel{
		ID:         strings.TrimSpace(vote.VoteID),
		ElectionID: strings.TrimSpace(vote.ElectionID),
		VoterID:    optionalString(vote.VoterID),
		CreatedAt:  vote.CreatedAt.UTC(),
	}
	if row.CreatedAt.IsZero() {
		row.CreatedAt = time.Now().UTC()
	}
	return row
}

func (m voteModel) toEntity() entities.Vote {
	vote := entities.Vote{
		VoteID:     m.ID,
		ElectionID: m.ElectionID,
		CreatedAt:  m.CreatedAt.UTC(),
	}
	if m.VoterID != nil {
		vote.VoterID = *m.VoterID
	}
	return vote
}

// selectionModel stores both ballot types. vote_id is NULL for secret ballots.
type selectionModel struct {
	ID          string    `gorm:"column:id;primaryKey"`
	VoteID      *string   `gorm:"column:vote_id"`
	BallotID    string    `gorm:"column:ballot_id"`
	BallotType  string    `gorm:"column:ballot_type"`
	CandidateID string    `gorm:"column:candidate_id"`
	Points      int       `gorm:"column:points"`
	CreatedAt   time.Time `gorm:"column:created_at"`
}

func (selectionModel) TableName() string {
	return "election_selections"
}

func selectionModelFromEntity(selection entities.Selection) selectionModel {
	row := selectionModel{
		ID:          strings.TrimSpace(selection.SelectionID),
		VoteID:      optionalString(selection.VoteID),
		BallotID:    strings.TrimSpace(selection.BallotID),
		BallotType:  string(selection.BallotType),
		CandidateID: strings.TrimSpace(selection.CandidateID),
		Points:      selection.Points,
		CreatedAt:   selection.CreatedAt.UTC(),
	}
	if row.CreatedAt.IsZero() {
		row.CreatedAt = time.Now().UTC()
	}
	return row
}

func (m selectionModel) toEntity() entities.Selection {
	selection := entities.Selection{
		SelectionID: m.ID,
		BallotID:    m.BallotID,
		BallotType:  entities.BallotType(m.BallotType),
		CandidateID: m.CandidateID,
		Points:      m.Points,
		CreatedAt:   m.CreatedAt.UTC(),
	}
	if m.VoteID != nil {
		selection.VoteID = *m.VoteID
	}
	return selection
}

func optionalString(value string) *string {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	return &value
}
