package electctl

import (
	"context"
	"io"

	electionservice "elect/contexts/governance/election-service"
	electionhttp "elect/contexts/governance/election-service/transport/http"

	"gopkg.in/yaml.v3"
)

// Definition is the YAML layout accepted by "electctl seed".
type Definition struct {
	Name          string             `yaml:"name"`
	Introduction  string             `yaml:"introduction"`
	VoteStart     string             `yaml:"vote_start"`
	VoteEnd       string             `yaml:"vote_end"`
	AllowedVoters []string           `yaml:"allowed_voters"`
	Ballots       []BallotDefinition `yaml:"ballots"`
}

type BallotDefinition struct {
	Position     int                   `yaml:"position"`
	Description  string                `yaml:"description"`
	Introduction string                `yaml:"introduction"`
	Type         string                `yaml:"type"`
	Seats        int                   `yaml:"seats"`
	Secret       bool                  `yaml:"secret"`
	WriteIn      bool                  `yaml:"write_in"`
	Candidates   []CandidateDefinition `yaml:"candidates"`
}

type CandidateDefinition struct {
	FirstName   string `yaml:"first_name"`
	LastName    string `yaml:"last_name"`
	Institution string `yaml:"institution"`
	Incumbent   bool   `yaml:"incumbent"`
	ImageURL    string `yaml:"image_url"`
	Biography   string `yaml:"biography"`
}

func DecodeDefinition(r io.Reader) (Definition, error) {
	var definition Definition
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&definition); err != nil {
		return Definition{}, err
	}
	return definition, nil
}

// Seed creates the election, its ballots and their candidates in order.
// It stops at the first failure; whatever was created before stays.
func Seed(ctx context.Context, module electionservice.Module, definition Definition) (electionhttp.ElectionResponse, error) {
	h := module.Handler
	election, err := h.CreateElectionHandler(ctx, electionhttp.CreateElectionRequest{
		Name:          definition.Name,
		Introduction:  definition.Introduction,
		VoteStart:     definition.VoteStart,
		VoteEnd:       definition.VoteEnd,
		AllowedVoters: definition.AllowedVoters,
	})
	if err != nil {
		return electionhttp.ElectionResponse{}, err
	}

	for _, ballotDef := range definition.Ballots {
		ballot, err := h.AddBallotHandler(ctx, election.ElectionID, electionhttp.AddBallotRequest{
			PositionNumber:   ballotDef.Position,
			Description:      ballotDef.Description,
			Introduction:     ballotDef.Introduction,
			Type:             ballotDef.Type,
			SeatsAvailable:   ballotDef.Seats,
			IsSecret:         ballotDef.Secret,
			WriteInAvailable: ballotDef.WriteIn,
		})
		if err != nil {
			return election, err
		}
		for _, candidateDef := range ballotDef.Candidates {
			if _, err := h.AddCandidateHandler(ctx, ballot.BallotID, electionhttp.AddCandidateRequest{
				FirstName:   candidateDef.FirstName,
				LastName:    candidateDef.LastName,
				Institution: candidateDef.Institution,
				Incumbent:   candidateDef.Incumbent,
				ImageURL:    candidateDef.ImageURL,
				Biography:   candidateDef.Biography,
			}); err != nil {
				return election, err
			}
		}
	}
	return election, nil
}
