package policy

import (
	"strings"

	"elect/contexts/governance/election-service/domain/entities"
)

// Plurality lets a voter pick up to SeatsAvailable candidates. A complete
// write-in takes one of those seats.
type Plurality struct{}

func (Plurality) Type() entities.BallotType {
	return entities.BallotTypePlurality
}

func (Plurality) Exclusive(ballot entities.Ballot) bool {
	return ballot.SeatsAvailable == 1 && !ballot.WriteInAvailable
}

func (Plurality) Validate(
	ballot entities.Ballot,
	candidates []entities.Candidate,
	raw entities.BallotSubmission,
) (entities.ValidatedBallot, []string) {
	regular := regularIndex(candidates)
	validated := entities.ValidatedBallot{Ballot: ballot}
	var messages []string

	seen := make(map[string]struct{}, len(raw.Selected))
	for _, candidateID := range raw.Selected {
		candidateID = strings.TrimSpace(candidateID)
		if candidateID == "" {
			continue
		}
		if _, dup := seen[candidateID]; dup {
			continue
		}
		seen[candidateID] = struct{}{}
		if _, ok := regular[candidateID]; !ok {
			messages = append(messages, UnknownCandidateMessage(candidateID))
			continue
		}
		validated.Choices = append(validated.Choices, entities.Choice{CandidateID: candidateID, Points: 1})
	}

	writeIn, writeInMessages := checkWriteIn(ballot, raw.WriteIn)
	messages = append(messages, writeInMessages...)

	selected := len(validated.Choices)
	if writeIn != nil {
		selected++
	}
	if selected > ballot.SeatsAvailable {
		messages = append(messages, SeatLimitMessage(ballot.SeatsAvailable))
	}
	if len(messages) > 0 {
		return entities.ValidatedBallot{Ballot: ballot}, messages
	}
	if writeIn != nil {
		writeIn.Points = 1
		validated.WriteIn = writeIn
	}
	return validated, nil
}

func (Plurality) Score(_ entities.Selection) int {
	return 1
}
