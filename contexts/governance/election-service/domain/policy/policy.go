package policy

import (
	"fmt"
	"strings"

	"elect/contexts/governance/election-service/domain/entities"
	domainerrors "elect/contexts/governance/election-service/domain/errors"
)

const (
	MessageEmptySubmission    = "Please select at least one candidate."
	MessagePartialWriteIn     = "Please enter in both the first and last name for write-in candidates."
	MessageWriteInTooLong     = "Please keep write-in names to 45 characters or fewer."
	MessageWriteInUnavailable = "Write-in candidates are not accepted on this ballot."
	MessageDuplicatePoints    = "Please do not give the same point value (other than zero) to more than one candidate."
	MessageWriteInNeedsPoints = "Please select a non-zero point value for the write-in candidate you entered."
)

const MaxWriteInNameLength = 45

// Policy holds the rules of one ballot type.
type Policy interface {
	Type() entities.BallotType
	// Exclusive reports radio semantics: at most one choice and no write-in.
	Exclusive(ballot entities.Ballot) bool
	// Validate turns a raw answer into a validated one or returns the
	// messages to show next to the ballot. It has no side effects.
	Validate(ballot entities.Ballot, candidates []entities.Candidate, raw entities.BallotSubmission) (entities.ValidatedBallot, []string)
	Score(selection entities.Selection) int
}

var registry = map[entities.BallotType]Policy{
	entities.BallotTypePlurality:    Plurality{},
	entities.BallotTypePreferential: Preferential{},
}

func For(ballotType entities.BallotType) (Policy, error) {
	p, ok := registry[ballotType]
	if !ok {
		return nil, domainerrors.ErrUnknownBallotType
	}
	return p, nil
}

func SeatLimitMessage(seats int) string {
	return fmt.Sprintf("Please select %d or fewer candidates.", seats)
}

func RankRangeMessage(max int) string {
	return fmt.Sprintf("Please rank your preferences from 1 to %d.", max)
}

func UnknownCandidateMessage(candidateID string) string {
	return fmt.Sprintf("Unknown candidate %s.", candidateID)
}

// checkWriteIn normalizes the write-in of a raw answer. It returns nil when
// the voter left the write-in blank.
func checkWriteIn(ballot entities.Ballot, raw *entities.WriteIn) (*entities.WriteIn, []string) {
	if raw == nil || raw.Blank() {
		return nil, nil
	}
	writeIn := entities.WriteIn{
		FirstName: strings.TrimSpace(raw.FirstName),
		LastName:  strings.TrimSpace(raw.LastName),
		Points:    raw.Points,
	}
	if !ballot.WriteInAvailable {
		return nil, []string{MessageWriteInUnavailable}
	}
	var messages []string
	if !writeIn.Complete() {
		messages = append(messages, MessagePartialWriteIn)
	}
	if len([]rune(writeIn.FirstName)) > MaxWriteInNameLength || len([]rune(writeIn.LastName)) > MaxWriteInNameLength {
		messages = append(messages, MessageWriteInTooLong)
	}
	if len(messages) > 0 {
		return nil, messages
	}
	return &writeIn, nil
}

func regularIndex(candidates []entities.Candidate) map[string]entities.Candidate {
	index := make(map[string]entities.Candidate, len(candidates))
	for _, candidate := range candidates {
		if candidate.WriteIn {
			continue
		}
		index[candidate.CandidateID] = candidate
	}
	return index
}
