package policy

import (
	"sort"
	"strings"

	"elect/contexts/governance/election-service/domain/entities"
)

// Preferential is a Borda count: every printed candidate may receive a point
// value from 0 to N, N being the number of printed candidates. Non-zero
// values must be distinct.
type Preferential struct{}

func (Preferential) Type() entities.BallotType {
	return entities.BallotTypePreferential
}

func (Preferential) Exclusive(_ entities.Ballot) bool {
	return false
}

func (Preferential) Validate(
	ballot entities.Ballot,
	candidates []entities.Candidate,
	raw entities.BallotSubmission,
) (entities.ValidatedBallot, []string) {
	regular := regularIndex(candidates)
	maxPoints := len(regular)
	validated := entities.ValidatedBallot{Ballot: ballot}
	var messages []string

	// Keys are trimmed before use so " x" and "x" land on the same candidate.
	normalized := make(map[string][]int, len(raw.Points))
	for rawID, points := range raw.Points {
		candidateID := strings.TrimSpace(rawID)
		if candidateID == "" {
			continue
		}
		normalized[candidateID] = append(normalized[candidateID], points)
	}
	candidateIDs := make([]string, 0, len(normalized))
	for candidateID := range normalized {
		candidateIDs = append(candidateIDs, candidateID)
	}
	sort.Strings(candidateIDs)

	var given []int
	repeated := false
	for _, candidateID := range candidateIDs {
		if _, ok := regular[candidateID]; !ok {
			messages = append(messages, UnknownCandidateMessage(candidateID))
			continue
		}
		var nonZero []int
		for _, points := range normalized[candidateID] {
			if points != 0 {
				nonZero = append(nonZero, points)
			}
		}
		given = append(given, nonZero...)
		if len(nonZero) > 1 {
			repeated = true
			continue
		}
		if len(nonZero) == 1 && nonZero[0] > 0 {
			validated.Choices = append(validated.Choices, entities.Choice{CandidateID: candidateID, Points: nonZero[0]})
		}
	}

	writeIn, writeInMessages := checkWriteIn(ballot, raw.WriteIn)
	messages = append(messages, writeInMessages...)
	if writeIn != nil {
		if writeIn.Points == 0 {
			messages = append(messages, MessageWriteInNeedsPoints)
		} else {
			given = append(given, writeIn.Points)
		}
	}

	// Range is reported before duplicates; only one of the two is shown.
	// A candidate ranked twice counts as a duplicate.
	if outOfRange(given, maxPoints) {
		messages = append(messages, RankRangeMessage(maxPoints))
	} else if repeated || hasDuplicates(given) {
		messages = append(messages, MessageDuplicatePoints)
	}
	if len(messages) > 0 {
		return entities.ValidatedBallot{Ballot: ballot}, messages
	}
	validated.WriteIn = writeIn
	return validated, nil
}

func (Preferential) Score(selection entities.Selection) int {
	if selection.Points > 0 {
		return selection.Points
	}
	return 0
}

func outOfRange(values []int, max int) bool {
	for _, value := range values {
		if value < 0 || value > max {
			return true
		}
	}
	return false
}

func hasDuplicates(values []int) bool {
	seen := make(map[int]struct{}, len(values))
	for _, value := range values {
		if _, ok := seen[value]; ok {
			return true
		}
		seen[value] = struct{}{}
	}
	return false
}
