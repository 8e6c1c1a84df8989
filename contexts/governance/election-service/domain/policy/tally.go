package policy

import (
	"sort"

	"elect/contexts/governance/election-service/domain/entities"
)

// Aggregate totals the selections of each candidate and ranks them by score
// descending. Ties fall back to candidate order, then candidate id.
// Candidates without selections are listed with a zero score.
func Aggregate(candidates []entities.Candidate, selections []entities.Selection) []entities.CandidateScore {
	totals := make(map[string]int, len(candidates))
	for _, selection := range selections {
		totals[selection.CandidateID] += Score(selection)
	}

	scores := make([]entities.CandidateScore, 0, len(candidates))
	for _, candidate := range candidates {
		scores = append(scores, entities.CandidateScore{
			Candidate: candidate,
			Score:     totals[candidate.CandidateID],
		})
	}
	sort.SliceStable(scores, func(i, j int) bool {
		if scores[i].Score != scores[j].Score {
			return scores[i].Score > scores[j].Score
		}
		return entities.CandidateLess(scores[i].Candidate, scores[j].Candidate)
	})
	return scores
}

// Score dispatches on the selection's ballot type. Unknown types score 0.
func Score(selection entities.Selection) int {
	p, err := For(selection.BallotType)
	if err != nil {
		return 0
	}
	return p.Score(selection)
}

// Contributions builds one row per vote with that vote's score for every
// candidate, in the order given. Selections detached from their vote
// belong to no row.
func Contributions(
	candidates []entities.Candidate,
	votes []entities.Vote,
	selections []entities.Selection,
) []entities.VoteContribution {
	byVote := make(map[string]map[string]int, len(votes))
	for _, selection := range selections {
		if !selection.Linked() {
			continue
		}
		row, ok := byVote[selection.VoteID]
		if !ok {
			row = make(map[string]int)
			byVote[selection.VoteID] = row
		}
		row[selection.CandidateID] += Score(selection)
	}

	rows := make([]entities.VoteContribution, 0, len(votes))
	for _, vote := range votes {
		points := make([]int, len(candidates))
		if row, ok := byVote[vote.VoteID]; ok {
			for i, candidate := range candidates {
				points[i] = row[candidate.CandidateID]
			}
		}
		rows = append(rows, entities.VoteContribution{Vote: vote, Points: points})
	}
	return rows
}
