package entities

import (
	"sort"
	"strings"
	"time"
)

// Election groups the ballots voters answer in a single sitting.
// VoteStart and VoteEnd are calendar dates and both ends are inclusive.
type Election struct {
	ElectionID    string
	Name          string
	Introduction  string
	VoteStart     time.Time
	VoteEnd       time.Time
	AllowedVoters []string
	CreatedAt     time.Time
}

// VotingAllowedOn reports whether now falls inside the voting window.
func (e Election) VotingAllowedOn(now time.Time) bool {
	today := CivilDate(now)
	return !today.Before(CivilDate(e.VoteStart)) && !today.After(CivilDate(e.VoteEnd))
}

// VotingClosedOn reports whether the voting window ended before now.
func (e Election) VotingClosedOn(now time.Time) bool {
	return CivilDate(now).After(CivilDate(e.VoteEnd))
}

// AllowsVoter checks allow-list membership. An empty list admits everyone.
func (e Election) AllowsVoter(voterID string) bool {
	if len(e.AllowedVoters) == 0 {
		return true
	}
	voterID = strings.TrimSpace(voterID)
	for _, allowed := range e.AllowedVoters {
		if strings.TrimSpace(allowed) == voterID {
			return true
		}
	}
	return false
}

// CivilDate truncates t to midnight UTC of its calendar day.
func CivilDate(t time.Time) time.Time {
	utc := t.UTC()
	return time.Date(utc.Year(), utc.Month(), utc.Day(), 0, 0, 0, 0, time.UTC)
}

// SortElections orders elections by vote start; the last item is the latest.
func SortElections(items []Election) {
	sort.SliceStable(items, func(i, j int) bool {
		left := CivilDate(items[i].VoteStart)
		right := CivilDate(items[j].VoteStart)
		if left.Equal(right) {
			return items[i].ElectionID < items[j].ElectionID
		}
		return left.Before(right)
	})
}
