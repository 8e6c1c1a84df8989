package entities

import (
	"sort"
	"time"
)

type BallotType string

const (
	BallotTypePlurality    BallotType = "Pl"
	BallotTypePreferential BallotType = "Pr"
)

func (t BallotType) Label() string {
	switch t {
	case BallotTypePlurality:
		return "Plurality"
	case BallotTypePreferential:
		return "Preferential"
	default:
		return string(t)
	}
}

// Ballot is one contest inside an election. Type is fixed at creation.
type Ballot struct {
	BallotID         string
	ElectionID       string
	PositionNumber   int
	Description      string
	Introduction     string
	Type             BallotType
	SeatsAvailable   int
	IsSecret         bool
	WriteInAvailable bool
	CreatedAt        time.Time
}

// SortBallots applies the display order: position, type, description, id.
func SortBallots(items []Ballot) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if a.PositionNumber != b.PositionNumber {
			return a.PositionNumber < b.PositionNumber
		}
		if a.Type != b.Type {
			return a.Type < b.Type
		}
		if a.Description != b.Description {
			return a.Description < b.Description
		}
		return a.BallotID < b.BallotID
	})
}

// BallotListing is a ballot with its candidates, as shown to a voter.
type BallotListing struct {
	Ballot        Ballot
	Candidates    []Candidate
	Exclusive     bool
	HasIncumbents bool
}

// ElectionSheet is an election with its ballots in display order.
type ElectionSheet struct {
	Election Election
	Ballots  []BallotListing
}
