package entities

import (
	"sort"
	"strings"
	"time"
)

// Candidate belongs to one ballot. Write-in candidates are created on demand
// the first time a voter names them.
type Candidate struct {
	CandidateID string
	BallotID    string
	FirstName   string
	LastName    string
	Institution string
	Incumbent   bool
	ImageURL    string
	Biography   string
	WriteIn     bool
	CreatedAt   time.Time
}

func (c Candidate) FullName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}

// DisplayName renders "*First Last (Institution)". The star marks incumbents
// and write-ins without an institution are labelled "write-in".
func (c Candidate) DisplayName() string {
	var b strings.Builder
	if c.Incumbent {
		b.WriteString("*")
	}
	b.WriteString(c.FullName())
	suffix := strings.TrimSpace(c.Institution)
	if suffix == "" && c.WriteIn {
		suffix = "write-in"
	}
	if suffix != "" {
		b.WriteString(" (")
		b.WriteString(suffix)
		b.WriteString(")")
	}
	return b.String()
}

// SortCandidates orders by last name, first name, then id.
func SortCandidates(items []Candidate) {
	sort.SliceStable(items, func(i, j int) bool {
		return CandidateLess(items[i], items[j])
	})
}

func CandidateLess(a Candidate, b Candidate) bool {
	if a.LastName != b.LastName {
		return a.LastName < b.LastName
	}
	if a.FirstName != b.FirstName {
		return a.FirstName < b.FirstName
	}
	return a.CandidateID < b.CandidateID
}

func HasIncumbents(items []Candidate) bool {
	for _, item := range items {
		if item.Incumbent {
			return true
		}
	}
	return false
}

func WithBiographies(items []Candidate) []Candidate {
	out := make([]Candidate, 0, len(items))
	for _, item := range items {
		if strings.TrimSpace(item.Biography) != "" {
			out = append(out, item)
		}
	}
	return out
}

// RegularCandidates drops write-ins, leaving the candidates printed on the ballot.
func RegularCandidates(items []Candidate) []Candidate {
	out := make([]Candidate, 0, len(items))
	for _, item := range items {
		if !item.WriteIn {
			out = append(out, item)
		}
	}
	return out
}
