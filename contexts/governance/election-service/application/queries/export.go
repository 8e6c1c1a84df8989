package queries

import (
	"encoding/csv"
	"io"
	"strconv"

	"elect/contexts/governance/election-service/domain/entities"
)

const anonymousVoter = "(disassociated)"

// WriteReportCSV writes the full report as CSV: a header of candidate labels
// and one row per vote.
func WriteReportCSV(w io.Writer, report entities.ElectionReport) error {
	descriptions := make(map[string]string, len(report.Ballots))
	for _, ballot := range report.Ballots {
		descriptions[ballot.BallotID] = ballot.Description
	}

	writer := csv.NewWriter(w)
	header := make([]string, 0, len(report.Candidates)+1)
	header = append(header, "voter")
	for _, candidate := range report.Candidates {
		label := candidate.DisplayName()
		if description := descriptions[candidate.BallotID]; description != "" {
			label = description + ": " + label
		}
		header = append(header, label)
	}
	if err := writer.Write(header); err != nil {
		return err
	}

	for _, row := range report.Rows {
		record := make([]string, 0, len(row.Points)+1)
		voter := row.Vote.VoterID
		if row.Vote.Disassociated() {
			voter = anonymousVoter
		}
		record = append(record, voter)
		for _, points := range row.Points {
			record = append(record, strconv.Itoa(points))
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}
