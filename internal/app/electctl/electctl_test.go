package electctl

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	electionservice "elect/contexts/governance/election-service"
	domainerrors "elect/contexts/governance/election-service/domain/errors"
	electionhttp "elect/contexts/governance/election-service/transport/http"
)

const definitionYAML = `
name: Board 2026
vote_start: "2026-10-18"
vote_end: "2026-10-20"
ballots:
  - position: 1
    description: Chair
    type: Pl
    seats: 1
    candidates:
      - first_name: Ann
        last_name: Able
        incumbent: true
      - first_name: Ben
        last_name: Baker
  - position: 2
    description: Priorities
    type: Pr
    seats: 1
    secret: true
    candidates:
      - first_name: Cat
        last_name: Cole
`

func newCLI(t *testing.T) (CLI, *bytes.Buffer) {
	t.Helper()
	module := electionservice.NewInMemoryModule(nil, nil)
	module.Store.SetNow(time.Date(2026, 10, 19, 10, 0, 0, 0, time.UTC))
	out := &bytes.Buffer{}
	return CLI{Module: module, Out: out}, out
}

func writeDefinition(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "election.yaml")
	if err := os.WriteFile(path, []byte(definitionYAML), 0o600); err != nil {
		t.Fatalf("write definition: %v", err)
	}
	return path
}

func TestDecodeDefinitionRejectsUnknownFields(t *testing.T) {
	_, err := DecodeDefinition(strings.NewReader("name: x\nseatz: 3\n"))
	if err == nil {
		t.Fatalf("expected unknown field error")
	}
}

func TestSeedStatsAndExport(t *testing.T) {
	cli, out := newCLI(t)
	ctx := context.Background()

	if err := cli.Run(ctx, []string{"seed", "--file", writeDefinition(t)}); err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	if !strings.Contains(out.String(), "created election Board 2026") {
		t.Fatalf("unexpected seed output: %q", out.String())
	}

	sheet, err := cli.Module.Handler.ElectionSheetHandler(ctx, "")
	if err != nil {
		t.Fatalf("sheet failed: %v", err)
	}
	if len(sheet.Ballots) != 2 || len(sheet.Ballots[0].Candidates) != 2 || !sheet.Ballots[1].IsSecret {
		t.Fatalf("unexpected seeded sheet: %+v", sheet)
	}
	var chair string
	for _, candidate := range sheet.Ballots[0].Candidates {
		if candidate.LastName == "Baker" {
			chair = candidate.CandidateID
		}
	}
	if _, err := cli.Module.Handler.SubmitVoteHandler(ctx, "voter-1", "", electionhttp.SubmitVoteRequest{
		Ballots: []electionhttp.BallotSubmissionRequest{{BallotID: sheet.Ballots[0].BallotID, Selected: []string{chair}}},
	}); err != nil {
		t.Fatalf("vote failed: %v", err)
	}

	out.Reset()
	if err := cli.Run(ctx, []string{"stats"}); err != nil {
		t.Fatalf("stats failed: %v", err)
	}
	for _, want := range []string{"Board 2026", "Chair", "Ben Baker", "*Ann Able", "Priorities"} {
		if !strings.Contains(out.String(), want) {
			t.Fatalf("stats output missing %q: %s", want, out.String())
		}
	}

	out.Reset()
	if err := cli.Run(ctx, []string{"export", "-e", sheet.Election.ElectionID}); err != nil {
		t.Fatalf("export failed: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 2 || !strings.HasPrefix(lines[1], "voter-1,0,1,0") {
		t.Fatalf("unexpected export: %q", out.String())
	}

	path := filepath.Join(t.TempDir(), "report.csv")
	out.Reset()
	if err := cli.Run(ctx, []string{"export", "-e", sheet.Election.ElectionID, "-o", path}); err != nil {
		t.Fatalf("export to file failed: %v", err)
	}
	written, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	if strings.TrimSpace(string(written)) != strings.Join(lines, "\n") || out.Len() != 0 {
		t.Fatalf("unexpected file export: %q (stdout %q)", written, out.String())
	}
	missingDir := filepath.Join(t.TempDir(), "missing", "report.csv")
	if err := cli.Run(ctx, []string{"export", "-e", sheet.Election.ElectionID, "-o", missingDir}); err == nil {
		t.Fatalf("expected export into a missing directory to fail")
	}

	if err := cli.Run(ctx, []string{"disassociate", "--election", sheet.Election.ElectionID}); !errors.Is(err, domainerrors.ErrVotingStillOpen) {
		t.Fatalf("expected ErrVotingStillOpen, got %v", err)
	}
}

func TestRunRejectsUnknownCommand(t *testing.T) {
	cli, _ := newCLI(t)
	if err := cli.Run(context.Background(), []string{"frobnicate"}); !errors.Is(err, ErrUsage) {
		t.Fatalf("expected ErrUsage, got %v", err)
	}
	if err := cli.Run(context.Background(), nil); !errors.Is(err, ErrUsage) {
		t.Fatalf("expected ErrUsage, got %v", err)
	}
}

func TestStatsWithoutElections(t *testing.T) {
	cli, _ := newCLI(t)
	if err := cli.Run(context.Background(), []string{"stats"}); !errors.Is(err, domainerrors.ErrNoElections) {
		t.Fatalf("expected ErrNoElections, got %v", err)
	}
}
