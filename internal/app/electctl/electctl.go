// Package electctl is the administrator command line: seeding elections
// from YAML, printing tallies, exporting reports and unlinking voters.
package electctl

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	electionservice "elect/contexts/governance/election-service"
	electionhttp "elect/contexts/governance/election-service/transport/http"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/pflag"
)

var ErrUsage = errors.New("usage: electctl <elections|seed|stats|export|disassociate> [flags]")

type CLI struct {
	Module electionservice.Module
	Out    io.Writer
}

func (c CLI) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return ErrUsage
	}
	command, rest := args[0], args[1:]
	switch command {
	case "elections":
		return c.runElections(ctx, rest)
	case "seed":
		return c.runSeed(ctx, rest)
	case "stats":
		return c.runStats(ctx, rest)
	case "export":
		return c.runExport(ctx, rest)
	case "disassociate":
		return c.runDisassociate(ctx, rest)
	default:
		return fmt.Errorf("unknown command %q: %w", command, ErrUsage)
	}
}

func (c CLI) runElections(ctx context.Context, args []string) error {
	flagSet := pflag.NewFlagSet("elections", pflag.ContinueOnError)
	if err := flagSet.Parse(args); err != nil {
		return err
	}
	resp, err := c.Module.Handler.ListElectionsHandler(ctx)
	if err != nil {
		return err
	}
	table := tablewriter.NewWriter(c.Out)
	table.SetHeader([]string{"ID", "Name", "Opens", "Closes", "Allow-list"})
	for _, item := range resp.Items {
		allowed := "everyone"
		if len(item.AllowedVoters) > 0 {
			allowed = strconv.Itoa(len(item.AllowedVoters)) + " voters"
		}
		table.Append([]string{item.ElectionID, item.Name, item.VoteStart, item.VoteEnd, allowed})
	}
	table.Render()
	return nil
}

func (c CLI) runSeed(ctx context.Context, args []string) error {
	var path string
	flagSet := pflag.NewFlagSet("seed", pflag.ContinueOnError)
	flagSet.StringVarP(&path, "file", "f", "", "YAML election definition")
	if err := flagSet.Parse(args); err != nil {
		return err
	}
	if path == "" {
		return errors.New("seed: --file is required")
	}
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("seed: %w", err)
	}
	defer file.Close()

	definition, err := DecodeDefinition(file)
	if err != nil {
		return fmt.Errorf("seed: %w", err)
	}
	election, err := Seed(ctx, c.Module, definition)
	if err != nil {
		return fmt.Errorf("seed: %w", err)
	}
	color.New(color.FgGreen).Fprintf(c.Out, "created election %s (%s)\n", election.Name, election.ElectionID)
	return nil
}

func (c CLI) runStats(ctx context.Context, args []string) error {
	var electionID string
	flagSet := pflag.NewFlagSet("stats", pflag.ContinueOnError)
	flagSet.StringVarP(&electionID, "election", "e", "", "election id (default: latest)")
	if err := flagSet.Parse(args); err != nil {
		return err
	}
	electionID, err := c.resolveElectionID(ctx, electionID)
	if err != nil {
		return err
	}
	stats, err := c.Module.Handler.ElectionStatsHandler(ctx, electionID)
	if err != nil {
		return err
	}

	heading := color.New(color.FgCyan, color.Bold)
	heading.Fprintf(c.Out, "=== %s ===\n", stats.Name)
	for _, ballot := range stats.Ballots {
		color.New(color.FgYellow).Fprintf(c.Out, "\n%s\n", ballotTitle(ballot))
		table := tablewriter.NewWriter(c.Out)
		table.SetHeader([]string{"Rank", "Candidate", "Score"})
		for _, item := range ballot.Items {
			table.Append([]string{strconv.Itoa(item.Rank), item.DisplayName, strconv.Itoa(item.Score)})
		}
		table.Render()
	}
	return nil
}

func (c CLI) runExport(ctx context.Context, args []string) error {
	var electionID, out string
	flagSet := pflag.NewFlagSet("export", pflag.ContinueOnError)
	flagSet.StringVarP(&electionID, "election", "e", "", "election id (default: latest)")
	flagSet.StringVarP(&out, "out", "o", "", "output file (default: stdout)")
	if err := flagSet.Parse(args); err != nil {
		return err
	}
	electionID, err := c.resolveElectionID(ctx, electionID)
	if err != nil {
		return err
	}

	if out == "" {
		return c.Module.Handler.ExportReportHandler(ctx, electionID, c.Out)
	}
	file, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	if err := c.Module.Handler.ExportReportHandler(ctx, electionID, file); err != nil {
		_ = file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("export: close %s: %w", out, err)
	}
	return nil
}

func (c CLI) runDisassociate(ctx context.Context, args []string) error {
	var electionID string
	flagSet := pflag.NewFlagSet("disassociate", pflag.ContinueOnError)
	flagSet.StringVarP(&electionID, "election", "e", "", "election id")
	if err := flagSet.Parse(args); err != nil {
		return err
	}
	if strings.TrimSpace(electionID) == "" {
		return errors.New("disassociate: --election is required")
	}
	resp, err := c.Module.Handler.DisassociateHandler(ctx, electionID)
	if err != nil {
		return err
	}
	color.New(color.FgGreen).Fprintf(c.Out, "unlinked %d votes of election %s\n", resp.Affected, resp.ElectionID)
	return nil
}

func (c CLI) resolveElectionID(ctx context.Context, electionID string) (string, error) {
	if electionID = strings.TrimSpace(electionID); electionID != "" {
		return electionID, nil
	}
	sheet, err := c.Module.Handler.ElectionSheetHandler(ctx, "")
	if err != nil {
		return "", err
	}
	return sheet.Election.ElectionID, nil
}

func ballotTitle(ballot electionhttp.BallotStatsResponse) string {
	if ballot.Description != "" {
		return ballot.Description
	}
	return ballot.BallotID
}
