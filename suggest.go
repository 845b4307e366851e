package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/fgiusti90/psico-app/ledger"
	"github.com/fgiusti90/psico-app/store"
	"github.com/spf13/cobra"
)

var suggestOpts struct {
	owner  string
	search string
	json   bool
}

var suggestCmd = &cobra.Command{
	Use:   "suggest",
	Short: "Print the fee suggestion board of a practitioner",
	RunE:  runSuggest,
}

func init() {
	f := suggestCmd.Flags()
	f.StringVar(&suggestOpts.owner, "owner", "", "Practitioner ID (token subject)")
	f.StringVar(&suggestOpts.search, "search", "", "Only patients whose name contains this")
	f.BoolVar(&suggestOpts.json, "json", false, "Print JSON instead of a table")
}

func runSuggest(cmd *cobra.Command, args []string) error {
	log := setupLogger()
	if suggestOpts.owner == "" {
		return errors.New("--owner is required")
	}

	db, err := openDatabase(log)
	if err != nil {
		log.Error().Err(err).Msg("database setup failed")
		return err
	}

	snap, err := store.New(db, log).LoadSnapshot(context.Background(), suggestOpts.owner)
	if err != nil {
		log.Error().Err(err).Str("owner", suggestOpts.owner).Msg("loading records failed")
		return err
	}
	board := ledger.SuggestFees(snap, suggestOpts.search)

	if suggestOpts.json {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(board)
	}
	return printBoard(cmd.OutOrStdout(), board)
}

func printBoard(out io.Writer, board ledger.SuggestionBoard) error {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "PATIENT\tCURRENT\tSINCE\tINFLATION %\tSUGGESTED\tSTATUS")
	for _, s := range board.Suggestions {
		fmt.Fprintf(tw, "%s\t%.2f\t%s\t%.2f\t%.0f\t%s\n",
			s.PatientName, s.CurrentFee, s.ReferenceDate, s.AccumulatedInflation, s.SuggestedFee, s.Status)
	}
	fmt.Fprintf(tw, "\nok: %d\treview: %d\tadjust: %d\n",
		board.Summary[ledger.StatusOK], board.Summary[ledger.StatusReview], board.Summary[ledger.StatusAdjust])
	return tw.Flush()
}
