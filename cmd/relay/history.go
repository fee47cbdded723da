package main

import (
	"errors"
	"fmt"

	"github.com/HerbHall/promptrelay/internal/journal"
	"github.com/HerbHall/promptrelay/internal/version"
	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

var errJournalDisabled = errors.New("journal is disabled: set --journal or journal.path")

func newHistoryCmd(a *app) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent relays from the journal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := a.settings.Journal.Path
			if path == "" {
				return errJournalDisabled
			}

			j, err := journal.Open(cmd.Context(), path, version.Short())
			if err != nil {
				return fmt.Errorf("open journal: %w", err)
			}
			defer j.Close()

			entries, err := j.Recent(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no relays recorded")
				return nil
			}

			renderHistory(cmd, entries)
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "maximum number of entries to show")
	return cmd
}

func renderHistory(cmd *cobra.Command, entries []journal.Entry) {
	table := tablewriter.NewWriter(cmd.OutOrStdout())
	table.SetHeader([]string{"ID", "When", "Provider", "Model", "Target", "Status", "Detail"})
	table.SetAutoWrapText(false)
	table.SetBorder(false)

	for _, e := range entries {
		table.Append([]string{
			shortID(e.ID),
			humanize.Time(e.CreatedAt),
			e.Provider,
			e.Model,
			e.Target,
			e.Status,
			detail(e),
		})
	}
	table.Render()
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// detail is the failure kind, or the completion size on success.
func detail(e journal.Entry) string {
	if e.Kind != "" {
		return e.Kind
	}
	return humanize.Bytes(uint64(len(e.Text)))
}
