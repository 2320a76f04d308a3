package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/knowtest/internal/export"
	"github.com/abhisek/knowtest/internal/session"
	"github.com/abhisek/knowtest/internal/store"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print the results of a test",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := openDeps(cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		name, _ := cmd.Flags().GetString("name")
		cat, state, err := d.loadState(cmd.Context(), name)
		if err != nil {
			return err
		}
		report := session.BuildReport(cat, state)

		if path, _ := cmd.Flags().GetString("xlsx"); path != "" {
			if err := export.SaveXLSX(path, report); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Wrote", path)
			return nil
		}
		return export.WriteMarkdown(cmd.OutOrStdout(), report)
	},
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recorded answers of a test",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		d, err := openDeps(cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		name, _ := cmd.Flags().GetString("name")
		limit, _ := cmd.Flags().GetInt("limit")
		events := d.db.Events()

		list, err := events.QueryAnswerEvents(ctx, name, store.QueryOpts{Limit: limit})
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if len(list) == 0 {
			fmt.Fprintf(out, "No answers recorded for %s.\n", name)
			return nil
		}

		fmt.Fprintf(out, "%-20s %-9s %-24s %-13s %-10s %s\n", "TIME", "RUN", "TOPIC", "LEVEL", "OUTCOME", "VERDICT")
		topics := make(map[string]bool)
		var order []string
		for _, e := range list {
			fmt.Fprintf(out, "%-20s %-9s %-24s %-13d %-10s %s\n",
				e.Timestamp.Local().Format("2006-01-02 15:04:05"), shortID(e.RunID), e.Topic, e.Level, e.Outcome, e.Verdict)
			if !topics[e.Topic] {
				topics[e.Topic] = true
				order = append(order, e.Topic)
			}
		}

		fmt.Fprintln(out)
		for _, topic := range order {
			acc, n, err := events.TopicAccuracy(ctx, name, topic)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "%s: %.0f%% correct over %d answers\n", topic, acc*100, n)
		}
		return nil
	},
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func init() {
	reportCmd.Flags().String("name", "", "Test name")
	reportCmd.Flags().String("xlsx", "", "Write the report as an Excel workbook to this path")
	_ = reportCmd.MarkFlagRequired("name")

	historyCmd.Flags().String("name", "", "Test name")
	historyCmd.Flags().Int("limit", 50, "Maximum answers to show (0 = all)")
	_ = historyCmd.MarkFlagRequired("name")
}
