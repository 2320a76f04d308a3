package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/knowtest/internal/catalog"
)

var listTopicsCmd = &cobra.Command{
	Use:   "list-topics",
	Short: "List the topics in the data directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := openDeps(cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		cat, err := d.loadCatalog(topicFilter(cmd))
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%-28s %-28s %s\n", "NAME", "TITLE", "QUESTIONS (B/I/A/E/M)")
		for _, t := range cat.Topics() {
			counts := ""
			for i, l := range catalog.AllLevels() {
				if i > 0 {
					counts += "/"
				}
				counts += fmt.Sprint(len(t.QuestionsAt(l)))
			}
			fmt.Fprintf(out, "%-28s %-28s %s\n", t.Name, t.Title, counts)
		}
		return nil
	},
}

func init() {
	addFilterFlags(listTopicsCmd)
}

func addFilterFlags(cmd *cobra.Command) {
	cmd.Flags().StringSlice("include", nil, "Only these topics (comma separated)")
	cmd.Flags().StringSlice("exclude", nil, "All topics except these (comma separated)")
}

func topicFilter(cmd *cobra.Command) catalog.Filter {
	include, _ := cmd.Flags().GetStringSlice("include")
	exclude, _ := cmd.Flags().GetStringSlice("exclude")
	return catalog.Filter{Include: include, Exclude: exclude}
}
