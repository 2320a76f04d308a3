package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/knowtest/internal/catalog"
	"github.com/abhisek/knowtest/internal/session"
	"github.com/abhisek/knowtest/internal/store"
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start a new test",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		d, err := openDeps(cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		cat, err := d.loadCatalog(topicFilter(cmd))
		if err != nil {
			return err
		}

		name, _ := cmd.Flags().GetString("name")
		if name == "" {
			name = session.GenerateName(nil)
		}
		if err := store.ValidateName(name); err != nil {
			return err
		}
		if _, err := d.backend.Load(ctx, name); err == nil {
			return fmt.Errorf("a session named %q already exists; use 'knowtest resume --name %s'", name, name)
		} else if !errors.Is(err, session.ErrNotFound) {
			return fmt.Errorf("check for session %q: %w", name, err)
		}

		engine, err := d.newEngine(cat, session.NewState(name, cat))
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Starting test %s with %d topics.\n", name, cat.Len())
		tui, _ := cmd.Flags().GetBool("tui")
		return d.runSession(cmd, engine, tui, false)
	},
}

var resumeCmd = &cobra.Command{
	Use:   "resume",
	Short: "Continue a saved test",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := openDeps(cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		name, _ := cmd.Flags().GetString("name")
		fresh, _ := cmd.Flags().GetBool("fresh")

		cat, state, err := d.loadState(cmd.Context(), name)
		var perr *session.PersistenceError
		switch {
		case errors.As(err, &perr) && fresh:
			d.log.Warn("saved session unreadable, starting over", "test", name, "error", err)
			if cat, err = d.loadCatalog(catalog.Filter{}); err != nil {
				return err
			}
			state = session.NewState(name, cat)
		case err != nil:
			if perr != nil {
				return fmt.Errorf("%w (use --fresh to start over)", err)
			}
			return err
		}

		if state.Complete() {
			fmt.Fprintf(cmd.OutOrStdout(), "Test %s is already complete. See 'knowtest report --name %s'.\n", name, name)
			return nil
		}

		engine, err := d.newEngine(cat, state)
		if err != nil {
			return err
		}
		tui, _ := cmd.Flags().GetBool("tui")
		return d.runSession(cmd, engine, tui, true)
	},
}

func init() {
	addFilterFlags(startCmd)
	startCmd.Flags().String("name", "", "Test name (generated when omitted)")
	startCmd.Flags().Bool("tui", false, "Use the full-screen terminal UI")

	resumeCmd.Flags().String("name", "", "Test name to resume")
	resumeCmd.Flags().Bool("fresh", false, "Start over if the saved session cannot be read")
	resumeCmd.Flags().Bool("tui", false, "Use the full-screen terminal UI")
	_ = resumeCmd.MarkFlagRequired("name")
}
