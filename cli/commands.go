package cli

import (
	"errors"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"cmdpalette/model"
	"cmdpalette/palette"
	"cmdpalette/runner"

	"github.com/spf13/cobra"
)

const execTimeout = 5 * time.Minute

func newListCmd(app *App) *cobra.Command {
	var search string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print the commands matching a search",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.open(false); err != nil {
				return err
			}
			defer app.Close()
			app.palette.Load()
			app.palette.SetSearchText(search)
			return printCommands(cmd.OutOrStdout(), app.palette.Commands())
		},
	}
	cmd.Flags().StringVarP(&search, "search", "s", "", "search text")
	return cmd
}

func newExecCmd(app *App) *cobra.Command {
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "exec <code>",
		Short: "Run one command and wait for its output",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.open(true); err != nil {
				return err
			}
			defer app.Close()
			code := args[0]

			app.palette.Load()
			// narrow first so a code past the display cap is still reachable
			app.palette.SetSearchText(code)
			if err := app.palette.ExecuteCommandByCode(code); err != nil {
				if errors.Is(err, palette.ErrUnknownCommand) {
					return fmt.Errorf("%w: %s", err, code)
				}
				return err
			}
			return waitForRun(cmd, app, timeout)
		},
	}
	cmd.Flags().DurationVar(&timeout, "timeout", execTimeout, "how long to wait for the command to finish")
	return cmd
}

// waitForRun prints the output of the dispatched run. The timeout covers the
// whole run, not just its start.
func waitForRun(cmd *cobra.Command, app *App, timeout time.Duration) error {
	out := cmd.OutOrStdout()
	errOut := cmd.ErrOrStderr()
	deadline := time.After(timeout)

	var r runner.Run
	select {
	case r = <-app.dispatcher.Runs():
	case <-deadline:
		return fmt.Errorf("timed out waiting for dispatch")
	}

	if r.Command != "" {
		fmt.Fprintf(errOut, "$ %s\n", r.Command)
	}
	for {
		select {
		case msg, ok := <-r.Output:
			if !ok {
				fmt.Fprintf(errOut, "dispatched %s\n", r.Code)
				return nil
			}
			switch {
			case msg.Done && msg.ErrMsg != "":
				return fmt.Errorf("%s: %s", r.Code, msg.ErrMsg)
			case msg.Done:
			case msg.IsErr:
				fmt.Fprintln(errOut, msg.Line)
			default:
				fmt.Fprintln(out, msg.Line)
			}
		case <-deadline:
			return fmt.Errorf("%s: timed out after %s", r.Code, timeout)
		}
	}
}

func newRecentCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "recent",
		Short: "Print the most recently used commands",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.open(false); err != nil {
				return err
			}
			defer app.Close()
			app.palette.Load()
			return printCommands(cmd.OutOrStdout(), app.palette.Recent())
		},
	}
}

func printCommands(w io.Writer, cmds []model.Command) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "CODE\tCATEGORY\tTITLE\tSHORTCUT\tSTATE")
	for _, c := range cmds {
		state := "enabled"
		if !c.Enabled {
			state = "disabled"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", c.Code, c.Category, c.Title, c.Shortcut, state)
	}
	return tw.Flush()
}
