package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/golcore/gol/internal/scenario"
)

// NewTestCommand runs every scenario in a directory and reports results.
func NewTestCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "test <scenario-dir>",
		Short: "Run CUE scenarios against the engine",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			scenarios, errs := scenario.LoadDir(args[0], scenario.CollectAll)
			for _, err := range errs {
				fmt.Fprintf(cmd.ErrOrStderr(), "load: %v\n", err)
			}
			if len(scenarios) == 0 {
				return fmt.Errorf("no runnable scenarios in %s", args[0])
			}

			out := cmd.OutOrStdout()
			failed := len(errs)
			for _, s := range scenarios {
				result, err := scenario.Run(s)
				if err != nil {
					failed++
					fmt.Fprintf(out, "ERROR %s: %v\n", s.Name, err)
					continue
				}
				if result.Passed() {
					fmt.Fprintf(out, "ok    %s (%d steps)\n", s.Name, s.Steps)
					continue
				}
				failed++
				fmt.Fprintf(out, "FAIL  %s\n", s.Name)
				for _, f := range result.Failures {
					fmt.Fprintf(out, "      %s\n", f)
				}
			}

			if failed > 0 {
				return fmt.Errorf("%d of %d scenarios failed", failed, len(scenarios)+len(errs))
			}
			fmt.Fprintf(out, "%d scenarios passed\n", len(scenarios))
			return nil
		},
	}
	return cmd
}
