package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/golcore/gol/internal/pattern"
)

// NewPreviewCommand prints save metadata, optionally with the board.
func NewPreviewCommand(opts *RootOptions) *cobra.Command {
	var board bool

	cmd := &cobra.Command{
		Use:   "preview <save-file>",
		Short: "Show a save file's metadata without running it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := pattern.LoadPreview(args[0])
			if err != nil {
				return err
			}

			if opts.Format == "json" && !board {
				return writeJSON(cmd.OutOrStdout(), p)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s (%s)\n", p.Name, p.ID)
			if p.Description != "" {
				fmt.Fprintf(out, "  %s\n", p.Description)
			}
			fmt.Fprintf(out, "  %dx%d, rule %s, generation %d\n", p.Width, p.Height, p.Rule, p.Generation)

			if board {
				// Board rendering needs the full save, not just the preview.
				s, err := pattern.Load(args[0])
				if err != nil {
					return err
				}
				g, err := s.Grid()
				if err != nil {
					return err
				}
				fmt.Fprint(out, pattern.Render(g))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&board, "board", false, "render the board as text")
	return cmd
}
