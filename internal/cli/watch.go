package cli

import (
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/golcore/gol/internal/config"
)

// NewWatchCommand runs a saved board continuously, printing one line per
// generation until the step limit is reached or the process is
// interrupted.
func NewWatchCommand(opts *RootOptions) *cobra.Command {
	var (
		rate  time.Duration
		steps int
	)

	cmd := &cobra.Command{
		Use:   "watch <save-file>",
		Short: "Run a saved board continuously at a fixed cadence",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(opts.Config)
			if err != nil {
				return err
			}
			if rate == 0 {
				rate = time.Duration(cfg.TickRate)
			}

			eng, _, err := engineFromSave(args[0], cfg)
			if err != nil {
				return err
			}
			defer eng.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			if err := eng.Run(rate); err != nil {
				return err
			}
			defer eng.Stop()

			seen := 0
			for {
				select {
				case <-ctx.Done():
					return nil
				case res := <-eng.Results():
					if opts.Format == "json" {
						err := writeJSON(cmd.OutOrStdout(), stepSummary{
							Generation: res.Generation,
							Population: res.Population,
							Stable:     res.Stable,
							Period:     res.Period,
						})
						if err != nil {
							return err
						}
					} else {
						fmt.Fprintf(cmd.OutOrStdout(), "gen %6d  pop %6d  period %d\n",
							res.Generation, res.Population, res.Period)
					}
					seen++
					if steps > 0 && seen >= steps {
						return nil
					}
				}
			}
		},
	}

	cmd.Flags().DurationVar(&rate, "rate", 0, "tick cadence (0 uses config, which defaults to uncapped)")
	cmd.Flags().IntVarP(&steps, "steps", "n", 0, "stop after this many generations (0 = until interrupted)")
	return cmd
}
