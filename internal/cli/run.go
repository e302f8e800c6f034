package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/golcore/gol/internal/catalog"
	"github.com/golcore/gol/internal/config"
	"github.com/golcore/gol/internal/engine"
	"github.com/golcore/gol/internal/grid"
	"github.com/golcore/gol/internal/pattern"
)

// NewRunCommand advances a saved board a fixed number of generations.
func NewRunCommand(opts *RootOptions) *cobra.Command {
	var (
		steps   int
		outName string
		record  bool
	)

	cmd := &cobra.Command{
		Use:   "run <save-file>",
		Short: "Advance a saved board by N generations",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(opts.Config)
			if err != nil {
				return err
			}

			eng, save, err := engineFromSave(args[0], cfg)
			if err != nil {
				return err
			}
			defer eng.Close()

			var last engine.StepResult
			for i := 0; i < steps; i++ {
				last, err = eng.Step()
				if err != nil {
					return fmt.Errorf("step %d: %w", i+1, err)
				}
			}

			summary := stepSummary{
				Generation: eng.Generation(),
				Population: eng.Snapshot().Population(),
				Stable:     last.Stable,
				Period:     last.Period,
			}

			if outName != "" {
				path, err := writeResult(cmd.Context(), eng, save, outName, cfg, record)
				if err != nil {
					return err
				}
				summary.SavedTo = path
			}

			if opts.Format == "json" {
				return writeJSON(cmd.OutOrStdout(), summary)
			}
			summary.writeText(cmd.OutOrStdout())
			return nil
		},
	}

	cmd.Flags().IntVarP(&steps, "steps", "n", 1, "number of generations to advance")
	cmd.Flags().StringVarP(&outName, "out", "o", "", "write the result as a new save with this name")
	cmd.Flags().BoolVar(&record, "record", false, "record the result save in the catalog")
	return cmd
}

// engineFromSave builds a configured engine seeded from a save file.
func engineFromSave(path string, cfg config.Config) (*engine.Engine, *pattern.Save, error) {
	save, err := pattern.Load(path)
	if err != nil {
		return nil, nil, err
	}
	rs, err := save.RuleSet()
	if err != nil {
		return nil, nil, err
	}
	policy, err := grid.ParseEdgePolicy(save.Edge)
	if err != nil {
		return nil, nil, err
	}

	var engOpts []engine.Option
	if cfg.Workers > 0 {
		engOpts = append(engOpts, engine.WithWorkers(cfg.Workers))
	}
	if cfg.HistoryCapacity > 0 {
		engOpts = append(engOpts, engine.WithHistoryCapacity(cfg.HistoryCapacity))
	}

	eng, err := engine.New(save.Width, save.Height, policy, rs, engOpts...)
	if err != nil {
		return nil, nil, err
	}
	if err := eng.Reset(save.Seed()); err != nil {
		eng.Close()
		return nil, nil, err
	}
	// A save captured mid-simulation carries its generation along.
	eng.SetGeneration(save.Generation)
	return eng, save, nil
}

// writeResult captures the engine's board as a new save file and
// optionally records it in the catalog.
func writeResult(ctx context.Context, eng *engine.Engine, src *pattern.Save, name string, cfg config.Config, record bool) (string, error) {
	out := pattern.FromGrid(name, src.Description, eng.Generation(), eng.Snapshot(), eng.RuleSet())

	if err := os.MkdirAll(cfg.SaveDir, 0o755); err != nil {
		return "", fmt.Errorf("create save dir: %w", err)
	}
	path := filepath.Join(cfg.SaveDir, out.ID+".json")
	if err := out.Write(path); err != nil {
		return "", err
	}

	if record {
		if cfg.CatalogPath == "" {
			return "", fmt.Errorf("--record requires a catalog path in config or GOL_CATALOG_PATH")
		}
		cat, err := catalog.Open(cfg.CatalogPath)
		if err != nil {
			return "", err
		}
		defer cat.Close()
		err = cat.Record(ctx, catalog.Entry{
			ID:          out.ID,
			Name:        out.Name,
			Description: out.Description,
			Generation:  out.Generation,
			Width:       out.Width,
			Height:      out.Height,
			Rule:        out.Rule,
			Path:        path,
			CreatedUnix: out.CreatedUnix,
		})
		if err != nil {
			return "", err
		}
	}
	return path, nil
}
