package scenario

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/load"
)

// LoadMode controls error handling while loading a scenario directory.
type LoadMode int

const (
	// FailFast stops on the first scenario that does not decode.
	FailFast LoadMode = iota
	// CollectAll decodes every scenario and returns all errors together.
	CollectAll
)

// LoadDir loads every scenario declared in the CUE package rooted at
// dir. Scenarios live under the top-level `scenario` struct, one field
// per case; the field label becomes the scenario name unless the body
// sets one explicitly. Results are sorted by name for deterministic runs.
func LoadDir(dir string, mode LoadMode) ([]*Scenario, []error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, []error{fmt.Errorf("scenario directory %s: %w", dir, err)}
	}
	if !info.IsDir() {
		return nil, []error{fmt.Errorf("scenario path %s is not a directory", dir)}
	}
	if n, err := countCUEFiles(dir); err != nil {
		return nil, []error{fmt.Errorf("scan %s: %w", dir, err)}
	} else if n == 0 {
		return nil, []error{fmt.Errorf("no CUE files in %s", dir)}
	}

	ctx := cuecontext.New()
	instances := load.Instances([]string{"."}, &load.Config{Dir: dir})
	if len(instances) == 0 {
		return nil, []error{fmt.Errorf("no CUE instances in %s", dir)}
	}
	inst := instances[0]
	if inst.Err != nil {
		return nil, []error{fmt.Errorf("load CUE files: %w", inst.Err)}
	}

	value := ctx.BuildInstance(inst)
	if err := value.Err(); err != nil {
		return nil, []error{fmt.Errorf("build CUE value: %w", err)}
	}

	root := value.LookupPath(cue.ParsePath("scenario"))
	if !root.Exists() {
		return nil, []error{fmt.Errorf("no top-level scenario struct in %s", dir)}
	}

	iter, err := root.Fields()
	if err != nil {
		return nil, []error{fmt.Errorf("iterate scenarios: %w", err)}
	}

	var (
		scenarios []*Scenario
		errs      []error
	)
	for iter.Next() {
		label := iter.Label()
		var s Scenario
		if err := iter.Value().Decode(&s); err != nil {
			errs = append(errs, fmt.Errorf("scenario %q: %w", label, err))
			if mode == FailFast {
				return scenarios, errs
			}
			continue
		}
		if s.Name == "" {
			s.Name = label
		}
		if err := validate(&s); err != nil {
			errs = append(errs, err)
			if mode == FailFast {
				return scenarios, errs
			}
			continue
		}
		scenarios = append(scenarios, &s)
	}

	sort.Slice(scenarios, func(i, j int) bool { return scenarios[i].Name < scenarios[j].Name })
	return scenarios, errs
}

func validate(s *Scenario) error {
	if s.Width <= 0 || s.Height <= 0 {
		return fmt.Errorf("scenario %q: dimensions %dx%d must be positive", s.Name, s.Width, s.Height)
	}
	if s.Steps < 0 {
		return fmt.Errorf("scenario %q: steps %d must not be negative", s.Name, s.Steps)
	}
	for _, c := range s.Seed {
		if c[0] < 0 || c[0] >= s.Width || c[1] < 0 || c[1] >= s.Height {
			return fmt.Errorf("scenario %q: seed cell (%d, %d) outside %dx%d board",
				s.Name, c[0], c[1], s.Width, s.Height)
		}
	}
	return nil
}

func countCUEFiles(dir string) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".cue") {
			n++
		}
	}
	return n, nil
}
