package cli

import (
	"encoding/json"
	"fmt"
	"io"
)

// writeJSON renders v as indented JSON to w.
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	return nil
}

// stepSummary is the JSON shape of a simulation run summary.
type stepSummary struct {
	Generation uint64 `json:"generation"`
	Population int    `json:"population"`
	Stable     bool   `json:"stable"`
	Period     int    `json:"period"`
	SavedTo    string `json:"saved_to,omitempty"`
}

func (s stepSummary) writeText(w io.Writer) {
	fmt.Fprintf(w, "generation %d, population %d", s.Generation, s.Population)
	switch {
	case s.Stable:
		fmt.Fprint(w, " (stable)")
	case s.Period > 1:
		fmt.Fprintf(w, " (oscillating, period %d)", s.Period)
	}
	fmt.Fprintln(w)
	if s.SavedTo != "" {
		fmt.Fprintf(w, "saved to %s\n", s.SavedTo)
	}
}
