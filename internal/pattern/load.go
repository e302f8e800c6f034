package pattern

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// ParseError records a single file that failed to parse while scanning a
// save directory. Scanning keeps going; callers surface these per file.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s is not a valid save file: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Load reads and validates a single save file.
func Load(path string) (*Save, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read save file: %w", err)
	}
	var s Save
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	if err := s.Validate(); err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	return &s, nil
}

// LoadDir parses every regular file in dir as a save. Files that fail to
// parse are reported as ParseErrors without aborting the scan; only an
// unreadable directory fails the call.
func LoadDir(dir string) ([]*Save, []error, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, nil, fmt.Errorf("read save directory: %w", err)
	}

	var (
		saves    []*Save
		parseErr []error
	)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		s, err := Load(filepath.Join(dir, entry.Name()))
		if err != nil {
			parseErr = append(parseErr, err)
			continue
		}
		saves = append(saves, s)
	}

	sort.Slice(saves, func(i, j int) bool {
		if saves[i].CreatedUnix != saves[j].CreatedUnix {
			return saves[i].CreatedUnix < saves[j].CreatedUnix
		}
		return saves[i].Name < saves[j].Name
	})
	return saves, parseErr, nil
}

// Preview is the metadata of a save, decoded without materializing the
// board. Cheap enough to build file listings from large save dirs.
type Preview struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Generation  uint64 `json:"generation"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	Rule        string `json:"rule"`
}

// LoadPreview reads only the save metadata from path.
func LoadPreview(path string) (*Preview, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read save file: %w", err)
	}
	var p Preview
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	return &p, nil
}
