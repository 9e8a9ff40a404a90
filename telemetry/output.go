package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"cultigen/config"
)

// OutputManager handles structured experiment output with CSV logging.
type OutputManager struct {
	dir         string
	resultsFile *os.File

	// Track if headers have been written
	resultsHeaderWritten bool
}

// NewOutputManager creates a new output manager and initializes the output
// directory. Returns nil if dir is empty (output disabled).
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	om := &OutputManager{dir: dir}

	resultsPath := filepath.Join(dir, "results.csv")
	f, err := os.Create(resultsPath)
	if err != nil {
		return nil, fmt.Errorf("creating results.csv: %w", err)
	}
	om.resultsFile = f

	return om, nil
}

// WriteConfig saves the current configuration as YAML.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	configPath := filepath.Join(om.dir, "config.yaml")
	return cfg.WriteYAML(configPath)
}

// WriteResult appends one evaluation row to results.csv.
func (om *OutputManager) WriteResult(rec ExpressionRecord) error {
	if om == nil {
		return nil
	}

	records := []ExpressionRecord{rec}

	if !om.resultsHeaderWritten {
		// First write includes headers
		if err := gocsv.Marshal(records, om.resultsFile); err != nil {
			return fmt.Errorf("writing result: %w", err)
		}
		om.resultsHeaderWritten = true
	} else {
		if err := gocsv.MarshalWithoutHeaders(records, om.resultsFile); err != nil {
			return fmt.Errorf("writing result: %w", err)
		}
	}

	return nil
}

// WriteSummaries writes the per-strain sweep summaries to summary.csv.
func (om *OutputManager) WriteSummaries(summaries []StrainSummary) error {
	if om == nil || len(summaries) == 0 {
		return nil
	}

	path := filepath.Join(om.dir, "summary.csv")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating summary.csv: %w", err)
	}
	defer f.Close()

	if err := gocsv.Marshal(summaries, f); err != nil {
		return fmt.Errorf("writing summaries: %w", err)
	}
	return nil
}

// Dir returns the output directory path.
func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}

// Close flushes and closes all output files.
func (om *OutputManager) Close() error {
	if om == nil {
		return nil
	}
	if om.resultsFile != nil {
		return om.resultsFile.Close()
	}
	return nil
}
